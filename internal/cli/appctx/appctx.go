// Package appctx provides a shared bootstrap helper for CLI commands.
// It centralizes config loading, logger setup and merger construction
// to reduce boilerplate across commands.
package appctx

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/lherron/tdsmerge/internal/config"
	"github.com/lherron/tdsmerge/internal/logging"
	"github.com/lherron/tdsmerge/internal/projmerge"
	"github.com/lherron/tdsmerge/internal/render"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// App holds the shared application context for commands.
type App struct {
	// Config is the loaded configuration with flag overrides applied
	Config *config.Config

	// RunID identifies this invocation in log output
	RunID string

	Log      zerolog.Logger
	Merger   *projmerge.Merger
	Renderer *render.Renderer
	DryRun   bool
}

// RunFunc is the signature for command run functions.
type RunFunc func(app *App, cmd *cobra.Command, args []string) error

// WithApp wraps a command's run function with shared bootstrap logic.
func WithApp(fn RunFunc) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		app, err := Bootstrap(cmd)
		if err != nil {
			return err
		}
		return fn(app, cmd, args)
	}
}

// Bootstrap loads configuration, applies the global flags (--config,
// --output, --log-level, --dry-run) plus the per-command list flags, and
// builds the merger.
func Bootstrap(cmd *cobra.Command) (*App, error) {
	cfg, err := config.Load(flagString(cmd, "config"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if v := flagString(cmd, "output"); v != "" {
		cfg.Output = v
	}
	if v := flagString(cmd, "log-level"); v != "" {
		cfg.LogLevel = v
	}
	if v := flagSlice(cmd, "item-type"); len(v) > 0 {
		cfg.ItemTypes = v
	}
	if v := flagSlice(cmd, "exclude"); len(v) > 0 {
		cfg.CopyExcludes = append(cfg.CopyExcludes, v...)
	}

	format, err := render.ParseFormat(cfg.Output)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config:   cfg,
		RunID:    uuid.NewString(),
		Renderer: render.NewRenderer(cmd.OutOrStdout(), format),
		DryRun:   flagString(cmd, "dry-run") == "true",
	}

	app.Log = logging.Configure(logging.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Output: cmd.ErrOrStderr(),
		RunID:  app.RunID,
	})
	app.Log.Debug().Str("command", cmd.Name()).Msg("starting")

	app.Merger = projmerge.New(projmerge.Options{
		ItemTypes:          cfg.ItemTypes,
		CopyExtensions:     cfg.CopyExtensions,
		CopyExcludes:       cfg.CopyExcludes,
		ExcludedAssemblies: cfg.ExcludedAssemblies,
		DryRun:             app.DryRun,
		Logger:             &app.Log,
	})

	return app, nil
}

func flagString(cmd *cobra.Command, name string) string {
	if f := cmd.Flag(name); f != nil {
		return f.Value.String()
	}
	return ""
}

func flagSlice(cmd *cobra.Command, name string) []string {
	if cmd.Flags().Lookup(name) == nil {
		return nil
	}
	v, _ := cmd.Flags().GetStringSlice(name)
	return v
}
