// Package logging configures the process-wide zerolog logger.
package logging

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Config captures options for configuring the base logger.
type Config struct {
	Level  string    // "debug", "info", ...; defaults to info
	Format string    // "console" (default) or "json"
	Output io.Writer // defaults to os.Stderr
	RunID  string    // attached to every entry when set
}

var (
	mu   sync.RWMutex
	base = zerolog.Nop()
)

// Configure replaces the base logger. Unknown levels fall back to info.
func Configure(cfg Config) zerolog.Logger {
	level := zerolog.InfoLevel
	if cfg.Level != "" {
		if parsed, err := zerolog.ParseLevel(cfg.Level); err == nil && parsed != zerolog.NoLevel {
			level = parsed
		}
	}

	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	if cfg.Format != "json" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen, NoColor: true}
	}

	ctx := zerolog.New(out).Level(level).With().Timestamp()
	if cfg.RunID != "" {
		ctx = ctx.Str("run_id", cfg.RunID)
	}
	l := ctx.Logger()

	mu.Lock()
	base = l
	mu.Unlock()
	return l
}

// Base returns the configured logger, or a no-op logger before Configure.
func Base() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base
}

// WithComponent returns a child logger annotated with the given component name.
func WithComponent(component string) zerolog.Logger {
	return Base().With().Str("component", component).Logger()
}
