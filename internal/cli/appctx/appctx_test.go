package appctx

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lherron/tdsmerge/internal/render"
	"github.com/spf13/cobra"
)

func testCommand(t *testing.T) *cobra.Command {
	t.Helper()
	home := t.TempDir()
	work := filepath.Join(home, "work")
	if err := os.Mkdir(work, 0755); err != nil {
		t.Fatal(err)
	}
	t.Setenv("HOME", home)
	t.Setenv("TDSMERGE_OUTPUT", "")
	t.Setenv("TDSMERGE_LOG_LEVEL", "")
	t.Chdir(work)

	cmd := &cobra.Command{Use: "merge"}
	cmd.Flags().String("config", "", "")
	cmd.Flags().String("output", "", "")
	cmd.Flags().String("log-level", "", "")
	cmd.Flags().Bool("dry-run", false, "")
	cmd.Flags().StringSlice("item-type", nil, "")
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	return cmd
}

func TestBootstrap_Defaults(t *testing.T) {
	cmd := testCommand(t)

	app, err := Bootstrap(cmd)
	if err != nil {
		t.Fatalf("Bootstrap failed: %v", err)
	}

	if app.Config == nil || app.Merger == nil || app.Renderer == nil {
		t.Fatal("Bootstrap left App incomplete")
	}
	if app.Renderer.Format() != render.FormatTable {
		t.Errorf("format = %q, want table", app.Renderer.Format())
	}
	if app.DryRun {
		t.Error("DryRun should default to false")
	}
	if len(app.RunID) != 36 {
		t.Errorf("RunID = %q, want a UUID", app.RunID)
	}
}

func TestBootstrap_FlagOverrides(t *testing.T) {
	cmd := testCommand(t)
	if err := cmd.ParseFlags([]string{"--output", "json", "--dry-run", "--item-type", "SitecoreItem", "--log-level", "debug"}); err != nil {
		t.Fatal(err)
	}

	app, err := Bootstrap(cmd)
	if err != nil {
		t.Fatalf("Bootstrap failed: %v", err)
	}
	if app.Renderer.Format() != render.FormatJSON {
		t.Errorf("format = %q, want json", app.Renderer.Format())
	}
	if !app.DryRun {
		t.Error("expected DryRun from --dry-run")
	}
	if len(app.Config.ItemTypes) != 1 || app.Config.ItemTypes[0] != "SitecoreItem" {
		t.Errorf("ItemTypes = %v", app.Config.ItemTypes)
	}

	stderr := cmd.ErrOrStderr().(*bytes.Buffer)
	if !strings.Contains(stderr.String(), "run_id="+app.RunID) {
		t.Errorf("expected debug log with run id, got %q", stderr.String())
	}
}

func TestBootstrap_Errors(t *testing.T) {
	cmd := testCommand(t)
	if err := cmd.ParseFlags([]string{"--output", "xml"}); err != nil {
		t.Fatal(err)
	}
	if _, err := Bootstrap(cmd); err == nil {
		t.Error("expected error for unknown output format")
	}

	cmd = testCommand(t)
	if err := cmd.ParseFlags([]string{"--config", filepath.Join(t.TempDir(), "missing.yaml")}); err != nil {
		t.Fatal(err)
	}
	if _, err := Bootstrap(cmd); err == nil {
		t.Error("expected error for missing explicit config")
	}
}
