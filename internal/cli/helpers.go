package cli

import (
	"fmt"

	"github.com/lherron/tdsmerge/internal/cli/appctx"
	"github.com/lherron/tdsmerge/internal/render"
	"github.com/spf13/cobra"
)

func isTable(app *appctx.App) bool {
	return app.Renderer.Format() == render.FormatTable
}

// printDiff shows a dry-run diff after the table output.
func printDiff(app *appctx.App, cmd *cobra.Command, diff string) {
	if !app.DryRun {
		return
	}
	out := cmd.OutOrStdout()
	if diff == "" {
		fmt.Fprintln(out, "\nNo changes.")
		return
	}
	fmt.Fprintf(out, "\n%s", diff)
}
