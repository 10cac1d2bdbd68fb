package cli

import (
	"fmt"

	"github.com/lherron/tdsmerge/internal/cli/appctx"
	"github.com/spf13/cobra"
)

var copyCmd = &cobra.Command{
	Use:   "copy <target-dir> <source-dir>",
	Short: "Copy serialized items and templates into another tree",
	Long: `Copies every .item and .tt file under source-dir to the same relative
path under target-dir, creating directories as needed. Files that already
exist in target-dir are left untouched.

Examples:
  tdsmerge copy ./Website.TDS.Master ./Feature.TDS.Master
  tdsmerge copy ./out ./src --exclude 'obj/**' --dry-run
`,
	Args: cobra.ExactArgs(2),
	RunE: appctx.WithApp(runCopy),
}

func init() {
	rootCmd.AddCommand(copyCmd)
	copyCmd.Flags().StringSlice("exclude", nil, "Glob of relative paths to skip (repeatable, supports **)")
}

func runCopy(app *appctx.App, cmd *cobra.Command, args []string) error {
	report, err := app.Merger.CopyFiles(args[0], args[1])
	if err != nil {
		return err
	}

	var rows [][]string
	for _, p := range report.Copied {
		action := "copied"
		if report.DryRun {
			action = "would copy"
		}
		rows = append(rows, []string{action, p})
	}
	for _, p := range report.Skipped {
		rows = append(rows, []string{"exists", p})
	}
	for _, p := range report.Excluded {
		rows = append(rows, []string{"excluded", p})
	}

	if err := app.Renderer.Render(report, []string{"ACTION", "PATH"}, rows); err != nil {
		return err
	}
	if isTable(app) {
		fmt.Fprintf(cmd.OutOrStdout(), "\n%d copied, %d already present, %d excluded\n",
			len(report.Copied), len(report.Skipped), len(report.Excluded))
	}
	return nil
}
