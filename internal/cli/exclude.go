package cli

import (
	"strconv"

	"github.com/lherron/tdsmerge/internal/cli/appctx"
	"github.com/spf13/cobra"
)

var excludeCmd = &cobra.Command{
	Use:   "exclude <project>",
	Short: "Rewrite the ExcludedAssemblies list of a project",
	Long: `Replaces the ExcludedAssemblies item group of the project with the
configured assembly list (by default Sitecore.Kernel.dll, Sitecore.Client.dll,
Sitecore.Analytics.dll and Lucene.Net.dll) and saves the project in place.
`,
	Args: cobra.ExactArgs(1),
	RunE: appctx.WithApp(runExclude),
}

func init() {
	rootCmd.AddCommand(excludeCmd)
}

func runExclude(app *appctx.App, cmd *cobra.Command, args []string) error {
	report, err := app.Merger.UpdateExcludedFiles(args[0])
	if err != nil {
		return err
	}

	var rows [][]string
	for i, name := range report.Assemblies {
		rows = append(rows, []string{strconv.Itoa(i + 1), name})
	}
	if err := app.Renderer.Render(report, []string{"#", "ASSEMBLY"}, rows); err != nil {
		return err
	}
	if isTable(app) {
		printDiff(app, cmd, report.Diff)
	}
	return nil
}
