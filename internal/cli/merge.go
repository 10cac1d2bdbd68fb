package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lherron/tdsmerge/internal/cli/appctx"
	"github.com/spf13/cobra"
)

var mergeCmd = &cobra.Command{
	Use:   "merge <target-project> <content-project>",
	Short: "Merge a content project into a target project",
	Long: `Merges build items and code generation settings from the content project
into the target project, which is saved in place.

Items are matched by their Include path, ignoring case. Items already in the
target are never replaced; new items are added and each merged group is
sorted by Include. Code generation settings found in the content project
replace the same settings in the target's first PropertyGroup.

Examples:
  tdsmerge merge Website.TDS.Master.scproj Feature.TDS.Master.scproj
  tdsmerge merge Target.scproj Content.scproj --dry-run
  tdsmerge merge Target.scproj Content.scproj --item-type SitecoreItem -o json
`,
	Args: cobra.ExactArgs(2),
	RunE: appctx.WithApp(runMerge),
}

func init() {
	rootCmd.AddCommand(mergeCmd)
	mergeCmd.Flags().StringSlice("item-type", nil, "Item types to merge (default SitecoreItem,CodeGenTemplate)")
}

func runMerge(app *appctx.App, cmd *cobra.Command, args []string) error {
	report, err := app.Merger.MergeProjects(args[0], args[1])
	if err != nil {
		return err
	}

	headers := []string{"ITEM TYPE", "KEPT", "ADDED", "SKIPPED", "DUPLICATES", "TOTAL", "GROUP"}
	var rows [][]string
	for _, it := range report.Items {
		group := "existing"
		if it.GroupCreated {
			group = "created"
		}
		rows = append(rows, []string{
			it.ItemType,
			strconv.Itoa(it.Kept),
			strconv.Itoa(it.Added),
			strconv.Itoa(it.Skipped),
			strconv.Itoa(it.Duplicates),
			strconv.Itoa(it.Total()),
			group,
		})
	}

	if err := app.Renderer.Render(report, headers, rows); err != nil {
		return err
	}
	if !isTable(app) {
		return nil
	}

	out := cmd.OutOrStdout()
	if len(report.Properties) > 0 {
		fmt.Fprintf(out, "\nProperties replaced: %s\n", strings.Join(report.Properties, ", "))
	}
	printDiff(app, cmd, report.Diff)
	return nil
}
