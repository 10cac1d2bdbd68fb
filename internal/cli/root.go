package cli

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tdsmerge",
	Short: "Merge TDS project files and serialized items",
	Long: `tdsmerge folds one Team Development for Sitecore project into another.

It merges Sitecore items, code generation templates and code generation
settings from a content project into a target project, copies serialized
.item and .tt files between trees without overwriting, and rewrites the
ExcludedAssemblies list of a project.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to config file (default ~/.config/tdsmerge/config.yaml)")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output format: table, json, yaml (overrides TDSMERGE_OUTPUT)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (overrides TDSMERGE_LOG_LEVEL)")
	rootCmd.PersistentFlags().Bool("dry-run", false, "Report what would change without writing")
}
