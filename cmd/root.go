package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "prlens",
	Short: "PRLens analyzes pull request review activity per work-item ticket",
	Long: `PRLens is a CLI tool that retrieves the pull request comments linked to
work-item tickets, filters out system and status noise, classifies the
remaining comments by team, and generates a spreadsheet report together with
pie and bar charts of the team distribution.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Add the report command
	rootCmd.AddCommand(reportCmd)
}
