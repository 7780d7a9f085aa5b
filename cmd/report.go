// Package cmd provides the command-line interface for the PRLens CLI tool.
package cmd

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/danielolaszy/prlens/internal/analyze"
	"github.com/danielolaszy/prlens/internal/classify"
	"github.com/danielolaszy/prlens/internal/config"
	"github.com/danielolaszy/prlens/internal/filter"
	"github.com/danielolaszy/prlens/internal/github"
	"github.com/danielolaszy/prlens/internal/jira"
	"github.com/danielolaszy/prlens/internal/logging"
	"github.com/danielolaszy/prlens/internal/report"
	"github.com/danielolaszy/prlens/internal/rules"
	"github.com/danielolaszy/prlens/pkg/models"
)

// reportCmd analyzes the PR comments linked to a set of tickets and writes
// the spreadsheet and chart files into the output directory.
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate a PR comment report for a set of tickets",
	Long: `Generate a PR comment report for a set of work-item tickets.

For every ticket the command resolves the linked pull requests, fetches their
comments, drops system/status noise (bot authors, automated status messages,
empty bodies), assigns each remaining comment to a team using the configured
classification rules, and writes three files into the output directory:

  pr_comment_report.xlsx    detailed comments and team breakdown
  comments_by_team_pie.png  team distribution as a pie chart
  comments_by_team_bar.png  team distribution as a bar chart

Tickets are JIRA issue keys (e.g. 'ABC-123'). Bare numbers are accepted when
a default project is set with --project. Noise and team rules come from a
YAML file passed with --rules; without one, built-in defaults apply.

Example:
  prlens report -t ABC-123 -t ABC-456 --rules teams.yaml -o ./out`,
	RunE: func(cmd *cobra.Command, args []string) error {
		tickets, err := cmd.Flags().GetStringArray("tickets")
		if err != nil {
			return err
		}

		project, err := cmd.Flags().GetString("project")
		if err != nil {
			return err
		}

		rulesPath, err := cmd.Flags().GetString("rules")
		if err != nil {
			return err
		}

		outputDir, err := cmd.Flags().GetString("output-dir")
		if err != nil {
			return err
		}

		debug, err := cmd.Flags().GetBool("debug")
		if err != nil {
			return err
		}

		if len(tickets) == 0 {
			return fmt.Errorf("at least one ticket must be specified using --tickets")
		}

		// Validate credentials up front, before any network activity
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}
		if err := config.ValidateJiraConfig(cfg); err != nil {
			return err
		}

		keys := make([]string, 0, len(tickets))
		for _, ticket := range tickets {
			key, err := jira.NormalizeKey(ticket, project)
			if err != nil {
				return err
			}
			keys = append(keys, key)
		}

		ruleSet, err := rules.Load(rulesPath)
		if err != nil {
			return err
		}

		noiseFilter, err := filter.New(ruleSet.Noise)
		if err != nil {
			return err
		}
		classifier := classify.New(ruleSet.Teams)

		logging.Info("starting report run",
			"tickets", keys,
			"rules", rulesPath,
			"output_dir", outputDir)

		// Initialize clients
		jiraClient, err := jira.NewClient()
		if err != nil {
			return fmt.Errorf("failed to initialize jira client: %v", err)
		}

		githubClient, err := github.NewClient()
		if err != nil {
			return fmt.Errorf("failed to initialize github client: %v", err)
		}

		analyzer := analyze.New(jiraClient, githubClient, noiseFilter, classifier)

		classified, summary, err := analyzer.Run(context.Background(), keys)
		if err != nil {
			return fmt.Errorf("analysis failed: %v", err)
		}

		if debug {
			printDebugStats(summary)
		}

		if summary.Meaningful == 0 {
			logging.Info("no meaningful comments found, skipping report")
			fmt.Println("No meaningful comments found.")
			return nil
		}

		renderer := report.NewRenderer(outputDir)
		if err := renderer.Render(classified, summary); err != nil {
			return err
		}

		fmt.Printf("Report generated in %s\n", outputDir)
		return nil
	},
}

// printDebugStats writes the verbose filtering statistics to stdout.
func printDebugStats(summary models.Summary) {
	fmt.Println("\nDEBUG STATS")
	fmt.Printf("%-25s: %d\n", "tickets_processed", summary.TicketsProcessed)
	fmt.Printf("%-25s: %d\n", "comments_seen", summary.TotalComments)
	fmt.Printf("%-25s: %d\n", "comments_kept", summary.Meaningful)
	fmt.Printf("%-25s: %d\n", "comments_filtered", summary.Noise)

	ruleNames := make([]string, 0, len(summary.NoiseByRule))
	for rule := range summary.NoiseByRule {
		ruleNames = append(ruleNames, rule)
	}
	sort.Strings(ruleNames)
	for _, rule := range ruleNames {
		fmt.Printf("%-25s: %d\n", "filtered_by_"+rule, summary.NoiseByRule[rule])
	}
}

func init() {
	reportCmd.Flags().StringArrayP("tickets", "t", nil, "Ticket identifier (repeatable, e.g. 'ABC-123' or '123' with --project)")
	reportCmd.Flags().StringP("project", "p", "", "Default JIRA project key for bare numeric ticket identifiers")
	reportCmd.Flags().String("rules", "", "Path to a YAML rules file (noise patterns and team mappings)")
	reportCmd.Flags().StringP("output-dir", "o", ".", "Directory the report files are written into")
	reportCmd.Flags().BoolP("debug", "d", false, "Print verbose filtering statistics")
	reportCmd.MarkFlagRequired("tickets")
}
