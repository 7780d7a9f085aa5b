// Package report renders the analysis output: a spreadsheet with the
// detailed comments and team breakdown, plus pie and bar chart images of the
// team distribution.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/xuri/excelize/v2"

	"github.com/danielolaszy/prlens/internal/logging"
	"github.com/danielolaszy/prlens/pkg/models"
)

// Fixed output file names, written into the renderer's output directory.
const (
	WorkbookName = "pr_comment_report.xlsx"
	PieChartName = "comments_by_team_pie.png"
	BarChartName = "comments_by_team_bar.png"
)

// Sheet names inside the workbook.
const (
	detailSheet  = "Detailed Comments"
	summarySheet = "Team Summary"
)

// Renderer writes the report files for one run.
type Renderer struct {
	outputDir string
}

// NewRenderer creates a renderer writing into the given directory.
func NewRenderer(outputDir string) *Renderer {
	if outputDir == "" {
		outputDir = "."
	}
	return &Renderer{outputDir: outputDir}
}

// Render writes the workbook and both chart images. The comment slice must
// be non-empty; callers skip rendering entirely when a run produced no
// meaningful comments.
func (r *Renderer) Render(comments []models.ClassifiedComment, summary models.Summary) error {
	teams := sortedTeamCounts(summary.TeamCounts)

	workbookPath := filepath.Join(r.outputDir, WorkbookName)
	if err := r.writeWorkbook(workbookPath, comments, teams); err != nil {
		return fmt.Errorf("failed to write spreadsheet: %w", err)
	}

	piePath := filepath.Join(r.outputDir, PieChartName)
	if err := r.renderPieChart(piePath, teams); err != nil {
		return fmt.Errorf("failed to render pie chart: %w", err)
	}

	barPath := filepath.Join(r.outputDir, BarChartName)
	if err := r.renderBarChart(barPath, teams); err != nil {
		return fmt.Errorf("failed to render bar chart: %w", err)
	}

	logging.Info("report generated",
		"workbook", workbookPath,
		"pie_chart", piePath,
		"bar_chart", barPath)
	return nil
}

// teamCount is one row of the team breakdown, ordered for stable output.
type teamCount struct {
	team  string
	count int
}

// sortedTeamCounts flattens the team counts map, descending by count and
// alphabetically within ties.
func sortedTeamCounts(counts map[string]int) []teamCount {
	teams := make([]teamCount, 0, len(counts))
	for team, count := range counts {
		teams = append(teams, teamCount{team: team, count: count})
	}
	sort.Slice(teams, func(i, j int) bool {
		if teams[i].count != teams[j].count {
			return teams[i].count > teams[j].count
		}
		return teams[i].team < teams[j].team
	})
	return teams
}

// writeWorkbook writes the detailed comments and team summary sheets.
func (r *Renderer) writeWorkbook(path string, comments []models.ClassifiedComment, teams []teamCount) error {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			logging.Warn("failed to close workbook", "error", err)
		}
	}()

	if err := f.SetSheetName("Sheet1", detailSheet); err != nil {
		return err
	}

	header := []interface{}{"Ticket", "Repository", "Pull Request", "Author", "Team", "Comment", "Created"}
	if err := f.SetSheetRow(detailSheet, "A1", &header); err != nil {
		return err
	}

	for i, comment := range comments {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{
			comment.TicketID,
			comment.PR.Repository(),
			comment.PR.Number,
			comment.Author,
			comment.Team,
			comment.Body,
			comment.CreatedAt.Format(time.RFC3339),
		}
		if err := f.SetSheetRow(detailSheet, cell, &row); err != nil {
			return err
		}
	}

	if _, err := f.NewSheet(summarySheet); err != nil {
		return err
	}

	summaryHeader := []interface{}{"Team", "Comment Count"}
	if err := f.SetSheetRow(summarySheet, "A1", &summaryHeader); err != nil {
		return err
	}

	for i, tc := range teams {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{tc.team, tc.count}
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return err
		}
	}

	return f.SaveAs(path)
}

// chartValues converts the team breakdown into chart values.
func chartValues(teams []teamCount) []chart.Value {
	values := make([]chart.Value, 0, len(teams))
	for _, tc := range teams {
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s (%d)", tc.team, tc.count),
			Value: float64(tc.count),
		})
	}
	return values
}

// renderPieChart writes the team distribution as a pie chart PNG.
func (r *Renderer) renderPieChart(path string, teams []teamCount) error {
	pie := chart.PieChart{
		Title:  "Comments by Team",
		Width:  600,
		Height: 600,
		Values: chartValues(teams),
	}

	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()

	return pie.Render(chart.PNG, out)
}

// renderBarChart writes the team distribution as a bar chart PNG.
func (r *Renderer) renderBarChart(path string, teams []teamCount) error {
	// An explicit range keeps the chart renderable when every team has the
	// same count (a computed zero-delta range fails to render).
	max := 0
	for _, tc := range teams {
		if tc.count > max {
			max = tc.count
		}
	}

	bar := chart.BarChart{
		Title:    "Comments by Team",
		Width:    800,
		Height:   500,
		BarWidth: 60,
		Bars:     chartValues(teams),
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: float64(max + 1)},
		},
	}

	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()

	return bar.Render(chart.PNG, out)
}
