package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/uiforge/designlint/internal/config"
	"github.com/uiforge/designlint/internal/database"
	"github.com/uiforge/designlint/internal/model"
)

// Constants for compliance direction and summary messages.
const (
	directionImproved  = "improved"
	directionRegressed = "regressed"
	directionUnchanged = "unchanged"

	compareHistoryLimit = 50
)

// NewCompareCmd creates the compare command.
// This command compares validation results with historical data stored in
// the database.
func NewCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare [path]",
		Short: "Compare validation results with historical data",
		Long: `Compare displays differences between the current and previous validation runs.

This command retrieves historical runs from the database and shows:
- New violations that appeared since the last run
- Resolved violations that are no longer present
- The change in compliance score

The comparison requires at least two runs in the database for the
specified target. Use 'designlint validate' to run validations and save
results.

Examples:
  # Compare the latest two runs for a target
  designlint compare src

  # List run history for a target
  designlint compare --list src

  # Compare with a specific historical run by ID
  designlint compare --with-run-id 5 src

  # Compare with the first run since a date
  designlint compare --since "2026-01-01" src

  # Output the comparison in JSON format
  designlint compare --json src

  # List all validated targets in the database
  designlint compare --list-targets`,
		Args: cobra.MaximumNArgs(1),
		RunE: runCompareCmd,
	}

	// History listing flags
	cmd.Flags().BoolP("list", "l", false,
		"List run history for the specified target")
	cmd.Flags().BoolP("list-targets", "L", false,
		"List all validated targets in the database")

	// Comparison target flags
	cmd.Flags().Int64P("with-run-id", "i", 0,
		"Compare with a specific run by ID (use --list to see available IDs)")
	cmd.Flags().StringP("since", "s", "",
		"Compare with the first run after this date (format: YYYY-MM-DD)")

	// Output format flags
	cmd.Flags().BoolP("json", "j", false,
		"Output comparison result in JSON format")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output comparison result in Markdown format")

	return cmd
}

// runCompareCmd executes the compare command.
func runCompareCmd(cmd *cobra.Command, args []string) error {
	listTargets, err := cmd.Flags().GetBool("list-targets")
	if err != nil {
		return err
	}

	// Validate arguments before opening the database (unless --list-targets)
	// so a usage error never takes the writer lock.
	var target string
	if !listTargets {
		if len(args) == 0 {
			return errors.New("target path is required (use --list-targets to see available targets)")
		}
		target = filepath.ToSlash(args[0])
	}

	db, err := database.Open(config.XDGDataDir(), database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	ctx := context.Background()

	if listTargets {
		return listValidatedTargets(ctx, db)
	}

	listHistory, err := cmd.Flags().GetBool("list")
	if err != nil {
		return err
	}
	if listHistory {
		return listRunHistory(ctx, db, target)
	}

	jsonOutput, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}
	markdownOutput, err := cmd.Flags().GetBool("markdown")
	if err != nil {
		return err
	}
	withRunID, err := cmd.Flags().GetInt64("with-run-id")
	if err != nil {
		return err
	}
	sinceDate, err := cmd.Flags().GetString("since")
	if err != nil {
		return err
	}

	return runComparison(ctx, db, target, withRunID, sinceDate, jsonOutput, markdownOutput)
}

// listValidatedTargets lists all targets that have run records in the database.
func listValidatedTargets(ctx context.Context, db *database.HistoryDB) error {
	targets, err := db.ListTargets(ctx)
	if err != nil {
		return fmt.Errorf("failed to list targets: %w", err)
	}

	if len(targets) == 0 {
		fmt.Println("No validated targets found in the database.")
		fmt.Println("\nUse 'designlint validate <path>' to validate a target.")
		return nil
	}

	fmt.Printf("Validated targets (%d):\n\n", len(targets))
	for _, t := range targets {
		fmt.Printf("  • %s\n", t)
	}
	fmt.Println("\nUse 'designlint compare --list <path>' to see run history for a target.")

	return nil
}

// listRunHistory lists run records for a specific target.
func listRunHistory(ctx context.Context, db *database.HistoryDB, target string) error {
	runs, err := db.ListRuns(ctx, target, compareHistoryLimit)
	if err != nil {
		return fmt.Errorf("failed to get run history: %w", err)
	}

	if len(runs) == 0 {
		fmt.Printf("No run history found for %s\n", target)
		fmt.Println("\nUse 'designlint validate' to validate this target.")
		return nil
	}

	fmt.Printf("Run history for %s (%d runs):\n\n", target, len(runs))
	fmt.Printf("  %-6s  %-20s  %-7s  %s\n", "ID", "Date", "Score", "Findings")
	fmt.Println("  " + strings.Repeat("-", 60))

	for _, run := range runs {
		fmt.Printf("  %-6d  %-20s  %-7s  %s\n",
			run.ID,
			run.ScannedAt.Format("2006-01-02 15:04:05"),
			fmt.Sprintf("%d%%", run.Score),
			formatRunSummary(run),
		)
	}

	fmt.Println("\nUse 'designlint compare <path>' to compare the latest two runs.")
	fmt.Println("Use 'designlint compare --with-run-id <id> <path>' to compare with a specific run.")

	return nil
}

// formatRunSummary formats a run's finding counts into a short string.
func formatRunSummary(run database.Run) string {
	var parts []string
	if run.ErrorCount > 0 {
		parts = append(parts, fmt.Sprintf("E:%d", run.ErrorCount))
	}
	if run.WarningCount > 0 {
		parts = append(parts, fmt.Sprintf("W:%d", run.WarningCount))
	}
	if len(parts) == 0 {
		return "clean"
	}
	return strings.Join(parts, " ")
}

// runComparison performs the actual comparison between validation runs.
func runComparison(ctx context.Context, db *database.HistoryDB, target string, withRunID int64, sinceDate string, jsonOutput, markdownOutput bool) error {
	runs, err := db.ListRuns(ctx, target, compareHistoryLimit)
	if err != nil {
		return fmt.Errorf("failed to get run history: %w", err)
	}

	if len(runs) == 0 {
		return fmt.Errorf("no run history found for %s", target)
	}
	if len(runs) < 2 && withRunID == 0 && sinceDate == "" {
		return fmt.Errorf("at least 2 runs are required for comparison (found %d)", len(runs))
	}

	// Latest run is always the current one.
	current, err := db.GetReport(ctx, runs[0].ID)
	if err != nil {
		return fmt.Errorf("failed to load run %d: %w", runs[0].ID, err)
	}

	var previousID int64
	switch {
	case withRunID > 0:
		previousID = withRunID
	case sinceDate != "":
		parsedDate, err := time.Parse("2006-01-02", sinceDate)
		if err != nil {
			return fmt.Errorf("invalid date format (use YYYY-MM-DD): %w", err)
		}
		run, err := db.FirstRunSince(ctx, target, parsedDate)
		if err != nil {
			if errors.Is(err, database.ErrRunNotFound) {
				return fmt.Errorf("no runs found since %s", sinceDate)
			}
			return fmt.Errorf("failed to find run since %s: %w", sinceDate, err)
		}
		if run.ID == runs[0].ID {
			return fmt.Errorf("only one run found since %s; at least 2 runs are required for comparison", sinceDate)
		}
		previousID = run.ID
	default:
		previousID = runs[1].ID
	}

	previous, err := db.GetReport(ctx, previousID)
	if err != nil {
		if errors.Is(err, database.ErrRunNotFound) {
			return fmt.Errorf("run with ID %d not found", previousID)
		}
		return fmt.Errorf("failed to load run %d: %w", previousID, err)
	}
	if withRunID > 0 && previous.Target != target {
		return fmt.Errorf("run ID %d belongs to %s, not %s", withRunID, previous.Target, target)
	}

	comparison := compareReports(previous, current)

	if jsonOutput {
		return outputComparisonJSON(comparison)
	}
	if markdownOutput {
		return outputComparisonMarkdown(comparison)
	}
	return outputComparisonText(comparison)
}

// ComparisonResult holds the result of comparing two validation runs.
type ComparisonResult struct {
	// Target is the validated path.
	Target string `json:"target"`

	// PreviousRun contains metadata about the previous run.
	PreviousRun RunMetadata `json:"previous_run"`

	// CurrentRun contains metadata about the current run.
	CurrentRun RunMetadata `json:"current_run"`

	// NewFindings contains findings that are new in the current run.
	NewFindings []model.Finding `json:"new_findings,omitempty"`

	// ResolvedFindings contains findings that were in the previous run but
	// not in the current one.
	ResolvedFindings []model.Finding `json:"resolved_findings,omitempty"`

	// UnchangedCount is the number of findings present in both runs.
	UnchangedCount int `json:"unchanged_count"`

	// ScoreChange describes the change in compliance between runs.
	ScoreChange ScoreChange `json:"score_change"`
}

// RunMetadata contains metadata about one run for comparison display.
type RunMetadata struct {
	// ScannedAt is when the run was performed.
	ScannedAt time.Time `json:"scanned_at"`

	// Score is the run's compliance score.
	Score int `json:"score"`

	// TotalFindings is the total number of findings in this run.
	TotalFindings int `json:"total_findings"`

	// ErrorCount is the number of blocking errors.
	ErrorCount int `json:"error_count"`

	// WarningCount is the number of warnings.
	WarningCount int `json:"warning_count"`

	// InfoCount is the number of informational findings.
	InfoCount int `json:"info_count"`
}

// ScoreChange describes the change in compliance between runs.
type ScoreChange struct {
	// Direction is "improved", "regressed", or "unchanged".
	Direction string `json:"direction"`

	// ScoreDelta is the change in compliance score.
	ScoreDelta int `json:"score_delta"`

	// ErrorDelta is the change in blocking error count.
	ErrorDelta int `json:"error_delta"`

	// WarningDelta is the change in warning count.
	WarningDelta int `json:"warning_delta"`
}

// compareReports compares two validation reports and generates a
// comparison result.
func compareReports(previous, current *model.ValidationReport) *ComparisonResult {
	result := &ComparisonResult{
		Target:      current.Target,
		PreviousRun: runMetadata(previous),
		CurrentRun:  runMetadata(current),
	}

	previousFindings := make(map[string]model.Finding)
	currentFindings := make(map[string]model.Finding)
	for _, f := range previous.Findings {
		previousFindings[findingKey(f)] = f
	}
	for _, f := range current.Findings {
		currentFindings[findingKey(f)] = f
	}

	for key, finding := range currentFindings {
		if _, exists := previousFindings[key]; !exists {
			result.NewFindings = append(result.NewFindings, finding)
		}
	}
	for key, finding := range previousFindings {
		if _, exists := currentFindings[key]; !exists {
			result.ResolvedFindings = append(result.ResolvedFindings, finding)
		} else {
			result.UnchangedCount++
		}
	}
	sortFindings(result.NewFindings)
	sortFindings(result.ResolvedFindings)

	result.ScoreChange = calculateScoreChange(result.PreviousRun, result.CurrentRun)
	return result
}

// runMetadata extracts comparison display metadata from a report.
func runMetadata(report *model.ValidationReport) RunMetadata {
	return RunMetadata{
		ScannedAt:     report.ScannedAt,
		Score:         report.Score,
		TotalFindings: len(report.Findings),
		ErrorCount:    report.ErrorCount,
		WarningCount:  report.WarningCount,
		InfoCount:     report.InfoCount,
	}
}

// findingKey generates a unique key for a finding for comparison purposes.
func findingKey(f model.Finding) string {
	return f.Rule + "|" + f.Value + "|" + f.Location()
}

// sortFindings orders findings by key so diff output is stable between runs.
func sortFindings(findings []model.Finding) {
	sort.Slice(findings, func(i, j int) bool {
		return findingKey(findings[i]) < findingKey(findings[j])
	})
}

// calculateScoreChange calculates the change in compliance between runs.
func calculateScoreChange(previous, current RunMetadata) ScoreChange {
	change := ScoreChange{
		ScoreDelta:   current.Score - previous.Score,
		ErrorDelta:   current.ErrorCount - previous.ErrorCount,
		WarningDelta: current.WarningCount - previous.WarningCount,
	}

	switch {
	case change.ScoreDelta > 0:
		change.Direction = directionImproved
	case change.ScoreDelta < 0:
		change.Direction = directionRegressed
	default:
		change.Direction = directionUnchanged
	}
	return change
}

// outputComparisonJSON outputs the comparison result in JSON format.
func outputComparisonJSON(result *ComparisonResult) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// outputComparisonMarkdown outputs the comparison result in Markdown format.
func outputComparisonMarkdown(result *ComparisonResult) error {
	fmt.Printf("# Validation Comparison: %s\n\n", result.Target)

	fmt.Println("## Summary")
	fmt.Printf("\n**Compliance:** %s\n\n", formatDirection(result.ScoreChange.Direction))

	fmt.Println("| Metric | Previous | Current | Change |")
	fmt.Println("|--------|----------|---------|--------|")
	fmt.Printf("| Date | %s | %s | - |\n",
		result.PreviousRun.ScannedAt.Format("2006-01-02 15:04"),
		result.CurrentRun.ScannedAt.Format("2006-01-02 15:04"))
	fmt.Printf("| Score | %d%% | %d%% | %s |\n",
		result.PreviousRun.Score,
		result.CurrentRun.Score,
		formatDelta(result.ScoreChange.ScoreDelta))
	fmt.Printf("| Errors | %d | %d | %s |\n",
		result.PreviousRun.ErrorCount,
		result.CurrentRun.ErrorCount,
		formatDelta(result.ScoreChange.ErrorDelta))
	fmt.Printf("| Warnings | %d | %d | %s |\n",
		result.PreviousRun.WarningCount,
		result.CurrentRun.WarningCount,
		formatDelta(result.ScoreChange.WarningDelta))
	fmt.Printf("| **Total findings** | **%d** | **%d** | **%s** |\n",
		result.PreviousRun.TotalFindings,
		result.CurrentRun.TotalFindings,
		formatDelta(result.CurrentRun.TotalFindings-result.PreviousRun.TotalFindings))

	if len(result.NewFindings) > 0 {
		fmt.Printf("\n## New Findings (%d)\n\n", len(result.NewFindings))
		for _, f := range result.NewFindings {
			fmt.Printf("- **[%s]** %s: %s\n", f.SeverityText, f.Title, f.Value)
			if loc := f.Location(); loc != "" {
				fmt.Printf("  - Location: `%s`\n", loc)
			}
		}
	}

	if len(result.ResolvedFindings) > 0 {
		fmt.Printf("\n## Resolved Findings (%d)\n\n", len(result.ResolvedFindings))
		for _, f := range result.ResolvedFindings {
			fmt.Printf("- ~~**[%s]** %s: %s~~\n", f.SeverityText, f.Title, f.Value)
		}
	}

	if result.UnchangedCount > 0 {
		fmt.Printf("\n---\n\n*%d findings unchanged*\n", result.UnchangedCount)
	}

	return nil
}

// outputComparisonText outputs the comparison result in human-readable
// text format.
func outputComparisonText(result *ComparisonResult) error {
	fmt.Printf("Validation Comparison: %s\n", result.Target)
	fmt.Println(strings.Repeat("=", 60))

	fmt.Printf("\nCompliance: %s\n", formatDirection(result.ScoreChange.Direction))

	fmt.Printf("\nPrevious run: %s (%d%%)\n",
		result.PreviousRun.ScannedAt.Format("2006-01-02 15:04:05"),
		result.PreviousRun.Score)
	fmt.Printf("Current run:  %s (%d%%)\n",
		result.CurrentRun.ScannedAt.Format("2006-01-02 15:04:05"),
		result.CurrentRun.Score)

	fmt.Println("\nFindings Summary:")
	fmt.Printf("  %-10s  %-10s  %-10s  %-10s\n", "Severity", "Previous", "Current", "Change")
	fmt.Println("  " + strings.Repeat("-", 45))
	fmt.Printf("  %-10s  %-10d  %-10d  %-10s\n", "Error",
		result.PreviousRun.ErrorCount, result.CurrentRun.ErrorCount,
		formatDelta(result.ScoreChange.ErrorDelta))
	fmt.Printf("  %-10s  %-10d  %-10d  %-10s\n", "Warning",
		result.PreviousRun.WarningCount, result.CurrentRun.WarningCount,
		formatDelta(result.ScoreChange.WarningDelta))
	fmt.Printf("  %-10s  %-10d  %-10d  %-10s\n", "Info",
		result.PreviousRun.InfoCount, result.CurrentRun.InfoCount,
		formatDelta(result.CurrentRun.InfoCount-result.PreviousRun.InfoCount))
	fmt.Println("  " + strings.Repeat("-", 45))
	fmt.Printf("  %-10s  %-10d  %-10d  %-10s\n", "Total",
		result.PreviousRun.TotalFindings, result.CurrentRun.TotalFindings,
		formatDelta(result.CurrentRun.TotalFindings-result.PreviousRun.TotalFindings))

	if len(result.NewFindings) > 0 {
		fmt.Printf("\nNew Findings (%d):\n", len(result.NewFindings))
		for _, f := range result.NewFindings {
			fmt.Printf("  [+] [%s] %s: %s\n", f.SeverityText, f.Title, f.Value)
			if loc := f.Location(); loc != "" {
				fmt.Printf("      Location: %s\n", loc)
			}
		}
	}

	if len(result.ResolvedFindings) > 0 {
		fmt.Printf("\nResolved Findings (%d):\n", len(result.ResolvedFindings))
		for _, f := range result.ResolvedFindings {
			fmt.Printf("  [-] [%s] %s: %s\n", f.SeverityText, f.Title, f.Value)
		}
	}

	if result.UnchangedCount > 0 {
		fmt.Printf("\nUnchanged: %d findings\n", result.UnchangedCount)
	}

	return nil
}

// formatDirection formats the compliance change direction for display.
func formatDirection(direction string) string {
	switch direction {
	case directionImproved:
		return "IMPROVED (score increased)"
	case directionRegressed:
		return "REGRESSED (score decreased)"
	default:
		return "UNCHANGED"
	}
}

// formatDelta formats a numeric delta with sign for display.
func formatDelta(delta int) string {
	if delta > 0 {
		return "+" + strconv.Itoa(delta)
	} else if delta < 0 {
		return strconv.Itoa(delta)
	}
	return "0"
}
