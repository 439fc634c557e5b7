package main

import (
	"testing"
	"time"

	"github.com/uiforge/designlint/internal/database"
	"github.com/uiforge/designlint/internal/model"
)

// TestNewCompareCmd tests the compare command creation.
func TestNewCompareCmd(t *testing.T) {
	t.Parallel()

	cmd := NewCompareCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "compare [path]" {
			t.Errorf("expected use 'compare [path]', got %q", cmd.Use)
		}
	})

	t.Run("has expected flags", func(t *testing.T) {
		t.Parallel()
		shorthands := map[string]string{
			"list":         "l",
			"list-targets": "L",
			"with-run-id":  "i",
			"since":        "s",
			"json":         "j",
			"markdown":     "m",
		}
		for name, shorthand := range shorthands {
			flag := cmd.Flags().Lookup(name)
			if flag == nil {
				t.Errorf("expected %s flag", name)
				continue
			}
			if flag.Shorthand != shorthand {
				t.Errorf("expected %s shorthand %q, got %q", name, shorthand, flag.Shorthand)
			}
		}
	})
}

// compareReport builds a finalized report with the given finding values.
func compareReport(target string, values ...string) *model.ValidationReport {
	report := model.NewValidationReport(target)
	for _, value := range values {
		report.AddFinding(model.NewFinding(
			"color/raw-hex", "Raw hex color", "", value, "src/Hero.tsx", 1))
	}
	report.Finalize()
	return report
}

// TestCompareReports tests the run diffing logic.
func TestCompareReports(t *testing.T) {
	t.Parallel()

	t.Run("detects new and resolved findings", func(t *testing.T) {
		t.Parallel()
		previous := compareReport("src", "#aaa111", "#bbb222")
		current := compareReport("src", "#bbb222", "#ccc333")

		result := compareReports(previous, current)

		if len(result.NewFindings) != 1 || result.NewFindings[0].Value != "#ccc333" {
			t.Errorf("NewFindings = %v, expected one for #ccc333", result.NewFindings)
		}
		if len(result.ResolvedFindings) != 1 || result.ResolvedFindings[0].Value != "#aaa111" {
			t.Errorf("ResolvedFindings = %v, expected one for #aaa111", result.ResolvedFindings)
		}
		if result.UnchangedCount != 1 {
			t.Errorf("UnchangedCount = %d, expected 1", result.UnchangedCount)
		}
	})

	t.Run("diff entries are ordered by key", func(t *testing.T) {
		t.Parallel()
		previous := compareReport("src", "#fff000", "#eee000", "#ddd000")
		current := compareReport("src", "#ccc000", "#bbb000", "#aaa000")

		result := compareReports(previous, current)

		if len(result.NewFindings) != 3 || len(result.ResolvedFindings) != 3 {
			t.Fatalf("got %d new and %d resolved findings, expected 3 each",
				len(result.NewFindings), len(result.ResolvedFindings))
		}
		wantNew := []string{"#aaa000", "#bbb000", "#ccc000"}
		for i, want := range wantNew {
			if result.NewFindings[i].Value != want {
				t.Errorf("NewFindings[%d].Value = %q, expected %q", i, result.NewFindings[i].Value, want)
			}
		}
		wantResolved := []string{"#ddd000", "#eee000", "#fff000"}
		for i, want := range wantResolved {
			if result.ResolvedFindings[i].Value != want {
				t.Errorf("ResolvedFindings[%d].Value = %q, expected %q", i, result.ResolvedFindings[i].Value, want)
			}
		}
	})

	t.Run("identical runs are unchanged", func(t *testing.T) {
		t.Parallel()
		previous := compareReport("src", "#aaa111")
		current := compareReport("src", "#aaa111")

		result := compareReports(previous, current)

		if len(result.NewFindings) != 0 || len(result.ResolvedFindings) != 0 {
			t.Error("identical runs should produce no diff entries")
		}
		if result.ScoreChange.Direction != directionUnchanged {
			t.Errorf("Direction = %q, expected unchanged", result.ScoreChange.Direction)
		}
	})

	t.Run("improved run", func(t *testing.T) {
		t.Parallel()
		previous := compareReport("src", "#aaa111", "#bbb222")
		current := compareReport("src")

		result := compareReports(previous, current)

		if result.ScoreChange.Direction != directionImproved {
			t.Errorf("Direction = %q, expected improved", result.ScoreChange.Direction)
		}
		if result.ScoreChange.ScoreDelta != 20 {
			t.Errorf("ScoreDelta = %d, expected 20", result.ScoreChange.ScoreDelta)
		}
		if result.ScoreChange.ErrorDelta != -2 {
			t.Errorf("ErrorDelta = %d, expected -2", result.ScoreChange.ErrorDelta)
		}
	})

	t.Run("regressed run", func(t *testing.T) {
		t.Parallel()
		previous := compareReport("src")
		current := compareReport("src", "#aaa111")

		result := compareReports(previous, current)

		if result.ScoreChange.Direction != directionRegressed {
			t.Errorf("Direction = %q, expected regressed", result.ScoreChange.Direction)
		}
	})
}

// TestFindingKey tests the comparison key.
func TestFindingKey(t *testing.T) {
	t.Parallel()

	a := model.NewFinding("color/raw-hex", "t", "", "#fff", "a.tsx", 3)
	b := model.NewFinding("color/raw-hex", "t", "", "#fff", "a.tsx", 3)
	c := model.NewFinding("color/raw-hex", "t", "", "#fff", "a.tsx", 4)

	if findingKey(a) != findingKey(b) {
		t.Error("identical findings should share a key")
	}
	if findingKey(a) == findingKey(c) {
		t.Error("findings on different lines should not share a key")
	}
}

// TestFormatRunSummary tests the short run summary.
func TestFormatRunSummary(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		run  database.Run
		want string
	}{
		{name: "clean", run: database.Run{}, want: "clean"},
		{name: "errors only", run: database.Run{ErrorCount: 3}, want: "E:3"},
		{name: "warnings only", run: database.Run{WarningCount: 2}, want: "W:2"},
		{name: "both", run: database.Run{ErrorCount: 1, WarningCount: 4}, want: "E:1 W:4"},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := formatRunSummary(tc.run); got != tc.want {
				t.Errorf("formatRunSummary() = %q, expected %q", got, tc.want)
			}
		})
	}
}

// TestFormatDelta tests delta formatting with signs.
func TestFormatDelta(t *testing.T) {
	t.Parallel()

	tests := []struct {
		delta int
		want  string
	}{
		{5, "+5"},
		{-3, "-3"},
		{0, "0"},
	}
	for _, tc := range tests {
		tc := tc
		if got := formatDelta(tc.delta); got != tc.want {
			t.Errorf("formatDelta(%d) = %q, expected %q", tc.delta, got, tc.want)
		}
	}
}

// TestFormatDirection tests direction display strings.
func TestFormatDirection(t *testing.T) {
	t.Parallel()

	if got := formatDirection(directionImproved); got != "IMPROVED (score increased)" {
		t.Errorf("formatDirection(improved) = %q", got)
	}
	if got := formatDirection(directionRegressed); got != "REGRESSED (score decreased)" {
		t.Errorf("formatDirection(regressed) = %q", got)
	}
	if got := formatDirection(directionUnchanged); got != "UNCHANGED" {
		t.Errorf("formatDirection(unchanged) = %q", got)
	}
}

// TestRunMetadata tests report metadata extraction.
func TestRunMetadata(t *testing.T) {
	t.Parallel()

	report := compareReport("src", "#aaa111")
	report.ScannedAt = time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	meta := runMetadata(report)
	if meta.Score != 90 || meta.ErrorCount != 1 || meta.TotalFindings != 1 {
		t.Errorf("runMetadata() = %+v, expected score 90 with 1 error", meta)
	}
	if !meta.ScannedAt.Equal(report.ScannedAt) {
		t.Error("ScannedAt should carry over")
	}
}

// TestCompareRequiresTarget tests the argument check.
func TestCompareRequiresTarget(t *testing.T) {
	t.Parallel()

	root := NewRootCmd()
	root.SetArgs([]string{"compare"})

	if err := root.Execute(); err == nil {
		t.Error("expected error when no target and no --list-targets")
	}
}
