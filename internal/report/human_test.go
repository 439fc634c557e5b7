package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/uiforge/designlint/internal/model"
)

// failingReport builds a report with one error and one warning.
func failingReport() *model.ValidationReport {
	report := model.NewValidationReport("src")
	report.AddFileResult(&model.FileResult{Path: "src/Hero.tsx"})
	report.AddFinding(model.NewFinding(
		"color/raw-hex", "Raw hex color", "", "#ff0000", "src/Hero.tsx", 12))
	report.AddFinding(model.NewFinding(
		"spacing/off-scale", "Off-scale spacing", "", "mt-13", "src/Hero.tsx", 20))
	report.Finalize()
	return report
}

// passingReport builds a clean report.
func passingReport() *model.ValidationReport {
	report := model.NewValidationReport("src")
	report.AddFileResult(&model.FileResult{Path: "src/Hero.tsx"})
	report.Finalize()
	return report
}

// TestHumanWriterSections tests the fixed section headers and finding lines.
func TestHumanWriterSections(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	w := NewHumanWriter(&buf, WithNoColor(true))
	if _, err := w.Write(failingReport()); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	out := buf.String()

	// These headers are a documented contract; scripts match on them.
	for _, want := range []string{
		"❌ ERRORS (BLOCKING)",
		"⚠️ WARNINGS",
		"[color/raw-hex] src/Hero.tsx:12: Raw hex color (#ff0000)",
		"[spacing/off-scale] src/Hero.tsx:20: Off-scale spacing (mt-13)",
		"87% compliance",
		"FAIL: 1 blocking error(s)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

// TestHumanWriterPass tests the passing verdict and empty sections.
func TestHumanWriterPass(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	w := NewHumanWriter(&buf, WithNoColor(true))
	if _, err := w.Write(passingReport()); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	out := buf.String()

	if !strings.Contains(out, "100% compliance") {
		t.Errorf("output missing the score header:\n%s", out)
	}
	if !strings.Contains(out, "(none)") {
		t.Errorf("empty sections should print (none):\n%s", out)
	}
	if !strings.Contains(out, "PASS\n") {
		t.Errorf("output missing the PASS verdict:\n%s", out)
	}
	if strings.Contains(out, "FAIL") {
		t.Errorf("passing report should not print FAIL:\n%s", out)
	}
}

// TestHumanWriterConsultation tests impact and fix guidance lines.
func TestHumanWriterConsultation(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	w := NewHumanWriter(&buf, WithNoColor(true), WithConsultation(true))
	if _, err := w.Write(failingReport()); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	out := buf.String()

	if !strings.Contains(out, "impact:") {
		t.Errorf("consultation output missing impact lines:\n%s", out)
	}
	if !strings.Contains(out, "fix:") {
		t.Errorf("consultation output missing fix lines:\n%s", out)
	}
}

// TestHumanWriterVerbose tests the per-file score section.
func TestHumanWriterVerbose(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	w := NewHumanWriter(&buf, WithNoColor(true), WithVerbose(true))
	if _, err := w.Write(failingReport()); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	out := buf.String()

	if !strings.Contains(out, "FILES") {
		t.Errorf("verbose output missing the FILES section:\n%s", out)
	}
	if !strings.Contains(out, "src/Hero.tsx (1 error(s), 1 warning(s))") {
		t.Errorf("verbose output missing the per-file line:\n%s", out)
	}
}

// TestHumanWriterStrict tests the strict mode notice.
func TestHumanWriterStrict(t *testing.T) {
	t.Parallel()

	report := failingReport()
	report.Strict = true

	var buf bytes.Buffer
	w := NewHumanWriter(&buf, WithNoColor(true))
	if _, err := w.Write(report); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if !strings.Contains(buf.String(), "strict mode: warnings promoted to errors") {
		t.Errorf("output missing the strict notice:\n%s", buf.String())
	}
}

// TestHumanWriterBelowThreshold tests the threshold failure reason.
func TestHumanWriterBelowThreshold(t *testing.T) {
	t.Parallel()

	report := model.NewValidationReport("src")
	report.AddFileResult(&model.FileResult{Path: "src/Hero.tsx"})
	// Seven warnings with no errors land at 79%, one point under the bar.
	for _, value := range []string{"mt-13", "mt-14", "mt-15", "mt-17", "mt-18", "mt-19", "mt-21"} {
		report.AddFinding(model.NewFinding(
			"spacing/off-scale", "Off-scale spacing", "", value, "src/Hero.tsx", 1))
	}
	report.Finalize()

	var buf bytes.Buffer
	w := NewHumanWriter(&buf, WithNoColor(true))
	if _, err := w.Write(report); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if !strings.Contains(buf.String(), "FAIL: score 79% below threshold 80%") {
		t.Errorf("output missing the threshold reason:\n%s", buf.String())
	}
}
