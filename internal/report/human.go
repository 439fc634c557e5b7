package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/uiforge/designlint/internal/model"
)

// Section headers are part of the documented enforcement contract; CI
// scripts grep for them. Do not reword.
const (
	errorsHeader   = "❌ ERRORS (BLOCKING)"
	warningsHeader = "⚠️ WARNINGS"
)

// HumanWriter outputs the terminal report format.
type HumanWriter struct {
	baseWriter

	// consultation includes impact and remediation guidance per finding.
	consultation bool

	// noColor disables ANSI colors.
	noColor bool

	// verbose includes informational findings and per-file scores.
	verbose bool
}

// HumanWriterOption configures a HumanWriter.
type HumanWriterOption func(*HumanWriter)

// WithConsultation includes impact and remediation guidance per finding.
func WithConsultation(on bool) HumanWriterOption {
	return func(w *HumanWriter) {
		w.consultation = on
	}
}

// WithNoColor disables ANSI colors in the output.
func WithNoColor(on bool) HumanWriterOption {
	return func(w *HumanWriter) {
		w.noColor = on
	}
}

// WithVerbose includes informational findings and per-file scores.
func WithVerbose(on bool) HumanWriterOption {
	return func(w *HumanWriter) {
		w.verbose = on
	}
}

// NewHumanWriter creates a HumanWriter that outputs to the given writer.
func NewHumanWriter(output io.Writer, opts ...HumanWriterOption) *HumanWriter {
	w := &HumanWriter{
		baseWriter: newBaseWriter(output),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write outputs the report in the documented terminal format.
func (w *HumanWriter) Write(report *model.ValidationReport) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, report)
	w.writeSection(&sb, errorsHeader, report.FindingsBySeverity(model.SeverityError))
	w.writeSection(&sb, warningsHeader, report.FindingsBySeverity(model.SeverityWarning))
	if w.verbose {
		w.writeFileScores(&sb, report)
	}
	w.writeVerdict(&sb, report)

	return fmt.Fprint(w.output, sb.String())
}

// writeHeader writes the target line with the compliance percentage.
func (w *HumanWriter) writeHeader(sb *strings.Builder, report *model.ValidationReport) {
	score := w.paint(fmt.Sprintf("%d%%", report.Score), w.scoreColor(report))
	fmt.Fprintf(sb, "%s: %s compliance (%d file(s), %d error(s), %d warning(s))\n",
		report.Target, score, len(report.Files), report.ErrorCount, report.WarningCount)
	if report.Strict {
		sb.WriteString("strict mode: warnings promoted to errors\n")
	}
	sb.WriteString("\n")
}

// writeSection writes one severity section with its findings.
func (w *HumanWriter) writeSection(sb *strings.Builder, header string, findings []model.Finding) {
	sb.WriteString(header + "\n")
	if len(findings) == 0 {
		sb.WriteString("  (none)\n\n")
		return
	}
	for _, f := range findings {
		location := f.Location()
		if location == "" {
			location = "-"
		}
		line := fmt.Sprintf("  [%s] %s: %s", f.Rule, location, f.Title)
		if f.Value != "" {
			line += fmt.Sprintf(" (%s)", f.Value)
		}
		sb.WriteString(line + "\n")

		if w.consultation {
			if f.Impact != "" {
				fmt.Fprintf(sb, "      impact: %s\n", f.Impact)
			}
			if f.Recommendation != "" {
				fmt.Fprintf(sb, "      fix:    %s\n", f.Recommendation)
			}
		}
	}
	sb.WriteString("\n")
}

// writeFileScores writes per-file compliance lines.
func (w *HumanWriter) writeFileScores(sb *strings.Builder, report *model.ValidationReport) {
	sb.WriteString("FILES\n")
	for _, fr := range report.Files {
		fmt.Fprintf(sb, "  %3d%%  %s (%d error(s), %d warning(s))\n",
			fr.Score, fr.Path, fr.ErrorCount, fr.WarningCount)
	}
	sb.WriteString("\n")
}

// writeVerdict writes the final pass/fail line.
func (w *HumanWriter) writeVerdict(sb *strings.Builder, report *model.ValidationReport) {
	if report.Pass {
		sb.WriteString(w.paint("PASS", color.FgGreen) + "\n")
		return
	}
	reason := fmt.Sprintf("%d blocking error(s)", report.ErrorCount)
	if report.ErrorCount == 0 {
		reason = fmt.Sprintf("score %d%% below threshold %d%%", report.Score, report.Threshold)
	}
	fmt.Fprintf(sb, "%s: %s\n", w.paint("FAIL", color.FgRed), reason)
}

// scoreColor picks the header color for the compliance score.
func (w *HumanWriter) scoreColor(report *model.ValidationReport) color.Attribute {
	switch {
	case report.Pass:
		return color.FgGreen
	case report.ErrorCount > 0:
		return color.FgRed
	default:
		return color.FgYellow
	}
}

// paint colorizes a string unless colors are disabled.
func (w *HumanWriter) paint(s string, attr color.Attribute) string {
	if w.noColor {
		return s
	}
	return color.New(attr).Sprint(s)
}
