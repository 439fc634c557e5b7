package report

import (
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/uiforge/designlint/internal/model"
)

// MarkdownWriter outputs reports in Markdown format.
// This format is designed for sharing in design reviews and pull requests.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter

	titleCaser cases.Caser
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
		titleCaser: cases.Title(language.English),
	}
}

// Write outputs the report in Markdown format.
func (w *MarkdownWriter) Write(report *model.ValidationReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)
	w.writeSummary(md, report)
	w.writeFindings(md, report, model.SeverityError)
	w.writeFindings(md, report, model.SeverityWarning)
	w.writeFiles(md, report)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the report header with run information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.ValidationReport) {
	md.H1("Design Validation Report")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Target", "`" + report.Target + "`"},
			{"Scanned", report.ScannedAt.Format("2006-01-02 15:04:05 MST")},
			{"Compliance", strconv.Itoa(report.Score) + "%"},
			{"Threshold", strconv.Itoa(report.Threshold) + "%"},
			{"Verdict", w.verdictText(report)},
		},
	})
	md.PlainText("")
}

// verdictText returns the verdict cell based on report state.
func (w *MarkdownWriter) verdictText(report *model.ValidationReport) string {
	if report.ErrorMessage != "" {
		return "❌ Error - " + report.ErrorMessage
	}
	if report.Pass {
		return "✅ Pass"
	}
	return "❌ Fail"
}

// writeSummary writes the severity summary section.
func (w *MarkdownWriter) writeSummary(md *markdown.Markdown, report *model.ValidationReport) {
	md.H2("Summary")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Severity", "Count"},
		Rows: [][]string{
			{"🔴 Errors (blocking)", strconv.Itoa(report.ErrorCount)},
			{"🟡 Warnings", strconv.Itoa(report.WarningCount)},
			{"⚪ Info", strconv.Itoa(report.InfoCount)},
			{"**Total**", "**" + strconv.Itoa(report.TotalFindings()) + "**"},
		},
	})
	md.PlainText("")
}

// writeFindings writes one severity's findings as a table.
func (w *MarkdownWriter) writeFindings(md *markdown.Markdown, report *model.ValidationReport, severity model.Severity) {
	findings := report.FindingsBySeverity(severity)
	md.H2(w.titleCaser.String(strings.ToLower(severity.String())) + "s")
	md.PlainText("")
	if len(findings) == 0 {
		md.PlainText("None.")
		md.PlainText("")
		return
	}

	rows := make([][]string, 0, len(findings))
	for _, f := range findings {
		value := f.Value
		if value != "" {
			value = "`" + value + "`"
		}
		rows = append(rows, []string{
			"`" + f.Rule + "`",
			f.Location(),
			f.Title,
			value,
		})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Rule", "Location", "Finding", "Value"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeFiles writes the per-file compliance table.
func (w *MarkdownWriter) writeFiles(md *markdown.Markdown, report *model.ValidationReport) {
	if len(report.Files) == 0 {
		return
	}
	md.H2("Files")
	md.PlainText("")
	rows := make([][]string, 0, len(report.Files))
	for _, fr := range report.Files {
		rows = append(rows, []string{
			"`" + fr.Path + "`",
			strconv.Itoa(fr.Score) + "%",
			strconv.Itoa(fr.ErrorCount),
			strconv.Itoa(fr.WarningCount),
		})
	}
	md.Table(markdown.TableSet{
		Header: []string{"File", "Score", "Errors", "Warnings"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("Generated by designlint.")
}
