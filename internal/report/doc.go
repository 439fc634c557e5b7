// Package report renders validation reports in multiple formats.
//
// The human writer produces the terminal format the enforcement policy
// documents: a header line with the target and compliance percentage,
// followed by an "❌ ERRORS (BLOCKING)" section and a "⚠️ WARNINGS"
// section. JSON output serves --export and tool integration; Markdown
// output is for sharing in reviews.
package report
