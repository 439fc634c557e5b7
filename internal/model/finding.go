package model

import "fmt"

// Finding represents a single design contract violation or observation.
type Finding struct {
	// Rule is the rule identifier (e.g. "shadow/forbidden-scale").
	// This maps to the ruleInfoMapping in severity.go.
	Rule string `json:"rule"`

	// Severity is the blocking level.
	Severity Severity `json:"severity"`

	// SeverityText is the human-readable severity.
	SeverityText string `json:"severity_text"`

	// Title is a short description of the finding.
	Title string `json:"title"`

	// Description provides more detail about the finding.
	Description string `json:"description,omitempty"`

	// Impact explains why this finding matters for the design contract.
	Impact string `json:"impact,omitempty"`

	// Recommendation provides guidance on how to address this finding.
	Recommendation string `json:"recommendation,omitempty"`

	// Value is the offending text (class name, hex code, style declaration).
	Value string `json:"value,omitempty"`

	// File is the source file path, relative to the scan root.
	File string `json:"file,omitempty"`

	// Line is the 1-based line number of the violation, 0 if unknown.
	Line int `json:"line,omitempty"`
}

// NewFinding creates a Finding for the given rule with severity, impact and
// recommendation resolved from the central rule metadata.
func NewFinding(ruleID, title, description, value, file string, line int) Finding {
	info := GetRuleInfo(ruleID)
	return Finding{
		Rule:           ruleID,
		Severity:       info.Severity,
		SeverityText:   info.Severity.String(),
		Title:          title,
		Description:    description,
		Impact:         info.Impact,
		Recommendation: info.Recommendation,
		Value:          value,
		File:           file,
		Line:           line,
	}
}

// Location returns the finding position as "file:line", or just the file
// when the line is unknown.
func (f Finding) Location() string {
	if f.Line > 0 {
		return fmt.Sprintf("%s:%d", f.File, f.Line)
	}
	return f.File
}
