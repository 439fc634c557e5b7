package model

import (
	"time"
)

// Score weighting and pass criteria.
//
// The compliance score starts at 100 and loses a fixed amount per finding.
// Blocking errors always fail the run; warnings only fail it once the score
// drops below the threshold.
const (
	// ErrorPenalty is the score deduction per blocking error.
	ErrorPenalty = 10

	// WarningPenalty is the score deduction per warning.
	WarningPenalty = 3

	// DefaultThreshold is the minimum compliance score for a passing run
	// when no blocking errors are present.
	DefaultThreshold = 80
)

// ValidationReport is the main result structure of a validation run.
// It aggregates per-file results and findings for one invocation.
//
// Design decision: We use a single report struct covering both single-file
// and directory scans rather than separate types. A single-file scan is a
// directory scan with one FileResult; serialization and database storage
// stay uniform.
type ValidationReport struct {
	// Target is the file or directory path that was scanned.
	Target string `json:"target"`

	// ScannedAt is the timestamp when the validation was performed.
	ScannedAt time.Time `json:"scanned_at"`

	// Strict indicates warnings were promoted to errors for this run.
	Strict bool `json:"strict"`

	// Threshold is the minimum passing compliance score.
	Threshold int `json:"threshold"`

	// Files contains per-file results in scan order.
	Files []*FileResult `json:"files"`

	// Findings contains all findings across files.
	Findings []Finding `json:"findings,omitempty"`

	// ErrorCount is the number of blocking errors.
	ErrorCount int `json:"error_count"`

	// WarningCount is the number of warnings.
	WarningCount int `json:"warning_count"`

	// InfoCount is the number of informational findings.
	InfoCount int `json:"info_count"`

	// Score is the overall compliance score (0-100).
	Score int `json:"score"`

	// Pass indicates the run met the contract: zero errors and a score at
	// or above the threshold.
	Pass bool `json:"pass"`

	// RulesRun lists the rule identifiers that were evaluated.
	RulesRun []string `json:"rules_run,omitempty"`

	// Error contains any error that aborted the run.
	Error error `json:"-"` // Excluded from JSON (serialize separately)

	// ErrorMessage is the string representation of Error for serialization.
	ErrorMessage string `json:"error,omitempty"`
}

// FileResult contains the outcome of validating one source file.
type FileResult struct {
	// Path is the file path relative to the scan root.
	Path string `json:"path"`

	// Fingerprint is the BLAKE2b content fingerprint, hex encoded.
	// Used by the history database and inline coding approvals.
	Fingerprint string `json:"fingerprint,omitempty"`

	// ErrorCount is the number of blocking errors in this file.
	ErrorCount int `json:"error_count"`

	// WarningCount is the number of warnings in this file.
	WarningCount int `json:"warning_count"`

	// Score is the per-file compliance score (0-100).
	Score int `json:"score"`
}

// NewValidationReport creates a new report for the given target path.
func NewValidationReport(target string) *ValidationReport {
	return &ValidationReport{
		Target:    target,
		ScannedAt: time.Now(),
		Threshold: DefaultThreshold,
		Files:     make([]*FileResult, 0),
	}
}

// AddFinding adds a finding to the report, skipping exact duplicates.
// Severity counters are kept in sync.
func (r *ValidationReport) AddFinding(finding Finding) {
	for _, f := range r.Findings {
		if f.Rule == finding.Rule && f.Value == finding.Value &&
			f.File == finding.File && f.Line == finding.Line {
			return
		}
	}

	if r.Strict && finding.Severity == SeverityWarning {
		finding.Severity = SeverityError
		finding.SeverityText = SeverityError.String()
	}

	r.Findings = append(r.Findings, finding)

	switch finding.Severity {
	case SeverityError:
		r.ErrorCount++
	case SeverityWarning:
		r.WarningCount++
	case SeverityInfo:
		r.InfoCount++
	}
}

// AddFileResult appends a per-file result.
func (r *ValidationReport) AddFileResult(fr *FileResult) {
	r.Files = append(r.Files, fr)
}

// Finalize computes per-file and overall scores and the pass flag.
// It must be called after all findings have been added.
func (r *ValidationReport) Finalize() {
	for _, fr := range r.Files {
		fr.ErrorCount = 0
		fr.WarningCount = 0
		for _, f := range r.Findings {
			if f.File != fr.Path {
				continue
			}
			switch f.Severity {
			case SeverityError:
				fr.ErrorCount++
			case SeverityWarning:
				fr.WarningCount++
			case SeverityInfo:
				// Informational findings never affect the score.
			}
		}
		fr.Score = ComplianceScore(fr.ErrorCount, fr.WarningCount)
	}

	r.Score = ComplianceScore(r.ErrorCount, r.WarningCount)
	r.Pass = r.ErrorCount == 0 && r.Score >= r.Threshold
}

// FindingsBySeverity returns findings filtered by severity.
func (r *ValidationReport) FindingsBySeverity(severity Severity) []Finding {
	var result []Finding
	for _, f := range r.Findings {
		if f.Severity == severity {
			result = append(result, f)
		}
	}
	return result
}

// FindingsForFile returns findings for one file path.
func (r *ValidationReport) FindingsForFile(path string) []Finding {
	var result []Finding
	for _, f := range r.Findings {
		if f.File == path {
			result = append(result, f)
		}
	}
	return result
}

// TotalFindings returns the total number of findings.
func (r *ValidationReport) TotalFindings() int {
	return len(r.Findings)
}

// HasFindings returns true if there are any findings.
func (r *ValidationReport) HasFindings() bool {
	return len(r.Findings) > 0
}

// ComplianceScore computes the weighted compliance score for the given
// error and warning counts, clamped to the 0-100 range.
func ComplianceScore(errors, warnings int) int {
	score := 100 - errors*ErrorPenalty - warnings*WarningPenalty
	if score < 0 {
		return 0
	}
	return score
}
