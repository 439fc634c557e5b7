package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages.
var (
	// ErrNoTarget is returned when no file or directory to validate is specified.
	ErrNoTarget = errors.New("no target specified: provide a file or directory path")

	// ErrInvalidThreshold is returned when the compliance threshold is
	// outside the 0-100 range.
	ErrInvalidThreshold = errors.New("invalid threshold: must be between 0 and 100")

	// ErrInvalidConcurrency is returned when the concurrency is not positive.
	// Zero concurrency would mean no files get validated at all.
	ErrInvalidConcurrency = errors.New("invalid concurrency: must be positive")

	// ErrConflictingReportFormats is returned when both --json and
	// --markdown are specified. Only one output format can be used at a time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrConflictingInlinePolicy is returned when enforcement and approval
	// are requested together; approving styles while enforcing them is
	// contradictory.
	ErrConflictingInlinePolicy = errors.New("conflicting inline policy: --inline-coding-enforcement and --inline-coding-approval cannot be used together")

	// ErrInvalidMaxFileSize is returned when the max file size is negative.
	// Use 0 to fall back to the default limit.
	ErrInvalidMaxFileSize = errors.New("invalid max file size: must be non-negative")
)
