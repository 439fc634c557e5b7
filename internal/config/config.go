package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"

	"github.com/uiforge/designlint/internal/model"
)

// Default configuration values.
// These mirror the documented enforcement policy for the marketing site.
const (
	// DefaultThreshold is the minimum passing compliance score. The policy
	// tolerates warnings while the score stays at or above 80%.
	DefaultThreshold = model.DefaultThreshold

	// DefaultConcurrency is the number of files validated in parallel.
	// Rule evaluation is CPU-light string matching; eight keeps directory
	// scans fast without starving the filesystem on cold caches.
	DefaultConcurrency = 8

	// DefaultServerURL is where the dev server under audit is assumed to
	// be reachable. The enforcement policy pins the local Next.js port.
	DefaultServerURL = "http://127.0.0.1:3000"

	// DefaultPageTimeout bounds each live page fetch. Local dev servers
	// respond in milliseconds; five seconds covers cold compiles.
	DefaultPageTimeout = 5 * time.Second

	// DefaultSnapshotTimeout bounds a full screenshot capture including
	// headless browser startup.
	DefaultSnapshotTimeout = 60 * time.Second

	// DefaultMaxFileSize limits how large a source file the scanner reads.
	// 2MB is generous for hand-written UI sources; anything larger is
	// generated output the contract does not govern.
	DefaultMaxFileSize = 2 * 1024 * 1024

	// DefaultWatchDebounce coalesces rapid editor save bursts into one
	// validation run.
	DefaultWatchDebounce = 300 * time.Millisecond

	// AppName is the application name used for XDG directory paths.
	AppName = "designlint"
)

// Config holds all runtime options for designlint.
//
// Design decision: We use a single flat struct instead of nested structs
// (e.g. ScanConfig, ReportConfig) for simplicity. The number of options is
// manageable, and nesting would add complexity without significant benefit.
type Config struct {
	// Target is the file or directory to validate.
	Target string

	// Strict promotes warnings to blocking errors.
	Strict bool

	// Threshold is the minimum passing compliance score (0-100).
	Threshold int

	// Concurrency is the number of files validated in parallel.
	Concurrency int

	// IgnorePatterns are glob patterns excluded from the scan.
	IgnorePatterns []string

	// DisabledRules are rule IDs excluded from evaluation.
	DisabledRules []string

	// MaxFileSize limits the maximum source file size in bytes.
	MaxFileSize int64

	// Tokens is the active design token set.
	Tokens *model.TokenSet

	// === Inline coding policy ===

	// InlineEnforcement promotes inline style findings to blocking errors,
	// overriding recorded approvals.
	InlineEnforcement bool

	// InlineApproval records an approval for the scanned files' current
	// content instead of failing on their inline styles.
	InlineApproval bool

	// === Output ===

	// JSON prints the report as JSON to stdout.
	JSON bool

	// Markdown prints the report as Markdown to stdout.
	Markdown bool

	// ExportPath writes a JSON report file in addition to stdout output.
	ExportPath string

	// Consultation includes impact and remediation guidance per finding.
	Consultation bool

	// NoColor disables ANSI colors in human output.
	NoColor bool

	// === Live server audit ===

	// ServerURL is the base URL of the local dev server under audit.
	ServerURL string

	// Routes are the server paths audited by the page and snapshot
	// commands, e.g. "/", "/pricing".
	Routes []string

	// RequiredCopy are strings that must appear in the rendered homepage.
	RequiredCopy []string

	// PageTimeout bounds each live page fetch.
	PageTimeout time.Duration

	// SnapshotDir is where screenshot files are written.
	SnapshotDir string

	// SnapshotTimeout bounds a screenshot capture run.
	SnapshotTimeout time.Duration

	// === Misc ===

	// WatchDebounce coalesces file change events in watch mode.
	WatchDebounce time.Duration

	// Verbose enables debug logging.
	Verbose bool
}

// NewConfig returns a Config populated with defaults.
func NewConfig() *Config {
	return &Config{
		Threshold:       DefaultThreshold,
		Concurrency:     DefaultConcurrency,
		MaxFileSize:     DefaultMaxFileSize,
		Tokens:          model.DefaultTokenSet(),
		ServerURL:       DefaultServerURL,
		Routes:          []string{"/"},
		PageTimeout:     DefaultPageTimeout,
		SnapshotDir:     "screenshots",
		SnapshotTimeout: DefaultSnapshotTimeout,
		WatchDebounce:   DefaultWatchDebounce,
	}
}

// Validate checks the configuration for contradictions and invalid values.
func (c *Config) Validate() error {
	if c.Target == "" {
		return ErrNoTarget
	}
	if c.Threshold < 0 || c.Threshold > 100 {
		return ErrInvalidThreshold
	}
	if c.Concurrency <= 0 {
		return ErrInvalidConcurrency
	}
	if c.JSON && c.Markdown {
		return ErrConflictingReportFormats
	}
	if c.InlineEnforcement && c.InlineApproval {
		return ErrConflictingInlinePolicy
	}
	if c.MaxFileSize < 0 {
		return ErrInvalidMaxFileSize
	}
	return nil
}

// XDGDataDir returns the XDG data directory for designlint.
// This follows the XDG Base Directory Specification.
// On Linux: ~/.local/share/designlint
// On macOS: ~/Library/Application Support/designlint
// On Windows: %LOCALAPPDATA%\designlint
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for designlint.
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}
