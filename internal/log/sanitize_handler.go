package log

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// sensitiveKeys contains attribute keys that should always be masked.
// These keys commonly carry credentials inherited from CI environments.
var sensitiveKeys = map[string]bool{
	"authorization": true,
	"cookie":        true,
	"password":      true,
	"secret":        true,
	"token":         true,
	"api_key":       true,
	"apikey":        true,
	"api-key":       true,
	"access_token":  true,
	"github_token":  true,
	"npm_token":     true,
	"credential":    true,
	"credentials":   true,
	"auth":          true,
}

// sensitivePatterns contains regex patterns that indicate credential values.
// Values matching these patterns are masked regardless of key name.
var sensitivePatterns = []*regexp.Regexp{
	// JWT tokens
	regexp.MustCompile(`^eyJ[A-Za-z0-9_-]*\.eyJ[A-Za-z0-9_-]*\.[A-Za-z0-9_-]*$`),

	// Bearer tokens
	regexp.MustCompile(`(?i)^bearer\s+.+`),

	// GitHub tokens
	regexp.MustCompile(`^gh[pousr]_[A-Za-z0-9]{20,}$`),

	// npm tokens
	regexp.MustCompile(`^npm_[A-Za-z0-9]{30,}$`),

	// AWS access keys
	regexp.MustCompile(`^AKIA[0-9A-Z]{16}$`),
}

// MaskValue is the string used to replace masked values.
const MaskValue = "***REDACTED***"

// SanitizeHandler wraps an slog.Handler to make lint logs safe to share.
// It masks credential-looking attribute values and relativizes absolute
// paths under the working directory before passing records on.
//
// Design decision: We use a handler wrapper rather than a custom logger
// because:
//  1. It integrates seamlessly with standard slog APIs
//  2. It works with any underlying handler (text, JSON, etc.)
//  3. Packages keep logging through plain *slog.Logger values
type SanitizeHandler struct {
	// handler is the underlying slog handler that receives sanitized records.
	handler slog.Handler

	// workdir is the absolute working directory used for path rewriting.
	workdir string
}

// NewSanitizeHandler creates a SanitizeHandler wrapping the given handler.
// If handler is nil, slog.Default().Handler() is used.
func NewSanitizeHandler(handler slog.Handler) *SanitizeHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	wd, err := os.Getwd()
	if err != nil {
		wd = ""
	}
	return &SanitizeHandler{handler: handler, workdir: wd}
}

// Enabled reports whether the handler handles records at the given level.
func (h *SanitizeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle sanitizes the record's attributes and passes it to the underlying
// handler.
func (h *SanitizeHandler) Handle(ctx context.Context, r slog.Record) error {
	sanitized := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)
	r.Attrs(func(a slog.Attr) bool {
		sanitized.AddAttrs(h.sanitizeAttr(a))
		return true
	})
	return h.handler.Handle(ctx, sanitized)
}

// WithAttrs returns a new SanitizeHandler whose underlying handler has the
// sanitized attributes attached.
func (h *SanitizeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	sanitized := make([]slog.Attr, 0, len(attrs))
	for _, a := range attrs {
		sanitized = append(sanitized, h.sanitizeAttr(a))
	}
	return &SanitizeHandler{handler: h.handler.WithAttrs(sanitized), workdir: h.workdir}
}

// WithGroup returns a new SanitizeHandler with the given group name.
func (h *SanitizeHandler) WithGroup(name string) slog.Handler {
	return &SanitizeHandler{handler: h.handler.WithGroup(name), workdir: h.workdir}
}

// sanitizeAttr masks or rewrites a single attribute.
func (h *SanitizeHandler) sanitizeAttr(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindGroup {
		members := a.Value.Group()
		sanitized := make([]any, 0, len(members))
		for _, m := range members {
			sanitized = append(sanitized, h.sanitizeAttr(m))
		}
		return slog.Group(a.Key, sanitized...)
	}

	if sensitiveKeys[strings.ToLower(a.Key)] {
		return slog.String(a.Key, MaskValue)
	}

	if a.Value.Kind() == slog.KindString {
		v := a.Value.String()
		for _, pattern := range sensitivePatterns {
			if pattern.MatchString(v) {
				return slog.String(a.Key, MaskValue)
			}
		}
		if rewritten := h.relativize(v); rewritten != v {
			return slog.String(a.Key, rewritten)
		}
	}
	return a
}

// relativize rewrites an absolute path under the working directory to its
// relative form. Other values pass through unchanged.
func (h *SanitizeHandler) relativize(v string) string {
	if h.workdir == "" || !filepath.IsAbs(v) {
		return v
	}
	rel, err := filepath.Rel(h.workdir, v)
	if err != nil || strings.HasPrefix(rel, "..") {
		return v
	}
	return rel
}
