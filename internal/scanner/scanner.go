package scanner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/uiforge/designlint/internal/model"
)

// ErrNoSources is returned when the target contains no scannable files.
var ErrNoSources = errors.New("no scannable source files found")

// skipDirs are directory names never descended into.
// These hold build output or third-party code that the design contract
// does not govern.
var skipDirs = map[string]bool{
	"node_modules": true,
	".next":        true,
	".git":         true,
	"dist":         true,
	"build":        true,
	"coverage":     true,
}

// Scanner discovers and parses UI source files under a root path.
type Scanner struct {
	// root is the file or directory to scan.
	root string

	// ignorePatterns are glob patterns (matched against the relative path)
	// excluded from the scan.
	ignorePatterns []string

	// maxFileSize limits how large a file the scanner will read.
	maxFileSize int64

	// logger is used for per-file debug logging.
	logger *slog.Logger
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithIgnorePatterns sets glob patterns to exclude from the scan.
func WithIgnorePatterns(patterns []string) Option {
	return func(s *Scanner) {
		s.ignorePatterns = patterns
	}
}

// WithMaxFileSize limits the maximum file size in bytes.
func WithMaxFileSize(n int64) Option {
	return func(s *Scanner) {
		if n > 0 {
			s.maxFileSize = n
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scanner) {
		s.logger = logger
	}
}

// New creates a Scanner for the given root path.
func New(root string, opts ...Option) *Scanner {
	s := &Scanner{
		root:        root,
		maxFileSize: 2 * 1024 * 1024, // generated bundles are not design sources
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// Scan walks the root and returns parsed source files in path order.
// Returns ErrNoSources if nothing scannable was found.
func (s *Scanner) Scan(ctx context.Context) ([]*model.SourceFile, error) {
	info, err := os.Stat(s.root)
	if err != nil {
		return nil, fmt.Errorf("failed to stat scan target: %w", err)
	}

	var paths []string
	if info.IsDir() {
		paths, err = s.discover(ctx)
		if err != nil {
			return nil, err
		}
	} else {
		if KindOf(s.root) == model.KindUnknown {
			return nil, fmt.Errorf("%w: %s", ErrNoSources, s.root)
		}
		paths = []string{s.root}
	}

	if len(paths) == 0 {
		return nil, fmt.Errorf("%w under %s", ErrNoSources, s.root)
	}

	files := make([]*model.SourceFile, 0, len(paths))
	for _, p := range paths {
		select {
		case <-ctx.Done():
			return files, ctx.Err()
		default:
		}

		sf, err := s.ParseFile(p)
		if err != nil {
			s.logger.Warn("skipping unreadable file", "path", p, "error", err)
			continue
		}
		files = append(files, sf)
	}
	return files, nil
}

// discover collects scannable file paths under the root directory.
func (s *Scanner) discover(ctx context.Context) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if d.IsDir() {
			if skipDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if KindOf(path) == model.KindUnknown {
			return nil
		}
		rel := s.relPath(path)
		for _, pattern := range s.ignorePatterns {
			if ok, _ := filepath.Match(pattern, rel); ok {
				s.logger.Debug("ignoring file", "path", rel, "pattern", pattern)
				return nil
			}
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", s.root, err)
	}
	return paths, nil
}

// ParseFile reads and parses a single file into a SourceFile.
func (s *Scanner) ParseFile(path string) (*model.SourceFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if s.maxFileSize > 0 && info.Size() > s.maxFileSize {
		return nil, fmt.Errorf("file exceeds size limit (%d bytes): %s", s.maxFileSize, path)
	}

	data, err := os.ReadFile(path) //nolint:gosec // scan target paths are user-provided by design
	if err != nil {
		return nil, err
	}

	sf := &model.SourceFile{
		Path:    s.relPath(path),
		Kind:    KindOf(path),
		Content: string(data),
	}

	switch sf.Kind {
	case model.KindHTML:
		parseHTML(sf)
	case model.KindJSX:
		parseJSX(sf)
	case model.KindCSS:
		parseCSS(sf)
	case model.KindUnknown:
		// Leave the file unparsed; rules see only raw content.
	}

	sf.HexColors = extractHexLiterals(sf.Content)
	return sf, nil
}

// relPath returns path relative to the scan root, falling back to the
// cleaned path when it is outside the root.
func (s *Scanner) relPath(path string) string {
	base := s.root
	if info, err := os.Stat(s.root); err == nil && !info.IsDir() {
		base = filepath.Dir(s.root)
	}
	rel, err := filepath.Rel(base, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return filepath.Clean(path)
	}
	return filepath.ToSlash(rel)
}

// KindOf classifies a path by extension.
func KindOf(path string) model.FileKind {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jsx", ".tsx":
		return model.KindJSX
	case ".html", ".htm":
		return model.KindHTML
	case ".css":
		return model.KindCSS
	default:
		return model.KindUnknown
	}
}
