package config

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/uiforge/designlint/internal/model"
)

// DefaultConfigFile is the default project configuration file name.
const DefaultConfigFile = ".designlint.yaml"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File represents the structure of the .designlint.yaml project file.
type File struct {
	// Threshold overrides the minimum passing compliance score.
	Threshold int `yaml:"threshold,omitempty"`

	// Ignore are glob patterns excluded from the scan.
	Ignore []string `yaml:"ignore,omitempty"`

	// DisabledRules are rule IDs excluded from evaluation.
	DisabledRules []string `yaml:"disabledRules,omitempty"`

	// Tokens overrides sections of the built-in design token set.
	Tokens *model.TokenSet `yaml:"tokens,omitempty"`

	// Server configures the live page audit.
	Server ServerConfig `yaml:"server,omitempty"`

	// Dirs maps directory glob patterns to per-directory overrides.
	Dirs map[string]DirConfig `yaml:"dirs,omitempty"`
}

// ServerConfig configures the live page audit and screenshot capture.
type ServerConfig struct {
	// URL is the base URL of the local dev server.
	URL string `yaml:"url,omitempty"`

	// Routes are the paths to audit, e.g. "/", "/pricing".
	Routes []string `yaml:"routes,omitempty"`

	// RequiredCopy are strings that must appear on the homepage.
	RequiredCopy []string `yaml:"requiredCopy,omitempty"`
}

// DirConfig holds per-directory overrides, matched against the directory
// part of each scanned file's relative path.
type DirConfig struct {
	// DisabledRules are additional rule IDs disabled under this directory.
	DisabledRules []string `yaml:"disabledRules,omitempty"`

	// AllowInline permits inline styles under this directory without a
	// recorded approval (e.g. generated email templates).
	AllowInline bool `yaml:"allowInline,omitempty"`
}

// DirConfigFor returns the merged per-directory overrides for a relative
// file path. Later matching patterns win for AllowInline; disabled rule
// lists accumulate.
func (f *File) DirConfigFor(relPath string) DirConfig {
	var merged DirConfig
	dir := filepath.ToSlash(filepath.Dir(relPath))
	for pattern, dc := range f.Dirs {
		ok, err := filepath.Match(pattern, dir)
		if err != nil || !ok {
			continue
		}
		merged.DisabledRules = append(merged.DisabledRules, dc.DisabledRules...)
		if dc.AllowInline {
			merged.AllowInline = true
		}
	}
	return merged
}

// LoadConfigFile loads project configuration from a YAML file.
// If the file does not exist, it returns ErrConfigNotFound. Callers should
// handle this based on whether the path was explicitly specified.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // user-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, err
	}
	if cf.Dirs == nil {
		cf.Dirs = make(map[string]DirConfig)
	}
	return &cf, nil
}

// FindConfigFile searches for the configuration file in the following order:
// 1. If configPath is specified, use it directly
// 2. Look for .designlint.yaml in the current directory
// 3. Look for .designlint.yaml in the user's home directory
//
// Returns the path if found, or empty string otherwise.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	if cwd, err := os.Getwd(); err == nil {
		p := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	if home, err := os.UserHomeDir(); err == nil {
		p := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// Apply overlays the project file onto a Config.
func (f *File) Apply(cfg *Config) {
	if f.Threshold > 0 {
		cfg.Threshold = f.Threshold
	}
	if len(f.Ignore) > 0 {
		cfg.IgnorePatterns = append(cfg.IgnorePatterns, f.Ignore...)
	}
	if len(f.DisabledRules) > 0 {
		cfg.DisabledRules = append(cfg.DisabledRules, f.DisabledRules...)
	}
	if f.Tokens != nil {
		cfg.Tokens = cfg.Tokens.Merge(f.Tokens)
	}
	if f.Server.URL != "" {
		cfg.ServerURL = f.Server.URL
	}
	if len(f.Server.Routes) > 0 {
		cfg.Routes = f.Server.Routes
	}
	if len(f.Server.RequiredCopy) > 0 {
		cfg.RequiredCopy = f.Server.RequiredCopy
	}
}

// LoadEnv overlays DESIGNLINT_* environment variables onto a Config.
// A .env file in the working directory is loaded first when present;
// real environment variables take precedence over .env entries.
func LoadEnv(cfg *Config) {
	_ = godotenv.Load() // missing .env is not an error

	if v := os.Getenv("DESIGNLINT_SERVER_URL"); v != "" {
		cfg.ServerURL = v
	}
	if v := os.Getenv("DESIGNLINT_THRESHOLD"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 && n <= 100 {
			cfg.Threshold = n
		}
	}
	if v := os.Getenv("DESIGNLINT_PAGE_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.PageTimeout = d
		}
	}
	if v := os.Getenv("DESIGNLINT_NO_COLOR"); v != "" {
		cfg.NoColor = true
	}
}
