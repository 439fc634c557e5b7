package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/uiforge/designlint/internal/config"
)

// TestNewValidateCmd tests the validate command creation.
func TestNewValidateCmd(t *testing.T) {
	t.Parallel()

	cmd := NewValidateCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "validate <path>" {
			t.Errorf("expected use 'validate <path>', got %q", cmd.Use)
		}
	})

	t.Run("has long description", func(t *testing.T) {
		t.Parallel()
		if cmd.Long == "" {
			t.Error("expected non-empty long description")
		}
	})

	t.Run("requires exactly one argument", func(t *testing.T) {
		t.Parallel()
		if cmd.Args == nil {
			t.Error("expected Args validator")
		}
	})

	t.Run("has expected flags", func(t *testing.T) {
		t.Parallel()
		shorthands := map[string]string{
			"strict":      "s",
			"threshold":   "t",
			"concurrency": "n",
			"config":      "c",
			"ignore":      "i",
			"json":        "j",
			"markdown":    "m",
			"export":      "e",
		}
		for name, shorthand := range shorthands {
			flag := cmd.Flags().Lookup(name)
			if flag == nil {
				t.Errorf("expected %s flag", name)
				continue
			}
			if flag.Shorthand != shorthand {
				t.Errorf("expected %s shorthand %q, got %q", name, shorthand, flag.Shorthand)
			}
		}
		for _, name := range []string{
			"consultation", "no-color", "no-history",
			"inline-coding-enforcement", "inline-coding-approval",
		} {
			if cmd.Flags().Lookup(name) == nil {
				t.Errorf("expected %s flag", name)
			}
		}
	})
}

// TestBuildValidateConfig tests configuration building from flags.
func TestBuildValidateConfig(t *testing.T) {
	t.Run("builds config with default values", func(t *testing.T) {
		cmd := NewValidateCmd()
		cfg, projectFile, err := buildValidateConfig(cmd, []string{"src"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Target != "src" {
			t.Errorf("expected target 'src', got %q", cfg.Target)
		}
		if cfg.Threshold != config.DefaultThreshold {
			t.Errorf("expected threshold %d, got %d", config.DefaultThreshold, cfg.Threshold)
		}
		if cfg.Strict || cfg.JSON || cfg.Markdown {
			t.Error("expected strict, json, and markdown to default to false")
		}
		if projectFile != nil {
			t.Log("project file discovered in working directory")
		}
	})

	t.Run("builds config with flags set", func(t *testing.T) {
		cmd := NewValidateCmd()
		_ = cmd.Flags().Set("strict", "true")
		_ = cmd.Flags().Set("threshold", "90")
		_ = cmd.Flags().Set("concurrency", "2")
		_ = cmd.Flags().Set("ignore", "*.stories.tsx")
		_ = cmd.Flags().Set("inline-coding-enforcement", "true")

		cfg, _, err := buildValidateConfig(cmd, []string{"src"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !cfg.Strict {
			t.Error("expected Strict to be true")
		}
		if cfg.Threshold != 90 {
			t.Errorf("expected threshold 90, got %d", cfg.Threshold)
		}
		if cfg.Concurrency != 2 {
			t.Errorf("expected concurrency 2, got %d", cfg.Concurrency)
		}
		if len(cfg.IgnorePatterns) == 0 || cfg.IgnorePatterns[len(cfg.IgnorePatterns)-1] != "*.stories.tsx" {
			t.Errorf("expected ignore patterns to include *.stories.tsx, got %v", cfg.IgnorePatterns)
		}
		if !cfg.InlineEnforcement {
			t.Error("expected InlineEnforcement to be true")
		}
	})

	t.Run("loads config file when specified", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "designlint.yaml")
		content := []byte(`
threshold: 70
ignore:
  - "*.test.tsx"
dirs:
  "src/emails/*":
    allowInline: true
`)
		if err := os.WriteFile(configPath, content, 0o600); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		cmd := NewValidateCmd()
		_ = cmd.Flags().Set("config", configPath)
		cfg, projectFile, err := buildValidateConfig(cmd, []string{"src"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Threshold != 70 {
			t.Errorf("expected threshold 70 from config file, got %d", cfg.Threshold)
		}
		if projectFile == nil {
			t.Fatal("expected the project file to be returned")
		}
		if len(projectFile.Dirs) != 1 {
			t.Errorf("expected 1 dir override, got %d", len(projectFile.Dirs))
		}
	})

	t.Run("flag overrides config file threshold", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "designlint.yaml")
		if err := os.WriteFile(configPath, []byte("threshold: 70\n"), 0o600); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		cmd := NewValidateCmd()
		_ = cmd.Flags().Set("config", configPath)
		_ = cmd.Flags().Set("threshold", "95")
		cfg, _, err := buildValidateConfig(cmd, []string{"src"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Threshold != 95 {
			t.Errorf("expected flag threshold 95, got %d", cfg.Threshold)
		}
	})

	t.Run("returns error for missing explicit config", func(t *testing.T) {
		cmd := NewValidateCmd()
		_ = cmd.Flags().Set("config", filepath.Join(t.TempDir(), "missing.yaml"))
		_, _, err := buildValidateConfig(cmd, []string{"src"})
		if !errors.Is(err, config.ErrConfigNotFound) {
			t.Errorf("expected ErrConfigNotFound, got %v", err)
		}
	})

	t.Run("returns error for invalid config file", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "designlint.yaml")
		if err := os.WriteFile(configPath, []byte("{invalid yaml"), 0o600); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		cmd := NewValidateCmd()
		_ = cmd.Flags().Set("config", configPath)
		if _, _, err := buildValidateConfig(cmd, []string{"src"}); err == nil {
			t.Error("expected error for invalid config file")
		}
	})
}

// TestValidateConfigConflicts tests rejected flag combinations.
func TestValidateConfigConflicts(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		flags map[string]string
		want  error
	}{
		{
			name:  "json and markdown",
			flags: map[string]string{"json": "true", "markdown": "true"},
			want:  config.ErrConflictingReportFormats,
		},
		{
			name: "enforcement and approval",
			flags: map[string]string{
				"inline-coding-enforcement": "true",
				"inline-coding-approval":    "true",
			},
			want: config.ErrConflictingInlinePolicy,
		},
		{
			name:  "threshold out of range",
			flags: map[string]string{"threshold": "150"},
			want:  config.ErrInvalidThreshold,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			cmd := NewValidateCmd()
			for name, value := range tc.flags {
				_ = cmd.Flags().Set(name, value)
			}
			cfg, _, err := buildValidateConfig(cmd, []string{"src"})
			if err != nil {
				t.Fatalf("unexpected build error: %v", err)
			}
			if err := cfg.Validate(); !errors.Is(err, tc.want) {
				t.Errorf("Validate() error = %v, expected %v", err, tc.want)
			}
		})
	}
}

// TestDirPolicy tests the project file to pipeline policy adapter.
func TestDirPolicy(t *testing.T) {
	t.Parallel()

	t.Run("nil without project file", func(t *testing.T) {
		t.Parallel()
		if dirPolicy(nil) != nil {
			t.Error("expected nil policy without a project file")
		}
	})

	t.Run("nil without dir overrides", func(t *testing.T) {
		t.Parallel()
		if dirPolicy(&config.File{}) != nil {
			t.Error("expected nil policy without dir overrides")
		}
	})

	t.Run("resolves dir overrides", func(t *testing.T) {
		t.Parallel()
		projectFile := &config.File{
			Dirs: map[string]config.DirConfig{
				"src/emails": {AllowInline: true, DisabledRules: []string{"color/raw-hex"}},
			},
		}
		policy := dirPolicy(projectFile)
		if policy == nil {
			t.Fatal("expected a policy")
		}
		disabled, allowInline := policy("src/emails/welcome.tsx")
		if !allowInline {
			t.Error("expected allowInline for matching directory")
		}
		if len(disabled) != 1 || disabled[0] != "color/raw-hex" {
			t.Errorf("expected disabled [color/raw-hex], got %v", disabled)
		}

		disabled, allowInline = policy("src/components/Hero.tsx")
		if allowInline || len(disabled) != 0 {
			t.Error("expected no overrides outside the configured directory")
		}
	})
}
