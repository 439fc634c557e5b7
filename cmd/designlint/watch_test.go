package main

import (
	"testing"

	"github.com/uiforge/designlint/internal/config"
)

// TestNewWatchCmd tests the watch command creation.
func TestNewWatchCmd(t *testing.T) {
	t.Parallel()

	cmd := NewWatchCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "watch <path>" {
			t.Errorf("expected use 'watch <path>', got %q", cmd.Use)
		}
	})

	t.Run("requires exactly one argument", func(t *testing.T) {
		t.Parallel()
		if cmd.Args == nil {
			t.Error("expected Args validator")
		}
	})

	t.Run("shares the validation flags", func(t *testing.T) {
		t.Parallel()
		for _, name := range []string{
			"strict", "threshold", "concurrency", "config", "ignore",
			"json", "markdown", "export", "consultation", "no-color",
			"no-history", "inline-coding-enforcement", "inline-coding-approval",
		} {
			if cmd.Flags().Lookup(name) == nil {
				t.Errorf("expected %s flag", name)
			}
		}
	})

	t.Run("has debounce flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("debounce")
		if flag == nil {
			t.Fatal("expected debounce flag")
		}
		if flag.DefValue != config.DefaultWatchDebounce.String() {
			t.Errorf("expected default %s, got %q", config.DefaultWatchDebounce, flag.DefValue)
		}
	})
}
