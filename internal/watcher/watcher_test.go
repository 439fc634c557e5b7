package watcher

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// TestNewDefaults tests option defaults and overrides.
func TestNewDefaults(t *testing.T) {
	t.Parallel()

	w := New("src")
	if w.debounce != 300*time.Millisecond {
		t.Errorf("debounce = %v, expected 300ms", w.debounce)
	}
	if !w.relevant("anything") {
		t.Error("default filter should accept every path")
	}

	w = New("src",
		WithDebounce(time.Second),
		WithFilter(func(path string) bool { return filepath.Ext(path) == ".tsx" }),
	)
	if w.debounce != time.Second {
		t.Errorf("debounce = %v, expected 1s", w.debounce)
	}
	if w.relevant("a.css") {
		t.Error("filter should reject non-matching paths")
	}
	if !w.relevant("a.tsx") {
		t.Error("filter should accept matching paths")
	}

	// Non-positive debounce keeps the default.
	w = New("src", WithDebounce(0))
	if w.debounce != 300*time.Millisecond {
		t.Errorf("debounce = %v, expected default kept", w.debounce)
	}
}

// TestRunMissingRoot tests the error for a nonexistent watch root.
func TestRunMissingRoot(t *testing.T) {
	t.Parallel()

	w := New(filepath.Join(t.TempDir(), "missing"))
	err := w.Run(context.Background(), func(context.Context) {})
	if err == nil {
		t.Error("Run() should fail for a missing root")
	}
}

// TestRunTriggersOnChange tests the debounced change callback.
func TestRunTriggersOnChange(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	fired := make(chan struct{}, 1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	w := New(dir, WithDebounce(10*time.Millisecond))
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func(context.Context) {
			select {
			case fired <- struct{}{}:
			default:
			}
		})
	}()

	// Give the watcher a moment to register before writing.
	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(filepath.Join(dir, "hero.tsx"), []byte("x"), 0600); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	select {
	case <-fired:
	case <-ctx.Done():
		t.Fatal("onChange was not invoked after a file change")
	}

	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, expected context.Canceled", err)
	}
}
