// Package watcher re-runs validation when watched sources change.
// It wraps fsnotify with recursive directory registration and debouncing
// so editor save bursts trigger a single run.
package watcher
