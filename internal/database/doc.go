// Package database provides SQLite-based storage for validation history.
//
// Every validation run is persisted with its full report so the compare
// command can diff runs over time. Inline coding approvals are stored as
// (path, content fingerprint) pairs; an approval holds only while the file
// content is unchanged.
package database
