package database

import (
	"context"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/crypto/blake2b"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/uiforge/designlint/internal/model"
)

// ErrRunNotFound is returned when a requested run does not exist.
var ErrRunNotFound = errors.New("validation run not found")

// HistoryDB provides SQLite-based storage for validation runs and inline
// coding approvals.
//
// Design decision: We store the full report as a JSON blob alongside the
// indexed summary columns rather than normalizing findings into rows.
// Compare operations always need the whole report, and the summary columns
// cover every listing query.
type HistoryDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures HistoryDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent performance.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Run is one persisted validation run summary.
type Run struct {
	// ID is the run's database identifier.
	ID int64 `json:"id"`

	// Target is the scanned path.
	Target string `json:"target"`

	// ScannedAt is when the run was performed.
	ScannedAt time.Time `json:"scanned_at"`

	// Score is the overall compliance score.
	Score int `json:"score"`

	// ErrorCount is the number of blocking errors.
	ErrorCount int `json:"error_count"`

	// WarningCount is the number of warnings.
	WarningCount int `json:"warning_count"`

	// Pass indicates the run met the contract.
	Pass bool `json:"pass"`
}

// Open opens or creates a HistoryDB in the specified directory.
func Open(dbDir string, opts Options) (*HistoryDB, error) {
	dbPath := filepath.Join(dbDir, "designlint.db")

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (use CreateIfNotExists option to create)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// modernc.org/sqlite connection string: mode=rw prevents creating new
	// files, mode=rwc allows creation.
	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer; a single connection avoids lock
	// contention entirely for this workload.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	hdb := &HistoryDB{db: db, dbPath: dbPath}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := hdb.migrate(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return hdb, nil
}

// migrate creates the schema if it does not exist.
func (h *HistoryDB) migrate(ctx context.Context) error {
	const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	target        TEXT    NOT NULL,
	scanned_at    TEXT    NOT NULL,
	score         INTEGER NOT NULL,
	error_count   INTEGER NOT NULL,
	warning_count INTEGER NOT NULL,
	pass          INTEGER NOT NULL,
	report_json   TEXT    NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_runs_target ON runs(target, scanned_at DESC);

CREATE TABLE IF NOT EXISTS approvals (
	path        TEXT NOT NULL,
	fingerprint TEXT NOT NULL,
	recorded_at TEXT NOT NULL,
	PRIMARY KEY (path, fingerprint)
);`
	if _, err := h.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (h *HistoryDB) Close() error {
	return h.db.Close()
}

// Path returns the database file path.
func (h *HistoryDB) Path() string {
	return h.dbPath
}

// SaveReport persists a validation report and returns the run ID.
func (h *HistoryDB) SaveReport(ctx context.Context, report *model.ValidationReport) (int64, error) {
	data, err := json.Marshal(report)
	if err != nil {
		return 0, fmt.Errorf("failed to serialize report: %w", err)
	}

	res, err := h.db.ExecContext(ctx,
		`INSERT INTO runs (target, scanned_at, score, error_count, warning_count, pass, report_json)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		report.Target,
		report.ScannedAt.UTC().Format(time.RFC3339Nano),
		report.Score,
		report.ErrorCount,
		report.WarningCount,
		boolToInt(report.Pass),
		string(data),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}
	return res.LastInsertId()
}

// GetReport loads the full report for a run ID.
func (h *HistoryDB) GetReport(ctx context.Context, id int64) (*model.ValidationReport, error) {
	var data string
	err := h.db.QueryRowContext(ctx,
		`SELECT report_json FROM runs WHERE id = ?`, id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: id=%d", ErrRunNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query run: %w", err)
	}

	var report model.ValidationReport
	if err := json.Unmarshal([]byte(data), &report); err != nil {
		return nil, fmt.Errorf("failed to deserialize report: %w", err)
	}
	return &report, nil
}

// ListRuns returns run summaries for a target, newest first.
// Pass limit <= 0 for all runs.
func (h *HistoryDB) ListRuns(ctx context.Context, target string, limit int) ([]Run, error) {
	query := `SELECT id, target, scanned_at, score, error_count, warning_count, pass
	          FROM runs WHERE target = ? ORDER BY scanned_at DESC`
	args := []any{target}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := h.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var scannedAt string
		var pass int
		if err := rows.Scan(&r.ID, &r.Target, &scannedAt, &r.Score, &r.ErrorCount, &r.WarningCount, &pass); err != nil {
			return nil, fmt.Errorf("failed to scan run row: %w", err)
		}
		r.ScannedAt, _ = time.Parse(time.RFC3339Nano, scannedAt)
		r.Pass = pass != 0
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// ListTargets returns all distinct scanned targets.
func (h *HistoryDB) ListTargets(ctx context.Context) ([]string, error) {
	rows, err := h.db.QueryContext(ctx,
		`SELECT DISTINCT target FROM runs ORDER BY target`)
	if err != nil {
		return nil, fmt.Errorf("failed to query targets: %w", err)
	}
	defer rows.Close()

	var targets []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("failed to scan target row: %w", err)
		}
		targets = append(targets, t)
	}
	return targets, rows.Err()
}

// FirstRunSince returns the oldest run for target at or after the given time.
func (h *HistoryDB) FirstRunSince(ctx context.Context, target string, since time.Time) (*Run, error) {
	var r Run
	var scannedAt string
	var pass int
	err := h.db.QueryRowContext(ctx,
		`SELECT id, target, scanned_at, score, error_count, warning_count, pass
		 FROM runs WHERE target = ? AND scanned_at >= ?
		 ORDER BY scanned_at ASC LIMIT 1`,
		target, since.UTC().Format(time.RFC3339Nano)).
		Scan(&r.ID, &r.Target, &scannedAt, &r.Score, &r.ErrorCount, &r.WarningCount, &pass)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: no run for %s since %s", ErrRunNotFound, target, since.Format("2006-01-02"))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query run: %w", err)
	}
	r.ScannedAt, _ = time.Parse(time.RFC3339Nano, scannedAt)
	r.Pass = pass != 0
	return &r, nil
}

// SaveApproval records an inline coding approval for a file's content.
func (h *HistoryDB) SaveApproval(ctx context.Context, path, fingerprint string) error {
	_, err := h.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO approvals (path, fingerprint, recorded_at) VALUES (?, ?, ?)`,
		path, fingerprint, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("failed to save approval: %w", err)
	}
	return nil
}

// IsApproved reports whether a file's current content carries an approval.
func (h *HistoryDB) IsApproved(ctx context.Context, path, fingerprint string) (bool, error) {
	var count int
	err := h.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM approvals WHERE path = ? AND fingerprint = ?`,
		path, fingerprint).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to query approvals: %w", err)
	}
	return count > 0, nil
}

// Fingerprint computes the hex-encoded BLAKE2b-256 fingerprint of content.
// BLAKE2b is used for speed on large component files; this is a change
// detector, not a security boundary.
func Fingerprint(content []byte) string {
	sum := blake2b.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// boolToInt converts a bool to SQLite's integer representation.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
