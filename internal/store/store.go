// Package store persists run history in a local SQLite database. History
// is operational bookkeeping only; case records themselves live in the
// output directory as canonical JSON.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	case_id TEXT NOT NULL,
	record_id TEXT NOT NULL,
	confidence_score REAL NOT NULL,
	defendant_count INTEGER NOT NULL,
	cause_count INTEGER NOT NULL,
	warning_count INTEGER NOT NULL,
	document_count INTEGER NOT NULL,
	output_path TEXT NOT NULL,
	started_at TIMESTAMP NOT NULL,
	duration_ms INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_runs_case_id ON runs(case_id);
`

// Run is one completed pipeline invocation.
type Run struct {
	ID              int64
	CaseID          string
	RecordID        string
	ConfidenceScore float64
	DefendantCount  int
	CauseCount      int
	WarningCount    int
	DocumentCount   int
	OutputPath      string
	StartedAt       time.Time
	Duration        time.Duration
}

// Store wraps the run-history database.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open opens (or creates) the history database at path and applies the
// schema.
func Open(ctx context.Context, path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create history dir: %w", err)
		}
	}

	logger.Debug("opening history database", "path", path)
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply history schema: %w", err)
	}

	return &Store{db: db, logger: logger}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// RecordRun appends one run to the history.
func (s *Store) RecordRun(ctx context.Context, run Run) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (case_id, record_id, confidence_score, defendant_count, cause_count, warning_count, document_count, output_path, started_at, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.CaseID, run.RecordID, run.ConfidenceScore, run.DefendantCount,
		run.CauseCount, run.WarningCount, run.DocumentCount, run.OutputPath,
		run.StartedAt.UTC(), run.Duration.Milliseconds())
	if err != nil {
		return fmt.Errorf("record run: %w", err)
	}

	s.logger.Debug("recorded run", "case_id", run.CaseID, "record_id", run.RecordID)
	return nil
}

// ListRuns returns the most recent runs, newest first. A caseID filter
// of "" returns runs for all cases.
func (s *Store) ListRuns(ctx context.Context, caseID string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `SELECT id, case_id, record_id, confidence_score, defendant_count, cause_count, warning_count, document_count, output_path, started_at, duration_ms
		FROM runs`
	args := []any{}
	if caseID != "" {
		query += ` WHERE case_id = ?`
		args = append(args, caseID)
	}
	query += ` ORDER BY id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var durationMS int64
		if err := rows.Scan(&r.ID, &r.CaseID, &r.RecordID, &r.ConfidenceScore, &r.DefendantCount,
			&r.CauseCount, &r.WarningCount, &r.DocumentCount, &r.OutputPath, &r.StartedAt, &durationMS); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		r.Duration = time.Duration(durationMS) * time.Millisecond
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}

	return runs, nil
}
