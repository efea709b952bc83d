// Package history keeps a local SQLite log of wrapper runs. It is diagnostic
// only: failure records remain the sole signal of a failing job.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    job_id      TEXT NOT NULL,
    run_id      TEXT NOT NULL UNIQUE,
    command     TEXT NOT NULL DEFAULT '',
    outcome     TEXT NOT NULL,
    exit_code   INTEGER NOT NULL DEFAULT 0,
    status      TEXT NOT NULL DEFAULT '',
    started_at  TEXT NOT NULL,
    finished_at TEXT NOT NULL,
    duration_ms INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_runs_job ON runs(job_id, id);
`

// Store provides SQLite-backed storage for run history.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the history database at path and runs migrations.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create history dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}

	// Several cron jobs may finish at once; WAL plus a busy timeout lets their
	// wrappers append without "database is locked" failures.
	for _, pragma := range []string{"PRAGMA journal_mode=WAL", "PRAGMA busy_timeout=5000"} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("%s: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

// Insert stores a run. Duplicate run IDs are silently ignored.
func (s *Store) Insert(e Entry) error {
	_, err := s.db.Exec(`
		INSERT OR IGNORE INTO runs (
			job_id, run_id, command, outcome, exit_code, status,
			started_at, finished_at, duration_ms
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.JobID, e.RunID, e.Command, e.Outcome, e.ExitCode, e.Status,
		e.StartedAt.UTC().Format(time.RFC3339Nano), e.FinishedAt.UTC().Format(time.RFC3339Nano), e.DurationMs,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// Recent returns up to limit runs, newest first. An empty jobID matches all jobs.
func (s *Store) Recent(jobID string, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(`
		SELECT id, job_id, run_id, command, outcome, exit_code, status,
		       started_at, finished_at, duration_ms
		FROM runs
		WHERE ? = '' OR job_id = ?
		ORDER BY id DESC
		LIMIT ?`, jobID, jobID, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var startedAt, finishedAt string
		if err := rows.Scan(
			&e.ID, &e.JobID, &e.RunID, &e.Command, &e.Outcome, &e.ExitCode, &e.Status,
			&startedAt, &finishedAt, &e.DurationMs,
		); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		if t, err := time.Parse(time.RFC3339Nano, startedAt); err == nil {
			e.StartedAt = t
		}
		if t, err := time.Parse(time.RFC3339Nano, finishedAt); err == nil {
			e.FinishedAt = t
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
