// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history records conversion runs in a local SQLite ledger so an
// operator can see what earlier runs converted and which files failed.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/office-convert/pkg/types"
)

const defaultLimit = 20

// Store manages the run history database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the history database at path, creating its parent
// directory and schema as needed.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			format TEXT NOT NULL,
			backend TEXT,
			total INTEGER NOT NULL,
			converted INTEGER NOT NULL,
			exit_code INTEGER NOT NULL,
			started_at TEXT NOT NULL,
			finished_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS run_errors (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			message TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_run_errors_run_id ON run_errors(run_id)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record stores one completed run with its error lines.
func (s *Store) Record(ctx context.Context, run types.RunSummary) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO runs (id, format, backend, total, converted, exit_code, started_at, finished_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, string(run.Format), run.Backend, run.Total, run.Converted, run.ExitCode,
		run.StartedAt.UTC().Format(time.RFC3339Nano),
		run.FinishedAt.UTC().Format(time.RFC3339Nano),
	); err != nil {
		return fmt.Errorf("inserting run %s: %w", run.ID, err)
	}

	for i, msg := range run.Errors {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO run_errors (run_id, position, message) VALUES (?, ?, ?)`,
			run.ID, i, msg,
		); err != nil {
			return fmt.Errorf("inserting error for run %s: %w", run.ID, err)
		}
	}

	return tx.Commit()
}

// Recent returns up to limit runs, newest first. A limit of zero or less
// uses the default of 20.
func (s *Store) Recent(ctx context.Context, limit int) ([]types.RunSummary, error) {
	if limit <= 0 {
		limit = defaultLimit
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, format, backend, total, converted, exit_code, started_at, finished_at
		 FROM runs ORDER BY started_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []types.RunSummary
	for rows.Next() {
		var (
			r                 types.RunSummary
			format, backend   sql.NullString
			started, finished string
		)
		if err := rows.Scan(&r.ID, &format, &backend, &r.Total, &r.Converted, &r.ExitCode, &started, &finished); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		r.Format = types.TargetFormat(format.String)
		r.Backend = backend.String
		r.StartedAt, _ = time.Parse(time.RFC3339Nano, started)
		r.FinishedAt, _ = time.Parse(time.RFC3339Nano, finished)
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating runs: %w", err)
	}

	for i := range runs {
		errs, err := s.runErrors(ctx, runs[i].ID)
		if err != nil {
			return nil, err
		}
		runs[i].Errors = errs
	}
	return runs, nil
}

func (s *Store) runErrors(ctx context.Context, runID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT message FROM run_errors WHERE run_id = ? ORDER BY position`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying errors for run %s: %w", runID, err)
	}
	defer rows.Close()

	var errs []string
	for rows.Next() {
		var msg string
		if err := rows.Scan(&msg); err != nil {
			return nil, fmt.Errorf("scanning error for run %s: %w", runID, err)
		}
		errs = append(errs, msg)
	}
	return errs, rows.Err()
}
