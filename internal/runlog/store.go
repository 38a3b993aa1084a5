// Package runlog persists the provenance of ensemble driver invocations:
// one row per run and one row per emitted model, so a later inspection or
// replay can reconstruct exactly which merge-tree path produced a given
// automaton. Adapted from a versioned-state store pattern: a single
// active-pointer model reworked into an append-only run/model history.
package runlog

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// #region schema
const schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id     TEXT PRIMARY KEY,
	driver     TEXT NOT NULL,
	budget     INTEGER NOT NULL,
	produced   INTEGER NOT NULL,
	seed       INTEGER NOT NULL,
	created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS models (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id      TEXT NOT NULL,
	ordinal     INTEGER NOT NULL,
	index_path  TEXT NOT NULL,
	level       INTEGER NOT NULL,
	artifact    TEXT NOT NULL,
	created_at  TEXT NOT NULL,
	FOREIGN KEY (run_id) REFERENCES runs(run_id)
);
`
// #endregion schema

// #region store-struct
// Store persists run and model provenance in SQLite.
type Store struct {
	db *sql.DB
}
// #endregion store-struct

// #region constructor
// Open opens (or creates) a runlog database at dbPath and runs migrations.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("runlog: open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("runlog: pragma: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return nil, fmt.Errorf("runlog: pragma fk: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("runlog: migrate: %w", err)
	}
	return &Store{db: db}, nil
}
// #endregion constructor

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// #region begin-run
// BeginRun records the start of a new driver invocation and returns its
// generated run id.
func (s *Store) BeginRun(driver string, budget int, seed int64) (string, error) {
	runID := uuid.New().String()
	now := time.Now().UTC()

	// Fixed-width fractional seconds, so ListRuns' text ORDER BY on
	// created_at sorts chronologically (RFC3339Nano trims trailing zeros).
	_, err := s.db.Exec(
		`INSERT INTO runs (run_id, driver, budget, produced, seed, created_at) VALUES (?, ?, ?, 0, ?, ?)`,
		runID, driver, budget, seed, now.Format("2006-01-02T15:04:05.000000000Z07:00"),
	)
	if err != nil {
		return "", fmt.Errorf("runlog: insert run: %w", err)
	}
	return runID, nil
}
// #endregion begin-run

// #region record-model
// RecordModel inserts one emitted automaton for runID and bumps the run's
// produced count, atomically.
func (s *Store) RecordModel(runID string, ordinal int, indexPath []int, level int, artifact string) error {
	pathJSON, err := json.Marshal(indexPath)
	if err != nil {
		return fmt.Errorf("runlog: marshal index path: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("runlog: begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO models (run_id, ordinal, index_path, level, artifact, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		runID, ordinal, string(pathJSON), level, artifact, time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("runlog: insert model: %w", err)
	}

	_, err = tx.Exec(`UPDATE runs SET produced = produced + 1 WHERE run_id = ?`, runID)
	if err != nil {
		return fmt.Errorf("runlog: bump produced: %w", err)
	}

	return tx.Commit()
}
// #endregion record-model

// #region get-run
// GetRun retrieves a run by id.
func (s *Store) GetRun(runID string) (Run, error) {
	var r Run
	var createdStr string
	err := s.db.QueryRow(
		`SELECT run_id, driver, budget, produced, seed, created_at FROM runs WHERE run_id = ?`, runID,
	).Scan(&r.RunID, &r.Driver, &r.Budget, &r.Produced, &r.Seed, &createdStr)
	if err != nil {
		return Run{}, fmt.Errorf("runlog: get run %s: %w", runID, err)
	}
	r.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
	return r, nil
}
// #endregion get-run

// #region list-runs
// ListRuns returns the most recently created runs, newest first.
func (s *Store) ListRuns(limit int) ([]Run, error) {
	rows, err := s.db.Query(
		`SELECT run_id, driver, budget, produced, seed, created_at FROM runs ORDER BY created_at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("runlog: list runs: %w", err)
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var r Run
		var createdStr string
		if err := rows.Scan(&r.RunID, &r.Driver, &r.Budget, &r.Produced, &r.Seed, &createdStr); err != nil {
			return nil, fmt.Errorf("runlog: scan run: %w", err)
		}
		r.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
		out = append(out, r)
	}
	return out, rows.Err()
}
// #endregion list-runs

// #region list-models
// ListModels returns every model recorded for runID, in emission order.
func (s *Store) ListModels(runID string) ([]Model, error) {
	rows, err := s.db.Query(
		`SELECT run_id, ordinal, index_path, level, artifact, created_at FROM models WHERE run_id = ? ORDER BY ordinal ASC`, runID,
	)
	if err != nil {
		return nil, fmt.Errorf("runlog: list models: %w", err)
	}
	defer rows.Close()

	var out []Model
	for rows.Next() {
		var m Model
		var pathJSON, createdStr string
		if err := rows.Scan(&m.RunID, &m.Ordinal, &pathJSON, &m.Level, &m.Artifact, &createdStr); err != nil {
			return nil, fmt.Errorf("runlog: scan model: %w", err)
		}
		if err := json.Unmarshal([]byte(pathJSON), &m.IndexPath); err != nil {
			return nil, fmt.Errorf("runlog: unmarshal index path: %w", err)
		}
		m.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
		out = append(out, m)
	}
	return out, rows.Err()
}
// #endregion list-models
