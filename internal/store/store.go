// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists research run outcomes in a local SQLite
// database. One row per run; the full outcome is stored as a JSON
// document alongside a few indexed columns for listings.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/learnpath/pkg/types"
)

// ErrNotFound reports that no run exists with the requested id.
var ErrNotFound = errors.New("run not found")

// Store manages the run database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the run database at cfg.DBPath, creating the
// schema if it does not exist.
func Open(cfg types.StoreConfig) (*Store, error) {
	dbPath := cfg.DBPath
	if dbPath == "" {
		dbPath = "learnpath.db"
	}
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
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
			created_at TEXT NOT NULL,
			topic TEXT NOT NULL,
			level TEXT,
			allowed INTEGER NOT NULL,
			status TEXT,
			doc TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// SaveRun inserts or replaces one run outcome.
func (s *Store) SaveRun(ctx context.Context, o *types.Outcome) error {
	doc, err := json.Marshal(o)
	if err != nil {
		return fmt.Errorf("encoding outcome: %w", err)
	}

	allowed := 0
	if o.Safety.Allowed {
		allowed = 1
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO runs (id, created_at, topic, level, allowed, status, doc)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			created_at=excluded.created_at, topic=excluded.topic,
			level=excluded.level, allowed=excluded.allowed,
			status=excluded.status, doc=excluded.doc`,
		o.RunID, o.CreatedAt.UTC().Format(time.RFC3339Nano),
		o.Request.Topic, string(o.Request.Level), allowed, o.Status(), string(doc),
	)
	if err != nil {
		return fmt.Errorf("saving run %s: %w", o.RunID, err)
	}
	return nil
}

// GetRun loads one run outcome by id. Returns ErrNotFound when absent.
func (s *Store) GetRun(ctx context.Context, id string) (*types.Outcome, error) {
	var doc string
	err := s.db.QueryRowContext(ctx,
		`SELECT doc FROM runs WHERE id = ?`, id,
	).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading run %s: %w", id, err)
	}

	var o types.Outcome
	if err := json.Unmarshal([]byte(doc), &o); err != nil {
		return nil, fmt.Errorf("decoding run %s: %w", id, err)
	}
	return &o, nil
}

// RunSummary is the listing view of one stored run.
type RunSummary struct {
	ID        string    `json:"id" yaml:"id"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	Topic     string    `json:"topic" yaml:"topic"`
	Level     string    `json:"level,omitempty" yaml:"level,omitempty"`
	Allowed   bool      `json:"allowed" yaml:"allowed"`
	Status    string    `json:"status,omitempty" yaml:"status,omitempty"`
}

// ListRuns returns run summaries newest first, capped at limit
// (default 50).
func (s *Store) ListRuns(ctx context.Context, limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, created_at, topic, level, allowed, status
		 FROM runs ORDER BY created_at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	var out []RunSummary
	for rows.Next() {
		var r RunSummary
		var createdAt string
		var allowed int
		if err := rows.Scan(&r.ID, &createdAt, &r.Topic, &r.Level, &allowed, &r.Status); err != nil {
			return nil, fmt.Errorf("scanning run row: %w", err)
		}
		r.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
		r.Allowed = allowed == 1
		out = append(out, r)
	}
	return out, rows.Err()
}

// UpdateReport replaces a stored run's verification report. Recomputed
// reports overwrite; they are never merged.
func (s *Store) UpdateReport(ctx context.Context, id string, report *types.VerificationReport) error {
	o, err := s.GetRun(ctx, id)
	if err != nil {
		return err
	}
	o.Report = report

	doc, err := json.Marshal(o)
	if err != nil {
		return fmt.Errorf("encoding outcome: %w", err)
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE runs SET status = ?, doc = ? WHERE id = ?`,
		o.Status(), string(doc), id,
	)
	if err != nil {
		return fmt.Errorf("updating run %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
