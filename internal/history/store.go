// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history keeps a SQLite record of conversion runs and the outcome of
// every file in them. It is an audit trail only: the converter never consults
// it to decide what to convert.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/office2pdf/pkg/types"
)

// Run is one batch conversion as stored in the history.
type Run struct {
	ID         int64              `json:"id" yaml:"id"`
	StartedAt  time.Time          `json:"started_at" yaml:"started_at"`
	FinishedAt time.Time          `json:"finished_at" yaml:"finished_at"`
	InputDir   string             `json:"input_dir" yaml:"input_dir"`
	OutputDir  string             `json:"output_dir" yaml:"output_dir"`
	Converted  int                `json:"converted" yaml:"converted"`
	Failed     int                `json:"failed" yaml:"failed"`
	Skipped    int                `json:"skipped" yaml:"skipped"`
	Files      []types.FileResult `json:"files,omitempty" yaml:"files,omitempty"`
}

// Store manages the history database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the history database at path and its schema.
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
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			started_at TEXT NOT NULL,
			finished_at TEXT NOT NULL,
			input_dir TEXT,
			output_dir TEXT,
			converted INTEGER NOT NULL,
			failed INTEGER NOT NULL,
			skipped INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS files (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			seq INTEGER NOT NULL,
			name TEXT NOT NULL,
			input TEXT,
			output TEXT,
			images TEXT,
			lines INTEGER,
			pages INTEGER,
			status TEXT NOT NULL,
			stage TEXT,
			error TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_files_run_id ON files(run_id)`,
		`CREATE INDEX IF NOT EXISTS idx_files_name ON files(name)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record stores run and its files in one transaction and returns the new
// run ID.
func (s *Store) Record(ctx context.Context, run Run) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (started_at, finished_at, input_dir, output_dir, converted, failed, skipped)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.StartedAt.UTC().Format(time.RFC3339Nano), run.FinishedAt.UTC().Format(time.RFC3339Nano),
		run.InputDir, run.OutputDir, run.Converted, run.Failed, run.Skipped,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading run id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO files (run_id, seq, name, input, output, images, lines, pages, status, stage, error)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing file insert: %w", err)
	}
	defer stmt.Close()

	for i, f := range run.Files {
		images, err := json.Marshal(f.Images)
		if err != nil {
			return 0, fmt.Errorf("encoding images of %s: %w", f.Name, err)
		}
		if _, err := stmt.ExecContext(ctx, id, i, f.Name, f.Input, f.Output, string(images),
			f.Lines, f.Pages, string(f.Status), string(f.Stage), f.Error); err != nil {
			return 0, fmt.Errorf("inserting file %s: %w", f.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing run: %w", err)
	}
	return id, nil
}

// Recent returns up to limit runs, newest first, without their files.
func (s *Store) Recent(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, finished_at, input_dir, output_dir, converted, failed, skipped
		 FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			r                 Run
			started, finished string
		)
		if err := rows.Scan(&r.ID, &started, &finished, &r.InputDir, &r.OutputDir,
			&r.Converted, &r.Failed, &r.Skipped); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		r.StartedAt, _ = time.Parse(time.RFC3339Nano, started)
		r.FinishedAt, _ = time.Parse(time.RFC3339Nano, finished)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Files returns the file results of run id in processing order.
func (s *Store) Files(ctx context.Context, id int64) ([]types.FileResult, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, input, output, images, lines, pages, status, stage, error
		 FROM files WHERE run_id = ? ORDER BY seq`, id)
	if err != nil {
		return nil, fmt.Errorf("querying files of run %d: %w", id, err)
	}
	defer rows.Close()

	var files []types.FileResult
	for rows.Next() {
		var (
			f             types.FileResult
			images        string
			status, stage string
		)
		if err := rows.Scan(&f.Name, &f.Input, &f.Output, &images, &f.Lines, &f.Pages,
			&status, &stage, &f.Error); err != nil {
			return nil, fmt.Errorf("scanning file: %w", err)
		}
		if err := json.Unmarshal([]byte(images), &f.Images); err != nil {
			return nil, fmt.Errorf("decoding images of %s: %w", f.Name, err)
		}
		f.Status = types.FileStatus(status)
		f.Stage = types.Stage(stage)
		files = append(files, f)
	}
	return files, rows.Err()
}
