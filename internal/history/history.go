// SPDX-License-Identifier: AGPL-3.0-or-later

// Package history persists a queryable record of every successful
// submission alongside the flat job logs. The text logs stay the
// compatibility surface; the database backs the --history readback.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

const (
	sqliteDriverName   = "sqlite"
	defaultBusyTimeout = 5 * time.Second
)

var migrations = [...]string{
	`CREATE TABLE IF NOT EXISTS submissions (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		submitted_at INTEGER NOT NULL,
		job_name TEXT NOT NULL,
		queue TEXT NOT NULL,
		cores INTEGER NOT NULL,
		memory_mb INTEGER NOT NULL,
		walltime TEXT NOT NULL,
		output TEXT NOT NULL,
		workdir TEXT NOT NULL
	);`,
	`CREATE INDEX IF NOT EXISTS idx_submissions_at ON submissions(submitted_at);`,
}

// Submission is one recorded scheduler acceptance.
type Submission struct {
	Seq         int64
	SubmittedAt time.Time
	JobName     string
	Queue       string
	Cores       int
	MemoryMB    int
	Walltime    string
	Output      string
	Workdir     string
}

// DB wraps the SQLite connection backing the submission history.
type DB struct {
	sql *sql.DB
}

// Open initialises the history database at path, applying pragmas and the
// schema. The connection is single-writer; gsub never runs concurrently
// against the same support directory.
func Open(ctx context.Context, path string) (*DB, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(%d)", path, int(defaultBusyTimeout/time.Millisecond))
	conn, err := sql.Open(sqliteDriverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)

	for _, stmt := range []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=FULL;",
	} {
		if _, err := conn.ExecContext(ctx, stmt); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("execute pragma %q: %w", stmt, err)
		}
	}
	for _, stmt := range migrations {
		if _, err := conn.ExecContext(ctx, stmt); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("apply migration: %w", err)
		}
	}
	return &DB{sql: conn}, nil
}

// Close shuts down the underlying connection.
func (db *DB) Close() error {
	if db == nil || db.sql == nil {
		return nil
	}
	return db.sql.Close()
}

// Record appends one submission.
func (db *DB) Record(ctx context.Context, s Submission) error {
	if db == nil || db.sql == nil {
		return nil
	}
	at := s.SubmittedAt
	if at.IsZero() {
		at = time.Now().UTC()
	}
	_, err := db.sql.ExecContext(ctx,
		`INSERT INTO submissions (submitted_at, job_name, queue, cores, memory_mb, walltime, output, workdir)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		at.Unix(), s.JobName, s.Queue, s.Cores, s.MemoryMB, s.Walltime, s.Output, s.Workdir)
	if err != nil {
		return fmt.Errorf("record submission: %w", err)
	}
	return nil
}

// Recent returns up to limit submissions, newest first.
func (db *DB) Recent(ctx context.Context, limit int) ([]Submission, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := db.sql.QueryContext(ctx,
		`SELECT seq, submitted_at, job_name, queue, cores, memory_mb, walltime, output, workdir
		 FROM submissions ORDER BY seq DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var out []Submission
	for rows.Next() {
		var s Submission
		var at int64
		if err := rows.Scan(&s.Seq, &at, &s.JobName, &s.Queue, &s.Cores, &s.MemoryMB, &s.Walltime, &s.Output, &s.Workdir); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		s.SubmittedAt = time.Unix(at, 0).UTC()
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history: %w", err)
	}
	return out, nil
}

// Format renders submissions for terminal display, oldest first.
func Format(subs []Submission) string {
	var b strings.Builder
	for i := len(subs) - 1; i >= 0; i-- {
		s := subs[i]
		fmt.Fprintf(&b, "%s | %s | %s | cue %s cores %d mem %dMB walltime %s | %s\n",
			s.SubmittedAt.Format("02/01 - 15:04"), s.Output, s.JobName,
			s.Queue, s.Cores, s.MemoryMB, s.Walltime, s.Workdir)
	}
	return b.String()
}
