// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history persists each run's final projection in a SQLite
// database. The output artifact is regenerated whole every run; the
// history store is the only place past runs survive, which makes venue
// coverage over time inspectable.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/mesh-intelligence/streamfinder/pkg/types"
)

// Store manages the run-history SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the history database at path, creating parent
// directories and the schema as needed.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating history schema: %w", err)
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
			generated_at TEXT NOT NULL,
			assigned_count INTEGER NOT NULL,
			total_venues INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS run_streams (
			run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			venue_id TEXT NOT NULL,
			venue_name TEXT NOT NULL,
			video_id TEXT NOT NULL,
			title TEXT NOT NULL,
			channel TEXT NOT NULL,
			channel_id TEXT NOT NULL,
			viewer_count INTEGER NOT NULL,
			is_trusted INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_run_streams_run_id ON run_streams(run_id)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record inserts a run and its streams in one transaction and returns the
// new run's row ID.
func (s *Store) Record(ctx context.Context, out types.Output) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (generated_at, assigned_count, total_venues) VALUES (?, ?, ?)`,
		out.GeneratedAt.UTC().Format(time.RFC3339Nano), out.AssignedCount, out.TotalVenues)
	if err != nil {
		return 0, fmt.Errorf("inserting run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading run id: %w", err)
	}

	for _, st := range out.Streams {
		trusted := 0
		if st.IsTrustedChannel {
			trusted = 1
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO run_streams
				(run_id, venue_id, venue_name, video_id, title, channel, channel_id, viewer_count, is_trusted)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			runID, st.VenueID, st.VenueName, st.VideoID, st.Title, st.Channel, st.ChannelID, st.ViewerCount, trusted); err != nil {
			return 0, fmt.Errorf("inserting stream for %s: %w", st.VenueID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing run: %w", err)
	}
	return runID, nil
}

// Run is one recorded run with its stream summaries.
type Run struct {
	ID            int64
	GeneratedAt   time.Time
	AssignedCount int
	TotalVenues   int
	Streams       []types.StreamInfo
}

// Recent returns up to limit runs, newest first, each with its streams in
// recorded order.
func (s *Store) Recent(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, generated_at, assigned_count, total_venues
		 FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var generated string
		if err := rows.Scan(&r.ID, &generated, &r.AssignedCount, &r.TotalVenues); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		if t, parseErr := time.Parse(time.RFC3339Nano, generated); parseErr == nil {
			r.GeneratedAt = t
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating runs: %w", err)
	}

	for i := range runs {
		streams, err := s.runStreams(ctx, runs[i].ID)
		if err != nil {
			return nil, err
		}
		runs[i].Streams = streams
	}
	return runs, nil
}

func (s *Store) runStreams(ctx context.Context, runID int64) ([]types.StreamInfo, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT venue_id, venue_name, video_id, title, channel, channel_id, viewer_count, is_trusted
		 FROM run_streams WHERE run_id = ? ORDER BY rowid`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying streams for run %d: %w", runID, err)
	}
	defer rows.Close()

	var streams []types.StreamInfo
	for rows.Next() {
		var st types.StreamInfo
		var trusted int
		if err := rows.Scan(&st.VenueID, &st.VenueName, &st.VideoID, &st.Title,
			&st.Channel, &st.ChannelID, &st.ViewerCount, &trusted); err != nil {
			return nil, fmt.Errorf("scanning stream: %w", err)
		}
		st.IsTrustedChannel = trusted != 0
		streams = append(streams, st)
	}
	return streams, rows.Err()
}
