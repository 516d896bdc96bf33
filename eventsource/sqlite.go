package eventsource

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS events (
	stream_id TEXT NOT NULL,
	version   INTEGER NOT NULL,
	id        TEXT NOT NULL,
	type      TEXT NOT NULL,
	timestamp INTEGER NOT NULL,
	data      BLOB,
	PRIMARY KEY (stream_id, version)
);
`

// SQLiteStore is a durable Store backed by a SQLite database file.
// Pass ":memory:" for an ephemeral database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if necessary) a store at path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("eventsource: open sqlite store: %w", err)
	}
	// The schema migration doubles as a connectivity check.
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("eventsource: create events table: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Append implements Store.
func (s *SQLiteStore) Append(ctx context.Context, streamID string, expectedVersion int, events []*Event) (int, error) {
	if len(events) == 0 {
		return expectedVersion, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return -1, fmt.Errorf("eventsource: begin append: %w", err)
	}
	defer tx.Rollback()

	var current int
	row := tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(version), -1) FROM events WHERE stream_id = ?`, streamID)
	if err := row.Scan(&current); err != nil {
		return -1, fmt.Errorf("eventsource: read stream version: %w", err)
	}
	if current != expectedVersion {
		return current, fmt.Errorf("%w: stream %s at version %d, expected %d",
			ErrConcurrencyConflict, streamID, current, expectedVersion)
	}

	// The stream id and version are stamped into the row, never into
	// the caller's events.
	version := current
	for _, ev := range events {
		version++
		_, err := tx.ExecContext(ctx,
			`INSERT INTO events (stream_id, version, id, type, timestamp, data) VALUES (?, ?, ?, ?, ?, ?)`,
			streamID, version, ev.ID, ev.Type, ev.Timestamp.UnixNano(), []byte(ev.Data))
		if err != nil {
			return -1, fmt.Errorf("eventsource: insert event: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return -1, fmt.Errorf("eventsource: commit append: %w", err)
	}
	return version, nil
}

// Read implements Store.
func (s *SQLiteStore) Read(ctx context.Context, streamID string, fromVersion int) ([]*Event, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT version, id, type, timestamp, data FROM events
		 WHERE stream_id = ? AND version >= ? ORDER BY version`,
		streamID, fromVersion)
	if err != nil {
		return nil, fmt.Errorf("eventsource: read stream: %w", err)
	}
	defer rows.Close()

	var out []*Event
	for rows.Next() {
		ev := &Event{StreamID: streamID}
		var ts int64
		var data []byte
		if err := rows.Scan(&ev.Version, &ev.ID, &ev.Type, &ts, &data); err != nil {
			return nil, fmt.Errorf("eventsource: scan event: %w", err)
		}
		ev.Timestamp = time.Unix(0, ts).UTC()
		ev.Data = data
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("eventsource: iterate stream: %w", err)
	}
	return out, nil
}

// StreamVersion implements Store.
func (s *SQLiteStore) StreamVersion(ctx context.Context, streamID string) (int, error) {
	var version int
	row := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(version), -1) FROM events WHERE stream_id = ?`, streamID)
	if err := row.Scan(&version); err != nil {
		return -1, fmt.Errorf("eventsource: read stream version: %w", err)
	}
	return version, nil
}

// Close implements Store.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

var _ Store = (*SQLiteStore)(nil)
