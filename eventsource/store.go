package eventsource

import (
	"context"
	"errors"
)

// ErrConcurrencyConflict is returned by Append when expectedVersion
// does not match the stream's current version.
var ErrConcurrencyConflict = errors.New("eventsource: concurrency conflict")

// Store persists ordered event streams with optimistic concurrency.
// Streams are append-only: a recorded operation is never rewritten or
// deleted, it can only be superseded by later operations.
type Store interface {
	// Append adds events to a stream. expectedVersion must equal the
	// version of the last event already in the stream, or -1 for a new
	// stream; otherwise Append fails with ErrConcurrencyConflict and
	// writes nothing. It returns the version of the last appended
	// event.
	Append(ctx context.Context, streamID string, expectedVersion int, events []*Event) (int, error)

	// Read returns all events in a stream with version >= fromVersion,
	// in version order. An unknown stream reads as empty.
	Read(ctx context.Context, streamID string, fromVersion int) ([]*Event, error)

	// StreamVersion returns the version of the last event in a stream,
	// -1 for an unknown or empty stream.
	StreamVersion(ctx context.Context, streamID string) (int, error)

	// Close releases any resources held by the store.
	Close() error
}
