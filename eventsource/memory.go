package eventsource

import (
	"context"
	"fmt"
	"sync"
)

// MemoryStore is an in-memory Store for tests and ephemeral hosts.
type MemoryStore struct {
	mu      sync.RWMutex
	streams map[string][]*Event
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		streams: make(map[string][]*Event),
	}
}

// Append implements Store.
func (s *MemoryStore) Append(ctx context.Context, streamID string, expectedVersion int, events []*Event) (int, error) {
	if len(events) == 0 {
		return expectedVersion, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stream := s.streams[streamID]
	current := len(stream) - 1
	if current != expectedVersion {
		return current, fmt.Errorf("%w: stream %s at version %d, expected %d",
			ErrConcurrencyConflict, streamID, current, expectedVersion)
	}

	version := current
	for _, ev := range events {
		version++
		stored := *ev
		stored.StreamID = streamID
		stored.Version = version
		stream = append(stream, &stored)
	}
	s.streams[streamID] = stream
	return version, nil
}

// Read implements Store.
func (s *MemoryStore) Read(ctx context.Context, streamID string, fromVersion int) ([]*Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stream := s.streams[streamID]
	var out []*Event
	for _, ev := range stream {
		if ev.Version >= fromVersion {
			dup := *ev
			out = append(out, &dup)
		}
	}
	return out, nil
}

// StreamVersion implements Store.
func (s *MemoryStore) StreamVersion(ctx context.Context, streamID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.streams[streamID]) - 1, nil
}

// Close implements Store. It is a no-op for the memory store.
func (s *MemoryStore) Close() error {
	return nil
}

var _ Store = (*MemoryStore)(nil)
