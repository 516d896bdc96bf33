// Package eventsource records accepted ledger operations as
// append-only event streams and rebuilds ledger state by replaying
// them. It is the event-log facility the token engine's host is
// expected to provide: the engine itself never persists anything.
package eventsource

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Event is a single persisted entry in a stream. Version is assigned
// by the store at append time; events start at version 0 within their
// stream.
type Event struct {
	ID        string          `json:"id"`
	StreamID  string          `json:"stream_id"`
	Type      string          `json:"type"`
	Version   int             `json:"version"`
	Timestamp time.Time       `json:"timestamp"`
	Data      json.RawMessage `json:"data,omitempty"`
}

// NewEvent creates an event with a fresh ID and the payload marshaled
// as JSON. The version is unset until the event is appended.
func NewEvent(streamID, eventType string, payload any) (*Event, error) {
	var data json.RawMessage
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("eventsource: marshal payload: %w", err)
		}
		data = b
	}
	return &Event{
		ID:        uuid.NewString(),
		StreamID:  streamID,
		Type:      eventType,
		Version:   -1,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}, nil
}

// Unmarshal decodes the event payload into v.
func (e *Event) Unmarshal(v any) error {
	if err := json.Unmarshal(e.Data, v); err != nil {
		return fmt.Errorf("eventsource: unmarshal %s payload: %w", e.Type, err)
	}
	return nil
}
