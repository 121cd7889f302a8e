package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// StateChangedEvent announces that the browser published a new state snapshot.
// It carries the snapshot serialized as JSON so that this package does not
// depend on the browser's types.
type StateChangedEvent struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	// Version is the snapshot version the event describes
	Version uint64 `json:"version"`

	// Reason names the action that produced the snapshot
	Reason string `json:"reason"`

	// Snapshot contains the state serialized as JSON
	Snapshot json.RawMessage `json:"snapshot"`

	// CreatedAt is the timestamp when the event was created
	CreatedAt time.Time `json:"created_at"`
}

// UnmarshalSnapshot decodes the event snapshot into the provided structure.
func (e *StateChangedEvent) UnmarshalSnapshot(v interface{}) error {
	return json.Unmarshal(e.Snapshot, v)
}

// NewStateChangedEvent creates a new StateChangedEvent for the given snapshot.
func NewStateChangedEvent(version uint64, reason string, snapshot interface{}) (*StateChangedEvent, error) {
	snapshotBytes, err := json.Marshal(snapshot)
	if err != nil {
		return nil, err
	}

	return &StateChangedEvent{
		ID:        uuid.New(),
		Version:   version,
		Reason:    reason,
		Snapshot:  snapshotBytes,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// EventHandler defines an interface for components that can handle events.
type EventHandler interface {
	// HandleEvent processes the given event within the provided context.
	// Returns an error if the event cannot be handled successfully.
	HandleEvent(ctx context.Context, event *StateChangedEvent) error
}

// HandlerFunc adapts an ordinary function to the EventHandler interface.
type HandlerFunc func(ctx context.Context, event *StateChangedEvent) error

// HandleEvent calls f(ctx, event).
func (f HandlerFunc) HandleEvent(ctx context.Context, event *StateChangedEvent) error {
	return f(ctx, event)
}

// EventEmitter defines an interface for components that can emit events.
type EventEmitter interface {
	// EmitEvent publishes the given event to all registered handlers.
	// Returns an error if the event cannot be emitted.
	EmitEvent(ctx context.Context, event *StateChangedEvent) error
}
