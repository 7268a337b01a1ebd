package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event names as they appear on the realtime channel.
const (
	TypeTaskUpdate   = "taskUpdate"
	TypeNotification = "notification"
	TypeNewComment   = "newComment"
)

// Event is a committed change to broadcast.
type Event struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	// Type is the event name delivered to clients
	Type string `json:"type"`

	// Payload is the JSON body delivered to clients
	Payload json.RawMessage `json:"payload"`

	// CreatedAt is the timestamp when the event was created
	CreatedAt time.Time `json:"created_at"`
}

// UnmarshalPayload decodes the event payload into the provided structure.
func (e *Event) UnmarshalPayload(v interface{}) error {
	return json.Unmarshal(e.Payload, v)
}

// NewEvent creates an Event with the given type and payload.
func NewEvent(eventType string, payload interface{}) (*Event, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &Event{
		ID:        uuid.New(),
		Type:      eventType,
		Payload:   payloadBytes,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// EventHandler defines an interface for components that can handle events.
type EventHandler interface {
	// HandleEvent processes the given event within the provided context.
	HandleEvent(ctx context.Context, event *Event) error
}

// EventEmitter defines an interface for components that can emit events.
// This allows services to publish events without direct knowledge of handlers.
type EventEmitter interface {
	// EmitEvent publishes the given event to all registered handlers.
	EmitEvent(ctx context.Context, event *Event) error
}

// Emit builds an event and publishes it. Callers that have already committed
// their write treat a failure here as loggable, never as a reason to fail.
func Emit(ctx context.Context, emitter EventEmitter, eventType string, payload interface{}) error {
	ev, err := NewEvent(eventType, payload)
	if err != nil {
		return err
	}
	return emitter.EmitEvent(ctx, ev)
}
