package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/taskboard-api/internal/events"
)

// RecordingEmitter implements events.EventEmitter and keeps every event.
type RecordingEmitter struct {
	mu     sync.Mutex
	events []*events.Event

	// Err is returned from every EmitEvent call after recording.
	Err error
}

var _ events.EventEmitter = (*RecordingEmitter)(nil)

// EmitEvent implements events.EventEmitter.
func (r *RecordingEmitter) EmitEvent(_ context.Context, ev *events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
	return r.Err
}

// Events returns a copy of the recorded events.
func (r *RecordingEmitter) Events() []*events.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*events.Event, len(r.events))
	copy(out, r.events)
	return out
}

// Types returns the recorded event types in order.
func (r *RecordingEmitter) Types() []string {
	evs := r.Events()
	out := make([]string, len(evs))
	for i, ev := range evs {
		out[i] = ev.Type
	}
	return out
}
