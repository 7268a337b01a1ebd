package events

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/phrazzld/taskboard-api/internal/platform/logger"
)

// ErrUnknownEventType is returned for events whose Type is not one of the
// names clients subscribe to.
var ErrUnknownEventType = errors.New("unknown event type")

// KnownType reports whether t is a realtime event name.
func KnownType(t string) bool {
	switch t {
	case TypeTaskUpdate, TypeNotification, TypeNewComment:
		return true
	}
	return false
}

type namedHandler struct {
	name    string
	handler EventHandler
}

// InMemoryEventEmitter fans committed changes out to its handlers in the
// calling goroutine. Delivery to every handler is attempted even when one
// fails.
type InMemoryEventEmitter struct {
	mu       sync.RWMutex
	handlers []namedHandler
	logger   *slog.Logger
}

// NewInMemoryEventEmitter creates an emitter with no handlers.
func NewInMemoryEventEmitter(log *slog.Logger) *InMemoryEventEmitter {
	if log == nil {
		log = slog.Default()
	}
	return &InMemoryEventEmitter{
		logger: log.With("component", "event_emitter"),
	}
}

// RegisterHandler subscribes handler to every event emitted afterwards.
func (e *InMemoryEventEmitter) RegisterHandler(handler EventHandler) {
	name := fmt.Sprintf("%T", handler)

	e.mu.Lock()
	e.handlers = append(e.handlers, namedHandler{name: name, handler: handler})
	count := len(e.handlers)
	e.mu.Unlock()

	e.logger.Debug("registered broadcast handler",
		slog.String("handler", name),
		slog.Int("handler_count", count))
}

// EmitEvent delivers event to every registered handler. It returns
// ErrUnknownEventType without delivering anything when event.Type is not a
// realtime event name, and otherwise the join of all handler errors.
func (e *InMemoryEventEmitter) EmitEvent(ctx context.Context, event *Event) error {
	log := logger.FromContextOrDefault(ctx, e.logger).With(
		slog.String("event_type", event.Type),
		slog.String("event_id", event.ID.String()))

	if !KnownType(event.Type) {
		log.Error("refusing to broadcast event")
		return fmt.Errorf("%w: %q", ErrUnknownEventType, event.Type)
	}

	e.mu.RLock()
	handlers := make([]namedHandler, len(e.handlers))
	copy(handlers, e.handlers)
	e.mu.RUnlock()

	if len(handlers) == 0 {
		log.Debug("no broadcast handlers registered")
		return nil
	}

	var errs []error
	for _, h := range handlers {
		if err := h.handler.HandleEvent(ctx, event); err != nil {
			log.Error("broadcast handler failed",
				slog.String("handler", h.name),
				slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}

	log.Debug("broadcast dispatched",
		slog.Int("handlers", len(handlers)),
		slog.Int("failed", len(errs)),
		slog.Int("payload_bytes", len(event.Payload)))
	return errors.Join(errs...)
}
