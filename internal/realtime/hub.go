package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/events"
)

// CommentCreator is the part of the comment service the gateway needs.
type CommentCreator interface {
	CreateComment(ctx context.Context, p domain.Principal, taskID int64, content string) (*domain.CommentWithAuthor, error)
}

// Hub tracks connected sessions and broadcasts frames to them.
type Hub struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*session
	closed   bool

	comments   CommentCreator
	sendBuffer int
	logger     *slog.Logger
}

var _ events.EventHandler = (*Hub)(nil)

// NewHub creates a Hub. sendBuffer is the per-session queue length; a
// session whose queue is full when a broadcast arrives is disconnected.
func NewHub(comments CommentCreator, sendBuffer int, logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	if sendBuffer <= 0 {
		sendBuffer = 64
	}
	return &Hub{
		sessions:   make(map[uuid.UUID]*session),
		comments:   comments,
		sendBuffer: sendBuffer,
		logger:     logger.With(slog.String("component", "realtime_hub")),
	}
}

// HandleEvent implements events.EventHandler by broadcasting the event.
func (h *Hub) HandleEvent(_ context.Context, ev *events.Event) error {
	return h.Broadcast(ev.Type, ev.Payload)
}

// Broadcast sends a frame to every connected session. It never blocks on a
// slow client.
func (h *Hub) Broadcast(event string, data json.RawMessage) error {
	msg, err := json.Marshal(Frame{Event: event, Data: data})
	if err != nil {
		return fmt.Errorf("failed to encode %s frame: %w", event, err)
	}

	var slow []*session
	h.mu.RLock()
	for _, s := range h.sessions {
		select {
		case s.send <- msg:
		default:
			slow = append(slow, s)
		}
	}
	n := len(h.sessions)
	h.mu.RUnlock()

	broadcastsTotal.WithLabelValues(event).Inc()
	h.logger.Debug("broadcast event", slog.String("event", event), slog.Int("sessions", n))

	for _, s := range slow {
		h.logger.Warn("dropping slow session",
			slog.String("session_id", s.id.String()),
			slog.Int64("user_id", s.principal.UserID))
		droppedSessionsTotal.Inc()
		h.unregister(s)
	}
	return nil
}

// SessionCount returns the number of connected sessions.
func (h *Hub) SessionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}

// Close disconnects every session and refuses new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	h.closed = true
	sessions := make([]*session, 0, len(h.sessions))
	for _, s := range h.sessions {
		sessions = append(sessions, s)
	}
	h.mu.Unlock()

	for _, s := range sessions {
		h.unregister(s)
	}
}

func (h *Hub) register(s *session) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.sessions[s.id] = s
	sessionsConnected.Inc()
	return true
}

// unregister removes s and closes its queue. Safe to call more than once.
func (h *Hub) unregister(s *session) {
	h.mu.Lock()
	_, ok := h.sessions[s.id]
	if ok {
		delete(h.sessions, s.id)
		sessionsConnected.Dec()
	}
	h.mu.Unlock()

	if ok {
		close(s.send)
	}
}
