package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/phrazzld/taskboard-api/internal/domain"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

// session is one authenticated WebSocket connection.
type session struct {
	id        uuid.UUID
	principal domain.Principal
	conn      *websocket.Conn
	send      chan []byte
	hub       *Hub
	logger    *slog.Logger
}

func newSession(h *Hub, conn *websocket.Conn, p domain.Principal) *session {
	id := uuid.New()
	return &session{
		id:        id,
		principal: p,
		conn:      conn,
		send:      make(chan []byte, h.sendBuffer),
		hub:       h,
		logger: h.logger.With(
			slog.String("session_id", id.String()),
			slog.Int64("user_id", p.UserID)),
	}
}

// run serves the session until the client goes away or the hub drops it.
func (s *session) run(ctx context.Context) {
	if !s.hub.register(s) {
		_ = s.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(writeWait))
		_ = s.conn.Close()
		return
	}
	s.logger.Info("realtime session connected")

	go s.writePump()
	s.readPump(ctx)

	s.hub.unregister(s)
	s.logger.Info("realtime session disconnected")
}

// readPump reads frames until the connection fails. It is the only reader.
func (s *session) readPump(ctx context.Context) {
	s.conn.SetReadLimit(maxMessageSize)
	_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, msg, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Debug("realtime read failed", slog.String("error", err.Error()))
			}
			return
		}
		s.handleFrame(ctx, msg)
	}
}

// handleFrame dispatches one inbound frame. Failures are logged, never sent
// back to the client.
func (s *session) handleFrame(ctx context.Context, msg []byte) {
	var f Frame
	if err := json.Unmarshal(msg, &f); err != nil {
		observeInbound("invalid", err)
		s.logger.Debug("discarding malformed frame", slog.String("error", err.Error()))
		return
	}

	switch f.Event {
	case EventComment:
		err := s.handleComment(ctx, f.Data)
		observeInbound(EventComment, err)
		if err != nil {
			s.logger.Warn("realtime comment failed", slog.String("error", err.Error()))
		}
	default:
		observeInbound("unknown", errors.New("unknown event"))
		s.logger.Debug("discarding unknown event", slog.String("event", f.Event))
	}
}

func (s *session) handleComment(ctx context.Context, data json.RawMessage) error {
	var p CommentPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("invalid comment payload: %w", err)
	}
	_, err := s.hub.comments.CreateComment(ctx, s.principal, p.TaskID, p.Content)
	return err
}

// writePump drains the send queue and keeps the connection alive. It is the
// only writer and owns closing the connection.
func (s *session) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = s.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-s.send:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = s.conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := s.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				s.logger.Debug("realtime write failed", slog.String("error", err.Error()))
				s.hub.unregister(s)
				return
			}
		case <-ticker.C:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				s.hub.unregister(s)
				return
			}
		}
	}
}
