package realtime

import "encoding/json"

// Inbound event names.
const (
	EventComment = "comment"
)

// Frame is the envelope of every message on the socket.
type Frame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// CommentPayload is the body of an inbound comment frame. Any user_id the
// client sends is ignored; the author is the session's principal.
type CommentPayload struct {
	TaskID  int64  `json:"task_id"`
	Content string `json:"content"`
}
