package domain

import (
	"strings"
	"time"
)

// Comment is a message left on a task.
type Comment struct {
	ID        int64     `json:"id"`
	TaskID    int64     `json:"task_id"`
	UserID    int64     `json:"user_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// CommentWithAuthor is a Comment joined with the commenter's username, which
// is nil if the author no longer exists.
type CommentWithAuthor struct {
	Comment
	Username *string `json:"username"`
}

// NewComment builds a comment ready to be stored.
func NewComment(taskID, userID int64, content string) (*Comment, error) {
	c := &Comment{TaskID: taskID, UserID: userID, Content: content}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks the comment before it is stored.
func (c *Comment) Validate() error {
	if c.TaskID <= 0 {
		return NewValidationError("task_id", "must be a positive id", ErrInvalidID)
	}
	if c.UserID <= 0 {
		return NewValidationError("user_id", "must be a positive id", ErrInvalidID)
	}
	if strings.TrimSpace(c.Content) == "" {
		return NewValidationError("content", "is required", ErrEmptyContent)
	}
	return nil
}
