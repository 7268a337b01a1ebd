package store

import (
	"context"

	"github.com/phrazzld/taskboard-api/internal/domain"
)

// CommentStore defines persistence for task comments.
type CommentStore interface {
	// ListByTask returns a task's comments with author usernames, oldest first.
	ListByTask(ctx context.Context, taskID int64) ([]domain.CommentWithAuthor, error)

	// Create inserts a comment and returns it joined with the author's username.
	// Returns ErrInvalidEntity when the task or user does not exist.
	Create(ctx context.Context, c *domain.Comment) (*domain.CommentWithAuthor, error)
}
