package store

import (
	"context"

	"github.com/phrazzld/taskboard-api/internal/domain"
)

// TaskStore defines persistence for tasks.
type TaskStore interface {
	// ListForUser returns the enriched tasks of every team userID belongs to.
	ListForUser(ctx context.Context, userID int64) ([]domain.EnrichedTask, error)

	// GetVisible returns the task if it exists and belongs to one of
	// userID's teams. Returns ErrTaskNotFound otherwise.
	GetVisible(ctx context.Context, userID, taskID int64) (*domain.Task, error)

	// Create inserts a task and returns the stored row.
	// Returns ErrInvalidEntity when a referenced team or user does not exist.
	Create(ctx context.Context, in domain.NewTaskInput) (*domain.Task, error)

	// Update overwrites every mutable field and returns the row as written.
	// Returns ErrTaskNotFound if no row matched.
	Update(ctx context.Context, id int64, fields domain.TaskFields) (*domain.Task, error)

	// Delete removes the task and returns the deleted row.
	// Returns ErrTaskNotFound if no row matched.
	Delete(ctx context.Context, id int64) (*domain.Task, error)
}
