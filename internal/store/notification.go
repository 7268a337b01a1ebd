package store

import (
	"context"

	"github.com/phrazzld/taskboard-api/internal/domain"
)

// NotificationStore defines persistence for notifications.
type NotificationStore interface {
	// Create inserts a notification for userID (nil for nobody) and returns it.
	Create(ctx context.Context, userID *int64, message string) (*domain.Notification, error)

	// ListForUser returns userID's notifications, newest first.
	ListForUser(ctx context.Context, userID int64) ([]domain.Notification, error)
}
