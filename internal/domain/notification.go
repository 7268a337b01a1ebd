package domain

import (
	"fmt"
	"time"
)

// Notification is a persisted message addressed to a user about a task change.
type Notification struct {
	ID        int64     `json:"id"`
	UserID    *int64    `json:"user_id"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// Notification messages for task mutations.
func TaskAssignedMessage(title string) string { return fmt.Sprintf("New task assigned: %s", title) }
func TaskUpdatedMessage(title string) string  { return fmt.Sprintf("Task updated: %s", title) }
func TaskDeletedMessage(title string) string  { return fmt.Sprintf("Task deleted: %s", title) }
