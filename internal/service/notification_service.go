package service

import (
	"context"

	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/store"
)

// NotificationService reads a principal's notifications.
type NotificationService interface {
	ListNotifications(ctx context.Context, p domain.Principal) ([]domain.Notification, error)
}

type notificationService struct {
	notifications store.NotificationStore
}

// NewNotificationService creates a NotificationService.
func NewNotificationService(notifications store.NotificationStore) NotificationService {
	return &notificationService{notifications: notifications}
}

func (s *notificationService) ListNotifications(
	ctx context.Context,
	p domain.Principal,
) ([]domain.Notification, error) {
	out, err := s.notifications.ListForUser(ctx, p.UserID)
	return out, wrapError("notification", "list", err)
}
