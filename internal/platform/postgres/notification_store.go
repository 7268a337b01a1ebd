package postgres

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/platform/logger"
	"github.com/phrazzld/taskboard-api/internal/store"
)

// PostgresNotificationStore implements store.NotificationStore.
type PostgresNotificationStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresNotificationStore creates a notification store.
func NewPostgresNotificationStore(db store.DBTX, logger *slog.Logger) *PostgresNotificationStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresNotificationStore{
		db:     db,
		logger: logger.With(slog.String("component", "notification_store")),
	}
}

var _ store.NotificationStore = (*PostgresNotificationStore)(nil)

// WithTx returns a store bound to tx.
func (s *PostgresNotificationStore) WithTx(tx *sql.Tx) *PostgresNotificationStore {
	return &PostgresNotificationStore{db: tx, logger: s.logger}
}

// Create implements store.NotificationStore.Create
func (s *PostgresNotificationStore) Create(
	ctx context.Context,
	userID *int64,
	message string,
) (*domain.Notification, error) {
	var n domain.Notification
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO notifications (user_id, message)
		VALUES ($1, $2)
		RETURNING id, user_id, message, created_at
	`, userID, message).Scan(&n.ID, &n.UserID, &n.Message, &n.CreatedAt)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to create notification",
			slog.String("error", err.Error()))
		return nil, store.NewStoreError("notification", "create", MapError(err, nil))
	}
	return &n, nil
}

// ListForUser implements store.NotificationStore.ListForUser
func (s *PostgresNotificationStore) ListForUser(ctx context.Context, userID int64) ([]domain.Notification, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, message, created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`, userID)
	if err != nil {
		log.Error("failed to list notifications", slog.Int64("user_id", userID), slog.String("error", err.Error()))
		return nil, store.NewStoreError("notification", "list", MapError(err, nil))
	}
	defer func() { _ = rows.Close() }()

	out := make([]domain.Notification, 0)
	for rows.Next() {
		var n domain.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Message, &n.CreatedAt); err != nil {
			return nil, store.NewStoreError("notification", "list", err)
		}
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("notification", "list", err)
	}
	return out, nil
}
