package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/platform/logger"
	"github.com/phrazzld/taskboard-api/internal/store"
)

// PostgresCommentStore implements store.CommentStore.
type PostgresCommentStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresCommentStore creates a comment store. A nil logger falls back to slog.Default.
func NewPostgresCommentStore(db store.DBTX, logger *slog.Logger) *PostgresCommentStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresCommentStore{
		db:     db,
		logger: logger.With(slog.String("component", "comment_store")),
	}
}

var _ store.CommentStore = (*PostgresCommentStore)(nil)

// WithTx returns a store bound to tx.
func (s *PostgresCommentStore) WithTx(tx *sql.Tx) *PostgresCommentStore {
	return &PostgresCommentStore{db: tx, logger: s.logger}
}

// ListByTask implements store.CommentStore.ListByTask
func (s *PostgresCommentStore) ListByTask(ctx context.Context, taskID int64) ([]domain.CommentWithAuthor, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, `
		SELECT c.id, c.task_id, c.user_id, c.content, c.created_at, u.username
		FROM comments c
		LEFT JOIN users u ON c.user_id = u.id
		WHERE c.task_id = $1
		ORDER BY c.created_at, c.id
	`, taskID)
	if err != nil {
		log.Error("failed to list comments", slog.Int64("task_id", taskID), slog.String("error", err.Error()))
		return nil, store.NewStoreError("comment", "list", MapError(err, nil))
	}
	defer func() { _ = rows.Close() }()

	comments := make([]domain.CommentWithAuthor, 0)
	for rows.Next() {
		var c domain.CommentWithAuthor
		if err := rows.Scan(&c.ID, &c.TaskID, &c.UserID, &c.Content, &c.CreatedAt, &c.Username); err != nil {
			return nil, store.NewStoreError("comment", "list", err)
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("comment", "list", err)
	}
	return comments, nil
}

// Create implements store.CommentStore.Create
// Returns store.ErrInvalidEntity if the task or user doesn't exist.
func (s *PostgresCommentStore) Create(ctx context.Context, c *domain.Comment) (*domain.CommentWithAuthor, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := c.Validate(); err != nil {
		log.Warn("comment validation failed during create", slog.String("error", err.Error()))
		return nil, err
	}

	var out domain.CommentWithAuthor
	err := s.db.QueryRowContext(ctx, `
		WITH inserted AS (
			INSERT INTO comments (task_id, user_id, content)
			VALUES ($1, $2, $3)
			RETURNING id, task_id, user_id, content, created_at
		)
		SELECT i.id, i.task_id, i.user_id, i.content, i.created_at, u.username
		FROM inserted i
		LEFT JOIN users u ON i.user_id = u.id
	`, c.TaskID, c.UserID, c.Content).Scan(
		&out.ID, &out.TaskID, &out.UserID, &out.Content, &out.CreatedAt, &out.Username,
	)
	if err != nil {
		mapped := MapError(err, nil)
		if errors.Is(mapped, store.ErrInvalidEntity) {
			log.Warn("comment rejected by database",
				slog.Int64("task_id", c.TaskID),
				slog.Int64("user_id", c.UserID),
				slog.String("error", err.Error()))
			return nil, mapped
		}
		log.Error("failed to create comment",
			slog.Int64("task_id", c.TaskID),
			slog.String("error", err.Error()))
		return nil, store.NewStoreError("comment", "create", mapped)
	}

	log.Info("comment created", slog.Int64("comment_id", out.ID), slog.Int64("task_id", out.TaskID))
	return &out, nil
}
