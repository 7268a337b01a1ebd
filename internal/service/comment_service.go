package service

import (
	"context"
	"log/slog"

	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/events"
	"github.com/phrazzld/taskboard-api/internal/platform/logger"
	"github.com/phrazzld/taskboard-api/internal/store"
)

// CommentService reads and writes comments on visible tasks. It is the single
// entry point for comment creation from both HTTP and the realtime channel.
type CommentService interface {
	// ListComments returns a visible task's comments, oldest first.
	ListComments(ctx context.Context, p domain.Principal, taskID int64) ([]domain.CommentWithAuthor, error)

	// CreateComment adds a comment as the principal and broadcasts newComment.
	// No notification is stored.
	CreateComment(ctx context.Context, p domain.Principal, taskID int64, content string) (*domain.CommentWithAuthor, error)
}

type commentService struct {
	reads   store.Stores
	tx      store.Transactor
	emitter events.EventEmitter
	logger  *slog.Logger
}

// NewCommentService creates a CommentService.
func NewCommentService(
	reads store.Stores,
	tx store.Transactor,
	emitter events.EventEmitter,
	logger *slog.Logger,
) CommentService {
	if logger == nil {
		logger = slog.Default()
	}
	return &commentService{
		reads:   reads,
		tx:      tx,
		emitter: emitter,
		logger:  logger.With(slog.String("service", "comment")),
	}
}

func (s *commentService) ListComments(
	ctx context.Context,
	p domain.Principal,
	taskID int64,
) ([]domain.CommentWithAuthor, error) {
	if _, err := s.reads.Tasks.GetVisible(ctx, p.UserID, taskID); err != nil {
		return nil, wrapError("comment", "list", err)
	}
	comments, err := s.reads.Comments.ListByTask(ctx, taskID)
	return comments, wrapError("comment", "list", err)
}

func (s *commentService) CreateComment(
	ctx context.Context,
	p domain.Principal,
	taskID int64,
	content string,
) (*domain.CommentWithAuthor, error) {
	c, err := domain.NewComment(taskID, p.UserID, content)
	if err != nil {
		return nil, err
	}

	var created *domain.CommentWithAuthor
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context, tx store.Stores) error {
		if _, err := tx.Tasks.GetVisible(ctx, p.UserID, taskID); err != nil {
			return err
		}
		out, err := tx.Comments.Create(ctx, c)
		if err != nil {
			return err
		}
		created = out
		return nil
	})
	if err != nil {
		return nil, wrapError("comment", "create", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("comment created",
		slog.Int64("comment_id", created.ID),
		slog.Int64("task_id", taskID),
		slog.Int64("user_id", p.UserID))

	publish(ctx, s.emitter, s.logger, events.TypeNewComment, created)
	return created, nil
}
