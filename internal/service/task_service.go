package service

import (
	"context"
	"log/slog"

	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/events"
	"github.com/phrazzld/taskboard-api/internal/platform/logger"
	"github.com/phrazzld/taskboard-api/internal/store"
)

// TaskService manages tasks within the principal's teams. Every mutation
// writes the task and its notification in one transaction and broadcasts a
// taskUpdate followed by a notification event after commit.
type TaskService interface {
	// ListTasks returns the enriched tasks of every team the principal is in.
	ListTasks(ctx context.Context, p domain.Principal) ([]domain.EnrichedTask, error)

	// CreateTask creates a task in a team the principal belongs to and
	// notifies the assignee. Returns ErrNotTeamMember otherwise.
	CreateTask(ctx context.Context, p domain.Principal, in domain.NewTaskInput) (*domain.EnrichedTask, error)

	// UpdateTask overwrites a visible task's fields and notifies the assignee.
	// Returns store.ErrTaskNotFound if the task is absent or not visible.
	UpdateTask(ctx context.Context, p domain.Principal, id int64, f domain.TaskFields) (*domain.EnrichedTask, error)

	// DeleteTask removes a visible task and notifies the principal.
	// Returns store.ErrTaskNotFound if the task is absent or not visible.
	DeleteTask(ctx context.Context, p domain.Principal, id int64) error
}

type taskService struct {
	reads   store.TaskStore
	tx      store.Transactor
	emitter events.EventEmitter
	logger  *slog.Logger
}

// NewTaskService creates a TaskService. reads serves ListTasks; mutations go
// through tx.
func NewTaskService(
	reads store.TaskStore,
	tx store.Transactor,
	emitter events.EventEmitter,
	logger *slog.Logger,
) TaskService {
	if logger == nil {
		logger = slog.Default()
	}
	return &taskService{
		reads:   reads,
		tx:      tx,
		emitter: emitter,
		logger:  logger.With(slog.String("service", "task")),
	}
}

func (s *taskService) ListTasks(ctx context.Context, p domain.Principal) ([]domain.EnrichedTask, error) {
	tasks, err := s.reads.ListForUser(ctx, p.UserID)
	return tasks, wrapError("task", "list", err)
}

func (s *taskService) CreateTask(
	ctx context.Context,
	p domain.Principal,
	in domain.NewTaskInput,
) (*domain.EnrichedTask, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	var (
		created *domain.EnrichedTask
		note    *domain.Notification
	)
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context, tx store.Stores) error {
		member, err := tx.Teams.IsMember(ctx, p.UserID, in.TeamID)
		if err != nil {
			return err
		}
		if !member {
			return ErrNotTeamMember
		}

		task, err := tx.Tasks.Create(ctx, in)
		if err != nil {
			return err
		}
		if created, err = enrich(ctx, tx.Users, task); err != nil {
			return err
		}
		note, err = tx.Notifications.Create(ctx, task.AssignedTo, domain.TaskAssignedMessage(task.Title))
		return err
	})
	if err != nil {
		return nil, wrapError("task", "create", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("task created",
		slog.Int64("task_id", created.ID),
		slog.Int64("team_id", created.TeamID),
		slog.Int64("user_id", p.UserID))

	publish(ctx, s.emitter, s.logger, events.TypeTaskUpdate, created)
	publish(ctx, s.emitter, s.logger, events.TypeNotification, note)
	return created, nil
}

func (s *taskService) UpdateTask(
	ctx context.Context,
	p domain.Principal,
	id int64,
	f domain.TaskFields,
) (*domain.EnrichedTask, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	var (
		updated *domain.EnrichedTask
		note    *domain.Notification
	)
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context, tx store.Stores) error {
		if _, err := tx.Tasks.GetVisible(ctx, p.UserID, id); err != nil {
			return err
		}

		task, err := tx.Tasks.Update(ctx, id, f)
		if err != nil {
			return err
		}
		if updated, err = enrich(ctx, tx.Users, task); err != nil {
			return err
		}
		note, err = tx.Notifications.Create(ctx, task.AssignedTo, domain.TaskUpdatedMessage(task.Title))
		return err
	})
	if err != nil {
		return nil, wrapError("task", "update", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("task updated",
		slog.Int64("task_id", id),
		slog.Int64("user_id", p.UserID))

	publish(ctx, s.emitter, s.logger, events.TypeTaskUpdate, updated)
	publish(ctx, s.emitter, s.logger, events.TypeNotification, note)
	return updated, nil
}

func (s *taskService) DeleteTask(ctx context.Context, p domain.Principal, id int64) error {
	var note *domain.Notification
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context, tx store.Stores) error {
		if _, err := tx.Tasks.GetVisible(ctx, p.UserID, id); err != nil {
			return err
		}

		task, err := tx.Tasks.Delete(ctx, id)
		if err != nil {
			return err
		}
		recipient := p.UserID
		note, err = tx.Notifications.Create(ctx, &recipient, domain.TaskDeletedMessage(task.Title))
		return err
	})
	if err != nil {
		return wrapError("task", "delete", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("task deleted",
		slog.Int64("task_id", id),
		slog.Int64("user_id", p.UserID))

	publish(ctx, s.emitter, s.logger, events.TypeTaskUpdate, domain.TaskDeleted{ID: id, Deleted: true})
	publish(ctx, s.emitter, s.logger, events.TypeNotification, note)
	return nil
}

// enrich attaches the assignee's username and role to task.
func enrich(ctx context.Context, users store.UserStore, task *domain.Task) (*domain.EnrichedTask, error) {
	out := &domain.EnrichedTask{Task: *task}
	if task.AssignedTo == nil {
		return out, nil
	}
	name, role, err := users.GetAssignee(ctx, *task.AssignedTo)
	if err != nil {
		return nil, err
	}
	out.AssignedUser, out.AssignedRole = name, role
	return out, nil
}
