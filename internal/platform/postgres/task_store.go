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

const taskColumns = `id, title, description, due_date, status, assigned_to, team_id`

// PostgresTaskStore implements the store.TaskStore interface
// using a PostgreSQL database as the storage backend.
type PostgresTaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTaskStore creates a new PostgreSQL implementation of the TaskStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresTaskStore(db store.DBTX, logger *slog.Logger) *PostgresTaskStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

// Ensure PostgresTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*PostgresTaskStore)(nil)

// WithTx returns a store bound to tx.
func (s *PostgresTaskStore) WithTx(tx *sql.Tx) *PostgresTaskStore {
	return &PostgresTaskStore{db: tx, logger: s.logger}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner, extra ...any) (*domain.Task, error) {
	var t domain.Task
	dest := append([]any{
		&t.ID,
		&t.Title,
		&t.Description,
		&t.DueDate,
		&t.Status,
		&t.AssignedTo,
		&t.TeamID,
	}, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &t, nil
}

// ListForUser implements store.TaskStore.ListForUser
func (s *PostgresTaskStore) ListForUser(ctx context.Context, userID int64) ([]domain.EnrichedTask, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, `
		SELECT t.id, t.title, t.description, t.due_date, t.status, t.assigned_to, t.team_id,
		       u.username, r.name
		FROM tasks t
		LEFT JOIN users u ON t.assigned_to = u.id
		LEFT JOIN roles r ON u.role_id = r.id
		WHERE t.team_id IN (SELECT team_id FROM user_team WHERE user_id = $1)
		ORDER BY t.id
	`, userID)
	if err != nil {
		log.Error("failed to list tasks", slog.Int64("user_id", userID), slog.String("error", err.Error()))
		return nil, store.NewStoreError("task", "list", MapError(err, nil))
	}
	defer func() { _ = rows.Close() }()

	tasks := make([]domain.EnrichedTask, 0)
	for rows.Next() {
		var username, role *string
		t, err := scanTask(rows, &username, &role)
		if err != nil {
			return nil, store.NewStoreError("task", "list", err)
		}
		tasks = append(tasks, domain.EnrichedTask{Task: *t, AssignedUser: username, AssignedRole: role})
	}
	if err := rows.Err(); err != nil {
		log.Error("error iterating task rows", slog.String("error", err.Error()))
		return nil, store.NewStoreError("task", "list", err)
	}

	log.Debug("listed tasks", slog.Int64("user_id", userID), slog.Int("count", len(tasks)))
	return tasks, nil
}

// GetVisible implements store.TaskStore.GetVisible
func (s *PostgresTaskStore) GetVisible(ctx context.Context, userID, taskID int64) (*domain.Task, error) {
	t, err := scanTask(s.db.QueryRowContext(ctx, `
		SELECT `+taskColumns+`
		FROM tasks
		WHERE id = $1
		  AND team_id IN (SELECT team_id FROM user_team WHERE user_id = $2)
	`, taskID, userID))
	if err != nil {
		return nil, s.fail(ctx, "get", taskID, err)
	}
	return t, nil
}

// Create implements store.TaskStore.Create
// Returns store.ErrInvalidEntity if the team or assignee doesn't exist (foreign key violation).
func (s *PostgresTaskStore) Create(ctx context.Context, in domain.NewTaskInput) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := in.Validate(); err != nil {
		log.Warn("task validation failed during create", slog.String("error", err.Error()))
		return nil, err
	}

	t, err := scanTask(s.db.QueryRowContext(ctx, `
		INSERT INTO tasks (title, description, due_date, status, assigned_to, team_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+taskColumns,
		in.Title, in.Description, in.DueDate, in.Status, in.AssignedTo, in.TeamID,
	))
	if err != nil {
		return nil, s.fail(ctx, "create", 0, err)
	}

	log.Info("task created", slog.Int64("task_id", t.ID), slog.Int64("team_id", t.TeamID))
	return t, nil
}

// Update implements store.TaskStore.Update
func (s *PostgresTaskStore) Update(ctx context.Context, id int64, f domain.TaskFields) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := f.Validate(); err != nil {
		log.Warn("task validation failed during update", slog.String("error", err.Error()))
		return nil, err
	}

	t, err := scanTask(s.db.QueryRowContext(ctx, `
		UPDATE tasks
		SET title = $1, description = $2, due_date = $3, status = $4, assigned_to = $5
		WHERE id = $6
		RETURNING `+taskColumns,
		f.Title, f.Description, f.DueDate, f.Status, f.AssignedTo, id,
	))
	if err != nil {
		return nil, s.fail(ctx, "update", id, err)
	}

	log.Info("task updated", slog.Int64("task_id", id))
	return t, nil
}

// Delete implements store.TaskStore.Delete
func (s *PostgresTaskStore) Delete(ctx context.Context, id int64) (*domain.Task, error) {
	t, err := scanTask(s.db.QueryRowContext(ctx, `
		DELETE FROM tasks
		WHERE id = $1
		RETURNING `+taskColumns,
		id,
	))
	if err != nil {
		return nil, s.fail(ctx, "delete", id, err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("task deleted", slog.Int64("task_id", id))
	return t, nil
}

// fail logs and maps a query error. Missing rows are expected and logged at debug.
func (s *PostgresTaskStore) fail(ctx context.Context, op string, id int64, err error) error {
	log := logger.FromContextOrDefault(ctx, s.logger)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("task not found", slog.String("operation", op), slog.Int64("task_id", id))
		return store.ErrTaskNotFound
	}
	mapped := MapError(err, store.ErrTaskNotFound)
	if errors.Is(mapped, store.ErrInvalidEntity) {
		log.Warn("task rejected by database",
			slog.String("operation", op),
			slog.Int64("task_id", id),
			slog.String("error", err.Error()))
		return mapped
	}
	log.Error("task query failed",
		slog.String("operation", op),
		slog.Int64("task_id", id),
		slog.String("error", err.Error()))
	return store.NewStoreError("task", op, mapped)
}
