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

// PostgresUserStore implements the store.UserStore interface
// using a PostgreSQL database as the storage backend.
type PostgresUserStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresUserStore creates a new PostgreSQL implementation of the UserStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresUserStore(db store.DBTX, logger *slog.Logger) *PostgresUserStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresUserStore{
		db:     db,
		logger: logger.With(slog.String("component", "user_store")),
	}
}

// Ensure PostgresUserStore implements store.UserStore interface
var _ store.UserStore = (*PostgresUserStore)(nil)

// WithTx returns a store bound to tx.
func (s *PostgresUserStore) WithTx(tx *sql.Tx) *PostgresUserStore {
	return &PostgresUserStore{db: tx, logger: s.logger}
}

// GetByID implements store.UserStore.GetByID
func (s *PostgresUserStore) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return s.getOne(ctx, `
		SELECT id, username, password_hash, role_id
		FROM users
		WHERE id = $1
	`, id)
}

// GetByUsername implements store.UserStore.GetByUsername
func (s *PostgresUserStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.getOne(ctx, `
		SELECT id, username, password_hash, role_id
		FROM users
		WHERE username = $1
	`, username)
}

func (s *PostgresUserStore) getOne(ctx context.Context, query string, arg any) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var u domain.User
	err := s.db.QueryRowContext(ctx, query, arg).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.RoleID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("user not found")
			return nil, store.ErrUserNotFound
		}
		log.Error("failed to get user", slog.String("error", err.Error()))
		return nil, store.NewStoreError("user", "get", MapError(err, store.ErrUserNotFound))
	}
	return &u, nil
}

// ListByTeam implements store.UserStore.ListByTeam
func (s *PostgresUserStore) ListByTeam(ctx context.Context, teamID int64) ([]domain.UserSummary, error) {
	return s.list(ctx, "list_by_team", `
		SELECT u.id, u.username
		FROM users u
		WHERE u.id IN (SELECT user_id FROM user_team WHERE team_id = $1)
		ORDER BY u.id
	`, teamID)
}

// ListTeammates implements store.UserStore.ListTeammates
func (s *PostgresUserStore) ListTeammates(ctx context.Context, userID int64) ([]domain.UserSummary, error) {
	return s.list(ctx, "list_teammates", `
		SELECT u.id, u.username
		FROM users u
		WHERE u.id IN (
			SELECT ut.user_id
			FROM user_team ut
			WHERE ut.team_id IN (SELECT team_id FROM user_team WHERE user_id = $1)
		)
		ORDER BY u.id
	`, userID)
}

func (s *PostgresUserStore) list(ctx context.Context, op, query string, arg int64) ([]domain.UserSummary, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, arg)
	if err != nil {
		log.Error("failed to list users", slog.String("operation", op), slog.String("error", err.Error()))
		return nil, store.NewStoreError("user", op, MapError(err, nil))
	}
	defer func() { _ = rows.Close() }()

	users := make([]domain.UserSummary, 0)
	for rows.Next() {
		var u domain.UserSummary
		if err := rows.Scan(&u.ID, &u.Username); err != nil {
			return nil, store.NewStoreError("user", op, err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		log.Error("error iterating user rows", slog.String("operation", op), slog.String("error", err.Error()))
		return nil, store.NewStoreError("user", op, err)
	}
	return users, nil
}

// GetAssignee implements store.UserStore.GetAssignee
func (s *PostgresUserStore) GetAssignee(ctx context.Context, userID int64) (*string, *string, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var username, role *string
	err := s.db.QueryRowContext(ctx, `
		SELECT u.username, r.name
		FROM users u
		LEFT JOIN roles r ON u.role_id = r.id
		WHERE u.id = $1
	`, userID).Scan(&username, &role)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, nil
		}
		log.Error("failed to read assignee",
			slog.Int64("user_id", userID),
			slog.String("error", err.Error()))
		return nil, nil, store.NewStoreError("user", "get_assignee", MapError(err, nil))
	}
	return username, role, nil
}
