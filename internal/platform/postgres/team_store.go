package postgres

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/platform/logger"
	"github.com/phrazzld/taskboard-api/internal/store"
)

// PostgresTeamStore implements store.TeamStore.
type PostgresTeamStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTeamStore creates a team store. A nil logger falls back to slog.Default.
func NewPostgresTeamStore(db store.DBTX, logger *slog.Logger) *PostgresTeamStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresTeamStore{
		db:     db,
		logger: logger.With(slog.String("component", "team_store")),
	}
}

var _ store.TeamStore = (*PostgresTeamStore)(nil)

// WithTx returns a store bound to tx.
func (s *PostgresTeamStore) WithTx(tx *sql.Tx) *PostgresTeamStore {
	return &PostgresTeamStore{db: tx, logger: s.logger}
}

// ListForUser implements store.TeamStore.ListForUser
func (s *PostgresTeamStore) ListForUser(ctx context.Context, userID int64) ([]domain.Team, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name
		FROM teams
		WHERE id IN (SELECT team_id FROM user_team WHERE user_id = $1)
		ORDER BY id
	`, userID)
	if err != nil {
		log.Error("failed to list teams", slog.Int64("user_id", userID), slog.String("error", err.Error()))
		return nil, store.NewStoreError("team", "list", MapError(err, nil))
	}
	defer func() { _ = rows.Close() }()

	teams := make([]domain.Team, 0)
	for rows.Next() {
		var t domain.Team
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, store.NewStoreError("team", "list", err)
		}
		teams = append(teams, t)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("team", "list", err)
	}
	return teams, nil
}

// IsMember implements store.TeamStore.IsMember
func (s *PostgresTeamStore) IsMember(ctx context.Context, userID, teamID int64) (bool, error) {
	var member bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM user_team WHERE user_id = $1 AND team_id = $2)
	`, userID, teamID).Scan(&member)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to check membership",
			slog.Int64("user_id", userID),
			slog.Int64("team_id", teamID),
			slog.String("error", err.Error()))
		return false, store.NewStoreError("team", "is_member", MapError(err, nil))
	}
	return member, nil
}
