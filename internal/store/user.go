package store

import (
	"context"

	"github.com/phrazzld/taskboard-api/internal/domain"
)

// UserStore defines read access to users. Users are provisioned out of band.
type UserStore interface {
	// GetByID retrieves a user by id. Returns ErrUserNotFound if absent.
	GetByID(ctx context.Context, id int64) (*domain.User, error)

	// GetByUsername retrieves a user, including the password hash, by username.
	// Returns ErrUserNotFound if absent.
	GetByUsername(ctx context.Context, username string) (*domain.User, error)

	// ListByTeam returns every member of the team, ordered by id.
	ListByTeam(ctx context.Context, teamID int64) ([]domain.UserSummary, error)

	// ListTeammates returns every user sharing at least one team with userID,
	// including userID itself, ordered by id.
	ListTeammates(ctx context.Context, userID int64) ([]domain.UserSummary, error)

	// GetAssignee returns the username and role name of a user for task
	// enrichment. Both are nil when the user does not exist; role is nil when
	// the user has no role.
	GetAssignee(ctx context.Context, userID int64) (username, role *string, err error)
}
