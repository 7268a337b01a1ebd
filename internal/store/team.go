package store

import (
	"context"

	"github.com/phrazzld/taskboard-api/internal/domain"
)

// TeamStore defines access to teams and memberships.
type TeamStore interface {
	// ListForUser returns the teams userID is a member of, ordered by id.
	ListForUser(ctx context.Context, userID int64) ([]domain.Team, error)

	// IsMember reports whether a membership row exists for (userID, teamID).
	IsMember(ctx context.Context, userID, teamID int64) (bool, error)
}
