package service

import (
	"context"
	"log/slog"

	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/platform/logger"
	"github.com/phrazzld/taskboard-api/internal/store"
)

// TeamService lists teams and the users a principal can see.
type TeamService interface {
	// ListTeams returns the teams the principal belongs to.
	ListTeams(ctx context.Context, p domain.Principal) ([]domain.Team, error)

	// ListUsers returns the members of teamID, or every user sharing a team
	// with the principal when teamID is nil. Listing a team the principal is
	// not in returns ErrNotTeamMember.
	ListUsers(ctx context.Context, p domain.Principal, teamID *int64) ([]domain.UserSummary, error)
}

type teamService struct {
	teams  store.TeamStore
	users  store.UserStore
	logger *slog.Logger
}

// NewTeamService creates a TeamService reading from the given stores.
func NewTeamService(stores store.Stores, logger *slog.Logger) TeamService {
	if logger == nil {
		logger = slog.Default()
	}
	return &teamService{
		teams:  stores.Teams,
		users:  stores.Users,
		logger: logger.With(slog.String("service", "team")),
	}
}

func (s *teamService) ListTeams(ctx context.Context, p domain.Principal) ([]domain.Team, error) {
	teams, err := s.teams.ListForUser(ctx, p.UserID)
	return teams, wrapError("team", "list_teams", err)
}

func (s *teamService) ListUsers(
	ctx context.Context,
	p domain.Principal,
	teamID *int64,
) ([]domain.UserSummary, error) {
	if teamID == nil {
		users, err := s.users.ListTeammates(ctx, p.UserID)
		return users, wrapError("team", "list_users", err)
	}

	member, err := s.teams.IsMember(ctx, p.UserID, *teamID)
	if err != nil {
		return nil, wrapError("team", "list_users", err)
	}
	if !member {
		logger.FromContextOrDefault(ctx, s.logger).Warn("user listing denied",
			slog.Int64("user_id", p.UserID),
			slog.Int64("team_id", *teamID))
		return nil, ErrNotTeamMember
	}

	users, err := s.users.ListByTeam(ctx, *teamID)
	return users, wrapError("team", "list_users", err)
}
