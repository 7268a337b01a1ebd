package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/taskboard-api/internal/api/shared"
	"github.com/phrazzld/taskboard-api/internal/platform/logger"
	"github.com/phrazzld/taskboard-api/internal/service"
)

// TeamHandler serves team and user listings.
type TeamHandler struct {
	teamService service.TeamService
	logger      *slog.Logger
}

// NewTeamHandler creates a new TeamHandler.
func NewTeamHandler(teamService service.TeamService, logger *slog.Logger) *TeamHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &TeamHandler{
		teamService: teamService,
		logger:      logger.With(slog.String("component", "team_handler")),
	}
}

// ListTeams handles GET /api/teams.
func (h *TeamHandler) ListTeams(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	p, ok := getPrincipal(w, r, log)
	if !ok {
		return
	}

	teams, err := h.teamService.ListTeams(r.Context(), p)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, teams)
}

// ListUsers handles GET /api/users with an optional team_id query parameter.
func (h *TeamHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	p, ok := getPrincipal(w, r, log)
	if !ok {
		return
	}

	teamID, err := getOptionalQueryID(r, "team_id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	users, err := h.teamService.ListUsers(r.Context(), p, teamID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, users)
}
