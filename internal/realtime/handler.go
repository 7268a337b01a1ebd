package realtime

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/phrazzld/taskboard-api/internal/api/shared"
	"github.com/phrazzld/taskboard-api/internal/platform/logger"
	"github.com/phrazzld/taskboard-api/internal/service/auth"
)

// Handler upgrades authenticated requests to realtime sessions.
type Handler struct {
	hub      *Hub
	jwt      auth.JWTService
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

// NewHandler creates a Handler. allowedOrigins follows the CORS setting: "*"
// accepts any origin; otherwise the Origin header must match an entry.
func NewHandler(hub *Hub, jwt auth.JWTService, allowedOrigins []string, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		hub: hub,
		jwt: jwt,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
		logger: logger.With(slog.String("component", "realtime_handler")),
	}
}

// ServeHTTP authenticates the handshake, upgrades and serves the session
// until it ends.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	token, err := auth.TokenFromRequest(r, true)
	if err != nil {
		status := http.StatusForbidden
		if errors.Is(err, auth.ErrMissingToken) {
			status = http.StatusUnauthorized
		}
		shared.RespondWithErrorAndLog(w, r, status, "Authentication required", err)
		return
	}

	claims, err := h.jwt.ValidateToken(r.Context(), token)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusForbidden, "Invalid token", err)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written an error response.
		log.Debug("websocket upgrade failed", slog.String("error", err.Error()))
		return
	}

	newSession(h.hub, conn, claims.Principal()).run(r.Context())
}

func originChecker(allowed []string) func(r *http.Request) bool {
	set := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		o = strings.TrimSpace(o)
		if o == "*" {
			return func(*http.Request) bool { return true }
		}
		if o != "" {
			set[strings.ToLower(o)] = struct{}{}
		}
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		u, err := url.Parse(origin)
		if err != nil {
			return false
		}
		if strings.EqualFold(u.Host, r.Host) {
			return true
		}
		_, ok := set[strings.ToLower(origin)]
		return ok
	}
}
