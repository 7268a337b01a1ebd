package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/taskboard-api/internal/api/shared"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/platform/logger"
)

// getPrincipal extracts the authenticated principal placed in the context by
// the authentication middleware. It writes a 401 response if none is present.
func getPrincipal(w http.ResponseWriter, r *http.Request, log *slog.Logger) (domain.Principal, bool) {
	p, ok := shared.PrincipalFromContext(r.Context())
	if !ok {
		log.Warn("principal not found in request context")
		HandleAPIError(w, r, domain.ErrUnauthorized, "")
		return domain.Principal{}, false
	}
	return p, true
}

// parseID parses a positive int64 identifier.
func parseID(name, raw string) (int64, error) {
	if raw == "" {
		return 0, domain.NewValidationError(name, "is required", domain.ErrValidation)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.NewValidationError(name, "has invalid format", domain.ErrInvalidID)
	}
	return id, nil
}

// getPathID extracts a positive integer id from the URL path parameters.
func getPathID(r *http.Request, paramName string) (int64, error) {
	return parseID(paramName, chi.URLParam(r, paramName))
}

// getOptionalQueryID returns nil when the query parameter is absent.
func getOptionalQueryID(r *http.Request, name string) (*int64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	id, err := parseID(name, raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// handlePrincipalAndPathID is a composite helper that extracts both the
// principal from context and an id from the path parameters. It writes an
// error response if either extraction fails.
func handlePrincipalAndPathID(
	w http.ResponseWriter,
	r *http.Request,
	paramName string,
	log *slog.Logger,
) (domain.Principal, int64, bool) {
	if log == nil {
		log = logger.FromContextOrDefault(r.Context(), slog.Default())
	}

	p, ok := getPrincipal(w, r, log)
	if !ok {
		return domain.Principal{}, 0, false
	}

	id, err := getPathID(r, paramName)
	if err != nil {
		log.Warn("invalid "+paramName,
			slog.String("param_name", paramName),
			slog.String("value", chi.URLParam(r, paramName)))
		HandleAPIError(w, r, err, "")
		return domain.Principal{}, 0, false
	}

	return p, id, true
}
