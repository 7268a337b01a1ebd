package auth

import (
	"net/http"
	"strings"
)

// TokenFromRequest returns the bearer token from the Authorization header,
// or from the "token" query parameter when allowQuery is set. Browsers cannot
// set headers on WebSocket handshakes, so the realtime endpoint allows the
// query form. Returns ErrMissingToken when neither is present or the header
// carries only the scheme, and ErrInvalidToken when the header is not a
// bearer credential.
func TokenFromRequest(r *http.Request, allowQuery bool) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		if allowQuery {
			if tok := r.URL.Query().Get("token"); tok != "" {
				return tok, nil
			}
		}
		return "", ErrMissingToken
	}

	header = strings.TrimSpace(header)
	if strings.EqualFold(header, "Bearer") {
		return "", ErrMissingToken
	}

	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", ErrInvalidToken
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", ErrMissingToken
	}
	return token, nil
}
