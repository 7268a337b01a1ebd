package middleware

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/taskboard-api/internal/api/shared"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/mocks"
	"github.com/phrazzld/taskboard-api/internal/platform/logger"
	"github.com/phrazzld/taskboard-api/internal/service/auth"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func principalEcho() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, ok := shared.PrincipalFromContext(r.Context())
		if !ok {
			w.WriteHeader(http.StatusTeapot)
			return
		}
		_, _ = w.Write([]byte(p.Username))
	})
}

func TestAuthenticate(t *testing.T) {
	valid := &auth.Claims{UserID: 4, Username: "dana"}

	tests := []struct {
		name        string
		header      string
		validateErr error
		wantStatus  int
		wantBody    string
	}{
		{"valid token", "Bearer good", nil, http.StatusOK, "dana"},
		{"lowercase scheme", "bearer good", nil, http.StatusOK, "dana"},
		{"missing header", "", nil, http.StatusUnauthorized, "No token provided"},
		{"scheme without token", "Bearer", nil, http.StatusUnauthorized, "No token provided"},
		{"wrong scheme", "Basic abc", nil, http.StatusForbidden, "Invalid authorization format"},
		{"invalid token", "Bearer bad", auth.ErrInvalidToken, http.StatusForbidden, "Invalid token"},
		{"expired token", "Bearer old", auth.ErrExpiredToken, http.StatusForbidden, "Token expired"},
		{"unexpected failure", "Bearer x", errors.New("boom"), http.StatusInternalServerError, "Authentication error"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			jwt := &mocks.MockJWTService{Claims: valid, ValidateErr: tc.validateErr}
			if tc.validateErr != nil {
				jwt.Claims = nil
			}
			h := NewAuthMiddleware(jwt).Authenticate(principalEcho())

			req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)

			assert.Equal(t, tc.wantStatus, rr.Code)
			assert.Contains(t, rr.Body.String(), tc.wantBody)
		})
	}
}

func TestAuthenticateIgnoresQueryToken(t *testing.T) {
	jwt := &mocks.MockJWTService{Claims: &auth.Claims{UserID: 4, Username: "dana"}}
	h := NewAuthMiddleware(jwt).Authenticate(principalEcho())

	req := httptest.NewRequest(http.MethodGet, "/api/tasks?token=good", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestTraceMiddleware(t *testing.T) {
	var buf bytes.Buffer
	base, err := logger.SetupWithWriter("debug", &buf)
	require.NoError(t, err)

	var traceID string
	h := chimw.RequestID(TraceMiddleware(base)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID = shared.GetTraceID(r.Context())
		logger.FromContext(r.Context()).Info("inside handler")
	})))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/teams", nil))

	require.Len(t, traceID, 32)
	out := buf.String()
	assert.Contains(t, out, `"trace_id":"`+traceID+`"`)
	assert.Contains(t, out, "request_id")
	assert.Equal(t, 2, strings.Count(out, traceID))
}

func TestHTTPMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewHTTPMetrics(reg)
	require.NoError(t, err)

	r := chi.NewRouter()
	r.Use(m.Handler)
	r.Get("/api/tasks/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	for _, id := range []string{"1", "2", "3"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/tasks/"+id, nil))
	}

	assert.Equal(t, 3.0, testutil.ToFloat64(m.requests.WithLabelValues("/api/tasks/{id}", "GET", "404")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.duration))

	_, err = NewHTTPMetrics(reg)
	assert.Error(t, err, "duplicate registration must fail")
}

func TestAuthenticatedLoggerCarriesUser(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewJSONHandler(&buf, nil))

	jwt := &mocks.MockJWTService{Claims: &auth.Claims{UserID: 4, Username: "dana"}}
	h := TraceMiddleware(base)(NewAuthMiddleware(jwt).Authenticate(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			p, _ := shared.PrincipalFromContext(r.Context())
			assert.Equal(t, domain.Principal{UserID: 4, Username: "dana"}, p)
			logger.FromContext(r.Context()).Info("handled")
		})))

	req := httptest.NewRequest(http.MethodGet, "/api/teams", nil)
	req.Header.Set("Authorization", "Bearer good")
	h.ServeHTTP(httptest.NewRecorder(), req)

	assert.Contains(t, buf.String(), `"user_id":4`)
}
