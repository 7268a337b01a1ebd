package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/phrazzld/taskboard-api/internal/api/shared"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/service"
	"github.com/phrazzld/taskboard-api/internal/service/auth"
	"github.com/phrazzld/taskboard-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapErrorToStatusCode(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
	}{
		{"nil error", nil, http.StatusInternalServerError},
		{"missing token", auth.ErrMissingToken, http.StatusUnauthorized},
		{"invalid credentials", service.ErrInvalidCredentials, http.StatusUnauthorized},
		{"invalid token", auth.ErrInvalidToken, http.StatusForbidden},
		{"wrapped expired token", fmt.Errorf("check: %w", auth.ErrExpiredToken), http.StatusForbidden},
		{"not a team member", service.ErrNotTeamMember, http.StatusForbidden},
		{"task not found", store.ErrTaskNotFound, http.StatusNotFound},
		{"user not found", fmt.Errorf("whoami: %w", store.ErrUserNotFound), http.StatusNotFound},
		{"duplicate", store.ErrDuplicate, http.StatusConflict},
		{"invalid entity", store.ErrInvalidEntity, http.StatusBadRequest},
		{"domain validation", domain.NewValidationError("title", "is required", domain.ErrEmptyContent), http.StatusBadRequest},
		{"empty body", shared.ErrEmptyBody, http.StatusBadRequest},
		{"bad json", fmt.Errorf("%w: unexpected EOF", shared.ErrInvalidJSON), http.StatusBadRequest},
		{"storage failure", errors.New("connection refused"), http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expectedStatus, MapErrorToStatusCode(tc.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"nil", nil, "Server error"},
		{"credentials", service.ErrInvalidCredentials, "Invalid credentials"},
		{"task not found", store.ErrTaskNotFound, "Task not found"},
		{"user not found", store.ErrUserNotFound, "User not found"},
		{"generic not found", store.ErrNotFound, "Not found"},
		{"validation", domain.NewValidationError("id", "has invalid format", domain.ErrInvalidID), "Invalid id: has invalid format"},
		{"storage failure", errors.New(`pq: relation "tasks" does not exist`), "Server error"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, GetSafeErrorMessage(tc.err))
		})
	}
}

func TestSanitizeValidationError(t *testing.T) {
	err := shared.ValidateRequest(CommentRequest{Content: "hi"})
	require.Error(t, err)
	assert.Equal(t, "Invalid task_id: required field", SanitizeValidationError(err))

	err = shared.ValidateRequest(TaskRequest{Title: "t", TeamID: -1})
	require.Error(t, err)
	assert.Equal(t, "Invalid team_id: too small", SanitizeValidationError(err))

	assert.Equal(t, "Validation error", SanitizeValidationError(errors.New("other")))
}

func TestJSONFieldName(t *testing.T) {
	assert.Equal(t, "title", jsonFieldName("Title"))
	assert.Equal(t, "team_id", jsonFieldName("TeamID"))
	assert.Equal(t, "assigned_to", jsonFieldName("AssignedTo"))
	assert.Equal(t, "due_date", jsonFieldName("DueDate"))
}

func TestHandleAPIErrorDoesNotLeakCause(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
	rr := httptest.NewRecorder()

	cause := errors.New("SELECT * FROM users WHERE password_hash = '$2a$10$abc' failed")
	HandleAPIError(rr, req, cause, "")

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, "Server error")
	assert.False(t, strings.Contains(body, "SELECT"), "response leaked SQL: %s", body)
}

func TestHandleAPIErrorDefaultMessage(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/login", nil)

	rr := httptest.NewRecorder()
	HandleAPIError(rr, req, errors.New("boom"), "Failed to authenticate user")
	assert.Contains(t, rr.Body.String(), "Failed to authenticate user")

	rr = httptest.NewRecorder()
	HandleAPIError(rr, req, service.ErrInvalidCredentials, "Failed to authenticate user")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Contains(t, rr.Body.String(), "Invalid credentials")
}
