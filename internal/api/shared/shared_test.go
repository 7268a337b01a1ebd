package shared

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTraceID(t *testing.T) {
	t.Parallel()

	assert.Empty(t, GetTraceID(context.Background()))

	ctx := SetTraceID(context.Background())
	id := GetTraceID(ctx)
	assert.Len(t, id, 32)
	assert.NotEqual(t, id, GetTraceID(SetTraceID(context.Background())))
}

func TestPrincipalContext(t *testing.T) {
	t.Parallel()

	_, ok := PrincipalFromContext(context.Background())
	assert.False(t, ok)

	_, ok = PrincipalFromContext(WithPrincipal(context.Background(), domain.Principal{}))
	assert.False(t, ok, "zero principal must not count as authenticated")

	want := domain.Principal{UserID: 3, Username: "carol"}
	got, ok := PrincipalFromContext(WithPrincipal(context.Background(), want))
	require.True(t, ok)
	assert.Equal(t, want, got)
}

func TestDecodeAndValidate(t *testing.T) {
	t.Parallel()

	type body struct {
		Name string `json:"name" validate:"required"`
	}

	tests := []struct {
		name    string
		payload string
		wantErr bool
		isEmpty bool
	}{
		{name: "valid", payload: `{"name":"x","extra":1}`},
		{name: "missing field", payload: `{}`, wantErr: true},
		{name: "malformed", payload: `{"name":`, wantErr: true},
		{name: "empty", payload: ``, wantErr: true, isEmpty: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.payload))
			var b body
			err := DecodeAndValidate(httptest.NewRecorder(), r, &b)
			if !tt.wantErr {
				require.NoError(t, err)
				assert.Equal(t, "x", b.Name)
				return
			}
			require.Error(t, err)
			if tt.isEmpty {
				assert.ErrorIs(t, err, ErrEmptyBody)
			}
		})
	}
}

func TestRespondWithErrorAndLogRedacts(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	log, err := logger.SetupWithWriter("debug", &logs)
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
	r = r.WithContext(logger.WithLogger(SetTraceID(r.Context()), log))
	w := httptest.NewRecorder()

	cause := errors.New("connect postgres://admin:hunter2@db:5432/app failed")
	RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Server error", cause)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Server error", resp.Error)
	assert.Equal(t, GetTraceID(r.Context()), resp.TraceID)
	assert.NotContains(t, w.Body.String(), "hunter2")

	assert.Contains(t, logs.String(), `"level":"ERROR"`)
	assert.NotContains(t, logs.String(), "hunter2")
}
