package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/phrazzld/taskboard-api/internal/config"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-that-is-long-enough-for-testing"

var testPrincipal = domain.Principal{UserID: 7, Username: "alice"}

func TestGenerateToken(t *testing.T) {
	t.Parallel()

	fixedTime := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	svc := newHMACJWTService(testSecret, time.Hour, func() time.Time { return fixedTime })

	token, err := svc.GenerateToken(context.Background(), testPrincipal)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, testPrincipal, claims.Principal())
	assert.Equal(t, fixedTime.Unix(), claims.IssuedAt.Unix())
	assert.Equal(t, fixedTime.Add(time.Hour).Unix(), claims.ExpiresAt.Unix())
	assert.NotEmpty(t, claims.ID)
}

func TestGenerateTokenRejectsInvalidPrincipal(t *testing.T) {
	t.Parallel()

	svc := newHMACJWTService(testSecret, time.Hour, time.Now)
	_, err := svc.GenerateToken(context.Background(), domain.Principal{Username: "nobody"})
	assert.ErrorIs(t, err, domain.ErrInvalidID)
}

func TestValidateToken(t *testing.T) {
	t.Parallel()

	fixedTime := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	lifetime := time.Hour
	at := func(ts time.Time) func() time.Time { return func() time.Time { return ts } }

	issue := func(t *testing.T, secret string) string {
		t.Helper()
		tok, err := newHMACJWTService(secret, lifetime, at(fixedTime)).
			GenerateToken(context.Background(), testPrincipal)
		require.NoError(t, err)
		return tok
	}

	tests := []struct {
		name    string
		token   func(t *testing.T) string
		now     time.Time
		wantErr error
	}{
		{
			name:  "valid token",
			token: func(t *testing.T) string { return issue(t, testSecret) },
			now:   fixedTime.Add(30 * time.Minute),
		},
		{
			name:  "within clock skew after expiry",
			token: func(t *testing.T) string { return issue(t, testSecret) },
			now:   fixedTime.Add(lifetime + 10*time.Second),
		},
		{
			name:    "expired token",
			token:   func(t *testing.T) string { return issue(t, testSecret) },
			now:     fixedTime.Add(lifetime + time.Hour),
			wantErr: ErrExpiredToken,
		},
		{
			name:    "wrong signing key",
			token:   func(t *testing.T) string { return issue(t, "wrong-secret-that-is-long-enough-for-testing") },
			now:     fixedTime,
			wantErr: ErrInvalidToken,
		},
		{
			name:    "malformed token",
			token:   func(t *testing.T) string { return "not.a.jwt" },
			now:     fixedTime,
			wantErr: ErrInvalidToken,
		},
		{
			name:    "empty token",
			token:   func(t *testing.T) string { return "" },
			now:     fixedTime,
			wantErr: ErrMissingToken,
		},
		{
			name: "unsigned token",
			token: func(t *testing.T) string {
				claims := jwtCustomClaims{
					UserID: 7,
					RegisteredClaims: jwt.RegisteredClaims{
						ExpiresAt: jwt.NewNumericDate(fixedTime.Add(time.Hour)),
					},
				}
				tok, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).
					SignedString(jwt.UnsafeAllowNoneSignatureType)
				require.NoError(t, err)
				return tok
			},
			now:     fixedTime,
			wantErr: ErrInvalidToken,
		},
		{
			name: "missing expiry",
			token: func(t *testing.T) string {
				tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwtCustomClaims{UserID: 7}).
					SignedString([]byte(testSecret))
				require.NoError(t, err)
				return tok
			},
			now:     fixedTime,
			wantErr: ErrInvalidToken,
		},
		{
			name: "missing user id",
			token: func(t *testing.T) string {
				claims := jwtCustomClaims{
					Username: "ghost",
					RegisteredClaims: jwt.RegisteredClaims{
						ExpiresAt: jwt.NewNumericDate(fixedTime.Add(time.Hour)),
					},
				}
				tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
				require.NoError(t, err)
				return tok
			},
			now:     fixedTime,
			wantErr: ErrInvalidToken,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc := newHMACJWTService(testSecret, lifetime, at(tt.now))
			claims, err := svc.ValidateToken(context.Background(), tt.token(t))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, claims)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testPrincipal.UserID, claims.UserID)
		})
	}
}

func TestNewJWTService(t *testing.T) {
	t.Parallel()

	_, err := NewJWTService(config.AuthConfig{JWTSecret: "short", TokenLifetimeMinutes: 60})
	assert.Error(t, err)

	_, err = NewJWTService(config.AuthConfig{JWTSecret: testSecret, TokenLifetimeMinutes: 0})
	assert.Error(t, err)

	svc, err := NewJWTService(config.AuthConfig{JWTSecret: testSecret, TokenLifetimeMinutes: 60})
	require.NoError(t, err)
	assert.NotNil(t, svc)
}

func TestBcryptVerifier(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("hunter2", 4)
	require.NoError(t, err)

	v := NewBcryptVerifier()
	assert.NoError(t, v.Compare(hash, "hunter2"))
	assert.Error(t, v.Compare(hash, "hunter3"))
	assert.Error(t, v.Compare("not-a-hash", "hunter2"))

	_, err = HashPassword("x", 3)
	assert.Error(t, err)
}
