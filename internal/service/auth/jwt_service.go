package auth

import (
	"context"
	"time"

	"github.com/phrazzld/taskboard-api/internal/domain"
)

// JWTService issues and verifies signed bearer tokens.
type JWTService interface {
	// GenerateToken creates a signed token carrying the principal's id and username.
	GenerateToken(ctx context.Context, p domain.Principal) (string, error)

	// ValidateToken checks signature and expiry and returns the embedded claims.
	// Returns ErrExpiredToken or ErrInvalidToken on failure.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims is the verified content of a token.
type Claims struct {
	UserID    int64
	Username  string
	IssuedAt  time.Time
	ExpiresAt time.Time
	ID        string
}

// Principal returns the identity the claims were issued for.
func (c *Claims) Principal() domain.Principal {
	return domain.Principal{UserID: c.UserID, Username: c.Username}
}
