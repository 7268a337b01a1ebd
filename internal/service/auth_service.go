package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/platform/logger"
	"github.com/phrazzld/taskboard-api/internal/service/auth"
	"github.com/phrazzld/taskboard-api/internal/store"
)

// AuthService exchanges credentials for tokens and resolves the current user.
type AuthService interface {
	// Login verifies username and password and returns a signed token.
	// Returns ErrInvalidCredentials when either is wrong.
	Login(ctx context.Context, username, password string) (string, error)

	// WhoAmI re-reads the principal's user and returns its current username.
	// Returns store.ErrUserNotFound if the user has since been deleted.
	WhoAmI(ctx context.Context, p domain.Principal) (string, error)
}

type authService struct {
	users    store.UserStore
	jwt      auth.JWTService
	verifier auth.PasswordVerifier
	logger   *slog.Logger
}

// NewAuthService creates an AuthService.
func NewAuthService(
	users store.UserStore,
	jwt auth.JWTService,
	verifier auth.PasswordVerifier,
	logger *slog.Logger,
) AuthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &authService{
		users:    users,
		jwt:      jwt,
		verifier: verifier,
		logger:   logger.With(slog.String("service", "auth")),
	}
}

func (s *authService) Login(ctx context.Context, username, password string) (string, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Debug("login failed: unknown username")
			return "", ErrInvalidCredentials
		}
		return "", wrapError("auth", "login", err)
	}

	if err := s.verifier.Compare(user.PasswordHash, password); err != nil {
		log.Debug("login failed: password mismatch", slog.Int64("user_id", user.ID))
		return "", ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateToken(ctx, domain.Principal{UserID: user.ID, Username: user.Username})
	if err != nil {
		return "", wrapError("auth", "login", err)
	}

	log.Info("user logged in", slog.Int64("user_id", user.ID))
	return token, nil
}

func (s *authService) WhoAmI(ctx context.Context, p domain.Principal) (string, error) {
	user, err := s.users.GetByID(ctx, p.UserID)
	if err != nil {
		return "", wrapError("auth", "whoami", err)
	}
	return user.Username, nil
}
