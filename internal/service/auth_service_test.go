package service_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/mocks"
	"github.com/phrazzld/taskboard-api/internal/service"
	"github.com/phrazzld/taskboard-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestAuthService_Login(t *testing.T) {
	user := &domain.User{ID: 7, Username: "alice", PasswordHash: "hash"}

	t.Run("success issues token for user", func(t *testing.T) {
		users := new(mocks.MockUserStore)
		users.On("GetByUsername", mock.Anything, "alice").Return(user, nil)
		var issued domain.Principal
		jwt := &mocks.MockJWTService{GenerateTokenFn: func(_ context.Context, p domain.Principal) (string, error) {
			issued = p
			return "signed", nil
		}}
		verifier := &mocks.MockPasswordVerifier{ShouldSucceed: true}

		svc := service.NewAuthService(users, jwt, verifier, discard)
		token, err := svc.Login(context.Background(), "alice", "secret")

		require.NoError(t, err)
		assert.Equal(t, "signed", token)
		assert.Equal(t, domain.Principal{UserID: 7, Username: "alice"}, issued)
		assert.Equal(t, 1, verifier.Calls)
		users.AssertExpectations(t)
	})

	t.Run("unknown user", func(t *testing.T) {
		users := new(mocks.MockUserStore)
		users.On("GetByUsername", mock.Anything, "ghost").Return(nil, store.ErrUserNotFound)
		verifier := &mocks.MockPasswordVerifier{ShouldSucceed: true}

		svc := service.NewAuthService(users, &mocks.MockJWTService{}, verifier, discard)
		_, err := svc.Login(context.Background(), "ghost", "secret")

		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
		assert.Zero(t, verifier.Calls)
	})

	t.Run("wrong password", func(t *testing.T) {
		users := new(mocks.MockUserStore)
		users.On("GetByUsername", mock.Anything, "alice").Return(user, nil)

		svc := service.NewAuthService(users, &mocks.MockJWTService{}, &mocks.MockPasswordVerifier{}, discard)
		_, err := svc.Login(context.Background(), "alice", "nope")

		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	})

	t.Run("storage failure is not reported as bad credentials", func(t *testing.T) {
		users := new(mocks.MockUserStore)
		users.On("GetByUsername", mock.Anything, "alice").Return(nil, errors.New("conn refused"))

		svc := service.NewAuthService(users, &mocks.MockJWTService{}, &mocks.MockPasswordVerifier{}, discard)
		_, err := svc.Login(context.Background(), "alice", "x")

		require.Error(t, err)
		assert.NotErrorIs(t, err, service.ErrInvalidCredentials)
		var svcErr *service.ServiceError
		assert.ErrorAs(t, err, &svcErr)
	})

	t.Run("signing failure", func(t *testing.T) {
		users := new(mocks.MockUserStore)
		users.On("GetByUsername", mock.Anything, "alice").Return(user, nil)
		jwt := &mocks.MockJWTService{Err: errors.New("sign failed")}

		svc := service.NewAuthService(users, jwt, &mocks.MockPasswordVerifier{ShouldSucceed: true}, discard)
		_, err := svc.Login(context.Background(), "alice", "secret")

		assert.Error(t, err)
	})
}

func TestAuthService_WhoAmI(t *testing.T) {
	users := new(mocks.MockUserStore)
	users.On("GetByID", mock.Anything, int64(7)).Return(&domain.User{ID: 7, Username: "alice2"}, nil)
	users.On("GetByID", mock.Anything, int64(8)).Return(nil, store.ErrUserNotFound)

	svc := service.NewAuthService(users, &mocks.MockJWTService{}, &mocks.MockPasswordVerifier{}, discard)

	name, err := svc.WhoAmI(context.Background(), domain.Principal{UserID: 7, Username: "alice"})
	require.NoError(t, err)
	assert.Equal(t, "alice2", name)

	_, err = svc.WhoAmI(context.Background(), domain.Principal{UserID: 8})
	assert.ErrorIs(t, err, store.ErrNotFound)
}
