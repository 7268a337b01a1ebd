package service_test

import (
	"context"
	"testing"

	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/mocks"
	"github.com/phrazzld/taskboard-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestTeamService(t *testing.T) {
	p := domain.Principal{UserID: 1, Username: "alice"}
	teamID := int64(10)

	t.Run("list teams", func(t *testing.T) {
		set := mocks.NewStoreSet()
		teams := []domain.Team{{ID: 10, Name: "core"}}
		set.Teams.On("ListForUser", mock.Anything, int64(1)).Return(teams, nil)

		got, err := service.NewTeamService(set.Stores(), discard).ListTeams(context.Background(), p)
		require.NoError(t, err)
		assert.Equal(t, teams, got)
	})

	t.Run("list teammates without filter", func(t *testing.T) {
		set := mocks.NewStoreSet()
		users := []domain.UserSummary{{ID: 1, Username: "alice"}, {ID: 2, Username: "bob"}}
		set.Users.On("ListTeammates", mock.Anything, int64(1)).Return(users, nil)

		got, err := service.NewTeamService(set.Stores(), discard).ListUsers(context.Background(), p, nil)
		require.NoError(t, err)
		assert.Equal(t, users, got)
		set.Teams.AssertNotCalled(t, "IsMember", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("list members of own team", func(t *testing.T) {
		set := mocks.NewStoreSet()
		users := []domain.UserSummary{{ID: 1, Username: "alice"}}
		set.Teams.On("IsMember", mock.Anything, int64(1), teamID).Return(true, nil)
		set.Users.On("ListByTeam", mock.Anything, teamID).Return(users, nil)

		got, err := service.NewTeamService(set.Stores(), discard).ListUsers(context.Background(), p, &teamID)
		require.NoError(t, err)
		assert.Equal(t, users, got)
		set.AssertExpectations(t)
	})

	t.Run("foreign team is forbidden", func(t *testing.T) {
		set := mocks.NewStoreSet()
		set.Teams.On("IsMember", mock.Anything, int64(1), teamID).Return(false, nil)

		_, err := service.NewTeamService(set.Stores(), discard).ListUsers(context.Background(), p, &teamID)
		assert.ErrorIs(t, err, service.ErrNotTeamMember)
		set.Users.AssertNotCalled(t, "ListByTeam", mock.Anything, mock.Anything)
	})
}

func TestNotificationService(t *testing.T) {
	set := mocks.NewStoreSet()
	uid := int64(1)
	notes := []domain.Notification{{ID: 2, UserID: &uid, Message: "Task updated: x"}}
	set.Notifications.On("ListForUser", mock.Anything, uid).Return(notes, nil)

	got, err := service.NewNotificationService(set.Notifications).
		ListNotifications(context.Background(), domain.Principal{UserID: uid})
	require.NoError(t, err)
	assert.Equal(t, notes, got)
}
