package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/events"
	"github.com/phrazzld/taskboard-api/internal/mocks"
	"github.com/phrazzld/taskboard-api/internal/service"
	"github.com/phrazzld/taskboard-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }
func int64Ptr(v int64) *int64 { return &v }

type taskFixture struct {
	set     *mocks.StoreSet
	tx      *mocks.Transactor
	emitter *mocks.RecordingEmitter
	svc     service.TaskService
}

func newTaskFixture() *taskFixture {
	set := mocks.NewStoreSet()
	tx := &mocks.Transactor{Stores: set.Stores()}
	emitter := &mocks.RecordingEmitter{}
	return &taskFixture{
		set:     set,
		tx:      tx,
		emitter: emitter,
		svc:     service.NewTaskService(set.Tasks, tx, emitter, discard),
	}
}

var principal = domain.Principal{UserID: 1, Username: "alice"}

func TestTaskService_CreateTask(t *testing.T) {
	assignee := int64(2)
	in := domain.NewTaskInput{
		TaskFields: domain.TaskFields{Title: "Ship it", Status: "open", AssignedTo: &assignee},
		TeamID:     10,
	}
	stored := &domain.Task{ID: 5, Title: "Ship it", Status: "open", AssignedTo: &assignee, TeamID: 10}

	t.Run("writes task and notification then broadcasts", func(t *testing.T) {
		f := newTaskFixture()
		f.set.Teams.On("IsMember", mock.Anything, int64(1), int64(10)).Return(true, nil)
		f.set.Tasks.On("Create", mock.Anything, in).Return(stored, nil)
		f.set.Users.On("GetAssignee", mock.Anything, assignee).Return(strPtr("bob"), strPtr("dev"), nil)
		f.set.Notifications.On("Create", mock.Anything, &assignee, "New task assigned: Ship it").
			Return(&domain.Notification{ID: 9, UserID: &assignee, Message: "New task assigned: Ship it"}, nil)

		got, err := f.svc.CreateTask(context.Background(), principal, in)
		require.NoError(t, err)

		assert.Equal(t, int64(5), got.ID)
		assert.Equal(t, "bob", *got.AssignedUser)
		assert.Equal(t, "dev", *got.AssignedRole)
		assert.Equal(t, 1, f.tx.Commits)
		assert.Equal(t, []string{events.TypeTaskUpdate, events.TypeNotification}, f.emitter.Types())

		var payload domain.EnrichedTask
		require.NoError(t, f.emitter.Events()[0].UnmarshalPayload(&payload))
		assert.Equal(t, *got, payload)
		f.set.AssertExpectations(t)
	})

	t.Run("unassigned task skips enrichment and writes an unaddressed notification", func(t *testing.T) {
		f := newTaskFixture()
		bare := domain.NewTaskInput{TaskFields: domain.TaskFields{Title: "Solo"}, TeamID: 10}
		f.set.Teams.On("IsMember", mock.Anything, int64(1), int64(10)).Return(true, nil)
		f.set.Tasks.On("Create", mock.Anything, bare).Return(&domain.Task{ID: 6, Title: "Solo", TeamID: 10}, nil)
		f.set.Notifications.On("Create", mock.Anything, (*int64)(nil), "New task assigned: Solo").
			Return(&domain.Notification{ID: 10, Message: "New task assigned: Solo"}, nil)

		got, err := f.svc.CreateTask(context.Background(), principal, bare)
		require.NoError(t, err)
		assert.Nil(t, got.AssignedUser)
		assert.Nil(t, got.AssignedRole)
		f.set.Users.AssertNotCalled(t, "GetAssignee", mock.Anything, mock.Anything)
		f.set.Notifications.AssertNumberOfCalls(t, "Create", 1)
		assert.Equal(t, []string{events.TypeTaskUpdate, events.TypeNotification}, f.emitter.Types())
	})

	t.Run("non-member is rejected without writes or broadcasts", func(t *testing.T) {
		f := newTaskFixture()
		f.set.Teams.On("IsMember", mock.Anything, int64(1), int64(10)).Return(false, nil)

		_, err := f.svc.CreateTask(context.Background(), principal, in)
		assert.ErrorIs(t, err, service.ErrNotTeamMember)
		assert.Equal(t, 1, f.tx.Rollbacks)
		assert.Empty(t, f.emitter.Events())
		f.set.Tasks.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("invalid input never opens a transaction", func(t *testing.T) {
		f := newTaskFixture()
		_, err := f.svc.CreateTask(context.Background(), principal, domain.NewTaskInput{TeamID: 10})
		assert.True(t, domain.IsValidationError(err))
		assert.Zero(t, f.tx.Commits+f.tx.Rollbacks)
	})

	t.Run("notification failure rolls back and stays silent", func(t *testing.T) {
		f := newTaskFixture()
		f.set.Teams.On("IsMember", mock.Anything, int64(1), int64(10)).Return(true, nil)
		f.set.Tasks.On("Create", mock.Anything, in).Return(stored, nil)
		f.set.Users.On("GetAssignee", mock.Anything, assignee).Return(strPtr("bob"), nil, nil)
		f.set.Notifications.On("Create", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, errors.New("disk full"))

		_, err := f.svc.CreateTask(context.Background(), principal, in)
		require.Error(t, err)
		var svcErr *service.ServiceError
		assert.ErrorAs(t, err, &svcErr)
		assert.Equal(t, 1, f.tx.Rollbacks)
		assert.Empty(t, f.emitter.Events())
	})

	t.Run("broadcast failure does not fail the request", func(t *testing.T) {
		f := newTaskFixture()
		f.emitter.Err = errors.New("hub gone")
		f.set.Teams.On("IsMember", mock.Anything, int64(1), int64(10)).Return(true, nil)
		f.set.Tasks.On("Create", mock.Anything, in).Return(stored, nil)
		f.set.Users.On("GetAssignee", mock.Anything, assignee).Return(strPtr("bob"), nil, nil)
		f.set.Notifications.On("Create", mock.Anything, mock.Anything, mock.Anything).
			Return(&domain.Notification{ID: 1}, nil)

		_, err := f.svc.CreateTask(context.Background(), principal, in)
		assert.NoError(t, err)
		assert.Len(t, f.emitter.Events(), 2)
	})
}

func TestTaskService_UpdateTask(t *testing.T) {
	fields := domain.TaskFields{Title: "Renamed", Status: "done", AssignedTo: int64Ptr(3)}

	t.Run("broadcasts the row written by the update", func(t *testing.T) {
		f := newTaskFixture()
		written := &domain.Task{ID: 5, Title: "Renamed", Status: "done", AssignedTo: int64Ptr(3), TeamID: 10}
		f.set.Tasks.On("GetVisible", mock.Anything, int64(1), int64(5)).Return(&domain.Task{ID: 5, TeamID: 10}, nil)
		f.set.Tasks.On("Update", mock.Anything, int64(5), fields).Return(written, nil)
		f.set.Users.On("GetAssignee", mock.Anything, int64(3)).Return(strPtr("carol"), nil, nil)
		f.set.Notifications.On("Create", mock.Anything, int64Ptr(3), "Task updated: Renamed").
			Return(&domain.Notification{ID: 11}, nil)

		got, err := f.svc.UpdateTask(context.Background(), principal, 5, fields)
		require.NoError(t, err)
		assert.Equal(t, "Renamed", got.Title)
		assert.Equal(t, "carol", *got.AssignedUser)
		assert.Equal(t, []string{events.TypeTaskUpdate, events.TypeNotification}, f.emitter.Types())
	})

	t.Run("task outside caller's teams is not found", func(t *testing.T) {
		f := newTaskFixture()
		f.set.Tasks.On("GetVisible", mock.Anything, int64(1), int64(5)).Return(nil, store.ErrTaskNotFound)

		_, err := f.svc.UpdateTask(context.Background(), principal, 5, fields)
		assert.ErrorIs(t, err, store.ErrTaskNotFound)
		assert.Empty(t, f.emitter.Events())
		f.set.Tasks.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
		f.set.Notifications.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("row vanished between check and update", func(t *testing.T) {
		f := newTaskFixture()
		f.set.Tasks.On("GetVisible", mock.Anything, int64(1), int64(5)).Return(&domain.Task{ID: 5}, nil)
		f.set.Tasks.On("Update", mock.Anything, int64(5), fields).Return(nil, store.ErrTaskNotFound)

		_, err := f.svc.UpdateTask(context.Background(), principal, 5, fields)
		assert.ErrorIs(t, err, store.ErrTaskNotFound)
		assert.Empty(t, f.emitter.Events())
	})
}

func TestTaskService_DeleteTask(t *testing.T) {
	t.Run("notifies the deleting principal", func(t *testing.T) {
		f := newTaskFixture()
		f.set.Tasks.On("GetVisible", mock.Anything, int64(1), int64(5)).Return(&domain.Task{ID: 5}, nil)
		f.set.Tasks.On("Delete", mock.Anything, int64(5)).
			Return(&domain.Task{ID: 5, Title: "Old", AssignedTo: int64Ptr(2)}, nil)
		f.set.Notifications.On("Create", mock.Anything, int64Ptr(1), "Task deleted: Old").
			Return(&domain.Notification{ID: 12, UserID: int64Ptr(1), Message: "Task deleted: Old"}, nil)

		require.NoError(t, f.svc.DeleteTask(context.Background(), principal, 5))

		evs := f.emitter.Events()
		require.Len(t, evs, 2)
		assert.Equal(t, events.TypeTaskUpdate, evs[0].Type)
		assert.JSONEq(t, `{"id":5,"deleted":true}`, string(evs[0].Payload))
		assert.Equal(t, events.TypeNotification, evs[1].Type)
		f.set.AssertExpectations(t)
	})

	t.Run("missing task writes no notification", func(t *testing.T) {
		f := newTaskFixture()
		f.set.Tasks.On("GetVisible", mock.Anything, int64(1), int64(404)).Return(nil, store.ErrTaskNotFound)

		err := f.svc.DeleteTask(context.Background(), principal, 404)
		assert.ErrorIs(t, err, store.ErrTaskNotFound)
		assert.Empty(t, f.emitter.Events())
		f.set.Notifications.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestTaskService_ListTasks(t *testing.T) {
	f := newTaskFixture()
	tasks := []domain.EnrichedTask{{Task: domain.Task{ID: 1, Title: "a", TeamID: 10}}}
	f.set.Tasks.On("ListForUser", mock.Anything, int64(1)).Return(tasks, nil)

	got, err := f.svc.ListTasks(context.Background(), principal)
	require.NoError(t, err)
	assert.Equal(t, tasks, got)
}
