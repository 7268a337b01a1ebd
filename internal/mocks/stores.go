package mocks

import (
	"context"

	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// MockUserStore is a testify mock of store.UserStore.
type MockUserStore struct {
	mock.Mock
}

var _ store.UserStore = (*MockUserStore)(nil)

func (m *MockUserStore) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if u, ok := args.Get(0).(*domain.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if u, ok := args.Get(0).(*domain.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserStore) ListByTeam(ctx context.Context, teamID int64) ([]domain.UserSummary, error) {
	args := m.Called(ctx, teamID)
	users, _ := args.Get(0).([]domain.UserSummary)
	return users, args.Error(1)
}

func (m *MockUserStore) ListTeammates(ctx context.Context, userID int64) ([]domain.UserSummary, error) {
	args := m.Called(ctx, userID)
	users, _ := args.Get(0).([]domain.UserSummary)
	return users, args.Error(1)
}

func (m *MockUserStore) GetAssignee(ctx context.Context, userID int64) (*string, *string, error) {
	args := m.Called(ctx, userID)
	name, _ := args.Get(0).(*string)
	role, _ := args.Get(1).(*string)
	return name, role, args.Error(2)
}

// MockTeamStore is a testify mock of store.TeamStore.
type MockTeamStore struct {
	mock.Mock
}

var _ store.TeamStore = (*MockTeamStore)(nil)

func (m *MockTeamStore) ListForUser(ctx context.Context, userID int64) ([]domain.Team, error) {
	args := m.Called(ctx, userID)
	teams, _ := args.Get(0).([]domain.Team)
	return teams, args.Error(1)
}

func (m *MockTeamStore) IsMember(ctx context.Context, userID, teamID int64) (bool, error) {
	args := m.Called(ctx, userID, teamID)
	return args.Bool(0), args.Error(1)
}

// MockTaskStore is a testify mock of store.TaskStore.
type MockTaskStore struct {
	mock.Mock
}

var _ store.TaskStore = (*MockTaskStore)(nil)

func (m *MockTaskStore) ListForUser(ctx context.Context, userID int64) ([]domain.EnrichedTask, error) {
	args := m.Called(ctx, userID)
	tasks, _ := args.Get(0).([]domain.EnrichedTask)
	return tasks, args.Error(1)
}

func (m *MockTaskStore) GetVisible(ctx context.Context, userID, taskID int64) (*domain.Task, error) {
	args := m.Called(ctx, userID, taskID)
	return taskResult(args)
}

func (m *MockTaskStore) Create(ctx context.Context, in domain.NewTaskInput) (*domain.Task, error) {
	args := m.Called(ctx, in)
	return taskResult(args)
}

func (m *MockTaskStore) Update(ctx context.Context, id int64, fields domain.TaskFields) (*domain.Task, error) {
	args := m.Called(ctx, id, fields)
	return taskResult(args)
}

func (m *MockTaskStore) Delete(ctx context.Context, id int64) (*domain.Task, error) {
	args := m.Called(ctx, id)
	return taskResult(args)
}

func taskResult(args mock.Arguments) (*domain.Task, error) {
	if t, ok := args.Get(0).(*domain.Task); ok {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}

// MockCommentStore is a testify mock of store.CommentStore.
type MockCommentStore struct {
	mock.Mock
}

var _ store.CommentStore = (*MockCommentStore)(nil)

func (m *MockCommentStore) ListByTask(ctx context.Context, taskID int64) ([]domain.CommentWithAuthor, error) {
	args := m.Called(ctx, taskID)
	comments, _ := args.Get(0).([]domain.CommentWithAuthor)
	return comments, args.Error(1)
}

func (m *MockCommentStore) Create(ctx context.Context, c *domain.Comment) (*domain.CommentWithAuthor, error) {
	args := m.Called(ctx, c)
	if out, ok := args.Get(0).(*domain.CommentWithAuthor); ok {
		return out, args.Error(1)
	}
	return nil, args.Error(1)
}

// MockNotificationStore is a testify mock of store.NotificationStore.
type MockNotificationStore struct {
	mock.Mock
}

var _ store.NotificationStore = (*MockNotificationStore)(nil)

func (m *MockNotificationStore) Create(ctx context.Context, userID *int64, message string) (*domain.Notification, error) {
	args := m.Called(ctx, userID, message)
	if n, ok := args.Get(0).(*domain.Notification); ok {
		return n, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockNotificationStore) ListForUser(ctx context.Context, userID int64) ([]domain.Notification, error) {
	args := m.Called(ctx, userID)
	out, _ := args.Get(0).([]domain.Notification)
	return out, args.Error(1)
}

// StoreSet bundles one mock per store.
type StoreSet struct {
	Users         *MockUserStore
	Teams         *MockTeamStore
	Tasks         *MockTaskStore
	Comments      *MockCommentStore
	Notifications *MockNotificationStore
}

// NewStoreSet creates a StoreSet with fresh mocks.
func NewStoreSet() *StoreSet {
	return &StoreSet{
		Users:         new(MockUserStore),
		Teams:         new(MockTeamStore),
		Tasks:         new(MockTaskStore),
		Comments:      new(MockCommentStore),
		Notifications: new(MockNotificationStore),
	}
}

// Stores returns the mocks as a store.Stores.
func (s *StoreSet) Stores() store.Stores {
	return store.Stores{
		Users:         s.Users,
		Teams:         s.Teams,
		Tasks:         s.Tasks,
		Comments:      s.Comments,
		Notifications: s.Notifications,
	}
}

// AssertExpectations asserts expectations on every mock in the set.
func (s *StoreSet) AssertExpectations(t mock.TestingT) {
	s.Users.AssertExpectations(t)
	s.Teams.AssertExpectations(t)
	s.Tasks.AssertExpectations(t)
	s.Comments.AssertExpectations(t)
	s.Notifications.AssertExpectations(t)
}
