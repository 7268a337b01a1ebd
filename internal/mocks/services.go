package mocks

import (
	"context"

	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/service"
	"github.com/stretchr/testify/mock"
)

// MockAuthService is a testify mock of service.AuthService.
type MockAuthService struct {
	mock.Mock
}

var _ service.AuthService = (*MockAuthService)(nil)

func (m *MockAuthService) Login(ctx context.Context, username, password string) (string, error) {
	args := m.Called(ctx, username, password)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) WhoAmI(ctx context.Context, p domain.Principal) (string, error) {
	args := m.Called(ctx, p)
	return args.String(0), args.Error(1)
}

// MockTeamService is a testify mock of service.TeamService.
type MockTeamService struct {
	mock.Mock
}

var _ service.TeamService = (*MockTeamService)(nil)

func (m *MockTeamService) ListTeams(ctx context.Context, p domain.Principal) ([]domain.Team, error) {
	args := m.Called(ctx, p)
	teams, _ := args.Get(0).([]domain.Team)
	return teams, args.Error(1)
}

func (m *MockTeamService) ListUsers(ctx context.Context, p domain.Principal, teamID *int64) ([]domain.UserSummary, error) {
	args := m.Called(ctx, p, teamID)
	users, _ := args.Get(0).([]domain.UserSummary)
	return users, args.Error(1)
}

// MockTaskService is a testify mock of service.TaskService.
type MockTaskService struct {
	mock.Mock
}

var _ service.TaskService = (*MockTaskService)(nil)

func (m *MockTaskService) ListTasks(ctx context.Context, p domain.Principal) ([]domain.EnrichedTask, error) {
	args := m.Called(ctx, p)
	tasks, _ := args.Get(0).([]domain.EnrichedTask)
	return tasks, args.Error(1)
}

func (m *MockTaskService) CreateTask(
	ctx context.Context,
	p domain.Principal,
	in domain.NewTaskInput,
) (*domain.EnrichedTask, error) {
	args := m.Called(ctx, p, in)
	task, _ := args.Get(0).(*domain.EnrichedTask)
	return task, args.Error(1)
}

func (m *MockTaskService) UpdateTask(
	ctx context.Context,
	p domain.Principal,
	id int64,
	f domain.TaskFields,
) (*domain.EnrichedTask, error) {
	args := m.Called(ctx, p, id, f)
	task, _ := args.Get(0).(*domain.EnrichedTask)
	return task, args.Error(1)
}

func (m *MockTaskService) DeleteTask(ctx context.Context, p domain.Principal, id int64) error {
	return m.Called(ctx, p, id).Error(0)
}

// MockCommentService is a testify mock of service.CommentService.
type MockCommentService struct {
	mock.Mock
}

var _ service.CommentService = (*MockCommentService)(nil)

func (m *MockCommentService) ListComments(
	ctx context.Context,
	p domain.Principal,
	taskID int64,
) ([]domain.CommentWithAuthor, error) {
	args := m.Called(ctx, p, taskID)
	comments, _ := args.Get(0).([]domain.CommentWithAuthor)
	return comments, args.Error(1)
}

func (m *MockCommentService) CreateComment(
	ctx context.Context,
	p domain.Principal,
	taskID int64,
	content string,
) (*domain.CommentWithAuthor, error) {
	args := m.Called(ctx, p, taskID, content)
	c, _ := args.Get(0).(*domain.CommentWithAuthor)
	return c, args.Error(1)
}

// MockNotificationService is a testify mock of service.NotificationService.
type MockNotificationService struct {
	mock.Mock
}

var _ service.NotificationService = (*MockNotificationService)(nil)

func (m *MockNotificationService) ListNotifications(
	ctx context.Context,
	p domain.Principal,
) ([]domain.Notification, error) {
	args := m.Called(ctx, p)
	notes, _ := args.Get(0).([]domain.Notification)
	return notes, args.Error(1)
}
