package api

import (
	"github.com/phrazzld/taskboard-api/internal/domain"
)

// LoginRequest defines the payload for the login endpoint.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// TokenResponse is returned by a successful login.
type TokenResponse struct {
	Token string `json:"token"`
}

// UsernameResponse is returned by the token validation endpoint.
type UsernameResponse struct {
	Username string `json:"username"`
}

// TaskRequest is the body of the create task endpoint.
type TaskRequest struct {
	Title       string       `json:"title"       validate:"required"`
	Description string       `json:"description"`
	DueDate     *domain.Date `json:"due_date"`
	Status      string       `json:"status"`
	AssignedTo  *int64       `json:"assigned_to" validate:"omitempty,gt=0"`
	TeamID      int64        `json:"team_id"     validate:"required,gt=0"`
}

// UpdateTaskRequest is TaskRequest without the team.
type UpdateTaskRequest struct {
	Title       string       `json:"title"       validate:"required"`
	Description string       `json:"description"`
	DueDate     *domain.Date `json:"due_date"`
	Status      string       `json:"status"`
	AssignedTo  *int64       `json:"assigned_to" validate:"omitempty,gt=0"`
}

// CommentRequest is the body of the create comment endpoint.
type CommentRequest struct {
	TaskID  int64  `json:"task_id" validate:"required,gt=0"`
	Content string `json:"content" validate:"required"`
}

func (req TaskRequest) toInput() domain.NewTaskInput {
	return domain.NewTaskInput{
		TaskFields: domain.TaskFields{
			Title:       req.Title,
			Description: req.Description,
			DueDate:     req.DueDate,
			Status:      req.Status,
			AssignedTo:  req.AssignedTo,
		},
		TeamID: req.TeamID,
	}
}

func (req UpdateTaskRequest) toFields() domain.TaskFields {
	return domain.TaskFields{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Status:      req.Status,
		AssignedTo:  req.AssignedTo,
	}
}
