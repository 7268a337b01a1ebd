package domain

// Task is a unit of work belonging to a team and optionally assigned to a user.
type Task struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	DueDate     *Date  `json:"due_date"`
	Status      string `json:"status"`
	AssignedTo  *int64 `json:"assigned_to"`
	TeamID      int64  `json:"team_id"`
}

// EnrichedTask is a Task joined with its assignee's username and role name.
// Both are nil when the task is unassigned or the assignee has no role.
type EnrichedTask struct {
	Task
	AssignedUser *string `json:"assigned_user"`
	AssignedRole *string `json:"assigned_role"`
}

// TaskFields holds the mutable fields of a task. Updates overwrite all of them.
type TaskFields struct {
	Title       string
	Description string
	DueDate     *Date
	Status      string
	AssignedTo  *int64
}

// Validate checks the fields shared by create and update.
func (f TaskFields) Validate() error {
	if f.Title == "" {
		return NewValidationError("title", "is required", ErrEmptyContent)
	}
	if f.AssignedTo != nil && *f.AssignedTo <= 0 {
		return NewValidationError("assigned_to", "must be a positive id", ErrInvalidID)
	}
	return nil
}

// NewTaskInput is everything needed to create a task.
type NewTaskInput struct {
	TaskFields
	TeamID int64
}

// Validate checks a creation request.
func (in NewTaskInput) Validate() error {
	if err := in.TaskFields.Validate(); err != nil {
		return err
	}
	if in.TeamID <= 0 {
		return NewValidationError("team_id", "must be a positive id", ErrInvalidID)
	}
	return nil
}

// TaskDeleted is the payload broadcast when a task is removed.
type TaskDeleted struct {
	ID      int64 `json:"id"`
	Deleted bool  `json:"deleted"`
}
