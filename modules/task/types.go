package task

import (
	"time"

	domain "github.com/example/task-manager/domain/task"
	"github.com/example/task-manager/domain/user"
)

// CreateInput carries the fields of a task creation request.
type CreateInput struct {
	Title       string
	Description *string
	Priority    *domain.Priority
	AssignedTo  *string
	DueDate     *time.Time
}

// UpdateInput carries the optional fields of a task update request. Nil
// fields are left unchanged.
type UpdateInput struct {
	Title       *string
	Description *string
	Priority    *domain.Priority
	AssignedTo  *string
	DueDate     *time.Time
}

// Filters narrows a task listing. Status and priority are applied by the
// repository query; assigned_to and overdue_only are applied afterwards on
// the fetched page.
type Filters struct {
	Status      *domain.Status
	Priority    *domain.Priority
	AssignedTo  *string
	OverdueOnly bool
}

// AssigneeResponse is the embedded summary view of a task's assignee.
type AssigneeResponse struct {
	ID       string  `json:"id"`
	Email    string  `json:"email"`
	Username string  `json:"username"`
	FullName *string `json:"full_name,omitempty"`
	IsActive bool    `json:"is_active"`
}

// TaskResponse is the outward view of a task.
type TaskResponse struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Description *string           `json:"description,omitempty"`
	Status      domain.Status     `json:"status"`
	Priority    domain.Priority   `json:"priority"`
	TaskListID  string            `json:"task_list_id"`
	AssignedTo  *string           `json:"assigned_to,omitempty"`
	DueDate     *time.Time        `json:"due_date,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   *time.Time        `json:"updated_at,omitempty"`
	IsOverdue   bool              `json:"is_overdue"`
	Assignee    *AssigneeResponse `json:"assignee,omitempty"`
}

// NewTaskResponse builds the outward view of a task, evaluating overdue
// against now.
func NewTaskResponse(t *domain.Task, now time.Time) TaskResponse {
	return TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		Priority:    t.Priority,
		TaskListID:  t.TaskListID,
		AssignedTo:  t.AssignedTo,
		DueDate:     t.DueDate,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
		IsOverdue:   t.IsOverdue(now),
	}
}

func newAssigneeResponse(u *user.User) *AssigneeResponse {
	return &AssigneeResponse{
		ID:       u.ID,
		Email:    u.Email,
		Username: u.Username,
		FullName: u.FullName,
		IsActive: u.IsActive,
	}
}
