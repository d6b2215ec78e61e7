package tasklist

import (
	"time"

	domain "github.com/example/task-manager/domain/tasklist"
	taskmod "github.com/example/task-manager/modules/task"
)

// CreateInput carries the fields of a task-list creation request.
type CreateInput struct {
	Name        string
	Description *string
}

// UpdateInput carries the optional fields of a task-list update request.
// Nil fields are left unchanged.
type UpdateInput struct {
	Name        *string
	Description *string
}

// TaskListResponse is the summary view of a task list, including the
// aggregates computed from its tasks.
type TaskListResponse struct {
	ID                   string     `json:"id"`
	Name                 string     `json:"name"`
	Description          *string    `json:"description,omitempty"`
	OwnerID              string     `json:"owner_id"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            *time.Time `json:"updated_at,omitempty"`
	CompletionPercentage float64    `json:"completion_percentage"`
	TaskCount            int        `json:"task_count"`
}

// TaskListWithTasksResponse is the detail view of a task list with its
// tasks embedded.
type TaskListWithTasksResponse struct {
	TaskListResponse
	Tasks []taskmod.TaskResponse `json:"tasks"`
}

func newTaskListResponse(l *domain.TaskList, completed, total int) TaskListResponse {
	return TaskListResponse{
		ID:                   l.ID,
		Name:                 l.Name,
		Description:          l.Description,
		OwnerID:              l.OwnerID,
		CreatedAt:            l.CreatedAt,
		UpdatedAt:            l.UpdatedAt,
		CompletionPercentage: domain.CompletionPercentage(completed, total),
		TaskCount:            total,
	}
}
