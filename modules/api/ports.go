package api

import (
	"context"

	taskdomain "github.com/example/task-manager/domain/task"
	taskmod "github.com/example/task-manager/modules/task"
	tasklistmod "github.com/example/task-manager/modules/tasklist"
)

// TaskListService is the task-list surface the API depends on.
type TaskListService interface {
	Create(ctx context.Context, in tasklistmod.CreateInput, ownerID string) (tasklistmod.TaskListResponse, error)
	Get(ctx context.Context, taskListID, requesterID string) (tasklistmod.TaskListWithTasksResponse, error)
	Update(ctx context.Context, taskListID string, in tasklistmod.UpdateInput, requesterID string) (tasklistmod.TaskListResponse, error)
	Delete(ctx context.Context, taskListID, requesterID string) (bool, error)
	ListForOwner(ctx context.Context, ownerID string, skip, limit int) ([]tasklistmod.TaskListResponse, error)
}

// TaskService is the task surface the API depends on.
type TaskService interface {
	Create(ctx context.Context, taskListID string, in taskmod.CreateInput, requesterID string) (taskmod.TaskResponse, error)
	Get(ctx context.Context, taskID, requesterID string) (taskmod.TaskResponse, error)
	Update(ctx context.Context, taskID string, in taskmod.UpdateInput, requesterID string) (taskmod.TaskResponse, error)
	UpdateStatus(ctx context.Context, taskID string, status taskdomain.Status, requesterID string) (taskmod.TaskResponse, error)
	Assign(ctx context.Context, taskID, userID, requesterID string) (taskmod.TaskResponse, error)
	Delete(ctx context.Context, taskID, requesterID string) (bool, error)
	List(ctx context.Context, taskListID string, filters taskmod.Filters, skip, limit int, requesterID string) ([]taskmod.TaskResponse, error)
}
