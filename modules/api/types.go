package api

import "time"

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	Email    string  `json:"email"`
	Username string  `json:"username"`
	FullName *string `json:"full_name,omitempty"`
	Password string  `json:"password"`
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	EmailOrUsername string `json:"email_or_username"`
	Password        string `json:"password"`
}

// TaskListCreateRequest is the body of POST /api/v1/task-lists/.
type TaskListCreateRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

// TaskListUpdateRequest is the body of PUT /api/v1/task-lists/{id}.
type TaskListUpdateRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

// TaskCreateRequest is the body of POST /api/v1/tasks/.
type TaskCreateRequest struct {
	Title       string     `json:"title"`
	Description *string    `json:"description,omitempty"`
	TaskListID  string     `json:"task_list_id"`
	Priority    string     `json:"priority,omitempty"`
	AssignedTo  *string    `json:"assigned_to,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

// TaskUpdateRequest is the body of PUT /api/v1/tasks/{id}.
type TaskUpdateRequest struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Priority    *string    `json:"priority,omitempty"`
	AssignedTo  *string    `json:"assigned_to,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

// TaskStatusUpdateRequest is the body of PATCH /api/v1/tasks/{id}/status.
type TaskStatusUpdateRequest struct {
	Status string `json:"status"`
}

// ErrorResponse is the structured error body. ErrorCode is one of the
// stable domain codes; no stack traces or internal identifiers leak here.
type ErrorResponse struct {
	Message   string `json:"message"`
	ErrorCode string `json:"error_code"`
}

// MessageResponse is a simple confirmation body.
type MessageResponse struct {
	Message string `json:"message"`
}
