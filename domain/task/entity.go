package task

import (
	"time"
)

// Status is the lifecycle state of a task. Any status may transition to any
// other; transition legality is intentionally not enforced.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Priority is the urgency level of a task.
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// Valid reports whether p is a known priority.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

// Task represents a unit of work belonging to exactly one task list.
type Task struct {
	ID          string     `gorm:"primaryKey;size:36" json:"id"`
	Title       string     `gorm:"size:200;not null" json:"title"`
	Description *string    `gorm:"size:1000" json:"description,omitempty"`
	Status      Status     `gorm:"size:20;not null;default:pending" json:"status"`
	Priority    Priority   `gorm:"size:20;not null;default:medium" json:"priority"`
	TaskListID  string     `gorm:"size:36;not null;index" json:"task_list_id"`
	AssignedTo  *string    `gorm:"size:36;index" json:"assigned_to,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `gorm:"autoUpdateTime:false" json:"updated_at,omitempty"`
}

// TableName returns the table name for the Task entity.
func (Task) TableName() string {
	return "tasks"
}

// IsOverdue reports whether the task's due date has passed without the task
// being completed. A cancelled task past its due date still counts as
// overdue; tasks without a due date never do.
func (t *Task) IsOverdue(now time.Time) bool {
	if t.DueDate == nil {
		return false
	}
	return now.After(*t.DueDate) && t.Status != StatusCompleted
}
