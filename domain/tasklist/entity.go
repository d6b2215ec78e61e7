package tasklist

import (
	"time"
)

// TaskList is a named collection of tasks owned by exactly one user. The
// owner is immutable after creation.
type TaskList struct {
	ID          string     `gorm:"primaryKey;size:36" json:"id"`
	Name        string     `gorm:"size:100;not null" json:"name"`
	Description *string    `gorm:"size:500" json:"description,omitempty"`
	OwnerID     string     `gorm:"size:36;not null;index" json:"owner_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `gorm:"autoUpdateTime:false" json:"updated_at,omitempty"`
}

// TableName returns the table name for the TaskList entity.
func (TaskList) TableName() string {
	return "task_lists"
}

// CompletionPercentage returns 100 * completed / total, or 0.0 for an empty
// list. The floating-point ratio is preserved without rounding.
func CompletionPercentage(completed, total int) float64 {
	if total == 0 {
		return 0.0
	}
	return float64(completed) / float64(total) * 100.0
}
