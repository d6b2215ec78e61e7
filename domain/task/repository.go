package task

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// ErrNotFound is returned when a task does not exist.
var ErrNotFound = errors.New("task not found")

// Repository persists tasks with GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new task repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new task.
func (r *Repository) Create(t *Task) error {
	if err := r.db.Create(t).Error; err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

// FindByID retrieves a task by ID.
func (r *Repository) FindByID(id string) (*Task, error) {
	var t Task
	if err := r.db.First(&t, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return &t, nil
}

// FindByList retrieves all tasks of a task list, ordered by creation time.
func (r *Repository) FindByList(taskListID string) ([]Task, error) {
	var tasks []Task
	if err := r.db.Where("task_list_id = ?", taskListID).Order("created_at").Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("failed to find tasks: %w", err)
	}
	return tasks, nil
}

// FindByListPaged retrieves a page of a list's tasks, optionally filtered by
// status and priority. Assignee and overdue filters are applied by the
// service on the fetched page, not here.
func (r *Repository) FindByListPaged(taskListID string, skip, limit int, status *Status, priority *Priority) ([]Task, error) {
	query := r.db.Where("task_list_id = ?", taskListID)
	if status != nil {
		query = query.Where("status = ?", *status)
	}
	if priority != nil {
		query = query.Where("priority = ?", *priority)
	}

	var tasks []Task
	if err := query.Order("created_at").Offset(skip).Limit(limit).Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("failed to find tasks: %w", err)
	}
	return tasks, nil
}

// Update persists changes to an existing task.
func (r *Repository) Update(t *Task) error {
	result := r.db.Model(&Task{}).Where("id = ?", t.ID).Select("*").Omit("id", "created_at").Updates(t)
	if result.Error != nil {
		return fmt.Errorf("failed to update task: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateStatus sets the status and updated_at of a task.
func (r *Repository) UpdateStatus(id string, status Status, updatedAt time.Time) error {
	result := r.db.Model(&Task{}).Where("id = ?", id).Updates(map[string]any{
		"status":     status,
		"updated_at": updatedAt,
	})
	if result.Error != nil {
		return fmt.Errorf("failed to update task status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a task by ID. Returns false if nothing was removed.
func (r *Repository) Delete(id string) (bool, error) {
	result := r.db.Delete(&Task{}, "id = ?", id)
	if result.Error != nil {
		return false, fmt.Errorf("failed to delete task: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// CountByList returns the total and completed task counts for a list.
func (r *Repository) CountByList(taskListID string) (total, completed int64, err error) {
	if err = r.db.Model(&Task{}).Where("task_list_id = ?", taskListID).Count(&total).Error; err != nil {
		return 0, 0, fmt.Errorf("failed to count tasks: %w", err)
	}
	if err = r.db.Model(&Task{}).Where("task_list_id = ? AND status = ?", taskListID, StatusCompleted).Count(&completed).Error; err != nil {
		return 0, 0, fmt.Errorf("failed to count completed tasks: %w", err)
	}
	return total, completed, nil
}
