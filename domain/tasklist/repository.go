package tasklist

import (
	"errors"
	"fmt"

	"github.com/example/task-manager/domain/task"
	"gorm.io/gorm"
)

// ErrNotFound is returned when a task list does not exist.
var ErrNotFound = errors.New("task list not found")

// Repository persists task lists with GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new task list repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new task list.
func (r *Repository) Create(l *TaskList) error {
	if err := r.db.Create(l).Error; err != nil {
		return fmt.Errorf("failed to create task list: %w", err)
	}
	return nil
}

// FindByID retrieves a task list by ID.
func (r *Repository) FindByID(id string) (*TaskList, error) {
	var l TaskList
	if err := r.db.First(&l, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find task list: %w", err)
	}
	return &l, nil
}

// FindByOwner retrieves a page of an owner's task lists, ordered by creation
// time.
func (r *Repository) FindByOwner(ownerID string, skip, limit int) ([]TaskList, error) {
	var lists []TaskList
	err := r.db.Where("owner_id = ?", ownerID).Order("created_at").Offset(skip).Limit(limit).Find(&lists).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find task lists: %w", err)
	}
	return lists, nil
}

// Update persists changes to an existing task list.
func (r *Repository) Update(l *TaskList) error {
	result := r.db.Model(&TaskList{}).Where("id = ?", l.ID).Select("*").Omit("id", "owner_id", "created_at").Updates(l)
	if result.Error != nil {
		return fmt.Errorf("failed to update task list: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a task list and cascades to its tasks in one transaction.
// Returns false if the list row was not removed.
func (r *Repository) Delete(id string) (bool, error) {
	var removed bool
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&task.Task{}, "task_list_id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to delete tasks of list: %w", err)
		}
		result := tx.Delete(&TaskList{}, "id = ?", id)
		if result.Error != nil {
			return fmt.Errorf("failed to delete task list: %w", result.Error)
		}
		removed = result.RowsAffected > 0
		return nil
	})
	if err != nil {
		return false, err
	}
	return removed, nil
}
