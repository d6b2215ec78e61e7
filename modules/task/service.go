package task

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/example/task-manager/domain/apperror"
	domain "github.com/example/task-manager/domain/task"
	listdomain "github.com/example/task-manager/domain/tasklist"
	userdomain "github.com/example/task-manager/domain/user"
	"github.com/example/task-manager/modules/cache"
	"github.com/example/task-manager/modules/notification"
)

const (
	maxTitleLen       = 200
	maxDescriptionLen = 1000
)

// Service implements task operations with ownership and assignee
// authorization.
type Service struct {
	tasks    *domain.Repository
	lists    *listdomain.Repository
	users    *userdomain.Repository
	notifier *notification.Notifier
	cache    cache.CacheService
}

// NewService creates a new task service. cacheSvc may be nil to disable
// caching.
func NewService(tasks *domain.Repository, lists *listdomain.Repository, users *userdomain.Repository, notifier *notification.Notifier, cacheSvc cache.CacheService) *Service {
	return &Service{
		tasks:    tasks,
		lists:    lists,
		users:    users,
		notifier: notifier,
		cache:    cacheSvc,
	}
}

// Create adds a task to a task list. Only the list owner may create tasks.
// An assigned task triggers an assignment notification whose failure never
// fails the creation.
func (s *Service) Create(ctx context.Context, taskListID string, in CreateInput, requesterID string) (TaskResponse, error) {
	list, err := s.requireList(taskListID)
	if err != nil {
		return TaskResponse{}, err
	}
	if list.OwnerID != requesterID {
		return TaskResponse{}, apperror.Authorization("You don't have access to this task list")
	}

	if err := validateTitle(in.Title); err != nil {
		return TaskResponse{}, err
	}
	if err := validateDescription(in.Description); err != nil {
		return TaskResponse{}, err
	}

	priority := domain.PriorityMedium
	if in.Priority != nil {
		if !in.Priority.Valid() {
			return TaskResponse{}, apperror.Validation(fmt.Sprintf("Invalid priority '%s'", *in.Priority))
		}
		priority = *in.Priority
	}

	if in.AssignedTo != nil {
		if _, err := s.requireActiveAssignee(*in.AssignedTo); err != nil {
			return TaskResponse{}, err
		}
	}

	t := &domain.Task{
		ID:          newID(),
		Title:       in.Title,
		Description: in.Description,
		Status:      domain.StatusPending,
		Priority:    priority,
		TaskListID:  taskListID,
		AssignedTo:  in.AssignedTo,
		DueDate:     in.DueDate,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.tasks.Create(t); err != nil {
		return TaskResponse{}, err
	}
	s.invalidateList(ctx, list)

	if t.AssignedTo != nil {
		s.notifyAssignment(t)
	}

	return NewTaskResponse(t, time.Now().UTC()), nil
}

// Get returns a task. The list owner and the task's assignee may read it.
func (s *Service) Get(_ context.Context, taskID, requesterID string) (TaskResponse, error) {
	t, list, err := s.requireTask(taskID)
	if err != nil {
		return TaskResponse{}, err
	}
	if !isOwnerOrAssignee(t, list, requesterID) {
		return TaskResponse{}, apperror.Authorization("You don't have access to this task")
	}

	resp := NewTaskResponse(t, time.Now().UTC())
	if t.AssignedTo != nil {
		if assignee, err := s.users.FindByID(*t.AssignedTo); err == nil {
			resp.Assignee = newAssigneeResponse(assignee)
		}
	}
	return resp, nil
}

// Update modifies a task's fields. Only the list owner may update; the
// assignee cannot. A changed, non-nil assignment triggers a notification.
func (s *Service) Update(ctx context.Context, taskID string, in UpdateInput, requesterID string) (TaskResponse, error) {
	t, list, err := s.requireTask(taskID)
	if err != nil {
		return TaskResponse{}, err
	}
	if list.OwnerID != requesterID {
		return TaskResponse{}, apperror.Authorization("You don't have access to this task")
	}

	if in.AssignedTo != nil {
		if _, err := s.requireActiveAssignee(*in.AssignedTo); err != nil {
			return TaskResponse{}, err
		}
	}

	oldAssignee := t.AssignedTo
	if in.Title != nil {
		if err := validateTitle(*in.Title); err != nil {
			return TaskResponse{}, err
		}
		t.Title = *in.Title
	}
	if in.Description != nil {
		if err := validateDescription(in.Description); err != nil {
			return TaskResponse{}, err
		}
		t.Description = in.Description
	}
	if in.Priority != nil {
		if !in.Priority.Valid() {
			return TaskResponse{}, apperror.Validation(fmt.Sprintf("Invalid priority '%s'", *in.Priority))
		}
		t.Priority = *in.Priority
	}
	if in.AssignedTo != nil {
		t.AssignedTo = in.AssignedTo
	}
	if in.DueDate != nil {
		t.DueDate = in.DueDate
	}
	now := time.Now().UTC()
	t.UpdatedAt = &now

	if err := s.tasks.Update(t); err != nil {
		return TaskResponse{}, err
	}
	s.invalidateList(ctx, list)

	if t.AssignedTo != nil && (oldAssignee == nil || *oldAssignee != *t.AssignedTo) {
		s.notifyAssignment(t)
	}

	return NewTaskResponse(t, time.Now().UTC()), nil
}

// UpdateStatus changes a task's status. The list owner and the assignee may
// call it. Any status may move to any other status.
func (s *Service) UpdateStatus(ctx context.Context, taskID string, status domain.Status, requesterID string) (TaskResponse, error) {
	if !status.Valid() {
		return TaskResponse{}, apperror.Validation(fmt.Sprintf("Invalid status '%s'", status))
	}

	t, list, err := s.requireTask(taskID)
	if err != nil {
		return TaskResponse{}, err
	}
	if !isOwnerOrAssignee(t, list, requesterID) {
		return TaskResponse{}, apperror.Authorization("You don't have access to this task")
	}

	now := time.Now().UTC()
	if err := s.tasks.UpdateStatus(taskID, status, now); err != nil {
		return TaskResponse{}, err
	}
	s.invalidateList(ctx, list)

	t.Status = status
	t.UpdatedAt = &now
	return NewTaskResponse(t, time.Now().UTC()), nil
}

// Assign sets the task's assignee and notifies them. Owner-only, with the
// same assignee validation as create and update.
func (s *Service) Assign(ctx context.Context, taskID, userID, requesterID string) (TaskResponse, error) {
	return s.Update(ctx, taskID, UpdateInput{AssignedTo: &userID}, requesterID)
}

// Delete removes a task. Owner-only. Returns false if nothing was removed.
func (s *Service) Delete(ctx context.Context, taskID, requesterID string) (bool, error) {
	t, list, err := s.requireTask(taskID)
	if err != nil {
		return false, err
	}
	if list.OwnerID != requesterID {
		return false, apperror.Authorization("You don't have access to this task")
	}

	removed, err := s.tasks.Delete(t.ID)
	if err != nil {
		return false, err
	}
	if removed {
		s.invalidateList(ctx, list)
	}
	return removed, nil
}

// List returns a page of a list's tasks. Status and priority filter the
// database query; assigned_to and overdue_only are applied to the fetched
// page afterwards, so a page can come back short even when more matching
// rows exist beyond it.
func (s *Service) List(_ context.Context, taskListID string, filters Filters, skip, limit int, requesterID string) ([]TaskResponse, error) {
	list, err := s.requireList(taskListID)
	if err != nil {
		return nil, err
	}
	if list.OwnerID != requesterID {
		return nil, apperror.Authorization("You don't have access to this task list")
	}

	tasks, err := s.tasks.FindByListPaged(taskListID, skip, limit, filters.Status, filters.Priority)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	results := make([]TaskResponse, 0, len(tasks))
	for i := range tasks {
		t := &tasks[i]
		if filters.OverdueOnly && !t.IsOverdue(now) {
			continue
		}
		if filters.AssignedTo != nil && (t.AssignedTo == nil || *t.AssignedTo != *filters.AssignedTo) {
			continue
		}
		results = append(results, NewTaskResponse(t, now))
	}
	return results, nil
}

// requireList loads a task list or reports it missing.
func (s *Service) requireList(taskListID string) (*listdomain.TaskList, error) {
	list, err := s.lists.FindByID(taskListID)
	if err != nil {
		if errors.Is(err, listdomain.ErrNotFound) {
			return nil, apperror.NotFound("TaskList", taskListID)
		}
		return nil, err
	}
	return list, nil
}

// requireTask loads a task and its owning list.
func (s *Service) requireTask(taskID string) (*domain.Task, *listdomain.TaskList, error) {
	t, err := s.tasks.FindByID(taskID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, apperror.NotFound("Task", taskID)
		}
		return nil, nil, err
	}
	list, err := s.requireList(t.TaskListID)
	if err != nil {
		return nil, nil, err
	}
	return t, list, nil
}

// requireActiveAssignee validates that an assignee exists and is active.
// Enforced only at assignment time, not continuously.
func (s *Service) requireActiveAssignee(userID string) (*userdomain.User, error) {
	assignee, err := s.users.FindByID(userID)
	if err != nil {
		if errors.Is(err, userdomain.ErrNotFound) {
			return nil, apperror.NotFound("User", userID)
		}
		return nil, err
	}
	if !assignee.IsActive {
		return nil, apperror.TaskAssignment("Cannot assign task to inactive user")
	}
	return assignee, nil
}

// notifyAssignment sends the assignment email, swallowing every failure so
// the enclosing mutation's success never depends on notification delivery.
func (s *Service) notifyAssignment(t *domain.Task) {
	if s.notifier == nil || t.AssignedTo == nil {
		return
	}
	assignee, err := s.users.FindByID(*t.AssignedTo)
	if err != nil {
		log.Printf("[task] Skipping assignment notification for task %s: %v", t.ID, err)
		return
	}
	if !s.notifier.SendAssignmentEmail(t, assignee) {
		log.Printf("[task] Assignment notification for task %s was not sent", t.ID)
	}
}

// invalidateList drops cached views affected by a mutation in the list.
// Cache errors are logged, never propagated.
func (s *Service) invalidateList(ctx context.Context, list *listdomain.TaskList) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, cache.TaskListKey(list.ID)); err != nil {
		log.Printf("[task] Warning: failed to invalidate list cache: %v", err)
	}
	if err := s.cache.DeletePattern(ctx, cache.OwnerListsPattern(list.OwnerID)); err != nil {
		log.Printf("[task] Warning: failed to invalidate owner cache: %v", err)
	}
}

func isOwnerOrAssignee(t *domain.Task, list *listdomain.TaskList, requesterID string) bool {
	if list.OwnerID == requesterID {
		return true
	}
	return t.AssignedTo != nil && *t.AssignedTo == requesterID
}

func validateTitle(title string) error {
	if title == "" || len(title) > maxTitleLen {
		return apperror.Validation(fmt.Sprintf("Title must be between 1 and %d characters", maxTitleLen))
	}
	return nil
}

func validateDescription(description *string) error {
	if description != nil && len(*description) > maxDescriptionLen {
		return apperror.Validation(fmt.Sprintf("Description must be at most %d characters", maxDescriptionLen))
	}
	return nil
}
