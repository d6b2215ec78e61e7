package tasklist

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/example/task-manager/domain/apperror"
	taskdomain "github.com/example/task-manager/domain/task"
	domain "github.com/example/task-manager/domain/tasklist"
	"github.com/example/task-manager/modules/cache"
	taskmod "github.com/example/task-manager/modules/task"
	"golang.org/x/sync/singleflight"
)

const (
	maxNameLen        = 100
	maxDescriptionLen = 500
)

// Service implements task-list operations with ownership enforcement and
// completion aggregation. Detail and summary reads go through the cache
// when one is configured; every mutation invalidates the affected keys.
type Service struct {
	lists   *domain.Repository
	tasks   *taskdomain.Repository
	cache   cache.CacheService
	sfGroup singleflight.Group // suppresses duplicate DB loads on cache miss
}

// NewService creates a new task-list service. cacheSvc may be nil to
// disable caching.
func NewService(lists *domain.Repository, tasks *taskdomain.Repository, cacheSvc cache.CacheService) *Service {
	return &Service{lists: lists, tasks: tasks, cache: cacheSvc}
}

// Create persists a new list owned by ownerID. A fresh list has no tasks,
// so its completion percentage is 0.0.
func (s *Service) Create(ctx context.Context, in CreateInput, ownerID string) (TaskListResponse, error) {
	if err := validateName(in.Name); err != nil {
		return TaskListResponse{}, err
	}
	if err := validateDescription(in.Description); err != nil {
		return TaskListResponse{}, err
	}

	l := &domain.TaskList{
		ID:          newID(),
		Name:        in.Name,
		Description: in.Description,
		OwnerID:     ownerID,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.lists.Create(l); err != nil {
		return TaskListResponse{}, err
	}
	s.invalidateOwner(ctx, ownerID)

	return newTaskListResponse(l, 0, 0), nil
}

// Get returns a list with all its tasks, each carrying its overdue flag,
// plus the aggregate completion percentage. Owner-only.
func (s *Service) Get(ctx context.Context, taskListID, requesterID string) (TaskListWithTasksResponse, error) {
	l, err := s.requireOwned(taskListID, requesterID)
	if err != nil {
		return TaskListWithTasksResponse{}, err
	}

	if s.cache != nil {
		var cached TaskListWithTasksResponse
		found, err := s.cache.Get(ctx, cache.TaskListKey(taskListID), &cached)
		if err != nil {
			log.Printf("[tasklist] Cache error for list %s: %v", taskListID, err)
		}
		if found {
			return cached, nil
		}
	}

	val, err, _ := s.sfGroup.Do("list:"+taskListID, func() (any, error) {
		return s.buildDetailView(l)
	})
	if err != nil {
		return TaskListWithTasksResponse{}, err
	}
	resp := val.(TaskListWithTasksResponse)

	if s.cache != nil {
		if err := s.cache.Set(ctx, cache.TaskListKey(taskListID), resp); err != nil {
			log.Printf("[tasklist] Warning: failed to cache list %s: %v", taskListID, err)
		}
	}
	return resp, nil
}

// Update changes the supplied fields of a list. Owner-only.
func (s *Service) Update(ctx context.Context, taskListID string, in UpdateInput, requesterID string) (TaskListResponse, error) {
	l, err := s.requireOwned(taskListID, requesterID)
	if err != nil {
		return TaskListResponse{}, err
	}

	if in.Name != nil {
		if err := validateName(*in.Name); err != nil {
			return TaskListResponse{}, err
		}
		l.Name = *in.Name
	}
	if in.Description != nil {
		if err := validateDescription(in.Description); err != nil {
			return TaskListResponse{}, err
		}
		l.Description = in.Description
	}
	now := time.Now().UTC()
	l.UpdatedAt = &now

	if err := s.lists.Update(l); err != nil {
		return TaskListResponse{}, err
	}
	s.invalidate(ctx, l)

	total, completed, err := s.tasks.CountByList(taskListID)
	if err != nil {
		return TaskListResponse{}, err
	}
	return newTaskListResponse(l, int(completed), int(total)), nil
}

// Delete removes a list and, through the repository transaction, all its
// tasks. Owner-only. Returns false if nothing was removed.
func (s *Service) Delete(ctx context.Context, taskListID, requesterID string) (bool, error) {
	l, err := s.requireOwned(taskListID, requesterID)
	if err != nil {
		return false, err
	}

	removed, err := s.lists.Delete(taskListID)
	if err != nil {
		return false, err
	}
	if removed {
		s.invalidate(ctx, l)
	}
	return removed, nil
}

// ListForOwner returns a page of the owner's lists, each with its task
// count and completion percentage.
func (s *Service) ListForOwner(ctx context.Context, ownerID string, skip, limit int) ([]TaskListResponse, error) {
	key := cache.OwnerListsKey(ownerID, skip, limit)
	if s.cache != nil {
		var cached []TaskListResponse
		found, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			log.Printf("[tasklist] Cache error for owner %s: %v", ownerID, err)
		}
		if found {
			return cached, nil
		}
	}

	lists, err := s.lists.FindByOwner(ownerID, skip, limit)
	if err != nil {
		return nil, err
	}

	results := make([]TaskListResponse, 0, len(lists))
	for i := range lists {
		l := &lists[i]
		total, completed, err := s.tasks.CountByList(l.ID)
		if err != nil {
			return nil, err
		}
		results = append(results, newTaskListResponse(l, int(completed), int(total)))
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, results); err != nil {
			log.Printf("[tasklist] Warning: failed to cache owner %s lists: %v", ownerID, err)
		}
	}
	return results, nil
}

func (s *Service) buildDetailView(l *domain.TaskList) (TaskListWithTasksResponse, error) {
	tasks, err := s.tasks.FindByList(l.ID)
	if err != nil {
		return TaskListWithTasksResponse{}, err
	}

	now := time.Now().UTC()
	completed := 0
	views := make([]taskmod.TaskResponse, 0, len(tasks))
	for i := range tasks {
		t := &tasks[i]
		if t.Status == taskdomain.StatusCompleted {
			completed++
		}
		views = append(views, taskmod.NewTaskResponse(t, now))
	}

	return TaskListWithTasksResponse{
		TaskListResponse: newTaskListResponse(l, completed, len(tasks)),
		Tasks:            views,
	}, nil
}

// requireOwned loads a list and verifies the requester owns it.
func (s *Service) requireOwned(taskListID, requesterID string) (*domain.TaskList, error) {
	l, err := s.lists.FindByID(taskListID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("TaskList", taskListID)
		}
		return nil, err
	}
	if l.OwnerID != requesterID {
		return nil, apperror.Authorization("You don't have access to this task list")
	}
	return l, nil
}

func (s *Service) invalidate(ctx context.Context, l *domain.TaskList) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, cache.TaskListKey(l.ID)); err != nil {
		log.Printf("[tasklist] Warning: failed to invalidate list cache: %v", err)
	}
	s.invalidateOwner(ctx, l.OwnerID)
}

func (s *Service) invalidateOwner(ctx context.Context, ownerID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeletePattern(ctx, cache.OwnerListsPattern(ownerID)); err != nil {
		log.Printf("[tasklist] Warning: failed to invalidate owner cache: %v", err)
	}
}

func validateName(name string) error {
	if name == "" || len(name) > maxNameLen {
		return apperror.Validation(fmt.Sprintf("Name must be between 1 and %d characters", maxNameLen))
	}
	return nil
}

func validateDescription(description *string) error {
	if description != nil && len(*description) > maxDescriptionLen {
		return apperror.Validation(fmt.Sprintf("Description must be at most %d characters", maxDescriptionLen))
	}
	return nil
}
