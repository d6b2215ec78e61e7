package tasklist

import (
	"errors"
	"testing"
	"time"

	"github.com/example/task-manager/domain/task"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB creates an in-memory SQLite database for testing. Tasks are
// migrated too because Delete cascades into the tasks table.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(&TaskList{}, &task.Task{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func newTestList(ownerID, name string, createdAt time.Time) *TaskList {
	return &TaskList{
		ID:        uuid.New().String(),
		Name:      name,
		OwnerID:   ownerID,
		CreatedAt: createdAt,
	}
}

func TestRepository_CreateAndFind(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	list := newTestList("owner-1", "Groceries", time.Now().UTC())
	if err := repo.Create(list); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	found, err := repo.FindByID(list.ID)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if found.Name != "Groceries" {
		t.Errorf("expected name %q, got %q", "Groceries", found.Name)
	}
	if found.OwnerID != "owner-1" {
		t.Errorf("expected owner %q, got %q", "owner-1", found.OwnerID)
	}

	if _, err := repo.FindByID("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestRepository_FindByOwner(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		list := newTestList("owner-1", "List "+string(rune('A'+i)), base.Add(time.Duration(i)*time.Minute))
		if err := repo.Create(list); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}
	if err := repo.Create(newTestList("owner-2", "Foreign", base)); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	t.Run("all lists of owner", func(t *testing.T) {
		lists, err := repo.FindByOwner("owner-1", 0, 100)
		if err != nil {
			t.Fatalf("FindByOwner() error = %v", err)
		}
		if len(lists) != 5 {
			t.Fatalf("expected 5 lists, got %d", len(lists))
		}
		if lists[0].Name != "List A" {
			t.Errorf("expected ordering by creation time, first = %q", lists[0].Name)
		}
	})

	t.Run("pagination window", func(t *testing.T) {
		lists, err := repo.FindByOwner("owner-1", 2, 2)
		if err != nil {
			t.Fatalf("FindByOwner() error = %v", err)
		}
		if len(lists) != 2 {
			t.Fatalf("expected 2 lists, got %d", len(lists))
		}
		if lists[0].Name != "List C" || lists[1].Name != "List D" {
			t.Errorf("unexpected page: %q, %q", lists[0].Name, lists[1].Name)
		}
	})

	t.Run("unknown owner", func(t *testing.T) {
		lists, err := repo.FindByOwner("owner-3", 0, 100)
		if err != nil {
			t.Fatalf("FindByOwner() error = %v", err)
		}
		if len(lists) != 0 {
			t.Errorf("expected 0 lists, got %d", len(lists))
		}
	})
}

func TestRepository_Update(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	list := newTestList("owner-1", "Original", time.Now().UTC())
	if err := repo.Create(list); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	now := time.Now().UTC()
	list.Name = "Renamed"
	list.UpdatedAt = &now
	if err := repo.Update(list); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	found, err := repo.FindByID(list.ID)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if found.Name != "Renamed" {
		t.Errorf("expected name %q, got %q", "Renamed", found.Name)
	}
	if found.UpdatedAt == nil {
		t.Error("expected UpdatedAt to be set after update")
	}

	missing := newTestList("owner-1", "Ghost", time.Now().UTC())
	missing.ID = "non-existent-id"
	if err := repo.Update(missing); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestRepository_DeleteCascades(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	list := newTestList("owner-1", "Doomed", time.Now().UTC())
	if err := repo.Create(list); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	for i := 0; i < 3; i++ {
		tk := &task.Task{
			ID:         uuid.New().String(),
			Title:      "Task",
			Status:     task.StatusPending,
			Priority:   task.PriorityMedium,
			TaskListID: list.ID,
			CreatedAt:  time.Now().UTC(),
		}
		if err := db.Create(tk).Error; err != nil {
			t.Fatalf("failed to create test task: %v", err)
		}
	}
	survivor := &task.Task{
		ID:         uuid.New().String(),
		Title:      "Unrelated",
		Status:     task.StatusPending,
		Priority:   task.PriorityMedium,
		TaskListID: "other-list",
		CreatedAt:  time.Now().UTC(),
	}
	if err := db.Create(survivor).Error; err != nil {
		t.Fatalf("failed to create survivor task: %v", err)
	}

	removed, err := repo.Delete(list.ID)
	if err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if !removed {
		t.Error("expected removed = true")
	}

	var taskCount int64
	if err := db.Model(&task.Task{}).Where("task_list_id = ?", list.ID).Count(&taskCount).Error; err != nil {
		t.Fatalf("failed to count tasks: %v", err)
	}
	if taskCount != 0 {
		t.Errorf("expected cascade to remove tasks, %d remain", taskCount)
	}

	var survivorCount int64
	if err := db.Model(&task.Task{}).Where("task_list_id = ?", "other-list").Count(&survivorCount).Error; err != nil {
		t.Fatalf("failed to count survivor tasks: %v", err)
	}
	if survivorCount != 1 {
		t.Errorf("expected unrelated task to survive, count = %d", survivorCount)
	}

	removed, err = repo.Delete(list.ID)
	if err != nil {
		t.Fatalf("Delete() second call error = %v", err)
	}
	if removed {
		t.Error("expected removed = false for already-deleted list")
	}
}
