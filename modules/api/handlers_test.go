package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	taskdomain "github.com/example/task-manager/domain/task"
	listdomain "github.com/example/task-manager/domain/tasklist"
	userdomain "github.com/example/task-manager/domain/user"
	"github.com/example/task-manager/modules/auth"
	"github.com/example/task-manager/modules/notification"
	taskmod "github.com/example/task-manager/modules/task"
	tasklistmod "github.com/example/task-manager/modules/tasklist"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type apiFixture struct {
	app     *fiber.App
	ownerID string
	otherID string
}

// setupTestApp wires real services over an in-memory database behind the
// production routes. Authentication is stubbed: the X-User-ID header becomes
// the authenticated user, no header means no identity.
func setupTestApp(t *testing.T) *apiFixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&userdomain.User{}, &listdomain.TaskList{}, &taskdomain.Task{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	owner := &userdomain.User{ID: uuid.New().String(), Email: "owner@example.com", Username: "owner", PasswordHash: "x", IsActive: true, CreatedAt: time.Now().UTC()}
	other := &userdomain.User{ID: uuid.New().String(), Email: "other@example.com", Username: "other", PasswordHash: "x", IsActive: true, CreatedAt: time.Now().UTC()}
	for _, u := range []*userdomain.User{owner, other} {
		if err := db.Create(u).Error; err != nil {
			t.Fatalf("failed to seed user: %v", err)
		}
	}

	listRepo := listdomain.NewRepository(db)
	taskRepo := taskdomain.NewRepository(db)
	userRepo := userdomain.NewRepository(db)
	notifier := notification.NewNotifier(false, "noreply@taskmanager.com")

	handlers := NewHandlers(nil, nil,
		tasklistmod.NewService(listRepo, taskRepo, nil),
		taskmod.NewService(taskRepo, listRepo, userRepo, notifier, nil),
	)

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if id := c.Get("X-User-ID"); id != "" {
			c.Locals(UserContextKey, auth.UserResponse{ID: id, IsActive: true})
		}
		return c.Next()
	})

	taskLists := app.Group("/api/v1/task-lists")
	taskLists.Post("/", handlers.CreateTaskList)
	taskLists.Get("/", handlers.ListTaskLists)
	taskLists.Get("/:id", handlers.GetTaskList)
	taskLists.Put("/:id", handlers.UpdateTaskList)
	taskLists.Delete("/:id", handlers.DeleteTaskList)

	tasks := app.Group("/api/v1/tasks")
	tasks.Post("/", handlers.CreateTask)
	tasks.Get("/", handlers.ListTasks)
	tasks.Get("/:id", handlers.GetTask)
	tasks.Put("/:id", handlers.UpdateTask)
	tasks.Delete("/:id", handlers.DeleteTask)
	tasks.Patch("/:id/status", handlers.UpdateTaskStatus)
	tasks.Post("/:id/assign/:user_id", handlers.AssignTask)

	return &apiFixture{app: app, ownerID: owner.ID, otherID: other.ID}
}

// doJSON performs a request with an optional JSON body and decodes the
// response into out (when out is non-nil).
func (f *apiFixture) doJSON(t *testing.T, method, path, userID, body string, out any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}

	resp, err := f.app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	t.Cleanup(func() { resp.Body.Close() })

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
	}
	return resp
}

func (f *apiFixture) createList(t *testing.T, name string) tasklistmod.TaskListResponse {
	t.Helper()
	var out tasklistmod.TaskListResponse
	resp := f.doJSON(t, "POST", "/api/v1/task-lists/", f.ownerID, fmt.Sprintf(`{"name":%q}`, name), &out)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("create list status = %d", resp.StatusCode)
	}
	return out
}

func (f *apiFixture) createTask(t *testing.T, listID, title string) taskmod.TaskResponse {
	t.Helper()
	var out taskmod.TaskResponse
	resp := f.doJSON(t, "POST", "/api/v1/tasks/", f.ownerID,
		fmt.Sprintf(`{"title":%q,"task_list_id":%q}`, title, listID), &out)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("create task status = %d", resp.StatusCode)
	}
	return out
}

func TestTaskListEndpoints(t *testing.T) {
	t.Run("create returns fresh aggregates", func(t *testing.T) {
		f := setupTestApp(t)
		list := f.createList(t, "Chores")
		if list.CompletionPercentage != 0.0 || list.TaskCount != 0 {
			t.Errorf("aggregates = (%v, %d), want (0.0, 0)", list.CompletionPercentage, list.TaskCount)
		}
	})

	t.Run("unauthenticated request is rejected", func(t *testing.T) {
		f := setupTestApp(t)
		resp := f.doJSON(t, "POST", "/api/v1/task-lists/", "", `{"name":"X"}`, nil)
		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", resp.StatusCode)
		}
	})

	t.Run("get missing list maps to 404", func(t *testing.T) {
		f := setupTestApp(t)
		var errResp ErrorResponse
		resp := f.doJSON(t, "GET", "/api/v1/task-lists/no-such-list", f.ownerID, "", &errResp)
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("status = %d, want 404", resp.StatusCode)
		}
		if errResp.ErrorCode != "ENTITY_NOT_FOUND" {
			t.Errorf("error_code = %q, want ENTITY_NOT_FOUND", errResp.ErrorCode)
		}
	})

	t.Run("foreign list maps to 403", func(t *testing.T) {
		f := setupTestApp(t)
		list := f.createList(t, "Private")
		var errResp ErrorResponse
		resp := f.doJSON(t, "GET", "/api/v1/task-lists/"+list.ID, f.otherID, "", &errResp)
		if resp.StatusCode != http.StatusForbidden {
			t.Errorf("status = %d, want 403", resp.StatusCode)
		}
		if errResp.ErrorCode != "AUTHORIZATION_ERROR" {
			t.Errorf("error_code = %q, want AUTHORIZATION_ERROR", errResp.ErrorCode)
		}
	})

	t.Run("empty name maps to 422", func(t *testing.T) {
		f := setupTestApp(t)
		var errResp ErrorResponse
		resp := f.doJSON(t, "POST", "/api/v1/task-lists/", f.ownerID, `{"name":""}`, &errResp)
		if resp.StatusCode != http.StatusUnprocessableEntity {
			t.Errorf("status = %d, want 422", resp.StatusCode)
		}
		if errResp.ErrorCode != "VALIDATION_ERROR" {
			t.Errorf("error_code = %q, want VALIDATION_ERROR", errResp.ErrorCode)
		}
	})

	t.Run("detail view embeds tasks", func(t *testing.T) {
		f := setupTestApp(t)
		list := f.createList(t, "Project")
		f.createTask(t, list.ID, "One")
		f.createTask(t, list.ID, "Two")

		var detail tasklistmod.TaskListWithTasksResponse
		resp := f.doJSON(t, "GET", "/api/v1/task-lists/"+list.ID, f.ownerID, "", &detail)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want 200", resp.StatusCode)
		}
		if len(detail.Tasks) != 2 || detail.TaskCount != 2 {
			t.Errorf("tasks = %d, task_count = %d, want 2 each", len(detail.Tasks), detail.TaskCount)
		}
	})

	t.Run("delete confirms and then 404s", func(t *testing.T) {
		f := setupTestApp(t)
		list := f.createList(t, "Doomed")

		var msg MessageResponse
		resp := f.doJSON(t, "DELETE", "/api/v1/task-lists/"+list.ID, f.ownerID, "", &msg)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want 200", resp.StatusCode)
		}
		if msg.Message != "Task list deleted successfully" {
			t.Errorf("message = %q", msg.Message)
		}

		resp = f.doJSON(t, "DELETE", "/api/v1/task-lists/"+list.ID, f.ownerID, "", nil)
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("second delete status = %d, want 404", resp.StatusCode)
		}
	})

	t.Run("invalid pagination maps to 422", func(t *testing.T) {
		f := setupTestApp(t)
		resp := f.doJSON(t, "GET", "/api/v1/task-lists/?limit=0", f.ownerID, "", nil)
		if resp.StatusCode != http.StatusUnprocessableEntity {
			t.Errorf("status = %d, want 422", resp.StatusCode)
		}
	})
}

func TestTaskEndpoints(t *testing.T) {
	t.Run("create requires task_list_id", func(t *testing.T) {
		f := setupTestApp(t)
		resp := f.doJSON(t, "POST", "/api/v1/tasks/", f.ownerID, `{"title":"X"}`, nil)
		if resp.StatusCode != http.StatusUnprocessableEntity {
			t.Errorf("status = %d, want 422", resp.StatusCode)
		}
	})

	t.Run("invalid priority maps to 422", func(t *testing.T) {
		f := setupTestApp(t)
		list := f.createList(t, "Work")
		body := fmt.Sprintf(`{"title":"X","task_list_id":%q,"priority":"urgent"}`, list.ID)
		resp := f.doJSON(t, "POST", "/api/v1/tasks/", f.ownerID, body, nil)
		if resp.StatusCode != http.StatusUnprocessableEntity {
			t.Errorf("status = %d, want 422", resp.StatusCode)
		}
	})

	t.Run("status patch", func(t *testing.T) {
		f := setupTestApp(t)
		list := f.createList(t, "Work")
		task := f.createTask(t, list.ID, "Do it")

		var updated taskmod.TaskResponse
		resp := f.doJSON(t, "PATCH", "/api/v1/tasks/"+task.ID+"/status", f.ownerID, `{"status":"completed"}`, &updated)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want 200", resp.StatusCode)
		}
		if updated.Status != taskdomain.StatusCompleted {
			t.Errorf("task status = %q, want completed", updated.Status)
		}

		resp = f.doJSON(t, "PATCH", "/api/v1/tasks/"+task.ID+"/status", f.ownerID, `{"status":"done"}`, nil)
		if resp.StatusCode != http.StatusUnprocessableEntity {
			t.Errorf("invalid status = %d, want 422", resp.StatusCode)
		}
	})

	t.Run("assign endpoint", func(t *testing.T) {
		f := setupTestApp(t)
		list := f.createList(t, "Work")
		task := f.createTask(t, list.ID, "Shared")

		var updated taskmod.TaskResponse
		resp := f.doJSON(t, "POST", "/api/v1/tasks/"+task.ID+"/assign/"+f.otherID, f.ownerID, "", &updated)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want 200", resp.StatusCode)
		}
		if updated.AssignedTo == nil || *updated.AssignedTo != f.otherID {
			t.Errorf("assigned_to = %v, want %q", updated.AssignedTo, f.otherID)
		}

		// Assignment is owner-only; the assignee cannot reassign.
		resp = f.doJSON(t, "POST", "/api/v1/tasks/"+task.ID+"/assign/"+f.otherID, f.otherID, "", nil)
		if resp.StatusCode != http.StatusForbidden {
			t.Errorf("reassign by assignee = %d, want 403", resp.StatusCode)
		}
	})

	t.Run("assign to inactive user maps to 409", func(t *testing.T) {
		f := setupTestApp(t)
		list := f.createList(t, "Work")
		task := f.createTask(t, list.ID, "X")

		// An unknown assignee surfaces as 404 before the business rule runs.
		var errResp ErrorResponse
		resp := f.doJSON(t, "POST", "/api/v1/tasks/"+task.ID+"/assign/no-such-user", f.ownerID, "", &errResp)
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("status = %d, want 404", resp.StatusCode)
		}
	})

	t.Run("list requires task_list_id", func(t *testing.T) {
		f := setupTestApp(t)
		resp := f.doJSON(t, "GET", "/api/v1/tasks/?skip=0&limit=10", f.ownerID, "", nil)
		if resp.StatusCode != http.StatusUnprocessableEntity {
			t.Errorf("status = %d, want 422", resp.StatusCode)
		}
	})

	t.Run("list with filters", func(t *testing.T) {
		f := setupTestApp(t)
		list := f.createList(t, "Work")
		f.createTask(t, list.ID, "A")
		task := f.createTask(t, list.ID, "B")
		f.doJSON(t, "PATCH", "/api/v1/tasks/"+task.ID+"/status", f.ownerID, `{"status":"completed"}`, nil)

		var tasks []taskmod.TaskResponse
		resp := f.doJSON(t, "GET", "/api/v1/tasks/?task_list_id="+list.ID+"&status=completed", f.ownerID, "", &tasks)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want 200", resp.StatusCode)
		}
		if len(tasks) != 1 || tasks[0].Title != "B" {
			t.Errorf("filtered tasks = %+v, want only B", tasks)
		}

		resp = f.doJSON(t, "GET", "/api/v1/tasks/?task_list_id="+list.ID+"&overdue_only=maybe", f.ownerID, "", nil)
		if resp.StatusCode != http.StatusUnprocessableEntity {
			t.Errorf("bad overdue_only = %d, want 422", resp.StatusCode)
		}
	})

	t.Run("delete task", func(t *testing.T) {
		f := setupTestApp(t)
		list := f.createList(t, "Work")
		task := f.createTask(t, list.ID, "Doomed")

		var msg MessageResponse
		resp := f.doJSON(t, "DELETE", "/api/v1/tasks/"+task.ID, f.ownerID, "", &msg)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want 200", resp.StatusCode)
		}
		if msg.Message != "Task deleted successfully" {
			t.Errorf("message = %q", msg.Message)
		}

		resp = f.doJSON(t, "GET", "/api/v1/tasks/"+task.ID, f.ownerID, "", nil)
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("get after delete = %d, want 404", resp.StatusCode)
		}
	})
}
