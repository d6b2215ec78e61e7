package api

import (
	"context"
	"fmt"
	"log"

	"github.com/example/task-manager/modules/auth"
	taskmod "github.com/example/task-manager/modules/task"
	tasklistmod "github.com/example/task-manager/modules/tasklist"
	"github.com/go-monolith/mono"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// APIModule is the HTTP surface of the application.
type APIModule struct {
	port          int
	app           *fiber.App
	authContainer mono.ServiceContainer
	authAdapter   auth.AuthPort
	taskListMod   *tasklistmod.Module
	taskMod       *taskmod.Module
}

// Compile-time interface checks.
var _ mono.Module = (*APIModule)(nil)
var _ mono.DependentModule = (*APIModule)(nil)
var _ mono.HealthCheckableModule = (*APIModule)(nil)

// NewModule creates a new APIModule. The task-list and task modules must be
// registered ahead of it.
func NewModule(port int, taskListMod *tasklistmod.Module, taskMod *taskmod.Module) *APIModule {
	return &APIModule{port: port, taskListMod: taskListMod, taskMod: taskMod}
}

// Name returns the module name.
func (m *APIModule) Name() string {
	return "api"
}

// Dependencies returns the list of module dependencies.
func (m *APIModule) Dependencies() []string {
	return []string{"auth"}
}

// SetDependencyServiceContainer receives service containers from dependencies.
func (m *APIModule) SetDependencyServiceContainer(dependency string, container mono.ServiceContainer) {
	if dependency == "auth" {
		m.authContainer = container
		m.authAdapter = auth.NewAuthAdapter(container)
	}
}

// Start initializes the Fiber HTTP server.
func (m *APIModule) Start(_ context.Context) error {
	if m.authContainer == nil {
		return fmt.Errorf("auth dependency not set")
	}
	if m.taskListMod.Service() == nil || m.taskMod.Service() == nil {
		return fmt.Errorf("task-list and task modules must start before the api module")
	}

	m.app = fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          fiberErrorHandler,
	})

	m.app.Use(recover.New())
	m.app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	m.app.Use(cors.New())

	m.setupRoutes()

	go func() {
		if err := m.app.Listen(fmt.Sprintf(":%d", m.port)); err != nil {
			log.Printf("[api] HTTP server error: %v", err)
		}
	}()

	log.Printf("[api] HTTP server started on :%d", m.port)
	return nil
}

// Stop shuts down the Fiber HTTP server.
func (m *APIModule) Stop(_ context.Context) error {
	if m.app == nil {
		return nil
	}
	log.Println("[api] Shutting down HTTP server...")
	return m.app.Shutdown()
}

// Health returns the health status of the module.
func (m *APIModule) Health(_ context.Context) mono.HealthStatus {
	return mono.HealthStatus{
		Healthy: m.app != nil,
		Message: "operational",
		Details: map[string]any{"port": m.port},
	}
}

// setupRoutes configures all API routes.
func (m *APIModule) setupRoutes() {
	handlers := NewHandlers(m.authContainer, m.authAdapter, m.taskListMod.Service(), m.taskMod.Service())

	m.app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"module": "api",
		})
	})

	// Public auth routes
	authRoutes := m.app.Group("/auth")
	authRoutes.Post("/register", handlers.Register)
	authRoutes.Post("/login", handlers.Login)

	// Protected routes
	v1 := m.app.Group("/api/v1")
	v1.Use(AuthMiddleware(m.authAdapter))
	v1.Get("/profile", handlers.Profile)

	taskLists := v1.Group("/task-lists")
	taskLists.Post("/", handlers.CreateTaskList)
	taskLists.Get("/", handlers.ListTaskLists)
	taskLists.Get("/:id", handlers.GetTaskList)
	taskLists.Put("/:id", handlers.UpdateTaskList)
	taskLists.Delete("/:id", handlers.DeleteTaskList)

	tasks := v1.Group("/tasks")
	tasks.Post("/", handlers.CreateTask)
	tasks.Get("/", handlers.ListTasks)
	tasks.Get("/:id", handlers.GetTask)
	tasks.Put("/:id", handlers.UpdateTask)
	tasks.Delete("/:id", handlers.DeleteTask)
	tasks.Patch("/:id/status", handlers.UpdateTaskStatus)
	tasks.Post("/:id/assign/:user_id", handlers.AssignTask)
}

// fiberErrorHandler handles errors surfaced by Fiber itself.
func fiberErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(ErrorResponse{
		Message:   message,
		ErrorCode: "INTERNAL_ERROR",
	})
}
