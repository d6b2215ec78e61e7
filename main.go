package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/example/task-manager/config"
	"github.com/example/task-manager/modules/api"
	"github.com/example/task-manager/modules/auth"
	"github.com/example/task-manager/modules/cache"
	"github.com/example/task-manager/modules/notification"
	"github.com/example/task-manager/modules/storage"
	"github.com/example/task-manager/modules/task"
	"github.com/example/task-manager/modules/tasklist"
	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"
)

const shutdownTimeout = 30 * time.Second

func main() {
	log.Println("=== Task Manager ===")

	cfg := config.Load()

	// Create mono application
	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(shutdownTimeout),
		mono.WithLogLevel(mono.LogLevelInfo),
		mono.WithLogFormat(mono.LogFormatText),
	)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}

	storageMod := storage.NewModule(cfg.DBPath)
	cacheMod := cache.NewModule(cfg.CacheEnabled, cfg.RedisAddr, cfg.CachePrefix, cfg.CacheTTL)
	notificationMod := notification.NewModule(cfg.NotificationsEnabled, cfg.FromEmail)
	authMod := auth.NewModule(storageMod, cfg)
	taskListMod := tasklist.NewModule(storageMod, cacheMod)
	taskMod := task.NewModule(storageMod, notificationMod, cacheMod)
	apiMod := api.NewModule(cfg.HTTPPort, taskListMod, taskMod)

	// Register modules with the framework
	// Order: independent modules first, then dependent modules
	app.Register(storageMod)
	app.Register(cacheMod)
	app.Register(notificationMod)
	app.Register(authMod)
	app.Register(taskListMod)
	app.Register(taskMod)
	app.Register(apiMod)

	// Start application
	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	printStartupInfo(cfg.HTTPPort)

	// Graceful shutdown
	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				log.Println("Graceful shutdown initiated...")
				return app.Stop(ctx)
			},
		},
	)

	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	os.Exit(exitCode)
}

func printStartupInfo(port int) {
	log.Println("")
	log.Println("Application started successfully!")
	log.Println("")
	log.Printf("REST API Endpoints (http://localhost:%d):", port)
	log.Println("")
	log.Println("  Public Endpoints:")
	log.Println("  POST   /auth/register                        - Register a new user")
	log.Println("  POST   /auth/login                           - Login and get an access token")
	log.Println("  GET    /health                               - Health check")
	log.Println("")
	log.Println("  Protected Endpoints (require Bearer token):")
	log.Println("  GET    /api/v1/profile                       - Current user profile")
	log.Println("  POST   /api/v1/task-lists/                   - Create a task list")
	log.Println("  GET    /api/v1/task-lists/                   - List your task lists")
	log.Println("  GET    /api/v1/task-lists/:id                - Task list with tasks")
	log.Println("  PUT    /api/v1/task-lists/:id                - Update a task list")
	log.Println("  DELETE /api/v1/task-lists/:id                - Delete a task list")
	log.Println("  POST   /api/v1/tasks/                        - Create a task")
	log.Println("  GET    /api/v1/tasks/?task_list_id=...       - List tasks with filters")
	log.Println("  GET    /api/v1/tasks/:id                     - Get a task")
	log.Println("  PUT    /api/v1/tasks/:id                     - Update a task")
	log.Println("  PATCH  /api/v1/tasks/:id/status              - Change task status")
	log.Println("  POST   /api/v1/tasks/:id/assign/:user_id     - Assign a task")
	log.Println("  DELETE /api/v1/tasks/:id                     - Delete a task")
	log.Println("")
	log.Println("Press Ctrl+C to shutdown gracefully")
}
