package task

import (
	"context"
	"errors"
	"log"

	domain "github.com/example/task-manager/domain/task"
	listdomain "github.com/example/task-manager/domain/tasklist"
	userdomain "github.com/example/task-manager/domain/user"
	"github.com/example/task-manager/modules/cache"
	"github.com/example/task-manager/modules/notification"
	"github.com/example/task-manager/modules/storage"
	"github.com/go-monolith/mono"
	"github.com/google/uuid"
)

// Module provides the task service.
type Module struct {
	storage      *storage.Module
	notification *notification.Module
	cache        *cache.Module
	service      *Service
}

// Compile-time interface checks.
var _ mono.Module = (*Module)(nil)
var _ mono.HealthCheckableModule = (*Module)(nil)

// NewModule creates a new task module. The storage, notification, and cache
// modules must be registered ahead of it.
func NewModule(storage *storage.Module, notification *notification.Module, cache *cache.Module) *Module {
	return &Module{storage: storage, notification: notification, cache: cache}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "task"
}

// Start wires the repositories into the service.
func (m *Module) Start(_ context.Context) error {
	db := m.storage.DB()
	if db == nil {
		return errors.New("storage module not started")
	}

	m.service = NewService(
		domain.NewRepository(db),
		listdomain.NewRepository(db),
		userdomain.NewRepository(db),
		m.notification.Notifier(),
		m.cache.Cache(),
	)

	log.Println("[task] Module started")
	return nil
}

// Stop stops the module.
func (m *Module) Stop(_ context.Context) error {
	log.Println("[task] Module stopped")
	return nil
}

// Health returns the health status of the module.
func (m *Module) Health(_ context.Context) mono.HealthStatus {
	if m.service == nil {
		return mono.HealthStatus{Healthy: false, Message: "service not initialized"}
	}
	return mono.HealthStatus{Healthy: true, Message: "operational"}
}

// Service returns the task service. Valid after Start.
func (m *Module) Service() *Service {
	return m.service
}

func newID() string {
	return uuid.New().String()
}
