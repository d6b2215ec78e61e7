package tasklist

import (
	"context"
	"errors"
	"log"

	taskdomain "github.com/example/task-manager/domain/task"
	domain "github.com/example/task-manager/domain/tasklist"
	"github.com/example/task-manager/modules/cache"
	"github.com/example/task-manager/modules/storage"
	"github.com/go-monolith/mono"
	"github.com/google/uuid"
)

// Module provides the task-list service.
type Module struct {
	storage *storage.Module
	cache   *cache.Module
	service *Service
}

// Compile-time interface checks.
var _ mono.Module = (*Module)(nil)
var _ mono.HealthCheckableModule = (*Module)(nil)

// NewModule creates a new task-list module. The storage and cache modules
// must be registered ahead of it.
func NewModule(storage *storage.Module, cache *cache.Module) *Module {
	return &Module{storage: storage, cache: cache}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "tasklist"
}

// Start wires the repositories into the service.
func (m *Module) Start(_ context.Context) error {
	db := m.storage.DB()
	if db == nil {
		return errors.New("storage module not started")
	}

	m.service = NewService(
		domain.NewRepository(db),
		taskdomain.NewRepository(db),
		m.cache.Cache(),
	)

	log.Println("[tasklist] Module started")
	return nil
}

// Stop stops the module.
func (m *Module) Stop(_ context.Context) error {
	log.Println("[tasklist] Module stopped")
	return nil
}

// Health returns the health status of the module.
func (m *Module) Health(_ context.Context) mono.HealthStatus {
	if m.service == nil {
		return mono.HealthStatus{Healthy: false, Message: "service not initialized"}
	}
	return mono.HealthStatus{Healthy: true, Message: "operational"}
}

// Service returns the task-list service. Valid after Start.
func (m *Module) Service() *Service {
	return m.service
}

func newID() string {
	return uuid.New().String()
}
