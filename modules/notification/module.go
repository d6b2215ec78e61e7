package notification

import (
	"context"
	"log"

	"github.com/go-monolith/mono"
)

// Module wraps the Notifier as a mono module.
type Module struct {
	notifier *Notifier
	enabled  bool
}

// Compile-time interface checks.
var _ mono.Module = (*Module)(nil)
var _ mono.HealthCheckableModule = (*Module)(nil)

// NewModule creates a new notification module.
func NewModule(enabled bool, fromEmail string) *Module {
	return &Module{
		notifier: NewNotifier(enabled, fromEmail),
		enabled:  enabled,
	}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "notification"
}

// Start starts the module.
func (m *Module) Start(_ context.Context) error {
	log.Printf("[notification] Module started (enabled: %v)", m.enabled)
	return nil
}

// Stop stops the module.
func (m *Module) Stop(_ context.Context) error {
	log.Println("[notification] Module stopped")
	return nil
}

// Health returns the health status of the module.
func (m *Module) Health(_ context.Context) mono.HealthStatus {
	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{"enabled": m.enabled},
	}
}

// Notifier returns the notifier instance.
func (m *Module) Notifier() *Notifier {
	return m.notifier
}
