package cache

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-monolith/mono"
	"github.com/redis/go-redis/v9"
)

// Module manages the Redis client lifecycle.
type Module struct {
	enabled bool
	addr    string
	prefix  string
	ttl     time.Duration
	client  *redis.Client
	cache   *Cache
}

// Compile-time interface checks.
var _ mono.Module = (*Module)(nil)
var _ mono.HealthCheckableModule = (*Module)(nil)

// NewModule creates a new cache module. When enabled is false the module is
// inert and Cache() returns nil.
func NewModule(enabled bool, addr, prefix string, ttl time.Duration) *Module {
	return &Module{enabled: enabled, addr: addr, prefix: prefix, ttl: ttl}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "cache"
}

// Start connects to Redis and verifies the connection.
func (m *Module) Start(ctx context.Context) error {
	if !m.enabled {
		log.Println("[cache] Module started (caching disabled)")
		return nil
	}

	m.client = redis.NewClient(&redis.Options{Addr: m.addr})
	if err := m.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to connect to redis at %s: %w", m.addr, err)
	}
	m.cache = New(m.client, m.prefix, m.ttl)

	log.Printf("[cache] Module started (redis: %s, ttl: %s)", m.addr, m.ttl)
	return nil
}

// Stop closes the Redis client.
func (m *Module) Stop(_ context.Context) error {
	if m.client != nil {
		m.client.Close()
	}
	log.Println("[cache] Module stopped")
	return nil
}

// Health returns the health status of the module.
func (m *Module) Health(ctx context.Context) mono.HealthStatus {
	if !m.enabled {
		return mono.HealthStatus{Healthy: true, Message: "caching disabled"}
	}
	if m.client == nil {
		return mono.HealthStatus{Healthy: false, Message: "redis client not initialized"}
	}
	if err := m.client.Ping(ctx).Err(); err != nil {
		return mono.HealthStatus{Healthy: false, Message: fmt.Sprintf("redis ping failed: %v", err)}
	}
	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{"redis": m.addr, "stats": m.cache.StatsSnapshot()},
	}
}

// Cache returns the cache service, or nil when caching is disabled.
func (m *Module) Cache() CacheService {
	if m.cache == nil {
		return nil
	}
	return m.cache
}
