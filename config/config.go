// Package config loads the application configuration from the environment.
// The Config value is built once in main and injected into module
// constructors; no package holds ambient settings state.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all runtime configuration.
type Config struct {
	// HTTP
	HTTPPort int

	// Storage
	DBPath string

	// Tokens
	JWTSecret             string
	JWTIssuer             string
	AccessTokenTTLMinutes int

	// Notifications
	NotificationsEnabled bool
	FromEmail            string

	// Cache
	CacheEnabled bool
	RedisAddr    string
	CachePrefix  string
	CacheTTL     time.Duration
}

// Load reads configuration from environment variables, falling back to
// development defaults.
func Load() Config {
	return Config{
		HTTPPort:              getEnvInt("HTTP_PORT", 3000),
		DBPath:                getEnv("DB_PATH", "task_manager.db"),
		JWTSecret:             getEnv("JWT_SECRET_KEY", "your-secret-key-change-in-production"),
		JWTIssuer:             getEnv("JWT_ISSUER", "task-manager"),
		AccessTokenTTLMinutes: getEnvInt("ACCESS_TOKEN_EXPIRE_MINUTES", 30),
		NotificationsEnabled:  getEnvBool("EMAIL_ENABLED", true),
		FromEmail:             getEnv("FROM_EMAIL", "noreply@taskmanager.com"),
		CacheEnabled:          getEnvBool("CACHE_ENABLED", false),
		RedisAddr:             getEnv("REDIS_ADDR", "localhost:6379"),
		CachePrefix:           getEnv("CACHE_PREFIX", "tasklist:"),
		CacheTTL:              getEnvDuration("CACHE_TTL", 5*time.Minute),
	}
}

// AccessTokenTTL returns the token lifetime as a duration.
func (c Config) AccessTokenTTL() time.Duration {
	return time.Duration(c.AccessTokenTTLMinutes) * time.Minute
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
