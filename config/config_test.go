package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.HTTPPort != 3000 {
		t.Errorf("HTTPPort = %d, want 3000", cfg.HTTPPort)
	}
	if cfg.AccessTokenTTLMinutes != 30 {
		t.Errorf("AccessTokenTTLMinutes = %d, want 30", cfg.AccessTokenTTLMinutes)
	}
	if !cfg.NotificationsEnabled {
		t.Error("NotificationsEnabled = false, want true by default")
	}
	if cfg.CacheEnabled {
		t.Error("CacheEnabled = true, want false by default")
	}
	if cfg.CacheTTL != 5*time.Minute {
		t.Errorf("CacheTTL = %v, want 5m", cfg.CacheTTL)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("HTTP_PORT", "8080")
	t.Setenv("ACCESS_TOKEN_EXPIRE_MINUTES", "60")
	t.Setenv("EMAIL_ENABLED", "false")
	t.Setenv("CACHE_ENABLED", "true")
	t.Setenv("CACHE_TTL", "90s")
	t.Setenv("JWT_SECRET_KEY", "env-secret")

	cfg := Load()

	if cfg.HTTPPort != 8080 {
		t.Errorf("HTTPPort = %d, want 8080", cfg.HTTPPort)
	}
	if cfg.AccessTokenTTL() != time.Hour {
		t.Errorf("AccessTokenTTL() = %v, want 1h", cfg.AccessTokenTTL())
	}
	if cfg.NotificationsEnabled {
		t.Error("NotificationsEnabled = true, want false")
	}
	if !cfg.CacheEnabled {
		t.Error("CacheEnabled = false, want true")
	}
	if cfg.CacheTTL != 90*time.Second {
		t.Errorf("CacheTTL = %v, want 90s", cfg.CacheTTL)
	}
	if cfg.JWTSecret != "env-secret" {
		t.Errorf("JWTSecret = %q, want env-secret", cfg.JWTSecret)
	}
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("HTTP_PORT", "not-a-number")
	t.Setenv("EMAIL_ENABLED", "sometimes")
	t.Setenv("CACHE_TTL", "soon")

	cfg := Load()

	if cfg.HTTPPort != 3000 {
		t.Errorf("HTTPPort = %d, want the 3000 fallback", cfg.HTTPPort)
	}
	if !cfg.NotificationsEnabled {
		t.Error("NotificationsEnabled should fall back to true")
	}
	if cfg.CacheTTL != 5*time.Minute {
		t.Errorf("CacheTTL = %v, want the 5m fallback", cfg.CacheTTL)
	}
}
