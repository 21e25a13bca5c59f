package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.HTTPPort != "8080" {
		t.Fatalf("expected default port 8080, got %s", cfg.HTTPPort)
	}
	if cfg.DatabaseMaxConns != 25 {
		t.Fatalf("expected default max conns 25, got %d", cfg.DatabaseMaxConns)
	}
	if cfg.OutcomeSeed != 0 {
		t.Fatalf("expected unset outcome seed, got %d", cfg.OutcomeSeed)
	}
	if cfg.JWTExpiration != 24*time.Hour {
		t.Fatalf("expected default JWT expiration 24h, got %s", cfg.JWTExpiration)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("OUTCOME_SEED", "42")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.HTTPPort != "9090" {
		t.Fatalf("expected port 9090, got %s", cfg.HTTPPort)
	}
	if cfg.OutcomeSeed != 42 {
		t.Fatalf("expected outcome seed 42, got %d", cfg.OutcomeSeed)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("expected debug level, got %s", cfg.LogLevel)
	}
}
