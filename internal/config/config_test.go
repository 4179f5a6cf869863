package config

import (
	"testing"
	"time"
)

func TestLoadServerDefaults(t *testing.T) {
	cfg := LoadServer()
	if cfg.Addr != ":8080" {
		t.Fatalf("default addr = %q, want :8080", cfg.Addr)
	}
	if cfg.DBPath != "taskboard.db" {
		t.Fatalf("default db path = %q", cfg.DBPath)
	}
}

func TestLoadServerFromEnv(t *testing.T) {
	t.Setenv("TASKBOARD_ADDR", ":9090")
	t.Setenv("TASKBOARD_DB_PATH", "/tmp/tasks.db")
	t.Setenv("LOG_FORMAT", "json")
	cfg := LoadServer()
	if cfg.Addr != ":9090" || cfg.DBPath != "/tmp/tasks.db" || cfg.LogFormat != "json" {
		t.Fatalf("unexpected config: %#v", cfg)
	}
}

func TestLoadClientTimeout(t *testing.T) {
	t.Setenv("TASKBOARD_HTTP_TIMEOUT", "3")
	cfg := LoadClient()
	if cfg.HTTPTimeout != 3*time.Second {
		t.Fatalf("timeout = %v, want 3s", cfg.HTTPTimeout)
	}

	t.Setenv("TASKBOARD_HTTP_TIMEOUT", "not-a-number")
	cfg = LoadClient()
	if cfg.HTTPTimeout != 10*time.Second {
		t.Fatalf("timeout fallback = %v, want 10s", cfg.HTTPTimeout)
	}
}
