package bootstrap

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigMergesFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "default.yaml")
	raw := []byte(`
service:
  id: M23-NFT-Auction-Service
  http_port: 8181
dependencies:
  postgres_url: postgres://db:5432/auction
  redis_url: redis://cache:6379/0
events:
  subject_prefix: marketplace.events
`)
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("HTTP_PORT", "8282")
	t.Setenv("NATS_URL", "nats://broker:4222")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.HTTPPort != 8282 {
		t.Fatalf("env must override file, http port = %d", cfg.HTTPPort)
	}
	if cfg.DatabaseURL != "postgres://db:5432/auction" {
		t.Fatalf("database url = %q", cfg.DatabaseURL)
	}
	if cfg.NATSURL != "nats://broker:4222" {
		t.Fatalf("nats url = %q", cfg.NATSURL)
	}
	if cfg.EventSubjectPrefix != "marketplace.events" {
		t.Fatalf("subject prefix = %q", cfg.EventSubjectPrefix)
	}
}

func TestLoadConfigRequiresBackendsUnlessInMemory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.yaml")

	t.Setenv("DB_URL", "")
	t.Setenv("POSTGRES_URL", "")
	t.Setenv("REDIS_URL", "")
	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("expected error without database url")
	}

	t.Setenv("STORAGE_IN_MEMORY", "true")
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("in-memory mode must not require backends: %v", err)
	}
	if !cfg.InMemory {
		t.Fatalf("in-memory flag not set")
	}
}
