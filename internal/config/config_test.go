package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/wikiroam/randomarticle/internal/config"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}
	return path
}

func TestLoad_AppliesDefaults(t *testing.T) {
	path := writeConfigFile(t, `
postgres:
  host: localhost
  dbname: randomarticle
redis:
  addr: localhost:6379
`)

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Server.Address != ":8090" {
		t.Errorf("Server.Address = %q, want %q", cfg.Server.Address, ":8090")
	}
	if cfg.Server.ReadTimeout != 10*time.Second {
		t.Errorf("Server.ReadTimeout = %v, want 10s", cfg.Server.ReadTimeout)
	}
	if cfg.Postgres.Port != "5432" {
		t.Errorf("Postgres.Port = %q, want 5432", cfg.Postgres.Port)
	}
	if cfg.Postgres.SSLMode != "disable" {
		t.Errorf("Postgres.SSLMode = %q, want disable", cfg.Postgres.SSLMode)
	}
	if cfg.Provider.Timeout != 10*time.Second {
		t.Errorf("Provider.Timeout = %v, want 10s", cfg.Provider.Timeout)
	}
	if cfg.Provider.MaxRetries != 1 {
		t.Errorf("Provider.MaxRetries = %d, want 1", cfg.Provider.MaxRetries)
	}
	if cfg.Cache.PreviewTTL != 15*time.Minute {
		t.Errorf("Cache.PreviewTTL = %v, want 15m", cfg.Cache.PreviewTTL)
	}
}

func TestLoad_Validation(t *testing.T) {
	testCases := []struct {
		name    string
		content string
		wantErr bool
	}{
		{
			name: "valid config",
			content: `
postgres:
  host: localhost
  dbname: randomarticle
redis:
  addr: localhost:6379
provider:
  timeout: 5s
  max_retries: 2
cache:
  preview_ttl: 5m
`,
			wantErr: false,
		},
		{
			name: "missing postgres host",
			content: `
postgres:
  dbname: randomarticle
redis:
  addr: localhost:6379
`,
			wantErr: true,
		},
		{
			name: "missing postgres dbname",
			content: `
postgres:
  host: localhost
redis:
  addr: localhost:6379
`,
			wantErr: true,
		},
		{
			name: "missing redis addr",
			content: `
postgres:
  host: localhost
  dbname: randomarticle
`,
			wantErr: true,
		},
		{
			name: "negative max retries",
			content: `
postgres:
  host: localhost
  dbname: randomarticle
redis:
  addr: localhost:6379
provider:
  max_retries: -1
`,
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeConfigFile(t, tc.content)
			_, err := config.Load(path)
			if (err != nil) != tc.wantErr {
				t.Errorf("Load() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfigFile(t, `
postgres:
  host: localhost
  dbname: randomarticle
redis:
  addr: localhost:6379
`)

	t.Setenv("REDIS_ADDR", "redis.internal:6380")
	t.Setenv("RANDOMARTICLE_PORT", "9090")
	t.Setenv("APP_DEBUG", "true")

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Redis.Addr != "redis.internal:6380" {
		t.Errorf("Redis.Addr = %q, want env override", cfg.Redis.Addr)
	}
	if cfg.Server.Address != ":9090" {
		t.Errorf("Server.Address = %q, want :9090", cfg.Server.Address)
	}
	if !cfg.Debug {
		t.Error("Debug should be true from APP_DEBUG")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load() expected error for missing file")
	}
}
