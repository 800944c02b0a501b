package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/tilery/tilery/pkg/errors"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestLoadFileMissingUsesDefaults(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("missing config should not error: %v", err)
	}
	if cfg.Server.Addr != ":8080" || cfg.Server.Store != "memory" {
		t.Errorf("missing config should yield defaults, got %+v", cfg.Server)
	}
}

func TestLoadFileMergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[server]
addr = ":9000"
store = "redis"

[server.redis]
addr = "redis.internal:6379"
ttl = "48h"

[autosave]
enabled = false
delay = "250ms"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Server.Addr != ":9000" || cfg.Server.Store != "redis" {
		t.Errorf("server = %+v", cfg.Server)
	}
	if cfg.Server.Redis.Addr != "redis.internal:6379" {
		t.Errorf("redis addr = %q", cfg.Server.Redis.Addr)
	}
	if cfg.Server.Redis.TTL.Duration != 48*time.Hour {
		t.Errorf("redis ttl = %v", cfg.Server.Redis.TTL.Duration)
	}
	if cfg.Autosave.Enabled || cfg.Autosave.Delay.Duration != 250*time.Millisecond {
		t.Errorf("autosave = %+v", cfg.Autosave)
	}
	// Untouched sections keep defaults.
	if cfg.Share.BaseURL != "http://localhost:8080" {
		t.Errorf("share base_url should stay default, got %q", cfg.Share.BaseURL)
	}
}

func TestLoadFileRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad toml", `server = [`},
		{"unknown store", "[server]\nstore = \"cassandra\"\n"},
		{"bad share url", "[share]\nbase_url = \"ftp://x\"\n"},
		{"bad scale", "[export]\nscale = -1.0\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}
			_, err := LoadFile(path)
			if err == nil {
				t.Fatal("bad config should error")
			}
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("error should carry INVALID_CONFIG, got %v", err)
			}
		})
	}
}

func TestPathHonorsEnvOverride(t *testing.T) {
	t.Setenv(EnvConfigPath, "/tmp/custom.toml")
	p, err := Path()
	if err != nil {
		t.Fatal(err)
	}
	if p != "/tmp/custom.toml" {
		t.Errorf("Path = %q, want env override", p)
	}
}
