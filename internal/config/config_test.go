package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadFromPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storefront.yaml")
	content := []byte("api:\n  base_url: https://shop.example.com/api\n  timeout: 10s\nlog:\n  level: debug\n")
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath() error = %v", err)
	}
	if cfg.API.BaseURL != "https://shop.example.com/api" {
		t.Errorf("BaseURL = %q", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 10*time.Second {
		t.Errorf("Timeout = %v, want 10s", cfg.API.Timeout)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Level = %q, want debug", cfg.Log.Level)
	}
}

func TestLoadOrDefault_MissingFile(t *testing.T) {
	cfg := LoadOrDefault(filepath.Join(t.TempDir(), "absent.yaml"))
	if cfg.API.BaseURL != "http://localhost:8080/api" {
		t.Errorf("BaseURL = %q, want default", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v, want 30s", cfg.API.Timeout)
	}
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("WISHCRATE_API_URL", "http://override:9090/api")

	cfg := LoadOrDefault(filepath.Join(t.TempDir(), "absent.yaml"))
	if cfg.API.BaseURL != "http://override:9090/api" {
		t.Errorf("BaseURL = %q, want env override", cfg.API.BaseURL)
	}
}
