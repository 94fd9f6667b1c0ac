package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Remote.BaseURL != "http://localhost:4090" {
		t.Fatalf("expected default base URL, got %s", cfg.Remote.BaseURL)
	}
	if cfg.Dashboard.PageSize != 10 {
		t.Fatalf("expected page size 10, got %d", cfg.Dashboard.PageSize)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "remote:\n  base_url: https://roster.example.com\n  timeout: 3s\nlog:\n  level: debug\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Remote.BaseURL != "https://roster.example.com" {
		t.Fatalf("expected overridden base URL, got %s", cfg.Remote.BaseURL)
	}
	if cfg.Remote.Timeout != 3*time.Second {
		t.Fatalf("expected 3s timeout, got %v", cfg.Remote.Timeout)
	}
	if cfg.Log.Level != "debug" {
		t.Fatalf("expected debug level, got %s", cfg.Log.Level)
	}
	// Untouched sections keep defaults
	if cfg.Server.Addr != ":4090" || cfg.Log.Format != "text" {
		t.Fatalf("expected defaults for omitted keys, got %+v", cfg)
	}
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("dashboard:\n  page_size: 0\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "page_size") {
		t.Fatalf("expected page_size error, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Remote.BaseURL = "localhost:4090"
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error for URL without scheme")
	}

	cfg = DefaultConfig()
	cfg.Log.Format = "xml"
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error for log format")
	}

	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := DefaultConfig()
	cfg.Server.Addr = ":9999"

	if err := cfg.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Server.Addr != ":9999" {
		t.Fatalf("expected :9999, got %s", loaded.Server.Addr)
	}
	if loaded.Remote.Timeout != cfg.Remote.Timeout {
		t.Fatalf("expected timeout %v, got %v", cfg.Remote.Timeout, loaded.Remote.Timeout)
	}
}
