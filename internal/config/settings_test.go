package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	dataDir := t.TempDir()
	t.Setenv(homeEnvVar, dataDir)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.StorageBackend() != "sqlite" {
		t.Fatalf("unexpected backend: %q", cfg.StorageBackend())
	}
	path, err := cfg.StoragePath()
	if err != nil {
		t.Fatalf("StoragePath: %v", err)
	}
	if want := filepath.Join(dataDir, "notes.sqlite"); path != want {
		t.Fatalf("unexpected storage path: got=%q want=%q", path, want)
	}
	if cfg.RefreshDelay() != 500*time.Millisecond || cfg.LoadDelay() != 450*time.Millisecond {
		t.Fatalf("unexpected delays: refresh=%v load=%v", cfg.RefreshDelay(), cfg.LoadDelay())
	}
	if cfg.DefaultSort() != "recency" || !cfg.MarkdownEnabled() {
		t.Fatalf("unexpected ui defaults: %#v", cfg.UI)
	}
	if cfg.LogLevel() != "info" || cfg.LogFormat() != "text" {
		t.Fatalf("unexpected logging defaults: %#v", cfg.Logging)
	}
}

func TestLoadFromTOML(t *testing.T) {
	dataDir := t.TempDir()
	t.Setenv(homeEnvVar, dataDir)

	content := []byte(`
[storage]
backend = "BBolt"
path = "db/notes.bolt"

[logging]
level = "debug"
format = "json"

[ui]
refresh_delay_ms = 0
load_delay_ms = 120
default_sort = "priority"
markdown = false
`)
	if err := os.WriteFile(filepath.Join(dataDir, "config.toml"), content, 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.StorageBackend() != "bbolt" {
		t.Fatalf("unexpected backend: %q", cfg.StorageBackend())
	}
	path, err := cfg.StoragePath()
	if err != nil {
		t.Fatalf("StoragePath: %v", err)
	}
	if want := filepath.Join(dataDir, "db", "notes.bolt"); path != want {
		t.Fatalf("unexpected storage path: got=%q want=%q", path, want)
	}
	if cfg.RefreshDelay() != 0 {
		t.Fatalf("expected refresh delay to be disabled, got %v", cfg.RefreshDelay())
	}
	if cfg.LoadDelay() != 120*time.Millisecond {
		t.Fatalf("unexpected load delay: %v", cfg.LoadDelay())
	}
	if cfg.DefaultSort() != "priority" || cfg.MarkdownEnabled() {
		t.Fatalf("unexpected ui config: %#v", cfg.UI)
	}
	if cfg.LogLevel() != "debug" || cfg.LogFormat() != "json" {
		t.Fatalf("unexpected logging config: %#v", cfg.Logging)
	}
}

func TestLoadEmptyFileUsesDefaults(t *testing.T) {
	dataDir := t.TempDir()
	t.Setenv(homeEnvVar, dataDir)
	if err := os.WriteFile(filepath.Join(dataDir, "config.toml"), []byte("  \n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.StorageBackend() != "sqlite" {
		t.Fatalf("unexpected backend: %q", cfg.StorageBackend())
	}
}

func TestLoadInvalidTOML(t *testing.T) {
	dataDir := t.TempDir()
	t.Setenv(homeEnvVar, dataDir)
	if err := os.WriteFile(filepath.Join(dataDir, "config.toml"), []byte("[storage\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := Load(); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestStoragePathAbsolute(t *testing.T) {
	abs := filepath.Join(t.TempDir(), "elsewhere.json")
	cfg := Config{Storage: StorageConfig{Backend: "file", Path: abs}}
	path, err := cfg.StoragePath()
	if err != nil {
		t.Fatalf("StoragePath: %v", err)
	}
	if path != abs {
		t.Fatalf("unexpected path: %q", path)
	}
}

func TestNegativeDelayFallsBackToDefault(t *testing.T) {
	negative := -1
	cfg := Config{UI: UIConfig{RefreshDelayMS: &negative}}
	if cfg.RefreshDelay() != 500*time.Millisecond {
		t.Fatalf("unexpected refresh delay: %v", cfg.RefreshDelay())
	}
}
