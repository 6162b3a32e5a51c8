package config

import (
	"path/filepath"
	"testing"
)

func TestDataDirDefaultsUnderHome(t *testing.T) {
	home := filepath.Join(t.TempDir(), "home")
	t.Setenv("HOME", home)
	t.Setenv(homeEnvVar, "")

	dir, err := DataDir()
	if err != nil {
		t.Fatalf("DataDir: %v", err)
	}
	if want := filepath.Join(home, ".daywise"); dir != want {
		t.Fatalf("unexpected data dir: got=%q want=%q", dir, want)
	}
}

func TestDataDirOverride(t *testing.T) {
	override := t.TempDir()
	t.Setenv(homeEnvVar, override)

	path, err := ConfigPath()
	if err != nil {
		t.Fatalf("ConfigPath: %v", err)
	}
	if want := filepath.Join(override, "config.toml"); path != want {
		t.Fatalf("unexpected config path: got=%q want=%q", path, want)
	}
	logPath, err := LogPath()
	if err != nil {
		t.Fatalf("LogPath: %v", err)
	}
	if want := filepath.Join(override, "daywise.log"); logPath != want {
		t.Fatalf("unexpected log path: got=%q want=%q", logPath, want)
	}
}
