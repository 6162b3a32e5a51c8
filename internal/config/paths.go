package config

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	appDirName = ".daywise"
	homeEnvVar = "DAYWISE_HOME"
)

// DataDir returns the base data directory for daywise.
func DataDir() (string, error) {
	if override := strings.TrimSpace(os.Getenv(homeEnvVar)); override != "" {
		return override, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, appDirName), nil
}

// ConfigPath returns the path to the TOML settings file.
func ConfigPath() (string, error) {
	dataDir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, "config.toml"), nil
}

// LogPath returns the path the terminal UI logs to.
func LogPath() (string, error) {
	dataDir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, "daywise.log"), nil
}

func defaultStoreFile(backend string) string {
	switch backend {
	case "bbolt":
		return "notes.bolt"
	case "file":
		return "notes.json"
	default:
		return "notes.sqlite"
	}
}
