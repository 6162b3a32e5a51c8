package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	defaultStorageBackend = "sqlite"
	defaultLogLevel       = "info"
	defaultLogFormat      = "text"
	defaultSort           = "recency"
	defaultRefreshDelayMS = 500
	defaultLoadDelayMS    = 450
)

type Config struct {
	Storage StorageConfig `toml:"storage"`
	Logging LoggingConfig `toml:"logging"`
	UI      UIConfig      `toml:"ui"`
}

type StorageConfig struct {
	Backend string `toml:"backend"`
	Path    string `toml:"path"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

type UIConfig struct {
	// Zero disables the delay; negative values fall back to the default.
	RefreshDelayMS *int   `toml:"refresh_delay_ms"`
	LoadDelayMS    *int   `toml:"load_delay_ms"`
	DefaultSort    string `toml:"default_sort"`
	Markdown       *bool  `toml:"markdown"`
}

func DefaultConfig() Config {
	refresh := defaultRefreshDelayMS
	load := defaultLoadDelayMS
	markdown := true
	return Config{
		Storage: StorageConfig{
			Backend: defaultStorageBackend,
		},
		Logging: LoggingConfig{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
		UI: UIConfig{
			RefreshDelayMS: &refresh,
			LoadDelayMS:    &load,
			DefaultSort:    defaultSort,
			Markdown:       &markdown,
		},
	}
}

func Load() (Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return Config{}, err
	}
	return loadFromPath(path)
}

func (c Config) StorageBackend() string {
	backend := strings.ToLower(strings.TrimSpace(c.Storage.Backend))
	if backend == "" {
		return defaultStorageBackend
	}
	return backend
}

// StoragePath resolves the store location; relative paths are taken from the
// data directory.
func (c Config) StoragePath() (string, error) {
	path := strings.TrimSpace(c.Storage.Path)
	if path == "" {
		dataDir, err := DataDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dataDir, defaultStoreFile(c.StorageBackend())), nil
	}
	return resolveConfigPath(path)
}

func (c Config) LogLevel() string {
	level := strings.TrimSpace(c.Logging.Level)
	if level == "" {
		return defaultLogLevel
	}
	return level
}

func (c Config) LogFormat() string {
	format := strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if format == "" {
		return defaultLogFormat
	}
	return format
}

func (c Config) RefreshDelay() time.Duration {
	return delayOrDefault(c.UI.RefreshDelayMS, defaultRefreshDelayMS)
}

func (c Config) LoadDelay() time.Duration {
	return delayOrDefault(c.UI.LoadDelayMS, defaultLoadDelayMS)
}

func (c Config) DefaultSort() string {
	sort := strings.ToLower(strings.TrimSpace(c.UI.DefaultSort))
	if sort == "" {
		return defaultSort
	}
	return sort
}

func (c Config) MarkdownEnabled() bool {
	if c.UI.Markdown == nil {
		return true
	}
	return *c.UI.Markdown
}

func delayOrDefault(ms *int, fallback int) time.Duration {
	if ms == nil || *ms < 0 {
		return time.Duration(fallback) * time.Millisecond
	}
	return time.Duration(*ms) * time.Millisecond
}

func loadFromPath(path string) (Config, error) {
	cfg := DefaultConfig()
	if err := readTOML(path, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func readTOML(path string, out any) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return errors.New("path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil
	}
	return toml.Unmarshal(data, out)
}

func resolveConfigPath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", errors.New("path is required")
	}
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, path[2:]), nil
	}
	if filepath.IsAbs(path) {
		return path, nil
	}
	dataDir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, path), nil
}
