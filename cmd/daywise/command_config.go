package main

import (
	"errors"
	"flag"
	"io"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"daywise/internal/config"
)

type ConfigCommand struct {
	stdout     io.Writer
	stderr     io.Writer
	loadConfig func() (config.Config, error)
	configPath func() (string, error)
	logPath    func() (string, error)
}

const (
	configFormatJSON = "json"
	configFormatTOML = "toml"
)

type configOutput struct {
	ConfigPath string                 `json:"config_path,omitempty" toml:"config_path,omitempty"`
	LogPath    string                 `json:"log_path,omitempty" toml:"log_path,omitempty"`
	Storage    effectiveStorageConfig `json:"storage" toml:"storage"`
	Logging    effectiveLoggingConfig `json:"logging" toml:"logging"`
	UI         effectiveUIConfig      `json:"ui" toml:"ui"`
}

type effectiveStorageConfig struct {
	Backend string `json:"backend" toml:"backend"`
	Path    string `json:"path" toml:"path"`
}

type effectiveLoggingConfig struct {
	Level  string `json:"level" toml:"level"`
	Format string `json:"format" toml:"format"`
}

type effectiveUIConfig struct {
	RefreshDelayMS int64  `json:"refresh_delay_ms" toml:"refresh_delay_ms"`
	LoadDelayMS    int64  `json:"load_delay_ms" toml:"load_delay_ms"`
	DefaultSort    string `json:"default_sort" toml:"default_sort"`
	Markdown       bool   `json:"markdown" toml:"markdown"`
}

func NewConfigCommand(stdout, stderr io.Writer, loadConfig func() (config.Config, error)) *ConfigCommand {
	return &ConfigCommand{
		stdout:     stdout,
		stderr:     stderr,
		loadConfig: loadConfig,
		configPath: config.ConfigPath,
		logPath:    config.LogPath,
	}
}

func (c *ConfigCommand) Run(args []string) error {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	defaults := fs.Bool("default", false, "print default config values")
	format := fs.String("format", configFormatJSON, "output format: json|toml")
	if err := fs.Parse(args); err != nil {
		return err
	}

	resolvedFormat, err := resolveConfigFormat(*format)
	if err != nil {
		return err
	}
	payload, err := c.buildOutput(*defaults)
	if err != nil {
		return err
	}
	return writeConfigOutput(c.stdout, resolvedFormat, payload)
}

func (c *ConfigCommand) buildOutput(defaults bool) (configOutput, error) {
	cfg := config.DefaultConfig()
	if !defaults {
		loaded, err := c.loadConfig()
		if err != nil {
			return configOutput{}, err
		}
		cfg = loaded
	}
	storagePath, err := cfg.StoragePath()
	if err != nil {
		return configOutput{}, err
	}
	out := configOutput{
		Storage: effectiveStorageConfig{
			Backend: cfg.StorageBackend(),
			Path:    storagePath,
		},
		Logging: effectiveLoggingConfig{
			Level:  cfg.LogLevel(),
			Format: cfg.LogFormat(),
		},
		UI: effectiveUIConfig{
			RefreshDelayMS: cfg.RefreshDelay().Milliseconds(),
			LoadDelayMS:    cfg.LoadDelay().Milliseconds(),
			DefaultSort:    cfg.DefaultSort(),
			Markdown:       cfg.MarkdownEnabled(),
		},
	}
	if path, err := c.configPath(); err == nil {
		out.ConfigPath = path
	}
	if path, err := c.logPath(); err == nil {
		out.LogPath = path
	}
	return out, nil
}

func writeConfigOutput(out io.Writer, format string, payload any) error {
	switch format {
	case configFormatJSON:
		return writeJSON(out, payload)
	case configFormatTOML:
		data, err := toml.Marshal(payload)
		if err != nil {
			return err
		}
		if len(data) == 0 || data[len(data)-1] != '\n' {
			data = append(data, '\n')
		}
		_, err = out.Write(data)
		return err
	default:
		return errors.New("unsupported format")
	}
}

func resolveConfigFormat(raw string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", configFormatJSON:
		return configFormatJSON, nil
	case configFormatTOML:
		return configFormatTOML, nil
	default:
		return "", errors.New("invalid format: must be json or toml")
	}
}
