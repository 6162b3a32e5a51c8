package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"daywise/internal/app"
	"daywise/internal/config"
	"daywise/internal/notes"
	"daywise/internal/store"
	"daywise/internal/types"
)

func fileBackedConfig(t *testing.T) func() (config.Config, error) {
	t.Helper()
	t.Setenv("DAYWISE_HOME", t.TempDir())
	cfg := config.DefaultConfig()
	cfg.Storage.Backend = store.RepositoryBackendFile
	cfg.Storage.Path = filepath.Join(t.TempDir(), "notes.json")
	return func() (config.Config, error) { return cfg, nil }
}

func sequentialIDs(prefix string) notes.Option {
	n := 0
	return notes.WithIDGenerator(func() string {
		n++
		return prefix + string(rune('0'+n))
	})
}

func addNote(t *testing.T, loadConfig func() (config.Config, error), id string, args ...string) {
	t.Helper()
	stdout := &bytes.Buffer{}
	cmd := NewAddCommand(stdout, &bytes.Buffer{}, loadConfig, openConfiguredRepository,
		notes.WithIDGenerator(func() string { return id }))
	if err := cmd.Run(args); err != nil {
		t.Fatalf("expected add to succeed, got err=%v", err)
	}
	if got := stdout.String(); got != id+"\n" {
		t.Fatalf("unexpected add output: %q", got)
	}
}

func TestAddCommandWritesNoteID(t *testing.T) {
	loadConfig := fileBackedConfig(t)
	stdout := &bytes.Buffer{}
	cmd := NewAddCommand(stdout, &bytes.Buffer{}, loadConfig, openConfiguredRepository, sequentialIDs("note-"))

	err := cmd.Run([]string{"--title", "  Groceries ", "--content", "milk", "--priority", "high"})
	if err != nil {
		t.Fatalf("expected add to succeed, got err=%v", err)
	}
	if got := stdout.String(); got != "note-1\n" {
		t.Fatalf("unexpected stdout: %q", got)
	}

	cfg, _ := loadConfig()
	repo, err := openConfiguredRepository(cfg)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer repo.Close()
	note, ok, err := repo.Notes().GetByID(context.Background(), "note-1")
	if err != nil || !ok {
		t.Fatalf("expected stored note, ok=%v err=%v", ok, err)
	}
	if note.Title != "Groceries" || note.Priority != types.PriorityHigh {
		t.Fatalf("unexpected stored note: %#v", note)
	}
	if !note.CreatedOn.Equal(note.UpdatedOn) {
		t.Fatalf("expected created and updated to match on a new note")
	}
}

func TestAddCommandRequiresTitleAndContent(t *testing.T) {
	loadConfig := fileBackedConfig(t)
	cmd := NewAddCommand(&bytes.Buffer{}, &bytes.Buffer{}, loadConfig, openConfiguredRepository)

	err := cmd.Run([]string{"--title", "only a title", "--content", "   "})
	if err == nil || !strings.Contains(err.Error(), "required") {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestAddCommandRejectsUnknownPriority(t *testing.T) {
	loadConfig := fileBackedConfig(t)
	cmd := NewAddCommand(&bytes.Buffer{}, &bytes.Buffer{}, loadConfig, openConfiguredRepository)

	err := cmd.Run([]string{"--title", "a", "--content", "b", "--priority", "urgent"})
	if !errors.Is(err, types.ErrInvalidPriority) {
		t.Fatalf("expected invalid priority, got %v", err)
	}
}

func TestListCommandPrintsNotes(t *testing.T) {
	loadConfig := fileBackedConfig(t)
	addNote(t, loadConfig, "n1", "--title", "Groceries", "--content", "milk")
	stdout := &bytes.Buffer{}
	cmd := NewListCommand(stdout, &bytes.Buffer{}, loadConfig, openConfiguredRepository)

	if err := cmd.Run(nil); err != nil {
		t.Fatalf("expected list to succeed, got err=%v", err)
	}
	out := stdout.String()
	if !strings.Contains(out, "ID") || !strings.Contains(out, "PRIORITY") || !strings.Contains(out, "TITLE") {
		t.Fatalf("expected header in output, got %q", out)
	}
	if !strings.Contains(out, "n1") || !strings.Contains(out, "Groceries") || !strings.Contains(out, "Normal") {
		t.Fatalf("expected note row in output, got %q", out)
	}
}

func TestListCommandWritesJSONByPriority(t *testing.T) {
	loadConfig := fileBackedConfig(t)
	addNote(t, loadConfig, "low", "--title", "Later", "--content", "x", "--priority", "low")
	addNote(t, loadConfig, "high", "--title", "Now", "--content", "y", "--priority", "high")
	addNote(t, loadConfig, "mid", "--title", "Soon", "--content", "z", "--priority", "medium")
	stdout := &bytes.Buffer{}
	cmd := NewListCommand(stdout, &bytes.Buffer{}, loadConfig, openConfiguredRepository)

	if err := cmd.Run([]string{"--sort", "priority", "--format", "json"}); err != nil {
		t.Fatalf("expected list to succeed, got err=%v", err)
	}
	var out []noteOutput
	if err := json.Unmarshal(stdout.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v (%q)", err, stdout.String())
	}
	var ids []string
	for _, note := range out {
		ids = append(ids, note.ID)
	}
	if strings.Join(ids, ",") != "high,mid,low" {
		t.Fatalf("unexpected priority order: %v", ids)
	}
	if out[0].Priority != "high" || out[0].CreatedOn == 0 {
		t.Fatalf("unexpected json note: %#v", out[0])
	}
}

func TestListCommandRejectsBadFlags(t *testing.T) {
	loadConfig := fileBackedConfig(t)
	cmd := NewListCommand(&bytes.Buffer{}, &bytes.Buffer{}, loadConfig, openConfiguredRepository)

	if err := cmd.Run([]string{"--sort", "alphabetical"}); !errors.Is(err, types.ErrInvalidSortOption) {
		t.Fatalf("expected invalid sort, got %v", err)
	}
	if err := cmd.Run([]string{"--format", "yaml"}); err == nil {
		t.Fatalf("expected invalid format error")
	}
}

func TestShowCommandPrintsNote(t *testing.T) {
	loadConfig := fileBackedConfig(t)
	addNote(t, loadConfig, "n1", "--title", "Groceries", "--content", "milk, eggs")
	stdout := &bytes.Buffer{}
	cmd := NewShowCommand(stdout, &bytes.Buffer{}, loadConfig, openConfiguredRepository)

	if err := cmd.Run([]string{"n1"}); err != nil {
		t.Fatalf("expected show to succeed, got err=%v", err)
	}
	out := stdout.String()
	if !strings.Contains(out, "Groceries") || !strings.Contains(out, "milk, eggs") || !strings.Contains(out, "CREATED") {
		t.Fatalf("unexpected show output: %q", out)
	}
}

func TestShowCommandMissingNote(t *testing.T) {
	loadConfig := fileBackedConfig(t)
	cmd := NewShowCommand(&bytes.Buffer{}, &bytes.Buffer{}, loadConfig, openConfiguredRepository)

	if err := cmd.Run([]string{"nope"}); !errors.Is(err, store.ErrNoteNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err := cmd.Run(nil); err == nil {
		t.Fatalf("expected missing id error")
	}
}

func TestDeleteCommandRemovesNote(t *testing.T) {
	loadConfig := fileBackedConfig(t)
	addNote(t, loadConfig, "n1", "--title", "Groceries", "--content", "milk")
	stdout := &bytes.Buffer{}
	cmd := NewDeleteCommand(stdout, &bytes.Buffer{}, loadConfig, openConfiguredRepository)

	if err := cmd.Run([]string{"n1"}); err != nil {
		t.Fatalf("expected delete to succeed, got err=%v", err)
	}
	if got := stdout.String(); got != "deleted n1\n" {
		t.Fatalf("unexpected stdout: %q", got)
	}
	if err := cmd.Run([]string{"n1"}); !errors.Is(err, store.ErrNoteNotFound) {
		t.Fatalf("expected second delete to report not found, got %v", err)
	}
}

func TestConfigCommandDefaultTOML(t *testing.T) {
	t.Setenv("DAYWISE_HOME", t.TempDir())
	stdout := &bytes.Buffer{}
	cmd := NewConfigCommand(stdout, &bytes.Buffer{}, func() (config.Config, error) {
		return config.Config{}, errors.New("should not load")
	})

	if err := cmd.Run([]string{"--default", "--format", "toml"}); err != nil {
		t.Fatalf("expected config to succeed, got err=%v", err)
	}
	out := stdout.String()
	for _, want := range []string{"[storage]", "sqlite", "[ui]", "refresh_delay_ms = 500", "load_delay_ms = 450"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output, got %q", want, out)
		}
	}
}

func TestConfigCommandEffectiveJSON(t *testing.T) {
	loadConfig := fileBackedConfig(t)
	stdout := &bytes.Buffer{}
	cmd := NewConfigCommand(stdout, &bytes.Buffer{}, loadConfig)

	if err := cmd.Run(nil); err != nil {
		t.Fatalf("expected config to succeed, got err=%v", err)
	}
	var out configOutput
	if err := json.Unmarshal(stdout.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Storage.Backend != store.RepositoryBackendFile || !strings.HasSuffix(out.Storage.Path, "notes.json") {
		t.Fatalf("unexpected storage section: %#v", out.Storage)
	}
	if out.UI.DefaultSort != "recency" || !out.UI.Markdown {
		t.Fatalf("unexpected ui section: %#v", out.UI)
	}
	if err := cmd.Run([]string{"--format", "yaml"}); err == nil {
		t.Fatalf("expected invalid format error")
	}
}

func TestUICommandPassesConfiguredOptions(t *testing.T) {
	loadConfig := fileBackedConfig(t)
	var got app.Options
	calls := 0
	cmd := NewUICommand(&bytes.Buffer{}, loadConfig, openConfiguredRepository, func(ctx context.Context, opts app.Options) error {
		calls++
		got = opts
		return nil
	})
	cmd.logPath = func() (string, error) { return filepath.Join(t.TempDir(), "ui.log"), nil }

	if err := cmd.Run([]string{"--sort", "priority", "--plain"}); err != nil {
		t.Fatalf("expected ui to succeed, got err=%v", err)
	}
	if calls != 1 {
		t.Fatalf("expected ui to run once, got %d", calls)
	}
	if got.Store == nil || got.Logger == nil {
		t.Fatalf("expected store and logger to be wired")
	}
	if got.DefaultSort != types.SortByPriority || got.Markdown {
		t.Fatalf("unexpected flags applied: %#v", got)
	}
	if got.RefreshDelay != notes.DefaultRefreshDelay || got.LoadDelay != notes.DefaultLoadDelay {
		t.Fatalf("expected configured delays, got %v/%v", got.RefreshDelay, got.LoadDelay)
	}
}

func TestUICommandReportsRunError(t *testing.T) {
	loadConfig := fileBackedConfig(t)
	cmd := NewUICommand(&bytes.Buffer{}, loadConfig, openConfiguredRepository, func(context.Context, app.Options) error {
		return errors.New("no tty")
	})
	cmd.logPath = func() (string, error) { return filepath.Join(t.TempDir(), "ui.log"), nil }

	if err := cmd.Run(nil); err == nil || err.Error() != "no tty" {
		t.Fatalf("expected run error, got %v", err)
	}
}

func TestBuildCommandsRegistersEveryCommand(t *testing.T) {
	commands := buildCommands(commandWiring{
		stdout:         &bytes.Buffer{},
		stderr:         &bytes.Buffer{},
		loadConfig:     config.Load,
		openRepository: openConfiguredRepository,
		runUI:          app.Run,
		version:        "test",
	})
	for _, name := range []string{"ui", "list", "add", "show", "delete", "config", "version"} {
		if _, ok := commands[name]; !ok {
			t.Fatalf("expected %s command", name)
		}
	}
}

func TestVersionCommand(t *testing.T) {
	stdout := &bytes.Buffer{}
	if err := NewVersionCommand(stdout, "abc123").Run(nil); err != nil {
		t.Fatalf("version: %v", err)
	}
	if stdout.String() != "abc123\n" {
		t.Fatalf("unexpected version output: %q", stdout.String())
	}
}
