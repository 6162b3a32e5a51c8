package main

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"strings"
	"text/tabwriter"

	"daywise/internal/config"
	"daywise/internal/logging"
	"daywise/internal/notes"
	"daywise/internal/store"
	"daywise/internal/types"
)

const version = "dev"

const (
	outputFormatText = "text"
	outputFormatJSON = "json"
)

// noteSession is an open repository plus the logger the command reports
// through.
type noteSession struct {
	repo   store.Repository
	logger logging.Logger
}

func openNoteSession(stderr io.Writer, loadConfig func() (config.Config, error), open repositoryOpener) (*noteSession, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	logger := logging.NewWithFormat(stderr, logging.ParseLevel(cfg.LogLevel()), logging.ParseFormat(cfg.LogFormat()))
	repo, err := open(cfg)
	if err != nil {
		return nil, err
	}
	logger.Debug("repository opened", logging.F("backend", repo.Backend()))
	return &noteSession{repo: repo, logger: logger}, nil
}

func (s *noteSession) Close() {
	if err := s.repo.Close(); err != nil {
		s.logger.Warn("close repository failed", logging.F("err", err))
	}
}

// managerOptions drops the UI pacing delays; commands want results at once.
func (s *noteSession) managerOptions() []notes.Option {
	return []notes.Option{
		notes.WithLogger(s.logger),
		notes.WithRefreshDelay(0),
		notes.WithLoadDelay(0),
	}
}

type noteOutput struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	Priority  string `json:"priority"`
	CreatedOn int64  `json:"created_on"`
	UpdatedOn int64  `json:"updated_on"`
}

func toNoteOutput(note types.Note) noteOutput {
	return noteOutput{
		ID:        note.ID,
		Title:     note.Title,
		Content:   note.Content,
		Priority:  note.Priority.String(),
		CreatedOn: note.CreatedOn.UnixMilli(),
		UpdatedOn: note.UpdatedOn.UnixMilli(),
	}
}

func printNotes(output io.Writer, list []types.Note) {
	writer := tabwriter.NewWriter(output, 0, 8, 2, ' ', 0)
	fmt.Fprintln(writer, "ID\tPRIORITY\tUPDATED\tTITLE")
	for _, note := range list {
		fmt.Fprintf(writer, "%s\t%s\t%s\t%s\n", note.ID, note.Priority.Name(), types.FormatDate(note.UpdatedOn), note.Title)
	}
	_ = writer.Flush()
}

func printNote(output io.Writer, note types.Note) {
	writer := tabwriter.NewWriter(output, 0, 8, 2, ' ', 0)
	fmt.Fprintf(writer, "ID\t%s\n", note.ID)
	fmt.Fprintf(writer, "TITLE\t%s\n", note.Title)
	fmt.Fprintf(writer, "PRIORITY\t%s\n", note.Priority.Name())
	fmt.Fprintf(writer, "CREATED\t%s\n", types.FormatDate(note.CreatedOn))
	fmt.Fprintf(writer, "UPDATED\t%s\n", types.FormatDate(note.UpdatedOn))
	_ = writer.Flush()
	fmt.Fprintf(output, "\n%s\n", note.Content)
}

func writeJSON(out io.Writer, payload any) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}

func resolveOutputFormat(raw string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", outputFormatText:
		return outputFormatText, nil
	case outputFormatJSON:
		return outputFormatJSON, nil
	default:
		return "", fmt.Errorf("invalid format %q: must be text or json", raw)
	}
}

func exitOnErr(label string, err error, stderr io.Writer) {
	if err == nil {
		return
	}
	fmt.Fprintf(stderr, "%s error: %v\n", label, err)
	os.Exit(1)
}

func buildVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok {
		var revision string
		var modified string
		for _, setting := range info.Settings {
			switch setting.Key {
			case "vcs.revision":
				revision = setting.Value
			case "vcs.modified":
				modified = setting.Value
			}
		}
		if revision != "" {
			if modified == "true" {
				return revision + "-dirty"
			}
			return revision
		}
	}

	exe, err := os.Executable()
	if err == nil {
		file, err := os.Open(exe)
		if err == nil {
			defer file.Close()
			hasher := sha256.New()
			if _, err := io.Copy(hasher, file); err == nil {
				sum := hasher.Sum(nil)
				return fmt.Sprintf("bin-%x", sum[:6])
			}
		}
	}

	return version
}
