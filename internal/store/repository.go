package store

import (
	"errors"
	"fmt"
	"strings"
)

const (
	RepositoryBackendSQLite = "sqlite"
	RepositoryBackendBbolt  = "bbolt"
	RepositoryBackendFile   = "file"
)

var ErrUnknownBackend = errors.New("unknown repository backend")

type Repository interface {
	Notes() NoteStore
	Backend() string
	Close() error
}

type RepositoryOptions struct {
	Backend string
	Path    string
}

// Open builds the repository for the configured backend. An empty backend
// selects SQLite.
func Open(opts RepositoryOptions) (Repository, error) {
	backend := strings.ToLower(strings.TrimSpace(opts.Backend))
	if backend == "" {
		backend = RepositoryBackendSQLite
	}
	switch backend {
	case RepositoryBackendSQLite:
		notes, err := OpenSQLiteNoteStore(opts.Path)
		if err != nil {
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		return &repository{backend: backend, notes: notes, closer: notes.Close}, nil
	case RepositoryBackendBbolt:
		notes, err := OpenBboltNoteStore(opts.Path)
		if err != nil {
			return nil, fmt.Errorf("open bbolt store: %w", err)
		}
		return &repository{backend: backend, notes: notes, closer: notes.Close}, nil
	case RepositoryBackendFile:
		if strings.TrimSpace(opts.Path) == "" {
			return nil, errors.New("notes file path is required")
		}
		return &repository{backend: backend, notes: NewFileNoteStore(opts.Path)}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, opts.Backend)
	}
}

type repository struct {
	backend string
	notes   NoteStore
	closer  func() error
}

func (r *repository) Notes() NoteStore {
	return r.notes
}

func (r *repository) Backend() string {
	return r.backend
}

func (r *repository) Close() error {
	if r == nil || r.closer == nil {
		return nil
	}
	return r.closer()
}
