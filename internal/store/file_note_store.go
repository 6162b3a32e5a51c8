package store

import (
	"context"
	"errors"
	"os"
	"sync"

	"daywise/internal/types"
)

const noteSchemaVersion = 1

type FileNoteStore struct {
	path string
	mu   sync.Mutex
}

type noteFile struct {
	Version int          `json:"version"`
	Notes   []types.Note `json:"notes"`
}

func NewFileNoteStore(path string) *FileNoteStore {
	return &FileNoteStore{path: path}
}

func (s *FileNoteStore) Create(ctx context.Context, note types.Note) error {
	if err := validateNote(note); err != nil {
		return wrapError(RepositoryBackendFile, "create", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.load()
	if err != nil {
		return wrapError(RepositoryBackendFile, "create", err)
	}
	for _, existing := range file.Notes {
		if existing.ID == note.ID {
			return wrapError(RepositoryBackendFile, "create", ErrNoteExists)
		}
	}
	file.Notes = append(file.Notes, normalizeNote(note))
	return wrapError(RepositoryBackendFile, "create", s.save(file))
}

func (s *FileNoteStore) GetByID(ctx context.Context, id string) (types.Note, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.load()
	if err != nil {
		return types.Note{}, false, wrapError(RepositoryBackendFile, "get", err)
	}
	for _, note := range file.Notes {
		if note.ID == id {
			return note, true, nil
		}
	}
	return types.Note{}, false, nil
}

func (s *FileNoteStore) Update(ctx context.Context, note types.Note) error {
	if err := validateNote(note); err != nil {
		return wrapError(RepositoryBackendFile, "update", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.load()
	if err != nil {
		return wrapError(RepositoryBackendFile, "update", err)
	}
	for i, existing := range file.Notes {
		if existing.ID != note.ID {
			continue
		}
		file.Notes[i] = normalizeNote(note)
		return wrapError(RepositoryBackendFile, "update", s.save(file))
	}
	return ErrNoteNotFound
}

func (s *FileNoteStore) Delete(ctx context.Context, note types.Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.load()
	if err != nil {
		return wrapError(RepositoryBackendFile, "delete", err)
	}
	filtered := file.Notes[:0]
	found := false
	for _, existing := range file.Notes {
		if existing.ID == note.ID {
			found = true
			continue
		}
		filtered = append(filtered, existing)
	}
	if !found {
		return ErrNoteNotFound
	}
	file.Notes = filtered
	return wrapError(RepositoryBackendFile, "delete", s.save(file))
}

func (s *FileNoteStore) ListAllByRecency(ctx context.Context) ([]types.Note, error) {
	return s.list(types.SortByRecency)
}

func (s *FileNoteStore) ListAllByPriority(ctx context.Context) ([]types.Note, error) {
	return s.list(types.SortByPriority)
}

func (s *FileNoteStore) list(option types.SortOption) ([]types.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.load()
	if err != nil {
		return nil, wrapError(RepositoryBackendFile, "list", err)
	}
	out := append([]types.Note(nil), file.Notes...)
	if out == nil {
		out = []types.Note{}
	}
	sortNotes(out, option)
	return out, nil
}

// load treats a missing or empty file as an empty store.
func (s *FileNoteStore) load() (*noteFile, error) {
	file := newNoteFile()
	if err := readJSON(s.path, file); err != nil {
		if errors.Is(err, os.ErrNotExist) || errors.Is(err, errEmptyFile) {
			return newNoteFile(), nil
		}
		return nil, err
	}
	if file.Version == 0 {
		file.Version = noteSchemaVersion
	}
	if file.Notes == nil {
		file.Notes = []types.Note{}
	}
	return file, nil
}

func (s *FileNoteStore) save(file *noteFile) error {
	file.Version = noteSchemaVersion
	return writeJSONAtomic(s.path, file)
}

func newNoteFile() *noteFile {
	return &noteFile{Version: noteSchemaVersion, Notes: []types.Note{}}
}
