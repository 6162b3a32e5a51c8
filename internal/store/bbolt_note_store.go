package store

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"

	"daywise/internal/types"
)

var bucketNotes = []byte("notes")

type BboltNoteStore struct {
	db *bolt.DB
	mu sync.Mutex
}

func OpenBboltNoteStore(path string) (*BboltNoteStore, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("bbolt db path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, err
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketNotes)
		return err
	}); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &BboltNoteStore{db: db}, nil
}

func (s *BboltNoteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *BboltNoteStore) Create(ctx context.Context, note types.Note) error {
	if err := validateNote(note); err != nil {
		return wrapError(RepositoryBackendBbolt, "create", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := json.Marshal(normalizeNote(note))
	if err != nil {
		return wrapError(RepositoryBackendBbolt, "create", err)
	}
	err = s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketNotes)
		if b == nil {
			return errors.New("notes bucket missing")
		}
		key := []byte(note.ID)
		if b.Get(key) != nil {
			return ErrNoteExists
		}
		return b.Put(key, raw)
	})
	return wrapError(RepositoryBackendBbolt, "create", err)
}

func (s *BboltNoteStore) GetByID(ctx context.Context, id string) (types.Note, bool, error) {
	var (
		note types.Note
		ok   bool
	)
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketNotes)
		if b == nil {
			return nil
		}
		raw := b.Get([]byte(id))
		if len(raw) == 0 {
			return nil
		}
		if err := json.Unmarshal(raw, &note); err != nil {
			return err
		}
		ok = true
		return nil
	})
	if err != nil {
		return types.Note{}, false, wrapError(RepositoryBackendBbolt, "get", err)
	}
	return note, ok, nil
}

func (s *BboltNoteStore) Update(ctx context.Context, note types.Note) error {
	if err := validateNote(note); err != nil {
		return wrapError(RepositoryBackendBbolt, "update", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := json.Marshal(normalizeNote(note))
	if err != nil {
		return wrapError(RepositoryBackendBbolt, "update", err)
	}
	err = s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketNotes)
		if b == nil {
			return errors.New("notes bucket missing")
		}
		key := []byte(note.ID)
		if b.Get(key) == nil {
			return ErrNoteNotFound
		}
		return b.Put(key, raw)
	})
	return wrapError(RepositoryBackendBbolt, "update", err)
}

func (s *BboltNoteStore) Delete(ctx context.Context, note types.Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketNotes)
		if b == nil {
			return errors.New("notes bucket missing")
		}
		key := []byte(note.ID)
		if b.Get(key) == nil {
			return ErrNoteNotFound
		}
		return b.Delete(key)
	})
	return wrapError(RepositoryBackendBbolt, "delete", err)
}

func (s *BboltNoteStore) ListAllByRecency(ctx context.Context) ([]types.Note, error) {
	return s.list(types.SortByRecency)
}

func (s *BboltNoteStore) ListAllByPriority(ctx context.Context) ([]types.Note, error) {
	return s.list(types.SortByPriority)
}

func (s *BboltNoteStore) list(option types.SortOption) ([]types.Note, error) {
	out := make([]types.Note, 0)
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketNotes)
		if b == nil {
			return nil
		}
		return b.ForEach(func(_, v []byte) error {
			var note types.Note
			if err := json.Unmarshal(v, &note); err != nil {
				return err
			}
			out = append(out, note)
			return nil
		})
	})
	if err != nil {
		return nil, wrapError(RepositoryBackendBbolt, "list", err)
	}
	sortNotes(out, option)
	return out, nil
}
