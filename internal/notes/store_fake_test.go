package notes

import (
	"context"
	"errors"
	"sync"
	"time"

	"daywise/internal/store"
	"daywise/internal/types"
)

var errDiskFull = errors.New("disk full")

type fakeNoteStore struct {
	mu      sync.Mutex
	notes   map[string]types.Note
	listErr error
	getErr  error
	delErr  error
	saveErr error
	deleted []string

	// gate, when set, blocks reads until it is closed.
	gate chan struct{}
}

func newFakeNoteStore(notes ...types.Note) *fakeNoteStore {
	s := &fakeNoteStore{notes: map[string]types.Note{}}
	for _, note := range notes {
		s.notes[note.ID] = note
	}
	return s
}

func (s *fakeNoteStore) wait(ctx context.Context) {
	s.mu.Lock()
	gate := s.gate
	s.mu.Unlock()
	if gate == nil {
		return
	}
	select {
	case <-gate:
	case <-ctx.Done():
	}
}

func (s *fakeNoteStore) Create(_ context.Context, note types.Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return &store.Error{Backend: "fake", Op: "create", Err: s.saveErr}
	}
	if _, ok := s.notes[note.ID]; ok {
		return store.ErrNoteExists
	}
	s.notes[note.ID] = note
	return nil
}

func (s *fakeNoteStore) GetByID(ctx context.Context, id string) (types.Note, bool, error) {
	s.wait(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getErr != nil {
		return types.Note{}, false, &store.Error{Backend: "fake", Op: "get", Err: s.getErr}
	}
	note, ok := s.notes[id]
	return note, ok, nil
}

func (s *fakeNoteStore) Update(_ context.Context, note types.Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return &store.Error{Backend: "fake", Op: "update", Err: s.saveErr}
	}
	if _, ok := s.notes[note.ID]; !ok {
		return store.ErrNoteNotFound
	}
	s.notes[note.ID] = note
	return nil
}

func (s *fakeNoteStore) Delete(_ context.Context, note types.Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.delErr != nil {
		return &store.Error{Backend: "fake", Op: "delete", Err: s.delErr}
	}
	if _, ok := s.notes[note.ID]; !ok {
		return store.ErrNoteNotFound
	}
	delete(s.notes, note.ID)
	s.deleted = append(s.deleted, note.ID)
	return nil
}

func (s *fakeNoteStore) ListAllByRecency(ctx context.Context) ([]types.Note, error) {
	notes, err := s.list(ctx)
	if err != nil {
		return nil, err
	}
	store.SortByRecency(notes)
	return notes, nil
}

func (s *fakeNoteStore) ListAllByPriority(ctx context.Context) ([]types.Note, error) {
	notes, err := s.list(ctx)
	if err != nil {
		return nil, err
	}
	store.SortByPriority(notes)
	return notes, nil
}

func (s *fakeNoteStore) list(ctx context.Context) ([]types.Note, error) {
	s.wait(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listErr != nil {
		return nil, &store.Error{Backend: "fake", Op: "list", Err: s.listErr}
	}
	notes := make([]types.Note, 0, len(s.notes))
	for _, note := range s.notes {
		notes = append(notes, note)
	}
	return notes, nil
}

func (s *fakeNoteStore) get(id string) (types.Note, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	note, ok := s.notes[id]
	return note, ok
}

func (s *fakeNoteStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.notes)
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock(start time.Time) *fakeClock {
	return &fakeClock{now: start}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

var baseTime = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func at(offset time.Duration) time.Time {
	return baseTime.Add(offset)
}

func testNote(id string, priority types.Priority, updated time.Time) types.Note {
	return types.Note{
		ID:        id,
		Title:     "title " + id,
		Content:   "content " + id,
		Priority:  priority,
		CreatedOn: updated,
		UpdatedOn: updated,
	}
}

func noteIDs(notes []types.Note) []string {
	ids := make([]string, 0, len(notes))
	for _, note := range notes {
		ids = append(ids, note.ID)
	}
	return ids
}
