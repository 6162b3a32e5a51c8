package store

import (
	"context"
	"errors"
	"sort"
	"strings"

	"daywise/internal/types"
)

var (
	ErrNoteNotFound = errors.New("note not found")
	ErrNoteExists   = errors.New("note already exists")
	ErrNoteIDEmpty  = errors.New("note id is required")
)

// NoteStore persists notes. Implementations serialize their own operations.
type NoteStore interface {
	Create(ctx context.Context, note types.Note) error
	// GetByID reports ok=false with a nil error when the id is absent.
	GetByID(ctx context.Context, id string) (types.Note, bool, error)
	Update(ctx context.Context, note types.Note) error
	Delete(ctx context.Context, note types.Note) error
	ListAllByRecency(ctx context.Context) ([]types.Note, error)
	ListAllByPriority(ctx context.Context) ([]types.Note, error)
}

// List dispatches to the sorted read matching option.
func List(ctx context.Context, s NoteStore, option types.SortOption) ([]types.Note, error) {
	switch option {
	case types.SortByPriority:
		return s.ListAllByPriority(ctx)
	default:
		return s.ListAllByRecency(ctx)
	}
}

// Error reports a failed backend call.
type Error struct {
	Backend string
	Op      string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	return "store " + e.Backend + " " + e.Op + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func wrapError(backend, op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNoteNotFound) {
		return err
	}
	var storeErr *Error
	if errors.As(err, &storeErr) {
		return err
	}
	return &Error{Backend: backend, Op: op, Err: err}
}

func validateNote(note types.Note) error {
	if strings.TrimSpace(note.ID) == "" {
		return ErrNoteIDEmpty
	}
	if !note.Priority.Valid() {
		return types.ErrInvalidPriority
	}
	return nil
}

// SortByRecency orders by UpdatedOn descending, ties by ID ascending.
func SortByRecency(notes []types.Note) {
	sort.SliceStable(notes, func(i, j int) bool {
		return recencyLess(notes[i], notes[j])
	})
}

// SortByPriority orders by priority ordinal ascending, ties by recency.
func SortByPriority(notes []types.Note) {
	sort.SliceStable(notes, func(i, j int) bool {
		if notes[i].Priority != notes[j].Priority {
			return notes[i].Priority.Ordinal() < notes[j].Priority.Ordinal()
		}
		return recencyLess(notes[i], notes[j])
	})
}

func recencyLess(a, b types.Note) bool {
	if !a.UpdatedOn.Equal(b.UpdatedOn) {
		return a.UpdatedOn.After(b.UpdatedOn)
	}
	return a.ID < b.ID
}

func sortNotes(notes []types.Note, option types.SortOption) {
	if option == types.SortByPriority {
		SortByPriority(notes)
		return
	}
	SortByRecency(notes)
}

func normalizeNote(note types.Note) types.Note {
	note.CreatedOn = types.Timestamp(note.CreatedOn)
	note.UpdatedOn = types.Timestamp(note.UpdatedOn)
	return note
}
