package notes

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"daywise/internal/logging"
	"daywise/internal/store"
	"daywise/internal/types"
)

type Mode int

const (
	ModeViewing Mode = iota
	ModeEditing
)

func (m Mode) String() string {
	if m == ModeEditing {
		return "editing"
	}
	return "viewing"
}

// EditorState is the single-note screen snapshot. Title, Content and Priority
// form the draft.
type EditorState struct {
	Title            string
	Content          string
	Priority         types.Priority
	UpdatedOn        time.Time
	IsLoading        bool
	EditingEnabled   bool
	ShowDeleteDialog bool
}

func (s EditorState) Mode() Mode {
	if s.EditingEnabled {
		return ModeEditing
	}
	return ModeViewing
}

// CanSave reports whether the draft may be saved or updated.
func (s EditorState) CanSave() bool {
	return strings.TrimSpace(s.Title) != "" && strings.TrimSpace(s.Content) != ""
}

// EditorManager owns the state of one note screen. A new manager holds an
// empty draft in editing mode.
type EditorManager struct {
	store     store.NoteStore
	logger    logging.Logger
	now       func() time.Time
	newID     func() string
	loadDelay time.Duration

	ops    sync.Mutex
	mu     sync.Mutex
	state  EditorState
	closed bool
	subs   *hub[EditorState]
}

func NewEditorManager(notes store.NoteStore, opts ...Option) *EditorManager {
	o := buildOptions(opts)
	return &EditorManager{
		store:     notes,
		logger:    o.logger.With(logging.F("component", "editor")),
		now:       o.now,
		newID:     o.newID,
		loadDelay: o.loadDelay,
		state: EditorState{
			Priority:       types.DefaultPriority,
			EditingEnabled: true,
		},
		subs: newHub[EditorState](),
	}
}

func (m *EditorManager) Snapshot() EditorState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *EditorManager) Mode() Mode {
	return m.Snapshot().Mode()
}

func (m *EditorManager) CanSave() bool {
	return m.Snapshot().CanSave()
}

// Subscribe returns a channel that receives the current snapshot followed by
// every later one. The channel is closed by cancel or Close.
func (m *EditorManager) Subscribe() (<-chan EditorState, func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.subs.add(m.state)
}

func (m *EditorManager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	m.closed = true
	m.subs.close()
	m.logger.Debug("editor manager closed")
}

// LoadNote fills the draft from the stored note and switches to viewing. A
// missing note fails with store.ErrNoteNotFound and leaves the draft as is.
func (m *EditorManager) LoadNote(ctx context.Context, id string) error {
	m.ops.Lock()
	defer m.ops.Unlock()

	if !m.update(func(s *EditorState) { s.IsLoading = true }) {
		return nil
	}
	var note types.Note
	err := sleepContext(ctx, m.loadDelay)
	if err == nil {
		note, err = m.fetch(ctx, id)
	}
	applied := m.update(func(s *EditorState) {
		s.IsLoading = false
		if err != nil {
			return
		}
		s.Title = note.Title
		s.Content = note.Content
		s.Priority = note.Priority
		s.UpdatedOn = note.UpdatedOn
		s.EditingEnabled = false
	})
	if !applied {
		return nil
	}
	if err != nil {
		m.logger.Warn("load note failed", logging.F("note_id", id), logging.F("err", err))
		return fmt.Errorf("load note %s: %w", id, err)
	}
	return nil
}

// BeginEditing switches to editing after the loading delay.
func (m *EditorManager) BeginEditing(ctx context.Context) error {
	m.ops.Lock()
	defer m.ops.Unlock()

	if !m.update(func(s *EditorState) { s.IsLoading = true }) {
		return nil
	}
	err := sleepContext(ctx, m.loadDelay)
	m.update(func(s *EditorState) {
		s.IsLoading = false
		if err == nil {
			s.EditingEnabled = true
		}
	})
	return err
}

func (m *EditorManager) SetEditing(enabled bool) {
	m.update(func(s *EditorState) { s.EditingEnabled = enabled })
}

func (m *EditorManager) ChangeTitle(title string) {
	m.update(func(s *EditorState) { s.Title = title })
}

func (m *EditorManager) ChangeContent(content string) {
	m.update(func(s *EditorState) { s.Content = content })
}

func (m *EditorManager) SelectPriority(priority types.Priority) {
	m.update(func(s *EditorState) { s.Priority = priority })
}

func (m *EditorManager) RequestDelete(visible bool) {
	m.update(func(s *EditorState) { s.ShowDeleteDialog = visible })
}

// Save persists the draft as a new note. Callers gate on CanSave; the draft
// is not validated again here.
func (m *EditorManager) Save(ctx context.Context) (types.Note, error) {
	m.ops.Lock()
	defer m.ops.Unlock()

	if m.isClosed() {
		return types.Note{}, nil
	}
	draft := m.Snapshot()
	now := types.Timestamp(m.now())
	note := types.Note{
		ID:        m.newID(),
		Title:     strings.TrimSpace(draft.Title),
		Content:   strings.TrimSpace(draft.Content),
		Priority:  draft.Priority,
		CreatedOn: now,
		UpdatedOn: now,
	}
	if err := m.store.Create(ctx, note); err != nil {
		if m.isClosed() {
			return types.Note{}, nil
		}
		m.logger.Warn("save note failed", logging.F("err", err))
		return types.Note{}, fmt.Errorf("save note: %w", err)
	}
	m.logger.Debug("note saved", logging.F("note_id", note.ID))
	return note, nil
}

// Update replaces the stored note with the draft, keeping its id and creation
// time.
func (m *EditorManager) Update(ctx context.Context, id string) (types.Note, error) {
	m.ops.Lock()
	defer m.ops.Unlock()

	if m.isClosed() {
		return types.Note{}, nil
	}
	existing, err := m.fetch(ctx, id)
	if err != nil {
		if m.isClosed() {
			return types.Note{}, nil
		}
		m.logger.Warn("update note failed", logging.F("note_id", id), logging.F("err", err))
		return types.Note{}, fmt.Errorf("update note %s: %w", id, err)
	}
	draft := m.Snapshot()
	now := types.Timestamp(m.now())
	if now.Before(existing.UpdatedOn) {
		now = existing.UpdatedOn
	}
	note := existing
	note.Title = strings.TrimSpace(draft.Title)
	note.Content = strings.TrimSpace(draft.Content)
	note.Priority = draft.Priority
	note.UpdatedOn = now
	if err := m.store.Update(ctx, note); err != nil {
		if m.isClosed() {
			return types.Note{}, nil
		}
		m.logger.Warn("update note failed", logging.F("note_id", id), logging.F("err", err))
		return types.Note{}, fmt.Errorf("update note %s: %w", id, err)
	}
	m.update(func(s *EditorState) { s.UpdatedOn = note.UpdatedOn })
	m.logger.Debug("note updated", logging.F("note_id", id))
	return note, nil
}

// Delete removes the note from the store. The draft is left alone; callers
// navigate away afterwards.
func (m *EditorManager) Delete(ctx context.Context, id string) error {
	m.ops.Lock()
	defer m.ops.Unlock()

	if m.isClosed() {
		return nil
	}
	if err := m.store.Delete(ctx, types.Note{ID: id}); err != nil {
		if m.isClosed() {
			return nil
		}
		m.logger.Warn("delete note failed", logging.F("note_id", id), logging.F("err", err))
		return fmt.Errorf("delete note %s: %w", id, err)
	}
	m.logger.Debug("note deleted", logging.F("note_id", id))
	return nil
}

func (m *EditorManager) fetch(ctx context.Context, id string) (types.Note, error) {
	note, ok, err := m.store.GetByID(ctx, id)
	if err != nil {
		return types.Note{}, err
	}
	if !ok {
		return types.Note{}, store.ErrNoteNotFound
	}
	return note, nil
}

func (m *EditorManager) update(fn func(*EditorState)) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return false
	}
	next := m.state
	fn(&next)
	m.state = next
	m.subs.broadcast(next)
	return true
}

func (m *EditorManager) isClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}
