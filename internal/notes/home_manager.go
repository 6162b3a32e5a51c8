package notes

import (
	"context"
	"fmt"
	"sync"
	"time"

	"daywise/internal/logging"
	"daywise/internal/store"
	"daywise/internal/types"
)

// HomeState is the list screen snapshot.
type HomeState struct {
	Notes             []types.Note
	IsLoading         bool
	IsRefreshing      bool
	ShowSortDialog    bool
	ShowDeleteDialog  bool
	SelectedNote      *types.Note
	SelectedSortIndex int
}

func (s HomeState) SelectedSort() types.SortOption {
	option, ok := types.SortOptionAt(s.SelectedSortIndex)
	if !ok {
		return types.SortByRecency
	}
	return option
}

func (s HomeState) clone() HomeState {
	out := s
	if s.Notes != nil {
		out.Notes = append([]types.Note(nil), s.Notes...)
	}
	if s.SelectedNote != nil {
		note := *s.SelectedNote
		out.SelectedNote = &note
	}
	return out
}

// HomeManager owns the list screen state. Blocking operations are serialized;
// pure transitions only take the state lock.
type HomeManager struct {
	store        store.NoteStore
	logger       logging.Logger
	refreshDelay time.Duration

	ops    sync.Mutex
	mu     sync.Mutex
	state  HomeState
	closed bool
	subs   *hub[HomeState]
}

func NewHomeManager(notes store.NoteStore, opts ...Option) *HomeManager {
	o := buildOptions(opts)
	return &HomeManager{
		store:        notes,
		logger:       o.logger.With(logging.F("component", "home")),
		refreshDelay: o.refreshDelay,
		state: HomeState{
			Notes:             []types.Note{},
			SelectedSortIndex: o.sort.Index(),
		},
		subs: newHub[HomeState](),
	}
}

func (m *HomeManager) Snapshot() HomeState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.clone()
}

// Subscribe returns a channel that receives the current snapshot followed by
// every later one. The channel is closed by cancel or Close.
func (m *HomeManager) Subscribe() (<-chan HomeState, func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.subs.add(m.state.clone())
}

// Close detaches the manager. Results of in-flight calls are dropped and
// later operations do nothing.
func (m *HomeManager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	m.closed = true
	m.subs.close()
	m.logger.Debug("home manager closed")
}

func (m *HomeManager) LoadNotes(ctx context.Context) error {
	m.ops.Lock()
	defer m.ops.Unlock()

	if !m.update(func(s *HomeState) { s.IsLoading = true }) {
		return nil
	}
	return m.reload(ctx, "load", func(s *HomeState) { s.IsLoading = false })
}

func (m *HomeManager) RefreshNotes(ctx context.Context) error {
	m.ops.Lock()
	defer m.ops.Unlock()

	if !m.update(func(s *HomeState) { s.IsRefreshing = true }) {
		return nil
	}
	if err := sleepContext(ctx, m.refreshDelay); err != nil {
		m.update(func(s *HomeState) { s.IsRefreshing = false })
		return err
	}
	return m.reload(ctx, "refresh", func(s *HomeState) { s.IsRefreshing = false })
}

func (m *HomeManager) SortBy(ctx context.Context, option types.SortOption) error {
	m.ops.Lock()
	defer m.ops.Unlock()
	return m.sortBy(ctx, option)
}

// ConfirmSort hides the sort dialog and applies the selected sort.
func (m *HomeManager) ConfirmSort(ctx context.Context) error {
	m.ops.Lock()
	defer m.ops.Unlock()

	var option types.SortOption
	if !m.update(func(s *HomeState) {
		s.ShowSortDialog = false
		option = s.SelectedSort()
	}) {
		return nil
	}
	return m.sortBy(ctx, option)
}

func (m *HomeManager) sortBy(ctx context.Context, option types.SortOption) error {
	index := option.Index()
	if index < 0 {
		return fmt.Errorf("%w: %d", types.ErrInvalidSortOption, option)
	}
	if !m.update(func(s *HomeState) {
		s.IsLoading = true
		s.SelectedSortIndex = index
	}) {
		return nil
	}
	return m.reload(ctx, "sort", func(s *HomeState) { s.IsLoading = false })
}

func (m *HomeManager) SelectSort(index int) error {
	if _, ok := types.SortOptionAt(index); !ok {
		return fmt.Errorf("%w: index %d", types.ErrInvalidSortOption, index)
	}
	m.update(func(s *HomeState) { s.SelectedSortIndex = index })
	return nil
}

func (m *HomeManager) ToggleSortDialog(visible bool) {
	m.update(func(s *HomeState) { s.ShowSortDialog = visible })
}

// RequestDelete opens the delete dialog for note, or closes it when note is nil.
func (m *HomeManager) RequestDelete(note *types.Note) {
	m.update(func(s *HomeState) {
		s.ShowDeleteDialog = note != nil
		s.SelectedNote = nil
		if note != nil {
			selected := *note
			s.SelectedNote = &selected
		}
	})
}

// ConfirmDelete deletes the selected note and reloads the list. The dialog
// and selection are cleared whatever the outcome.
func (m *HomeManager) ConfirmDelete(ctx context.Context) error {
	m.ops.Lock()
	defer m.ops.Unlock()

	var selected *types.Note
	if !m.update(func(s *HomeState) {
		selected = s.SelectedNote
		s.ShowDeleteDialog = false
		s.SelectedNote = nil
	}) {
		return nil
	}
	if selected == nil {
		return ErrNoNoteSelected
	}

	if err := m.store.Delete(ctx, *selected); err != nil {
		if m.isClosed() {
			return nil
		}
		m.logger.Warn("delete failed", logging.F("note_id", selected.ID), logging.F("err", err))
		return fmt.Errorf("delete note %s: %w", selected.ID, err)
	}
	m.logger.Debug("note deleted", logging.F("note_id", selected.ID))

	if !m.update(func(s *HomeState) { s.IsLoading = true }) {
		return nil
	}
	return m.reload(ctx, "reload", func(s *HomeState) { s.IsLoading = false })
}

// reload queries the store with the selected sort. finish runs in the same
// transition that applies the result, so flags never outlive the call.
func (m *HomeManager) reload(ctx context.Context, op string, finish func(*HomeState)) error {
	option := m.Snapshot().SelectedSort()
	notes, err := store.List(ctx, m.store, option)
	applied := m.update(func(s *HomeState) {
		finish(s)
		if err == nil {
			s.Notes = notes
		}
	})
	if !applied {
		return nil
	}
	if err != nil {
		m.logger.Warn(op+" notes failed", logging.F("sort", option), logging.F("err", err))
		return fmt.Errorf("%s notes: %w", op, err)
	}
	m.logger.Debug(op+" notes", logging.F("sort", option), logging.F("count", len(notes)))
	return nil
}

func (m *HomeManager) update(fn func(*HomeState)) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return false
	}
	next := m.state.clone()
	fn(&next)
	if next.Notes == nil {
		next.Notes = []types.Note{}
	}
	m.state = next
	m.subs.broadcast(next.clone())
	return true
}

func (m *HomeManager) isClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}
