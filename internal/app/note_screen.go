package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/textarea"
	"charm.land/bubbles/v2/textinput"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"

	"daywise/internal/logging"
	"daywise/internal/notes"
	"daywise/internal/store"
	"daywise/internal/types"
)

type noteField int

const (
	noteFieldTitle noteField = iota
	noteFieldContent
)

// noteScreen shows one note, or a blank draft when noteID is empty.
type noteScreen struct {
	gen      int
	noteID   string
	manager  *notes.EditorManager
	states   <-chan notes.EditorState
	cancel   func()
	state    notes.EditorState
	title    textinput.Model
	content  textarea.Model
	focus    noteField
	viewport viewport.Model
	confirm  *ConfirmController
	markdown bool
	width    int
	height   int
}

func newNoteScreen(gen int, noteID string, manager *notes.EditorManager, markdown bool) *noteScreen {
	title := textinput.New()
	title.Placeholder = "Title"
	title.CharLimit = 200
	content := textarea.New()
	content.Placeholder = "Write something…"
	content.ShowLineNumbers = false

	s := &noteScreen{
		gen:      gen,
		noteID:   noteID,
		manager:  manager,
		title:    title,
		content:  content,
		viewport: viewport.New(viewport.WithWidth(minListWidth), viewport.WithHeight(minContentHeight)),
		confirm:  NewConfirmController(),
		markdown: markdown,
	}
	s.apply(manager.Snapshot())
	return s
}

func (s *noteScreen) isNew() bool {
	return s.noteID == ""
}

func (s *noteScreen) subscribe() tea.Cmd {
	s.states, s.cancel = s.manager.Subscribe()
	return waitForEditorState(s.gen, s.states)
}

func (s *noteScreen) close() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.states = nil
	s.manager.Close()
}

func (s *noteScreen) sync() {
	s.apply(s.manager.Snapshot())
}

func (s *noteScreen) apply(state notes.EditorState) {
	wasEditing := s.state.EditingEnabled
	s.state = state
	if s.title.Value() != state.Title {
		s.title.SetValue(state.Title)
	}
	if s.content.Value() != state.Content {
		s.content.SetValue(state.Content)
	}
	if state.EditingEnabled && (!wasEditing || !s.title.Focused() && !s.content.Focused()) {
		s.setFocus(s.focus)
	}
	if !state.EditingEnabled {
		s.title.Blur()
		s.content.Blur()
	}
	s.refreshViewport()

	switch {
	case state.ShowDeleteDialog && !s.confirm.IsOpen():
		s.confirm.Open("Delete note",
			fmt.Sprintf("Delete %q? This cannot be undone.", strings.TrimSpace(state.Title)),
			"Delete", "Cancel")
	case !state.ShowDeleteDialog && s.confirm.IsOpen():
		s.confirm.Close()
	}
}

func (s *noteScreen) setFocus(field noteField) {
	s.focus = field
	if field == noteFieldContent {
		s.title.Blur()
		s.content.Focus()
		return
	}
	s.content.Blur()
	s.title.Focus()
}

func (s *noteScreen) resize(width, height int) {
	s.width = width
	s.height = height
	s.title.SetWidth(max(1, width-2))
	s.content.SetWidth(max(1, width))
	s.content.SetHeight(max(3, height-6))
	s.viewport.SetWidth(max(1, width))
	s.viewport.SetHeight(max(1, height-2))
	s.refreshViewport()
}

func (s *noteScreen) refreshViewport() {
	width := max(1, s.width)
	if s.markdown {
		s.viewport.SetContent(renderMarkdown(s.state.Content, width))
		return
	}
	s.viewport.SetContent(renderPlain(s.state.Content, width))
}

func (s *noteScreen) header() string {
	label := "Note"
	if s.isNew() {
		label = "New note"
	}
	parts := []string{headerStyle.Render(label), statusStyle.Render(s.state.Mode().String()), priorityBadge(s.state.Priority)}
	if date := types.FormatDate(s.state.UpdatedOn); date != "" {
		parts = append(parts, noteMetaStyle.Render("updated "+date))
	}
	if s.state.IsLoading {
		parts = append(parts, activityStyle.Render("loading…"))
	}
	return strings.Join(parts, "  ")
}

func (s *noteScreen) help() string {
	switch {
	case s.confirm.IsOpen():
		return "y/enter delete · n/esc cancel"
	case s.state.EditingEnabled:
		return "tab switch field · ctrl+p priority · ctrl+s save · esc back"
	default:
		return "e edit · d delete · y copy · ↑/↓ scroll · esc back"
	}
}

func (s *noteScreen) view() string {
	var body string
	switch {
	case s.state.IsLoading && s.state.Title == "" && s.state.Content == "":
		body = activityStyle.Render("Loading note…")
	case s.state.EditingEnabled:
		body = strings.Join([]string{
			fieldLabelStyle.Render("Title"),
			s.title.View(),
			fieldLabelStyle.Render("Content"),
			s.content.View(),
			s.priorityRow(),
		}, "\n")
	default:
		title := noteTitleStyle.Render(truncateToWidth(s.state.Title, max(1, s.width)))
		body = title + "\n" + dividerStyle.Render(strings.Repeat("─", max(1, s.width))) + "\n" + s.viewport.View()
	}
	lines := strings.Split(body, "\n")
	for len(lines) < s.height {
		lines = append(lines, "")
	}
	body = padLines(lines, s.width)
	if s.confirm.IsOpen() {
		block, y := s.confirm.View(s.width, s.height)
		body = overlayBlock(body, block, y)
	}
	return body
}

func (s *noteScreen) priorityRow() string {
	parts := make([]string, 0, len(types.Priorities()))
	for _, p := range types.Priorities() {
		if p == s.state.Priority {
			parts = append(parts, priorityStyle(p).Reverse(true).Render(" "+p.Name()+" "))
			continue
		}
		parts = append(parts, priorityStyle(p).Faint(true).Render(" "+p.Name()+" "))
	}
	return fieldLabelStyle.Render("Priority") + " " + strings.Join(parts, " ")
}

func nextPriority(p types.Priority) types.Priority {
	all := types.Priorities()
	for i, candidate := range all {
		if candidate == p {
			return all[(i+1)%len(all)]
		}
	}
	return types.DefaultPriority
}

func (m *Model) reduceNoteKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	s := m.note
	if s.confirm.IsOpen() {
		handled, choice := s.confirm.HandleKey(msg)
		return handled, m.resolveNoteDelete(choice)
	}

	key := msg.String()
	if key == "esc" {
		return true, m.closeNote()
	}
	if s.state.IsLoading {
		return true, nil
	}
	if s.state.EditingEnabled {
		return m.reduceNoteEditingKey(msg)
	}

	switch key {
	case "e":
		return true, noteOpCmd(m.ctx, s.gen, noteOpEdit, func(ctx context.Context) (types.Note, error) {
			return types.Note{}, s.manager.BeginEditing(ctx)
		})
	case "d", "delete":
		if s.isNew() {
			return true, nil
		}
		s.manager.RequestDelete(true)
		s.sync()
	case "y":
		m.copyNote(s.state.Content)
	case "q":
		return true, m.closeNote()
	default:
		var cmd tea.Cmd
		s.viewport, cmd = s.viewport.Update(msg)
		return true, cmd
	}
	return true, nil
}

func (m *Model) resolveNoteDelete(choice confirmChoice) tea.Cmd {
	s := m.note
	switch choice {
	case confirmChoiceConfirm:
		s.confirm.Close()
		id := s.noteID
		return noteOpCmd(m.ctx, s.gen, noteOpDelete, func(ctx context.Context) (types.Note, error) {
			return types.Note{ID: id}, s.manager.Delete(ctx, id)
		})
	case confirmChoiceCancel:
		s.manager.RequestDelete(false)
		s.sync()
	}
	return nil
}

func (m *Model) reduceNoteEditingKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	s := m.note
	switch msg.String() {
	case "ctrl+s":
		return true, m.saveNote()
	case "ctrl+p":
		s.manager.SelectPriority(nextPriority(s.state.Priority))
		s.sync()
		return true, nil
	case "tab", "shift+tab":
		if s.focus == noteFieldTitle {
			s.setFocus(noteFieldContent)
		} else {
			s.setFocus(noteFieldTitle)
		}
		return true, nil
	}

	var cmd tea.Cmd
	if s.focus == noteFieldContent {
		s.content, cmd = s.content.Update(msg)
		s.manager.ChangeContent(s.content.Value())
	} else {
		s.title, cmd = s.title.Update(msg)
		s.manager.ChangeTitle(s.title.Value())
	}
	s.sync()
	return true, cmd
}

func (m *Model) saveNote() tea.Cmd {
	s := m.note
	if !s.manager.CanSave() {
		m.setStatusError("Title and content are required")
		return nil
	}
	if s.isNew() {
		return noteOpCmd(m.ctx, s.gen, noteOpSave, s.manager.Save)
	}
	id := s.noteID
	return noteOpCmd(m.ctx, s.gen, noteOpUpdate, func(ctx context.Context) (types.Note, error) {
		return s.manager.Update(ctx, id)
	})
}

func (m *Model) handleNoteOp(msg noteOpMsg) tea.Cmd {
	if m.note == nil || msg.gen != m.note.gen {
		return nil
	}
	m.note.sync()
	if msg.err != nil {
		m.logger.Warn("note operation failed", logging.F("op", msg.op), logging.F("note_id", m.note.noteID), logging.F("err", msg.err))
		if msg.op == noteOpLoad && errors.Is(msg.err, store.ErrNoteNotFound) {
			cmd := m.closeNote()
			m.setStatusError("Note not found")
			return cmd
		}
		m.setStatusError(fmt.Sprintf("%s failed: %v", msg.op, msg.err))
		return nil
	}
	switch msg.op {
	case noteOpSave:
		cmd := m.closeNote()
		m.setStatusInfo("Note saved")
		return cmd
	case noteOpUpdate:
		cmd := m.closeNote()
		m.setStatusInfo("Note updated")
		return cmd
	case noteOpDelete:
		cmd := m.closeNote()
		m.setStatusInfo("Note deleted")
		return cmd
	case noteOpEdit:
		m.note.setFocus(noteFieldTitle)
	}
	return nil
}
