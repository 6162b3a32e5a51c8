package app

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/list"
	tea "charm.land/bubbletea/v2"

	"daywise/internal/logging"
	"daywise/internal/notes"
)

// homeScreen renders the note list. All state comes from the manager; the
// list widget only tracks the cursor.
type homeScreen struct {
	manager *notes.HomeManager
	states  <-chan notes.HomeState
	cancel  func()
	state   notes.HomeState
	list    list.Model
	picker  *SelectPicker
	confirm *ConfirmController
	width   int
	height  int
}

func newHomeScreen(manager *notes.HomeManager) *homeScreen {
	h := &homeScreen{
		manager: manager,
		list:    newNoteList(minListWidth, minContentHeight),
		picker:  newSortPicker(),
		confirm: NewConfirmController(),
	}
	h.apply(manager.Snapshot())
	return h
}

func (h *homeScreen) subscribe() tea.Cmd {
	if h.cancel != nil {
		h.cancel()
	}
	h.states, h.cancel = h.manager.Subscribe()
	return waitForHomeState(h.states)
}

func (h *homeScreen) close() {
	if h.cancel != nil {
		h.cancel()
		h.cancel = nil
	}
	h.states = nil
	h.manager.Close()
}

func (h *homeScreen) sync() {
	h.apply(h.manager.Snapshot())
}

func (h *homeScreen) apply(state notes.HomeState) {
	selectedID := ""
	if note, ok := selectedNote(h.list); ok {
		selectedID = note.ID
	}
	h.state = state
	h.list.SetItems(noteListItems(state.Notes))
	index := 0
	for i, note := range state.Notes {
		if note.ID == selectedID {
			index = i
			break
		}
	}
	if len(state.Notes) > 0 {
		h.list.Select(index)
	}

	h.picker.SetIndex(state.SelectedSortIndex)
	switch {
	case state.ShowDeleteDialog && state.SelectedNote != nil && !h.confirm.IsOpen():
		h.confirm.Open("Delete note",
			fmt.Sprintf("Delete %q? This cannot be undone.", state.SelectedNote.Title),
			"Delete", "Cancel")
	case !state.ShowDeleteDialog && h.confirm.IsOpen():
		h.confirm.Close()
	}
}

func (h *homeScreen) resize(width, height int) {
	h.width = width
	h.height = height
	h.list.SetSize(max(minListWidth, width), max(minContentHeight, height))
}

func (h *homeScreen) view() string {
	var body string
	switch {
	case len(h.state.Notes) == 0 && h.state.IsLoading:
		body = activityStyle.Render("Loading notes…")
	case len(h.state.Notes) == 0:
		body = helpStyle.Render("No notes yet. Press n to write one.")
	default:
		body = h.list.View()
	}
	lines := strings.Split(body, "\n")
	for len(lines) < h.height {
		lines = append(lines, "")
	}
	body = padLines(lines, h.width)

	switch {
	case h.confirm.IsOpen():
		block, y := h.confirm.View(h.width, h.height)
		body = overlayBlock(body, block, y)
	case h.state.ShowSortDialog:
		block, y := h.picker.View(h.width, h.height)
		body = overlayBlock(body, block, y)
	}
	return body
}

func (h *homeScreen) header() string {
	line := headerStyle.Render("daywise") + "  " + statusStyle.Render(fmt.Sprintf("%d notes · sorted by %s", len(h.state.Notes), strings.ToLower(h.state.SelectedSort().Label())))
	switch {
	case h.state.IsRefreshing:
		line += "  " + activityStyle.Render("refreshing…")
	case h.state.IsLoading:
		line += "  " + activityStyle.Render("loading…")
	}
	return line
}

func (h *homeScreen) help() string {
	switch {
	case h.confirm.IsOpen():
		return "y/enter delete · n/esc cancel"
	case h.state.ShowSortDialog:
		return "↑/↓ choose · enter apply · esc close"
	default:
		return "↑/↓ move · enter open · n new · d delete · s sort · r refresh · y copy · q quit"
	}
}

// reduceHomeKey handles a key on the home screen. It reports whether the key
// was consumed.
func (m *Model) reduceHomeKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	h := m.home
	if h.confirm.IsOpen() {
		handled, choice := h.confirm.HandleKey(msg)
		return handled, m.resolveHomeDelete(choice)
	}
	if h.state.ShowSortDialog {
		return m.reduceSortDialogKey(msg)
	}

	switch msg.String() {
	case "up", "k":
		h.list.CursorUp()
	case "down", "j":
		h.list.CursorDown()
	case "enter":
		note, ok := selectedNote(h.list)
		if !ok {
			return true, nil
		}
		return true, m.openNote(note.ID)
	case "n":
		return true, m.openNote("")
	case "d", "delete":
		note, ok := selectedNote(h.list)
		if !ok {
			return true, nil
		}
		h.manager.RequestDelete(&note)
		h.sync()
	case "s":
		h.manager.ToggleSortDialog(true)
		h.sync()
	case "r":
		return true, homeOpCmd(m.ctx, homeOpRefresh, h.manager.RefreshNotes)
	case "y":
		note, ok := selectedNote(h.list)
		if !ok {
			return true, nil
		}
		m.copyNote(note.Content)
	default:
		return false, nil
	}
	return true, nil
}

func (m *Model) reduceSortDialogKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	h := m.home
	switch msg.String() {
	case "esc", "q", "s":
		h.manager.ToggleSortDialog(false)
	case "up", "k":
		if h.picker.Move(-1) {
			m.selectSort(h.picker.Index())
		}
	case "down", "j":
		if h.picker.Move(1) {
			m.selectSort(h.picker.Index())
		}
	case "enter":
		return true, homeOpCmd(m.ctx, homeOpSort, h.manager.ConfirmSort)
	default:
		return true, nil
	}
	h.sync()
	return true, nil
}

func (m *Model) selectSort(index int) {
	if err := m.home.manager.SelectSort(index); err != nil {
		m.setStatusError(err.Error())
	}
}

func (m *Model) resolveHomeDelete(choice confirmChoice) tea.Cmd {
	h := m.home
	switch choice {
	case confirmChoiceConfirm:
		return homeOpCmd(m.ctx, homeOpDelete, h.manager.ConfirmDelete)
	case confirmChoiceCancel:
		h.manager.RequestDelete(nil)
		h.sync()
	}
	return nil
}

func (m *Model) handleHomeOp(msg homeOpMsg) {
	m.home.sync()
	if msg.err != nil {
		m.logger.Warn("home operation failed", logging.F("op", msg.op), logging.F("err", msg.err))
		m.setStatusError(fmt.Sprintf("%s failed: %v", msg.op, msg.err))
		return
	}
	switch msg.op {
	case homeOpDelete:
		m.setStatusInfo("Note deleted")
	case homeOpSort:
		m.setStatusInfo("Sorted by " + strings.ToLower(m.home.state.SelectedSort().Label()))
	}
}
