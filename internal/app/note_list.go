package app

import (
	"fmt"
	"io"

	"charm.land/bubbles/v2/list"
	tea "charm.land/bubbletea/v2"

	"daywise/internal/types"
)

type noteItem struct {
	note types.Note
}

func (i noteItem) FilterValue() string {
	return i.note.Title
}

// noteDelegate draws each note as a two-line card: title with priority
// marker, then date and the first line of content.
type noteDelegate struct{}

func (noteDelegate) Height() int {
	return 2
}

func (noteDelegate) Spacing() int {
	return 1
}

func (noteDelegate) Update(tea.Msg, *list.Model) tea.Cmd {
	return nil
}

func (noteDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	entry, ok := item.(noteItem)
	if !ok {
		return
	}
	width := m.Width()
	note := entry.note
	marker := priorityStyle(note.Priority).Render("●")
	title := truncateToWidth(note.Title, max(1, width-2))
	meta := types.FormatDate(note.UpdatedOn)
	if preview := firstLine(note.Content, max(1, width-len(meta)-5)); preview != "" {
		meta += " · " + preview
	}
	meta = truncateToWidth(meta, max(1, width-2))

	if index == m.Index() {
		fmt.Fprintf(w, "%s %s\n  %s", marker, selectedStyle.Render(padToWidth(title, width-2)), noteMetaStyle.Render(meta))
		return
	}
	fmt.Fprintf(w, "%s %s\n  %s", marker, noteTitleStyle.Render(title), noteMetaStyle.Render(meta))
}

func newNoteList(width, height int) list.Model {
	l := list.New([]list.Item{}, noteDelegate{}, width, height)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.SetShowPagination(false)
	l.SetShowStatusBar(false)
	return l
}

func noteListItems(notes []types.Note) []list.Item {
	items := make([]list.Item, 0, len(notes))
	for _, note := range notes {
		items = append(items, noteItem{note: note})
	}
	return items
}

func selectedNote(l list.Model) (types.Note, bool) {
	entry, ok := l.SelectedItem().(noteItem)
	if !ok {
		return types.Note{}, false
	}
	return entry.note, true
}
