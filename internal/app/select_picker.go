package app

import (
	"strings"

	xansi "github.com/charmbracelet/x/ansi"

	"daywise/internal/types"
)

// SelectPicker is a single-choice list rendered as a bordered dialog.
type SelectPicker struct {
	title   string
	cursor  int
	options []selectOption
}

type selectOption struct {
	id    string
	label string
}

func NewSelectPicker(title string) *SelectPicker {
	return &SelectPicker{title: title}
}

func newSortPicker() *SelectPicker {
	picker := NewSelectPicker("Sort notes by")
	options := make([]selectOption, 0, len(types.SortOptions()))
	for _, option := range types.SortOptions() {
		options = append(options, selectOption{id: option.String(), label: option.Label()})
	}
	picker.SetOptions(options)
	return picker
}

func (p *SelectPicker) SetOptions(options []selectOption) {
	p.options = append(p.options[:0], options...)
	p.cursor = clamp(p.cursor, 0, max(0, len(p.options)-1))
}

func (p *SelectPicker) Move(delta int) bool {
	if len(p.options) == 0 || delta == 0 {
		return false
	}
	next := clamp(p.cursor+delta, 0, len(p.options)-1)
	if next == p.cursor {
		return false
	}
	p.cursor = next
	return true
}

func (p *SelectPicker) Index() int {
	return p.cursor
}

func (p *SelectPicker) SetIndex(index int) bool {
	if index < 0 || index >= len(p.options) {
		return false
	}
	p.cursor = index
	return true
}

func (p *SelectPicker) SelectedID() string {
	if p.cursor < 0 || p.cursor >= len(p.options) {
		return ""
	}
	return p.options[p.cursor].id
}

func (p *SelectPicker) SelectID(id string) bool {
	id = strings.TrimSpace(id)
	for i, option := range p.options {
		if strings.EqualFold(option.id, id) {
			p.cursor = i
			return true
		}
	}
	return false
}

// View renders the dialog centred in maxWidth x maxHeight and returns the row
// it starts on.
func (p *SelectPicker) View(maxWidth, maxHeight int) (string, int) {
	width := xansi.StringWidth(p.title)
	for _, option := range p.options {
		width = max(width, xansi.StringWidth(option.label)+2)
	}
	width = clamp(width+2, confirmMinWidth-4, confirmMaxWidth-4)
	if maxWidth > 4 && width > maxWidth-4 {
		width = maxWidth - 4
	}

	lines := []string{dialogHeaderStyle.Render(" " + padToWidth(truncateToWidth(p.title, width-2), width-2) + " ")}
	if len(p.options) == 0 {
		lines = append(lines, menuDropStyle.Render(padToWidth(" (none)", width)))
	}
	for i, option := range p.options {
		marker := "  "
		if i == p.cursor {
			marker = "› "
		}
		line := padToWidth(truncateToWidth(marker+option.label, width), width)
		if i == p.cursor {
			line = selectedStyle.Render(line)
		} else {
			line = menuDropStyle.Render(line)
		}
		lines = append(lines, line)
	}

	block := sortDialogBorderStyle.Render(strings.Join(lines, "\n"))
	x := 0
	if maxWidth > 0 {
		x = max(0, (maxWidth-width-2)/2)
	}
	y := 0
	if maxHeight > 0 {
		y = max(0, (maxHeight-len(lines)-2)/2)
	}
	return indentBlock(block, x), y
}
