package app

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	xansi "github.com/charmbracelet/x/ansi"
)

type confirmChoice int

const (
	confirmChoiceNone confirmChoice = iota
	confirmChoiceConfirm
	confirmChoiceCancel
)

const (
	confirmMinWidth = 24
	confirmMaxWidth = 60
)

// ConfirmController is the yes/no dialog used before deleting a note.
type ConfirmController struct {
	active       bool
	title        string
	message      string
	confirmLabel string
	cancelLabel  string
	cancelFocus  bool
}

func NewConfirmController() *ConfirmController {
	return &ConfirmController{}
}

func (c *ConfirmController) IsOpen() bool {
	return c != nil && c.active
}

func (c *ConfirmController) Open(title, message, confirmLabel, cancelLabel string) {
	if c == nil {
		return
	}
	if confirmLabel == "" {
		confirmLabel = "Confirm"
	}
	if cancelLabel == "" {
		cancelLabel = "Cancel"
	}
	*c = ConfirmController{
		active:       true,
		title:        strings.TrimSpace(title),
		message:      strings.TrimSpace(message),
		confirmLabel: confirmLabel,
		cancelLabel:  cancelLabel,
	}
}

func (c *ConfirmController) Close() {
	if c == nil {
		return
	}
	*c = ConfirmController{}
}

func (c *ConfirmController) HandleKey(msg tea.KeyMsg) (bool, confirmChoice) {
	if !c.IsOpen() {
		return false, confirmChoiceNone
	}
	switch msg.String() {
	case "esc", "q", "n":
		return true, confirmChoiceCancel
	case "y":
		return true, confirmChoiceConfirm
	case "left", "h":
		c.cancelFocus = false
	case "right", "l":
		c.cancelFocus = true
	case "tab":
		c.cancelFocus = !c.cancelFocus
	case "enter":
		if c.cancelFocus {
			return true, confirmChoiceCancel
		}
		return true, confirmChoiceConfirm
	default:
		return false, confirmChoiceNone
	}
	return true, confirmChoiceNone
}

// HandleMouse resolves a click on the button row: the left half confirms,
// the right half cancels. Other clicks inside the dialog are swallowed.
func (c *ConfirmController) HandleMouse(msg tea.MouseMsg, maxWidth, maxHeight int) (bool, confirmChoice) {
	if !c.IsOpen() {
		return false, confirmChoiceNone
	}
	if _, ok := msg.(tea.MouseClickMsg); !ok {
		return false, confirmChoiceNone
	}
	mouse := msg.Mouse()
	if mouse.Button != tea.MouseLeft {
		return false, confirmChoiceNone
	}
	x, y, width, height := c.layout(maxWidth, maxHeight)
	if mouse.X < x || mouse.X >= x+width || mouse.Y < y || mouse.Y >= y+height {
		return false, confirmChoiceNone
	}
	if mouse.Y != y+height-2 {
		return true, confirmChoiceNone
	}
	innerX := x + 1
	innerWidth := max(1, width-2)
	if mouse.X < innerX || mouse.X >= innerX+innerWidth {
		return true, confirmChoiceNone
	}
	if mouse.X < innerX+innerWidth/2 {
		c.cancelFocus = false
		return true, confirmChoiceConfirm
	}
	c.cancelFocus = true
	return true, confirmChoiceCancel
}

// View renders the dialog centred in maxWidth x maxHeight and returns the row
// it starts on.
func (c *ConfirmController) View(maxWidth, maxHeight int) (string, int) {
	if !c.IsOpen() {
		return "", 0
	}
	x, y, width, _ := c.layout(maxWidth, maxHeight)
	contentWidth := max(1, width-4)

	title := c.title
	if title == "" {
		title = "Confirm"
	}
	lines := []string{dialogHeaderStyle.Render(" " + padToWidth(truncateToWidth(title, contentWidth), contentWidth) + " ")}
	for _, line := range c.messageLines(contentWidth) {
		lines = append(lines, menuDropStyle.Render(" "+padToWidth(truncateToWidth(line, contentWidth), contentWidth)+" "))
	}

	leftWidth := contentWidth / 2
	rightWidth := contentWidth - leftWidth
	confirm := padToWidth(truncateToWidth("["+c.confirmLabel+"]", leftWidth), leftWidth)
	cancel := padToWidth(truncateToWidth("["+c.cancelLabel+"]", rightWidth), rightWidth)
	if c.cancelFocus {
		confirm, cancel = menuDropStyle.Render(confirm), selectedStyle.Render(cancel)
	} else {
		confirm, cancel = selectedStyle.Render(confirm), menuDropStyle.Render(cancel)
	}
	lines = append(lines, " "+confirm+cancel+" ")

	block := confirmDialogBorderStyle.Render(strings.Join(lines, "\n"))
	return indentBlock(block, x), y
}

func (c *ConfirmController) messageLines(width int) []string {
	if c.message == "" {
		return nil
	}
	return strings.Split(xansi.Hardwrap(c.message, width, true), "\n")
}

func (c *ConfirmController) layout(maxWidth, maxHeight int) (x, y, width, height int) {
	width = c.width()
	if maxWidth > 0 && width > maxWidth {
		width = maxWidth
	}
	// border + title + message + buttons
	height = 2 + 1 + len(c.messageLines(max(1, width-4))) + 1
	if maxWidth > 0 {
		x = max(0, (maxWidth-width)/2)
	}
	if maxHeight > 0 {
		y = max(0, (maxHeight-height)/2)
	}
	return x, y, width, height
}

func (c *ConfirmController) width() int {
	content := max(xansi.StringWidth(c.title), xansi.StringWidth(c.message))
	content = max(content, xansi.StringWidth(c.confirmLabel)+xansi.StringWidth(c.cancelLabel)+6)
	return clamp(content+4, confirmMinWidth, confirmMaxWidth)
}
