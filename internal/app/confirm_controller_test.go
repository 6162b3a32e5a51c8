package app

import (
	"fmt"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	xansi "github.com/charmbracelet/x/ansi"
)

func TestConfirmDialogWidthCappedByMaxWidth(t *testing.T) {
	c := NewConfirmController()
	longTitle := strings.Repeat("a very long note title ", 6)
	c.Open("Delete note", fmt.Sprintf("Delete %q?", longTitle), "Delete", "Cancel")

	_, _, width, _ := c.layout(200, 40)
	if width != confirmMaxWidth {
		t.Fatalf("expected width %d, got %d", confirmMaxWidth, width)
	}
}

func TestConfirmDialogWidthHasFloor(t *testing.T) {
	c := NewConfirmController()
	c.Open("", "ok?", "Y", "N")

	_, _, width, _ := c.layout(200, 40)
	if width != confirmMinWidth {
		t.Fatalf("expected width %d, got %d", confirmMinWidth, width)
	}
}

func TestConfirmDialogViewWrapsLongMessageWithinMaxWidth(t *testing.T) {
	c := NewConfirmController()
	longTitle := strings.Repeat("a very long note title ", 6)
	c.Open("Delete note", fmt.Sprintf("Delete %q?", longTitle), "Delete", "Cancel")

	view, _ := c.View(confirmMaxWidth, 40)
	plain := xansi.Strip(view)
	lines := strings.Split(plain, "\n")
	if len(lines) <= 5 {
		t.Fatalf("expected wrapped dialog lines, got %d lines: %q", len(lines), plain)
	}
	for _, line := range lines {
		if w := xansi.StringWidth(line); w > confirmMaxWidth {
			t.Fatalf("expected lines to fit %d cells, got %d: %q", confirmMaxWidth, w, line)
		}
	}
}

func TestConfirmDialogMouseButtonsRespectBorderedLayout(t *testing.T) {
	c := NewConfirmController()
	c.Open("Delete note", "Delete \"hello\"?", "Delete", "Cancel")

	x, y, width, height := c.layout(120, 40)
	buttonRow := y + height - 2
	borderRow := y + height - 1

	handled, choice := c.HandleMouse(tea.MouseClickMsg{Button: tea.MouseLeft, X: x + 2, Y: buttonRow}, 120, 40)
	if !handled || choice != confirmChoiceConfirm {
		t.Fatalf("expected confirm click on button row, handled=%v choice=%v", handled, choice)
	}

	handled, choice = c.HandleMouse(tea.MouseClickMsg{Button: tea.MouseLeft, X: x + width - 3, Y: buttonRow}, 120, 40)
	if !handled || choice != confirmChoiceCancel {
		t.Fatalf("expected cancel click on button row, handled=%v choice=%v", handled, choice)
	}

	handled, choice = c.HandleMouse(tea.MouseClickMsg{Button: tea.MouseLeft, X: x + 2, Y: borderRow}, 120, 40)
	if !handled || choice != confirmChoiceNone {
		t.Fatalf("expected border click to be swallowed, handled=%v choice=%v", handled, choice)
	}

	handled, _ = c.HandleMouse(tea.MouseClickMsg{Button: tea.MouseLeft, X: 0, Y: 0}, 120, 40)
	if handled {
		t.Fatalf("expected click outside the dialog to pass through")
	}
}

func TestConfirmDialogKeys(t *testing.T) {
	c := NewConfirmController()
	if handled, _ := c.HandleKey(tea.KeyPressMsg{Code: 'y', Text: "y"}); handled {
		t.Fatalf("expected closed dialog to ignore keys")
	}

	c.Open("Delete note", "Delete?", "Delete", "Cancel")
	if _, choice := c.HandleKey(tea.KeyPressMsg{Code: tea.KeyEnter}); choice != confirmChoiceConfirm {
		t.Fatalf("expected enter to confirm by default, got %v", choice)
	}
	if handled, choice := c.HandleKey(tea.KeyPressMsg{Code: tea.KeyTab}); !handled || choice != confirmChoiceNone {
		t.Fatalf("expected tab to move focus only")
	}
	if _, choice := c.HandleKey(tea.KeyPressMsg{Code: tea.KeyEnter}); choice != confirmChoiceCancel {
		t.Fatalf("expected enter on cancel focus to cancel, got %v", choice)
	}
	if _, choice := c.HandleKey(tea.KeyPressMsg{Code: tea.KeyEsc}); choice != confirmChoiceCancel {
		t.Fatalf("expected esc to cancel, got %v", choice)
	}
	if handled, _ := c.HandleKey(tea.KeyPressMsg{Code: 'x', Text: "x"}); handled {
		t.Fatalf("expected unrelated key to pass through")
	}

	c.Close()
	if c.IsOpen() {
		t.Fatalf("expected dialog closed")
	}
}
