package app

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"daywise/internal/notes"
	"daywise/internal/types"
)

type homeOp string

const (
	homeOpLoad    homeOp = "load"
	homeOpRefresh homeOp = "refresh"
	homeOpSort    homeOp = "sort"
	homeOpDelete  homeOp = "delete"
)

type noteOp string

const (
	noteOpLoad   noteOp = "load"
	noteOpEdit   noteOp = "edit"
	noteOpSave   noteOp = "save"
	noteOpUpdate noteOp = "update"
	noteOpDelete noteOp = "delete"
)

type homeOpMsg struct {
	op  homeOp
	err error
}

// gen identifies the note screen a message belongs to; messages from a
// screen that has since been closed are dropped.
type noteOpMsg struct {
	gen  int
	op   noteOp
	note types.Note
	err  error
}

type homeStateMsg struct {
	state notes.HomeState
	ok    bool
}

type editorStateMsg struct {
	gen   int
	state notes.EditorState
	ok    bool
}

func homeOpCmd(ctx context.Context, op homeOp, fn func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		return homeOpMsg{op: op, err: fn(ctx)}
	}
}

func noteOpCmd(ctx context.Context, gen int, op noteOp, fn func(context.Context) (types.Note, error)) tea.Cmd {
	return func() tea.Msg {
		note, err := fn(ctx)
		return noteOpMsg{gen: gen, op: op, note: note, err: err}
	}
}

func waitForHomeState(ch <-chan notes.HomeState) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		state, ok := <-ch
		return homeStateMsg{state: state, ok: ok}
	}
}

func waitForEditorState(gen int, ch <-chan notes.EditorState) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		state, ok := <-ch
		return editorStateMsg{gen: gen, state: state, ok: ok}
	}
}
