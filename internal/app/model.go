package app

import (
	"context"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"daywise/internal/logging"
	"daywise/internal/notes"
	"daywise/internal/store"
	"daywise/internal/types"
)

const (
	minListWidth     = 24
	minContentHeight = 6
	// header, divider, status and help rows around the screen body.
	chromeRows = 4
)

type screen int

const (
	screenHome screen = iota
	screenNote
)

type Options struct {
	Store        store.NoteStore
	Logger       logging.Logger
	RefreshDelay time.Duration
	LoadDelay    time.Duration
	DefaultSort  types.SortOption
	Markdown     bool
}

type Model struct {
	ctx       context.Context
	store     store.NoteStore
	logger    logging.Logger
	noteOpts  []notes.Option
	markdown  bool
	screen    screen
	home      *homeScreen
	note      *noteScreen
	noteGen   int
	width     int
	height    int
	status    string
	statusErr bool
}

func NewModel(ctx context.Context, opts Options) *Model {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Nop()
	}
	noteOpts := []notes.Option{
		notes.WithLogger(logger),
		notes.WithRefreshDelay(opts.RefreshDelay),
		notes.WithLoadDelay(opts.LoadDelay),
	}
	home := notes.NewHomeManager(opts.Store, append(noteOpts, notes.WithSort(opts.DefaultSort))...)
	m := &Model{
		ctx:      ctx,
		store:    opts.Store,
		logger:   logger.With(logging.F("component", "tui")),
		noteOpts: noteOpts,
		markdown: opts.Markdown,
		home:     newHomeScreen(home),
	}
	m.resize(80, 24)
	return m
}

// Run starts the terminal UI and blocks until the user quits.
func Run(ctx context.Context, opts Options) error {
	model := NewModel(ctx, opts)
	defer model.shutdown()
	p := tea.NewProgram(model, tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.home.subscribe(),
		homeOpCmd(m.ctx, homeOpLoad, m.home.manager.LoadNotes),
	)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	case tea.KeyPressMsg:
		return m, m.reduceKey(msg)
	case tea.MouseMsg:
		return m, m.reduceMouse(msg)
	case homeStateMsg:
		if !msg.ok {
			return m, nil
		}
		m.home.apply(msg.state)
		return m, waitForHomeState(m.home.states)
	case editorStateMsg:
		if !msg.ok || m.note == nil || msg.gen != m.note.gen {
			return m, nil
		}
		m.note.apply(msg.state)
		return m, waitForEditorState(m.note.gen, m.note.states)
	case homeOpMsg:
		m.handleHomeOp(msg)
		return m, nil
	case noteOpMsg:
		return m, m.handleNoteOp(msg)
	}
	return m, nil
}

func (m *Model) reduceKey(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "ctrl+c" {
		return tea.Quit
	}
	if m.screen == screenNote && m.note != nil {
		_, cmd := m.reduceNoteKey(msg)
		return cmd
	}
	if handled, cmd := m.reduceHomeKey(msg); handled {
		return cmd
	}
	if msg.String() == "q" {
		return tea.Quit
	}
	return nil
}

func (m *Model) reduceMouse(msg tea.MouseMsg) tea.Cmd {
	// Dialogs are drawn inside the body, which starts below the header rows.
	if m.screen == screenNote && m.note != nil {
		handled, choice := m.note.confirm.HandleMouse(shiftMouse(msg, 2), m.note.width, m.note.height)
		if !handled {
			return nil
		}
		return m.resolveNoteDelete(choice)
	}
	handled, choice := m.home.confirm.HandleMouse(shiftMouse(msg, 2), m.home.width, m.home.height)
	if !handled {
		return nil
	}
	return m.resolveHomeDelete(choice)
}

func shiftMouse(msg tea.MouseMsg, rows int) tea.MouseMsg {
	click, ok := msg.(tea.MouseClickMsg)
	if !ok {
		return msg
	}
	click.Y -= rows
	return click
}

// openNote switches to the note screen. An empty id opens a blank draft.
func (m *Model) openNote(id string) tea.Cmd {
	if m.note != nil {
		m.note.close()
	}
	m.noteGen++
	manager := notes.NewEditorManager(m.store, m.noteOpts...)
	m.note = newNoteScreen(m.noteGen, id, manager, m.markdown)
	m.note.resize(m.width, m.bodyHeight())
	m.screen = screenNote
	cmds := []tea.Cmd{m.note.subscribe()}
	if id != "" {
		gen := m.noteGen
		cmds = append(cmds, noteOpCmd(m.ctx, gen, noteOpLoad, func(ctx context.Context) (types.Note, error) {
			return types.Note{ID: id}, manager.LoadNote(ctx, id)
		}))
	}
	m.logger.Debug("note screen opened", logging.F("note_id", id))
	return tea.Batch(cmds...)
}

// closeNote tears the note screen down and reloads the list.
func (m *Model) closeNote() tea.Cmd {
	if m.note != nil {
		m.note.close()
		m.note = nil
	}
	m.screen = screenHome
	return homeOpCmd(m.ctx, homeOpLoad, m.home.manager.LoadNotes)
}

func (m *Model) shutdown() {
	if m.note != nil {
		m.note.close()
		m.note = nil
	}
	m.home.close()
}

func (m *Model) copyNote(text string) {
	method, err := copyTextToClipboard(text)
	if err != nil {
		m.setStatusError("copy failed: " + err.Error())
		return
	}
	m.logger.Debug("note copied", logging.F("method", method))
	m.setStatusInfo("Copied note to clipboard")
}

func (m *Model) setStatusInfo(status string) {
	m.status = status
	m.statusErr = false
}

func (m *Model) setStatusError(status string) {
	m.status = status
	m.statusErr = true
}

func (m *Model) resize(width, height int) {
	m.width = max(minListWidth, width)
	m.height = max(minContentHeight+chromeRows, height)
	m.home.resize(m.width, m.bodyHeight())
	if m.note != nil {
		m.note.resize(m.width, m.bodyHeight())
	}
}

func (m *Model) bodyHeight() int {
	return max(minContentHeight, m.height-chromeRows)
}

func (m *Model) View() tea.View {
	header, body, help := m.home.header(), m.home.view(), m.home.help()
	if m.screen == screenNote && m.note != nil {
		header, body, help = m.note.header(), m.note.view(), m.note.help()
	}
	lines := []string{
		truncateToWidth(header, m.width),
		dividerStyle.Render(strings.Repeat("─", m.width)),
		body,
		m.statusLine(),
		helpStyle.Render(truncateToWidth(help, m.width)),
	}
	v := tea.NewView(strings.Join(lines, "\n"))
	v.AltScreen = true
	v.MouseMode = tea.MouseModeCellMotion
	return v
}

func (m *Model) statusLine() string {
	if m.status == "" {
		return ""
	}
	text := " " + truncateToWidth(m.status, max(1, m.width-2)) + " "
	if m.statusErr {
		return toastErrorStyle.Render(text)
	}
	return toastInfoStyle.Render(text)
}
