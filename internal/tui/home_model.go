package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rshade/svccat/internal/controller"
)

// Key bindings.
const (
	keyQuit     = "q"
	keyCtrlC    = "ctrl+c"
	keyEnter    = "enter"
	keyEsc      = "esc"
	keySlash    = "/"
	keyNext     = "n"
	keyPrevious = "p"
	keyPgDown   = "pgdown"
	keyPgUp     = "pgup"
	keyRetry    = "r"
)

// Layout defaults.
const (
	defaultWidth   = 100
	defaultHeight  = 24
	minHeight      = 5
	chromeHeight   = 8
	searchCharMax  = 128
	nameColumnMin  = 24
	fixedColumnsW  = 10 + 10 + 11 + 10 + 9
	columnsPadding = 12
)

// Controller is the part of the pagination controller the home view drives.
type Controller interface {
	Inputs() controller.Inputs
	State() controller.State
	Retry(ctx context.Context) error
}

// RetryDoneMsg reports the outcome of a manual retry. The new state itself
// arrives as a StateMsg.
type RetryDoneMsg struct {
	Err error
}

// HomeModel is the Bubble Tea model for the service list.
//
//nolint:recvcheck // Bubble Tea requires value receivers for Init/Update/View interface methods.
type HomeModel struct {
	ctx    context.Context
	ctrl   Controller
	bridge *Bridge

	state controller.State

	table        table.Model
	search       textinput.Model
	searching    bool
	loadingState *LoadingState

	width    int
	height   int
	quitting bool
}

// NewHomeModel creates the home view over ctrl. bridge may be nil, in which case
// the view only shows the state it was created with and what Update receives.
func NewHomeModel(ctx context.Context, ctrl Controller, bridge *Bridge) HomeModel {
	m := HomeModel{
		ctx:          ctx,
		ctrl:         ctrl,
		bridge:       bridge,
		state:        ctrl.State(),
		search:       newSearchInput(ctrl.Inputs().Search.Get()),
		loadingState: NewLoadingState(),
		width:        TerminalWidth(defaultWidth),
		height:       defaultHeight,
	}
	m.rebuildTable()
	return m
}

func newSearchInput(initial string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "type to search services"
	ti.CharLimit = searchCharMax
	ti.Prompt = ""
	ti.SetValue(initial)
	return ti
}

// Init starts the spinner and the state subscription (Bubble Tea interface).
func (m HomeModel) Init() tea.Cmd {
	cmds := []tea.Cmd{m.loadingState.Init()}
	if m.bridge != nil {
		cmds = append(cmds, m.bridge.Next())
	}
	return tea.Batch(cmds...)
}

// Update handles messages and updates the model state (Bubble Tea interface).
func (m HomeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.rebuildTable()
		return m, nil
	case StateMsg:
		m.state = msg.State
		m.rebuildTable()
		if m.bridge != nil {
			return m, m.bridge.Next()
		}
		return m, nil
	case RetryDoneMsg:
		return m, nil
	case tea.KeyMsg:
		if msg.String() == keyCtrlC {
			m.quitting = true
			return m, tea.Quit
		}
		if m.searching {
			return m.handleSearchInput(msg)
		}
		return m.handleListKeypress(msg)
	default:
		return m, m.loadingState.Update(msg)
	}
}

func (m HomeModel) handleSearchInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case keyEnter, keyEsc:
		m.searching = false
		m.search.Blur()
		m.table.Focus()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.setSearch(m.search.Value())
	return m, cmd
}

// setSearch writes the search cell. A new term starts from the first page.
func (m HomeModel) setSearch(term string) {
	inputs := m.ctrl.Inputs()
	if !inputs.Search.Set(term) {
		return
	}
	inputs.Page.Set(1)
}

func (m HomeModel) handleListKeypress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case keyQuit:
		m.quitting = true
		return m, tea.Quit
	case keySlash:
		m.searching = true
		m.table.Blur()
		return m, m.search.Focus()
	case keyNext, keyPgDown:
		if m.state.Services.IsNext {
			m.ctrl.Inputs().Page.Update(func(p int) int { return p + 1 })
		}
		return m, nil
	case keyPrevious, keyPgUp:
		if m.state.Services.IsPrevious {
			m.ctrl.Inputs().Page.Update(func(p int) int { return p - 1 })
		}
		return m, nil
	case keyRetry:
		return m, m.retry()
	case keyEsc:
		if m.search.Value() != "" {
			m.search.SetValue("")
			m.setSearch("")
		}
		return m, nil
	default:
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}
}

func (m HomeModel) retry() tea.Cmd {
	ctx, ctrl := m.ctx, m.ctrl
	return func() tea.Msg {
		return RetryDoneMsg{Err: ctrl.Retry(ctx)}
	}
}

// rebuildTable reconstructs the table for the current page and window size.
func (m *HomeModel) rebuildTable() {
	cursor := m.table.Cursor()
	m.table = m.buildTable()
	if cursor < len(m.state.Services.PageItems) {
		m.table.SetCursor(cursor)
	}
}

func (m *HomeModel) buildTable() table.Model {
	nameWidth := m.width - fixedColumnsW - columnsPadding
	if nameWidth < nameColumnMin {
		nameWidth = nameColumnMin
	}
	widths := []int{nameWidth, 10, 10, 11, 10, 9} //nolint:mnd // Column widths.

	columns := make([]table.Column, len(Columns))
	for i, title := range Columns {
		columns[i] = table.Column{Title: title, Width: widths[i]}
	}

	items := m.state.Services.PageItems
	rows := make([]table.Row, len(items))
	for i, r := range items {
		rows[i] = Row(r)
	}

	availableHeight := m.height - chromeHeight
	if availableHeight < minHeight {
		availableHeight = minHeight
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(!m.searching),
		table.WithHeight(availableHeight),
	)

	s := table.DefaultStyles()
	s.Header = TableHeaderStyle
	s.Selected = TableSelectedStyle
	t.SetStyles(s)

	return t
}

// State returns the controller state the view is showing.
func (m HomeModel) State() controller.State {
	return m.state
}

// Searching reports whether the search box has focus.
func (m HomeModel) Searching() bool {
	return m.searching
}
