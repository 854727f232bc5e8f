// Package kiosk is the full-screen Bubble Tea driver for the task board.
// Mouse input stands in for touch: a left-button press, drag and release
// become one pointer contact.
package kiosk

import (
	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/kiosk/pkg/board"
	"tableflip.dev/kiosk/pkg/power"
	"tableflip.dev/kiosk/pkg/tui/theme"
)

// wheelStep is how many rows one wheel notch scrolls.
const wheelStep = 3

// dispatchMsg runs fn on the Bubble Tea event loop. Timers and network
// completions arrive this way.
type dispatchMsg struct{ fn func() }

type startMsg struct{}

type pointerKind int

const (
	pointerDown pointerKind = iota
	pointerMove
	pointerUp
)

// Model renders a board.Board and feeds it input.
type Model struct {
	board *board.Board
	theme theme.Theme
	geo   Geometry

	// pressed is set while the left button is held.
	pressed  bool
	quitting bool
}

// New returns a Model for b. Width and height come with the first
// WindowSizeMsg.
func New(b *board.Board, g Geometry) *Model {
	return &Model{
		board: b,
		theme: theme.Default(),
		geo:   g,
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return func() tea.Msg { return startMsg{} }
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case startMsg:
		m.board.Start()
	case dispatchMsg:
		msg.fn()
	case tea.WindowSizeMsg:
		m.geo.Width = msg.Width
		m.geo.Height = msg.Height
	case tea.KeyPressMsg:
		if cmd := m.key(msg.String()); cmd != nil {
			return m, cmd
		}
	case tea.MouseClickMsg:
		mouse := msg.Mouse()
		if mouse.Button == tea.MouseLeft {
			m.pointer(pointerDown, mouse.X, mouse.Y)
		}
	case tea.MouseMotionMsg:
		mouse := msg.Mouse()
		m.pointer(pointerMove, mouse.X, mouse.Y)
	case tea.MouseReleaseMsg:
		mouse := msg.Mouse()
		m.pointer(pointerUp, mouse.X, mouse.Y)
	case tea.MouseWheelMsg:
		switch msg.Mouse().Button {
		case tea.MouseWheelUp:
			m.board.Scroll(-wheelStep * m.geo.CellHeight)
		case tea.MouseWheelDown:
			m.board.Scroll(wheelStep * m.geo.CellHeight)
		}
	}
	m.relayout()
	return m, nil
}

func (m *Model) relayout() {
	m.board.SetLayout(Place(m.board.Snapshot(), m.geo))
}

func (m *Model) key(k string) tea.Cmd {
	switch k {
	case "ctrl+c", "q":
		m.quitting = true
		m.board.Stop()
		return tea.Quit
	case "esc":
		m.pressed = false
		m.board.PointerCancel()
	case "r":
		m.board.Reload()
	case "w", "space":
		m.board.Power().Wake()
	case "1", "2", "3":
		m.board.SetFilter(board.Filters[int(k[0]-'1')])
	}
	return nil
}

func (m *Model) pointer(kind pointerKind, x, y int) {
	p := m.geo.ToPointer(x, y)
	switch kind {
	case pointerDown:
		// The header only takes input while the display is awake; a touch
		// anywhere on a sleeping screen must reach the board to wake it.
		if !m.geo.InList(y) && m.board.Power().Mode() == power.Active {
			m.board.Activity()
			if y == filterRow {
				if f, ok := filterAt(x); ok {
					m.board.SetFilter(f)
				}
			}
			return
		}
		m.pressed = true
		m.board.PointerDown(p)
	case pointerMove:
		if m.pressed {
			m.board.PointerMove(p)
			return
		}
		m.board.Activity()
	case pointerUp:
		if !m.pressed {
			return
		}
		m.pressed = false
		m.board.PointerUp(p)
	}
}
