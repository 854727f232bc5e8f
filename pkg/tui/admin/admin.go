// Package admin is a Bubble Tea browser over every task the server knows,
// with complete and delete actions.
package admin

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/v2/list"
	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/kiosk/pkg/task"
	"tableflip.dev/kiosk/pkg/taskapi"
	"tableflip.dev/kiosk/pkg/tui/theme"
)

const helpText = "c: complete · x: delete · r: reload · /: filter · q: quit"

type taskItem struct{ t task.Task }

func (it taskItem) Title() string {
	if it.t.CompletedToday {
		return "✓ " + it.t.Title
	}
	return it.t.Title
}

func (it taskItem) Description() string {
	parts := []string{"#" + string(it.t.ID), it.t.Badge()}
	if it.t.StartDate != "" || it.t.EndDate != "" {
		parts = append(parts, fmt.Sprintf("%s..%s", it.t.StartDate, it.t.EndDate))
	}
	return strings.Join(parts, " · ")
}

func (it taskItem) FilterValue() string { return it.t.Title }

// messages
type loadedMsg struct{ tasks []task.Task }
type errMsg struct{ err error }
type doneMsg struct{ status string }

// Model contains UI state.
type Model struct {
	ctx    context.Context
	api    taskapi.Service
	theme  theme.Theme
	list   list.Model
	status string
}

// New creates a browser backed by api.
func New(ctx context.Context, api taskapi.Service) *Model {
	d := list.NewDefaultDelegate()
	d.SetSpacing(0)
	l := list.New([]list.Item{}, d, 80, 20)
	l.Title = "All tasks"
	l.SetShowHelp(false)

	return &Model{
		ctx:    ctx,
		api:    api,
		theme:  theme.Default(),
		list:   l,
		status: helpText,
	}
}

// Init loads the tasks.
func (m *Model) Init() tea.Cmd {
	return m.load()
}

func (m *Model) load() tea.Cmd {
	return func() tea.Msg {
		tasks, err := m.api.All(m.ctx)
		if err != nil {
			return errMsg{err}
		}
		return loadedMsg{tasks}
	}
}

func (m *Model) selected() (task.Task, bool) {
	sel := m.list.SelectedItem()
	if sel == nil {
		return task.Task{}, false
	}
	it, ok := sel.(taskItem)
	return it.t, ok
}

func (m *Model) complete() tea.Cmd {
	t, ok := m.selected()
	if !ok {
		return nil
	}
	return func() tea.Msg {
		if err := m.api.Complete(m.ctx, t.ID); err != nil {
			return errMsg{fmt.Errorf("complete %q: %w", t.Title, err)}
		}
		return doneMsg{fmt.Sprintf("Completed %q", t.Title)}
	}
}

func (m *Model) remove() tea.Cmd {
	t, ok := m.selected()
	if !ok {
		return nil
	}
	return func() tea.Msg {
		if err := m.api.Delete(m.ctx, t.ID); err != nil {
			return errMsg{fmt.Errorf("delete %q: %w", t.Title, err)}
		}
		return doneMsg{fmt.Sprintf("Deleted %q", t.Title)}
	}
}

// Update handles messages and keybindings.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height-1)
		return m, nil
	case loadedMsg:
		items := make([]list.Item, 0, len(msg.tasks))
		for _, t := range msg.tasks {
			items = append(items, taskItem{t})
		}
		return m, m.list.SetItems(items)
	case errMsg:
		m.status = "error: " + msg.err.Error()
		return m, nil
	case doneMsg:
		m.status = msg.status
		return m, m.load()
	case tea.KeyPressMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "c":
			return m, m.complete()
		case "x", "delete":
			return m, m.remove()
		case "r":
			m.status = helpText
			return m, m.load()
		}
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m *Model) View() string {
	return m.list.View() + "\n" + m.theme.Admin.Status.Render(m.status)
}

// Run launches the admin browser.
func Run(ctx context.Context, api taskapi.Service) error {
	p := tea.NewProgram(New(ctx, api), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
