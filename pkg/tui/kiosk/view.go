package kiosk

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/ansi"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/kiosk/pkg/board"
	"tableflip.dev/kiosk/pkg/power"
)

const helpText = "tap: details · swipe left: done · hold: reorder · esc: cancel · r: reload · q: quit"

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	s := m.board.Snapshot()
	switch s.Mode {
	case power.NightBlackout:
		return m.night()
	case power.IdleSleep:
		return m.sleep(s)
	}

	var b strings.Builder
	b.WriteString(m.header(s))
	b.WriteString("\n")
	b.WriteString(m.filterBar(s.Filter))
	b.WriteString("\n")
	b.WriteString(m.theme.Footer.Status.Render(strings.Repeat("─", m.geo.Width)))
	b.WriteString("\n")
	for _, line := range m.list(s) {
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString(m.footer(s))
	return b.String()
}

func (m *Model) header(s board.Snapshot) string {
	clock := m.theme.Header.Clock.Render(s.Now.Format("15:04"))
	date := m.theme.Header.Date.Render(s.Now.Format("Monday, 2 January 2006"))
	return clock + "  " + date
}

func (m *Model) filterBar(active board.Filter) string {
	parts := make([]string, 0, len(board.Filters))
	for _, f := range board.Filters {
		style := m.theme.Filter.Item
		if f == active {
			style = m.theme.Filter.Active
		}
		parts = append(parts, style.Render(filterLabels[f]))
	}
	return strings.Join(parts, " ")
}

// list renders exactly listRows lines of the task list.
func (m *Model) list(s board.Snapshot) []string {
	rows := m.geo.listRows()
	buf := make([]string, rows)
	if rows == 0 {
		return buf
	}
	if len(s.Rows) == 0 {
		msg := s.Empty
		if !s.Loaded {
			msg = "Loading…"
		}
		buf[rows/2] = lipgloss.PlaceHorizontal(m.geo.Width, lipgloss.Center, m.theme.Footer.Empty.Render(msg))
		return buf
	}

	scroll := int(math.Round(s.Scroll / m.geo.CellHeight))
	put := func(top int, lines []string) {
		for i, line := range lines {
			y := top + i - scroll
			if y >= 0 && y < rows {
				buf[y] = line
			}
		}
	}

	layout := Place(s, m.geo)
	var dragged *board.Row
	for i := range s.Rows {
		r := s.Rows[i]
		rect := layout.Rects[r.Task.ID]
		if s.Drag != nil {
			if live, ok := s.DragLayout[r.Task.ID]; ok {
				rect = live
			}
			if r.Task.ID == s.Drag.DraggedID {
				dragged = &s.Rows[i]
				put(m.cells(rect.Top), m.placeholder(m.cells(rect.Height)))
				continue
			}
		}
		put(m.cells(rect.Top), m.renderRow(r, false))
	}
	if dragged != nil {
		put(m.cells(s.Drag.FloatingTop()), m.renderRow(*dragged, true))
	}
	return buf
}

func (m *Model) cells(units float64) int {
	return int(math.Round(units / m.geo.CellHeight))
}

func (m *Model) placeholder(h int) []string {
	out := make([]string, h)
	for i := range out {
		out[i] = m.theme.Row.Placeholder.Render(strings.Repeat("┄", m.geo.Width))
	}
	return out
}

func (m *Model) renderRow(r board.Row, dragged bool) []string {
	lines := rowLines(r, m.geo.Width)
	out := make([]string, len(lines))
	for i, line := range lines {
		style := m.theme.Row.Title
		if i > 0 {
			style = m.theme.Row.Description
		}
		switch {
		case dragged:
			style = m.theme.Row.Dragged
		case !r.Task.Pending():
			style = m.theme.Row.Done
		case r.Completing:
			style = m.theme.Row.Completing
		}
		if i == 0 && r.Offset < 0 {
			out[i] = m.swiped(line, style, -r.Offset)
			continue
		}
		out[i] = style.Render(line)
	}
	return out
}

// swiped slides the first row line left by dx pointer units and shows the
// completion hint in the space it leaves.
func (m *Model) swiped(line string, style lipgloss.Style, dx float64) string {
	shift := int(dx / m.geo.CellWidth)
	runes := []rune(line)
	if shift > len(runes) {
		shift = len(runes)
	}
	kept := string(runes[shift:])
	hint := truncate.String(" ✓ done", uint(shift))
	pad := m.geo.Width - ansi.PrintableRuneWidth(kept) - ansi.PrintableRuneWidth(hint)
	if pad < 0 {
		pad = 0
	}
	return style.Render(kept) + strings.Repeat(" ", pad) + m.theme.Row.SwipeHint.Render(hint)
}

func (m *Model) footer(s board.Snapshot) string {
	if s.Err != nil {
		return m.theme.Footer.Error.Render(fmt.Sprintf("Connection problem (%d): %v", s.Failures, s.Err))
	}
	return m.theme.Footer.Help.Render(truncate.StringWithTail(helpText, uint(m.geo.Width), "…"))
}

func (m *Model) sleep(s board.Snapshot) string {
	body := m.theme.Overlay.Sleep.Render(s.Now.Format("15:04") + "\n\nTouch to wake")
	return lipgloss.Place(m.geo.Width, m.geo.Height, lipgloss.Center, lipgloss.Center, body)
}

func (m *Model) night() string {
	return lipgloss.Place(m.geo.Width, m.geo.Height, lipgloss.Center, lipgloss.Center, m.theme.Overlay.Night.Render("·"))
}
