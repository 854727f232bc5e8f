package kiosk

import (
	"strings"

	"github.com/muesli/reflow/ansi"
	"github.com/muesli/reflow/padding"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/kiosk/pkg/board"
	"tableflip.dev/kiosk/pkg/geom"
	"tableflip.dev/kiosk/pkg/task"
)

const (
	// headerRows is the clock line, the filter bar and a rule.
	headerRows = 3
	filterRow  = 1
	footerRows = 1
	// rowGap is the blank line between rows.
	rowGap = 1
	indent = "    "
)

// Geometry maps terminal cells to pointer units.
type Geometry struct {
	Width, Height int
	// CellWidth and CellHeight are pointer units per column and row.
	CellWidth, CellHeight float64
}

func (g Geometry) listRows() int {
	n := g.Height - headerRows - footerRows
	if n < 0 {
		return 0
	}
	return n
}

// InList reports whether terminal row y is inside the task list.
func (g Geometry) InList(y int) bool {
	return y >= headerRows && y < g.Height-footerRows
}

// ToPointer converts the centre of cell (x, y) to list coordinates.
func (g Geometry) ToPointer(x, y int) geom.Point {
	return geom.Point{
		X: (float64(x) + 0.5) * g.CellWidth,
		Y: (float64(y-headerRows) + 0.5) * g.CellHeight,
	}
}

// Place lays the snapshot's rows out top to bottom, in pointer units.
func Place(s board.Snapshot, g Geometry) board.Layout {
	l := board.Layout{Rects: make(map[task.ID]geom.Rect, len(s.Rows))}
	top := 0
	for i, r := range s.Rows {
		h := len(rowLines(r, g.Width))
		l.Rects[r.Task.ID] = geom.Rect{
			Top:    float64(top) * g.CellHeight,
			Height: float64(h) * g.CellHeight,
		}
		top += h
		if i < len(s.Rows)-1 {
			top += rowGap
		}
	}
	l.Content = float64(top) * g.CellHeight
	l.Viewport = float64(g.listRows()) * g.CellHeight
	return l
}

// rowLines is the unstyled text of a row, width columns wide.
func rowLines(r board.Row, width int) []string {
	if width < 8 {
		width = 8
	}
	marker := "○ "
	switch {
	case !r.Task.Pending():
		marker = "✓ "
	case r.Completing:
		marker = "● "
	}
	badge := r.Task.Badge()
	titleWidth := width - ansi.PrintableRuneWidth(marker) - ansi.PrintableRuneWidth(badge) - 1
	if titleWidth < 1 {
		titleWidth = 1
		badge = ""
	}
	title := truncate.StringWithTail(r.Task.Title, uint(titleWidth), "…")
	lines := []string{marker + padding.String(title, uint(titleWidth)) + " " + badge}

	if !r.Expanded {
		return lines
	}
	desc := strings.TrimSpace(r.Task.Description)
	if desc == "" {
		return append(lines, indent+"(no description)")
	}
	wrapped := wordwrap.String(desc, width-len(indent))
	for _, l := range strings.Split(wrapped, "\n") {
		lines = append(lines, indent+l)
	}
	return lines
}

type filterSpan struct {
	filter     board.Filter
	start, end int
}

var filterLabels = map[board.Filter]string{
	board.FilterAll:       "All",
	board.FilterOneTime:   "One-time",
	board.FilterRecurring: "Recurring",
}

// filterSpans are the columns of each filter button; each label is padded
// by one column per side and buttons are one column apart.
func filterSpans() []filterSpan {
	var spans []filterSpan
	x := 0
	for _, f := range board.Filters {
		w := len(filterLabels[f]) + 2
		spans = append(spans, filterSpan{filter: f, start: x, end: x + w})
		x += w + 1
	}
	return spans
}

func filterAt(x int) (board.Filter, bool) {
	for _, s := range filterSpans() {
		if x >= s.start && x < s.end {
			return s.filter, true
		}
	}
	return board.FilterAll, false
}
