package board

import (
	"time"

	"tableflip.dev/kiosk/pkg/drag"
	"tableflip.dev/kiosk/pkg/geom"
	"tableflip.dev/kiosk/pkg/power"
	"tableflip.dev/kiosk/pkg/task"
)

// Empty-state messages.
const (
	EmptyNoTasks  = "No tasks for today"
	EmptyAllDone  = "All done for today"
	EmptyCategory = "Nothing in this category"
)

// Row is one rendered task.
type Row struct {
	Task       task.Task
	Expanded   bool
	Completing bool
	Eligible   bool
	// Offset is the leftward swipe offset, <= 0.
	Offset float64
}

// Snapshot is everything the renderer needs for one frame.
type Snapshot struct {
	Now    time.Time
	Mode   power.Mode
	Filter Filter
	Rows   []Row
	// Drag is the live drag, if any. DragLayout places every row while it
	// is live.
	Drag       *drag.Context
	DragLayout map[task.ID]geom.Rect
	Scroll     float64
	Loaded     bool
	Empty      string
	Err        error
	Failures   int
}

// Snapshot returns the current view state.
func (b *Board) Snapshot() Snapshot {
	s := Snapshot{
		Now:      b.clock.Now(),
		Mode:     b.power.Mode(),
		Filter:   b.filter,
		Scroll:   b.scroll,
		Loaded:   b.loaded,
		Err:      b.lastErr,
		Failures: b.policy.Failures(),
	}
	if c, ok := b.drag.Active(); ok {
		s.Drag = &c
		s.DragLayout = b.drag.Layout()
	}
	visible := b.visible()
	for _, t := range visible {
		s.Rows = append(s.Rows, Row{
			Task:       t,
			Expanded:   b.expanded[t.ID],
			Completing: b.completing[t.ID],
			Eligible:   t.Pending() && !b.completing[t.ID],
			Offset:     b.offsets[t.ID],
		})
	}
	if s.Drag != nil {
		s.Rows = inOrder(s.Rows, s.Drag.LiveOrder)
	}
	if len(visible) == 0 && b.loaded {
		s.Empty = b.emptyMessage()
	}
	return s
}

// Tasks returns today's list as currently ordered, completed ones included.
func (b *Board) Tasks() []task.Task {
	return append([]task.Task(nil), b.tasks...)
}

// visible is the rendered subset of tasks, in list order.
func (b *Board) visible() []task.Task {
	var out []task.Task
	for _, t := range b.tasks {
		if !b.cfg.ShowCompleted && !t.Pending() {
			continue
		}
		if !b.filter.Matches(t) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func (b *Board) emptyMessage() string {
	if len(b.tasks) == 0 {
		return EmptyNoTasks
	}
	if b.filter != FilterAll {
		for _, t := range b.tasks {
			if b.filter.Matches(t) {
				return EmptyAllDone
			}
		}
		return EmptyCategory
	}
	return EmptyAllDone
}

func inOrder(rows []Row, ids []task.ID) []Row {
	byID := make(map[task.ID]Row, len(rows))
	for _, r := range rows {
		byID[r.Task.ID] = r
	}
	out := make([]Row, 0, len(rows))
	for _, id := range ids {
		if r, ok := byID[id]; ok {
			out = append(out, r)
		}
	}
	return out
}
