// Package drag tracks a long-pressed item floating over the task list and
// computes where it will land.
package drag

import (
	"errors"
	"fmt"

	"tableflip.dev/kiosk/pkg/geom"
	"tableflip.dev/kiosk/pkg/task"
)

var (
	// ErrDragActive is returned by Begin while another drag is live.
	// Only one drag may exist at a time; callers must Commit or Cancel
	// first.
	ErrDragActive = errors.New("drag: a drag is already active")
	ErrNoDrag     = errors.New("drag: no active drag")
	ErrUnknown    = errors.New("drag: item not in list")
	ErrIneligible = errors.New("drag: item cannot be reordered")
)

// Item is one rendered row as laid out when the drag starts.
type Item struct {
	ID   task.ID
	Rect geom.Rect
	// Eligible items are pending and not completed. Only they receive
	// the placeholder; others keep their place in the order.
	Eligible bool
}

// Context describes the live drag.
type Context struct {
	DraggedID task.ID
	// PointerOffset is the grab point's distance below the item top.
	PointerOffset float64
	// PlaceholderIndex is the insertion slot counted among the
	// eligible items other than the dragged one.
	PlaceholderIndex int
	// LiveOrder is every item id, the dragged one at its placeholder.
	LiveOrder []task.ID
	// PointerY is the last pointer position seen.
	PointerY float64
}

// FloatingTop is where the dragged item's top edge follows the pointer.
func (c Context) FloatingTop() float64 { return c.PointerY - c.PointerOffset }

// Engine owns at most one drag. The zero value is ready to use.
type Engine struct {
	// Gap is the vertical space between consecutive rows.
	Gap float64

	active  *Context
	origin  float64
	heights map[task.ID]float64
	elig    map[task.ID]bool
	initial []task.ID
}

// Active returns a copy of the live drag, if any.
func (e *Engine) Active() (Context, bool) {
	if e.active == nil {
		return Context{}, false
	}
	c := *e.active
	c.LiveOrder = append([]task.ID(nil), e.active.LiveOrder...)
	return c, true
}

// Dragging reports whether a drag is live.
func (e *Engine) Dragging() bool { return e.active != nil }

// Begin starts dragging id, grabbed at grab, over items in their current
// on-screen order.
func (e *Engine) Begin(id task.ID, grab geom.Point, items []Item) (Context, error) {
	if e.active != nil {
		return Context{}, ErrDragActive
	}
	idx := -1
	for i, it := range items {
		if it.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return Context{}, fmt.Errorf("%w: %s", ErrUnknown, id)
	}
	if !items[idx].Eligible {
		return Context{}, fmt.Errorf("%w: %s", ErrIneligible, id)
	}

	e.heights = make(map[task.ID]float64, len(items))
	e.elig = make(map[task.ID]bool, len(items))
	e.initial = make([]task.ID, len(items))
	for i, it := range items {
		e.heights[it.ID] = it.Rect.Height
		e.elig[it.ID] = it.Eligible
		e.initial[i] = it.ID
	}
	e.origin = items[0].Rect.Top

	c := &Context{
		DraggedID:     id,
		PointerOffset: grab.Y - items[idx].Rect.Top,
		LiveOrder:     append([]task.ID(nil), e.initial...),
		PointerY:      grab.Y,
	}
	e.active = c
	c.PlaceholderIndex = e.placeholderIndex()
	out, _ := e.Active()
	return out, nil
}

// Update moves the pointer to y and recomputes the placeholder. The
// placeholder goes before the first eligible sibling whose midpoint is
// below y, or after the last eligible sibling when none is.
func (e *Engine) Update(y float64) (Context, error) {
	if e.active == nil {
		return Context{}, ErrNoDrag
	}
	c := e.active
	c.PointerY = y

	var before task.ID
	var last task.ID
	found := false
	for _, slot := range e.layout() {
		if slot.id == c.DraggedID || !e.elig[slot.id] {
			continue
		}
		last = slot.id
		if !found && y < slot.rect.Mid() {
			before = slot.id
			found = true
		}
	}
	switch {
	case found:
		c.LiveOrder = moveBefore(c.LiveOrder, c.DraggedID, before)
	case last != "":
		c.LiveOrder = moveAfter(c.LiveOrder, c.DraggedID, last)
	}
	c.PlaceholderIndex = e.placeholderIndex()
	out, _ := e.Active()
	return out, nil
}

// Commit ends the drag and returns the final order of all items, the
// dragged one included.
func (e *Engine) Commit() ([]task.ID, error) {
	if e.active == nil {
		return nil, ErrNoDrag
	}
	order := append([]task.ID(nil), e.active.LiveOrder...)
	e.reset()
	return order, nil
}

// Cancel drops the drag without an order change. It returns the order
// the items had when the drag began, or nil if nothing was active.
func (e *Engine) Cancel() []task.ID {
	if e.active == nil {
		return nil
	}
	order := e.initial
	e.reset()
	return order
}

// Layout returns the rectangles of the live order as rendered: siblings
// stacked from the list origin with the placeholder holding the dragged
// item's height.
func (e *Engine) Layout() map[task.ID]geom.Rect {
	out := make(map[task.ID]geom.Rect)
	for _, s := range e.layout() {
		out[s.id] = s.rect
	}
	return out
}

type slot struct {
	id   task.ID
	rect geom.Rect
}

func (e *Engine) layout() []slot {
	if e.active == nil {
		return nil
	}
	slots := make([]slot, 0, len(e.active.LiveOrder))
	top := e.origin
	for _, id := range e.active.LiveOrder {
		h := e.heights[id]
		slots = append(slots, slot{id: id, rect: geom.Rect{Top: top, Height: h}})
		top += h + e.Gap
	}
	return slots
}

func (e *Engine) placeholderIndex() int {
	n := 0
	for _, id := range e.active.LiveOrder {
		if id == e.active.DraggedID {
			return n
		}
		if e.elig[id] {
			n++
		}
	}
	return n
}

func (e *Engine) reset() {
	e.active = nil
	e.heights = nil
	e.elig = nil
	e.initial = nil
}

func without(order []task.ID, id task.ID) []task.ID {
	out := make([]task.ID, 0, len(order))
	for _, o := range order {
		if o != id {
			out = append(out, o)
		}
	}
	return out
}

func moveBefore(order []task.ID, id, anchor task.ID) []task.ID {
	rest := without(order, id)
	out := make([]task.ID, 0, len(order))
	for _, o := range rest {
		if o == anchor {
			out = append(out, id)
		}
		out = append(out, o)
	}
	return out
}

func moveAfter(order []task.ID, id, anchor task.ID) []task.ID {
	rest := without(order, id)
	out := make([]task.ID, 0, len(order))
	for _, o := range rest {
		out = append(out, o)
		if o == anchor {
			out = append(out, id)
		}
	}
	return out
}
