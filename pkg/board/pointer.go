package board

import (
	"fmt"

	"tableflip.dev/kiosk/pkg/drag"
	"tableflip.dev/kiosk/pkg/geom"
	"tableflip.dev/kiosk/pkg/gesture"
	"tableflip.dev/kiosk/pkg/power"
	"tableflip.dev/kiosk/pkg/task"
)

// contact is the one pointer currently down.
type contact struct {
	down bool
	// swallowed contacts woke the display or hit the blackout.
	swallowed bool
	onRow     bool
	id        task.ID
}

// PointerDown starts a contact at p, in list viewport coordinates.
// Touching a sleeping display only wakes it; the blackout ignores input.
func (b *Board) PointerDown(p geom.Point) {
	if b.contact.down {
		b.PointerCancel()
	}
	b.contact = contact{down: true}

	switch b.power.Mode() {
	case power.NightBlackout:
		b.contact.swallowed = true
		return
	case power.IdleSleep:
		b.contact.swallowed = true
		b.power.Wake()
		b.changed()
		return
	}
	b.power.Activity()

	if id, ok := b.rowAt(p.Y); ok {
		b.contact.onRow = true
		b.contact.id = id
		b.recognizer.Down(id, p)
		return
	}
	b.free.Down(p.Y)
}

// PointerMove moves the contact to p.
func (b *Board) PointerMove(p geom.Point) {
	if !b.contact.down || b.contact.swallowed {
		return
	}
	b.power.Activity()
	if b.contact.onRow {
		b.recognizer.Move(b.contact.id, p)
	} else if dy := b.free.Move(p.Y); dy != 0 {
		b.scrollBy(dy)
	}
	b.changed()
}

// PointerUp ends the contact at p and acts on the recognized intent.
func (b *Board) PointerUp(p geom.Point) gesture.Intent {
	c := b.contact
	b.contact = contact{}
	if !c.down || c.swallowed {
		return gesture.Intent{Kind: gesture.None}
	}
	b.power.Activity()
	if !c.onRow {
		b.free.Up()
		return gesture.Intent{Kind: gesture.None}
	}
	b.recognizer.Move(c.id, p)
	in := b.recognizer.Up(c.id)
	b.act(in)
	return in
}

// PointerCancel aborts the contact, restoring any dragged or swiped row.
func (b *Board) PointerCancel() gesture.Intent {
	c := b.contact
	b.contact = contact{}
	if !c.down || c.swallowed {
		return gesture.Intent{Kind: gesture.None}
	}
	if !c.onRow {
		b.free.Up()
		return gesture.Intent{Kind: gesture.None}
	}
	in := b.recognizer.Cancel(c.id)
	b.act(in)
	return in
}

// PromoteDrag starts a drag on the pressed row without waiting for the
// hold timer.
func (b *Board) PromoteDrag() {
	if b.contact.down && b.contact.onRow {
		b.recognizer.Promote(b.contact.id)
		b.changed()
	}
}

func (b *Board) act(in gesture.Intent) {
	switch in.Kind {
	case gesture.Tap:
		b.toggleExpanded(in.TaskID)
	case gesture.CompleteSwipe:
		b.complete(in.TaskID, b.Logger.With("session", in.SessionID))
	case gesture.DragCommit:
		full := mergeVisible(task.IDs(b.tasks), in.Order)
		if err := b.coord.Reorder(full, "session", in.SessionID); err != nil {
			b.Logger.Warn("reorder dropped", "session", in.SessionID, "err", err)
		}
		b.unpark()
	case gesture.DragCancel:
		b.unpark()
	}
	b.changed()
}

func (b *Board) toggleExpanded(id task.ID) {
	if b.expanded[id] {
		delete(b.expanded, id)
	} else {
		b.expanded[id] = true
	}
}

func (b *Board) rowAt(y float64) (task.ID, bool) {
	cy := y + b.scroll
	for _, r := range b.visible() {
		if rect, ok := b.layout.Rects[r.ID]; ok && rect.Contains(cy) {
			return r.ID, true
		}
	}
	return "", false
}

func (b *Board) scrollBy(dy float64) {
	b.scroll = clampScroll(b.scroll+dy, b.layout)
}

// mergeVisible places the visible ids, in their new order, into the slots
// they occupy in full. Hidden ids keep their slots.
func mergeVisible(full, visible []task.ID) []task.ID {
	in := make(map[task.ID]bool, len(visible))
	for _, id := range visible {
		in[id] = true
	}
	out := make([]task.ID, 0, len(full))
	next := 0
	for _, id := range full {
		if in[id] && next < len(visible) {
			out = append(out, visible[next])
			next++
			continue
		}
		out = append(out, id)
	}
	return out
}

// handler is the board as seen by the gesture recognizer.
type handler Board

func (h *handler) BeginDrag(id task.ID, grab geom.Point) error {
	b := (*Board)(h)
	var items []drag.Item
	for _, t := range b.visible() {
		rect, ok := b.layout.Rects[t.ID]
		if !ok {
			return fmt.Errorf("board: %s is not laid out", t.ID)
		}
		items = append(items, drag.Item{
			ID:       t.ID,
			Rect:     rect,
			Eligible: t.Pending() && !b.completing[t.ID],
		})
	}
	if len(items) == 0 {
		return drag.ErrUnknown
	}
	if _, err := b.drag.Begin(id, geom.Point{X: grab.X, Y: grab.Y + b.scroll}, items); err != nil {
		return err
	}
	delete(b.offsets, id)
	b.Logger.Debug("drag begin", "task", id)
	b.changed()
	return nil
}

func (h *handler) MoveDrag(y float64) {
	if _, err := h.drag.Update(y + h.scroll); err != nil {
		h.Logger.Debug("drag update", "err", err)
	}
}

func (h *handler) CommitDrag() ([]task.ID, error) { return h.drag.Commit() }

func (h *handler) CancelDrag() { h.drag.Cancel() }

func (h *handler) ScrollBy(dy float64) { (*Board)(h).scrollBy(dy) }

func (h *handler) SwipeOffset(id task.ID, dx float64) {
	if dx == 0 {
		delete(h.offsets, id)
		return
	}
	h.offsets[id] = dx
}

// Activity records input that is not a contact, such as hovering.
func (b *Board) Activity() {
	b.power.Activity()
}

// Scroll scrolls the list by dy, as a mouse wheel does.
func (b *Board) Scroll(dy float64) {
	if b.power.Mode() != power.Active {
		return
	}
	b.power.Activity()
	b.scrollBy(dy)
	b.changed()
}
