package drag

import (
	"errors"
	"reflect"
	"testing"

	"tableflip.dev/kiosk/pkg/geom"
	"tableflip.dev/kiosk/pkg/task"
)

// rows lays out ids as 10-unit rows starting at y=0. Ids listed in
// done are not eligible.
func rows(ids []task.ID, done ...task.ID) []Item {
	skip := map[task.ID]bool{}
	for _, d := range done {
		skip[d] = true
	}
	items := make([]Item, len(ids))
	for i, id := range ids {
		items[i] = Item{ID: id, Rect: geom.Rect{Top: float64(i * 10), Height: 10}, Eligible: !skip[id]}
	}
	return items
}

func ids(s ...string) []task.ID {
	out := make([]task.ID, len(s))
	for i, v := range s {
		out[i] = task.ID(v)
	}
	return out
}

func TestDragThirdToFirst(t *testing.T) {
	var e Engine
	c, err := e.Begin("C", geom.Point{X: 5, Y: 25}, rows(ids("A", "B", "C", "D")))
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	if c.PointerOffset != 5 {
		t.Fatalf("expected pointer offset 5, got %v", c.PointerOffset)
	}
	if c.PlaceholderIndex != 2 {
		t.Fatalf("expected initial placeholder 2, got %d", c.PlaceholderIndex)
	}

	c, err = e.Update(2)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if c.PlaceholderIndex != 0 {
		t.Fatalf("expected placeholder 0, got %d", c.PlaceholderIndex)
	}
	if c.FloatingTop() != -3 {
		t.Fatalf("expected floating top -3, got %v", c.FloatingTop())
	}

	order, err := e.Commit()
	if err != nil {
		t.Fatalf("commit: %v", err)
	}
	if want := ids("C", "A", "B", "D"); !reflect.DeepEqual(order, want) {
		t.Fatalf("expected %v, got %v", want, order)
	}
	if e.Dragging() {
		t.Fatalf("drag still active after commit")
	}
}

func TestDragPastEndLandsAfterLastEligible(t *testing.T) {
	var e Engine
	if _, err := e.Begin("A", geom.Point{Y: 3}, rows(ids("A", "B", "C"))); err != nil {
		t.Fatalf("begin: %v", err)
	}
	c, _ := e.Update(500)
	if c.PlaceholderIndex != 2 {
		t.Fatalf("expected placeholder 2, got %d", c.PlaceholderIndex)
	}
	order, _ := e.Commit()
	if want := ids("B", "C", "A"); !reflect.DeepEqual(order, want) {
		t.Fatalf("expected %v, got %v", want, order)
	}
}

func TestCompletedItemsNeverReceivePlaceholder(t *testing.T) {
	var e Engine
	items := rows(ids("A", "B", "C", "D"), "B")
	if _, err := e.Begin("D", geom.Point{Y: 35}, items); err != nil {
		t.Fatalf("begin: %v", err)
	}

	// Above B's midpoint, but B is not eligible: C is the first
	// eligible item below the pointer.
	c, _ := e.Update(14)
	if want := ids("A", "B", "D", "C"); !reflect.DeepEqual(c.LiveOrder, want) {
		t.Fatalf("expected %v, got %v", want, c.LiveOrder)
	}
	if c.PlaceholderIndex != 1 {
		t.Fatalf("expected placeholder 1 among eligible, got %d", c.PlaceholderIndex)
	}

	c, _ = e.Update(1)
	if want := ids("D", "A", "B", "C"); !reflect.DeepEqual(c.LiveOrder, want) {
		t.Fatalf("expected %v, got %v", want, c.LiveOrder)
	}
}

func TestLayoutTracksPlaceholder(t *testing.T) {
	e := Engine{Gap: 2}
	items := []Item{
		{ID: "A", Rect: geom.Rect{Top: 100, Height: 10}, Eligible: true},
		{ID: "B", Rect: geom.Rect{Top: 112, Height: 20}, Eligible: true},
		{ID: "C", Rect: geom.Rect{Top: 134, Height: 10}, Eligible: true},
	}
	if _, err := e.Begin("B", geom.Point{Y: 120}, items); err != nil {
		t.Fatalf("begin: %v", err)
	}
	e.Update(101)
	layout := e.Layout()
	if layout["B"].Top != 100 || layout["A"].Top != 122 || layout["C"].Top != 134 {
		t.Fatalf("unexpected layout %+v", layout)
	}
	// Pointer still above A's new midpoint: placeholder stays first.
	c, _ := e.Update(101)
	if c.PlaceholderIndex != 0 {
		t.Fatalf("expected stable placeholder, got %d", c.PlaceholderIndex)
	}
}

func TestBeginWhileActiveIsRejected(t *testing.T) {
	var e Engine
	items := rows(ids("A", "B"))
	if _, err := e.Begin("A", geom.Point{Y: 1}, items); err != nil {
		t.Fatalf("begin: %v", err)
	}
	if _, err := e.Begin("B", geom.Point{Y: 11}, items); !errors.Is(err, ErrDragActive) {
		t.Fatalf("expected ErrDragActive, got %v", err)
	}
	c, ok := e.Active()
	if !ok || c.DraggedID != "A" {
		t.Fatalf("expected first drag to survive, got %+v", c)
	}
}

func TestCancelRestoresAndEmitsNothing(t *testing.T) {
	var e Engine
	if _, err := e.Begin("C", geom.Point{Y: 25}, rows(ids("A", "B", "C"))); err != nil {
		t.Fatalf("begin: %v", err)
	}
	e.Update(0)
	restored := e.Cancel()
	if want := ids("A", "B", "C"); !reflect.DeepEqual(restored, want) {
		t.Fatalf("expected %v, got %v", want, restored)
	}
	if _, err := e.Commit(); !errors.Is(err, ErrNoDrag) {
		t.Fatalf("expected ErrNoDrag after cancel, got %v", err)
	}
	if e.Cancel() != nil {
		t.Fatalf("expected nil from idle cancel")
	}
}

func TestBeginValidatesItem(t *testing.T) {
	var e Engine
	if _, err := e.Begin("Z", geom.Point{}, rows(ids("A"))); !errors.Is(err, ErrUnknown) {
		t.Fatalf("expected ErrUnknown, got %v", err)
	}
	if _, err := e.Begin("A", geom.Point{}, rows(ids("A"), "A")); !errors.Is(err, ErrIneligible) {
		t.Fatalf("expected ErrIneligible, got %v", err)
	}
	if e.Dragging() {
		t.Fatalf("failed begin left a drag behind")
	}
}

func TestBeginAndUpdateReturnCopies(t *testing.T) {
	var e Engine
	c, err := e.Begin("B", geom.Point{X: 5, Y: 15}, rows(ids("A", "B", "C")))
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	c.LiveOrder[0] = "Z"
	if got, _ := e.Active(); got.LiveOrder[0] != "A" {
		t.Fatalf("expected engine order untouched by Begin result, got %v", got.LiveOrder)
	}

	u, err := e.Update(1)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if want := ids("B", "A", "C"); !reflect.DeepEqual(u.LiveOrder, want) {
		t.Fatalf("expected %v, got %v", want, u.LiveOrder)
	}
	u.LiveOrder[1] = "Z"
	if got, _ := e.Active(); !reflect.DeepEqual(got.LiveOrder, ids("B", "A", "C")) {
		t.Fatalf("expected engine order untouched by Update result, got %v", got.LiveOrder)
	}
}
