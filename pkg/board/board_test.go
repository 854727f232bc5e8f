package board

import (
	"bytes"
	"errors"
	"log/slog"
	"reflect"
	"strings"
	"testing"
	"time"

	"tableflip.dev/kiosk/pkg/clock"
	"tableflip.dev/kiosk/pkg/geom"
	"tableflip.dev/kiosk/pkg/gesture"
	"tableflip.dev/kiosk/pkg/loop"
	"tableflip.dev/kiosk/pkg/order"
	"tableflip.dev/kiosk/pkg/power"
	"tableflip.dev/kiosk/pkg/task"
	"tableflip.dev/kiosk/pkg/testutil"
)

const rowHeight = 20

type fixture struct {
	board *Board
	api   *testutil.FakeService
	store *order.Memory
	clock *clock.FakeClock
}

func newFixture(t *testing.T, tasks ...task.Task) *fixture {
	t.Helper()
	f := &fixture{
		api:   testutil.NewFakeService(tasks...),
		store: &order.Memory{},
		clock: clock.Fake(time.Date(2025, time.March, 14, 10, 0, 0, 0, time.Local)),
	}
	f.board = New(DefaultConfig(), Deps{
		API:   f.api,
		Hooks: f.api,
		Store: f.store,
		Clock: f.clock,
		Exec:  loop.Inline{},
	})
	return f
}

// lay stacks the visible rows rowHeight apart, like the renderer does for
// collapsed rows.
func (f *fixture) lay() {
	rects := make(map[task.ID]geom.Rect)
	top := 0.0
	for _, r := range f.board.Snapshot().Rows {
		rects[r.Task.ID] = geom.Rect{Top: top, Height: rowHeight}
		top += rowHeight
	}
	f.board.SetLayout(Layout{Rects: rects, Content: top, Viewport: 200})
}

func ids(s ...string) []task.ID {
	out := make([]task.ID, len(s))
	for i, id := range s {
		out[i] = task.ID(id)
	}
	return out
}

func rowIDs(s Snapshot) []task.ID {
	out := make([]task.ID, len(s.Rows))
	for i, r := range s.Rows {
		out[i] = r.Task.ID
	}
	return out
}

func pt(x, y float64) geom.Point { return geom.Point{X: x, Y: y} }

func TestDragReorderSurvivesServerOrder(t *testing.T) {
	f := newFixture(t, testutil.Pending("A", "B", "C", "D")...)
	f.board.Start()
	f.lay()

	f.board.PointerDown(pt(50, 50)) // C
	f.clock.Advance(500 * time.Millisecond)
	if s := f.board.Snapshot(); s.Drag == nil || s.Drag.DraggedID != "C" {
		t.Fatalf("expected C to be dragged, got %+v", s.Drag)
	}
	f.board.PointerMove(pt(50, 2))
	in := f.board.PointerUp(pt(50, 2))

	want := ids("C", "A", "B", "D")
	if in.Kind != gesture.DragCommit || !reflect.DeepEqual(in.Order, want) {
		t.Fatalf("expected commit %v, got %+v", want, in)
	}
	if got := rowIDs(f.board.Snapshot()); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected rows %v, got %v", want, got)
	}
	r, ok, _ := f.store.Load()
	if !ok || r.Date != "2025-03-14" || !reflect.DeepEqual(r.IDs, want) {
		t.Fatalf("expected same-day record %v, got %+v", want, r)
	}
	if f.api.CallCount("Reorder [C A B D]") != 1 {
		t.Fatalf("expected reorder request, got %v", f.api.Calls)
	}

	// The server comes back with its own order.
	f.api.SetTasks(testutil.Pending("A", "B", "C", "D"))
	f.board.Fetch()
	if got := rowIDs(f.board.Snapshot()); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected local order to win, got %v", got)
	}
}

func TestThreeFailuresReloadOnce(t *testing.T) {
	f := newFixture(t, testutil.Pending("A")...)
	f.board.Start()
	f.board.SetFilter(FilterRecurring)

	f.api.TodayErr = errors.New("backend down")
	f.board.Fetch()
	f.board.Fetch()
	if f.board.Reloads() != 0 {
		t.Fatalf("reloaded early")
	}
	f.board.Fetch()
	if f.board.Reloads() != 1 {
		t.Fatalf("expected one reload, got %d", f.board.Reloads())
	}
	s := f.board.Snapshot()
	// The reload's own fetch failed too and counts from zero.
	if s.Failures != 1 {
		t.Fatalf("expected counter reset, got %d", s.Failures)
	}
	if s.Filter != FilterAll || s.Loaded || len(s.Rows) != 0 {
		t.Fatalf("expected clean state after reload, got %+v", s)
	}

	f.board.Fetch()
	if f.board.Reloads() != 1 {
		t.Fatalf("expected still one reload, got %d", f.board.Reloads())
	}

	f.api.TodayErr = nil
	f.board.Fetch()
	if s := f.board.Snapshot(); s.Err != nil || s.Failures != 0 || len(s.Rows) != 1 {
		t.Fatalf("expected recovery, got %+v", s)
	}
}

func TestFetchDuringDragIsParked(t *testing.T) {
	f := newFixture(t, testutil.Pending("A", "B")...)
	f.board.Start()
	f.lay()

	f.board.PointerDown(pt(10, 5))
	f.clock.Advance(time.Second)

	f.api.SetTasks(testutil.Pending("A", "B", "E"))
	f.board.Fetch()
	if got := rowIDs(f.board.Snapshot()); !reflect.DeepEqual(got, ids("A", "B")) {
		t.Fatalf("list rebuilt under drag: %v", got)
	}

	in := f.board.PointerCancel()
	if in.Kind != gesture.DragCancel {
		t.Fatalf("expected drag cancel, got %v", in.Kind)
	}
	if got := rowIDs(f.board.Snapshot()); !reflect.DeepEqual(got, ids("A", "B", "E")) {
		t.Fatalf("expected parked fetch applied, got %v", got)
	}
}

func TestSwipeCompletes(t *testing.T) {
	f := newFixture(t, testutil.Pending("A", "B")...)
	f.board.Start()
	f.lay()

	f.board.PointerDown(pt(150, 10))
	f.board.PointerMove(pt(100, 11))
	if s := f.board.Snapshot(); s.Rows[0].Offset != -50 {
		t.Fatalf("expected offset -50, got %v", s.Rows[0].Offset)
	}
	in := f.board.PointerUp(pt(40, 11))
	if in.Kind != gesture.CompleteSwipe || in.TaskID != "A" {
		t.Fatalf("expected swipe on A, got %+v", in)
	}
	if f.api.CallCount("Complete A") != 1 {
		t.Fatalf("expected complete request, got %v", f.api.Calls)
	}
	if s := f.board.Snapshot(); !s.Rows[0].Completing || s.Rows[0].Eligible {
		t.Fatalf("expected A completing, got %+v", s.Rows[0])
	}

	before := f.api.CallCount("Today")
	f.clock.Advance(349 * time.Millisecond)
	if f.api.CallCount("Today") != before {
		t.Fatalf("re-fetched too early")
	}
	f.clock.Advance(time.Millisecond)
	if got := rowIDs(f.board.Snapshot()); !reflect.DeepEqual(got, ids("B")) {
		t.Fatalf("expected A gone, got %v", got)
	}
}

func TestShortSwipeSnapsBack(t *testing.T) {
	f := newFixture(t, testutil.Pending("A")...)
	f.board.Start()
	f.lay()

	f.board.PointerDown(pt(150, 10))
	f.board.PointerMove(pt(60, 10))
	if in := f.board.PointerUp(pt(51, 10)); in.Kind != gesture.None {
		t.Fatalf("expected no intent, got %v", in.Kind)
	}
	if s := f.board.Snapshot(); s.Rows[0].Offset != 0 {
		t.Fatalf("expected snap back, got %v", s.Rows[0].Offset)
	}
	if f.api.CallCount("Complete A") != 0 {
		t.Fatalf("short swipe completed the task")
	}
}

func TestTapTogglesDetails(t *testing.T) {
	f := newFixture(t, testutil.Pending("A")...)
	f.board.Start()
	f.lay()

	f.board.PointerDown(pt(10, 10))
	f.board.PointerUp(pt(10, 10))
	if !f.board.Snapshot().Rows[0].Expanded {
		t.Fatalf("expected expanded")
	}
	f.board.PointerDown(pt(10, 10))
	f.board.PointerUp(pt(12, 9))
	if f.board.Snapshot().Rows[0].Expanded {
		t.Fatalf("expected collapsed")
	}
}

func TestFreeAreaScrolls(t *testing.T) {
	f := newFixture(t, testutil.Pending("A", "B")...)
	f.board.Start()
	f.board.SetLayout(Layout{
		Rects:    map[task.ID]geom.Rect{"A": {Top: 0, Height: 20}, "B": {Top: 20, Height: 20}},
		Content:  400,
		Viewport: 100,
	})

	f.board.PointerDown(pt(10, 90)) // below the rows
	f.board.PointerMove(pt(10, 80))
	f.board.PointerMove(pt(10, 60))
	if s := f.board.Snapshot(); s.Scroll != 30 {
		t.Fatalf("expected scroll 30, got %v", s.Scroll)
	}
	f.board.PointerUp(pt(10, 60))
}

func TestSleepTouchOnlyWakes(t *testing.T) {
	f := newFixture(t, testutil.Pending("A")...)
	f.board.Start()
	f.lay()

	f.clock.Advance(30 * time.Second)
	if f.board.Snapshot().Mode != power.IdleSleep {
		t.Fatalf("expected idle sleep")
	}
	f.board.PointerDown(pt(10, 10))
	if in := f.board.PointerUp(pt(10, 10)); in.Kind != gesture.None {
		t.Fatalf("wake touch was treated as %v", in.Kind)
	}
	s := f.board.Snapshot()
	if s.Mode != power.Active || s.Rows[0].Expanded {
		t.Fatalf("expected awake and untouched, got %+v", s)
	}
}

func TestFilterAndEmptyStates(t *testing.T) {
	daily := task.Task{ID: "R", Title: "Water plants", IsRecurring: true, RecurrenceType: task.RecurDays, RecurrenceValue: 1}
	f := newFixture(t, testutil.Pending("A")[0], daily)
	f.board.Start()

	f.board.SetFilter(FilterRecurring)
	if got := rowIDs(f.board.Snapshot()); !reflect.DeepEqual(got, ids("R")) {
		t.Fatalf("expected recurring only, got %v", got)
	}
	f.board.SetFilter(FilterRecurring)
	if f.board.Filter() != FilterAll {
		t.Fatalf("expected toggle back to all, got %v", f.board.Filter())
	}

	f.api.SetTasks([]task.Task{daily})
	f.board.Fetch()
	f.board.SetFilter(FilterOneTime)
	if s := f.board.Snapshot(); s.Empty != EmptyCategory {
		t.Fatalf("expected %q, got %q", EmptyCategory, s.Empty)
	}

	f.board.SetFilter(FilterAll)
	done := daily
	done.CompletedToday = true
	f.api.SetTasks([]task.Task{done})
	f.board.Fetch()
	if s := f.board.Snapshot(); s.Empty != EmptyAllDone {
		t.Fatalf("expected %q, got %q", EmptyAllDone, s.Empty)
	}

	f.api.SetTasks(nil)
	f.board.Fetch()
	if s := f.board.Snapshot(); s.Empty != EmptyNoTasks {
		t.Fatalf("expected %q, got %q", EmptyNoTasks, s.Empty)
	}
}

func TestMergeVisible(t *testing.T) {
	got := mergeVisible(ids("A", "x", "B", "y", "C"), ids("C", "A", "B"))
	if want := ids("C", "x", "A", "y", "B"); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestFailureLogsCarrySession(t *testing.T) {
	f := newFixture(t, testutil.Pending("A", "B", "C")...)
	var buf bytes.Buffer
	f.board.SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	f.api.CompleteErr = errors.New("offline")
	f.api.ReorderErr = errors.New("offline")
	f.board.Start()
	f.lay()

	f.board.PointerDown(pt(150, 10))
	f.board.PointerMove(pt(100, 11))
	swipe := f.board.PointerUp(pt(40, 11))
	if swipe.Kind != gesture.CompleteSwipe || swipe.SessionID == "" {
		t.Fatalf("expected swipe with a session, got %+v", swipe)
	}
	if !strings.Contains(buf.String(), "complete failed") || !strings.Contains(buf.String(), "session="+swipe.SessionID) {
		t.Fatalf("expected complete failure logged with session %s, got %q", swipe.SessionID, buf.String())
	}

	f.lay()
	f.board.PointerDown(pt(50, 50)) // C
	f.clock.Advance(500 * time.Millisecond)
	f.board.PointerMove(pt(50, 2))
	drag := f.board.PointerUp(pt(50, 2))
	if drag.Kind != gesture.DragCommit || drag.SessionID == swipe.SessionID {
		t.Fatalf("expected a commit in a new session, got %+v", drag)
	}
	if !strings.Contains(buf.String(), "reorder rejected") || !strings.Contains(buf.String(), "session="+drag.SessionID) {
		t.Fatalf("expected reorder failure logged with session %s, got %q", drag.SessionID, buf.String())
	}
}
