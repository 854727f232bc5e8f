// Package gesture classifies a single-pointer touch stream on one task
// row as a tap, a swipe-to-complete, a vertical scroll or a long-press
// drag.
//
// A session starts on pointer-down and ends with exactly one outcome on
// pointer-up or cancel. While undecided, the first move to leave the
// deadzone picks the axis; a hold timer that fires first promotes the
// session to a drag, and a dragging session stays a drag until it ends.
package gesture

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"

	"tableflip.dev/kiosk/pkg/clock"
	"tableflip.dev/kiosk/pkg/geom"
	"tableflip.dev/kiosk/pkg/task"
)

// Phase is where a session stands.
type Phase int

const (
	Undecided Phase = iota
	Swiping
	Scrolling
	Dragging
	Cancelled
)

func (p Phase) String() string {
	switch p {
	case Undecided:
		return "undecided"
	case Swiping:
		return "swiping"
	case Scrolling:
		return "scrolling"
	case Dragging:
		return "dragging"
	case Cancelled:
		return "cancelled"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// Kind is the outcome of a finished session.
type Kind int

const (
	// None is a pure scroll, a snapped-back swipe or a silent cancel.
	None Kind = iota
	Tap
	CompleteSwipe
	DragCommit
	DragCancel
)

func (k Kind) String() string {
	switch k {
	case None:
		return "none"
	case Tap:
		return "tap"
	case CompleteSwipe:
		return "complete-swipe"
	case DragCommit:
		return "drag-commit"
	case DragCancel:
		return "drag-cancel"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Intent is the single outcome emitted when a session ends.
type Intent struct {
	Kind      Kind
	TaskID    task.ID
	SessionID string
	// Order is the committed order for DragCommit.
	Order []task.ID
}

// Config holds the classification thresholds, in pointer units.
type Config struct {
	Hold           time.Duration
	Deadzone       float64
	SwipeThreshold float64
}

// DefaultConfig matches a finger on a ~800px touch panel.
func DefaultConfig() Config {
	return Config{
		Hold:           500 * time.Millisecond,
		Deadzone:       8,
		SwipeThreshold: 100,
	}
}

// Handler receives the side effects of in-flight sessions. All calls
// happen on the event loop.
type Handler interface {
	// BeginDrag is called when a session is promoted to a drag. An
	// error leaves the session undecided.
	BeginDrag(id task.ID, grab geom.Point) error
	// MoveDrag forwards every move of a dragging session.
	MoveDrag(y float64)
	// CommitDrag finishes the drag and returns the final order.
	CommitDrag() ([]task.ID, error)
	// CancelDrag restores the dragged item.
	CancelDrag()
	// ScrollBy scrolls the list content by dy.
	ScrollBy(dy float64)
	// SwipeOffset sets the row's horizontal offset; 0 snaps it back.
	SwipeOffset(id task.ID, dx float64)
}

// Session is the state of one pointer contact on one row.
type Session struct {
	ID     string
	TaskID task.ID
	Origin geom.Point
	Last   geom.Point
	Phase  Phase

	hold *clock.Timer
}

// Recognizer keeps a session table keyed by task id, so a re-rendered
// row finds its in-flight session again.
type Recognizer struct {
	Logger *slog.Logger

	cfg      Config
	clock    clock.Clock
	handler  Handler
	sessions map[task.ID]*Session
}

// New returns a Recognizer. The clock's AfterFunc callbacks must run on
// the event loop (see loop.BindClock).
func New(cfg Config, clk clock.Clock, h Handler) *Recognizer {
	return &Recognizer{
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		cfg:      cfg,
		clock:    clk,
		handler:  h,
		sessions: make(map[task.ID]*Session),
	}
}

// SetConfig swaps thresholds for sessions that start afterwards.
func (r *Recognizer) SetConfig(cfg Config) { r.cfg = cfg }

// Session returns a copy of the session on id.
func (r *Recognizer) Session(id task.ID) (Session, bool) {
	s, ok := r.sessions[id]
	if !ok {
		return Session{}, false
	}
	out := *s
	out.hold = nil
	return out, true
}

// Active reports whether any session is in flight.
func (r *Recognizer) Active() bool { return len(r.sessions) > 0 }

// Down starts a session on id at p. A leftover session on the same row
// is torn down first.
func (r *Recognizer) Down(id task.ID, p geom.Point) {
	if _, ok := r.sessions[id]; ok {
		r.Cancel(id)
	}
	s := &Session{
		ID:     uuid.NewString(),
		TaskID: id,
		Origin: p,
		Last:   p,
		Phase:  Undecided,
	}
	r.sessions[id] = s
	s.hold = r.clock.AfterFunc(r.cfg.Hold, func() { r.holdElapsed(s) })
	r.Logger.Debug("gesture down", "session", s.ID, "task", id)
}

// Promote turns an undecided session into a drag without waiting for
// the hold timer.
func (r *Recognizer) Promote(id task.ID) {
	if s, ok := r.sessions[id]; ok {
		r.holdElapsed(s)
	}
}

func (r *Recognizer) holdElapsed(s *Session) {
	// A stale timer may still be delivered after the session moved on.
	if r.sessions[s.TaskID] != s || s.Phase != Undecided {
		return
	}
	s.hold.Stop()
	if err := r.handler.BeginDrag(s.TaskID, s.Last); err != nil {
		r.Logger.Warn("drag not started", "session", s.ID, "task", s.TaskID, "err", err)
		return
	}
	s.Phase = Dragging
	r.Logger.Debug("gesture dragging", "session", s.ID, "task", s.TaskID)
}

// Move feeds a pointer move on id.
func (r *Recognizer) Move(id task.ID, p geom.Point) {
	s, ok := r.sessions[id]
	if !ok {
		return
	}
	if s.Phase == Dragging {
		s.Last = p
		r.handler.MoveDrag(p.Y)
		return
	}

	d := p.Sub(s.Origin)
	if s.Phase == Undecided && (math.Abs(d.X) > r.cfg.Deadzone || math.Abs(d.Y) > r.cfg.Deadzone) {
		s.hold.Stop()
		if math.Abs(d.X) > math.Abs(d.Y) {
			s.Phase = Swiping
		} else {
			s.Phase = Scrolling
		}
		r.Logger.Debug("gesture decided", "session", s.ID, "phase", s.Phase.String())
	}

	switch s.Phase {
	case Scrolling:
		r.handler.ScrollBy(-(p.Y - s.Last.Y))
	case Swiping:
		r.handler.SwipeOffset(id, math.Min(d.X, 0))
	}
	s.Last = p
}

// Up ends the session on id and returns its outcome.
func (r *Recognizer) Up(id task.ID) Intent {
	s, ok := r.sessions[id]
	if !ok {
		return Intent{Kind: None, TaskID: id}
	}
	r.end(s)
	out := Intent{Kind: None, TaskID: id, SessionID: s.ID}

	switch s.Phase {
	case Dragging:
		order, err := r.handler.CommitDrag()
		if err != nil {
			r.Logger.Warn("drag commit failed", "session", s.ID, "err", err)
			out.Kind = DragCancel
			break
		}
		out.Kind = DragCommit
		out.Order = order
	case Swiping:
		if s.Last.X-s.Origin.X <= -r.cfg.SwipeThreshold {
			out.Kind = CompleteSwipe
		} else {
			r.handler.SwipeOffset(id, 0)
		}
	case Undecided:
		out.Kind = Tap
	}
	r.Logger.Debug("gesture up", "session", s.ID, "intent", out.Kind.String())
	return out
}

// Cancel aborts the session on id. A drag is cancelled; anything else
// snaps back silently.
func (r *Recognizer) Cancel(id task.ID) Intent {
	s, ok := r.sessions[id]
	if !ok {
		return Intent{Kind: None, TaskID: id}
	}
	r.end(s)
	out := Intent{Kind: None, TaskID: id, SessionID: s.ID}
	switch s.Phase {
	case Dragging:
		r.handler.CancelDrag()
		out.Kind = DragCancel
	case Swiping:
		r.handler.SwipeOffset(id, 0)
	}
	s.Phase = Cancelled
	return out
}

// CancelAll aborts every session.
func (r *Recognizer) CancelAll() []Intent {
	var out []Intent
	for id := range r.sessions {
		out = append(out, r.Cancel(id))
	}
	return out
}

func (r *Recognizer) end(s *Session) {
	s.hold.Stop()
	delete(r.sessions, s.TaskID)
}
