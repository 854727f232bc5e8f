// Package board is the kiosk core: it owns today's task list and routes
// pointer input, fetches, reorders and power changes through the state
// machines. Everything here runs on one event loop; blocking work goes
// through a loop.Executor and timers through a loop-bound clock.
package board

import (
	"io"
	"log/slog"
	"time"

	"tableflip.dev/kiosk/pkg/clock"
	"tableflip.dev/kiosk/pkg/drag"
	"tableflip.dev/kiosk/pkg/geom"
	"tableflip.dev/kiosk/pkg/gesture"
	"tableflip.dev/kiosk/pkg/loop"
	"tableflip.dev/kiosk/pkg/order"
	"tableflip.dev/kiosk/pkg/power"
	"tableflip.dev/kiosk/pkg/refresh"
	"tableflip.dev/kiosk/pkg/reorder"
	"tableflip.dev/kiosk/pkg/task"
	"tableflip.dev/kiosk/pkg/taskapi"
)

// Config is the board's timing and thresholds.
type Config struct {
	RefreshInterval time.Duration
	CompleteDelay   time.Duration
	ClockInterval   time.Duration
	MaxFailures     int
	ShowCompleted   bool
	// Gap is the vertical space between rows, in pointer units.
	Gap float64

	Gesture gesture.Config
	Power   power.Config
}

// DefaultConfig mirrors the stock kiosk settings.
func DefaultConfig() Config {
	return Config{
		RefreshInterval: 30 * time.Second,
		CompleteDelay:   350 * time.Millisecond,
		ClockInterval:   10 * time.Second,
		MaxFailures:     3,
		Gesture:         gesture.DefaultConfig(),
		Power:           power.DefaultConfig(),
	}
}

// Deps are the board's collaborators.
type Deps struct {
	API   taskapi.Service
	Hooks power.Hooks
	Store order.RecordStore
	// Clock must deliver AfterFunc callbacks on the loop.
	Clock clock.Clock
	Exec  loop.Executor
}

// Layout is where the renderer placed the visible rows, in list content
// coordinates (pointer units, 0 at the top of the list).
type Layout struct {
	Rects    map[task.ID]geom.Rect
	Content  float64
	Viewport float64
}

// Board is the kiosk core.
type Board struct {
	Logger *slog.Logger
	// OnChange is called whenever the snapshot may have changed.
	OnChange func()

	cfg   Config
	api   taskapi.Service
	clock clock.Clock
	exec  loop.Executor

	overlay    *order.Overlay
	power      *power.Machine
	recognizer *gesture.Recognizer
	drag       *drag.Engine
	coord      *reorder.Coordinator
	policy     *refresh.Policy
	fetcher    *refresh.Ticker
	header     *refresh.Ticker

	tasks      []task.Task
	loaded     bool
	lastErr    error
	filter     Filter
	expanded   map[task.ID]bool
	offsets    map[task.ID]float64
	completing map[task.ID]bool
	scroll     float64
	layout     Layout

	// parked holds a fetch result that arrived during a drag.
	parked    []task.Task
	hasParked bool
	fetchGen  int

	completeTimer *clock.Timer
	completeGen   int

	contact contact
	free    gesture.ScrollTracker
	reloads int
}

// New wires a Board. It does nothing until Start.
func New(cfg Config, deps Deps) *Board {
	b := &Board{
		cfg:        cfg,
		api:        deps.API,
		clock:      deps.Clock,
		exec:       deps.Exec,
		overlay:    order.NewOverlay(deps.Store),
		drag:       &drag.Engine{Gap: cfg.Gap},
		policy:     refresh.NewPolicy(cfg.MaxFailures),
		expanded:   make(map[task.ID]bool),
		offsets:    make(map[task.ID]float64),
		completing: make(map[task.ID]bool),
		free:       gesture.ScrollTracker{Deadzone: cfg.Gesture.Deadzone},
	}
	b.power = power.New(cfg.Power, deps.Clock, deps.Exec, deps.Hooks)
	b.power.OnChange = func(power.Mode) { b.changed() }
	b.recognizer = gesture.New(cfg.Gesture, deps.Clock, (*handler)(b))
	b.coord = reorder.New((*list)(b), b.overlay, deps.API, deps.Exec, deps.Clock, b.Fetch)
	b.fetcher = refresh.NewTicker(deps.Clock, cfg.RefreshInterval, b.Fetch)
	b.header = refresh.NewTicker(deps.Clock, cfg.ClockInterval, b.changed)
	b.SetLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	return b
}

// SetLogger replaces the logger of the board and its state machines.
func (b *Board) SetLogger(l *slog.Logger) {
	b.Logger = l
	b.overlay.Logger = l.With("component", "order")
	b.power.Logger = l.With("component", "power")
	b.recognizer.Logger = l.With("component", "gesture")
	b.coord.Logger = l.With("component", "reorder")
}

// Start arms the power machine and the periodic timers and fetches today's
// tasks.
func (b *Board) Start() {
	b.power.Start()
	b.fetcher.Start()
	b.header.Start()
	b.Fetch()
}

// Stop cancels every timer. Outstanding network calls still complete.
func (b *Board) Stop() {
	b.power.Stop()
	b.fetcher.Stop()
	b.header.Stop()
	b.stopComplete()
}

// ApplyConfig swaps settings while running. Gestures already in flight keep
// their thresholds.
func (b *Board) ApplyConfig(cfg Config) {
	old := b.cfg
	b.cfg = cfg
	b.recognizer.SetConfig(cfg.Gesture)
	b.free.Deadzone = cfg.Gesture.Deadzone
	b.drag.Gap = cfg.Gap
	b.policy.Max = cfg.MaxFailures
	if cfg.Power.Window != old.Power.Window {
		b.power.SetNightWindow(cfg.Power.Window)
	}
	if cfg.Power.IdleTimeout != old.Power.IdleTimeout {
		b.power.SetIdleTimeout(cfg.Power.IdleTimeout)
	}
	if cfg.RefreshInterval != old.RefreshInterval {
		b.fetcher.SetInterval(cfg.RefreshInterval)
	}
	b.Logger.Info("config applied", "night", cfg.Power.Window.String(), "idle", cfg.Power.IdleTimeout)
	b.changed()
}

// Power exposes the power machine, for wake keys and tests.
func (b *Board) Power() *power.Machine { return b.power }

// Reloads counts full reloads since New.
func (b *Board) Reloads() int { return b.reloads }

// SetLayout records where the rows were drawn.
func (b *Board) SetLayout(l Layout) {
	b.layout = l
	b.scroll = clampScroll(b.scroll, l)
}

// SetFilter picks a filter from the filter bar.
func (b *Board) SetFilter(f Filter) {
	if b.drag.Dragging() {
		return
	}
	next := b.filter.Toggle(f)
	if next != b.filter {
		b.filter = next
		b.scroll = 0
	}
	b.changed()
}

// Filter is the active filter.
func (b *Board) Filter() Filter { return b.filter }

func (b *Board) changed() {
	if b.OnChange != nil {
		b.OnChange()
	}
}

func clampScroll(s float64, l Layout) float64 {
	limit := l.Content - l.Viewport
	if limit < 0 {
		limit = 0
	}
	switch {
	case s < 0:
		return 0
	case s > limit:
		return limit
	}
	return s
}

// list is the board as seen by the reorder coordinator.
type list Board

func (l *list) Tasks() []task.Task { return l.tasks }

func (l *list) SetTasks(tasks []task.Task) {
	l.tasks = tasks
	(*Board)(l).changed()
}
