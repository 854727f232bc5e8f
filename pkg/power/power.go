// Package power drives the display between active, idle sleep and the
// night blackout.
//
// Night is decided by wall-clock hour alone and wins over idle sleep:
// while the night window is open no idle deadline is armed, and leaving
// it always lands in Active with a fresh deadline. Hooks fire only on
// real edges, never on a tick that changes nothing.
package power

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"tableflip.dev/kiosk/pkg/clock"
	"tableflip.dev/kiosk/pkg/loop"
)

// Mode is the display power state.
type Mode int

const (
	Active Mode = iota
	IdleSleep
	NightBlackout
)

func (m Mode) String() string {
	switch m {
	case Active:
		return "active"
	case IdleSleep:
		return "idle-sleep"
	case NightBlackout:
		return "night-blackout"
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// NightWindow is the range of wall-clock hours [Start, End) that count
// as night. Start > End spans midnight; Start == End disables night.
type NightWindow struct {
	Start int
	End   int
}

// IsNight reports whether hour falls in the window.
func (w NightWindow) IsNight(hour int) bool {
	switch {
	case w.Start == w.End:
		return false
	case w.Start > w.End:
		return hour >= w.Start || hour < w.End
	default:
		return hour >= w.Start && hour < w.End
	}
}

// NextChange returns the next hour boundary after now where the window
// flips between night and day. It is zero when the window never changes.
func (w NightWindow) NextChange(now time.Time) time.Time {
	if w.Start == w.End {
		return time.Time{}
	}
	night := w.IsNight(now.Hour())
	t := time.Date(now.Year(), now.Month(), now.Day(), now.Hour(), 0, 0, 0, now.Location())
	for i := 0; i < 24; i++ {
		t = t.Add(time.Hour)
		if w.IsNight(t.Hour()) != night {
			return t
		}
	}
	return time.Time{}
}

func (w NightWindow) String() string {
	return fmt.Sprintf("%02d:00-%02d:00", w.Start, w.End)
}

// Hooks switch the physical display. Calls are best effort.
type Hooks interface {
	ScreenOn(ctx context.Context) error
	ScreenOff(ctx context.Context) error
	BacklightOn(ctx context.Context) error
	BacklightOff(ctx context.Context) error
}

// Config holds the machine's timing.
type Config struct {
	IdleTimeout   time.Duration
	CheckInterval time.Duration
	Window        NightWindow
}

// DefaultConfig sleeps after 30s and blacks out from 23:00 to 05:00.
func DefaultConfig() Config {
	return Config{
		IdleTimeout:   30 * time.Second,
		CheckInterval: 30 * time.Second,
		Window:        NightWindow{Start: 23, End: 5},
	}
}

// Machine owns the power mode and its two timers. All methods must be
// called on the event loop, and the clock's callbacks must be delivered
// there too.
type Machine struct {
	Logger *slog.Logger
	// OnChange, if set, is called after every mode transition.
	OnChange func(Mode)

	cfg   Config
	clock clock.Clock
	exec  loop.Executor
	hooks Hooks

	mode     Mode
	deadline time.Time
	running  bool

	idle    *clock.Timer
	idleGen int
	tick    *clock.Timer
	tickGen int

	// backlightOff is set while the backlight hook left the panel dark.
	backlightOff bool
}

// New returns a stopped Machine in Active mode. hooks may be nil.
func New(cfg Config, clk clock.Clock, exec loop.Executor, hooks Hooks) *Machine {
	return &Machine{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		cfg:    cfg,
		clock:  clk,
		exec:   exec,
		hooks:  hooks,
		mode:   Active,
	}
}

// Mode returns the current mode.
func (m *Machine) Mode() Mode { return m.mode }

// Deadline returns when idle sleep is due; zero when no deadline is armed.
func (m *Machine) Deadline() time.Time { return m.deadline }

// Window returns the night window in use.
func (m *Machine) Window() NightWindow { return m.cfg.Window }

// Start checks the night window immediately, arms the idle deadline and
// starts the periodic night check.
func (m *Machine) Start() {
	m.running = true
	m.Tick()
	if m.mode == Active {
		m.armIdle()
	}
	m.scheduleTick()
}

// Stop cancels both timers. The mode is kept.
func (m *Machine) Stop() {
	m.running = false
	m.stopIdle()
	m.tickGen++
	m.tick.Stop()
}

// Reset returns to a clean Active state as after Start: any sleep is
// woken, the night window is re-checked and a fresh deadline armed.
func (m *Machine) Reset() {
	if m.mode == IdleSleep {
		m.Wake()
	}
	m.Tick()
	if m.mode == Active {
		m.armIdle()
	}
}

// Tick compares the wall clock with the night window and enters or
// leaves NightBlackout on an edge. Other ticks do nothing.
func (m *Machine) Tick() {
	night := m.cfg.Window.IsNight(m.clock.Now().Hour())
	switch {
	case night && m.mode != NightBlackout:
		m.enterNight()
	case !night && m.mode == NightBlackout:
		m.leaveNight()
	}
}

// Activity records user input. Only Active mode pushes the deadline out;
// a sleeping or blacked-out display is left alone.
func (m *Machine) Activity() {
	if m.mode != Active || !m.running {
		return
	}
	m.armIdle()
}

// Wake leaves IdleSleep. It reports whether the display was asleep.
func (m *Machine) Wake() bool {
	if m.mode != IdleSleep {
		return false
	}
	m.backlightOn()
	m.set(Active)
	if m.running {
		m.armIdle()
	}
	return true
}

// SetNightWindow swaps the window and re-checks it immediately.
func (m *Machine) SetNightWindow(w NightWindow) {
	m.cfg.Window = w
	m.Tick()
}

// SetIdleTimeout changes the idle duration. An Active display gets a fresh
// deadline with the new duration.
func (m *Machine) SetIdleTimeout(d time.Duration) {
	m.cfg.IdleTimeout = d
	if m.mode == Active && m.running {
		m.armIdle()
	}
}

func (m *Machine) enterNight() {
	m.stopIdle()
	m.set(NightBlackout)
	m.fire("ScreenOff", m.hookScreenOff)
}

// leaveNight turns the screen back on. If idle sleep switched the
// backlight off before night began, BacklightOn fires as well; with the
// backlight untouched only ScreenOn fires.
func (m *Machine) leaveNight() {
	m.fire("ScreenOn", m.hookScreenOn)
	m.backlightOn()
	m.set(Active)
	if m.running {
		m.armIdle()
	}
}

func (m *Machine) idleElapsed(gen int) {
	// A stale firing may still be delivered after a re-arm.
	if gen != m.idleGen || m.mode != Active {
		return
	}
	m.deadline = time.Time{}
	if m.cfg.Window.IsNight(m.clock.Now().Hour()) {
		m.enterNight()
		return
	}
	m.set(IdleSleep)
	m.backlightOff = true
	m.fire("BacklightOff", m.hookBacklightOff)
}

func (m *Machine) armIdle() {
	m.stopIdle()
	gen := m.idleGen
	m.deadline = m.clock.Now().Add(m.cfg.IdleTimeout)
	m.idle = m.clock.AfterFunc(m.cfg.IdleTimeout, func() { m.idleElapsed(gen) })
}

func (m *Machine) stopIdle() {
	m.idleGen++
	m.idle.Stop()
	m.idle = nil
	m.deadline = time.Time{}
}

func (m *Machine) scheduleTick() {
	m.tickGen++
	m.tick.Stop()
	gen := m.tickGen
	m.tick = m.clock.AfterFunc(m.cfg.CheckInterval, func() {
		if gen != m.tickGen || !m.running {
			return
		}
		m.Tick()
		m.scheduleTick()
	})
}

func (m *Machine) backlightOn() {
	if !m.backlightOff {
		return
	}
	m.backlightOff = false
	m.fire("BacklightOn", m.hookBacklightOn)
}

func (m *Machine) set(mode Mode) {
	if mode == m.mode {
		return
	}
	from := m.mode
	m.mode = mode
	m.Logger.Info("power mode", "from", from.String(), "mode", mode.String())
	if m.OnChange != nil {
		m.OnChange(mode)
	}
}

func (m *Machine) fire(name string, hook func(context.Context) error) {
	if m.hooks == nil || m.exec == nil {
		return
	}
	m.exec.Go(hook, func(err error) {
		if err != nil {
			m.Logger.Warn("power hook failed", "hook", name, "err", err)
		}
	})
}

func (m *Machine) hookScreenOn(ctx context.Context) error     { return m.hooks.ScreenOn(ctx) }
func (m *Machine) hookScreenOff(ctx context.Context) error    { return m.hooks.ScreenOff(ctx) }
func (m *Machine) hookBacklightOn(ctx context.Context) error  { return m.hooks.BacklightOn(ctx) }
func (m *Machine) hookBacklightOff(ctx context.Context) error { return m.hooks.BacklightOff(ctx) }
