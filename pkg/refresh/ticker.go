package refresh

import (
	"time"

	"tableflip.dev/kiosk/pkg/clock"
)

// Ticker calls fn every interval on clk. Re-arming stops any pending tick,
// so there is never more than one.
type Ticker struct {
	clock    clock.Clock
	interval time.Duration
	fn       func()

	timer *clock.Timer
	gen   int
}

// NewTicker returns a stopped Ticker.
func NewTicker(clk clock.Clock, interval time.Duration, fn func()) *Ticker {
	return &Ticker{clock: clk, interval: interval, fn: fn}
}

// Start (re)arms the next tick one interval from now.
func (t *Ticker) Start() {
	t.Stop()
	gen := t.gen
	t.timer = t.clock.AfterFunc(t.interval, func() {
		if gen != t.gen {
			return
		}
		t.Start()
		t.fn()
	})
}

// Stop cancels the pending tick.
func (t *Ticker) Stop() {
	t.gen++
	t.timer.Stop()
	t.timer = nil
}

// SetInterval changes the period and re-arms.
func (t *Ticker) SetInterval(d time.Duration) {
	t.interval = d
	t.Start()
}
