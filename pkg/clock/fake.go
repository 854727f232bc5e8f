package clock

import (
	"sort"
	"sync"
	"time"
)

// Fake returns a FakeClock set to initial. Time stands still until
// Advance or Set is called.
func Fake(initial time.Time) *FakeClock {
	return &FakeClock{current: initial}
}

// FakeClock is a deterministic Clock. AfterFunc callbacks run
// synchronously inside Advance, in deadline order. Callbacks may arm
// new timers; those fire in the same Advance if their deadline is
// reached.
type FakeClock struct {
	mu      sync.Mutex
	current time.Time
	waiters []*fakeWaiter
	seq     int
}

type fakeWaiter struct {
	deadline time.Time
	seq      int
	callback func()
	stopped  bool
	fired    bool
}

// Now returns the current fake time.
func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// AfterFunc registers f to run once the clock reaches now+d. If d <= 0
// f runs before AfterFunc returns.
func (c *FakeClock) AfterFunc(d time.Duration, f func()) *Timer {
	if d <= 0 {
		f()
		return &Timer{stopFunc: func() bool { return false }}
	}

	c.mu.Lock()
	c.seq++
	waiter := &fakeWaiter{
		deadline: c.current.Add(d),
		seq:      c.seq,
		callback: f,
	}
	c.waiters = append(c.waiters, waiter)
	c.mu.Unlock()

	return &Timer{stopFunc: func() bool {
		c.mu.Lock()
		defer c.mu.Unlock()
		if waiter.stopped || waiter.fired {
			return false
		}
		waiter.stopped = true
		return true
	}}
}

// Pending reports how many timers are armed and not yet fired.
func (c *FakeClock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, w := range c.waiters {
		if !w.stopped && !w.fired {
			n++
		}
	}
	return n
}

// Advance moves the clock forward by d, firing every timer whose
// deadline is reached. Each callback observes Now() equal to its own
// deadline.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.current.Add(d)
	c.mu.Unlock()
	c.runUntil(target)
}

// Set jumps the clock to t, firing every timer whose deadline is at or
// before t. Moving backwards fires nothing.
func (c *FakeClock) Set(t time.Time) {
	c.mu.Lock()
	if t.Before(c.current) {
		c.current = t
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()
	c.runUntil(t)
}

func (c *FakeClock) runUntil(target time.Time) {
	for {
		waiter := c.nextExpired(target)
		if waiter == nil {
			break
		}
		waiter.callback()
	}
	c.mu.Lock()
	c.current = target
	c.mu.Unlock()
}

// nextExpired pops the earliest live waiter due at or before target and
// moves the clock to its deadline.
func (c *FakeClock) nextExpired(target time.Time) *fakeWaiter {
	c.mu.Lock()
	defer c.mu.Unlock()

	live := c.waiters[:0]
	for _, w := range c.waiters {
		if !w.stopped && !w.fired {
			live = append(live, w)
		}
	}
	c.waiters = live

	sort.SliceStable(c.waiters, func(i, j int) bool {
		if c.waiters[i].deadline.Equal(c.waiters[j].deadline) {
			return c.waiters[i].seq < c.waiters[j].seq
		}
		return c.waiters[i].deadline.Before(c.waiters[j].deadline)
	})
	if len(c.waiters) == 0 || c.waiters[0].deadline.After(target) {
		return nil
	}
	w := c.waiters[0]
	w.fired = true
	if w.deadline.After(c.current) {
		c.current = w.deadline
	}
	return w
}
