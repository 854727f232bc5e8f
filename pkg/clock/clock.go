// Package clock abstracts wall-clock time and one-shot timers so the
// kiosk state machines can be driven deterministically in tests.
package clock

import "time"

// Clock supplies the current time and schedules callbacks.
//
// Components that arm timers (hold-to-drag, idle deadline, night check,
// refresh) take a Clock instead of calling the time package directly.
type Clock interface {
	// Now returns the current wall-clock time.
	Now() time.Time

	// AfterFunc calls f once d has elapsed. The returned Timer cancels
	// the pending call. A non-positive d fires immediately.
	AfterFunc(d time.Duration, f func()) *Timer
}

// Timer is a pending AfterFunc call.
type Timer struct {
	stopFunc func() bool
}

// Stop prevents the Timer from firing. It returns true if the call
// stopped the timer and false if it already fired or was stopped.
func (t *Timer) Stop() bool {
	if t == nil || t.stopFunc == nil {
		return false
	}
	return t.stopFunc()
}

// NewTimer wraps a stop function into a Timer. Wrappers that forward
// AfterFunc to another Clock use it to hand back their own handle.
func NewTimer(stop func() bool) *Timer {
	return &Timer{stopFunc: stop}
}

// Real returns a Clock backed by the standard time package.
func Real() Clock { return realClock{} }

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func (realClock) AfterFunc(d time.Duration, f func()) *Timer {
	timer := time.AfterFunc(d, f)
	return &Timer{stopFunc: timer.Stop}
}
