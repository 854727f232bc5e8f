// Package loop is the single-threaded event plumbing shared by the kiosk
// state machines. Handlers run one at a time on the loop; network calls
// and timers complete off-loop and are posted back.
package loop

import (
	"context"
	"time"

	"tableflip.dev/kiosk/pkg/clock"
)

// Poster schedules fn to run on the event loop.
type Poster interface {
	Post(fn func())
}

// PostFunc adapts a function to Poster.
type PostFunc func(fn func())

// Post implements Poster.
func (p PostFunc) Post(fn func()) { p(fn) }

// Executor runs blocking work away from the loop and delivers the
// outcome back on it.
type Executor interface {
	// Go runs work off-loop. done, if non-nil, is posted to the loop
	// with work's error once it returns.
	Go(work func(ctx context.Context) error, done func(err error))
}

// NewExecutor returns an Executor that runs work on its own goroutine
// and posts completions through p. Work receives ctx.
func NewExecutor(ctx context.Context, p Poster) Executor {
	return &goExecutor{ctx: ctx, poster: p}
}

type goExecutor struct {
	ctx    context.Context
	poster Poster
}

func (e *goExecutor) Go(work func(ctx context.Context) error, done func(err error)) {
	go func() {
		err := work(e.ctx)
		if done != nil {
			e.poster.Post(func() { done(err) })
		}
	}()
}

// BindClock returns a Clock whose AfterFunc callbacks are posted to the
// loop instead of running on the timer goroutine.
//
// A callback may still be delivered after Stop if it was already posted;
// owners guard against that with generation checks.
func BindClock(c clock.Clock, p Poster) clock.Clock {
	return &boundClock{inner: c, poster: p}
}

type boundClock struct {
	inner  clock.Clock
	poster Poster
}

func (b *boundClock) Now() time.Time { return b.inner.Now() }

func (b *boundClock) AfterFunc(d time.Duration, f func()) *clock.Timer {
	return b.inner.AfterFunc(d, func() { b.poster.Post(f) })
}
