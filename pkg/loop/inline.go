package loop

import "context"

// Inline is a Poster and Executor that runs everything synchronously on
// the caller's goroutine. Tests use it to observe async outcomes without
// waiting.
type Inline struct {
	// Ctx is passed to work; nil means context.Background().
	Ctx context.Context
}

// Post runs fn immediately.
func (Inline) Post(fn func()) { fn() }

// Go runs work and then done.
func (i Inline) Go(work func(ctx context.Context) error, done func(err error)) {
	ctx := i.Ctx
	if ctx == nil {
		ctx = context.Background()
	}
	err := work(ctx)
	if done != nil {
		done(err)
	}
}

// Queue collects posted functions until Drain is called. It lets tests
// hold network completions back to interleave them with other events.
type Queue struct {
	pending []func()
	Ctx     context.Context
}

// Post enqueues fn.
func (q *Queue) Post(fn func()) { q.pending = append(q.pending, fn) }

// Go runs work immediately and queues done.
func (q *Queue) Go(work func(ctx context.Context) error, done func(err error)) {
	ctx := q.Ctx
	if ctx == nil {
		ctx = context.Background()
	}
	err := work(ctx)
	if done != nil {
		q.Post(func() { done(err) })
	}
}

// Len reports queued functions.
func (q *Queue) Len() int { return len(q.pending) }

// Drain runs queued functions in order, including any they enqueue.
func (q *Queue) Drain() {
	for len(q.pending) > 0 {
		fn := q.pending[0]
		q.pending = q.pending[1:]
		fn()
	}
}
