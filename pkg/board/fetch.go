package board

import (
	"context"
	"log/slog"

	"tableflip.dev/kiosk/pkg/refresh"
	"tableflip.dev/kiosk/pkg/task"
)

// Fetch requests today's tasks. The result is merged with the local order
// when it arrives; during a drag it waits until the drag ends.
func (b *Board) Fetch() {
	gen := b.fetchGen
	var tasks []task.Task
	b.exec.Go(func(ctx context.Context) error {
		var err error
		tasks, err = b.api.Today(ctx)
		return err
	}, func(err error) {
		b.fetched(gen, tasks, err)
	})
}

func (b *Board) fetched(gen int, tasks []task.Task, err error) {
	if gen != b.fetchGen {
		// Issued before a reload.
		return
	}
	if err != nil {
		b.lastErr = err
		failures := b.policy.Failures() + 1
		b.Logger.Warn("fetch failed", "failures", failures, "err", err)
		if b.policy.Failure() == refresh.Reload {
			b.Reload()
			return
		}
		b.changed()
		return
	}
	b.policy.Success()
	b.lastErr = nil
	if b.drag.Dragging() {
		b.parked = tasks
		b.hasParked = true
		return
	}
	b.install(tasks)
}

func (b *Board) unpark() {
	if !b.hasParked || b.drag.Dragging() {
		return
	}
	tasks := b.parked
	b.parked, b.hasParked = nil, false
	b.install(tasks)
}

func (b *Board) install(tasks []task.Task) {
	b.tasks = b.overlay.Apply(tasks, b.clock.Now())
	b.loaded = true

	present := make(map[task.ID]task.Task, len(b.tasks))
	for _, t := range b.tasks {
		present[t.ID] = t
	}
	for id := range b.expanded {
		if _, ok := present[id]; !ok {
			delete(b.expanded, id)
		}
	}
	for id := range b.completing {
		if t, ok := present[id]; !ok || !t.Pending() {
			delete(b.completing, id)
		}
	}
	b.changed()
}

// Reload throws away all view state and starts over as if freshly
// launched: gestures and drag are cancelled, the list, filter and
// expansions are dropped, the power machine and failure counter reset,
// and today's tasks are fetched again.
func (b *Board) Reload() {
	b.reloads++
	b.fetchGen++
	b.Logger.Warn("reloading", "reloads", b.reloads)

	b.recognizer.CancelAll()
	b.drag.Cancel()
	b.contact = contact{}
	b.free.Up()
	b.stopComplete()

	b.tasks = nil
	b.loaded = false
	b.filter = FilterAll
	b.scroll = 0
	b.parked, b.hasParked = nil, false
	b.expanded = make(map[task.ID]bool)
	b.offsets = make(map[task.ID]float64)
	b.completing = make(map[task.ID]bool)

	b.policy.Reset()
	b.power.Reset()
	b.fetcher.Start()
	b.changed()
	b.Fetch()
}

// Complete marks id done for today and re-fetches shortly after the
// server answers.
func (b *Board) Complete(id task.ID) {
	b.complete(id, b.Logger)
}

func (b *Board) complete(id task.ID, log *slog.Logger) {
	b.completing[id] = true
	delete(b.offsets, id)
	b.changed()

	b.exec.Go(func(ctx context.Context) error {
		return b.api.Complete(ctx, id)
	}, func(err error) {
		if err != nil {
			log.Warn("complete failed", "task", id, "err", err)
			b.lastErr = err
			delete(b.completing, id)
		}
		b.scheduleRefetch()
		b.changed()
	})
}

func (b *Board) scheduleRefetch() {
	b.stopComplete()
	gen := b.completeGen
	b.completeTimer = b.clock.AfterFunc(b.cfg.CompleteDelay, func() {
		if gen != b.completeGen {
			return
		}
		b.Fetch()
	})
}

func (b *Board) stopComplete() {
	b.completeGen++
	b.completeTimer.Stop()
	b.completeTimer = nil
}

// OrderChanged re-reads the stored order, after another process edited it.
func (b *Board) OrderChanged() {
	b.Fetch()
}
