// Package reorder applies a new task order locally first and tells the
// server afterwards.
package reorder

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"tableflip.dev/kiosk/pkg/clock"
	"tableflip.dev/kiosk/pkg/loop"
	"tableflip.dev/kiosk/pkg/order"
	"tableflip.dev/kiosk/pkg/task"
	"tableflip.dev/kiosk/pkg/taskapi"
)

// List is the in-memory task list the coordinator rearranges.
type List interface {
	Tasks() []task.Task
	// SetTasks replaces the list and redraws it.
	SetTasks(tasks []task.Task)
}

// Reorderer sends a full order to the server.
type Reorderer interface {
	Reorder(ctx context.Context, ids []task.ID) error
}

// Coordinator runs optimistic reorders. All methods run on the event loop.
type Coordinator struct {
	Logger *slog.Logger

	list    List
	overlay *order.Overlay
	api     Reorderer
	exec    loop.Executor
	clock   clock.Clock
	refetch func()
}

// New returns a Coordinator. refetch is called on the loop when the server
// rejects an order; it must reload the list through the overlay.
func New(list List, overlay *order.Overlay, api Reorderer, exec loop.Executor, clk clock.Clock, refetch func()) *Coordinator {
	return &Coordinator{
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		list:    list,
		overlay: overlay,
		api:     api,
		exec:    exec,
		clock:   clk,
		refetch: refetch,
	}
}

// Reorder shows ids immediately, records them as today's order and then
// sends them to the server. A malformed order is rejected with no effect.
// A server failure triggers a re-fetch; the recorded order still applies
// to it, so the new order stays on screen for the rest of the day. attrs
// are added to the failure log.
func (c *Coordinator) Reorder(ids []task.ID, attrs ...any) error {
	if err := taskapi.CheckOrder(ids); err != nil {
		return fmt.Errorf("reorder: %w", err)
	}

	c.list.SetTasks(order.Sort(c.list.Tasks(), ids))
	c.overlay.RecordOrder(ids, c.clock.Now())

	log := c.Logger.With(attrs...)
	sent := append([]task.ID(nil), ids...)
	c.exec.Go(func(ctx context.Context) error {
		return c.api.Reorder(ctx, sent)
	}, func(err error) {
		if err == nil {
			return
		}
		log.Warn("reorder rejected, re-fetching", "count", len(sent), "err", err)
		if c.refetch != nil {
			c.refetch()
		}
	})
	return nil
}
