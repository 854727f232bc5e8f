// Package reorder sends a full order from the command line.
package reorder

import (
	"context"
	"errors"
	"time"

	"tableflip.dev/kiosk/pkg/order"
	"tableflip.dev/kiosk/pkg/printers"
	"tableflip.dev/kiosk/pkg/task"
	"tableflip.dev/kiosk/pkg/taskapi"
)

// Reorder sends IDs as the new order. With Order set it is recorded as
// today's local order too, so a running kiosk picks it up over its own
// earlier record.
type Reorder struct {
	IDs   []task.ID
	Order order.RecordStore
	Now   time.Time

	API     taskapi.Service
	Printer printers.PrettyPrint
}

func (n *Reorder) Do(ctx context.Context) error {
	if n.API == nil {
		return errors.New("can not reorder, no api")
	}
	if err := taskapi.CheckOrder(n.IDs); err != nil {
		return err
	}
	if err := n.API.Reorder(ctx, n.IDs); err != nil {
		return err
	}

	now := n.Now
	if now.IsZero() {
		now = time.Now()
	}
	tasks, err := n.API.Today(ctx)
	if err != nil {
		return err
	}
	if n.Order != nil {
		o := order.NewOverlay(n.Order)
		o.RecordOrder(n.IDs, now)
		tasks = o.Apply(tasks, now)
	}
	n.Printer.TitleWithCount("Today", len(tasks))
	n.Printer.Tasks(tasks...)
	return nil
}
