// Package complete provides the runner logic for marking tasks done today.
package complete

import (
	"context"
	"errors"

	"tableflip.dev/kiosk/pkg/printers"
	"tableflip.dev/kiosk/pkg/task"
	"tableflip.dev/kiosk/pkg/taskapi"
)

// Complete marks a task as completed for today.
type Complete struct {
	ID      task.ID
	API     taskapi.Service
	Printer printers.PrettyPrint
}

// Do completes the task and prints what is left for today.
func (n *Complete) Do(ctx context.Context) error {
	if n.API == nil {
		return errors.New("can not complete, no api")
	}
	if err := n.API.Complete(ctx, n.ID); err != nil {
		return err
	}

	tasks, err := n.API.Today(ctx)
	if err != nil {
		return err
	}
	var pending []task.Task
	for _, t := range tasks {
		if t.Pending() {
			pending = append(pending, t)
		}
	}
	n.Printer.TitleWithCount("Left today", len(pending))
	n.Printer.Tasks(pending...)
	return nil
}
