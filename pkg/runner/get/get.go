// Package get lists tasks from the API.
package get

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tableflip.dev/kiosk/pkg/order"
	"tableflip.dev/kiosk/pkg/printers"
	"tableflip.dev/kiosk/pkg/task"
	"tableflip.dev/kiosk/pkg/taskapi"
)

// Get prints today's tasks, or every task when All is set.
type Get struct {
	API    taskapi.Service
	All    bool
	ShowID bool

	// Order, when set, sorts today's list the way the kiosk shows it.
	Order order.RecordStore
	Now   time.Time

	Printer printers.PrettyPrint
}

func (n *Get) Do(ctx context.Context) error {
	if n.API == nil {
		return errors.New("can not list, no api")
	}
	n.Printer.ShowID = n.ShowID

	if n.All {
		tasks, err := n.API.All(ctx)
		if err != nil {
			return err
		}
		n.Printer.TitleWithCount("All tasks", len(tasks))
		n.Printer.Tasks(tasks...)
		return nil
	}

	tasks, err := n.API.Today(ctx)
	if err != nil {
		return err
	}
	now := n.Now
	if now.IsZero() {
		now = time.Now()
	}
	if n.Order != nil {
		tasks = order.NewOverlay(n.Order).Apply(tasks, now)
	}
	n.Printer.TitleWithCount(now.Format("Monday, 2 January"), len(tasks))
	n.Printer.Tasks(tasks...)
	return nil
}

// Find returns the task with id from the full list.
func Find(ctx context.Context, api taskapi.Service, id task.ID) (task.Task, error) {
	tasks, err := api.All(ctx)
	if err != nil {
		return task.Task{}, err
	}
	for _, t := range tasks {
		if t.ID == id {
			return t, nil
		}
	}
	return task.Task{}, fmt.Errorf("task %s: %w", id, taskapi.ErrNotFound)
}
