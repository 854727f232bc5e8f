// Package edit updates an existing task.
package edit

import (
	"context"
	"errors"

	"tableflip.dev/kiosk/pkg/printers"
	"tableflip.dev/kiosk/pkg/runner/get"
	"tableflip.dev/kiosk/pkg/task"
	"tableflip.dev/kiosk/pkg/taskapi"
)

// Edit loads the task, applies Patch and writes it back.
type Edit struct {
	ID    task.ID
	Patch func(t *task.Task) error

	API     taskapi.Service
	Printer printers.PrettyPrint
}

func (n *Edit) Do(ctx context.Context) error {
	if n.API == nil {
		return errors.New("can not edit, no api")
	}

	t, err := get.Find(ctx, n.API, n.ID)
	if err != nil {
		return err
	}
	if n.Patch != nil {
		if err := n.Patch(&t); err != nil {
			return err
		}
	}
	t = t.Normalized()
	if err := t.Validate(); err != nil {
		return err
	}
	if err := n.API.Update(ctx, t); err != nil {
		return err
	}
	n.Printer.Title("Updated")
	n.Printer.Task(t)
	return nil
}
