package add

import (
	"context"
	"errors"

	"tableflip.dev/kiosk/pkg/printers"
	"tableflip.dev/kiosk/pkg/task"
	"tableflip.dev/kiosk/pkg/taskapi"
)

type Add struct {
	Task task.Task

	API     taskapi.Service
	Printer printers.PrettyPrint
}

func (n *Add) Do(ctx context.Context) error {
	if n.API == nil {
		return errors.New("can not add, no api")
	}

	t := n.Task.Normalized()
	if err := t.Validate(); err != nil {
		return err
	}

	created, err := n.API.Create(ctx, t)
	if err != nil {
		return err
	}
	n.Printer.Title("Added")
	n.Printer.Task(created)
	return nil
}
