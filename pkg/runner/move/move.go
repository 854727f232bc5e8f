// Package move sets one task's position in today's list.
package move

import (
	"context"
	"errors"

	"tableflip.dev/kiosk/pkg/printers"
	"tableflip.dev/kiosk/pkg/task"
	"tableflip.dev/kiosk/pkg/taskapi"
)

// Move places ID at the 1-based Position. The position is checked against
// today's count before any request is made.
type Move struct {
	ID       task.ID
	Position int

	API     taskapi.Service
	Printer printers.PrettyPrint
}

func (n *Move) Do(ctx context.Context) error {
	if n.API == nil {
		return errors.New("can not move, no api")
	}

	tasks, err := n.API.Today(ctx)
	if err != nil {
		return err
	}
	if err := taskapi.CheckPosition(n.Position, len(tasks)); err != nil {
		return err
	}
	if err := n.API.SetPosition(ctx, n.ID, n.Position); err != nil {
		return err
	}

	tasks, err = n.API.Today(ctx)
	if err != nil {
		return err
	}
	n.Printer.TitleWithCount("Today", len(tasks))
	n.Printer.Tasks(tasks...)
	return nil
}
