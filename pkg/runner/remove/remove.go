package remove

import (
	"context"
	"errors"
	"fmt"

	"tableflip.dev/kiosk/pkg/printers"
	"tableflip.dev/kiosk/pkg/task"
	"tableflip.dev/kiosk/pkg/taskapi"
)

type Remove struct {
	ID      task.ID
	API     taskapi.Service
	Printer printers.PrettyPrint
}

func (n *Remove) Do(ctx context.Context) error {
	if n.API == nil {
		return errors.New("can not remove, no api")
	}
	if err := n.API.Delete(ctx, n.ID); err != nil {
		return err
	}
	n.Printer.Title(fmt.Sprintf("Removed %s", n.ID))
	return nil
}
