// Package record inspects and clears the kiosk's local order record.
package record

import (
	"errors"
	"time"

	"tableflip.dev/kiosk/pkg/order"
	"tableflip.dev/kiosk/pkg/printers"
)

// Show prints the stored record and whether it applies today.
type Show struct {
	Store   order.RecordStore
	Now     time.Time
	Printer printers.PrettyPrint
}

func (n *Show) Do() error {
	if n.Store == nil {
		return errors.New("can not show, no store")
	}
	r, ok, err := n.Store.Load()
	if err != nil {
		return err
	}
	now := n.Now
	if now.IsZero() {
		now = time.Now()
	}
	n.Printer.Record(r, ok, order.DayKey(now))
	return nil
}

// Clear erases the stored record. A running kiosk sees the change through
// its store watch and falls back to server order.
type Clear struct {
	Store   order.RecordStore
	Printer printers.PrettyPrint
}

func (n *Clear) Do() error {
	if n.Store == nil {
		return errors.New("can not clear, no store")
	}
	if err := n.Store.Erase(); err != nil {
		return err
	}
	n.Printer.Title("Local order cleared")
	return nil
}
