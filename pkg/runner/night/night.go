// Package night reports the configured blackout window.
package night

import (
	"time"

	"tableflip.dev/kiosk/pkg/power"
	"tableflip.dev/kiosk/pkg/printers"
)

type Night struct {
	Window  power.NightWindow
	Now     time.Time
	Printer printers.PrettyPrint
}

func (n *Night) Do() error {
	now := n.Now
	if now.IsZero() {
		now = time.Now()
	}
	n.Printer.Night(n.Window, now)
	return nil
}
