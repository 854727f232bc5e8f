package printers

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/kiosk/pkg/power"
	"tableflip.dev/kiosk/pkg/timeutil"
)

// Night prints the blackout window as a 24 hour strip with the current
// hour highlighted.
func (pp *PrettyPrint) Night(w power.NightWindow, now time.Time) {
	t := color.New(color.Bold, color.Underline)
	dark := color.New(color.FgBlue)
	light := color.New(color.Faint)
	here := color.New(color.Bold, color.ReverseVideo)

	_, _ = t.Fprintf(pp.out(), "Night %s\n", w)

	hours := strings.Builder{}
	strip := strings.Builder{}
	for h := 0; h < 24; h++ {
		label := fmt.Sprintf("%02d", h)
		mark := light.Sprint("··")
		if w.IsNight(h) {
			mark = dark.Sprint("██")
		}
		if h == now.Hour() {
			label = here.Sprint(label)
		}
		hours.WriteString(label + " ")
		strip.WriteString(mark + " ")
	}
	_, _ = fmt.Fprintln(pp.out(), strings.TrimRight(hours.String(), " "))
	_, _ = fmt.Fprintln(pp.out(), strings.TrimRight(strip.String(), " "))

	state, next := "day", "night"
	if w.IsNight(now.Hour()) {
		state, next = "night", "day"
	}
	change := w.NextChange(now)
	if change.IsZero() {
		_, _ = fmt.Fprintf(pp.out(), "now %s: %s\n", now.Format("15:04"), state)
		return
	}
	_, _ = fmt.Fprintf(pp.out(), "now %s: %s, %s in %s\n", now.Format("15:04"), state, next, timeutil.Format(change.Sub(now)))
}
