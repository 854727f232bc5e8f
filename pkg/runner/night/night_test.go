package night

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/kiosk/pkg/power"
	"tableflip.dev/kiosk/pkg/printers"
)

func TestNight(t *testing.T) {
	color.NoColor = true
	tests := map[string]struct {
		now  time.Time
		want string
	}{
		"evening":  {now: time.Date(2025, 3, 14, 21, 0, 0, 0, time.Local), want: "now 21:00: day, night in 2h"},
		"midnight": {now: time.Date(2025, 3, 14, 0, 30, 0, 0, time.Local), want: "now 00:30: night, day in 4h30m"},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			n := Night{Window: power.NightWindow{Start: 23, End: 5}, Now: tc.now, Printer: printers.PrettyPrint{Out: &buf}}
			if err := n.Do(); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if !strings.Contains(buf.String(), tc.want) {
				t.Fatalf("expected %q, got %q", tc.want, buf.String())
			}
		})
	}
}
