package record

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/kiosk/pkg/order"
	"tableflip.dev/kiosk/pkg/printers"
	"tableflip.dev/kiosk/pkg/task"
)

func TestShowAndClear(t *testing.T) {
	color.NoColor = true
	mem := &order.Memory{}
	_ = mem.Save(order.Record{Date: "2025-03-13", IDs: []task.ID{"2", "1"}})

	var buf bytes.Buffer
	s := Show{Store: mem, Now: time.Date(2025, 3, 14, 8, 0, 0, 0, time.Local), Printer: printers.PrettyPrint{Out: &buf}}
	if err := s.Do(); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.Contains(buf.String(), "stale") {
		t.Fatalf("expected stale record, got %q", buf.String())
	}

	c := Clear{Store: mem, Printer: printers.PrettyPrint{Out: &buf}}
	if err := c.Do(); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, ok, _ := mem.Load(); ok {
		t.Fatalf("expected record erased")
	}
}
