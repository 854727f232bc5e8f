package get

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/kiosk/pkg/order"
	"tableflip.dev/kiosk/pkg/printers"
	"tableflip.dev/kiosk/pkg/task"
	"tableflip.dev/kiosk/pkg/taskapi"
	"tableflip.dev/kiosk/pkg/testutil"
)

func init() {
	color.NoColor = true
}

// titles returns the task titles in the order they were printed.
func titles(out string, want ...string) []string {
	type hit struct {
		at    int
		title string
	}
	var hits []hit
	for _, w := range want {
		if i := strings.Index(out, w); i >= 0 {
			hits = append(hits, hit{i, w})
		}
	}
	for i := 1; i < len(hits); i++ {
		for j := i; j > 0 && hits[j].at < hits[j-1].at; j-- {
			hits[j], hits[j-1] = hits[j-1], hits[j]
		}
	}
	got := make([]string, len(hits))
	for i, h := range hits {
		got[i] = h.title
	}
	return got
}

func TestGet(t *testing.T) {
	now := time.Date(2025, 3, 14, 9, 0, 0, 0, time.Local)
	tests := map[string]struct {
		record   *order.Record
		all      bool
		want     []string
		wantCall string
	}{
		"server order": {
			want:     []string{"Task A", "Task B", "Task C"},
			wantCall: "Today",
		},
		"today's record": {
			record:   &order.Record{Date: "2025-03-14", IDs: []task.ID{"C", "A"}},
			want:     []string{"Task C", "Task A", "Task B"},
			wantCall: "Today",
		},
		"stale record": {
			record:   &order.Record{Date: "2025-03-13", IDs: []task.ID{"C", "A"}},
			want:     []string{"Task A", "Task B", "Task C"},
			wantCall: "Today",
		},
		"all ignores record": {
			record:   &order.Record{Date: "2025-03-14", IDs: []task.ID{"C", "A"}},
			all:      true,
			want:     []string{"Task A", "Task B", "Task C"},
			wantCall: "All",
		},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			api := testutil.NewFakeService(testutil.Pending("A", "B", "C")...)
			mem := &order.Memory{}
			if tc.record != nil {
				_ = mem.Save(*tc.record)
			}
			var buf bytes.Buffer
			g := Get{API: api, All: tc.all, Order: mem, Now: now, Printer: printers.PrettyPrint{Out: &buf}}

			if err := g.Do(context.Background()); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if api.CallCount(tc.wantCall) != 1 {
				t.Fatalf("expected %s call, got %v", tc.wantCall, api.Calls)
			}
			got := titles(buf.String(), "Task A", "Task B", "Task C")
			if strings.Join(got, ",") != strings.Join(tc.want, ",") {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestGetStorageFailureFallsBackToServerOrder(t *testing.T) {
	api := testutil.NewFakeService(testutil.Pending("A", "B")...)
	var buf bytes.Buffer
	g := Get{API: api, Order: &order.Memory{Err: errors.New("disk gone")}, Printer: printers.PrettyPrint{Out: &buf}}
	if err := g.Do(context.Background()); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got := titles(buf.String(), "Task A", "Task B"); strings.Join(got, ",") != "Task A,Task B" {
		t.Fatalf("expected server order, got %v", got)
	}
}

func TestFind(t *testing.T) {
	api := testutil.NewFakeService(testutil.Pending("A", "B")...)
	got, err := Find(context.Background(), api, "B")
	if err != nil || got.Title != "Task B" {
		t.Fatalf("expected Task B, got %+v %v", got, err)
	}
	if _, err := Find(context.Background(), api, "Z"); !errors.Is(err, taskapi.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
