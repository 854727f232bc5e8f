package store

import (
	"context"
	"testing"
	"time"

	"tableflip.dev/kiosk/pkg/order"
	"tableflip.dev/kiosk/pkg/task"
)

func waitOrderChanged(t *testing.T, ch <-chan Event) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case evt, ok := <-ch:
			if !ok {
				t.Fatal("watch closed before an order change event")
			}
			if evt.Type == EventOrderChanged {
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for order change event")
		}
	}
}

func TestPersistenceWatchEmitsOrderChanges(t *testing.T) {
	p := Open(t.TempDir())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := Watch(ctx, p)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}

	// Allow watcher goroutine to subscribe to directories before storing.
	time.Sleep(50 * time.Millisecond)

	if err := p.Save(order.Record{Date: "2025-03-14", IDs: []task.ID{"1"}}); err != nil {
		t.Fatalf("save: %v", err)
	}

	waitOrderChanged(t, ch)
}

func TestWatchSeesSaveAfterClear(t *testing.T) {
	p := Open(t.TempDir())
	if err := p.Save(order.Record{Date: "2025-03-13", IDs: []task.ID{"2"}}); err != nil {
		t.Fatalf("save: %v", err)
	}
	// Erase prunes the now empty key directory.
	if err := p.Erase(); err != nil {
		t.Fatalf("erase: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := Watch(ctx, p)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	time.Sleep(50 * time.Millisecond)

	if err := p.Save(order.Record{Date: "2025-03-14", IDs: []task.ID{"1", "2"}}); err != nil {
		t.Fatalf("save: %v", err)
	}
	waitOrderChanged(t, ch)
}
