package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// EventType describes the nature of a persistence change notification.
type EventType int

const (
	// EventOrderChanged indicates the order record was written or erased.
	EventOrderChanged EventType = iota

	// EventInvalidated signals that the watcher could not classify a change
	// and callers should re-read the record.
	EventInvalidated
)

// Event is emitted by Watch when underlying storage changes.
type Event struct {
	Type EventType
}

// Watch streams change events for the store at p until ctx is cancelled.
// Callers should drain the returned channel to avoid blocking the watcher.
// The channel is closed once ctx is done or the watcher fails.
func Watch(ctx context.Context, p Persistence) (<-chan Event, error) {
	basePath := p.BasePath()
	if basePath == "" {
		return nil, errors.New("store: persistence base path unknown")
	}

	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("store: create watcher: %w", err)
	}
	var closeOnce sync.Once
	closeWatcher := func() {
		closeOnce.Do(func() {
			_ = watcher.Close()
		})
	}

	dirs, err := collectDirs(basePath)
	if err != nil {
		closeWatcher()
		return nil, fmt.Errorf("store: enumerate directories: %w", err)
	}

	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			closeWatcher()
			return nil, fmt.Errorf("store: watch %s: %w", dir, err)
		}
	}

	events := make(chan Event, 8)

	go func() {
		defer close(events)
		defer closeWatcher()

		watched := make(map[string]struct{}, len(dirs))
		for _, dir := range dirs {
			watched[dir] = struct{}{}
		}

		send := func(ev Event) {
			select {
			case events <- ev:
			default:
				// Consumer is behind; it re-reads the whole record anyway.
			}
		}

		throttle := newEventThrottle(100 * time.Millisecond)
		defer throttle.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
				throttle.Enqueue(Event{Type: EventInvalidated}, send)
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}

				if evt.Op&fsnotify.Create == fsnotify.Create {
					// diskv creates the key directory on first write.
					if info, err := os.Stat(evt.Name); err == nil && info.IsDir() {
						absDir := filepath.Clean(evt.Name)
						if _, found := watched[absDir]; !found {
							if err := watcher.Add(absDir); err == nil {
								watched[absDir] = struct{}{}
							}
						}
						// The record is usually written before the new
						// watch is in place, so the directory counts.
						if isOrderPath(basePath, absDir) {
							throttle.Enqueue(Event{Type: EventOrderChanged}, send)
						}
						continue
					}
				}

				if isOrderPath(basePath, evt.Name) {
					throttle.Enqueue(Event{Type: EventOrderChanged}, send)
				}
			}
		}
	}()

	return events, nil
}

// collectDirs walks base and returns all directories that should be watched.
func collectDirs(base string) ([]string, error) {
	dirs := []string{base}
	err := filepath.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if d.IsDir() && path != base {
			dirs = append(dirs, path)
		}
		return nil
	})
	return dirs, err
}

// isOrderPath reports whether path is the file (or its directory) that
// holds OrderKey. diskv temp files share the directory and count too.
func isOrderPath(base, path string) bool {
	rel, err := filepath.Rel(base, path)
	if err != nil || rel == "." {
		return false
	}
	pk := keyToPathTransform(OrderKey)
	return strings.HasPrefix(rel, filepath.Join(pk.Path...))
}

// eventThrottle coalesces rapid change notifications so the kiosk re-reads
// the record once per burst of filesystem activity.
type eventThrottle struct {
	mu      sync.Mutex
	timer   *time.Timer
	pending map[EventType]struct{}
	delay   time.Duration
}

func newEventThrottle(delay time.Duration) *eventThrottle {
	return &eventThrottle{
		delay:   delay,
		pending: make(map[EventType]struct{}),
	}
}

func (t *eventThrottle) Enqueue(ev Event, send func(Event)) {
	t.mu.Lock()
	t.pending[ev.Type] = struct{}{}
	if t.timer == nil {
		t.timer = time.AfterFunc(t.delay, func() {
			t.flush(send)
		})
	}
	t.mu.Unlock()
}

func (t *eventThrottle) flush(send func(Event)) {
	t.mu.Lock()
	pending := t.pending
	t.pending = make(map[EventType]struct{})
	t.timer = nil
	t.mu.Unlock()

	for eventType := range pending {
		send(Event{Type: eventType})
	}
}

func (t *eventThrottle) Stop() {
	t.mu.Lock()
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.mu.Unlock()
}
