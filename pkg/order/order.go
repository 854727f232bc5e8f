// Package order keeps a day-scoped manual ordering of today's tasks and
// merges it into freshly fetched lists.
package order

import (
	"io"
	"log/slog"
	"sort"
	"time"

	"tableflip.dev/kiosk/pkg/task"
)

const layoutISO = "2006-01-02"

// DayKey is the local calendar date of t, used to scope a Record.
func DayKey(t time.Time) string {
	return t.Local().Format(layoutISO)
}

// Record is the persisted manual order for one calendar day.
type Record struct {
	Date string    `json:"date"`
	IDs  []task.ID `json:"ids"`
}

// ValidFor reports whether r applies on day.
func (r Record) ValidFor(day string) bool {
	return r.Date == day
}

// RecordStore persists at most one Record.
type RecordStore interface {
	// Load returns the stored record; ok is false when none exists.
	Load() (r Record, ok bool, err error)
	Save(r Record) error
	Erase() error
}

// Overlay merges the stored record into server-ordered task lists.
// Storage failures are logged and treated as "no record".
type Overlay struct {
	Logger *slog.Logger

	store RecordStore
}

// NewOverlay returns an Overlay backed by s.
func NewOverlay(s RecordStore) *Overlay {
	return &Overlay{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		store:  s,
	}
}

// Current returns the record valid for today, if any.
func (o *Overlay) Current(today time.Time) (Record, bool) {
	r, ok, err := o.store.Load()
	if err != nil {
		o.Logger.Warn("order record unavailable", "err", err)
		return Record{}, false
	}
	if !ok || !r.ValidFor(DayKey(today)) {
		return Record{}, false
	}
	return r, true
}

// Apply returns tasks sorted by today's record. Tasks the record does not
// list follow, in their server order. tasks is not modified.
func (o *Overlay) Apply(tasks []task.Task, today time.Time) []task.Task {
	r, ok := o.Current(today)
	if !ok {
		return append([]task.Task(nil), tasks...)
	}
	return Sort(tasks, r.IDs)
}

// RecordOrder stores ids as today's order, replacing any earlier record.
func (o *Overlay) RecordOrder(ids []task.ID, today time.Time) {
	r := Record{Date: DayKey(today), IDs: append([]task.ID(nil), ids...)}
	if err := o.store.Save(r); err != nil {
		o.Logger.Warn("order record not saved", "err", err)
	}
}

// Clear drops the stored record.
func (o *Overlay) Clear() {
	if err := o.store.Erase(); err != nil {
		o.Logger.Warn("order record not erased", "err", err)
	}
}

// Sort orders tasks by their index in ids. Unlisted tasks get the key
// len(ids)+n, n being their rank among unlisted tasks, so they keep the
// incoming order after the listed ones.
func Sort(tasks []task.Task, ids []task.ID) []task.Task {
	rank := make(map[task.ID]int, len(ids))
	for i, id := range ids {
		if _, dup := rank[id]; !dup {
			rank[id] = i
		}
	}

	keys := make(map[task.ID]int, len(tasks))
	unlisted := 0
	for _, t := range tasks {
		if i, ok := rank[t.ID]; ok {
			keys[t.ID] = i
			continue
		}
		keys[t.ID] = len(ids) + unlisted
		unlisted++
	}

	out := append([]task.Task(nil), tasks...)
	sort.SliceStable(out, func(i, j int) bool {
		return keys[out[i].ID] < keys[out[j].ID]
	})
	return out
}
