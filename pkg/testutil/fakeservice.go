// Package testutil provides in-memory collaborators for kiosk tests.
package testutil

import (
	"context"
	"fmt"
	"sync"

	"tableflip.dev/kiosk/pkg/task"
	"tableflip.dev/kiosk/pkg/taskapi"
)

// FakeService is an in-memory taskapi.Service and taskapi.PowerHooks.
type FakeService struct {
	mu     sync.Mutex
	tasks  []task.Task
	nextID int

	// Calls records every method call as "Method arg".
	Calls []string

	// Error injection.
	TodayErr    error
	AllErr      error
	CreateErr   error
	UpdateErr   error
	DeleteErr   error
	CompleteErr error
	PositionErr error
	ReorderErr  error
	PowerErr    error
}

var (
	_ taskapi.Service    = (*FakeService)(nil)
	_ taskapi.PowerHooks = (*FakeService)(nil)
)

// NewFakeService returns a fake serving tasks in the given order.
func NewFakeService(tasks ...task.Task) *FakeService {
	fs := &FakeService{nextID: 100}
	fs.tasks = append(fs.tasks, tasks...)
	return fs
}

// Pending returns tasks titled by ids, all pending.
func Pending(ids ...string) []task.Task {
	out := make([]task.Task, len(ids))
	for i, id := range ids {
		out[i] = task.Task{ID: task.ID(id), Title: "Task " + id, Position: i + 1}
	}
	return out
}

func (f *FakeService) record(format string, args ...any) {
	f.Calls = append(f.Calls, fmt.Sprintf(format, args...))
}

// CallCount counts calls whose record equals call.
func (f *FakeService) CallCount(call string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.Calls {
		if c == call {
			n++
		}
	}
	return n
}

// SetTasks replaces the served list.
func (f *FakeService) SetTasks(tasks []task.Task) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks = append([]task.Task(nil), tasks...)
}

// Order returns the served ids.
func (f *FakeService) Order() []task.ID {
	f.mu.Lock()
	defer f.mu.Unlock()
	return task.IDs(f.tasks)
}

func (f *FakeService) Today(_ context.Context) ([]task.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("Today")
	if f.TodayErr != nil {
		return nil, f.TodayErr
	}
	return append([]task.Task(nil), f.tasks...), nil
}

func (f *FakeService) All(_ context.Context) ([]task.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("All")
	if f.AllErr != nil {
		return nil, f.AllErr
	}
	return append([]task.Task(nil), f.tasks...), nil
}

func (f *FakeService) Create(_ context.Context, t task.Task) (task.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("Create %s", t.Title)
	if f.CreateErr != nil {
		return task.Task{}, f.CreateErr
	}
	if err := t.Validate(); err != nil {
		return task.Task{}, err
	}
	f.nextID++
	t.ID = task.ID(fmt.Sprint(f.nextID))
	t.Position = len(f.tasks) + 1
	f.tasks = append(f.tasks, t)
	return t, nil
}

func (f *FakeService) Update(_ context.Context, t task.Task) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("Update %s", t.ID)
	if f.UpdateErr != nil {
		return f.UpdateErr
	}
	i := f.index(t.ID)
	if i < 0 {
		return taskapi.ErrNotFound
	}
	f.tasks[i] = t
	return nil
}

func (f *FakeService) Delete(_ context.Context, id task.ID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("Delete %s", id)
	if f.DeleteErr != nil {
		return f.DeleteErr
	}
	i := f.index(id)
	if i < 0 {
		return taskapi.ErrNotFound
	}
	f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
	return nil
}

func (f *FakeService) Complete(_ context.Context, id task.ID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("Complete %s", id)
	if f.CompleteErr != nil {
		return f.CompleteErr
	}
	i := f.index(id)
	if i < 0 {
		return taskapi.ErrNotFound
	}
	f.tasks[i].CompletedToday = true
	return nil
}

func (f *FakeService) SetPosition(_ context.Context, id task.ID, position int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("SetPosition %s %d", id, position)
	if f.PositionErr != nil {
		return f.PositionErr
	}
	if err := taskapi.CheckPosition(position, len(f.tasks)); err != nil {
		return err
	}
	i := f.index(id)
	if i < 0 {
		return taskapi.ErrNotFound
	}
	t := f.tasks[i]
	rest := append(append([]task.Task(nil), f.tasks[:i]...), f.tasks[i+1:]...)
	out := append(append(append([]task.Task(nil), rest[:position-1]...), t), rest[position-1:]...)
	f.tasks = out
	return nil
}

func (f *FakeService) Reorder(_ context.Context, ids []task.ID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("Reorder %v", ids)
	if f.ReorderErr != nil {
		return f.ReorderErr
	}
	if err := taskapi.CheckOrder(ids); err != nil {
		return err
	}
	rank := make(map[task.ID]int, len(ids))
	for i, id := range ids {
		rank[id] = i
	}
	var listed, rest []task.Task
	for _, t := range f.tasks {
		if _, ok := rank[t.ID]; ok {
			listed = append(listed, t)
		} else {
			rest = append(rest, t)
		}
	}
	for i := 1; i < len(listed); i++ {
		for j := i; j > 0 && rank[listed[j].ID] < rank[listed[j-1].ID]; j-- {
			listed[j], listed[j-1] = listed[j-1], listed[j]
		}
	}
	f.tasks = append(listed, rest...)
	return nil
}

func (f *FakeService) ScreenOn(context.Context) error     { return f.power("ScreenOn") }
func (f *FakeService) ScreenOff(context.Context) error    { return f.power("ScreenOff") }
func (f *FakeService) BacklightOn(context.Context) error  { return f.power("BacklightOn") }
func (f *FakeService) BacklightOff(context.Context) error { return f.power("BacklightOff") }

func (f *FakeService) power(name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record(name)
	return f.PowerErr
}

func (f *FakeService) index(id task.ID) int {
	for i, t := range f.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}
