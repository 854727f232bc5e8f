package edit

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"tableflip.dev/kiosk/pkg/printers"
	"tableflip.dev/kiosk/pkg/task"
	"tableflip.dev/kiosk/pkg/taskapi"
	"tableflip.dev/kiosk/pkg/testutil"
)

func TestEditSwitchesToWeekdays(t *testing.T) {
	api := testutil.NewFakeService(task.Task{ID: "5", Title: "Gym", IsRecurring: true, RecurrenceType: task.RecurDays, RecurrenceValue: 2})
	e := Edit{
		ID: "5",
		Patch: func(t *task.Task) error {
			t.RecurrenceType = task.RecurWeekdays
			t.RecurrenceDays = task.Weekdays{task.Mon, task.Thu}
			return nil
		},
		API:     api,
		Printer: printers.PrettyPrint{Out: &bytes.Buffer{}},
	}
	if err := e.Do(context.Background()); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	all, _ := api.All(context.Background())
	got := all[0]
	if got.RecurrenceType != task.RecurWeekdays || got.RecurrenceValue != 0 || len(got.RecurrenceDays) != 2 {
		t.Fatalf("expected normalized weekday task, got %+v", got)
	}
}

func TestEditInvalidIsNotSent(t *testing.T) {
	api := testutil.NewFakeService(testutil.Pending("5")...)
	e := Edit{
		ID:      "5",
		Patch:   func(t *task.Task) error { t.Title = " "; return nil },
		API:     api,
		Printer: printers.PrettyPrint{Out: &bytes.Buffer{}},
	}
	if err := e.Do(context.Background()); !errors.Is(err, task.ErrTitleRequired) {
		t.Fatalf("expected ErrTitleRequired, got %v", err)
	}
	if api.CallCount("Update 5") != 0 {
		t.Fatalf("expected no update, got %v", api.Calls)
	}
}

func TestEditUnknown(t *testing.T) {
	api := testutil.NewFakeService(testutil.Pending("5")...)
	e := Edit{ID: "6", API: api, Printer: printers.PrettyPrint{Out: &bytes.Buffer{}}}
	if err := e.Do(context.Background()); !errors.Is(err, taskapi.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
