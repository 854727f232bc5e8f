package add

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"tableflip.dev/kiosk/pkg/printers"
	"tableflip.dev/kiosk/pkg/task"
	"tableflip.dev/kiosk/pkg/testutil"
)

func TestAdd(t *testing.T) {
	tests := map[string]struct {
		task    task.Task
		wantErr error
	}{
		"one-time":        {task: task.Task{Title: "Pay rent", RecurrenceValue: 4}},
		"weekdays":        {task: task.Task{Title: "Gym", IsRecurring: true, RecurrenceType: task.RecurWeekdays, RecurrenceDays: task.Weekdays{task.Mon}}},
		"missing title":   {task: task.Task{Title: "  "}, wantErr: task.ErrTitleRequired},
		"no weekdays":     {task: task.Task{Title: "Gym", IsRecurring: true, RecurrenceType: task.RecurWeekdays}, wantErr: task.ErrNoWeekdays},
		"dates backwards": {task: task.Task{Title: "Trip", StartDate: "2025-05-02", EndDate: "2025-05-01"}, wantErr: task.ErrDateOrder},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			api := testutil.NewFakeService()
			a := Add{Task: tc.task, API: api, Printer: printers.PrettyPrint{Out: &bytes.Buffer{}}}

			err := a.Do(context.Background())
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
			if tc.wantErr != nil {
				if len(api.Calls) != 0 {
					t.Fatalf("expected no request, got %v", api.Calls)
				}
				return
			}
			all, _ := api.All(context.Background())
			if len(all) != 1 || all[0].Title != tc.task.Title {
				t.Fatalf("expected %q created, got %+v", tc.task.Title, all)
			}
			if !all[0].IsRecurring && all[0].RecurrenceValue != 0 {
				t.Fatalf("expected recurrence cleared on a one-time task, got %+v", all[0])
			}
		})
	}
}
