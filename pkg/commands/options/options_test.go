package options

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/spf13/cobra"

	"tableflip.dev/kiosk/pkg/task"
	"tableflip.dev/kiosk/pkg/taskapi"
)

func TestTaskFromFlags(t *testing.T) {
	tests := map[string]struct {
		o       TaskOptions
		want    task.Task
		wantErr error
	}{
		"one-time": {
			o:    TaskOptions{Title: " Pay rent ", Every: 1},
			want: task.Task{Title: "Pay rent"},
		},
		"every two weeks": {
			o:    TaskOptions{Title: "Mop", Repeat: "weeks", Every: 2},
			want: task.Task{Title: "Mop", IsRecurring: true, RecurrenceType: task.RecurWeeks, RecurrenceValue: 2},
		},
		"weekdays": {
			o:    TaskOptions{Title: "Gym", Repeat: "weekdays", Days: "fri,mon"},
			want: task.Task{Title: "Gym", IsRecurring: true, RecurrenceType: task.RecurWeekdays, RecurrenceDays: task.Weekdays{task.Mon, task.Fri}},
		},
		"bad repeat": {
			o:       TaskOptions{Title: "x", Repeat: "hourly"},
			wantErr: task.ErrUnknownRecurrence,
		},
		"bad day": {
			o:       TaskOptions{Title: "x", Repeat: "weekdays", Days: "mon,funday"},
			wantErr: task.ErrUnknownWeekday,
		},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := tc.o.Task()
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
			if err != nil {
				return
			}
			if got.Title != tc.want.Title || got.IsRecurring != tc.want.IsRecurring ||
				got.RecurrenceType != tc.want.RecurrenceType || got.RecurrenceValue != tc.want.RecurrenceValue ||
				got.RecurrenceDays.String() != tc.want.RecurrenceDays.String() {
				t.Fatalf("expected %+v, got %+v", tc.want, got)
			}
		})
	}
}

func TestPatchOnlyChangedFlags(t *testing.T) {
	o := &TaskOptions{}
	cmd := &cobra.Command{}
	AddTaskArgs(cmd, o)
	if err := cmd.Flags().Parse([]string{"--every=3"}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	tk := task.Task{Title: "Mop", Description: "kitchen", IsRecurring: true, RecurrenceType: task.RecurDays, RecurrenceValue: 1}
	if err := o.Patch(cmd)(&tk); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if tk.RecurrenceType != task.RecurDays || tk.RecurrenceValue != 3 {
		t.Fatalf("expected every 3 days, got %+v", tk)
	}
	if tk.Description != "kitchen" || tk.Title != "Mop" {
		t.Fatalf("expected untouched fields, got %+v", tk)
	}
}

func TestParseIDs(t *testing.T) {
	got := ParseIDs([]string{"3,1", " 2 ", ""})
	if len(got) != 3 || got[0] != "3" || got[1] != "1" || got[2] != "2" {
		t.Fatalf("expected [3 1 2], got %v", got)
	}
}

func TestLoggerLevel(t *testing.T) {
	o := &LogOptions{}
	if _, _, err := o.Logger("", "loud"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
	l, closer, err := o.Logger("", "debug")
	if err != nil || l == nil {
		t.Fatalf("expected discard logger, got %v", err)
	}
	if err := closer(); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestHandleError(t *testing.T) {
	tests := map[string]struct {
		json    bool
		err     error
		want    string
		wantErr bool
	}{
		"no error": {json: true},
		"plain":    {err: errors.New("boom"), wantErr: true},
		"json":     {json: true, err: errors.New("boom"), want: `{"error":"boom"}` + "\n"},
		"status": {
			json: true,
			err:  fmt.Errorf("tasks: %w", &taskapi.StatusError{Code: 404, Message: "missing"}),
			want: `{"error":"tasks: taskapi: status 404: missing","status":404}` + "\n",
		},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			o := &OutputOptions{JSON: tc.json, Out: &buf}
			err := o.HandleError(tc.err)
			if (err != nil) != tc.wantErr {
				t.Fatalf("expected error %v, got %v", tc.wantErr, err)
			}
			if got := buf.String(); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}
