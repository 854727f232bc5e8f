package options

import (
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/kiosk/pkg/task"
)

// TaskOptions
type TaskOptions struct {
	Title       string
	Description string
	Repeat      string
	Every       int
	Days        string
	Start       string
	End         string
}

func AddTaskArgs(cmd *cobra.Command, o *TaskOptions) {
	cmd.Flags().StringVarP(&o.Description, "description", "d", "",
		"Longer text shown when the task is expanded.")
	cmd.Flags().StringVar(&o.Repeat, "repeat", "",
		`Repeat the task. One of "days", "weeks", "months" or "weekdays"; "none" makes it one-time.`)
	cmd.Flags().IntVar(&o.Every, "every", 1,
		"Interval for days, weeks or months, example: --repeat=weeks --every=2.")
	cmd.Flags().StringVar(&o.Days, "days", "",
		`Days for --repeat=weekdays, example: --days="mon,wed,fri".`)
	cmd.Flags().StringVar(&o.Start, "start", "",
		`First day the task is due, example: --start="2025-03-01".`)
	cmd.Flags().StringVar(&o.End, "end", "",
		`Last day the task is due, example: --end="2025-06-30".`)
}

// Task builds a new task from the flags.
func (o *TaskOptions) Task() (task.Task, error) {
	t := task.Task{
		Title:       strings.TrimSpace(o.Title),
		Description: o.Description,
		StartDate:   o.Start,
		EndDate:     o.End,
	}
	if err := o.recurrence(&t); err != nil {
		return task.Task{}, err
	}
	return t, nil
}

// Patch returns an edit that applies only the flags set on cmd, and the
// title when one was given.
func (o *TaskOptions) Patch(cmd *cobra.Command) func(*task.Task) error {
	changed := cmd.Flags().Changed
	return func(t *task.Task) error {
		if title := strings.TrimSpace(o.Title); title != "" {
			t.Title = title
		}
		if changed("description") {
			t.Description = o.Description
		}
		if changed("start") {
			t.StartDate = o.Start
		}
		if changed("end") {
			t.EndDate = o.End
		}
		if changed("repeat") || changed("every") || changed("days") {
			if !changed("repeat") {
				o.Repeat = string(t.RecurrenceType)
			}
			if !changed("every") && t.RecurrenceValue > 0 {
				o.Every = t.RecurrenceValue
			}
			if !changed("days") {
				o.Days = t.RecurrenceDays.String()
			}
			return o.recurrence(t)
		}
		return nil
	}
}

func (o *TaskOptions) recurrence(t *task.Task) error {
	repeat := strings.ToLower(strings.TrimSpace(o.Repeat))
	if repeat == "" || repeat == "none" {
		t.IsRecurring = false
		return nil
	}
	r, err := task.ParseRecurrence(repeat)
	if err != nil {
		return err
	}
	t.IsRecurring = true
	t.RecurrenceType = r
	if r == task.RecurWeekdays {
		days, err := task.ParseWeekdays(o.Days)
		if err != nil {
			return err
		}
		t.RecurrenceDays = days
		return nil
	}
	t.RecurrenceValue = o.Every
	return nil
}
