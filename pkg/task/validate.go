package task

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const layoutISO = "2006-01-02"

var (
	ErrTitleRequired      = errors.New("task: title is required")
	ErrUnknownRecurrence  = errors.New("task: unknown recurrence type")
	ErrUnknownWeekday     = errors.New("task: unknown weekday")
	ErrRecurrenceRequired = errors.New("task: recurrence details required")
	ErrNoWeekdays         = errors.New("task: weekday recurrence needs at least one day")
	ErrBadDate            = errors.New("task: invalid date")
	ErrDateOrder          = errors.New("task: start date after end date")
)

// Validate checks a task before it is sent to the API. Nothing is
// clamped or defaulted: an invalid task is rejected as a whole.
func (t Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return ErrTitleRequired
	}
	if t.IsRecurring {
		switch {
		case t.RecurrenceType == "":
			return ErrRecurrenceRequired
		case t.RecurrenceType == RecurWeekdays:
			if len(t.RecurrenceDays) == 0 {
				return ErrNoWeekdays
			}
		case t.RecurrenceType.IsInterval():
			if t.RecurrenceValue < 1 {
				return fmt.Errorf("%w: %s needs a value of at least 1", ErrRecurrenceRequired, t.RecurrenceType)
			}
		default:
			return fmt.Errorf("%w: %q", ErrUnknownRecurrence, t.RecurrenceType)
		}
	}

	var start, end time.Time
	var err error
	if t.StartDate != "" {
		if start, err = time.Parse(layoutISO, t.StartDate); err != nil {
			return fmt.Errorf("%w: start %q", ErrBadDate, t.StartDate)
		}
	}
	if t.EndDate != "" {
		if end, err = time.Parse(layoutISO, t.EndDate); err != nil {
			return fmt.Errorf("%w: end %q", ErrBadDate, t.EndDate)
		}
	}
	if !start.IsZero() && !end.IsZero() && start.After(end) {
		return ErrDateOrder
	}
	return nil
}

// Normalized returns a copy with the inactive recurrence fields cleared:
// one-time tasks drop all recurrence data, interval tasks drop days and
// weekday tasks drop the interval value.
func (t Task) Normalized() Task {
	out := t
	switch {
	case !t.IsRecurring:
		out.RecurrenceType = ""
		out.RecurrenceValue = 0
		out.RecurrenceDays = nil
	case t.RecurrenceType == RecurWeekdays:
		out.RecurrenceValue = 0
	default:
		out.RecurrenceDays = nil
	}
	return out
}
