// Package task defines the kiosk's read-only view of the tasks served by
// the task API.
package task

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ID is an opaque task identifier. The API serves numeric ids; they are
// kept as strings so the kiosk never does arithmetic on them.
type ID string

// UnmarshalJSON accepts either a JSON number or a JSON string.
func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("task: id: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// MarshalJSON writes numeric ids as numbers so the API sees the type it
// issued.
func (id ID) MarshalJSON() ([]byte, error) {
	if _, err := strconv.ParseInt(string(id), 10, 64); err == nil {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

// Recurrence selects how a recurring task repeats.
type Recurrence string

const (
	RecurDays     Recurrence = "days"
	RecurWeeks    Recurrence = "weeks"
	RecurMonths   Recurrence = "months"
	RecurWeekdays Recurrence = "weekdays"
)

// IsInterval reports whether r is driven by RecurrenceValue.
func (r Recurrence) IsInterval() bool {
	switch r {
	case RecurDays, RecurWeeks, RecurMonths:
		return true
	}
	return false
}

// ParseRecurrence converts user input to a Recurrence.
func ParseRecurrence(raw string) (Recurrence, error) {
	r := Recurrence(strings.ToLower(strings.TrimSpace(raw)))
	switch r {
	case RecurDays, RecurWeeks, RecurMonths, RecurWeekdays:
		return r, nil
	case "":
		return "", nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownRecurrence, raw)
}

// Task is one entry of the today or admin list.
type Task struct {
	ID              ID         `json:"id,omitempty"`
	Title           string     `json:"title"`
	Description     string     `json:"description,omitempty"`
	IsRecurring     bool       `json:"is_recurring"`
	RecurrenceType  Recurrence `json:"recurrence_type,omitempty"`
	RecurrenceValue int        `json:"recurrence_value,omitempty"`
	RecurrenceDays  Weekdays   `json:"recurrence_days,omitempty"`
	StartDate       string     `json:"start_date,omitempty"`
	EndDate         string     `json:"end_date,omitempty"`
	CompletedToday  bool       `json:"completed_today,omitempty"`
	Position        int        `json:"position,omitempty"`
}

// Pending reports whether the task still needs doing today.
func (t Task) Pending() bool { return !t.CompletedToday }

// Badge is the short recurrence label shown next to the title.
func (t Task) Badge() string {
	if !t.IsRecurring {
		return "one-time"
	}
	if t.RecurrenceType == RecurWeekdays {
		return t.RecurrenceDays.Label()
	}
	n := t.RecurrenceValue
	if n < 1 {
		n = 1
	}
	unit := strings.TrimSuffix(string(t.RecurrenceType), "s")
	if unit == "" {
		unit = "day"
	}
	if n == 1 {
		return "every " + unit
	}
	return fmt.Sprintf("every %d %ss", n, unit)
}

// IDs returns the ids of tasks in order.
func IDs(tasks []Task) []ID {
	ids := make([]ID, len(tasks))
	for i, t := range tasks {
		ids[i] = t.ID
	}
	return ids
}

// UnmarshalJSON decodes a task, accepting sqlite-style 0/1 flags for the
// boolean fields.
func (t *Task) UnmarshalJSON(b []byte) error {
	type plain Task
	aux := struct {
		*plain
		IsRecurring    flag `json:"is_recurring"`
		CompletedToday flag `json:"completed_today"`
	}{plain: (*plain)(t)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	t.IsRecurring = bool(aux.IsRecurring)
	t.CompletedToday = bool(aux.CompletedToday)
	return nil
}

// flag is a JSON boolean that also accepts 0/1.
type flag bool

func (f *flag) UnmarshalJSON(b []byte) error {
	switch string(bytes.TrimSpace(b)) {
	case "true", "1":
		*f = true
	case "false", "0", "null", "":
		*f = false
	default:
		return fmt.Errorf("task: invalid flag %s", b)
	}
	return nil
}
