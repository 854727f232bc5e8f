package board

import (
	"fmt"

	"tableflip.dev/kiosk/pkg/task"
)

// Filter narrows the rendered list by recurrence.
type Filter int

const (
	FilterAll Filter = iota
	FilterOneTime
	FilterRecurring
)

// Filters is the filter bar, left to right.
var Filters = []Filter{FilterAll, FilterOneTime, FilterRecurring}

func (f Filter) String() string {
	switch f {
	case FilterAll:
		return "all"
	case FilterOneTime:
		return "one-time"
	case FilterRecurring:
		return "recurring"
	}
	return fmt.Sprintf("filter(%d)", int(f))
}

// ParseFilter reads a filter name as printed by String.
func ParseFilter(s string) (Filter, error) {
	for _, f := range Filters {
		if f.String() == s {
			return f, nil
		}
	}
	return FilterAll, fmt.Errorf("board: unknown filter %q", s)
}

// Matches reports whether t passes the filter.
func (f Filter) Matches(t task.Task) bool {
	switch f {
	case FilterOneTime:
		return !t.IsRecurring
	case FilterRecurring:
		return t.IsRecurring
	}
	return true
}

// Toggle returns the filter after next is picked while f is active.
// Picking the active filter again falls back to all.
func (f Filter) Toggle(next Filter) Filter {
	if next == f && next != FilterAll {
		return FilterAll
	}
	return next
}
