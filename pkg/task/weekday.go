package task

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Weekday is a lower-case three letter day tag as used by the API.
type Weekday string

const (
	Mon Weekday = "mon"
	Tue Weekday = "tue"
	Wed Weekday = "wed"
	Thu Weekday = "thu"
	Fri Weekday = "fri"
	Sat Weekday = "sat"
	Sun Weekday = "sun"
)

var weekdayOrder = map[Weekday]int{Mon: 0, Tue: 1, Wed: 2, Thu: 3, Fri: 4, Sat: 5, Sun: 6}

// Weekdays is a set of day tags. On the wire it is a comma separated
// string ("mon,wed"); a JSON array is accepted too.
type Weekdays []Weekday

// ParseWeekdays reads a comma separated list, dropping duplicates and
// normalizing order to Monday first.
func ParseWeekdays(raw string) (Weekdays, error) {
	var out Weekdays
	seen := map[Weekday]bool{}
	for _, part := range strings.Split(raw, ",") {
		d := Weekday(strings.ToLower(strings.TrimSpace(part)))
		if d == "" {
			continue
		}
		if _, ok := weekdayOrder[d]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownWeekday, part)
		}
		if seen[d] {
			continue
		}
		seen[d] = true
		out = append(out, d)
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && weekdayOrder[out[j]] < weekdayOrder[out[j-1]]; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out, nil
}

func (w Weekdays) String() string {
	parts := make([]string, len(w))
	for i, d := range w {
		parts[i] = string(d)
	}
	return strings.Join(parts, ",")
}

// Label renders "Mon, Wed".
func (w Weekdays) Label() string {
	parts := make([]string, len(w))
	for i, d := range w {
		s := string(d)
		if s != "" {
			s = strings.ToUpper(s[:1]) + s[1:]
		}
		parts[i] = s
	}
	return strings.Join(parts, ", ")
}

// MarshalJSON writes the comma separated form.
func (w Weekdays) MarshalJSON() ([]byte, error) {
	return json.Marshal(w.String())
}

// UnmarshalJSON accepts "mon,wed", ["mon","wed"] or null.
func (w *Weekdays) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*w = nil
		return nil
	}
	var raw string
	if len(b) > 0 && b[0] == '[' {
		var list []string
		if err := json.Unmarshal(b, &list); err != nil {
			return err
		}
		raw = strings.Join(list, ",")
	} else if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	parsed, err := ParseWeekdays(raw)
	if err != nil {
		return err
	}
	*w = parsed
	return nil
}
