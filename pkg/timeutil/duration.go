package timeutil

import (
	"fmt"
	"strings"
	"time"
)

// Format renders a duration using day/hour/minute/second tokens, for
// example "2h30m". Sub-second remainders are dropped.
func Format(d time.Duration) string {
	if d < time.Second {
		return "0s"
	}

	type unit struct {
		label string
		value time.Duration
	}
	units := []unit{
		{"d", 24 * time.Hour},
		{"h", time.Hour},
		{"m", time.Minute},
		{"s", time.Second},
	}

	var parts []string
	remaining := d
	for _, u := range units {
		if remaining < u.value {
			continue
		}
		count := remaining / u.value
		remaining -= count * u.value
		parts = append(parts, fmt.Sprintf("%d%s", count, u.label))
	}
	return strings.Join(parts, "")
}
