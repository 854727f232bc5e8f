package timeutil

import (
	"testing"
	"time"
)

func TestFormat(t *testing.T) {
	tests := map[string]struct {
		d    time.Duration
		want string
	}{
		"zero":       {d: 0, want: "0s"},
		"sub-second": {d: 300 * time.Millisecond, want: "0s"},
		"minutes":    {d: 90 * time.Second, want: "1m30s"},
		"composite":  {d: 26*time.Hour + 30*time.Minute, want: "1d2h30m"},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			if got := Format(tc.d); got != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}
