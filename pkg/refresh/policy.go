// Package refresh holds the periodic fetch plumbing: a bounded failure
// policy and a clock-driven ticker.
package refresh

import "fmt"

// Outcome is what the caller should do after a fetch.
type Outcome int

const (
	// Keep means carry on with the periodic schedule.
	Keep Outcome = iota
	// Reload means give up on the current state and rebuild it.
	Reload
)

func (o Outcome) String() string {
	switch o {
	case Keep:
		return "keep"
	case Reload:
		return "reload"
	}
	return fmt.Sprintf("outcome(%d)", int(o))
}

// Policy counts consecutive fetch failures. Reaching Max escalates to a
// single Reload and starts counting again from zero.
type Policy struct {
	Max int

	failures int
}

// NewPolicy returns a Policy escalating after max failures.
func NewPolicy(max int) *Policy {
	if max < 1 {
		max = 1
	}
	return &Policy{Max: max}
}

// Success clears the counter.
func (p *Policy) Success() Outcome {
	p.failures = 0
	return Keep
}

// Failure counts one failure.
func (p *Policy) Failure() Outcome {
	p.failures++
	if p.failures >= p.Max {
		p.failures = 0
		return Reload
	}
	return Keep
}

// Failures is the current consecutive failure count.
func (p *Policy) Failures() int { return p.failures }

// Reset clears the counter.
func (p *Policy) Reset() { p.failures = 0 }
