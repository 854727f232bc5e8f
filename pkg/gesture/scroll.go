package gesture

import "math"

// ScrollTracker scrolls the list for contacts that start outside any
// row, once the contact has moved past the deadzone vertically.
type ScrollTracker struct {
	Deadzone float64

	active bool
	startY float64
	lastY  float64
}

// Down starts tracking at y.
func (t *ScrollTracker) Down(y float64) {
	t.active = true
	t.startY = y
	t.lastY = y
}

// Move returns the content scroll delta for a move to y, or 0.
func (t *ScrollTracker) Move(y float64) float64 {
	if !t.active {
		return 0
	}
	dy := y - t.lastY
	t.lastY = y
	if math.Abs(y-t.startY) <= t.Deadzone {
		return 0
	}
	return -dy
}

// Up stops tracking.
func (t *ScrollTracker) Up() { t.active = false }

// Active reports whether a contact is tracked.
func (t *ScrollTracker) Active() bool { return t.active }
