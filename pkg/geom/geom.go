// Package geom holds the pointer-space geometry shared by the gesture
// recognizer, the drag engine and the render driver. Units are abstract
// pointer units; the terminal driver scales cells into them.
package geom

// Point is a pointer position.
type Point struct {
	X, Y float64
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

// Rect is an item's vertical extent. Items span the full list width, so
// only the vertical axis matters for hit testing and reordering.
type Rect struct {
	Top, Height float64
}

// Bottom is Top + Height.
func (r Rect) Bottom() float64 { return r.Top + r.Height }

// Mid is the vertical midpoint.
func (r Rect) Mid() float64 { return r.Top + r.Height/2 }

// Contains reports whether y falls inside [Top, Bottom).
func (r Rect) Contains(y float64) bool { return y >= r.Top && y < r.Bottom() }
