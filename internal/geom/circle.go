package geom

import "math"

// Circle is a center and a radius plus the display tag used to color it.
type Circle struct {
	Center Point
	Radius float64
	Color  string
}

// CircleThrough returns the circle centered at center whose rim passes
// through rim.
func CircleThrough(center, rim Point, color string) Circle {
	return Circle{Center: center, Radius: Distance(center, rim), Color: color}
}

// Intersect returns the points shared by the boundaries of c and other.
func (c Circle) Intersect(other Circle) ([]Point, error) {
	return Intersect(c.Center, c.Radius, other.Center, other.Radius)
}

// OnRim reports whether p lies on the circle boundary within tol.
func (c Circle) OnRim(p Point, tol float64) bool {
	return math.Abs(Distance(c.Center, p)-c.Radius) <= tol
}

// Degenerate reports whether the circle has collapsed to its center.
func (c Circle) Degenerate() bool {
	return c.Radius == 0
}
