// Package geom provides the plane geometry behind the board: points,
// circles, distances and circle-circle intersection.
package geom

import (
	"math"

	"github.com/golang/geo/r2"
)

// Point is a position in logical pixel space.
type Point = r2.Point

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Distance calculates the Euclidean distance between two points without
// overflowing for large coordinates.
func Distance(p1, p2 Point) float64 {
	return math.Hypot(p2.X-p1.X, p2.Y-p1.Y)
}

// DistanceSquared calculates the squared distance between two points.
// Use this when comparing distances to avoid the sqrt cost.
func DistanceSquared(p1, p2 Point) float64 {
	dx := p2.X - p1.X
	dy := p2.Y - p1.Y
	return dx*dx + dy*dy
}

// PointInCircle reports whether p lies within radius of center.
// Points exactly on the rim count as inside.
func PointInCircle(p, center Point, radius float64) bool {
	return DistanceSquared(p, center) <= radius*radius
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
