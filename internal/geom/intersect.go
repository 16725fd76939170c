package geom

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidArgument is returned for negative radii and non-finite input.
var ErrInvalidArgument = errors.New("geom: invalid argument")

// Intersect computes the intersection points of the circle (c1, r1) and
// the circle (c2, r2).
//
// The result is empty when the circles are too far apart, when one lies
// strictly inside the other, or when they share a center (equal radii
// included). Otherwise two points are returned, P then Q, mirrored across
// the line through the centers. Tangent circles yield two identical points.
func Intersect(c1 Point, r1 float64, c2 Point, r2 float64) ([]Point, error) {
	if !finite(c1.X, c1.Y, r1, c2.X, c2.Y, r2) {
		return nil, fmt.Errorf("%w: non-finite coordinate or radius", ErrInvalidArgument)
	}
	if r1 < 0 || r2 < 0 {
		return nil, fmt.Errorf("%w: negative radius (%g, %g)", ErrInvalidArgument, r1, r2)
	}

	d := Distance(c1, c2)

	// d == 0 must be rejected before a and mid divide by it.
	if d > r1+r2 || d < math.Abs(r1-r2) || d == 0 {
		return nil, nil
	}

	// a = (r1² - r2² + d²) / 2d and h² = r1² - a², factored so no square
	// overflows for large inputs.
	a := (d + (r1-r2)*((r1+r2)/d)) / 2

	// Rounding can push h² slightly below zero at tangency.
	h := math.Sqrt(math.Max(r1-a, 0)) * math.Sqrt(math.Max(r1+a, 0))

	axis := c2.Sub(c1)
	mid := c1.Add(axis.Mul(a / d))

	// Ortho is (-dy, dx), the negation of (dy, -dx).
	offset := axis.Ortho().Mul(h / d)

	return []Point{
		mid.Sub(offset),
		mid.Add(offset),
	}, nil
}

// IntersectCircles is Intersect for two Circle values.
func IntersectCircles(a, b Circle) ([]Point, error) {
	return Intersect(a.Center, a.Radius, b.Center, b.Radius)
}
