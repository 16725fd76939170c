// Package board holds the interactive state of a geometry board: the
// user-placed points, the two circles derived from them and the pointer
// state machine that moves points around.
package board

import (
	"github.com/tomz197/geobuilder/internal/geom"
	"github.com/tomz197/geobuilder/internal/loop/config"
)

// Mode is the interaction state of a board.
type Mode int

const (
	ModePlacing  Mode = iota // Fewer than MaxPoints placed, nothing grabbed
	ModeIdle                 // All points placed, nothing grabbed
	ModeDragging             // A point follows the pointer
)

func (m Mode) String() string {
	switch m {
	case ModePlacing:
		return "placing"
	case ModeIdle:
		return "idle"
	case ModeDragging:
		return "dragging"
	}
	return "unknown"
}

// Circle display tags, in the order the circles are derived.
var circleColors = [2]string{"blue", "yellow"}

// Options configures a Board.
type Options struct {
	// HitRadius is how close a pointer-down must land to grab a point.
	HitRadius float64
}

// Board owns the points, circles and drag cursor of one session.
type Board struct {
	points    []geom.Point
	circles   []geom.Circle
	dragging  int // Index into points, -1 when nothing is grabbed
	hitRadius float64
}

// New creates an empty board.
func New(opts Options) *Board {
	hr := opts.HitRadius
	if hr <= 0 {
		hr = config.DefaultHitRadius
	}
	return &Board{
		points:    make([]geom.Point, 0, config.MaxPoints),
		dragging:  -1,
		hitRadius: hr,
	}
}

// Mode returns the current interaction state and, when dragging, the index
// of the grabbed point (-1 otherwise).
func (b *Board) Mode() (Mode, int) {
	switch {
	case b.dragging >= 0:
		return ModeDragging, b.dragging
	case len(b.points) < config.MaxPoints:
		return ModePlacing, -1
	default:
		return ModeIdle, -1
	}
}

// PointerDown grabs the first point within the hit radius of p, or places a
// new point at p while fewer than MaxPoints exist. It reports whether the
// board changed.
func (b *Board) PointerDown(p geom.Point) bool {
	if i := b.hit(p); i >= 0 {
		b.dragging = i
		return true
	}
	if len(b.points) >= config.MaxPoints {
		return false
	}
	b.points = append(b.points, p)
	b.derive()
	return true
}

// PointerMove moves the grabbed point to p. It reports whether the board
// changed; moves without a grabbed point change nothing.
func (b *Board) PointerMove(p geom.Point) bool {
	if b.dragging < 0 {
		return false
	}
	b.points[b.dragging] = p
	b.derive()
	return true
}

// PointerUp releases the grabbed point, if any.
func (b *Board) PointerUp() bool {
	if b.dragging < 0 {
		return false
	}
	b.dragging = -1
	return true
}

// Reset clears all points, circles and drag state.
func (b *Board) Reset() {
	b.points = b.points[:0]
	b.circles = nil
	b.dragging = -1
}

// Points returns a copy of the placed points in placement order.
func (b *Board) Points() []geom.Point {
	return append([]geom.Point(nil), b.points...)
}

// Circles returns a copy of the derived circles: none until all points are
// placed, then exactly two.
func (b *Board) Circles() []geom.Circle {
	return append([]geom.Circle(nil), b.circles...)
}

// Intersections returns the intersection points of the two circles, or nil
// while fewer than two circles exist.
func (b *Board) Intersections() []geom.Point {
	if len(b.circles) != 2 {
		return nil
	}
	pts, err := geom.IntersectCircles(b.circles[0], b.circles[1])
	if err != nil {
		// Points come from finite pointer coordinates; treat anything else
		// as no intersection.
		return nil
	}
	return pts
}

// hit returns the index of the first point within the hit radius of p.
func (b *Board) hit(p geom.Point) int {
	for i, pt := range b.points {
		if geom.PointInCircle(p, pt, b.hitRadius) {
			return i
		}
	}
	return -1
}

// derive recomputes the circles from the current points.
func (b *Board) derive() {
	if len(b.points) < config.MaxPoints {
		b.circles = nil
		return
	}
	b.circles = []geom.Circle{
		geom.CircleThrough(b.points[0], b.points[1], circleColors[0]),
		geom.CircleThrough(b.points[2], b.points[3], circleColors[1]),
	}
}
