package board

import (
	"fmt"

	"github.com/tomz197/geobuilder/internal/geom"
)

// Label returns the letter shown for the i-th placed point.
func Label(i int) string {
	return string(rune('A' + i))
}

// FormatPoint formats p with one decimal place, as shown in the info panel.
func FormatPoint(p geom.Point) string {
	return fmt.Sprintf("(%.1f, %.1f)", p.X, p.Y)
}

// Info returns the info panel lines, or nil before any point is placed.
func (b *Board) Info() []string {
	if len(b.points) == 0 {
		return nil
	}

	lines := make([]string, 0, len(b.points)+5)
	lines = append(lines, "Points:")
	for i, p := range b.points {
		lines = append(lines, fmt.Sprintf("Point %s: %s", Label(i), FormatPoint(p)))
	}

	lines = append(lines, "Intersections:")
	pts := b.Intersections()
	if len(pts) == 0 {
		return append(lines, "No intersections")
	}
	for i, p := range pts {
		lines = append(lines, fmt.Sprintf("Intersection %d: %s", i+1, FormatPoint(p)))
	}
	return lines
}
