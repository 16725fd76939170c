package geom

import (
	"errors"
	"math"
	"testing"

	"github.com/gonum/floats"
)

const tol = 1e-6

func samePoint(a, b Point) bool {
	return floats.EqualWithinAbs(a.X, b.X, tol) && floats.EqualWithinAbs(a.Y, b.Y, tol)
}

// sameSet reports whether got and want hold the same two points in any order.
func sameSet(got, want []Point) bool {
	if len(got) != 2 || len(want) != 2 {
		return false
	}
	return (samePoint(got[0], want[0]) && samePoint(got[1], want[1])) ||
		(samePoint(got[0], want[1]) && samePoint(got[1], want[0]))
}

func TestIntersectEmpty(t *testing.T) {
	tests := []struct {
		name string
		c1   Point
		r1   float64
		c2   Point
		r2   float64
	}{
		{"separated", Pt(0, 0), 2, Pt(10, 0), 3},
		{"separated diagonal", Pt(-5, -5), 1, Pt(5, 5), 1},
		{"nested", Pt(0, 0), 10, Pt(1, 0), 2},
		{"nested other way", Pt(1, 0), 2, Pt(0, 0), 10},
		{"concentric equal radii", Pt(3, 4), 5, Pt(3, 4), 5},
		{"concentric different radii", Pt(3, 4), 5, Pt(3, 4), 2},
		{"concentric zero radii", Pt(3, 4), 0, Pt(3, 4), 0},
		{"zero radius off rim", Pt(0, 0), 5, Pt(1, 1), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Intersect(tt.c1, tt.r1, tt.c2, tt.r2)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != 0 {
				t.Errorf("got %v, want no intersections", got)
			}
		})
	}
}

func TestIntersectGeneral(t *testing.T) {
	got, err := Intersect(Pt(0, 0), 5, Pt(8, 0), 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !sameSet(got, []Point{Pt(4, 3), Pt(4, -3)}) {
		t.Errorf("got %v, want (4, 3) and (4, -3)", got)
	}
}

func TestIntersectOrder(t *testing.T) {
	// P is mid + h*(dy, -dx)/d, Q the mirror image.
	got, err := Intersect(Pt(0, 0), 5, Pt(8, 0), 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d points, want 2", len(got))
	}
	if !samePoint(got[0], Pt(4, -3)) || !samePoint(got[1], Pt(4, 3)) {
		t.Errorf("got %v, want [(4, -3) (4, 3)]", got)
	}
}

func TestIntersectTangent(t *testing.T) {
	tests := []struct {
		name string
		c1   Point
		r1   float64
		c2   Point
		r2   float64
		want Point
	}{
		{"external", Pt(0, 0), 3, Pt(10, 0), 7, Pt(3, 0)},
		{"internal", Pt(0, 0), 10, Pt(4, 0), 6, Pt(10, 0)},
		{"vertical", Pt(2, 1), 2, Pt(2, 7), 4, Pt(2, 3)},
		{"zero radius on rim", Pt(0, 0), 5, Pt(3, 4), 0, Pt(3, 4)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Intersect(tt.c1, tt.r1, tt.c2, tt.r2)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != 2 {
				t.Fatalf("got %v, want two identical points", got)
			}
			for i, p := range got {
				if math.IsNaN(p.X) || math.IsNaN(p.Y) {
					t.Fatalf("point %d is NaN: %v", i, p)
				}
				if !samePoint(p, tt.want) {
					t.Errorf("point %d = %v, want %v", i, p, tt.want)
				}
			}
		})
	}
}

func TestIntersectNearTangentNoNaN(t *testing.T) {
	// 0.1 + 0.2 is not exactly 0.3, so h² lands a hair off zero.
	got, err := Intersect(Pt(0, 0), 0.1, Pt(0.30000000000000004, 0), 0.2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, p := range got {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) {
			t.Fatalf("got NaN point %v", p)
		}
	}
}

func TestIntersectSymmetry(t *testing.T) {
	cases := []struct {
		c1 Point
		r1 float64
		c2 Point
		r2 float64
	}{
		{Pt(0, 0), 5, Pt(8, 0), 5},
		{Pt(12.5, -3), 7, Pt(4, 9), 11},
		{Pt(100, 40), 30, Pt(130, 70), 25},
	}

	for _, c := range cases {
		ab, err := Intersect(c.c1, c.r1, c.c2, c.r2)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		ba, err := Intersect(c.c2, c.r2, c.c1, c.r1)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !sameSet(ab, ba) {
			t.Errorf("Intersect(%v, %v) = %v, swapped = %v", c.c1, c.c2, ab, ba)
		}
	}
}

func TestIntersectRoundTrip(t *testing.T) {
	cases := []struct {
		a, b Circle
	}{
		{Circle{Center: Pt(0, 0), Radius: 5}, Circle{Center: Pt(8, 0), Radius: 5}},
		{Circle{Center: Pt(12.5, -3), Radius: 7}, Circle{Center: Pt(4, 9), Radius: 11}},
		{Circle{Center: Pt(60, 30), Radius: 20}, Circle{Center: Pt(75, 42), Radius: 9.5}},
		{Circle{Center: Pt(-1, -1), Radius: 1.5}, Circle{Center: Pt(0.5, -0.25), Radius: 1}},
	}

	for _, c := range cases {
		got, err := c.a.Intersect(c.b)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("%v and %v: got %v, want two points", c.a, c.b, got)
		}
		for _, p := range got {
			if !c.a.OnRim(p, tol) {
				t.Errorf("%v is %v from first center, want %v", p, Distance(c.a.Center, p), c.a.Radius)
			}
			if !c.b.OnRim(p, tol) {
				t.Errorf("%v is %v from second center, want %v", p, Distance(c.b.Center, p), c.b.Radius)
			}
		}
		if samePoint(got[0], got[1]) {
			t.Errorf("crossing circles returned coincident points %v", got)
		}
	}
}

func TestIntersectIdempotent(t *testing.T) {
	c1, c2 := Pt(12.5, -3), Pt(4, 9)
	first, err := Intersect(c1, 7, c2, 11)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Intersect(c1, 7, c2, 11)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(first) != len(second) {
		t.Fatalf("lengths differ: %v vs %v", first, second)
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("point %d differs: %v vs %v", i, first[i], second[i])
		}
	}
	if c1 != Pt(12.5, -3) || c2 != Pt(4, 9) {
		t.Errorf("inputs were modified: %v %v", c1, c2)
	}
}

func TestIntersectInvalid(t *testing.T) {
	nan := math.NaN()
	inf := math.Inf(1)

	tests := []struct {
		name string
		c1   Point
		r1   float64
		c2   Point
		r2   float64
	}{
		{"negative first radius", Pt(0, 0), -1, Pt(1, 0), 1},
		{"negative second radius", Pt(0, 0), 1, Pt(1, 0), -1},
		{"nan coordinate", Pt(nan, 0), 1, Pt(1, 0), 1},
		{"nan radius", Pt(0, 0), nan, Pt(1, 0), 1},
		{"infinite coordinate", Pt(0, 0), 1, Pt(1, inf), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Intersect(tt.c1, tt.r1, tt.c2, tt.r2)
			if !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("err = %v, want ErrInvalidArgument", err)
			}
			if got != nil {
				t.Errorf("got %v, want nil", got)
			}
		})
	}
}

func TestIntersectLargeCoordinates(t *testing.T) {
	const r = 1e200
	a := Circle{Center: Pt(0, 0), Radius: r}
	b := Circle{Center: Pt(r, 0), Radius: r}

	got, err := a.Intersect(b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %v, want two points", got)
	}
	for _, p := range got {
		if !floats.EqualWithinRel(Distance(a.Center, p), r, 1e-9) ||
			!floats.EqualWithinRel(Distance(b.Center, p), r, 1e-9) {
			t.Errorf("%v is not on both circles", p)
		}
	}
}
