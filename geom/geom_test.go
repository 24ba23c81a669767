package geom

import (
	"math"
	"testing"
)

func almostEq(x, y, eps float64) bool {
	return math.Abs(x-y) <= eps
}

func vecAlmostEq(v, u Vec, eps float64) bool {
	return almostEq(v[0], u[0], eps) && almostEq(v[1], u[1], eps) &&
		almostEq(v[2], u[2], eps)
}

func TestCrossRightHanded(t *testing.T) {
	x, y, z := Vec{1, 0, 0}, Vec{0, 1, 0}, Vec{0, 0, 1}
	if !vecAlmostEq(x.Cross(y), z, 1e-12) {
		t.Errorf("x cross y = %v", x.Cross(y))
	}
	if !vecAlmostEq(y.Cross(x), z.Scale(-1), 1e-12) {
		t.Errorf("y cross x = %v", y.Cross(x))
	}
}

func TestReject(t *testing.T) {
	v, unit := Vec{3, 4, 5}, Vec{0, 0, 1}
	r := v.Reject(unit)
	if !vecAlmostEq(r, Vec{3, 4, 0}, 1e-12) {
		t.Errorf("Reject = %v", r)
	}
	if !almostEq(r.Dot(unit), 0, 1e-12) {
		t.Errorf("Reject not orthogonal: %g", r.Dot(unit))
	}
}

func TestNormalizeZero(t *testing.T) {
	if v := (Vec{}).Normalize(); v != (Vec{}) {
		t.Errorf("Normalized zero vector = %v", v)
	}
}

func TestWrapAngle(t *testing.T) {
	table := []struct{ in, out float64 }{
		{0, 0},
		{math.Pi, math.Pi},
		{-math.Pi, math.Pi},
		{3 * math.Pi, math.Pi},
		{2*math.Pi + 0.25, 0.25},
		{-2*math.Pi - 0.25, -0.25},
	}
	for n, line := range table {
		out := WrapAngle(line.in)
		if !almostEq(out, line.out, 1e-12) {
			t.Errorf("%d) WrapAngle(%g) = %g, not %g",
				n+1, line.in, out, line.out)
		}
	}
	// Idempotence on the branch.
	for _, a := range []float64{-3, -0.5, 0, 1.7, 3.1} {
		if !almostEq(WrapAngle(WrapAngle(a)), WrapAngle(a), 1e-12) {
			t.Errorf("WrapAngle not idempotent at %g", a)
		}
	}
}

// unitSquare is a closed 4-point cycle with perimeter 4 in the xy plane.
func unitSquare() []Vec {
	return []Vec{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}}
}

func TestPolylineLength(t *testing.T) {
	p := Polyline{Points: unitSquare()}
	if !almostEq(p.Length(), 4, 1e-12) {
		t.Errorf("Square perimeter = %g", p.Length())
	}
}

func TestCurveCyclicIndexing(t *testing.T) {
	c := NewCurve(unitSquare())
	if c.Next(3) != 0 || c.Prev(0) != 3 {
		t.Errorf("Seam indices: Next(3) = %d, Prev(0) = %d",
			c.Next(3), c.Prev(0))
	}
	if !almostEq(c.Perimeter(), 4, 1e-12) {
		t.Errorf("Perimeter = %g", c.Perimeter())
	}
	if !vecAlmostEq(c.Centroid(), Vec{0.5, 0.5, 0}, 1e-12) {
		t.Errorf("Centroid = %v", c.Centroid())
	}
	if !vecAlmostEq(c.Tangent(3), Vec{0, -1, 0}, 1e-12) {
		t.Errorf("Seam tangent = %v", c.Tangent(3))
	}
	if !vecAlmostEq(c.Mid(3), Vec{0, 0.5, 0}, 1e-12) {
		t.Errorf("Seam midpoint = %v", c.Mid(3))
	}
}

func TestTriangleInit(t *testing.T) {
	tri := &Triangle{}
	tri.Init(Vec{0, 0, 0}, Vec{2, 0, 0}, Vec{0, 2, 0}, Vec{0, 0, 5})
	if !almostEq(tri.Area, 2, 1e-10) {
		t.Errorf("Area = %g, not 2", tri.Area)
	}
	if !vecAlmostEq(tri.Normal, Vec{0, 0, 1}, 1e-12) {
		t.Errorf("Normal = %v", tri.Normal)
	}
	if !vecAlmostEq(tri.Center, Vec{2.0 / 3, 2.0 / 3, 0}, 1e-12) {
		t.Errorf("Center = %v", tri.Center)
	}
}
