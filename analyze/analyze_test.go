package analyze

import (
	"math"
	"testing"

	"github.com/phil-mansfield/goknot/geom"
)

func almostEq(x, y, eps float64) bool {
	return math.Abs(x-y) <= eps
}

// circle returns a closed curve of radius r in the z = 0 plane with radial
// frame vectors.
func circle(r float64, np int) *geom.Curve {
	pts := make([]geom.Vec, np)
	for s := range pts {
		theta := 2 * math.Pi * float64(s) / float64(np)
		pts[s] = geom.Vec{r * math.Cos(theta), r * math.Sin(theta), 0}
	}
	c := geom.NewCurve(pts)
	for s := range c.Points {
		c.Points[s].A = c.Points[s].P.Scale(1 / r)
	}
	return c
}

func TestGeometryCircleCurvature(t *testing.T) {
	r, np := 5.0, 200
	c := circle(r, np)
	Geometry(c)

	for s := range c.Points {
		if !almostEq(c.Points[s].Curvature, 1/r, 1e-3) {
			t.Fatalf(
				"Curvature at %d = %g, not %g",
				s, c.Points[s].Curvature, 1/r,
			)
		}
	}
}

func TestGeometryStraightSegments(t *testing.T) {
	// An axis-aligned square sampled at unit spacing, so interior edge
	// points have fully collinear segment triads.
	var pts []geom.Vec
	corners := []geom.Vec{{0, 0, 0}, {4, 0, 0}, {4, 4, 0}, {0, 4, 0}}
	for e := range corners {
		a, b := corners[e], corners[(e+1)%4]
		for q := 0; q < 4; q++ {
			frac := float64(q) / 4
			pts = append(pts, a.Add(b.Sub(a).Scale(frac)))
		}
	}
	c := geom.NewCurve(pts)
	Geometry(c)

	for s := range c.Points {
		k, tau := c.Points[s].Curvature, c.Points[s].Torsion
		if math.IsNaN(k) || math.IsInf(k, 0) ||
			math.IsNaN(tau) || math.IsInf(tau, 0) {
			t.Fatalf("Point %d has curvature %g, torsion %g", s, k, tau)
		}
	}

	// Point 1's triad lies entirely on the first edge.
	if c.Points[1].Curvature != 0 || c.Points[1].Torsion != 0 {
		t.Errorf(
			"Straight run has curvature %g, torsion %g",
			c.Points[1].Curvature, c.Points[1].Torsion,
		)
	}
}

func TestTopologyPlanarCircle(t *testing.T) {
	c := circle(5.0, 200)
	Geometry(c)
	totals := Topology(c)

	// A planar curve has no writhe, and a radial frame does not turn about
	// the tangent.
	if !almostEq(totals.Writhe, 0, 1e-10) {
		t.Errorf("Planar writhe = %g", totals.Writhe)
	}
	if !almostEq(totals.Twist, 0, 1e-6) {
		t.Errorf("Untwisted frame twist = %g", totals.Twist)
	}
	if !almostEq(totals.Length, 2*math.Pi*5, 0.01) {
		t.Errorf("Length = %g", totals.Length)
	}
}

func TestTopologyTwistedFrame(t *testing.T) {
	r, np, turns := 5.0, 400, 3
	c := circle(r, np)
	// Wind the frame vector about the tangent a whole number of times.
	for s := range c.Points {
		theta := 2 * math.Pi * float64(s) / float64(np)
		phase := float64(turns) * theta
		radial := c.Points[s].P.Scale(1 / r)
		c.Points[s].A = radial.Scale(math.Cos(phase)).
			Add(geom.Vec{0, 0, 1}.Scale(math.Sin(phase)))
	}

	Geometry(c)
	totals := Topology(c)
	if !almostEq(math.Abs(totals.Twist), float64(turns), 0.02) {
		t.Errorf("|Twist| = %g, not %d", math.Abs(totals.Twist), turns)
	}
}

func TestMatchComponent(t *testing.T) {
	prev := circle(5.0, 100)
	near := circle(5.0, 110)
	far := circle(5.0, 100)
	for s := range far.Points {
		far.Points[s].P = far.Points[s].P.Add(geom.Vec{40, 0, 0})
	}

	if got := matchComponent(prev, []*geom.Curve{far, near}); got != near {
		t.Errorf("Matched the far component")
	}
}

func TestMatchComponentPerimeterPenalty(t *testing.T) {
	prev := circle(5.0, 100)
	// Equally distant centroids, one with a triple perimeter.
	resized := circle(15.0, 100)
	offset := circle(5.0, 100)
	for s := range offset.Points {
		resized.Points[s].P = resized.Points[s].P.Add(geom.Vec{1, 0, 0})
		offset.Points[s].P = offset.Points[s].P.Add(geom.Vec{1, 0, 0})
	}

	got := matchComponent(prev, []*geom.Curve{resized, offset})
	if got != offset {
		t.Errorf("Matched on centroid alone, ignoring the size mismatch")
	}
}

func TestKinematicsTranslatedCircle(t *testing.T) {
	r, np := 5.0, 100
	dt := 0.1
	shift := geom.Vec{0, 0, 0.4}

	prev := circle(r, np)
	cur := circle(r, np)
	for s := range cur.Points {
		cur.Points[s].P = cur.Points[s].P.Add(shift)
		cur.Points[s].A = geom.Vec{0, 0, 1}
	}
	for s := range prev.Points {
		prev.Points[s].A = geom.Vec{0, 0, 1}
	}

	Kinematics([]*geom.Curve{prev}, []*geom.Curve{cur}, dt)

	want := shift.Scale(1 / dt)
	for s := range prev.Points {
		vel := prev.Points[s].Velocity
		if vel.Sub(want).Norm() > 0.05*want.Norm() {
			t.Fatalf("Velocity at %d = %v, not %v", s, vel, want)
		}
		if prev.Points[s].SpinRate > 1e-6 {
			t.Fatalf("SpinRate at %d = %g", s, prev.Points[s].SpinRate)
		}
	}
}

func TestSegmentPlane(t *testing.T) {
	frac, isect, ok := segmentPlane(
		geom.Vec{0, 0, -1}, geom.Vec{0, 0, 1}, geom.Vec{0, 0, 0},
		geom.Vec{0, 0, 1},
	)
	if !ok || !almostEq(frac, 0.5, 1e-12) ||
		!almostEq(isect.Norm(), 0, 1e-12) {
		t.Errorf("Crossing segment: ok = %v, frac = %g, isect = %v",
			ok, frac, isect)
	}

	// A segment entirely on one side misses.
	if _, _, ok := segmentPlane(
		geom.Vec{0, 0, 1}, geom.Vec{0, 0, 3}, geom.Vec{0, 0, 0},
		geom.Vec{0, 0, 1},
	); ok {
		t.Errorf("Hit reported for a non-crossing segment")
	}

	// A segment parallel to the plane misses.
	if _, _, ok := segmentPlane(
		geom.Vec{0, 0, 1}, geom.Vec{1, 0, 1}, geom.Vec{0, 0, 0},
		geom.Vec{0, 0, 1},
	); ok {
		t.Errorf("Hit reported for a parallel segment")
	}
}
