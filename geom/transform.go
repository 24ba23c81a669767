package geom

import (
	"math"
)

// BoxFit rescales input geometry into a target physical box, recenters it
// on its bounding-box midpoint, then applies a fixed rotation and shift.
type BoxFit struct {
	Target         Vec // target extent per axis
	PreserveAspect bool
	Theta, Phi     float64 // rotation about y, then about z
	Shift          Vec
}

// Scales returns the per-axis scale factor mapping the input bounds into
// the target box. Axes with no input extent keep factor 1 and do not
// participate in the aspect-preserving minimum.
func (b *BoxFit) Scales(min, max Vec) Vec {
	s := Vec{1, 1, 1}
	var nonzero [3]bool
	for a := 0; a < 3; a++ {
		if max[a]-min[a] > 0 {
			s[a] = b.Target[a] / (max[a] - min[a])
			nonzero[a] = true
		}
	}
	if !b.PreserveAspect {
		return s
	}

	minScale, found := math.Inf(+1), false
	for a := 0; a < 3; a++ {
		if nonzero[a] && s[a] < minScale {
			minScale, found = s[a], true
		}
	}
	if !found {
		return s
	}
	return Vec{minScale, minScale, minScale}
}

// Polylines normalizes a set of closed curves in place and returns their
// total length as a diagnostic.
func (b *BoxFit) Polylines(ps []Polyline) float64 {
	min, max := polylineBounds(ps)
	s := b.Scales(min, max)
	mid := min.Add(max).Scale(0.5)

	for c := range ps {
		pts := ps[c].Points
		for i := range pts {
			pts[i] = b.place(pts[i], mid, s)
		}
	}

	total := 0.0
	for c := range ps {
		total += ps[c].Length()
	}
	return total
}

// Surface normalizes a triangulated surface in place and returns its total
// area as a diagnostic. Normals scale contravariantly (component i by the
// product of the other two axis factors) and are renormalized.
func (b *BoxFit) Surface(surf *Surface) float64 {
	min, max := surfaceBounds(surf)
	s := b.Scales(min, max)
	mid := min.Add(max).Scale(0.5)

	for i := range surf.Tris {
		tri := &surf.Tris[i]
		for j := 0; j < 3; j++ {
			tri.V[j] = b.place(tri.V[j], mid, s)
		}
		n := Vec{
			tri.Normal[0] * s[1] * s[2],
			tri.Normal[1] * s[0] * s[2],
			tri.Normal[2] * s[0] * s[1],
		}
		tri.Normal = b.rotate(n).Normalize()
		tri.Refresh()
	}
	return surf.TotalArea()
}

// place recenters, scales, rotates, and shifts a single point.
func (b *BoxFit) place(p, mid, s Vec) Vec {
	q := Vec{
		s[0] * (p[0] - mid[0]),
		s[1] * (p[1] - mid[1]),
		s[2] * (p[2] - mid[2]),
	}
	return b.rotate(q).Add(b.Shift)
}

// rotate applies the y-then-z rotation.
func (b *BoxFit) rotate(p Vec) Vec {
	ct, st := math.Cos(b.Theta), math.Sin(b.Theta)
	cp, sp := math.Cos(b.Phi), math.Sin(b.Phi)
	q := Vec{ct*p[0] + st*p[2], p[1], -st*p[0] + ct*p[2]}
	return Vec{cp*q[0] - sp*q[1], sp*q[0] + cp*q[1], q[2]}
}

func polylineBounds(ps []Polyline) (min, max Vec) {
	min = Vec{math.Inf(+1), math.Inf(+1), math.Inf(+1)}
	max = Vec{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
	for c := range ps {
		for _, p := range ps[c].Points {
			minMaxUpdate(&min, &max, p)
		}
	}
	return min, max
}

func surfaceBounds(s *Surface) (min, max Vec) {
	min = Vec{math.Inf(+1), math.Inf(+1), math.Inf(+1)}
	max = Vec{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
	for i := range s.Tris {
		for j := 0; j < 3; j++ {
			minMaxUpdate(&min, &max, s.Tris[i].V[j])
		}
	}
	return min, max
}

func minMaxUpdate(min, max *Vec, p Vec) {
	for a := 0; a < 3; a++ {
		if p[a] < min[a] {
			min[a] = p[a]
		}
		if p[a] > max[a] {
			max[a] = p[a]
		}
	}
}
