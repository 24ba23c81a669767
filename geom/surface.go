package geom

import (
	"math"
)

// Triangle is one oriented face of an input surface.
type Triangle struct {
	V      [3]Vec
	Center Vec
	Normal Vec
	Area   float64
}

// Init initializes a Triangle from its vertices and outward normal
// direction. The centroid and area are derived from the vertices.
func (t *Triangle) Init(a, b, c, normal Vec) {
	t.V = [3]Vec{a, b, c}
	t.Normal = normal.Normalize()
	t.Refresh()
}

// Refresh recomputes the centroid and the Heron area from the current
// vertices.
func (t *Triangle) Refresh() {
	t.Center = t.V[0].Add(t.V[1]).Add(t.V[2]).Scale(1.0 / 3)

	a := t.V[1].Sub(t.V[0]).Norm()
	b := t.V[2].Sub(t.V[1]).Norm()
	c := t.V[0].Sub(t.V[2]).Norm()
	s := (a + b + c) / 2
	t.Area = math.Sqrt(s * (s - a) * (s - b) * (s - c))
}

// Surface is an oriented triangulated surface.
type Surface struct {
	Tris []Triangle
}

// TotalArea returns the summed face area.
func (s *Surface) TotalArea() float64 {
	total := 0.0
	for i := range s.Tris {
		total += s.Tris[i].Area
	}
	return total
}
