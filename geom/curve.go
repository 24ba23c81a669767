package geom

// Polyline is one closed input filament component: an ordered cycle of
// points with edge s running from point s to point s+1, wrapping at the
// end.
type Polyline struct {
	Points []Vec
}

// Length returns the cyclic perimeter of the polyline.
func (p *Polyline) Length() float64 {
	total := 0.0
	n := len(p.Points)
	for s := 0; s < n; s++ {
		total += p.Points[(s+1)%n].Sub(p.Points[s]).Norm()
	}
	return total
}

// Point is one vertex of an extracted filament curve together with the
// local quantities attached to it during analysis.
type Point struct {
	P Vec // position
	A Vec // unit material-frame vector

	Curvature     float64
	Torsion       float64
	TwistDensity  float64
	WritheDensity float64
	Spacing       float64 // arclength to the next point

	Velocity Vec
	SpinRate float64
}

// Curve is one extracted filament: an ordered cyclic point sequence. All
// index arithmetic wraps, so neighbor lookups are valid at the seam.
type Curve struct {
	Points []Point
}

// NewCurve returns a Curve over the given positions with spacings filled
// in and all other point quantities zero.
func NewCurve(pts []Vec) *Curve {
	c := &Curve{Points: make([]Point, len(pts))}
	for s := range pts {
		c.Points[s].P = pts[s]
	}
	c.RefreshSpacing()
	return c
}

// Len returns the number of points on the curve.
func (c *Curve) Len() int { return len(c.Points) }

// Next returns the cyclic successor index of s.
func (c *Curve) Next(s int) int { return (s + 1) % len(c.Points) }

// Prev returns the cyclic predecessor index of s.
func (c *Curve) Prev(s int) int { return (s + len(c.Points) - 1) % len(c.Points) }

// Tangent returns the unit forward tangent at point s.
func (c *Curve) Tangent(s int) Vec {
	return c.Points[c.Next(s)].P.Sub(c.Points[s].P).Normalize()
}

// Mid returns the midpoint of segment s.
func (c *Curve) Mid(s int) Vec {
	return c.Points[s].P.Add(c.Points[c.Next(s)].P).Scale(0.5)
}

// RefreshSpacing recomputes every point's arclength-to-next from the
// current positions.
func (c *Curve) RefreshSpacing() {
	for s := range c.Points {
		c.Points[s].Spacing = c.Points[c.Next(s)].P.Sub(c.Points[s].P).Norm()
	}
}

// Perimeter returns the total cyclic length of the curve.
func (c *Curve) Perimeter() float64 {
	total := 0.0
	for s := range c.Points {
		total += c.Points[s].Spacing
	}
	return total
}

// Centroid returns the mean point position.
func (c *Curve) Centroid() Vec {
	var sum Vec
	for s := range c.Points {
		sum = sum.Add(c.Points[s].P)
	}
	return sum.Scale(1 / float64(len(c.Points)))
}
