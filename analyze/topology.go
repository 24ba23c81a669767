package analyze

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/phil-mansfield/goknot/geom"
)

// Totals are the integrated topological quantities of one curve at one
// snapshot.
type Totals struct {
	Writhe, Twist, Length float64
}

// Topology fills in the per-segment writhe density of a curve through the
// discretized Gauss double integral and returns the arclength-weighted
// totals. Geometry must have run first so spacings and twist densities are
// current.
func Topology(c *geom.Curve) Totals {
	np := c.Len()

	writhe := make([]float64, np)
	twist := make([]float64, np)
	lengths := make([]float64, np)

	for s := 0; s < np; s++ {
		ds := c.Points[s].Spacing
		ts := c.Points[(s+1)%np].P.Sub(c.Points[s].P).Scale(1 / ds)
		midS := c.Mid(s)

		w := 0.0
		for m := 0; m < np; m++ {
			if m == s {
				continue
			}
			diff := midS.Sub(c.Mid(m))
			tm := c.Points[(m+1)%np].P.Sub(c.Points[m].P).Scale(1 / ds)
			rsq := diff.Dot(diff)
			r := math.Sqrt(rsq)
			w += ds * diff.Dot(ts.Cross(tm)) / (4 * math.Pi * rsq * r)
		}

		c.Points[s].WritheDensity = w
		writhe[s] = w * ds
		twist[s] = c.Points[s].TwistDensity * ds
		lengths[s] = ds
	}

	return Totals{
		Writhe: floats.Sum(writhe),
		Twist:  floats.Sum(twist),
		Length: floats.Sum(lengths),
	}
}

// Analyze runs the full per-curve analysis and returns the totals for each
// component.
func Analyze(curves []*geom.Curve) []Totals {
	totals := make([]Totals, len(curves))
	for i, c := range curves {
		Geometry(c)
		totals[i] = Topology(c)
	}
	return totals
}
