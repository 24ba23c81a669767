package extract

import (
	"gonum.org/v1/gonum/optimize"

	"github.com/phil-mansfield/goknot/geom"
)

const (
	// A trace closes once it returns within closeDist grid spacings of its
	// start, after at least minPoints points.
	closeDist = 3.0
	minPoints = 10
	// Traces longer than maxPoints have failed to close and are discarded.
	maxPoints = 50000

	minimizerIters = 500
	minimizerTol   = 1e-2
)

// trace follows the ridge of the cross-gradient magnitude from the seed
// cell until the curve closes on itself. Each step moves a fixed fraction
// of the core radius along the local field direction, then pulls the point
// back onto the ridge with a two-parameter derivative-free minimization in
// the plane normal to the step. ok is false if the trace left the box or
// failed to close.
func (c *Context) trace(i, j, k int) (pts []geom.Vec, ok bool) {
	cur := c.g.Pos(i, j, k)
	pts = append(pts, cur)
	c.mark(i, j, k)

	for {
		tan, ok := c.tangent(cur)
		if !ok {
			return nil, false
		}

		trial := cur.Add(tan.Scale(0.1 * c.coreRadius))
		if !c.inBox(trial) {
			return nil, false
		}

		// Confinement direction: the magnitude gradient with its component
		// along the tangent removed.
		gx, gy, gz := c.im.Gradient(trial[0], trial[1], trial[2])
		f := geom.Vec{gx, gy, gz}.Reject(tan).Normalize()
		b := f.Cross(tan)

		alpha, beta := c.confine(trial, f, b)
		cur = trial.Add(f.Scale(alpha)).Add(b.Scale(beta))

		pts = append(pts, cur)
		ci, cj, ck := c.g.Cell(cur)
		c.mark(ci, cj, ck)

		if len(pts) > minPoints &&
			cur.Sub(pts[0]).Norm() < closeDist*c.g.H {
			return pts, true
		}
		if len(pts) > maxPoints {
			return nil, false
		}
	}
}

// tangent returns the normalized interpolated cross-gradient vector at p.
func (c *Context) tangent(p geom.Vec) (geom.Vec, bool) {
	if !c.inBox(p) {
		return geom.Vec{}, false
	}
	t := geom.Vec{
		c.ix.Eval(p[0], p[1], p[2]),
		c.iy.Eval(p[0], p[1], p[2]),
		c.iz.Eval(p[0], p[1], p[2]),
	}
	if t.Norm() == 0 {
		return geom.Vec{}, false
	}
	return t.Normalize(), true
}

// confine minimizes the negative interpolated magnitude over offsets along
// f and b with Nelder-Mead, starting from a simplex an eighth of a
// wavelength per pi across.
func (c *Context) confine(trial, f, b geom.Vec) (alpha, beta float64) {
	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			p := trial.Add(f.Scale(x[0])).Add(b.Scale(x[1]))
			ucv := geom.Vec{
				c.ix.Eval(p[0], p[1], p[2]),
				c.iy.Eval(p[0], p[1], p[2]),
				c.iz.Eval(p[0], p[1], p[2]),
			}
			return -ucv.Norm()
		},
	}
	settings := &optimize.Settings{
		MajorIterations: minimizerIters,
		Converger: &optimize.FunctionConverge{
			Absolute:   minimizerTol,
			Iterations: 25,
		},
	}
	method := &optimize.NelderMead{SimplexSize: c.coreRadius / 4}

	result, err := optimize.Minimize(problem, []float64{0, 0}, settings, method)
	if result == nil || err != nil && result.X == nil {
		return 0, 0
	}
	return result.X[0], result.X[1]
}
