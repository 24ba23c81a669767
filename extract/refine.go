package extract

import (
	"math"

	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/phil-mansfield/goknot/geom"
)

// respacePasses is the number of relaxation sweeps pulling the vertices
// toward uniform spacing.
const respacePasses = 3

// refine turns a raw traced point loop into a finished curve: vertices are
// relaxed toward uniform spacing, the material-frame vector is sampled from
// the activator gradient, and both the coordinates and the frame are
// low-pass filtered at the scale set by the curve's own perimeter.
func (c *Context) refine(pts []geom.Vec) *geom.Curve {
	respace(pts, respacePasses)

	perimeter := 0.0
	for s := range pts {
		perimeter += pts[(s+1)%len(pts)].Sub(pts[s]).Norm()
	}
	cutoff := 2 * math.Pi * perimeter / (6 * c.lambda)
	smooth(pts, cutoff)

	frames := c.frameVectors(pts)
	smooth(frames, cutoff)
	for s := range frames {
		frames[s] = frames[s].Normalize()
	}

	curve := geom.NewCurve(pts)
	for s := range curve.Points {
		curve.Points[s].A = frames[s]
	}
	return curve
}

// respace relaxes the loop toward uniform vertex spacing: each pass
// recomputes the perimeter, derives the target spacing, and moves every
// vertex along its local edge direction to sit that far from its
// predecessor.
func respace(pts []geom.Vec, passes int) {
	np := len(pts)
	for pass := 0; pass < passes; pass++ {
		total := 0.0
		for s := 0; s < np; s++ {
			total += pts[(s+1)%np].Sub(pts[s]).Norm()
		}
		dl := total / float64(np)
		for s := 0; s < np; s++ {
			d := pts[(s+1)%np].Sub(pts[s])
			norm := d.Norm()
			if norm == 0 {
				continue
			}
			pts[(s+1)%np] = pts[s].Add(d.Scale(dl / norm))
		}
	}
}

// frameVectors samples the unit material-frame vector at every vertex: the
// interpolated activator gradient with its tangential component removed.
func (c *Context) frameVectors(pts []geom.Vec) []geom.Vec {
	np := len(pts)
	frames := make([]geom.Vec, np)
	for s := 0; s < np; s++ {
		gx, gy, gz := c.iu.Gradient(pts[s][0], pts[s][1], pts[s][2])
		du := geom.Vec{gx, gy, gz}
		// central difference, since the frame lives on the vertices
		tan := pts[(s+1)%np].Sub(pts[(s+np-1)%np]).Scale(0.5)
		tsq := tan.Dot(tan)
		if tsq > 0 {
			du = du.Sub(tan.Scale(du.Dot(tan) / tsq))
		}
		frames[s] = du.Normalize()
	}
	return frames
}

// smooth low-pass filters the three coordinate sequences of a cyclic vector
// loop independently, with gain 1/sqrt(1 + (k/cutoff)^8) on harmonic k.
func smooth(pts []geom.Vec, cutoff float64) {
	np := len(pts)
	if np < 4 {
		return
	}
	fft := fourier.NewFFT(np)
	data := make([]float64, np)
	for a := 0; a < 3; a++ {
		for s := range pts {
			data[s] = pts[s][a]
		}
		coeffs := fft.Coefficients(nil, data)
		for k := range coeffs {
			gain := 1 / math.Sqrt(1+math.Pow(float64(k)/cutoff, 8))
			coeffs[k] *= complex(gain, 0)
		}
		fft.Sequence(data, coeffs)
		for s := range pts {
			pts[s][a] = data[s] / float64(np)
		}
	}
}
