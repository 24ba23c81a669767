/*package geom contains the vector, curve, and surface primitives shared by
the field engines and the filament analysis.*/
package geom

import (
	"math"
)

// Vec is a three dimensional vector.
type Vec [3]float64

// Add returns the sum of two vectors.
func (v Vec) Add(u Vec) Vec { return Vec{v[0] + u[0], v[1] + u[1], v[2] + u[2]} }

// Sub returns the difference of two vectors.
func (v Vec) Sub(u Vec) Vec { return Vec{v[0] - u[0], v[1] - u[1], v[2] - u[2]} }

// Scale returns the vector scaled by s.
func (v Vec) Scale(s float64) Vec { return Vec{v[0] * s, v[1] * s, v[2] * s} }

// Dot returns the inner product of two vectors.
func (v Vec) Dot(u Vec) float64 { return v[0]*u[0] + v[1]*u[1] + v[2]*u[2] }

// Cross returns the cross product of two vectors.
func (v Vec) Cross(u Vec) Vec {
	return Vec{
		v[1]*u[2] - v[2]*u[1],
		v[2]*u[0] - v[0]*u[2],
		v[0]*u[1] - v[1]*u[0],
	}
}

// Norm returns the Euclidean length of the vector.
func (v Vec) Norm() float64 { return math.Sqrt(v.Dot(v)) }

// Normalize returns the unit vector along v. The zero vector is returned
// unchanged.
func (v Vec) Normalize() Vec {
	n := v.Norm()
	if n == 0 {
		return v
	}
	return v.Scale(1 / n)
}

// Reject returns the component of v orthogonal to the unit vector t.
func (v Vec) Reject(t Vec) Vec {
	return v.Sub(t.Scale(v.Dot(t)))
}

// WrapAngle maps an angle onto the branch (-pi, pi].
func WrapAngle(t float64) float64 {
	for t > math.Pi {
		t -= 2 * math.Pi
	}
	for t <= -math.Pi {
		t += 2 * math.Pi
	}
	return t
}
