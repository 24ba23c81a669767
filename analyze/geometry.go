/*package analyze computes the differential geometry, topology, and
cross-snapshot kinematics of extracted filament curves.*/
package analyze

import (
	"math"

	"github.com/phil-mansfield/goknot/geom"
)

// Geometry fills in the per-point curvature, torsion, and twist density of
// a curve from forward differences over up to the next two points. The
// frame vectors must already be set.
func Geometry(c *geom.Curve) {
	c.RefreshSpacing()
	np := c.Len()

	for s := 0; s < np; s++ {
		// tangent triad over segments s, s+1, s+2
		var T [3]geom.Vec
		var ds [3]float64
		for i := 0; i < 3; i++ {
			d := c.Points[(s+i+1)%np].P.Sub(c.Points[(s+i)%np].P)
			ds[i] = d.Norm()
			T[i] = d.Scale(1 / ds[i])
		}

		// normals from the tangent rate over consecutive segments
		var N [2]geom.Vec
		var curv [2]float64
		for i := 0; i < 2; i++ {
			N[i] = T[i+1].Sub(T[i]).Scale(1 / ds[i])
			curv[i] = N[i].Norm()
			if curv[i] > 0 {
				N[i] = N[i].Scale(1 / curv[i])
			}
		}

		// Torsion from the Frenet relation dN/ds = -kappa T + tau B,
		// read off the x component of the binormal. Straight runs have no
		// normal direction and a binormal normal to x carries no torsion
		// information, so both degenerate cases take torsion zero.
		torsion := 0.0
		if curv[0] > 0 && curv[1] > 0 {
			binormalX := T[0][1]*N[0][2] - N[0][1]*T[0][2]
			if binormalX != 0 {
				torsion = ((N[1][0]-N[0][0])/ds[0] + curv[0]*T[0][0]) /
					binormalX
			}
		}

		p := &c.Points[s]
		p.Curvature = curv[0]
		p.Torsion = torsion
		p.TwistDensity = twistDensity(c, s, T[0], ds[0])
	}
}

// twistDensity is the rotation rate of the frame vector about the tangent
// over segment s, in turns per unit arclength.
func twistDensity(c *geom.Curve, s int, t geom.Vec, ds float64) float64 {
	np := c.Len()
	a := c.Points[s].A
	da := c.Points[(s+1)%np].A.Sub(a).Scale(1 / ds)
	return t.Dot(a.Cross(da)) / (2 * math.Pi * t.Norm())
}
