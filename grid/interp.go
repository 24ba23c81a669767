package grid

// TriLinear evaluates a cell-centered scalar field at arbitrary physical
// points by trilinear weighting over the eight surrounding cell centers.
// Points outside the lattice are clamped onto its boundary cells on
// reflecting axes and wrapped on periodic ones.
type TriLinear struct {
	g    *Grid
	vals []float64
}

// NewTriLinear returns a new TriLinear instance over the given field.
func NewTriLinear(g *Grid, vals []float64) *TriLinear {
	t := &TriLinear{}
	t.Init(g, vals)
	return t
}

// Init initializes a TriLinear instance. The field is referenced, not
// copied, so later writes to vals are observed by Eval.
func (t *TriLinear) Init(g *Grid, vals []float64) {
	if len(vals) != g.Volume {
		panic("grid: field length does not match grid volume.")
	}
	t.g, t.vals = g, vals
}

// base returns the lower-corner cell index and fractional offset along one
// axis for interpolation at continuous cell coordinate c.
func (t *TriLinear) base(c float64, a Axis) (lo int, f float64) {
	g := t.g
	n := g.n[a]
	i := floorInt(c)
	f = c - float64(i)
	if g.periodic[a] {
		return pMod(i, n), f
	}
	if i < 0 {
		return 0, 0
	}
	if i > n-2 {
		return n - 2, 1
	}
	return i, f
}

// Eval returns the interpolated field value at the physical point (x, y, z).
func (t *TriLinear) Eval(x, y, z float64) float64 {
	g := t.g
	i0, fx := t.base(g.cellCoord(x, X), X)
	j0, fy := t.base(g.cellCoord(y, Y), Y)
	k0, fz := t.base(g.cellCoord(z, Z), Z)
	i1 := g.Neighbor(i0, X, 1)
	j1 := g.Neighbor(j0, Y, 1)
	k1 := g.Neighbor(k0, Z, 1)

	v := t.vals
	c00 := v[g.Idx(i0, j0, k0)]*(1-fx) + v[g.Idx(i1, j0, k0)]*fx
	c10 := v[g.Idx(i0, j1, k0)]*(1-fx) + v[g.Idx(i1, j1, k0)]*fx
	c01 := v[g.Idx(i0, j0, k1)]*(1-fx) + v[g.Idx(i1, j0, k1)]*fx
	c11 := v[g.Idx(i0, j1, k1)]*(1-fx) + v[g.Idx(i1, j1, k1)]*fx

	c0 := c00*(1-fy) + c10*fy
	c1 := c01*(1-fy) + c11*fy
	return c0*(1-fz) + c1*fz
}

// Gradient returns the interpolated gradient of the field at (x, y, z),
// built from central differences at the eight surrounding cell centers.
func (t *TriLinear) Gradient(x, y, z float64) (gx, gy, gz float64) {
	g := t.g
	i0, fx := t.base(g.cellCoord(x, X), X)
	j0, fy := t.base(g.cellCoord(y, Y), Y)
	k0, fz := t.base(g.cellCoord(z, Z), Z)

	var w, corner [3]float64
	fs := [3]float64{fx, fy, fz}
	ijk0 := [3]int{i0, j0, k0}
	for ci := 0; ci < 2; ci++ {
		for cj := 0; cj < 2; cj++ {
			for ck := 0; ck < 2; ck++ {
				cs := [3]int{ci, cj, ck}
				wt := 1.0
				for a := 0; a < 3; a++ {
					if cs[a] == 0 {
						wt *= 1 - fs[a]
					} else {
						wt *= fs[a]
					}
				}
				i := g.Neighbor(ijk0[0], X, cs[0])
				j := g.Neighbor(ijk0[1], Y, cs[1])
				k := g.Neighbor(ijk0[2], Z, cs[2])
				corner = t.cellGradient(i, j, k)
				for a := 0; a < 3; a++ {
					w[a] += wt * corner[a]
				}
			}
		}
	}
	return w[0], w[1], w[2]
}

// cellGradient computes the boundary-aware central-difference gradient at a
// cell center.
func (t *TriLinear) cellGradient(i, j, k int) [3]float64 {
	g, v := t.g, t.vals
	d := 2 * g.H
	return [3]float64{
		(v[g.Idx(g.Neighbor(i, X, 1), j, k)] - v[g.Idx(g.Neighbor(i, X, -1), j, k)]) / d,
		(v[g.Idx(i, g.Neighbor(j, Y, 1), k)] - v[g.Idx(i, g.Neighbor(j, Y, -1), k)]) / d,
		(v[g.Idx(i, j, g.Neighbor(k, Z, 1))] - v[g.Idx(i, j, g.Neighbor(k, Z, -1))]) / d,
	}
}

// floorInt truncates toward negative infinity without an fpu round trip.
func floorInt(x float64) int {
	i := int(x)
	if x < 0 && float64(i) != x {
		i--
	}
	return i
}
