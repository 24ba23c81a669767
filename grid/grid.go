/*package grid provides a uniform cell-centered 3D lattice and the index
arithmetic for reasoning over a 1D slice as if it were that lattice.*/
package grid

import (
	"github.com/phil-mansfield/goknot/geom"
)

// Axis selects one of the three lattice directions.
type Axis int

const (
	X Axis = iota
	Y
	Z
)

// Grid is a fixed-resolution lattice of Nx*Ny*Nz cells with spacing H.
// Cell centers sit half a spacing off the box walls and the physical origin
// is the box center. Each axis is independently reflecting or periodic.
type Grid struct {
	Nx, Ny, Nz int
	H          float64
	Volume     int

	n         [3]int
	periodic  [3]bool
	slab, row int
}

// NewGrid returns a new Grid instance with all axes reflecting.
func NewGrid(nx, ny, nz int, h float64) *Grid {
	g := &Grid{}
	g.Init(nx, ny, nz, h)
	return g
}

// Init initializes a Grid instance.
func (g *Grid) Init(nx, ny, nz int, h float64) {
	g.Nx, g.Ny, g.Nz = nx, ny, nz
	g.H = h
	g.Volume = nx * ny * nz

	g.n = [3]int{nx, ny, nz}
	g.slab = ny * nz
	g.row = nz
}

// SetPeriodic selects the boundary rule per axis. Axes default to
// reflecting.
func (g *Grid) SetPeriodic(x, y, z bool) {
	g.periodic = [3]bool{x, y, z}
}

// Periodic returns true if the given axis wraps.
func (g *Grid) Periodic(a Axis) bool { return g.periodic[a] }

// N returns the cell count along the given axis.
func (g *Grid) N(a Axis) int { return g.n[a] }

// Idx returns the linear index of cell (i, j, k).
func (g *Grid) Idx(i, j, k int) int { return i*g.slab + j*g.row + k }

// Coords returns the cell coordinates of a linear index.
func (g *Grid) Coords(idx int) (i, j, k int) {
	i = idx / g.slab
	j = (idx % g.slab) / g.row
	k = idx % g.row
	return i, j, k
}

// Neighbor returns the cell index at offset p from i along axis a, wrapping
// on periodic axes and reflecting back inside on reflecting axes.
func (g *Grid) Neighbor(i int, a Axis, p int) int {
	n := g.n[a]
	if g.periodic[a] {
		return pMod(i+p, n)
	}
	if j := i + p; j >= 0 && j < n {
		return j
	}
	return i - p
}

// WrapDelta returns the signed cell offset from i0 to i1 along axis a,
// taking the short way around on periodic axes.
func (g *Grid) WrapDelta(i0, i1 int, a Axis) int {
	d := i1 - i0
	if !g.periodic[a] {
		return d
	}
	n := g.n[a]
	if 2*d > n {
		d -= n
	} else if 2*d < -n {
		d += n
	}
	return d
}

// X returns the physical coordinate of the center of column i.
func (g *Grid) X(i int) float64 { return (float64(i) + 0.5 - float64(g.Nx)/2) * g.H }

// Y returns the physical coordinate of the center of row j.
func (g *Grid) Y(j int) float64 { return (float64(j) + 0.5 - float64(g.Ny)/2) * g.H }

// Z returns the physical coordinate of the center of layer k.
func (g *Grid) Z(k int) float64 { return (float64(k) + 0.5 - float64(g.Nz)/2) * g.H }

// Pos returns the physical position of the center of cell (i, j, k).
func (g *Grid) Pos(i, j, k int) geom.Vec {
	return geom.Vec{g.X(i), g.Y(j), g.Z(k)}
}

// Cell returns the coordinates of the cell whose center is nearest to the
// physical point p, clamped (or wrapped) into the lattice.
func (g *Grid) Cell(p geom.Vec) (i, j, k int) {
	i = g.axisCell(p[0], X)
	j = g.axisCell(p[1], Y)
	k = g.axisCell(p[2], Z)
	return i, j, k
}

func (g *Grid) axisCell(x float64, a Axis) int {
	i := int(x/g.H + float64(g.n[a])/2)
	if g.periodic[a] {
		return pMod(i, g.n[a])
	}
	if i < 0 {
		return 0
	}
	if i >= g.n[a] {
		return g.n[a] - 1
	}
	return i
}

// cellCoord maps a physical coordinate onto the continuous cell index axis,
// so that integer values land exactly on cell centers.
func (g *Grid) cellCoord(x float64, a Axis) float64 {
	return x/g.H - 0.5 + float64(g.n[a])/2
}

// pMod computes the positive modulo x % y.
func pMod(x, y int) int {
	m := x % y
	if m < 0 {
		m += y
	}
	return m
}
