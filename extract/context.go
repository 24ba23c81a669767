/*package extract locates the filament curves of the evolving state: the
ridges of the cross product of the two field gradients. Grid sweeps are
worker-parallel; the ridge tracing itself is sequential.*/
package extract

import (
	"log"
	"math"
	"runtime"

	"github.com/phil-mansfield/goknot/geom"
	"github.com/phil-mansfield/goknot/grid"
)

// Threshold is the cross-gradient magnitude below which no further filament
// component is seeded.
const Threshold = 0.7

// Context owns the cross-gradient field, the stratum visitation masks, and
// the tracing scratch for one extraction pass. It is created by the time
// loop driver and reset at the start of every pass; nothing in it is
// global.
type Context struct {
	Ucvx, Ucvy, Ucvz []float64
	Mag              []float64

	g          *grid.Grid
	lambda     float64
	coreRadius float64
	workers    int

	xMarked, yMarked, zMarked []bool

	ix, iy, iz, im *grid.TriLinear
	iu             *grid.TriLinear
}

// NewContext returns a Context over g for a system with the given
// wavelength.
func NewContext(g *grid.Grid, lambda float64) *Context {
	c := &Context{}
	c.Init(g, lambda)
	return c
}

// Init initializes a Context instance.
func (c *Context) Init(g *grid.Grid, lambda float64) {
	c.g = g
	c.lambda = lambda
	c.coreRadius = lambda / (2 * math.Pi)
	c.workers = runtime.NumCPU()

	c.Ucvx = make([]float64, g.Volume)
	c.Ucvy = make([]float64, g.Volume)
	c.Ucvz = make([]float64, g.Volume)
	c.Mag = make([]float64, g.Volume)
	c.xMarked = make([]bool, g.Nx)
	c.yMarked = make([]bool, g.Ny)
	c.zMarked = make([]bool, g.Nz)

	c.ix = grid.NewTriLinear(g, c.Ucvx)
	c.iy = grid.NewTriLinear(g, c.Ucvy)
	c.iz = grid.NewTriLinear(g, c.Ucvz)
	c.im = grid.NewTriLinear(g, c.Mag)
}

// Workers sets the number of parallel workers used by CrossField.
func (c *Context) Workers(n int) { c.workers = n }

// CoreRadius returns the filament core scale, lambda / 2 pi.
func (c *Context) CoreRadius() float64 { return c.coreRadius }

// CrossField fills the cross-gradient field grad u cross grad v and its
// magnitude from the current state.
func (c *Context) CrossField(u, v []float64) {
	if c.iu == nil {
		c.iu = grid.NewTriLinear(c.g, u)
	} else {
		c.iu.Init(c.g, u)
	}

	g := c.g
	out := make(chan int, c.workers)
	sweep := func(lo, hi int) {
		for n := lo; n < hi; n++ {
			i, j, k := g.Coords(n)
			dxu, dyu, dzu := cellGrad(g, u, i, j, k)
			dxv, dyv, dzv := cellGrad(g, v, i, j, k)
			cx := dyu*dzv - dzu*dyv
			cy := dzu*dxv - dxu*dzv
			cz := dxu*dyv - dyu*dxv
			c.Ucvx[n], c.Ucvy[n], c.Ucvz[n] = cx, cy, cz
			c.Mag[n] = math.Sqrt(cx*cx + cy*cy + cz*cz)
		}
	}
	for id := 0; id < c.workers-1; id++ {
		go func(id int) {
			sweep(id*g.Volume/c.workers, (id+1)*g.Volume/c.workers)
			out <- id
		}(id)
	}
	sweep((c.workers-1)*g.Volume/c.workers, g.Volume)
	out <- c.workers - 1
	for i := 0; i < c.workers; i++ {
		<-out
	}
}

func cellGrad(g *grid.Grid, f []float64, i, j, k int) (dx, dy, dz float64) {
	d := 2 * g.H
	dx = (f[g.Idx(g.Neighbor(i, grid.X, 1), j, k)] -
		f[g.Idx(g.Neighbor(i, grid.X, -1), j, k)]) / d
	dy = (f[g.Idx(i, g.Neighbor(j, grid.Y, 1), k)] -
		f[g.Idx(i, g.Neighbor(j, grid.Y, -1), k)]) / d
	dz = (f[g.Idx(i, j, g.Neighbor(k, grid.Z, 1))] -
		f[g.Idx(i, j, g.Neighbor(k, grid.Z, -1))]) / d
	return dx, dy, dz
}

// Extract traces every filament component of the current cross field and
// returns the refined curves. Components are seeded at the magnitude
// maximum among cells whose strata are not all claimed by an earlier
// component; extraction stops when no seed reaches the threshold.
func (c *Context) Extract() []*geom.Curve {
	for i := range c.xMarked {
		c.xMarked[i] = false
	}
	for j := range c.yMarked {
		c.yMarked[j] = false
	}
	for k := range c.zMarked {
		c.zMarked[k] = false
	}

	var curves []*geom.Curve
	for {
		i, j, k, max := c.seed()
		if max < Threshold {
			break
		}
		pts, ok := c.trace(i, j, k)
		if !ok {
			// Runaway or escaped trace. Its strata stay marked so the
			// seed scan still terminates.
			log.Printf("extract: discarded open trace from cell (%d,%d,%d)",
				i, j, k)
			continue
		}
		curves = append(curves, c.refine(pts))
	}
	return curves
}

// seed returns the unmarked cell with the largest cross-gradient magnitude.
func (c *Context) seed() (i, j, k int, max float64) {
	g := c.g
	max = -1.0
	for n := 0; n < g.Volume; n++ {
		ni, nj, nk := g.Coords(n)
		if c.xMarked[ni] && c.yMarked[nj] && c.zMarked[nk] {
			continue
		}
		if c.Mag[n] > max {
			max = c.Mag[n]
			i, j, k = ni, nj, nk
		}
	}
	return i, j, k, max
}

// mark claims a core-radius box of strata around cell (i, j, k) on all
// three axes.
func (c *Context) mark(i, j, k int) {
	g := c.g
	delta := int(math.Ceil(c.coreRadius / g.H))
	for q := -delta; q <= delta; q++ {
		c.xMarked[g.Neighbor(i, grid.X, q)] = true
		c.yMarked[g.Neighbor(j, grid.Y, q)] = true
		c.zMarked[g.Neighbor(k, grid.Z, q)] = true
	}
}

// inBox reports whether p lies inside the physical grid box.
func (c *Context) inBox(p geom.Vec) bool {
	g := c.g
	return math.Abs(p[0]) <= float64(g.Nx)*g.H/2 &&
		math.Abs(p[1]) <= float64(g.Ny)*g.H/2 &&
		math.Abs(p[2]) <= float64(g.Nz)*g.H/2
}
