package phase

import (
	"log"
	"math"

	"github.com/phil-mansfield/goknot/field"
	"github.com/phil-mansfield/goknot/geom"
	"github.com/phil-mansfield/goknot/grid"
)

// Integrator builds the phase field phi by integrating a Biot-Savart field
// along discovered grid paths from the base cell at the grid center. Every
// increment uses the midpoint field value between consecutive path cells
// and is wrapped onto (-pi, pi], so the accumulated value never drifts off
// its branch.
type Integrator struct {
	Phi    []float64
	Missed []bool

	g      *grid.Grid
	f      *field.LineField
	finder *Finder
}

// NewIntegrator returns an Integrator over the given field.
func NewIntegrator(g *grid.Grid, f *field.LineField) *Integrator {
	in := &Integrator{}
	in.Init(g, f)
	return in
}

// Init initializes an Integrator instance.
func (in *Integrator) Init(g *grid.Grid, f *field.LineField) {
	in.g = g
	in.f = f
	in.finder = NewFinder(g, f)
	in.Phi = make([]float64, g.Volume)
	in.Missed = make([]bool, g.Volume)
	for n := range in.Missed {
		in.Missed[n] = true
	}
}

// Integrate sweeps the grid in two passes and returns the number of cells
// that could not be assigned a phase. The first pass walks in from the
// eight corners and treats every near-core cell as blocked, which fills
// most of the grid while staying well clear of the filament. The second
// pass mops up the remaining cells, blocking only the singular ones.
// Singular cells are then filled by continuing the phase inward from their
// assigned neighbors, so the state winds all the way through the core
// instead of sitting in a flat plug there. Cells still unset afterwards
// stay flagged in Missed.
func (in *Integrator) Integrate() int {
	g, f := in.g, in.f

	i0 := (g.Nx + 1) / 2
	j0 := (g.Ny + 1) / 2
	k0 := (g.Nz + 1) / 2
	base := g.Idx(i0, j0, k0)
	in.Phi[base] = 0
	in.Missed[base] = false

	// Pass 1: corner-inward order, near-core cells blocked.
	for id := 0; id < (g.Nx+1)/2; id++ {
		is := [2]int{id, g.Nx - 1 - id}
		for jd := 0; jd < (g.Ny+1)/2; jd++ {
			js := [2]int{jd, g.Ny - 1 - jd}
			for kd := 0; kd < (g.Nz+1)/2; kd++ {
				ks := [2]int{kd, g.Nz - 1 - kd}
				for c1 := 0; c1 < 2; c1++ {
					for c2 := 0; c2 < 2; c2++ {
						for c3 := 0; c3 < 2; c3++ {
							in.integrateTo(
								i0, j0, k0, is[c1], js[c2], ks[c3], f.NearCore,
							)
						}
					}
				}
			}
		}
	}

	// Pass 2: remaining cells, only singular cells blocked.
	for i := 0; i < g.Nx; i++ {
		for j := 0; j < g.Ny; j++ {
			for k := 0; k < g.Nz; k++ {
				in.integrateTo(i0, j0, k0, i, j, k, f.Singular)
			}
		}
	}

	in.fillCore()

	missed := 0
	for n := range in.Missed {
		if in.Missed[n] {
			missed++
		}
	}
	if missed > 0 {
		log.Printf("phase: %d of %d cells unreached", missed, g.Volume)
	}
	return missed
}

// integrateTo finds a path from the base cell to the target and integrates
// phi along it, assigning every path cell that has no phase yet.
func (in *Integrator) integrateTo(i0, j0, k0, ie, je, ke int, blocked []bool) {
	g, f := in.g, in.f
	n := g.Idx(ie, je, ke)
	if !in.Missed[n] || blocked[n] {
		return
	}

	path := in.finder.Find(i0, j0, k0, ie, je, ke, blocked)
	if path == nil {
		return
	}

	run := in.Phi[g.Idx(i0, j0, k0)]
	for t := 1; t < len(path); t++ {
		nt := g.Idx(path[t][0], path[t][1], path[t][2])
		ntm := g.Idx(path[t-1][0], path[t-1][1], path[t-1][2])
		bx := 0.5 * (f.Bx[nt] + f.Bx[ntm])
		by := 0.5 * (f.By[nt] + f.By[ntm])
		bz := 0.5 * (f.Bz[nt] + f.Bz[ntm])
		run += g.H * (bx*float64(path[t][0]-path[t-1][0]) +
			by*float64(path[t][1]-path[t-1][1]) +
			bz*float64(path[t][2]-path[t-1][2]))
		run = geom.WrapAngle(run)
		if in.Missed[nt] {
			in.Phi[nt] = run
			in.Missed[nt] = false
		}
	}
}

// fillCore continues the phase into the singular core cells that both
// passes skip over, layer by layer from the outside in. Each cell copies
// one assigned neighbor's value rather than an average, since averaging
// would mix values across the branch cut. Missed cells outside the core
// are unreachable targets and keep their baseline.
func (in *Integrator) fillCore() int {
	g, f := in.g, in.f

	type fill struct {
		n   int
		phi float64
	}
	filled := 0
	for {
		var layer []fill
		for n := 0; n < g.Volume; n++ {
			if !in.Missed[n] || !f.Singular[n] {
				continue
			}
			i, j, k := g.Coords(n)
			if m, ok := in.assignedNeighbor(i, j, k); ok {
				layer = append(layer, fill{n, in.Phi[m]})
			}
		}
		if len(layer) == 0 {
			return filled
		}
		for _, l := range layer {
			in.Phi[l.n] = l.phi
			in.Missed[l.n] = false
		}
		filled += len(layer)
	}
}

// assignedNeighbor returns the index of a face neighbor of (i, j, k) that
// already has a phase, if one exists.
func (in *Integrator) assignedNeighbor(i, j, k int) (int, bool) {
	g := in.g
	ns := [6]int{
		g.Idx(g.Neighbor(i, grid.X, -1), j, k),
		g.Idx(g.Neighbor(i, grid.X, 1), j, k),
		g.Idx(i, g.Neighbor(j, grid.Y, -1), k),
		g.Idx(i, g.Neighbor(j, grid.Y, 1), k),
		g.Idx(i, j, g.Neighbor(k, grid.Z, -1)),
		g.Idx(i, j, g.Neighbor(k, grid.Z, 1)),
	}
	for _, m := range ns {
		if !in.Missed[m] {
			return m, true
		}
	}
	return 0, false
}

// InitState maps a phase field onto the initial activator and recovery
// fields. Missed cells get the uniform baseline far-field state.
func InitState(phi []float64, missed []bool) (u, v []float64) {
	u = make([]float64, len(phi))
	v = make([]float64, len(phi))
	for n := range phi {
		if missed != nil && missed[n] {
			u[n], v[n] = -0.4, -0.4
			continue
		}
		u[n] = 2*math.Cos(phi[n]) - 0.4
		v[n] = math.Sin(phi[n]) - 0.4
	}
	return u, v
}

func sqrt(x float64) float64 { return math.Sqrt(x) }
