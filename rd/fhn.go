/*package rd advances the two coupled FitzHugh-Nagumo fields in time with an
explicit stencil scheme over the whole grid.*/
package rd

import (
	"runtime"

	"github.com/phil-mansfield/goknot/grid"
)

// Params are the reaction-diffusion coefficients. Lambda is the scroll-wave
// wavelength the other parameters give rise to, and sets the filament core
// scale used elsewhere.
type Params struct {
	Epsilon, Beta, Gamma float64
	Lambda               float64
	Dt                   float64
}

// DefaultParams returns the coefficient set in the scroll-wave regime.
func DefaultParams() Params {
	return Params{Epsilon: 0.3, Beta: 0.7, Gamma: 0.5, Lambda: 21.3, Dt: 0.02}
}

// Integrator owns the activator field U and recovery field V and advances
// them one whole-grid timestep at a time. The default scheme is classical
// RK4 over the staged derivative buffers; FirstOrder switches to a single
// forward Euler step. All staging buffers are allocated once up front, so
// the time loop never allocates.
type Integrator struct {
	U, V []float64

	g *grid.Grid
	p Params

	firstOrder bool
	workers    int

	uOld, vOld   []float64
	ku, kv       []float64
	kuAcc, kvAcc []float64
}

// NewIntegrator returns an Integrator holding the given initial state. The
// state slices are adopted, not copied.
func NewIntegrator(g *grid.Grid, p Params, u, v []float64) *Integrator {
	in := &Integrator{}
	in.Init(g, p, u, v)
	return in
}

// Init initializes an Integrator instance.
func (in *Integrator) Init(g *grid.Grid, p Params, u, v []float64) {
	in.g = g
	in.p = p
	in.U, in.V = u, v
	in.workers = runtime.NumCPU()

	in.uOld = make([]float64, g.Volume)
	in.vOld = make([]float64, g.Volume)
	in.ku = make([]float64, g.Volume)
	in.kv = make([]float64, g.Volume)
	in.kuAcc = make([]float64, g.Volume)
	in.kvAcc = make([]float64, g.Volume)
}

// Workers sets the number of parallel workers used by Step.
func (in *Integrator) Workers(n int) { in.workers = n }

// FirstOrder switches the update to a forward Euler step.
func (in *Integrator) FirstOrder(on bool) { in.firstOrder = on }

// Step advances the fields by one timestep.
func (in *Integrator) Step() {
	if in.firstOrder {
		in.stepEuler()
		return
	}
	in.stepRK4()
}

// stepRK4 runs the four-stage update. Each stage evaluates the derivative
// of the current trial state, then repositions the trial state off the old
// state and accumulates the weighted stage derivative. The merge loop after
// each sweep is the barrier separating a stage's reads from the next
// stage's writes.
func (in *Integrator) stepRK4() {
	in.parallel(func(lo, hi int) {
		for n := lo; n < hi; n++ {
			in.uOld[n], in.vOld[n] = in.U[n], in.V[n]
			in.kuAcc[n], in.kvAcc[n] = 0, 0
		}
	})

	// trial-state offset and accumulation weight per stage
	incs := [4]float64{0.5, 0.5, 1.0, 0}
	coeffs := [4]float64{1, 2, 2, 1}

	for l := 0; l < 4; l++ {
		in.parallel(in.derivRange)

		if l < 3 {
			inc, coeff := incs[l], coeffs[l]
			in.parallel(func(lo, hi int) {
				for n := lo; n < hi; n++ {
					in.U[n] = in.uOld[n] + in.p.Dt*inc*in.ku[n]
					in.V[n] = in.vOld[n] + in.p.Dt*inc*in.kv[n]
					in.kuAcc[n] += coeff * in.ku[n]
					in.kvAcc[n] += coeff * in.kv[n]
				}
			})
		} else {
			in.parallel(func(lo, hi int) {
				for n := lo; n < hi; n++ {
					in.U[n] = in.uOld[n] + in.p.Dt*(in.kuAcc[n]+in.ku[n])/6
					in.V[n] = in.vOld[n] + in.p.Dt*(in.kvAcc[n]+in.kv[n])/6
				}
			})
		}
	}
}

func (in *Integrator) stepEuler() {
	in.parallel(in.derivRange)
	in.parallel(func(lo, hi int) {
		for n := lo; n < hi; n++ {
			in.U[n] += in.p.Dt * in.ku[n]
			in.V[n] += in.p.Dt * in.kv[n]
		}
	})
}

// derivRange fills ku and kv with the reaction and diffusion derivatives of
// the current state over one cell range.
func (in *Integrator) derivRange(lo, hi int) {
	g, p := in.g, in.p
	u, v := in.U, in.V
	for n := lo; n < hi; n++ {
		i, j, k := g.Coords(n)
		lap := in.Laplacian(u, i, j, k)
		in.ku[n] = (u[n]-u[n]*u[n]*u[n]/3-v[n])/p.Epsilon + lap
		in.kv[n] = p.Epsilon * (u[n] + p.Beta - p.Gamma*v[n])
	}
}

// Laplacian evaluates the 7-point stencil of f at cell (i, j, k), with
// boundary neighbors resolved by the grid's per-axis rule.
func (in *Integrator) Laplacian(f []float64, i, j, k int) float64 {
	g := in.g
	c := f[g.Idx(i, j, k)]
	sum := f[g.Idx(g.Neighbor(i, grid.X, 1), j, k)] +
		f[g.Idx(g.Neighbor(i, grid.X, -1), j, k)] +
		f[g.Idx(i, g.Neighbor(j, grid.Y, 1), k)] +
		f[g.Idx(i, g.Neighbor(j, grid.Y, -1), k)] +
		f[g.Idx(i, j, g.Neighbor(k, grid.Z, 1))] +
		f[g.Idx(i, j, g.Neighbor(k, grid.Z, -1))]
	return (sum - 6*c) / (g.H * g.H)
}

// parallel runs f over static contiguous cell ranges on the worker pool and
// blocks until every range is done.
func (in *Integrator) parallel(f func(lo, hi int)) {
	vol := in.g.Volume
	out := make(chan int, in.workers)
	for id := 0; id < in.workers-1; id++ {
		go func(id int) {
			f(id*vol/in.workers, (id+1)*vol/in.workers)
			out <- id
		}(id)
	}
	id := in.workers - 1
	f(id*vol/in.workers, vol)
	out <- id
	for i := 0; i < in.workers; i++ {
		<-out
	}
}
