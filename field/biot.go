/*package field integrates the seed vector and scalar fields that a filament
geometry induces on the grid. Polyline input produces a Biot-Savart vector
field plus singularity masks for the phase integration; surface input
produces the scalar potential directly through a solid-angle sum.*/
package field

import (
	"runtime"

	"github.com/phil-mansfield/goknot/geom"
	"github.com/phil-mansfield/goknot/grid"
)

// LineField is the Biot-Savart field of a set of closed polylines, together
// with the per-cell singularity masks used by the phase integrator.
//
// NearCore marks cells within two core radii of any filament point. These
// are avoided by the first integration pass. Singular marks cells within
// half a core radius, which are never integrated through; the phase
// integrator fills them afterwards by continuation from their neighbors.
type LineField struct {
	Bx, By, Bz []float64
	Mag        []float64

	NearCore []bool
	Singular []bool

	g          *grid.Grid
	coreRadius float64
	workers    int

	// flattened source elements
	px, py, pz    []float64
	dlx, dly, dlz []float64
}

// NewLineField allocates a LineField over g. coreRadius is the filament
// core scale, lambda / 2 pi.
func NewLineField(g *grid.Grid, coreRadius float64) *LineField {
	f := &LineField{}
	f.Init(g, coreRadius)
	return f
}

// Init initializes a LineField instance.
func (f *LineField) Init(g *grid.Grid, coreRadius float64) {
	f.g = g
	f.coreRadius = coreRadius
	f.workers = runtime.NumCPU()

	f.Bx = make([]float64, g.Volume)
	f.By = make([]float64, g.Volume)
	f.Bz = make([]float64, g.Volume)
	f.Mag = make([]float64, g.Volume)
	f.NearCore = make([]bool, g.Volume)
	f.Singular = make([]bool, g.Volume)
}

// Workers sets the number of parallel workers used by Integrate.
func (f *LineField) Workers(n int) { f.workers = n }

// Integrate accumulates the Biot-Savart sum over every cell and fills in
// the singularity masks. Each filament point contributes dl cross l over
// two cubed distances, with dl the central-difference tangent element.
func (f *LineField) Integrate(curves []geom.Polyline) {
	f.flatten(curves)

	out := make(chan int, f.workers)
	for id := 0; id < f.workers-1; id++ {
		go f.chanIntegrate(id, out)
	}
	f.chanIntegrate(f.workers-1, out)
	for i := 0; i < f.workers; i++ {
		<-out
	}
}

// flatten concatenates the component points and their tangent line elements
// into flat buffers so the cell loop touches contiguous memory.
func (f *LineField) flatten(curves []geom.Polyline) {
	n := 0
	for c := range curves {
		n += len(curves[c].Points)
	}
	f.px = make([]float64, 0, n)
	f.py = make([]float64, 0, n)
	f.pz = make([]float64, 0, n)
	f.dlx = make([]float64, 0, n)
	f.dly = make([]float64, 0, n)
	f.dlz = make([]float64, 0, n)

	for c := range curves {
		pts := curves[c].Points
		np := len(pts)
		for t := 0; t < np; t++ {
			next := pts[(t+1)%np]
			prev := pts[(t+np-1)%np]
			f.px = append(f.px, pts[t][0])
			f.py = append(f.py, pts[t][1])
			f.pz = append(f.pz, pts[t][2])
			f.dlx = append(f.dlx, 0.5*(next[0]-prev[0]))
			f.dly = append(f.dly, 0.5*(next[1]-prev[1]))
			f.dlz = append(f.dlz, 0.5*(next[2]-prev[2]))
		}
	}
}

// chanIntegrate is a worker function which integrates a contiguous range of
// cells and sends its ID to out when finished.
func (f *LineField) chanIntegrate(id int, out chan<- int) {
	g := f.g
	lo := id * g.Volume / f.workers
	hi := (id + 1) * g.Volume / f.workers

	near := 2 * f.coreRadius
	sing := 0.5 * f.coreRadius

	for n := lo; n < hi; n++ {
		i, j, k := g.Coords(n)
		cx, cy, cz := g.X(i), g.Y(j), g.Z(k)

		bx, by, bz := 0.0, 0.0, 0.0
		nearCore, singular := false, false
		for t := range f.px {
			lx := cx - f.px[t]
			ly := cy - f.py[t]
			lz := cz - f.pz[t]
			lsq := lx*lx + ly*ly + lz*lz
			lmag := sqrt(lsq)
			if lmag < near {
				nearCore = true
			}
			if lmag < sing {
				singular = true
			}
			w := 1 / (2 * lsq * lmag)
			bx += (ly*f.dlz[t] - lz*f.dly[t]) * w
			by += (lz*f.dlx[t] - lx*f.dlz[t]) * w
			bz += (lx*f.dly[t] - ly*f.dlx[t]) * w
		}

		f.Bx[n], f.By[n], f.Bz[n] = bx, by, bz
		f.Mag[n] = sqrt(bx*bx + by*by + bz*bz)
		f.NearCore[n] = nearCore
		f.Singular[n] = singular
	}

	out <- id
}
