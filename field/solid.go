package field

import (
	"math"
	"runtime"

	"github.com/phil-mansfield/goknot/geom"
	"github.com/phil-mansfield/goknot/grid"
)

// SolidAngle computes the scalar potential of an oriented triangulated
// surface as a dipole sum over its faces, wrapped onto (-pi, pi] at every
// cell. No path integration is needed afterwards: the wrapped sum is the
// final phase field.
type SolidAngle struct {
	Phi []float64

	g       *grid.Grid
	workers int

	cx, cy, cz []float64
	nx, ny, nz []float64
	area       []float64
}

// NewSolidAngle allocates a SolidAngle field over g.
func NewSolidAngle(g *grid.Grid) *SolidAngle {
	s := &SolidAngle{}
	s.Init(g)
	return s
}

// Init initializes a SolidAngle instance.
func (s *SolidAngle) Init(g *grid.Grid) {
	s.g = g
	s.workers = runtime.NumCPU()
	s.Phi = make([]float64, g.Volume)
}

// Workers sets the number of parallel workers used by Integrate.
func (s *SolidAngle) Workers(n int) { s.workers = n }

// Integrate accumulates the dipole sum r dot n A over two r cubed for every
// cell of the grid.
func (s *SolidAngle) Integrate(surf *geom.Surface) {
	s.flatten(surf)

	out := make(chan int, s.workers)
	for id := 0; id < s.workers-1; id++ {
		go s.chanIntegrate(id, out)
	}
	s.chanIntegrate(s.workers-1, out)
	for i := 0; i < s.workers; i++ {
		<-out
	}
}

func (s *SolidAngle) flatten(surf *geom.Surface) {
	n := len(surf.Tris)
	s.cx = make([]float64, n)
	s.cy = make([]float64, n)
	s.cz = make([]float64, n)
	s.nx = make([]float64, n)
	s.ny = make([]float64, n)
	s.nz = make([]float64, n)
	s.area = make([]float64, n)
	for t := range surf.Tris {
		tri := &surf.Tris[t]
		s.cx[t], s.cy[t], s.cz[t] = tri.Center[0], tri.Center[1], tri.Center[2]
		s.nx[t], s.ny[t], s.nz[t] = tri.Normal[0], tri.Normal[1], tri.Normal[2]
		s.area[t] = tri.Area
	}
}

func (s *SolidAngle) chanIntegrate(id int, out chan<- int) {
	g := s.g
	lo := id * g.Volume / s.workers
	hi := (id + 1) * g.Volume / s.workers

	for n := lo; n < hi; n++ {
		i, j, k := g.Coords(n)
		cx, cy, cz := g.X(i), g.Y(j), g.Z(k)

		phi := 0.0
		for t := range s.cx {
			rx := s.cx[t] - cx
			ry := s.cy[t] - cy
			rz := s.cz[t] - cz
			rsq := rx*rx + ry*ry + rz*rz
			if rsq == 0 {
				continue
			}
			r := sqrt(rsq)
			phi += (rx*s.nx[t] + ry*s.ny[t] + rz*s.nz[t]) * s.area[t] /
				(2 * rsq * r)
		}
		s.Phi[n] = geom.WrapAngle(phi)
	}

	out <- id
}

func sqrt(x float64) float64 { return math.Sqrt(x) }
