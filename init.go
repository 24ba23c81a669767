package goknot

import (
	"log"
	"math"

	"github.com/phil-mansfield/goknot/field"
	"github.com/phil-mansfield/goknot/geom"
	"github.com/phil-mansfield/goknot/grid"
	"github.com/phil-mansfield/goknot/io"
	"github.com/phil-mansfield/goknot/phase"
	"github.com/phil-mansfield/goknot/rd"
)

// An Initializer produces the initial activator and recovery fields. Each
// initialization strategy is one concrete type.
type Initializer interface {
	InitState(g *grid.Grid, p rd.Params, workers int) (u, v []float64, err error)
}

// CurveInit seeds the field from closed polylines: a Biot-Savart integral
// gives the winding vector field, and path integration from the grid
// center reconstructs the phase. If PhiFile is set, the phase field and
// the missed-cell mask are written there as a diagnostic.
type CurveInit struct {
	Curves  []geom.Polyline
	PhiFile string
}

func (ci *CurveInit) InitState(g *grid.Grid, p rd.Params, workers int) (
	u, v []float64, err error,
) {
	coreRadius := p.Lambda / (2 * math.Pi)

	b := field.NewLineField(g, coreRadius)
	b.Workers(workers)
	b.Integrate(ci.Curves)

	in := phase.NewIntegrator(g, b)
	in.Integrate()

	if ci.PhiFile != "" {
		if err := io.WritePhi(ci.PhiFile, g, in.Phi, in.Missed); err != nil {
			return nil, nil, err
		}
	}

	u, v = phase.InitState(in.Phi, in.Missed)
	return u, v, nil
}

// SurfaceInit seeds the field from an oriented triangle mesh: the wrapped
// solid-angle sum over the faces is the phase directly.
type SurfaceInit struct {
	Surface *geom.Surface
	PhiFile string
}

func (si *SurfaceInit) InitState(g *grid.Grid, p rd.Params, workers int) (
	u, v []float64, err error,
) {
	s := field.NewSolidAngle(g)
	s.Workers(workers)
	s.Integrate(si.Surface)

	if si.PhiFile != "" {
		if err := io.WritePhi(si.PhiFile, g, s.Phi, nil); err != nil {
			return nil, nil, err
		}
	}

	u, v = phase.InitState(s.Phi, nil)
	return u, v, nil
}

// FieldInit resumes the state from a previously written field file.
type FieldInit struct {
	File string
}

func (fi *FieldInit) InitState(g *grid.Grid, p rd.Params, workers int) (
	u, v []float64, err error,
) {
	log.Printf("Reading fields from %s", fi.File)
	return io.ReadFields(fi.File, g)
}

// RingInit seeds an analytic circular-ring phase: the angle difference of
// two poles offset by a wavelength, one tilted out of plane.
type RingInit struct{}

func (RingInit) InitState(g *grid.Grid, p rd.Params, workers int) (
	u, v []float64, err error,
) {
	const theta = 0.5
	phi := make([]float64, g.Volume)
	for n := range phi {
		i, j, k := g.Coords(n)
		x, y, z := g.X(i), g.Y(j), g.Z(k)
		phi[n] = geom.WrapAngle(
			math.Atan2(y-p.Lambda, x-p.Lambda) -
				math.Atan2(y, -math.Sin(theta)*z+math.Cos(theta)*x),
		)
	}
	u, v = phase.InitState(phi, nil)
	return u, v, nil
}
