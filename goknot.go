/*package goknot simulates a FitzHugh-Nagumo reaction-diffusion field whose
phase singularities trace out knotted vortex filaments, and extracts the
geometry, topology, and kinematics of those filaments as the field
evolves.*/
package goknot

import (
	"fmt"
	"log"
	"path"
	"runtime"

	"github.com/phil-mansfield/goknot/analyze"
	"github.com/phil-mansfield/goknot/extract"
	"github.com/phil-mansfield/goknot/geom"
	"github.com/phil-mansfield/goknot/grid"
	"github.com/phil-mansfield/goknot/io"
	"github.com/phil-mansfield/goknot/rd"
)

// RunOptions control the time loop and its output cadence.
type RunOptions struct {
	TotalTime float64
	// StartTime offsets output times, so resumed runs continue numbering.
	StartTime float64
	// FieldInterval and CurveInterval are the simulated time between field
	// dumps and between curve extractions.
	FieldInterval, CurveInterval float64
	// Dir is the directory output files are written into.
	Dir string
}

// Simulation owns the grid state and the extraction context and drives the
// whole run. The grid arrays and stratum masks never escape it.
type Simulation struct {
	Grid       *grid.Grid
	Params     rd.Params
	Integrator *rd.Integrator
	Ctx        *extract.Context

	prev     []*geom.Curve
	prevTime float64

	workers    int
	logEnabled bool
}

// NewSimulation returns a Simulation over the given initial state. The
// state slices are adopted by the integrator.
func NewSimulation(g *grid.Grid, p rd.Params, u, v []float64) *Simulation {
	sim := &Simulation{
		Grid:       g,
		Params:     p,
		Integrator: rd.NewIntegrator(g, p, u, v),
		Ctx:        extract.NewContext(g, p.Lambda),
		workers:    runtime.NumCPU(),
	}
	return sim
}

// Workers sets the worker pool size for every parallel grid sweep.
func (sim *Simulation) Workers(n int) {
	sim.workers = n
	sim.Integrator.Workers(n)
	sim.Ctx.Workers(n)
}

// Log enables progress lines on the standard logger.
func (sim *Simulation) Log(on bool) { sim.logEnabled = on }

// FirstOrder switches the PDE update to forward Euler.
func (sim *Simulation) FirstOrder(on bool) { sim.Integrator.FirstOrder(on) }

// Run executes the time loop until TotalTime and returns the per-snapshot
// topology summary of every extracted component. Fields are dumped and
// curves extracted at their configured cadences; each curve set is written
// only after the next extraction supplies its kinematics.
func (sim *Simulation) Run(opt RunOptions) ([]io.SummaryRow, error) {
	summary, err := io.NewSummaryWriter(path.Join(opt.Dir, "writhe.csv"))
	if err != nil {
		return nil, err
	}
	defer summary.Close()

	var history []io.SummaryRow
	dt := sim.Params.Dt

	n, p, q := 0, 0, 0
	for ; float64(n)*dt <= opt.TotalTime; n++ {
		elapsed := float64(n) * dt
		t := elapsed + opt.StartTime

		if elapsed >= float64(q)*opt.CurveInterval {
			rows, err := sim.snapshotCurves(t, opt)
			if err != nil {
				return history, err
			}
			if err := summary.Append(rows); err != nil {
				return history, err
			}
			history = append(history, rows...)
			q++
		}

		if elapsed >= float64(p)*opt.FieldInterval {
			file := path.Join(opt.Dir, fmt.Sprintf("uv_plot%g.vtk", t))
			err := io.WriteFields(
				file, sim.Grid, sim.Integrator.U, sim.Integrator.V,
				sim.Ctx.Mag,
			)
			if err != nil {
				return history, err
			}
			p++
		}

		sim.Integrator.Step()
	}
	return history, nil
}

// snapshotCurves extracts the current curve set, analyzes it, derives the
// previous set's kinematics from the new one, and writes the previous set
// out.
func (sim *Simulation) snapshotCurves(t float64, opt RunOptions) (
	[]io.SummaryRow, error,
) {
	if sim.logEnabled {
		log.Printf("T = %g", t)
	}

	sim.Ctx.CrossField(sim.Integrator.U, sim.Integrator.V)
	curves := sim.Ctx.Extract()
	totals := analyze.Analyze(curves)

	rows := make([]io.SummaryRow, len(curves))
	for c := range curves {
		rows[c] = io.SummaryRow{
			Time:      t,
			Component: c,
			Writhe:    totals[c].Writhe,
			Twist:     totals[c].Twist,
			Length:    totals[c].Length,
		}
		if sim.logEnabled {
			log.Printf(
				"  component %d: writhe %.4f, twist %.4f, length %.2f",
				c, totals[c].Writhe, totals[c].Twist, totals[c].Length,
			)
		}
	}

	if sim.prev != nil && len(curves) > 0 {
		analyze.Kinematics(sim.prev, curves, t-sim.prevTime)
		for c, pc := range sim.prev {
			file := path.Join(
				opt.Dir, fmt.Sprintf("knotplot%g_%d.vtk", sim.prevTime, c),
			)
			if err := io.WriteCurve(file, pc); err != nil {
				return rows, err
			}
		}
	}

	sim.prev, sim.prevTime = curves, t
	return rows, nil
}
