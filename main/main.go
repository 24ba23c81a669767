package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path"
	"runtime"
	"runtime/pprof"

	"gopkg.in/gcfg.v1"

	plt "github.com/phil-mansfield/pyplot"

	"github.com/phil-mansfield/goknot"
	"github.com/phil-mansfield/goknot/geom"
	"github.com/phil-mansfield/goknot/grid"
	"github.com/phil-mansfield/goknot/io"
	"github.com/phil-mansfield/goknot/rd"
)

type FileGroup struct {
	log, prof *os.File
}

func (fg *FileGroup) Close() {
	if fg.log != nil {
		err := fg.log.Close()
		if err != nil {
			log.Fatal(err.Error())
		}
	}

	if fg.prof != nil {
		pprof.StopCPUProfile()
		err := fg.prof.Close()
		if err != nil {
			log.Fatal(err.Error())
		}
	}
}

func main() {
	var (
		config, exampleConfig string
		threads               int
		logFile, profFile     string
		plot                  bool
	)

	flag.StringVar(
		&config, "Config", "",
		"Run configuration file. Required unless -ExampleConfig is given.",
	)
	flag.StringVar(
		&exampleConfig, "ExampleConfig", "",
		"Prints an example configuration file to stdout. The only accepted "+
			"argument is 'Run'.",
	)
	flag.IntVar(
		&threads, "Threads", runtime.NumCPU(),
		"Number of threads used. Defaults to the number of logical cores.",
	)
	flag.StringVar(
		&logFile, "Log", "",
		"Location to write log statements to. Default is stderr.",
	)
	flag.StringVar(
		&profFile, "PProf", "",
		"Location to write profile to. Default is no profiling.",
	)
	flag.BoolVar(
		&plot, "Plot", false,
		"Plot total writhe and twist against time after the run finishes.",
	)
	flag.Parse()

	if exampleConfig != "" {
		if exampleConfig != "Run" {
			log.Fatalf(
				"Unrecognized -ExampleConfig argument, '%s'.", exampleConfig,
			)
		}
		fmt.Println(io.ExampleRunFile)
		return
	}
	if config == "" {
		log.Fatal("A -Config file must be supplied. Start from -ExampleConfig.")
	}

	fg := &FileGroup{}
	defer fg.Close()
	if logFile != "" {
		f, err := os.Create(logFile)
		if err != nil {
			log.Fatal(err.Error())
		}
		log.SetOutput(f)
		fg.log = f
	}
	if profFile != "" {
		f, err := os.Create(profFile)
		if err != nil {
			log.Fatal(err.Error())
		}
		err = pprof.StartCPUProfile(f)
		if err != nil {
			log.Fatal(err.Error())
		}
		fg.prof = f
	}

	runtime.GOMAXPROCS(threads)

	wrap := io.DefaultRunWrapper()
	if err := gcfg.ReadFileInto(wrap, config); err != nil {
		log.Fatal(err.Error())
	}
	if err := wrap.CheckInit(); err != nil {
		log.Fatal(err.Error())
	}

	history, err := run(wrap, threads)
	if err != nil {
		log.Fatal(err.Error())
	}

	if plot {
		plotHistory(history, path.Join(wrap.Output.Dir, "writhe.png"))
	}
}

func run(wrap *io.RunWrapper, threads int) ([]io.SummaryRow, error) {
	con := &wrap.Sim

	g := grid.NewGrid(con.GridX, con.GridY, con.GridZ, con.Spacing())
	g.SetPeriodic(con.PeriodicX, con.PeriodicY, con.PeriodicZ)

	p := rd.Params{
		Epsilon: con.Epsilon, Beta: con.Beta, Gamma: con.Gamma,
		Lambda: con.Lambda, Dt: con.Timestep,
	}

	info := io.NewRunInfo(wrap)
	err := io.WriteInfo(path.Join(wrap.Output.Dir, "info.yaml"), info)
	if err != nil {
		return nil, err
	}

	strategy, err := initializer(wrap, g)
	if err != nil {
		return nil, err
	}

	log.Println("Calculating initial state...")
	u, v, err := strategy.InitState(g, p, threads)
	if err != nil {
		return nil, err
	}

	sim := goknot.NewSimulation(g, p, u, v)
	sim.Workers(threads)
	sim.Log(true)
	sim.FirstOrder(con.FirstOrder)

	log.Println("Updating fields...")
	return sim.Run(goknot.RunOptions{
		TotalTime:     con.TotalTime,
		StartTime:     wrap.Output.StartTime,
		FieldInterval: wrap.Output.FieldInterval,
		CurveInterval: wrap.Output.CurveInterval,
		Dir:           wrap.Output.Dir,
	})
}

// initializer builds the configured initialization strategy, normalizing
// any input geometry into the grid box first.
func initializer(
	wrap *io.RunWrapper, g *grid.Grid,
) (goknot.Initializer, error) {
	con := &wrap.Init
	fit := &geom.BoxFit{
		Target: geom.Vec{
			con.BoxFraction * float64(g.Nx) * g.H,
			con.BoxFraction * float64(g.Ny) * g.H,
			con.BoxFraction * float64(g.Nz) * g.H,
		},
		PreserveAspect: con.PreserveAspect,
		Theta:          con.Theta,
		Phi:            con.Phi,
		Shift:          geom.Vec{con.ShiftX, con.ShiftY, con.ShiftZ},
	}
	phiFile := path.Join(wrap.Output.Dir, "phi.vtk")

	switch con.Mode {
	case "Curve":
		curves, err := io.ReadPolylines(con.File, con.Components, g.H)
		if err != nil {
			return nil, err
		}
		length := fit.Polylines(curves)
		log.Printf(
			"Scaled %d input component(s) to total length %.4g.",
			len(curves), length,
		)
		return &goknot.CurveInit{Curves: curves, PhiFile: phiFile}, nil

	case "Surface":
		surf, err := io.ReadSTL(con.File)
		if err != nil {
			return nil, err
		}
		area := fit.Surface(surf)
		log.Printf(
			"Scaled input surface of %d faces to total area %.4g.",
			len(surf.Tris), area,
		)
		return &goknot.SurfaceInit{Surface: surf, PhiFile: phiFile}, nil

	case "Field":
		return &goknot.FieldInit{File: con.File}, nil

	case "Ring":
		return goknot.RingInit{}, nil
	}
	return nil, fmt.Errorf("Unrecognized Init mode '%s'.", con.Mode)
}

// plotHistory plots the first component's integrated writhe (blue) and
// twist (red) against time.
func plotHistory(history []io.SummaryRow, fname string) {
	ts, writhes, twists := []float64{}, []float64{}, []float64{}
	for _, row := range history {
		if row.Component != 0 {
			continue
		}
		ts = append(ts, row.Time)
		writhes = append(writhes, row.Writhe)
		twists = append(twists, row.Twist)
	}
	if len(ts) == 0 {
		return
	}

	plt.Reset()
	plt.Figure()
	plt.Plot(ts, writhes, "b", plt.LW(2))
	plt.Plot(ts, twists, "r", plt.LW(2))

	plt.Title("Writhe (blue) and twist (red)")
	plt.XLabel("$t$", plt.FontSize(16))
	plt.YLabel("$Wr$, $Tw$", plt.FontSize(16))
	plt.Grid(plt.Axis("y"))

	plt.SaveFig(fname)
	plt.Execute()
}
