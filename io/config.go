/*package io owns the run configuration and every file format the
simulation reads or writes: point-list and STL geometry input, VTK field
and curve output, the CSV summary, and the YAML run-info record.*/
package io

import (
	"fmt"
)

const ExampleRunFile = `[Sim]

#######################
# Required Parameters #
#######################

# Number of grid cells along each axis.
GridX = 300
GridY = 300
GridZ = 300

# Total simulated time to run for, in simulation units.
TotalTime = 50

#######################
# Optional Parameters #
#######################

# Approximate wavelength of the scroll waves. The filament core radius and
# the default box size are derived from this. Default is 21.3.
# Lambda = 21.3

# Physical box size along x. The grid spacing is BoxSize / (GridX - 1).
# Default is 5 * Lambda.
# BoxSize = 106.5

# Timestep of the explicit update. Default is 0.02.
# Timestep = 0.02

# Reaction coefficients. The defaults sit in the scroll-wave regime.
# Epsilon = 0.3
# Beta = 0.7
# Gamma = 0.5

# Per-axis boundary rule. Axes default to reflecting walls.
# PeriodicX = false
# PeriodicY = false
# PeriodicZ = false

# Use a first-order forward Euler update instead of the default RK4.
# FirstOrder = false

[Init]

#######################
# Required Parameters #
#######################

# How the initial field is built. One of:
# Curve:   closed polyline file(s), Biot-Savart + path integration.
# Surface: ASCII STL mesh, solid-angle sum.
# Field:   resume u and v from a previous field output file.
# Ring:    analytic circular-ring phase, no input file.
Mode = Curve

#######################
# Optional Parameters #
#######################

# Input geometry or field file. Required by every mode except Ring. Curve
# components beyond the first are read from File2, File3, ... with the
# index inserted before the extension.
# File = trefoil.txt

# Number of closed components in a Curve input. Default is 1.
# Components = 1

# Fraction of the grid box the normalized geometry is scaled to fill.
# Default is 0.75.
# BoxFraction = 0.75

# Scale all axes by the same factor, keeping the input's aspect ratio.
# Default is true.
# PreserveAspect = true

# Fixed rotation (radians, about y then z) and translation applied to the
# normalized geometry.
# Theta = 0
# Phi = 0
# ShiftX = 0
# ShiftY = 0
# ShiftZ = 0

[Output]

#######################
# Required Parameters #
#######################

# Directory output files are written into. It must already exist.
Dir = out

#######################
# Optional Parameters #
#######################

# Simulated time between full field dumps. Default is 10.
# FieldInterval = 10

# Simulated time between curve extractions. Default is 1.
# CurveInterval = 1

# Time at the start of the run. Set this when resuming from a field file
# so output numbering continues. Default is 0.
# StartTime = 0`

type SimConfig struct {
	// Required
	GridX, GridY, GridZ int
	TotalTime           float64

	// Optional
	Lambda              float64
	BoxSize             float64
	Timestep            float64
	Epsilon, Beta, Gamma float64
	PeriodicX           bool
	PeriodicY           bool
	PeriodicZ           bool
	FirstOrder          bool
}

type InitConfig struct {
	// Required
	Mode string

	// Optional
	File           string
	Components     int
	BoxFraction    float64
	PreserveAspect bool
	Theta, Phi     float64
	ShiftX, ShiftY, ShiftZ float64
}

type OutputConfig struct {
	// Required
	Dir string

	// Optional
	FieldInterval float64
	CurveInterval float64
	StartTime     float64
}

// RunWrapper is the gcfg target for a complete run file.
type RunWrapper struct {
	Sim    SimConfig
	Init   InitConfig
	Output OutputConfig
}

// DefaultRunWrapper returns a wrapper with every optional parameter at its
// default.
func DefaultRunWrapper() *RunWrapper {
	w := &RunWrapper{}
	w.Sim.Lambda = 21.3
	w.Sim.Timestep = 0.02
	w.Sim.Epsilon = 0.3
	w.Sim.Beta = 0.7
	w.Sim.Gamma = 0.5
	w.Init.Components = 1
	w.Init.BoxFraction = 0.75
	w.Init.PreserveAspect = true
	w.Output.FieldInterval = 10
	w.Output.CurveInterval = 1
	return w
}

// Spacing returns the grid spacing implied by the box size. If BoxSize was
// not set, the default box of five wavelengths is used.
func (con *SimConfig) Spacing() float64 {
	size := con.BoxSize
	if size == 0 {
		size = 5 * con.Lambda
	}
	return size / float64(con.GridX-1)
}

func (con *SimConfig) ValidGrid() bool {
	return con.GridX > 2 && con.GridY > 2 && con.GridZ > 2
}
func (con *SimConfig) ValidTotalTime() bool { return con.TotalTime > 0 }
func (con *SimConfig) ValidLambda() bool    { return con.Lambda > 0 }
func (con *SimConfig) ValidTimestep() bool  { return con.Timestep > 0 }

func (con *InitConfig) ValidMode() bool {
	switch con.Mode {
	case "Curve", "Surface", "Field", "Ring":
		return true
	}
	return false
}
func (con *InitConfig) ValidFile() bool {
	return con.Mode == "Ring" || con.File != ""
}
func (con *InitConfig) ValidComponents() bool { return con.Components > 0 }
func (con *InitConfig) ValidBoxFraction() bool {
	return con.BoxFraction > 0 && con.BoxFraction <= 1
}

func (con *OutputConfig) ValidDir() bool { return con.Dir != "" }
func (con *OutputConfig) ValidIntervals() bool {
	return con.FieldInterval > 0 && con.CurveInterval > 0
}

// CheckInit returns a single error describing every invalid parameter in
// the wrapper, or nil if the configuration is usable.
func (w *RunWrapper) CheckInit() error {
	bad := []string{}
	if !w.Sim.ValidGrid() {
		bad = append(bad, "[Sim] GridX/GridY/GridZ must all be above 2.")
	}
	if !w.Sim.ValidTotalTime() {
		bad = append(bad, "[Sim] TotalTime must be positive.")
	}
	if !w.Sim.ValidLambda() {
		bad = append(bad, "[Sim] Lambda must be positive.")
	}
	if !w.Sim.ValidTimestep() {
		bad = append(bad, "[Sim] Timestep must be positive.")
	}
	if !w.Init.ValidMode() {
		bad = append(bad, "[Init] Mode must be one of "+
			"Curve, Surface, Field, Ring.")
	}
	if !w.Init.ValidFile() {
		bad = append(bad, "[Init] File is required for this Mode.")
	}
	if !w.Init.ValidComponents() {
		bad = append(bad, "[Init] Components must be positive.")
	}
	if !w.Init.ValidBoxFraction() {
		bad = append(bad, "[Init] BoxFraction must be in (0, 1].")
	}
	if !w.Output.ValidDir() {
		bad = append(bad, "[Output] Dir is required.")
	}
	if !w.Output.ValidIntervals() {
		bad = append(bad, "[Output] Intervals must be positive.")
	}

	if len(bad) == 0 {
		return nil
	}
	msg := "Invalid run configuration:"
	for _, b := range bad {
		msg += "\n    " + b
	}
	return fmt.Errorf("%s", msg)
}
