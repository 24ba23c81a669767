package io

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// RunInfo records the resolved parameters of a run so its outputs stay
// interpretable after the config file changes.
type RunInfo struct {
	StartedAt string `yaml:"started_at"`

	GridX    int     `yaml:"grid_x"`
	GridY    int     `yaml:"grid_y"`
	GridZ    int     `yaml:"grid_z"`
	Spacing  float64 `yaml:"spacing"`
	Timestep float64 `yaml:"timestep"`
	Lambda   float64 `yaml:"lambda"`

	PeriodicX bool `yaml:"periodic_x"`
	PeriodicY bool `yaml:"periodic_y"`
	PeriodicZ bool `yaml:"periodic_z"`

	Mode      string  `yaml:"init_mode"`
	InputFile string  `yaml:"input_file,omitempty"`
	TotalTime float64 `yaml:"total_time"`
	StartTime float64 `yaml:"start_time"`
}

// NewRunInfo resolves a validated configuration into a RunInfo stamped with
// the current time.
func NewRunInfo(w *RunWrapper) *RunInfo {
	return &RunInfo{
		StartedAt: time.Now().Format(time.RFC3339),
		GridX:     w.Sim.GridX,
		GridY:     w.Sim.GridY,
		GridZ:     w.Sim.GridZ,
		Spacing:   w.Sim.Spacing(),
		Timestep:  w.Sim.Timestep,
		Lambda:    w.Sim.Lambda,
		PeriodicX: w.Sim.PeriodicX,
		PeriodicY: w.Sim.PeriodicY,
		PeriodicZ: w.Sim.PeriodicZ,
		Mode:      w.Init.Mode,
		InputFile: w.Init.File,
		TotalTime: w.Sim.TotalTime,
		StartTime: w.Output.StartTime,
	}
}

// WriteInfo writes the run record as YAML.
func WriteInfo(file string, info *RunInfo) error {
	data, err := yaml.Marshal(info)
	if err != nil {
		return err
	}
	return os.WriteFile(file, data, 0666)
}
