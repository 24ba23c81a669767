package io

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummaryWriterHeaderOnce(t *testing.T) {
	file := filepath.Join(t.TempDir(), "writhe.csv")
	w, err := NewSummaryWriter(file)
	require.NoError(t, err)

	require.NoError(t, w.Append([]SummaryRow{
		{Time: 0, Component: 0, Writhe: 1.5, Twist: -0.5, Length: 40},
	}))
	require.NoError(t, w.Append(nil))
	require.NoError(t, w.Append([]SummaryRow{
		{Time: 1, Component: 0, Writhe: 1.4, Twist: -0.4, Length: 41},
		{Time: 1, Component: 1, Writhe: 0.1, Twist: 0.0, Length: 12},
	}))
	require.NoError(t, w.Close())

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")

	require.Len(t, lines, 4)
	assert.Equal(t, "time,component,writhe,twist,length", lines[0])
	assert.Equal(t, 1, strings.Count(string(data), "time,"))
	assert.True(t, strings.HasPrefix(lines[2], "1,0,"))
	assert.True(t, strings.HasPrefix(lines[3], "1,1,"))
}

func TestRunInfoRoundTrip(t *testing.T) {
	w := DefaultRunWrapper()
	w.Sim.GridX, w.Sim.GridY, w.Sim.GridZ = 100, 100, 50
	w.Sim.TotalTime = 25
	w.Sim.PeriodicZ = true
	w.Init.Mode = "Curve"
	w.Init.File = "trefoil.txt"
	w.Output.Dir = "out"

	info := NewRunInfo(w)
	assert.Equal(t, 100, info.GridX)
	assert.Equal(t, 50, info.GridZ)
	assert.True(t, info.PeriodicZ)
	assert.False(t, info.PeriodicX)
	assert.Equal(t, "Curve", info.Mode)
	assert.NotEmpty(t, info.StartedAt)

	file := filepath.Join(t.TempDir(), "info.yaml")
	require.NoError(t, WriteInfo(file, info))

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, "grid_x: 100")
	assert.Contains(t, text, "init_mode: Curve")
	assert.Contains(t, text, "input_file: trefoil.txt")
	assert.Contains(t, text, "periodic_z: true")
}
