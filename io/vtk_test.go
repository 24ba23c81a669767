package io

import (
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phil-mansfield/goknot/geom"
	"github.com/phil-mansfield/goknot/grid"
)

func TestFieldsRoundTrip(t *testing.T) {
	g := grid.NewGrid(4, 5, 6, 0.5)
	u := make([]float64, g.Volume)
	v := make([]float64, g.Volume)
	rng := rand.New(rand.NewSource(0))
	for n := range u {
		u[n] = rng.Float64()*4 - 2
		v[n] = rng.Float64()*4 - 2
	}

	file := filepath.Join(t.TempDir(), "uv.vtk")
	require.NoError(t, WriteFields(file, g, u, v, nil))

	ru, rv, err := ReadFields(file, g)
	require.NoError(t, err)
	// %g prints the shortest digit string that parses back exactly.
	assert.Equal(t, u, ru)
	assert.Equal(t, v, rv)
}

func TestFieldsRoundTripWithMag(t *testing.T) {
	g := grid.NewGrid(3, 3, 3, 1.0)
	u := make([]float64, g.Volume)
	v := make([]float64, g.Volume)
	mag := make([]float64, g.Volume)
	for n := range u {
		u[n], v[n], mag[n] = float64(n), -float64(n), 1
	}

	file := filepath.Join(t.TempDir(), "uv.vtk")
	require.NoError(t, WriteFields(file, g, u, v, mag))

	// The extra scalar block must not confuse the reader.
	ru, rv, err := ReadFields(file, g)
	require.NoError(t, err)
	assert.Equal(t, u, ru)
	assert.Equal(t, v, rv)
}

func TestReadFieldsMissingBlock(t *testing.T) {
	g := grid.NewGrid(3, 3, 3, 1.0)
	file := filepath.Join(t.TempDir(), "phi.vtk")
	phi := make([]float64, g.Volume)
	require.NoError(t, WritePhi(file, g, phi, nil))

	_, _, err := ReadFields(file, g)
	assert.Error(t, err)
}

func TestWriteCurveLayout(t *testing.T) {
	pts := []geom.Vec{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}}
	c := geom.NewCurve(pts)
	for s := range c.Points {
		c.Points[s].A = geom.Vec{0, 0, 1}
		c.Points[s].Curvature = float64(s)
	}

	file := filepath.Join(t.TempDir(), "knot.vtk")
	require.NoError(t, WriteCurve(file, c))

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	text := string(data)

	assert.Contains(t, text, "POINTS 4 float")
	assert.Contains(t, text, "CELLS 4 12")
	assert.Contains(t, text, "POINT_DATA 4")
	assert.Contains(t, text, "CELL_DATA 4")
	for _, name := range []string{
		"Curvature", "Torsion", "Spinrate", "A", "Velocity",
		"Writhe", "Twist", "Length",
	} {
		assert.Contains(t, text, name)
	}
	// The last line cell wraps back to the first point.
	assert.Contains(t, text, "2 3 0")

	lines := strings.Split(text, "\n")
	assert.Equal(t, "# vtk DataFile Version 3.0", lines[0])
}
