package io

import (
	"bufio"
	"fmt"
	"os"

	"github.com/phil-mansfield/goknot/geom"
	"github.com/phil-mansfield/goknot/grid"
)

// WriteFields writes the activator and recovery fields, plus the
// cross-gradient magnitude if mag is non-nil, as a legacy-VTK
// STRUCTURED_POINTS file. The x index varies fastest, per the format.
func WriteFields(file string, g *grid.Grid, u, v, mag []float64) error {
	f, err := os.Create(file)
	if err != nil {
		return err
	}
	defer f.Close()
	w := bufio.NewWriter(f)

	writeStructuredHeader(w, g, "UV fields")
	writeScalars(w, g, "u", u)
	writeScalars(w, g, "v", v)
	if mag != nil {
		writeScalars(w, g, "ucrossv", mag)
	}
	return w.Flush()
}

// WritePhi writes the initial phase field, plus the missed-cell mask for
// curve-seeded runs.
func WritePhi(file string, g *grid.Grid, phi []float64, missed []bool) error {
	f, err := os.Create(file)
	if err != nil {
		return err
	}
	defer f.Close()
	w := bufio.NewWriter(f)

	writeStructuredHeader(w, g, "Phase")
	writeScalars(w, g, "phi", phi)
	if missed != nil {
		fmt.Fprintf(w, "SCALARS missed int\nLOOKUP_TABLE default\n")
		for k := 0; k < g.Nz; k++ {
			for j := 0; j < g.Ny; j++ {
				for i := 0; i < g.Nx; i++ {
					m := 0
					if missed[g.Idx(i, j, k)] {
						m = 1
					}
					fmt.Fprintf(w, "%d\n", m)
				}
			}
		}
	}
	return w.Flush()
}

func writeStructuredHeader(w *bufio.Writer, g *grid.Grid, title string) {
	fmt.Fprintf(w, "# vtk DataFile Version 3.0\n%s\nASCII\n", title)
	fmt.Fprintf(w, "DATASET STRUCTURED_POINTS\n")
	fmt.Fprintf(w, "DIMENSIONS %d %d %d\n", g.Nx, g.Ny, g.Nz)
	fmt.Fprintf(w, "ORIGIN %g %g %g\n", g.X(0), g.Y(0), g.Z(0))
	fmt.Fprintf(w, "SPACING %g %g %g\n", g.H, g.H, g.H)
	fmt.Fprintf(w, "POINT_DATA %d\n", g.Volume)
}

func writeScalars(w *bufio.Writer, g *grid.Grid, name string, f []float64) {
	fmt.Fprintf(w, "SCALARS %s float\nLOOKUP_TABLE default\n", name)
	for k := 0; k < g.Nz; k++ {
		for j := 0; j < g.Ny; j++ {
			for i := 0; i < g.Nx; i++ {
				fmt.Fprintf(w, "%g\n", f[g.Idx(i, j, k)])
			}
		}
	}
}

// ReadFields reads the u and v fields back from a file written by
// WriteFields, for resuming a run.
func ReadFields(file string, g *grid.Grid) (u, v []float64, err error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	scan := bufio.NewScanner(f)
	scan.Buffer(make([]byte, 1<<16), 1<<20)
	scan.Split(bufio.ScanWords)

	u, err = scanScalars(scan, g, "u")
	if err != nil {
		return nil, nil, fmt.Errorf("field file %s: %s", file, err.Error())
	}
	v, err = scanScalars(scan, g, "v")
	if err != nil {
		return nil, nil, fmt.Errorf("field file %s: %s", file, err.Error())
	}
	return u, v, nil
}

// scanScalars advances past the named SCALARS header and its lookup table
// line, then reads one value per cell with x varying fastest.
func scanScalars(scan *bufio.Scanner, g *grid.Grid, name string) (
	[]float64, error,
) {
	found := false
	for scan.Scan() {
		if scan.Text() == "SCALARS" {
			if !scan.Scan() {
				break
			}
			if scan.Text() == name {
				found = true
				break
			}
		}
	}
	if !found {
		return nil, fmt.Errorf("no SCALARS %s block.", name)
	}
	// skip the type word and the LOOKUP_TABLE line
	for i := 0; i < 3; i++ {
		if !scan.Scan() {
			return nil, fmt.Errorf("truncated SCALARS %s header.", name)
		}
	}

	f := make([]float64, g.Volume)
	for k := 0; k < g.Nz; k++ {
		for j := 0; j < g.Ny; j++ {
			for i := 0; i < g.Nx; i++ {
				if !scan.Scan() {
					return nil, fmt.Errorf(
						"SCALARS %s ends before cell (%d,%d,%d).",
						name, i, j, k,
					)
				}
				var x float64
				if _, err := fmt.Sscan(scan.Text(), &x); err != nil {
					return nil, fmt.Errorf(
						"bad value %q in SCALARS %s.", scan.Text(), name,
					)
				}
				f[g.Idx(i, j, k)] = x
			}
		}
	}
	return f, nil
}

// WriteCurve writes one extracted curve as a legacy-VTK unstructured grid
// of line cells with its per-point and per-segment attributes.
func WriteCurve(file string, c *geom.Curve) error {
	f, err := os.Create(file)
	if err != nil {
		return err
	}
	defer f.Close()
	w := bufio.NewWriter(f)

	n := c.Len()
	fmt.Fprintf(w, "# vtk DataFile Version 3.0\nKnot\nASCII\n")
	fmt.Fprintf(w, "DATASET UNSTRUCTURED_GRID\n")
	fmt.Fprintf(w, "POINTS %d float\n", n)
	for s := 0; s < n; s++ {
		p := c.Points[s].P
		fmt.Fprintf(w, "%g %g %g\n", p[0], p[1], p[2])
	}

	fmt.Fprintf(w, "\nCELLS %d %d\n", n, 3*n)
	for s := 0; s < n; s++ {
		fmt.Fprintf(w, "2 %d %d\n", s, c.Next(s))
	}
	fmt.Fprintf(w, "\nCELL_TYPES %d\n", n)
	for s := 0; s < n; s++ {
		fmt.Fprintf(w, "3\n")
	}

	fmt.Fprintf(w, "\nPOINT_DATA %d\n", n)
	writeCurveScalars(w, c, "Curvature", func(p *geom.Point) float64 {
		return p.Curvature
	})
	writeCurveScalars(w, c, "Torsion", func(p *geom.Point) float64 {
		return p.Torsion
	})
	writeCurveScalars(w, c, "Spinrate", func(p *geom.Point) float64 {
		return p.SpinRate
	})
	writeCurveVectors(w, c, "A", func(p *geom.Point) geom.Vec { return p.A })
	writeCurveVectors(w, c, "Velocity", func(p *geom.Point) geom.Vec {
		return p.Velocity
	})

	fmt.Fprintf(w, "\nCELL_DATA %d\n", n)
	writeCurveScalars(w, c, "Writhe", func(p *geom.Point) float64 {
		return p.WritheDensity
	})
	writeCurveScalars(w, c, "Twist", func(p *geom.Point) float64 {
		return p.TwistDensity
	})
	writeCurveScalars(w, c, "Length", func(p *geom.Point) float64 {
		return p.Spacing
	})

	return w.Flush()
}

func writeCurveScalars(
	w *bufio.Writer, c *geom.Curve, name string, f func(*geom.Point) float64,
) {
	fmt.Fprintf(w, "\nSCALARS %s float\nLOOKUP_TABLE default\n", name)
	for s := range c.Points {
		fmt.Fprintf(w, "%g\n", f(&c.Points[s]))
	}
}

func writeCurveVectors(
	w *bufio.Writer, c *geom.Curve, name string, f func(*geom.Point) geom.Vec,
) {
	fmt.Fprintf(w, "\nVECTORS %s float\n", name)
	for s := range c.Points {
		v := f(&c.Points[s])
		fmt.Fprintf(w, "%g %g %g\n", v[0], v[1], v[2])
	}
}
