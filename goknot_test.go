package goknot

import (
	"math"
	"testing"

	"github.com/phil-mansfield/goknot/extract"
	"github.com/phil-mansfield/goknot/geom"
	"github.com/phil-mansfield/goknot/grid"
	"github.com/phil-mansfield/goknot/io"
	"github.com/phil-mansfield/goknot/rd"
)

// TestHexagonEndToEnd runs the whole pipeline on a hexagonal filament: seed
// the fields from the polyline, advance one timestep, and extract. The
// extracted curve must be a single closed loop whose perimeter is within
// ten percent of the input's.
func TestHexagonEndToEnd(t *testing.T) {
	g := grid.NewGrid(32, 32, 32, 1.0)
	p := rd.DefaultParams()

	r := 8.0
	pts := make([]geom.Vec, 6)
	for s := range pts {
		theta := 2 * math.Pi * float64(s) / 6
		pts[s] = geom.Vec{r * math.Cos(theta), r * math.Sin(theta), 0}
	}
	hex := geom.Polyline{Points: io.Resample(pts, g.H/2)}
	want := hex.Length()

	ci := &CurveInit{Curves: []geom.Polyline{hex}}
	u, v, err := ci.InitState(g, p, 2)
	if err != nil {
		t.Fatalf(err.Error())
	}

	in := rd.NewIntegrator(g, p, u, v)
	in.Workers(2)
	in.Step()

	c := extract.NewContext(g, p.Lambda)
	c.Workers(2)
	c.CrossField(u, v)
	curves := c.Extract()
	if len(curves) != 1 {
		t.Fatalf("Extracted %d curves, not 1", len(curves))
	}

	got := curves[0].Perimeter()
	if math.Abs(got-want) > 0.1*want {
		t.Errorf("Extracted perimeter %g, not within 10%% of %g", got, want)
	}
}
