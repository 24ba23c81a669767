package io

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/phil-mansfield/table"

	"github.com/phil-mansfield/goknot/geom"
)

// ReadPolylines reads the closed curve components of a Curve-mode input.
// The first component is read from file; components beyond the first come
// from the same name with 2, 3, ... inserted before the extension
// (trefoil.txt, trefoil2.txt, ...). Each file is three whitespace-separated
// coordinate columns, one point per line, and every component is resampled
// to roughly half-spacing h point separation.
func ReadPolylines(file string, components int, h float64) (
	[]geom.Polyline, error,
) {
	ps := make([]geom.Polyline, components)
	for m := 1; m <= components; m++ {
		name := file
		if m > 1 {
			ext := filepath.Ext(file)
			name = strings.TrimSuffix(file, ext) + fmt.Sprintf("%d%s", m, ext)
		}

		cols, err := table.ReadTable(name, []int{0, 1, 2}, nil)
		if err != nil {
			return nil, fmt.Errorf("curve file %s: %s", name, err.Error())
		}
		xs, ys, zs := cols[0], cols[1], cols[2]
		if len(xs) < 3 {
			return nil, fmt.Errorf(
				"curve file %s has %d points, need at least 3.",
				name, len(xs),
			)
		}

		pts := make([]geom.Vec, len(xs))
		for i := range xs {
			pts[i] = geom.Vec{xs[i], ys[i], zs[i]}
		}
		ps[m-1] = geom.Polyline{Points: Resample(pts, h/2)}
	}
	return ps, nil
}

// Resample returns pts redistributed along the same closed loop at roughly
// the target spacing.
func Resample(pts []geom.Vec, spacing float64) []geom.Vec {
	np := len(pts)
	total := 0.0
	for s := 0; s < np; s++ {
		total += pts[(s+1)%np].Sub(pts[s]).Norm()
	}
	n := int(total / spacing)
	if n < np {
		n = np
	}
	dl := total / float64(n)

	out := make([]geom.Vec, 0, n)
	out = append(out, pts[0])

	seg := 0
	segLen := pts[1%np].Sub(pts[0]).Norm()
	into := 0.0
	for t := 1; t < n; t++ {
		step := dl
		for into+step > segLen {
			step -= segLen - into
			into = 0
			seg++
			segLen = pts[(seg+1)%np].Sub(pts[seg%np]).Norm()
		}
		into += step
		dir := pts[(seg+1)%np].Sub(pts[seg%np]).Scale(1 / segLen)
		out = append(out, pts[seg%np].Add(dir.Scale(into)))
	}
	return out
}
