package io

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/phil-mansfield/goknot/geom"
)

// ReadSTL reads an oriented triangle mesh from an ASCII STL file.
func ReadSTL(file string) (*geom.Surface, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	surf := &geom.Surface{}
	scan := bufio.NewScanner(f)

	var normal geom.Vec
	var verts []geom.Vec
	line := 0
	for scan.Scan() {
		line++
		fields := strings.Fields(scan.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "facet":
			if len(fields) != 5 || fields[1] != "normal" {
				return nil, fmt.Errorf(
					"%s: line %d: malformed facet line.", file, line,
				)
			}
			normal, err = parseVec(fields[2:])
			if err != nil {
				return nil, fmt.Errorf("%s: line %d: %s", file, line, err)
			}
			verts = verts[:0]
		case "vertex":
			if len(fields) != 4 {
				return nil, fmt.Errorf(
					"%s: line %d: malformed vertex line.", file, line,
				)
			}
			v, err := parseVec(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("%s: line %d: %s", file, line, err)
			}
			verts = append(verts, v)
		case "endfacet":
			if len(verts) != 3 {
				return nil, fmt.Errorf(
					"%s: line %d: facet with %d vertices.",
					file, line, len(verts),
				)
			}
			tri := geom.Triangle{}
			tri.Init(verts[0], verts[1], verts[2], normal)
			surf.Tris = append(surf.Tris, tri)
		case "solid", "outer", "endloop", "endsolid":
			// structural lines carry no geometry
		}
	}
	if err := scan.Err(); err != nil {
		return nil, err
	}
	if len(surf.Tris) == 0 {
		return nil, fmt.Errorf("%s contains no facets.", file)
	}
	return surf, nil
}

func parseVec(fields []string) (geom.Vec, error) {
	var v geom.Vec
	for i := 0; i < 3; i++ {
		x, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return geom.Vec{}, fmt.Errorf("bad coordinate %q.", fields[i])
		}
		v[i] = x
	}
	return v, nil
}
