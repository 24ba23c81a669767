package phase

import (
	"testing"

	"github.com/phil-mansfield/goknot/field"
	"github.com/phil-mansfield/goknot/grid"
)

// uniformField returns a LineField with B = (bx, by, bz) everywhere, with
// the masks left clear. Tests fill it directly instead of integrating.
func uniformField(g *grid.Grid, bx, by, bz float64) *field.LineField {
	f := field.NewLineField(g, 1.0)
	mag := sqrt(bx*bx + by*by + bz*bz)
	for n := 0; n < g.Volume; n++ {
		f.Bx[n], f.By[n], f.Bz[n] = bx, by, bz
		f.Mag[n] = mag
	}
	return f
}

func pathOk(t *testing.T, g *grid.Grid, path [][3]int, blocked []bool) {
	for s, c := range path {
		n := g.Idx(c[0], c[1], c[2])
		if blocked[n] {
			t.Errorf("Path visits blocked cell %v", c)
		}
		if s == 0 {
			continue
		}
		for a := 0; a < 3; a++ {
			d := c[a] - path[s-1][a]
			if d < -1 || d > 1 {
				t.Errorf("Path jumps from %v to %v", path[s-1], c)
			}
		}
	}
}

func TestFindTrivialPath(t *testing.T) {
	g := grid.NewGrid(8, 8, 8, 1.0)
	f := uniformField(g, 1, 0, 0)
	fd := NewFinder(g, f)

	path := fd.Find(3, 3, 3, 3, 3, 3, make([]bool, g.Volume))
	if len(path) != 1 || path[0] != [3]int{3, 3, 3} {
		t.Errorf("Start == target path = %v", path)
	}
}

func TestFindStraightPath(t *testing.T) {
	g := grid.NewGrid(8, 8, 8, 1.0)
	f := uniformField(g, 1, 0, 0)
	fd := NewFinder(g, f)
	blocked := make([]bool, g.Volume)

	path := fd.Find(1, 1, 1, 6, 4, 1, blocked)
	if path == nil {
		t.Fatal("No path across an empty grid")
	}
	pathOk(t, g, path, blocked)
	// An unobstructed walk moves diagonally straight at the target.
	if len(path) != 6 {
		t.Errorf("Path length %d, not 6", len(path))
	}
	if path[len(path)-1] != [3]int{6, 4, 1} {
		t.Errorf("Path ends at %v", path[len(path)-1])
	}
}

func TestFindDetour(t *testing.T) {
	g := grid.NewGrid(8, 8, 8, 1.0)
	f := uniformField(g, 1, 0, 0)
	fd := NewFinder(g, f)

	// A full wall at i = 3 with one hole at (3, 2, 2), one cell off the
	// straight line from start to target.
	blocked := make([]bool, g.Volume)
	for j := 0; j < g.Ny; j++ {
		for k := 0; k < g.Nz; k++ {
			blocked[g.Idx(3, j, k)] = true
		}
	}
	blocked[g.Idx(3, 2, 2)] = false

	path := fd.Find(0, 3, 3, 7, 3, 3, blocked)
	if path == nil {
		t.Fatal("No path through the hole")
	}
	pathOk(t, g, path, blocked)
	if path[0] != [3]int{0, 3, 3} || path[len(path)-1] != [3]int{7, 3, 3} {
		t.Errorf("Path runs %v to %v", path[0], path[len(path)-1])
	}

	through := false
	for _, c := range path {
		if c == [3]int{3, 2, 2} {
			through = true
		}
	}
	if !through {
		t.Errorf("Path crossed the wall outside the hole: %v", path)
	}
}

func TestFindUnreachable(t *testing.T) {
	g := grid.NewGrid(8, 8, 8, 1.0)
	f := uniformField(g, 1, 0, 0)
	fd := NewFinder(g, f)

	// Seal the wall completely.
	blocked := make([]bool, g.Volume)
	for j := 0; j < g.Ny; j++ {
		for k := 0; k < g.Nz; k++ {
			blocked[g.Idx(3, j, k)] = true
		}
	}

	if path := fd.Find(0, 3, 3, 7, 3, 3, blocked); path != nil {
		t.Errorf("Found a path through a sealed wall: %v", path)
	}
}

func TestFinderReuse(t *testing.T) {
	g := grid.NewGrid(8, 8, 8, 1.0)
	f := uniformField(g, 1, 0, 0)
	fd := NewFinder(g, f)
	blocked := make([]bool, g.Volume)

	// The visited stamps must not leak between calls.
	for trial := 0; trial < 3; trial++ {
		path := fd.Find(0, 0, 0, 7, 7, 7, blocked)
		if len(path) != 8 {
			t.Errorf("Trial %d: path length %d, not 8", trial+1, len(path))
		}
	}
}
