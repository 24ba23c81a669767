/*package phase reconstructs the scalar phase field from a Biot-Savart
vector field by line integration along discrete grid paths from a base
cell, steering the paths around the filament cores.*/
package phase

import (
	"github.com/phil-mansfield/goknot/field"
	"github.com/phil-mansfield/goknot/grid"
)

// searchState names the phase the path walk is in after a step.
type searchState int

const (
	advance searchState = iota
	blockedSearch
	backtrack
	failed
)

// Finder walks discrete paths across the grid from a start cell to a
// target cell without crossing blocked cells. The walk steps diagonally
// straight at the target; when that cell is blocked or already on the path
// it scans all 26 neighbors for the one best aligned with the target
// direction and the local field direction, and backtracks when no neighbor
// is open.
type Finder struct {
	g *grid.Grid
	f *field.LineField

	// visited[n] == stamp marks cell n as on the current path. The stamp
	// is bumped per call so the buffer never needs clearing.
	visited []int
	stamp   int

	stack [][3]int
}

// NewFinder returns a Finder over the given field.
func NewFinder(g *grid.Grid, f *field.LineField) *Finder {
	fd := &Finder{}
	fd.Init(g, f)
	return fd
}

// Init initializes a Finder instance.
func (fd *Finder) Init(g *grid.Grid, f *field.LineField) {
	fd.g = g
	fd.f = f
	fd.visited = make([]int, g.Volume)
	fd.stack = make([][3]int, 0, g.Nx+g.Ny+g.Nz)
}

// Find returns the cell path from (i0, j0, k0) to (ie, je, ke), start and
// target included, avoiding cells where blocked is true. A nil path means
// the target could not be reached: the walk hit the length cap or had no
// viable first move. Start equal to target returns a single-cell path.
//
// The returned slice is reused by the next call.
func (fd *Finder) Find(i0, j0, k0, ie, je, ke int, blocked []bool) [][3]int {
	g := fd.g
	fd.stamp++
	fd.stack = fd.stack[:0]
	fd.stack = append(fd.stack, [3]int{i0, j0, k0})
	fd.visited[g.Idx(i0, j0, k0)] = fd.stamp

	maxLen := g.Nx + g.Ny + g.Nz
	state := advance

	for {
		cur := fd.stack[len(fd.stack)-1]
		di, dj, dk := ie-cur[0], je-cur[1], ke-cur[2]
		if di == 0 && dj == 0 && dk == 0 {
			return fd.stack
		}
		if len(fd.stack) >= maxLen {
			return nil
		}

		switch state {
		case advance:
			next := [3]int{cur[0] + sign(di), cur[1] + sign(dj), cur[2] + sign(dk)}
			if fd.open(next, blocked) {
				fd.push(next)
			} else {
				state = blockedSearch
			}

		case blockedSearch:
			best, ok := fd.bestNeighbor(cur, di, dj, dk, blocked)
			if ok {
				fd.push(best)
				state = advance
			} else {
				state = backtrack
			}

		case backtrack:
			if len(fd.stack) == 1 {
				state = failed
				break
			}
			// Popped cells stay visited so the walk cannot loop.
			fd.stack = fd.stack[:len(fd.stack)-1]
			state = blockedSearch

		case failed:
			return nil
		}
	}
}

func (fd *Finder) push(c [3]int) {
	fd.stack = append(fd.stack, c)
	fd.visited[fd.g.Idx(c[0], c[1], c[2])] = fd.stamp
}

// open reports whether c is inside the grid, unblocked, and not already on
// the current path.
func (fd *Finder) open(c [3]int, blocked []bool) bool {
	g := fd.g
	if c[0] < 0 || c[0] >= g.Nx ||
		c[1] < 0 || c[1] >= g.Ny ||
		c[2] < 0 || c[2] >= g.Nz {
		return false
	}
	n := g.Idx(c[0], c[1], c[2])
	return !blocked[n] && fd.visited[n] != fd.stamp
}

// bestNeighbor scans the 26 neighbors of cur for the open cell maximizing
// the sum of its alignment with the direction to the target and its
// alignment with the local field direction. The second term steers the walk
// the consistent way around a core it cannot cross.
func (fd *Finder) bestNeighbor(
	cur [3]int, di, dj, dk int, blocked []bool,
) ([3]int, bool) {
	g, f := fd.g, fd.f
	dMag := sqrt(float64(di*di + dj*dj + dk*dk))

	best := [3]int{}
	max, found := -10.0, false
	for ip := -1; ip <= 1; ip++ {
		for jp := -1; jp <= 1; jp++ {
			for kp := -1; kp <= 1; kp++ {
				if ip == 0 && jp == 0 && kp == 0 {
					continue
				}
				c := [3]int{cur[0] + ip, cur[1] + jp, cur[2] + kp}
				if !fd.open(c, blocked) {
					continue
				}
				n := g.Idx(c[0], c[1], c[2])
				pMag := sqrt(float64(ip*ip + jp*jp + kp*kp))
				w1 := float64(di*ip+dj*jp+dk*kp) / (dMag * pMag)
				w2 := (f.Bx[n]*float64(ip) + f.By[n]*float64(jp) +
					f.Bz[n]*float64(kp)) / (f.Mag[n] * pMag)
				if w1+w2 > max {
					max, best, found = w1+w2, c, true
				}
			}
		}
	}
	return best, found
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}
