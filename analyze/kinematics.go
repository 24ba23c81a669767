package analyze

import (
	"log"
	"math"

	"github.com/phil-mansfield/goknot/geom"
)

// missFractionCap is the fraction of correspondence misses above which a
// component pair's kinematics are dropped entirely.
const missFractionCap = 0.25

// Kinematics connects the previous snapshot's curves to the current ones
// and fills in per-point velocity and spin rate on the previous curves,
// following Winfree: each previous point is joined to the spot where the
// current curve punctures its normal plane. dt is the time between the two
// extractions.
//
// Matching previous to current components uses centroid distance plus a
// perimeter-ratio penalty. The puncture search is bounded to one full wrap
// of the current curve; a point with no puncture keeps zero kinematics,
// and a pair missing more than a quarter of its points is dropped.
func Kinematics(prev, cur []*geom.Curve, dt float64) {
	if len(prev) == 0 || len(cur) == 0 {
		return
	}
	for _, pc := range prev {
		cc := matchComponent(pc, cur)
		trackPair(pc, cc, dt)
	}
}

// matchComponent returns the current component closest to prev under
// centroid distance scaled up by how much the perimeters disagree.
func matchComponent(prev *geom.Curve, cur []*geom.Curve) *geom.Curve {
	pc, pl := prev.Centroid(), prev.Perimeter()

	best, bestScore := cur[0], math.Inf(+1)
	for _, c := range cur {
		ratio := c.Perimeter() / pl
		if ratio < 1 {
			ratio = 1 / ratio
		}
		score := c.Centroid().Sub(pc).Norm() * ratio
		if score < bestScore {
			best, bestScore = c, score
		}
	}
	return best
}

func trackPair(prev, cur *geom.Curve, dt float64) {
	np, npOld := cur.Len(), prev.Len()

	// align start indices by nearest point to prev's first point
	offset, minDist := 0, math.Inf(+1)
	for s := 0; s < np; s++ {
		d := cur.Points[s].P.Sub(prev.Points[0].P).Norm()
		if d < minDist {
			minDist, offset = d, s
		}
	}

	misses := 0
	for s := 0; s < npOld; s++ {
		planePt := prev.Points[s].P
		planeN := prev.Points[(s+1)%npOld].P.Sub(planePt)

		hit := false
		var frac float64
		var isect geom.Vec
		var m int
		// search outward from the aligned guess, alternating sides, at
		// most one full wrap
		guess := s + offset
		for step := 0; step < np; step++ {
			if step%2 == 1 {
				m = mod(guess-(step+1)/2, np)
			} else {
				m = mod(guess+step/2, np)
			}
			frac, isect, hit = segmentPlane(
				cur.Points[m].P, cur.Points[(m+1)%np].P, planePt, planeN,
			)
			if hit {
				break
			}
		}
		if !hit {
			misses++
			continue
		}

		// frame vector at the puncture, with the tangential part removed
		a := cur.Points[(m+1)%np].A.Scale(frac).
			Add(cur.Points[m].A.Scale(1 - frac))
		a = a.Sub(planeN.Scale(a.Dot(planeN) / planeN.Dot(planeN))).
			Normalize()

		p := &prev.Points[s]
		p.Velocity = isect.Sub(p.P).Scale(1 / dt)
		p.SpinRate = a.Sub(p.A).Norm() / dt
	}

	if float64(misses) > missFractionCap*float64(npOld) {
		for s := range prev.Points {
			prev.Points[s].Velocity = geom.Vec{}
			prev.Points[s].SpinRate = 0
		}
		log.Printf("analyze: dropped kinematics for a component pair "+
			"(%d of %d points without a puncture)", misses, npOld)
	}
}

// segmentPlane intersects the segment from a to b with the plane through
// p0 with normal n. frac is the fraction along the segment at the
// intersection.
func segmentPlane(a, b, p0, n geom.Vec) (frac float64, isect geom.Vec, ok bool) {
	u := b.Sub(a)
	w := a.Sub(p0)

	d := n.Dot(u)
	if math.Abs(d) < 0.01 {
		return 0, geom.Vec{}, false
	}
	frac = -n.Dot(w) / d
	if frac < 0 || frac > 1 {
		return 0, geom.Vec{}, false
	}
	return frac, a.Add(u.Scale(frac)), true
}

func mod(x, n int) int {
	m := x % n
	if m < 0 {
		m += n
	}
	return m
}
