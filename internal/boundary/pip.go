package boundary

import "math"

// onSegmentEps bounds the cross/dot products of the on-edge test. Boundary
// vertices carry at most ~4 decimal places, so 1e-9 is far below the
// resolution of the data while absorbing float noise from the recentring.
const onSegmentEps = 1e-9

// ringContains reports whether p lies inside or on the closed ring, using an
// even-odd ray cast. The ring is unwrapped into a continuous longitude chain
// recentred on p: the first vertex lands on its shorter arc from p and every
// subsequent vertex on its shorter arc from the previous one. Rings crossing
// the anti-meridian (±180°) therefore behave like any other ring, and a
// patch sitting just across the date line never straddles the ray spuriously.
// A point exactly on a vertex or edge counts as inside — the boundary is
// closed, which keeps repeated filter passes idempotent.
//
// Rings must not encircle a pole; country outlines never do.
func ringContains(ring []Point, p Point) bool {
	n := len(ring)
	if n < 3 {
		return false
	}

	// In the recentred frame the query point sits at longitude 0 and the
	// ray runs east along y = p.Lat.
	y := p.Lat
	inside := false

	x1 := lonDelta(ring[0].Lon, p.Lon)
	y1 := ring[0].Lat

	for i := 1; i <= n; i++ {
		v := ring[i%n]
		x2 := x1 + lonDelta(v.Lon, ring[i-1].Lon)
		y2 := v.Lat

		if onSegment(0, y, x1, y1, x2, y2) {
			return true
		}

		// The strict/non-strict split guarantees y2 != y1 below and counts
		// each vertex crossing exactly once.
		if (y1 > y) != (y2 > y) {
			crossLon := (x2-x1)*(y-y1)/(y2-y1) + x1
			if crossLon > 0 {
				inside = !inside
			}
		}

		x1, y1 = x2, y2
	}
	return inside
}

// lonDelta returns lon relative to ref, normalized to the shorter arc in
// [-180, 180).
func lonDelta(lon, ref float64) float64 {
	return math.Mod(lon-ref+540, 360) - 180
}

// onSegment reports whether (px, py) lies on the segment (x1, y1)-(x2, y2).
func onSegment(px, py, x1, y1, x2, y2 float64) bool {
	cross := (x2-x1)*(py-y1) - (y2-y1)*(px-x1)
	if math.Abs(cross) > onSegmentEps {
		return false
	}
	dot := (px-x1)*(x2-x1) + (py-y1)*(y2-y1)
	if dot < -onSegmentEps {
		return false
	}
	lenSq := (x2-x1)*(x2-x1) + (y2-y1)*(y2-y1)
	return dot <= lenSq+onSegmentEps
}
