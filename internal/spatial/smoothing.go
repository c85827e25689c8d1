package spatial

import "github.com/paulmach/orb"

// DefaultSmoothingFactor is how far each interior vertex moves toward the
// average of its neighbours.
const DefaultSmoothingFactor = 0.15

// SmoothPath applies a one-pass low-pass filter to the interior vertices of a
// [lng, lat] path. Neighbour averages are taken from the input, so the result
// does not depend on iteration order. The first and last vertices are kept
// exactly. Paths with two or fewer vertices are returned as a copy.
func SmoothPath(coords []orb.Point, factor float64) []orb.Point {
	out := make([]orb.Point, len(coords))
	copy(out, coords)
	if len(coords) <= 2 {
		return out
	}

	for i := 1; i < len(coords)-1; i++ {
		prev, cur, next := coords[i-1], coords[i], coords[i+1]
		avgLng := (prev[0] + next[0]) / 2
		avgLat := (prev[1] + next[1]) / 2
		out[i] = orb.Point{
			cur[0] + (avgLng-cur[0])*factor,
			cur[1] + (avgLat-cur[1])*factor,
		}
	}

	return out
}
