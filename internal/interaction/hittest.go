package interaction

import (
	"sort"

	"github.com/paulmach/orb"

	"github.com/jengzang/mobility-map-backend/internal/models"
	"github.com/jengzang/mobility-map-backend/internal/render"
	"github.com/jengzang/mobility-map-backend/internal/spatial"
)

// RouteHit is every trip under a cursor position
type RouteHit struct {
	RouteIDs []string
	Groups   []models.TripGroup
	Total    int
}

// pixelBox is the hit area around the cursor
type pixelBox struct {
	minX, minY, maxX, maxY float64
}

func boxAround(x, y, buffer float64) pixelBox {
	return pixelBox{minX: x - buffer, minY: y - buffer, maxX: x + buffer, maxY: y + buffer}
}

func (b pixelBox) containsPoint(px, py float64) bool {
	return px >= b.minX && px <= b.maxX && py >= b.minY && py <= b.maxY
}

// segmentHit reports whether any piece of the projected polyline touches
// the box
func segmentHit(s spatial.Screen, coords []orb.Point, b pixelBox) bool {
	if len(coords) == 1 {
		x, y := s.Project(coords[0])
		return b.containsPoint(x, y)
	}
	for i := 1; i < len(coords); i++ {
		x1, y1 := s.Project(coords[i-1])
		x2, y2 := s.Project(coords[i])
		if spatial.SegmentIntersectsBox(x1, y1, x2, y2, b.minX, b.minY, b.maxX, b.maxY) {
			return true
		}
	}
	return false
}

// routesAt collects every segment under the box, grouped by transport mode
// and destination. Groups are sorted by count, largest first.
func routesAt(f render.Frame, b pixelBox) RouteHit {
	type groupKey struct {
		mode models.TransportMode
		dest string
	}

	counts := make(map[groupKey]int)
	var hit RouteHit
	for _, seg := range f.Segments {
		if !segmentHit(f.Screen, seg.Coordinates, b) {
			continue
		}
		hit.RouteIDs = append(hit.RouteIDs, seg.RouteID)
		counts[groupKey{mode: seg.TransportMode, dest: seg.DestinationName}]++
	}

	for k, n := range counts {
		hit.Groups = append(hit.Groups, models.TripGroup{TransportMode: k.mode, Destination: k.dest, Count: n})
		hit.Total += n
	}
	sort.Slice(hit.Groups, func(i, j int) bool {
		gi, gj := hit.Groups[i], hit.Groups[j]
		if gi.Count != gj.Count {
			return gi.Count > gj.Count
		}
		if gi.TransportMode != gj.TransportMode {
			return gi.TransportMode < gj.TransportMode
		}
		return gi.Destination < gj.Destination
	})
	return hit
}

// nearestPoint returns the index of the point closest to (x, y) inside the
// box, or -1
func nearestPoint(s spatial.Screen, points []orb.Point, x, y float64, b pixelBox) int {
	best, bestDist := -1, 0.0
	for i, p := range points {
		px, py := s.Project(p)
		if !b.containsPoint(px, py) {
			continue
		}
		d := (px-x)*(px-x) + (py-y)*(py-y)
		if best < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}
