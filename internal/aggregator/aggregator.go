package aggregator

import (
	"sort"

	"github.com/paulmach/orb"

	"github.com/jengzang/mobility-map-backend/internal/logger"
	"github.com/jengzang/mobility-map-backend/internal/models"
	"github.com/jengzang/mobility-map-backend/internal/spatial"
)

// Config tunes segment construction
type Config struct {
	OverlapToleranceMeters float64
	SmoothingFactor        float64
	BaseLineWidth          float64
	MaxLineWidth           float64
	OffsetStepPx           float64
}

// DefaultConfig returns the standard aggregation settings
func DefaultConfig() Config {
	return Config{
		OverlapToleranceMeters: 50,
		SmoothingFactor:        spatial.DefaultSmoothingFactor,
		BaseLineWidth:          3,
		MaxLineWidth:           10,
		OffsetStepPx:           2,
	}
}

// Aggregator turns routes into renderable segments, one per trip
type Aggregator struct {
	cfg Config
}

// New creates a new aggregator
func New(cfg Config) *Aggregator {
	return &Aggregator{cfg: cfg}
}

// Aggregate builds one segment per route that passes the filter, in input
// order. Each segment is annotated with the number of earlier segments that
// share its endpoints. Routes without a destination, or without both a path
// and a residence, are skipped.
func (a *Aggregator) Aggregate(routes []models.Route, filter models.FilterState) []models.RouteSegment {
	segments := make([]models.RouteSegment, 0, len(routes))
	if !filter.ShowRoutes {
		return segments
	}

	skipped := 0
	for _, r := range routes {
		if !filter.AllowsMode(r.TransportMode) {
			continue
		}
		if !r.HasDestination() {
			logger.Warn("Skipping route without destination", "route_id", r.ID.String())
			skipped++
			continue
		}

		gateKey := ResolveGateKey(r.Destination)
		if !filter.AllowsGate(gateKey) {
			continue
		}

		path, err := resolvePath(r)
		if err != nil {
			logger.Warn("Skipping route", "route_id", r.ID.String(), "error", err)
			skipped++
			continue
		}
		coords := spatial.SmoothPath(path, a.cfg.SmoothingFactor)

		seg := models.RouteSegment{
			RouteID:         r.ID.String(),
			Coordinates:     coords,
			GateKey:         gateKey,
			GateColor:       GateColor(gateKey),
			Distance:        r.Distance,
			TransportMode:   r.TransportMode,
			DestinationName: r.DestinationName(),
		}

		colors := map[string]struct{}{seg.GateColor: {}}
		overlapping := 0
		for i := range segments {
			if Overlaps(seg, segments[i], a.cfg.OverlapToleranceMeters) {
				colors[segments[i].GateColor] = struct{}{}
				overlapping++
			}
		}

		seg.LocalDensity = 1 + overlapping
		seg.RenderOrder = seg.LocalDensity
		seg.BlendedColor = seg.GateColor
		if overlapping > 0 {
			seg.BlendedColor = spatial.BlendColor(distinctColors(colors))
		}
		seg.LineWidth = lineWidth(seg.LocalDensity, a.cfg.BaseLineWidth, a.cfg.MaxLineWidth)
		seg.Opacity = opacity(seg.LocalDensity)
		seg.OffsetPx = offset(overlapping, a.cfg.OffsetStepPx)

		segments = append(segments, seg)
	}

	if skipped > 0 {
		logger.Info("Route aggregation finished", "segments", len(segments), "skipped", skipped)
	}
	return segments
}

// Overlaps reports whether both endpoints of a lie within tol meters of the
// corresponding endpoints of b. The test is symmetric.
func Overlaps(a, b models.RouteSegment, tol float64) bool {
	if len(a.Coordinates) == 0 || len(b.Coordinates) == 0 {
		return false
	}
	return within(a.Start(), b.Start(), tol) && within(a.End(), b.End(), tol)
}

func within(p, q orb.Point, tol float64) bool {
	return spatial.HaversineDistance(p.Lat(), p.Lon(), q.Lat(), q.Lon()) <= tol
}

// DrawOrder returns segment indices sorted by render order, lowest first.
// Segments with equal order keep their input order.
func DrawOrder(segments []models.RouteSegment) []int {
	idx := make([]int, len(segments))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(i, j int) bool {
		return segments[idx[i]].RenderOrder < segments[idx[j]].RenderOrder
	})
	return idx
}

// distinctColors returns the set members in a stable order
func distinctColors(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for c := range set {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}
