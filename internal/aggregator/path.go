package aggregator

import (
	"errors"
	"fmt"

	"github.com/paulmach/orb"
	"github.com/twpayne/go-polyline"

	"github.com/jengzang/mobility-map-backend/internal/models"
)

var errNoPath = errors.New("route has no path and no residence")

// resolvePath picks the route geometry: explicit routePath, then the encoded
// polyline, then a straight line from residence to destination.
func resolvePath(r models.Route) ([]orb.Point, error) {
	if len(r.RoutePath) > 0 {
		return r.RoutePath, nil
	}

	if r.RoutePolyline != "" {
		path, err := decodePolyline(r.RoutePolyline)
		if err == nil && len(path) > 0 {
			return path, nil
		}
		// fall through to the straight line
	}

	if !r.HasResidence() {
		return nil, errNoPath
	}
	return []orb.Point{r.Residence.Point(), r.Destination.Point()}, nil
}

// decodePolyline decodes a Google encoded polyline (lat,lng pairs) into
// [lng, lat] points
func decodePolyline(encoded string) ([]orb.Point, error) {
	coords, _, err := polyline.DecodeCoords([]byte(encoded))
	if err != nil {
		return nil, fmt.Errorf("failed to decode polyline: %w", err)
	}

	path := make([]orb.Point, 0, len(coords))
	for _, c := range coords {
		if len(c) < 2 {
			continue
		}
		path = append(path, orb.Point{c[1], c[0]})
	}
	return path, nil
}

// EncodePolyline encodes a [lng, lat] path as a Google polyline
func EncodePolyline(path []orb.Point) string {
	coords := make([][]float64, len(path))
	for i, p := range path {
		coords[i] = []float64{p.Lat(), p.Lon()}
	}
	return string(polyline.EncodeCoords(coords))
}
