package spatial

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
)

func TestCentroidAndBoundingBox(t *testing.T) {
	pts := []Point{{Lat: 1, Lon: 2}, {Lat: 3, Lon: 6}}

	assert.Equal(t, Point{Lat: 2, Lon: 4}, Centroid(pts))

	minLat, minLon, maxLat, maxLon := BoundingBox(pts)
	assert.Equal(t, []float64{1, 2, 3, 6}, []float64{minLat, minLon, maxLat, maxLon})

	assert.Equal(t, Point{}, Centroid(nil))
}

func TestPathLength(t *testing.T) {
	path := []orb.Point{{34.7983, 31.2627}, {34.7983, 31.2627}, {34.801138, 31.261222}}
	assert.InDelta(t, HaversineDistance(31.2627, 34.7983, 31.261222, 34.801138), PathLength(path), 1e-9)
	assert.Equal(t, 0.0, PathLength(path[:1]))
}
