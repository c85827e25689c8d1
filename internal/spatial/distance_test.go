package spatial

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversineDistance_SamePointIsZero(t *testing.T) {
	for _, p := range []Point{
		{Lat: 31.2627, Lon: 34.7983},
		{Lat: 0, Lon: 0},
		{Lat: -89.9, Lon: 179.9},
	} {
		assert.Equal(t, 0.0, HaversineDistance(p.Lat, p.Lon, p.Lat, p.Lon))
	}
}

func TestHaversineDistance_Symmetric(t *testing.T) {
	residence := Point{Lat: 31.2627, Lon: 34.7983}
	southGate := Point{Lat: 31.261222, Lon: 34.801138}

	ab := HaversineDistance(residence.Lat, residence.Lon, southGate.Lat, southGate.Lon)
	ba := HaversineDistance(southGate.Lat, southGate.Lon, residence.Lat, residence.Lon)

	assert.InDelta(t, ab, ba, 1e-9)
	// ~320m between the survey reference center and the south gate
	assert.InDelta(t, 320, ab, 20)
}

func TestHaversineDistance_KnownRoute(t *testing.T) {
	// Angels Camp to Murphys, ~11km
	d := HaversineDistance(38.0675, -120.5436, 38.1391, -120.4561)
	assert.InDelta(t, 11046, d, 100)
}

func TestMetersPerPixel_ShrinksWithZoom(t *testing.T) {
	z12 := MetersPerPixel(31.26, 12)
	z13 := MetersPerPixel(31.26, 13)
	assert.InDelta(t, z12/2, z13, 1e-9)
}
