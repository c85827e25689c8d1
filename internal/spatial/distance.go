package spatial

import (
	"math"

	"github.com/golang/geo/s2"
)

// HaversineDistance calculates the great-circle distance between two points in meters
// using the Haversine formula
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	if lat1 == lat2 && lon1 == lon2 {
		return 0
	}
	p1 := s2.LatLngFromDegrees(lat1, lon1)
	p2 := s2.LatLngFromDegrees(lat2, lon2)
	return p1.Distance(p2).Radians() * EarthRadiusMeters
}

// MetersPerPixel returns the ground resolution at the given latitude and web
// map zoom level, for 512px tiles.
func MetersPerPixel(lat, zoom float64) float64 {
	return EarthCircumferenceMeters * math.Cos(lat*math.Pi/180) / (TileSize * math.Pow(2, zoom))
}

// Constants
const (
	EarthRadiusMeters        = 6371000.0 // Earth's mean radius in meters
	EarthRadiusKm            = 6371.0    // Earth's mean radius in kilometers
	EarthCircumferenceMeters = 40075016.686
	TileSize                 = 512.0
)
