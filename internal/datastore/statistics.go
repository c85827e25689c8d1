package datastore

import (
	"github.com/jengzang/mobility-map-backend/internal/models"
	"github.com/jengzang/mobility-map-backend/internal/spatial"
	"github.com/jengzang/mobility-map-backend/internal/stats"
)

// ComputeStatistics derives the summary block from POIs and routes
func ComputeStatistics(pois []models.POI, routes []models.Route) models.Statistics {
	withComments := 0
	points := make([]spatial.Point, 0, len(pois))
	for _, p := range pois {
		if p.HasComment {
			withComments++
		}
		points = append(points, spatial.Point{Lat: p.Lat, Lon: p.Lng})
	}

	distances := make([]float64, 0, len(routes))
	withDest := make([]models.Route, 0, len(routes))
	for _, r := range routes {
		distances = append(distances, r.Distance)
		if r.Destination != nil {
			withDest = append(withDest, r)
		}
	}

	s := models.Statistics{
		TotalPOIs:         len(pois),
		TotalRoutes:       len(routes),
		POIsWithComments:  withComments,
		CommentPercentage: stats.Round(stats.Percentage(withComments, len(pois)), 1),
		AverageDistance:   stats.Round(stats.Mean(distances), 1),
		MedianDistance:    stats.Round(stats.Median(distances), 1),
		ShortestDistance:  stats.Round(stats.Min(distances), 1),
		LongestDistance:   stats.Round(stats.Max(distances), 1),
		TransportModes: stats.CountBy(routes, func(r models.Route) string {
			return string(r.TransportMode)
		}),
		GateUsage: stats.CountBy(withDest, func(r models.Route) string {
			return r.Destination.Name
		}),
	}

	if len(points) == 0 {
		s.Bounds = models.Bounds{Center: ReferenceCenter}
		return s
	}

	minLat, minLon, maxLat, maxLon := spatial.BoundingBox(points)
	center := spatial.Centroid(points)
	s.Bounds = models.Bounds{
		North:  &maxLat,
		South:  &minLat,
		East:   &maxLon,
		West:   &minLon,
		Center: models.LatLng{Lat: center.Lat, Lng: center.Lon},
	}
	return s
}
