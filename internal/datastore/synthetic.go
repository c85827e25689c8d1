package datastore

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/jengzang/mobility-map-backend/internal/models"
	"github.com/jengzang/mobility-map-backend/internal/stats"
)

// ReferenceCenter is the survey's map center (Beer Sheva, near campus)
var ReferenceCenter = models.LatLng{Lat: 31.2627, Lng: 34.7983}

const (
	poiSpreadDeg       = 0.01
	residenceSpreadDeg = 0.02
	minDistanceKm      = 0.5
	maxDistanceKm      = 5.0
)

var sampleComments = []string{
	"Crosswalk without traffic light",
	"Pleasant shaded path",
	"Bus stop is always crowded",
	"Broken sidewalk",
	"Bike parking is full in the morning",
	"Dark at night",
}

// SyntheticConfig controls the demo data generator
type SyntheticConfig struct {
	POIs   int
	Routes int
	Seed   int64
}

// GenerateSynthetic builds a plausible demo dataset. The same config always
// produces the same dataset.
func GenerateSynthetic(cfg SyntheticConfig) models.Dataset {
	rng := rand.New(rand.NewSource(cfg.Seed))
	gates := models.Gates()

	pois := make([]models.POI, 0, cfg.POIs)
	for i := 0; i < cfg.POIs; i++ {
		poi := models.POI{
			ID:           models.FlexID(fmt.Sprintf("synthetic_%d_0", i)),
			SubmissionID: models.FlexID(fmt.Sprintf("synthetic_%d", i)),
			Lat:          jitter(rng, ReferenceCenter.Lat, poiSpreadDeg),
			Lng:          jitter(rng, ReferenceCenter.Lng, poiSpreadDeg),
		}
		if rng.Intn(3) == 0 {
			poi.Comment = sampleComments[rng.Intn(len(sampleComments))]
			poi.HasComment = true
		} else {
			poi.Comment = models.NoCommentText
		}
		pois = append(pois, poi)
	}

	routes := make([]models.Route, 0, cfg.Routes)
	for i := 0; i < cfg.Routes; i++ {
		gate := gates[rng.Intn(len(gates))]
		mode := models.ConcreteModes[rng.Intn(len(models.ConcreteModes))]
		routes = append(routes, models.Route{
			ID:            models.FlexID(fmt.Sprintf("synthetic_route_%d", i)),
			TransportMode: mode,
			OriginalMode:  string(mode),
			Distance:      stats.Round(minDistanceKm+rng.Float64()*(maxDistanceKm-minDistanceKm), 2),
			Residence: &models.LatLng{
				Lat: jitter(rng, ReferenceCenter.Lat, residenceSpreadDeg),
				Lng: jitter(rng, ReferenceCenter.Lng, residenceSpreadDeg),
			},
			Destination: gate.Destination(),
		})
	}

	return models.Dataset{
		Metadata: models.DatasetMetadata{
			ExportedAt: time.Unix(0, 0).UTC().Format(time.RFC3339),
			Source:     "Synthetic sample data",
			Version:    "2.0",
		},
		Statistics: ComputeStatistics(pois, routes),
		POIs:       pois,
		Routes:     routes,
		Source:     models.SourceSynthetic,
	}
}

// jitter returns a value uniform in [center-spread, center+spread)
func jitter(rng *rand.Rand, center, spread float64) float64 {
	return center + (rng.Float64()*2-1)*spread
}
