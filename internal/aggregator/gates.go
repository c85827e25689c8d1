package aggregator

import (
	"strings"

	"github.com/jengzang/mobility-map-backend/internal/models"
)

// gateMatchers are checked in order against the destination id, then name
var gateMatchers = []struct {
	substr string
	key    models.GateKey
}{
	{"south", models.GateSouth},
	{"north", models.GateNorth},
	{"west", models.GateWest},
}

// ResolveGateKey maps a route destination onto one of the static gates by
// id/name substring. Destinations that match nothing are treated as the
// north gate.
func ResolveGateKey(dest *models.Destination) models.GateKey {
	if dest == nil {
		return models.GateNorth
	}
	for _, field := range []string{dest.ID, dest.Name} {
		lower := strings.ToLower(field)
		for _, m := range gateMatchers {
			if strings.Contains(lower, m.substr) {
				return m.key
			}
		}
	}
	return models.GateNorth
}

// GateColor returns the display color for a gate key
func GateColor(key models.GateKey) string {
	if g, ok := models.GateByKey(key); ok {
		return g.Color
	}
	return ""
}
