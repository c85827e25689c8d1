package models

import "github.com/paulmach/orb"

// GateKey identifies one of the campus gates independent of naming in the data
type GateKey string

// Gate keys
const (
	GateSouth GateKey = "south"
	GateNorth GateKey = "north"
	GateWest  GateKey = "west"
)

// Gate is a fixed campus entry point
type Gate struct {
	Key   GateKey `json:"key"`
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Lat   float64 `json:"lat"`
	Lng   float64 `json:"lng"`
	Color string  `json:"color"`
}

// Point returns the gate coordinate as [lng, lat]
func (g Gate) Point() orb.Point {
	return orb.Point{g.Lng, g.Lat}
}

var staticGates = []Gate{
	{Key: GateSouth, ID: "uni_south_3", Name: "South Gate", Lat: 31.261222, Lng: 34.801138, Color: "#e74c3c"},
	{Key: GateNorth, ID: "uni_north_3", Name: "North Gate", Lat: 31.263911, Lng: 34.799290, Color: "#3498db"},
	{Key: GateWest, ID: "uni_west", Name: "West Gate", Lat: 31.262500, Lng: 34.805528, Color: "#2ecc71"},
}

// Gates returns a copy of the static gate list
func Gates() []Gate {
	out := make([]Gate, len(staticGates))
	copy(out, staticGates)
	return out
}

// GateByKey looks up a static gate
func GateByKey(key GateKey) (Gate, bool) {
	for _, g := range staticGates {
		if g.Key == key {
			return g, true
		}
	}
	return Gate{}, false
}

// Destination converts the gate into a route destination
func (g Gate) Destination() *Destination {
	return &Destination{Lat: g.Lat, Lng: g.Lng, Name: g.Name, ID: g.ID}
}
