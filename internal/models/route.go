package models

import (
	"encoding/json"
	"strings"

	"github.com/paulmach/orb"
)

// TransportMode is the respondent's main way of getting to campus
type TransportMode string

// TransportMode constants
const (
	ModeWalking TransportMode = "walking"
	ModeBicycle TransportMode = "bicycle"
	ModeEbike   TransportMode = "ebike"
	ModeCar     TransportMode = "car"
	ModeBus     TransportMode = "bus"
	ModeTrain   TransportMode = "train"
	ModeUnknown TransportMode = "unknown"
)

// ConcreteModes lists every mode except unknown, in display order
var ConcreteModes = []TransportMode{ModeWalking, ModeBicycle, ModeEbike, ModeCar, ModeBus, ModeTrain}

// ParseTransportMode maps a string to a known mode, or unknown
func ParseTransportMode(s string) TransportMode {
	m := TransportMode(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range ConcreteModes {
		if m == known {
			return m
		}
	}
	return ModeUnknown
}

// UnmarshalJSON implements json.Unmarshaler; unrecognised values become unknown
func (m *TransportMode) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		*m = ModeUnknown
		return nil
	}
	*m = ParseTransportMode(s)
	return nil
}

// LatLng is a WGS84 coordinate in degrees
type LatLng struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Comment string  `json:"comment,omitempty"`
}

// Point returns the coordinate as [lng, lat]
func (c LatLng) Point() orb.Point {
	return orb.Point{c.Lng, c.Lat}
}

// Destination is the campus gate a route ends at
type Destination struct {
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
	Name string  `json:"name"`
	ID   string  `json:"id"`
}

// Point returns the coordinate as [lng, lat]
func (d Destination) Point() orb.Point {
	return orb.Point{d.Lng, d.Lat}
}

// Route is one respondent's trip from residence to a campus gate
type Route struct {
	ID            FlexID        `json:"id"`
	TransportMode TransportMode `json:"transportMode"`
	Distance      float64       `json:"distance"` // kilometers
	Residence     *LatLng       `json:"residence,omitempty"`
	Destination   *Destination  `json:"destination,omitempty"`
	RoutePath     []orb.Point   `json:"routePath,omitempty"`     // [lng, lat]
	RoutePolyline string        `json:"routePolyline,omitempty"` // encoded, lat/lng order

	OriginalMode string   `json:"originalMode,omitempty"`
	POICount     int      `json:"poiCount,omitempty"`
	POIs         []LatLng `json:"pois,omitempty"`
}

// HasDestination reports whether the route carries a usable destination coordinate
func (r Route) HasDestination() bool {
	return r.Destination != nil && !(r.Destination.Lat == 0 && r.Destination.Lng == 0)
}

// HasResidence reports whether the route carries a usable residence coordinate
func (r Route) HasResidence() bool {
	return r.Residence != nil && !(r.Residence.Lat == 0 && r.Residence.Lng == 0)
}

// DestinationName returns the gate name or an empty string
func (r Route) DestinationName() string {
	if r.Destination == nil {
		return ""
	}
	return r.Destination.Name
}
