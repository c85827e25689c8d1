package models

import "github.com/paulmach/orb"

// RouteSegment is the renderable form of exactly one Route
type RouteSegment struct {
	RouteID     string      `json:"routeId"`
	Coordinates []orb.Point `json:"coordinates"` // smoothed [lng, lat]

	GateKey      GateKey `json:"gateKey"`
	GateColor    string  `json:"gateColor"`
	BlendedColor string  `json:"blendedColor"`

	LocalDensity int `json:"localDensity"` // 1 + overlapping segments
	RenderOrder  int `json:"renderOrder"`  // higher is drawn later

	// Style hints derived from LocalDensity
	LineWidth float64 `json:"lineWidth"`
	Opacity   float64 `json:"opacity"`
	OffsetPx  float64 `json:"offsetPx"`

	Distance        float64       `json:"distance"`
	TransportMode   TransportMode `json:"transportMode"`
	DestinationName string        `json:"destinationName"`
}

// Start returns the first vertex
func (s RouteSegment) Start() orb.Point {
	return s.Coordinates[0]
}

// End returns the last vertex
func (s RouteSegment) End() orb.Point {
	return s.Coordinates[len(s.Coordinates)-1]
}

// Properties returns the typed feature properties for this segment
func (s RouteSegment) Properties() RouteSegmentProperties {
	return RouteSegmentProperties{
		ID:              s.RouteID,
		TransportMode:   s.TransportMode,
		Distance:        s.Distance,
		DestinationName: s.DestinationName,
		GateKey:         s.GateKey,
		Color:           s.GateColor,
		BlendedColor:    s.BlendedColor,
		LocalDensity:    s.LocalDensity,
		RenderOrder:     s.RenderOrder,
		LineWidth:       s.LineWidth,
		Opacity:         s.Opacity,
		OffsetPx:        s.OffsetPx,
	}
}
