package models

import "github.com/paulmach/orb"

// PopupKind tells the client which template to render
type PopupKind string

// Popup kinds
const (
	PopupRoutes  PopupKind = "routes"
	PopupPOI     PopupKind = "poi"
	PopupCluster PopupKind = "cluster"
	PopupGate    PopupKind = "gate"
)

// TripGroup is the number of trips sharing a transport mode and destination
type TripGroup struct {
	TransportMode TransportMode `json:"transportMode"`
	Destination   string        `json:"destination"`
	Count         int           `json:"count"`
}

// Popup is the single popup currently open on the map
type Popup struct {
	Kind     PopupKind   `json:"kind"`
	TargetID string      `json:"targetId"`
	Hover    bool        `json:"hover"` // closes when the cursor leaves the target
	LngLat   orb.Point   `json:"lngLat"`
	Title    string      `json:"title"`
	Body     string      `json:"body,omitempty"`
	Groups   []TripGroup `json:"groups,omitempty"`
	Total    int         `json:"total,omitempty"`
}
