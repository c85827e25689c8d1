package models

// Statistics summarises a dataset for the dashboard header
type Statistics struct {
	TotalPOIs         int            `json:"totalPois"`
	TotalRoutes       int            `json:"totalRoutes"`
	POIsWithComments  int            `json:"poisWithComments"`
	CommentPercentage float64        `json:"commentPercentage"`
	AverageDistance   float64        `json:"averageDistance"` // km
	MedianDistance    float64        `json:"medianDistance,omitempty"`
	ShortestDistance  float64        `json:"shortestDistance,omitempty"`
	LongestDistance   float64        `json:"longestDistance,omitempty"`
	TransportModes    map[string]int `json:"transportModes"`
	GateUsage         map[string]int `json:"gateUsage"`
	Bounds            Bounds         `json:"bounds"`
}

// IsEmpty reports whether the statistics carry no counts at all
func (s Statistics) IsEmpty() bool {
	return s.TotalPOIs == 0 && s.TotalRoutes == 0 && len(s.TransportModes) == 0
}

// Bounds is the map extent of the POIs
type Bounds struct {
	North  *float64 `json:"north,omitempty"`
	South  *float64 `json:"south,omitempty"`
	East   *float64 `json:"east,omitempty"`
	West   *float64 `json:"west,omitempty"`
	Center LatLng   `json:"center"`
}
