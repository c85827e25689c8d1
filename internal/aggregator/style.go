package aggregator

import "math"

const (
	widthGrowthPerTrip   = 0.5
	baseOpacity          = 0.55
	opacityGrowthPerTrip = 0.1
	maxOpacity           = 0.95
)

// lineWidth grows with density and is capped at max
func lineWidth(density int, base, max float64) float64 {
	// Denser corridors get thicker strokes
	w := base * (1 + widthGrowthPerTrip*float64(density-1))
	return math.Min(w, max)
}

// opacity grows with density and is capped
func opacity(density int) float64 {
	return math.Min(baseOpacity+opacityGrowthPerTrip*float64(density-1), maxOpacity)
}

// offset spreads coinciding strokes apart: 0, +s, -s, +2s, -2s, ...
func offset(overlapIndex int, step float64) float64 {
	if overlapIndex <= 0 {
		return 0
	}
	k := float64((overlapIndex + 1) / 2)
	if overlapIndex%2 == 1 {
		return k * step
	}
	return -k * step
}
