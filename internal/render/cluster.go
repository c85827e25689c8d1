package render

import (
	"math"
	"sort"

	"github.com/golang/geo/s2"
	"github.com/paulmach/orb"

	"github.com/jengzang/mobility-map-backend/internal/models"
	"github.com/jengzang/mobility-map-backend/internal/spatial"
)

const (
	minClusterLevel = 4
	maxClusterLevel = 24
)

// Marker is one drawn POI symbol: a single POI or a cluster of them
type Marker struct {
	ID      string
	Point   orb.Point // [lng, lat]
	Members []models.POI
}

// IsCluster reports whether the marker groups more than one POI
func (m Marker) IsCluster() bool {
	return len(m.Members) > 1
}

type clusterUnit struct {
	members []models.POI
}

// poiClusterer groups POIs by the S2 cell that contains them at a fixed level
type poiClusterer struct {
	level int
	units map[s2.CellID]*clusterUnit
}

// clusterLevel picks the finest S2 level whose cells are at least radius
// meters across at the reference point
func clusterLevel(center orb.Point, radiusMeters float64) int {
	leaf := s2.CellIDFromLatLng(s2.LatLngFromDegrees(center.Lat(), center.Lon()))

	for lv := maxClusterLevel; lv >= minClusterLevel; lv-- {
		cell := s2.CellFromCellID(leaf.Parent(lv))
		edge := math.Sqrt(cell.ApproxArea()) * spatial.EarthRadiusMeters
		if edge >= radiusMeters {
			return lv
		}
	}
	return minClusterLevel
}

func newPOIClusterer(center orb.Point, radiusMeters float64) *poiClusterer {
	return &poiClusterer{
		level: clusterLevel(center, radiusMeters),
		units: make(map[s2.CellID]*clusterUnit),
	}
}

func (c *poiClusterer) add(p models.POI) {
	leaf := s2.CellIDFromLatLng(s2.LatLngFromDegrees(p.Lat, p.Lng))
	parent := leaf.Parent(c.level)
	if _, ok := c.units[parent]; !ok {
		c.units[parent] = &clusterUnit{}
	}
	c.units[parent].members = append(c.units[parent].members, p)
}

// markers returns one marker per occupied cell, ordered by cell id. A cell
// holding a single POI yields that POI at its own coordinate.
func (c *poiClusterer) markers() []Marker {
	cells := make([]s2.CellID, 0, len(c.units))
	for id := range c.units {
		cells = append(cells, id)
	}
	sort.Slice(cells, func(i, j int) bool { return cells[i] < cells[j] })

	out := make([]Marker, 0, len(cells))
	for _, id := range cells {
		unit := c.units[id]
		if len(unit.members) == 1 {
			out = append(out, singleMarker(unit.members[0]))
			continue
		}

		points := make([]spatial.Point, len(unit.members))
		for i, m := range unit.members {
			points[i] = spatial.Point{Lat: m.Lat, Lon: m.Lng}
		}
		centroid := spatial.Centroid(points)

		out = append(out, Marker{
			ID:      "cluster_" + id.ToToken(),
			Point:   orb.Point{centroid.Lon, centroid.Lat},
			Members: unit.members,
		})
	}
	return out
}

func singleMarker(p models.POI) Marker {
	return Marker{
		ID:      p.ID.String(),
		Point:   orb.Point{p.Lng, p.Lat},
		Members: []models.POI{p},
	}
}

// ClusterPOIs groups POIs for display at the given zoom. Below threshold,
// POIs are grouped by S2 cells sized to radiusPx at that zoom; at or above
// it every POI is its own marker, in input order.
func ClusterPOIs(pois []models.POI, center orb.Point, zoom, threshold, radiusPx float64) []Marker {
	if zoom >= threshold {
		out := make([]Marker, 0, len(pois))
		for _, p := range pois {
			out = append(out, singleMarker(p))
		}
		return out
	}

	radiusMeters := radiusPx * spatial.MetersPerPixel(center.Lat(), zoom)
	c := newPOIClusterer(center, radiusMeters)
	for _, p := range pois {
		c.add(p)
	}
	return c.markers()
}
