package render

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/jengzang/mobility-map-backend/internal/aggregator"
	"github.com/jengzang/mobility-map-backend/internal/models"
)

// LayerID names a map layer
type LayerID string

// Layers, in draw order
const (
	LayerBoundary LayerID = "boundary"
	LayerRoutes   LayerID = "routes"
	LayerPOIs     LayerID = "pois"
	LayerGates    LayerID = "gates"
)

// DrawOrder lists layers bottom to top. Gates are always drawn last.
var DrawOrder = []LayerID{LayerBoundary, LayerRoutes, LayerPOIs, LayerGates}

// Layer is the data for one map layer
type Layer struct {
	ID      LayerID                    `json:"id"`
	Visible bool                       `json:"visible"`
	Data    *geojson.FeatureCollection `json:"data"`
}

func buildBoundaryLayer(boundary orb.Geometry, visible bool) Layer {
	fc := geojson.NewFeatureCollection()
	if boundary != nil {
		f := geojson.NewFeature(boundary)
		f.Properties = geojson.Properties{"kind": models.KindBoundary}
		fc.Append(f)
	}
	return Layer{ID: LayerBoundary, Visible: visible && boundary != nil, Data: fc}
}

func buildRouteLayer(segments []models.RouteSegment, visible bool) Layer {
	fc := geojson.NewFeatureCollection()
	for _, i := range aggregator.DrawOrder(segments) {
		seg := segments[i]
		f := geojson.NewFeature(orb.LineString(seg.Coordinates))
		f.ID = seg.RouteID
		f.Properties = seg.Properties().GeoJSON()
		fc.Append(f)
	}
	return Layer{ID: LayerRoutes, Visible: visible, Data: fc}
}

func buildPOILayer(markers []Marker, icons *IconCache, visible bool) Layer {
	fc := geojson.NewFeatureCollection()
	for _, m := range markers {
		f := geojson.NewFeature(m.Point)
		f.ID = m.ID

		if m.IsCluster() {
			ids := make([]string, len(m.Members))
			for i, p := range m.Members {
				ids[i] = p.ID.String()
			}
			f.Properties = models.ClusterProperties{
				ID:         m.ID,
				PointCount: len(m.Members),
				MemberIDs:  ids,
			}.GeoJSON()
		} else {
			p := m.Members[0]
			color := poiNoCommentColor
			if p.HasComment {
				color = poiCommentColor
			}
			f.Properties = models.POIProperties{
				ID:         m.ID,
				Comment:    p.DisplayComment(),
				HasComment: p.HasComment,
				Icon:       icons.Get(ShapeCircle, color),
			}.GeoJSON()
		}
		fc.Append(f)
	}
	return Layer{ID: LayerPOIs, Visible: visible, Data: fc}
}

func buildGateLayer(icons *IconCache, visible bool) Layer {
	fc := geojson.NewFeatureCollection()
	for _, g := range models.Gates() {
		f := geojson.NewFeature(g.Point())
		f.ID = g.ID
		f.Properties = models.GateProperties{
			ID:    g.ID,
			Key:   g.Key,
			Name:  g.Name,
			Color: g.Color,
			Icon:  icons.Get(ShapePin, g.Color),
		}.GeoJSON()
		fc.Append(f)
	}
	return Layer{ID: LayerGates, Visible: visible, Data: fc}
}
