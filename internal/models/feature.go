package models

import "github.com/paulmach/orb/geojson"

// Feature kinds, carried in every feature's "kind" property
const (
	KindRoute    = "route"
	KindPOI      = "poi"
	KindCluster  = "cluster"
	KindGate     = "gate"
	KindBoundary = "boundary"
)

// RouteSegmentProperties are the properties of a route feature
type RouteSegmentProperties struct {
	ID              string
	TransportMode   TransportMode
	Distance        float64
	DestinationName string
	GateKey         GateKey
	Color           string
	BlendedColor    string
	LocalDensity    int
	RenderOrder     int
	LineWidth       float64
	Opacity         float64
	OffsetPx        float64
}

// GeoJSON converts to a GeoJSON property bag
func (p RouteSegmentProperties) GeoJSON() geojson.Properties {
	return geojson.Properties{
		"kind":            KindRoute,
		"id":              p.ID,
		"transportMode":   string(p.TransportMode),
		"distance":        p.Distance,
		"destinationName": p.DestinationName,
		"gateKey":         string(p.GateKey),
		"color":           p.Color,
		"blendedColor":    p.BlendedColor,
		"localDensity":    p.LocalDensity,
		"renderOrder":     p.RenderOrder,
		"lineWidth":       p.LineWidth,
		"opacity":         p.Opacity,
		"offset":          p.OffsetPx,
	}
}

// POIProperties are the properties of an individual POI feature
type POIProperties struct {
	ID         string
	Comment    string
	HasComment bool
	Icon       string
}

// GeoJSON converts to a GeoJSON property bag
func (p POIProperties) GeoJSON() geojson.Properties {
	return geojson.Properties{
		"kind":       KindPOI,
		"id":         p.ID,
		"comment":    p.Comment,
		"hasComment": p.HasComment,
		"icon":       p.Icon,
	}
}

// ClusterProperties are the properties of a clustered POI feature
type ClusterProperties struct {
	ID         string
	PointCount int
	MemberIDs  []string
}

// GeoJSON converts to a GeoJSON property bag
func (p ClusterProperties) GeoJSON() geojson.Properties {
	return geojson.Properties{
		"kind":       KindCluster,
		"id":         p.ID,
		"cluster":    true,
		"pointCount": p.PointCount,
		"members":    p.MemberIDs,
	}
}

// GateProperties are the properties of a gate marker feature
type GateProperties struct {
	ID    string
	Key   GateKey
	Name  string
	Color string
	Icon  string
}

// GeoJSON converts to a GeoJSON property bag
func (p GateProperties) GeoJSON() geojson.Properties {
	return geojson.Properties{
		"kind":  KindGate,
		"id":    p.ID,
		"key":   string(p.Key),
		"name":  p.Name,
		"color": p.Color,
		"icon":  p.Icon,
	}
}
