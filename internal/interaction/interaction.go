package interaction

import (
	"errors"
	"fmt"
	"sync"

	"github.com/paulmach/orb"

	"github.com/jengzang/mobility-map-backend/internal/logger"
	"github.com/jengzang/mobility-map-backend/internal/models"
	"github.com/jengzang/mobility-map-backend/internal/render"
)

var (
	// ErrUnknownLayer is returned when toggling a layer that does not exist
	ErrUnknownLayer = errors.New("unknown layer")
	// ErrUnknownMode is returned for a transport mode outside the enumeration
	ErrUnknownMode = errors.New("unknown transport mode")
	// ErrUnknownGate is returned for a gate key that is not one of the static gates
	ErrUnknownGate = errors.New("unknown gate")
)

// Layer handles user input against a renderer and keeps the single open popup
type Layer struct {
	renderer *render.Renderer
	bufferPx float64

	mu    sync.Mutex
	popup *models.Popup
}

// New creates an interaction layer. bufferPx is the half-size of the hit box
// around the cursor.
func New(r *render.Renderer, bufferPx float64) *Layer {
	return &Layer{renderer: r, bufferPx: bufferPx}
}

// RoutesAt returns every trip drawn under the cursor, not just the topmost
func (l *Layer) RoutesAt(x, y float64) RouteHit {
	f := l.renderer.Frame()
	if !f.Ready {
		return RouteHit{}
	}
	return routesAt(f, boxAround(x, y, l.bufferPx))
}

// Hover shows the trips under the cursor. A hover popup replaces an earlier
// hover popup but never a clicked one. Moving off every route closes the
// hover popup. Returns the popup now open, if any, and the trips hit, both
// taken from the same frame.
func (l *Layer) Hover(x, y float64) (*models.Popup, RouteHit) {
	f := l.renderer.Frame()
	hit := RouteHit{}
	if f.Ready {
		hit = routesAt(f, boxAround(x, y, l.bufferPx))
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.popup != nil && !l.popup.Hover {
		return copyPopup(l.popup), hit
	}
	if hit.Total == 0 {
		l.popup = nil
		return nil, hit
	}

	p := routePopup(hit, f.Screen.Unproject(x, y))
	p.Hover = true
	l.popup = &p
	return copyPopup(l.popup), hit
}

// Leave closes a hover popup when the cursor leaves its target
func (l *Layer) Leave() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.popup != nil && l.popup.Hover {
		l.popup = nil
	}
}

// Click opens a popup for the topmost target under the cursor: gates, then
// POIs and clusters, then routes. Clicking empty map closes the open popup.
func (l *Layer) Click(x, y float64) *models.Popup {
	f := l.renderer.Frame()
	var p *models.Popup
	if f.Ready {
		p = clickTarget(f, x, y, boxAround(x, y, l.bufferPx))
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.popup = p
	if p != nil {
		logger.Debug("Popup opened", "kind", string(p.Kind), "target", p.TargetID)
	}
	return copyPopup(l.popup)
}

// Popup returns the open popup, or nil
func (l *Layer) Popup() *models.Popup {
	l.mu.Lock()
	defer l.mu.Unlock()
	return copyPopup(l.popup)
}

// ClosePopup closes whatever popup is open
func (l *Layer) ClosePopup() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.popup = nil
}

func clickTarget(f render.Frame, x, y float64, b pixelBox) *models.Popup {
	gatePoints := make([]orb.Point, len(f.Gates))
	for i, g := range f.Gates {
		gatePoints[i] = g.Point()
	}
	if i := nearestPoint(f.Screen, gatePoints, x, y, b); i >= 0 {
		p := gatePopup(f.Gates[i], f.Segments)
		return &p
	}

	markerPoints := make([]orb.Point, len(f.Markers))
	for i, m := range f.Markers {
		markerPoints[i] = m.Point
	}
	if i := nearestPoint(f.Screen, markerPoints, x, y, b); i >= 0 {
		p := markerPopup(f.Markers[i])
		return &p
	}

	if hit := routesAt(f, b); hit.Total > 0 {
		p := routePopup(hit, f.Screen.Unproject(x, y))
		return &p
	}
	return nil
}

func routePopup(hit RouteHit, at orb.Point) models.Popup {
	title := "1 trip"
	if hit.Total != 1 {
		title = fmt.Sprintf("%d trips", hit.Total)
	}
	return models.Popup{
		Kind:     models.PopupRoutes,
		TargetID: hit.RouteIDs[0],
		LngLat:   at,
		Title:    title,
		Groups:   hit.Groups,
		Total:    hit.Total,
	}
}

func markerPopup(m render.Marker) models.Popup {
	if m.IsCluster() {
		return models.Popup{
			Kind:     models.PopupCluster,
			TargetID: m.ID,
			LngLat:   m.Point,
			Title:    fmt.Sprintf("%d points of interest", len(m.Members)),
			Body:     "Zoom in to see individual points",
			Total:    len(m.Members),
		}
	}
	poi := m.Members[0]
	return models.Popup{
		Kind:     models.PopupPOI,
		TargetID: m.ID,
		LngLat:   m.Point,
		Title:    "Point of interest",
		Body:     poi.DisplayComment(),
	}
}

func gatePopup(g models.Gate, segments []models.RouteSegment) models.Popup {
	trips := 0
	for _, s := range segments {
		if s.GateKey == g.Key {
			trips++
		}
	}
	return models.Popup{
		Kind:     models.PopupGate,
		TargetID: g.ID,
		LngLat:   g.Point(),
		Title:    g.Name,
		Body:     fmt.Sprintf("%d trips shown end here", trips),
		Total:    trips,
	}
}

func copyPopup(p *models.Popup) *models.Popup {
	if p == nil {
		return nil
	}
	out := *p
	out.Groups = append([]models.TripGroup(nil), p.Groups...)
	return &out
}
