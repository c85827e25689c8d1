package render

import (
	"sync"
	"time"

	"github.com/paulmach/orb"

	"github.com/jengzang/mobility-map-backend/internal/aggregator"
	"github.com/jengzang/mobility-map-backend/internal/logger"
	"github.com/jengzang/mobility-map-backend/internal/models"
	"github.com/jengzang/mobility-map-backend/internal/spatial"
)

// Config holds renderer settings
type Config struct {
	Aggregation          aggregator.Config
	InitialViewport      models.Viewport
	ClusterZoomThreshold float64
	ClusterRadiusPx      float64
	ResizeDebounce       time.Duration
}

// Frame is a consistent view of what is currently drawn
type Frame struct {
	Ready    bool
	Screen   spatial.Screen
	Filter   models.FilterState
	Segments []models.RouteSegment // empty when routes are hidden
	Markers  []Marker              // empty when POIs are hidden
	Gates    []models.Gate         // empty when gates are hidden
}

// Renderer owns the viewport, filter state and layer data of one map.
// All mutations are serialized on mu.
type Renderer struct {
	cfg    Config
	agg    *aggregator.Aggregator
	icons  *IconCache
	resize *Debouncer

	mu       sync.Mutex
	viewport models.Viewport
	filter   models.FilterState
	dataset  models.Dataset
	boundary orb.Geometry
	ready    bool

	segments []models.RouteSegment
	markers  []Marker
	layers   map[LayerID]Layer

	nextSubID  int
	zoomSubs   []zoomSub
	filterSubs []filterSub
}

// NewRenderer creates a renderer with default filter state. It is not ready
// until SetDataset is called.
func NewRenderer(cfg Config) *Renderer {
	return &Renderer{
		cfg:      cfg,
		agg:      aggregator.New(cfg.Aggregation),
		icons:    NewIconCache(),
		resize:   NewDebouncer(cfg.ResizeDebounce),
		viewport: cfg.InitialViewport,
		filter:   models.DefaultFilterState(),
		layers:   make(map[LayerID]Layer),
	}
}

// SetDataset installs the dataset and optional boundary and builds every
// layer. This is the data-ready event: updates recorded before it take effect
// here.
func (r *Renderer) SetDataset(ds models.Dataset, boundary orb.Geometry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.dataset = ds
	r.boundary = boundary
	r.ready = true
	r.rebuildAll()

	logger.Info("Map data ready",
		"source", ds.Source, "segments", len(r.segments), "markers", len(r.markers))
}

// Ready reports whether data has arrived
func (r *Renderer) Ready() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ready
}

// Filter returns a copy of the current filter state
func (r *Renderer) Filter() models.FilterState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.filter.Clone()
}

// SetFilter merges patch into the filter state, re-aggregates and replaces
// layer data immediately. Before data is ready only the state is recorded.
func (r *Renderer) SetFilter(patch models.FilterPatch) models.FilterState {
	r.mu.Lock()
	r.filter = r.filter.Apply(patch)
	if r.ready {
		r.rebuildAll()
	}
	state := r.filter.Clone()
	handlers := r.filterHandlers()
	r.mu.Unlock()

	for _, fn := range handlers {
		fn(state.Clone())
	}
	return state
}

// Viewport returns the current viewport
func (r *Renderer) Viewport() models.Viewport {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.viewport
}

// SetViewport merges patch into the viewport. A zoom change rebuilds the
// POI layer and fires OnZoom.
func (r *Renderer) SetViewport(patch models.ViewportPatch) models.Viewport {
	r.mu.Lock()
	prev := r.viewport
	r.viewport = r.viewport.Apply(patch)
	vp := r.viewport

	zoomed := prev.Zoom != vp.Zoom
	var handlers []func(ZoomEvent)
	if zoomed {
		if r.ready {
			r.rebuildPOIs()
		}
		handlers = r.zoomHandlers()
	}
	r.mu.Unlock()

	ev := ZoomEvent{From: prev.Zoom, To: vp.Zoom}
	for _, fn := range handlers {
		fn(ev)
	}
	return vp
}

// Resize records a new map size after the debounce delay. Only the last call
// in a burst is applied.
func (r *Renderer) Resize(width, height float64) {
	r.resize.Trigger(func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.viewport.Width = width
		r.viewport.Height = height
		logger.Debug("Map resized", "width", width, "height", height)
	})
}

// Close cancels any pending resize
func (r *Renderer) Close() {
	r.resize.Stop()
}

// Layers returns every layer in draw order, or nil before data is ready
func (r *Renderer) Layers() []Layer {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.ready {
		return nil
	}
	out := make([]Layer, 0, len(DrawOrder))
	for _, id := range DrawOrder {
		out = append(out, r.layers[id])
	}
	return out
}

// Layer returns a single layer
func (r *Renderer) Layer(id LayerID) (Layer, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.ready {
		return Layer{}, false
	}
	l, ok := r.layers[id]
	return l, ok
}

// Segments returns a copy of the current route segments
func (r *Renderer) Segments() []models.RouteSegment {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]models.RouteSegment, len(r.segments))
	copy(out, r.segments)
	return out
}

// Dataset returns the current dataset
func (r *Renderer) Dataset() (models.Dataset, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.dataset, r.ready
}

// Icons returns every icon drawn so far, keyed by id
func (r *Renderer) Icons() map[string]string {
	return r.icons.All()
}

// Frame returns the drawn state for hit testing
func (r *Renderer) Frame() Frame {
	r.mu.Lock()
	defer r.mu.Unlock()

	f := Frame{
		Ready:  r.ready,
		Screen: screenFor(r.viewport),
		Filter: r.filter.Clone(),
	}
	if !r.ready {
		return f
	}
	if r.filter.ShowRoutes {
		f.Segments = append([]models.RouteSegment(nil), r.segments...)
	}
	if r.filter.ShowPOIs {
		f.Markers = append([]Marker(nil), r.markers...)
	}
	if r.filter.ShowGates {
		f.Gates = models.Gates()
	}
	return f
}

func screenFor(vp models.Viewport) spatial.Screen {
	return spatial.Screen{
		Center:  orb.Point{vp.Lng, vp.Lat},
		Zoom:    vp.Zoom,
		Bearing: vp.Bearing,
		Width:   vp.Width,
		Height:  vp.Height,
	}
}

// rebuildAll re-aggregates routes and rebuilds every layer; callers hold r.mu
func (r *Renderer) rebuildAll() {
	r.segments = r.agg.Aggregate(r.dataset.Routes, r.filter)
	r.layers[LayerBoundary] = buildBoundaryLayer(r.boundary, r.filter.ShowBoundary)
	r.layers[LayerRoutes] = buildRouteLayer(r.segments, r.filter.ShowRoutes)
	r.rebuildPOIs()
	r.layers[LayerGates] = buildGateLayer(r.icons, r.filter.ShowGates)
}

// rebuildPOIs rebuilds the zoom-dependent POI layer; callers hold r.mu
func (r *Renderer) rebuildPOIs() {
	// Cluster cells are anchored on the data, not the camera, so panning
	// does not regroup POIs.
	center := r.dataset.Statistics.Bounds.Center.Point()
	if center.Lat() == 0 && center.Lon() == 0 {
		center = orb.Point{r.viewport.Lng, r.viewport.Lat}
	}
	r.markers = ClusterPOIs(r.dataset.POIs, center, r.viewport.Zoom,
		r.cfg.ClusterZoomThreshold, r.cfg.ClusterRadiusPx)
	r.layers[LayerPOIs] = buildPOILayer(r.markers, r.icons, r.filter.ShowPOIs)
}
