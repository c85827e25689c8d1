package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/jengzang/mobility-map-backend/internal/datastore"
	"github.com/jengzang/mobility-map-backend/internal/export"
	"github.com/jengzang/mobility-map-backend/internal/interaction"
	"github.com/jengzang/mobility-map-backend/internal/models"
	"github.com/jengzang/mobility-map-backend/internal/render"
)

var (
	// ErrNotReady is returned while the dataset has not been loaded yet
	ErrNotReady = errors.New("map data not loaded yet")
	// ErrLayerNotFound is returned for an unknown layer id
	ErrLayerNotFound = errors.New("layer not found")
	// ErrInvalidSize is returned for a non-positive resize request
	ErrInvalidSize = errors.New("width and height must be positive")
)

// LoadSummary describes the dataset installed by Load
type LoadSummary struct {
	Source      string `json:"source"`
	POIs        int    `json:"pois"`
	Routes      int    `json:"routes"`
	Segments    int    `json:"segments"`
	HasBoundary bool   `json:"hasBoundary"`
}

// LayersView is the payload of the layers endpoint
type LayersView struct {
	Layers []render.Layer     `json:"layers"`
	Icons  map[string]string `json:"icons"`
}

// StatisticsView is the payload of the statistics endpoint
type StatisticsView struct {
	Source     string                 `json:"source"`
	Metadata   models.DatasetMetadata `json:"metadata"`
	Statistics models.Statistics      `json:"statistics"`
	Segments   int                    `json:"segments"`
}

// MapService wires the data store, renderer and interaction layer together
type MapService struct {
	store       *datastore.Store
	renderer    *render.Renderer
	interaction *interaction.Layer
}

// NewMapService creates a new map service
func NewMapService(store *datastore.Store, renderer *render.Renderer, layer *interaction.Layer) *MapService {
	return &MapService{
		store:       store,
		renderer:    renderer,
		interaction: layer,
	}
}

// Load fetches the dataset and boundary and hands them to the renderer. It
// always succeeds; fetch failures fall back to synthetic data.
func (s *MapService) Load(ctx context.Context) LoadSummary {
	ds := s.store.Load(ctx)
	boundary := s.store.LoadBoundary(ctx)
	s.renderer.SetDataset(ds, boundary)

	return LoadSummary{
		Source:      ds.Source,
		POIs:        len(ds.POIs),
		Routes:      len(ds.Routes),
		Segments:    len(s.renderer.Segments()),
		HasBoundary: boundary != nil,
	}
}

// Ready reports whether data has been loaded
func (s *MapService) Ready() bool {
	return s.renderer.Ready()
}

// Layers returns every layer in draw order
func (s *MapService) Layers() (*LayersView, error) {
	layers := s.renderer.Layers()
	if layers == nil {
		return nil, ErrNotReady
	}
	return &LayersView{Layers: layers, Icons: s.renderer.Icons()}, nil
}

// Layer returns one layer by id
func (s *MapService) Layer(id string) (*render.Layer, error) {
	if !s.renderer.Ready() {
		return nil, ErrNotReady
	}
	l, ok := s.renderer.Layer(render.LayerID(id))
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrLayerNotFound, id)
	}
	return &l, nil
}

// Segments returns the current route segments
func (s *MapService) Segments() ([]models.RouteSegment, error) {
	if !s.renderer.Ready() {
		return nil, ErrNotReady
	}
	return s.renderer.Segments(), nil
}

// Filter returns the current filter state
func (s *MapService) Filter() models.FilterState {
	return s.renderer.Filter()
}

// UpdateFilter applies a partial filter update
func (s *MapService) UpdateFilter(patch models.FilterPatch) (models.FilterState, error) {
	return s.interaction.Apply(patch)
}

// Viewport returns the current viewport
func (s *MapService) Viewport() models.Viewport {
	return s.renderer.Viewport()
}

// UpdateViewport applies a partial viewport update
func (s *MapService) UpdateViewport(patch models.ViewportPatch) models.Viewport {
	return s.renderer.SetViewport(patch)
}

// Resize schedules a debounced map resize
func (s *MapService) Resize(width, height float64) error {
	if width <= 0 || height <= 0 {
		return ErrInvalidSize
	}
	s.renderer.Resize(width, height)
	return nil
}

// Hover updates the hover popup for a cursor position
func (s *MapService) Hover(x, y float64) (*models.Popup, interaction.RouteHit) {
	return s.interaction.Hover(x, y)
}

// Leave closes the hover popup
func (s *MapService) Leave() {
	s.interaction.Leave()
}

// Click opens the popup for a click position
func (s *MapService) Click(x, y float64) *models.Popup {
	return s.interaction.Click(x, y)
}

// Popup returns the open popup
func (s *MapService) Popup() *models.Popup {
	return s.interaction.Popup()
}

// Statistics returns the dataset summary
func (s *MapService) Statistics() (*StatisticsView, error) {
	ds, ok := s.renderer.Dataset()
	if !ok {
		return nil, ErrNotReady
	}
	return &StatisticsView{
		Source:     ds.Source,
		Metadata:   ds.Metadata,
		Statistics: ds.Statistics,
		Segments:   len(s.renderer.Segments()),
	}, nil
}

// ExportKML writes the currently drawn route segments as KML
func (s *MapService) ExportKML(w io.Writer) error {
	if !s.renderer.Ready() {
		return ErrNotReady
	}
	return export.WriteKML(w, "Student mobility routes", s.renderer.Segments())
}
