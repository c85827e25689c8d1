package render

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jengzang/mobility-map-backend/internal/aggregator"
	"github.com/jengzang/mobility-map-backend/internal/models"
)

func testConfig() Config {
	return Config{
		Aggregation: aggregator.DefaultConfig(),
		InitialViewport: models.Viewport{
			Lat: 31.2627, Lng: 34.7983, Zoom: 13, Width: 800, Height: 600,
		},
		ClusterZoomThreshold: 14,
		ClusterRadiusPx:      50,
		ResizeDebounce:       20 * time.Millisecond,
	}
}

func testDataset() models.Dataset {
	south, _ := models.GateByKey(models.GateSouth)
	north, _ := models.GateByKey(models.GateNorth)
	home := models.LatLng{Lat: 31.2627, Lng: 34.7983}

	var pois []models.POI
	for i := 0; i < 6; i++ {
		pois = append(pois, models.POI{
			ID:         models.FlexID(fmt.Sprintf("p%d", i)),
			Lat:        31.2627 + float64(i)*0.00005,
			Lng:        34.7983,
			Comment:    "shade",
			HasComment: i%2 == 0,
		})
	}
	pois = append(pois, models.POI{ID: "far", Lat: 31.30, Lng: 34.85})

	return models.Dataset{
		POIs: pois,
		Routes: []models.Route{
			{ID: "r1", TransportMode: models.ModeWalking, Residence: &home, Destination: south.Destination()},
			{ID: "r2", TransportMode: models.ModeBus, Residence: &home, Destination: south.Destination()},
			{ID: "r3", TransportMode: models.ModeCar, Residence: &home, Destination: north.Destination()},
		},
		Statistics: models.Statistics{Bounds: models.Bounds{Center: home}},
		Source:     models.SourceSynthetic,
	}
}

func readyRenderer(t *testing.T) *Renderer {
	t.Helper()
	r := NewRenderer(testConfig())
	t.Cleanup(r.Close)
	r.SetDataset(testDataset(), nil)
	return r
}

func TestRenderer_NotReadyIsNoop(t *testing.T) {
	r := NewRenderer(testConfig())
	defer r.Close()

	hide := false
	state := r.SetFilter(models.FilterPatch{ShowPOIs: &hide})

	assert.False(t, r.Ready())
	assert.False(t, state.ShowPOIs)
	assert.Nil(t, r.Layers())
	_, ok := r.Layer(LayerRoutes)
	assert.False(t, ok)
	assert.Empty(t, r.Frame().Segments)

	// recorded state applies on data-ready
	r.SetDataset(testDataset(), nil)
	l, ok := r.Layer(LayerPOIs)
	require.True(t, ok)
	assert.False(t, l.Visible)
}

func TestRenderer_LayerDrawOrder(t *testing.T) {
	r := readyRenderer(t)

	layers := r.Layers()
	require.Len(t, layers, 4)
	assert.Equal(t, LayerBoundary, layers[0].ID)
	assert.Equal(t, LayerGates, layers[len(layers)-1].ID)
	assert.False(t, layers[0].Visible) // no boundary loaded
	assert.Len(t, layers[3].Data.Features, 3)
}

func TestRenderer_RouteFeaturesInRenderOrder(t *testing.T) {
	r := readyRenderer(t)

	l, ok := r.Layer(LayerRoutes)
	require.True(t, ok)
	require.Len(t, l.Data.Features, 3)

	prev := 0
	for _, f := range l.Data.Features {
		order := f.Properties["renderOrder"].(int)
		assert.GreaterOrEqual(t, order, prev)
		prev = order
	}
	assert.Equal(t, "r2", l.Data.Features[2].ID)
}

func TestRenderer_SetFilterReaggregatesImmediately(t *testing.T) {
	r := readyRenderer(t)

	var got models.FilterState
	calls := 0
	unsub := r.OnFilterChange(func(f models.FilterState) {
		got = f
		calls++
	})

	modes := []models.TransportMode{models.ModeCar}
	r.SetFilter(models.FilterPatch{Modes: &modes})

	assert.Equal(t, 1, calls)
	assert.Equal(t, modes, got.Modes)
	require.Len(t, r.Segments(), 1)
	assert.Equal(t, "r3", r.Segments()[0].RouteID)

	unsub()
	hide := false
	r.SetFilter(models.FilterPatch{ShowRoutes: &hide})
	assert.Equal(t, 1, calls)
	assert.Empty(t, r.Segments())
}

func TestRenderer_GatesIgnoreRouteFilters(t *testing.T) {
	r := readyRenderer(t)

	gates := []models.GateKey{models.GateWest}
	modes := []models.TransportMode{models.ModeTrain}
	r.SetFilter(models.FilterPatch{Gates: &gates, Modes: &modes})

	l, _ := r.Layer(LayerGates)
	assert.True(t, l.Visible)
	assert.Len(t, r.Frame().Gates, 3)

	hide := false
	r.SetFilter(models.FilterPatch{ShowGates: &hide})
	l, _ = r.Layer(LayerGates)
	assert.False(t, l.Visible)
	assert.Empty(t, r.Frame().Gates)
}

func TestRenderer_ZoomSwitchesClustering(t *testing.T) {
	r := readyRenderer(t)

	var events []ZoomEvent
	r.OnZoom(func(e ZoomEvent) { events = append(events, e) })

	low := r.Frame().Markers
	assert.Less(t, len(low), 7)

	z := 16.0
	r.SetViewport(models.ViewportPatch{Zoom: &z})
	high := r.Frame().Markers
	assert.Len(t, high, 7)
	for _, m := range high {
		assert.False(t, m.IsCluster())
	}

	require.Len(t, events, 1)
	assert.Equal(t, ZoomEvent{From: 13, To: 16}, events[0])

	// panning without zoom fires nothing
	lat := 31.27
	r.SetViewport(models.ViewportPatch{Lat: &lat})
	assert.Len(t, events, 1)
}

func TestRenderer_ResizeDebounced(t *testing.T) {
	r := readyRenderer(t)

	r.Resize(100, 100)
	r.Resize(200, 200)
	r.Resize(1024, 768)

	assert.Equal(t, 800.0, r.Viewport().Width)
	assert.Eventually(t, func() bool {
		vp := r.Viewport()
		return vp.Width == 1024 && vp.Height == 768
	}, time.Second, 5*time.Millisecond)
}

func TestRenderer_BoundaryLayer(t *testing.T) {
	r := NewRenderer(testConfig())
	defer r.Close()

	poly := orb.Polygon{{{34.79, 31.26}, {34.81, 31.26}, {34.81, 31.27}, {34.79, 31.26}}}
	r.SetDataset(testDataset(), poly)

	l, ok := r.Layer(LayerBoundary)
	require.True(t, ok)
	assert.True(t, l.Visible)
	require.Len(t, l.Data.Features, 1)
	assert.Equal(t, models.KindBoundary, l.Data.Features[0].Properties["kind"])
}

func TestDebouncer_Stop(t *testing.T) {
	var n int32
	d := NewDebouncer(10 * time.Millisecond)
	d.Trigger(func() { atomic.AddInt32(&n, 1) })
	d.Stop()

	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, int32(0), atomic.LoadInt32(&n))
}
