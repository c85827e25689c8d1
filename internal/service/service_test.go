package service

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jengzang/mobility-map-backend/internal/aggregator"
	"github.com/jengzang/mobility-map-backend/internal/datastore"
	"github.com/jengzang/mobility-map-backend/internal/interaction"
	"github.com/jengzang/mobility-map-backend/internal/models"
	"github.com/jengzang/mobility-map-backend/internal/render"
)

type fakeStore struct {
	inserted []models.Feedback
	err      error
}

func (f *fakeStore) Insert(_ context.Context, fb models.Feedback) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.inserted = append(f.inserted, fb)
	return int64(len(f.inserted)), nil
}

func (f *fakeStore) List(_ context.Context, limit, offset int) ([]models.Feedback, error) {
	return f.inserted, f.err
}

func (f *fakeStore) Count(context.Context) (int64, error) {
	return int64(len(f.inserted)), f.err
}

func TestFeedbackSubmit(t *testing.T) {
	store := &fakeStore{}
	svc := NewFeedbackService(store)
	svc.now = func() time.Time { return time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC) }

	fb, err := svc.Submit(context.Background(), models.FeedbackRequest{Name: " Dana ", Message: " More gates please "})

	require.NoError(t, err)
	assert.Equal(t, int64(1), fb.ID)
	assert.Equal(t, "Dana", fb.Name)
	assert.Equal(t, "More gates please", fb.Message)
	assert.Len(t, store.inserted, 1)
}

func TestFeedbackSubmit_EmptyMessage(t *testing.T) {
	_, err := NewFeedbackService(&fakeStore{}).Submit(context.Background(), models.FeedbackRequest{Message: "   "})
	assert.ErrorIs(t, err, ErrInvalidFeedback)
}

func TestFeedbackSubmit_StoreFailureNotRetried(t *testing.T) {
	store := &fakeStore{err: errors.New("database is locked")}

	_, err := NewFeedbackService(store).Submit(context.Background(), models.FeedbackRequest{Message: "hi"})

	assert.ErrorContains(t, err, "database is locked")
	assert.Empty(t, store.inserted)
}

func TestFeedbackList_ClampsPaging(t *testing.T) {
	page, err := NewFeedbackService(&fakeStore{}).List(context.Background(), 10000, -5)

	require.NoError(t, err)
	assert.Equal(t, maxFeedbackPageSize, page.Limit)
	assert.Equal(t, 0, page.Offset)
}

func newMapService(t *testing.T) *MapService {
	t.Helper()
	store := datastore.NewStore(datastore.Config{
		DatasetURL:  filepath.Join(t.TempDir(), "missing.json"),
		BoundaryURL: filepath.Join(t.TempDir(), "missing_polygon.json"),
		Synthetic:   datastore.SyntheticConfig{POIs: 50, Routes: 30, Seed: 42},
	}, nil)
	renderer := render.NewRenderer(render.Config{
		Aggregation:          aggregator.DefaultConfig(),
		InitialViewport:      models.Viewport{Lat: 31.2627, Lng: 34.7983, Zoom: 13, Width: 800, Height: 600},
		ClusterZoomThreshold: 14,
		ClusterRadiusPx:      50,
		ResizeDebounce:       time.Millisecond,
	})
	t.Cleanup(renderer.Close)
	return NewMapService(store, renderer, interaction.New(renderer, 10))
}

func TestMapService_NotReadyBeforeLoad(t *testing.T) {
	svc := newMapService(t)

	_, err := svc.Layers()
	assert.ErrorIs(t, err, ErrNotReady)
	_, err = svc.Statistics()
	assert.ErrorIs(t, err, ErrNotReady)
	assert.ErrorIs(t, svc.ExportKML(&bytes.Buffer{}), ErrNotReady)
}

func TestMapService_LoadFallsBackToSynthetic(t *testing.T) {
	svc := newMapService(t)

	summary := svc.Load(context.Background())

	assert.Equal(t, models.SourceSynthetic, summary.Source)
	assert.Equal(t, 50, summary.POIs)
	assert.Equal(t, 30, summary.Routes)
	assert.Equal(t, 30, summary.Segments)
	assert.False(t, summary.HasBoundary)

	view, err := svc.Layers()
	require.NoError(t, err)
	assert.Len(t, view.Layers, 4)
	assert.NotEmpty(t, view.Icons)

	_, err = svc.Layer("heatmap")
	assert.ErrorIs(t, err, ErrLayerNotFound)

	stats, err := svc.Statistics()
	require.NoError(t, err)
	assert.Equal(t, 30, stats.Statistics.TotalRoutes)
}

func TestMapService_UpdateFilter(t *testing.T) {
	svc := newMapService(t)
	svc.Load(context.Background())

	modes := []models.TransportMode{models.ModeBus}
	state, err := svc.UpdateFilter(models.FilterPatch{Modes: &modes})
	require.NoError(t, err)
	assert.Equal(t, modes, state.Modes)

	segs, err := svc.Segments()
	require.NoError(t, err)
	for _, s := range segs {
		assert.Equal(t, models.ModeBus, s.TransportMode)
	}
}

func TestMapService_Resize(t *testing.T) {
	svc := newMapService(t)

	assert.ErrorIs(t, svc.Resize(0, 10), ErrInvalidSize)
	require.NoError(t, svc.Resize(1024, 768))
	assert.Eventually(t, func() bool { return svc.Viewport().Width == 1024 }, time.Second, 5*time.Millisecond)
}
