package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jengzang/mobility-map-backend/internal/aggregator"
	"github.com/jengzang/mobility-map-backend/internal/config"
	"github.com/jengzang/mobility-map-backend/internal/datastore"
	"github.com/jengzang/mobility-map-backend/internal/interaction"
	"github.com/jengzang/mobility-map-backend/internal/middleware"
	"github.com/jengzang/mobility-map-backend/internal/models"
	"github.com/jengzang/mobility-map-backend/internal/render"
	"github.com/jengzang/mobility-map-backend/internal/service"
)

const testSecret = "router-test-secret"

type memoryFeedback struct {
	items []models.Feedback
}

func (m *memoryFeedback) Insert(_ context.Context, f models.Feedback) (int64, error) {
	f.ID = int64(len(m.items) + 1)
	m.items = append(m.items, f)
	return f.ID, nil
}

func (m *memoryFeedback) List(_ context.Context, limit, offset int) ([]models.Feedback, error) {
	return m.items, nil
}

func (m *memoryFeedback) Count(context.Context) (int64, error) {
	return int64(len(m.items)), nil
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func setup(t *testing.T, load bool) (*gin.Engine, *service.MapService) {
	t.Helper()
	r, mapSvc, _ := setupWithLimiter(t, load)
	return r, mapSvc
}

func setupWithLimiter(t *testing.T, load bool) (*gin.Engine, *service.MapService, *middleware.RateLimiter) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		JWTSecret:          testSecret,
		FeedbackRateLimit:  2,
		FeedbackRateWindow: time.Minute,
	}

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

	mapSvc := service.NewMapService(store, renderer, interaction.New(renderer, 10))
	if load {
		mapSvc.Load(context.Background())
	}

	limiter := middleware.NewRateLimiter(cfg.FeedbackRateLimit, cfg.FeedbackRateWindow)
	t.Cleanup(limiter.Stop)

	r := SetupRouter(cfg, Services{
		Map:             mapSvc,
		Feedback:        service.NewFeedbackService(&memoryFeedback{}),
		FeedbackLimiter: limiter,
	})
	return r, mapSvc, limiter
}

func do(r *gin.Engine, method, path, body string, header ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, data interface{}) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	if data != nil {
		require.NoError(t, json.Unmarshal(env.Data, data))
	}
	return env
}

func TestHealth(t *testing.T) {
	r, _ := setup(t, false)

	w := do(r, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"ready":false`)
}

func TestLayers_NotReady(t *testing.T) {
	r, _ := setup(t, false)

	w := do(r, http.MethodGet, "/api/v1/layers", "")

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestLayers(t *testing.T) {
	r, _ := setup(t, true)

	w := do(r, http.MethodGet, "/api/v1/layers", "")
	require.Equal(t, http.StatusOK, w.Code)

	var view struct {
		Layers []struct {
			ID      string `json:"id"`
			Visible bool   `json:"visible"`
			Data    struct {
				Type     string            `json:"type"`
				Features []json.RawMessage `json:"features"`
			} `json:"data"`
		} `json:"layers"`
		Icons map[string]string `json:"icons"`
	}
	decode(t, w, &view)

	require.Len(t, view.Layers, 4)
	assert.Equal(t, "gates", view.Layers[3].ID)
	assert.Equal(t, "FeatureCollection", view.Layers[1].Data.Type)
	assert.Len(t, view.Layers[1].Data.Features, 30)
	assert.Contains(t, view.Icons, "pin-e74c3c")

	w = do(r, http.MethodGet, "/api/v1/layers/heatmap", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFilterPatch(t *testing.T) {
	r, _ := setup(t, true)

	w := do(r, http.MethodPatch, "/api/v1/filter", `{"modes":["bus"],"showPois":false}`)
	require.Equal(t, http.StatusOK, w.Code)

	var state models.FilterState
	decode(t, w, &state)
	assert.Equal(t, []models.TransportMode{models.ModeBus}, state.Modes)
	assert.False(t, state.ShowPOIs)
	assert.True(t, state.ShowRoutes)

	w = do(r, http.MethodPatch, "/api/v1/filter", `{"gates":["east"]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodPatch, "/api/v1/filter", `not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestViewportAndClick(t *testing.T) {
	r, _ := setup(t, true)

	w := do(r, http.MethodPatch, "/api/v1/viewport", `{"zoom":5}`)
	require.Equal(t, http.StatusOK, w.Code)
	var vp models.Viewport
	decode(t, w, &vp)
	assert.Equal(t, 5.0, vp.Zoom)

	w = do(r, http.MethodPost, "/api/v1/click", `{"x":1,"y":1}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"popup":null`)

	w = do(r, http.MethodPost, "/api/v1/click", `{"y":1}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodGet, "/api/v1/hover?x=abc&y=1", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid hover position")

	w = do(r, http.MethodGet, "/api/v1/hover?x=1", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodGet, "/api/v1/hover?x=0&y=0", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodGet, "/api/v1/hover?x=1&y=1", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodDelete, "/api/v1/hover", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodPost, "/api/v1/viewport/resize", `{"width":1024,"height":768}`)
	assert.Equal(t, http.StatusAccepted, w.Code)
}

func TestStatisticsAndExport(t *testing.T) {
	r, _ := setup(t, true)

	w := do(r, http.MethodGet, "/api/v1/statistics", "")
	require.Equal(t, http.StatusOK, w.Code)
	var stats service.StatisticsView
	decode(t, w, &stats)
	assert.Equal(t, models.SourceSynthetic, stats.Source)
	assert.Equal(t, 50, stats.Statistics.TotalPOIs)

	w = do(r, http.MethodGet, "/api/v1/export/routes.kml", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/vnd.google-earth.kml+xml", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), "<kml")
}

func TestFeedback_RateLimited(t *testing.T) {
	r, _ := setup(t, false)

	w := do(r, http.MethodPost, "/api/v1/feedback", `{"message":"Love the map"}`)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = do(r, http.MethodPost, "/api/v1/feedback", `{"name":"x"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodPost, "/api/v1/feedback", `{"message":"again"}`)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestFeedback_UsesCallerLimiter(t *testing.T) {
	r, _, limiter := setupWithLimiter(t, false)

	// httptest requests come from 192.0.2.1
	require.True(t, limiter.Allow("192.0.2.1"))
	require.True(t, limiter.Allow("192.0.2.1"))

	w := do(r, http.MethodPost, "/api/v1/feedback", `{"message":"Love the map"}`)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestAdmin(t *testing.T) {
	r, mapSvc := setup(t, false)

	w := do(r, http.MethodPost, "/api/v1/admin/reload", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, mapSvc.Ready())

	token, err := middleware.IssueToken("ops", []byte(testSecret), time.Hour)
	require.NoError(t, err)

	w = do(r, http.MethodPost, "/api/v1/admin/reload", "", "Authorization", "Bearer "+token)
	require.Equal(t, http.StatusOK, w.Code)
	var summary service.LoadSummary
	decode(t, w, &summary)
	assert.Equal(t, 30, summary.Routes)
	assert.True(t, mapSvc.Ready())

	w = do(r, http.MethodGet, "/api/v1/admin/feedback", "", "Authorization", "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
}
