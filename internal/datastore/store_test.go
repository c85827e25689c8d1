package datastore

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jengzang/mobility-map-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePayload = `{
	"metadata": {"exportedAt": "2025-03-01T10:00:00", "source": "BGU Mobility Survey", "version": "2.0"},
	"pois": [
		{"id": "101_0", "submissionId": 101, "lat": 31.2630, "lng": 34.7990, "comment": "Nice bench", "hasComment": true},
		{"id": "102_0", "submissionId": 102, "lat": 31.2610, "lng": 34.8010, "comment": "No comment provided", "hasComment": false}
	],
	"routes": [
		{"id": 101, "transportMode": "walking", "distance": 1.2,
		 "residence": {"lat": 31.2627, "lng": 34.7983},
		 "destination": {"lat": 31.261222, "lng": 34.801138, "name": "South Gate", "id": "uni_south_3"}}
	]
}`

func testConfig(url string) Config {
	return Config{
		DatasetURL:   url,
		FetchTimeout: 2 * time.Second,
		Synthetic:    SyntheticConfig{POIs: 50, Routes: 30, Seed: 7},
	}
}

func TestLoad_HTTP404FallsBackToSynthetic(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	store := NewStore(testConfig(srv.URL+"/bgu_mobility_data.json"), nil)
	ds := store.Load(context.Background())

	assert.Equal(t, models.SourceSynthetic, ds.Source)
	assert.Len(t, ds.POIs, 50)
	assert.Len(t, ds.Routes, 30)

	snap, err := store.Snapshot()
	require.NoError(t, err)
	assert.Len(t, snap.Routes, 30)
}

func TestLoad_MalformedJSONFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"pois": [`))
	}))
	defer srv.Close()

	ds := NewStore(testConfig(srv.URL), nil).Load(context.Background())

	assert.Equal(t, models.SourceSynthetic, ds.Source)
	assert.Len(t, ds.POIs, 50)
}

func TestLoad_UnreachableFallsBack(t *testing.T) {
	ds := NewStore(testConfig("http://127.0.0.1:1/data.json"), nil).Load(context.Background())
	assert.Equal(t, models.SourceSynthetic, ds.Source)
}

func TestLoad_RemoteDataset(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(samplePayload))
	}))
	defer srv.Close()

	ds := NewStore(testConfig(srv.URL), nil).Load(context.Background())

	assert.Equal(t, models.SourceRemote, ds.Source)
	require.Len(t, ds.POIs, 2)
	require.Len(t, ds.Routes, 1)
	assert.Equal(t, models.FlexID("101"), ds.Routes[0].ID)
	assert.Equal(t, models.FlexID("101"), ds.POIs[0].SubmissionID)

	// no statistics in payload: computed
	assert.Equal(t, 2, ds.Statistics.TotalPOIs)
	assert.Equal(t, 1, ds.Statistics.POIsWithComments)
	assert.Equal(t, 50.0, ds.Statistics.CommentPercentage)
	assert.Equal(t, map[string]int{"South Gate": 1}, ds.Statistics.GateUsage)
}

func TestLoad_LocalFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bgu_mobility_data.json")
	require.NoError(t, os.WriteFile(path, []byte(samplePayload), 0o644))

	ds := NewStore(testConfig(path), nil).Load(context.Background())

	assert.Equal(t, models.SourceRemote, ds.Source)
	assert.Len(t, ds.Routes, 1)
}

func TestSnapshot_BeforeLoad(t *testing.T) {
	_, err := NewStore(testConfig(""), nil).Snapshot()
	assert.ErrorIs(t, err, ErrNoData)
}

func TestParseDataset_KeepsProvidedStatistics(t *testing.T) {
	ds, err := ParseDataset([]byte(`{"pois": [], "routes": [], "statistics": {"totalPois": 999, "totalRoutes": 5}}`))
	require.NoError(t, err)
	assert.Equal(t, 999, ds.Statistics.TotalPOIs)
}

func TestParseDataset_RejectsUnrelatedJSON(t *testing.T) {
	_, err := ParseDataset([]byte(`{"hello": "world"}`))
	assert.Error(t, err)
}

func TestParseDataset_DerivesMissingDistance(t *testing.T) {
	raw := `{"pois": [], "routes": [
		{"id": "r1", "transportMode": "walking",
		 "destination": {"lat": 31.261222, "lng": 34.801138, "name": "South Gate", "id": "uni_south_3"},
		 "routePath": [[34.7983, 31.2627], [34.801138, 31.261222]]},
		{"id": "r2", "transportMode": "car", "distance": 4.5,
		 "destination": {"lat": 31.263, "lng": 34.8, "name": "North Gate", "id": "uni_north_3"}}
	]}`

	ds, err := ParseDataset([]byte(raw))
	require.NoError(t, err)

	assert.InDelta(t, 0.31, ds.Routes[0].Distance, 0.02)
	assert.Equal(t, 4.5, ds.Routes[1].Distance)
	assert.Equal(t, 4.5, ds.Statistics.LongestDistance)
	assert.InDelta(t, 0.3, ds.Statistics.ShortestDistance, 0.05)
}
