package datastore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jengzang/mobility-map-backend/internal/logger"
	"github.com/jengzang/mobility-map-backend/internal/models"
	"github.com/jengzang/mobility-map-backend/internal/spatial"
	"github.com/jengzang/mobility-map-backend/internal/stats"
)

// ErrNoData is returned by Snapshot before the first Load
var ErrNoData = errors.New("dataset not loaded")

// Config holds data source settings
type Config struct {
	DatasetURL   string
	BoundaryURL  string
	FetchTimeout time.Duration
	Synthetic    SyntheticConfig
}

// Store loads and holds the survey dataset shared by all map components
type Store struct {
	cfg     Config
	fetcher Fetcher

	mu      sync.RWMutex
	dataset models.Dataset
	loaded  bool
}

// NewStore creates a new data store
func NewStore(cfg Config, fetcher Fetcher) *Store {
	if fetcher == nil {
		fetcher = NewSourceFetcher(nil)
	}
	return &Store{cfg: cfg, fetcher: fetcher}
}

// Load fetches the dataset and installs it as the current snapshot. Any fetch
// or decode failure falls back to synthetic sample data, so Load always
// yields something to render.
func (s *Store) Load(ctx context.Context) models.Dataset {
	ds, err := s.fetchDataset(ctx)
	if err != nil {
		logger.Warn("Dataset unavailable, using synthetic sample data",
			"source", s.cfg.DatasetURL, "error", err)
		ds = GenerateSynthetic(s.cfg.Synthetic)
	} else {
		logger.Info("Dataset loaded",
			"source", s.cfg.DatasetURL, "pois", len(ds.POIs), "routes", len(ds.Routes))
	}

	s.mu.Lock()
	s.dataset = ds
	s.loaded = true
	s.mu.Unlock()

	return ds
}

// Snapshot returns the current dataset
func (s *Store) Snapshot() (models.Dataset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.loaded {
		return models.Dataset{}, ErrNoData
	}
	return s.dataset, nil
}

func (s *Store) fetchDataset(ctx context.Context) (models.Dataset, error) {
	if s.cfg.FetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.FetchTimeout)
		defer cancel()
	}

	data, err := s.fetcher.Fetch(ctx, s.cfg.DatasetURL)
	if err != nil {
		return models.Dataset{}, err
	}

	return ParseDataset(data)
}

// ParseDataset decodes an exporter payload. Statistics are recomputed when
// the payload does not carry any.
func ParseDataset(data []byte) (models.Dataset, error) {
	var ds models.Dataset
	if err := json.Unmarshal(data, &ds); err != nil {
		return models.Dataset{}, fmt.Errorf("failed to decode dataset: %w", err)
	}
	if ds.POIs == nil && ds.Routes == nil {
		return models.Dataset{}, errors.New("dataset has neither pois nor routes")
	}

	fillDistances(ds.Routes)
	if ds.Statistics.IsEmpty() {
		ds.Statistics = ComputeStatistics(ds.POIs, ds.Routes)
	}
	ds.Source = models.SourceRemote
	return ds, nil
}

// fillDistances derives a missing trip distance, in km, from the route path
func fillDistances(routes []models.Route) {
	for i := range routes {
		if routes[i].Distance > 0 || len(routes[i].RoutePath) < 2 {
			continue
		}
		routes[i].Distance = stats.Round(spatial.PathLength(routes[i].RoutePath)/1000, 2)
	}
}
