package datastore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jengzang/mobility-map-backend/internal/logger"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// LoadBoundary fetches the optional university polygon. A missing or
// unusable resource returns nil, which disables the boundary overlay.
func (s *Store) LoadBoundary(ctx context.Context) orb.Geometry {
	if s.cfg.BoundaryURL == "" {
		return nil
	}
	if s.cfg.FetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.FetchTimeout)
		defer cancel()
	}

	data, err := s.fetcher.Fetch(ctx, s.cfg.BoundaryURL)
	if err != nil {
		logger.Info("University boundary not available, overlay disabled", "source", s.cfg.BoundaryURL, "error", err)
		return nil
	}

	geom, err := ParseBoundary(data)
	if err != nil {
		logger.Info("University boundary unusable, overlay disabled", "source", s.cfg.BoundaryURL, "error", err)
		return nil
	}
	return geom
}

// ParseBoundary accepts a FeatureCollection, a Feature or a bare geometry and
// returns the first Polygon or MultiPolygon in it.
func ParseBoundary(data []byte) (orb.Geometry, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("failed to decode boundary: %w", err)
	}

	var candidates []orb.Geometry
	switch head.Type {
	case "FeatureCollection":
		fc, err := geojson.UnmarshalFeatureCollection(data)
		if err != nil {
			return nil, fmt.Errorf("failed to decode boundary collection: %w", err)
		}
		for _, f := range fc.Features {
			candidates = append(candidates, f.Geometry)
		}
	case "Feature":
		f, err := geojson.UnmarshalFeature(data)
		if err != nil {
			return nil, fmt.Errorf("failed to decode boundary feature: %w", err)
		}
		candidates = append(candidates, f.Geometry)
	default:
		g, err := geojson.UnmarshalGeometry(data)
		if err != nil {
			return nil, fmt.Errorf("failed to decode boundary geometry: %w", err)
		}
		candidates = append(candidates, g.Geometry())
	}

	for _, g := range candidates {
		switch g.(type) {
		case orb.Polygon, orb.MultiPolygon:
			return g, nil
		}
	}
	return nil, errors.New("boundary contains no polygon")
}
