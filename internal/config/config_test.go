package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, 50, cfg.SyntheticPOIs)
	assert.Equal(t, 30, cfg.SyntheticRoutes)
	assert.Equal(t, 50.0, cfg.Aggregation.OverlapToleranceMeters)
	assert.Equal(t, 0.15, cfg.Aggregation.SmoothingFactor)
	assert.Equal(t, 10.0, cfg.Map.HitBufferPx)
	assert.Equal(t, 1280.0, cfg.Map.Width)
	assert.Equal(t, 800.0, cfg.Map.Height)
	assert.Equal(t, 250*time.Millisecond, cfg.Map.ResizeDebounce)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SYNTHETIC_POIS", "12")
	t.Setenv("OVERLAP_TOLERANCE_M", "75.5")
	t.Setenv("RESIZE_DEBOUNCE", "1s")
	t.Setenv("PORT", ":9090")

	cfg := Load()

	assert.Equal(t, 12, cfg.SyntheticPOIs)
	assert.Equal(t, 75.5, cfg.Aggregation.OverlapToleranceMeters)
	assert.Equal(t, time.Second, cfg.Map.ResizeDebounce)
	assert.Equal(t, ":9090", cfg.Port)
}

func TestLoad_BadValuesFallBack(t *testing.T) {
	t.Setenv("SYNTHETIC_ROUTES", "many")
	t.Setenv("FETCH_TIMEOUT", "soon")

	cfg := Load()

	assert.Equal(t, 30, cfg.SyntheticRoutes)
	assert.Equal(t, 10*time.Second, cfg.FetchTimeout)
}
