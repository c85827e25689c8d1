package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config 应用配置
type Config struct {
	Port      string
	DBPath    string
	JWTSecret string
	MaxMemory int64 // 最大内存使用（字节）

	// Dataset sources. Either may be an http(s) URL or a local file path.
	DatasetURL   string
	BoundaryURL  string
	FetchTimeout time.Duration

	// Synthetic fallback
	SyntheticPOIs   int
	SyntheticRoutes int
	SyntheticSeed   int64

	Aggregation AggregationConfig
	Map         MapConfig
	Logging     LoggingConfig

	FeedbackRateLimit  int
	FeedbackRateWindow time.Duration
}

// AggregationConfig tunes the route aggregator
type AggregationConfig struct {
	OverlapToleranceMeters float64
	SmoothingFactor        float64
	BaseLineWidth          float64
	MaxLineWidth           float64
	OffsetStepPx           float64
}

// MapConfig tunes viewport-dependent rendering and interaction
type MapConfig struct {
	CenterLat            float64
	CenterLng            float64
	InitialZoom          float64
	Width                float64 // initial map size in pixels, until the client resizes
	Height               float64
	ClusterZoomThreshold float64
	ClusterRadiusPx      float64
	HitBufferPx          float64
	ResizeDebounce       time.Duration
}

// LoggingConfig holds logger settings
type LoggingConfig struct {
	Level    string
	FilePath string
}

// Load 加载配置
func Load() *Config {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	return &Config{
		Port:      getEnv("PORT", ":8080"),
		DBPath:    getEnv("DB_PATH", "./data/feedback.db"),
		JWTSecret: getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
		MaxMemory: 1024 * 1024 * 800, // 800MB 最大内存使用

		DatasetURL:   getEnv("DATASET_URL", "./outputs/bgu_mobility_data.json"),
		BoundaryURL:  getEnv("BOUNDARY_URL", "./outputs/university_polygon.json"),
		FetchTimeout: getDurationEnv("FETCH_TIMEOUT", 10*time.Second),

		SyntheticPOIs:   getIntEnv("SYNTHETIC_POIS", 50),
		SyntheticRoutes: getIntEnv("SYNTHETIC_ROUTES", 30),
		SyntheticSeed:   int64(getIntEnv("SYNTHETIC_SEED", 42)),

		Aggregation: AggregationConfig{
			OverlapToleranceMeters: getFloatEnv("OVERLAP_TOLERANCE_M", 50),
			SmoothingFactor:        getFloatEnv("SMOOTHING_FACTOR", 0.15),
			BaseLineWidth:          getFloatEnv("BASE_LINE_WIDTH", 3),
			MaxLineWidth:           getFloatEnv("MAX_LINE_WIDTH", 10),
			OffsetStepPx:           getFloatEnv("OFFSET_STEP_PX", 2),
		},
		Map: MapConfig{
			CenterLat:            getFloatEnv("MAP_CENTER_LAT", 31.2627),
			CenterLng:            getFloatEnv("MAP_CENTER_LNG", 34.7983),
			InitialZoom:          getFloatEnv("MAP_ZOOM", 13),
			Width:                getFloatEnv("MAP_WIDTH", 1280),
			Height:               getFloatEnv("MAP_HEIGHT", 800),
			ClusterZoomThreshold: getFloatEnv("CLUSTER_ZOOM_THRESHOLD", 14),
			ClusterRadiusPx:      getFloatEnv("CLUSTER_RADIUS_PX", 50),
			HitBufferPx:          getFloatEnv("HIT_BUFFER_PX", 10),
			ResizeDebounce:       getDurationEnv("RESIZE_DEBOUNCE", 250*time.Millisecond),
		},
		Logging: LoggingConfig{
			Level:    getEnv("LOG_LEVEL", "info"),
			FilePath: getEnv("LOG_FILE", ""),
		},

		FeedbackRateLimit:  getIntEnv("FEEDBACK_RATE_LIMIT", 5),
		FeedbackRateWindow: getDurationEnv("FEEDBACK_RATE_WINDOW", time.Minute),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getFloatEnv(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
