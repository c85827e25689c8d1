package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jengzang/mobility-map-backend/internal/aggregator"
	"github.com/jengzang/mobility-map-backend/internal/api"
	"github.com/jengzang/mobility-map-backend/internal/config"
	"github.com/jengzang/mobility-map-backend/internal/database"
	"github.com/jengzang/mobility-map-backend/internal/datastore"
	"github.com/jengzang/mobility-map-backend/internal/interaction"
	"github.com/jengzang/mobility-map-backend/internal/logger"
	"github.com/jengzang/mobility-map-backend/internal/middleware"
	"github.com/jengzang/mobility-map-backend/internal/models"
	"github.com/jengzang/mobility-map-backend/internal/render"
	"github.com/jengzang/mobility-map-backend/internal/repository"
	"github.com/jengzang/mobility-map-backend/internal/service"
)

func main() {
	// 加载配置
	cfg := config.Load()

	logger.Init(logger.Config{
		Level:    cfg.Logging.Level,
		Console:  true,
		FilePath: cfg.Logging.FilePath,
	})

	// 初始化数据库
	if err := database.Init(database.Config{Path: cfg.DBPath}); err != nil {
		logger.Fatal("Failed to initialize database", "error", err)
	}
	defer database.Close()

	store := datastore.NewStore(datastore.Config{
		DatasetURL:   cfg.DatasetURL,
		BoundaryURL:  cfg.BoundaryURL,
		FetchTimeout: cfg.FetchTimeout,
		Synthetic: datastore.SyntheticConfig{
			POIs:   cfg.SyntheticPOIs,
			Routes: cfg.SyntheticRoutes,
			Seed:   cfg.SyntheticSeed,
		},
	}, nil)

	renderer := render.NewRenderer(render.Config{
		Aggregation: aggregator.Config{
			OverlapToleranceMeters: cfg.Aggregation.OverlapToleranceMeters,
			SmoothingFactor:        cfg.Aggregation.SmoothingFactor,
			BaseLineWidth:          cfg.Aggregation.BaseLineWidth,
			MaxLineWidth:           cfg.Aggregation.MaxLineWidth,
			OffsetStepPx:           cfg.Aggregation.OffsetStepPx,
		},
		InitialViewport: models.Viewport{
			Lat:    cfg.Map.CenterLat,
			Lng:    cfg.Map.CenterLng,
			Zoom:   cfg.Map.InitialZoom,
			Width:  cfg.Map.Width,
			Height: cfg.Map.Height,
		},
		ClusterZoomThreshold: cfg.Map.ClusterZoomThreshold,
		ClusterRadiusPx:      cfg.Map.ClusterRadiusPx,
		ResizeDebounce:       cfg.Map.ResizeDebounce,
	})
	defer renderer.Close()

	renderer.OnZoom(func(e render.ZoomEvent) {
		logger.Debug("Zoom changed", "from", e.From, "to", e.To)
	})
	renderer.OnFilterChange(func(f models.FilterState) {
		logger.Debug("Filter changed", "modes", f.Modes, "gates", f.Gates)
	})

	mapService := service.NewMapService(store, renderer, interaction.New(renderer, cfg.Map.HitBufferPx))
	feedbackService := service.NewFeedbackService(repository.NewFeedbackRepository(database.GetDB()))

	// The dataset fetch is the only wait at startup
	summary := mapService.Load(context.Background())
	logger.Info("Map ready", "source", summary.Source, "routes", summary.Routes, "pois", summary.POIs)

	feedbackLimiter := middleware.NewRateLimiter(cfg.FeedbackRateLimit, cfg.FeedbackRateWindow)

	// 初始化路由
	router := api.SetupRouter(cfg, api.Services{
		Map:             mapService,
		Feedback:        feedbackService,
		FeedbackLimiter: feedbackLimiter,
	})

	srv := &http.Server{
		Addr:              cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server starting", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}
	feedbackLimiter.Stop()
}
