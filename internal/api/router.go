package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/mobility-map-backend/internal/config"
	"github.com/jengzang/mobility-map-backend/internal/handler"
	"github.com/jengzang/mobility-map-backend/internal/middleware"
	"github.com/jengzang/mobility-map-backend/internal/service"
)

// Services are the dependencies of the HTTP surface. The caller owns the
// feedback limiter and stops it on shutdown.
type Services struct {
	Map             *service.MapService
	Feedback        *service.FeedbackService
	FeedbackLimiter *middleware.RateLimiter
}

// SetupRouter 设置路由
func SetupRouter(cfg *config.Config, svc Services) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.Logger())

	// CORS 中间件
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Mobility Map API is running",
			"ready":   svc.Map.Ready(),
		})
	})

	mapHandler := handler.NewMapHandler(svc.Map)
	feedbackHandler := handler.NewFeedbackHandler(svc.Feedback)
	adminHandler := handler.NewAdminHandler(svc.Map)

	// API 路由组
	api := r.Group("/api/v1")
	{
		// 图层数据
		api.GET("/layers", mapHandler.GetLayers)
		api.GET("/layers/:id", mapHandler.GetLayer)
		api.GET("/segments", mapHandler.GetSegments)

		// 筛选与视口
		api.GET("/filter", mapHandler.GetFilter)
		api.PATCH("/filter", mapHandler.PatchFilter)
		api.GET("/viewport", mapHandler.GetViewport)
		api.PATCH("/viewport", mapHandler.PatchViewport)
		api.POST("/viewport/resize", mapHandler.Resize)

		// 交互
		api.GET("/hover", mapHandler.Hover)
		api.DELETE("/hover", mapHandler.Leave)
		api.POST("/click", mapHandler.Click)
		api.GET("/popup", mapHandler.GetPopup)

		// 统计与导出
		api.GET("/statistics", mapHandler.GetStatistics)
		api.GET("/export/routes.kml", mapHandler.ExportKML)

		// 反馈
		api.POST("/feedback", middleware.RateLimit(svc.FeedbackLimiter), feedbackHandler.Submit)

		// 管理接口
		admin := api.Group("/admin", middleware.JWTAuth(cfg.JWTSecret))
		{
			admin.GET("/feedback", feedbackHandler.List)
			admin.POST("/reload", adminHandler.Reload)
		}
	}

	return r
}
