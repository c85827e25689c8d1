package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/jengzang/mobility-map-backend/internal/logger"
	"github.com/jengzang/mobility-map-backend/internal/middleware"
	"github.com/jengzang/mobility-map-backend/internal/service"
	"github.com/jengzang/mobility-map-backend/pkg/response"
)

// AdminHandler handles operator-only endpoints
type AdminHandler struct {
	mapService *service.MapService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(mapService *service.MapService) *AdminHandler {
	return &AdminHandler{mapService: mapService}
}

// Reload handles POST /api/v1/admin/reload
func (h *AdminHandler) Reload(c *gin.Context) {
	summary := h.mapService.Load(c.Request.Context())

	logger.Info("Dataset reloaded",
		"by", c.GetString(middleware.ContextSubjectKey),
		"source", summary.Source, "routes", summary.Routes)
	response.Success(c, summary)
}
