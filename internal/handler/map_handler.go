package handler

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/mobility-map-backend/internal/interaction"
	"github.com/jengzang/mobility-map-backend/internal/models"
	"github.com/jengzang/mobility-map-backend/internal/service"
	"github.com/jengzang/mobility-map-backend/pkg/response"
)

// MapHandler handles HTTP requests for map state and layer data
type MapHandler struct {
	service *service.MapService
}

// NewMapHandler creates a new map handler
func NewMapHandler(service *service.MapService) *MapHandler {
	return &MapHandler{service: service}
}

// PointRequest is a cursor position in map pixels
type PointRequest struct {
	X *float64 `json:"x" form:"x" binding:"required"`
	Y *float64 `json:"y" form:"y" binding:"required"`
}

// SizeRequest is the body of POST /api/v1/viewport/resize
type SizeRequest struct {
	Width  float64 `json:"width" binding:"required"`
	Height float64 `json:"height" binding:"required"`
}

// GetLayers handles GET /api/v1/layers
func (h *MapHandler) GetLayers(c *gin.Context) {
	view, err := h.service.Layers()
	if err != nil {
		h.fail(c, "Failed to get layers", err)
		return
	}
	response.Success(c, view)
}

// GetLayer handles GET /api/v1/layers/:id
func (h *MapHandler) GetLayer(c *gin.Context) {
	layer, err := h.service.Layer(c.Param("id"))
	if err != nil {
		h.fail(c, "Failed to get layer", err)
		return
	}
	response.Success(c, layer)
}

// GetSegments handles GET /api/v1/segments
func (h *MapHandler) GetSegments(c *gin.Context) {
	segments, err := h.service.Segments()
	if err != nil {
		h.fail(c, "Failed to get segments", err)
		return
	}
	response.Success(c, gin.H{
		"segments": segments,
		"count":    len(segments),
	})
}

// GetFilter handles GET /api/v1/filter
func (h *MapHandler) GetFilter(c *gin.Context) {
	response.Success(c, h.service.Filter())
}

// PatchFilter handles PATCH /api/v1/filter
func (h *MapHandler) PatchFilter(c *gin.Context) {
	var patch models.FilterPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid filter", err)
		return
	}

	state, err := h.service.UpdateFilter(patch)
	if err != nil {
		h.fail(c, "Failed to update filter", err)
		return
	}
	response.Success(c, state)
}

// GetViewport handles GET /api/v1/viewport
func (h *MapHandler) GetViewport(c *gin.Context) {
	response.Success(c, h.service.Viewport())
}

// PatchViewport handles PATCH /api/v1/viewport
func (h *MapHandler) PatchViewport(c *gin.Context) {
	var patch models.ViewportPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid viewport", err)
		return
	}
	response.Success(c, h.service.UpdateViewport(patch))
}

// Resize handles POST /api/v1/viewport/resize
func (h *MapHandler) Resize(c *gin.Context) {
	var req SizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid size", err)
		return
	}
	if err := h.service.Resize(req.Width, req.Height); err != nil {
		h.fail(c, "Failed to resize", err)
		return
	}
	c.JSON(http.StatusAccepted, response.Response{Code: 0, Message: "accepted"})
}

// Hover handles GET /api/v1/hover?x=&y=
func (h *MapHandler) Hover(c *gin.Context) {
	var req PointRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid hover position", err)
		return
	}

	popup, hit := h.service.Hover(*req.X, *req.Y)
	response.Success(c, gin.H{
		"popup": popup,
		"hit":   hitView(hit),
	})
}

// Leave handles DELETE /api/v1/hover
func (h *MapHandler) Leave(c *gin.Context) {
	h.service.Leave()
	response.Success(c, gin.H{"popup": h.service.Popup()})
}

// Click handles POST /api/v1/click
func (h *MapHandler) Click(c *gin.Context) {
	var req PointRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid click position", err)
		return
	}
	response.Success(c, gin.H{"popup": h.service.Click(*req.X, *req.Y)})
}

// GetPopup handles GET /api/v1/popup
func (h *MapHandler) GetPopup(c *gin.Context) {
	response.Success(c, gin.H{"popup": h.service.Popup()})
}

// GetStatistics handles GET /api/v1/statistics
func (h *MapHandler) GetStatistics(c *gin.Context) {
	stats, err := h.service.Statistics()
	if err != nil {
		h.fail(c, "Failed to get statistics", err)
		return
	}
	response.Success(c, stats)
}

// ExportKML handles GET /api/v1/export/routes.kml
func (h *MapHandler) ExportKML(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.service.ExportKML(&buf); err != nil {
		h.fail(c, "Failed to export routes", err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="routes.kml"`)
	c.Data(http.StatusOK, "application/vnd.google-earth.kml+xml", buf.Bytes())
}

// fail maps service errors onto HTTP statuses
func (h *MapHandler) fail(c *gin.Context, message string, err error) {
	switch {
	case errors.Is(err, service.ErrNotReady):
		response.ServiceUnavailable(c, err.Error())
	case errors.Is(err, service.ErrLayerNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrInvalidSize),
		errors.Is(err, interaction.ErrUnknownMode),
		errors.Is(err, interaction.ErrUnknownGate),
		errors.Is(err, interaction.ErrUnknownLayer):
		response.Error(c, http.StatusBadRequest, err.Error(), err)
	default:
		response.InternalError(c, message, err)
	}
}

func hitView(hit interaction.RouteHit) gin.H {
	groups := hit.Groups
	if groups == nil {
		groups = []models.TripGroup{}
	}
	return gin.H{
		"total":    hit.Total,
		"groups":   groups,
		"routeIds": hit.RouteIDs,
	}
}
