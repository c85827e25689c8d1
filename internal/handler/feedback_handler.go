package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/mobility-map-backend/internal/models"
	"github.com/jengzang/mobility-map-backend/internal/service"
	"github.com/jengzang/mobility-map-backend/pkg/response"
)

// FeedbackHandler handles HTTP requests for the feedback form
type FeedbackHandler struct {
	service *service.FeedbackService
}

// NewFeedbackHandler creates a new feedback handler
func NewFeedbackHandler(service *service.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{service: service}
}

// Submit handles POST /api/v1/feedback
func (h *FeedbackHandler) Submit(c *gin.Context) {
	var req models.FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid feedback", err)
		return
	}

	fb, err := h.service.Submit(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidFeedback) {
			response.BadRequest(c, err.Error())
			return
		}
		response.InternalError(c, "Failed to submit feedback", err)
		return
	}

	c.JSON(http.StatusCreated, response.Response{Code: 0, Message: "success", Data: fb})
}

// List handles GET /api/v1/admin/feedback
func (h *FeedbackHandler) List(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil {
		response.BadRequest(c, "Invalid limit parameter")
		return
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil {
		response.BadRequest(c, "Invalid offset parameter")
		return
	}

	page, err := h.service.List(c.Request.Context(), limit, offset)
	if err != nil {
		response.InternalError(c, "Failed to list feedback", err)
		return
	}
	response.Success(c, page)
}
