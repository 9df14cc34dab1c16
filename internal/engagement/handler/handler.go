package handler

import (
	"net/http"
	"strconv"

	catalogtransport "atlascasa_backend/internal/catalog/transport"
	"atlascasa_backend/internal/engagement/service"
	"atlascasa_backend/internal/engagement/transport"
	"atlascasa_backend/platform/httpkit"
	"atlascasa_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Visitors are identified by an opaque id the storefront generates and sends
// on every request.
const visitorHeader = "X-Visitor-Id"

const maxRecommendationLimit = 12

type Handler struct {
	svc *service.Service
	val *validator.Validator
}

func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/events", h.RecordEvent)
	rg.GET("/recommendations", h.Recommendations)
}

func (h *Handler) RecordEvent(c *gin.Context) {
	visitorID := c.GetHeader(visitorHeader)
	if visitorID == "" {
		httpkit.Error(c, http.StatusBadRequest, "missing visitor id", nil)
		return
	}

	var req transport.RecordEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "validation failed", validator.Fields(err))
		return
	}

	propertyID, err := uuid.Parse(req.PropertyID)
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid property id", nil)
		return
	}

	if err := h.svc.RecordEvent(c.Request.Context(), visitorID, req.Kind, propertyID); err != nil {
		httpkit.HandleError(c, err)
		return
	}
	httpkit.NoContent(c)
}

func (h *Handler) Recommendations(c *gin.Context) {
	visitorID := c.GetHeader(visitorHeader)
	if visitorID == "" {
		httpkit.Error(c, http.StatusBadRequest, "missing visitor id", nil)
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	if limit > maxRecommendationLimit {
		limit = maxRecommendationLimit
	}

	items, err := h.svc.Recommendations(c.Request.Context(), visitorID, limit)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}

	resp := transport.RecommendationsResponse{
		Items: make([]catalogtransport.PropertyResponse, len(items)),
	}
	for i, p := range items {
		resp.Items[i] = catalogtransport.ToPropertyResponse(p)
	}
	httpkit.OK(c, resp)
}
