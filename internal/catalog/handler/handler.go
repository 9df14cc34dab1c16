package handler

import (
	"errors"
	"net/http"
	"strconv"

	"atlascasa_backend/internal/catalog/service"
	"atlascasa_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc *service.Service
}

func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.GET("/featured", h.ListFeatured)
	rg.GET("/:slug", h.GetBySlug)
}

func (h *Handler) List(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context())
	if err != nil {
		httpkit.Error(c, http.StatusInternalServerError, "failed to list properties", nil)
		return
	}
	httpkit.OK(c, items)
}

func (h *Handler) GetBySlug(c *gin.Context) {
	p, err := h.svc.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, service.ErrPropertyNotFound) {
			httpkit.Error(c, http.StatusNotFound, "property not found", nil)
			return
		}
		httpkit.Error(c, http.StatusInternalServerError, "failed to load property", nil)
		return
	}
	httpkit.OK(c, p)
}

func (h *Handler) ListFeatured(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "6"))
	items, err := h.svc.ListFeatured(c.Request.Context(), limit)
	if err != nil {
		httpkit.Error(c, http.StatusInternalServerError, "failed to list featured properties", nil)
		return
	}
	httpkit.OK(c, items)
}
