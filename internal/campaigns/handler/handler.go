package handler

import (
	"errors"
	"net/http"

	"atlascasa_backend/internal/campaigns/service"
	"atlascasa_backend/internal/campaigns/transport"
	"atlascasa_backend/platform/httpkit"
	"atlascasa_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Handler struct {
	svc *service.Service
	val *validator.Validator
}

func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.POST("", h.Create)
	rg.GET("/:id", h.Get)
	rg.PUT("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
	rg.GET("/:id/audience", h.Audience)
	rg.POST("/:id/send", h.Send)
}

func (h *Handler) List(c *gin.Context) {
	campaigns, err := h.svc.List(c.Request.Context())
	if err != nil {
		httpkit.Error(c, http.StatusInternalServerError, "failed to list campaigns", nil)
		return
	}

	resp := make([]transport.CampaignResponse, len(campaigns))
	for i, campaign := range campaigns {
		resp[i] = transport.ToCampaignResponse(campaign)
	}
	httpkit.OK(c, resp)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid campaign id", nil)
		return
	}

	campaign, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	httpkit.OK(c, transport.ToCampaignResponse(campaign))
}

func (h *Handler) Create(c *gin.Context) {
	var req transport.SaveCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "validation failed", validator.Fields(err))
		return
	}

	campaign, err := h.svc.Create(c.Request.Context(), req.ToParams())
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "could not save campaign", nil)
		return
	}
	httpkit.Created(c, transport.ToCampaignResponse(campaign))
}

func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid campaign id", nil)
		return
	}

	var req transport.SaveCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "validation failed", validator.Fields(err))
		return
	}

	campaign, err := h.svc.Update(c.Request.Context(), id, req.ToParams())
	if err != nil {
		h.fail(c, err)
		return
	}
	httpkit.OK(c, transport.ToCampaignResponse(campaign))
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid campaign id", nil)
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	httpkit.NoContent(c)
}

func (h *Handler) Audience(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid campaign id", nil)
		return
	}

	audience, err := h.svc.EstimateAudience(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	httpkit.OK(c, transport.AudienceResponse{Audience: audience})
}

func (h *Handler) Send(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid campaign id", nil)
		return
	}

	if err := h.svc.RequestSend(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusAccepted)
}

func (h *Handler) fail(c *gin.Context, err error) {
	if errors.Is(err, service.ErrCampaignNotFound) {
		httpkit.Error(c, http.StatusNotFound, "campaign not found", nil)
		return
	}
	httpkit.HandleError(c, err)
}
