package handler

import (
	"errors"
	"net/http"

	automationtransport "atlascasa_backend/internal/automation/transport"
	"atlascasa_backend/internal/leads/domain"
	"atlascasa_backend/internal/leads/service"
	"atlascasa_backend/internal/leads/transport"
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

// RegisterPublicRoutes mounts the storefront-facing lead intake.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/leads", h.Create)
}

// RegisterCRMRoutes mounts the authenticated pipeline management surface.
func (h *Handler) RegisterCRMRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.GET("/:id", h.Get)
	rg.PATCH("/:id/stage", h.SetStage)
	rg.POST("/:id/activities", h.AddActivity)
}

func (h *Handler) Create(c *gin.Context) {
	var req transport.CreateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "validation failed", validator.Fields(err))
		return
	}

	lead, runs, err := h.svc.CreateLead(c.Request.Context(), req)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}

	resp := transport.CreateLeadResponse{
		Lead: transport.ToLeadResponse(lead),
		Runs: make([]automationtransport.RunResponse, len(runs)),
	}
	for i, run := range runs {
		resp.Runs[i] = automationtransport.ToRunResponse(run)
	}
	httpkit.Created(c, resp)
}

func (h *Handler) List(c *gin.Context) {
	leads, err := h.svc.List(c.Request.Context())
	if err != nil {
		httpkit.Error(c, http.StatusInternalServerError, "failed to list leads", nil)
		return
	}

	resp := make([]transport.LeadResponse, len(leads))
	for i, l := range leads {
		resp[i] = transport.ToLeadResponse(l)
	}
	httpkit.OK(c, resp)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid lead id", nil)
		return
	}

	lead, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrLeadNotFound) {
			httpkit.Error(c, http.StatusNotFound, "lead not found", nil)
			return
		}
		httpkit.Error(c, http.StatusInternalServerError, "failed to load lead", nil)
		return
	}
	httpkit.OK(c, transport.ToLeadResponse(lead))
}

func (h *Handler) SetStage(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid lead id", nil)
		return
	}

	var req transport.SetStageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "validation failed", validator.Fields(err))
		return
	}

	lead, err := h.svc.SetStage(c.Request.Context(), id, domain.Stage(req.Stage))
	if err != nil {
		if errors.Is(err, service.ErrLeadNotFound) {
			httpkit.Error(c, http.StatusNotFound, "lead not found", nil)
			return
		}
		httpkit.HandleError(c, err)
		return
	}
	httpkit.OK(c, transport.ToLeadResponse(lead))
}

func (h *Handler) AddActivity(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid lead id", nil)
		return
	}

	var req transport.AddActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "validation failed", validator.Fields(err))
		return
	}

	lead, err := h.svc.AddActivity(c.Request.Context(), id, domain.ActivityKind(req.Kind), req.Title, req.Detail)
	if err != nil {
		if errors.Is(err, service.ErrLeadNotFound) {
			httpkit.Error(c, http.StatusNotFound, "lead not found", nil)
			return
		}
		httpkit.HandleError(c, err)
		return
	}
	httpkit.Created(c, transport.ToLeadResponse(lead))
}
