package handler

import (
	"errors"
	"net/http"
	"strconv"

	"atlascasa_backend/internal/automation/service"
	"atlascasa_backend/internal/automation/transport"
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
	rg.GET("", h.ListRules)
	rg.PUT("", h.ReplaceRules)
	rg.GET("/runs", h.ListRuns)
	rg.POST("/:id/run", h.RunRule)
}

func (h *Handler) ListRules(c *gin.Context) {
	rules, err := h.svc.ListRules(c.Request.Context())
	if err != nil {
		httpkit.Error(c, http.StatusInternalServerError, "failed to list rules", nil)
		return
	}

	resp := make([]transport.RuleResponse, len(rules))
	for i, rule := range rules {
		resp[i] = transport.ToRuleResponse(rule)
	}
	httpkit.OK(c, resp)
}

func (h *Handler) ReplaceRules(c *gin.Context) {
	var req transport.ReplaceRulesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "validation failed", validator.Fields(err))
		return
	}

	rules, err := h.svc.ReplaceRules(c.Request.Context(), req.Rules)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}

	resp := make([]transport.RuleResponse, len(rules))
	for i, rule := range rules {
		resp[i] = transport.ToRuleResponse(rule)
	}
	httpkit.OK(c, resp)
}

func (h *Handler) ListRuns(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	runs, err := h.svc.ListRuns(c.Request.Context(), limit)
	if err != nil {
		httpkit.Error(c, http.StatusInternalServerError, "failed to list runs", nil)
		return
	}

	resp := make([]transport.RunResponse, len(runs))
	for i, run := range runs {
		resp[i] = transport.ToRunResponse(run)
	}
	httpkit.OK(c, resp)
}

func (h *Handler) RunRule(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid rule id", nil)
		return
	}

	run, err := h.svc.RunRuleManually(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrRuleNotFound) {
			httpkit.Error(c, http.StatusNotFound, "rule not found", nil)
			return
		}
		httpkit.HandleError(c, err)
		return
	}
	httpkit.OK(c, transport.ToRunResponse(run))
}
