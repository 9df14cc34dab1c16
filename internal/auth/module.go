// Package auth issues the simulated CRM session. There are no passwords:
// logging in as an agent only requires the agent to exist. The token just
// scopes the /crm surface to a named team member.
package auth

import (
	"errors"
	"net/http"

	agentservice "atlascasa_backend/internal/agents/service"
	agenttransport "atlascasa_backend/internal/agents/transport"
	apphttp "atlascasa_backend/internal/http"
	"atlascasa_backend/platform/config"
	"atlascasa_backend/platform/httpkit"
	"atlascasa_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type LoginRequest struct {
	AgentID string `json:"agentId" validate:"required,uuid"`
}

type LoginResponse struct {
	Token string                       `json:"token"`
	Agent agenttransport.AgentResponse `json:"agent"`
}

type Module struct {
	agents *agentservice.Service
	cfg    config.JWTConfig
	val    *validator.Validator
}

func NewModule(agents *agentservice.Service, cfg config.JWTConfig, val *validator.Validator) *Module {
	return &Module{agents: agents, cfg: cfg, val: val}
}

func (m *Module) Name() string { return "auth" }

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Public.POST("/auth/login", m.login)
}

func (m *Module) login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request", nil)
		return
	}
	if err := m.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "validation failed", validator.Fields(err))
		return
	}

	id, err := uuid.Parse(req.AgentID)
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid agent id", nil)
		return
	}

	agent, err := m.agents.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, agentservice.ErrAgentNotFound) {
			httpkit.Error(c, http.StatusUnauthorized, "unknown agent", nil)
			return
		}
		httpkit.Error(c, http.StatusInternalServerError, "login failed", nil)
		return
	}

	token, err := httpkit.IssueSessionToken(m.cfg, id.String())
	if err != nil {
		httpkit.Error(c, http.StatusInternalServerError, "login failed", nil)
		return
	}

	httpkit.OK(c, LoginResponse{Token: token, Agent: agent})
}
