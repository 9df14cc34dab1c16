package agents

import (
	"atlascasa_backend/internal/agents/handler"
	"atlascasa_backend/internal/agents/repository"
	"atlascasa_backend/internal/agents/service"
	apphttp "atlascasa_backend/internal/http"
	"atlascasa_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Module struct {
	repo    *repository.Repository
	svc     *service.Service
	handler *handler.Handler
}

func NewModule(pool *pgxpool.Pool, val *validator.Validator) *Module {
	repo := repository.New(pool)
	svc := service.New(repo)
	return &Module{
		repo:    repo,
		svc:     svc,
		handler: handler.New(svc, val),
	}
}

func (m *Module) Name() string { return "agents" }

// Repository exposes the agent store for lead assignment.
func (m *Module) Repository() *repository.Repository { return m.repo }

// Service exposes agent lookup for the login flow.
func (m *Module) Service() *service.Service { return m.svc }

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.CRM.Group("/agents"))
}
