package automation

import (
	"atlascasa_backend/internal/automation/handler"
	"atlascasa_backend/internal/automation/repository"
	"atlascasa_backend/internal/automation/service"
	apphttp "atlascasa_backend/internal/http"
	"atlascasa_backend/platform/logger"
	"atlascasa_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Module struct {
	repo    *repository.Repository
	handler *handler.Handler
}

func NewModule(pool *pgxpool.Pool, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, log)
	return &Module{
		repo:    repo,
		handler: handler.New(svc, val),
	}
}

func (m *Module) Name() string { return "automation" }

// Repository exposes the rule and run store for the leads module, which
// evaluates rules at lead creation time.
func (m *Module) Repository() *repository.Repository { return m.repo }

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.CRM.Group("/automations"))
}
