package engagement

import (
	catalogrepo "atlascasa_backend/internal/catalog/repository"
	"atlascasa_backend/internal/engagement/handler"
	"atlascasa_backend/internal/engagement/repository"
	"atlascasa_backend/internal/engagement/service"
	apphttp "atlascasa_backend/internal/http"
	"atlascasa_backend/platform/logger"
	"atlascasa_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Module struct {
	repo    *repository.Repository
	handler *handler.Handler
}

func NewModule(pool *pgxpool.Pool, catalog *catalogrepo.Repository, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, catalog, log)
	return &Module{
		repo:    repo,
		handler: handler.New(svc, val),
	}
}

func (m *Module) Name() string { return "engagement" }

// Repository exposes the event store for the scheduled prune task.
func (m *Module) Repository() *repository.Repository { return m.repo }

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Public)
}
