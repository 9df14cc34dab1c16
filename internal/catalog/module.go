// Package catalog provides the property catalog bounded context module.
// The lead core reads the catalog; writes happen through back-office tooling.
package catalog

import (
	"atlascasa_backend/internal/catalog/handler"
	"atlascasa_backend/internal/catalog/repository"
	"atlascasa_backend/internal/catalog/service"
	apphttp "atlascasa_backend/internal/http"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the catalog bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	repo    *repository.Repository
}

// NewModule creates and initializes the catalog module.
func NewModule(pool *pgxpool.Pool) *Module {
	repo := repository.New(pool)
	svc := service.New(repo)

	return &Module{
		handler: handler.New(svc),
		repo:    repo,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "catalog"
}

// Repository exposes the catalog store to sibling modules (read-only use).
func (m *Module) Repository() *repository.Repository {
	return m.repo
}

// RegisterRoutes mounts catalog routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Public.Group("/properties"))
}

var _ apphttp.Module = (*Module)(nil)
