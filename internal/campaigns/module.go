package campaigns

import (
	"atlascasa_backend/internal/campaigns/handler"
	"atlascasa_backend/internal/campaigns/repository"
	"atlascasa_backend/internal/campaigns/service"
	"atlascasa_backend/internal/events"
	apphttp "atlascasa_backend/internal/http"
	leadsrepo "atlascasa_backend/internal/leads/repository"
	"atlascasa_backend/platform/logger"
	"atlascasa_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Module struct {
	svc     *service.Service
	handler *handler.Handler
}

func NewModule(
	pool *pgxpool.Pool,
	enqueuer service.Enqueuer,
	sender service.EmailSender,
	bus events.Bus,
	val *validator.Validator,
	log *logger.Logger,
) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, leadsrepo.New(pool), enqueuer, sender, bus, log)
	return &Module{
		svc:     svc,
		handler: handler.New(svc, val),
	}
}

func (m *Module) Name() string { return "campaigns" }

// Service exposes campaign delivery for the background worker.
func (m *Module) Service() *service.Service { return m.svc }

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.CRM.Group("/campaigns"))
}
