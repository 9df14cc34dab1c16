package leads

import (
	agentrepo "atlascasa_backend/internal/agents/repository"
	automationrepo "atlascasa_backend/internal/automation/repository"
	catalogrepo "atlascasa_backend/internal/catalog/repository"
	"atlascasa_backend/internal/events"
	apphttp "atlascasa_backend/internal/http"
	"atlascasa_backend/internal/leads/assignment"
	"atlascasa_backend/internal/leads/handler"
	"atlascasa_backend/internal/leads/repository"
	"atlascasa_backend/internal/leads/service"
	"atlascasa_backend/platform/logger"
	"atlascasa_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Module struct {
	handler *handler.Handler
}

// NewModule wires lead intake and pipeline management. The assignment
// rotation persists through the counters table, so restarts do not reset it.
func NewModule(
	pool *pgxpool.Pool,
	agents *agentrepo.Repository,
	catalog *catalogrepo.Repository,
	rules *automationrepo.Repository,
	bus events.Bus,
	val *validator.Validator,
	log *logger.Logger,
) *Module {
	repo := repository.New(pool)
	policy := assignment.NewPolicy(repository.NewCounterRepository(pool), assignment.GlobalCursor{})
	svc := service.New(repo, agents, catalog, rules, policy, bus, log)
	return &Module{handler: handler.New(svc, val)}
}

func (m *Module) Name() string { return "leads" }

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterPublicRoutes(ctx.Public)
	m.handler.RegisterCRMRoutes(ctx.CRM.Group("/leads"))
}
