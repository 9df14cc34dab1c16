package service

import (
	"context"
	"errors"
	"time"

	agentrepo "atlascasa_backend/internal/agents/repository"
	"atlascasa_backend/internal/automation/engine"
	automationrepo "atlascasa_backend/internal/automation/repository"
	catalogrepo "atlascasa_backend/internal/catalog/repository"
	"atlascasa_backend/internal/events"
	"atlascasa_backend/internal/leads/assignment"
	"atlascasa_backend/internal/leads/domain"
	"atlascasa_backend/internal/leads/repository"
	"atlascasa_backend/internal/leads/transport"
	"atlascasa_backend/platform/apperr"
	"atlascasa_backend/platform/logger"
	"atlascasa_backend/platform/phone"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

var ErrLeadNotFound = errors.New("lead not found")

type Service struct {
	repo    *repository.Repository
	agents  *agentrepo.Repository
	catalog *catalogrepo.Repository
	rules   *automationrepo.Repository
	policy  *assignment.Policy
	engine  *engine.Engine
	bus     events.Bus
	log     *logger.Logger
}

func New(
	repo *repository.Repository,
	agents *agentrepo.Repository,
	catalog *catalogrepo.Repository,
	rules *automationrepo.Repository,
	policy *assignment.Policy,
	bus events.Bus,
	log *logger.Logger,
) *Service {
	return &Service{
		repo:    repo,
		agents:  agents,
		catalog: catalog,
		rules:   rules,
		policy:  policy,
		engine:  engine.NewEngine(policy),
		bus:     bus,
		log:     log,
	}
}

// CreateLead builds the lead, assigns it, runs the automation rules for the
// creation trigger and commits everything in one transaction. Only after the
// commit does the created event go out; message delivery rides on it and is
// best effort.
func (s *Service) CreateLead(ctx context.Context, req transport.CreateLeadRequest) (domain.Lead, []engine.Run, error) {
	const op = "leads.CreateLead"

	var propertyID *uuid.UUID
	if req.PropertyID != "" {
		parsed, err := uuid.Parse(req.PropertyID)
		if err != nil {
			return domain.Lead{}, nil, apperr.Validation("invalid property id").WithOp(op)
		}
		propertyID = &parsed
	}

	var (
		property *catalogrepo.Property
		roster   []agentrepo.Agent
		rules    []engine.Rule
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if propertyID == nil {
			return nil
		}
		p, err := s.catalog.GetByID(gctx, *propertyID)
		if err != nil {
			if errors.Is(err, catalogrepo.ErrNotFound) {
				return apperr.Validation("property not found").WithOp(op)
			}
			return err
		}
		property = &p
		return nil
	})
	g.Go(func() error {
		var err error
		roster, err = s.agents.List(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		rules, err = s.rules.ListRules(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		var appErr *apperr.Error
		if errors.As(err, &appErr) {
			return domain.Lead{}, nil, err
		}
		s.log.DatabaseError(op, err)
		return domain.Lead{}, nil, apperr.Wrap(apperr.KindInternal, "could not load lead context", err).WithOp(op)
	}

	now := time.Now()
	lead := domain.Lead{
		ID:                    uuid.New(),
		CreatedAt:             now,
		Name:                  req.Name,
		Email:                 req.Email,
		Phone:                 phone.NormalizeE164(req.Phone),
		Message:               req.Message,
		PropertyID:            propertyID,
		PreferredDistrict:     req.PreferredDistrict,
		PreferredMunicipality: req.PreferredMunicipality,
		PreferredTypology:     req.PreferredTypology,
		MaxBudgetEur:          req.MaxBudgetEur,
		Stage:                 domain.StageNew,
		Temperature:           domain.TemperatureCold,
	}

	assigned, err := s.policy.Assign(ctx, roster, assignment.Input{
		PreferredMunicipality: lead.PreferredMunicipality,
		Property:              property,
	})
	if err != nil {
		s.log.DatabaseError(op, err)
		return domain.Lead{}, nil, apperr.Wrap(apperr.KindInternal, "could not assign lead", err).WithOp(op)
	}
	if assigned != nil {
		lead.AssignedAgentID = &assigned.ID
	} else {
		s.log.AssignmentExhausted(assignment.TargetMunicipality(assignment.Input{
			PreferredMunicipality: lead.PreferredMunicipality,
			Property:              property,
		}))
	}

	detail := "Pedido genérico"
	if property != nil {
		detail = "Interesse no imóvel " + property.Title
	}
	lead.PrependActivity(domain.NewActivity(domain.ActivityLeadCreated, "Lead criado", detail, now))

	result, err := s.engine.Run(ctx, engine.RunParams{
		Lead:          &lead,
		Agents:        roster,
		AssignedAgent: assigned,
		Property:      property,
		Rules:         rules,
		Trigger:       engine.TriggerLeadCreated,
		Now:           now,
	})
	if err != nil {
		s.log.DatabaseError(op, err)
		return domain.Lead{}, nil, apperr.Wrap(apperr.KindInternal, "automation failed", err).WithOp(op)
	}

	tx, err := s.repo.Begin(ctx)
	if err != nil {
		s.log.DatabaseError(op, err)
		return domain.Lead{}, nil, apperr.Wrap(apperr.KindInternal, "could not save lead", err).WithOp(op)
	}
	defer tx.Rollback(ctx)

	if err := s.repo.InsertLead(ctx, tx, lead); err != nil {
		s.log.DatabaseError(op, err)
		return domain.Lead{}, nil, apperr.Wrap(apperr.KindInternal, "could not save lead", err).WithOp(op)
	}
	if err := s.rules.InsertRuns(ctx, tx, result.Runs); err != nil {
		s.log.DatabaseError(op, err)
		return domain.Lead{}, nil, apperr.Wrap(apperr.KindInternal, "could not save lead", err).WithOp(op)
	}
	if err := tx.Commit(ctx); err != nil {
		s.log.DatabaseError(op, err)
		return domain.Lead{}, nil, apperr.Wrap(apperr.KindInternal, "could not save lead", err).WithOp(op)
	}

	if err := s.rules.TrimRuns(ctx); err != nil {
		s.log.DatabaseError(op, err)
	}

	s.log.LeadCommitted(lead.ID.String(), lead.AssignedAgentID != nil, string(lead.Temperature), len(result.Runs))

	s.bus.Publish(ctx, events.LeadCreated{
		BaseEvent:       events.NewBaseEvent(),
		LeadID:          lead.ID,
		Name:            lead.Name,
		Email:           lead.Email,
		Phone:           lead.Phone,
		AssignedAgentID: lead.AssignedAgentID,
		Temperature:     string(lead.Temperature),
		Messages:        result.Messages,
	})

	return lead, result.Runs, nil
}

// SetStage overwrites the pipeline stage. No transition graph is enforced;
// the CRM trusts its users and keeps the audit in the timeline.
func (s *Service) SetStage(ctx context.Context, id uuid.UUID, stage domain.Stage) (domain.Lead, error) {
	const op = "leads.SetStage"

	activity := domain.NewActivity(domain.ActivityAutomation,
		"Estado do pipeline actualizado",
		"Novo estado: "+string(stage), time.Now())

	if err := s.repo.UpdateStage(ctx, id, stage, activity); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.Lead{}, ErrLeadNotFound
		}
		s.log.DatabaseError(op, err)
		return domain.Lead{}, apperr.Wrap(apperr.KindInternal, "could not update stage", err).WithOp(op)
	}

	s.bus.Publish(ctx, events.LeadStageChanged{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    id,
		NewStage:  string(stage),
	})

	return s.Get(ctx, id)
}

// AddActivity appends a caller-supplied timeline entry verbatim.
func (s *Service) AddActivity(ctx context.Context, id uuid.UUID, kind domain.ActivityKind, title, detail string) (domain.Lead, error) {
	const op = "leads.AddActivity"

	activity := domain.NewActivity(kind, title, detail, time.Now())
	if err := s.repo.AddActivity(ctx, id, activity); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.Lead{}, ErrLeadNotFound
		}
		s.log.DatabaseError(op, err)
		return domain.Lead{}, apperr.Wrap(apperr.KindInternal, "could not add activity", err).WithOp(op)
	}

	return s.Get(ctx, id)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (domain.Lead, error) {
	lead, err := s.repo.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return domain.Lead{}, ErrLeadNotFound
	}
	return lead, err
}

func (s *Service) List(ctx context.Context) ([]domain.Lead, error) {
	return s.repo.List(ctx)
}
