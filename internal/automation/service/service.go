package service

import (
	"context"
	"errors"
	"time"

	"atlascasa_backend/internal/automation/engine"
	"atlascasa_backend/internal/automation/repository"
	"atlascasa_backend/internal/automation/transport"
	"atlascasa_backend/internal/leads/assignment"
	"atlascasa_backend/internal/leads/domain"
	"atlascasa_backend/platform/apperr"
	"atlascasa_backend/platform/logger"

	"github.com/google/uuid"
)

var ErrRuleNotFound = errors.New("automation rule not found")

// The manual run exercises a rule against a throwaway demo lead; the fixed
// lead id keeps demo runs recognizable in the audit trail.
const demoLeadID = "lead_demo"

type Service struct {
	repo *repository.Repository
	log  *logger.Logger
}

func New(repo *repository.Repository, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

func (s *Service) ListRules(ctx context.Context) ([]engine.Rule, error) {
	return s.repo.ListRules(ctx)
}

func (s *Service) ListRuns(ctx context.Context, limit int) ([]engine.Run, error) {
	return s.repo.ListRuns(ctx, limit)
}

// ReplaceRules swaps the entire rule set. Incoming rules without an id get
// one; authored order becomes evaluation order.
func (s *Service) ReplaceRules(ctx context.Context, reqs []transport.RuleRequest) ([]engine.Rule, error) {
	const op = "automation.ReplaceRules"

	rules := make([]engine.Rule, len(reqs))
	for i, req := range reqs {
		id := uuid.New()
		if req.ID != "" {
			parsed, err := uuid.Parse(req.ID)
			if err != nil {
				return nil, apperr.Validation("invalid rule id").WithOp(op)
			}
			id = parsed
		}

		actions := make([]engine.Action, len(req.Actions))
		for j, a := range req.Actions {
			actions[j] = engine.Action{
				Type:     a.Type,
				Template: a.Template,
				Subject:  a.Subject,
				Body:     a.Body,
			}
		}

		rules[i] = engine.Rule{
			ID:      id,
			Name:    req.Name,
			Enabled: req.Enabled,
			Trigger: req.Trigger,
			Actions: actions,
		}
	}

	if err := s.repo.ReplaceRules(ctx, rules); err != nil {
		s.log.DatabaseError(op, err)
		return nil, apperr.Wrap(apperr.KindInternal, "could not save rules", err).WithOp(op)
	}
	return rules, nil
}

// RunRuleManually fires one rule against a demo lead so a CRM user can check
// what it would do. Nothing touches real leads and the production assignment
// rotation does not advance; only the audit record is persisted.
func (s *Service) RunRuleManually(ctx context.Context, ruleID uuid.UUID) (engine.Run, error) {
	const op = "automation.RunRuleManually"

	rule, err := s.repo.GetRule(ctx, ruleID)
	if err != nil {
		if errors.Is(err, repository.ErrRuleNotFound) {
			return engine.Run{}, ErrRuleNotFound
		}
		s.log.DatabaseError(op, err)
		return engine.Run{}, apperr.Wrap(apperr.KindInternal, "could not load rule", err).WithOp(op)
	}

	// Disabled rules still run on request; the demo is how you test a rule
	// before enabling it.
	demoRule := rule
	demoRule.Enabled = true
	demoRule.Trigger = engine.TriggerLeadCreated

	lead := &domain.Lead{
		ID:          uuid.New(),
		Name:        "Maria Demonstração",
		Email:       "demo@atlascasa.pt",
		Phone:       "+351 910 000 000",
		Message:     "Execução de demonstração a partir do CRM",
		Stage:       domain.StageNew,
		Temperature: domain.TemperatureCold,
	}

	eng := engine.NewEngine(assignment.NewPolicy(assignment.NewMemoryCounterStore(), assignment.GlobalCursor{}))
	if _, err := eng.Run(ctx, engine.RunParams{
		Lead:    lead,
		Rules:   []engine.Rule{demoRule},
		Trigger: engine.TriggerLeadCreated,
	}); err != nil {
		return engine.Run{}, apperr.Wrap(apperr.KindInternal, "rule execution failed", err).WithOp(op)
	}

	run := engine.Run{
		ID:        uuid.New(),
		RuleID:    rule.ID,
		LeadID:    demoLeadID,
		Timestamp: time.Now(),
		Summary:   rule.Name + " — execução manual (demo)",
	}

	if err := s.repo.InsertRuns(ctx, s.repo.Pool(), []engine.Run{run}); err != nil {
		s.log.DatabaseError(op, err)
		return engine.Run{}, apperr.Wrap(apperr.KindInternal, "could not record run", err).WithOp(op)
	}
	if err := s.repo.TrimRuns(ctx); err != nil {
		s.log.DatabaseError(op, err)
	}

	return run, nil
}
