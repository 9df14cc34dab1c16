package transport

import (
	"time"

	"atlascasa_backend/internal/automation/engine"

	"github.com/google/uuid"
)

type RuleResponse struct {
	ID      uuid.UUID           `json:"id"`
	Name    string              `json:"name"`
	Enabled bool                `json:"enabled"`
	Trigger string              `json:"trigger"`
	Actions []engine.Action `json:"actions"`
}

func ToRuleResponse(rule engine.Rule) RuleResponse {
	return RuleResponse{
		ID:      rule.ID,
		Name:    rule.Name,
		Enabled: rule.Enabled,
		Trigger: rule.Trigger,
		Actions: rule.Actions,
	}
}

type ActionRequest struct {
	Type     string `json:"type" validate:"required"`
	Template string `json:"template"`
	Subject  string `json:"subject"`
	Body     string `json:"body"`
}

type RuleRequest struct {
	ID      string          `json:"id" validate:"omitempty,uuid"`
	Name    string          `json:"name" validate:"required,max=120"`
	Enabled bool            `json:"enabled"`
	Trigger string          `json:"trigger" validate:"required,oneof=lead_created"`
	Actions []ActionRequest `json:"actions" validate:"dive"`
}

type ReplaceRulesRequest struct {
	Rules []RuleRequest `json:"rules" validate:"dive"`
}

type RunResponse struct {
	ID        uuid.UUID `json:"id"`
	RuleID    uuid.UUID `json:"ruleId"`
	LeadID    string    `json:"leadId"`
	Timestamp time.Time `json:"timestamp"`
	Summary   string    `json:"summary"`
}

func ToRunResponse(run engine.Run) RunResponse {
	return RunResponse{
		ID:        run.ID,
		RuleID:    run.RuleID,
		LeadID:    run.LeadID,
		Timestamp: run.Timestamp,
		Summary:   run.Summary,
	}
}
