// Package engine implements the lead automation rule engine: ordered rules
// with ordered actions, evaluated synchronously when a lead is created, each
// run leaving an audit record.
package engine

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const TriggerLeadCreated = "lead_created"

// Action type discriminators. Unknown types are preserved on load and
// skipped at execution time, so newer rule documents keep working.
const (
	ActionAssignRoundRobin = "assign_round_robin"
	ActionSendWhatsApp     = "send_whatsapp"
	ActionSendMessage      = "send_message"
	ActionSendEmail        = "send_email"
	ActionAIQualifyLead    = "ai_qualify_lead"
)

// Action is one step of a rule. Which fields are meaningful depends on Type:
// whatsapp carries Template, email carries Subject and Body, the rest carry
// nothing.
type Action struct {
	Type     string `json:"type"`
	Template string `json:"template,omitempty"`
	Subject  string `json:"subject,omitempty"`
	Body     string `json:"body,omitempty"`
}

type Rule struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Enabled bool      `json:"enabled"`
	Trigger string    `json:"trigger"`
	Actions []Action  `json:"actions"`
}

// Run is the audit record of one rule execution: one per rule, not per
// action.
type Run struct {
	ID        uuid.UUID
	RuleID    uuid.UUID
	LeadID    string
	Timestamp time.Time
	Summary   string
}

// ActionsJSON round-trips the ordered action list for JSONB storage.
func ActionsJSON(actions []Action) ([]byte, error) {
	return json.Marshal(actions)
}

func ActionsFromJSON(raw []byte) ([]Action, error) {
	var actions []Action
	if err := json.Unmarshal(raw, &actions); err != nil {
		return nil, err
	}
	return actions, nil
}
