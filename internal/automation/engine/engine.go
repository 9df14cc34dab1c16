package engine

import (
	"context"
	"strings"
	"time"

	agentrepo "atlascasa_backend/internal/agents/repository"
	catalogrepo "atlascasa_backend/internal/catalog/repository"
	"atlascasa_backend/internal/events"
	"atlascasa_backend/internal/leads/assignment"
	"atlascasa_backend/internal/leads/domain"

	"github.com/google/uuid"
)

// fallbackAgentName is used in rendered templates when no agent is assigned
// yet at render time.
const fallbackAgentName = "Equipa AtlasCasa"

// Engine evaluates automation rules against a lead. It is stateless between
// invocations; one call covers one trigger firing for one lead and either
// completes fully or fails as a whole.
type Engine struct {
	policy *assignment.Policy
}

func NewEngine(policy *assignment.Policy) *Engine {
	return &Engine{policy: policy}
}

type RunParams struct {
	Lead          *domain.Lead
	Agents        []agentrepo.Agent
	AssignedAgent *agentrepo.Agent
	Property      *catalogrepo.Property
	Rules         []Rule
	Trigger       string
	Now           time.Time
}

type Result struct {
	// Runs holds one audit record per executed rule, in execution order.
	Runs []Run
	// Messages are the outbound deliveries the actions asked for. Delivery
	// happens after the lead is committed and is best effort.
	Messages []events.OutboundMessage
}

// Run executes every enabled rule matching the trigger, in rule order, with
// actions in authored order. The lead is mutated in place: activities are
// prepended, assignment and temperature may change. Unknown action types are
// skipped.
func (e *Engine) Run(ctx context.Context, params RunParams) (*Result, error) {
	lead := params.Lead
	assigned := params.AssignedAgent
	now := params.Now
	if now.IsZero() {
		now = time.Now()
	}

	result := &Result{}

	for _, rule := range params.Rules {
		if !rule.Enabled || rule.Trigger != params.Trigger {
			continue
		}

		var labels []string
		for _, action := range rule.Actions {
			switch action.Type {
			case ActionAssignRoundRobin:
				if lead.AssignedAgentID == nil {
					agent, err := e.policy.Assign(ctx, params.Agents, assignment.Input{
						PreferredMunicipality: lead.PreferredMunicipality,
						Property:              params.Property,
					})
					if err != nil {
						return nil, err
					}
					if agent != nil {
						lead.AssignedAgentID = &agent.ID
						assigned = agent
					}
				}
				labels = append(labels, "atribuição")

			case ActionSendWhatsApp, ActionSendMessage:
				body := RenderTemplate(action.Template, templateVars(lead, assigned, params.Property))
				lead.PrependActivity(domain.NewActivity(domain.ActivityWhatsApp, "WhatsApp (automação)", body, now))
				result.Messages = append(result.Messages, events.OutboundMessage{
					Channel: events.ChannelWhatsApp,
					Body:    body,
				})
				labels = append(labels, "WhatsApp")

			case ActionSendEmail:
				vars := templateVars(lead, assigned, params.Property)
				subject := RenderTemplate(action.Subject, vars)
				body := RenderTemplate(action.Body, vars)
				lead.PrependActivity(domain.NewActivity(domain.ActivityEmail, "E-mail (automação): "+subject, body, now))
				result.Messages = append(result.Messages, events.OutboundMessage{
					Channel: events.ChannelEmail,
					Subject: subject,
					Body:    body,
				})
				labels = append(labels, "e-mail")

			case ActionAIQualifyLead:
				// Classification reads the lead as it stands right now, so
				// earlier actions in the same rule influence the outcome.
				lead.Temperature = domain.Classify(*lead, params.Property)
				lead.PrependActivity(domain.NewActivity(domain.ActivityAutomation,
					"Qualificação (IA demo)",
					"Temperatura avaliada: "+string(lead.Temperature), now))
				labels = append(labels, "qualificação")

			default:
				// Unknown action types from newer rule documents are ignored.
			}
		}

		result.Runs = append(result.Runs, Run{
			ID:        uuid.New(),
			RuleID:    rule.ID,
			LeadID:    lead.ID.String(),
			Timestamp: now,
			Summary:   RunSummary(rule.Name, labels),
		})
	}

	// Every created lead leaves with a temperature reflecting its content.
	// If no qualify action ran, the lead still carries the cold default, so
	// classify once as a fallback.
	if lead.Temperature == domain.TemperatureCold {
		lead.Temperature = domain.Classify(*lead, params.Property)
	}

	return result, nil
}

// RunSummary renders the audit line for one rule execution: the rule name
// plus the distinct action labels in first-fired order.
func RunSummary(ruleName string, labels []string) string {
	seen := make(map[string]bool, len(labels))
	distinct := labels[:0:0]
	for _, l := range labels {
		if !seen[l] {
			seen[l] = true
			distinct = append(distinct, l)
		}
	}

	return ruleName + " — " + strings.Join(distinct, ", ")
}

func templateVars(lead *domain.Lead, assigned *agentrepo.Agent, property *catalogrepo.Property) map[string]string {
	agentName := fallbackAgentName
	if assigned != nil {
		agentName = assigned.Name
	}

	propertyTitle := ""
	if property != nil {
		propertyTitle = property.Title
	}

	// Both the Portuguese keys the stored templates use and their English
	// aliases resolve, so either vocabulary works in a rule document.
	return map[string]string{
		"nome":      lead.Name,
		"name":      lead.Name,
		"agente":    agentName,
		"agentName": agentName,
		"imovel":    propertyTitle,
		"property":  propertyTitle,
	}
}
