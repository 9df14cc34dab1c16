package engine

import (
	"context"
	"testing"
	"time"

	agentrepo "atlascasa_backend/internal/agents/repository"
	catalogrepo "atlascasa_backend/internal/catalog/repository"
	"atlascasa_backend/internal/events"
	"atlascasa_backend/internal/leads/assignment"
	"atlascasa_backend/internal/leads/domain"

	"github.com/google/uuid"
)

func testEngine() *Engine {
	return NewEngine(assignment.NewPolicy(assignment.NewMemoryCounterStore(), assignment.GlobalCursor{}))
}

func hotLead() *domain.Lead {
	return &domain.Lead{
		ID:          uuid.New(),
		Name:        "Maria Santos",
		Email:       "maria@example.pt",
		Phone:       "+351 912 345 678",
		Message:     "Gostaria de visitar o imóvel este fim de semana",
		Stage:       domain.StageNew,
		Temperature: domain.TemperatureCold,
	}
}

func testRoster() []agentrepo.Agent {
	return []agentrepo.Agent{
		{ID: uuid.New(), Name: "Admin", Role: agentrepo.RoleAdmin},
		{ID: uuid.New(), Name: "João Pereira", Role: agentrepo.RoleConsultant, Municipalities: []string{"Lisboa"}},
		{ID: uuid.New(), Name: "Rita Lopes", Role: agentrepo.RoleConsultant, Municipalities: []string{"Porto"}},
	}
}

func TestEngineRunsDefaultRule(t *testing.T) {
	lead := hotLead()
	property := &catalogrepo.Property{ID: uuid.New(), Title: "T2 em Alvalade", Municipality: "Lisboa", PriceEur: 350000}

	rule := Rule{
		ID:      uuid.New(),
		Name:    "Boas-vindas a novas leads",
		Enabled: true,
		Trigger: TriggerLeadCreated,
		Actions: []Action{
			{Type: ActionAssignRoundRobin},
			{Type: ActionSendWhatsApp, Template: "Olá {{nome}}, sou o agente {{agente}}."},
			{Type: ActionAIQualifyLead},
		},
	}

	result, err := testEngine().Run(context.Background(), RunParams{
		Lead:     lead,
		Agents:   testRoster(),
		Property: property,
		Rules:    []Rule{rule},
		Trigger:  TriggerLeadCreated,
	})
	if err != nil {
		t.Fatal(err)
	}

	if len(result.Runs) != 1 {
		t.Fatalf("expected one run, got %d", len(result.Runs))
	}
	wantSummary := "Boas-vindas a novas leads — atribuição, WhatsApp, qualificação"
	if result.Runs[0].Summary != wantSummary {
		t.Errorf("summary = %q, want %q", result.Runs[0].Summary, wantSummary)
	}

	// Lisboa coverage narrows the pool to João before the rotation starts.
	if lead.AssignedAgentID == nil {
		t.Fatal("expected the lead to be assigned")
	}
	if lead.Temperature != domain.TemperatureHot {
		t.Errorf("temperature = %q, want hot", lead.Temperature)
	}

	if len(lead.Activities) != 2 {
		t.Fatalf("expected 2 activities, got %d", len(lead.Activities))
	}
	if lead.Activities[0].Title != "Qualificação (IA demo)" {
		t.Errorf("newest activity = %q, want qualification", lead.Activities[0].Title)
	}
	if lead.Activities[1].Title != "WhatsApp (automação)" {
		t.Errorf("second activity = %q, want whatsapp", lead.Activities[1].Title)
	}
	wantBody := "Olá Maria Santos, sou o agente João Pereira."
	if lead.Activities[1].Detail != wantBody {
		t.Errorf("whatsapp body = %q, want %q", lead.Activities[1].Detail, wantBody)
	}

	if len(result.Messages) != 1 {
		t.Fatalf("expected one outbound message, got %d", len(result.Messages))
	}
	if result.Messages[0].Channel != events.ChannelWhatsApp || result.Messages[0].Body != wantBody {
		t.Errorf("unexpected outbound message %+v", result.Messages[0])
	}
}

func TestEngineSkipsDisabledAndMismatchedRules(t *testing.T) {
	lead := hotLead()
	rules := []Rule{
		{ID: uuid.New(), Name: "Desactivada", Enabled: false, Trigger: TriggerLeadCreated,
			Actions: []Action{{Type: ActionSendWhatsApp, Template: "x"}}},
		{ID: uuid.New(), Name: "Outro trigger", Enabled: true, Trigger: "stage_changed",
			Actions: []Action{{Type: ActionSendWhatsApp, Template: "x"}}},
	}

	result, err := testEngine().Run(context.Background(), RunParams{
		Lead:    lead,
		Rules:   rules,
		Trigger: TriggerLeadCreated,
	})
	if err != nil {
		t.Fatal(err)
	}

	if len(result.Runs) != 0 {
		t.Errorf("expected no runs, got %d", len(result.Runs))
	}
	if len(lead.Activities) != 0 {
		t.Errorf("expected no activities, got %d", len(lead.Activities))
	}
}

func TestEngineAssignIsIdempotent(t *testing.T) {
	existing := uuid.New()
	lead := hotLead()
	lead.AssignedAgentID = &existing

	rule := Rule{
		ID: uuid.New(), Name: "Atribuir", Enabled: true, Trigger: TriggerLeadCreated,
		Actions: []Action{{Type: ActionAssignRoundRobin}},
	}

	result, err := testEngine().Run(context.Background(), RunParams{
		Lead:    lead,
		Agents:  testRoster(),
		Rules:   []Rule{rule},
		Trigger: TriggerLeadCreated,
	})
	if err != nil {
		t.Fatal(err)
	}

	if *lead.AssignedAgentID != existing {
		t.Error("an already assigned lead must keep its agent")
	}
	// The label still shows even when the action was a no-op.
	if result.Runs[0].Summary != "Atribuir — atribuição" {
		t.Errorf("summary = %q", result.Runs[0].Summary)
	}
}

func TestEngineUnknownActionsAreSkipped(t *testing.T) {
	lead := hotLead()
	rule := Rule{
		ID: uuid.New(), Name: "Futuro", Enabled: true, Trigger: TriggerLeadCreated,
		Actions: []Action{
			{Type: "post_to_social"},
			{Type: ActionSendEmail, Subject: "Olá {{nome}}", Body: "Obrigado pelo contacto."},
		},
	}

	result, err := testEngine().Run(context.Background(), RunParams{
		Lead:    lead,
		Rules:   []Rule{rule},
		Trigger: TriggerLeadCreated,
	})
	if err != nil {
		t.Fatal(err)
	}

	if result.Runs[0].Summary != "Futuro — e-mail" {
		t.Errorf("summary = %q, unknown actions must not contribute labels", result.Runs[0].Summary)
	}
	if len(lead.Activities) != 1 {
		t.Fatalf("expected one activity, got %d", len(lead.Activities))
	}
	if lead.Activities[0].Title != "E-mail (automação): Olá Maria Santos" {
		t.Errorf("email activity title = %q", lead.Activities[0].Title)
	}
}

func TestEngineSummaryDeduplicatesLabels(t *testing.T) {
	lead := hotLead()
	rule := Rule{
		ID: uuid.New(), Name: "Sequência", Enabled: true, Trigger: TriggerLeadCreated,
		Actions: []Action{
			{Type: ActionSendWhatsApp, Template: "primeira"},
			{Type: ActionSendWhatsApp, Template: "segunda"},
		},
	}

	result, err := testEngine().Run(context.Background(), RunParams{
		Lead:    lead,
		Rules:   []Rule{rule},
		Trigger: TriggerLeadCreated,
	})
	if err != nil {
		t.Fatal(err)
	}

	if result.Runs[0].Summary != "Sequência — WhatsApp" {
		t.Errorf("summary = %q, labels must be distinct", result.Runs[0].Summary)
	}
	// Both actions still fired.
	if len(lead.Activities) != 2 || len(result.Messages) != 2 {
		t.Errorf("expected both sends to fire: %d activities, %d messages",
			len(lead.Activities), len(result.Messages))
	}
}

func TestEngineActionOrderAffectsTemplates(t *testing.T) {
	lead := hotLead()
	rule := Rule{
		ID: uuid.New(), Name: "Ordem", Enabled: true, Trigger: TriggerLeadCreated,
		Actions: []Action{
			{Type: ActionSendWhatsApp, Template: "{{agente}}"},
			{Type: ActionAssignRoundRobin},
			{Type: ActionSendWhatsApp, Template: "{{agente}}"},
		},
	}

	result, err := testEngine().Run(context.Background(), RunParams{
		Lead:    lead,
		Agents:  testRoster(),
		Rules:   []Rule{rule},
		Trigger: TriggerLeadCreated,
	})
	if err != nil {
		t.Fatal(err)
	}

	if result.Messages[0].Body != "Equipa AtlasCasa" {
		t.Errorf("pre-assignment render = %q, want team fallback", result.Messages[0].Body)
	}
	if result.Messages[1].Body != "João Pereira" {
		t.Errorf("post-assignment render = %q, want agent name", result.Messages[1].Body)
	}
}

func TestEngineFallbackClassificationWhenNoQualifyRan(t *testing.T) {
	lead := hotLead()
	property := &catalogrepo.Property{ID: uuid.New(), PriceEur: 300000}

	rule := Rule{
		ID: uuid.New(), Name: "Só mensagem", Enabled: true, Trigger: TriggerLeadCreated,
		Actions: []Action{{Type: ActionSendWhatsApp, Template: "Olá"}},
	}

	_, err := testEngine().Run(context.Background(), RunParams{
		Lead:     lead,
		Property: property,
		Rules:    []Rule{rule},
		Trigger:  TriggerLeadCreated,
	})
	if err != nil {
		t.Fatal(err)
	}

	if lead.Temperature != domain.TemperatureHot {
		t.Errorf("temperature = %q, want the fallback classification", lead.Temperature)
	}
	// The silent fallback leaves no qualification activity.
	for _, a := range lead.Activities {
		if a.Title == "Qualificação (IA demo)" {
			t.Error("fallback classification must not append an activity")
		}
	}
}

func TestEngineMultipleRulesOneRunEach(t *testing.T) {
	lead := hotLead()
	now := time.Now()
	rules := []Rule{
		{ID: uuid.New(), Name: "Primeira", Enabled: true, Trigger: TriggerLeadCreated,
			Actions: []Action{{Type: ActionAssignRoundRobin}}},
		{ID: uuid.New(), Name: "Segunda", Enabled: true, Trigger: TriggerLeadCreated,
			Actions: []Action{{Type: ActionSendEmail, Subject: "s", Body: "b"}}},
	}

	result, err := testEngine().Run(context.Background(), RunParams{
		Lead:    lead,
		Agents:  testRoster(),
		Rules:   rules,
		Trigger: TriggerLeadCreated,
		Now:     now,
	})
	if err != nil {
		t.Fatal(err)
	}

	if len(result.Runs) != 2 {
		t.Fatalf("expected one run per rule, got %d", len(result.Runs))
	}
	if result.Runs[0].RuleID != rules[0].ID || result.Runs[1].RuleID != rules[1].ID {
		t.Error("runs must preserve rule order")
	}
	for _, run := range result.Runs {
		if run.LeadID != lead.ID.String() {
			t.Errorf("run lead id = %q, want %q", run.LeadID, lead.ID.String())
		}
		if !run.Timestamp.Equal(now) {
			t.Errorf("run timestamp = %v, want %v", run.Timestamp, now)
		}
	}
}
