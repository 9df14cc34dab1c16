package transport

import (
	"testing"

	"atlascasa_backend/internal/agents/repository"
	"atlascasa_backend/platform/validator"
)

// Every role the repository knows (including the seeded directory) must
// round-trip through request validation; the Portuguese labels the
// storefront shows are presentation only.
func TestAgentRoleVocabularyRoundTrips(t *testing.T) {
	val := validator.New()

	for _, role := range []string{repository.RoleAdmin, repository.RoleManager, repository.RoleConsultant} {
		req := CreateAgentRequest{
			Name:           "Ana Ribeiro",
			Role:           role,
			Municipalities: []string{"Lisboa"},
			WhatsAppPhone:  "+351912345678",
			Email:          "ana.ribeiro@atlascasa.pt",
		}
		if err := val.Struct(req); err != nil {
			t.Errorf("role %q rejected by create validation: %v", role, err)
		}

		update := UpdateAgentRequest{Role: &req.Role}
		if err := val.Struct(update); err != nil {
			t.Errorf("role %q rejected by update validation: %v", role, err)
		}
	}

	for _, role := range []string{"gestor", "consultor", "owner"} {
		role := role
		update := UpdateAgentRequest{Role: &role}
		if err := val.Struct(update); err == nil {
			t.Errorf("role %q should not validate", role)
		}
	}
}
