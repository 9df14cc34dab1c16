package transport

import (
	"time"

	"atlascasa_backend/internal/agents/repository"

	"github.com/google/uuid"
)

// AgentResponse is the CRM view of a team member.
type AgentResponse struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Role           string    `json:"role"`
	Municipalities []string  `json:"municipalities"`
	WhatsAppPhone  string    `json:"whatsappPhone"`
	Email          string    `json:"email"`
	CreatedAt      time.Time `json:"createdAt"`
}

type CreateAgentRequest struct {
	Name           string   `json:"name" validate:"required,min=1,max=100"`
	Role           string   `json:"role" validate:"required,oneof=admin manager consultant"`
	Municipalities []string `json:"municipalities" validate:"required,min=1,dive,min=1"`
	WhatsAppPhone  string   `json:"whatsappPhone" validate:"required,min=5,max=20"`
	Email          string   `json:"email" validate:"required,email"`
}

type UpdateAgentRequest struct {
	Name           *string  `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Role           *string  `json:"role,omitempty" validate:"omitempty,oneof=admin manager consultant"`
	Municipalities []string `json:"municipalities,omitempty" validate:"omitempty,min=1,dive,min=1"`
	WhatsAppPhone  *string  `json:"whatsappPhone,omitempty" validate:"omitempty,min=5,max=20"`
	Email          *string  `json:"email,omitempty" validate:"omitempty,email"`
}

// ToAgentResponse maps a repository agent to its transport shape.
func ToAgentResponse(a repository.Agent) AgentResponse {
	return AgentResponse{
		ID:             a.ID,
		Name:           a.Name,
		Role:           a.Role,
		Municipalities: a.Municipalities,
		WhatsAppPhone:  a.WhatsAppPhone,
		Email:          a.Email,
		CreatedAt:      a.CreatedAt,
	}
}

// ToAgentResponses maps a slice of repository agents.
func ToAgentResponses(agents []repository.Agent) []AgentResponse {
	out := make([]AgentResponse, 0, len(agents))
	for _, a := range agents {
		out = append(out, ToAgentResponse(a))
	}
	return out
}
