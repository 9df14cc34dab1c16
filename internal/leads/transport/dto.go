package transport

import (
	"time"

	automationtransport "atlascasa_backend/internal/automation/transport"
	"atlascasa_backend/internal/leads/domain"

	"github.com/google/uuid"
)

type CreateLeadRequest struct {
	Name                  string   `json:"name" validate:"required,max=120"`
	Email                 string   `json:"email" validate:"required,email"`
	Phone                 string   `json:"phone" validate:"required,max=32"`
	Message               string   `json:"message" validate:"max=2000"`
	PropertyID            string   `json:"propertyId" validate:"omitempty,uuid"`
	PreferredDistrict     string   `json:"preferredDistrict" validate:"max=80"`
	PreferredMunicipality string   `json:"preferredMunicipality" validate:"max=80"`
	PreferredTypology     string   `json:"preferredTypology" validate:"max=10"`
	MaxBudgetEur          *float64 `json:"maxBudgetEur" validate:"omitempty,gte=0"`
}

type SetStageRequest struct {
	Stage string `json:"stage" validate:"required,oneof=New Contacted Visit_Scheduled Proposal Closed"`
}

type AddActivityRequest struct {
	Kind   string `json:"kind" validate:"required,oneof=note email whatsapp task automation"`
	Title  string `json:"title" validate:"required,max=200"`
	Detail string `json:"detail" validate:"max=2000"`
}

type ActivityResponse struct {
	ID         uuid.UUID `json:"id"`
	Kind       string    `json:"kind"`
	OccurredAt time.Time `json:"occurredAt"`
	Title      string    `json:"title"`
	Detail     string    `json:"detail,omitempty"`
}

type LeadResponse struct {
	ID                    uuid.UUID          `json:"id"`
	CreatedAt             time.Time          `json:"createdAt"`
	Name                  string             `json:"name"`
	Email                 string             `json:"email"`
	Phone                 string             `json:"phone"`
	Message               string             `json:"message,omitempty"`
	PropertyID            *uuid.UUID         `json:"propertyId,omitempty"`
	PreferredDistrict     string             `json:"preferredDistrict,omitempty"`
	PreferredMunicipality string             `json:"preferredMunicipality,omitempty"`
	PreferredTypology     string             `json:"preferredTypology,omitempty"`
	MaxBudgetEur          *float64           `json:"maxBudgetEur,omitempty"`
	Stage                 string             `json:"stage"`
	Temperature           string             `json:"temperature"`
	AssignedAgentID       *uuid.UUID         `json:"assignedAgentId,omitempty"`
	Activities            []ActivityResponse `json:"activities"`
}

func ToLeadResponse(l domain.Lead) LeadResponse {
	activities := make([]ActivityResponse, len(l.Activities))
	for i, a := range l.Activities {
		activities[i] = ActivityResponse{
			ID:         a.ID,
			Kind:       string(a.Kind),
			OccurredAt: a.OccurredAt,
			Title:      a.Title,
			Detail:     a.Detail,
		}
	}

	return LeadResponse{
		ID:                    l.ID,
		CreatedAt:             l.CreatedAt,
		Name:                  l.Name,
		Email:                 l.Email,
		Phone:                 l.Phone,
		Message:               l.Message,
		PropertyID:            l.PropertyID,
		PreferredDistrict:     l.PreferredDistrict,
		PreferredMunicipality: l.PreferredMunicipality,
		PreferredTypology:     l.PreferredTypology,
		MaxBudgetEur:          l.MaxBudgetEur,
		Stage:                 string(l.Stage),
		Temperature:           string(l.Temperature),
		AssignedAgentID:       l.AssignedAgentID,
		Activities:            activities,
	}
}

// CreateLeadResponse returns the committed lead together with the automation
// runs its creation produced.
type CreateLeadResponse struct {
	Lead LeadResponse            `json:"lead"`
	Runs []automationtransport.RunResponse `json:"runs"`
}
