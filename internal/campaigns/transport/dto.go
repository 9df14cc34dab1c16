package transport

import (
	"time"

	"atlascasa_backend/internal/campaigns/repository"

	"github.com/google/uuid"
)

type SegmentRequest struct {
	Districts      []string `json:"districts"`
	Municipalities []string `json:"municipalities"`
	Typologies     []string `json:"typologies"`
	PriceMin       *float64 `json:"priceMin" validate:"omitempty,gte=0"`
	PriceMax       *float64 `json:"priceMax" validate:"omitempty,gte=0"`
}

type SaveCampaignRequest struct {
	Name      string         `json:"name" validate:"required,max=120"`
	Subject   string         `json:"subject" validate:"required,max=200"`
	FromName  string         `json:"fromName" validate:"max=120"`
	FromEmail string         `json:"fromEmail" validate:"omitempty,email"`
	HTML      string         `json:"html"`
	Segment   SegmentRequest `json:"segment"`
}

func (r SaveCampaignRequest) ToParams() repository.SaveCampaignParams {
	return repository.SaveCampaignParams{
		Name:      r.Name,
		Subject:   r.Subject,
		FromName:  r.FromName,
		FromEmail: r.FromEmail,
		HTML:      r.HTML,
		Segment: repository.Segment{
			Districts:      r.Segment.Districts,
			Municipalities: r.Segment.Municipalities,
			Typologies:     r.Segment.Typologies,
			PriceMin:       r.Segment.PriceMin,
			PriceMax:       r.Segment.PriceMax,
		},
	}
}

type CampaignResponse struct {
	ID        uuid.UUID          `json:"id"`
	CreatedAt time.Time          `json:"createdAt"`
	Name      string             `json:"name"`
	Subject   string             `json:"subject"`
	FromName  string             `json:"fromName,omitempty"`
	FromEmail string             `json:"fromEmail,omitempty"`
	HTML      string             `json:"html,omitempty"`
	Segment   repository.Segment `json:"segment"`
	Stats     repository.Stats   `json:"stats"`
}

func ToCampaignResponse(c repository.Campaign) CampaignResponse {
	return CampaignResponse{
		ID:        c.ID,
		CreatedAt: c.CreatedAt,
		Name:      c.Name,
		Subject:   c.Subject,
		FromName:  c.FromName,
		FromEmail: c.FromEmail,
		HTML:      c.HTML,
		Segment:   c.Segment,
		Stats:     c.Stats,
	}
}

type AudienceResponse struct {
	Audience int `json:"audience"`
}
