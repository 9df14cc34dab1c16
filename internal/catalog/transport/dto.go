package transport

import (
	"time"

	"atlascasa_backend/internal/catalog/repository"

	"github.com/google/uuid"
)

// PropertyResponse is the public view of a catalog property.
type PropertyResponse struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	Slug         string    `json:"slug"`
	Kind         string    `json:"kind"`
	Purpose      string    `json:"purpose"`
	Typology     string    `json:"typology"`
	PriceEur     float64   `json:"priceEur"`
	District     string    `json:"district"`
	Municipality string    `json:"municipality"`
	Parish       string    `json:"parish"`
	AreaM2       float64   `json:"areaM2"`
	Bedrooms     int       `json:"bedrooms"`
	Bathrooms    int       `json:"bathrooms"`
	Parking      int       `json:"parking"`
	EnergyRating string    `json:"energyRating"`
	Featured     bool      `json:"featured"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ToPropertyResponse maps a repository property to its transport shape.
func ToPropertyResponse(p repository.Property) PropertyResponse {
	return PropertyResponse{
		ID:           p.ID,
		Title:        p.Title,
		Slug:         p.Slug,
		Kind:         p.Kind,
		Purpose:      p.Purpose,
		Typology:     p.Typology,
		PriceEur:     p.PriceEur,
		District:     p.District,
		Municipality: p.Municipality,
		Parish:       p.Parish,
		AreaM2:       p.AreaM2,
		Bedrooms:     p.Bedrooms,
		Bathrooms:    p.Bathrooms,
		Parking:      p.Parking,
		EnergyRating: p.EnergyRating,
		Featured:     p.Featured,
		CreatedAt:    p.CreatedAt,
	}
}

// ToPropertyResponses maps a slice of repository properties.
func ToPropertyResponses(items []repository.Property) []PropertyResponse {
	out := make([]PropertyResponse, 0, len(items))
	for _, p := range items {
		out = append(out, ToPropertyResponse(p))
	}
	return out
}
