package service

import (
	"atlascasa_backend/internal/campaigns/repository"
	"atlascasa_backend/internal/leads/domain"
)

// Matches reports whether a lead falls inside the campaign segment. Empty
// filters match everything, so a blank segment targets the whole book.
func Matches(lead domain.Lead, segment repository.Segment) bool {
	if !matchesAny(lead.PreferredDistrict, segment.Districts) {
		return false
	}
	if !matchesAny(lead.PreferredMunicipality, segment.Municipalities) {
		return false
	}
	if !matchesAny(lead.PreferredTypology, segment.Typologies) {
		return false
	}

	if segment.PriceMin != nil || segment.PriceMax != nil {
		if lead.MaxBudgetEur == nil {
			return false
		}
		if segment.PriceMin != nil && *lead.MaxBudgetEur < *segment.PriceMin {
			return false
		}
		if segment.PriceMax != nil && *lead.MaxBudgetEur > *segment.PriceMax {
			return false
		}
	}

	return true
}

// Audience filters leads through the segment, preserving order.
func Audience(leads []domain.Lead, segment repository.Segment) []domain.Lead {
	matched := make([]domain.Lead, 0, len(leads))
	for _, l := range leads {
		if Matches(l, segment) {
			matched = append(matched, l)
		}
	}
	return matched
}

func matchesAny(value string, filter []string) bool {
	if len(filter) == 0 {
		return true
	}
	for _, f := range filter {
		if f == value {
			return true
		}
	}
	return false
}
