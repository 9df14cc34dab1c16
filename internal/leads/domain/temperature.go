package domain

import (
	"strings"
	"unicode/utf8"

	catalogrepo "atlascasa_backend/internal/catalog/repository"
	"atlascasa_backend/platform/phone"
)

const (
	hotThreshold  = 6
	warmThreshold = 4
)

// Classify derives a lead temperature from the lead's current content and the
// optionally linked property. Pure and idempotent; callers decide whether to
// store the result.
//
// Signals, all additive: a plausible phone number, a substantive message, a
// concrete property interest, and a usable budget figure.
func Classify(l Lead, property *catalogrepo.Property) Temperature {
	score := 0

	if phone.DigitCount(l.Phone) >= 9 {
		score += 2
	}
	// Characters, not bytes: accented Portuguese must not inflate length.
	if utf8.RuneCountInString(strings.TrimSpace(l.Message)) > 10 {
		score += 2
	}
	if property != nil {
		score += 2
	}

	var budget float64
	if l.MaxBudgetEur != nil {
		budget = *l.MaxBudgetEur
	} else if property != nil {
		budget = property.PriceEur
	}
	if budget > 0 {
		score++
	}

	switch {
	case score >= hotThreshold:
		return TemperatureHot
	case score >= warmThreshold:
		return TemperatureWarm
	default:
		return TemperatureCold
	}
}
