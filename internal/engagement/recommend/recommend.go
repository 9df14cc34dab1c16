// Package recommend ranks catalog properties against a visitor's interaction
// history. The scorer is pure: it never touches storage and is deterministic
// for a given catalog and event sequence.
package recommend

import (
	"math"
	"sort"

	catalogrepo "atlascasa_backend/internal/catalog/repository"

	"github.com/google/uuid"
)

const (
	KindView     = "view"
	KindFavorite = "favorite"
	KindContact  = "contact"
	KindCompare  = "compare"
)

// Event is the slice of an interaction the scorer cares about. Events must be
// supplied oldest first.
type Event struct {
	Kind       string
	PropertyID uuid.UUID
}

const (
	// Only the tail of the log carries current intent.
	recentWindow = 40
	// Up to this many of the most recently viewed properties join the
	// favorite/contact anchors.
	viewedAnchors = 5

	minPriceBand  = 15000.0
	priceBandFrac = 0.12
)

// Recommend returns up to limit properties ranked by similarity to the
// visitor's anchors. Properties already touched by any event are excluded,
// and only positive scores survive. Ties keep catalog order.
func Recommend(catalog []catalogrepo.Property, events []Event, limit int) []catalogrepo.Property {
	if limit <= 0 || len(catalog) == 0 {
		return nil
	}

	seen := make(map[uuid.UUID]bool, len(events))
	for _, ev := range events {
		seen[ev.PropertyID] = true
	}

	anchors := anchorSet(catalog, events)
	if len(anchors) == 0 {
		return nil
	}

	type scored struct {
		property catalogrepo.Property
		score    int
	}

	ranked := make([]scored, 0, len(catalog))
	for _, cand := range catalog {
		if seen[cand.ID] {
			continue
		}
		score := 0
		for _, anchor := range anchors {
			if anchor.ID == cand.ID {
				continue
			}
			score += similarity(cand, anchor)
		}
		if cand.Featured {
			score++
		}
		if score > 0 {
			ranked = append(ranked, scored{property: cand, score: score})
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	out := make([]catalogrepo.Property, len(ranked))
	for i, s := range ranked {
		out[i] = s.property
	}
	return out
}

// anchorSet resolves the properties that stand in for the visitor's taste:
// every favorited or contacted property (once each, first-appearance order)
// plus the last few viewed. Views keep their multiplicity, so a property
// viewed repeatedly, or liked and then viewed again, anchors once per
// occurrence and pulls the ranking harder.
func anchorSet(catalog []catalogrepo.Property, events []Event) []catalogrepo.Property {
	recent := events
	if len(recent) > recentWindow {
		recent = recent[len(recent)-recentWindow:]
	}

	byID := make(map[uuid.UUID]catalogrepo.Property, len(catalog))
	for _, p := range catalog {
		byID[p.ID] = p
	}

	var anchors []catalogrepo.Property
	liked := make(map[uuid.UUID]bool)
	for _, ev := range recent {
		if ev.Kind != KindFavorite && ev.Kind != KindContact {
			continue
		}
		if liked[ev.PropertyID] {
			continue
		}
		liked[ev.PropertyID] = true
		if p, ok := byID[ev.PropertyID]; ok {
			anchors = append(anchors, p)
		}
	}

	// Unresolvable views never consume a slot.
	var viewed []catalogrepo.Property
	for _, ev := range recent {
		if ev.Kind != KindView {
			continue
		}
		if p, ok := byID[ev.PropertyID]; ok {
			viewed = append(viewed, p)
		}
	}
	if len(viewed) > viewedAnchors {
		viewed = viewed[len(viewed)-viewedAnchors:]
	}
	return append(anchors, viewed...)
}

func similarity(cand, anchor catalogrepo.Property) int {
	score := 0
	if cand.District == anchor.District {
		score += 2
	}
	// Municipality match outweighs district: finer granularity, stronger
	// buying signal.
	if cand.Municipality == anchor.Municipality {
		score += 3
	}
	if cand.Typology == anchor.Typology {
		score += 2
	}
	if cand.Purpose == anchor.Purpose {
		score++
	}

	band := math.Max(minPriceBand, anchor.PriceEur*priceBandFrac)
	diff := math.Abs(cand.PriceEur - anchor.PriceEur)
	switch {
	case diff < band:
		score += 2
	case diff < 2*band:
		score++
	}

	return score
}
