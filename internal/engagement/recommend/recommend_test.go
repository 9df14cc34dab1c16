package recommend

import (
	"testing"

	catalogrepo "atlascasa_backend/internal/catalog/repository"

	"github.com/google/uuid"
)

func prop(title, district, municipality, typology, purpose string, price float64, featured bool) catalogrepo.Property {
	return catalogrepo.Property{
		ID:           uuid.New(),
		Title:        title,
		District:     district,
		Municipality: municipality,
		Typology:     typology,
		Purpose:      purpose,
		PriceEur:     price,
		Featured:     featured,
	}
}

func titles(props []catalogrepo.Property) []string {
	out := make([]string, len(props))
	for i, p := range props {
		out[i] = p.Title
	}
	return out
}

func TestRecommendNoAnchorsReturnsNothing(t *testing.T) {
	anchor := prop("anchor", "Lisboa", "Lisboa", "T2", "Venda", 300000, false)
	other := prop("other", "Lisboa", "Lisboa", "T2", "Venda", 310000, false)
	catalog := []catalogrepo.Property{anchor, other}

	if got := Recommend(catalog, nil, 10); len(got) != 0 {
		t.Fatalf("expected no recommendations for empty log, got %v", titles(got))
	}

	// Compare events never produce anchors.
	events := []Event{{Kind: KindCompare, PropertyID: anchor.ID}}
	if got := Recommend(catalog, events, 10); len(got) != 0 {
		t.Fatalf("expected no recommendations for compare-only log, got %v", titles(got))
	}
}

func TestRecommendExcludesSeenProperties(t *testing.T) {
	anchor := prop("anchor", "Lisboa", "Lisboa", "T2", "Venda", 300000, false)
	viewed := prop("viewed twin", "Lisboa", "Lisboa", "T2", "Venda", 300000, false)
	fresh := prop("fresh twin", "Lisboa", "Lisboa", "T2", "Venda", 300000, false)
	catalog := []catalogrepo.Property{anchor, viewed, fresh}

	events := []Event{
		{Kind: KindFavorite, PropertyID: anchor.ID},
		{Kind: KindView, PropertyID: viewed.ID},
	}

	got := Recommend(catalog, events, 10)
	if len(got) != 1 {
		t.Fatalf("expected exactly the unseen twin, got %v", titles(got))
	}
	if got[0].ID != fresh.ID {
		t.Errorf("expected %q, got %q", fresh.Title, got[0].Title)
	}
}

func TestRecommendMunicipalityOutweighsDistrict(t *testing.T) {
	anchor := prop("anchor", "Lisboa", "Cascais", "T2", "Venda", 300000, false)
	sameMunicipality := prop("same municipality", "Other", "Cascais", "T5", "Arrendamento", 900000, false)
	sameDistrict := prop("same district", "Lisboa", "Other", "T5", "Arrendamento", 900000, false)
	catalog := []catalogrepo.Property{anchor, sameDistrict, sameMunicipality}

	events := []Event{{Kind: KindContact, PropertyID: anchor.ID}}

	got := Recommend(catalog, events, 10)
	if len(got) != 2 {
		t.Fatalf("expected two recommendations, got %v", titles(got))
	}
	if got[0].ID != sameMunicipality.ID {
		t.Errorf("expected municipality match ranked first, got %q", got[0].Title)
	}
}

func TestRecommendPriceBands(t *testing.T) {
	// Band for a 300k anchor is max(15000, 36000) = 36000.
	anchor := prop("anchor", "A", "A", "T1", "Venda", 300000, false)
	inBand := prop("in band", "B", "B", "T9", "X", 330000, false)
	inDouble := prop("in double band", "B", "B", "T9", "X", 360001, false)
	outside := prop("outside", "B", "B", "T9", "X", 500000, false)
	catalog := []catalogrepo.Property{anchor, inBand, inDouble, outside}

	events := []Event{{Kind: KindFavorite, PropertyID: anchor.ID}}

	got := Recommend(catalog, events, 10)
	if len(got) != 2 {
		t.Fatalf("expected the two banded properties, got %v", titles(got))
	}
	if got[0].ID != inBand.ID || got[1].ID != inDouble.ID {
		t.Errorf("expected [in band, in double band], got %v", titles(got))
	}
}

func TestRecommendSmallAnchorUsesFloorBand(t *testing.T) {
	// 12% of 50k is 6000, so the 15000 floor applies.
	anchor := prop("anchor", "A", "A", "T1", "Venda", 50000, false)
	nearby := prop("nearby", "B", "B", "T9", "X", 64000, false)
	catalog := []catalogrepo.Property{anchor, nearby}

	events := []Event{{Kind: KindFavorite, PropertyID: anchor.ID}}

	got := Recommend(catalog, events, 10)
	if len(got) != 1 || got[0].ID != nearby.ID {
		t.Fatalf("expected the floor band to capture the nearby property, got %v", titles(got))
	}
}

func TestRecommendFeaturedBonusBreaksEqualProfiles(t *testing.T) {
	anchor := prop("anchor", "Lisboa", "Lisboa", "T2", "Venda", 300000, false)
	plain := prop("plain", "Lisboa", "Lisboa", "T2", "Venda", 305000, false)
	featured := prop("featured", "Lisboa", "Lisboa", "T2", "Venda", 305000, true)
	catalog := []catalogrepo.Property{anchor, plain, featured}

	events := []Event{{Kind: KindFavorite, PropertyID: anchor.ID}}

	got := Recommend(catalog, events, 10)
	if len(got) != 2 {
		t.Fatalf("expected two recommendations, got %v", titles(got))
	}
	if got[0].ID != featured.ID {
		t.Errorf("expected featured property first, got %q", got[0].Title)
	}
}

func TestRecommendTiesKeepCatalogOrder(t *testing.T) {
	anchor := prop("anchor", "Lisboa", "Lisboa", "T2", "Venda", 300000, false)
	first := prop("first", "Lisboa", "Lisboa", "T2", "Venda", 305000, false)
	second := prop("second", "Lisboa", "Lisboa", "T2", "Venda", 306000, false)
	catalog := []catalogrepo.Property{anchor, first, second}

	events := []Event{{Kind: KindFavorite, PropertyID: anchor.ID}}

	got := Recommend(catalog, events, 10)
	if len(got) != 2 {
		t.Fatalf("expected two recommendations, got %v", titles(got))
	}
	if got[0].ID != first.ID || got[1].ID != second.ID {
		t.Errorf("expected catalog order preserved on ties, got %v", titles(got))
	}
}

func TestRecommendOnlyRecentEventsAnchor(t *testing.T) {
	oldAnchor := prop("old anchor", "Porto", "Porto", "T3", "Venda", 200000, false)
	newAnchor := prop("new anchor", "Lisboa", "Lisboa", "T2", "Venda", 300000, false)
	portoTwin := prop("porto twin", "Porto", "Porto", "T3", "Arrendamento", 200000, false)
	lisboaTwin := prop("lisboa twin", "Lisboa", "Lisboa", "T2", "Venda", 300000, false)
	filler := prop("filler", "Faro", "Faro", "T1", "Venda", 100000, false)
	catalog := []catalogrepo.Property{oldAnchor, newAnchor, portoTwin, lisboaTwin}

	events := []Event{{Kind: KindFavorite, PropertyID: oldAnchor.ID}}
	for i := 0; i < 40; i++ {
		events = append(events, Event{Kind: KindCompare, PropertyID: filler.ID})
	}
	events = append(events, Event{Kind: KindFavorite, PropertyID: newAnchor.ID})

	got := Recommend(catalog, events, 10)
	if len(got) != 1 {
		t.Fatalf("expected only the fresh anchor's twin, got %v", titles(got))
	}
	if got[0].ID != lisboaTwin.ID {
		t.Errorf("expected %q, got %q", lisboaTwin.Title, got[0].Title)
	}
}

func TestRecommendLimit(t *testing.T) {
	anchor := prop("anchor", "Lisboa", "Lisboa", "T2", "Venda", 300000, false)
	catalog := []catalogrepo.Property{anchor}
	for i := 0; i < 5; i++ {
		catalog = append(catalog, prop("twin", "Lisboa", "Lisboa", "T2", "Venda", 305000, false))
	}

	events := []Event{{Kind: KindFavorite, PropertyID: anchor.ID}}

	if got := Recommend(catalog, events, 3); len(got) != 3 {
		t.Errorf("expected limit to cap results at 3, got %d", len(got))
	}
	if got := Recommend(catalog, events, 0); len(got) != 0 {
		t.Errorf("expected zero limit to yield nothing, got %d", len(got))
	}
}

func TestRecommendLikedAndViewedPropertyAnchorsTwice(t *testing.T) {
	// The common flow is view-then-favorite: that property anchors once per
	// occurrence, so its lookalikes outrank those of a merely liked one.
	anchorA := prop("anchor a", "Lisboa", "Lisboa", "T2", "Venda", 300000, false)
	anchorB := prop("anchor b", "Porto", "Porto", "T3", "Venda", 200000, false)
	twinA := prop("twin a", "Lisboa", "Lisboa", "T2", "Venda", 305000, false)
	twinB := prop("twin b", "Porto", "Porto", "T3", "Venda", 205000, false)
	catalog := []catalogrepo.Property{anchorA, anchorB, twinA, twinB}

	events := []Event{
		{Kind: KindView, PropertyID: anchorA.ID},
		{Kind: KindFavorite, PropertyID: anchorA.ID},
		{Kind: KindFavorite, PropertyID: anchorB.ID},
	}

	got := Recommend(catalog, events, 10)
	if len(got) != 2 {
		t.Fatalf("expected both twins, got %v", titles(got))
	}
	if got[0].ID != twinA.ID {
		t.Errorf("expected the doubly anchored twin first, got %q", got[0].Title)
	}
}

func TestRecommendRepeatedViewsStackAnchors(t *testing.T) {
	anchorA := prop("anchor a", "Lisboa", "Lisboa", "T2", "Venda", 300000, false)
	anchorB := prop("anchor b", "Porto", "Porto", "T3", "Venda", 200000, false)
	twinA := prop("twin a", "Lisboa", "Lisboa", "T2", "Venda", 305000, false)
	twinB := prop("twin b", "Porto", "Porto", "T3", "Venda", 205000, false)
	catalog := []catalogrepo.Property{anchorA, anchorB, twinA, twinB}

	events := []Event{
		{Kind: KindView, PropertyID: anchorB.ID},
		{Kind: KindView, PropertyID: anchorA.ID},
		{Kind: KindView, PropertyID: anchorA.ID},
	}

	got := Recommend(catalog, events, 10)
	if len(got) != 2 {
		t.Fatalf("expected both twins, got %v", titles(got))
	}
	if got[0].ID != twinA.ID {
		t.Errorf("expected the twice-viewed anchor's twin first, got %q", got[0].Title)
	}
}

func TestRecommendPriceBandBoundariesAreExclusive(t *testing.T) {
	// Band for a 300k anchor is 36000; a diff of exactly one band drops to
	// the outer score and a diff of exactly two bands scores nothing.
	anchor := prop("anchor", "A", "A", "T1", "Venda", 300000, false)
	inBand := prop("in band", "B", "B", "T9", "X", 330000, false)
	onBand := prop("on band edge", "B", "B", "T9", "X", 336000, false)
	onDouble := prop("on double edge", "B", "B", "T9", "X", 372000, false)
	catalog := []catalogrepo.Property{anchor, inBand, onBand, onDouble}

	events := []Event{{Kind: KindFavorite, PropertyID: anchor.ID}}

	got := Recommend(catalog, events, 10)
	if len(got) != 2 {
		t.Fatalf("expected the double-band edge to score zero, got %v", titles(got))
	}
	if got[0].ID != inBand.ID || got[1].ID != onBand.ID {
		t.Errorf("expected [in band, on band edge], got %v", titles(got))
	}
}
