package service

import (
	"testing"

	"atlascasa_backend/internal/campaigns/repository"
	"atlascasa_backend/internal/leads/domain"
)

func budget(v float64) *float64 { return &v }

func TestMatches(t *testing.T) {
	cases := []struct {
		name    string
		lead    domain.Lead
		segment repository.Segment
		want    bool
	}{
		{
			name: "empty segment matches everything",
			lead: domain.Lead{},
			want: true,
		},
		{
			name:    "district filter",
			lead:    domain.Lead{PreferredDistrict: "Lisboa"},
			segment: repository.Segment{Districts: []string{"Porto", "Lisboa"}},
			want:    true,
		},
		{
			name:    "district mismatch",
			lead:    domain.Lead{PreferredDistrict: "Faro"},
			segment: repository.Segment{Districts: []string{"Lisboa"}},
			want:    false,
		},
		{
			name:    "typology filter",
			lead:    domain.Lead{PreferredTypology: "T2"},
			segment: repository.Segment{Typologies: []string{"T2", "T3"}},
			want:    true,
		},
		{
			name:    "lead without preference misses a non-empty filter",
			lead:    domain.Lead{},
			segment: repository.Segment{Typologies: []string{"T2"}},
			want:    false,
		},
		{
			name:    "budget inside price range",
			lead:    domain.Lead{MaxBudgetEur: budget(250000)},
			segment: repository.Segment{PriceMin: budget(200000), PriceMax: budget(300000)},
			want:    true,
		},
		{
			name:    "budget below minimum",
			lead:    domain.Lead{MaxBudgetEur: budget(150000)},
			segment: repository.Segment{PriceMin: budget(200000)},
			want:    false,
		},
		{
			name:    "price filter excludes leads without a budget",
			lead:    domain.Lead{},
			segment: repository.Segment{PriceMax: budget(300000)},
			want:    false,
		},
		{
			name: "all filters must pass",
			lead: domain.Lead{PreferredDistrict: "Lisboa", PreferredTypology: "T4"},
			segment: repository.Segment{
				Districts:  []string{"Lisboa"},
				Typologies: []string{"T2"},
			},
			want: false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Matches(tc.lead, tc.segment); got != tc.want {
				t.Errorf("Matches() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestAudiencePreservesOrder(t *testing.T) {
	leads := []domain.Lead{
		{Name: "a", PreferredDistrict: "Lisboa"},
		{Name: "b", PreferredDistrict: "Porto"},
		{Name: "c", PreferredDistrict: "Lisboa"},
	}
	segment := repository.Segment{Districts: []string{"Lisboa"}}

	got := Audience(leads, segment)
	if len(got) != 2 || got[0].Name != "a" || got[1].Name != "c" {
		t.Fatalf("unexpected audience %v", got)
	}
}
