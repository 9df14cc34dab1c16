package domain

import (
	"testing"

	catalogrepo "atlascasa_backend/internal/catalog/repository"

	"github.com/google/uuid"
)

func f64(v float64) *float64 { return &v }

func TestClassify(t *testing.T) {
	property := &catalogrepo.Property{ID: uuid.New(), PriceEur: 350000}
	freeProperty := &catalogrepo.Property{ID: uuid.New(), PriceEur: 0}

	cases := []struct {
		name     string
		lead     Lead
		property *catalogrepo.Property
		want     Temperature
	}{
		{
			name:     "full signal lead is hot",
			lead:     Lead{Phone: "+351 912 345 678", Message: "Gostaria de marcar uma visita este fim de semana"},
			property: property,
			want:     TemperatureHot,
		},
		{
			name: "empty lead is cold",
			lead: Lead{},
			want: TemperatureCold,
		},
		{
			name:     "phone and property without message is warm",
			lead:     Lead{Phone: "912345678"},
			property: freeProperty,
			want:     TemperatureWarm,
		},
		{
			name: "short phone does not count",
			lead: Lead{Phone: "12345", Message: "Tenho interesse em saber mais detalhes"},
			want: TemperatureCold,
		},
		{
			name: "message must exceed ten characters after trimming",
			lead: Lead{Phone: "912345678", Message: "   ola     "},
			want: TemperatureCold,
		},
		{
			// 10 characters but 12 bytes of UTF-8.
			name: "accented short message counts characters not bytes",
			lead: Lead{Phone: "912345678", Message: "Visitá já?"},
			want: TemperatureCold,
		},
		{
			name: "accented long message still counts",
			lead: Lead{Phone: "912345678", Message: "Olá, é possível visitar amanhã?"},
			want: TemperatureWarm,
		},
		{
			name: "explicit budget adds a point",
			lead: Lead{Phone: "912345678", Message: "Procuro T2 em Lisboa para comprar", MaxBudgetEur: f64(250000)},
			want: TemperatureWarm,
		},
		{
			name:     "zero explicit budget is not replaced by property price",
			lead:     Lead{MaxBudgetEur: f64(0)},
			property: property,
			want:     TemperatureCold,
		},
		{
			name:     "property price counts as budget when none given",
			lead:     Lead{Phone: "912 345 678", Message: "Quero visitar este imóvel brevemente"},
			property: property,
			want:     TemperatureHot,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Classify(tc.lead, tc.property); got != tc.want {
				t.Errorf("Classify() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestClassifyIsIdempotent(t *testing.T) {
	lead := Lead{Phone: "912345678", Message: "Procuro casa com jardim em Cascais"}
	first := Classify(lead, nil)
	for i := 0; i < 3; i++ {
		if got := Classify(lead, nil); got != first {
			t.Fatalf("Classify() changed between calls: %q then %q", first, got)
		}
	}
}
