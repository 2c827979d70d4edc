package attendance

import (
	"encoding/json"
	"testing"

	"backend-roteirando/internal/group"
	"backend-roteirando/internal/tour"
)

func tieredTour() tour.Tour {
	return tour.Tour{
		ID:    "tour-1",
		Price: 80,
		PriceTiers: map[string]tour.PriceTier{
			"child": {Label: "Criança", Value: 50},
		},
	}
}

func TestAmountForGroup(t *testing.T) {
	tt := tieredTour()

	cases := []struct {
		name  string
		entry Entry
		want  float64
	}{
		{"no members", Entry{}, 0},
		{"default price", Entry{Members: []string{"Ana", "Beto", "Caio"}}, 240},
		{"exact tier key", Entry{Members: []string{"Ana", "Beto", "Caio"}, PriceKey: "child"}, 150},
		{"case-insensitive tier key", Entry{Members: []string{"Ana", "Beto", "Caio"}, PriceKey: "Child"}, 150},
		{"unknown tier falls back", Entry{Members: []string{"Ana", "Beto", "Caio"}, PriceKey: "vip"}, 240},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := AmountForGroup(tt, tc.entry); got != tc.want {
				t.Fatalf("amount = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestAmountForGroupNoTiers(t *testing.T) {
	tt := tour.Tour{ID: "tour-1", Price: 80}
	got := AmountForGroup(tt, Entry{Members: []string{"Ana", "Beto"}, PriceKey: "child"})
	if got != 160 {
		t.Fatalf("amount = %v, want 160", got)
	}
}

func TestTotalRevenueForTour(t *testing.T) {
	tt := tieredTour()
	groups := []group.Group{
		{ID: "g1", Attendance: map[string]json.RawMessage{
			"tour-1": json.RawMessage(`{"members":["Ana","Beto"],"selectedPriceKey":"child"}`),
		}},
		{ID: "g2", Attendance: map[string]json.RawMessage{
			"tour-1": json.RawMessage(`["Caio"]`),
		}},
		{ID: "g3"},
	}

	if got := TotalRevenueForTour(tt, groups); got != 180 {
		t.Fatalf("total = %v, want 180", got)
	}
}
