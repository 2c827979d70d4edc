package attendance

import (
	"strings"

	"backend-roteirando/internal/group"
	"backend-roteirando/internal/tour"
)

// AmountForGroup computes what a group owes for a tour. A selected tier key
// that matches nothing falls back to the default price; lookup failure is a
// degraded-but-valid computation, not an error.
func AmountForGroup(t tour.Tour, e Entry) float64 {
	if len(e.Members) == 0 {
		return 0
	}
	count := float64(len(e.Members))

	if len(t.PriceTiers) > 0 && e.PriceKey != "" {
		if tier, ok := t.PriceTiers[e.PriceKey]; ok {
			return count * tier.Value
		}
		for key, tier := range t.PriceTiers {
			if strings.EqualFold(key, e.PriceKey) {
				return count * tier.Value
			}
		}
	}
	return count * t.Price
}

func TotalRevenueForTour(t tour.Tour, groups []group.Group) float64 {
	var total float64
	for _, g := range groups {
		total += AmountForGroup(t, EntryFor(g, t.ID))
	}
	return total
}
