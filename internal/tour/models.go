package tour

import "time"

type Tour struct {
	ID          string    `json:"id"`
	TripID      string    `json:"trip_id"`
	Name        string    `json:"name"`
	Date        string    `json:"date"`
	Time        string    `json:"time"`
	Description string    `json:"description"`
	// Price is the per-person default applied when a group selects no tier.
	Price      float64              `json:"price"`
	PriceTiers map[string]PriceTier `json:"price_tiers,omitempty"`
	CreatedAt  time.Time            `json:"created_at"`
}

// PriceTier is a named alternative to the default price, e.g. "adult" or
// "child". The key in Tour.PriceTiers is what attendance entries reference.
type PriceTier struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}
