package trip

import "time"

const (
	StatusActive    = "active"
	StatusUpcoming  = "upcoming"
	StatusCompleted = "completed"
)

type Trip struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Destination string    `json:"destination"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	ImageURL    string    `json:"image_url"`
	Links       []Link    `json:"links"`
	CreatedAt   time.Time `json:"created_at"`
}

type Link struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}
