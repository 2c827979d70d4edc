package session

import (
	"backend-roteirando/internal/auth"
	"backend-roteirando/internal/group"
	"backend-roteirando/internal/tour"
	"backend-roteirando/internal/trip"
)

// Context is the full set of in-memory facts describing what a logged-in
// session is viewing: role, bound group, current screen, transient
// selections and the loaded collections. It exists from login to logout
// and is never persisted.
type Context struct {
	Role   auth.Role
	Screen Screen

	// Group is the leader's own group; nil for admin sessions.
	Group *group.Group

	ActiveTripID     string
	TripDetailsTab   string
	GroupsTourFilter string

	EditingTour  *tour.Tour
	EditingGroup *group.Group
	DetailTour   *tour.Tour

	// PasswordPrompt flags the mandatory first-access password change.
	PasswordPrompt bool

	Trips  []trip.Trip
	Tours  []tour.Tour
	Groups []group.Group
}

// View is the serializable snapshot handlers return after a transition.
type View struct {
	Screen           Screen        `json:"screen"`
	Role             auth.Role     `json:"role"`
	ActiveTripID     string        `json:"active_trip_id,omitempty"`
	TripDetailsTab   string        `json:"trip_details_tab,omitempty"`
	GroupsTourFilter string        `json:"groups_tour_filter,omitempty"`
	PasswordPrompt   bool          `json:"password_prompt,omitempty"`
	Group            *group.Group  `json:"group,omitempty"`
	EditingTour      *tour.Tour    `json:"editing_tour,omitempty"`
	EditingGroup     *group.Group  `json:"editing_group,omitempty"`
	DetailTour       *tour.Tour    `json:"detail_tour,omitempty"`
	Trips            []trip.Trip   `json:"trips"`
	Tours            []tour.Tour   `json:"tours"`
	Groups           []group.Group `json:"groups"`
}
