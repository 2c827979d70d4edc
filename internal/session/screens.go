package session

import "backend-roteirando/internal/auth"

// Screen is the closed set of console screens the state machine navigates
// between. Login is the initial screen; logout is the only way back to it.
type Screen string

const (
	ScreenLogin          Screen = "login"
	ScreenDashboard      Screen = "dashboard"
	ScreenTripDetails    Screen = "trip-details"
	ScreenNewTour        Screen = "new-tour"
	ScreenNewGroup       Screen = "new-group"
	ScreenNewTrip        Screen = "new-trip"
	ScreenAllTours       Screen = "all-tours"
	ScreenAllGroups      Screen = "all-groups"
	ScreenTourAttendance Screen = "tour-attendance"
	ScreenTourDetail     Screen = "tour-detail"
	ScreenFinancial      Screen = "financial"
	ScreenAgenda         Screen = "agenda"
	ScreenCityGuide      Screen = "city-guide"
	ScreenDestinosGuide  Screen = "destinos-guide"
	ScreenMyTrip         Screen = "my-trip"
)

const (
	TabTours  = "tours"
	TabGroups = "groups"
)

// adminScreens must not be entered by a leader session. Blocked transitions
// are silent no-ops: the screen simply does not change.
var adminScreens = map[Screen]bool{
	ScreenAllTours:  true,
	ScreenAllGroups: true,
	ScreenNewTour:   true,
	ScreenNewGroup:  true,
	ScreenNewTrip:   true,
	ScreenFinancial: true,
}

// userScreens belong to the leader flow. They additionally expect a bound
// group; until it resolves the client renders a loading placeholder.
var userScreens = map[Screen]bool{
	ScreenAgenda: true,
	ScreenMyTrip: true,
}

func allowed(role auth.Role, s Screen) bool {
	if adminScreens[s] && role != auth.RoleAdmin {
		return false
	}
	if userScreens[s] && role != auth.RoleUser {
		return false
	}
	return true
}
