package session

import (
	"context"
	"log"
	"sync"

	"backend-roteirando/internal/attendance"
	"backend-roteirando/internal/auth"
	"backend-roteirando/internal/group"
	"backend-roteirando/internal/tour"
	"backend-roteirando/internal/trip"
)

type TripStore interface {
	ListTrips(ctx context.Context) ([]trip.Trip, error)
}

type TourStore interface {
	ListTours(ctx context.Context) ([]tour.Tour, error)
}

type GroupStore interface {
	ListGroups(ctx context.Context) ([]group.Group, error)
	GetGroup(ctx context.Context, id string) (group.Group, error)
	UpdatePassword(ctx context.Context, groupID, newPassword string) error
}

type AttendanceWriter interface {
	Submit(ctx context.Context, role auth.Role, bound *group.Group, tourID string, members []string, customDate, cancelReason string) error
}

// Machine owns one session's navigation state. Transitions are serialized
// by the mutex; overlapping transitions resolve last-write-wins.
type Machine struct {
	mu sync.Mutex

	trips  TripStore
	tours  TourStore
	groups GroupStore
	writer AttendanceWriter

	ctx Context
}

func NewMachine(trips TripStore, tours TourStore, groups GroupStore, writer AttendanceWriter) *Machine {
	return &Machine{
		trips:  trips,
		tours:  tours,
		groups: groups,
		writer: writer,
		ctx:    Context{Role: auth.RoleAdmin, Screen: ScreenLogin},
	}
}

// LoginSuccess runs the post-login transition. Admin sessions load the
// three collections and land on the dashboard. Leader sessions bind the
// supplied group, refetch its authoritative record concurrently with the
// collection loads, and land on trip-details; a refetch failure falls back
// to the login-supplied group instead of failing the login.
func (m *Machine) LoginSuccess(ctx context.Context, role auth.Role, g *group.Group) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if role == auth.RoleAdmin || g == nil {
		m.ctx = Context{
			Role:   auth.RoleAdmin,
			Screen: ScreenDashboard,
			Trips:  m.fetchTrips(ctx),
			Tours:  m.fetchTours(ctx),
			Groups: m.fetchGroups(ctx),
		}
		return
	}

	bound := *g
	var (
		wg         sync.WaitGroup
		resolved   group.Group
		refetchErr error
		trips      []trip.Trip
		tours      []tour.Tour
		groups     []group.Group
	)
	wg.Add(4)
	go func() {
		defer wg.Done()
		resolved, refetchErr = m.groups.GetGroup(ctx, bound.ID)
	}()
	go func() {
		defer wg.Done()
		trips = m.fetchTrips(ctx)
	}()
	go func() {
		defer wg.Done()
		tours = m.fetchTours(ctx)
	}()
	go func() {
		defer wg.Done()
		groups = m.fetchGroups(ctx)
	}()
	wg.Wait()

	if refetchErr != nil {
		log.Printf("group refetch failed, using login-supplied record: %v", refetchErr)
		resolved = bound
	}

	m.ctx = Context{
		Role:           auth.RoleUser,
		Screen:         ScreenTripDetails,
		TripDetailsTab: TabTours,
		Group:          &resolved,
		ActiveTripID:   resolved.TripID,
		Trips:          trips,
		Tours:          tours,
		Groups:         groups,
	}
	if !resolved.PasswordChanged {
		m.ctx.PasswordPrompt = true
	}
}

// Navigate performs a plain guarded screen change. Blocked transitions
// leave the context untouched and report false.
func (m *Machine) Navigate(s Screen) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s == ScreenLogin || !allowed(m.ctx.Role, s) {
		return false
	}
	m.ctx.Screen = s
	return true
}

func (m *Machine) OpenTrip(tripID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, t := range m.ctx.Trips {
		if t.ID == tripID {
			m.ctx.ActiveTripID = t.ID
			m.ctx.TripDetailsTab = TabTours
			m.ctx.GroupsTourFilter = ""
			m.ctx.Screen = ScreenTripDetails
			return true
		}
	}
	return false
}

func (m *Machine) OpenTourDetail(tourID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.findTour(tourID)
	if !ok {
		return false
	}
	m.ctx.DetailTour = &t
	m.ctx.ActiveTripID = t.TripID
	m.ctx.Screen = ScreenTourDetail
	return true
}

// BackFromTourDetail approximates "how the detail screen was entered" from
// the current selection state: an active trip returns to its details,
// otherwise leaders return to their agenda and admins to the tour list.
func (m *Machine) BackFromTourDetail() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ctx.DetailTour = nil
	switch {
	case m.ctx.ActiveTripID != "":
		m.ctx.Screen = ScreenTripDetails
	case m.ctx.Role == auth.RoleUser:
		m.ctx.Screen = ScreenAgenda
	default:
		m.ctx.Screen = ScreenAllTours
	}
}

func (m *Machine) OpenTourAttendance(tourID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.findTour(tourID)
	if !ok {
		return false
	}
	m.ctx.DetailTour = &t
	m.ctx.Screen = ScreenTourAttendance
	return true
}

// OpenGroupsForTour jumps to the trip-details groups tab filtered to the
// groups attending one tour.
func (m *Machine) OpenGroupsForTour(tourID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.findTour(tourID)
	if !ok {
		return false
	}
	m.ctx.ActiveTripID = t.TripID
	m.ctx.TripDetailsTab = TabGroups
	m.ctx.GroupsTourFilter = t.ID
	m.ctx.Screen = ScreenTripDetails
	return true
}

func (m *Machine) NewTour() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !allowed(m.ctx.Role, ScreenNewTour) {
		return false
	}
	m.ctx.EditingTour = nil
	m.ctx.Screen = ScreenNewTour
	return true
}

func (m *Machine) EditTour(tourID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !allowed(m.ctx.Role, ScreenNewTour) {
		return false
	}
	t, ok := m.findTour(tourID)
	if !ok {
		return false
	}
	m.ctx.EditingTour = &t
	m.ctx.ActiveTripID = t.TripID
	m.ctx.Screen = ScreenNewTour
	return true
}

// SaveTourSuccess runs after the tour was persisted: reload tours, clear
// the edit target, and return to where the form was opened from.
func (m *Machine) SaveTourSuccess(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ctx.Tours = m.fetchTours(ctx)
	m.ctx.EditingTour = nil
	m.returnFromTourForm()
}

func (m *Machine) CancelTour() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ctx.EditingTour = nil
	m.returnFromTourForm()
}

func (m *Machine) NewGroup() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !allowed(m.ctx.Role, ScreenNewGroup) {
		return false
	}
	m.ctx.EditingGroup = nil
	m.ctx.Screen = ScreenNewGroup
	return true
}

func (m *Machine) EditGroup(groupID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !allowed(m.ctx.Role, ScreenNewGroup) {
		return false
	}
	for _, g := range m.ctx.Groups {
		if g.ID == groupID {
			g := g
			m.ctx.EditingGroup = &g
			m.ctx.ActiveTripID = g.TripID
			m.ctx.Screen = ScreenNewGroup
			return true
		}
	}
	return false
}

func (m *Machine) SaveGroupSuccess(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ctx.Groups = m.fetchGroups(ctx)
	m.ctx.EditingGroup = nil
	if m.ctx.ActiveTripID != "" {
		m.ctx.TripDetailsTab = TabGroups
		m.ctx.Screen = ScreenTripDetails
		return
	}
	m.ctx.Screen = ScreenAllGroups
}

func (m *Machine) CancelGroup() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ctx.EditingGroup = nil
	if m.ctx.ActiveTripID != "" {
		m.ctx.TripDetailsTab = TabGroups
		m.ctx.Screen = ScreenTripDetails
		return
	}
	m.ctx.Screen = ScreenAllGroups
}

func (m *Machine) NewTrip() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !allowed(m.ctx.Role, ScreenNewTrip) {
		return false
	}
	m.ctx.Screen = ScreenNewTrip
	return true
}

func (m *Machine) SaveTripSuccess(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ctx.Trips = m.fetchTrips(ctx)
	m.ctx.Screen = ScreenDashboard
}

func (m *Machine) CancelTrip() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ctx.Screen = ScreenDashboard
}

// Logout resets the context to its defaults and returns to login.
func (m *Machine) Logout() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ctx = Context{Role: auth.RoleAdmin, Screen: ScreenLogin}
}

// ChangePassword persists the leader's new credential and patches the
// bound group in place, clearing the first-access prompt.
func (m *Machine) ChangePassword(ctx context.Context, newPassword string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ctx.Role != auth.RoleUser || m.ctx.Group == nil {
		return nil
	}
	if err := m.groups.UpdatePassword(ctx, m.ctx.Group.ID, newPassword); err != nil {
		return err
	}
	m.ctx.Group.LeaderPassword = newPassword
	m.ctx.Group.PasswordChanged = true
	m.ctx.PasswordPrompt = false
	for i := range m.ctx.Groups {
		if m.ctx.Groups[i].ID == m.ctx.Group.ID {
			m.ctx.Groups[i].LeaderPassword = newPassword
			m.ctx.Groups[i].PasswordChanged = true
		}
	}
	return nil
}

// SubmitAttendance delegates to the write path, then reloads groups so any
// server-side derived fields reconcile. Errors propagate so the submitting
// form keeps the user's selection.
func (m *Machine) SubmitAttendance(ctx context.Context, tourID string, members []string, customDate, cancelReason string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ctx.Role != auth.RoleUser || m.ctx.Group == nil {
		return nil
	}
	if err := m.writer.Submit(ctx, m.ctx.Role, m.ctx.Group, tourID, members, customDate, cancelReason); err != nil {
		return err
	}
	m.ctx.Groups = m.fetchGroups(ctx)
	return nil
}

func (m *Machine) View() View {
	m.mu.Lock()
	defer m.mu.Unlock()

	return View{
		Screen:           m.ctx.Screen,
		Role:             m.ctx.Role,
		ActiveTripID:     m.ctx.ActiveTripID,
		TripDetailsTab:   m.ctx.TripDetailsTab,
		GroupsTourFilter: m.ctx.GroupsTourFilter,
		PasswordPrompt:   m.ctx.PasswordPrompt,
		Group:            m.ctx.Group,
		EditingTour:      m.ctx.EditingTour,
		EditingGroup:     m.ctx.EditingGroup,
		DetailTour:       m.ctx.DetailTour,
		Trips:            m.ctx.Trips,
		Tours:            m.ctx.Tours,
		Groups:           m.ctx.Groups,
	}
}

// AgendaView builds the leader's personal agenda: the tours their group
// confirmed members for. Reports false until a group is bound, which the
// client renders as a loading placeholder.
func (m *Machine) AgendaView() ([]attendance.TourAttendance, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ctx.Role != auth.RoleUser || m.ctx.Group == nil {
		return nil, false
	}
	return attendance.AttendingToursForGroup(*m.ctx.Group, m.ctx.Tours), true
}

type TourAttendanceData struct {
	Tour         tour.Tour                    `json:"tour"`
	Groups       []attendance.GroupAttendance `json:"groups"`
	TotalPeople  int                          `json:"total_people"`
	TotalRevenue float64                      `json:"total_revenue"`
}

// TourAttendanceView aggregates attendance for the selected tour, with an
// optional case-insensitive search over group and leader names.
func (m *Machine) TourAttendanceView(query string) (TourAttendanceData, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ctx.DetailTour == nil {
		return TourAttendanceData{}, false
	}
	t := *m.ctx.DetailTour
	groups := groupsForTrip(m.ctx.Groups, t.TripID)
	attending := attendance.AttendingGroupsForTour(t, groups)
	return TourAttendanceData{
		Tour:         t,
		Groups:       attendance.FilterGroups(attending, query),
		TotalPeople:  attendance.TotalPeopleForTour(t, groups),
		TotalRevenue: attendance.TotalRevenueForTour(t, groups),
	}, true
}

type FinancialData struct {
	TripID       string                   `json:"trip_id"`
	Rows         []attendance.TourSummary `json:"rows"`
	TotalPeople  int                      `json:"total_people"`
	TotalRevenue float64                  `json:"total_revenue"`
}

// FinancialView summarizes passengers and revenue per tour for the active
// trip. Admin only.
func (m *Machine) FinancialView() (FinancialData, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ctx.Role != auth.RoleAdmin || m.ctx.ActiveTripID == "" {
		return FinancialData{}, false
	}
	tours := toursForTrip(m.ctx.Tours, m.ctx.ActiveTripID)
	groups := groupsForTrip(m.ctx.Groups, m.ctx.ActiveTripID)

	data := FinancialData{TripID: m.ctx.ActiveTripID, Rows: attendance.TripSummary(tours, groups)}
	for _, row := range data.Rows {
		data.TotalPeople += row.People
		data.TotalRevenue += row.Revenue
	}
	return data, true
}

func (m *Machine) findTour(tourID string) (tour.Tour, bool) {
	for _, t := range m.ctx.Tours {
		if t.ID == tourID {
			return t, true
		}
	}
	return tour.Tour{}, false
}

func (m *Machine) returnFromTourForm() {
	if m.ctx.ActiveTripID != "" {
		m.ctx.TripDetailsTab = TabTours
		m.ctx.Screen = ScreenTripDetails
		return
	}
	m.ctx.Screen = ScreenAllTours
}

// fetch helpers implement the load-failure policy: log and reset the
// collection to empty rather than keep stale data.
func (m *Machine) fetchTrips(ctx context.Context) []trip.Trip {
	trips, err := m.trips.ListTrips(ctx)
	if err != nil {
		log.Printf("load trips failed: %v", err)
		return nil
	}
	return trips
}

func (m *Machine) fetchTours(ctx context.Context) []tour.Tour {
	tours, err := m.tours.ListTours(ctx)
	if err != nil {
		log.Printf("load tours failed: %v", err)
		return nil
	}
	return tours
}

func (m *Machine) fetchGroups(ctx context.Context) []group.Group {
	groups, err := m.groups.ListGroups(ctx)
	if err != nil {
		log.Printf("load groups failed: %v", err)
		return nil
	}
	return groups
}

func groupsForTrip(groups []group.Group, tripID string) []group.Group {
	var result []group.Group
	for _, g := range groups {
		if g.TripID == tripID {
			result = append(result, g)
		}
	}
	return result
}

func toursForTrip(tours []tour.Tour, tripID string) []tour.Tour {
	var result []tour.Tour
	for _, t := range tours {
		if t.TripID == tripID {
			result = append(result, t)
		}
	}
	return result
}
