package attendance

import (
	"strings"

	"backend-roteirando/internal/group"
	"backend-roteirando/internal/tour"
)

type GroupAttendance struct {
	Group          group.Group `json:"group"`
	AttendingCount int         `json:"attending_count"`
	AttendingNames []string    `json:"attending_names"`
}

type TourAttendance struct {
	Tour           tour.Tour `json:"tour"`
	AttendingCount int       `json:"attending_count"`
	AttendingNames []string  `json:"attending_names"`
	CustomDate     string    `json:"custom_date,omitempty"`
}

type TourSummary struct {
	Tour    tour.Tour `json:"tour"`
	People  int       `json:"people"`
	Revenue float64   `json:"revenue"`
}

// AttendingGroupsForTour lists the groups with at least one confirmed
// member for the tour. Zero-member entries mean "no attendance" and are
// excluded outright. Member order is preserved as stored.
func AttendingGroupsForTour(t tour.Tour, groups []group.Group) []GroupAttendance {
	var result []GroupAttendance
	for _, g := range groups {
		entry := EntryFor(g, t.ID)
		if len(entry.Members) == 0 {
			continue
		}
		result = append(result, GroupAttendance{
			Group:          g,
			AttendingCount: len(entry.Members),
			AttendingNames: entry.Members,
		})
	}
	return result
}

func TotalPeopleForTour(t tour.Tour, groups []group.Group) int {
	total := 0
	for _, ga := range AttendingGroupsForTour(t, groups) {
		total += ga.AttendingCount
	}
	return total
}

// FilterGroups retains rows whose group name or leader name contains the
// query, case-insensitively. It runs after the attendance filter: a group
// with no confirmed members never appears, whatever the query matches.
func FilterGroups(list []GroupAttendance, query string) []GroupAttendance {
	if query == "" {
		return list
	}
	q := strings.ToLower(query)
	var result []GroupAttendance
	for _, ga := range list {
		if strings.Contains(strings.ToLower(ga.Group.Name), q) ||
			strings.Contains(strings.ToLower(ga.Group.LeaderName), q) {
			result = append(result, ga)
		}
	}
	return result
}

// AttendingToursForGroup is the symmetric view used for a leader's agenda:
// the tours this group confirmed at least one member for.
func AttendingToursForGroup(g group.Group, tours []tour.Tour) []TourAttendance {
	var result []TourAttendance
	for _, t := range tours {
		entry := EntryFor(g, t.ID)
		if len(entry.Members) == 0 {
			continue
		}
		result = append(result, TourAttendance{
			Tour:           t,
			AttendingCount: len(entry.Members),
			AttendingNames: entry.Members,
			CustomDate:     entry.CustomDate,
		})
	}
	return result
}

// TripSummary builds the financial rows: per-tour passenger counts and
// revenue across the given groups.
func TripSummary(tours []tour.Tour, groups []group.Group) []TourSummary {
	var rows []TourSummary
	for _, t := range tours {
		rows = append(rows, TourSummary{
			Tour:    t,
			People:  TotalPeopleForTour(t, groups),
			Revenue: TotalRevenueForTour(t, groups),
		})
	}
	return rows
}
