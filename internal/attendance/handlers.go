package attendance

import (
	"context"

	"backend-roteirando/internal/group"
	"backend-roteirando/internal/tour"

	"github.com/gofiber/fiber/v2"
)

// Service backs the admin reporting screens: per-tour attendance lists and
// per-trip financial summaries.
type Service struct {
	tours  *tour.Service
	groups *group.Service
}

func NewService(tours *tour.Service, groups *group.Service) *Service {
	return &Service{tours: tours, groups: groups}
}

type TourReport struct {
	Tour         tour.Tour         `json:"tour"`
	Groups       []GroupAttendance `json:"groups"`
	TotalPeople  int               `json:"total_people"`
	TotalRevenue float64           `json:"total_revenue"`
}

type FinancialReport struct {
	TripID       string        `json:"trip_id"`
	Rows         []TourSummary `json:"rows"`
	TotalPeople  int           `json:"total_people"`
	TotalRevenue float64       `json:"total_revenue"`
}

func (s *Service) TourReport(ctx context.Context, tourID, query string) (TourReport, error) {
	t, err := s.tours.GetTour(ctx, tourID)
	if err != nil {
		return TourReport{}, err
	}
	groups, err := s.groups.ListByTrip(ctx, t.TripID)
	if err != nil {
		return TourReport{}, err
	}

	attending := AttendingGroupsForTour(t, groups)
	return TourReport{
		Tour:         t,
		Groups:       FilterGroups(attending, query),
		TotalPeople:  TotalPeopleForTour(t, groups),
		TotalRevenue: TotalRevenueForTour(t, groups),
	}, nil
}

func (s *Service) FinancialReport(ctx context.Context, tripID string) (FinancialReport, error) {
	tours, err := s.tours.ListByTrip(ctx, tripID)
	if err != nil {
		return FinancialReport{}, err
	}
	groups, err := s.groups.ListByTrip(ctx, tripID)
	if err != nil {
		return FinancialReport{}, err
	}

	report := FinancialReport{TripID: tripID, Rows: TripSummary(tours, groups)}
	for _, row := range report.Rows {
		report.TotalPeople += row.People
		report.TotalRevenue += row.Revenue
	}
	return report, nil
}

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware, adminOnly fiber.Handler) {
	r.Get("/tours/:id/attendance", authMiddleware, adminOnly, func(c *fiber.Ctx) error {
		report, err := svc.TourReport(c.Context(), c.Params("id"), c.Query("q"))
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "tour not found")
		}
		return c.JSON(report)
	})

	r.Get("/trips/:id/financial", authMiddleware, adminOnly, func(c *fiber.Ctx) error {
		report, err := svc.FinancialReport(c.Context(), c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(report)
	})
}
