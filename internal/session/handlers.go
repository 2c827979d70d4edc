package session

import (
	"backend-roteirando/internal/auth"

	"github.com/gofiber/fiber/v2"
)

type Deps struct {
	Auth    *auth.Service
	Manager *Manager
	Trips   TripStore
	Tours   TourStore
	Groups  GroupStore
	Writer  AttendanceWriter
}

func RegisterRoutes(r fiber.Router, deps Deps, authMiddleware fiber.Handler) {
	r.Post("/login", func(c *fiber.Ctx) error {
		var req auth.LoginRequest
		if err := c.BodyParser(&req); err != nil || req.Email == "" || req.Password == "" {
			return fiber.NewError(fiber.StatusBadRequest, "email and password required")
		}
		result, err := deps.Auth.Login(c.Context(), req)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, err.Error())
		}

		groupID := ""
		if result.Group != nil {
			groupID = result.Group.ID
		}
		sessionID, tokens, err := deps.Auth.IssueToken(result.Role, groupID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}

		m := NewMachine(deps.Trips, deps.Tours, deps.Groups, deps.Writer)
		m.LoginSuccess(c.Context(), result.Role, result.Group)
		deps.Manager.Put(sessionID, m)

		return c.JSON(fiber.Map{"tokens": tokens, "view": m.View()})
	})

	machineFor := func(c *fiber.Ctx) *Machine {
		sessionID, _ := c.Locals("session_id").(string)
		return deps.Manager.Get(sessionID)
	}

	requireMachine := func(handler func(c *fiber.Ctx, m *Machine) error) fiber.Handler {
		return func(c *fiber.Ctx) error {
			m := machineFor(c)
			if m == nil {
				return fiber.NewError(fiber.StatusUnauthorized, "no active session")
			}
			return handler(c, m)
		}
	}

	r.Get("/", authMiddleware, requireMachine(func(c *fiber.Ctx, m *Machine) error {
		return c.JSON(m.View())
	}))

	r.Post("/logout", authMiddleware, requireMachine(func(c *fiber.Ctx, m *Machine) error {
		m.Logout()
		sessionID, _ := c.Locals("session_id").(string)
		deps.Manager.Drop(sessionID)
		return c.JSON(fiber.Map{"screen": ScreenLogin})
	}))

	r.Post("/navigate", authMiddleware, requireMachine(func(c *fiber.Ctx, m *Machine) error {
		var req struct {
			Screen string `json:"screen"`
		}
		if err := c.BodyParser(&req); err != nil || req.Screen == "" {
			return fiber.NewError(fiber.StatusBadRequest, "screen required")
		}
		m.Navigate(Screen(req.Screen))
		return c.JSON(m.View())
	}))

	r.Post("/open-trip", authMiddleware, requireMachine(func(c *fiber.Ctx, m *Machine) error {
		var req struct {
			TripID string `json:"trip_id"`
		}
		if err := c.BodyParser(&req); err != nil || req.TripID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "trip_id required")
		}
		m.OpenTrip(req.TripID)
		return c.JSON(m.View())
	}))

	r.Post("/open-tour", authMiddleware, requireMachine(func(c *fiber.Ctx, m *Machine) error {
		var req struct {
			TourID string `json:"tour_id"`
		}
		if err := c.BodyParser(&req); err != nil || req.TourID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "tour_id required")
		}
		m.OpenTourDetail(req.TourID)
		return c.JSON(m.View())
	}))

	r.Post("/back", authMiddleware, requireMachine(func(c *fiber.Ctx, m *Machine) error {
		m.BackFromTourDetail()
		return c.JSON(m.View())
	}))

	r.Post("/open-attendance", authMiddleware, requireMachine(func(c *fiber.Ctx, m *Machine) error {
		var req struct {
			TourID string `json:"tour_id"`
		}
		if err := c.BodyParser(&req); err != nil || req.TourID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "tour_id required")
		}
		m.OpenTourAttendance(req.TourID)
		return c.JSON(m.View())
	}))

	r.Post("/open-groups", authMiddleware, requireMachine(func(c *fiber.Ctx, m *Machine) error {
		var req struct {
			TourID string `json:"tour_id"`
		}
		if err := c.BodyParser(&req); err != nil || req.TourID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "tour_id required")
		}
		m.OpenGroupsForTour(req.TourID)
		return c.JSON(m.View())
	}))

	r.Post("/tours/new", authMiddleware, requireMachine(func(c *fiber.Ctx, m *Machine) error {
		m.NewTour()
		return c.JSON(m.View())
	}))

	r.Post("/tours/edit", authMiddleware, requireMachine(func(c *fiber.Ctx, m *Machine) error {
		var req struct {
			TourID string `json:"tour_id"`
		}
		if err := c.BodyParser(&req); err != nil || req.TourID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "tour_id required")
		}
		m.EditTour(req.TourID)
		return c.JSON(m.View())
	}))

	r.Post("/tours/saved", authMiddleware, requireMachine(func(c *fiber.Ctx, m *Machine) error {
		m.SaveTourSuccess(c.Context())
		return c.JSON(m.View())
	}))

	r.Post("/tours/cancel", authMiddleware, requireMachine(func(c *fiber.Ctx, m *Machine) error {
		m.CancelTour()
		return c.JSON(m.View())
	}))

	r.Post("/groups/new", authMiddleware, requireMachine(func(c *fiber.Ctx, m *Machine) error {
		m.NewGroup()
		return c.JSON(m.View())
	}))

	r.Post("/groups/edit", authMiddleware, requireMachine(func(c *fiber.Ctx, m *Machine) error {
		var req struct {
			GroupID string `json:"group_id"`
		}
		if err := c.BodyParser(&req); err != nil || req.GroupID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "group_id required")
		}
		m.EditGroup(req.GroupID)
		return c.JSON(m.View())
	}))

	r.Post("/groups/saved", authMiddleware, requireMachine(func(c *fiber.Ctx, m *Machine) error {
		m.SaveGroupSuccess(c.Context())
		return c.JSON(m.View())
	}))

	r.Post("/groups/cancel", authMiddleware, requireMachine(func(c *fiber.Ctx, m *Machine) error {
		m.CancelGroup()
		return c.JSON(m.View())
	}))

	r.Post("/trips/new", authMiddleware, requireMachine(func(c *fiber.Ctx, m *Machine) error {
		m.NewTrip()
		return c.JSON(m.View())
	}))

	r.Post("/trips/saved", authMiddleware, requireMachine(func(c *fiber.Ctx, m *Machine) error {
		m.SaveTripSuccess(c.Context())
		return c.JSON(m.View())
	}))

	r.Post("/trips/cancel", authMiddleware, requireMachine(func(c *fiber.Ctx, m *Machine) error {
		m.CancelTrip()
		return c.JSON(m.View())
	}))

	r.Get("/agenda", authMiddleware, requireMachine(func(c *fiber.Ctx, m *Machine) error {
		agenda, ok := m.AgendaView()
		if !ok {
			return c.SendStatus(fiber.StatusNoContent)
		}
		return c.JSON(agenda)
	}))

	r.Get("/attendance", authMiddleware, requireMachine(func(c *fiber.Ctx, m *Machine) error {
		data, ok := m.TourAttendanceView(c.Query("q"))
		if !ok {
			return c.SendStatus(fiber.StatusNoContent)
		}
		return c.JSON(data)
	}))

	r.Get("/financial", authMiddleware, requireMachine(func(c *fiber.Ctx, m *Machine) error {
		data, ok := m.FinancialView()
		if !ok {
			return c.SendStatus(fiber.StatusNoContent)
		}
		return c.JSON(data)
	}))

	r.Post("/attendance", authMiddleware, requireMachine(func(c *fiber.Ctx, m *Machine) error {
		var req struct {
			TourID       string   `json:"tour_id"`
			Members      []string `json:"members"`
			CustomDate   string   `json:"custom_date"`
			CancelReason string   `json:"cancel_reason"`
		}
		if err := c.BodyParser(&req); err != nil || req.TourID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "tour_id required")
		}
		if err := m.SubmitAttendance(c.Context(), req.TourID, req.Members, req.CustomDate, req.CancelReason); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(m.View())
	}))

	r.Post("/password", authMiddleware, requireMachine(func(c *fiber.Ctx, m *Machine) error {
		var req struct {
			Password string `json:"password"`
		}
		if err := c.BodyParser(&req); err != nil || req.Password == "" {
			return fiber.NewError(fiber.StatusBadRequest, "password required")
		}
		if err := m.ChangePassword(c.Context(), req.Password); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(m.View())
	}))
}
