package tour

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware, adminOnly fiber.Handler) {
	r.Get("/", authMiddleware, func(c *fiber.Ctx) error {
		if tripID := c.Query("trip_id"); tripID != "" {
			tours, err := svc.ListByTrip(c.Context(), tripID)
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, err.Error())
			}
			return c.JSON(tours)
		}
		tours, err := svc.ListTours(c.Context())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(tours)
	})

	r.Get("/:id", authMiddleware, func(c *fiber.Ctx) error {
		tour, err := svc.GetTour(c.Context(), c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "tour not found")
		}
		return c.JSON(tour)
	})

	r.Post("/", authMiddleware, adminOnly, func(c *fiber.Ctx) error {
		var req Tour
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if req.Name == "" || req.TripID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "name and trip_id required")
		}
		tour, err := svc.CreateTour(c.Context(), req)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(tour)
	})

	r.Put("/:id", authMiddleware, adminOnly, func(c *fiber.Ctx) error {
		var req Tour
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		tour, err := svc.UpdateTour(c.Context(), c.Params("id"), req)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(tour)
	})

	r.Delete("/:id", authMiddleware, adminOnly, func(c *fiber.Ctx) error {
		if err := svc.DeleteTour(c.Context(), c.Params("id")); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
}
