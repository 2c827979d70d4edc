package group

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware, adminOnly fiber.Handler) {
	r.Get("/", authMiddleware, adminOnly, func(c *fiber.Ctx) error {
		if tripID := c.Query("trip_id"); tripID != "" {
			groups, err := svc.ListByTrip(c.Context(), tripID)
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, err.Error())
			}
			return c.JSON(groups)
		}
		groups, err := svc.ListGroups(c.Context())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(groups)
	})

	r.Get("/:id", authMiddleware, func(c *fiber.Ctx) error {
		g, err := svc.GetGroup(c.Context(), c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "group not found")
		}
		return c.JSON(g)
	})

	r.Post("/", authMiddleware, adminOnly, func(c *fiber.Ctx) error {
		var req struct {
			Group
			LeaderPassword string `json:"leader_password"`
		}
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if req.Name == "" || req.TripID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "name and trip_id required")
		}
		input := req.Group
		input.LeaderPassword = req.LeaderPassword
		g, err := svc.CreateGroup(c.Context(), input)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(g)
	})

	r.Put("/:id", authMiddleware, adminOnly, func(c *fiber.Ctx) error {
		var req Group
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		g, err := svc.UpdateGroup(c.Context(), c.Params("id"), req)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(g)
	})

	r.Delete("/:id", authMiddleware, adminOnly, func(c *fiber.Ctx) error {
		if err := svc.DeleteGroup(c.Context(), c.Params("id")); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
}
