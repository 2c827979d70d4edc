package server

import (
	"backend-roteirando/internal/attendance"
	"backend-roteirando/internal/auth"
	"backend-roteirando/internal/config"
	"backend-roteirando/internal/group"
	"backend-roteirando/internal/session"
	"backend-roteirando/internal/stream"
	"backend-roteirando/internal/tour"
	"backend-roteirando/internal/trip"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type Server struct {
	App      *fiber.App
	Cfg      config.Config
	DB       *pgxpool.Pool
	Redis    *redis.Client
	Stream   *stream.Hub
	Sessions *session.Manager
}

func NewServer(cfg config.Config, db *pgxpool.Pool, redisClient *redis.Client) *Server {
	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())

	s := &Server{
		App:      app,
		Cfg:      cfg,
		DB:       db,
		Redis:    redisClient,
		Stream:   stream.NewHub(redisClient),
		Sessions: session.NewManager(),
	}

	registerRoutes(s)
	return s
}

func registerRoutes(s *Server) {
	s.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	jwtMiddleware := auth.JWTMiddleware(s.Cfg.JWTSecret)
	adminOnly := auth.RequireAdmin()

	tripSvc := trip.NewService(s.DB)
	tourSvc := tour.NewService(s.DB)
	groupSvc := group.NewService(s.DB)
	authSvc := auth.NewService(s.Cfg.JWTSecret, s.DB, groupSvc)
	writer := attendance.NewWriter(groupSvc, s.Stream)

	auth.RegisterRoutes(s.App.Group("/auth"), authSvc)
	trip.RegisterRoutes(s.App.Group("/trips"), tripSvc, jwtMiddleware, adminOnly)
	tour.RegisterRoutes(s.App.Group("/tours"), tourSvc, jwtMiddleware, adminOnly)
	group.RegisterRoutes(s.App.Group("/groups"), groupSvc, jwtMiddleware, adminOnly)
	attendance.RegisterRoutes(s.App.Group("/reports"), attendance.NewService(tourSvc, groupSvc), jwtMiddleware, adminOnly)
	session.RegisterRoutes(s.App.Group("/session"), session.Deps{
		Auth:    authSvc,
		Manager: s.Sessions,
		Trips:   tripSvc,
		Tours:   tourSvc,
		Groups:  groupSvc,
		Writer:  writer,
	}, jwtMiddleware)
	stream.RegisterRoutes(s.App.Group("/stream"), s.Stream)
}
