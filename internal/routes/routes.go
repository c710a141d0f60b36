package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"gorm.io/gorm"

	"github.com/rsh/tracker-backend/internal/apps"
	"github.com/rsh/tracker-backend/internal/config"
	"github.com/rsh/tracker-backend/internal/handlers"
	"github.com/rsh/tracker-backend/internal/middleware"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
	plugins []apps.Plugin,
) {
	// Health sits outside /api and outside the rate limiter.
	app.Get("/health", healthHandler.Check)

	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	guard := middleware.Protected(cfg, db)

	// The stricter limit (10 req/min per IP) applies to the public auth
	// endpoints only; mounting it on the /auth group would also catch the
	// protected routes below.
	strictLimiter := limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	})
	auth := api.Group("/auth")
	auth.Post("/register", strictLimiter, authHandler.Register)
	auth.Post("/login", strictLimiter, authHandler.Login)

	// Protected auth routes stay on the general limiter only.
	api.Get("/auth/me", guard, authHandler.Me)
	api.Delete("/auth/account", guard, authHandler.DeleteAccount)

	// Resource plugins decide per route whether the guard applies.
	for _, p := range plugins {
		p.RegisterRoutes(api, guard, db, cfg)
	}
}
