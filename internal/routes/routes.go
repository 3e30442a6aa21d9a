package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/shutterspot/shutterspot-backend/internal/config"
	"github.com/shutterspot/shutterspot-backend/internal/handlers"
	"github.com/shutterspot/shutterspot-backend/internal/middleware"
	"gorm.io/gorm"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
	spotHandler *handlers.SpotHandler,
	contestHandler *handlers.ContestHandler,
	moderationHandler *handlers.ModerationHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Auth — public, with a stricter rate limit: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)
	api.Post("/auth/logout", middleware.JWTProtected(cfg), authHandler.Logout)

	// Spots — browsing and search are public
	api.Get("/spots", spotHandler.List)
	api.Get("/spots/search", spotHandler.Search)
	api.Get("/spots/searchbytags", spotHandler.SearchByTags)
	api.Get("/spots/searchbyrating", spotHandler.SearchByRating)
	api.Get("/spots/searchbydaterange", spotHandler.SearchByDateRange)
	api.Get("/spots/:id", spotHandler.Get)
	api.Get("/spots/:id/comments", spotHandler.Comments)

	// Mutations require a signed-in user
	api.Post("/spots", middleware.JWTProtected(cfg), spotHandler.Create)
	api.Put("/spots/:id", middleware.JWTProtected(cfg), spotHandler.Update)
	api.Post("/spots/:id/comments", middleware.JWTProtected(cfg), spotHandler.AddComment)

	// Contest
	api.Get("/contest/submissions", contestHandler.Recent)
	api.Post("/contest/submissions", middleware.JWTProtected(cfg), contestHandler.Submit)

	// Reports — any signed-in user can flag content
	api.Post("/reports", middleware.JWTProtected(cfg), moderationHandler.FileReport)

	// Admin moderation panel (JWT + admin required)
	admin := api.Group("/admin", middleware.JWTProtected(cfg), middleware.AdminRequired(db, cfg))
	admin.Get("/moderation/:kind", moderationHandler.Reported)
	admin.Post("/moderation/:kind/:id/clear", moderationHandler.Clear)
	admin.Delete("/moderation/:kind/:id", moderationHandler.Delete)
}
