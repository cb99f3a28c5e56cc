package routes

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/habit-tracker/internal/handlers"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

func Setup(
	app *fiber.App,
	pages *handlers.PageHandler,
	authHandler *handlers.AuthHandler,
	habitHandler *handlers.HabitHandler,
	healthHandler *handlers.HealthHandler,
) {
	// General rate limit: 120 req/min per IP
	app.Use(limiter.New(limiter.Config{
		Max:               120,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	app.Get("/", pages.Home)
	app.Get("/health", healthHandler.Check)
	app.Static("/static", "./static")

	// Credential endpoints get a stricter limit: 10 req/min per IP
	authLimiter := limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	})

	app.Get("/login", pages.LoginPage)
	app.Get("/signup", pages.SignupPage)
	app.Post("/login", authLimiter, authHandler.Login)
	app.Post("/signup", authLimiter, authHandler.Signup)
	app.Post("/logout", authHandler.Logout)

	habits := app.Group("/habits")
	habits.Get("/", habitHandler.Index)
	habits.Post("/", habitHandler.Create)
	habits.Put("/:id", habitHandler.Update)
	habits.Delete("/:id", habitHandler.Delete)
	habits.Post("/:id/toggle", habitHandler.Toggle)
}
