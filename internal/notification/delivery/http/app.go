package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/tair/social-favorites/pkg/auth"
)

// AppConfig holds what the notifier HTTP app is built from
type AppConfig struct {
	Service     string
	Handler     *NotificationHandler
	Tokens      *auth.TokenManager
	RateLimiter *RateLimiter // nil disables rate limiting
	HealthCheck func(ctx context.Context) error
	Metrics     http.Handler
}

// NewApp builds the fiber app serving the inbox, health and metrics routes
func NewApp(cfg AppConfig) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      cfg.Service,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(TracingMiddleware(cfg.Service))
	app.Use(LoggingMiddleware())
	app.Use(cors.New(cors.Config{
		AllowOrigins:  "*",
		AllowMethods:  "GET,POST,OPTIONS",
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization, X-Request-Id, traceparent, tracestate",
		ExposeHeaders: "X-Request-Id, X-RateLimit-Limit, X-RateLimit-Remaining, X-RateLimit-Reset",
		MaxAge:        86400,
	}))
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := cfg.HealthCheck(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status":  "unhealthy",
				"service": cfg.Service,
			})
		}
		return c.JSON(fiber.Map{"status": "healthy", "service": cfg.Service})
	})
	if cfg.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(cfg.Metrics))
	}

	middleware := []fiber.Handler{AuthMiddleware(cfg.Tokens)}
	if cfg.RateLimiter != nil {
		middleware = append(middleware, cfg.RateLimiter.Middleware())
	}
	cfg.Handler.RegisterRoutes(app, middleware...)

	return app
}
