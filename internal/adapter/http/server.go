package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

// HealthCheck reports whether one dependency is reachable.
type HealthCheck func(ctx context.Context) error

type AppConfig struct {
	CORSAllowOrigins string
	// BodyLimit caps request size in bytes; uploads for extraction go
	// through the same limit.
	BodyLimit int
	Checks    map[string]HealthCheck
	// AccessLog enables the per-request log line.
	AccessLog bool
}

// NewApp builds the fiber application with middleware and all routes.
func NewApp(h *Handler, cfg AppConfig) *fiber.App {
	if cfg.CORSAllowOrigins == "" {
		cfg.CORSAllowOrigins = "*"
	}
	if cfg.BodyLimit <= 0 {
		cfg.BodyLimit = 10 * 1024 * 1024
	}

	app := fiber.New(fiber.Config{
		AppName:               "Resume Optimizer API",
		DisableStartupMessage: true,
		ErrorHandler:          ErrorHandler,
		BodyLimit:             cfg.BodyLimit,
		// exports wait on the model and the browser
		ReadTimeout:  2 * time.Minute,
		WriteTimeout: 2 * time.Minute,
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSAllowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET, POST, PUT, HEAD, OPTIONS",
	}))
	if cfg.AccessLog {
		app.Use(logger.New(logger.Config{
			Format: "[${time}] ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
		}))
	}

	app.Get("/health", health(cfg.Checks))
	h.RegisterRoutes(app.Group("/api"))
	return app
}

func health(checks map[string]HealthCheck) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		status := fiber.Map{"status": "ok"}
		code := fiber.StatusOK
		for name, check := range checks {
			healthy := check(ctx) == nil
			status[name] = healthy
			if !healthy {
				status["status"] = "degraded"
				code = fiber.StatusServiceUnavailable
			}
		}
		return c.Status(code).JSON(status)
	}
}
