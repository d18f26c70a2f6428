package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/docuvia/docuvia-api/internal/config"
	"github.com/docuvia/docuvia-api/internal/handler"
	"github.com/docuvia/docuvia-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	UserHandler         *handler.UserHandler
	DocumentHandler     *handler.DocumentHandler
	ApprovalHandler     *handler.ApprovalHandler
	AuditHandler        *handler.AuditHandler
	NotificationHandler *handler.NotificationHandler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	app.Get("/metrics", observability.MetricsHandler())

	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))

	if deps.UserHandler != nil {
		deps.UserHandler.Register(api.Group("/users"))
	}

	if deps.DocumentHandler != nil {
		deps.DocumentHandler.Register(api.Group("/documents"))
	}

	if deps.ApprovalHandler != nil {
		deps.ApprovalHandler.Register(api.Group("/approvals"))
	}

	if deps.AuditHandler != nil {
		deps.AuditHandler.Register(api.Group("/audit"))
	}

	if deps.NotificationHandler != nil {
		deps.NotificationHandler.Register(api.Group("/notifications"))
	}
}
