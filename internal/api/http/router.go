package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/triage-service/internal/api/http/handlers"
	"github.com/spec-kit/triage-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Tickets        *handlers.TicketsHandler
	Classify       *handlers.ClassifyHandler
	Dashboard      *handlers.DashboardHandler
	Auth           *handlers.AuthHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes. The submission form, classifier
// demo, ticket table and SLA metrics are public; the audit feeds and
// ticket edits sit behind admin auth.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/auth/login", cfg.Auth.Login)

	api := app.Group("/api")
	api.Post("/tickets", cfg.Tickets.Submit)
	api.Get("/tickets", cfg.Tickets.List)
	api.Get("/tickets/:id", cfg.Tickets.Get)
	api.Post("/classify", cfg.Classify.Classify)
	api.Get("/metrics", cfg.Dashboard.Metrics)

	admin := api.Group("", cfg.AuthMiddleware.Handle)
	admin.Patch("/tickets/:id", cfg.Tickets.Update)
	admin.Get("/routing-logs", cfg.Dashboard.RoutingLogs)
	admin.Get("/notifications", cfg.Dashboard.Notifications)
}
