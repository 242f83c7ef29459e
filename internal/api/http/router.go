package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/civic-service/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health     *handlers.HealthHandler
	Requests   *handlers.RequestsHandler
	Complaints *handlers.ComplaintsHandler
	Alerts     *handlers.AlertsHandler
	Kiosks     *handlers.KiosksHandler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	requests := app.Group("/requests")
	requests.Post("", cfg.Requests.Create)
	requests.Get("", cfg.Requests.List)
	requests.Get("/:id", cfg.Requests.Get)
	requests.Patch("/:id/status", cfg.Requests.UpdateStatus)
	requests.Patch("/:id/stage", cfg.Requests.UpdateStage)

	complaints := app.Group("/complaints")
	complaints.Post("", cfg.Complaints.Create)
	complaints.Get("", cfg.Complaints.List)
	complaints.Get("/:id", cfg.Complaints.Get)
	complaints.Patch("/:id/status", cfg.Complaints.UpdateStatus)
	complaints.Patch("/:id/stage", cfg.Complaints.UpdateStage)

	app.Get("/alerts", cfg.Alerts.List)

	kiosks := app.Group("/kiosks")
	kiosks.Post("", cfg.Kiosks.Add)
	kiosks.Get("", cfg.Kiosks.List)
	kiosks.Patch("/:id", cfg.Kiosks.Update)
}
