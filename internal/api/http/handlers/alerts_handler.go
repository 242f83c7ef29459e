package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/civic-service/internal/api/dto"
	"github.com/spec-kit/civic-service/internal/engine"
)

// AlertsHandler exposes area-impact alerts to administrators.
type AlertsHandler struct {
	engine *engine.Engine
}

// NewAlertsHandler constructs handler.
func NewAlertsHandler(eng *engine.Engine) *AlertsHandler {
	return &AlertsHandler{engine: eng}
}

// List GET /alerts.
func (h *AlertsHandler) List(c *fiber.Ctx) error {
	alerts := h.engine.ListAreaAlerts()
	items := make([]dto.AreaAlertResponse, 0, len(alerts))
	for _, alert := range alerts {
		items = append(items, dto.FromAreaAlert(alert))
	}
	return c.JSON(fiber.Map{"data": items})
}
