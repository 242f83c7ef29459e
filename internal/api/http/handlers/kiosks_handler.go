package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/civic-service/internal/api/dto"
	"github.com/spec-kit/civic-service/internal/engine"
	apperrors "github.com/spec-kit/civic-service/pkg/util"
)

// KiosksHandler exposes terminal inventory operations.
type KiosksHandler struct {
	engine *engine.Engine
}

// NewKiosksHandler constructs handler.
func NewKiosksHandler(eng *engine.Engine) *KiosksHandler {
	return &KiosksHandler{engine: eng}
}

// Add POST /kiosks.
func (h *KiosksHandler) Add(c *fiber.Ctx) error {
	var req dto.AddKioskRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	kiosk, err := h.engine.AddKiosk(c.UserContext(), engine.KioskInput{
		ID:             req.ID,
		Location:       req.Location,
		Online:         req.Online,
		BatteryPercent: req.BatteryPercent,
		NetworkQuality: req.NetworkQuality,
		LoadLevel:      req.LoadLevel,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.FromKiosk(kiosk)})
}

// List GET /kiosks.
func (h *KiosksHandler) List(c *fiber.Ctx) error {
	kiosks := h.engine.ListKiosks()
	items := make([]dto.KioskResponse, 0, len(kiosks))
	for i := range kiosks {
		items = append(items, dto.FromKiosk(&kiosks[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Update PATCH /kiosks/:id.
func (h *KiosksHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateKioskRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	kiosk, err := h.engine.UpdateKiosk(c.UserContext(), c.Params("id"), engine.KioskUpdate{
		Online:          req.Online,
		BatteryPercent:  req.BatteryPercent,
		NetworkQuality:  req.NetworkQuality,
		LoadLevel:       req.LoadLevel,
		RequestsDelta:   req.RequestsDelta,
		ComplaintsDelta: req.ComplaintsDelta,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromKiosk(kiosk)})
}
