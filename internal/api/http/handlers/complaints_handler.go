package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/civic-service/internal/api/dto"
	"github.com/spec-kit/civic-service/internal/domain"
	"github.com/spec-kit/civic-service/internal/engine"
	apperrors "github.com/spec-kit/civic-service/pkg/util"
)

// ComplaintsHandler exposes complaint operations.
type ComplaintsHandler struct {
	engine *engine.Engine
}

// NewComplaintsHandler constructs handler.
func NewComplaintsHandler(eng *engine.Engine) *ComplaintsHandler {
	return &ComplaintsHandler{engine: eng}
}

// Create POST /complaints.
func (h *ComplaintsHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateComplaintRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	complaint, err := h.engine.CreateComplaint(c.UserContext(), engine.ComplaintInput{
		CitizenName:   req.CitizenName,
		Phone:         req.Phone,
		Category:      req.Category,
		ComplaintType: req.ComplaintType,
		Area:          req.Area,
		Description:   req.Description,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.FromComplaint(complaint)})
}

// List GET /complaints?category=&priority=&q=.
func (h *ComplaintsHandler) List(c *fiber.Ctx) error {
	filter := engine.ComplaintFilter{
		Category:   c.Query("category"),
		Priority:   domain.Priority(c.Query("priority")),
		SearchTerm: c.Query("q"),
	}
	complaints := h.engine.QueryComplaints(filter)
	items := make([]dto.ComplaintResponse, 0, len(complaints))
	for i := range complaints {
		items = append(items, dto.FromComplaint(&complaints[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Get GET /complaints/:id.
func (h *ComplaintsHandler) Get(c *fiber.Ctx) error {
	complaint, err := h.engine.GetComplaint(c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromComplaint(complaint)})
}

// UpdateStatus PATCH /complaints/:id/status.
func (h *ComplaintsHandler) UpdateStatus(c *fiber.Ctx) error {
	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Status == "" {
		return apperrors.NewValidationError("status required", nil)
	}

	complaint, err := h.engine.UpdateComplaintStatus(c.UserContext(), c.Params("id"), domain.ComplaintStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromComplaint(complaint)})
}

// UpdateStage PATCH /complaints/:id/stage.
func (h *ComplaintsHandler) UpdateStage(c *fiber.Ctx) error {
	var req dto.UpdateStageRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Stage == "" {
		return apperrors.NewValidationError("stage required", nil)
	}

	complaint, err := h.engine.UpdateComplaintStage(c.UserContext(), c.Params("id"), req.Stage)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromComplaint(complaint)})
}
