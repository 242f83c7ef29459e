package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/civic-service/internal/api/dto"
	"github.com/spec-kit/civic-service/internal/domain"
	"github.com/spec-kit/civic-service/internal/engine"
	apperrors "github.com/spec-kit/civic-service/pkg/util"
)

// RequestsHandler exposes service-request operations.
type RequestsHandler struct {
	engine *engine.Engine
}

// NewRequestsHandler constructs handler.
func NewRequestsHandler(eng *engine.Engine) *RequestsHandler {
	return &RequestsHandler{engine: eng}
}

// Create POST /requests.
func (h *RequestsHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateServiceRequestRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	request, err := h.engine.CreateServiceRequest(c.UserContext(), engine.ServiceRequestInput{
		CitizenName: req.CitizenName,
		Phone:       req.Phone,
		Category:    req.Category,
		ServiceType: req.ServiceType,
		Address:     req.Address,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.FromServiceRequest(request)})
}

// List GET /requests.
func (h *RequestsHandler) List(c *fiber.Ctx) error {
	requests := h.engine.ListServiceRequests()
	items := make([]dto.ServiceRequestResponse, 0, len(requests))
	for i := range requests {
		items = append(items, dto.FromServiceRequest(&requests[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Get GET /requests/:id.
func (h *RequestsHandler) Get(c *fiber.Ctx) error {
	request, err := h.engine.GetServiceRequest(c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromServiceRequest(request)})
}

// UpdateStatus PATCH /requests/:id/status.
func (h *RequestsHandler) UpdateStatus(c *fiber.Ctx) error {
	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Status == "" {
		return apperrors.NewValidationError("status required", nil)
	}

	request, err := h.engine.UpdateServiceStatus(c.UserContext(), c.Params("id"), domain.RequestStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromServiceRequest(request)})
}

// UpdateStage PATCH /requests/:id/stage.
func (h *RequestsHandler) UpdateStage(c *fiber.Ctx) error {
	var req dto.UpdateStageRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Stage == "" {
		return apperrors.NewValidationError("stage required", nil)
	}

	request, err := h.engine.UpdateServiceStage(c.UserContext(), c.Params("id"), req.Stage)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromServiceRequest(request)})
}
