package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/helpdesk-kit/ticketing/internal/api/dto"
	"github.com/helpdesk-kit/ticketing/internal/service"
	apperrors "github.com/helpdesk-kit/ticketing/pkg/util"
)

// PrioritiesHandler manages the priority lookup table endpoints.
type PrioritiesHandler struct {
	service *service.PriorityService
}

// NewPrioritiesHandler constructs handler.
func NewPrioritiesHandler(priorityService *service.PriorityService) *PrioritiesHandler {
	return &PrioritiesHandler{service: priorityService}
}

// Create POST /api/priorities.
func (h *PrioritiesHandler) Create(c *fiber.Ctx) error {
	var req dto.PriorityRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	priority, err := h.service.Create(c.Context(), service.PriorityInput{
		Name:  req.Name,
		Level: req.Level,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewPriorityResponse(*priority)})
}

// Get GET /api/priorities/:id.
func (h *PrioritiesHandler) Get(c *fiber.Ctx) error {
	priority, err := h.service.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewPriorityResponse(*priority)})
}

// List GET /api/priorities.
func (h *PrioritiesHandler) List(c *fiber.Ctx) error {
	priorities, err := h.service.List(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.PriorityResponse, 0, len(priorities))
	for _, priority := range priorities {
		items = append(items, dto.NewPriorityResponse(priority))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Update PUT /api/priorities/:id.
func (h *PrioritiesHandler) Update(c *fiber.Ctx) error {
	var req dto.PriorityRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	priority, err := h.service.Update(c.Context(), c.Params("id"), service.PriorityInput{
		Name:  req.Name,
		Level: req.Level,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewPriorityResponse(*priority)})
}

// Delete DELETE /api/priorities/:id.
func (h *PrioritiesHandler) Delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
