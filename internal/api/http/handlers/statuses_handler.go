package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/helpdesk-kit/ticketing/internal/api/dto"
	"github.com/helpdesk-kit/ticketing/internal/service"
	apperrors "github.com/helpdesk-kit/ticketing/pkg/util"
)

// StatusesHandler manages the status lookup table endpoints.
type StatusesHandler struct {
	service *service.StatusService
}

// NewStatusesHandler constructs handler.
func NewStatusesHandler(statusService *service.StatusService) *StatusesHandler {
	return &StatusesHandler{service: statusService}
}

// Create POST /api/statuses.
func (h *StatusesHandler) Create(c *fiber.Ctx) error {
	var req dto.StatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	status, err := h.service.Create(c.Context(), req.Name)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewStatusResponse(*status)})
}

// Get GET /api/statuses/:id.
func (h *StatusesHandler) Get(c *fiber.Ctx) error {
	status, err := h.service.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewStatusResponse(*status)})
}

// List GET /api/statuses.
func (h *StatusesHandler) List(c *fiber.Ctx) error {
	statuses, err := h.service.List(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.StatusResponse, 0, len(statuses))
	for _, status := range statuses {
		items = append(items, dto.NewStatusResponse(status))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Update PUT /api/statuses/:id.
func (h *StatusesHandler) Update(c *fiber.Ctx) error {
	var req dto.StatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	status, err := h.service.Update(c.Context(), c.Params("id"), req.Name)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewStatusResponse(*status)})
}

// Delete DELETE /api/statuses/:id.
func (h *StatusesHandler) Delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
