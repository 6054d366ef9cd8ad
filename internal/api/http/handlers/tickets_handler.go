package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/helpdesk-kit/ticketing/internal/api/dto"
	"github.com/helpdesk-kit/ticketing/internal/auth"
	"github.com/helpdesk-kit/ticketing/internal/domain"
	"github.com/helpdesk-kit/ticketing/internal/repository"
	"github.com/helpdesk-kit/ticketing/internal/service"
	apperrors "github.com/helpdesk-kit/ticketing/pkg/util"
)

// TicketsHandler manages ticket lifecycle endpoints.
type TicketsHandler struct {
	service *service.TicketService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(ticketService *service.TicketService) *TicketsHandler {
	return &TicketsHandler{service: ticketService}
}

// CreateTicket POST /api/tickets.
func (h *TicketsHandler) CreateTicket(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Title == "" || req.Description == "" || req.CategoryID == "" || req.PriorityID == "" {
		return apperrors.NewValidationError("title, description, category_id, priority_id required", nil)
	}
	reporterID := req.ReporterID
	if reporterID == "" {
		reporterID = principal.User.ID
	}

	detail, err := h.service.CreateTicket(c.Context(), service.TicketCreateInput{
		Title:       req.Title,
		Description: req.Description,
		ReporterID:  reporterID,
		CategoryID:  req.CategoryID,
		PriorityID:  req.PriorityID,
		AssigneeID:  req.AssigneeID,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewTicketResponse(*detail)})
}

// ListTickets GET /api/tickets.
func (h *TicketsHandler) ListTickets(c *fiber.Ctx) error {
	details, err := h.service.ListTickets(c.Context(), ticketFilterFromQuery(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketResponses(details)})
}

// GetTicket GET /api/tickets/:id.
func (h *TicketsHandler) GetTicket(c *fiber.Ctx) error {
	detail, err := h.service.GetTicket(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketResponse(*detail)})
}

// UpdateTicket PUT /api/tickets/:id.
func (h *TicketsHandler) UpdateTicket(c *fiber.Ctx) error {
	var req dto.UpdateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Title == "" || req.CategoryID == "" || req.PriorityID == "" {
		return apperrors.NewValidationError("title, category_id, priority_id required", nil)
	}

	detail, err := h.service.UpdateTicket(c.Context(), c.Params("id"), service.TicketUpdateInput{
		Title:       req.Title,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		PriorityID:  req.PriorityID,
		AssigneeID:  req.AssigneeID,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketResponse(*detail)})
}

// ChangeStatus PATCH /api/tickets/status.
func (h *TicketsHandler) ChangeStatus(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.StatusUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.TicketID == "" || req.NewStatusID == "" {
		return apperrors.NewValidationError("ticket_id and new_status_id required", nil)
	}
	changedBy := req.ChangedByUserID
	if changedBy == "" {
		changedBy = principal.User.ID
	}

	detail, err := h.service.ChangeStatus(c.Context(), service.StatusChangeInput{
		TicketID:    req.TicketID,
		NewStatusID: req.NewStatusID,
		ChangedByID: changedBy,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketResponse(*detail)})
}

// GetHistory GET /api/tickets/:id/history (newest first).
func (h *TicketsHandler) GetHistory(c *fiber.Ctx) error {
	entries, err := h.service.History(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	items := make([]dto.StatusHistoryResponse, 0, len(entries))
	for _, entry := range entries {
		items = append(items, dto.NewStatusHistoryResponse(entry))
	}
	return c.JSON(fiber.Map{"data": items})
}

// ListByReporter GET /api/tickets/user/:userId.
func (h *TicketsHandler) ListByReporter(c *fiber.Ctx) error {
	details, err := h.service.ListByReporter(c.Context(), c.Params("userId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketResponses(details)})
}

// ListByAssignee GET /api/tickets/assigned/:userId.
func (h *TicketsHandler) ListByAssignee(c *fiber.Ctx) error {
	details, err := h.service.ListByAssignee(c.Context(), c.Params("userId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketResponses(details)})
}

// ListByStatus GET /api/tickets/status/:statusId.
func (h *TicketsHandler) ListByStatus(c *fiber.Ctx) error {
	details, err := h.service.ListByStatus(c.Context(), c.Params("statusId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketResponses(details)})
}

// DeleteTicket DELETE /api/tickets/:id.
func (h *TicketsHandler) DeleteTicket(c *fiber.Ctx) error {
	if err := h.service.DeleteTicket(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func ticketFilterFromQuery(c *fiber.Ctx) repository.TicketFilter {
	filter := repository.TicketFilter{}
	if v := c.Query("category_id"); v != "" {
		filter.CategoryID = &v
	}
	if v := c.Query("priority_id"); v != "" {
		filter.PriorityID = &v
	}
	if v := c.Query("status_id"); v != "" {
		filter.StatusID = &v
	}
	filter.Limit = c.QueryInt("limit", 50)
	filter.Offset = c.QueryInt("offset", 0)
	return filter
}

func ticketResponses(details []domain.TicketDetail) []dto.TicketResponse {
	items := make([]dto.TicketResponse, 0, len(details))
	for _, detail := range details {
		items = append(items, dto.NewTicketResponse(detail))
	}
	return items
}
