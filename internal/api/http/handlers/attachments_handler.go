package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/helpdesk-kit/ticketing/internal/api/dto"
	"github.com/helpdesk-kit/ticketing/internal/auth"
	"github.com/helpdesk-kit/ticketing/internal/service"
	apperrors "github.com/helpdesk-kit/ticketing/pkg/util"
)

// AttachmentsHandler manages ticket attachment metadata endpoints.
type AttachmentsHandler struct {
	service *service.AttachmentService
}

// NewAttachmentsHandler constructs handler.
func NewAttachmentsHandler(attachmentService *service.AttachmentService) *AttachmentsHandler {
	return &AttachmentsHandler{service: attachmentService}
}

// Add POST /api/tickets/:id/attachments.
func (h *AttachmentsHandler) Add(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.AttachmentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	attachment, err := h.service.Add(c.Context(), c.Params("id"), principal.User.ID, service.AttachmentInput{
		FileName:    req.FileName,
		ContentType: req.ContentType,
		SizeBytes:   req.SizeBytes,
		StorageKey:  req.StorageKey,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewAttachmentResponse(*attachment)})
}

// List GET /api/tickets/:id/attachments.
func (h *AttachmentsHandler) List(c *fiber.Ctx) error {
	attachments, err := h.service.List(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	items := make([]dto.AttachmentResponse, 0, len(attachments))
	for _, attachment := range attachments {
		items = append(items, dto.NewAttachmentResponse(attachment))
	}
	return c.JSON(fiber.Map{"data": items})
}
