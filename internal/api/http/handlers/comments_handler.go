package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/helpdesk-kit/ticketing/internal/api/dto"
	"github.com/helpdesk-kit/ticketing/internal/auth"
	"github.com/helpdesk-kit/ticketing/internal/service"
	apperrors "github.com/helpdesk-kit/ticketing/pkg/util"
)

// CommentsHandler manages ticket comment endpoints.
type CommentsHandler struct {
	service *service.CommentService
}

// NewCommentsHandler constructs handler.
func NewCommentsHandler(commentService *service.CommentService) *CommentsHandler {
	return &CommentsHandler{service: commentService}
}

// Add POST /api/tickets/:id/comments.
func (h *CommentsHandler) Add(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CommentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	detail, err := h.service.Add(c.Context(), c.Params("id"), principal.User.ID, req.Body)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewCommentResponse(detail.Comment, detail.Author)})
}

// List GET /api/tickets/:id/comments.
func (h *CommentsHandler) List(c *fiber.Ctx) error {
	details, err := h.service.List(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	items := make([]dto.CommentResponse, 0, len(details))
	for _, detail := range details {
		items = append(items, dto.NewCommentResponse(detail.Comment, detail.Author))
	}
	return c.JSON(fiber.Map{"data": items})
}
