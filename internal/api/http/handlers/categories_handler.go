package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/helpdesk-kit/ticketing/internal/api/dto"
	"github.com/helpdesk-kit/ticketing/internal/service"
	apperrors "github.com/helpdesk-kit/ticketing/pkg/util"
)

// CategoriesHandler manages the category lookup table endpoints.
type CategoriesHandler struct {
	service *service.CategoryService
}

// NewCategoriesHandler constructs handler.
func NewCategoriesHandler(categoryService *service.CategoryService) *CategoriesHandler {
	return &CategoriesHandler{service: categoryService}
}

// Create POST /api/categories.
func (h *CategoriesHandler) Create(c *fiber.Ctx) error {
	var req dto.CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	category, err := h.service.Create(c.Context(), service.CategoryInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewCategoryResponse(*category)})
}

// Get GET /api/categories/:id.
func (h *CategoriesHandler) Get(c *fiber.Ctx) error {
	category, err := h.service.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewCategoryResponse(*category)})
}

// List GET /api/categories.
func (h *CategoriesHandler) List(c *fiber.Ctx) error {
	categories, err := h.service.List(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.CategoryResponse, 0, len(categories))
	for _, category := range categories {
		items = append(items, dto.NewCategoryResponse(category))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Update PUT /api/categories/:id.
func (h *CategoriesHandler) Update(c *fiber.Ctx) error {
	var req dto.CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	category, err := h.service.Update(c.Context(), c.Params("id"), service.CategoryInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewCategoryResponse(*category)})
}

// Delete DELETE /api/categories/:id.
func (h *CategoriesHandler) Delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
