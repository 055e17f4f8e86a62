package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk/internal/api/dto"
	"github.com/spec-kit/helpdesk/internal/domain"
	"github.com/spec-kit/helpdesk/internal/repository"
	apperrors "github.com/spec-kit/helpdesk/pkg/util/errorutil"
)

// LookupsHandler serves categories and internal systems.
type LookupsHandler struct {
	categories repository.CategoryRepository
}

// NewLookupsHandler constructs handler.
func NewLookupsHandler(categories repository.CategoryRepository) *LookupsHandler {
	return &LookupsHandler{categories: categories}
}

// ListCategories GET /lookups/categories. Non-admins only see active rows.
func (h *LookupsHandler) ListCategories(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	items, err := h.categories.ListCategories(c.Context(), !principal.IsAdmin())
	if err != nil {
		return err
	}
	out := make([]dto.LookupResponse, 0, len(items))
	for _, item := range items {
		out = append(out, dto.NewCategoryResponse(item))
	}
	return c.JSON(fiber.Map{"data": out})
}

// ListInternalSystems GET /lookups/internal-systems.
func (h *LookupsHandler) ListInternalSystems(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	items, err := h.categories.ListInternalSystems(c.Context(), !principal.IsAdmin())
	if err != nil {
		return err
	}
	out := make([]dto.LookupResponse, 0, len(items))
	for _, item := range items {
		out = append(out, dto.NewInternalSystemResponse(item))
	}
	return c.JSON(fiber.Map{"data": out})
}

// CreateCategory POST /admin/lookups/categories.
func (h *LookupsHandler) CreateCategory(c *fiber.Ctx) error {
	var req dto.CreateLookupRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}
	category := domain.Category{Name: req.Name, IsActive: activeOrDefault(req.IsActive)}
	if err := h.categories.CreateCategory(c.Context(), &category); err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewCategoryResponse(category)})
}

// UpdateCategory PUT /admin/lookups/categories/:id.
func (h *LookupsHandler) UpdateCategory(c *fiber.Ctx) error {
	var req dto.CreateLookupRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}
	category := domain.Category{ID: c.Params("id"), Name: req.Name, IsActive: activeOrDefault(req.IsActive)}
	if err := h.categories.UpdateCategory(c.Context(), &category); err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": dto.NewCategoryResponse(category)})
}

// CreateInternalSystem POST /admin/lookups/internal-systems.
func (h *LookupsHandler) CreateInternalSystem(c *fiber.Ctx) error {
	var req dto.CreateLookupRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}
	system := domain.InternalSystem{Name: req.Name, IsActive: activeOrDefault(req.IsActive)}
	if err := h.categories.CreateInternalSystem(c.Context(), &system); err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewInternalSystemResponse(system)})
}

// UpdateInternalSystem PUT /admin/lookups/internal-systems/:id.
func (h *LookupsHandler) UpdateInternalSystem(c *fiber.Ctx) error {
	var req dto.CreateLookupRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}
	system := domain.InternalSystem{ID: c.Params("id"), Name: req.Name, IsActive: activeOrDefault(req.IsActive)}
	if err := h.categories.UpdateInternalSystem(c.Context(), &system); err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": dto.NewInternalSystemResponse(system)})
}

func activeOrDefault(flag *bool) bool {
	if flag == nil {
		return true
	}
	return *flag
}
