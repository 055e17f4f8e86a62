package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk/internal/service"
)

// DashboardHandler serves the landing page aggregates.
type DashboardHandler struct {
	service *service.DashboardService
}

// NewDashboardHandler constructs handler.
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: dashboardService}
}

// GetDashboard GET /dashboard.
func (h *DashboardHandler) GetDashboard(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	dashboard, err := h.service.Build(c.Context(), principal.User, time.Now())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dashboard})
}

// GetWorkload GET /admin/dashboard/workload.
func (h *DashboardHandler) GetWorkload(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	workload, err := h.service.Workload(c.Context(), principal.User)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": workload})
}
