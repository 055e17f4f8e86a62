package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk/internal/repository"
	"github.com/spec-kit/helpdesk/internal/service"
	apperrors "github.com/spec-kit/helpdesk/pkg/util/errorutil"
)

// ReportsHandler serves admin reporting endpoints.
type ReportsHandler struct {
	service *service.ReportService
}

// NewReportsHandler constructs handler.
func NewReportsHandler(reportService *service.ReportService) *ReportsHandler {
	return &ReportsHandler{service: reportService}
}

// GetSummary GET /admin/reports/summary?from=...&to=...
func (h *ReportsHandler) GetSummary(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	from, to, err := parseReportRange(c)
	if err != nil {
		return err
	}
	summary, err := h.service.Summary(c.Context(), principal.User, from, to)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": summary})
}

// ExportCSV GET /admin/reports/tickets.csv.
func (h *ReportsHandler) ExportCSV(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	filter := repository.TicketFilter{}
	if from, err := time.Parse(time.RFC3339, c.Query("from")); err == nil {
		filter.CreatedFrom = &from
	}
	if to, err := time.Parse(time.RFC3339, c.Query("to")); err == nil {
		filter.CreatedTo = &to
	}
	data, err := h.service.ExportTicketsCSV(c.Context(), principal.User, filter)
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="tickets.csv"`)
	return c.Send(data)
}

func parseReportRange(c *fiber.Ctx) (time.Time, time.Time, error) {
	now := time.Now().UTC()
	from := now.AddDate(0, 0, -30)
	to := now
	if raw := c.Query("from"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return time.Time{}, time.Time{}, apperrors.NewValidationError("from must be RFC3339", nil)
		}
		from = parsed
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return time.Time{}, time.Time{}, apperrors.NewValidationError("to must be RFC3339", nil)
		}
		to = parsed
	}
	return from, to, nil
}
