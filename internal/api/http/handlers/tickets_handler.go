package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk/internal/api/dto"
	"github.com/spec-kit/helpdesk/internal/auth"
	"github.com/spec-kit/helpdesk/internal/domain"
	"github.com/spec-kit/helpdesk/internal/service"
	"github.com/spec-kit/helpdesk/internal/sla"
	apperrors "github.com/spec-kit/helpdesk/pkg/util/errorutil"
)

// TicketsHandler manages ticket endpoints.
type TicketsHandler struct {
	service *service.TicketService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(ticketService *service.TicketService) *TicketsHandler {
	return &TicketsHandler{service: ticketService}
}

// CreateTicket POST /tickets.
func (h *TicketsHandler) CreateTicket(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	input := service.TicketCreateInput{
		CategoryID:       req.CategoryID,
		InternalSystemID: req.InternalSystemID,
		Title:            req.Title,
		Description:      req.Description,
		Priority:         req.Priority,
	}
	ticket, err := h.service.CreateTicket(c.Context(), principal.User.ID, input)
	if err != nil {
		return err
	}
	annotated := h.service.Annotate(ticket, time.Now().UTC())
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewTicketSummary(&annotated)})
}

// ListTickets GET /tickets.
func (h *TicketsHandler) ListTickets(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	input := parseTicketListQuery(c)
	items, total, err := h.service.ListTickets(c.Context(), principal.User, input)
	if err != nil {
		return err
	}
	response := dto.TicketListResponse{
		Items: make([]dto.TicketSummary, 0, len(items)),
		Total: total,
	}
	for i := range items {
		response.Items = append(response.Items, dto.NewTicketSummary(&items[i]))
	}
	return c.JSON(fiber.Map{"data": response})
}

// GetTicket GET /tickets/:id.
func (h *TicketsHandler) GetTicket(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	detail, err := h.service.GetTicketDetail(c.Context(), principal.User, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketDetailResponse(detail)})
}

// AddComment POST /tickets/:id/comments.
func (h *TicketsHandler) AddComment(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	var req dto.AddCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}
	comment, err := h.service.AddComment(c.Context(), principal.User, c.Params("id"), req.Body, req.IsInternal)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.CommentResponse{
		ID:         comment.ID,
		AuthorID:   comment.AuthorID,
		Body:       comment.Body,
		IsInternal: comment.IsInternal,
		CreatedAt:  comment.CreatedAt,
	}})
}

// AddAttachment POST /tickets/:id/attachments.
func (h *TicketsHandler) AddAttachment(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	var req dto.AddAttachmentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}
	att, err := h.service.AddAttachment(c.Context(), principal.User, c.Params("id"), service.AttachmentInput{
		FileName:    req.FileName,
		StorageKey:  req.StorageKey,
		ContentType: req.ContentType,
		SizeBytes:   req.SizeBytes,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.AttachmentResponse{
		ID:          att.ID,
		FileName:    att.FileName,
		ContentType: att.ContentType,
		SizeBytes:   att.SizeBytes,
		UploadedAt:  att.UploadedAt,
	}})
}

// CloseTicket POST /tickets/:id/close.
func (h *TicketsHandler) CloseTicket(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	ticket, err := h.service.CloseAsRequester(c.Context(), principal.User, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"id": ticket.ID, "status": ticket.Status}})
}

// ReopenTicket POST /tickets/:id/reopen.
func (h *TicketsHandler) ReopenTicket(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	var req dto.ReopenRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}
	ticket, err := h.service.Reopen(c.Context(), principal.User, c.Params("id"), req.Reason)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{
		"id":           ticket.ID,
		"status":       ticket.Status,
		"reopen_count": ticket.ReopenCount,
	}})
}

// UpdateStatus PATCH /admin/tickets/:id/status.
func (h *TicketsHandler) UpdateStatus(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}
	ticket, err := h.service.UpdateStatus(c.Context(), principal.User, c.Params("id"), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"id": ticket.ID, "status": ticket.Status}})
}

// UpdatePriority PATCH /admin/tickets/:id/priority.
func (h *TicketsHandler) UpdatePriority(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	var req dto.UpdatePriorityRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}
	ticket, err := h.service.UpdatePriority(c.Context(), principal.User, c.Params("id"), req.Priority)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"id": ticket.ID, "priority": ticket.Priority}})
}

// Reclassify PATCH /admin/tickets/:id/classification.
func (h *TicketsHandler) Reclassify(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	var req dto.ReclassifyRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}
	ticket, err := h.service.Reclassify(c.Context(), principal.User, c.Params("id"), req.CategoryID, req.InternalSystemID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{
		"id":                 ticket.ID,
		"category_id":        ticket.CategoryID,
		"internal_system_id": ticket.InternalSystemID,
	}})
}

// Assign PATCH /admin/tickets/:id/assignee.
func (h *TicketsHandler) Assign(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	var req dto.AssignRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}
	ticket, err := h.service.Assign(c.Context(), principal.User, c.Params("id"), req.AssigneeID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{
		"id":          ticket.ID,
		"assignee_id": ticket.AssigneeID,
		"status":      ticket.Status,
	}})
}

// LogTime POST /admin/tickets/:id/time-entries.
func (h *TicketsHandler) LogTime(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	var req dto.LogTimeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}
	workDate, err := time.Parse("2006-01-02", req.WorkDate)
	if err != nil {
		return apperrors.NewValidationError("work_date must be YYYY-MM-DD", nil)
	}
	entry, err := h.service.LogTime(c.Context(), principal.User, c.Params("id"), req.Minutes, workDate, req.Note)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewTimeEntryResponse(entry)})
}

// ListTimeEntries GET /admin/tickets/:id/time-entries.
func (h *TicketsHandler) ListTimeEntries(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	entries, err := h.service.ListTimeEntries(c.Context(), principal.User, c.Params("id"))
	if err != nil {
		return err
	}
	items := make([]dto.TimeEntryResponse, 0, len(entries))
	for i := range entries {
		items = append(items, dto.NewTimeEntryResponse(&entries[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// DeleteTimeEntry DELETE /admin/time-entries/:id.
func (h *TicketsHandler) DeleteTimeEntry(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	if err := h.service.DeleteTimeEntry(c.Context(), principal.User, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func requirePrincipal(c *fiber.Ctx) (*auth.Principal, error) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return nil, apperrors.NewUnauthorized("user required")
	}
	return principal, nil
}

func parseTicketListQuery(c *fiber.Ctx) service.TicketListInput {
	input := service.TicketListInput{
		AssigneeID:       c.Query("assignee_id"),
		Unassigned:       c.Query("unassigned") == "true",
		CategoryID:       c.Query("category_id"),
		InternalSystemID: c.Query("internal_system_id"),
		SearchTerm:       strings.TrimSpace(c.Query("q")),
	}
	for _, raw := range splitCSV(c.Query("status")) {
		status := domain.TicketStatus(strings.ToUpper(raw))
		if domain.ValidStatus(status) {
			input.Statuses = append(input.Statuses, status)
		}
	}
	for _, raw := range splitCSV(c.Query("priority")) {
		priority := domain.TicketPriority(strings.ToUpper(raw))
		if domain.ValidPriority(priority) {
			input.Priorities = append(input.Priorities, priority)
		}
	}
	switch sla.State(strings.ToUpper(c.Query("sla"))) {
	case sla.StateOnTrack:
		input.SlaState = sla.StateOnTrack
	case sla.StateDueSoon:
		input.SlaState = sla.StateDueSoon
	case sla.StateOverdue:
		input.SlaState = sla.StateOverdue
	}
	if from, err := time.Parse(time.RFC3339, c.Query("created_from")); err == nil {
		input.CreatedFrom = &from
	}
	if to, err := time.Parse(time.RFC3339, c.Query("created_to")); err == nil {
		input.CreatedTo = &to
	}

	page, _ := strconv.Atoi(c.Query("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(c.Query("page_size", "25"))
	if pageSize < 1 || pageSize > 100 {
		pageSize = 25
	}
	input.Limit = pageSize
	input.Offset = (page - 1) * pageSize
	return input
}

func splitCSV(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
