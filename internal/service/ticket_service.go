package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/helpdesk/internal/domain"
	"github.com/spec-kit/helpdesk/internal/events"
	"github.com/spec-kit/helpdesk/internal/repository"
	"github.com/spec-kit/helpdesk/internal/sla"
	apperrors "github.com/spec-kit/helpdesk/pkg/util/errorutil"
)

// TicketService coordinates ticket workflows.
type TicketService struct {
	tickets     repository.TicketRepository
	comments    repository.CommentRepository
	attachments repository.AttachmentRepository
	timeEntries repository.TimeEntryRepository
	ticketEvts  repository.EventRepository
	categories  repository.CategoryRepository
	users       repository.UserRepository
	evaluator   *sla.Evaluator
	dispatcher  events.Dispatcher
}

// TicketDependencies bundles repositories for ticket service.
type TicketDependencies struct {
	TicketRepo     repository.TicketRepository
	CommentRepo    repository.CommentRepository
	AttachmentRepo repository.AttachmentRepository
	TimeEntryRepo  repository.TimeEntryRepository
	EventRepo      repository.EventRepository
	CategoryRepo   repository.CategoryRepository
	UserRepo       repository.UserRepository
	Evaluator      *sla.Evaluator
	Dispatcher     events.Dispatcher
}

// TicketCreateInput describes ticket creation payload.
type TicketCreateInput struct {
	CategoryID       string
	InternalSystemID *string
	Title            string
	Description      string
	Priority         domain.TicketPriority
}

// TicketListInput describes listing filters exposed to callers.
type TicketListInput struct {
	AssigneeID       string
	Unassigned       bool
	CategoryID       string
	InternalSystemID string
	Statuses         []domain.TicketStatus
	Priorities       []domain.TicketPriority
	SlaState         sla.State
	SearchTerm       string
	CreatedFrom      *time.Time
	CreatedTo        *time.Time
	Limit            int
	Offset           int
}

// AttachmentInput defines attachment metadata supplied on upload.
type AttachmentInput struct {
	FileName    string
	StorageKey  string
	ContentType string
	SizeBytes   int64
}

// TicketWithSla decorates a ticket with its live SLA reading.
type TicketWithSla struct {
	Ticket   domain.Ticket
	SlaState sla.State
	Deadline time.Time
	Age      string
}

// TicketDetail aggregates everything the ticket page needs.
type TicketDetail struct {
	Ticket      domain.Ticket
	SlaState    sla.State
	Deadline    time.Time
	Age         string
	Comments    []domain.TicketComment
	Attachments []domain.AttachmentMeta
	Events      []domain.TicketEvent
	TimeTotals  []repository.TimeEntryTotal
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:     deps.TicketRepo,
		comments:    deps.CommentRepo,
		attachments: deps.AttachmentRepo,
		timeEntries: deps.TimeEntryRepo,
		ticketEvts:  deps.EventRepo,
		categories:  deps.CategoryRepo,
		users:       deps.UserRepo,
		evaluator:   deps.Evaluator,
		dispatcher:  deps.Dispatcher,
	}
}

// CreateTicket creates a ticket for a requester.
func (s *TicketService) CreateTicket(ctx context.Context, requesterID string, input TicketCreateInput) (*domain.Ticket, error) {
	category, err := s.categories.GetCategory(ctx, input.CategoryID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if !category.IsActive {
		return nil, apperrors.NewValidationError("category inactive", nil)
	}
	if input.InternalSystemID != nil {
		system, err := s.categories.GetInternalSystem(ctx, *input.InternalSystemID)
		if err != nil {
			return nil, apperrors.MapError(err)
		}
		if !system.IsActive {
			return nil, apperrors.NewValidationError("internal system inactive", nil)
		}
	}

	priority := input.Priority
	if priority == "" {
		priority = domain.TicketPriorityNone
	}
	if !domain.ValidPriority(priority) {
		return nil, apperrors.NewValidationError("unknown priority", map[string]any{"priority": priority})
	}

	ticket := &domain.Ticket{
		ExternalKey:      generateTicketKey(),
		RequesterID:      requesterID,
		CategoryID:       input.CategoryID,
		InternalSystemID: input.InternalSystemID,
		Title:            strings.TrimSpace(input.Title),
		Description:      strings.TrimSpace(input.Description),
		Status:           domain.TicketStatusOpen,
		Priority:         priority,
	}
	if ticket.Title == "" {
		return nil, apperrors.NewValidationError("title required", nil)
	}

	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, err
	}
	s.recordTicketEvent(ctx, ticket.ID, requesterID, domain.TicketEventCreated, "ticket created")
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.ID,
		ActorID:  requesterID,
		Payload: events.TicketCreatedPayload{
			ExternalKey: ticket.ExternalKey,
			CategoryID:  ticket.CategoryID,
			Priority:    ticket.Priority,
			Title:       ticket.Title,
			RequesterID: requesterID,
		},
	})
	return ticket, nil
}

// ListTickets returns a ticket page annotated with SLA state. Non-admin
// callers only see their own tickets.
func (s *TicketService) ListTickets(ctx context.Context, principal *domain.User, input TicketListInput) ([]TicketWithSla, int, error) {
	filter := repository.TicketFilter{
		AssigneeID:       input.AssigneeID,
		Unassigned:       input.Unassigned,
		CategoryID:       input.CategoryID,
		InternalSystemID: input.InternalSystemID,
		Statuses:         input.Statuses,
		Priorities:       input.Priorities,
		SearchTerm:       input.SearchTerm,
		CreatedFrom:      input.CreatedFrom,
		CreatedTo:        input.CreatedTo,
		Limit:            input.Limit,
		Offset:           input.Offset,
	}
	if !principal.IsAdmin() {
		filter.RequesterID = principal.ID
	}

	tickets, total, err := s.tickets.ListWithFilter(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	now := time.Now().UTC()
	result := make([]TicketWithSla, 0, len(tickets))
	for i := range tickets {
		annotated := s.Annotate(&tickets[i], now)
		if input.SlaState != "" && annotated.SlaState != input.SlaState {
			continue
		}
		result = append(result, annotated)
	}
	if input.SlaState != "" {
		// Post-filtering shrinks the page, so the repo total no longer applies.
		total = len(result)
	}
	return result, total, nil
}

// GetTicketDetail loads a ticket page, enforcing ownership for non-admins.
// Internal notes are stripped for requesters.
func (s *TicketService) GetTicketDetail(ctx context.Context, principal *domain.User, ticketID string) (*TicketDetail, error) {
	ticket, err := s.loadAccessible(ctx, principal, ticketID)
	if err != nil {
		return nil, err
	}

	comments, err := s.comments.ListByTicket(ctx, ticket.ID, principal.IsAdmin())
	if err != nil {
		return nil, err
	}
	attachments, err := s.attachments.ListByTicket(ctx, ticket.ID)
	if err != nil {
		return nil, err
	}
	evts, err := s.ticketEvts.ListByTicket(ctx, ticket.ID)
	if err != nil {
		return nil, err
	}
	totals, err := s.timeEntries.TotalsByTicket(ctx, ticket.ID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	annotated := s.Annotate(ticket, now)
	return &TicketDetail{
		Ticket:      *ticket,
		SlaState:    annotated.SlaState,
		Deadline:    annotated.Deadline,
		Age:         annotated.Age,
		Comments:    comments,
		Attachments: attachments,
		Events:      evts,
		TimeTotals:  totals,
	}, nil
}

// AddComment appends a comment. Only admins may post internal notes, and
// requesters may only comment on their own tickets.
func (s *TicketService) AddComment(ctx context.Context, principal *domain.User, ticketID, body string, isInternal bool) (*domain.TicketComment, error) {
	ticket, err := s.loadAccessible(ctx, principal, ticketID)
	if err != nil {
		return nil, err
	}
	if isInternal && !principal.IsAdmin() {
		return nil, apperrors.NewForbidden("internal notes are admin only")
	}
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, apperrors.NewValidationError("body required", nil)
	}
	if ticket.IsClosed() {
		return nil, apperrors.NewConflict("ticket is closed", nil)
	}

	comment := &domain.TicketComment{
		TicketID:   ticket.ID,
		AuthorID:   principal.ID,
		Body:       body,
		IsInternal: isInternal,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	s.recordTicketEvent(ctx, ticket.ID, principal.ID, domain.TicketEventCommented, "comment added")
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketCommented,
		TicketID: ticket.ID,
		ActorID:  principal.ID,
		Payload: events.TicketCommentedPayload{
			CommentID:   comment.ID,
			IsInternal:  comment.IsInternal,
			BodyPreview: stringPreview(comment.Body, 120),
		},
	})
	return comment, nil
}

// AddAttachment records attachment metadata on a ticket.
func (s *TicketService) AddAttachment(ctx context.Context, principal *domain.User, ticketID string, input AttachmentInput) (*domain.AttachmentMeta, error) {
	ticket, err := s.loadAccessible(ctx, principal, ticketID)
	if err != nil {
		return nil, err
	}
	if ticket.IsClosed() {
		return nil, apperrors.NewConflict("ticket is closed", nil)
	}
	if strings.TrimSpace(input.FileName) == "" || strings.TrimSpace(input.StorageKey) == "" {
		return nil, apperrors.NewValidationError("file_name and storage_key required", nil)
	}

	att := &domain.AttachmentMeta{
		TicketID:     ticket.ID,
		UploadedByID: principal.ID,
		FileName:     input.FileName,
		StorageKey:   input.StorageKey,
		ContentType:  input.ContentType,
		SizeBytes:    input.SizeBytes,
	}
	if err := s.attachments.Create(ctx, att); err != nil {
		return nil, err
	}
	return att, nil
}

// UpdateStatus moves a ticket through its lifecycle. Admin only.
func (s *TicketService) UpdateStatus(ctx context.Context, admin *domain.User, ticketID string, newStatus domain.TicketStatus) (*domain.Ticket, error) {
	if !admin.IsAdmin() {
		return nil, apperrors.NewForbidden("admin required")
	}
	if !domain.ValidStatus(newStatus) {
		return nil, apperrors.NewValidationError("unknown status", map[string]any{"status": newStatus})
	}
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if !isValidTransition(ticket.Status, newStatus) {
		return nil, apperrors.NewConflict(
			fmt.Sprintf("cannot move ticket from %s to %s", ticket.Status, newStatus), nil)
	}

	oldStatus := ticket.Status
	ticket.Status = newStatus
	if newStatus == domain.TicketStatusClosed {
		now := time.Now()
		ticket.ClosedAt = &now
	}
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, err
	}
	s.recordTicketEvent(ctx, ticket.ID, admin.ID, domain.TicketEventStatusChanged,
		fmt.Sprintf("status %s -> %s", oldStatus, newStatus))
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketStatusChanged,
		TicketID: ticket.ID,
		ActorID:  admin.ID,
		Payload: events.TicketStatusChangedPayload{
			OldStatus: oldStatus,
			NewStatus: newStatus,
		},
	})
	return ticket, nil
}

// UpdatePriority changes ticket priority. Admin only.
func (s *TicketService) UpdatePriority(ctx context.Context, admin *domain.User, ticketID string, newPriority domain.TicketPriority) (*domain.Ticket, error) {
	if !admin.IsAdmin() {
		return nil, apperrors.NewForbidden("admin required")
	}
	if !domain.ValidPriority(newPriority) {
		return nil, apperrors.NewValidationError("unknown priority", map[string]any{"priority": newPriority})
	}
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if ticket.IsClosed() {
		return nil, apperrors.NewConflict("ticket is closed", nil)
	}

	oldPriority := ticket.Priority
	ticket.Priority = newPriority
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, err
	}
	s.recordTicketEvent(ctx, ticket.ID, admin.ID, domain.TicketEventPriorityChanged,
		fmt.Sprintf("priority %s -> %s", oldPriority, newPriority))
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketPriorityChanged,
		TicketID: ticket.ID,
		ActorID:  admin.ID,
		Payload: events.TicketPriorityChangedPayload{
			OldPriority: oldPriority,
			NewPriority: newPriority,
		},
	})
	return ticket, nil
}

// Reclassify moves a ticket to another category and, optionally, another
// internal system. Admin only. Passing a nil internalSystemID clears the
// system link.
func (s *TicketService) Reclassify(ctx context.Context, admin *domain.User, ticketID, categoryID string, internalSystemID *string) (*domain.Ticket, error) {
	if !admin.IsAdmin() {
		return nil, apperrors.NewForbidden("admin required")
	}
	category, err := s.categories.GetCategory(ctx, categoryID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if !category.IsActive {
		return nil, apperrors.NewValidationError("category inactive", nil)
	}
	if internalSystemID != nil {
		system, err := s.categories.GetInternalSystem(ctx, *internalSystemID)
		if err != nil {
			return nil, apperrors.MapError(err)
		}
		if !system.IsActive {
			return nil, apperrors.NewValidationError("internal system inactive", nil)
		}
	}
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if ticket.IsClosed() {
		return nil, apperrors.NewConflict("ticket is closed", nil)
	}

	oldCategory := ticket.CategoryID
	ticket.CategoryID = categoryID
	ticket.InternalSystemID = internalSystemID
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, err
	}
	s.recordTicketEvent(ctx, ticket.ID, admin.ID, domain.TicketEventReclassified,
		fmt.Sprintf("category %s -> %s", oldCategory, categoryID))
	return ticket, nil
}

// Assign sets or clears the assignee. Admin only. A nil assigneeID
// unassigns the ticket.
func (s *TicketService) Assign(ctx context.Context, admin *domain.User, ticketID string, assigneeID *string) (*domain.Ticket, error) {
	if !admin.IsAdmin() {
		return nil, apperrors.NewForbidden("admin required")
	}
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if ticket.IsClosed() {
		return nil, apperrors.NewConflict("ticket is closed", nil)
	}
	if assigneeID != nil {
		assignee, err := s.users.GetByID(ctx, *assigneeID)
		if err != nil {
			return nil, apperrors.MapError(err)
		}
		if !assignee.IsAdmin() {
			return nil, apperrors.NewValidationError("assignee must be an admin", nil)
		}
		if assignee.Status != domain.UserStatusActive {
			return nil, apperrors.NewValidationError("assignee suspended", nil)
		}
	}

	ticket.AssigneeID = assigneeID
	if ticket.Status == domain.TicketStatusOpen && assigneeID != nil {
		ticket.Status = domain.TicketStatusInProgress
	}
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, err
	}
	message := "ticket unassigned"
	if assigneeID != nil {
		message = "ticket assigned"
	}
	s.recordTicketEvent(ctx, ticket.ID, admin.ID, domain.TicketEventAssigned, message)
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketAssigned,
		TicketID: ticket.ID,
		ActorID:  admin.ID,
		Payload:  events.TicketAssignedPayload{AssigneeID: assigneeID},
	})
	return ticket, nil
}

// CloseAsRequester lets the requester close a resolved or waiting ticket.
func (s *TicketService) CloseAsRequester(ctx context.Context, principal *domain.User, ticketID string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if ticket.RequesterID != principal.ID {
		return nil, apperrors.NewForbidden("not your ticket")
	}
	if ticket.Status != domain.TicketStatusResolved && ticket.Status != domain.TicketStatusWaitingOnUser {
		return nil, apperrors.NewConflict("ticket cannot be closed in current status", nil)
	}

	oldStatus := ticket.Status
	now := time.Now()
	ticket.Status = domain.TicketStatusClosed
	ticket.ClosedAt = &now
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, err
	}
	s.recordTicketEvent(ctx, ticket.ID, principal.ID, domain.TicketEventStatusChanged,
		fmt.Sprintf("status %s -> %s", oldStatus, domain.TicketStatusClosed))
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketStatusChanged,
		TicketID: ticket.ID,
		ActorID:  principal.ID,
		Payload: events.TicketStatusChangedPayload{
			OldStatus: oldStatus,
			NewStatus: domain.TicketStatusClosed,
		},
	})
	return ticket, nil
}

// Reopen brings a resolved or closed ticket back to OPEN and bumps the
// reopen counter. Requesters may reopen their own tickets, admins any.
func (s *TicketService) Reopen(ctx context.Context, principal *domain.User, ticketID, reason string) (*domain.Ticket, error) {
	ticket, err := s.loadAccessible(ctx, principal, ticketID)
	if err != nil {
		return nil, err
	}
	if ticket.Status != domain.TicketStatusResolved && ticket.Status != domain.TicketStatusClosed {
		return nil, apperrors.NewConflict("only resolved or closed tickets can be reopened", nil)
	}

	now := time.Now()
	ticket.Status = domain.TicketStatusOpen
	ticket.ClosedAt = nil
	ticket.ReopenCount++
	ticket.ReopenedAt = &now
	reopenedBy := principal.ID
	ticket.ReopenedByID = &reopenedBy
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, err
	}

	message := "ticket reopened"
	if reason = strings.TrimSpace(reason); reason != "" {
		message = "ticket reopened: " + reason
	}
	s.recordTicketEvent(ctx, ticket.ID, principal.ID, domain.TicketEventReopened, message)
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketReopened,
		TicketID: ticket.ID,
		ActorID:  principal.ID,
		Payload:  events.TicketReopenedPayload{ReopenCount: ticket.ReopenCount},
	})
	return ticket, nil
}

// LogTime records worked minutes against a ticket. Admin only.
func (s *TicketService) LogTime(ctx context.Context, admin *domain.User, ticketID string, minutes int, workDate time.Time, note *string) (*domain.TimeEntry, error) {
	if !admin.IsAdmin() {
		return nil, apperrors.NewForbidden("admin required")
	}
	if minutes < 1 || minutes > domain.MaxTimeEntryMinutes {
		return nil, apperrors.NewValidationError("minutes must be between 1 and 1440", map[string]any{"minutes": minutes})
	}
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	entry := &domain.TimeEntry{
		TicketID: ticket.ID,
		UserID:   admin.ID,
		Minutes:  minutes,
		WorkDate: workDate,
		Note:     note,
	}
	if err := s.timeEntries.Create(ctx, entry); err != nil {
		return nil, err
	}
	s.recordTicketEvent(ctx, ticket.ID, admin.ID, domain.TicketEventTimeLogged,
		fmt.Sprintf("logged %s", sla.FormatMinutes(minutes)))
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTimeLogged,
		TicketID: ticket.ID,
		ActorID:  admin.ID,
		Payload:  events.TimeLoggedPayload{EntryID: entry.ID, Minutes: minutes},
	})
	return entry, nil
}

// DeleteTimeEntry soft-deletes a time entry. Admins may remove any entry,
// the entry author their own.
func (s *TicketService) DeleteTimeEntry(ctx context.Context, principal *domain.User, entryID string) error {
	entry, err := s.timeEntries.GetByID(ctx, entryID)
	if err != nil {
		return apperrors.MapError(err)
	}
	if !principal.IsAdmin() && entry.UserID != principal.ID {
		return apperrors.NewForbidden("not your time entry")
	}
	if err := s.timeEntries.SoftDelete(ctx, entryID); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

// ListTimeEntries lists live entries for a ticket. Admin only.
func (s *TicketService) ListTimeEntries(ctx context.Context, admin *domain.User, ticketID string) ([]domain.TimeEntry, error) {
	if !admin.IsAdmin() {
		return nil, apperrors.NewForbidden("admin required")
	}
	if _, err := s.tickets.GetByID(ctx, ticketID); err != nil {
		return nil, apperrors.MapError(err)
	}
	return s.timeEntries.ListByTicket(ctx, ticketID)
}

func (s *TicketService) loadAccessible(ctx context.Context, principal *domain.User, ticketID string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if !principal.IsAdmin() && ticket.RequesterID != principal.ID {
		return nil, apperrors.NewForbidden("not your ticket")
	}
	return ticket, nil
}

// Annotate attaches the SLA state, deadline and display age to a ticket.
// Closed tickets carry no live SLA state.
func (s *TicketService) Annotate(ticket *domain.Ticket, nowUTC time.Time) TicketWithSla {
	annotated := TicketWithSla{
		Ticket: *ticket,
		Age:    sla.FormatAge(ticket.CreatedAt.UTC(), nowUTC),
	}
	if ticket.IsClosed() {
		annotated.SlaState = sla.StateOnTrack
		return annotated
	}
	annotated.SlaState = s.evaluator.Classify(ticket.CreatedAt.UTC(), ticket.Priority, nowUTC)
	annotated.Deadline = s.evaluator.Deadline(ticket.CreatedAt.UTC(), ticket.Priority)
	return annotated
}

func (s *TicketService) recordTicketEvent(ctx context.Context, ticketID, actorID string, eventType domain.TicketEventType, message string) {
	entry := &domain.TicketEvent{
		TicketID:  ticketID,
		ActorID:   actorID,
		EventType: eventType,
		Message:   message,
	}
	_ = s.ticketEvts.Create(ctx, entry)
}

func (s *TicketService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func generateTicketKey() string {
	return "TCK-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

func stringPreview(body string, max int) string {
	body = strings.TrimSpace(body)
	if len(body) <= max {
		return body
	}
	if max <= 3 {
		return body[:max]
	}
	return body[:max-3] + "..."
}

var allowedTransitions = map[domain.TicketStatus][]domain.TicketStatus{
	domain.TicketStatusOpen:          {domain.TicketStatusInProgress, domain.TicketStatusWaitingOnUser, domain.TicketStatusResolved, domain.TicketStatusClosed},
	domain.TicketStatusInProgress:    {domain.TicketStatusWaitingOnUser, domain.TicketStatusResolved, domain.TicketStatusClosed},
	domain.TicketStatusWaitingOnUser: {domain.TicketStatusInProgress, domain.TicketStatusResolved, domain.TicketStatusClosed},
	domain.TicketStatusResolved:      {domain.TicketStatusInProgress, domain.TicketStatusClosed},
	domain.TicketStatusClosed:        {},
}

func isValidTransition(current, next domain.TicketStatus) bool {
	for _, candidate := range allowedTransitions[current] {
		if candidate == next {
			return true
		}
	}
	return false
}
