package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"strconv"
	"time"

	"github.com/spec-kit/helpdesk/internal/domain"
	"github.com/spec-kit/helpdesk/internal/repository"
	"github.com/spec-kit/helpdesk/internal/sla"
	apperrors "github.com/spec-kit/helpdesk/pkg/util/errorutil"
)

// ReportService produces period summaries and the CSV export.
type ReportService struct {
	tickets     repository.TicketRepository
	timeEntries repository.TimeEntryRepository
	evaluator   *sla.Evaluator
}

// NewReportService constructs the service.
func NewReportService(tickets repository.TicketRepository, timeEntries repository.TimeEntryRepository, evaluator *sla.Evaluator) *ReportService {
	return &ReportService{tickets: tickets, timeEntries: timeEntries, evaluator: evaluator}
}

// ReportSummary is the admin period report.
type ReportSummary struct {
	From             time.Time                    `json:"from"`
	To               time.Time                    `json:"to"`
	TotalCreated     int                          `json:"total_created"`
	ByStatus         map[domain.TicketStatus]int  `json:"by_status"`
	Overdue          int                          `json:"overdue"`
	DueSoon          int                          `json:"due_soon"`
	MinutesLogged    int                          `json:"minutes_logged"`
	TimeLogged       string                       `json:"time_logged"`
	TopTicketsByTime []repository.TicketTimeTotal `json:"top_tickets_by_time"`
}

// Summary builds the aggregate report for a period. Admin only.
func (s *ReportService) Summary(ctx context.Context, principal *domain.User, from, to time.Time) (*ReportSummary, error) {
	if !principal.IsAdmin() {
		return nil, apperrors.NewForbidden("admin required")
	}
	if !to.After(from) {
		return nil, apperrors.NewValidationError("to must be after from", nil)
	}

	_, totalCreated, err := s.tickets.ListWithFilter(ctx, repository.TicketFilter{
		CreatedFrom: &from,
		CreatedTo:   &to,
		Limit:       1,
	})
	if err != nil {
		return nil, err
	}

	byStatus, err := s.tickets.CountByStatus(ctx, "")
	if err != nil {
		return nil, err
	}

	candidates, err := s.tickets.ListSlaCandidates(ctx, "")
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	summary := &ReportSummary{
		From:         from,
		To:           to,
		TotalCreated: totalCreated,
		ByStatus:     byStatus,
	}
	for _, candidate := range candidates {
		switch s.evaluator.Classify(candidate.CreatedAt.UTC(), candidate.Priority, now) {
		case sla.StateOverdue:
			summary.Overdue++
		case sla.StateDueSoon:
			summary.DueSoon++
		}
	}

	summary.MinutesLogged, err = s.timeEntries.SumSince(ctx, from)
	if err != nil {
		return nil, err
	}
	summary.TimeLogged = sla.FormatMinutes(summary.MinutesLogged)

	summary.TopTicketsByTime, err = s.timeEntries.TopTicketsSince(ctx, from, 10)
	if err != nil {
		return nil, err
	}
	return summary, nil
}

var csvHeader = []string{
	"external_key", "title", "status", "priority",
	"created_at", "closed_at", "reopen_count", "sla_state", "age", "total_time",
}

// ExportTicketsCSV renders the filtered ticket list as CSV. Admin only.
func (s *ReportService) ExportTicketsCSV(ctx context.Context, principal *domain.User, filter repository.TicketFilter) ([]byte, error) {
	if !principal.IsAdmin() {
		return nil, apperrors.NewForbidden("admin required")
	}
	if filter.Limit <= 0 {
		filter.Limit = 10000
	}
	tickets, _, err := s.tickets.ListWithFilter(ctx, filter)
	if err != nil {
		return nil, err
	}

	ticketIDs := make([]string, len(tickets))
	for i := range tickets {
		ticketIDs[i] = tickets[i].ID
	}
	minutesByTicket, err := s.timeEntries.MinutesByTicket(ctx, ticketIDs)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if err := writer.Write(csvHeader); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	for i := range tickets {
		ticket := &tickets[i]
		state := sla.StateOnTrack
		if !ticket.IsClosed() {
			state = s.evaluator.Classify(ticket.CreatedAt.UTC(), ticket.Priority, now)
		}
		closedAt := ""
		if ticket.ClosedAt != nil {
			closedAt = ticket.ClosedAt.UTC().Format(time.RFC3339)
		}
		record := []string{
			ticket.ExternalKey,
			ticket.Title,
			string(ticket.Status),
			string(ticket.Priority),
			ticket.CreatedAt.UTC().Format(time.RFC3339),
			closedAt,
			strconv.Itoa(ticket.ReopenCount),
			string(state),
			sla.FormatAge(ticket.CreatedAt.UTC(), now),
			sla.FormatMinutes(minutesByTicket[ticket.ID]),
		}
		if err := writer.Write(record); err != nil {
			return nil, err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
