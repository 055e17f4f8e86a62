package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"github.com/spec-kit/helpdesk/internal/domain"
	"github.com/spec-kit/helpdesk/internal/repository"
)

func TestExportTicketsCSV(t *testing.T) {
	tickets := newFakeTicketRepo()
	entries := &fakeTimeEntryRepo{}
	svc := NewReportService(tickets, entries, testEvaluator(t))

	created := time.Date(2024, 1, 8, 9, 0, 0, 0, time.UTC)
	open := seedTicket(t, tickets, "user-1", domain.TicketPriorityCritical, domain.TicketStatusOpen, created)
	closedTicket := seedTicket(t, tickets, "user-1", domain.TicketPriorityLow, domain.TicketStatusClosed, created)
	closedAt := created.Add(2 * time.Hour)
	tickets.tickets[closedTicket.ID].ClosedAt = &closedAt
	entries.entries = append(entries.entries,
		domain.TimeEntry{ID: "te-1", TicketID: closedTicket.ID, UserID: "admin-1", Minutes: 90, WorkDate: created},
		domain.TimeEntry{ID: "te-2", TicketID: closedTicket.ID, UserID: "admin-1", Minutes: 35, WorkDate: created},
		domain.TimeEntry{ID: "te-3", TicketID: closedTicket.ID, UserID: "admin-1", Minutes: 60, WorkDate: created, IsDeleted: true},
	)

	data, err := svc.ExportTicketsCSV(context.Background(), adminUser(), repository.TicketFilter{})
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("csv rows = %d, want header + 2", len(records))
	}
	header := records[0]
	if header[0] != "external_key" || header[7] != "sla_state" || header[9] != "total_time" {
		t.Errorf("unexpected header: %v", header)
	}

	byKey := map[string][]string{}
	for _, row := range records[1:] {
		if len(row) != len(header) {
			t.Fatalf("row width %d, want %d", len(row), len(header))
		}
		byKey[row[0]] = row
	}

	// Closed tickets carry no live SLA state and keep their close timestamp.
	closedRow := byKey[closedTicket.ExternalKey]
	if closedRow[7] != "ON_TRACK" {
		t.Errorf("closed sla state = %s", closedRow[7])
	}
	if closedRow[5] == "" {
		t.Error("closed_at column empty for closed ticket")
	}
	if closedRow[9] != "2h 5m" {
		t.Errorf("total_time = %s, want 2h 5m excluding the deleted entry", closedRow[9])
	}
	openRow := byKey[open.ExternalKey]
	if openRow[5] != "" {
		t.Error("closed_at set for open ticket")
	}
	if openRow[2] != "OPEN" || openRow[3] != "CRITICAL" {
		t.Errorf("unexpected open row: %v", openRow)
	}
	if openRow[9] != "0m" {
		t.Errorf("total_time = %s for ticket with no entries, want 0m", openRow[9])
	}
}

func TestReportSummaryCountsSla(t *testing.T) {
	tickets := newFakeTicketRepo()
	entries := &fakeTimeEntryRepo{}
	svc := NewReportService(tickets, entries, testEvaluator(t))

	created := time.Date(2024, 1, 8, 9, 0, 0, 0, time.UTC)
	ticket := seedTicket(t, tickets, "user-1", domain.TicketPriorityCritical, domain.TicketStatusOpen, created)

	entry := &domain.TimeEntry{TicketID: ticket.ID, UserID: "admin-1", Minutes: 125, WorkDate: created}
	if err := entries.Create(context.Background(), entry); err != nil {
		t.Fatalf("seed entry: %v", err)
	}

	from := created.AddDate(0, 0, -1)
	to := created.AddDate(0, 0, 30)
	summary, err := svc.Summary(context.Background(), adminUser(), from, to)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if summary.TotalCreated != 1 {
		t.Errorf("total created = %d, want 1", summary.TotalCreated)
	}
	if summary.Overdue != 1 {
		t.Errorf("overdue = %d, want 1", summary.Overdue)
	}
	if summary.MinutesLogged != 125 {
		t.Errorf("minutes logged = %d, want 125", summary.MinutesLogged)
	}
	if summary.TimeLogged != "2h 5m" {
		t.Errorf("time logged = %q, want 2h 5m", summary.TimeLogged)
	}
}

func TestReportSummaryRequiresAdmin(t *testing.T) {
	svc := NewReportService(newFakeTicketRepo(), &fakeTimeEntryRepo{}, testEvaluator(t))
	now := time.Now()
	if _, err := svc.Summary(context.Background(), requesterUser(), now.AddDate(0, 0, -7), now); err == nil {
		t.Fatal("expected forbidden for non-admin")
	}
	if _, err := svc.ExportTicketsCSV(context.Background(), requesterUser(), repository.TicketFilter{}); err == nil {
		t.Fatal("expected forbidden for non-admin export")
	}
}
