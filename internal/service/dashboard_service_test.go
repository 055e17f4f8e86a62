package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/spec-kit/helpdesk/internal/domain"
	"github.com/spec-kit/helpdesk/internal/repository"
	"github.com/spec-kit/helpdesk/internal/sla"
)

func seedTicket(t *testing.T, repo *fakeTicketRepo, requesterID string, priority domain.TicketPriority, status domain.TicketStatus, createdAt time.Time) *domain.Ticket {
	t.Helper()
	ticket := &domain.Ticket{
		ExternalKey: fmt.Sprintf("TCK-SEED%04d", len(repo.tickets)+1),
		RequesterID: requesterID,
		CategoryID:  "cat-1",
		Title:       "seeded",
		Status:      status,
		Priority:    priority,
		CreatedAt:   createdAt,
	}
	if err := repo.Create(context.Background(), ticket); err != nil {
		t.Fatalf("seed ticket: %v", err)
	}
	return ticket
}

func TestDashboardSlaCards(t *testing.T) {
	tickets := newFakeTicketRepo()
	entries := &fakeTimeEntryRepo{}
	svc := NewDashboardService(tickets, entries, testEvaluator(t), nil)

	// Working day: Monday 2024-01-08, schedule 08:30-17:30 UTC.
	now := time.Date(2024, 1, 8, 16, 0, 0, 0, time.UTC)

	// Critical opened at 09:00 -> 420 working minutes elapsed, threshold 240 -> overdue.
	seedTicket(t, tickets, "user-1", domain.TicketPriorityCritical, domain.TicketStatusOpen,
		time.Date(2024, 1, 8, 9, 0, 0, 0, time.UTC))
	// High opened at 09:30 -> 390 elapsed of 480 threshold (81%) -> due soon.
	seedTicket(t, tickets, "user-1", domain.TicketPriorityHigh, domain.TicketStatusInProgress,
		time.Date(2024, 1, 8, 9, 30, 0, 0, time.UTC))
	// Medium opened at 15:00 -> 60 elapsed of 1440 -> on track.
	seedTicket(t, tickets, "user-1", domain.TicketPriorityMedium, domain.TicketStatusOpen,
		time.Date(2024, 1, 8, 15, 0, 0, 0, time.UTC))
	// Closed and resolved tickets await no staff action and never count
	// toward SLA cards.
	closed := seedTicket(t, tickets, "user-1", domain.TicketPriorityCritical, domain.TicketStatusClosed,
		time.Date(2024, 1, 8, 9, 0, 0, 0, time.UTC))
	closedAt := now
	repoTicket := tickets.tickets[closed.ID]
	repoTicket.ClosedAt = &closedAt
	seedTicket(t, tickets, "user-1", domain.TicketPriorityCritical, domain.TicketStatusResolved,
		time.Date(2024, 1, 8, 9, 0, 0, 0, time.UTC))

	dashboard, err := svc.Build(context.Background(), adminUser(), now)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if dashboard.Sla.Overdue != 1 {
		t.Errorf("overdue = %d, want 1", dashboard.Sla.Overdue)
	}
	if dashboard.Sla.DueSoon != 1 {
		t.Errorf("due soon = %d, want 1", dashboard.Sla.DueSoon)
	}
	if dashboard.Sla.OnTrack != 1 {
		t.Errorf("on track = %d, want 1", dashboard.Sla.OnTrack)
	}
	if got := len(dashboard.NeedsAttention); got != 2 {
		t.Fatalf("needs attention = %d items, want 2", got)
	}
	if dashboard.NeedsAttention[0].SlaState != sla.StateOverdue {
		t.Errorf("first attention item = %s, want OVERDUE", dashboard.NeedsAttention[0].SlaState)
	}
}

func TestDashboardScopesRequester(t *testing.T) {
	tickets := newFakeTicketRepo()
	svc := NewDashboardService(tickets, &fakeTimeEntryRepo{}, testEvaluator(t), nil)
	now := time.Date(2024, 1, 8, 16, 0, 0, 0, time.UTC)

	seedTicket(t, tickets, "user-1", domain.TicketPriorityMedium, domain.TicketStatusOpen,
		time.Date(2024, 1, 8, 15, 0, 0, 0, time.UTC))
	seedTicket(t, tickets, "user-2", domain.TicketPriorityMedium, domain.TicketStatusOpen,
		time.Date(2024, 1, 8, 15, 0, 0, 0, time.UTC))

	dashboard, err := svc.Build(context.Background(), requesterUser(), now)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if dashboard.Status.Open != 1 {
		t.Errorf("open = %d, want 1 for requester scope", dashboard.Status.Open)
	}
	if len(dashboard.Workload) != 0 {
		t.Error("requester should not receive workload panel")
	}
}

func TestDashboardVolumeCached(t *testing.T) {
	tickets := newFakeTicketRepo()
	cache := newFakeVolumeCache()
	svc := NewDashboardService(tickets, &fakeTimeEntryRepo{}, testEvaluator(t), cache)
	now := time.Date(2024, 1, 8, 16, 0, 0, 0, time.UTC)

	seedTicket(t, tickets, "user-1", domain.TicketPriorityMedium, domain.TicketStatusOpen,
		time.Date(2024, 1, 8, 15, 0, 0, 0, time.UTC))

	first, err := svc.Build(context.Background(), adminUser(), now)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if tickets.volumeCalls != 1 {
		t.Fatalf("volume queries = %d, want 1", tickets.volumeCalls)
	}

	second, err := svc.Build(context.Background(), adminUser(), now)
	if err != nil {
		t.Fatalf("second build: %v", err)
	}
	if tickets.volumeCalls != 1 {
		t.Errorf("volume queries = %d after second build, want cached read", tickets.volumeCalls)
	}
	if cache.hits != 1 {
		t.Errorf("cache hits = %d, want 1", cache.hits)
	}
	if len(second.Volume30Days) != len(first.Volume30Days) {
		t.Fatalf("series length changed: %d vs %d", len(second.Volume30Days), len(first.Volume30Days))
	}
	for i := range first.Volume30Days {
		if second.Volume30Days[i] != first.Volume30Days[i] {
			t.Fatalf("cached series diverges at %d: %+v vs %+v", i, second.Volume30Days[i], first.Volume30Days[i])
		}
	}
}

func TestFillVolumeSeries(t *testing.T) {
	now := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)
	rows := []repository.VolumeRow{
		{Day: time.Date(2024, 1, 9, 0, 0, 0, 0, time.UTC), Opened: 3, Closed: 1},
		{Day: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), Opened: 2, Closed: 0},
	}

	series := fillVolumeSeries(rows, now, 14)
	if len(series) != 14 {
		t.Fatalf("series length = %d, want 14", len(series))
	}
	if series[0].Date != "2023-12-28" {
		t.Errorf("first bucket = %s, want 2023-12-28", series[0].Date)
	}
	if series[13].Date != "2024-01-10" {
		t.Errorf("last bucket = %s, want 2024-01-10", series[13].Date)
	}
	if series[12].Opened != 3 || series[12].Closed != 1 {
		t.Errorf("2024-01-09 bucket = %+v", series[12])
	}
	if series[13].Opened != 2 {
		t.Errorf("2024-01-10 opened = %d, want 2", series[13].Opened)
	}
	for i := 0; i < 12; i++ {
		if series[i].Opened != 0 || series[i].Closed != 0 {
			t.Errorf("bucket %s not zero-filled", series[i].Date)
		}
	}
}

func TestRankAttentionOrdersByUrgency(t *testing.T) {
	deadline := time.Date(2024, 1, 9, 12, 0, 0, 0, time.UTC)
	items := []AttentionItem{
		{TicketID: "a", Priority: domain.TicketPriorityLow, SlaState: sla.StateDueSoon, Deadline: deadline},
		{TicketID: "b", Priority: domain.TicketPriorityHigh, SlaState: sla.StateOverdue, Deadline: deadline.Add(time.Hour)},
		{TicketID: "c", Priority: domain.TicketPriorityCritical, SlaState: sla.StateOverdue, Deadline: deadline},
		{TicketID: "d", Priority: domain.TicketPriorityCritical, SlaState: sla.StateDueSoon, Deadline: deadline},
	}

	ranked := rankAttention(items, 10)
	want := []string{"c", "b", "d", "a"}
	for i, id := range want {
		if ranked[i].TicketID != id {
			t.Errorf("position %d = %s, want %s", i, ranked[i].TicketID, id)
		}
	}

	truncated := rankAttention(items, 2)
	if len(truncated) != 2 {
		t.Errorf("limit not applied: %d", len(truncated))
	}
}
