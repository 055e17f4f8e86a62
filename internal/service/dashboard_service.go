package service

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"github.com/spec-kit/helpdesk/internal/domain"
	"github.com/spec-kit/helpdesk/internal/repository"
	"github.com/spec-kit/helpdesk/internal/sla"
	apperrors "github.com/spec-kit/helpdesk/pkg/util/errorutil"
)

// VolumeCache stores serialized dashboard aggregates with a TTL.
// *persistence.Redis satisfies it.
type VolumeCache interface {
	GetBytes(ctx context.Context, key string) ([]byte, error)
	SetBytes(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// DashboardService aggregates the landing page numbers.
type DashboardService struct {
	tickets     repository.TicketRepository
	timeEntries repository.TimeEntryRepository
	evaluator   *sla.Evaluator
	cache       VolumeCache
}

// NewDashboardService constructs the service. A nil cache disables volume
// caching.
func NewDashboardService(tickets repository.TicketRepository, timeEntries repository.TimeEntryRepository, evaluator *sla.Evaluator, cache VolumeCache) *DashboardService {
	return &DashboardService{tickets: tickets, timeEntries: timeEntries, evaluator: evaluator, cache: cache}
}

// StatusCards counts tickets per lifecycle state.
type StatusCards struct {
	Open           int `json:"open"`
	InProgress     int `json:"in_progress"`
	WaitingOnUser  int `json:"waiting_on_user"`
	Resolved       int `json:"resolved"`
	Closed         int `json:"closed"`
	UnassignedOpen int `json:"unassigned_open"`
}

// SlaCards counts live tickets per SLA state.
type SlaCards struct {
	OnTrack int `json:"on_track"`
	DueSoon int `json:"due_soon"`
	Overdue int `json:"overdue"`
}

// VolumePoint is one day of opened/closed counts.
type VolumePoint struct {
	Date   string `json:"date"`
	Opened int    `json:"opened"`
	Closed int    `json:"closed"`
}

// AttentionItem is a ticket needing action, most urgent first.
type AttentionItem struct {
	TicketID    string                `json:"ticket_id"`
	ExternalKey string                `json:"external_key"`
	Title       string                `json:"title"`
	Priority    domain.TicketPriority `json:"priority"`
	Status      domain.TicketStatus   `json:"status"`
	SlaState    sla.State             `json:"sla_state"`
	Age         string                `json:"age"`
	Deadline    time.Time             `json:"deadline,omitempty"`
}

// Dashboard is the full aggregate returned to the UI.
type Dashboard struct {
	Status         StatusCards                `json:"status"`
	Sla            SlaCards                   `json:"sla"`
	Volume14Days   []VolumePoint              `json:"volume_14_days"`
	Volume30Days   []VolumePoint              `json:"volume_30_days"`
	TopCategories  []repository.CategoryCount `json:"top_categories"`
	Workload       []repository.WorkloadRow   `json:"workload"`
	NeedsAttention []AttentionItem            `json:"needs_attention"`
	MinutesLogged  int                        `json:"minutes_logged_30_days"`
}

const attentionLimit = 10

// Build assembles the dashboard. Requesters get a view scoped to their
// own tickets with the admin-only panels empty.
func (s *DashboardService) Build(ctx context.Context, principal *domain.User, now time.Time) (*Dashboard, error) {
	requesterScope := ""
	if !principal.IsAdmin() {
		requesterScope = principal.ID
	}

	statusCounts, err := s.tickets.CountByStatus(ctx, requesterScope)
	if err != nil {
		return nil, err
	}
	dashboard := &Dashboard{
		Status: StatusCards{
			Open:          statusCounts[domain.TicketStatusOpen],
			InProgress:    statusCounts[domain.TicketStatusInProgress],
			WaitingOnUser: statusCounts[domain.TicketStatusWaitingOnUser],
			Resolved:      statusCounts[domain.TicketStatusResolved],
			Closed:        statusCounts[domain.TicketStatusClosed],
		},
	}

	candidates, err := s.tickets.ListSlaCandidates(ctx, requesterScope)
	if err != nil {
		return nil, err
	}
	nowUTC := now.UTC()
	var attention []AttentionItem
	for _, candidate := range candidates {
		state := s.evaluator.Classify(candidate.CreatedAt.UTC(), candidate.Priority, nowUTC)
		switch state {
		case sla.StateOverdue:
			dashboard.Sla.Overdue++
		case sla.StateDueSoon:
			dashboard.Sla.DueSoon++
		default:
			dashboard.Sla.OnTrack++
		}
		if state == sla.StateOverdue || state == sla.StateDueSoon {
			attention = append(attention, AttentionItem{
				TicketID:    candidate.TicketID,
				ExternalKey: candidate.ExternalKey,
				Title:       candidate.Title,
				Priority:    candidate.Priority,
				Status:      candidate.Status,
				SlaState:    state,
				Age:         sla.FormatAge(candidate.CreatedAt.UTC(), nowUTC),
				Deadline:    s.evaluator.Deadline(candidate.CreatedAt.UTC(), candidate.Priority),
			})
		}
	}
	dashboard.NeedsAttention = rankAttention(attention, attentionLimit)

	volume30, err := s.volumeSince(ctx, dayFloor(now).AddDate(0, 0, -29))
	if err != nil {
		return nil, err
	}
	dashboard.Volume30Days = fillVolumeSeries(volume30, now, 30)
	dashboard.Volume14Days = fillVolumeSeries(volume30, now, 14)

	if principal.IsAdmin() {
		dashboard.Status.UnassignedOpen, err = s.tickets.CountUnassignedOpen(ctx)
		if err != nil {
			return nil, err
		}
		dashboard.TopCategories, err = s.tickets.TopCategories(ctx, now.AddDate(0, 0, -30), 5)
		if err != nil {
			return nil, err
		}
		dashboard.Workload, err = s.tickets.Workload(ctx)
		if err != nil {
			return nil, err
		}
		dashboard.MinutesLogged, err = s.timeEntries.SumSince(ctx, dayFloor(now).AddDate(0, 0, -29))
		if err != nil {
			return nil, err
		}
	}
	return dashboard, nil
}

const volumeCacheTTL = time.Minute

// volumeSince reads the daily opened/closed series through the cache. The
// query scans the whole ticket table and every dashboard hit needs it, a
// short TTL keeps that off the hot path. Cache failures fall back to the
// database.
func (s *DashboardService) volumeSince(ctx context.Context, since time.Time) ([]repository.VolumeRow, error) {
	if s.cache == nil {
		return s.tickets.VolumeSince(ctx, since)
	}
	key := "dashboard:volume:" + since.Format("2006-01-02")
	if data, err := s.cache.GetBytes(ctx, key); err == nil {
		var rows []repository.VolumeRow
		if json.Unmarshal(data, &rows) == nil {
			return rows, nil
		}
	}
	rows, err := s.tickets.VolumeSince(ctx, since)
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(rows); err == nil {
		_ = s.cache.SetBytes(ctx, key, data, volumeCacheTTL)
	}
	return rows, nil
}

// Workload returns open ticket counts per assignee. Admin only.
func (s *DashboardService) Workload(ctx context.Context, principal *domain.User) ([]repository.WorkloadRow, error) {
	if !principal.IsAdmin() {
		return nil, apperrors.NewForbidden("admin required")
	}
	return s.tickets.Workload(ctx)
}

// rankAttention orders by urgency then age, most urgent first.
func rankAttention(items []AttentionItem, limit int) []AttentionItem {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].SlaState != items[j].SlaState {
			return items[i].SlaState == sla.StateOverdue
		}
		ri, rj := domain.PriorityRank(items[i].Priority), domain.PriorityRank(items[j].Priority)
		if ri != rj {
			return ri > rj
		}
		return items[i].Deadline.Before(items[j].Deadline)
	})
	if len(items) > limit {
		items = items[:limit]
	}
	if items == nil {
		items = []AttentionItem{}
	}
	return items
}

// fillVolumeSeries zero-fills the last n days so charts never have gaps.
func fillVolumeSeries(rows []repository.VolumeRow, now time.Time, days int) []VolumePoint {
	byDay := make(map[string]repository.VolumeRow, len(rows))
	for _, row := range rows {
		byDay[row.Day.Format("2006-01-02")] = row
	}
	start := dayFloor(now).AddDate(0, 0, -(days - 1))
	series := make([]VolumePoint, 0, days)
	for i := 0; i < days; i++ {
		day := start.AddDate(0, 0, i)
		key := day.Format("2006-01-02")
		point := VolumePoint{Date: key}
		if row, ok := byDay[key]; ok {
			point.Opened = row.Opened
			point.Closed = row.Closed
		}
		series = append(series, point)
	}
	return series
}

func dayFloor(t time.Time) time.Time {
	year, month, day := t.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
