package service

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/helpdesk/internal/domain"
	"github.com/spec-kit/helpdesk/internal/repository"
	"github.com/spec-kit/helpdesk/internal/sla"
)

type fakeTicketRepo struct {
	tickets     map[string]*domain.Ticket
	seq         int
	volumeCalls int
}

func newFakeTicketRepo() *fakeTicketRepo {
	return &fakeTicketRepo{tickets: make(map[string]*domain.Ticket)}
}

func (f *fakeTicketRepo) Create(_ context.Context, ticket *domain.Ticket) error {
	f.seq++
	ticket.ID = fmt.Sprintf("ticket-%d", f.seq)
	if ticket.CreatedAt.IsZero() {
		ticket.CreatedAt = time.Now().UTC()
	}
	ticket.UpdatedAt = ticket.CreatedAt
	copied := *ticket
	f.tickets[ticket.ID] = &copied
	return nil
}

func (f *fakeTicketRepo) Update(_ context.Context, ticket *domain.Ticket) error {
	if _, ok := f.tickets[ticket.ID]; !ok {
		return pgx.ErrNoRows
	}
	copied := *ticket
	f.tickets[ticket.ID] = &copied
	return nil
}

func (f *fakeTicketRepo) GetByID(_ context.Context, id string) (*domain.Ticket, error) {
	ticket, ok := f.tickets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *ticket
	return &copied, nil
}

func (f *fakeTicketRepo) GetByExternalKey(_ context.Context, key string) (*domain.Ticket, error) {
	for _, ticket := range f.tickets {
		if ticket.ExternalKey == key {
			copied := *ticket
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeTicketRepo) ListWithFilter(_ context.Context, filter repository.TicketFilter) ([]domain.Ticket, int, error) {
	var result []domain.Ticket
	for _, ticket := range f.tickets {
		if filter.RequesterID != "" && ticket.RequesterID != filter.RequesterID {
			continue
		}
		if filter.CreatedFrom != nil && ticket.CreatedAt.Before(*filter.CreatedFrom) {
			continue
		}
		if filter.CreatedTo != nil && !ticket.CreatedAt.Before(*filter.CreatedTo) {
			continue
		}
		result = append(result, *ticket)
	}
	return result, len(result), nil
}

func (f *fakeTicketRepo) CountByStatus(_ context.Context, requesterID string) (map[domain.TicketStatus]int, error) {
	counts := make(map[domain.TicketStatus]int)
	for _, ticket := range f.tickets {
		if requesterID != "" && ticket.RequesterID != requesterID {
			continue
		}
		counts[ticket.Status]++
	}
	return counts, nil
}

func (f *fakeTicketRepo) CountUnassignedOpen(_ context.Context) (int, error) {
	count := 0
	for _, ticket := range f.tickets {
		if ticket.AssigneeID == nil && !ticket.IsClosed() && ticket.Status != domain.TicketStatusResolved {
			count++
		}
	}
	return count, nil
}

func (f *fakeTicketRepo) ListSlaCandidates(_ context.Context, requesterID string) ([]repository.SlaCandidate, error) {
	var result []repository.SlaCandidate
	for _, ticket := range f.tickets {
		if ticket.Status == domain.TicketStatusResolved || ticket.Status == domain.TicketStatusClosed {
			continue
		}
		if requesterID != "" && ticket.RequesterID != requesterID {
			continue
		}
		result = append(result, repository.SlaCandidate{
			TicketID:    ticket.ID,
			ExternalKey: ticket.ExternalKey,
			Title:       ticket.Title,
			Priority:    ticket.Priority,
			Status:      ticket.Status,
			RequesterID: ticket.RequesterID,
			AssigneeID:  ticket.AssigneeID,
			CreatedAt:   ticket.CreatedAt,
		})
	}
	return result, nil
}

func (f *fakeTicketRepo) VolumeSince(_ context.Context, since time.Time) ([]repository.VolumeRow, error) {
	f.volumeCalls++
	byDay := make(map[string]*repository.VolumeRow)
	day := func(t time.Time) (string, time.Time) {
		year, month, d := t.UTC().Date()
		floored := time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
		return floored.Format("2006-01-02"), floored
	}
	for _, ticket := range f.tickets {
		if !ticket.CreatedAt.Before(since) {
			key, floored := day(ticket.CreatedAt)
			if byDay[key] == nil {
				byDay[key] = &repository.VolumeRow{Day: floored}
			}
			byDay[key].Opened++
		}
		if ticket.ClosedAt != nil && !ticket.ClosedAt.Before(since) {
			key, floored := day(*ticket.ClosedAt)
			if byDay[key] == nil {
				byDay[key] = &repository.VolumeRow{Day: floored}
			}
			byDay[key].Closed++
		}
	}
	var rows []repository.VolumeRow
	for _, row := range byDay {
		rows = append(rows, *row)
	}
	return rows, nil
}

func (f *fakeTicketRepo) TopCategories(_ context.Context, _ time.Time, _ int) ([]repository.CategoryCount, error) {
	return nil, nil
}

func (f *fakeTicketRepo) Workload(_ context.Context) ([]repository.WorkloadRow, error) {
	return nil, nil
}

type fakeCategoryRepo struct {
	categories map[string]domain.Category
	systems    map[string]domain.InternalSystem
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{
		categories: make(map[string]domain.Category),
		systems:    make(map[string]domain.InternalSystem),
	}
}

func (f *fakeCategoryRepo) ListCategories(_ context.Context, activeOnly bool) ([]domain.Category, error) {
	var result []domain.Category
	for _, c := range f.categories {
		if activeOnly && !c.IsActive {
			continue
		}
		result = append(result, c)
	}
	return result, nil
}

func (f *fakeCategoryRepo) GetCategory(_ context.Context, id string) (*domain.Category, error) {
	c, ok := f.categories[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &c, nil
}

func (f *fakeCategoryRepo) CreateCategory(_ context.Context, category *domain.Category) error {
	if category.ID == "" {
		category.ID = fmt.Sprintf("cat-%d", len(f.categories)+1)
	}
	f.categories[category.ID] = *category
	return nil
}

func (f *fakeCategoryRepo) UpdateCategory(_ context.Context, category *domain.Category) error {
	if _, ok := f.categories[category.ID]; !ok {
		return pgx.ErrNoRows
	}
	f.categories[category.ID] = *category
	return nil
}

func (f *fakeCategoryRepo) ListInternalSystems(_ context.Context, activeOnly bool) ([]domain.InternalSystem, error) {
	var result []domain.InternalSystem
	for _, s := range f.systems {
		if activeOnly && !s.IsActive {
			continue
		}
		result = append(result, s)
	}
	return result, nil
}

func (f *fakeCategoryRepo) GetInternalSystem(_ context.Context, id string) (*domain.InternalSystem, error) {
	s, ok := f.systems[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &s, nil
}

func (f *fakeCategoryRepo) CreateInternalSystem(_ context.Context, system *domain.InternalSystem) error {
	if system.ID == "" {
		system.ID = fmt.Sprintf("sys-%d", len(f.systems)+1)
	}
	f.systems[system.ID] = *system
	return nil
}

func (f *fakeCategoryRepo) UpdateInternalSystem(_ context.Context, system *domain.InternalSystem) error {
	if _, ok := f.systems[system.ID]; !ok {
		return pgx.ErrNoRows
	}
	f.systems[system.ID] = *system
	return nil
}

type fakeCommentRepo struct {
	comments []domain.TicketComment
}

func (f *fakeCommentRepo) Create(_ context.Context, comment *domain.TicketComment) error {
	comment.ID = fmt.Sprintf("comment-%d", len(f.comments)+1)
	comment.CreatedAt = time.Now().UTC()
	f.comments = append(f.comments, *comment)
	return nil
}

func (f *fakeCommentRepo) GetByID(_ context.Context, id string) (*domain.TicketComment, error) {
	for i := range f.comments {
		if f.comments[i].ID == id {
			copied := f.comments[i]
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeCommentRepo) ListByTicket(_ context.Context, ticketID string, includeInternal bool) ([]domain.TicketComment, error) {
	var result []domain.TicketComment
	for _, comment := range f.comments {
		if comment.TicketID != ticketID {
			continue
		}
		if comment.IsInternal && !includeInternal {
			continue
		}
		result = append(result, comment)
	}
	return result, nil
}

type fakeAttachmentRepo struct {
	attachments []domain.AttachmentMeta
}

func (f *fakeAttachmentRepo) Create(_ context.Context, att *domain.AttachmentMeta) error {
	att.ID = fmt.Sprintf("att-%d", len(f.attachments)+1)
	att.UploadedAt = time.Now().UTC()
	f.attachments = append(f.attachments, *att)
	return nil
}

func (f *fakeAttachmentRepo) GetByID(_ context.Context, id string) (*domain.AttachmentMeta, error) {
	for i := range f.attachments {
		if f.attachments[i].ID == id {
			copied := f.attachments[i]
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeAttachmentRepo) ListByTicket(_ context.Context, ticketID string) ([]domain.AttachmentMeta, error) {
	var result []domain.AttachmentMeta
	for _, att := range f.attachments {
		if att.TicketID == ticketID {
			result = append(result, att)
		}
	}
	return result, nil
}

func (f *fakeAttachmentRepo) Delete(_ context.Context, id string) error {
	for i := range f.attachments {
		if f.attachments[i].ID == id {
			f.attachments = append(f.attachments[:i], f.attachments[i+1:]...)
			return nil
		}
	}
	return pgx.ErrNoRows
}

type fakeTimeEntryRepo struct {
	entries []domain.TimeEntry
}

func (f *fakeTimeEntryRepo) Create(_ context.Context, entry *domain.TimeEntry) error {
	entry.ID = fmt.Sprintf("entry-%d", len(f.entries)+1)
	entry.CreatedAt = time.Now().UTC()
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakeTimeEntryRepo) GetByID(_ context.Context, id string) (*domain.TimeEntry, error) {
	for i := range f.entries {
		if f.entries[i].ID == id {
			copied := f.entries[i]
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeTimeEntryRepo) SoftDelete(_ context.Context, id string) error {
	for i := range f.entries {
		if f.entries[i].ID == id && !f.entries[i].IsDeleted {
			f.entries[i].IsDeleted = true
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (f *fakeTimeEntryRepo) ListByTicket(_ context.Context, ticketID string) ([]domain.TimeEntry, error) {
	var result []domain.TimeEntry
	for _, entry := range f.entries {
		if entry.TicketID == ticketID && !entry.IsDeleted {
			result = append(result, entry)
		}
	}
	return result, nil
}

func (f *fakeTimeEntryRepo) TotalsByTicket(_ context.Context, ticketID string) ([]repository.TimeEntryTotal, error) {
	totals := make(map[string]int)
	for _, entry := range f.entries {
		if entry.TicketID == ticketID && !entry.IsDeleted {
			totals[entry.UserID] += entry.Minutes
		}
	}
	var result []repository.TimeEntryTotal
	for userID, minutes := range totals {
		result = append(result, repository.TimeEntryTotal{UserID: userID, TotalMinutes: minutes})
	}
	return result, nil
}

func (f *fakeTimeEntryRepo) MinutesByTicket(_ context.Context, ticketIDs []string) (map[string]int, error) {
	wanted := make(map[string]bool, len(ticketIDs))
	for _, id := range ticketIDs {
		wanted[id] = true
	}
	result := make(map[string]int)
	for _, entry := range f.entries {
		if wanted[entry.TicketID] && !entry.IsDeleted {
			result[entry.TicketID] += entry.Minutes
		}
	}
	return result, nil
}

func (f *fakeTimeEntryRepo) SumSince(_ context.Context, since time.Time) (int, error) {
	total := 0
	for _, entry := range f.entries {
		if !entry.IsDeleted && !entry.WorkDate.Before(since) {
			total += entry.Minutes
		}
	}
	return total, nil
}

func (f *fakeTimeEntryRepo) TopTicketsSince(_ context.Context, _ time.Time, _ int) ([]repository.TicketTimeTotal, error) {
	return nil, nil
}

type fakeEventRepo struct {
	events []domain.TicketEvent
}

func (f *fakeEventRepo) Create(_ context.Context, event *domain.TicketEvent) error {
	event.ID = fmt.Sprintf("event-%d", len(f.events)+1)
	event.CreatedAt = time.Now().UTC()
	f.events = append(f.events, *event)
	return nil
}

func (f *fakeEventRepo) ListByTicket(_ context.Context, ticketID string) ([]domain.TicketEvent, error) {
	var result []domain.TicketEvent
	for _, event := range f.events {
		if event.TicketID == ticketID {
			result = append(result, event)
		}
	}
	return result, nil
}

type fakeUserRepo struct {
	users map[string]*domain.User
}

func newFakeUserRepo(users ...*domain.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: make(map[string]*domain.User)}
	for _, user := range users {
		repo.users[user.ID] = user
	}
	return repo
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	if user.ID == "" {
		user.ID = fmt.Sprintf("user-%d", len(f.users)+1)
	}
	user.CreatedAt = time.Now().UTC()
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	if _, ok := f.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return user, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserRepo) ListAdmins(_ context.Context) ([]domain.User, error) {
	var result []domain.User
	for _, user := range f.users {
		if user.IsAdmin() && user.Status == domain.UserStatusActive {
			result = append(result, *user)
		}
	}
	return result, nil
}

func testEvaluator(t interface{ Fatalf(string, ...any) }) *sla.Evaluator {
	schedule, err := sla.NewWorkSchedule(
		8*time.Hour+30*time.Minute,
		17*time.Hour+30*time.Minute,
		[]time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday},
		time.UTC,
	)
	if err != nil {
		t.Fatalf("build schedule: %v", err)
	}
	return sla.NewEvaluator(sla.NewCalculator(schedule), sla.DefaultThresholds())
}

func adminUser() *domain.User {
	return &domain.User{ID: "admin-1", DisplayName: "Admin", Email: "admin@example.com", Role: domain.RoleAdmin, Status: domain.UserStatusActive}
}

func requesterUser() *domain.User {
	return &domain.User{ID: "user-1", DisplayName: "User", Email: "user@example.com", Role: domain.RoleUser, Status: domain.UserStatusActive}
}

type fakeVolumeCache struct {
	data map[string][]byte
	hits int
}

func newFakeVolumeCache() *fakeVolumeCache {
	return &fakeVolumeCache{data: make(map[string][]byte)}
}

func (f *fakeVolumeCache) GetBytes(_ context.Context, key string) ([]byte, error) {
	value, ok := f.data[key]
	if !ok {
		return nil, fmt.Errorf("cache miss: %s", key)
	}
	f.hits++
	return value, nil
}

func (f *fakeVolumeCache) SetBytes(_ context.Context, key string, value []byte, _ time.Duration) error {
	f.data[key] = value
	return nil
}
