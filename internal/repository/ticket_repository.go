package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/helpdesk/internal/domain"
)

// TicketFilter narrows ticket listings. Zero values mean "no constraint".
type TicketFilter struct {
	RequesterID      string
	AssigneeID       string
	Unassigned       bool
	CategoryID       string
	InternalSystemID string
	Statuses         []domain.TicketStatus
	Priorities       []domain.TicketPriority
	SearchTerm       string
	CreatedFrom      *time.Time
	CreatedTo        *time.Time
	Limit            int
	Offset           int
}

// SlaCandidate is the slice of a ticket the SLA evaluator needs.
type SlaCandidate struct {
	TicketID    string
	ExternalKey string
	Title       string
	Priority    domain.TicketPriority
	Status      domain.TicketStatus
	RequesterID string
	AssigneeID  *string
	CreatedAt   time.Time
}

// VolumeRow is a per-day opened/closed count pair.
type VolumeRow struct {
	Day    time.Time
	Opened int
	Closed int
}

// CategoryCount pairs a category name with a ticket count.
type CategoryCount struct {
	CategoryID   string
	CategoryName string
	Count        int
}

// WorkloadRow counts open tickets per assignee.
type WorkloadRow struct {
	AssigneeID   string
	AssigneeName string
	OpenCount    int
}

// TicketRepository encapsulates ticket persistence.
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) error
	Update(ctx context.Context, ticket *domain.Ticket) error
	GetByID(ctx context.Context, id string) (*domain.Ticket, error)
	GetByExternalKey(ctx context.Context, key string) (*domain.Ticket, error)
	ListWithFilter(ctx context.Context, filter TicketFilter) ([]domain.Ticket, int, error)
	CountByStatus(ctx context.Context, requesterID string) (map[domain.TicketStatus]int, error)
	CountUnassignedOpen(ctx context.Context) (int, error)
	ListSlaCandidates(ctx context.Context, requesterID string) ([]SlaCandidate, error)
	VolumeSince(ctx context.Context, since time.Time) ([]VolumeRow, error)
	TopCategories(ctx context.Context, since time.Time, limit int) ([]CategoryCount, error)
	Workload(ctx context.Context) ([]WorkloadRow, error)
}

type ticketRepository struct {
	pool *pgxpool.Pool
}

// NewTicketRepository instantiates repository.
func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &ticketRepository{pool: pool}
}

const ticketColumns = `id, external_key, requester_user_id, assignee_user_id, category_id, internal_system_id,
        title, description, status, priority, created_at, updated_at, closed_at,
        reopen_count, reopened_at, reopened_by_user_id`

func (r *ticketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        INSERT INTO tickets (external_key, requester_user_id, assignee_user_id, category_id, internal_system_id,
                             title, description, status, priority)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		ticket.ExternalKey,
		ticket.RequesterID,
		ticket.AssigneeID,
		ticket.CategoryID,
		ticket.InternalSystemID,
		ticket.Title,
		ticket.Description,
		ticket.Status,
		ticket.Priority,
	).Scan(&ticket.ID, &ticket.CreatedAt, &ticket.UpdatedAt)
}

func (r *ticketRepository) Update(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        UPDATE tickets SET assignee_user_id=$1, category_id=$2, internal_system_id=$3, title=$4, description=$5,
               status=$6, priority=$7, closed_at=$8, reopen_count=$9, reopened_at=$10, reopened_by_user_id=$11,
               updated_at=NOW()
        WHERE id=$12`
	cmd, err := r.pool.Exec(ctx, query,
		ticket.AssigneeID,
		ticket.CategoryID,
		ticket.InternalSystemID,
		ticket.Title,
		ticket.Description,
		ticket.Status,
		ticket.Priority,
		ticket.ClosedAt,
		ticket.ReopenCount,
		ticket.ReopenedAt,
		ticket.ReopenedByID,
		ticket.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *ticketRepository) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	var ticket domain.Ticket
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE id=$1`
	if err := scanTicket(r.pool.QueryRow(ctx, query, id), &ticket); err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *ticketRepository) GetByExternalKey(ctx context.Context, key string) (*domain.Ticket, error) {
	var ticket domain.Ticket
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE external_key=$1`
	if err := scanTicket(r.pool.QueryRow(ctx, query, key), &ticket); err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *ticketRepository) ListWithFilter(ctx context.Context, filter TicketFilter) ([]domain.Ticket, int, error) {
	where, args := buildTicketWhere(filter)

	countQuery := `SELECT COUNT(*) FROM tickets` + where
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	query := `SELECT ` + ticketColumns + ` FROM tickets` + where +
		fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, filter.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []domain.Ticket
	for rows.Next() {
		var ticket domain.Ticket
		if err := scanTicket(rows, &ticket); err != nil {
			return nil, 0, err
		}
		result = append(result, ticket)
	}
	return result, total, rows.Err()
}

func buildTicketWhere(filter TicketFilter) (string, []any) {
	var clauses []string
	var args []any

	add := func(clause string, value any) {
		args = append(args, value)
		clauses = append(clauses, fmt.Sprintf(clause, len(args)))
	}

	if filter.RequesterID != "" {
		add("requester_user_id=$%d", filter.RequesterID)
	}
	if filter.AssigneeID != "" {
		add("assignee_user_id=$%d", filter.AssigneeID)
	}
	if filter.Unassigned {
		clauses = append(clauses, "assignee_user_id IS NULL")
	}
	if filter.CategoryID != "" {
		add("category_id=$%d", filter.CategoryID)
	}
	if filter.InternalSystemID != "" {
		add("internal_system_id=$%d", filter.InternalSystemID)
	}
	if len(filter.Statuses) > 0 {
		add("status=ANY($%d)", statusStrings(filter.Statuses))
	}
	if len(filter.Priorities) > 0 {
		add("priority=ANY($%d)", priorityStrings(filter.Priorities))
	}
	if filter.SearchTerm != "" {
		args = append(args, "%"+filter.SearchTerm+"%")
		clauses = append(clauses, fmt.Sprintf("(title ILIKE $%d OR external_key ILIKE $%d)", len(args), len(args)))
	}
	if filter.CreatedFrom != nil {
		add("created_at >= $%d", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		add("created_at < $%d", *filter.CreatedTo)
	}

	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

func statusStrings(statuses []domain.TicketStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}

func priorityStrings(priorities []domain.TicketPriority) []string {
	out := make([]string, len(priorities))
	for i, p := range priorities {
		out[i] = string(p)
	}
	return out
}

func (r *ticketRepository) CountByStatus(ctx context.Context, requesterID string) (map[domain.TicketStatus]int, error) {
	query := `SELECT status, COUNT(*) FROM tickets`
	var args []any
	if requesterID != "" {
		query += ` WHERE requester_user_id=$1`
		args = append(args, requesterID)
	}
	query += ` GROUP BY status`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[domain.TicketStatus]int)
	for rows.Next() {
		var status domain.TicketStatus
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

func (r *ticketRepository) CountUnassignedOpen(ctx context.Context) (int, error) {
	const query = `
        SELECT COUNT(*) FROM tickets
        WHERE assignee_user_id IS NULL AND status NOT IN ('RESOLVED','CLOSED')`
	var count int
	err := r.pool.QueryRow(ctx, query).Scan(&count)
	return count, err
}

func (r *ticketRepository) ListSlaCandidates(ctx context.Context, requesterID string) ([]SlaCandidate, error) {
	query := `
        SELECT id, external_key, title, priority, status, requester_user_id, assignee_user_id, created_at
        FROM tickets
        WHERE status NOT IN ('RESOLVED','CLOSED')`
	var args []any
	if requesterID != "" {
		query += ` AND requester_user_id=$1`
		args = append(args, requesterID)
	}
	query += ` ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []SlaCandidate
	for rows.Next() {
		var c SlaCandidate
		if err := rows.Scan(&c.TicketID, &c.ExternalKey, &c.Title, &c.Priority, &c.Status,
			&c.RequesterID, &c.AssigneeID, &c.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	return result, rows.Err()
}

func (r *ticketRepository) VolumeSince(ctx context.Context, since time.Time) ([]VolumeRow, error) {
	const query = `
        SELECT day, SUM(opened) AS opened, SUM(closed) AS closed FROM (
            SELECT DATE_TRUNC('day', created_at) AS day, COUNT(*) AS opened, 0 AS closed
            FROM tickets WHERE created_at >= $1 GROUP BY 1
            UNION ALL
            SELECT DATE_TRUNC('day', closed_at) AS day, 0 AS opened, COUNT(*) AS closed
            FROM tickets WHERE closed_at >= $1 GROUP BY 1
        ) merged
        GROUP BY day ORDER BY day`
	rows, err := r.pool.Query(ctx, query, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []VolumeRow
	for rows.Next() {
		var row VolumeRow
		if err := rows.Scan(&row.Day, &row.Opened, &row.Closed); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

func (r *ticketRepository) TopCategories(ctx context.Context, since time.Time, limit int) ([]CategoryCount, error) {
	const query = `
        SELECT c.id, c.name, COUNT(t.id) AS total
        FROM tickets t JOIN categories c ON c.id = t.category_id
        WHERE t.created_at >= $1
        GROUP BY c.id, c.name
        ORDER BY total DESC, c.name
        LIMIT $2`
	rows, err := r.pool.Query(ctx, query, since, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []CategoryCount
	for rows.Next() {
		var row CategoryCount
		if err := rows.Scan(&row.CategoryID, &row.CategoryName, &row.Count); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

func (r *ticketRepository) Workload(ctx context.Context) ([]WorkloadRow, error) {
	const query = `
        SELECT u.id, u.display_name, COUNT(t.id) AS total
        FROM tickets t JOIN users u ON u.id = t.assignee_user_id
        WHERE t.status NOT IN ('RESOLVED','CLOSED')
        GROUP BY u.id, u.display_name
        ORDER BY total DESC, u.display_name`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []WorkloadRow
	for rows.Next() {
		var row WorkloadRow
		if err := rows.Scan(&row.AssigneeID, &row.AssigneeName, &row.OpenCount); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

func scanTicket(row pgx.Row, ticket *domain.Ticket) error {
	return row.Scan(
		&ticket.ID,
		&ticket.ExternalKey,
		&ticket.RequesterID,
		&ticket.AssigneeID,
		&ticket.CategoryID,
		&ticket.InternalSystemID,
		&ticket.Title,
		&ticket.Description,
		&ticket.Status,
		&ticket.Priority,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
		&ticket.ClosedAt,
		&ticket.ReopenCount,
		&ticket.ReopenedAt,
		&ticket.ReopenedByID,
	)
}
