package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/helpdesk/internal/domain"
)

// TimeEntryTotal aggregates logged minutes per user on a ticket.
type TimeEntryTotal struct {
	UserID       string
	UserName     string
	TotalMinutes int
}

// TicketTimeTotal aggregates logged minutes per ticket.
type TicketTimeTotal struct {
	TicketID     string
	ExternalKey  string
	Title        string
	TotalMinutes int
}

// TimeEntryRepository encapsulates time entry persistence. Entries are
// soft-deleted so historical reports stay reproducible.
type TimeEntryRepository interface {
	Create(ctx context.Context, entry *domain.TimeEntry) error
	GetByID(ctx context.Context, id string) (*domain.TimeEntry, error)
	SoftDelete(ctx context.Context, id string) error
	ListByTicket(ctx context.Context, ticketID string) ([]domain.TimeEntry, error)
	TotalsByTicket(ctx context.Context, ticketID string) ([]TimeEntryTotal, error)
	MinutesByTicket(ctx context.Context, ticketIDs []string) (map[string]int, error)
	SumSince(ctx context.Context, since time.Time) (int, error)
	TopTicketsSince(ctx context.Context, since time.Time, limit int) ([]TicketTimeTotal, error)
}

type timeEntryRepository struct {
	pool *pgxpool.Pool
}

// NewTimeEntryRepository instantiates repository.
func NewTimeEntryRepository(pool *pgxpool.Pool) TimeEntryRepository {
	return &timeEntryRepository{pool: pool}
}

const timeEntryColumns = `id, ticket_id, user_id, minutes, work_date, note, created_at, updated_at, is_deleted`

func (r *timeEntryRepository) Create(ctx context.Context, entry *domain.TimeEntry) error {
	const query = `
        INSERT INTO ticket_time_entries (ticket_id, user_id, minutes, work_date, note)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		entry.TicketID,
		entry.UserID,
		entry.Minutes,
		entry.WorkDate,
		entry.Note,
	).Scan(&entry.ID, &entry.CreatedAt)
}

func (r *timeEntryRepository) GetByID(ctx context.Context, id string) (*domain.TimeEntry, error) {
	var entry domain.TimeEntry
	query := `SELECT ` + timeEntryColumns + ` FROM ticket_time_entries WHERE id=$1`
	if err := scanTimeEntry(r.pool.QueryRow(ctx, query, id), &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *timeEntryRepository) SoftDelete(ctx context.Context, id string) error {
	const query = `UPDATE ticket_time_entries SET is_deleted=TRUE, updated_at=NOW() WHERE id=$1 AND is_deleted=FALSE`
	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *timeEntryRepository) ListByTicket(ctx context.Context, ticketID string) ([]domain.TimeEntry, error) {
	query := `SELECT ` + timeEntryColumns + ` FROM ticket_time_entries
        WHERE ticket_id=$1 AND is_deleted=FALSE ORDER BY work_date, created_at`
	rows, err := r.pool.Query(ctx, query, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.TimeEntry
	for rows.Next() {
		var entry domain.TimeEntry
		if err := scanTimeEntry(rows, &entry); err != nil {
			return nil, err
		}
		result = append(result, entry)
	}
	return result, rows.Err()
}

func (r *timeEntryRepository) TotalsByTicket(ctx context.Context, ticketID string) ([]TimeEntryTotal, error) {
	const query = `
        SELECT u.id, u.display_name, COALESCE(SUM(e.minutes),0)
        FROM ticket_time_entries e JOIN users u ON u.id = e.user_id
        WHERE e.ticket_id=$1 AND e.is_deleted=FALSE
        GROUP BY u.id, u.display_name
        ORDER BY u.display_name`
	rows, err := r.pool.Query(ctx, query, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []TimeEntryTotal
	for rows.Next() {
		var row TimeEntryTotal
		if err := rows.Scan(&row.UserID, &row.UserName, &row.TotalMinutes); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

func (r *timeEntryRepository) MinutesByTicket(ctx context.Context, ticketIDs []string) (map[string]int, error) {
	result := make(map[string]int, len(ticketIDs))
	if len(ticketIDs) == 0 {
		return result, nil
	}
	const query = `
        SELECT ticket_id, COALESCE(SUM(minutes),0)
        FROM ticket_time_entries
        WHERE ticket_id=ANY($1) AND is_deleted=FALSE
        GROUP BY ticket_id`
	rows, err := r.pool.Query(ctx, query, ticketIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var ticketID string
		var minutes int
		if err := rows.Scan(&ticketID, &minutes); err != nil {
			return nil, err
		}
		result[ticketID] = minutes
	}
	return result, rows.Err()
}

func (r *timeEntryRepository) SumSince(ctx context.Context, since time.Time) (int, error) {
	const query = `
        SELECT COALESCE(SUM(minutes),0) FROM ticket_time_entries
        WHERE is_deleted=FALSE AND work_date >= $1`
	var total int
	err := r.pool.QueryRow(ctx, query, since).Scan(&total)
	return total, err
}

func (r *timeEntryRepository) TopTicketsSince(ctx context.Context, since time.Time, limit int) ([]TicketTimeTotal, error) {
	const query = `
        SELECT t.id, t.external_key, t.title, COALESCE(SUM(e.minutes),0) AS total
        FROM ticket_time_entries e JOIN tickets t ON t.id = e.ticket_id
        WHERE e.is_deleted=FALSE AND e.work_date >= $1
        GROUP BY t.id, t.external_key, t.title
        ORDER BY total DESC, t.external_key
        LIMIT $2`
	rows, err := r.pool.Query(ctx, query, since, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []TicketTimeTotal
	for rows.Next() {
		var row TicketTimeTotal
		if err := rows.Scan(&row.TicketID, &row.ExternalKey, &row.Title, &row.TotalMinutes); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

func scanTimeEntry(row pgx.Row, entry *domain.TimeEntry) error {
	return row.Scan(
		&entry.ID,
		&entry.TicketID,
		&entry.UserID,
		&entry.Minutes,
		&entry.WorkDate,
		&entry.Note,
		&entry.CreatedAt,
		&entry.UpdatedAt,
		&entry.IsDeleted,
	)
}
