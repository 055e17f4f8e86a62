package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/helpdesk/internal/domain"
)

// EventRepository persists the per-ticket audit trail.
type EventRepository interface {
	Create(ctx context.Context, event *domain.TicketEvent) error
	ListByTicket(ctx context.Context, ticketID string) ([]domain.TicketEvent, error)
}

type eventRepository struct {
	pool *pgxpool.Pool
}

// NewEventRepository instantiates repository.
func NewEventRepository(pool *pgxpool.Pool) EventRepository {
	return &eventRepository{pool: pool}
}

func (r *eventRepository) Create(ctx context.Context, event *domain.TicketEvent) error {
	const query = `
        INSERT INTO ticket_events (ticket_id, actor_user_id, event_type, message)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		event.TicketID,
		event.ActorID,
		event.EventType,
		event.Message,
	).Scan(&event.ID, &event.CreatedAt)
}

func (r *eventRepository) ListByTicket(ctx context.Context, ticketID string) ([]domain.TicketEvent, error) {
	const query = `
        SELECT id, ticket_id, actor_user_id, event_type, message, created_at
        FROM ticket_events WHERE ticket_id=$1 ORDER BY created_at`
	rows, err := r.pool.Query(ctx, query, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.TicketEvent
	for rows.Next() {
		var event domain.TicketEvent
		if err := rows.Scan(&event.ID, &event.TicketID, &event.ActorID,
			&event.EventType, &event.Message, &event.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, event)
	}
	return result, rows.Err()
}
