package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/helpdesk/internal/domain"
)

// CommentRepository encapsulates ticket comment persistence.
type CommentRepository interface {
	Create(ctx context.Context, comment *domain.TicketComment) error
	GetByID(ctx context.Context, id string) (*domain.TicketComment, error)
	ListByTicket(ctx context.Context, ticketID string, includeInternal bool) ([]domain.TicketComment, error)
}

type commentRepository struct {
	pool *pgxpool.Pool
}

// NewCommentRepository instantiates repository.
func NewCommentRepository(pool *pgxpool.Pool) CommentRepository {
	return &commentRepository{pool: pool}
}

const commentColumns = `id, ticket_id, author_user_id, body, is_internal, created_at, updated_at`

func (r *commentRepository) Create(ctx context.Context, comment *domain.TicketComment) error {
	const query = `
        INSERT INTO ticket_comments (ticket_id, author_user_id, body, is_internal)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		comment.TicketID,
		comment.AuthorID,
		comment.Body,
		comment.IsInternal,
	).Scan(&comment.ID, &comment.CreatedAt)
}

func (r *commentRepository) GetByID(ctx context.Context, id string) (*domain.TicketComment, error) {
	var comment domain.TicketComment
	query := `SELECT ` + commentColumns + ` FROM ticket_comments WHERE id=$1`
	if err := scanComment(r.pool.QueryRow(ctx, query, id), &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) ListByTicket(ctx context.Context, ticketID string, includeInternal bool) ([]domain.TicketComment, error) {
	query := `SELECT ` + commentColumns + ` FROM ticket_comments WHERE ticket_id=$1`
	if !includeInternal {
		query += ` AND is_internal=FALSE`
	}
	query += ` ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.TicketComment
	for rows.Next() {
		var comment domain.TicketComment
		if err := scanComment(rows, &comment); err != nil {
			return nil, err
		}
		result = append(result, comment)
	}
	return result, rows.Err()
}

func scanComment(row pgx.Row, comment *domain.TicketComment) error {
	return row.Scan(
		&comment.ID,
		&comment.TicketID,
		&comment.AuthorID,
		&comment.Body,
		&comment.IsInternal,
		&comment.CreatedAt,
		&comment.UpdatedAt,
	)
}
