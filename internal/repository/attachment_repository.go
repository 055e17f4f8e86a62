package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/helpdesk/internal/domain"
)

// AttachmentRepository stores attachment metadata. Blob content lives
// elsewhere and is referenced by StorageKey.
type AttachmentRepository interface {
	Create(ctx context.Context, att *domain.AttachmentMeta) error
	GetByID(ctx context.Context, id string) (*domain.AttachmentMeta, error)
	ListByTicket(ctx context.Context, ticketID string) ([]domain.AttachmentMeta, error)
	Delete(ctx context.Context, id string) error
}

type attachmentRepository struct {
	pool *pgxpool.Pool
}

// NewAttachmentRepository instantiates repository.
func NewAttachmentRepository(pool *pgxpool.Pool) AttachmentRepository {
	return &attachmentRepository{pool: pool}
}

const attachmentColumns = `id, ticket_id, uploaded_by_user_id, file_name, storage_key, content_type, size_bytes, uploaded_at`

func (r *attachmentRepository) Create(ctx context.Context, att *domain.AttachmentMeta) error {
	const query = `
        INSERT INTO ticket_attachments (ticket_id, uploaded_by_user_id, file_name, storage_key, content_type, size_bytes)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, uploaded_at`
	return r.pool.QueryRow(ctx, query,
		att.TicketID,
		att.UploadedByID,
		att.FileName,
		att.StorageKey,
		att.ContentType,
		att.SizeBytes,
	).Scan(&att.ID, &att.UploadedAt)
}

func (r *attachmentRepository) GetByID(ctx context.Context, id string) (*domain.AttachmentMeta, error) {
	var att domain.AttachmentMeta
	query := `SELECT ` + attachmentColumns + ` FROM ticket_attachments WHERE id=$1`
	if err := scanAttachment(r.pool.QueryRow(ctx, query, id), &att); err != nil {
		return nil, err
	}
	return &att, nil
}

func (r *attachmentRepository) ListByTicket(ctx context.Context, ticketID string) ([]domain.AttachmentMeta, error) {
	query := `SELECT ` + attachmentColumns + ` FROM ticket_attachments WHERE ticket_id=$1 ORDER BY uploaded_at`
	rows, err := r.pool.Query(ctx, query, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.AttachmentMeta
	for rows.Next() {
		var att domain.AttachmentMeta
		if err := scanAttachment(rows, &att); err != nil {
			return nil, err
		}
		result = append(result, att)
	}
	return result, rows.Err()
}

func (r *attachmentRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM ticket_attachments WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanAttachment(row pgx.Row, att *domain.AttachmentMeta) error {
	return row.Scan(
		&att.ID,
		&att.TicketID,
		&att.UploadedByID,
		&att.FileName,
		&att.StorageKey,
		&att.ContentType,
		&att.SizeBytes,
		&att.UploadedAt,
	)
}
