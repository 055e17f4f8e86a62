package domain

import "time"

// TicketComment is a thread entry on a ticket. Internal comments are visible
// to admins only.
type TicketComment struct {
	ID         string
	TicketID   string
	AuthorID   string
	Body       string
	IsInternal bool
	CreatedAt  time.Time
	UpdatedAt  *time.Time
}

// AttachmentMeta records an uploaded file's metadata. Blob storage itself is
// outside this service; only the reference is kept.
type AttachmentMeta struct {
	ID           string
	TicketID     string
	UploadedByID string
	FileName     string
	StorageKey   string
	ContentType  string
	SizeBytes    int64
	UploadedAt   time.Time
}
