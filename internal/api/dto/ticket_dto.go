package dto

import (
	"time"

	"github.com/spec-kit/helpdesk/internal/domain"
	"github.com/spec-kit/helpdesk/internal/repository"
	"github.com/spec-kit/helpdesk/internal/service"
	"github.com/spec-kit/helpdesk/internal/sla"
)

// CreateTicketRequest payload.
type CreateTicketRequest struct {
	CategoryID       string                `json:"category_id" validate:"required,uuid4"`
	InternalSystemID *string               `json:"internal_system_id" validate:"omitempty,uuid4"`
	Title            string                `json:"title" validate:"required,min=3,max=200"`
	Description      string                `json:"description" validate:"max=10000"`
	Priority         domain.TicketPriority `json:"priority" validate:"omitempty,oneof=NONE LOW MEDIUM HIGH CRITICAL"`
}

// AddCommentRequest payload.
type AddCommentRequest struct {
	Body       string `json:"body" validate:"required,min=1,max=10000"`
	IsInternal bool   `json:"is_internal"`
}

// AddAttachmentRequest describes attachment metadata input.
type AddAttachmentRequest struct {
	FileName    string `json:"file_name" validate:"required,max=255"`
	StorageKey  string `json:"storage_key" validate:"required,max=512"`
	ContentType string `json:"content_type" validate:"max=255"`
	SizeBytes   int64  `json:"size_bytes" validate:"gte=0"`
}

// UpdateStatusRequest payload.
type UpdateStatusRequest struct {
	Status domain.TicketStatus `json:"status" validate:"required,oneof=OPEN IN_PROGRESS WAITING_ON_USER RESOLVED CLOSED"`
}

// UpdatePriorityRequest payload.
type UpdatePriorityRequest struct {
	Priority domain.TicketPriority `json:"priority" validate:"required,oneof=NONE LOW MEDIUM HIGH CRITICAL"`
}

// AssignRequest payload. Null assignee unassigns.
type AssignRequest struct {
	AssigneeID *string `json:"assignee_id" validate:"omitempty,uuid4"`
}

// ReclassifyRequest payload. Null internal_system_id clears the link.
type ReclassifyRequest struct {
	CategoryID       string  `json:"category_id" validate:"required,uuid4"`
	InternalSystemID *string `json:"internal_system_id" validate:"omitempty,uuid4"`
}

// ReopenRequest payload.
type ReopenRequest struct {
	Reason string `json:"reason" validate:"max=1000"`
}

// LogTimeRequest payload. WorkDate uses YYYY-MM-DD.
type LogTimeRequest struct {
	Minutes  int     `json:"minutes" validate:"required,min=1,max=1440"`
	WorkDate string  `json:"work_date" validate:"required,datetime=2006-01-02"`
	Note     *string `json:"note" validate:"omitempty,max=1000"`
}

// TicketSummary response row.
type TicketSummary struct {
	ID               string                `json:"id"`
	ExternalKey      string                `json:"external_key"`
	RequesterID      string                `json:"requester_id"`
	AssigneeID       *string               `json:"assignee_id"`
	CategoryID       string                `json:"category_id"`
	InternalSystemID *string               `json:"internal_system_id"`
	Title            string                `json:"title"`
	Status           domain.TicketStatus   `json:"status"`
	Priority         domain.TicketPriority `json:"priority"`
	SlaState         sla.State             `json:"sla_state"`
	SlaDeadline      *time.Time            `json:"sla_deadline,omitempty"`
	Age              string                `json:"age"`
	ReopenCount      int                   `json:"reopen_count"`
	CreatedAt        time.Time             `json:"created_at"`
	UpdatedAt        time.Time             `json:"updated_at"`
}

// TicketListResponse wraps a page of summaries.
type TicketListResponse struct {
	Items []TicketSummary `json:"items"`
	Total int             `json:"total"`
}

// CommentResponse thread entry.
type CommentResponse struct {
	ID         string     `json:"id"`
	AuthorID   string     `json:"author_id"`
	Body       string     `json:"body"`
	IsInternal bool       `json:"is_internal"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  *time.Time `json:"updated_at,omitempty"`
}

// AttachmentResponse metadata.
type AttachmentResponse struct {
	ID          string    `json:"id"`
	FileName    string    `json:"file_name"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

// TicketEventResponse audit entry.
type TicketEventResponse struct {
	ID        string                 `json:"id"`
	ActorID   string                 `json:"actor_id"`
	EventType domain.TicketEventType `json:"event_type"`
	Message   string                 `json:"message"`
	CreatedAt time.Time              `json:"created_at"`
}

// TimeEntryResponse logged work row.
type TimeEntryResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Minutes   int       `json:"minutes"`
	WorkDate  string    `json:"work_date"`
	Note      *string   `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// TimeTotalResponse per-user rollup.
type TimeTotalResponse struct {
	UserID       string `json:"user_id"`
	UserName     string `json:"user_name"`
	TotalMinutes int    `json:"total_minutes"`
	Total        string `json:"total"`
}

// TicketDetailResponse provides the full ticket page.
type TicketDetailResponse struct {
	TicketSummary
	Description string                `json:"description"`
	ClosedAt    *time.Time            `json:"closed_at"`
	Comments    []CommentResponse     `json:"comments"`
	Attachments []AttachmentResponse  `json:"attachments"`
	Events      []TicketEventResponse `json:"events"`
	TimeTotals  []TimeTotalResponse   `json:"time_totals"`
}

// NewTicketSummary maps an annotated ticket.
func NewTicketSummary(item *service.TicketWithSla) TicketSummary {
	summary := TicketSummary{
		ID:               item.Ticket.ID,
		ExternalKey:      item.Ticket.ExternalKey,
		RequesterID:      item.Ticket.RequesterID,
		AssigneeID:       item.Ticket.AssigneeID,
		CategoryID:       item.Ticket.CategoryID,
		InternalSystemID: item.Ticket.InternalSystemID,
		Title:            item.Ticket.Title,
		Status:           item.Ticket.Status,
		Priority:         item.Ticket.Priority,
		SlaState:         item.SlaState,
		Age:              item.Age,
		ReopenCount:      item.Ticket.ReopenCount,
		CreatedAt:        item.Ticket.CreatedAt,
		UpdatedAt:        item.Ticket.UpdatedAt,
	}
	if !item.Deadline.IsZero() {
		deadline := item.Deadline
		summary.SlaDeadline = &deadline
	}
	return summary
}

// NewTicketDetailResponse maps the aggregated detail.
func NewTicketDetailResponse(detail *service.TicketDetail) TicketDetailResponse {
	annotated := service.TicketWithSla{
		Ticket:   detail.Ticket,
		SlaState: detail.SlaState,
		Deadline: detail.Deadline,
		Age:      detail.Age,
	}
	response := TicketDetailResponse{
		TicketSummary: NewTicketSummary(&annotated),
		Description:   detail.Ticket.Description,
		ClosedAt:      detail.Ticket.ClosedAt,
		Comments:      make([]CommentResponse, 0, len(detail.Comments)),
		Attachments:   make([]AttachmentResponse, 0, len(detail.Attachments)),
		Events:        make([]TicketEventResponse, 0, len(detail.Events)),
		TimeTotals:    make([]TimeTotalResponse, 0, len(detail.TimeTotals)),
	}
	for _, comment := range detail.Comments {
		response.Comments = append(response.Comments, CommentResponse{
			ID:         comment.ID,
			AuthorID:   comment.AuthorID,
			Body:       comment.Body,
			IsInternal: comment.IsInternal,
			CreatedAt:  comment.CreatedAt,
			UpdatedAt:  comment.UpdatedAt,
		})
	}
	for _, att := range detail.Attachments {
		response.Attachments = append(response.Attachments, AttachmentResponse{
			ID:          att.ID,
			FileName:    att.FileName,
			ContentType: att.ContentType,
			SizeBytes:   att.SizeBytes,
			UploadedAt:  att.UploadedAt,
		})
	}
	for _, event := range detail.Events {
		response.Events = append(response.Events, TicketEventResponse{
			ID:        event.ID,
			ActorID:   event.ActorID,
			EventType: event.EventType,
			Message:   event.Message,
			CreatedAt: event.CreatedAt,
		})
	}
	for _, total := range detail.TimeTotals {
		response.TimeTotals = append(response.TimeTotals, NewTimeTotalResponse(total))
	}
	return response
}

// NewTimeEntryResponse maps a time entry.
func NewTimeEntryResponse(entry *domain.TimeEntry) TimeEntryResponse {
	return TimeEntryResponse{
		ID:        entry.ID,
		UserID:    entry.UserID,
		Minutes:   entry.Minutes,
		WorkDate:  entry.WorkDate.Format("2006-01-02"),
		Note:      entry.Note,
		CreatedAt: entry.CreatedAt,
	}
}

// NewTimeTotalResponse maps a per-user rollup.
func NewTimeTotalResponse(total repository.TimeEntryTotal) TimeTotalResponse {
	return TimeTotalResponse{
		UserID:       total.UserID,
		UserName:     total.UserName,
		TotalMinutes: total.TotalMinutes,
		Total:        sla.FormatMinutes(total.TotalMinutes),
	}
}
