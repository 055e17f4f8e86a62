package events

import (
	"time"

	"github.com/spec-kit/helpdesk/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated         EventType = "ticket_created"
	EventTicketStatusChanged   EventType = "ticket_status_changed"
	EventTicketPriorityChanged EventType = "ticket_priority_changed"
	EventTicketAssigned        EventType = "ticket_assigned"
	EventTicketCommented       EventType = "ticket_commented"
	EventTicketReopened        EventType = "ticket_reopened"
	EventTimeLogged            EventType = "time_logged"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TicketID  string      `json:"ticket_id"`
	ActorID   string      `json:"actor_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	ExternalKey string                `json:"external_key"`
	CategoryID  string                `json:"category_id"`
	Priority    domain.TicketPriority `json:"priority"`
	Title       string                `json:"title"`
	RequesterID string                `json:"requester_id"`
}

// TicketStatusChangedPayload payload.
type TicketStatusChangedPayload struct {
	OldStatus domain.TicketStatus `json:"old_status"`
	NewStatus domain.TicketStatus `json:"new_status"`
}

// TicketPriorityChangedPayload payload.
type TicketPriorityChangedPayload struct {
	OldPriority domain.TicketPriority `json:"old_priority"`
	NewPriority domain.TicketPriority `json:"new_priority"`
}

// TicketAssignedPayload payload.
type TicketAssignedPayload struct {
	AssigneeID *string `json:"assignee_id,omitempty"`
}

// TicketCommentedPayload payload.
type TicketCommentedPayload struct {
	CommentID   string `json:"comment_id"`
	IsInternal  bool   `json:"is_internal"`
	BodyPreview string `json:"body_preview"`
}

// TicketReopenedPayload payload.
type TicketReopenedPayload struct {
	ReopenCount int `json:"reopen_count"`
}

// TimeLoggedPayload payload.
type TimeLoggedPayload struct {
	EntryID string `json:"entry_id"`
	Minutes int    `json:"minutes"`
}
