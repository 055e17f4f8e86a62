package domain

import "time"

// TicketEventType enumerates audit trail entry kinds.
type TicketEventType string

const (
	TicketEventCreated         TicketEventType = "CREATED"
	TicketEventStatusChanged   TicketEventType = "STATUS_CHANGED"
	TicketEventPriorityChanged TicketEventType = "PRIORITY_CHANGED"
	TicketEventAssigned        TicketEventType = "ASSIGNED"
	TicketEventCommented       TicketEventType = "COMMENTED"
	TicketEventReclassified    TicketEventType = "RECLASSIFIED"
	TicketEventReopened        TicketEventType = "REOPENED"
	TicketEventTimeLogged      TicketEventType = "TIME_LOGGED"
)

// TicketEvent is an audit trail row describing who did what to a ticket.
type TicketEvent struct {
	ID        string
	TicketID  string
	ActorID   string
	EventType TicketEventType
	Message   string
	CreatedAt time.Time
}
