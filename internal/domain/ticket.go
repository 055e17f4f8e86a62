package domain

import "time"

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusOpen          TicketStatus = "OPEN"
	TicketStatusInProgress    TicketStatus = "IN_PROGRESS"
	TicketStatusWaitingOnUser TicketStatus = "WAITING_ON_USER"
	TicketStatusResolved      TicketStatus = "RESOLVED"
	TicketStatusClosed        TicketStatus = "CLOSED"
)

// ValidStatus reports whether the value is a known status.
func ValidStatus(s TicketStatus) bool {
	switch s {
	case TicketStatusOpen, TicketStatusInProgress, TicketStatusWaitingOnUser,
		TicketStatusResolved, TicketStatusClosed:
		return true
	}
	return false
}

// TicketPriority enumerates urgency levels, ordered from None to Critical.
// The SLA threshold lookup is keyed on this.
type TicketPriority string

const (
	TicketPriorityNone     TicketPriority = "NONE"
	TicketPriorityLow      TicketPriority = "LOW"
	TicketPriorityMedium   TicketPriority = "MEDIUM"
	TicketPriorityHigh     TicketPriority = "HIGH"
	TicketPriorityCritical TicketPriority = "CRITICAL"
)

// PriorityRank maps a priority to its ordinal; higher means more urgent.
// Unknown values rank below None.
func PriorityRank(p TicketPriority) int {
	switch p {
	case TicketPriorityCritical:
		return 4
	case TicketPriorityHigh:
		return 3
	case TicketPriorityMedium:
		return 2
	case TicketPriorityLow:
		return 1
	case TicketPriorityNone:
		return 0
	}
	return -1
}

// ValidPriority reports whether the value is a known priority.
func ValidPriority(p TicketPriority) bool {
	return PriorityRank(p) >= 0
}

// Ticket is the aggregate for support requests.
type Ticket struct {
	ID               string
	ExternalKey      string
	RequesterID      string
	AssigneeID       *string
	CategoryID       string
	InternalSystemID *string
	Title            string
	Description      string
	Status           TicketStatus
	Priority         TicketPriority
	CreatedAt        time.Time
	UpdatedAt        time.Time
	ClosedAt         *time.Time
	ReopenCount      int
	ReopenedAt       *time.Time
	ReopenedByID     *string
}

// IsClosed reports whether the ticket is in its terminal state.
func (t *Ticket) IsClosed() bool {
	return t.Status == TicketStatusClosed
}
