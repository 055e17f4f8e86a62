package domain

import "time"

// MaxTimeEntryMinutes bounds a single logged entry to one day of work.
const MaxTimeEntryMinutes = 1440

// TimeEntry records minutes an admin spent working a ticket on a given date.
// Entries are soft-deleted so report totals can be audited.
type TimeEntry struct {
	ID        string
	TicketID  string
	UserID    string
	Minutes   int
	WorkDate  time.Time
	Note      *string
	CreatedAt time.Time
	UpdatedAt *time.Time
	IsDeleted bool
}
