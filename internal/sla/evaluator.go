package sla

import (
	"time"

	"github.com/spec-kit/helpdesk/internal/domain"
)

// State classifies a ticket's SLA position.
type State string

const (
	StateOnTrack State = "ON_TRACK"
	StateDueSoon State = "DUE_SOON"
	StateOverdue State = "OVERDUE"
)

// dueSoonFraction is the share of the threshold after which a ticket enters
// the due-soon band.
const dueSoonFraction = 0.75

// Thresholds holds the per-priority SLA limits in working hours. A value of
// zero or below disables SLA enforcement for that priority.
type Thresholds struct {
	NoneHours     int
	LowHours      int
	MediumHours   int
	HighHours     int
	CriticalHours int
}

// DefaultThresholds mirrors the shipped configuration defaults.
func DefaultThresholds() Thresholds {
	return Thresholds{
		NoneHours:     72,
		LowHours:      48,
		MediumHours:   24,
		HighHours:     8,
		CriticalHours: 4,
	}
}

// HoursFor returns the threshold for the priority. Unknown priorities use
// the Medium threshold.
func (t Thresholds) HoursFor(priority domain.TicketPriority) int {
	switch priority {
	case domain.TicketPriorityCritical:
		return t.CriticalHours
	case domain.TicketPriorityHigh:
		return t.HighHours
	case domain.TicketPriorityMedium:
		return t.MediumHours
	case domain.TicketPriorityLow:
		return t.LowHours
	case domain.TicketPriorityNone:
		return t.NoneHours
	}
	return t.MediumHours
}

// Evaluator classifies ticket age in working time against the configured
// thresholds. Stateless: every call recomputes from the supplied now, so
// results stay correct as time advances.
type Evaluator struct {
	calc       *Calculator
	thresholds Thresholds
}

// NewEvaluator builds an evaluator.
func NewEvaluator(calc *Calculator, thresholds Thresholds) *Evaluator {
	return &Evaluator{calc: calc, thresholds: thresholds}
}

// Calculator exposes the underlying business-time calculator.
func (e *Evaluator) Calculator() *Calculator {
	return e.calc
}

// Classify returns the SLA state of a ticket created at createdAtUTC with
// the given priority, evaluated at nowUTC.
func (e *Evaluator) Classify(createdAtUTC time.Time, priority domain.TicketPriority, nowUTC time.Time) State {
	thresholdHours := e.thresholds.HoursFor(priority)
	if thresholdHours <= 0 {
		return StateOnTrack
	}

	thresholdMinutes := thresholdHours * 60
	elapsed := e.calc.WorkingMinutesElapsed(createdAtUTC, nowUTC)

	if elapsed >= thresholdMinutes {
		return StateOverdue
	}
	if float64(elapsed) >= float64(thresholdMinutes)*dueSoonFraction {
		return StateDueSoon
	}
	return StateOnTrack
}

// Deadline returns the instant at which a ticket of the given priority
// becomes overdue, or the zero time when SLA is disabled for the priority.
func (e *Evaluator) Deadline(createdAtUTC time.Time, priority domain.TicketPriority) time.Time {
	thresholdHours := e.thresholds.HoursFor(priority)
	if thresholdHours <= 0 {
		return time.Time{}
	}
	return e.calc.AddWorkingMinutes(createdAtUTC, thresholdHours*60)
}
