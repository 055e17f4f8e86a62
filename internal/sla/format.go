package sla

import (
	"fmt"
	"time"
)

// FormatAge renders the raw calendar age of a ticket for display, using the
// two coarsest non-zero units and never showing less than one minute.
// Display age is deliberately calendar time while classification uses
// working time: age is a human-facing concept, the SLA badge a business one.
func FormatAge(createdAtUTC, nowUTC time.Time) string {
	span := nowUTC.Sub(createdAtUTC)
	if span < 0 {
		span = 0
	}

	if span >= 24*time.Hour {
		totalHours := int(span / time.Hour)
		return fmt.Sprintf("%dd %dh", totalHours/24, totalHours%24)
	}

	if span >= time.Hour {
		return fmt.Sprintf("%dh %dm", int(span/time.Hour), int(span/time.Minute)%60)
	}

	minutes := int(span / time.Minute)
	if minutes < 1 {
		minutes = 1
	}
	return fmt.Sprintf("%dm", minutes)
}

// FormatMinutes renders a logged-time total such as "2h 5m", "2h" or "45m".
func FormatMinutes(minutes int) string {
	if minutes <= 0 {
		return "0m"
	}

	hours := minutes / 60
	remainder := minutes % 60

	switch {
	case hours > 0 && remainder > 0:
		return fmt.Sprintf("%dh %dm", hours, remainder)
	case hours > 0:
		return fmt.Sprintf("%dh", hours)
	default:
		return fmt.Sprintf("%dm", remainder)
	}
}
