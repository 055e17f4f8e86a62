package sla

import (
	"fmt"
	"time"
)

// WorkSchedule defines the hours that count as business time. Clock times are
// wall-clock offsets from local midnight in Location, so a schedule follows
// daylight-saving shifts in its zone.
type WorkSchedule struct {
	StartTime time.Duration
	EndTime   time.Duration
	WorkDays  map[time.Weekday]struct{}
	Location  *time.Location
}

// NewWorkSchedule validates and builds a schedule.
func NewWorkSchedule(start, end time.Duration, days []time.Weekday, loc *time.Location) (WorkSchedule, error) {
	if start >= end {
		return WorkSchedule{}, fmt.Errorf("work schedule: start %v must be before end %v", start, end)
	}
	if len(days) == 0 {
		return WorkSchedule{}, fmt.Errorf("work schedule: at least one work day required")
	}
	if loc == nil {
		loc = time.UTC
	}
	workDays := make(map[time.Weekday]struct{}, len(days))
	for _, d := range days {
		workDays[d] = struct{}{}
	}
	return WorkSchedule{
		StartTime: start,
		EndTime:   end,
		WorkDays:  workDays,
		Location:  loc,
	}, nil
}

// DefaultWorkSchedule is Monday through Friday, 08:30 to 17:30 UK time.
func DefaultWorkSchedule() WorkSchedule {
	schedule, err := NewWorkSchedule(
		8*time.Hour+30*time.Minute,
		17*time.Hour+30*time.Minute,
		[]time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday},
		ResolveLocation("Europe/London"),
	)
	if err != nil {
		// defaults are static and valid
		panic(err)
	}
	return schedule
}

// ResolveLocation tries each candidate zone identifier in order and falls
// back to UTC rather than failing startup over a missing timezone database
// entry.
func ResolveLocation(candidates ...string) *time.Location {
	for _, id := range candidates {
		if id == "" {
			continue
		}
		if loc, err := time.LoadLocation(id); err == nil {
			return loc
		}
	}
	return time.UTC
}

// IsWorkDay reports whether the weekday is part of the schedule.
func (s WorkSchedule) IsWorkDay(day time.Weekday) bool {
	_, ok := s.WorkDays[day]
	return ok
}

// windowFor returns the working window for the given calendar date in the
// schedule's zone. time.Date normalizes the minute offsets, so the bounds are
// wall-clock times even across DST transitions.
func (s WorkSchedule) windowFor(year int, month time.Month, day int) (time.Time, time.Time) {
	start := time.Date(year, month, day, 0, int(s.StartTime/time.Minute), 0, 0, s.Location)
	end := time.Date(year, month, day, 0, int(s.EndTime/time.Minute), 0, 0, s.Location)
	return start, end
}
