package sla

import (
	"testing"
	"time"
)

func TestNewWorkSchedule_Validation(t *testing.T) {
	weekdays := []time.Weekday{time.Monday}

	if _, err := NewWorkSchedule(9*time.Hour, 17*time.Hour, weekdays, time.UTC); err != nil {
		t.Errorf("valid schedule rejected: %v", err)
	}
	if _, err := NewWorkSchedule(17*time.Hour, 9*time.Hour, weekdays, time.UTC); err == nil {
		t.Error("expected error for start after end")
	}
	if _, err := NewWorkSchedule(9*time.Hour, 9*time.Hour, weekdays, time.UTC); err == nil {
		t.Error("expected error for start equal to end")
	}
	if _, err := NewWorkSchedule(9*time.Hour, 17*time.Hour, nil, time.UTC); err == nil {
		t.Error("expected error for empty work days")
	}
}

func TestNewWorkSchedule_NilLocationDefaultsToUTC(t *testing.T) {
	schedule, err := NewWorkSchedule(9*time.Hour, 17*time.Hour, []time.Weekday{time.Monday}, nil)
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}
	if schedule.Location != time.UTC {
		t.Errorf("Location = %v, want UTC", schedule.Location)
	}
}

func TestResolveLocation_FallsBackToUTC(t *testing.T) {
	if loc := ResolveLocation("Not/AZone", "Also/Bogus"); loc != time.UTC {
		t.Errorf("ResolveLocation with bogus ids = %v, want UTC", loc)
	}
	if loc := ResolveLocation(); loc != time.UTC {
		t.Errorf("ResolveLocation with no candidates = %v, want UTC", loc)
	}
	if loc := ResolveLocation("", "UTC"); loc != time.UTC {
		t.Errorf("ResolveLocation skipping empty ids = %v, want UTC", loc)
	}
}

func TestDefaultWorkSchedule(t *testing.T) {
	schedule := DefaultWorkSchedule()

	if schedule.StartTime != 8*time.Hour+30*time.Minute {
		t.Errorf("StartTime = %v", schedule.StartTime)
	}
	if schedule.EndTime != 17*time.Hour+30*time.Minute {
		t.Errorf("EndTime = %v", schedule.EndTime)
	}
	for _, day := range []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday} {
		if !schedule.IsWorkDay(day) {
			t.Errorf("%v should be a work day", day)
		}
	}
	if schedule.IsWorkDay(time.Saturday) || schedule.IsWorkDay(time.Sunday) {
		t.Error("weekend should not be working days")
	}
}
