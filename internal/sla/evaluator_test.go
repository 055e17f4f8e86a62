package sla

import (
	"testing"
	"time"

	"github.com/spec-kit/helpdesk/internal/domain"
)

func testEvaluator(t *testing.T, thresholds Thresholds) *Evaluator {
	t.Helper()
	return NewEvaluator(NewCalculator(utcSchedule(t)), thresholds)
}

func TestClassify_ThresholdBoundaries(t *testing.T) {
	// High priority: 8 hours = 480 working minutes, due-soon band from 360.
	eval := testEvaluator(t, DefaultThresholds())
	createdAt := monday(8, 30)

	tests := []struct {
		name string
		now  time.Time
		want State
	}{
		{"exactly at threshold", monday(16, 30), StateOverdue},
		{"exactly at due-soon band", monday(14, 30), StateDueSoon},
		{"one minute under the band", monday(14, 29), StateOnTrack},
		{"freshly created", monday(8, 30), StateOnTrack},
		{"now before creation", monday(8, 0), StateOnTrack},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := eval.Classify(createdAt, domain.TicketPriorityHigh, tt.now)
			if got != tt.want {
				t.Errorf("Classify at %v = %s, want %s", tt.now, got, tt.want)
			}
		})
	}
}

func TestClassify_WeekendScenario(t *testing.T) {
	eval := testEvaluator(t, DefaultThresholds())
	createdAt := monday(8, 30)

	// One calendar day later only one working day (540 min) has elapsed,
	// which already exceeds the 480-minute High threshold.
	nextMorning := monday(8, 30).AddDate(0, 0, 1)
	if got := eval.Classify(createdAt, domain.TicketPriorityHigh, nextMorning); got != StateOverdue {
		t.Errorf("Classify after one working day = %s, want %s", got, StateOverdue)
	}

	// Four working hours in: 240 < 360, still on track.
	if got := eval.Classify(createdAt, domain.TicketPriorityHigh, monday(12, 30)); got != StateOnTrack {
		t.Errorf("Classify after 240 working minutes = %s, want %s", got, StateOnTrack)
	}
}

func TestClassify_DisabledThreshold(t *testing.T) {
	thresholds := DefaultThresholds()
	thresholds.HighHours = 0
	eval := testEvaluator(t, thresholds)

	createdAt := monday(8, 30)
	longAgo := createdAt.AddDate(0, 6, 0)
	if got := eval.Classify(createdAt, domain.TicketPriorityHigh, longAgo); got != StateOnTrack {
		t.Errorf("Classify with disabled threshold = %s, want %s", got, StateOnTrack)
	}
}

func TestClassify_PriorityLookup(t *testing.T) {
	eval := testEvaluator(t, DefaultThresholds())
	createdAt := monday(8, 30)
	// 300 working minutes elapsed by 13:30.
	now := monday(13, 30)

	tests := []struct {
		priority domain.TicketPriority
		want     State
	}{
		{domain.TicketPriorityCritical, StateOverdue}, // 240-minute threshold
		{domain.TicketPriorityHigh, StateOnTrack},     // band starts at 360
		{domain.TicketPriorityMedium, StateOnTrack},
		{domain.TicketPriorityLow, StateOnTrack},
		{domain.TicketPriorityNone, StateOnTrack},
	}

	for _, tt := range tests {
		t.Run(string(tt.priority), func(t *testing.T) {
			if got := eval.Classify(createdAt, tt.priority, now); got != tt.want {
				t.Errorf("Classify(%s) = %s, want %s", tt.priority, got, tt.want)
			}
		})
	}
}

func TestDeadline(t *testing.T) {
	eval := testEvaluator(t, DefaultThresholds())
	createdAt := monday(8, 30)

	// Critical = 4h: deadline four working hours after creation.
	if got := eval.Deadline(createdAt, domain.TicketPriorityCritical); !got.Equal(monday(12, 30)) {
		t.Errorf("Deadline(critical) = %v, want %v", got, monday(12, 30))
	}

	thresholds := DefaultThresholds()
	thresholds.LowHours = -1
	eval = testEvaluator(t, thresholds)
	if got := eval.Deadline(createdAt, domain.TicketPriorityLow); !got.IsZero() {
		t.Errorf("Deadline with disabled threshold = %v, want zero time", got)
	}
}
