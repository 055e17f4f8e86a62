package sla

import (
	"testing"
	"time"
)

func TestFormatAge(t *testing.T) {
	now := time.Date(2024, time.January, 8, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		span time.Duration
		want string
	}{
		{"just created", 10 * time.Second, "1m"},
		{"twenty five minutes", 25 * time.Minute, "25m"},
		{"two hours five minutes", 2*time.Hour + 5*time.Minute, "2h 5m"},
		{"exactly one hour", time.Hour, "1h 0m"},
		{"one day three hours", 27 * time.Hour, "1d 3h"},
		{"several days", 3*24*time.Hour + 7*time.Hour + 40*time.Minute, "3d 7h"},
		{"created in the future", -time.Hour, "1m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatAge(now.Add(-tt.span), now); got != tt.want {
				t.Errorf("FormatAge(span %v) = %q, want %q", tt.span, got, tt.want)
			}
		})
	}
}

func TestFormatMinutes(t *testing.T) {
	tests := []struct {
		minutes int
		want    string
	}{
		{0, "0m"},
		{-15, "0m"},
		{45, "45m"},
		{60, "1h"},
		{125, "2h 5m"},
		{1440, "24h"},
	}

	for _, tt := range tests {
		if got := FormatMinutes(tt.minutes); got != tt.want {
			t.Errorf("FormatMinutes(%d) = %q, want %q", tt.minutes, got, tt.want)
		}
	}
}
