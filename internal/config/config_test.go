package config

import (
	"testing"
	"time"
)

func TestParseWorkDays(t *testing.T) {
	cases := []struct {
		name    string
		input   string
		want    []time.Weekday
		wantErr bool
	}{
		{"short names", "Mon,Tue,Wed,Thu,Fri", []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday}, false},
		{"full names", "Monday,Friday", []time.Weekday{time.Monday, time.Friday}, false},
		{"mixed case and spacing", " mon , FRI ", []time.Weekday{time.Monday, time.Friday}, false},
		{"weekend", "Sat,Sun", []time.Weekday{time.Saturday, time.Sunday}, false},
		{"unknown entry", "Mon,Xyz", nil, true},
		{"empty", "", nil, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseWorkDays(tc.input)
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("parseWorkDays: %v", err)
			}
			if len(got) != len(tc.want) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Errorf("day %d = %v, want %v", i, got[i], tc.want[i])
				}
			}
		})
	}
}

func TestSMTPEnabled(t *testing.T) {
	if (SMTPConfig{}).Enabled() {
		t.Error("empty host should disable SMTP")
	}
	if !(SMTPConfig{Host: "smtp.example.com"}).Enabled() {
		t.Error("host set should enable SMTP")
	}
}
