package utils

import (
	"testing"
	"time"
)

func TestWeekStart(t *testing.T) {
	tests := []struct {
		name  string
		today string
		want  string
	}{
		{
			name:  "monday is its own week start",
			today: "2026-03-16",
			want:  "2026-03-16",
		},
		{
			name:  "wednesday rolls back to monday",
			today: "2026-03-18",
			want:  "2026-03-16",
		},
		{
			name:  "sunday rolls back to the previous monday",
			today: "2026-03-22",
			want:  "2026-03-16",
		},
		{
			name:  "saturday rolls back to monday",
			today: "2026-03-21",
			want:  "2026-03-16",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			today, err := ParseDay(tt.today)
			if err != nil {
				t.Fatalf("ParseDay(%q) error: %v", tt.today, err)
			}
			if got := FormatDay(WeekStart(today)); got != tt.want {
				t.Errorf("WeekStart(%s) = %s, want %s", tt.today, got, tt.want)
			}
		})
	}
}

func TestWeekWindow(t *testing.T) {
	today, err := ParseDay("2026-03-18")
	if err != nil {
		t.Fatalf("ParseDay() error: %v", err)
	}

	window := WeekWindow(today)
	if len(window) != 7 {
		t.Fatalf("WeekWindow() returned %d days, want 7", len(window))
	}
	if window[0].Weekday() != time.Monday {
		t.Errorf("window starts on %s, want Monday", window[0].Weekday())
	}
	for i := 1; i < len(window); i++ {
		if !window[i].Equal(window[i-1].AddDate(0, 0, 1)) {
			t.Errorf("window days %d and %d are not consecutive", i-1, i)
		}
	}
}

func TestParseDay(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "valid date", input: "2026-03-18", wantErr: false},
		{name: "missing zero padding", input: "2026-3-18", wantErr: true},
		{name: "slashes", input: "2026/03/18", wantErr: true},
		{name: "garbage", input: "not-a-date", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDay(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDay(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && FormatDay(got) != tt.input {
				t.Errorf("ParseDay(%q) round-trips to %q", tt.input, FormatDay(got))
			}
		})
	}
}

func TestDayNormalizes(t *testing.T) {
	loc := time.FixedZone("test", 3*60*60)
	noon := time.Date(2026, 3, 18, 12, 45, 30, 0, loc)

	day := Day(noon)
	if day.Hour() != 0 || day.Minute() != 0 || day.Second() != 0 {
		t.Errorf("Day() did not truncate time of day: %v", day)
	}
	if day.Location() != time.UTC {
		t.Errorf("Day() location = %v, want UTC", day.Location())
	}
	if FormatDay(day) != "2026-03-18" {
		t.Errorf("Day() = %s, want 2026-03-18", FormatDay(day))
	}
}
