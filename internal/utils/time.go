package utils

import (
	"time"

	"github.com/mkessler/tally/internal/constants"
)

// Day truncates a time to its calendar date at midnight UTC. All date
// arithmetic in the app happens on these normalized values.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Today returns the current calendar date.
func Today() time.Time {
	return Day(time.Now())
}

// FormatDay formats a date as YYYY-MM-DD.
func FormatDay(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// ParseDay parses a YYYY-MM-DD date string into a normalized date.
func ParseDay(s string) (time.Time, error) {
	t, err := time.Parse(constants.DateFormat, s)
	if err != nil {
		return time.Time{}, err
	}
	return Day(t), nil
}

// WeekStart returns the most recent Monday on or before the given date.
func WeekStart(today time.Time) time.Time {
	d := Day(today)
	// time.Weekday counts Sunday as 0; shift so Monday is 0.
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset)
}

// WeekWindow returns the 7 consecutive dates of the week containing the
// given date, starting at Monday.
func WeekWindow(today time.Time) []time.Time {
	start := WeekStart(today)
	days := make([]time.Time, 7)
	for i := range days {
		days[i] = start.AddDate(0, 0, i)
	}
	return days
}
