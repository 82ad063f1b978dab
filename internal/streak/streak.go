// Package streak derives streak statistics from a habit's completion
// dates. Computation is a pure function of the date set and an injected
// "today", so callers control the clock and results are reproducible.
package streak

import (
	"sort"
	"time"

	"github.com/mkessler/tally/internal/utils"
)

// Result holds the derived streak values for one habit.
type Result struct {
	// Current is the length of the consecutive-day run ending at today
	// or yesterday. It is 0 when no such run exists.
	Current int
	// Longest is the length of the longest consecutive-day run anywhere
	// in the habit's history. It is at least 1 when any completion
	// exists, and never less than Current.
	Longest int
}

// Compute derives the current and longest streaks from a set of
// completion dates. The computation is full, not incremental; the date
// sets involved are bounded by days-since-habit-creation, so a full
// rescan per mutation is cheap.
//
// Dates in the future relative to today remain valid set members and
// count toward the longest streak, but the current-streak walk skips
// them: a streak is only "alive" if it reaches today or yesterday.
func Compute(dates []time.Time, today time.Time) Result {
	if len(dates) == 0 {
		return Result{}
	}

	days := normalize(dates)
	return Result{
		Current: currentStreak(days, utils.Day(today)),
		Longest: longestStreak(days),
	}
}

// normalize truncates to calendar dates, dedupes, and sorts ascending.
func normalize(dates []time.Time) []time.Time {
	seen := make(map[time.Time]bool, len(dates))
	days := make([]time.Time, 0, len(dates))
	for _, d := range dates {
		day := utils.Day(d)
		if !seen[day] {
			seen[day] = true
			days = append(days, day)
		}
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	return days
}

func currentStreak(days []time.Time, today time.Time) int {
	streak := 0
	cursor := today
	for i := len(days) - 1; i >= 0; i-- {
		day := days[i]
		if day.After(today) {
			continue
		}
		if day.Equal(cursor) || day.Equal(cursor.AddDate(0, 0, -1)) {
			streak++
			cursor = day
			continue
		}
		break
	}
	return streak
}

func longestStreak(days []time.Time) int {
	if len(days) == 0 {
		return 0
	}
	longest, run := 1, 1
	for i := 1; i < len(days); i++ {
		if days[i].Equal(days[i-1].AddDate(0, 0, 1)) {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	return longest
}
