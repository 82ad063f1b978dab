// Package report computes read-only aggregates over the whole habit
// set: the weekly completion report and per-category statistics. Both
// take the store contents and an injected "today" and never mutate
// state.
package report

import (
	"sort"
	"strings"
	"time"

	"github.com/mkessler/tally/internal/models"
	"github.com/mkessler/tally/internal/utils"
)

// DayProgress is one day of the weekly report.
type DayProgress struct {
	Day       time.Time
	Completed int
	Total     int
	Percent   float64
}

// Weekly covers the 7 days starting at the most recent Monday on or
// before today.
type Weekly struct {
	Days          []DayProgress
	WeekCompleted int
	WeekPossible  int
	WeekPercent   float64
}

// CategoryStats summarizes the habits sharing one category. Categories
// exist only through their habits, so an empty group never appears.
type CategoryStats struct {
	Category       string
	Habits         int
	CompletedToday int
	TodayPercent   float64
	AverageStreak  float64
	BestStreak     int
}

// WeeklyReport counts, for each day of the current week, how many
// habits were completed that day, as an absolute count and as a
// percentage of the total habit count.
func WeeklyReport(habits []models.Habit, completions map[models.HabitID][]string, today time.Time) Weekly {
	total := len(habits)
	week := Weekly{Days: make([]DayProgress, 0, 7)}

	for _, day := range utils.WeekWindow(today) {
		dayStr := utils.FormatDay(day)
		completed := 0
		for _, days := range completions {
			if containsDay(days, dayStr) {
				completed++
			}
		}

		week.Days = append(week.Days, DayProgress{
			Day:       day,
			Completed: completed,
			Total:     total,
			Percent:   percent(completed, total),
		})
		week.WeekCompleted += completed
	}

	week.WeekPossible = total * 7
	week.WeekPercent = percent(week.WeekCompleted, week.WeekPossible)
	return week
}

// CategoryReport groups habits by category and summarizes each group:
// habit count, today's completions, and the average and best current
// streak. Groups are returned sorted by category name.
func CategoryReport(habits []models.Habit, completions map[models.HabitID][]string, today time.Time) []CategoryStats {
	dayStr := utils.FormatDay(today)
	groups := make(map[string]*CategoryStats)
	streakSums := make(map[string]int)

	for _, habit := range habits {
		stats, ok := groups[habit.Category]
		if !ok {
			stats = &CategoryStats{Category: habit.Category}
			groups[habit.Category] = stats
		}

		stats.Habits++
		streakSums[habit.Category] += habit.CurrentStreak
		if habit.CurrentStreak > stats.BestStreak {
			stats.BestStreak = habit.CurrentStreak
		}
		if containsDay(completions[habit.ID], dayStr) {
			stats.CompletedToday++
		}
	}

	out := make([]CategoryStats, 0, len(groups))
	for category, stats := range groups {
		stats.TodayPercent = percent(stats.CompletedToday, stats.Habits)
		if stats.Habits > 0 {
			stats.AverageStreak = float64(streakSums[category]) / float64(stats.Habits)
		}
		out = append(out, *stats)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })

	return out
}

func containsDay(days []string, day string) bool {
	for _, d := range days {
		if d == day {
			return true
		}
	}
	return false
}

// percent guards the zero denominator, yielding 0 instead of NaN.
func percent(completed, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(completed) / float64(total) * 100
}

// Bar renders the five-cell progress bar shown next to a day's
// percentage, shared by the week views of the CLI and the dashboard.
func Bar(percent float64) string {
	filled := int(percent / 20)
	if filled > 5 {
		filled = 5
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", 5-filled)
}
