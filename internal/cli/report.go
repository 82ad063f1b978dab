package cli

import (
	"fmt"

	"github.com/mkessler/tally/internal/report"
	"github.com/mkessler/tally/internal/utils"
)

type WeekCmd struct{}

func (c *WeekCmd) Run(ctx *Context) error {
	habits, err := ctx.Tracker.Habits()
	if err != nil {
		return err
	}

	completions, err := ctx.Store.AllCompletions()
	if err != nil {
		return err
	}

	week := report.WeeklyReport(habits, completions, utils.Today())

	printHeader("Weekly Report")
	fmt.Println()

	for _, day := range week.Days {
		fmt.Printf("%s %s: %s %d/%d (%.0f%%)\n",
			day.Day.Format("Mon"),
			day.Day.Format("01/02"),
			report.Bar(day.Percent),
			day.Completed,
			day.Total,
			day.Percent,
		)
	}

	fmt.Printf("\nWeekly completion: %.1f%%\n", week.WeekPercent)
	fmt.Printf("Total completions: %d/%d\n", week.WeekCompleted, week.WeekPossible)
	return nil
}

type StatsCmd struct{}

func (c *StatsCmd) Run(ctx *Context) error {
	habits, err := ctx.Tracker.Habits()
	if err != nil {
		return err
	}

	completions, err := ctx.Store.AllCompletions()
	if err != nil {
		return err
	}

	categories := report.CategoryReport(habits, completions, utils.Today())

	printHeader("Category Statistics")

	if len(categories) == 0 {
		fmt.Println("\nNo habits found.")
		return nil
	}

	for _, stats := range categories {
		fmt.Printf("\n%s:\n", stats.Category)
		fmt.Printf("  Today: %d/%d (%.1f%%)\n", stats.CompletedToday, stats.Habits, stats.TodayPercent)
		fmt.Printf("  Average streak: %.1f day(s)\n", stats.AverageStreak)
		fmt.Printf("  Best streak: %d day(s)\n", stats.BestStreak)
	}

	return nil
}
