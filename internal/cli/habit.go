package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/mkessler/tally/internal/constants"
	"github.com/mkessler/tally/internal/models"
	"github.com/mkessler/tally/internal/tracker"
	"github.com/mkessler/tally/internal/utils"
)

type AddCmd struct {
	Name      string `arg:"" optional:"" help:"Habit name. Omit to fill in the details interactively."`
	Category  string `help:"Habit category." default:"Other"`
	Frequency string `help:"How often the habit is performed." enum:"daily,weekly" default:"daily"`
	Goal      string `help:"Optional goal description."`
}

func (c *AddCmd) Run(ctx *Context) error {
	name := strings.TrimSpace(c.Name)
	category := c.Category
	frequency, err := models.ParseFrequency(c.Frequency)
	if err != nil {
		return err
	}
	goal := c.Goal

	if name == "" {
		if err := runAddForm(&name, &category, &frequency, &goal); err != nil {
			return err
		}
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("habit name is required")
	}
	if strings.TrimSpace(category) == "" {
		return fmt.Errorf("habit category is required")
	}

	ctx.PerformAutomaticBackup()

	habit, err := ctx.Tracker.Add(name, category, frequency, goal)
	if err != nil {
		return err
	}

	fmt.Printf("Added habit %s: %s\n", habit.ID, habit.Name)
	return nil
}

func runAddForm(name, category *string, frequency *models.Frequency, goal *string) error {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Habit name").
				Value(name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name is required")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Category").
				Options(huh.NewOptions(constants.Categories...)...).
				Value(category),
			huh.NewSelect[models.Frequency]().
				Title("Frequency").
				Options(
					huh.NewOption("Daily", models.FrequencyDaily),
					huh.NewOption("Weekly", models.FrequencyWeekly),
				).
				Value(frequency),
			huh.NewInput().
				Title("Goal (optional)").
				Value(goal),
		),
	)
	return form.Run()
}

type DoneCmd struct {
	ID   string `arg:"" help:"Habit id."`
	Date string `help:"Date in YYYY-MM-DD format (default: today)." default:""`
}

func (c *DoneCmd) Run(ctx *Context) error {
	id, err := models.ParseHabitID(c.ID)
	if err != nil {
		return err
	}

	day := utils.Today()
	if c.Date != "" {
		day, err = utils.ParseDay(c.Date)
		if err != nil {
			return fmt.Errorf("invalid date format: %s (expected YYYY-MM-DD)", c.Date)
		}
	}

	ctx.PerformAutomaticBackup()

	habit, err := ctx.Tracker.MarkComplete(id, day)
	if err != nil {
		// A duplicate completion is informational, not a failure.
		if errors.Is(err, tracker.ErrAlreadyCompleted) {
			fmt.Printf("Habit %q is already completed for %s.\n", habit.Name, utils.FormatDay(day))
			return nil
		}
		return err
	}

	fmt.Println(doneStyle.Render(fmt.Sprintf("Marked %q complete for %s.", habit.Name, utils.FormatDay(day))))
	fmt.Printf("Current streak: %d day(s) %s | Longest: %d day(s)\n",
		habit.CurrentStreak, StreakMarker(habit.CurrentStreak), habit.LongestStreak)
	return nil
}

type ListCmd struct {
	Category string `help:"Filter by category."`
}

func (c *ListCmd) Run(ctx *Context) error {
	habits, err := ctx.Tracker.Habits()
	if err != nil {
		return err
	}

	completedToday, err := ctx.Tracker.TodayCompletions(utils.Today())
	if err != nil {
		return err
	}

	printHeader("Your Habits")

	shown := 0
	for _, habit := range habits {
		if c.Category != "" && habit.Category != c.Category {
			continue
		}
		shown++

		status := "○"
		if completedToday[habit.ID] {
			status = doneStyle.Render("✓")
		}
		fmt.Printf("\n%s [%s] %s\n", status, habit.ID, habit.Name)
		fmt.Println(metaStyle.Render(fmt.Sprintf("   Category: %s | Frequency: %s", habit.Category, habit.Frequency)))
		fmt.Printf("   Current streak: %d day(s) %s\n", habit.CurrentStreak, StreakMarker(habit.CurrentStreak))
		fmt.Printf("   Longest streak: %d day(s)\n", habit.LongestStreak)
		if habit.Goal != "" {
			fmt.Println(metaStyle.Render("   Goal: " + habit.Goal))
		}
	}

	if shown == 0 {
		fmt.Println("No habits found.")
	}

	return nil
}

type DeleteCmd struct {
	ID string `arg:"" help:"Habit id to delete."`
}

func (c *DeleteCmd) Run(ctx *Context) error {
	id, err := models.ParseHabitID(c.ID)
	if err != nil {
		return err
	}

	ctx.PerformAutomaticBackup()

	habit, err := ctx.Tracker.Delete(id)
	if err != nil {
		return err
	}

	fmt.Printf("Deleted habit: %s\n", habit.Name)
	return nil
}
