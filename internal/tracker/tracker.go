// Package tracker owns habit mutations. Every completion-log change
// recomputes the habit's streak caches before the store is persisted,
// so the cached values are always derivable from the log.
package tracker

import (
	"errors"
	"fmt"
	"time"

	"github.com/mkessler/tally/internal/models"
	"github.com/mkessler/tally/internal/storage"
	"github.com/mkessler/tally/internal/streak"
	"github.com/mkessler/tally/internal/utils"
)

var (
	// ErrHabitNotFound reports an operation against an unknown habit id.
	ErrHabitNotFound = errors.New("habit not found")

	// ErrAlreadyCompleted reports a duplicate completion for the same
	// day. It is informational: the store is left unchanged.
	ErrAlreadyCompleted = errors.New("habit already completed for that day")
)

type Tracker struct {
	store storage.Provider
	now   func() time.Time
}

func New(store storage.Provider) *Tracker {
	return &Tracker{store: store, now: utils.Today}
}

// Add registers a new habit with zero streaks and an empty completion
// log. The id comes from the store's monotonic counter and is never
// reused after a delete.
func (t *Tracker) Add(name, category string, frequency models.Frequency, goal string) (models.Habit, error) {
	id, err := t.store.AllocateID()
	if err != nil {
		return models.Habit{}, err
	}

	habit := models.Habit{
		ID:        id,
		Name:      name,
		Category:  category,
		Frequency: frequency,
		Goal:      goal,
		CreatedAt: time.Now(),
	}

	if err := t.store.SaveHabit(habit, nil); err != nil {
		return models.Habit{}, err
	}

	return habit, nil
}

// MarkComplete records a completion for the given day and refreshes the
// habit's streak caches. The returned habit carries the updated streaks.
func (t *Tracker) MarkComplete(id models.HabitID, day time.Time) (models.Habit, error) {
	habit, err := t.habit(id)
	if err != nil {
		return models.Habit{}, err
	}

	days, err := t.store.Completions(id)
	if err != nil {
		return models.Habit{}, err
	}

	dayStr := utils.FormatDay(day)
	for _, d := range days {
		if d == dayStr {
			return habit, fmt.Errorf("habit %d on %s: %w", id, dayStr, ErrAlreadyCompleted)
		}
	}
	days = append(days, dayStr)

	// The streak cache anchors at the real current date, not the marked
	// day: a backdated completion must not resurrect a stale streak.
	habit = t.recompute(habit, days, t.now())
	if err := t.store.SaveHabit(habit, days); err != nil {
		return models.Habit{}, err
	}

	return habit, nil
}

// Delete removes a habit and its completion log together.
func (t *Tracker) Delete(id models.HabitID) (models.Habit, error) {
	habit, err := t.habit(id)
	if err != nil {
		return models.Habit{}, err
	}

	if err := t.store.RemoveHabit(id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.Habit{}, fmt.Errorf("habit %d: %w", id, ErrHabitNotFound)
		}
		return models.Habit{}, err
	}

	return habit, nil
}

// TodayCompletions returns the ids of habits completed on the given day.
func (t *Tracker) TodayCompletions(today time.Time) (map[models.HabitID]bool, error) {
	all, err := t.store.AllCompletions()
	if err != nil {
		return nil, err
	}

	dayStr := utils.FormatDay(today)
	completed := make(map[models.HabitID]bool)
	for id, days := range all {
		for _, d := range days {
			if d == dayStr {
				completed[id] = true
				break
			}
		}
	}

	return completed, nil
}

// Habits returns all habits ordered by id.
func (t *Tracker) Habits() ([]models.Habit, error) {
	return t.store.AllHabits()
}

// Habit returns a single habit by id.
func (t *Tracker) Habit(id models.HabitID) (models.Habit, error) {
	return t.habit(id)
}

func (t *Tracker) habit(id models.HabitID) (models.Habit, error) {
	habit, err := t.store.GetHabit(id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.Habit{}, fmt.Errorf("habit %d: %w", id, ErrHabitNotFound)
		}
		return models.Habit{}, err
	}
	return habit, nil
}

// recompute refreshes the derived streak fields from the completion log.
func (t *Tracker) recompute(habit models.Habit, days []string, today time.Time) models.Habit {
	dates := make([]time.Time, 0, len(days))
	for _, d := range days {
		date, err := utils.ParseDay(d)
		if err != nil {
			// Malformed entries can only come from a hand-edited store
			// file; they carry no calendar meaning, so skip them.
			continue
		}
		dates = append(dates, date)
	}

	result := streak.Compute(dates, today)
	habit.CurrentStreak = result.Current
	habit.LongestStreak = result.Longest
	return habit
}
