package storage

import (
	"errors"

	"github.com/mkessler/tally/internal/models"
)

// ErrNotFound is returned when a referenced habit id has no record.
var ErrNotFound = errors.New("habit not found")

// Provider is the persistence contract the tracker and TUI depend on.
// The store is read fully at load and rewritten in full on every
// mutation; a habit and its completion log are created, saved, and
// removed together.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// AllocateID reserves the next habit id from the persisted counter.
	// The new counter value is written out with the next save.
	AllocateID() (models.HabitID, error)

	// Habits
	GetHabit(id models.HabitID) (models.Habit, error)
	AllHabits() ([]models.Habit, error)

	// Completions
	Completions(id models.HabitID) ([]string, error)
	AllCompletions() (map[models.HabitID][]string, error)

	// SaveHabit upserts a habit together with its completion log and
	// persists the store.
	SaveHabit(habit models.Habit, days []string) error

	// RemoveHabit deletes a habit and its completion log together and
	// persists the store.
	RemoveHabit(id models.HabitID) error

	// Utils
	GetConfigPath() string
}
