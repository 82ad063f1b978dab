package models

import (
	"fmt"
	"strconv"
	"time"
)

// HabitID identifies a habit. Ids are allocated from a monotonically
// increasing counter persisted alongside the store, so an id is never
// reused after its habit is deleted.
type HabitID int

func (id HabitID) String() string {
	return strconv.Itoa(int(id))
}

// ParseHabitID parses a user-supplied habit id.
func ParseHabitID(s string) (HabitID, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid habit id: %q", s)
	}
	return HabitID(n), nil
}

// Frequency is how often a habit is meant to be performed.
type Frequency string

const (
	FrequencyDaily  Frequency = "daily"
	FrequencyWeekly Frequency = "weekly"
)

// ParseFrequency validates a frequency string. An empty string defaults
// to daily, matching the add prompt's default.
func ParseFrequency(s string) (Frequency, error) {
	switch Frequency(s) {
	case "":
		return FrequencyDaily, nil
	case FrequencyDaily, FrequencyWeekly:
		return Frequency(s), nil
	default:
		return "", fmt.Errorf("invalid frequency: %q (expected daily or weekly)", s)
	}
}

// Habit represents a recurring practice to track.
//
// CurrentStreak and LongestStreak are caches derived from the habit's
// completion log; every mutation of the log recomputes them before they
// are persisted or read.
type Habit struct {
	ID            HabitID   `json:"id"`
	Name          string    `json:"name"`
	Category      string    `json:"category"`
	Frequency     Frequency `json:"frequency"`
	Goal          string    `json:"goal,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	CurrentStreak int       `json:"current_streak"`
	LongestStreak int       `json:"longest_streak"`
}
