package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/mkessler/tally/internal/models"
)

// Store is the persisted record set: every habit id present in Habits
// has a (possibly empty) entry in Completions, and vice versa.
type Store struct {
	Version     int                             `json:"version"`
	NextID      models.HabitID                  `json:"next_id"`
	Habits      map[models.HabitID]models.Habit `json:"habits"`
	Completions map[models.HabitID][]string     `json:"completions"`
}

type JSONStore struct {
	path  string
	store *Store
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Check if file already exists
	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.store = &Store{
		Version:     1,
		NextID:      1,
		Habits:      make(map[models.HabitID]models.Habit),
		Completions: make(map[models.HabitID][]string),
	}

	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'tally init' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	s.store = &Store{}
	if err := json.Unmarshal(data, s.store); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}

	// Ensure maps are initialized
	if s.store.Habits == nil {
		s.store.Habits = make(map[models.HabitID]models.Habit)
	}
	if s.store.Completions == nil {
		s.store.Completions = make(map[models.HabitID][]string)
	}

	// Keep the habit and completion key sets identical: a habit always
	// owns a completion entry, and orphaned completion entries are
	// dropped.
	for id := range s.store.Habits {
		if _, ok := s.store.Completions[id]; !ok {
			s.store.Completions[id] = []string{}
		}
	}
	for id := range s.store.Completions {
		if _, ok := s.store.Habits[id]; !ok {
			delete(s.store.Completions, id)
		}
	}

	// The counter must stay ahead of every live id, even if the stored
	// value is missing or stale.
	for id := range s.store.Habits {
		if id >= s.store.NextID {
			s.store.NextID = id + 1
		}
	}
	if s.store.NextID < 1 {
		s.store.NextID = 1
	}

	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.store, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}

	return nil
}

func (s *JSONStore) AllocateID() (models.HabitID, error) {
	if s.store == nil {
		return 0, fmt.Errorf("storage not loaded")
	}

	id := s.store.NextID
	s.store.NextID++
	return id, nil
}

func (s *JSONStore) GetHabit(id models.HabitID) (models.Habit, error) {
	if s.store == nil {
		return models.Habit{}, fmt.Errorf("storage not loaded")
	}

	habit, ok := s.store.Habits[id]
	if !ok {
		return models.Habit{}, fmt.Errorf("habit %d: %w", id, ErrNotFound)
	}

	return habit, nil
}

func (s *JSONStore) AllHabits() ([]models.Habit, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	habits := make([]models.Habit, 0, len(s.store.Habits))
	for _, habit := range s.store.Habits {
		habits = append(habits, habit)
	}
	sort.Slice(habits, func(i, j int) bool { return habits[i].ID < habits[j].ID })

	return habits, nil
}

func (s *JSONStore) Completions(id models.HabitID) ([]string, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	days, ok := s.store.Completions[id]
	if !ok {
		return nil, fmt.Errorf("habit %d: %w", id, ErrNotFound)
	}

	out := make([]string, len(days))
	copy(out, days)
	return out, nil
}

func (s *JSONStore) AllCompletions() (map[models.HabitID][]string, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	all := make(map[models.HabitID][]string, len(s.store.Completions))
	for id, days := range s.store.Completions {
		out := make([]string, len(days))
		copy(out, days)
		all[id] = out
	}

	return all, nil
}

func (s *JSONStore) SaveHabit(habit models.Habit, days []string) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	if days == nil {
		days = []string{}
	}
	sort.Strings(days)

	prevHabit, hadHabit := s.store.Habits[habit.ID]
	prevDays := s.store.Completions[habit.ID]

	s.store.Habits[habit.ID] = habit
	s.store.Completions[habit.ID] = days
	if err := s.save(); err != nil {
		// A failed write aborts the mutation: memory must keep matching
		// what is on disk.
		if hadHabit {
			s.store.Habits[habit.ID] = prevHabit
			s.store.Completions[habit.ID] = prevDays
		} else {
			delete(s.store.Habits, habit.ID)
			delete(s.store.Completions, habit.ID)
		}
		return err
	}

	return nil
}

func (s *JSONStore) RemoveHabit(id models.HabitID) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	prevHabit, ok := s.store.Habits[id]
	if !ok {
		return fmt.Errorf("habit %d: %w", id, ErrNotFound)
	}
	prevDays := s.store.Completions[id]

	delete(s.store.Habits, id)
	delete(s.store.Completions, id)
	if err := s.save(); err != nil {
		s.store.Habits[id] = prevHabit
		s.store.Completions[id] = prevDays
		return err
	}

	return nil
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
