package storage

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/mkessler/tally/internal/models"
)

func newTestStore(t *testing.T) *JSONStore {
	t.Helper()
	store := NewJSONStore(filepath.Join(t.TempDir(), "tally.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	return store
}

func sampleHabit(id models.HabitID) models.Habit {
	return models.Habit{
		ID:            id,
		Name:          "Run",
		Category:      "Health",
		Frequency:     models.FrequencyDaily,
		Goal:          "5k without stopping",
		CreatedAt:     time.Date(2026, 3, 1, 8, 30, 0, 0, time.UTC),
		CurrentStreak: 2,
		LongestStreak: 5,
	}
}

func TestRoundTrip(t *testing.T) {
	store := newTestStore(t)

	id, err := store.AllocateID()
	if err != nil {
		t.Fatalf("AllocateID() error: %v", err)
	}
	habit := sampleHabit(id)
	days := []string{"2026-03-16", "2026-03-17"}
	if err := store.SaveHabit(habit, days); err != nil {
		t.Fatalf("SaveHabit() error: %v", err)
	}

	reloaded := NewJSONStore(store.GetConfigPath())
	if err := reloaded.Load(); err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	got, err := reloaded.GetHabit(id)
	if err != nil {
		t.Fatalf("GetHabit() error: %v", err)
	}
	if !reflect.DeepEqual(got, habit) {
		t.Errorf("habit did not round-trip:\n got %+v\nwant %+v", got, habit)
	}

	gotDays, err := reloaded.Completions(id)
	if err != nil {
		t.Fatalf("Completions() error: %v", err)
	}
	if !reflect.DeepEqual(gotDays, days) {
		t.Errorf("completions did not round-trip: got %v, want %v", gotDays, days)
	}
}

func TestLoadMissingFile(t *testing.T) {
	store := NewJSONStore(filepath.Join(t.TempDir(), "missing.json"))
	if err := store.Load(); err == nil {
		t.Error("Load() succeeded on a missing store file")
	}
}

func TestInitRefusesExistingFile(t *testing.T) {
	store := newTestStore(t)
	if err := NewJSONStore(store.GetConfigPath()).Init(); err == nil {
		t.Error("Init() succeeded on an already-initialized store")
	}
}

func TestAllocateIDIsMonotonic(t *testing.T) {
	store := newTestStore(t)

	first, err := store.AllocateID()
	if err != nil {
		t.Fatalf("AllocateID() error: %v", err)
	}
	second, err := store.AllocateID()
	if err != nil {
		t.Fatalf("AllocateID() error: %v", err)
	}
	if second != first+1 {
		t.Errorf("AllocateID() = %d after %d, want %d", second, first, first+1)
	}
}

func TestLoadRecoversStaleCounter(t *testing.T) {
	// A hand-edited store may carry a counter behind its live ids; the
	// loader must advance it past the highest one.
	path := filepath.Join(t.TempDir(), "tally.json")
	raw := `{
  "version": 1,
  "next_id": 1,
  "habits": {"5": {"id": 5, "name": "Run", "category": "Health", "frequency": "daily", "created_at": "2026-03-01T08:30:00Z", "current_streak": 0, "longest_streak": 0}},
  "completions": {"5": []}
}`
	if err := os.WriteFile(path, []byte(raw), 0600); err != nil {
		t.Fatalf("failed to write store file: %v", err)
	}

	store := NewJSONStore(path)
	if err := store.Load(); err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	id, err := store.AllocateID()
	if err != nil {
		t.Fatalf("AllocateID() error: %v", err)
	}
	if id != 6 {
		t.Errorf("AllocateID() = %d with live id 5, want 6", id)
	}
}

func TestLoadRepairsKeyParity(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tally.json")
	raw := `{
  "version": 1,
  "next_id": 3,
  "habits": {"1": {"id": 1, "name": "Run", "category": "Health", "frequency": "daily", "created_at": "2026-03-01T08:30:00Z", "current_streak": 0, "longest_streak": 0}},
  "completions": {"2": ["2026-03-16"]}
}`
	if err := os.WriteFile(path, []byte(raw), 0600); err != nil {
		t.Fatalf("failed to write store file: %v", err)
	}

	store := NewJSONStore(path)
	if err := store.Load(); err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	// Habit 1 gains an empty completion entry.
	days, err := store.Completions(1)
	if err != nil {
		t.Fatalf("Completions(1) error: %v", err)
	}
	if len(days) != 0 {
		t.Errorf("Completions(1) = %v, want empty", days)
	}

	// The orphaned completion entry for the missing habit 2 is dropped.
	if _, err := store.Completions(2); !errors.Is(err, ErrNotFound) {
		t.Errorf("Completions(2) error = %v, want ErrNotFound", err)
	}
}

func TestRemoveHabitUnknown(t *testing.T) {
	store := newTestStore(t)
	if err := store.RemoveHabit(42); !errors.Is(err, ErrNotFound) {
		t.Errorf("RemoveHabit() error = %v, want ErrNotFound", err)
	}
}

func TestRemoveHabitDeletesBothEntries(t *testing.T) {
	store := newTestStore(t)

	id, err := store.AllocateID()
	if err != nil {
		t.Fatalf("AllocateID() error: %v", err)
	}
	if err := store.SaveHabit(sampleHabit(id), []string{"2026-03-16"}); err != nil {
		t.Fatalf("SaveHabit() error: %v", err)
	}

	if err := store.RemoveHabit(id); err != nil {
		t.Fatalf("RemoveHabit() error: %v", err)
	}

	if _, err := store.GetHabit(id); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetHabit() after remove error = %v, want ErrNotFound", err)
	}
	if _, err := store.Completions(id); !errors.Is(err, ErrNotFound) {
		t.Errorf("Completions() after remove error = %v, want ErrNotFound", err)
	}
}

// breakStorePath replaces the store file with a directory so every
// later write to it fails, regardless of the user running the tests.
func breakStorePath(t *testing.T, path string) {
	t.Helper()
	if err := os.Remove(path); err != nil {
		t.Fatalf("failed to remove store file: %v", err)
	}
	if err := os.Mkdir(path, 0700); err != nil {
		t.Fatalf("failed to block store path: %v", err)
	}
}

func TestSaveHabitRollsBackOnWriteFailure(t *testing.T) {
	store := newTestStore(t)

	id, err := store.AllocateID()
	if err != nil {
		t.Fatalf("AllocateID() error: %v", err)
	}
	if err := store.SaveHabit(sampleHabit(id), []string{"2026-03-16"}); err != nil {
		t.Fatalf("SaveHabit() error: %v", err)
	}

	breakStorePath(t, store.GetConfigPath())

	// A new habit must not survive in memory when its write fails.
	newID, err := store.AllocateID()
	if err != nil {
		t.Fatalf("AllocateID() error: %v", err)
	}
	if err := store.SaveHabit(sampleHabit(newID), nil); err == nil {
		t.Fatal("SaveHabit() succeeded with an unwritable store path")
	}
	if _, err := store.GetHabit(newID); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetHabit() after failed save error = %v, want ErrNotFound", err)
	}

	// An update must leave the previous record in place.
	changed := sampleHabit(id)
	changed.CurrentStreak = 9
	if err := store.SaveHabit(changed, []string{"2026-03-16", "2026-03-17"}); err == nil {
		t.Fatal("SaveHabit() succeeded with an unwritable store path")
	}
	got, err := store.GetHabit(id)
	if err != nil {
		t.Fatalf("GetHabit() error: %v", err)
	}
	if got.CurrentStreak != sampleHabit(id).CurrentStreak {
		t.Errorf("current streak = %d after failed update, want %d", got.CurrentStreak, sampleHabit(id).CurrentStreak)
	}
	days, err := store.Completions(id)
	if err != nil {
		t.Fatalf("Completions() error: %v", err)
	}
	if !reflect.DeepEqual(days, []string{"2026-03-16"}) {
		t.Errorf("Completions() = %v after failed update, want unchanged", days)
	}
}

func TestRemoveHabitRollsBackOnWriteFailure(t *testing.T) {
	store := newTestStore(t)

	id, err := store.AllocateID()
	if err != nil {
		t.Fatalf("AllocateID() error: %v", err)
	}
	if err := store.SaveHabit(sampleHabit(id), []string{"2026-03-16"}); err != nil {
		t.Fatalf("SaveHabit() error: %v", err)
	}

	breakStorePath(t, store.GetConfigPath())

	if err := store.RemoveHabit(id); err == nil {
		t.Fatal("RemoveHabit() succeeded with an unwritable store path")
	}

	if _, err := store.GetHabit(id); err != nil {
		t.Errorf("GetHabit() after failed remove error = %v, want habit restored", err)
	}
	days, err := store.Completions(id)
	if err != nil {
		t.Fatalf("Completions() after failed remove error: %v", err)
	}
	if !reflect.DeepEqual(days, []string{"2026-03-16"}) {
		t.Errorf("Completions() = %v after failed remove, want unchanged", days)
	}
}

func TestSaveHabitSortsCompletions(t *testing.T) {
	store := newTestStore(t)

	id, err := store.AllocateID()
	if err != nil {
		t.Fatalf("AllocateID() error: %v", err)
	}
	if err := store.SaveHabit(sampleHabit(id), []string{"2026-03-18", "2026-03-16", "2026-03-17"}); err != nil {
		t.Fatalf("SaveHabit() error: %v", err)
	}

	days, err := store.Completions(id)
	if err != nil {
		t.Fatalf("Completions() error: %v", err)
	}
	want := []string{"2026-03-16", "2026-03-17", "2026-03-18"}
	if !reflect.DeepEqual(days, want) {
		t.Errorf("Completions() = %v, want %v", days, want)
	}
}
