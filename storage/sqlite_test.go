package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(filepath.Join(t.TempDir(), "results.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenCreatesFile(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "dir", "results.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("database file was not created")
	}
}

func TestBestTimes(t *testing.T) {
	store := openTestStore(t)

	results := []Result{
		{Difficulty: "easy", Won: true, Duration: 42 * time.Second, Mines: 10, Seed: 1},
		{Difficulty: "easy", Won: false, Duration: 3 * time.Second, Mines: 10, Seed: 2},
		{Difficulty: "easy", Won: true, Duration: 17 * time.Second, Mines: 11, Seed: 3},
		{Difficulty: "easy", Won: true, Duration: 90 * time.Second, Mines: 12, Seed: 4},
		{Difficulty: "hard", Won: true, Duration: 5 * time.Second, Mines: 99, Seed: 5},
	}
	for _, result := range results {
		if _, err := store.RecordResult(result); err != nil {
			t.Fatalf("RecordResult() failed: %v", err)
		}
	}

	best, err := store.BestTimes("easy", 2)
	if err != nil {
		t.Fatalf("BestTimes() failed: %v", err)
	}
	if len(best) != 2 {
		t.Fatalf("BestTimes() returned %d results, want 2", len(best))
	}
	if best[0].Duration != 17*time.Second || best[0].Seed != 3 {
		t.Errorf("fastest = %+v, want the 17s game with seed 3", best[0])
	}
	if best[1].Duration != 42*time.Second {
		t.Errorf("second = %v, want 42s", best[1].Duration)
	}
	for _, result := range best {
		if !result.Won || result.Difficulty != "easy" {
			t.Errorf("unexpected result %+v", result)
		}
	}

	none, err := store.BestTimes("medium", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(none) != 0 {
		t.Errorf("BestTimes(medium) = %v, want empty", none)
	}
}

func TestStats(t *testing.T) {
	store := openTestStore(t)

	store.RecordResult(Result{Difficulty: "easy", Won: true, Duration: time.Second})
	store.RecordResult(Result{Difficulty: "easy", Won: false, Duration: time.Second})
	store.RecordResult(Result{Difficulty: "easy", Won: false, Duration: time.Second})

	stats, err := store.Stats("easy")
	if err != nil {
		t.Fatal(err)
	}
	if stats != (Stats{Played: 3, Won: 1}) {
		t.Errorf("Stats() = %+v, want 3 played, 1 won", stats)
	}

	empty, err := store.Stats("hard")
	if err != nil {
		t.Fatal(err)
	}
	if empty != (Stats{}) {
		t.Errorf("Stats(hard) = %+v, want zero", empty)
	}
}
