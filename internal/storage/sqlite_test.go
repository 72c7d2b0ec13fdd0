package storage

import (
	"os"
	"path/filepath"
	"testing"
)

// openTestStore opens a fresh database in a temp dir.
func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func mustSave(t *testing.T, store *Store, r Run) {
	t.Helper()
	if _, err := store.SaveRun(r); err != nil {
		t.Fatalf("SaveRun(%+v) failed: %v", r, err)
	}
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsRuns(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	mustSave(t, store, Run{LevelID: "islands", Score: 300, Outcome: "cleared", Ticks: 900})
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()

	runs, err := store.AllRuns("islands")
	if err != nil {
		t.Fatalf("AllRuns() failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run after reopen, got %d", len(runs))
	}
	r := runs[0]
	if r.Score != 300 || r.Outcome != "cleared" || r.Ticks != 900 {
		t.Errorf("run = %+v", r)
	}
	if r.CreatedAt.IsZero() {
		t.Error("CreatedAt not populated")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	mustSave(t, store, Run{LevelID: "islands", Score: 100, Outcome: "caught", Ticks: 400})
	mustSave(t, store, Run{LevelID: "islands", Score: 50, Outcome: "fell", Ticks: 200})
	mustSave(t, store, Run{LevelID: "islands", Score: 200, Outcome: "caught", Ticks: 700})
	mustSave(t, store, Run{LevelID: "tower", Score: 500, Outcome: "cleared", Ticks: 1200})

	runs, err := store.TopRuns("islands", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("Expected 3 runs, got %d", len(runs))
	}

	// Should be sorted descending
	want := []int{200, 100, 50}
	for i, w := range want {
		if runs[i].Score != w {
			t.Errorf("runs[%d].Score = %d, want %d", i, runs[i].Score, w)
		}
		if runs[i].LevelID != "islands" {
			t.Errorf("runs[%d].LevelID = %q", i, runs[i].LevelID)
		}
	}

	towerRuns, err := store.TopRuns("tower", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(towerRuns) != 1 {
		t.Errorf("Expected 1 tower run, got %d", len(towerRuns))
	}
}

func TestStoreTopRunsLimitAndTies(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		mustSave(t, store, Run{LevelID: "test", Score: (i + 1) * 100, Outcome: "caught", Ticks: 100})
	}
	// Same score as the best, but faster
	mustSave(t, store, Run{LevelID: "test", Score: 500, Outcome: "cleared", Ticks: 50})

	runs, err := store.TopRuns("test", 3)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("Expected 3 runs with limit, got %d", len(runs))
	}
	if runs[0].Ticks != 50 || runs[1].Ticks != 100 {
		t.Errorf("ties not ordered by ticks: %+v", runs[:2])
	}
	if runs[2].Score != 400 {
		t.Errorf("runs[2].Score = %d, want 400", runs[2].Score)
	}
}

func TestStoreSaveRunRequiresLevel(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.SaveRun(Run{Score: 10, Outcome: "fell"}); err == nil {
		t.Error("expected error for run without level")
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	// No runs yet
	high, err := store.HighScore("islands")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty level, got %d", high)
	}

	mustSave(t, store, Run{LevelID: "islands", Score: 100, Outcome: "fell"})
	mustSave(t, store, Run{LevelID: "islands", Score: 300, Outcome: "caught"})
	mustSave(t, store, Run{LevelID: "islands", Score: 200, Outcome: "fell"})

	high, err = store.HighScore("islands")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreClearRuns(t *testing.T) {
	store := openTestStore(t)

	mustSave(t, store, Run{LevelID: "islands", Score: 100, Outcome: "fell"})
	mustSave(t, store, Run{LevelID: "islands", Score: 200, Outcome: "fell"})
	mustSave(t, store, Run{LevelID: "tower", Score: 300, Outcome: "fell"})

	if err := store.ClearRuns("islands"); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}

	islands, _ := store.TopRuns("islands", 10)
	if len(islands) != 0 {
		t.Errorf("Expected 0 islands runs after clear, got %d", len(islands))
	}

	tower, _ := store.TopRuns("tower", 10)
	if len(tower) != 1 {
		t.Errorf("Tower runs should not be affected by clearing islands")
	}
}

func TestStoreAllRuns(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 20; i++ {
		mustSave(t, store, Run{LevelID: "test", Score: i * 10, Outcome: "fell"})
	}

	runs, err := store.AllRuns("test")
	if err != nil {
		t.Fatalf("AllRuns() failed: %v", err)
	}
	if len(runs) != 20 {
		t.Errorf("Expected 20 runs, got %d", len(runs))
	}
}

func TestStoreLevelStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.GetLevelStats("islands")
	if err != nil {
		t.Fatalf("GetLevelStats() failed: %v", err)
	}
	if empty.Runs != 0 || empty.FastestClear != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("empty stats = %+v", empty)
	}

	mustSave(t, store, Run{LevelID: "islands", Score: 100, Outcome: "caught", Ticks: 300})
	mustSave(t, store, Run{LevelID: "islands", Score: 900, Outcome: "cleared", Ticks: 2000})
	mustSave(t, store, Run{LevelID: "islands", Score: 800, Outcome: "cleared", Ticks: 1500})
	mustSave(t, store, Run{LevelID: "tower", Score: 40, Outcome: "fell", Ticks: 90})

	stats, err := store.GetLevelStats("islands")
	if err != nil {
		t.Fatalf("GetLevelStats() failed: %v", err)
	}
	if stats.Runs != 3 || stats.Clears != 2 {
		t.Errorf("Runs/Clears = %d/%d, want 3/2", stats.Runs, stats.Clears)
	}
	if stats.HighScore != 900 {
		t.Errorf("HighScore = %d, want 900", stats.HighScore)
	}
	if stats.AvgScore != 600 {
		t.Errorf("AvgScore = %v, want 600", stats.AvgScore)
	}
	if stats.FastestClear != 1500 {
		t.Errorf("FastestClear = %d, want 1500", stats.FastestClear)
	}

	all, err := store.GetAllLevelStats()
	if err != nil {
		t.Fatalf("GetAllLevelStats() failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected stats for 2 levels, got %d", len(all))
	}
	if tower := all["tower"]; tower == nil || tower.Clears != 0 || tower.FastestClear != 0 {
		t.Errorf("tower stats = %+v", tower)
	}
}

func TestStoreNestedPath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	// Verify nested directories were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
