package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

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

func TestStoreSaveAndRetrieveRuns(t *testing.T) {
	store := openTestStore(t)

	runs := []Run{
		{SessionID: "1", DuckKey: "gold", Score: 10, Collected: 8, Outcome: "over", Reason: "pipe", Eggs: "8", USDT: "0.80", StartUSDT: "0"},
		{SessionID: "2", DuckKey: "blue", Score: 55, Collected: 50, Outcome: "finished", Reason: "win", Eggs: "58", USDT: "5.80", StartUSDT: "0.80"},
		{SessionID: "3", DuckKey: "gold", Score: 3, Collected: 2, Outcome: "over", Reason: "idle", Eggs: "60", USDT: "6.00", StartUSDT: "5.80"},
	}
	for _, r := range runs {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	top, err := store.TopRuns(10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(top) != 3 {
		t.Fatalf("Expected 3 runs, got %d", len(top))
	}
	// Should be sorted descending
	if top[0].Score != 55 || top[1].Score != 10 || top[2].Score != 3 {
		t.Errorf("unexpected order: %d, %d, %d", top[0].Score, top[1].Score, top[2].Score)
	}
	if top[0].USDT != "5.80" || top[0].DuckKey != "blue" || top[0].Reason != "win" {
		t.Errorf("fields not round-tripped: %+v", top[0])
	}

	recent, err := store.RecentRuns(2)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(recent) != 2 || recent[0].SessionID != "3" {
		t.Errorf("RecentRuns should return newest first, got %+v", recent)
	}

	high, err := store.HighScore()
	if err != nil || high != 55 {
		t.Errorf("HighScore() = %d, %v; want 55", high, err)
	}
}

func TestRunEarned(t *testing.T) {
	tests := []struct {
		r    Run
		want string
	}{
		{Run{USDT: "5.80", StartUSDT: "0.80"}, "5"},
		{Run{USDT: "0.30", StartUSDT: ""}, "0.3"},
		{Run{USDT: "", StartUSDT: "1"}, "0"},
	}
	for _, tt := range tests {
		if got := tt.r.Earned().String(); got != tt.want {
			t.Errorf("Earned(%s - %s) = %s, want %s", tt.r.USDT, tt.r.StartUSDT, got, tt.want)
		}
	}
}

func TestStoreStats(t *testing.T) {
	store := openTestStore(t)

	stats, err := store.GetStats()
	if err != nil {
		t.Fatalf("GetStats() on empty store failed: %v", err)
	}
	if stats.Runs != 0 || !stats.Earned.IsZero() {
		t.Errorf("empty stats = %+v", stats)
	}

	store.SaveRun(Run{DuckKey: "gold", Score: 10, Collected: 3, Outcome: "over", Reason: "pipe", USDT: "0.30", StartUSDT: "0"})
	store.SaveRun(Run{DuckKey: "gold", Score: 30, Collected: 50, Outcome: "finished", Reason: "win", USDT: "5.30", StartUSDT: "0.30"})

	stats, err = store.GetStats()
	if err != nil {
		t.Fatalf("GetStats() failed: %v", err)
	}
	if stats.Runs != 2 || stats.Wins != 1 || stats.HighScore != 30 || stats.Collected != 53 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.AvgScore != 20 {
		t.Errorf("AvgScore = %f, want 20", stats.AvgScore)
	}
	if stats.Earned.StringFixed(2) != "5.30" {
		t.Errorf("Earned = %s, want 5.30", stats.Earned.StringFixed(2))
	}
}

func TestClearRuns(t *testing.T) {
	store := openTestStore(t)
	store.SaveRun(Run{DuckKey: "gold", Score: 1, Outcome: "over", Reason: "pipe"})

	if err := store.ClearRuns(); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}
	high, _ := store.HighScore()
	if high != 0 {
		t.Errorf("HighScore after clear = %d", high)
	}
}

func TestDuckSelectionConsumedOnce(t *testing.T) {
	store := openTestStore(t)

	if _, _, ok, err := store.TakeDuckSelection(); err != nil || ok {
		t.Fatalf("empty store: ok=%v err=%v", ok, err)
	}

	if err := store.SetDuckSelection("blue", 2); err != nil {
		t.Fatalf("SetDuckSelection() failed: %v", err)
	}
	if err := store.SetDuckSelection("browjn", 10); err != nil {
		t.Fatalf("SetDuckSelection() overwrite failed: %v", err)
	}

	key, id, ok, err := store.PeekDuckSelection()
	if err != nil || !ok || key != "browjn" || id != 10 {
		t.Fatalf("Peek = %q, %d, %v, %v", key, id, ok, err)
	}

	key, id, ok, err = store.TakeDuckSelection()
	if err != nil || !ok || key != "browjn" || id != 10 {
		t.Fatalf("Take = %q, %d, %v, %v", key, id, ok, err)
	}

	if _, _, ok, _ := store.TakeDuckSelection(); ok {
		t.Error("selection should be cleared after Take")
	}
}

func TestClearDuckSelection(t *testing.T) {
	store := openTestStore(t)
	store.SetDuckSelection("red", 3)
	if err := store.ClearDuckSelection(); err != nil {
		t.Fatal(err)
	}
	if _, _, ok, _ := store.PeekDuckSelection(); ok {
		t.Error("selection should be gone")
	}
}
