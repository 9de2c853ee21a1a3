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
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if _, err := store.SaveScore("mazechase", 1230); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()

	high, err := store.HighScore("mazechase")
	if err != nil || high != 1230 {
		t.Errorf("HighScore() = %d, %v; want 1230", high, err)
	}

	var version int
	if err := store.db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		t.Fatal(err)
	}
	if version != len(migrations) {
		t.Errorf("user_version = %d, expected %d", version, len(migrations))
	}
}

func TestStoreTopScores(t *testing.T) {
	tests := []struct {
		name  string
		saved []int
		limit int
		want  []int
	}{
		{"sorted descending", []int{100, 50, 200}, 10, []int{200, 100, 50}},
		{"limited", []int{100, 200, 300, 400, 500}, 3, []int{500, 400, 300}},
		{"default limit", []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}, 0, []int{12, 11, 10, 9, 8, 7, 6, 5, 4, 3}},
		{"empty", nil, 10, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := openTestStore(t)
			for _, s := range tt.saved {
				if _, err := store.SaveScore("mazechase", s); err != nil {
					t.Fatalf("SaveScore() failed: %v", err)
				}
			}
			store.SaveScore("other", 99999)

			scores, err := store.TopScores("mazechase", tt.limit)
			if err != nil {
				t.Fatalf("TopScores() failed: %v", err)
			}
			if len(scores) != len(tt.want) {
				t.Fatalf("got %d scores, want %d", len(scores), len(tt.want))
			}
			for i, want := range tt.want {
				if scores[i].Score != want || scores[i].GameID != "mazechase" {
					t.Errorf("scores[%d] = %+v, want %d", i, scores[i], want)
				}
			}
		})
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("mazechase")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	store.SaveScore("mazechase", 100)
	store.SaveScore("mazechase", 300)
	store.SaveScore("mazechase", 200)

	high, err = store.HighScore("mazechase")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("mazechase", 100)
	store.SaveScore("mazechase", 200)
	store.SaveScore("other", 300)

	if err := store.ClearScores("mazechase"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	if scores, _ := store.TopScores("mazechase", 10); len(scores) != 0 {
		t.Errorf("Expected 0 scores after clear, got %d", len(scores))
	}
	if scores, _ := store.TopScores("other", 10); len(scores) != 1 {
		t.Errorf("other game's scores should not be affected")
	}
}

func TestStoreAllScores(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 20; i++ {
		store.SaveScore("mazechase", i*10)
	}

	scores, err := store.AllScores("mazechase")
	if err != nil {
		t.Fatalf("AllScores() failed: %v", err)
	}
	if len(scores) != 20 {
		t.Errorf("Expected 20 scores, got %d", len(scores))
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	stats, err := store.GetGameStats("mazechase")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 0 || !stats.LastPlayed.IsZero() {
		t.Errorf("empty stats = %+v", stats)
	}

	store.SaveScore("mazechase", 100)
	store.SaveScore("mazechase", 300)

	stats, err = store.GetGameStats("mazechase")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 2 || stats.HighScore != 300 || stats.TotalScore != 400 || stats.AvgScore != 200 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed not set")
	}
}
