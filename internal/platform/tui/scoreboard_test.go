package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/maze-chase/internal/games/mazechase"
	"github.com/vovakirdan/maze-chase/internal/storage"
)

func TestScoreRows(t *testing.T) {
	rows := scoreRows([]storage.ScoreEntry{{Score: 900}, {Score: 900}, {Score: 250}})
	want := [][2]string{{"900", "-"}, {"900", "-"}, {"250", "650"}}
	if len(rows) != len(want) {
		t.Fatalf("rows = %v", rows)
	}
	for i, w := range want {
		if rows[i][0] != "#"+string(rune('1'+i)) || rows[i][1] != w[0] || rows[i][2] != w[1] {
			t.Errorf("row %d = %v, want score %s behind %s", i, rows[i], w[0], w[1])
		}
	}
	if len(scoreRows(nil)) != 0 {
		t.Error("rows for no scores")
	}
}

func TestScoreboardRefreshAndBack(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()
	store.SaveScore(mazechase.GameID, 400)

	var model tea.Model = NewScoreboardModel(store, mazechase.GameID, 80, 30)
	if sb := model.(ScoreboardModel); len(sb.scores) != 1 || sb.stats.GamesCount != 1 {
		t.Fatalf("loaded %d scores, stats %+v", len(sb.scores), sb.stats)
	}

	store.SaveScore(mazechase.GameID, 1200)
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	sb := model.(ScoreboardModel)
	if len(sb.scores) != 2 || sb.scores[0].Score != 1200 {
		t.Errorf("after refresh scores = %+v", sb.scores)
	}
	if !strings.Contains(model.View(), "Best: 1200") {
		t.Error("stats line missing best score")
	}

	model, cmd := model.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !model.(ScoreboardModel).IsGoingBack() || cmd != nil {
		t.Error("esc should return to the menu without quitting")
	}
}

func TestScoreboardWithoutStore(t *testing.T) {
	m := NewScoreboardModel(nil, mazechase.GameID, 80, 30)
	if !strings.Contains(m.View(), "No scores recorded yet.") {
		t.Error("empty board message missing")
	}

	m.standalone = true
	model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'b'}})
	if !model.(ScoreboardModel).IsGoingBack() || cmd == nil {
		t.Error("back should quit a standalone scoreboard")
	}

	model, cmd = NewScoreboardModel(nil, mazechase.GameID, 80, 30).Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if !model.(ScoreboardModel).IsQuitting() || cmd == nil {
		t.Error("ctrl+c should quit")
	}
}
