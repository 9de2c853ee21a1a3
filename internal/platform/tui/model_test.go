package tui

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/maze-chase/internal/core"
	"github.com/vovakirdan/maze-chase/internal/games/mazechase"
	"github.com/vovakirdan/maze-chase/internal/persist"
	"github.com/vovakirdan/maze-chase/internal/registry"
	"github.com/vovakirdan/maze-chase/internal/storage"
)

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 36, TickRate: 60, Seed: 42}
}

func openTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func newTestModel(t *testing.T, env Env, resume bool) (Model, *mazechase.Game) {
	t.Helper()
	g, err := registry.Create(mazechase.GameID, env.Services("local"))
	if err != nil {
		t.Fatal(err)
	}
	m := NewModel(g, env, testConfig(), resume)
	m.Init()
	return m, g.(*mazechase.Game)
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	got, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return got
}

func TestEnvServices(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.SaveScore(mazechase.GameID, 1200); err != nil {
		t.Fatal(err)
	}
	env := Env{GameID: mazechase.GameID, Store: store}

	svc := env.Services("alice")
	if svc.HighScore != 1200 {
		t.Errorf("HighScore = %d, want 1200", svc.HighScore)
	}
	if svc.SaveSlot == nil {
		t.Fatal("no save slot")
	}
	if svc.Effects != nil || svc.Publish != nil {
		t.Error("effects or publish wired without audio or hub")
	}
	if env.HasSave("alice") {
		t.Error("empty slot reported as saved")
	}
}

func TestEnvSaveFileOverridesStore(t *testing.T) {
	file := persist.NewMemory(persist.NewCodec().Size())
	env := Env{GameID: mazechase.GameID, Store: openTestStore(t), SaveFile: file}
	if got := env.Services("x").SaveSlot; got != persist.Medium(file) {
		t.Errorf("SaveSlot = %T, want the save file", got)
	}
}

func TestEnvWithoutStore(t *testing.T) {
	env := Env{GameID: mazechase.GameID}
	if svc := env.Services("x"); svc.SaveSlot != nil || svc.HighScore != 0 {
		t.Errorf("services = %+v", svc)
	}
	if env.HasSave("x") || env.HighScore() != 0 {
		t.Error("storage reported without a store")
	}
	env.saveScore(100) // no store: ignored
}

func TestModelPauseAndBack(t *testing.T) {
	m, _ := newTestModel(t, Env{GameID: mazechase.GameID}, false)

	m = update(t, m, runeKey('b'))
	if m.BackToMenu() {
		t.Fatal("back accepted while the game is running")
	}
	m = update(t, m, TickMsg{})

	m = update(t, m, runeKey('p'))
	m = update(t, m, TickMsg{})
	if !m.gameState.Paused {
		t.Fatal("game not paused")
	}

	m = update(t, m, runeKey('b'))
	if !m.BackToMenu() {
		t.Error("back refused while paused")
	}
}

func TestModelQuit(t *testing.T) {
	m, _ := newTestModel(t, Env{GameID: mazechase.GameID}, false)
	m = update(t, m, runeKey('q'))
	if !m.IsQuitting() || m.View() != "" {
		t.Error("q did not quit")
	}
}

func TestModelSavesScoreOnce(t *testing.T) {
	store := openTestStore(t)
	env := Env{GameID: mazechase.GameID, Store: store}
	m, g := newTestModel(t, env, false)

	s := g.Engine().Session()
	s.Score.Award(340)
	s.Lives = 1
	s.Ghosts[0].Pos = core.Pt(16, 23)
	g.Engine().AttemptMove(core.DirRight, g.Now())

	m = update(t, m, TickMsg{})
	m = update(t, m, TickMsg{})
	if !m.gameState.GameOver {
		t.Fatal("expected game over")
	}

	scores, err := store.AllScores(mazechase.GameID)
	if err != nil {
		t.Fatal(err)
	}
	if len(scores) != 1 || scores[0].Score != 340 {
		t.Errorf("scores = %+v, want one entry of 340", scores)
	}
}

func TestModelResumeLoadsSave(t *testing.T) {
	file := persist.NewMemory(persist.NewCodec().Size())
	env := Env{GameID: mazechase.GameID, SaveFile: file}

	_, g := newTestModel(t, env, false)
	g.AdvanceBy(2000)
	want := g.Snapshot()
	in := core.NewInputFrame()
	in.Set(core.ActionSave)
	g.Step(in)

	m, g2 := newTestModel(t, env, true)
	update(t, m, TickMsg{})
	got := g2.Snapshot()
	if got.Player != want.Player || got.Score != want.Score || got.Remaining != want.Remaining {
		t.Errorf("resumed %+v, want %+v", got, want)
	}
}

func TestModelResizeKeepsSession(t *testing.T) {
	m, g := newTestModel(t, Env{GameID: mazechase.GameID}, false)
	g.AdvanceBy(1000)
	before := g.Snapshot()

	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	if g.Snapshot() != before {
		t.Error("resize reset the game")
	}
	if m.screen.Width() != 100 || m.screen.Height() != 40 {
		t.Errorf("screen %dx%d", m.screen.Width(), m.screen.Height())
	}
}
