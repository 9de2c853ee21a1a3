package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/maze-chase/internal/games/mazechase"
)

func TestMenuItems(t *testing.T) {
	tests := []struct {
		name    string
		hasSave bool
		want    []MenuChoice
	}{
		{"no save", false, []MenuChoice{ChoiceNewGame, ChoiceScores, ChoiceQuit}},
		{"with save", true, []MenuChoice{ChoiceNewGame, ChoiceContinue, ChoiceScores, ChoiceQuit}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMenuModel(testConfig(), tt.hasSave, 0)
			if len(m.items) != len(tt.want) {
				t.Fatalf("items = %+v", m.items)
			}
			for i, c := range tt.want {
				if m.items[i].Choice != c {
					t.Errorf("item %d = %v, want %v", i, m.items[i].Choice, c)
				}
			}
		})
	}
}

func TestMenuNavigation(t *testing.T) {
	var model tea.Model = NewMenuModel(testConfig(), true, 2500)
	if !strings.Contains(model.View(), "High score: 2500") {
		t.Error("high score missing from menu")
	}

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyUp})
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyDown})
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m := model.(MenuModel)
	if sel := m.Selected(); sel == nil || sel.Choice != ChoiceContinue {
		t.Errorf("selected %+v, want Continue", sel)
	}
}

func TestMenuQuitItem(t *testing.T) {
	var model tea.Model = NewMenuModel(testConfig(), false, 0)
	for range 5 {
		model, _ = model.Update(tea.KeyMsg{Type: tea.KeyDown})
	}
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !model.(MenuModel).IsQuitting() {
		t.Error("Quit item did not quit")
	}
}

func TestSessionFlow(t *testing.T) {
	env := Env{GameID: mazechase.GameID, Store: openTestStore(t)}
	var model tea.Model = NewSessionModel(env, testConfig(), "tester")

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyTab})
	if s := model.(SessionModel); s.screen != screenScores {
		t.Fatalf("tab opened screen %v", s.screen)
	}
	if !strings.Contains(model.View(), "No scores recorded yet") {
		t.Error("empty scoreboard message missing")
	}

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if s := model.(SessionModel); s.screen != screenMenu {
		t.Fatalf("esc left screen %v", s.screen)
	}

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	s := model.(SessionModel)
	if s.screen != screenGame || s.gameModel == nil {
		t.Fatal("New Game did not start a game")
	}

	model, _ = model.Update(TickMsg{})
	model, _ = model.Update(runeKey('p'))
	model, _ = model.Update(TickMsg{})
	model, _ = model.Update(runeKey('b'))
	if s := model.(SessionModel); s.screen != screenMenu {
		t.Errorf("back from paused game left screen %v", s.screen)
	}
}

func TestSlotName(t *testing.T) {
	if got := SlotName("alice"); got != "ssh:alice" {
		t.Errorf("SlotName(alice) = %q", got)
	}
	if got := SlotName(""); got != "default" {
		t.Errorf("SlotName(\"\") = %q", got)
	}
}
