package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/maze-chase/internal/core"
)

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// gameKeys maps key names to in-game actions. The number row doubles as a
// keypad: 7 9 1 3 are the diagonals.
var gameKeys = map[string]core.Action{
	"left":   core.ActionLeft,
	"a":      core.ActionLeft,
	"up":     core.ActionUp,
	"w":      core.ActionUp,
	"right":  core.ActionRight,
	"d":      core.ActionRight,
	"down":   core.ActionDown,
	"s":      core.ActionDown,
	"7":      core.ActionUpLeft,
	"home":   core.ActionUpLeft,
	"9":      core.ActionUpRight,
	"pgup":   core.ActionUpRight,
	"1":      core.ActionDownLeft,
	"end":    core.ActionDownLeft,
	"3":      core.ActionDownRight,
	"pgdown": core.ActionDownRight,

	"p":     core.ActionPause,
	"f5":    core.ActionSave,
	"f9":    core.ActionLoad,
	"n":     core.ActionNewGame,
	"r":     core.ActionRestart,
	"enter": core.ActionConfirm,
	" ":     core.ActionConfirm,
	"esc":   core.ActionBack,
	"b":     core.ActionBack,
}

// MapKey translates a key message to an action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	key := msg.String()

	// Global quit keys
	switch key {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	}

	if a, ok := gameKeys[key]; ok {
		return a, false
	}
	return core.ActionNone, false
}

// MapKeyToFrame updates an input frame based on a key message.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, isQuit := km.MapKey(msg)
	if action != core.ActionNone && !isQuit {
		frame.Set(action)
	}
	return isQuit
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionScoreboard
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	key := msg.String()

	switch key {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}

	return MenuActionNone
}
