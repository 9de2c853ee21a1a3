package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone      Action = iota
	ActionLeft             // Left arrow, A
	ActionUp               // Up arrow, W
	ActionRight            // Right arrow, D
	ActionDown             // Down arrow, S
	ActionUpLeft           // 7, Home - diagonal stick positions
	ActionUpRight          // 9, PgUp
	ActionDownLeft         // 1, End
	ActionDownRight        // 3, PgDown
	ActionNewGame          // N - abandon and start a fresh game
	ActionSave             // F5 - write the session to the save slot
	ActionLoad             // F9 - restore the session from the save slot
	ActionPause            // P - pause/unpause game
	ActionConfirm          // Enter, Space - continue after level complete
	ActionBack             // Esc - go back to menu
	ActionRestart          // R - restart game after game over
	ActionQuit             // Q, Ctrl+C - exit game/session
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionUp:
		return "Up"
	case ActionRight:
		return "Right"
	case ActionDown:
		return "Down"
	case ActionUpLeft:
		return "UpLeft"
	case ActionUpRight:
		return "UpRight"
	case ActionDownLeft:
		return "DownLeft"
	case ActionDownRight:
		return "DownRight"
	case ActionNewGame:
		return "NewGame"
	case ActionSave:
		return "Save"
	case ActionLoad:
		return "Load"
	case ActionPause:
		return "Pause"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// TurnDirections returns the directions a steering action asks for, in
// order of preference. Diagonals prefer the vertical component, falling back
// to the horizontal one. Non-steering actions return nil.
func (a Action) TurnDirections() []Direction {
	switch a {
	case ActionLeft:
		return []Direction{DirLeft}
	case ActionUp:
		return []Direction{DirUp}
	case ActionRight:
		return []Direction{DirRight}
	case ActionDown:
		return []Direction{DirDown}
	case ActionUpLeft:
		return []Direction{DirUp, DirLeft}
	case ActionUpRight:
		return []Direction{DirUp, DirRight}
	case ActionDownLeft:
		return []Direction{DirDown, DirLeft}
	case ActionDownRight:
		return []Direction{DirDown, DirRight}
	default:
		return nil
	}
}

// steeringOrder is the order in which steering actions are inspected when
// several arrive in one frame.
var steeringOrder = []Action{
	ActionLeft, ActionUp, ActionRight, ActionDown,
	ActionUpLeft, ActionUpRight, ActionDownLeft, ActionDownRight,
}

// InputFrame represents the input state for a single player during one simulation tick.
// It contains all actions that were triggered during this frame.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool

	// last is the most recently set steering action.
	last Action
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
	if a.TurnDirections() != nil {
		f.last = a
	}
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Empty reports whether no action was triggered this frame.
func (f InputFrame) Empty() bool {
	for _, v := range f.Actions {
		if v {
			return false
		}
	}
	return true
}

// Steering returns the steering action for this frame: the most recent one
// set, or ActionNone when the player did not steer.
func (f InputFrame) Steering() Action {
	if f.last != ActionNone && f.Has(f.last) {
		return f.last
	}
	for _, a := range steeringOrder {
		if f.Has(a) {
			return a
		}
	}
	return ActionNone
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.last = ActionNone
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	clone.last = f.last
	return clone
}
