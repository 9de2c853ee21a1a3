package mazechase

import "github.com/vovakirdan/maze-chase/internal/core"

// Command is a session-level request from the player.
type Command uint8

const (
	CommandNone Command = iota
	CommandNewGame
	CommandSave
	CommandLoad
	CommandTogglePause
)

// String returns a human-readable name for the command.
func (c Command) String() string {
	switch c {
	case CommandNone:
		return "none"
	case CommandNewGame:
		return "new_game"
	case CommandSave:
		return "save"
	case CommandLoad:
		return "load"
	case CommandTogglePause:
		return "toggle_pause"
	default:
		return "unknown"
	}
}

// InputSource is polled once per tick. It never blocks; no input is normal.
type InputSource interface {
	PollDirection() (TurnRequest, bool)
	PollCommand() (Command, bool)
}

// FrameInput adapts one platform input frame to InputSource.
type FrameInput core.InputFrame

// PollDirection implements InputSource.
func (f FrameInput) PollDirection() (TurnRequest, bool) {
	dirs := core.InputFrame(f).Steering().TurnDirections()
	switch len(dirs) {
	case 0:
		return TurnRequest{}, false
	case 1:
		return TurnRequest{Primary: dirs[0]}, true
	default:
		return TurnRequest{Primary: dirs[0], Fallback: dirs[1], HasFallback: true}, true
	}
}

// PollCommand implements InputSource.
func (f FrameInput) PollCommand() (Command, bool) {
	in := core.InputFrame(f)
	switch {
	case in.Has(core.ActionNewGame):
		return CommandNewGame, true
	case in.Has(core.ActionSave):
		return CommandSave, true
	case in.Has(core.ActionLoad):
		return CommandLoad, true
	case in.Has(core.ActionPause):
		return CommandTogglePause, true
	}
	return CommandNone, false
}
