package mazechase

import (
	"time"

	"github.com/vovakirdan/maze-chase/internal/core"
	"github.com/vovakirdan/maze-chase/internal/games/mazechase/maze"
)

// NumGhosts is the number of pursuers.
const NumGhosts = 4

// Entity is a position plus facing.
type Entity struct {
	Pos    core.Point
	Facing core.Direction
}

// Status is the state of the current level/game.
type Status uint8

const (
	StatusInitializing Status = iota
	StatusRunning
	StatusLevelComplete
	StatusGameOver
)

// String returns a human-readable name for the status.
func (s Status) String() string {
	switch s {
	case StatusInitializing:
		return "initializing"
	case StatusRunning:
		return "running"
	case StatusLevelComplete:
		return "level_complete"
	case StatusGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// PowerMode is the timed window in which pursuers can be captured.
type PowerMode struct {
	Active   bool
	Since    time.Duration // Game time of activation
	Consumed [NumGhosts]bool
	Alive    int // Pursuers not yet captured in this activation
}

func (p *PowerMode) clear() {
	*p = PowerMode{Alive: NumGhosts}
}

// Session is all mutable state of one game.
type Session struct {
	Maze   *maze.Maze
	Player Entity
	Ghosts [NumGhosts]Entity
	Score  ScoreKeeper
	Power  PowerMode
	Lives  int
	Level  int // 1-based
	Status Status
	Paused bool
}

// GhostAt returns the id of the first pursuer at p.
func (s *Session) GhostAt(p core.Point) (int, bool) {
	for id, g := range s.Ghosts {
		if g.Pos == p {
			return id, true
		}
	}
	return 0, false
}

// IsWall reports walls and off-grid cells.
func (s *Session) IsWall(p core.Point) bool {
	return s.Maze.CellKind(p) == maze.Wall
}

// IsHome reports cells of the home region.
func (s *Session) IsHome(p core.Point) bool {
	return s.Maze.CellKind(p).IsHome()
}

// PursuerAt reports whether any pursuer occupies p.
func (s *Session) PursuerAt(p core.Point) bool {
	_, ok := s.GhostAt(p)
	return ok
}

// PlayerAt reports whether the player occupies p.
func (s *Session) PlayerAt(p core.Point) bool {
	return s.Player.Pos == p
}
