package mazechase

import (
	"time"

	"github.com/vovakirdan/maze-chase/internal/core"
	"github.com/vovakirdan/maze-chase/internal/games/mazechase/ghostai"
	"github.com/vovakirdan/maze-chase/internal/games/mazechase/maze"
)

// MoveResult is the outcome of a single move or turn attempt.
type MoveResult uint8

const (
	MoveNoEffect   MoveResult = iota // Game not running
	MoveBlocked                      // Wall ahead, or a pursuer with nowhere to go
	MoveAdvanced                     // Moved onto an empty cell
	MoveTurned                       // Facing changed without moving
	MoveTeleported                   // Went through the tunnel
	MoveAteDot
	MoveAtePower
	MoveCaptured // A pursuer was sent home during power mode
	MoveLifeLost
	MoveGameOver
)

// String returns a human-readable name for the result.
func (r MoveResult) String() string {
	switch r {
	case MoveNoEffect:
		return "no_effect"
	case MoveBlocked:
		return "blocked"
	case MoveAdvanced:
		return "advanced"
	case MoveTurned:
		return "turned"
	case MoveTeleported:
		return "teleported"
	case MoveAteDot:
		return "ate_dot"
	case MoveAtePower:
		return "ate_power"
	case MoveCaptured:
		return "captured"
	case MoveLifeLost:
		return "life_lost"
	case MoveGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// AttemptChangeDirection turns the player to face d if the adjacent cell in
// d is not a wall. It never moves the player.
func (e *Engine) AttemptChangeDirection(d core.Direction) MoveResult {
	s := &e.session
	if s.Status != StatusRunning || !d.Valid() {
		return MoveNoEffect
	}
	if s.IsWall(s.Player.Pos.Step(d)) {
		return MoveBlocked
	}
	s.Player.Facing = d
	e.repaint(s.Player.Pos)
	return MoveTurned
}

// AttemptMove moves the player one cell in d at game time now.
//
// From either tunnel end, facing out of the maze, the player jumps to the
// other end. Otherwise a wall blocks the move. Running into a pursuer costs
// a life unless power mode is active, in which case the pursuer is captured.
func (e *Engine) AttemptMove(d core.Direction, now time.Duration) MoveResult {
	s := &e.session
	if s.Status != StatusRunning || !d.Valid() {
		return MoveNoEffect
	}

	from := s.Player.Pos
	var dest core.Point
	teleport := false
	switch {
	case from == e.layout.TunnelLeft && d == core.DirLeft:
		dest, teleport = e.layout.TunnelRight, true
	case from == e.layout.TunnelRight && d == core.DirRight:
		dest, teleport = e.layout.TunnelLeft, true
	default:
		dest = from.Step(d)
		if s.IsWall(dest) {
			return MoveBlocked
		}
	}

	if id, ok := s.GhostAt(dest); ok {
		if !s.Power.Active {
			return e.loseLife()
		}
		e.placePlayer(dest, d)
		e.capture(id)
		return MoveCaptured
	}

	e.placePlayer(dest, d)
	if teleport {
		return MoveTeleported
	}

	c, err := s.Maze.ConsumeCollectible(dest)
	if err != nil {
		// dest passed the wall check, so it lies on the grid
		panic(err)
	}
	result := MoveAdvanced
	switch c {
	case maze.CollectibleDot:
		e.award(e.rules.DotPoints)
		e.effects.TriggerEffect(core.EffectDot)
		result = MoveAteDot
	case maze.CollectiblePower:
		e.award(e.rules.PowerPoints)
		e.activatePower(now)
		result = MoveAtePower
	}
	if c != maze.CollectibleNone {
		e.renderer.DrawCell(dest, visualAt(s.Maze, dest))
		e.repaint(dest)
		e.renderer.ReportRemaining(s.Maze.Remaining())
		if s.Maze.Remaining() == 0 {
			s.Status = StatusLevelComplete
			e.effects.TriggerEffect(core.EffectLevelComplete)
		}
	}
	return result
}

// MoveGhost lets pursuer id take one AI-chosen step at game time now.
// A pursuer that walks into the player resolves the collision exactly as
// a player move would.
func (e *Engine) MoveGhost(id int, now time.Duration) MoveResult {
	s := &e.session
	if s.Status != StatusRunning || id < 0 || id >= NumGhosts {
		return MoveNoEffect
	}

	g := &s.Ghosts[id]
	ctx := ghostai.Context{
		ID:           id,
		Pos:          g.Pos,
		Facing:       g.Facing,
		Player:       s.Player.Pos,
		PlayerFacing: s.Player.Facing,
	}
	d, ok := ghostai.Decide(s, ctx, e.rng)
	if !ok {
		return MoveBlocked
	}

	from := g.Pos
	g.Pos = from.Step(d)
	g.Facing = d
	e.repaint(from)
	e.repaint(g.Pos)

	if g.Pos != s.Player.Pos {
		return MoveAdvanced
	}
	if !s.Power.Active {
		return e.loseLife()
	}
	e.capture(id)
	return MoveCaptured
}

func (e *Engine) placePlayer(p core.Point, d core.Direction) {
	s := &e.session
	from := s.Player.Pos
	s.Player = Entity{Pos: p, Facing: d}
	e.repaint(from)
	e.repaint(p)
}

// capture sends pursuer id home, marks it consumed and pays the chain bonus.
func (e *Engine) capture(id int) {
	s := &e.session
	g := &s.Ghosts[id]
	from := g.Pos
	g.Pos = e.layout.GhostStarts[id]
	if !s.Power.Consumed[id] {
		s.Power.Consumed[id] = true
		s.Power.Alive--
	}
	s.Score.AwardCapture()
	e.reportScore()
	e.effects.TriggerEffect(core.EffectCapture)
	e.repaint(from)
	e.repaint(g.Pos)
}

// loseLife takes a life. With lives left every entity respawns; otherwise
// the game ends with everything where it stood.
func (e *Engine) loseLife() MoveResult {
	s := &e.session
	s.Lives--
	if s.Lives <= 0 {
		s.Lives = 0
		s.Status = StatusGameOver
		e.renderer.ReportLives(0)
		e.effects.TriggerEffect(core.EffectGameOver)
		return MoveGameOver
	}

	old := []core.Point{s.Player.Pos}
	s.Player = Entity{Pos: e.layout.PlayerStart, Facing: e.layout.PlayerFacing}
	for id := range s.Ghosts {
		old = append(old, s.Ghosts[id].Pos)
		s.Ghosts[id] = Entity{Pos: e.layout.GhostStarts[id], Facing: e.layout.GhostFacing}
	}
	e.hasPending = false
	for _, p := range old {
		e.repaint(p)
	}
	e.repaint(s.Player.Pos)
	e.drawGhosts()
	e.renderer.ReportLives(s.Lives)
	e.effects.TriggerEffect(core.EffectLifeLost)
	return MoveLifeLost
}
