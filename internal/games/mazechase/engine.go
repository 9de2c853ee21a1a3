package mazechase

import (
	"time"

	"github.com/vovakirdan/maze-chase/internal/core"
	"github.com/vovakirdan/maze-chase/internal/games/mazechase/ghostai"
	"github.com/vovakirdan/maze-chase/internal/games/mazechase/maze"
)

// TurnRequest asks the player to change facing at its next move.
// A diagonal stick position sets Fallback, tried when Primary is blocked.
type TurnRequest struct {
	Primary     core.Direction
	Fallback    core.Direction
	HasFallback bool
}

// Engine advances a Session one tick at a time.
// It is not safe for concurrent use; callers serialize Advance, Save and Load.
type Engine struct {
	session  Session
	layout   *maze.Layout
	rules    Rules
	rng      ghostai.Rand
	renderer Renderer
	effects  core.EffectTrigger

	pending        TurnRequest
	hasPending     bool
	lastPlayerMove time.Duration
	lastGhostMove  [NumGhosts]time.Duration
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithRenderer sets the renderer notified of every visible change.
func WithRenderer(r Renderer) EngineOption {
	return func(e *Engine) {
		if r != nil {
			e.renderer = r
		}
	}
}

// WithEffects sets the effect trigger.
func WithEffects(t core.EffectTrigger) EngineOption {
	return func(e *Engine) {
		if t != nil {
			e.effects = t
		}
	}
}

// NewEngine creates an engine for layout. The session stays in
// StatusInitializing until InitialiseGame is called.
func NewEngine(l *maze.Layout, rules Rules, rng ghostai.Rand, opts ...EngineOption) *Engine {
	e := &Engine{
		layout:   l,
		rules:    rules,
		rng:      rng,
		renderer: nopRenderer{},
		effects:  core.EffectFunc(func(core.Effect) {}),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.session = Session{
		Maze:   maze.New(l),
		Score:  NewScoreKeeper(rules.CaptureBase),
		Lives:  rules.Lives,
		Level:  1,
		Status: StatusInitializing,
	}
	e.session.Power.clear()
	return e
}

// Session exposes the live state. Callers must not mutate it while a tick runs.
func (e *Engine) Session() *Session { return &e.session }

// Layout returns the static level layout.
func (e *Engine) Layout() *maze.Layout { return e.layout }

// Rules returns the rules in force.
func (e *Engine) Rules() Rules { return e.rules }

// SetRules replaces the rules, e.g. when difficulty rises between levels.
// The capture base of a running chain is kept.
func (e *Engine) SetRules(r Rules) {
	e.rules = r
	e.session.Score.base = r.CaptureBase
}

// InitialiseGame starts a new game: score and lives reset, high score kept.
func (e *Engine) InitialiseGame(now time.Duration) {
	e.session.Score.ResetScore()
	e.session.Lives = e.rules.Lives
	e.session.Level = 1
	e.InitialiseLevel(now)
}

// InitialiseLevel restores every collectible and puts all entities back at
// their start cells. Score, high score, lives and level are kept.
func (e *Engine) InitialiseLevel(now time.Duration) {
	s := &e.session
	s.Maze.ResetFromLayout()
	s.Player = Entity{Pos: e.layout.PlayerStart, Facing: e.layout.PlayerFacing}
	for id := range s.Ghosts {
		s.Ghosts[id] = Entity{Pos: e.layout.GhostStarts[id], Facing: e.layout.GhostFacing}
	}
	s.Power.clear()
	s.Score.ResetChain()
	s.Status = StatusRunning
	s.Paused = false
	e.hasPending = false
	e.resync(now)
	e.redrawAll()
}

// NextLevel bumps the level counter and starts the next level.
func (e *Engine) NextLevel(now time.Duration) {
	e.session.Level++
	e.InitialiseLevel(now)
}

// resync makes every entity's cadence count from now.
func (e *Engine) resync(now time.Duration) {
	e.lastPlayerMove = now
	for id := range e.lastGhostMove {
		e.lastGhostMove[id] = now
	}
}

// RequestTurn queues a facing change, consumed at the player's next move.
// A newer request replaces an older one.
func (e *Engine) RequestTurn(req TurnRequest) {
	e.pending = req
	e.hasPending = true
}

// PendingTurn returns the queued turn request, if any.
func (e *Engine) PendingTurn() (TurnRequest, bool) {
	return e.pending, e.hasPending
}

// TogglePause flips the paused flag. While paused Advance does nothing; the
// caller is expected to stop its clock as well.
func (e *Engine) TogglePause() bool {
	e.session.Paused = !e.session.Paused
	return e.session.Paused
}

// SetPaused sets the paused flag.
func (e *Engine) SetPaused(paused bool) {
	e.session.Paused = paused
}

// Status returns the level/game status.
func (e *Engine) Status() Status { return e.session.Status }

// Paused reports whether the game is paused.
func (e *Engine) Paused() bool { return e.session.Paused }

// IsGameOver reports whether the last life has been lost.
func (e *Engine) IsGameOver() bool { return e.session.Status == StatusGameOver }

// IsLevelComplete reports whether every collectible has been eaten.
func (e *Engine) IsLevelComplete() bool { return e.session.Status == StatusLevelComplete }

// PowerRemaining returns how long power mode still lasts at now.
func (e *Engine) PowerRemaining(now time.Duration) time.Duration {
	p := e.session.Power
	if !p.Active {
		return 0
	}
	return max(0, p.Since+e.rules.PowerDuration-now)
}

// Advance runs one tick at game time now:
// power-mode expiry, then the player's move if its cadence elapsed, then
// each pursuer whose own cadence elapsed and who is not parked after capture.
func (e *Engine) Advance(now time.Duration) Status {
	s := &e.session
	if s.Status != StatusRunning || s.Paused {
		return s.Status
	}

	if s.Power.Active && now >= s.Power.Since+e.rules.PowerDuration {
		e.expirePower()
	}

	if now >= e.lastPlayerMove+e.rules.PlayerCadence {
		if e.hasPending {
			e.applyTurn(e.pending)
			e.hasPending = false
		}
		e.AttemptMove(s.Player.Facing, now)
		e.lastPlayerMove = now
	}

	for id := range s.Ghosts {
		if s.Status != StatusRunning {
			break
		}
		if s.Power.Active && s.Power.Consumed[id] {
			continue
		}
		if now >= e.lastGhostMove[id]+e.rules.GhostCadence[id] {
			e.MoveGhost(id, now)
			e.lastGhostMove[id] = now
		}
	}
	return s.Status
}

func (e *Engine) applyTurn(req TurnRequest) {
	if e.AttemptChangeDirection(req.Primary) == MoveTurned {
		return
	}
	if req.HasFallback {
		e.AttemptChangeDirection(req.Fallback)
	}
}

func (e *Engine) activatePower(now time.Duration) {
	s := &e.session
	s.Power = PowerMode{Active: true, Since: now, Alive: NumGhosts}
	s.Score.ResetChain()
	e.effects.TriggerEffect(core.EffectPowerOn)
	e.drawGhosts()
}

func (e *Engine) expirePower() {
	e.session.Power.clear()
	e.session.Score.ResetChain()
	e.effects.TriggerEffect(core.EffectPowerOff)
	e.drawGhosts()
}

// award adds points and reports the changed numbers.
func (e *Engine) award(points int) {
	e.session.Score.Award(points)
	e.reportScore()
}

func (e *Engine) reportScore() {
	e.renderer.ReportScore(e.session.Score.Score())
	e.renderer.ReportHighScore(e.session.Score.HighScore())
}

func (e *Engine) ghostSprite(id int) Sprite {
	if e.session.Power.Active {
		return SpriteFrightened
	}
	return SpriteGhost
}

// repaint redraws p with whatever currently stands on it.
func (e *Engine) repaint(p core.Point) {
	s := &e.session
	e.renderer.ClearEntity(p)
	if s.Player.Pos == p {
		e.renderer.DrawEntity(SpritePlayer, 0, p, s.Player.Facing)
	}
	for id, g := range s.Ghosts {
		if g.Pos == p {
			e.renderer.DrawEntity(e.ghostSprite(id), id, p, g.Facing)
		}
	}
}

func (e *Engine) drawGhosts() {
	for _, g := range e.session.Ghosts {
		e.repaint(g.Pos)
	}
}

// redrawAll pushes the whole picture and every HUD number.
func (e *Engine) redrawAll() {
	s := &e.session
	for y := 0; y < e.layout.Height(); y++ {
		for x := 0; x < e.layout.Width(); x++ {
			p := core.Pt(x, y)
			e.renderer.DrawCell(p, visualAt(s.Maze, p))
		}
	}
	e.repaint(s.Player.Pos)
	e.drawGhosts()
	e.reportScore()
	e.renderer.ReportLives(s.Lives)
	e.renderer.ReportRemaining(s.Maze.Remaining())
}
