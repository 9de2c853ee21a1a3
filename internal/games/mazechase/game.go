package mazechase

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/maze-chase/internal/config"
	"github.com/vovakirdan/maze-chase/internal/core"
	"github.com/vovakirdan/maze-chase/internal/games/mazechase/maze"
	"github.com/vovakirdan/maze-chase/internal/persist"
	"github.com/vovakirdan/maze-chase/internal/registry"
)

// GameID is the registry and score-store identifier.
const GameID = "mazechase"

// Screen placement of the board and the side panel.
const (
	boardX     = 1
	boardY     = 1
	hudGap     = 3
	minScreenW = 62
	minScreenH = 33
)

// ErrNoSaveSlot is returned by save and load when the game has no storage.
var ErrNoSaveSlot = errors.New("mazechase: no save slot")

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names clear it.
func SetDifficultyPreset(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil || preset == "" {
		difficultyPreset = ""
		return
	}
	difficultyPreset = p
}

// Game drives an Engine from platform ticks. Game time comes from a manual
// source advanced by exactly one frame per Step, so a seeded game replays
// identically for the same input sequence.
type Game struct {
	svc registry.Services
	log *log.Logger

	runtime    core.RuntimeConfig
	cfg        config.MazeChaseConfig
	difficulty *config.DifficultyManager
	baseRules  Rules

	layout *maze.Layout
	engine *Engine
	view   *BoardView
	source *ManualSource
	clock  *GameClock
	frame  time.Duration

	codec   *persist.Codec
	hasSave bool
	message string

	levelsCleared int
	completedAt   time.Duration

	screenTooSmall bool

	lastPublished Snapshot
	published     bool
}

// New creates a game using the given platform services.
// Reset must be called before the first Step.
func New(svc registry.Services) *Game {
	logger := svc.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Game{svc: svc, log: logger, layout: maze.Classic()}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string { return GameID }

// Title returns the display name for this game.
func (g *Game) Title() string { return "Maze Chase" }

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	if g.runtime.TickRate <= 0 {
		g.runtime.TickRate = core.DefaultConfig().TickRate
	}

	cfg, err := config.LoadMazeChase(configPath)
	if err != nil {
		g.log.Warn("using default config", "err", err)
		cfg = config.DefaultMazeChaseConfig()
	}
	if difficultyPreset != "" {
		config.ApplyMazeChasePreset(&cfg, difficultyPreset)
	}
	g.cfg = cfg

	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)
	g.baseRules = RulesFromConfig(cfg)

	g.screenTooSmall = runtime.ScreenW < minScreenW || runtime.ScreenH < minScreenH

	g.view = NewBoardView(g.layout)
	g.engine = NewEngine(g.layout, g.baseRules.ForLevel(g.difficulty, 0, 0),
		rand.New(rand.NewSource(runtime.Seed)),
		WithRenderer(g.view),
		WithEffects(g.svc.Effects),
	)
	g.engine.Session().Score.SeedHighScore(g.svc.HighScore)

	g.source = &ManualSource{}
	g.clock = NewGameClock(g.source)
	g.frame = time.Second / time.Duration(g.runtime.TickRate)

	g.codec = persist.NewCodec()
	g.hasSave = g.checkSave()
	g.message = ""
	g.levelsCleared = 0
	g.published = false

	g.engine.InitialiseGame(g.clock.Now())
	g.publish()
}

// Resize adapts to a new screen size while keeping the session.
func (g *Game) Resize(width, height int) {
	g.runtime.ScreenW = width
	g.runtime.ScreenH = height
	g.screenTooSmall = width < minScreenW || height < minScreenH
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.screenTooSmall {
		return core.StepResult{State: g.State()}
	}

	g.source.Advance(g.frame)
	now := g.clock.Now()
	src := FrameInput(in)
	result := core.StepResult{}

	if in.Has(core.ActionRestart) && g.engine.IsGameOver() {
		g.newGame()
		now = g.clock.Now()
	}

	if cmd, ok := src.PollCommand(); ok {
		switch cmd {
		case CommandNewGame:
			g.newGame()
		case CommandSave:
			result.Err = g.save(now)
			result.Saved = result.Err == nil
		case CommandLoad:
			result.Err = g.load()
			result.Loaded = result.Err == nil
		case CommandTogglePause:
			g.togglePause()
		}
		now = g.clock.Now()
	}

	switch g.engine.Status() {
	case StatusRunning:
		if g.engine.Paused() {
			break
		}
		if req, ok := src.PollDirection(); ok {
			g.engine.RequestTurn(req)
		}
		if g.engine.Advance(now) == StatusLevelComplete {
			g.completedAt = now
			g.levelsCleared++
			g.log.Info("level complete", "level", g.engine.Session().Level, "score", g.engine.Session().Score.Score())
		}
	case StatusLevelComplete:
		_, steer := src.PollDirection()
		pause := g.cfg.Timing.LevelPause()
		if steer || in.Has(core.ActionConfirm) || (pause > 0 && now-g.completedAt >= pause) {
			g.nextLevel(now)
		}
	}

	g.publish()
	result.State = g.State()
	return result
}

func (g *Game) newGame() {
	g.clock.Resume()
	g.levelsCleared = 0
	g.engine.SetRules(g.baseRules.ForLevel(g.difficulty, 0, 0))
	g.engine.InitialiseGame(g.clock.Now())
	g.message = ""
}

func (g *Game) nextLevel(now time.Duration) {
	score := g.engine.Session().Score.Score()
	g.engine.SetRules(g.baseRules.ForLevel(g.difficulty, g.levelsCleared, score))
	g.engine.NextLevel(now)
	g.message = ""
}

func (g *Game) togglePause() {
	if g.engine.Status() != StatusRunning {
		return
	}
	if g.engine.TogglePause() {
		g.clock.Pause()
	} else {
		g.clock.Resume()
	}
}

// save writes the session to the save slot.
func (g *Game) save(now time.Duration) error {
	if g.svc.SaveSlot == nil {
		g.message = "No save slot"
		return ErrNoSaveSlot
	}
	if err := g.codec.Save(g.svc.SaveSlot, g.engine.ExportState(now)); err != nil {
		g.log.Error("save failed", "err", err)
		g.message = "Save failed"
		return fmt.Errorf("mazechase: save: %w", err)
	}
	g.hasSave = true
	g.message = "Game saved"
	g.log.Info("game saved", "score", g.engine.Session().Score.Score(), "elapsed", now)
	return nil
}

// load restores the session from the save slot. A failed load leaves the
// running session untouched. A successful one always resumes play.
func (g *Game) load() error {
	if g.svc.SaveSlot == nil {
		g.message = "No save slot"
		return ErrNoSaveSlot
	}
	st, err := g.codec.Load(g.svc.SaveSlot)
	if err != nil {
		g.log.Warn("load failed", "err", err)
		if errors.Is(err, persist.ErrInvalidSignature) {
			g.message = "No saved game"
		} else {
			g.message = "Load failed"
		}
		return fmt.Errorf("mazechase: load: %w", err)
	}
	if err := g.engine.ApplyState(st, st.Elapsed); err != nil {
		g.log.Warn("load rejected", "err", err)
		g.message = "Save is corrupt"
		return fmt.Errorf("mazechase: load: %w", err)
	}
	g.clock.Resume()
	g.clock.SetElapsed(st.Elapsed)
	g.levelsCleared = max(st.Level, 1) - 1
	g.engine.SetRules(g.baseRules.ForLevel(g.difficulty, g.levelsCleared, st.Score))
	g.completedAt = st.Elapsed
	g.message = "Game loaded"
	g.log.Info("game loaded", "score", st.Score, "level", st.Level, "elapsed", st.Elapsed)
	return nil
}

func (g *Game) checkSave() bool {
	if g.svc.SaveSlot == nil {
		return false
	}
	ok, err := g.codec.SignatureCheck(g.svc.SaveSlot)
	if err != nil {
		g.log.Warn("save slot unreadable", "err", err)
		return false
	}
	return ok
}

// HasSave reports whether the save slot holds a saved game.
func (g *Game) HasSave() bool { return g.hasSave }

// Engine exposes the rule engine.
func (g *Game) Engine() *Engine { return g.engine }

// Now returns the current game time.
func (g *Game) Now() time.Duration { return g.clock.Now() }

// Snapshot returns the observable state at the current game time.
func (g *Game) Snapshot() Snapshot {
	return g.engine.Snapshot(g.clock.Now())
}

// BoardText returns the maze as plain text, one line per row.
func (g *Game) BoardText() string { return g.view.Board().String() }

// AdvanceBy steps with no input until at least d of wall time has passed.
func (g *Game) AdvanceBy(d time.Duration) Snapshot {
	empty := core.NewInputFrame()
	for elapsed := time.Duration(0); elapsed < d; elapsed += g.frame {
		g.Step(empty)
	}
	return g.Snapshot()
}

// publish sends the snapshot to spectators when something visible changed.
func (g *Game) publish() {
	if g.svc.Publish == nil {
		return
	}
	snap := g.Snapshot()
	key := snap
	key.Time = 0
	key.PowerLeft = key.PowerLeft / 1000
	last := g.lastPublished
	last.Time = 0
	last.PowerLeft = last.PowerLeft / 1000
	if g.published && key == last {
		return
	}
	g.lastPublished = snap
	g.published = true
	g.svc.Publish(snap)
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.screenTooSmall {
		msg := "Window too small"
		hint := fmt.Sprintf("Need %dx%d", minScreenW, minScreenH)
		dst.DrawTextCentered(dst.Height()/2-1, msg)
		dst.DrawTextCentered(dst.Height()/2+1, hint)
		return
	}

	dst.Blit(g.view.Board(), boardX, boardY)
	g.renderHUD(dst)
	g.renderOverlay(dst)
}

// renderHUD draws the side panel.
func (g *Game) renderHUD(dst *core.Screen) {
	s := g.engine.Session()
	x := boardX + g.layout.Width() + hudGap
	y := boardY

	dst.DrawTextColored(x, y, "MAZE CHASE", core.ColorYellow)
	y += 2
	dst.DrawText(x, y, fmt.Sprintf("Score: %d", g.view.Score))
	y++
	dst.DrawText(x, y, fmt.Sprintf("High:  %d", g.view.HighScore))
	y++
	dst.DrawText(x, y, fmt.Sprintf("Level: %d", s.Level))
	y++
	dst.DrawText(x, y, "Lives:")
	for i := 0; i < g.view.Lives; i++ {
		dst.SetColored(x+7+i*2, y, playerRunes[core.DirRight], core.ColorYellow)
	}
	y++
	dst.DrawText(x, y, fmt.Sprintf("Dots:  %d", g.view.Remaining))
	y += 2

	if left := g.engine.PowerRemaining(g.clock.Now()); left > 0 {
		dst.DrawTextColored(x, y, fmt.Sprintf("POWER %4.1fs", left.Seconds()), core.ColorBlue)
	}
	y += 2

	saved := "No"
	if g.hasSave {
		saved = "Yes"
	}
	dst.DrawText(x, y, "Saved Game: "+saved)
	y++
	if g.message != "" {
		dst.DrawTextColored(x, y, g.message, core.ColorCyan)
	}
	y += 2

	for _, line := range []string{
		"Arrows/WASD  move",
		"7 9 1 3      diagonal",
		"P            pause",
		"F5           save",
		"F9           load",
		"N            new game",
		"Q            quit",
	} {
		dst.DrawTextColored(x, y, line, core.ColorGray)
		y++
	}
}

// renderOverlay draws game state messages.
func (g *Game) renderOverlay(dst *core.Screen) {
	s := g.engine.Session()
	switch {
	case s.Status == StatusGameOver:
		subtitle := fmt.Sprintf("Score: %d  |  Press R to restart", s.Score.Score())
		g.drawCenteredBox(dst, "GAME OVER", subtitle)

	case s.Status == StatusLevelComplete:
		g.drawCenteredBox(dst, fmt.Sprintf("LEVEL %d CLEAR", s.Level), "Press ENTER to continue")

	case s.Paused:
		g.drawCenteredBox(dst, "PAUSED", "P resume | F5 save | F9 load")
	}
}

// drawCenteredBox draws a message box centered on the board.
func (g *Game) drawCenteredBox(dst *core.Screen, title, subtitle string) {
	boxW := max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := boardX + (g.layout.Width()-boxW)/2
	if boxX < 0 {
		boxX = 0
	}
	boxY := boardY + (g.layout.Height()-boxH)/2

	dst.Fill(boxX, boxY, boxW, boxH, ' ')
	dst.DrawBox(boxX, boxY, boxW, boxH)

	dst.DrawText(boxX+(boxW-len(title))/2, boxY+1, title)
	dst.DrawText(boxX+(boxW-len(subtitle))/2, boxY+3, subtitle)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.engine == nil {
		return core.GameState{}
	}
	s := g.engine.Session()
	return core.GameState{
		Score:    s.Score.Score(),
		GameOver: s.Status == StatusGameOver,
		Paused:   s.Paused,
	}
}

func init() {
	registry.Register(GameID, func(svc registry.Services) registry.Game {
		return New(svc)
	})
}
