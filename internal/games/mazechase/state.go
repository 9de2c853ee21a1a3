package mazechase

import (
	"fmt"
	"time"

	"github.com/vovakirdan/maze-chase/internal/core"
	"github.com/vovakirdan/maze-chase/internal/persist"
)

// ExportState captures the session for the persistence codec.
// now is the game time recorded as elapsed.
func (e *Engine) ExportState(now time.Duration) persist.State {
	s := &e.session
	st := persist.State{
		Score:       s.Score.Score(),
		HighScore:   s.Score.HighScore(),
		Remaining:   s.Maze.Remaining(),
		Rows:        s.Maze.Rows(),
		PowerActive: s.Power.Active,
		PowerSince:  s.Power.Since,
		Consumed:    s.Power.Consumed,
		Alive:       s.Power.Alive,
		LastBonus:   s.Score.LastBonus(),
		Elapsed:     now,
		Lives:       s.Lives,
		Level:       s.Level,
		Player:      toStored(s.Player),
	}
	for id, g := range s.Ghosts {
		st.Ghosts[id] = toStored(g)
	}
	return st
}

func toStored(en Entity) persist.Entity {
	return persist.Entity{X: en.Pos.X, Y: en.Pos.Y, Facing: en.Facing}
}

func fromStored(en persist.Entity) Entity {
	return Entity{Pos: core.Pt(en.X, en.Y), Facing: en.Facing}
}

// ApplyState replaces the session with st at game time now. Every value is
// checked first; on error the session is left untouched.
// Cadences restart from now; the pause flag is cleared.
func (e *Engine) ApplyState(st persist.State, now time.Duration) error {
	if err := e.checkState(st); err != nil {
		return fmt.Errorf("%w: %w", persist.ErrCorrupt, err)
	}

	s := &e.session
	if err := s.Maze.RestoreRows(st.Rows); err != nil {
		return fmt.Errorf("%w: %w", persist.ErrCorrupt, err)
	}
	s.Score.restore(st.Score, st.HighScore, st.LastBonus)
	s.Lives = st.Lives
	s.Level = max(st.Level, 1)
	s.Player = fromStored(st.Player)
	for id := range s.Ghosts {
		s.Ghosts[id] = fromStored(st.Ghosts[id])
	}
	s.Power.clear()
	if st.PowerActive {
		s.Power = PowerMode{
			Active:   true,
			Since:    st.PowerSince,
			Consumed: st.Consumed,
			Alive:    st.Alive,
		}
	}

	switch {
	case s.Lives == 0:
		s.Status = StatusGameOver
	case s.Maze.Remaining() == 0:
		s.Status = StatusLevelComplete
	default:
		s.Status = StatusRunning
	}
	s.Paused = false
	e.hasPending = false
	e.resync(now)
	e.redrawAll()
	return nil
}

func (e *Engine) checkState(st persist.State) error {
	l := e.layout
	if len(st.Rows) != l.Height() {
		return fmt.Errorf("%d rows, expected %d", len(st.Rows), l.Height())
	}
	initial := l.InitialRows()
	popcount := 0
	for y, r := range st.Rows {
		if r&^initial[y] != 0 {
			return fmt.Errorf("row %d holds collectibles the maze never had", y)
		}
		for ; r != 0; r &= r - 1 {
			popcount++
		}
	}
	if popcount != st.Remaining {
		return fmt.Errorf("remaining %d, bitset holds %d", st.Remaining, popcount)
	}
	if st.Score < 0 || st.HighScore < st.Score {
		return fmt.Errorf("score %d, high score %d", st.Score, st.HighScore)
	}
	if st.Lives < 0 {
		return fmt.Errorf("lives %d", st.Lives)
	}
	if err := e.checkEntity("player", st.Player); err != nil {
		return err
	}
	for id, g := range st.Ghosts {
		if err := e.checkEntity(fmt.Sprintf("pursuer %d", id), g); err != nil {
			return err
		}
	}
	if st.PowerActive && (st.Alive < 0 || st.Alive > NumGhosts) {
		return fmt.Errorf("alive pursuers %d", st.Alive)
	}
	return nil
}

func (e *Engine) checkEntity(name string, en persist.Entity) error {
	p := core.Pt(en.X, en.Y)
	if !e.layout.InBounds(p) || e.layout.IsWall(p) {
		return fmt.Errorf("%s at (%d,%d) is not a walkable cell", name, en.X, en.Y)
	}
	if !en.Facing.Valid() {
		return fmt.Errorf("%s facing %d", name, en.Facing)
	}
	return nil
}
