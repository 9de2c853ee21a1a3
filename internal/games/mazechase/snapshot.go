package mazechase

import (
	"fmt"
	"time"
)

// MarshalText encodes the status by name.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a status name.
func (s *Status) UnmarshalText(text []byte) error {
	for _, st := range []Status{StatusInitializing, StatusRunning, StatusLevelComplete, StatusGameOver} {
		if st.String() == string(text) {
			*s = st
			return nil
		}
	}
	return fmt.Errorf("mazechase: unknown status %q", text)
}

// Snapshot captures the observable game state for determinism testing,
// spectators and tool clients.
type Snapshot struct {
	Time        time.Duration             `json:"time_ms"`
	Level       int                       `json:"level"`
	Score       int                       `json:"score"`
	HighScore   int                       `json:"high_score"`
	Lives       int                       `json:"lives"`
	Remaining   int                       `json:"remaining"`
	Player      EntitySnapshot            `json:"player"`
	Ghosts      [NumGhosts]EntitySnapshot `json:"ghosts"`
	PowerActive bool                      `json:"power_active"`
	PowerLeft   time.Duration             `json:"power_left_ms"`
	Consumed    [NumGhosts]bool           `json:"consumed"`
	LastBonus   int                       `json:"last_bonus"`
	Status      Status                    `json:"status"`
	Paused      bool                      `json:"paused"`
}

// EntitySnapshot is an entity flattened for encoding.
type EntitySnapshot struct {
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Facing string `json:"facing"`
}

func entitySnapshot(en Entity) EntitySnapshot {
	return EntitySnapshot{X: en.Pos.X, Y: en.Pos.Y, Facing: en.Facing.String()}
}

// Snapshot returns the state at game time now. Durations are reported in
// milliseconds when encoded.
func (e *Engine) Snapshot(now time.Duration) Snapshot {
	s := &e.session
	snap := Snapshot{
		Time:        now / time.Millisecond,
		Level:       s.Level,
		Score:       s.Score.Score(),
		HighScore:   s.Score.HighScore(),
		Lives:       s.Lives,
		Remaining:   s.Maze.Remaining(),
		Player:      entitySnapshot(s.Player),
		PowerActive: s.Power.Active,
		PowerLeft:   e.PowerRemaining(now) / time.Millisecond,
		Consumed:    s.Power.Consumed,
		LastBonus:   s.Score.LastBonus(),
		Status:      s.Status,
		Paused:      s.Paused,
	}
	for id, g := range s.Ghosts {
		snap.Ghosts[id] = entitySnapshot(g)
	}
	return snap
}
