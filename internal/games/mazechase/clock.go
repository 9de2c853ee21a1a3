package mazechase

import (
	"sync"
	"time"
)

// Source is a monotonic time reading.
type Source interface {
	Now() time.Duration
}

// SourceFunc adapts a function to Source.
type SourceFunc func() time.Duration

// Now implements Source.
func (f SourceFunc) Now() time.Duration { return f() }

// WallSource returns a Source measuring real time since the call.
func WallSource() Source {
	start := time.Now()
	return SourceFunc(func() time.Duration { return time.Since(start) })
}

// ManualSource only moves when told to. The tick driver advances it by one
// frame per Step so that seeded games replay exactly.
type ManualSource struct {
	mu  sync.Mutex
	now time.Duration
}

// Now implements Source.
func (m *ManualSource) Now() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Advance moves the source forward by d.
func (m *ManualSource) Advance(d time.Duration) {
	m.mu.Lock()
	m.now += d
	m.mu.Unlock()
}

// GameClock is game time: a Source minus the time spent paused.
// Resuming never fast-forwards a timer.
type GameClock struct {
	src         Source
	offset      time.Duration
	pausedTotal time.Duration
	pausedAt    time.Duration
	paused      bool
}

// NewGameClock creates a running clock reading from src.
func NewGameClock(src Source) *GameClock {
	return &GameClock{src: src}
}

// Now returns the current game time. It stands still while paused.
func (c *GameClock) Now() time.Duration {
	raw := c.src.Now()
	if c.paused {
		raw = c.pausedAt
	}
	return raw - c.pausedTotal + c.offset
}

// Pause freezes game time.
func (c *GameClock) Pause() {
	if c.paused {
		return
	}
	c.paused = true
	c.pausedAt = c.src.Now()
}

// Resume lets game time run again from where it stopped.
func (c *GameClock) Resume() {
	if !c.paused {
		return
	}
	c.pausedTotal += c.src.Now() - c.pausedAt
	c.paused = false
}

// Paused reports whether the clock is frozen.
func (c *GameClock) Paused() bool { return c.paused }

// ElapsedWhilePaused returns the total time spent paused.
func (c *GameClock) ElapsedWhilePaused() time.Duration {
	total := c.pausedTotal
	if c.paused {
		total += c.src.Now() - c.pausedAt
	}
	return total
}

// SetElapsed makes Now return d, e.g. after restoring a saved game.
func (c *GameClock) SetElapsed(d time.Duration) {
	c.offset += d - c.Now()
}
