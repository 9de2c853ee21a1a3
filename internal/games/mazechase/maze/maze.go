package maze

import (
	"errors"
	"fmt"
	"math/bits"

	"github.com/vovakirdan/maze-chase/internal/core"
)

// ErrOutOfRange is returned for coordinates outside the grid.
var ErrOutOfRange = errors.New("maze: coordinate out of range")

// Collectible is what a cell held before it was consumed.
type Collectible uint8

const (
	CollectibleNone Collectible = iota
	CollectibleDot
	CollectiblePower
)

// String returns a human-readable name for the collectible.
func (c Collectible) String() string {
	switch c {
	case CollectibleNone:
		return "none"
	case CollectibleDot:
		return "dot"
	case CollectiblePower:
		return "power"
	default:
		return "unknown"
	}
}

// Maze is a Layout plus the collectibles still on the board.
// A collectible bit is only ever cleared during play; it comes back only
// through ResetFromLayout or RestoreRows.
type Maze struct {
	layout    *Layout
	rows      []uint32
	remaining int
}

// New creates a maze with every collectible of the layout in place.
func New(l *Layout) *Maze {
	m := &Maze{layout: l}
	m.ResetFromLayout()
	return m
}

// Layout returns the static layout.
func (m *Maze) Layout() *Layout { return m.layout }

// Width returns the number of columns.
func (m *Maze) Width() int { return m.layout.width }

// Height returns the number of rows.
func (m *Maze) Height() int { return m.layout.height }

// InBounds reports whether p lies on the grid.
func (m *Maze) InBounds(p core.Point) bool { return m.layout.InBounds(p) }

// CellKind returns the static kind of the cell at p. Off-grid cells are walls.
func (m *Maze) CellKind(p core.Point) CellKind { return m.layout.Kind(p) }

// HasCollectible reports whether any collectible (dot or power) remains at p.
func (m *Maze) HasCollectible(p core.Point) bool {
	if !m.InBounds(p) {
		return false
	}
	return m.rows[p.Y]&(1<<uint(p.X)) != 0
}

// HasPowerMarker reports whether a power marker remains at p.
func (m *Maze) HasPowerMarker(p core.Point) bool {
	return m.layout.IsPowerCell(p) && m.HasCollectible(p)
}

// Collectible reports what is left at p.
func (m *Maze) Collectible(p core.Point) Collectible {
	switch {
	case !m.HasCollectible(p):
		return CollectibleNone
	case m.layout.IsPowerCell(p):
		return CollectiblePower
	default:
		return CollectibleDot
	}
}

// ConsumeCollectible clears the collectible at p and reports what it was.
// An already empty cell is left alone and reports CollectibleNone.
func (m *Maze) ConsumeCollectible(p core.Point) (Collectible, error) {
	if !m.InBounds(p) {
		return CollectibleNone, fmt.Errorf("%w: (%d,%d)", ErrOutOfRange, p.X, p.Y)
	}
	c := m.Collectible(p)
	if c == CollectibleNone {
		return c, nil
	}
	m.rows[p.Y] &^= 1 << uint(p.X)
	m.remaining--
	return c, nil
}

// ResetFromLayout puts back every collectible of the layout.
func (m *Maze) ResetFromLayout() {
	m.rows = m.layout.InitialRows()
	m.remaining = countBits(m.rows)
}

// Remaining returns the number of collectibles left.
func (m *Maze) Remaining() int { return m.remaining }

// CountBits recounts the bitset. It always equals Remaining.
func (m *Maze) CountBits() int { return countBits(m.rows) }

// Rows returns a copy of the collectible bitset, one word per row with
// column x in bit x.
func (m *Maze) Rows() []uint32 {
	out := make([]uint32, len(m.rows))
	copy(out, m.rows)
	return out
}

// RestoreRows replaces the collectible bitset. Every set bit must be a cell
// that held a collectible in the layout.
func (m *Maze) RestoreRows(rows []uint32) error {
	if len(rows) != m.layout.height {
		return fmt.Errorf("maze: restore: %d rows, expected %d", len(rows), m.layout.height)
	}
	for y, r := range rows {
		if extra := r &^ m.layout.initial[y]; extra != 0 {
			x := bits.TrailingZeros32(extra)
			return fmt.Errorf("%w: restore: no collectible can exist at (%d,%d)", ErrOutOfRange, x, y)
		}
	}
	m.rows = make([]uint32, len(rows))
	copy(m.rows, rows)
	m.remaining = countBits(m.rows)
	return nil
}

func countBits(rows []uint32) int {
	n := 0
	for _, r := range rows {
		n += bits.OnesCount32(r)
	}
	return n
}
