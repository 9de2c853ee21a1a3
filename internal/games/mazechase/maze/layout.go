// Package maze holds the static wall layout of a maze-chase level and the
// mutable set of collectibles still on the board.
package maze

import (
	"fmt"

	"github.com/vovakirdan/maze-chase/internal/core"
)

// CellKind is the static kind of a grid cell.
type CellKind uint8

const (
	Open           CellKind = iota // Corridor, may hold a collectible
	Wall                           // Impassable
	GhostHome                      // Pursuer pen
	GhostHomeEntry                 // Gap above the pen, part of the home region
)

// String returns a human-readable name for the cell kind.
func (k CellKind) String() string {
	switch k {
	case Open:
		return "open"
	case Wall:
		return "wall"
	case GhostHome:
		return "ghost-home"
	case GhostHomeEntry:
		return "ghost-home-entry"
	default:
		return "unknown"
	}
}

// IsHome reports whether the kind belongs to the home region.
func (k CellKind) IsHome() bool {
	return k == GhostHome || k == GhostHomeEntry
}

// MaxWidth is the widest row a Layout can hold: one bit per column in a uint32 row word.
const MaxWidth = 32

// Layout glyphs. Any glyph not listed here and not a wall glyph is rejected.
const (
	glyphEmpty     = ' '
	glyphDot       = '.'
	glyphPower     = 'P'
	glyphHome      = 'h'
	glyphHomeEntry = 'e'
)

// wallGlyphs are the box-drawing hints accepted as walls.
const wallGlyphs = "-|F7LJ><^v+"

// Layout is an immutable level description, derived once from glyph rows.
type Layout struct {
	width, height int
	kinds         []CellKind
	glyphs        []byte
	initial       []uint32 // Initial collectible bit per column, one word per row
	power         []core.Point

	// PlayerStart is where the player spawns, facing PlayerFacing.
	PlayerStart  core.Point
	PlayerFacing core.Direction
	// GhostStarts holds the home cell of each pursuer id.
	GhostStarts [4]core.Point
	// GhostFacing is the facing every pursuer spawns with.
	GhostFacing core.Direction
	// TunnelLeft and TunnelRight are the two ends of the wrap-around corridor.
	TunnelLeft, TunnelRight core.Point
}

// ParseLayout builds a Layout from glyph rows. Every row must have the same
// width, at most MaxWidth columns.
func ParseLayout(rows []string) (*Layout, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("maze: layout has no rows")
	}
	width := len(rows[0])
	if width == 0 || width > MaxWidth {
		return nil, fmt.Errorf("maze: layout width %d outside 1..%d", width, MaxWidth)
	}

	l := &Layout{
		width:   width,
		height:  len(rows),
		kinds:   make([]CellKind, width*len(rows)),
		glyphs:  make([]byte, width*len(rows)),
		initial: make([]uint32, len(rows)),
	}

	for y, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("maze: row %d has width %d, expected %d", y, len(row), width)
		}
		for x := 0; x < width; x++ {
			g := row[x]
			i := y*width + x
			l.glyphs[i] = g
			switch g {
			case glyphEmpty:
				l.kinds[i] = Open
			case glyphDot:
				l.kinds[i] = Open
				l.initial[y] |= 1 << uint(x)
			case glyphPower:
				l.kinds[i] = Open
				l.initial[y] |= 1 << uint(x)
				l.power = append(l.power, core.Pt(x, y))
			case glyphHome:
				l.kinds[i] = GhostHome
			case glyphHomeEntry:
				l.kinds[i] = GhostHomeEntry
			default:
				if !isWallGlyph(g) {
					return nil, fmt.Errorf("maze: unknown glyph %q at (%d,%d)", g, x, y)
				}
				l.kinds[i] = Wall
			}
		}
	}
	return l, nil
}

// MustParseLayout is like ParseLayout but panics on error.
// Used for the built-in layouts.
func MustParseLayout(rows []string) *Layout {
	l, err := ParseLayout(rows)
	if err != nil {
		panic(err)
	}
	return l
}

func isWallGlyph(g byte) bool {
	for i := 0; i < len(wallGlyphs); i++ {
		if wallGlyphs[i] == g {
			return true
		}
	}
	return false
}

// Width returns the number of columns.
func (l *Layout) Width() int { return l.width }

// Height returns the number of rows.
func (l *Layout) Height() int { return l.height }

// InBounds reports whether p lies on the grid.
func (l *Layout) InBounds(p core.Point) bool {
	return p.X >= 0 && p.X < l.width && p.Y >= 0 && p.Y < l.height
}

// Kind returns the static kind of the cell at p. Cells off the grid are walls.
func (l *Layout) Kind(p core.Point) CellKind {
	if !l.InBounds(p) {
		return Wall
	}
	return l.kinds[p.Y*l.width+p.X]
}

// Glyph returns the layout glyph at p, or 0 off the grid.
// Renderers use it to pick box-drawing characters for walls.
func (l *Layout) Glyph(p core.Point) byte {
	if !l.InBounds(p) {
		return 0
	}
	return l.glyphs[p.Y*l.width+p.X]
}

// IsWall reports whether p is a wall or off the grid.
func (l *Layout) IsWall(p core.Point) bool {
	return l.Kind(p) == Wall
}

// IsHome reports whether p is part of the home region.
func (l *Layout) IsHome(p core.Point) bool {
	return l.Kind(p).IsHome()
}

// IsPowerCell reports whether p is one of the power-marker coordinates.
func (l *Layout) IsPowerCell(p core.Point) bool {
	for _, q := range l.power {
		if q == p {
			return true
		}
	}
	return false
}

// PowerCells returns the power-marker coordinates.
func (l *Layout) PowerCells() []core.Point {
	out := make([]core.Point, len(l.power))
	copy(out, l.power)
	return out
}

// InitialRows returns a copy of the layout's starting collectible bitset.
func (l *Layout) InitialRows() []uint32 {
	out := make([]uint32, len(l.initial))
	copy(out, l.initial)
	return out
}
