package mazechase

import (
	"github.com/vovakirdan/maze-chase/internal/core"
	"github.com/vovakirdan/maze-chase/internal/games/mazechase/maze"
)

// CellVisual is what a cell shows when no entity stands on it.
type CellVisual uint8

const (
	VisualEmpty CellVisual = iota
	VisualWall
	VisualDot
	VisualPower
	VisualHome
)

// Sprite selects how an entity is drawn.
type Sprite uint8

const (
	SpritePlayer Sprite = iota
	SpriteGhost
	SpriteFrightened // Pursuer while power mode is active
)

// Renderer receives drawing updates from the engine. It is never read back.
type Renderer interface {
	DrawCell(p core.Point, v CellVisual)
	DrawEntity(s Sprite, id int, p core.Point, facing core.Direction)
	ClearEntity(p core.Point)
	ReportScore(score int)
	ReportHighScore(score int)
	ReportLives(n int)
	ReportRemaining(n int)
}

type nopRenderer struct{}

func (nopRenderer) DrawCell(core.Point, CellVisual)                    {}
func (nopRenderer) DrawEntity(Sprite, int, core.Point, core.Direction) {}
func (nopRenderer) ClearEntity(core.Point)                             {}
func (nopRenderer) ReportScore(int)                                    {}
func (nopRenderer) ReportHighScore(int)                                {}
func (nopRenderer) ReportLives(int)                                    {}
func (nopRenderer) ReportRemaining(int)                                {}

// Box-drawing runes for the layout's wall glyphs.
var wallRunes = map[byte]rune{
	'-': '─',
	'|': '│',
	'F': '┌',
	'7': '┐',
	'L': '└',
	'J': '┘',
	'>': '├',
	'<': '┤',
	'^': '┴',
	'v': '┬',
	'+': '┼',
}

// playerRunes are indexed by facing.
var playerRunes = [core.NumDirections]rune{'ᗤ', 'ᗢ', 'ᗧ', 'ᗣ'}

const ghostRune = 'ᗝ'

var ghostColors = [NumGhosts]core.Color{core.ColorRed, core.ColorGreen, core.ColorCyan, core.ColorMagenta}

// BoardView is a Renderer that keeps a character picture of the maze plus
// the HUD numbers, ready to be blitted onto a Screen.
type BoardView struct {
	layout    *maze.Layout
	board     *core.Screen
	cells     []CellVisual
	Score     int
	HighScore int
	Lives     int
	Remaining int
}

// NewBoardView creates a view sized to the layout.
func NewBoardView(l *maze.Layout) *BoardView {
	return &BoardView{
		layout: l,
		board:  core.NewScreen(l.Width(), l.Height()),
		cells:  make([]CellVisual, l.Width()*l.Height()),
	}
}

// Board returns the maze picture.
func (v *BoardView) Board() *core.Screen { return v.board }

// DrawCell implements Renderer.
func (v *BoardView) DrawCell(p core.Point, cv CellVisual) {
	if !v.layout.InBounds(p) {
		return
	}
	v.cells[p.Y*v.layout.Width()+p.X] = cv
	v.paintCell(p)
}

func (v *BoardView) paintCell(p core.Point) {
	switch v.cells[p.Y*v.layout.Width()+p.X] {
	case VisualWall:
		r, ok := wallRunes[v.layout.Glyph(p)]
		if !ok {
			r = '█'
		}
		v.board.SetColored(p.X, p.Y, r, core.ColorBrightBlue)
	case VisualDot:
		v.board.SetColored(p.X, p.Y, '·', core.ColorWhite)
	case VisualPower:
		v.board.SetColored(p.X, p.Y, 'O', core.ColorGreen)
	default:
		v.board.Set(p.X, p.Y, ' ')
	}
}

// DrawEntity implements Renderer.
func (v *BoardView) DrawEntity(s Sprite, id int, p core.Point, facing core.Direction) {
	switch s {
	case SpritePlayer:
		r := playerRunes[core.DirRight]
		if facing.Valid() {
			r = playerRunes[facing]
		}
		v.board.SetColored(p.X, p.Y, r, core.ColorYellow)
	case SpriteFrightened:
		v.board.SetColored(p.X, p.Y, ghostRune, core.ColorBlue)
	default:
		c := core.ColorRed
		if id >= 0 && id < NumGhosts {
			c = ghostColors[id]
		}
		v.board.SetColored(p.X, p.Y, ghostRune, c)
	}
}

// ClearEntity implements Renderer.
func (v *BoardView) ClearEntity(p core.Point) {
	if v.layout.InBounds(p) {
		v.paintCell(p)
	}
}

// ReportScore implements Renderer.
func (v *BoardView) ReportScore(score int) { v.Score = score }

// ReportHighScore implements Renderer.
func (v *BoardView) ReportHighScore(score int) { v.HighScore = score }

// ReportLives implements Renderer.
func (v *BoardView) ReportLives(n int) { v.Lives = n }

// ReportRemaining implements Renderer.
func (v *BoardView) ReportRemaining(n int) { v.Remaining = n }

// visualAt derives the resting visual of p from the session.
func visualAt(m *maze.Maze, p core.Point) CellVisual {
	switch {
	case m.CellKind(p) == maze.Wall:
		return VisualWall
	case m.HasPowerMarker(p):
		return VisualPower
	case m.HasCollectible(p):
		return VisualDot
	case m.CellKind(p).IsHome():
		return VisualHome
	default:
		return VisualEmpty
	}
}
