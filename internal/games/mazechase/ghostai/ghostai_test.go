package ghostai

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/maze-chase/internal/core"
	"github.com/vovakirdan/maze-chase/internal/games/mazechase/maze"
)

// gridBoard is a Board built from glyph rows: '#' wall, 'h' home,
// 'G' pursuer, '@' player, anything else open.
type gridBoard struct {
	rows []string
}

func (b gridBoard) at(p core.Point) byte {
	if p.Y < 0 || p.Y >= len(b.rows) || p.X < 0 || p.X >= len(b.rows[p.Y]) {
		return '#'
	}
	return b.rows[p.Y][p.X]
}

func (b gridBoard) IsWall(p core.Point) bool    { return b.at(p) == '#' }
func (b gridBoard) IsHome(p core.Point) bool    { return b.at(p) == 'h' }
func (b gridBoard) PursuerAt(p core.Point) bool { return b.at(p) == 'G' }
func (b gridBoard) PlayerAt(p core.Point) bool  { return b.at(p) == '@' }

// fixedRand always returns the same value.
type fixedRand int

func (r fixedRand) Intn(n int) int { return int(r) % n }

func set(ds ...core.Direction) DirectionSet {
	var s DirectionSet
	for _, d := range ds {
		s = s.Add(d)
	}
	return s
}

func TestDirectionSet(t *testing.T) {
	s := set(core.DirDown, core.DirUp)
	if !s.Has(core.DirUp) || !s.Has(core.DirDown) || s.Has(core.DirLeft) {
		t.Errorf("set membership wrong: %v", s)
	}
	if s.Len() != 2 || s.Empty() {
		t.Errorf("Len() = %d, Empty() = %v", s.Len(), s.Empty())
	}
	if d, ok := s.First(); !ok || d != core.DirUp {
		t.Errorf("First() = %v, %v", d, ok)
	}
	if s.String() != "{up,down}" {
		t.Errorf("String() = %q", s.String())
	}
	if _, ok := DirectionSet(0).First(); ok {
		t.Error("First() on empty set should fail")
	}
}

func TestLegalDirections(t *testing.T) {
	tests := []struct {
		name string
		rows []string
		pos  core.Point
		want DirectionSet
	}{
		{
			name: "open crossing",
			rows: []string{
				"#.#",
				"...",
				"#.#",
			},
			pos:  core.Pt(1, 1),
			want: set(core.DirLeft, core.DirUp, core.DirRight, core.DirDown),
		},
		{
			name: "walls and pursuers block, player does not",
			rows: []string{
				"###",
				"G.@",
				"#.#",
			},
			pos:  core.Pt(1, 1),
			want: set(core.DirRight, core.DirDown),
		},
		{
			name: "home is closed from outside",
			rows: []string{
				"#.#",
				"h..",
				"###",
			},
			pos:  core.Pt(1, 1),
			want: set(core.DirUp, core.DirRight),
		},
		{
			name: "home is open from inside",
			rows: []string{
				"#.#",
				"hhh",
				"###",
			},
			pos:  core.Pt(1, 1),
			want: set(core.DirLeft, core.DirUp, core.DirRight),
		},
		{
			name: "grid edge counts as wall",
			rows: []string{
				"..",
			},
			pos:  core.Pt(0, 0),
			want: set(core.DirRight),
		},
		{
			name: "boxed in",
			rows: []string{
				"#G#",
				"#.#",
				"###",
			},
			pos:  core.Pt(1, 1),
			want: 0,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := LegalDirections(gridBoard{tc.rows}, tc.pos)
			if got != tc.want {
				t.Errorf("LegalDirections() = %v, expected %v", got, tc.want)
			}
		})
	}
}

func TestPolicyTable(t *testing.T) {
	tests := []struct {
		id   int
		want string
	}{
		{0, "chase"},
		{1, "persistent(1)"},
		{2, "mimic"},
		{3, "persistent(3)"},
		{7, "chase"},
	}
	for _, tc := range tests {
		if got := PolicyFor(tc.id).Name(); got != tc.want {
			t.Errorf("PolicyFor(%d) = %s, expected %s", tc.id, got, tc.want)
		}
	}
}

func TestChase(t *testing.T) {
	all := set(core.DirLeft, core.DirUp, core.DirRight, core.DirDown)
	tests := []struct {
		name   string
		pos    core.Point
		player core.Point
		legal  DirectionSet
		want   core.Direction
	}{
		{"larger vertical gap goes up", core.Pt(5, 5), core.Pt(4, 1), all, core.DirUp},
		{"larger vertical gap goes down", core.Pt(5, 5), core.Pt(6, 9), all, core.DirDown},
		{"larger horizontal gap goes left", core.Pt(5, 5), core.Pt(1, 4), all, core.DirLeft},
		{"equal gaps prefer horizontal", core.Pt(5, 5), core.Pt(8, 8), all, core.DirRight},
		{"aligned vertically uses right", core.Pt(5, 5), core.Pt(5, 5), all, core.DirRight},
		{"vertical blocked falls to horizontal", core.Pt(5, 5), core.Pt(4, 1), set(core.DirLeft, core.DirDown), core.DirLeft},
		{"horizontal blocked falls to vertical", core.Pt(5, 5), core.Pt(1, 3), set(core.DirUp, core.DirRight), core.DirUp},
		{"dy zero tries down after horizontal", core.Pt(5, 5), core.Pt(1, 5), set(core.DirDown, core.DirRight), core.DirDown},
		{"fallback first legal", core.Pt(5, 5), core.Pt(1, 1), set(core.DirRight, core.DirDown), core.DirRight},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctx := Context{ID: 0, Pos: tc.pos, Player: tc.player}
			got, ok := Chase{}.Choose(ctx, tc.legal, nil)
			if !ok || got != tc.want {
				t.Errorf("Choose() = %v, %v; expected %v", got, ok, tc.want)
			}
		})
	}
}

func TestPersistent(t *testing.T) {
	tests := []struct {
		name   string
		offset int
		facing core.Direction
		legal  DirectionSet
		want   core.Direction
	}{
		{"keeps going", 1, core.DirLeft, set(core.DirLeft, core.DirUp), core.DirLeft},
		{"offset 1 turns clockwise", 1, core.DirLeft, set(core.DirUp, core.DirDown, core.DirRight), core.DirUp},
		{"offset 1 then the other way", 1, core.DirLeft, set(core.DirDown, core.DirRight), core.DirDown},
		{"offset 3 turns counter-clockwise", 3, core.DirLeft, set(core.DirUp, core.DirDown), core.DirDown},
		{"offset 3 then the other way", 3, core.DirRight, set(core.DirDown, core.DirLeft), core.DirDown},
		{"reverses last", 3, core.DirUp, set(core.DirDown), core.DirDown},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctx := Context{Facing: tc.facing}
			got, ok := Persistent{Offset: tc.offset}.Choose(ctx, tc.legal, nil)
			if !ok || got != tc.want {
				t.Errorf("Choose() = %v, %v; expected %v", got, ok, tc.want)
			}
		})
	}
}

func TestMimic(t *testing.T) {
	ctx := Context{PlayerFacing: core.DirDown}

	got, ok := Mimic{}.Choose(ctx, set(core.DirDown, core.DirLeft), fixedRand(0))
	if !ok || got != core.DirDown {
		t.Errorf("mimic should copy player facing, got %v", got)
	}

	// Player facing blocked: scan starts at the random offset
	legal := set(core.DirLeft, core.DirRight)
	tests := []struct {
		r    int
		want core.Direction
	}{
		{0, core.DirLeft},
		{1, core.DirRight}, // up blocked, right next
		{2, core.DirRight},
		{3, core.DirLeft}, // down blocked, wraps to left
	}
	for _, tc := range tests {
		got, ok := Mimic{}.Choose(ctx, legal, fixedRand(tc.r))
		if !ok || got != tc.want {
			t.Errorf("rand=%d: Choose() = %v, expected %v", tc.r, got, tc.want)
		}
	}
}

func TestMimicReplaysWithSeed(t *testing.T) {
	ctx := Context{PlayerFacing: core.DirUp}
	legal := set(core.DirLeft, core.DirRight, core.DirDown)

	a := rand.New(rand.NewSource(42))
	b := rand.New(rand.NewSource(42))
	for i := 0; i < 50; i++ {
		da, _ := Mimic{}.Choose(ctx, legal, a)
		db, _ := Mimic{}.Choose(ctx, legal, b)
		if da != db {
			t.Fatalf("step %d: %v != %v with the same seed", i, da, db)
		}
	}
}

func TestDecideHomeExitFirst(t *testing.T) {
	b := gridBoard{[]string{
		"#.#",
		"h.h",
		"###",
	}}
	// (1,1) is open here; make the pursuer stand inside home instead
	home := gridBoard{[]string{
		"#.#",
		"hhh",
		"###",
	}}

	// Chase would go right toward the player, but home occupants exit up
	ctx := Context{ID: 0, Pos: core.Pt(1, 1), Player: core.Pt(9, 1)}
	if d, ok := Decide(home, ctx, fixedRand(0)); !ok || d != core.DirUp {
		t.Errorf("Decide() in home = %v, %v; expected up", d, ok)
	}

	// Outside home the policy decides
	ctx.Player = core.Pt(1, 2)
	if d, ok := Decide(b, ctx, fixedRand(0)); !ok || d != core.DirUp {
		// Only up is legal from the open cell between two home cells
		t.Errorf("Decide() outside home = %v, %v", d, ok)
	}
}

func TestDecideCannotMove(t *testing.T) {
	b := gridBoard{[]string{
		"###",
		"#.G",
		"###",
	}}
	if _, ok := Decide(b, Context{ID: 1, Pos: core.Pt(1, 1)}, fixedRand(0)); ok {
		t.Error("boxed-in pursuer should not move")
	}
}

func TestDecideOnClassicMaze(t *testing.T) {
	m := maze.New(maze.Classic())
	l := m.Layout()
	ghosts := l.GhostStarts
	b := classicBoard{l: l, ghosts: ghosts[:], player: l.PlayerStart}

	// Pursuer 1 at (14,15) sits below the entry gap: it leaves upward
	ctx := Context{ID: 1, Pos: ghosts[1], Facing: core.DirRight, Player: l.PlayerStart, PlayerFacing: core.DirRight}
	if d, ok := Decide(b, ctx, fixedRand(0)); !ok || d != core.DirUp {
		t.Errorf("pursuer 1 = %v, %v; expected up", d, ok)
	}

	// Pursuer 0 at (12,15) has the wall above: chase moves it along the pen
	ctx = Context{ID: 0, Pos: ghosts[0], Facing: core.DirRight, Player: l.PlayerStart, PlayerFacing: core.DirRight}
	d, ok := Decide(b, ctx, fixedRand(0))
	if !ok || d != core.DirRight {
		t.Errorf("pursuer 0 = %v, %v; expected right", d, ok)
	}
}

// classicBoard adapts a layout plus occupant positions to Board.
type classicBoard struct {
	l      *maze.Layout
	ghosts []core.Point
	player core.Point
}

func (b classicBoard) IsWall(p core.Point) bool { return b.l.IsWall(p) }
func (b classicBoard) IsHome(p core.Point) bool { return b.l.IsHome(p) }
func (b classicBoard) PlayerAt(p core.Point) bool {
	return p == b.player
}
func (b classicBoard) PursuerAt(p core.Point) bool {
	for _, g := range b.ghosts {
		if g == p {
			return true
		}
	}
	return false
}
