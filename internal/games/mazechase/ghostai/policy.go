package ghostai

import (
	"fmt"

	"github.com/vovakirdan/maze-chase/internal/core"
)

// Policy chooses one of the legal directions.
// legal is never empty when Choose is called.
type Policy interface {
	Choose(ctx Context, legal DirectionSet, rng Rand) (core.Direction, bool)
	Name() string
}

// policies maps pursuer identity to strategy.
var policies = [4]Policy{
	Chase{},
	Persistent{Offset: 1},
	Mimic{},
	Persistent{Offset: 3},
}

// PolicyFor returns the strategy of pursuer id. Unknown ids chase.
func PolicyFor(id int) Policy {
	if id < 0 || id >= len(policies) {
		return Chase{}
	}
	return policies[id]
}

// Chase closes on the player greedily.
//
// When the vertical gap is the larger one it tries the vertical move first.
// It then tries the horizontal move toward the player (right when aligned),
// then the vertical one, then any legal direction in Left, Up, Right, Down order.
type Chase struct{}

// Name implements Policy.
func (Chase) Name() string { return "chase" }

// Choose implements Policy.
func (Chase) Choose(ctx Context, legal DirectionSet, _ Rand) (core.Direction, bool) {
	dx := ctx.Player.X - ctx.Pos.X
	dy := ctx.Player.Y - ctx.Pos.Y

	if core.Abs(dx) < core.Abs(dy) {
		if d, ok := vertical(dy, legal); ok && dy != 0 {
			return d, true
		}
	}

	horizontal := core.DirRight
	if dx < 0 {
		horizontal = core.DirLeft
	}
	if legal.Has(horizontal) {
		return horizontal, true
	}
	if d, ok := vertical(dy, legal); ok {
		return d, true
	}
	return legal.First()
}

// vertical returns up when dy is negative and down otherwise, if legal.
func vertical(dy int, legal DirectionSet) (core.Direction, bool) {
	d := core.DirDown
	if dy < 0 {
		d = core.DirUp
	}
	return d, legal.Has(d)
}

// Persistent keeps going straight. When blocked it turns by Offset quarter
// turns (1 clockwise, 3 counter-clockwise), then the other way, and finally
// reverses.
type Persistent struct {
	Offset int
}

// Name implements Policy.
func (p Persistent) Name() string { return fmt.Sprintf("persistent(%d)", p.Offset) }

// Choose implements Policy.
func (p Persistent) Choose(ctx Context, legal DirectionSet, _ Rand) (core.Direction, bool) {
	cur := ctx.Facing
	turn := cur.Rotate(p.Offset)
	for _, d := range []core.Direction{cur, turn, turn.Opposite(), cur.Opposite()} {
		if legal.Has(d) {
			return d, true
		}
	}
	return 0, false
}

// Mimic copies the player's facing. When that is blocked it probes all four
// directions from a random starting point.
type Mimic struct{}

// Name implements Policy.
func (Mimic) Name() string { return "mimic" }

// Choose implements Policy.
func (Mimic) Choose(ctx Context, legal DirectionSet, rng Rand) (core.Direction, bool) {
	if legal.Has(ctx.PlayerFacing) {
		return ctx.PlayerFacing, true
	}
	start := core.Direction(rng.Intn(core.NumDirections))
	for i := 0; i < core.NumDirections; i++ {
		if d := start.Rotate(i); legal.Has(d) {
			return d, true
		}
	}
	return 0, false
}
