// Package ghostai decides where each pursuer moves next.
//
// Decisions are pure: they depend only on the board, the pursuer, the
// player and an injected random source, so a seeded game replays exactly.
package ghostai

import (
	"github.com/vovakirdan/maze-chase/internal/core"
)

// Board is the view of the maze and its occupants that the AI consults.
type Board interface {
	// IsWall reports walls, including cells off the grid.
	IsWall(p core.Point) bool
	// IsHome reports cells of the home region.
	IsHome(p core.Point) bool
	// PursuerAt reports whether a pursuer occupies p.
	PursuerAt(p core.Point) bool
	// PlayerAt reports whether the player occupies p.
	PlayerAt(p core.Point) bool
}

// Rand is the random source used by the Mimic policy.
// *rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// DirectionSet is a bit set of directions, bit d for direction d.
type DirectionSet uint8

// Add returns the set with d included.
func (s DirectionSet) Add(d core.Direction) DirectionSet {
	return s | 1<<d
}

// Has reports whether d is in the set.
func (s DirectionSet) Has(d core.Direction) bool {
	return d.Valid() && s&(1<<d) != 0
}

// Empty reports whether no direction is in the set.
func (s DirectionSet) Empty() bool {
	return s&0x0f == 0
}

// First returns the first member in Left, Up, Right, Down order.
func (s DirectionSet) First() (core.Direction, bool) {
	for _, d := range core.AllDirections {
		if s.Has(d) {
			return d, true
		}
	}
	return 0, false
}

// Len returns the number of directions in the set.
func (s DirectionSet) Len() int {
	n := 0
	for _, d := range core.AllDirections {
		if s.Has(d) {
			n++
		}
	}
	return n
}

// String lists the members, e.g. "{left,down}".
func (s DirectionSet) String() string {
	out := "{"
	for _, d := range core.AllDirections {
		if s.Has(d) {
			if len(out) > 1 {
				out += ","
			}
			out += d.String()
		}
	}
	return out + "}"
}

// LegalDirections returns the directions a pursuer at pos may move in.
//
// A pursuer may enter an open cell or the player's cell. It may not enter a
// wall or another pursuer. Home cells are only enterable from inside the
// home region.
func LegalDirections(b Board, pos core.Point) DirectionSet {
	var set DirectionSet
	inHome := b.IsHome(pos)
	for _, d := range core.AllDirections {
		next := pos.Step(d)
		switch {
		case b.PlayerAt(next):
			set = set.Add(d)
		case b.PursuerAt(next), b.IsWall(next):
		case b.IsHome(next):
			if inHome {
				set = set.Add(d)
			}
		default:
			set = set.Add(d)
		}
	}
	return set
}

// Context is everything a policy may look at for one decision.
type Context struct {
	ID           int            // Pursuer identity, 0..3
	Pos          core.Point     // Pursuer position
	Facing       core.Direction // Pursuer's last direction of travel
	Player       core.Point
	PlayerFacing core.Direction
}

// Decide picks a direction for the pursuer described by ctx.
// It returns false when the pursuer cannot move this turn.
//
// Inside the home region the exit direction (up) wins whenever it is legal;
// otherwise the policy for the pursuer's identity decides.
func Decide(b Board, ctx Context, rng Rand) (core.Direction, bool) {
	legal := LegalDirections(b, ctx.Pos)
	if legal.Empty() {
		return 0, false
	}
	if b.IsHome(ctx.Pos) && legal.Has(core.DirUp) {
		return core.DirUp, true
	}
	return PolicyFor(ctx.ID).Choose(ctx, legal, rng)
}
