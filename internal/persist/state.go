// Package persist encodes a maze-chase session into a fixed-offset byte
// record and back.
//
// The record starts with an 8-byte signature; every other field sits at the
// offset given by Layout. A record is only trusted when the signature matches.
package persist

import (
	"time"

	"github.com/vovakirdan/maze-chase/internal/core"
)

const (
	// MazeRows is the number of bitset words stored, one per maze row.
	MazeRows = 31
	// NumGhosts is the number of pursuers stored.
	NumGhosts = 4
)

// Entity is a stored position and facing.
type Entity struct {
	X, Y   int
	Facing core.Direction
}

// State is the aggregate state that a save carries.
type State struct {
	Score     int
	HighScore int
	Remaining int      // Collectibles left, equal to the popcount of Rows
	Rows      []uint32 // MazeRows words, column x in bit x

	PowerActive bool
	PowerSince  time.Duration // Game time of activation
	Consumed    [NumGhosts]bool
	Alive       int
	LastBonus   int

	Elapsed time.Duration // Game time at save
	Lives   int
	Level   int

	Player Entity
	Ghosts [NumGhosts]Entity
}

// clearPower resets the power-mode fields to their defaults.
func (s *State) clearPower() {
	s.PowerActive = false
	s.PowerSince = 0
	s.Consumed = [NumGhosts]bool{}
	s.Alive = NumGhosts
	s.LastBonus = 0
}
