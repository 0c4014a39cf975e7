package board

import (
	"lukechampine.com/frand"

	"github.com/domino14/tumble/die"
	"github.com/domino14/tumble/move"
)

// DicePerPlayer is how many dice each side starts with.
const DicePerPlayer = 8

// scrambleRolls is how many random face-only rolls are used to pick a
// starting orientation.
const scrambleRolls = 12

// RandomOrientation returns a random orientation reachable by rolling the
// standard die.
func RandomOrientation(rng *frand.RNG) die.Orientation {
	o := die.Standard
	for i := 0; i < scrambleRolls; i++ {
		o.Roll(die.Directions[rng.Intn(die.NumDirections)])
	}
	return o
}

// StandardLayout sets up a new game: player 0 fills row 8, player 1 fills
// row 1, and every die gets a random orientation.
func StandardLayout(rng *frand.RNG) *Board {
	b := New()
	for col := 0; col < DicePerPlayer; col++ {
		b.AddDie(die.New(col, 0, RandomOrientation(rng)))
		b.AddDie(die.New(move.NumCells-move.BoardDim+col, 1, RandomOrientation(rng)))
	}
	return b
}
