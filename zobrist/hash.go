package zobrist

import (
	"lukechampine.com/frand"

	"github.com/domino14/tumble/board"
	"github.com/domino14/tumble/die"
	"github.com/domino14/tumble/move"
)

const bignum = 1<<63 - 2

// numFaces is one more than the highest face so that face values index
// the table directly.
const numFaces = 7

// Zobrist hashes a dice position.
// https://en.wikipedia.org/wiki/Zobrist_hashing
// Top and front alone do not fix a die: its mirror image shares them, so
// the table is keyed by cell, owner, top, front and right.
type Zobrist struct {
	posTable [move.NumCells][board.NumPlayers][numFaces][numFaces][numFaces]uint64
}

// Initialize fills the table from the process-wide random source.
func (z *Zobrist) Initialize() {
	z.fill(frand.Uint64n)
}

// InitializeWithRNG fills the table from rng, for reproducible keys.
func (z *Zobrist) InitializeWithRNG(rng *frand.RNG) {
	z.fill(rng.Uint64n)
}

func (z *Zobrist) fill(uint64n func(uint64) uint64) {
	for c := range z.posTable {
		for p := range z.posTable[c] {
			for up := 1; up < numFaces; up++ {
				for front := 1; front < numFaces; front++ {
					for right := 1; right < numFaces; right++ {
						z.posTable[c][p][up][front][right] = uint64n(bignum) + 1
					}
				}
			}
		}
	}
}

// DieKey is the contribution of a single die to a position's hash. XOR it
// in when a die arrives on a cell and out again when it leaves.
func (z *Zobrist) DieKey(d *die.Die) uint64 {
	return z.posTable[d.Cell()][d.Owner()][d.Top()][d.Front()][d.Right()]
}

// Hash computes the key of the whole board.
func (z *Zobrist) Hash(b *board.Board) uint64 {
	key := uint64(0)
	for c := 0; c < move.NumCells; c++ {
		if d := b.DieAt(c); d != nil {
			key ^= z.DieKey(d)
		}
	}
	return key
}
