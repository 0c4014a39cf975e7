// Package movegen enumerates the legal rolls of a die. A die must travel
// exactly as many cells as the number on its top face, through empty cells
// only, never crossing its own path, and may finish on an empty cell or on
// an opponent's die.
package movegen

import (
	"sort"

	"github.com/samber/lo"

	"github.com/domino14/tumble/board"
	"github.com/domino14/tumble/die"
	"github.com/domino14/tumble/move"
)

// MoveGenerator produces every legal move for a player.
type MoveGenerator interface {
	GenAll(b *board.Board, player int) []move.Move
}

// PathEnumerator is a depth-first MoveGenerator.
type PathEnumerator struct{}

func NewPathEnumerator() *PathEnumerator {
	return &PathEnumerator{}
}

// pathNode is one step of a partial path. visited is a bitset of the cells
// this particular path has touched, origin included; it is copied by value
// into each child so sibling branches never see each other's cells.
type pathNode struct {
	cell    int
	letters []byte
	visited uint64
}

func (n pathNode) child(dir die.Direction, cell int) pathNode {
	letters := make([]byte, len(n.letters)+1)
	copy(letters, n.letters)
	letters[len(n.letters)] = dir.Letter()
	return pathNode{
		cell:    cell,
		letters: letters,
		visited: n.visited | 1<<uint(cell),
	}
}

// GenPaths returns every legal path of exactly length steps for d, as
// direction letters, sorted and distinct.
func (pe *PathEnumerator) GenPaths(b *board.Board, d *die.Die, length int) []string {
	if length <= 0 {
		return nil
	}
	root := pathNode{cell: d.Cell(), visited: 1 << uint(d.Cell())}
	var paths []string
	pe.extend(b, d.Owner(), root, length, &paths)
	sort.Strings(paths)
	return lo.Uniq(paths)
}

func (pe *PathEnumerator) extend(b *board.Board, owner int, n pathNode, remaining int, paths *[]string) {
	if remaining == 0 {
		*paths = append(*paths, string(n.letters))
		return
	}
	ns := b.NeighbourOwnership(n.cell)
	for _, dir := range die.Directions {
		switch {
		case ns[dir] == board.NeighbourOffBoard:
			continue
		case ns[dir] == board.NeighbourEmpty:
		case remaining == 1 && ns[dir] != board.Neighbour(owner):
			// the last step may land on an opponent
		default:
			continue
		}
		next, _ := move.Neighbour(n.cell, dir)
		if n.visited&(1<<uint(next)) != 0 {
			continue
		}
		pe.extend(b, owner, n.child(dir, next), remaining-1, paths)
	}
}

// GenMoves returns the legal moves of a single die. The roll length is the
// die's top face at the time of the call.
func (pe *PathEnumerator) GenMoves(b *board.Board, d *die.Die) []move.Move {
	origin := d.Cell()
	return lo.Map(pe.GenPaths(b, d, d.Top()), func(p string, _ int) move.Move {
		m, err := move.FromLetters(origin, p)
		if err != nil {
			panic(err)
		}
		return m
	})
}

// GenAll returns the legal moves of every die player owns. Dice are taken
// in ascending identity order and each die's paths in lexicographic order,
// so the result is deterministic for a given board.
func (pe *PathEnumerator) GenAll(b *board.Board, player int) []move.Move {
	return lo.FlatMap(b.DiceFor(player), func(d *die.Die, _ int) []move.Move {
		return pe.GenMoves(b, d)
	})
}

// CountCandidates is the number of moves GenAll would return.
func (pe *PathEnumerator) CountCandidates(b *board.Board, player int) int {
	return lo.SumBy(b.DiceFor(player), func(d *die.Die) int {
		return len(pe.GenPaths(b, d, d.Top()))
	})
}
