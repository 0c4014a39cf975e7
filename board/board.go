package board

import (
	"errors"
	"fmt"
	"sort"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/domino14/tumble/die"
	"github.com/domino14/tumble/move"
)

// NumPlayers is fixed; the game is strictly two-player.
const NumPlayers = 2

var (
	ErrSelfCapture = errors.New("cannot capture your own die")
	ErrOffBoard    = errors.New("roll leaves the board")
	ErrPathBlocked = errors.New("path crosses an occupied cell")
	ErrPathRevisit = errors.New("path visits a cell twice")
)

// Neighbour describes what lies one step away from a cell: the owner id
// of a die (0 or 1), nothing, or the edge of the board.
type Neighbour int8

const (
	NeighbourEmpty    Neighbour = -1
	NeighbourOffBoard Neighbour = 2
)

// Board is the authoritative game position. The grid and the per-player
// registries always describe the same set of dice.
type Board struct {
	grid       [move.NumCells]*die.Die
	registries [NumPlayers]map[int]*die.Die
}

// New returns an empty board.
func New() *Board {
	b := &Board{}
	for p := range b.registries {
		b.registries[p] = make(map[int]*die.Die)
	}
	return b
}

// AddDie places d on its cell and registers it with its owner. The cell
// must be empty.
func (b *Board) AddDie(d *die.Die) {
	if d.Owner() < 0 || d.Owner() >= NumPlayers {
		panic(fmt.Sprintf("die has invalid owner %d", d.Owner()))
	}
	if b.grid[d.Cell()] != nil {
		panic(fmt.Sprintf("cell %s is already occupied", move.ToLabel(d.Cell())))
	}
	b.grid[d.Cell()] = d
	b.registries[d.Owner()][d.ID()] = d
}

// RemoveDie takes the die on cell off the board and returns it.
func (b *Board) RemoveDie(cell int) *die.Die {
	d := b.MustDieAt(cell)
	b.grid[cell] = nil
	delete(b.registries[d.Owner()], d.ID())
	return d
}

// DieAt returns the die on cell, or nil.
func (b *Board) DieAt(cell int) *die.Die {
	return b.grid[cell]
}

// MustDieAt returns the die on cell. An empty cell means the caller's view
// of the board is out of sync with the board itself, so it panics.
func (b *Board) MustDieAt(cell int) *die.Die {
	d := b.grid[cell]
	if d == nil {
		panic(fmt.Sprintf("no die at %s", move.ToLabel(cell)))
	}
	return d
}

// Registry returns the dice of player keyed by identity. Do not modify it.
func (b *Board) Registry(player int) map[int]*die.Die {
	return b.registries[player]
}

// DiceFor returns the dice of player in ascending identity order.
func (b *Board) DiceFor(player int) []*die.Die {
	ids := lo.Keys(b.registries[player])
	sort.Ints(ids)
	return lo.Map(ids, func(id int, _ int) *die.Die {
		return b.registries[player][id]
	})
}

// NumDice returns how many dice player has left.
func (b *Board) NumDice(player int) int {
	return len(b.registries[player])
}

// IsOver reports whether a player has run out of dice. If player 0 has no
// dice, player 1 wins, and vice versa. winner is -1 while the game goes on.
func (b *Board) IsOver() (over bool, winner int) {
	switch {
	case len(b.registries[0]) == 0:
		return true, 1
	case len(b.registries[1]) == 0:
		return true, 0
	}
	return false, -1
}

// NeighbourOwnership reports, for each direction, what is next to cell.
func (b *Board) NeighbourOwnership(cell int) [die.NumDirections]Neighbour {
	var ns [die.NumDirections]Neighbour
	for _, dir := range die.Directions {
		n, ok := move.Neighbour(cell, dir)
		switch {
		case !ok:
			ns[dir] = NeighbourOffBoard
		case b.grid[n] == nil:
			ns[dir] = NeighbourEmpty
		default:
			ns[dir] = Neighbour(b.grid[n].Owner())
		}
	}
	return ns
}

// ApplyRotation rolls d one cell towards dir. If the destination holds an
// opponent's die, that die is captured and returned; the caller owns it
// from then on. Rolling off the board or onto one's own die is refused and
// leaves the board exactly as it was.
func (b *Board) ApplyRotation(d *die.Die, dir die.Direction) (*die.Die, error) {
	from := d.Cell()
	if b.grid[from] != d {
		panic(fmt.Sprintf("die %d is not on its own cell %s", d.ID(), move.ToLabel(from)))
	}
	to, ok := move.Neighbour(from, dir)
	if !ok {
		return nil, fmt.Errorf("%w: %s from %s", ErrOffBoard, dir, move.ToLabel(from))
	}
	occupant := b.grid[to]
	if occupant != nil && occupant.Owner() == d.Owner() {
		log.Warn().Str("cell", move.ToLabel(to)).Int("owner", d.Owner()).
			Msg("self-capture-rejected")
		return nil, fmt.Errorf("%w at %s", ErrSelfCapture, move.ToLabel(to))
	}
	var captured *die.Die
	if occupant != nil {
		captured = b.RemoveDie(to)
	}
	d.Rotate(dir)
	b.grid[from] = nil
	b.grid[to] = d
	return captured, nil
}

// validatePath checks a whole move before anything is mutated, so that a
// bad move can never leave the board half-applied.
func (b *Board) validatePath(d *die.Die, m move.Move) error {
	if m.Length() == 0 {
		return fmt.Errorf("%w: empty path", move.ErrBadMove)
	}
	cell := d.Cell()
	visited := uint64(1) << cell
	last := m.Length() - 1
	for i, dir := range m.Path() {
		next, ok := move.Neighbour(cell, dir)
		if !ok {
			return fmt.Errorf("%w: %s step %d", ErrOffBoard, m, i+1)
		}
		if visited&(1<<next) != 0 {
			return fmt.Errorf("%w: %s at %s", ErrPathRevisit, m, move.ToLabel(next))
		}
		visited |= 1 << next
		occupant := b.grid[next]
		if occupant != nil && occupant != d {
			if i < last {
				return fmt.Errorf("%w: %s at %s", ErrPathBlocked, m, move.ToLabel(next))
			}
			if occupant.Owner() == d.Owner() {
				log.Warn().Str("move", m.String()).Int("owner", d.Owner()).
					Msg("self-capture-rejected")
				return fmt.Errorf("%w: %s", ErrSelfCapture, m)
			}
		}
		cell = next
	}
	return nil
}

// SimulateMove rolls the die on the move's origin along its path. It
// returns the die captured by the final step, if any. The move is checked
// in full first; on error the board is untouched.
func (b *Board) SimulateMove(m move.Move) (*die.Die, error) {
	d := b.MustDieAt(m.Origin())
	if err := b.validatePath(d, m); err != nil {
		return nil, err
	}
	var captured *die.Die
	for _, dir := range m.Path() {
		c, err := b.ApplyRotation(d, dir)
		if err != nil {
			panic(fmt.Sprintf("validated move %s failed: %v", m, err))
		}
		captured = c
	}
	return captured, nil
}

// RevertMove undoes a move made with SimulateMove. The die is rolled back
// along the inverted path, which restores both its cell and orientation,
// and the captured die (if any) is put back where it was.
func (b *Board) RevertMove(m move.Move, originalCell int, captured *die.Die) {
	if m.Origin() != originalCell {
		panic(fmt.Sprintf("revert of %s expects origin %s", m, move.ToLabel(originalCell)))
	}
	c, err := b.SimulateMove(m.Inverse())
	if err != nil {
		panic(fmt.Sprintf("cannot revert %s: %v", m, err))
	}
	if c != nil {
		panic(fmt.Sprintf("reverting %s captured die %d", m, c.ID()))
	}
	if b.grid[originalCell] == nil {
		panic(fmt.Sprintf("revert of %s did not return to %s", m, move.ToLabel(originalCell)))
	}
	if captured != nil {
		b.AddDie(captured)
	}
}

// Apply simulates m and returns a function that reverts it. The returned
// function is safe to call more than once; only the first call reverts.
// Callers should defer it so the board is restored on every path out.
func (b *Board) Apply(m move.Move) (*die.Die, func(), error) {
	captured, err := b.SimulateMove(m)
	if err != nil {
		return nil, func() {}, err
	}
	reverted := false
	return captured, func() {
		if reverted {
			return
		}
		reverted = true
		b.RevertMove(m, m.Origin(), captured)
	}, nil
}

// Copy returns a deep copy of the board.
func (b *Board) Copy() *Board {
	c := New()
	for _, d := range b.grid {
		if d != nil {
			c.AddDie(d.Copy())
		}
	}
	return c
}

// Validate checks that the registries and the grid agree.
func (b *Board) Validate() error {
	onGrid := 0
	for cell, d := range b.grid {
		if d == nil {
			continue
		}
		onGrid++
		if d.Cell() != cell {
			return fmt.Errorf("die %d thinks it is at %d but sits at %d", d.ID(), d.Cell(), cell)
		}
		if b.registries[d.Owner()][d.ID()] != d {
			return fmt.Errorf("die %d at %s is not registered", d.ID(), move.ToLabel(cell))
		}
	}
	if onGrid != len(b.registries[0])+len(b.registries[1]) {
		return fmt.Errorf("grid holds %d dice, registries hold %d",
			onGrid, len(b.registries[0])+len(b.registries[1]))
	}
	return nil
}
