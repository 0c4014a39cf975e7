package move

import (
	"errors"
	"fmt"

	"github.com/domino14/tumble/die"
)

const (
	// BoardDim is the number of rows and columns on the grid.
	BoardDim = 8
	// NumCells is the number of cells on the grid.
	NumCells = BoardDim * BoardDim
)

var ErrBadLabel = errors.New("bad cell label")

// ToLabel converts a linear cell index into a label such as "A8". Index 0
// is the top-left cell, which is A8; index 63 is H1.
func ToLabel(cell int) string {
	if cell < 0 || cell >= NumCells {
		panic(fmt.Sprintf("cell %d is off the board", cell))
	}
	col := byte('A' + cell%BoardDim)
	row := byte('0' + BoardDim - cell/BoardDim)
	return string([]byte{col, row})
}

// ToIndex does the inverse of ToLabel.
func ToIndex(label string) (int, error) {
	if len(label) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrBadLabel, label)
	}
	col := int(label[0]) - 'A'
	row := int(label[1]) - '1'
	if col < 0 || col >= BoardDim || row < 0 || row >= BoardDim {
		return 0, fmt.Errorf("%w: %q", ErrBadLabel, label)
	}
	return col + BoardDim*(BoardDim-1-row), nil
}

// Neighbour returns the cell one step from cell towards dir, and false if
// that step would leave the grid.
func Neighbour(cell int, dir die.Direction) (int, bool) {
	switch dir {
	case die.Right:
		if cell%BoardDim == BoardDim-1 {
			return 0, false
		}
	case die.Left:
		if cell%BoardDim == 0 {
			return 0, false
		}
	}
	n := cell + dir.Offset()
	if n < 0 || n >= NumCells {
		return 0, false
	}
	return n, true
}
