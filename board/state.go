package board

import (
	"errors"
	"fmt"
	"strings"

	"github.com/domino14/tumble/die"
	"github.com/domino14/tumble/move"
)

// A serialized die is its cell label, owner digit, and top, front and
// right faces, e.g. "B71315". Each hidden face is the opposite of a
// visible one.
const stateFieldWidth = 6

var ErrBadState = errors.New("bad board state")

// ExportState serializes the board, one die per occupied cell in ascending
// cell order.
func (b *Board) ExportState() string {
	var sb strings.Builder
	for cell, d := range b.grid {
		if d == nil {
			continue
		}
		sb.WriteString(move.ToLabel(cell))
		sb.WriteByte(byte('0' + d.Owner()))
		sb.WriteByte(byte('0' + d.Top()))
		sb.WriteByte(byte('0' + d.Front()))
		sb.WriteByte(byte('0' + d.Right()))
	}
	return sb.String()
}

func digit(c byte) (int, bool) {
	if c < '0' || c > '9' {
		return 0, false
	}
	return int(c - '0'), true
}

// NewFromState builds a board from the output of ExportState. Each die
// takes the cell it is placed on as its identity.
func NewFromState(state string) (*Board, error) {
	if len(state)%stateFieldWidth != 0 {
		return nil, fmt.Errorf("%w: length %d is not a multiple of %d",
			ErrBadState, len(state), stateFieldWidth)
	}
	b := New()
	for i := 0; i < len(state); i += stateFieldWidth {
		field := state[i : i+stateFieldWidth]
		cell, err := move.ToIndex(field[0:2])
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrBadState, err)
		}
		var vals [4]int
		for j := range vals {
			v, ok := digit(field[2+j])
			if !ok {
				return nil, fmt.Errorf("%w: %q is not a digit in %q", ErrBadState, field[2+j], field)
			}
			vals[j] = v
		}
		owner := vals[0]
		if owner >= NumPlayers {
			return nil, fmt.Errorf("%w: bad owner %d in %q", ErrBadState, owner, field)
		}
		d, err := die.NewFromTopFrontRight(cell, owner, vals[1], vals[2], vals[3])
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrBadState, err)
		}
		if b.grid[cell] != nil {
			return nil, fmt.Errorf("%w: two dice on %s", ErrBadState, field[0:2])
		}
		b.AddDie(d)
	}
	return b, nil
}
