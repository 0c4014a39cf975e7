package move

import (
	"errors"
	"fmt"
	"strings"

	"github.com/domino14/tumble/die"
)

var ErrBadMove = errors.New("bad move string")

// Move is a die roll: the cell the die starts on and the directions it
// rolls in, in order. It is a value type; moves are cheap to copy.
type Move struct {
	origin int
	path   []die.Direction
}

// New creates a move. The path slice is copied.
func New(origin int, path []die.Direction) Move {
	p := make([]die.Direction, len(path))
	copy(p, path)
	return Move{origin: origin, path: p}
}

// FromLetters creates a move from an origin cell and a string such as "DDR".
func FromLetters(origin int, letters string) (Move, error) {
	path := make([]die.Direction, len(letters))
	for i := 0; i < len(letters); i++ {
		d, err := die.DirectionFromLetter(letters[i])
		if err != nil {
			return Move{}, err
		}
		path[i] = d
	}
	return Move{origin: origin, path: path}, nil
}

// FromString parses a move string such as "B7 DDR".
func FromString(s string) (Move, error) {
	fields := strings.Fields(s)
	if len(fields) != 2 {
		return Move{}, fmt.Errorf("%w: %q", ErrBadMove, s)
	}
	origin, err := ToIndex(fields[0])
	if err != nil {
		return Move{}, err
	}
	m, err := FromLetters(origin, fields[1])
	if err != nil {
		return Move{}, fmt.Errorf("%w: %w", ErrBadMove, err)
	}
	return m, nil
}

func (m Move) Origin() int { return m.origin }

// Path returns the directions of the roll. Do not modify the result.
func (m Move) Path() []die.Direction { return m.path }

// Length is the number of cells the die travels.
func (m Move) Length() int { return len(m.path) }

// Letters returns the path as direction letters, e.g. "DDR".
func (m Move) Letters() string {
	var sb strings.Builder
	sb.Grow(len(m.path))
	for _, d := range m.path {
		sb.WriteByte(d.Letter())
	}
	return sb.String()
}

// Destination is the cell the die ends up on, assuming the path stays on
// the grid.
func (m Move) Destination() int {
	cell := m.origin
	for _, d := range m.path {
		cell += d.Offset()
	}
	return cell
}

// Inverse returns the move that rolls the die back from the destination
// to the origin: the path reversed, and each direction inverted.
func (m Move) Inverse() Move {
	n := len(m.path)
	path := make([]die.Direction, n)
	for i, d := range m.path {
		path[n-1-i] = d.Opposite()
	}
	return Move{origin: m.Destination(), path: path}
}

// ShortDescription is the protocol form of the move, e.g. "B7 DDR".
func (m Move) ShortDescription() string {
	return ToLabel(m.origin) + " " + m.Letters()
}

func (m Move) String() string {
	return m.ShortDescription()
}

// IsZero is true for the zero Move, which does not describe a roll.
func (m Move) IsZero() bool {
	return len(m.path) == 0
}
