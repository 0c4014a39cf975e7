// Package die models a single oriented die: which value faces which way,
// where it stands on the grid, and who owns it.
//
// Seen from above, with the grid's row 8 at the top:
//
//	       [Front ]
//	[Left ][Up    ][Right]
//	       [Back  ]
//	       [Bottom]
//
// Rolling a die towards a direction tips it over one edge, so four of its
// faces cycle and the two faces on the rolling axis stay put.
package die

import (
	"errors"
	"fmt"
)

// Direction is one of the four grid directions a die can roll in.
type Direction uint8

const (
	Up Direction = iota
	Right
	Down
	Left
)

// NumDirections is the number of distinct roll directions.
const NumDirections = 4

// Directions lists every direction in enum order.
var Directions = [NumDirections]Direction{Up, Right, Down, Left}

var (
	ErrBadFace        = errors.New("face value must be between 1 and 6")
	ErrBadOrientation = errors.New("faces do not form a die")
	ErrBadDirection   = errors.New("unknown direction letter")
)

// Opposite returns the direction that undoes a roll in d.
func (d Direction) Opposite() Direction {
	return (d + 2) % NumDirections
}

// Offset is the change in linear cell index caused by one roll in d.
func (d Direction) Offset() int {
	switch d {
	case Up:
		return -8
	case Down:
		return 8
	case Left:
		return -1
	case Right:
		return 1
	}
	panic(fmt.Sprintf("unexpected direction %d", d))
}

// Letter returns the protocol letter for d.
func (d Direction) Letter() byte {
	return "URDL"[d]
}

func (d Direction) String() string {
	return string(d.Letter())
}

// DirectionFromLetter parses one of U, R, D, L.
func DirectionFromLetter(l byte) (Direction, error) {
	switch l {
	case 'U':
		return Up, nil
	case 'R':
		return Right, nil
	case 'D':
		return Down, nil
	case 'L':
		return Left, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrBadDirection, l)
}

// OppositeFace returns the value printed opposite to face. Opposite faces
// of a die add up to seven.
func OppositeFace(face int) (int, error) {
	if face < 1 || face > 6 {
		return 0, fmt.Errorf("%w: %d", ErrBadFace, face)
	}
	return 7 - face, nil
}

// Orientation holds the value showing on each of the six faces.
type Orientation struct {
	Up     int
	Front  int
	Bottom int
	Back   int
	Left   int
	Right  int
}

// Roll permutes the faces as if the die tipped over towards d.
func (o *Orientation) Roll(d Direction) {
	switch d {
	case Up:
		o.Up, o.Front, o.Bottom, o.Back = o.Front, o.Bottom, o.Back, o.Up
	case Down:
		o.Up, o.Back, o.Bottom, o.Front = o.Back, o.Bottom, o.Front, o.Up
	case Left:
		o.Up, o.Right, o.Bottom, o.Left = o.Right, o.Bottom, o.Left, o.Up
	case Right:
		o.Up, o.Left, o.Bottom, o.Right = o.Left, o.Bottom, o.Right, o.Up
	}
}

// Faces returns the values in Up, Front, Bottom, Back, Left, Right order.
func (o Orientation) Faces() [6]int {
	return [6]int{o.Up, o.Front, o.Bottom, o.Back, o.Left, o.Right}
}

// Standard is a right-handed die with 3 on top and 1 facing front.
var Standard = Orientation{Up: 3, Front: 1, Bottom: 4, Back: 6, Left: 2, Right: 5}

// Die is a single die on the board.
type Die struct {
	id     int
	owner  int
	cell   int
	orient Orientation
}

// New creates a die at cell. The cell it starts on becomes its identity for
// the rest of its life.
func New(cell, owner int, o Orientation) *Die {
	return &Die{id: cell, owner: owner, cell: cell, orient: o}
}

// NewFromTopFrontRight builds a die from its three visible faces, deriving
// the hidden ones as their opposites. The three faces must lie on three
// different axes.
func NewFromTopFrontRight(cell, owner, up, front, right int) (*Die, error) {
	bottom, err := OppositeFace(up)
	if err != nil {
		return nil, err
	}
	back, err := OppositeFace(front)
	if err != nil {
		return nil, err
	}
	left, err := OppositeFace(right)
	if err != nil {
		return nil, err
	}
	if front == up || front == bottom || right == up || right == bottom || right == front || right == back {
		return nil, fmt.Errorf("%w: top %d front %d right %d share an axis", ErrBadOrientation, up, front, right)
	}
	return New(cell, owner, Orientation{
		Up: up, Front: front, Bottom: bottom, Back: back, Left: left, Right: right,
	}), nil
}

// Rotate rolls the die one cell towards d. There is no bounds checking;
// the caller must already know the move is legal.
func (d *Die) Rotate(dir Direction) {
	d.cell += dir.Offset()
	d.orient.Roll(dir)
}

func (d *Die) ID() int                  { return d.id }
func (d *Die) Owner() int               { return d.owner }
func (d *Die) Cell() int                { return d.cell }
func (d *Die) Orientation() Orientation { return d.orient }
func (d *Die) Top() int                 { return d.orient.Up }
func (d *Die) Front() int               { return d.orient.Front }
func (d *Die) Right() int               { return d.orient.Right }

// Copy returns an independent copy of the die, identity included.
func (d *Die) Copy() *Die {
	c := *d
	return &c
}

func (d *Die) String() string {
	return fmt.Sprintf("<die id: %d owner: %d cell: %d faces: %v>",
		d.id, d.owner, d.cell, d.orient.Faces())
}
