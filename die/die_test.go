package die

import (
	"errors"
	"sort"
	"testing"

	"github.com/matryer/is"
)

func TestRotateThenOppositeRestores(t *testing.T) {
	is := is.New(t)
	starts := []Orientation{
		Standard,
		{Up: 6, Front: 5, Bottom: 1, Back: 2, Left: 3, Right: 4},
		{Up: 1, Front: 2, Bottom: 6, Back: 5, Left: 3, Right: 4},
	}
	for _, o := range starts {
		for _, dir := range Directions {
			d := New(27, 0, o)
			d.Rotate(dir)
			is.Equal(d.Cell(), 27+dir.Offset())
			d.Rotate(dir.Opposite())
			is.Equal(d.Cell(), 27)
			is.Equal(d.Orientation(), o)
			is.Equal(d.ID(), 27)
		}
	}
}

func TestRollPermutations(t *testing.T) {
	is := is.New(t)
	o := Orientation{Up: 1, Front: 2, Bottom: 3, Back: 4, Left: 5, Right: 6}

	up := o
	up.Roll(Up)
	is.Equal(up, Orientation{Up: 2, Front: 3, Bottom: 4, Back: 1, Left: 5, Right: 6})

	down := o
	down.Roll(Down)
	is.Equal(down, Orientation{Up: 4, Front: 1, Bottom: 2, Back: 3, Left: 5, Right: 6})

	left := o
	left.Roll(Left)
	is.Equal(left, Orientation{Up: 6, Front: 2, Bottom: 5, Back: 4, Left: 1, Right: 3})

	right := o
	right.Roll(Right)
	is.Equal(right, Orientation{Up: 5, Front: 2, Bottom: 6, Back: 4, Left: 3, Right: 1})
}

func TestRollKeepsFaceMultiset(t *testing.T) {
	is := is.New(t)
	o := Standard
	want := o.Faces()
	sort.Ints(want[:])
	// a long, irregular walk through the orientation space
	seq := []Direction{Up, Up, Right, Down, Left, Left, Up, Right, Right, Down, Down, Down}
	for _, dir := range seq {
		o.Roll(dir)
		got := o.Faces()
		sort.Ints(got[:])
		is.Equal(got, want)
	}
}

func TestFourRollsIsIdentity(t *testing.T) {
	is := is.New(t)
	for _, dir := range Directions {
		o := Standard
		for i := 0; i < 4; i++ {
			o.Roll(dir)
		}
		is.Equal(o, Standard)
	}
}

func TestNewFromTopFrontRight(t *testing.T) {
	is := is.New(t)
	d, err := NewFromTopFrontRight(10, 1, 3, 1, 5)
	is.NoErr(err)
	is.Equal(d.Orientation(), Standard)
	is.Equal(d.Owner(), 1)
	is.Equal(d.ID(), 10)

	d, err = NewFromTopFrontRight(0, 0, 6, 5, 4)
	is.NoErr(err)
	is.Equal(d.Orientation(), Orientation{Up: 6, Front: 5, Bottom: 1, Back: 2, Left: 3, Right: 4})

	_, err = NewFromTopFrontRight(10, 1, 7, 1, 4)
	is.True(errors.Is(err, ErrBadFace))
	_, err = NewFromTopFrontRight(10, 1, 3, 0, 4)
	is.True(errors.Is(err, ErrBadFace))
	// 4 is under the 3, so it cannot also face front
	_, err = NewFromTopFrontRight(10, 1, 3, 4, 5)
	is.True(errors.Is(err, ErrBadOrientation))
	is.True(!errors.Is(err, ErrBadFace))
	_, err = NewFromTopFrontRight(10, 1, 3, 1, 6)
	is.True(errors.Is(err, ErrBadOrientation))
	_, err = NewFromTopFrontRight(10, 1, 3, 1, 1)
	is.True(errors.Is(err, ErrBadOrientation))
}

func TestOppositeFacesAddToSeven(t *testing.T) {
	is := is.New(t)
	for f := 1; f <= 6; f++ {
		o, err := OppositeFace(f)
		is.NoErr(err)
		is.Equal(f+o, 7)
	}
	_, err := OppositeFace(0)
	is.True(errors.Is(err, ErrBadFace))
}

// Every orientation a real die can reach by rolling must be rebuilt
// exactly from its three visible faces.
func TestEveryReachableOrientationRebuilds(t *testing.T) {
	is := is.New(t)
	seen := map[Orientation]bool{Standard: true}
	frontier := []Orientation{Standard}
	for len(frontier) > 0 {
		o := frontier[len(frontier)-1]
		frontier = frontier[:len(frontier)-1]
		d, err := NewFromTopFrontRight(0, 0, o.Up, o.Front, o.Right)
		is.NoErr(err)
		is.Equal(d.Orientation(), o)
		for _, dir := range Directions {
			n := o
			n.Roll(dir)
			if !seen[n] {
				seen[n] = true
				frontier = append(frontier, n)
			}
		}
	}
	is.Equal(len(seen), 24)
}

func TestDirections(t *testing.T) {
	is := is.New(t)
	for _, dir := range Directions {
		is.Equal(dir.Opposite().Opposite(), dir)
		is.Equal(dir.Offset(), -dir.Opposite().Offset())
		parsed, err := DirectionFromLetter(dir.Letter())
		is.NoErr(err)
		is.Equal(parsed, dir)
	}
	_, err := DirectionFromLetter('X')
	is.True(errors.Is(err, ErrBadDirection))
}

func TestCopyIsIndependent(t *testing.T) {
	is := is.New(t)
	d := New(20, 0, Standard)
	c := d.Copy()
	c.Rotate(Right)
	is.Equal(d.Cell(), 20)
	is.Equal(d.Orientation(), Standard)
	is.Equal(c.ID(), 20)
}
