// Package protocol speaks the line-based referee protocol. Each turn the
// referee sends the number of dice on the board, then one line per die:
//
//	owner cell up front bottom back left right
//
// and the engine answers with a single move line such as "B7 DDR".
package protocol

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/domino14/tumble/board"
	"github.com/domino14/tumble/die"
	"github.com/domino14/tumble/move"
)

var ErrMalformedTurn = errors.New("malformed turn")

const dieFields = 8

// TurnReader reads whole turns from the referee.
type TurnReader struct {
	sc *bufio.Scanner
}

func NewTurnReader(r io.Reader) *TurnReader {
	return &TurnReader{sc: bufio.NewScanner(r)}
}

// nextLine returns the next non-blank line.
func (tr *TurnReader) nextLine() (string, error) {
	for tr.sc.Scan() {
		line := strings.TrimSpace(tr.sc.Text())
		if line != "" {
			return line, nil
		}
	}
	if err := tr.sc.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

// ReadTurn reads one turn and builds a fresh board from it. Every line of
// the turn is consumed before any of it is parsed, so a bad line fails the
// turn without throwing the reader out of step with the referee. It
// returns io.EOF when the input ends between turns.
func (tr *TurnReader) ReadTurn() (*board.Board, error) {
	header, err := tr.nextLine()
	if err != nil {
		return nil, err
	}
	n, err := strconv.Atoi(header)
	if err != nil || n < 0 || n > move.NumCells {
		return nil, fmt.Errorf("%w: bad dice count %q", ErrMalformedTurn, header)
	}
	lines := make([]string, 0, n)
	for len(lines) < n {
		line, err := tr.nextLine()
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: expected %d dice, got %d: %w",
				ErrMalformedTurn, n, len(lines), io.ErrUnexpectedEOF)
		}
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}

	dice := make([]*die.Die, 0, n)
	for i, line := range lines {
		d, err := parseDie(line)
		if err != nil {
			return nil, fmt.Errorf("%w: die %d: %w", ErrMalformedTurn, i+1, err)
		}
		dice = append(dice, d)
	}
	if dupes := lo.FindDuplicatesBy(dice, (*die.Die).Cell); len(dupes) > 0 {
		return nil, fmt.Errorf("%w: two dice on %s", ErrMalformedTurn, move.ToLabel(dupes[0].Cell()))
	}
	b := board.New()
	for _, d := range dice {
		b.AddDie(d)
	}
	return b, nil
}

func parseDie(line string) (*die.Die, error) {
	fields := strings.Fields(line)
	if len(fields) != dieFields {
		return nil, fmt.Errorf("want %d fields, got %d", dieFields, len(fields))
	}
	owner, err := strconv.Atoi(fields[0])
	if err != nil || owner < 0 || owner >= board.NumPlayers {
		return nil, fmt.Errorf("bad owner %q", fields[0])
	}
	cell, err := move.ToIndex(fields[1])
	if err != nil {
		return nil, err
	}
	var faces [6]int
	for i, f := range fields[2:] {
		v, err := strconv.Atoi(f)
		if err != nil || v < 1 || v > 6 {
			return nil, fmt.Errorf("%w: %q", die.ErrBadFace, f)
		}
		faces[i] = v
	}
	if len(lo.Uniq(faces[:])) != len(faces) {
		return nil, fmt.Errorf("%w: repeated face in %v", die.ErrBadFace, faces)
	}
	return die.New(cell, owner, die.Orientation{
		Up:     faces[0],
		Front:  faces[1],
		Bottom: faces[2],
		Back:   faces[3],
		Left:   faces[4],
		Right:  faces[5],
	}), nil
}

// WriteMove writes m as one protocol line.
func WriteMove(w io.Writer, m move.Move) error {
	_, err := fmt.Fprintln(w, m.ShortDescription())
	return err
}
