package game

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"

	"github.com/domino14/tumble/board"
	"github.com/domino14/tumble/move"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.Disabled)
	os.Exit(m.Run())
}

func newGame(t *testing.T, state string) *Game {
	t.Helper()
	b, err := board.NewFromState(state)
	if err != nil {
		t.Fatal(err)
	}
	return NewGame(b, 0)
}

func mustMove(t *testing.T, s string) move.Move {
	t.Helper()
	m, err := move.FromString(s)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func TestPlayAlternatesTurns(t *testing.T) {
	is := is.New(t)
	g := newGame(t, "C60315C51124")
	is.Equal(g.Playing(), PlayStatePlaying)
	is.Equal(g.PlayerOnTurn(), 0)

	is.NoErr(g.PlayMove(mustMove(t, "C6 RRR")))
	is.Equal(g.PlayerOnTurn(), 1)
	is.Equal(g.Turn(), 1)
	is.Equal(len(g.History()), 1)
	is.Equal(g.History()[0].Player, 0)
	is.True(!g.History()[0].Captured)
	is.Equal(g.MoveStrings(), []string{"C6 RRR"})
	is.Equal(g.StartState(), "C60315C51124")
}

func TestIllegalMoves(t *testing.T) {
	is := is.New(t)
	g := newGame(t, "C60315C51124")
	before := g.Board().ExportState()

	is.True(errors.Is(g.PlayMove(mustMove(t, "C5 D")), ErrNotYourDie))
	is.True(errors.Is(g.PlayMove(mustMove(t, "C6 R")), ErrIllegalMove))   // rolls 3, not 1
	is.True(errors.Is(g.PlayMove(mustMove(t, "C6 DDD")), ErrIllegalMove)) // crosses C5
	is.True(errors.Is(g.PlayMove(mustMove(t, "C6 RLR")), ErrIllegalMove)) // doubles back
	is.True(errors.Is(g.PlayMove(mustMove(t, "A1 UUU")), ErrIllegalMove)) // no die there
	is.Equal(g.Board().ExportState(), before)
	is.Equal(g.Turn(), 0)
}

func TestCaptureEndsGame(t *testing.T) {
	is := is.New(t)
	g := newGame(t, "C60315C51124")
	is.NoErr(g.PlayMove(mustMove(t, "C6 RDL")))
	is.True(g.History()[0].Captured)
	is.Equal(g.Playing(), PlayStateGameOver)
	is.Equal(g.Winner(), 0)
	is.Equal(g.LegalMoves(), nil)
	is.True(errors.Is(g.PlayMove(mustMove(t, "C5 U")), ErrGameOver))
	is.True(strings.Contains(g.ToDisplayText(), "Player 0 wins after 1 turns"))
}

func TestStall(t *testing.T) {
	is := is.New(t)
	g := newGame(t, "C60315C51124")
	g.Stall("turn-limit")
	is.Equal(g.Playing(), PlayStateStalled)
	is.Equal(g.Winner(), -1)
	is.Equal(g.Playing().String(), "stalled")
}

func TestOverFromTheStart(t *testing.T) {
	is := is.New(t)
	g := newGame(t, "C60315")
	is.Equal(g.Playing(), PlayStateGameOver)
	is.Equal(g.Winner(), 0)
}

func TestDisplay(t *testing.T) {
	is := is.New(t)
	g := newGame(t, "C60315C51124")
	text := g.ToDisplayText()
	lines := strings.Split(text, "\n")
	is.Equal(lines[0], "    A  B  C  D  E  F  G  H")
	is.Equal(lines[3], "6  .  . [3] .  .  .  .  . ")
	is.Equal(lines[4], "5  .  . (1) .  .  .  .  . ")
	is.True(strings.Contains(text, "Turn 0, player 0 to move."))
}
