// Package game runs a full game of dice between two players on top of a
// board.Board: turn order, legality of moves, and the end of the game.
package game

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/domino14/tumble/board"
	"github.com/domino14/tumble/move"
	"github.com/domino14/tumble/movegen"
)

type PlayState int

const (
	PlayStatePlaying PlayState = iota
	PlayStateGameOver
	// PlayStateStalled is a game that stopped without a winner, because
	// the player on turn could not move or a turn limit was reached.
	PlayStateStalled
)

func (p PlayState) String() string {
	switch p {
	case PlayStatePlaying:
		return "playing"
	case PlayStateGameOver:
		return "game-over"
	case PlayStateStalled:
		return "stalled"
	}
	return fmt.Sprintf("PlayState(%d)", int(p))
}

var (
	ErrGameOver    = errors.New("game is not in progress")
	ErrNotYourDie  = errors.New("die does not belong to the player on turn")
	ErrIllegalMove = errors.New("illegal move")
)

// Turn is one entry in a game's history.
type Turn struct {
	Player   int
	Move     move.Move
	Captured bool
}

// Game is the state of a game in progress. It owns its board.
type Game struct {
	board      *board.Board
	movegen    *movegen.PathEnumerator
	playing    PlayState
	onturn     int
	turnnum    int
	winner     int
	history    []Turn
	startState string
}

// NewGame starts a game on b with firstPlayer to move.
func NewGame(b *board.Board, firstPlayer int) *Game {
	g := &Game{
		board:      b,
		movegen:    movegen.NewPathEnumerator(),
		onturn:     firstPlayer,
		winner:     -1,
		startState: b.ExportState(),
	}
	g.checkOver()
	return g
}

func (g *Game) checkOver() {
	if over, winner := g.board.IsOver(); over {
		g.playing = PlayStateGameOver
		g.winner = winner
		log.Debug().Int("winner", winner).Int("turn", g.turnnum).Msg("game-over")
	}
}

// ValidateMove checks m against the player on turn: the die must be theirs
// and the path must be one of its legal rolls.
func (g *Game) ValidateMove(m move.Move) error {
	if g.playing != PlayStatePlaying {
		return ErrGameOver
	}
	d := g.board.DieAt(m.Origin())
	if d == nil {
		return fmt.Errorf("%w: no die at %s", ErrIllegalMove, move.ToLabel(m.Origin()))
	}
	if d.Owner() != g.onturn {
		return fmt.Errorf("%w: %s", ErrNotYourDie, m)
	}
	if m.Length() != d.Top() {
		return fmt.Errorf("%w: %s must roll %d cells", ErrIllegalMove, m, d.Top())
	}
	if !lo.Contains(g.movegen.GenPaths(g.board, d, d.Top()), m.Letters()) {
		return fmt.Errorf("%w: %s", ErrIllegalMove, m)
	}
	return nil
}

// PlayMove validates and plays m for the player on turn, then passes the
// turn to the other player.
func (g *Game) PlayMove(m move.Move) error {
	if err := g.ValidateMove(m); err != nil {
		return err
	}
	captured, err := g.board.SimulateMove(m)
	if err != nil {
		return err
	}
	g.history = append(g.history, Turn{Player: g.onturn, Move: m, Captured: captured != nil})
	g.onturn = 1 - g.onturn
	g.turnnum++
	g.checkOver()
	return nil
}

// Stall ends the game without a winner.
func (g *Game) Stall(reason string) {
	if g.playing != PlayStatePlaying {
		return
	}
	log.Debug().Str("reason", reason).Int("turn", g.turnnum).Msg("game-stalled")
	g.playing = PlayStateStalled
}

// LegalMoves returns every legal move for the player on turn.
func (g *Game) LegalMoves() []move.Move {
	if g.playing != PlayStatePlaying {
		return nil
	}
	return g.movegen.GenAll(g.board, g.onturn)
}

func (g *Game) Board() *board.Board { return g.board }
func (g *Game) Playing() PlayState  { return g.playing }
func (g *Game) PlayerOnTurn() int   { return g.onturn }
func (g *Game) Turn() int           { return g.turnnum }
func (g *Game) History() []Turn     { return g.history }

// Winner is the winning player once the game is over, and -1 otherwise.
func (g *Game) Winner() int { return g.winner }

// StartState is the exported board state the game began from.
func (g *Game) StartState() string { return g.startState }

// MoveStrings is the history as protocol move strings.
func (g *Game) MoveStrings() []string {
	return lo.Map(g.history, func(t Turn, _ int) string {
		return t.Move.String()
	})
}
