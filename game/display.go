package game

import (
	"fmt"
	"strings"

	"github.com/domino14/tumble/move"
)

// ToDisplayText draws the board with the top face of every die. Player 0's
// dice are shown as digits in brackets, player 1's in parentheses.
func (g *Game) ToDisplayText() string {
	var sb strings.Builder
	sb.WriteString("    A  B  C  D  E  F  G  H\n")
	for row := 0; row < move.BoardDim; row++ {
		fmt.Fprintf(&sb, "%d ", move.BoardDim-row)
		for col := 0; col < move.BoardDim; col++ {
			d := g.board.DieAt(row*move.BoardDim + col)
			switch {
			case d == nil:
				sb.WriteString(" . ")
			case d.Owner() == 0:
				fmt.Fprintf(&sb, "[%d]", d.Top())
			default:
				fmt.Fprintf(&sb, "(%d)", d.Top())
			}
		}
		sb.WriteByte('\n')
	}
	switch g.playing {
	case PlayStatePlaying:
		fmt.Fprintf(&sb, "Turn %d, player %d to move.\n", g.turnnum, g.onturn)
	case PlayStateGameOver:
		fmt.Fprintf(&sb, "Game is over. Player %d wins after %d turns.\n", g.winner, g.turnnum)
	default:
		fmt.Fprintf(&sb, "Game stalled after %d turns.\n", g.turnnum)
	}
	return sb.String()
}
