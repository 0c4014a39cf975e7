// Package automatic plays the engine against itself. Games start from a
// randomised standard layout and are recorded as YAML documents, one per
// game, for later analysis.
package automatic

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/cespare/xxhash"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"lukechampine.com/frand"

	"github.com/domino14/tumble/board"
	"github.com/domino14/tumble/config"
	"github.com/domino14/tumble/game"
	"github.com/domino14/tumble/movegen"
	"github.com/domino14/tumble/search"
	"github.com/domino14/tumble/stats"
)

// Record is what gets written out for every finished game.
type Record struct {
	ID       string   `yaml:"id"`
	Winner   int      `yaml:"winner"`
	Turns    int      `yaml:"turns"`
	Captures int      `yaml:"captures"`
	State    string   `yaml:"state"`
	Moves    []string `yaml:"moves,flow"`
	Start    string   `yaml:"start"`
}

// GameRunner plays games between two solvers.
type GameRunner struct {
	game     *game.Game
	config   *config.Config
	solvers  [board.NumPlayers]*search.Solver
	maxTurns int

	moveTimes stats.Statistic
}

// NewGameRunner sets up both players with the search settings of cfg.
func NewGameRunner(cfg *config.Config) *GameRunner {
	r := &GameRunner{config: cfg, maxTurns: cfg.GetInt(config.ConfigAutoplayMaxTurns)}
	opts := search.OptionsFromConfig(cfg)
	for p := range r.solvers {
		r.solvers[p] = search.NewSolver(movegen.NewPathEnumerator(), opts...)
	}
	return r
}

func (r *GameRunner) StartGame(b *board.Board) {
	r.game = game.NewGame(b, 0)
}

func (r *GameRunner) Game() *game.Game {
	return r.game
}

// PlayBestTurn lets the player on turn search and play. A player with no
// legal move stalls the game.
func (r *GameRunner) PlayBestTurn(ctx context.Context) error {
	p := r.game.PlayerOnTurn()
	start := time.Now()
	m, err := r.solvers[p].Solve(ctx, r.game.Board(), p)
	r.moveTimes.Push(float64(time.Since(start).Microseconds()) / 1000)
	if errors.Is(err, search.ErrNoLegalMoves) {
		r.game.Stall("no-legal-moves")
		return nil
	}
	if err != nil {
		return err
	}
	return r.game.PlayMove(m)
}

// PlayFull plays the current game to the end or to the turn limit.
func (r *GameRunner) PlayFull(ctx context.Context) error {
	for r.game.Playing() == game.PlayStatePlaying {
		if r.game.Turn() >= r.maxTurns {
			r.game.Stall("turn-limit")
			break
		}
		if err := r.PlayBestTurn(ctx); err != nil {
			return err
		}
	}
	return nil
}

// PlayGame plays game number index of the run seeded by master.
func (r *GameRunner) PlayGame(ctx context.Context, master string, index int) (*Record, error) {
	seed := GameSeed(master, index)
	r.StartGame(board.StandardLayout(frand.NewCustom(seed[:], 1024, 12)))
	if err := r.PlayFull(ctx); err != nil {
		return nil, err
	}
	rec := r.Record(index)
	if e := log.Debug(); e.Enabled() {
		e.Str("id", rec.ID).Str("board", "\n"+r.game.ToDisplayText()).Msg("game-finished")
	}
	return rec, nil
}

// Record summarises the current game.
func (r *GameRunner) Record(index int) *Record {
	captures := lo.CountBy(r.game.History(), func(t game.Turn) bool {
		return t.Captured
	})
	return &Record{
		ID:       GameID(r.game.StartState(), index),
		Winner:   r.game.Winner(),
		Turns:    r.game.Turn(),
		Captures: captures,
		State:    r.game.Playing().String(),
		Moves:    r.game.MoveStrings(),
		Start:    r.game.StartState(),
	}
}

// GameID identifies a game by where it started and its place in the run.
func GameID(start string, index int) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(start+"/"+strconv.Itoa(index)))
}
