// Package search picks a move by building a shallow game tree on the live
// board. Every candidate is played, scored and recursed into, then taken
// back, so the board the search is handed is the board it gives back.
package search

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/pbnjay/memory"
	"github.com/rs/zerolog/log"

	"github.com/domino14/tumble/board"
	"github.com/domino14/tumble/config"
	"github.com/domino14/tumble/move"
	"github.com/domino14/tumble/movegen"
	"github.com/domino14/tumble/zobrist"
)

// WinScore is given to a move that ends the game. It must be larger than
// any sum of capture scores the tree can produce.
const WinScore = 1000

const (
	defaultDepth      = 2
	defaultNodeBudget = 200000

	// nodeBytes is a rough size of one retained tree node, move path
	// included.
	nodeBytes = 160
	// A single tree may use at most this share of system memory.
	fractionOfMemory = 0.25
)

var ErrNoLegalMoves = errors.New("no legal moves")

type Solver struct {
	movegen    movegen.MoveGenerator
	zobrist    *zobrist.Zobrist
	board      *board.Board
	depth      int
	adaptive   bool
	nodeBudget int
	verify     bool
	logStream  io.Writer

	lastTree *Tree
}

type Option func(*Solver)

// WithDepth fixes the search depth in plies.
func WithDepth(d int) Option {
	return func(s *Solver) {
		s.depth = d
		s.adaptive = false
	}
}

// WithMaxDepth lets the solver pick a depth up to d, shallower when there
// are many candidate moves. See DepthFor.
func WithMaxDepth(d int) Option {
	return func(s *Solver) {
		s.depth = d
		s.adaptive = true
	}
}

func WithNodeBudget(n int) Option {
	return func(s *Solver) {
		s.nodeBudget = n
	}
}

// WithLogStream makes Solve write a YAML dump of each tree it builds.
func WithLogStream(w io.Writer) Option {
	return func(s *Solver) {
		s.logStream = w
	}
}

// WithVerify hashes the board before and after every simulated move and
// panics if taking the move back did not restore it.
func WithVerify(v bool) Option {
	return func(s *Solver) {
		s.verify = v
	}
}

// OptionsFromConfig translates the search settings of cfg.
func OptionsFromConfig(cfg *config.Config) []Option {
	opts := []Option{
		WithNodeBudget(cfg.GetInt(config.ConfigNodeBudget)),
		WithVerify(cfg.GetBool(config.ConfigVerifyUndo)),
	}
	if cfg.GetBool(config.ConfigAdaptiveDepth) {
		opts = append(opts, WithMaxDepth(cfg.GetInt(config.ConfigSearchDepth)))
	} else {
		opts = append(opts, WithDepth(cfg.GetInt(config.ConfigSearchDepth)))
	}
	return opts
}

func NewSolver(mg movegen.MoveGenerator, opts ...Option) *Solver {
	s := &Solver{
		movegen:    mg,
		depth:      defaultDepth,
		nodeBudget: defaultNodeBudget,
	}
	for _, o := range opts {
		o(s)
	}
	if limit := memoryNodeLimit(); s.nodeBudget > limit {
		log.Info().Int("requested", s.nodeBudget).Int("limit", limit).
			Uint64("total-system-memory-bytes", memory.TotalMemory()).
			Msg("node-budget-clamped")
		s.nodeBudget = limit
	}
	if s.verify {
		s.zobrist = &zobrist.Zobrist{}
		s.zobrist.Initialize()
	}
	return s
}

// memoryNodeLimit is the largest node budget that fits in the share of
// system memory a tree may use.
func memoryNodeLimit() int {
	totalMem := memory.TotalMemory()
	if totalMem == 0 {
		return math.MaxInt
	}
	return int(fractionOfMemory * float64(totalMem) / nodeBytes)
}

// DepthFor returns the largest depth d, at most maxDepth and at least 1,
// for which candidates^d does not exceed budget.
func DepthFor(candidates, maxDepth, budget int) int {
	if maxDepth < 1 {
		return 1
	}
	if candidates <= 1 {
		return maxDepth
	}
	d, nodes := 1, candidates
	for d < maxDepth && nodes <= budget/candidates {
		nodes *= candidates
		d++
	}
	return d
}

// LastTree is the tree built by the most recent Solve, for inspection.
func (s *Solver) LastTree() *Tree {
	return s.lastTree
}

// Build grows a tree of the given depth from the position on b, with mover
// to play. b is borrowed for the duration of the call and handed back
// unchanged.
func (s *Solver) Build(ctx context.Context, b *board.Board, mover, depth int) (*Tree, error) {
	s.board = b
	defer func() { s.board = nil }()
	t := NewTree()
	t.depth = depth
	err := s.build(ctx, t, mover, RootID, depth)
	return t, err
}

func (s *Solver) build(ctx context.Context, t *Tree, mover int, id NodeID, depth int) error {
	if depth == 0 {
		return nil
	}
	for _, m := range s.movegen.GenAll(s.board, mover) {
		if id == RootID {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		stop, err := s.expand(ctx, t, mover, id, m, depth)
		if err != nil {
			return err
		}
		if stop {
			break
		}
	}
	return nil
}

// expand plays m from node id, scores it and recurses. It reports whether
// the move ended the game, in which case the rest of this ply is skipped.
func (s *Solver) expand(ctx context.Context, t *Tree, mover int, id NodeID, m move.Move, depth int) (bool, error) {
	var before uint64
	if s.verify {
		before = s.zobrist.Hash(s.board)
	}
	captured, undo, err := s.board.Apply(m)
	if err != nil {
		return false, fmt.Errorf("generated move %s: %w", m, err)
	}
	defer func() {
		undo()
		if s.verify {
			if after := s.zobrist.Hash(s.board); after != before {
				panic(fmt.Sprintf("board changed across %s: %x != %x", m, before, after))
			}
		}
	}()

	if over, winner := s.board.IsOver(); over {
		score := WinScore
		if winner != mover {
			score = -WinScore
		}
		n := t.Node(id)
		n.forbidden = true
		n.winner = winner
		t.dropChildren(id)
		child := t.addChild(id, m, score)
		t.Node(child).winner = winner
		log.Debug().Strs("line", t.Line(child)).Int("winner", winner).Msg("forced-outcome")
		return true, nil
	}

	child := t.addChild(id, m, 0)
	if captured != nil {
		if captured.Owner() != mover {
			t.Node(child).score++
		} else {
			t.Node(child).score--
		}
	}
	return false, s.build(ctx, t, 1-mover, child, depth-1)
}

// Solve returns the move mover should play on b.
func (s *Solver) Solve(ctx context.Context, b *board.Board, mover int) (move.Move, error) {
	candidates := len(s.movegen.GenAll(b, mover))
	if candidates == 0 {
		return move.Move{}, ErrNoLegalMoves
	}
	depth := s.depth
	if s.adaptive {
		depth = DepthFor(candidates, s.depth, s.nodeBudget)
	}
	log.Debug().Int("mover", mover).Int("candidates", candidates).Int("depth", depth).
		Msg("search-start")

	t, err := s.Build(ctx, b, mover, depth)
	s.lastTree = t
	if err != nil {
		return move.Move{}, err
	}
	if s.logStream != nil {
		if err := t.WriteYAML(s.logStream); err != nil {
			log.Err(err).Msg("search-trace-failed")
		}
	}
	best := t.GetBest(RootID)
	if best == nil {
		return move.Move{}, ErrNoLegalMoves
	}
	log.Debug().Str("move", best.Move().String()).Int("score", best.Score()).
		Int("nodes", t.Size()).Msg("search-done")
	return best.Move(), nil
}
