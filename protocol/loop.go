package protocol

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/domino14/tumble/config"
	"github.com/domino14/tumble/movegen"
	"github.com/domino14/tumble/search"
)

// Loop answers turns from in on out until in runs dry. A turn that cannot
// be read, or that leaves the engine with nothing to play, is logged and
// gets no answer.
func Loop(ctx context.Context, cfg *config.Config, in io.Reader, out io.Writer) error {
	player := cfg.GetInt(config.ConfigPlayer)
	opts := search.OptionsFromConfig(cfg)
	if path := cfg.GetString(config.ConfigSearchLog); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		opts = append(opts, search.WithLogStream(f))
	}
	solver := search.NewSolver(movegen.NewPathEnumerator(), opts...)
	tr := NewTurnReader(in)

	for turn := 1; ; turn++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		b, err := tr.ReadTurn()
		if errors.Is(err, io.EOF) {
			log.Info().Int("turns", turn-1).Msg("input-closed")
			return nil
		}
		if errors.Is(err, ErrMalformedTurn) {
			log.Error().Err(err).Int("turn", turn).Msg("turn-rejected")
			continue
		}
		if err != nil {
			return err
		}
		log.Debug().Int("turn", turn).Str("state", b.ExportState()).Msg("turn-read")

		m, err := solver.Solve(ctx, b, player)
		if errors.Is(err, search.ErrNoLegalMoves) {
			log.Warn().Int("turn", turn).Int("player", player).Msg("no-legal-moves")
			continue
		}
		if err != nil {
			return err
		}
		log.Info().Int("turn", turn).Str("move", m.String()).Msg("move-chosen")
		if err := WriteMove(out, m); err != nil {
			return err
		}
	}
}
