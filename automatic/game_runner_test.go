package automatic

import (
	"bytes"
	"context"
	"errors"
	"os"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"

	"github.com/domino14/tumble/board"
	"github.com/domino14/tumble/config"
	"github.com/domino14/tumble/game"
	"github.com/domino14/tumble/move"
	"github.com/domino14/tumble/stats"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.Disabled)
	os.Exit(m.Run())
}

func quickConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Set(config.ConfigSearchDepth, 1)
	cfg.Set(config.ConfigAdaptiveDepth, false)
	cfg.Set(config.ConfigAutoplayMaxTurns, 20)
	cfg.Set(config.ConfigAutoplaySeed, "fixed-seed")
	return &cfg
}

func TestPlayGameIsReproducible(t *testing.T) {
	is := is.New(t)
	cfg := quickConfig()
	ctx := context.Background()

	rec, err := NewGameRunner(cfg).PlayGame(ctx, "fixed-seed", 3)
	is.NoErr(err)
	again, err := NewGameRunner(cfg).PlayGame(ctx, "fixed-seed", 3)
	is.NoErr(err)
	is.Equal(rec, again)

	is.Equal(rec.ID, GameID(rec.Start, 3))
	is.True(rec.Turns <= 20)
	is.Equal(len(rec.Moves), rec.Turns)
	if rec.Winner < 0 {
		is.Equal(rec.State, game.PlayStateStalled.String())
	} else {
		is.Equal(rec.State, game.PlayStateGameOver.String())
	}
}

func TestRecordReplays(t *testing.T) {
	is := is.New(t)
	rec, err := NewGameRunner(quickConfig()).PlayGame(context.Background(), "fixed-seed", 0)
	is.NoErr(err)

	b, err := board.NewFromState(rec.Start)
	is.NoErr(err)
	is.Equal(b.NumDice(0), board.DicePerPlayer)
	is.Equal(b.NumDice(1), board.DicePerPlayer)
	g := game.NewGame(b, 0)
	for _, s := range rec.Moves {
		m, err := move.FromString(s)
		is.NoErr(err)
		is.NoErr(g.PlayMove(m))
	}
	is.Equal(g.Winner(), rec.Winner)
}

func TestGameSeeds(t *testing.T) {
	is := is.New(t)
	is.Equal(GameSeed("a", 1), GameSeed("a", 1))
	is.True(GameSeed("a", 1) != GameSeed("a", 2))
	is.True(GameSeed("a", 1) != GameSeed("b", 1))
	is.True(NewMasterSeed() != NewMasterSeed())
}

func TestStartCompVComp(t *testing.T) {
	is := is.New(t)
	var buf bytes.Buffer
	summary, err := StartCompVComp(context.Background(), quickConfig(), 6, 2, &buf)
	is.NoErr(err)
	is.Equal(summary.Games, 6)
	is.Equal(summary.Wins[0]+summary.Wins[1]+summary.Unfinished, 6)
	is.True(summary.MeanTurns > 0)
	is.True(summary.MeanMoveMillis >= 0)
	is.True(summary.WinRateLow <= summary.WinRate && summary.WinRate <= summary.WinRateHigh)
	is.Equal(IsPlaying.Value(), int64(0))
	is.Equal(CVCCounter.Value(), int64(6))

	analyzed, err := AnalyzeRecords(&buf)
	is.NoErr(err)
	is.Equal(analyzed.Games, summary.Games)
	is.Equal(analyzed.Wins, summary.Wins)
	is.Equal(analyzed.Unfinished, summary.Unfinished)
	is.True(stats.FuzzyEqual(analyzed.MeanTurns, summary.MeanTurns))
}

func TestStartCompVCompCancelled(t *testing.T) {
	is := is.New(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var buf bytes.Buffer
	summary, err := StartCompVComp(ctx, quickConfig(), 4, 2, &buf)
	is.True(errors.Is(err, context.Canceled))
	is.True(summary != nil)
	is.Equal(summary.Games, 0)
	is.Equal(buf.Len(), 0)
	is.Equal(IsPlaying.Value(), int64(0))
}

func TestStartCompVCompNoGames(t *testing.T) {
	is := is.New(t)
	var buf bytes.Buffer
	summary, err := StartCompVComp(context.Background(), quickConfig(), 0, 2, &buf)
	is.NoErr(err)
	is.Equal(summary.Games, 0)
	is.Equal(summary.Unfinished, 0)
	is.Equal(buf.Len(), 0)
	is.Equal(CVCCounter.Value(), int64(0))
}

func TestSummary(t *testing.T) {
	is := is.New(t)
	sb := &summaryBuilder{}
	for _, rec := range []*Record{
		{Winner: 0, Turns: 10, Captures: 8},
		{Winner: 0, Turns: 20, Captures: 8},
		{Winner: 1, Turns: 30, Captures: 9},
		{Winner: -1, Turns: 40, Captures: 3},
	} {
		sb.add(rec)
	}
	s := sb.finish()
	is.Equal(s.Games, 4)
	is.Equal(s.Wins, [2]int{2, 1})
	is.Equal(s.Unfinished, 1)
	is.True(stats.FuzzyEqual(s.MeanTurns, 25))
	is.True(stats.FuzzyEqual(s.MeanCaptures, 7))
	is.True(s.WinRate > 0.66 && s.WinRate < 0.67)
}
