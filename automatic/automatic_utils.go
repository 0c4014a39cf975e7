package automatic

// Computer vs computer games, run in parallel.

import (
	"context"
	"errors"
	"expvar"
	"io"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/domino14/tumble/config"
	"github.com/domino14/tumble/stats"
)

// confidence is the width, in percent, of the reported win-rate interval.
const confidence = 95

var (
	CVCCounter *expvar.Int
	IsPlaying  *expvar.Int

	ErrAlreadyPlaying = errors.New("games are already being played, please wait till complete")
)

func init() {
	CVCCounter = expvar.NewInt("cvcCounter")
	IsPlaying = expvar.NewInt("isPlaying")
}

type Job struct {
	Index int
}

// Summary describes a set of self-play games. The win rate is player 0's
// share of the games that had a winner.
type Summary struct {
	Games          int     `yaml:"games"`
	Wins           [2]int  `yaml:"wins,flow"`
	Unfinished     int     `yaml:"unfinished"`
	MeanTurns      float64 `yaml:"mean-turns"`
	StdevTurns     float64 `yaml:"stdev-turns"`
	MeanCaptures   float64 `yaml:"mean-captures"`
	MeanMoveMillis float64 `yaml:"mean-move-millis,omitempty"`
	WinRate        float64 `yaml:"win-rate"`
	WinRateLow     float64 `yaml:"win-rate-low"`
	WinRateHigh    float64 `yaml:"win-rate-high"`
}

type summaryBuilder struct {
	s        Summary
	turns    []float64
	captures stats.Statistic
}

func (sb *summaryBuilder) add(rec *Record) {
	sb.s.Games++
	if rec.Winner >= 0 {
		sb.s.Wins[rec.Winner]++
	} else {
		sb.s.Unfinished++
	}
	sb.turns = append(sb.turns, float64(rec.Turns))
	sb.captures.Push(float64(rec.Captures))
}

func (sb *summaryBuilder) finish() *Summary {
	s := sb.s
	s.MeanTurns, s.StdevTurns = stats.MeanStdev(sb.turns)
	s.MeanCaptures = sb.captures.Mean()
	s.WinRate, s.WinRateLow, s.WinRateHigh = stats.WinRate(s.Wins[0], s.Wins[0]+s.Wins[1], confidence)
	return &s
}

// StartCompVComp plays numGames games on threads workers and writes a YAML
// record of each to w as it finishes. If ctx is cancelled, games in
// progress are abandoned and the summary covers only the finished ones.
func StartCompVComp(ctx context.Context, cfg *config.Config, numGames, threads int,
	w io.Writer) (*Summary, error) {

	if IsPlaying.Value() > 0 {
		return nil, ErrAlreadyPlaying
	}
	if threads < 1 {
		threads = 1
	}
	master := cfg.GetString(config.ConfigAutoplaySeed)
	if master == "" {
		master = NewMasterSeed()
	}
	log.Info().Int("games", numGames).Int("threads", threads).Str("seed", master).
		Msg("autoplay-starting")

	CVCCounter.Set(0)
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	jobs := make(chan Job, 100)
	records := make(chan *Record, threads)
	moveTimes := make([]stats.Statistic, threads)

	g.Go(func() error {
		defer close(jobs)
		for i := 0; i < numGames; i++ {
			select {
			case jobs <- Job{Index: i}:
			case <-gctx.Done():
				log.Info().Int("queued", i).Msg("got-stop-signal")
				return gctx.Err()
			}
		}
		return nil
	})
	for t := 0; t < threads; t++ {
		t := t
		g.Go(func() error {
			IsPlaying.Add(1)
			defer IsPlaying.Add(-1)
			r := NewGameRunner(cfg)
			defer func() { moveTimes[t] = r.moveTimes }()
			for job := range jobs {
				rec, err := r.PlayGame(gctx, master, job.Index)
				if err != nil {
					return err
				}
				select {
				case records <- rec:
					CVCCounter.Add(1)
				case <-gctx.Done():
					return gctx.Err()
				}
			}
			return nil
		})
	}
	go func() {
		g.Wait()
		close(records)
	}()

	enc := yaml.NewEncoder(w)
	sb := &summaryBuilder{}
	var writeErr error
	for rec := range records {
		if writeErr != nil {
			continue
		}
		if err := enc.Encode(rec); err != nil {
			writeErr = err
			cancel()
			continue
		}
		sb.add(rec)
	}
	err := g.Wait()
	if writeErr != nil {
		return nil, writeErr
	}
	// Closing an encoder that never wrote a document fails, since there is
	// no stream to end.
	if sb.s.Games > 0 {
		if cerr := enc.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}

	var times stats.Statistic
	for i := range moveTimes {
		times.Merge(&moveTimes[i])
	}
	summary := sb.finish()
	summary.MeanMoveMillis = times.Mean()
	log.Info().Int("games", summary.Games).Ints("wins", summary.Wins[:]).
		Int("unfinished", summary.Unfinished).Float64("win-rate", summary.WinRate).
		Msg("autoplay-finished")
	return summary, err
}
