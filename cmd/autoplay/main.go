// autoplay runs self-play games and prints a summary. With the arguments
// "analyze <file>" it summarises a file of game records instead.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/domino14/tumble/automatic"
	"github.com/domino14/tumble/config"
)

func main() {
	cfg := &config.Config{}
	err := cfg.Load(os.Args[1:])
	if err != nil {
		panic(err)
	}

	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	switch cfg.GetString(config.ConfigLogLevel) {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "disabled":
		zerolog.SetGlobalLevel(zerolog.Disabled)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	var summary *automatic.Summary
	if args := cfg.Args(); len(args) == 2 && args[0] == "analyze" {
		summary, err = automatic.AnalyzeLogFile(args[1])
	} else {
		summary, err = autoplay(cfg)
	}
	if err != nil {
		log.Err(err).Msg("autoplay-failed")
	}
	if summary != nil {
		out, _ := yaml.Marshal(summary)
		os.Stdout.Write(out)
	}
	if err != nil {
		os.Exit(1)
	}
}

func autoplay(cfg *config.Config) (*automatic.Summary, error) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	path := cfg.GetString(config.ConfigAutoplayOutput)
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	log.Info().Str("output", path).Msg("writing-game-records")
	return automatic.StartCompVComp(ctx, cfg,
		cfg.GetInt(config.ConfigAutoplayGames),
		cfg.GetInt(config.ConfigAutoplayThreads), f)
}
