package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/domino14/tumble/config"
	"github.com/domino14/tumble/protocol"
)

var (
	GitVersion string
)

func main() {
	cfg := &config.Config{}
	err := cfg.Load(os.Args[1:])
	if err != nil {
		panic(err)
	}

	// stdout belongs to the referee.
	log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	switch cfg.GetString(config.ConfigLogLevel) {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "disabled":
		zerolog.SetGlobalLevel(zerolog.Disabled)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	log.Debug().Msg("Debug logging is on")
	log.Info().Str("version", GitVersion).Interface("config", cfg.AllSettings()).Msg("loaded-config")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := protocol.Loop(ctx, cfg, os.Stdin, os.Stdout); err != nil {
		log.Err(err).Msg("engine-stopped")
		os.Exit(1)
	}
	log.Info().Msg("bye")
}
