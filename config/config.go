package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	ConfigLogLevel         = "log-level"
	ConfigPlayer           = "player"
	ConfigSearchDepth      = "search-depth"
	ConfigAdaptiveDepth    = "adaptive-depth"
	ConfigNodeBudget       = "node-budget"
	ConfigSearchLog        = "search-log"
	ConfigVerifyUndo       = "verify-undo"
	ConfigAutoplayGames    = "autoplay-games"
	ConfigAutoplayThreads  = "autoplay-threads"
	ConfigAutoplayMaxTurns = "autoplay-max-turns"
	ConfigAutoplayOutput   = "autoplay-output"
	ConfigAutoplaySeed     = "autoplay-seed"
)

// Config wraps a viper instance. Flags take precedence over TUMBLE_*
// environment variables, which take precedence over defaults.
type Config struct {
	viper.Viper

	args []string
}

func (c *Config) setDefaults() {
	c.SetDefault(ConfigLogLevel, "info")
	c.SetDefault(ConfigPlayer, 0)
	c.SetDefault(ConfigSearchDepth, 2)
	c.SetDefault(ConfigAdaptiveDepth, true)
	c.SetDefault(ConfigNodeBudget, 200000)
	c.SetDefault(ConfigSearchLog, "")
	c.SetDefault(ConfigVerifyUndo, false)
	c.SetDefault(ConfigAutoplayGames, 100)
	c.SetDefault(ConfigAutoplayThreads, 4)
	c.SetDefault(ConfigAutoplayMaxTurns, 200)
	c.SetDefault(ConfigAutoplayOutput, "/tmp/tumble-autoplay.yaml")
	c.SetDefault(ConfigAutoplaySeed, "")
}

// Load reads the configuration from the given command-line arguments and
// the environment.
func (c *Config) Load(args []string) error {
	c.Viper = *viper.New()
	c.SetEnvPrefix("tumble")
	c.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.AutomaticEnv()
	c.setDefaults()

	fs := pflag.NewFlagSet("tumble", pflag.ContinueOnError)
	fs.String(ConfigLogLevel, "info", "log level: debug, info, or disabled")
	fs.Int(ConfigPlayer, 0, "the player id (0 or 1) this engine moves for")
	fs.Int(ConfigSearchDepth, 2, "maximum search depth in plies")
	fs.Bool(ConfigAdaptiveDepth, true, "reduce the search depth when the candidate count is high")
	fs.Int(ConfigNodeBudget, 200000, "approximate node budget used by adaptive depth")
	fs.String(ConfigSearchLog, "", "if set, write a YAML trace of every search tree to this file")
	fs.Bool(ConfigVerifyUndo, false, "hash the board around every simulated move and panic on mismatch")
	fs.Int(ConfigAutoplayGames, 100, "number of self-play games")
	fs.Int(ConfigAutoplayThreads, 4, "number of self-play games run in parallel")
	fs.Int(ConfigAutoplayMaxTurns, 200, "stop a self-play game after this many turns")
	fs.String(ConfigAutoplayOutput, "/tmp/tumble-autoplay.yaml", "where to write self-play game records")
	fs.String(ConfigAutoplaySeed, "", "seed for self-play start positions; random if empty")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := c.BindPFlags(fs); err != nil {
		return err
	}
	c.args = fs.Args()
	return c.validate()
}

// Args returns the command-line arguments left over after flags.
func (c *Config) Args() []string {
	return c.args
}

func (c *Config) validate() error {
	p := c.GetInt(ConfigPlayer)
	if p != 0 && p != 1 {
		return fmt.Errorf("%s must be 0 or 1, got %d", ConfigPlayer, p)
	}
	if c.GetInt(ConfigSearchDepth) < 1 {
		return fmt.Errorf("%s must be at least 1", ConfigSearchDepth)
	}
	return nil
}

// DefaultConfig returns a configuration with only defaults set. It is
// meant for tests.
func DefaultConfig() Config {
	c := Config{Viper: *viper.New()}
	c.setDefaults()
	return c
}
