package config

import (
	"testing"

	"github.com/matryer/is"
)

func TestDefaults(t *testing.T) {
	is := is.New(t)
	cfg := DefaultConfig()
	is.Equal(cfg.GetInt(ConfigSearchDepth), 2)
	is.Equal(cfg.GetInt(ConfigPlayer), 0)
	is.True(cfg.GetBool(ConfigAdaptiveDepth))
	is.Equal(cfg.GetString(ConfigLogLevel), "info")
}

func TestLoadFlags(t *testing.T) {
	is := is.New(t)
	cfg := &Config{}
	err := cfg.Load([]string{"--search-depth=4", "--player=1", "--adaptive-depth=false"})
	is.NoErr(err)
	is.Equal(cfg.GetInt(ConfigSearchDepth), 4)
	is.Equal(cfg.GetInt(ConfigPlayer), 1)
	is.True(!cfg.GetBool(ConfigAdaptiveDepth))
	// untouched flags keep their defaults
	is.Equal(cfg.GetInt(ConfigNodeBudget), 200000)
}

func TestLoadEnv(t *testing.T) {
	is := is.New(t)
	t.Setenv("TUMBLE_SEARCH_DEPTH", "3")
	cfg := &Config{}
	is.NoErr(cfg.Load(nil))
	is.Equal(cfg.GetInt(ConfigSearchDepth), 3)
}

func TestLoadRejectsBadPlayer(t *testing.T) {
	is := is.New(t)
	cfg := &Config{}
	err := cfg.Load([]string{"--player=2"})
	is.True(err != nil)
}

func TestLoadKeepsPositionalArgs(t *testing.T) {
	is := is.New(t)
	cfg := &Config{}
	is.NoErr(cfg.Load([]string{"--log-level=debug", "analyze", "/tmp/games.yaml"}))
	is.Equal(cfg.Args(), []string{"analyze", "/tmp/games.yaml"})
	is.Equal(cfg.GetString(ConfigLogLevel), "debug")
}
