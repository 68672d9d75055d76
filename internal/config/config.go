// Package config loads simulator settings from a YAML file and DOMINION_*
// environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/viper"

	apperrors "github.com/kingdomworks/dominion-engine-go/internal/errors"
	"github.com/kingdomworks/dominion-engine-go/internal/game"
	"github.com/kingdomworks/dominion-engine-go/internal/game/cards"
	"github.com/kingdomworks/dominion-engine-go/internal/sim"
)

// EnvPrefix prefixes every environment override, e.g. DOMINION_GAME_SEED.
const EnvPrefix = "DOMINION"

// Catalog sources.
const (
	SourceEmbedded = "embedded"
	SourceFile     = "file"
	SourcePostgres = "postgres"
)

// Config is the full simulator configuration.
type Config struct {
	Logging    LoggingConfig    `mapstructure:"logging" yaml:"logging"`
	Game       GameConfig       `mapstructure:"game" yaml:"game"`
	Simulation SimulationConfig `mapstructure:"simulation" yaml:"simulation"`
	Catalog    CatalogConfig    `mapstructure:"catalog" yaml:"catalog"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`   // debug, info, warn, error
	Format string `mapstructure:"format" yaml:"format"` // json or console
}

type GameConfig struct {
	Players int    `mapstructure:"players" yaml:"players"`
	Kingdom string `mapstructure:"kingdom" yaml:"kingdom"` // preset name, e.g. FirstGame
	Seed    uint64 `mapstructure:"seed" yaml:"seed"`
}

type SimulationConfig struct {
	Games      int      `mapstructure:"games" yaml:"games"` // games per pairing
	Strategies []string `mapstructure:"strategies" yaml:"strategies"`
	MaxTurns   int      `mapstructure:"max_turns" yaml:"max_turns"`
	ReplayDir  string   `mapstructure:"replay_dir" yaml:"replay_dir"` // empty disables replays
}

type CatalogConfig struct {
	Source      string `mapstructure:"source" yaml:"source"`
	Path        string `mapstructure:"path" yaml:"path"`
	DatabaseURL string `mapstructure:"database_url" yaml:"database_url"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("game.players", 2)
	v.SetDefault("game.kingdom", cards.FirstGame.Name)
	v.SetDefault("game.seed", 1)

	v.SetDefault("simulation.games", 10)
	v.SetDefault("simulation.strategies", []string{"BigMoney", "SmithyBigMoney", "MilitiaBigMoney"})
	v.SetDefault("simulation.max_turns", 200)
	v.SetDefault("simulation.replay_dir", "")

	v.SetDefault("catalog.source", SourceEmbedded)
	v.SetDefault("catalog.path", "")
	v.SetDefault("catalog.database_url", "")
}

// Load reads path, if it exists, over the defaults and applies environment
// overrides. An empty path loads defaults and environment only.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("stat config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks every setting the simulator depends on.
func (c *Config) Validate() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return apperrors.Newf(apperrors.CodeInvalidConfig, "unknown log level %q", c.Logging.Level)
	}
	if c.Game.Players < game.MinPlayers || c.Game.Players > game.MaxPlayers {
		return apperrors.Newf(apperrors.CodeInvalidConfig, "game.players must be between %d and %d", game.MinPlayers, game.MaxPlayers)
	}
	if _, err := cards.ParseKingdom(c.Game.Kingdom); err != nil {
		return apperrors.Wrap(apperrors.CodeInvalidConfig, "game.kingdom", err)
	}
	if c.Simulation.Games < 1 {
		return apperrors.New(apperrors.CodeInvalidConfig, "simulation.games must be positive")
	}
	if c.Simulation.MaxTurns < 1 {
		return apperrors.New(apperrors.CodeInvalidConfig, "simulation.max_turns must be positive")
	}
	if len(c.Simulation.Strategies) == 0 {
		return apperrors.New(apperrors.CodeInvalidConfig, "simulation.strategies is empty")
	}
	for _, name := range c.Simulation.Strategies {
		if _, err := sim.ByName(name); err != nil {
			return err
		}
	}
	switch c.Catalog.Source {
	case SourceEmbedded:
	case SourceFile:
		if c.Catalog.Path == "" {
			return apperrors.New(apperrors.CodeInvalidConfig, "catalog.path is required for the file source")
		}
	case SourcePostgres:
		if c.Catalog.DatabaseURL == "" {
			return apperrors.New(apperrors.CodeInvalidConfig, "catalog.database_url is required for the postgres source")
		}
	default:
		return apperrors.Newf(apperrors.CodeInvalidConfig, "unknown catalog source %q", c.Catalog.Source)
	}
	return nil
}

// Kingdom returns the configured kingdom preset.
func (c *Config) Kingdom() cards.Kingdom {
	k, _ := cards.ParseKingdom(c.Game.Kingdom)
	return k
}
