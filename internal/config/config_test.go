package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/kingdomworks/dominion-engine-go/internal/errors"
	"github.com/kingdomworks/dominion-engine-go/internal/game/cards"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, 2, cfg.Game.Players)
	assert.Equal(t, cards.FirstGame, cfg.Kingdom())
	assert.Equal(t, uint64(1), cfg.Game.Seed)
	assert.Equal(t, 10, cfg.Simulation.Games)
	assert.Equal(t, 200, cfg.Simulation.MaxTurns)
	assert.Equal(t, []string{"BigMoney", "SmithyBigMoney", "MilitiaBigMoney"}, cfg.Simulation.Strategies)
	assert.Equal(t, SourceEmbedded, cfg.Catalog.Source)
}

func TestLoadMissingFileFallsBackToDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Game.Players)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
logging:
  level: debug
  format: json
game:
  players: 4
  kingdom: SizeDistortion
  seed: 77
simulation:
  games: 3
  strategies: [BigMoney, MilitiaBigMoney]
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, 4, cfg.Game.Players)
	assert.Equal(t, cards.SizeDistortion, cfg.Kingdom())
	assert.Equal(t, uint64(77), cfg.Game.Seed)
	assert.Equal(t, 3, cfg.Simulation.Games)
	assert.Equal(t, []string{"BigMoney", "MilitiaBigMoney"}, cfg.Simulation.Strategies)
	assert.Equal(t, 200, cfg.Simulation.MaxTurns, "unset keys keep their defaults")
}

func TestLoadEnvOverrides(t *testing.T) {
	path := writeConfig(t, "game:\n  players: 3\n")
	t.Setenv("DOMINION_GAME_PLAYERS", "5")
	t.Setenv("DOMINION_GAME_SEED", "123")
	t.Setenv("DOMINION_LOGGING_LEVEL", "warn")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Game.Players)
	assert.Equal(t, uint64(123), cfg.Game.Seed)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	path := writeConfig(t, "game: [players\n")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg, err := Load("")
		require.NoError(t, err)
		return cfg
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"too few players", func(c *Config) { c.Game.Players = 1 }},
		{"too many players", func(c *Config) { c.Game.Players = 7 }},
		{"unknown kingdom", func(c *Config) { c.Game.Kingdom = "Prosperity" }},
		{"unknown log level", func(c *Config) { c.Logging.Level = "trace" }},
		{"no games", func(c *Config) { c.Simulation.Games = 0 }},
		{"no turns", func(c *Config) { c.Simulation.MaxTurns = 0 }},
		{"no strategies", func(c *Config) { c.Simulation.Strategies = nil }},
		{"unknown strategy", func(c *Config) { c.Simulation.Strategies = []string{"Chapel"} }},
		{"file source without path", func(c *Config) { c.Catalog.Source = SourceFile }},
		{"postgres source without url", func(c *Config) { c.Catalog.Source = SourcePostgres }},
		{"unknown source", func(c *Config) { c.Catalog.Source = "s3" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, apperrors.IsCode(err, apperrors.CodeInvalidConfig), "got %v", err)
		})
	}

	cfg := valid()
	cfg.Catalog.Source = SourcePostgres
	cfg.Catalog.DatabaseURL = "postgres://localhost/dominion"
	assert.NoError(t, cfg.Validate())
}
