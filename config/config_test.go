package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skirmish/game"
)

func TestLoad_WithValidConfigFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	cfg := `{
		"logLevel": "debug",
		"game": { "seed": 99, "width": 6, "army": ["Warrior", "Archer"] },
		"rules": { "baseDamage": 24, "flankingBonus": 15 },
		"battleLog": { "path": "battles.db" },
		"search": { "civs": ["Rome"], "episodes": 8 }
	}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(cfg), 0644))

	err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, zerolog.DebugLevel, LogLevel())

	s, err := Game()
	require.NoError(t, err)
	assert.Equal(t, uint64(99), s.Seed)
	assert.Equal(t, 6, s.Width)
	assert.Equal(t, 8, s.Height, "Unset keys should keep their defaults")
	assert.Equal(t, []string{"Warrior", "Archer"}, s.Army)
	assert.Equal(t, Search{Civs: []string{"Rome"}, Episodes: 8, Cutoff: 3, Goroutines: 4}, s.Search)

	rules := Rules()
	assert.Equal(t, 24.0, rules.BaseDamage())
	assert.Equal(t, 15, rules.FlankingBonus())
	assert.Equal(t, 100, rules.UnitMaxHealth())

	path, enabled := BattleLogPath()
	assert.Equal(t, "battles.db", path)
	assert.True(t, enabled)
}

func TestLoad_DefaultValues(t *testing.T) {
	t.Cleanup(viper.Reset)

	err := Load(t.TempDir())
	require.NoError(t, err, "A missing config file should not be an error")

	assert.Equal(t, zerolog.InfoLevel, LogLevel())
	assert.Equal(t, game.NewStandardRules(), Rules())
	assert.Equal(t, "./experiments", MetricsDir())
	assert.Equal(t, 20, SweepGames())

	s, err := Game()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), s.Seed)
	assert.Equal(t, 10, s.Width)
	assert.Equal(t, 8, s.Height)
	assert.Equal(t, 150, s.MaxTurns)
	assert.Equal(t, 4, s.CityPopulation)
	assert.True(t, s.Walls)
	assert.False(t, s.Barbarians)
	assert.Contains(t, s.Army, "Settler")
	assert.Empty(t, s.Search.Civs, "Every civilization should play at random by default")
	assert.Equal(t, 64, s.Search.Episodes)

	path, enabled := BattleLogPath()
	assert.Equal(t, "", path)
	assert.True(t, enabled)
}

func TestLoad_InvalidFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(`{ not json`), 0644))

	err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestGame_Validation(t *testing.T) {
	t.Cleanup(viper.Reset)
	require.NoError(t, Load(t.TempDir()))

	viper.Set("game.width", 1)
	_, err := Game()
	assert.Error(t, err)

	viper.Set("game.width", 5)
	viper.Set("game.maxTurns", 0)
	_, err = Game()
	assert.Error(t, err)

	viper.Set("game.maxTurns", 10)
	viper.Set("search.civs", []string{"Rome"})
	viper.Set("search.episodes", 0)
	_, err = Game()
	assert.Error(t, err)
}

func TestLogLevel_Fallback(t *testing.T) {
	t.Cleanup(viper.Reset)
	viper.Set("logLevel", "loud")
	assert.Equal(t, zerolog.InfoLevel, LogLevel())
}
