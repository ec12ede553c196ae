package config

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"skirmish/game"
)

const FileName = "skirmish.cfg.json"

// Skirmish describes the world a game is played on.
type Skirmish struct {
	Seed           uint64 // 0 picks a seed from the clock
	Width          int
	Height         int
	MaxTurns       int
	Army           []string // Base unit names each civilization starts with
	CityPopulation int
	Walls          bool
	Barbarians     bool // Adds a barbarian camp in the middle of the map
	Search         Search
}

// Search configures the rollout search agent.
type Search struct {
	Civs       []string // Civilizations it plays; the rest play at random
	Episodes   int
	Cutoff     int // Turns played per rollout
	Goroutines int
}

// Load reads configuration from JSON file and sets default values.
// configDir is the directory containing the config file. A missing file
// leaves the defaults in place.
func Load(configDir string) error {
	viper.SetDefault("logLevel", "info")

	viper.SetDefault("game.seed", 0)
	viper.SetDefault("game.width", 10)
	viper.SetDefault("game.height", 8)
	viper.SetDefault("game.maxTurns", 150)
	viper.SetDefault("game.army", []string{"Warrior", "Warrior", "Spearman", "Swordsman", "Archer", "Horseman", "Catapult", "Settler"})
	viper.SetDefault("game.cityPopulation", 4)
	viper.SetDefault("game.walls", true)
	viper.SetDefault("game.barbarians", false)

	viper.SetDefault("search.civs", []string{})
	viper.SetDefault("search.episodes", 64)
	viper.SetDefault("search.cutoff", 3)
	viper.SetDefault("search.goroutines", 4)

	viper.SetDefault("battleLog.enabled", true)
	viper.SetDefault("battleLog.path", "")

	viper.SetDefault("metrics.dir", "./experiments")
	viper.SetDefault("sweep.games", 20)

	rules := game.NewStandardRules()
	viper.SetDefault("rules.unitMaxHealth", rules.UnitHealth)
	viper.SetDefault("rules.cityMaxHealth", rules.CityHealth)
	viper.SetDefault("rules.cityCaptureHealth", rules.CaptureHealth)
	viper.SetDefault("rules.baseDamage", rules.Damage)
	viper.SetDefault("rules.damageVariance", rules.Variance)
	viper.SetDefault("rules.flankingBonus", rules.Flanking)
	viper.SetDefault("rules.fortifyBonusPerTurn", rules.FortifyPerTurn)
	viper.SetDefault("rules.maxFortifyBonus", rules.FortifyMax)
	viper.SetDefault("rules.barbarianXPCap", rules.BarbarianXP)
	viper.SetDefault("rules.unitHealPerTurn", rules.UnitHeal)
	viper.SetDefault("rules.cityHealPerTurn", rules.CityHeal)

	viper.SetConfigName(FileName)
	viper.AddConfigPath(configDir)
	viper.SetConfigType("json")

	err := viper.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if err != nil && !errors.As(err, &notFound) {
		return fmt.Errorf("error reading config file: %v", err)
	}

	return nil
}

// Rules builds the combat rules from the rules.* keys.
func Rules() *game.StandardRules {
	return &game.StandardRules{
		UnitHealth:     viper.GetInt("rules.unitMaxHealth"),
		CityHealth:     viper.GetInt("rules.cityMaxHealth"),
		CaptureHealth:  viper.GetInt("rules.cityCaptureHealth"),
		Damage:         viper.GetFloat64("rules.baseDamage"),
		Variance:       viper.GetFloat64("rules.damageVariance"),
		Flanking:       viper.GetInt("rules.flankingBonus"),
		FortifyPerTurn: viper.GetInt("rules.fortifyBonusPerTurn"),
		FortifyMax:     viper.GetInt("rules.maxFortifyBonus"),
		BarbarianXP:    viper.GetInt("rules.barbarianXPCap"),
		UnitHeal:       viper.GetInt("rules.unitHealPerTurn"),
		CityHeal:       viper.GetInt("rules.cityHealPerTurn"),
	}
}

// Game returns the skirmish settings under game.*.
func Game() (Skirmish, error) {
	s := Skirmish{
		Seed:           viper.GetUint64("game.seed"),
		Width:          viper.GetInt("game.width"),
		Height:         viper.GetInt("game.height"),
		MaxTurns:       viper.GetInt("game.maxTurns"),
		Army:           viper.GetStringSlice("game.army"),
		CityPopulation: viper.GetInt("game.cityPopulation"),
		Walls:          viper.GetBool("game.walls"),
		Barbarians:     viper.GetBool("game.barbarians"),
		Search: Search{
			Civs:       viper.GetStringSlice("search.civs"),
			Episodes:   viper.GetInt("search.episodes"),
			Cutoff:     viper.GetInt("search.cutoff"),
			Goroutines: viper.GetInt("search.goroutines"),
		},
	}
	if s.Width < 2 || s.Height < 2 {
		return Skirmish{}, fmt.Errorf("game map must be at least 2x2, got %dx%d", s.Width, s.Height)
	}
	if s.MaxTurns < 1 {
		return Skirmish{}, fmt.Errorf("game.maxTurns must be positive, got %d", s.MaxTurns)
	}
	if len(s.Search.Civs) > 0 && s.Search.Episodes < 1 {
		return Skirmish{}, fmt.Errorf("search.episodes must be positive, got %d", s.Search.Episodes)
	}
	return s, nil
}

// LogLevel parses logLevel, falling back to info.
func LogLevel() zerolog.Level {
	level, err := zerolog.ParseLevel(viper.GetString("logLevel"))
	if err != nil || level == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return level
}

// BattleLogPath returns where battles are stored and whether they are
// stored at all. An empty path keeps them in memory.
func BattleLogPath() (string, bool) {
	return viper.GetString("battleLog.path"), viper.GetBool("battleLog.enabled")
}

func MetricsDir() string {
	return viper.GetString("metrics.dir")
}

func SweepGames() int {
	return viper.GetInt("sweep.games")
}
