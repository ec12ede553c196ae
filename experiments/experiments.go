package experiments

import (
	"fmt"
	"slices"

	"github.com/rs/zerolog/log"

	"skirmish/config"
	"skirmish/engine"
	"skirmish/experiments/metrics"
	"skirmish/game"
)

// Sweep describes a batch of skirmishes played from consecutive seeds.
type Sweep struct {
	Name     string
	Games    int
	Skirmish config.Skirmish // Seed is the first game's seed
	Rules    game.Rules
	Root     string          // Directory the records are written under
	Options  []engine.Option // Applied to every game
}

// Result summarizes a sweep.
type Result struct {
	Dir     string         // Where the records were written
	Wins    map[string]int // Games won per civilization; draws are not counted
	Draws   int
	Games   []metrics.GameRecord
	Battles []metrics.BattleRecord
}

// RunSweep plays every game of a sweep and writes the game and battle records.
func RunSweep(s Sweep) (*Result, error) {
	res := &Result{Wins: map[string]int{}}

	log.Info().Msgf("starting %s sweep of %d games...", s.Name, s.Games)

	for i := 0; i < s.Games; i++ {
		settings := s.Skirmish
		settings.Seed = s.Skirmish.Seed + uint64(i)

		log.Info().Msgf("starting game %d of %d with seed %d...", i+1, s.Games, settings.Seed)

		winner, gameMetric, battleMetrics, err := RunGame(settings, s.Rules, s.Options...)
		if err != nil {
			return nil, fmt.Errorf("game %d: %w", i+1, err)
		}
		id := i + 1
		res.Games = append(res.Games, metrics.GameRecord{ID: id, GameMetric: gameMetric})
		for _, bm := range battleMetrics {
			res.Battles = append(res.Battles, metrics.BattleRecord{Game: id, BattleMetric: bm})
		}
		if winner == "" {
			res.Draws++
		} else {
			res.Wins[winner]++
		}

		log.Info().Msgf("completed game %d of %d with winner: %q after %d turns", i+1, s.Games, winner, gameMetric.Turns)
	}

	log.Info().Msgf("completed %s sweep", s.Name)

	writer, err := metrics.NewWriter(s.Root, s.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to create sweep writer: %w", err)
	}
	res.Dir = writer.Dir()

	err = writer.WriteGameRecords(res.Games)
	if err != nil {
		return nil, fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	err = writer.WriteBattleRecords(res.Battles)
	if err != nil {
		return nil, fmt.Errorf("failed to write battle records: %w", err)
	}
	log.Info().Msg("stored battle records")

	return res, nil
}

// RunGame plays a single skirmish and returns the winner.
func RunGame(settings config.Skirmish, rules game.Rules, opts ...engine.Option) (string, metrics.GameMetric, []metrics.BattleMetric, error) {
	w, err := engine.Setup(settings, rules)
	if err != nil {
		return "", metrics.GameMetric{}, nil, err
	}
	collector, err := metrics.NewCollector()
	if err != nil {
		return "", metrics.GameMetric{}, nil, err
	}

	agents := make(map[game.CivID]engine.Agent, len(w.Civs))
	for id, civ := range w.Civs {
		agents[id] = newAgent(settings, civ.Name, settings.Seed+uint64(id))
	}
	options := append([]engine.Option{
		engine.WithSeed(settings.Seed),
		engine.WithMaxTurns(settings.MaxTurns),
		engine.WithCollector(collector),
	}, opts...)
	e := engine.NewLocalEngine(w, agents, options...)

	winner, gameMetric, battleMetrics := e.Run()
	return winner, gameMetric, battleMetrics, nil
}

func newAgent(settings config.Skirmish, civ string, seed uint64) engine.Agent {
	if slices.Contains(settings.Search.Civs, civ) {
		return engine.NewSearchAgent(seed,
			engine.WithEpisodes(settings.Search.Episodes),
			engine.WithCutoff(settings.Search.Cutoff),
			engine.WithGoroutines(settings.Search.Goroutines),
		)
	}
	return engine.NewRandomAgent(seed)
}
