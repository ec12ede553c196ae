package engine

import (
	"github.com/rs/zerolog"

	"skirmish/combat"
	"skirmish/experiments/metrics"
)

const DefaultMaxTurns = 200

// actionsPerUnit bounds how often one unit acts in a turn: a move, then an attack.
const actionsPerUnit = 2

type Engine interface {
	// Run plays a game till one civilization is left or the turn limit is reached
	Run() (winner string, gameMetric metrics.GameMetric, battleMetrics []metrics.BattleMetric)
}

// TurnObserver is told when a new turn starts. Notifiers that implement it
// learn the turn of each combat they see.
type TurnObserver interface {
	SetTurn(turn int)
}

type Option func(*Local)

func WithMaxTurns(turns int) Option {
	return func(e *Local) {
		e.maxTurns = turns
	}
}

// WithSeed seeds combat resolution.
func WithSeed(seed uint64) Option {
	return func(e *Local) {
		e.seed = seed
	}
}

func WithCollector(c metrics.Collector) Option {
	return func(e *Local) {
		e.collector = c
	}
}

// WithNotifier registers extra notifiers for every combat in the game.
func WithNotifier(n ...combat.Notifier) Option {
	return func(e *Local) {
		e.notifiers = append(e.notifiers, n...)
	}
}

// WithLogger sets the logger for the game and its combats.
func WithLogger(logger zerolog.Logger) Option {
	return func(e *Local) {
		e.logger = logger
	}
}
