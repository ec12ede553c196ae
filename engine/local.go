package engine

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"skirmish/combat"
	"skirmish/experiments/metrics"
	"skirmish/game"
)

// Local plays a whole game in process, one civilization after another.
type Local struct {
	world        *game.World
	agents       map[game.CivID]Agent
	orchestrator *combat.Orchestrator
	collector    metrics.Collector
	notifiers    []combat.Notifier
	seed         uint64
	maxTurns     int
	logger       zerolog.Logger
	history      []game.StateHash
}

func NewLocalEngine(w *game.World, agents map[game.CivID]Agent, opts ...Option) *Local {
	if len(w.Civs) < 2 {
		panic("need at least two civilizations")
	}
	for id, civ := range w.Civs {
		if agents[id] == nil {
			panic(fmt.Sprintf("civilization %s has no agent", civ.Name))
		}
	}

	e := &Local{
		world:     w,
		agents:    agents,
		collector: metrics.NewDummyCollector(),
		maxTurns:  DefaultMaxTurns,
		logger:    log.Logger,
	}
	for _, opt := range opts {
		opt(e)
	}

	notifiers := append([]combat.Notifier{e.collector}, e.notifiers...)
	e.orchestrator = combat.NewOrchestrator(w,
		combat.WithSeed(e.seed),
		combat.WithLogger(e.logger),
		combat.WithNotifier(notifiers...),
	)
	return e
}

// Run executes the entire game loop until a winner is found.
func (e *Local) Run() (string, metrics.GameMetric, []metrics.BattleMetric) {
	e.collector.Start(e.seed)
	e.logger.Info().Msgf("starting skirmish between %d civilizations with seed %d", len(e.world.Civs), e.seed)

	winner := ""
	for turn := 1; turn <= e.maxTurns && winner == ""; turn++ {
		if id, ok := e.playTurn(turn); ok {
			winner = e.world.Civs[id].Name
		}
		e.history = append(e.history, e.world.Hash())
		e.logger.Debug().Msgf("turn %d over, state %x", turn, e.history[len(e.history)-1])
	}

	if winner != "" {
		e.logger.Info().Msgf("%s won on turn %d", winner, e.world.Turn)
	} else {
		e.logStandings()
	}

	gameMetric, battleMetrics := e.collector.Complete(winner)
	return winner, gameMetric, battleMetrics
}

// playTurn lets every surviving civilization act once. It stops early and
// reports the winner as soon as one is decided.
func (e *Local) playTurn(turn int) (game.CivID, bool) {
	e.world.Turn = turn
	e.setTurn(turn)

	for _, civID := range e.world.CivIDs() {
		if !e.world.Civs[civID].IsAlive() {
			continue
		}
		e.world.StartTurn(civID)
		e.playUnits(civID)
		e.playCities(civID)

		if id, ok := e.world.Winner(); ok {
			return id, true
		}
	}
	return 0, false
}

// History returns the state hash at the end of every turn played.
func (e *Local) History() []game.StateHash {
	return e.history
}

func (e *Local) World() *game.World {
	return e.world
}

func (e *Local) playUnits(civID game.CivID) {
	agent := e.agents[civID]
	for _, id := range e.world.Civs[civID].UnitIDs() {
		ref := combat.UnitRef(id)
		for step := 0; step < actionsPerUnit; step++ {
			// Earlier actions may have captured or destroyed it
			if u, ok := e.world.Unit(id); !ok || u.Owner != civID {
				break
			}
			action := agent.FindAction(e.world, LegalActions(e.world, e.orchestrator, ref))
			if !e.play(action) || action.Type != MoveAction {
				break
			}
		}
	}
}

func (e *Local) playCities(civID game.CivID) {
	agent := e.agents[civID]
	for _, id := range e.world.Civs[civID].CityIDs() {
		if c, ok := e.world.City(id); !ok || c.Owner != civID {
			continue
		}
		e.play(agent.FindAction(e.world, LegalActions(e.world, e.orchestrator, combat.CityRef(id))))
	}
}

// play carries out an action and reports whether it changed anything.
func (e *Local) play(a Action) bool {
	var err error
	switch a.Type {
	case MoveAction:
		id := game.UnitID(a.Actor.ID)
		if err = e.world.MoveUnit(id, a.To); err == nil {
			e.world.Units[id].ActedThisTurn = true
		}
	case AttackAction:
		_, err = e.orchestrator.Attack(a.Actor, a.Target, a.Ranged)
	case CaptureAction:
		_, err = e.orchestrator.CaptureCity(a.Actor, game.CityID(a.Target.ID))
	default:
		return false
	}
	if err != nil {
		e.logger.Debug().Err(err).Msgf("%s by %s failed", a.Type, a.Actor)
		return false
	}
	return true
}

func (e *Local) setTurn(turn int) {
	e.collector.SetTurn(turn)
	for _, n := range e.notifiers {
		if o, ok := n.(TurnObserver); ok {
			o.SetTurn(turn)
		}
	}
}

// logStandings reports the balance of forces when the turn limit ends a game.
func (e *Local) logStandings() {
	ids := e.world.CivIDs()
	for i, civ := range ids {
		for _, opponent := range ids[i+1:] {
			e.logger.Info().Msgf("turn limit reached: %s vs %s scores %.2f",
				e.world.Civs[civ].Name, e.world.Civs[opponent].Name, game.EvaluateForces(e.world, civ, opponent))
		}
	}
}
