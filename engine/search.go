package engine

import (
	"math"
	"sync"

	"github.com/rs/zerolog"

	"skirmish/combat"
	"skirmish/game"
)

// Hyperparameters for the rollout search

const cSquared = 2.0 // Exploration constant

const win = 1.0   // Reward for winning outcome
const loss = -win // Reward for losing outcome

const (
	DefaultEpisodes = 64
	DefaultCutoff   = 3
)

type SearchOption func(*searchAgent)

func WithGoroutines(goroutines int) SearchOption {
	return func(a *searchAgent) {
		if goroutines > 0 {
			a.goroutines = goroutines
		}
	}
}

func WithEpisodes(episodes int) SearchOption {
	return func(a *searchAgent) {
		if episodes > 0 {
			a.episodes = episodes
		}
	}
}

// WithCutoff sets how many whole turns a rollout plays before its position is
// scored. Zero scores the position right after the candidate action.
func WithCutoff(turns int) SearchOption {
	return func(a *searchAgent) {
		if turns >= 0 {
			a.cutoff = turns
		}
	}
}

type searchAgent struct {
	seed       uint64
	goroutines int
	episodes   int
	cutoff     int
	decisions  uint64
}

// NewSearchAgent returns an agent that treats each legal action as a bandit
// arm. Episodes pick an arm by UCT, then play random rollouts on a copy of
// the world. The most visited action wins.
//
// With one goroutine the same seed and world always yield the same action.
func NewSearchAgent(seed uint64, opts ...SearchOption) Agent {
	a := &searchAgent{
		seed:       seed,
		goroutines: 1,
		episodes:   DefaultEpisodes,
		cutoff:     DefaultCutoff,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

type arm struct {
	sync.Mutex
	action  Action
	rewards float64
	visits  int
}

func (r *arm) applyLoss() {
	r.Lock()
	defer r.Unlock()

	r.rewards += loss
	r.visits++
}

// backup replaces the virtual loss of a running episode with its reward.
func (r *arm) backup(reward float64) {
	r.Lock()
	defer r.Unlock()

	r.rewards += reward - loss
}

func (r *arm) score(c2LnN float64) float64 {
	r.Lock()
	defer r.Unlock()

	return ucb1(r.rewards, r.visits, c2LnN)
}

func (r *arm) value() (visits int, mean float64) {
	r.Lock()
	defer r.Unlock()

	if r.visits == 0 {
		return 0, 0
	}
	return r.visits, r.rewards / float64(r.visits)
}

func ucb1(rewards float64, visits int, c2LnN float64) float64 {
	// Prioritize unexplored arms
	if visits == 0 {
		return math.Inf(1)
	}

	return rewards/float64(visits) + math.Sqrt(c2LnN/float64(visits))
}

func (a *searchAgent) FindAction(w *game.World, actions []Action) Action {
	if len(actions) == 0 {
		return Action{Type: PassAction}
	}
	if len(actions) == 1 {
		return actions[0]
	}
	civ, ok := actorCiv(w, actions[0])
	if !ok {
		return actions[len(actions)-1]
	}

	arms := make([]*arm, len(actions))
	for i, action := range actions {
		arms[i] = &arm{action: action}
	}

	// Every decision draws fresh rollout seeds
	a.decisions++
	base := a.seed + a.decisions*uint64(a.episodes)

	task := make(chan uint64, a.episodes)
	for i := 0; i < a.episodes; i++ {
		task <- base + uint64(i)
	}
	close(task)

	var (
		mu    sync.Mutex
		total int
		wg    sync.WaitGroup
	)
	for i := 0; i < a.goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for seed := range task {
				mu.Lock()
				chosen := pickArm(arms, total)
				chosen.applyLoss()
				total++
				mu.Unlock()

				chosen.backup(a.rollout(w, civ, chosen.action, seed))
			}
		}()
	}
	wg.Wait()

	return bestArm(arms).action
}

func pickArm(arms []*arm, total int) *arm {
	normalizer := 0.0
	if total > 0 {
		normalizer = cSquared * math.Log(float64(total))
	}

	best := arms[0]
	maxScore := math.Inf(-1)
	for _, r := range arms {
		score := r.score(normalizer)
		if score == math.Inf(1) {
			return r
		}
		if score > maxScore {
			maxScore = score
			best = r
		}
	}
	return best
}

// bestArm returns the most visited arm. Ties go to the higher mean reward,
// then to the earlier action.
func bestArm(arms []*arm) *arm {
	best := arms[0]
	bestVisits, bestMean := best.value()
	for _, r := range arms[1:] {
		visits, mean := r.value()
		if visits > bestVisits || (visits == bestVisits && mean > bestMean) {
			best, bestVisits, bestMean = r, visits, mean
		}
	}
	return best
}

// rollout plays action on a copy of the world, lets random agents play for
// the cutoff, and scores the result for civ.
func (a *searchAgent) rollout(w *game.World, civ game.CivID, action Action, seed uint64) float64 {
	sim := w.Copy()
	agents := make(map[game.CivID]Agent, len(sim.Civs))
	for _, id := range sim.CivIDs() {
		agents[id] = NewRandomAgent(seed + uint64(id))
	}
	e := NewLocalEngine(sim, agents, WithSeed(seed), WithLogger(zerolog.Nop()))
	e.play(action)

	winner, decided := sim.Winner()
	last := sim.Turn + a.cutoff
	for turn := sim.Turn + 1; !decided && turn <= last; turn++ {
		winner, decided = e.playTurn(turn)
	}
	if decided {
		if winner == civ {
			return win
		}
		return loss
	}
	return evaluate(sim, civ)
}

// evaluate averages the balance of forces against every other civilization.
func evaluate(w *game.World, civ game.CivID) float64 {
	score, opponents := 0.0, 0
	for _, id := range w.CivIDs() {
		if id == civ {
			continue
		}
		score += game.EvaluateForces(w, civ, id)
		opponents++
	}
	if opponents == 0 {
		return win
	}
	return score / float64(opponents)
}

func actorCiv(w *game.World, a Action) (game.CivID, bool) {
	switch a.Actor.Kind {
	case combat.UnitKind:
		if u, ok := w.Unit(game.UnitID(a.Actor.ID)); ok {
			return u.Owner, true
		}
	case combat.CityKind:
		if c, ok := w.City(game.CityID(a.Actor.ID)); ok {
			return c.Owner, true
		}
	}
	return 0, false
}
