package engine

import (
	"golang.org/x/exp/rand"

	"skirmish/combat"
	"skirmish/game"
)

// restBelow is the health fraction under which a unit with nothing to attack
// stays put to heal.
const restBelow = 0.3

type Agent interface {
	// FindAction picks one of the legal actions for a combatant
	FindAction(w *game.World, actions []Action) Action
}

type randomAgent struct {
	rng *rand.Rand
}

// NewRandomAgent returns an agent that captures when it can, attacks a random
// target when it can, and otherwise closes in on the nearest enemy.
func NewRandomAgent(seed uint64) Agent {
	return &randomAgent{rng: rand.New(rand.NewSource(seed))}
}

func (a *randomAgent) FindAction(w *game.World, actions []Action) Action {
	if len(actions) == 0 {
		return Action{Type: PassAction}
	}
	pass := actions[len(actions)-1]

	var captures, attacks, moves []Action
	for _, action := range actions {
		switch action.Type {
		case CaptureAction:
			captures = append(captures, action)
		case AttackAction:
			attacks = append(attacks, action)
		case MoveAction:
			moves = append(moves, action)
		}
	}

	if len(captures) > 0 {
		return captures[a.rng.Intn(len(captures))]
	}
	if len(attacks) > 0 {
		return attacks[a.rng.Intn(len(attacks))]
	}
	if len(moves) == 0 || pass.Actor.Kind != combat.UnitKind {
		return pass
	}

	u, ok := w.Unit(game.UnitID(pass.Actor.ID))
	if !ok || u.Base.Type.IsCivilian() {
		return pass
	}
	if float64(u.Health) < restBelow*float64(w.Rules.UnitMaxHealth()) {
		return pass
	}
	return a.approach(w, u, moves, pass)
}

// approach picks the move that ends closest to an enemy, breaking ties at
// random. It passes when no move gets closer than standing still.
func (a *randomAgent) approach(w *game.World, u *game.Unit, moves []Action, pass Action) Action {
	enemies := enemyTiles(w, u.Owner)
	if len(enemies) == 0 {
		return pass
	}

	best := nearest(w, u.Tile, enemies)
	var candidates []Action
	for _, m := range moves {
		d := nearest(w, m.To, enemies)
		if d < 0 {
			continue
		}
		switch {
		case best < 0 || d < best:
			best = d
			candidates = []Action{m}
		case d == best && len(candidates) > 0:
			candidates = append(candidates, m)
		}
	}
	if len(candidates) == 0 {
		return pass
	}
	return candidates[a.rng.Intn(len(candidates))]
}

func enemyTiles(w *game.World, owner game.CivID) []game.TileID {
	var tiles []game.TileID
	for _, u := range w.Units {
		if u.Owner != owner {
			tiles = append(tiles, u.Tile)
		}
	}
	for _, c := range w.Cities {
		if c.Owner != owner {
			tiles = append(tiles, c.Tile)
		}
	}
	return tiles
}

// nearest returns the distance from a tile to the closest of targets, or -1
// if none can be reached.
func nearest(w *game.World, from game.TileID, targets []game.TileID) int {
	best := -1
	for _, t := range targets {
		if d := w.Map.Distance(from, t); d >= 0 && (best < 0 || d < best) {
			best = d
		}
	}
	return best
}
