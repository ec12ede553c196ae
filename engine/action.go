package engine

import (
	"skirmish/combat"
	"skirmish/game"
)

// ActionType represents the type of action a combatant can perform.
type ActionType int

const (
	MoveAction ActionType = iota
	AttackAction
	CaptureAction
	PassAction
)

var actionNames = []string{"Move", "Attack", "Capture", "Pass"}

func (t ActionType) String() string {
	if t < 0 || int(t) >= len(actionNames) {
		return "Unknown"
	}
	return actionNames[t]
}

// Action represents an action taken by one combatant.
type Action struct {
	Type   ActionType
	Actor  combat.Ref
	Target combat.Ref  // Attacked combatant, or the city to capture
	To     game.TileID // Destination of a move
	Ranged bool
}

// LegalActions lists what a combatant may do right now. Pass is always last.
func LegalActions(w *game.World, o *combat.Orchestrator, actor combat.Ref) []Action {
	pass := Action{Type: PassAction, Actor: actor}

	if actor.Kind == combat.CityKind {
		if _, ok := w.City(game.CityID(actor.ID)); !ok {
			return nil
		}
		var actions []Action
		for _, t := range o.LegalTargets(actor) {
			actions = append(actions, Action{Type: AttackAction, Actor: actor, Target: t.Ref, Ranged: t.Ranged})
		}
		return append(actions, pass)
	}

	u, ok := w.Unit(game.UnitID(actor.ID))
	if !ok {
		return nil
	}
	tile, ok := w.Tile(u.Tile)
	if !ok {
		return nil
	}

	var actions []Action
	if u.Base.Type.IsMilitary() && u.Base.Domain == game.Land && u.AttacksRemaining() > 0 {
		for _, adj := range tile.AdjacentIDs {
			c := w.CityAt(adj)
			if c != nil && c.Owner != u.Owner && c.IsCapturable(w.Rules) && w.MilitaryAt(adj) == nil {
				actions = append(actions, Action{Type: CaptureAction, Actor: actor, Target: combat.CityRef(c.ID), To: adj})
			}
		}
	}
	for _, t := range o.LegalTargets(actor) {
		actions = append(actions, Action{Type: AttackAction, Actor: actor, Target: t.Ref, To: t.Tile, Ranged: t.Ranged})
	}
	if !u.ActedThisTurn {
		for _, adj := range tile.AdjacentIDs {
			if w.CanMoveTo(u, adj) {
				actions = append(actions, Action{Type: MoveAction, Actor: actor, To: adj})
			}
		}
	}
	return append(actions, pass)
}
