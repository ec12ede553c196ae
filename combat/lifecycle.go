package combat

import (
	"math"

	"github.com/rs/zerolog"

	"skirmish/game"
)

const (
	meleeAttackXP  = 5
	meleeDefendXP  = 4
	rangedAttackXP = 2
	rangedDefendXP = 2
)

// engagement applies the consequences of one combat to the world. Its defeat
// handlers are installed on both wrappers before any damage is dealt.
type engagement struct {
	world    *game.World
	logger   zerolog.Logger
	ranged   bool
	attacker Combatant
	defender Combatant
	result   *CombatResult
}

func newEngagement(w *game.World, logger zerolog.Logger, ranged bool) *engagement {
	return &engagement{world: w, logger: logger, ranged: ranged, result: &CombatResult{Ranged: ranged}}
}

func (e *engagement) attackerDefeated(c Combatant) {
	e.result.AttackerOutcome = e.defeat(c, nil)
}

func (e *engagement) defenderDefeated(c Combatant) {
	e.result.DefenderOutcome = e.defeat(c, e.attacker)
}

// defeat removes a beaten combatant from play. A city is only marked
// capturable. A unit is captured when victor may take it, otherwise destroyed.
func (e *engagement) defeat(c Combatant, victor Combatant) Outcome {
	uc, ok := c.(*unitCombatant)
	if !ok {
		return Capturable
	}
	if victor != nil && e.canCapture(victor, uc.unit) {
		id, err := captureUnit(e.world, uc.unit, victor.Civilization())
		if err == nil {
			e.result.CapturedAs = id
			return Captured
		}
		e.logger.Warn().Err(err).Msgf("capture of %s failed, destroying it", uc.unit)
	}
	destroyUnit(e.world, uc.unit)
	return Destroyed
}

func (e *engagement) canCapture(victor Combatant, defeated *game.Unit) bool {
	vc, ok := victor.(*unitCombatant)
	if !ok || e.ranged || !vc.UnitType().IsMilitary() || vc.IsDefeated() {
		return false
	}
	if e.world.Map.Distance(vc.Tile(), defeated.Tile) != 1 {
		return false
	}
	return defeated.Base.Capturable || vc.unit.Base.CapturesUnits
}

// apply deals the damage, defender first. A defender that falls, unit or
// city, hits back for nothing.
func (e *engagement) apply(d Damage) {
	before := e.defender.Health()
	e.defender.TakeDamage(d.ToDefender)
	e.result.DamageToDefender = before - e.defender.Health()

	if !e.defender.IsDefeated() {
		before = e.attacker.Health()
		e.attacker.TakeDamage(d.ToAttacker)
		e.result.DamageToAttacker = before - e.attacker.Health()
	}

	e.result.AttackerHealth = e.attacker.Health()
	e.result.DefenderHealth = e.defender.Health()
	e.awardExperience()
}

func (e *engagement) awardExperience() {
	attackXP, defendXP := meleeAttackXP, meleeDefendXP
	if e.ranged {
		attackXP, defendXP = rangedAttackXP, rangedDefendXP
	}
	r := e.result
	r.AttackerXP, r.AttackerPromote = e.gainExperience(e.attacker, e.defender, attackXP, r.DefenderStrength, r.AttackerStrength)
	r.DefenderXP, r.DefenderPromote = e.gainExperience(e.defender, e.attacker, defendXP, r.AttackerStrength, r.DefenderStrength)
}

// gainExperience scales base by how much stronger the opponent was. Only
// surviving units learn, and barbarians teach only up to a cap.
func (e *engagement) gainExperience(c, opponent Combatant, base, opponentStrength, ownStrength int) (int, bool) {
	uc, ok := c.(*unitCombatant)
	if !ok || uc.unit.IsDefeated() || uc.unit.Status.IsTerminal() {
		return 0, false
	}
	u := uc.unit
	if opponent.UnitType().IsCivilian() {
		return 0, u.CanPromote()
	}

	scale := 2.0
	if ownStrength > 0 {
		scale = math.Min(2, math.Max(0.5, float64(opponentStrength)/float64(ownStrength)))
	}
	xp := max(1, int(math.Round(float64(base)*scale)))

	if civ, ok := e.world.Civ(opponent.Civilization()); ok && civ.Barbarian {
		xp = min(xp, max(0, e.world.Rules.BarbarianXPCap()-u.BarbarianXP))
		u.BarbarianXP += xp
	}
	u.Experience += xp
	return xp, u.CanPromote()
}

// captureUnit replaces a defeated unit with a fresh one for the captor,
// converted if its kind says so. The defeated unit ends Captured.
func captureUnit(w *game.World, u *game.Unit, captor game.CivID) (game.UnitID, error) {
	baseName := u.Base.Name
	if u.Base.CapturedAs != "" {
		baseName = u.Base.CapturedAs
	}
	tile := u.Tile
	if err := w.RemoveUnit(u.ID); err != nil {
		return 0, err
	}
	captured, err := w.AddUnit(captor, baseName, tile)
	if err != nil {
		u.Status = game.Destroyed
		return 0, err
	}
	u.Status = game.Captured
	captured.ActedThisTurn = true
	return captured.ID, nil
}

func destroyUnit(w *game.World, u *game.Unit) {
	w.RemoveUnit(u.ID)
	u.Status = game.Destroyed
}
