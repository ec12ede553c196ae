package combat

import "skirmish/game"

type unitCombatant struct {
	world    *game.World
	unit     *game.Unit // Owned by world, outlives removal from the registry
	onDefeat DefeatHandler
}

func (c *unitCombatant) Ref() Ref                 { return UnitRef(c.unit.ID) }
func (c *unitCombatant) Health() int              { return c.unit.Health }
func (c *unitCombatant) MaxHealth() int           { return c.world.Rules.UnitMaxHealth() }
func (c *unitCombatant) Civilization() game.CivID { return c.unit.Owner }
func (c *unitCombatant) Tile() game.TileID        { return c.unit.Tile }
func (c *unitCombatant) Name() string             { return c.unit.Name }
func (c *unitCombatant) UnitType() game.UnitType  { return c.unit.Base.Type }
func (c *unitCombatant) IsDefeated() bool         { return c.unit.IsDefeated() }
func (c *unitCombatant) IsInvisible() bool        { return c.unit.Base.Invisible }
func (c *unitCombatant) IsRanged() bool           { return c.unit.Base.IsRanged() }
func (c *unitCombatant) IsEmbarked() bool         { return c.world.IsEmbarked(c.unit) }

func (c *unitCombatant) AttackingStrength(ranged bool) int {
	if ranged {
		return c.unit.Base.RangedStrength
	}
	return c.unit.Base.Strength
}

func (c *unitCombatant) DefendingStrength() int {
	if c.IsEmbarked() {
		return 0
	}
	return c.unit.Base.Strength
}

func (c *unitCombatant) TakeDamage(amount int) {
	if c.unit.IsDefeated() || c.unit.Status.IsTerminal() {
		return
	}
	c.unit.Health = max(0, c.unit.Health-max(0, amount))
	if !c.unit.IsDefeated() {
		c.world.RefreshStatus(c.unit)
		return
	}
	c.unit.Status = game.Defeated
	if c.onDefeat != nil {
		c.onDefeat(c)
	}
}
