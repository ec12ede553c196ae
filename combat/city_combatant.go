package combat

import (
	"math"

	"skirmish/game"
)

const (
	cityBaseStrength    = 8.0
	capitalStrength     = 2.5
	strengthPerPopulace = 2.0 // Per five citizens
	garrisonShare       = 5.0 // Garrison contributes strength / garrisonShare
)

type cityCombatant struct {
	world    *game.World
	city     *game.City
	onDefeat DefeatHandler
}

func (c *cityCombatant) Ref() Ref                 { return CityRef(c.city.ID) }
func (c *cityCombatant) Health() int              { return c.city.Health }
func (c *cityCombatant) MaxHealth() int           { return c.city.MaxHealth(c.world.Rules) }
func (c *cityCombatant) Civilization() game.CivID { return c.city.Owner }
func (c *cityCombatant) Tile() game.TileID        { return c.city.Tile }
func (c *cityCombatant) Name() string             { return c.city.Name }
func (c *cityCombatant) UnitType() game.UnitType  { return game.CityType }
func (c *cityCombatant) IsInvisible() bool        { return false }
func (c *cityCombatant) IsRanged() bool           { return true }
func (c *cityCombatant) IsEmbarked() bool         { return false }

// IsDefeated reports whether the city's walls are broken and it can be captured.
func (c *cityCombatant) IsDefeated() bool {
	return c.city.IsCapturable(c.world.Rules)
}

// Cities bombard with the same strength they defend with.
func (c *cityCombatant) AttackingStrength(bool) int { return c.strength() }
func (c *cityCombatant) DefendingStrength() int     { return c.strength() }

func (c *cityCombatant) strength() int {
	s := cityBaseStrength
	if c.city.Capital {
		s += capitalStrength
	}
	s += float64(c.city.Population/5) * strengthPerPopulace
	s += float64(c.city.BuildingDefense)
	if g := c.world.Garrison(c.city); g != nil {
		s += float64(g.Base.Strength) / garrisonShare
	}
	return int(math.Round(s))
}

// TakeDamage never drops a city below its capture health.
func (c *cityCombatant) TakeDamage(amount int) {
	if c.IsDefeated() {
		return
	}
	floor := c.world.Rules.CityCaptureHealth()
	c.city.Health = max(floor, c.city.Health-max(0, amount))
	c.city.DamagedThisTurn = true
	if c.IsDefeated() && c.onDefeat != nil {
		c.onDefeat(c)
	}
}
