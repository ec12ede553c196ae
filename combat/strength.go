package combat

import (
	"fmt"
	"math"

	"skirmish/game"
)

// Role is the side a combatant fights on.
type Role int

const (
	Attacking Role = iota
	Defending
)

func (r Role) String() string {
	if r == Defending {
		return "defending"
	}
	return "attacking"
}

// Context carries everything outside the combatant that changes its strength.
type Context struct {
	Ranged         bool
	Terrain        game.Terrain          // Terrain of the defender's tile
	Opponent       game.UnitType         // Type of the other side
	Bonuses        map[game.UnitType]int // Own percent bonuses against unit types
	Promotions     []game.Promotion      // Own promotions
	FortifyBonus   int                   // Percent, defenders only
	FlankingAllies int                   // Attacker's units adjacent to the defender, besides the attacker
	FlankingBonus  int                   // Percent per flanking ally
	Distance       int
}

// Modifier is one named percent change in a strength breakdown.
type Modifier struct {
	Name    string
	Percent int
}

// Breakdown explains how a strength was reached.
type Breakdown struct {
	Base         int
	Modifiers    []Modifier
	HealthFactor float64
	Final        int
}

// ComputeStrength returns the effective strength of c in the given role.
func ComputeStrength(c Combatant, role Role, ctx Context) int {
	return StrengthBreakdown(c, role, ctx).Final
}

// StrengthBreakdown applies the modifiers in a fixed order: unit-type bonus,
// terrain, fortification, flanking, promotions and then wounds.
func StrengthBreakdown(c Combatant, role Role, ctx Context) Breakdown {
	b := Breakdown{HealthFactor: 1}
	if role == Attacking {
		b.Base = c.AttackingStrength(ctx.Ranged)
	} else {
		b.Base = c.DefendingStrength()
	}
	if b.Base <= 0 {
		return b
	}

	isCity := c.UnitType() == game.CityType
	if bonus := ctx.Bonuses[ctx.Opponent]; bonus != 0 {
		b.Modifiers = append(b.Modifiers, Modifier{Name: fmt.Sprintf("vs %s", ctx.Opponent), Percent: bonus})
	}
	if role == Defending && !isCity && ctx.Terrain.DefenseBonus != 0 {
		b.Modifiers = append(b.Modifiers, Modifier{Name: ctx.Terrain.Name, Percent: ctx.Terrain.DefenseBonus})
	}
	if role == Defending && ctx.FortifyBonus != 0 {
		b.Modifiers = append(b.Modifiers, Modifier{Name: "Fortification", Percent: ctx.FortifyBonus})
	}
	if role == Attacking && !ctx.Ranged && ctx.FlankingAllies > 0 {
		b.Modifiers = append(b.Modifiers, Modifier{Name: "Flanking", Percent: ctx.FlankingAllies * ctx.FlankingBonus})
	}
	for _, p := range ctx.Promotions {
		if p.AppliesTo(role == Attacking, ctx.Opponent, ctx.Terrain.Name) {
			b.Modifiers = append(b.Modifiers, Modifier{Name: p.Name, Percent: p.Bonus})
		}
	}
	if !isCity {
		maxHealth := float64(c.MaxHealth())
		b.HealthFactor = 1 - (maxHealth-float64(c.Health()))/(3*maxHealth)
	}

	s := float64(b.Base)
	for _, m := range b.Modifiers {
		s *= math.Max(0, 1+float64(m.Percent)/100)
	}
	s *= b.HealthFactor
	b.Final = max(1, int(math.Round(s)))
	return b
}

// BuildContext gathers the strength context of self fighting opponent.
func BuildContext(w *game.World, self, opponent Combatant, role Role, ranged bool) Context {
	defenderTile := opponent.Tile()
	if role == Defending {
		defenderTile = self.Tile()
	}

	ctx := Context{
		Ranged:        ranged,
		Opponent:      opponent.UnitType(),
		FlankingBonus: w.Rules.FlankingBonus(),
		Distance:      w.Map.Distance(self.Tile(), opponent.Tile()),
	}
	if t, ok := w.Tile(defenderTile); ok {
		ctx.Terrain = t.Terrain
	}

	uc, ok := self.(*unitCombatant)
	if !ok {
		return ctx
	}
	u := uc.unit
	ctx.Bonuses = u.Base.Bonuses
	ctx.Promotions = u.Promotions
	if role == Defending {
		ctx.FortifyBonus = w.FortifyBonus(u)
	} else if !ranged {
		ctx.FlankingAllies = flankingAllies(w, u, defenderTile)
	}
	return ctx
}

// flankingAllies counts the attacker's other military units bordering the target tile.
func flankingAllies(w *game.World, attacker *game.Unit, target game.TileID) int {
	t, ok := w.Tile(target)
	if !ok {
		return 0
	}
	n := 0
	for _, adj := range t.AdjacentIDs {
		m := w.MilitaryAt(adj)
		if m != nil && m.ID != attacker.ID && m.Owner == attacker.Owner {
			n++
		}
	}
	return n
}
