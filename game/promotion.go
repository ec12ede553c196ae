package game

// PromotionScope limits when a promotion's bonus applies.
type PromotionScope int

const (
	AnyRole PromotionScope = iota
	WhenAttacking
	WhenDefending
)

// Promotion is a permanent combat bonus earned with experience.
type Promotion struct {
	Name    string
	Bonus   int            // Percent
	Scope   PromotionScope // Role the bonus applies in
	Versus  *UnitType      // Opponent type, nil for any
	Terrain string         // Defender terrain name, empty for any
}

// AppliesTo reports whether the promotion counts in the given situation.
func (p Promotion) AppliesTo(attacking bool, opponent UnitType, terrain string) bool {
	switch p.Scope {
	case WhenAttacking:
		if !attacking {
			return false
		}
	case WhenDefending:
		if attacking {
			return false
		}
	}
	if p.Versus != nil && *p.Versus != opponent {
		return false
	}
	if p.Terrain != "" && p.Terrain != terrain {
		return false
	}
	return true
}

func versus(t UnitType) *UnitType { return &t }

// Promotions lists the standard promotions by name.
var Promotions = map[string]Promotion{
	"Shock I":    {Name: "Shock I", Bonus: 15, Scope: WhenAttacking, Terrain: Grassland.Name},
	"Drill I":    {Name: "Drill I", Bonus: 15, Terrain: Forest.Name},
	"Cover I":    {Name: "Cover I", Bonus: 33, Scope: WhenDefending, Versus: versus(Ranged)},
	"Accuracy I": {Name: "Accuracy I", Bonus: 15, Scope: WhenAttacking},
	"Barrage I":  {Name: "Barrage I", Bonus: 15, Scope: WhenAttacking, Versus: versus(Melee)},
	"Charge":     {Name: "Charge", Bonus: 33, Scope: WhenAttacking, Versus: versus(CityType)},
}
