package game

// UnitType classifies units for combat bonuses and capture rules.
type UnitType int

const (
	Civilian UnitType = iota
	Melee
	Ranged
	Mounted
	Siege
	Naval
	CityType
)

var unitTypeNames = []string{"Civilian", "Melee", "Ranged", "Mounted", "Siege", "Naval", "City"}

func (t UnitType) String() string {
	if t < 0 || int(t) >= len(unitTypeNames) {
		return "Unknown"
	}
	return unitTypeNames[t]
}

// IsCivilian reports whether units of this type never fight back.
func (t UnitType) IsCivilian() bool {
	return t == Civilian
}

// IsMilitary reports whether units of this type can hold a tile against enemies.
func (t UnitType) IsMilitary() bool {
	return t != Civilian && t != CityType
}

// Domain is where a unit moves.
type Domain int

const (
	Land Domain = iota
	Water
)

// BaseUnit holds the static stats shared by every unit of a kind.
type BaseUnit struct {
	Name           string
	Type           UnitType
	Domain         Domain
	Strength       int              // Melee strength, also used on defense
	RangedStrength int              // 0 for units without a ranged attack
	Range          int              // Attack range in tiles for ranged units
	AttacksPerTurn int              // 0 means 1
	Bonuses        map[UnitType]int // Percent bonus against a unit type
	Invisible      bool             // Only adjacent enemies can see and target it
	Capturable     bool             // Becomes the victor's when defeated by a melee unit
	CapturedAs     string           // Base unit the captured unit turns into; empty keeps the kind
	CapturesUnits  bool             // Captures the units it defeats in melee
}

// IsRanged reports whether the unit attacks from range.
func (b *BaseUnit) IsRanged() bool {
	return b.RangedStrength > 0
}

// MaxAttacks returns the number of attacks allowed per turn.
func (b *BaseUnit) MaxAttacks() int {
	if b.AttacksPerTurn <= 0 {
		return 1
	}
	return b.AttacksPerTurn
}

// AttackRange returns the reach of the unit's attack in tiles.
func (b *BaseUnit) AttackRange() int {
	if !b.IsRanged() {
		return 1
	}
	if b.Range <= 0 {
		return 2
	}
	return b.Range
}

// Ruleset maps base unit names to their stats.
type Ruleset map[string]*BaseUnit

// StandardRuleset returns the units available in a standard skirmish.
func StandardRuleset() Ruleset {
	units := []*BaseUnit{
		{Name: "Warrior", Type: Melee, Strength: 8},
		{Name: "Spearman", Type: Melee, Strength: 11, Bonuses: map[UnitType]int{Mounted: 100}},
		{Name: "Swordsman", Type: Melee, Strength: 14},
		{Name: "Archer", Type: Ranged, Strength: 5, RangedStrength: 7, Range: 2},
		{Name: "Catapult", Type: Siege, Strength: 4, RangedStrength: 14, Range: 2, Bonuses: map[UnitType]int{CityType: 200}},
		{Name: "Horseman", Type: Mounted, Strength: 12, Bonuses: map[UnitType]int{CityType: -33}},
		{Name: "Trireme", Type: Naval, Domain: Water, Strength: 10},
		{Name: "Infiltrator", Type: Melee, Strength: 9, Invisible: true},
		{Name: "Brute", Type: Melee, Strength: 10, CapturesUnits: true},
		{Name: "Settler", Type: Civilian, Capturable: true, CapturedAs: "Worker"},
		{Name: "Worker", Type: Civilian, Capturable: true},
	}
	rs := make(Ruleset, len(units))
	for _, u := range units {
		rs[u.Name] = u
	}
	return rs
}
