package game

// Rules holds the tunable constants of combat resolution.
type Rules interface {
	UnitMaxHealth() int
	CityMaxHealth() int
	CityCaptureHealth() int
	BaseDamage() float64
	DamageVariance() float64
	FlankingBonus() int
	FortifyBonusPerTurn() int
	MaxFortifyBonus() int
	BarbarianXPCap() int
	UnitHealPerTurn() int
	CityHealPerTurn() int
}
