package game

type StandardRules struct {
	UnitHealth     int
	CityHealth     int
	CaptureHealth  int
	Damage         float64
	Variance       float64
	Flanking       int
	FortifyPerTurn int
	FortifyMax     int
	BarbarianXP    int
	UnitHeal       int
	CityHeal       int
}

func NewStandardRules() *StandardRules {
	return &StandardRules{
		UnitHealth:     100,
		CityHealth:     200,
		CaptureHealth:  1,
		Damage:         30,
		Variance:       0.2,
		Flanking:       10,
		FortifyPerTurn: 20,
		FortifyMax:     40,
		BarbarianXP:    30,
		UnitHeal:       10,
		CityHeal:       20,
	}
}

func (sr *StandardRules) UnitMaxHealth() int {
	return sr.UnitHealth
}

func (sr *StandardRules) CityMaxHealth() int {
	return sr.CityHealth
}

func (sr *StandardRules) CityCaptureHealth() int {
	return sr.CaptureHealth
}

func (sr *StandardRules) BaseDamage() float64 {
	return sr.Damage
}

// DamageVariance is the fraction by which a round's damage may stray from its expectation.
func (sr *StandardRules) DamageVariance() float64 {
	return sr.Variance
}

func (sr *StandardRules) FlankingBonus() int {
	return sr.Flanking
}

func (sr *StandardRules) FortifyBonusPerTurn() int {
	return sr.FortifyPerTurn
}

func (sr *StandardRules) MaxFortifyBonus() int {
	return sr.FortifyMax
}

func (sr *StandardRules) BarbarianXPCap() int {
	return sr.BarbarianXP
}

func (sr *StandardRules) UnitHealPerTurn() int {
	return sr.UnitHeal
}

func (sr *StandardRules) CityHealPerTurn() int {
	return sr.CityHeal
}
