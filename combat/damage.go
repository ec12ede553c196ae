package combat

import (
	"math"

	"skirmish/game"
)

// Input is what the resolver needs to know about one exchange.
type Input struct {
	AttackStrength    int
	DefenseStrength   int
	Ranged            bool
	AttackerMaxHealth int
	DefenderMaxHealth int
}

// Damage is the health each side loses in an exchange.
type Damage struct {
	ToAttacker int
	ToDefender int
}

// Resolver turns two strengths into damage.
type Resolver struct {
	rules game.Rules
}

func NewResolver(rules game.Rules) *Resolver {
	return &Resolver{rules: rules}
}

// Resolve draws the damage of one exchange from src. The defender's damage is
// drawn first; ranged exchanges draw only once.
func (r *Resolver) Resolve(in Input, src Source) Damage {
	switch {
	case in.DefenseStrength <= 0:
		return Damage{ToDefender: in.DefenderMaxHealth}
	case in.AttackStrength <= 0:
		if in.Ranged {
			return Damage{}
		}
		return Damage{ToAttacker: in.AttackerMaxHealth}
	}

	toDefender, toAttacker := r.expected(in)
	d := Damage{ToDefender: r.vary(toDefender, in.DefenderMaxHealth, src)}
	if !in.Ranged {
		d.ToAttacker = r.vary(toAttacker, in.AttackerMaxHealth, src)
	}
	return d
}

// Expected returns the mean damage of an exchange without drawing.
func (r *Resolver) Expected(in Input) Damage {
	switch {
	case in.DefenseStrength <= 0:
		return Damage{ToDefender: in.DefenderMaxHealth}
	case in.AttackStrength <= 0:
		if in.Ranged {
			return Damage{}
		}
		return Damage{ToAttacker: in.AttackerMaxHealth}
	}

	toDefender, toAttacker := r.expected(in)
	d := Damage{ToDefender: int(math.Round(math.Min(toDefender, float64(in.DefenderMaxHealth))))}
	if !in.Ranged {
		d.ToAttacker = int(math.Round(math.Min(toAttacker, float64(in.AttackerMaxHealth))))
	}
	return d
}

func (r *Resolver) expected(in Input) (toDefender, toAttacker float64) {
	m := strengthModifier(float64(in.AttackStrength) / float64(in.DefenseStrength))
	if in.AttackStrength >= in.DefenseStrength {
		return r.rules.BaseDamage() * m, r.rules.BaseDamage() / m
	}
	return r.rules.BaseDamage() / m, r.rules.BaseDamage() * m
}

// vary spreads the expectation by the variance factor. Rolls above the
// expectation are capped at variance * maxHealth above it.
func (r *Resolver) vary(expected float64, maxHealth int, src Source) int {
	v := r.rules.DamageVariance()
	d := expected * (1 - v + 2*v*src.Float64())
	if excess := v * float64(maxHealth); d-expected > excess {
		d = expected + excess
	}
	d = math.Min(d, float64(maxHealth))
	return max(0, int(math.Round(d)))
}

// strengthModifier grows with how lopsided the fight is, from 1 at even odds.
func strengthModifier(ratio float64) float64 {
	s := math.Max(ratio, 1/ratio)
	return math.Pow((s+3)/4, 4)/2 + 0.5
}
