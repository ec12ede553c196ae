package combat

import "skirmish/game"

// Outcome is what happened to one side of a combat.
type Outcome int

const (
	Survived Outcome = iota
	Destroyed
	Captured
	Capturable // City defenses broken, awaiting capture
)

var outcomeNames = []string{"Survived", "Destroyed", "Captured", "Capturable"}

func (o Outcome) String() string {
	if o < 0 || int(o) >= len(outcomeNames) {
		return "Unknown"
	}
	return outcomeNames[o]
}

// CombatResult describes one resolved combat. It is built fresh per action.
type CombatResult struct {
	Attacker         Ref
	Defender         Ref
	AttackerName     string
	DefenderName     string
	AttackerCiv      game.CivID
	DefenderCiv      game.CivID
	Ranged           bool
	AttackerStrength int
	DefenderStrength int
	DamageToAttacker int
	DamageToDefender int
	AttackerHealth   int // After combat
	DefenderHealth   int // After combat
	AttackerOutcome  Outcome
	DefenderOutcome  Outcome
	AttackerXP       int
	DefenderXP       int
	AttackerPromote  bool        // Attacker may now take a promotion
	DefenderPromote  bool        // Defender may now take a promotion
	CapturedAs       game.UnitID // Unit the captured defender became, 0 if none
	CapturedCivilian game.UnitID // Civilian taken on the entered tile, 0 if none
	RelocatedTo      game.TileID // Tile the attacker advanced to, 0 if it stayed
}

// AttackerDefeated reports whether the attacker was lost.
func (r *CombatResult) AttackerDefeated() bool {
	return r.AttackerOutcome != Survived
}

// DefenderDefeated reports whether the defender was beaten.
func (r *CombatResult) DefenderDefeated() bool {
	return r.DefenderOutcome != Survived
}
