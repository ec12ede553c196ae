package game

import "fmt"

// UnitID identifies a unit in the world registry. Zero means none.
type UnitID int

// Status tracks where a unit is in its combat lifecycle.
type Status int

const (
	Healthy Status = iota
	Damaged
	Defeated
	Destroyed
	Captured
)

var statusNames = []string{"Healthy", "Damaged", "Defeated", "Destroyed", "Captured"}

func (s Status) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return "Unknown"
	}
	return statusNames[s]
}

// IsTerminal reports whether the unit can no longer take part in combat.
func (s Status) IsTerminal() bool {
	return s == Destroyed || s == Captured
}

// Unit is a mobile unit owned by a civilization. The world registry owns it.
type Unit struct {
	ID              UnitID
	Name            string
	Base            *BaseUnit
	Owner           CivID
	Tile            TileID
	Health          int
	Experience      int
	BarbarianXP     int // Experience earned fighting barbarians
	Promotions      []Promotion
	AttacksThisTurn int
	ActedThisTurn   bool
	FortifiedTurns  int
	Status          Status
}

// IsDefeated reports whether the unit's health is exhausted.
func (u *Unit) IsDefeated() bool {
	return u.Health <= 0
}

// AttacksRemaining returns how many attacks the unit may still make this turn.
func (u *Unit) AttacksRemaining() int {
	return max(0, u.Base.MaxAttacks()-u.AttacksThisTurn)
}

// XPForNextPromotion returns the experience needed for the next promotion.
func (u *Unit) XPForNextPromotion() int {
	return 10 * (len(u.Promotions) + 1)
}

// CanPromote reports whether the unit has earned a promotion it has not taken.
func (u *Unit) CanPromote() bool {
	return u.Experience >= u.XPForNextPromotion()
}

// Promote spends experience on the named promotion.
func (u *Unit) Promote(name string) error {
	p, ok := Promotions[name]
	if !ok {
		return fmt.Errorf("cannot promote: unknown promotion %q", name)
	}
	if !u.CanPromote() {
		return fmt.Errorf("cannot promote: %d experience, need %d", u.Experience, u.XPForNextPromotion())
	}
	for _, have := range u.Promotions {
		if have.Name == name {
			return fmt.Errorf("cannot promote: already has %q", name)
		}
	}
	u.Experience -= u.XPForNextPromotion()
	u.Promotions = append(u.Promotions, p)
	return nil
}

// refreshStatus moves a living unit between Healthy and Damaged.
func (u *Unit) refreshStatus(maxHealth int) {
	if u.Status.IsTerminal() || u.Status == Defeated {
		return
	}
	if u.Health >= maxHealth {
		u.Status = Healthy
	} else {
		u.Status = Damaged
	}
}

func (u *Unit) String() string {
	return fmt.Sprintf("%s#%d", u.Name, u.ID)
}
