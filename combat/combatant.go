package combat

import (
	"fmt"

	"skirmish/game"
)

// Kind tells unit references from city references.
type Kind int

const (
	UnitKind Kind = iota
	CityKind
)

func (k Kind) String() string {
	if k == CityKind {
		return "city"
	}
	return "unit"
}

// Ref points at a combatant in the world registry.
type Ref struct {
	Kind Kind
	ID   int
}

func UnitRef(id game.UnitID) Ref { return Ref{Kind: UnitKind, ID: int(id)} }
func CityRef(id game.CityID) Ref { return Ref{Kind: CityKind, ID: int(id)} }

func (r Ref) String() string {
	return fmt.Sprintf("%s#%d", r.Kind, r.ID)
}

// Combatant is anything that can attack or be attacked.
type Combatant interface {
	Ref() Ref
	Health() int
	MaxHealth() int
	Civilization() game.CivID
	Tile() game.TileID
	Name() string // Untranslated key
	UnitType() game.UnitType
	IsDefeated() bool
	IsInvisible() bool
	IsRanged() bool
	IsEmbarked() bool
	AttackingStrength(ranged bool) int
	DefendingStrength() int
	// TakeDamage lowers health, never below the combatant's floor. Crossing
	// into defeat runs the defeat handler once; later calls do nothing.
	TakeDamage(amount int)
}

// DefeatHandler runs when a combatant's health is exhausted.
type DefeatHandler func(defeated Combatant)

type wrapConfig struct {
	onDefeat DefeatHandler
}

type WrapOption func(*wrapConfig)

// OnDefeat installs the handler run when the wrapped combatant is defeated.
func OnDefeat(h DefeatHandler) WrapOption {
	return func(c *wrapConfig) {
		c.onDefeat = h
	}
}

// Wrap builds a combatant view over a registry entity.
func Wrap(w *game.World, ref Ref, opts ...WrapOption) (Combatant, error) {
	cfg := wrapConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	switch ref.Kind {
	case UnitKind:
		u, ok := w.Unit(game.UnitID(ref.ID))
		if !ok {
			return nil, fmt.Errorf("%w: no unit %d", ErrInvalidTarget, ref.ID)
		}
		return &unitCombatant{world: w, unit: u, onDefeat: cfg.onDefeat}, nil
	case CityKind:
		c, ok := w.City(game.CityID(ref.ID))
		if !ok {
			return nil, fmt.Errorf("%w: no city %d", ErrInvalidTarget, ref.ID)
		}
		return &cityCombatant{world: w, city: c, onDefeat: cfg.onDefeat}, nil
	default:
		return nil, fmt.Errorf("%w: unknown kind %d", ErrInvalidTarget, ref.Kind)
	}
}
