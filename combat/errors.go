package combat

import "errors"

var (
	// ErrInvalidTarget is returned when the defender cannot be attacked: it is
	// missing, friendly, already defeated, hidden or out of range.
	ErrInvalidTarget = errors.New("invalid target")
	// ErrNoAttacksRemaining is returned when the attacker used its attacks this turn.
	ErrNoAttacksRemaining = errors.New("no attacks remaining")
	// ErrIllegalCombatantState is returned when a participant breaks a world invariant.
	ErrIllegalCombatantState = errors.New("illegal combatant state")
	// ErrCannotAttack is returned when the attacker is unable to make this kind of attack.
	ErrCannotAttack = errors.New("cannot attack")
)
