package combat

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"skirmish/game"
)

const cityAttackRange = 2

// Orchestrator runs attacks against a world, one at a time.
type Orchestrator struct {
	mu        sync.Mutex
	world     *game.World
	resolver  *Resolver
	source    Source
	notifiers []Notifier
	logger    zerolog.Logger
}

type Option func(*Orchestrator)

// WithSource sets the random source used to resolve damage.
func WithSource(src Source) Option {
	return func(o *Orchestrator) {
		o.source = src
	}
}

// WithSeed resolves damage from a source seeded with seed.
func WithSeed(seed uint64) Option {
	return WithSource(NewSource(seed))
}

func WithLogger(logger zerolog.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// WithNotifier registers notifiers called after every combat.
func WithNotifier(n ...Notifier) Option {
	return func(o *Orchestrator) {
		o.notifiers = append(o.notifiers, n...)
	}
}

func NewOrchestrator(w *game.World, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		world:    w,
		resolver: NewResolver(w.Rules),
		logger:   log.Logger,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.source == nil {
		o.source = NewSource(uint64(time.Now().UnixNano()))
	}
	return o
}

// Target is a legal attack for a combatant.
type Target struct {
	Ref    Ref
	Tile   game.TileID
	Ranged bool
}

// Forecast is the expected outcome of an attack.
type Forecast struct {
	AttackerStrength  int
	DefenderStrength  int
	Expected          Damage
	AttackerBreakdown Breakdown
	DefenderBreakdown Breakdown
}

// Attack resolves one attack. On error nothing in the world has changed.
func (o *Orchestrator) Attack(attackerRef, defenderRef Ref, ranged bool) (*CombatResult, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	eng := newEngagement(o.world, o.logger, ranged)
	attacker, defender, err := o.prepare(attackerRef, defenderRef, ranged, eng)
	if err != nil {
		o.logger.Debug().Err(err).Msgf("rejected attack %s -> %s", attackerRef, defenderRef)
		return nil, err
	}

	res := eng.result
	res.Attacker, res.Defender = attackerRef, defenderRef
	res.AttackerName, res.DefenderName = attacker.Name(), defender.Name()
	res.AttackerCiv, res.DefenderCiv = attacker.Civilization(), defender.Civilization()
	defenderTile := defender.Tile()

	in := o.input(attacker, defender, ranged)
	res.AttackerStrength, res.DefenderStrength = in.AttackStrength, in.DefenseStrength
	eng.apply(o.resolver.Resolve(in, o.source))

	o.consumeAttack(attacker)
	if !ranged && res.AttackerOutcome == Survived && res.DefenderOutcome == Destroyed {
		o.advance(attacker, defenderTile, res)
	}

	o.logger.Info().Msgf("%s (%d) attacked %s (%d): %d/%d damage, %s",
		res.AttackerName, res.AttackerStrength, res.DefenderName, res.DefenderStrength,
		res.DamageToDefender, res.DamageToAttacker, res.DefenderOutcome)
	o.notify(res)
	return res, nil
}

// CaptureCity takes a city whose defenses are broken with an adjacent melee unit.
func (o *Orchestrator) CaptureCity(attackerRef Ref, cityID game.CityID) (*CombatResult, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	attacker, err := o.wrapAttacker(attackerRef, false)
	if err != nil {
		return nil, err
	}
	uc, ok := attacker.(*unitCombatant)
	if !ok || !uc.UnitType().IsMilitary() || uc.unit.Base.Domain != game.Land {
		return nil, fmt.Errorf("%w: %s cannot capture cities", ErrCannotAttack, attacker.Name())
	}
	city, ok := o.world.City(cityID)
	if !ok {
		return nil, fmt.Errorf("%w: no city %d", ErrInvalidTarget, cityID)
	}
	switch {
	case city.Owner == attacker.Civilization():
		return nil, fmt.Errorf("%w: %s is friendly", ErrInvalidTarget, city)
	case !city.IsCapturable(o.world.Rules):
		return nil, fmt.Errorf("%w: %s still has %d health", ErrInvalidTarget, city, city.Health)
	case !o.world.Map.AreAdjacent(attacker.Tile(), city.Tile):
		return nil, fmt.Errorf("%w: %s is not adjacent to %s", ErrInvalidTarget, city, attacker.Name())
	case o.world.MilitaryAt(city.Tile) != nil:
		return nil, fmt.Errorf("%w: %s is still garrisoned", ErrInvalidTarget, city)
	}

	res := &CombatResult{
		Attacker:        attackerRef,
		Defender:        CityRef(cityID),
		AttackerName:    attacker.Name(),
		DefenderName:    city.Name,
		AttackerCiv:     attacker.Civilization(),
		DefenderCiv:     city.Owner,
		AttackerHealth:  attacker.Health(),
		DefenderOutcome: Captured,
	}
	if err := o.world.TransferCity(cityID, attacker.Civilization()); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIllegalCombatantState, err)
	}
	city.Health = city.MaxHealth(o.world.Rules) / 2
	res.DefenderHealth = city.Health

	o.consumeAttack(attacker)
	o.advance(attacker, city.Tile, res)

	o.logger.Info().Msgf("%s captured %s", res.AttackerName, city)
	o.notify(res)
	return res, nil
}

// Preview forecasts an attack without drawing randomness or changing the world.
func (o *Orchestrator) Preview(attackerRef, defenderRef Ref, ranged bool) (*Forecast, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	attacker, defender, err := o.prepare(attackerRef, defenderRef, ranged, nil)
	if err != nil {
		return nil, err
	}
	attackCtx := BuildContext(o.world, attacker, defender, Attacking, ranged)
	defendCtx := BuildContext(o.world, defender, attacker, Defending, ranged)
	f := &Forecast{
		AttackerBreakdown: StrengthBreakdown(attacker, Attacking, attackCtx),
		DefenderBreakdown: StrengthBreakdown(defender, Defending, defendCtx),
	}
	f.AttackerStrength = f.AttackerBreakdown.Final
	f.DefenderStrength = f.DefenderBreakdown.Final
	f.Expected = o.resolver.Expected(o.input(attacker, defender, ranged))
	return f, nil
}

// LegalTargets lists every attack the combatant could make right now, by tile.
func (o *Orchestrator) LegalTargets(attackerRef Ref) []Target {
	o.mu.Lock()
	defer o.mu.Unlock()

	attacker, err := Wrap(o.world, attackerRef)
	if err != nil {
		return nil
	}
	ranged := attacker.IsRanged()
	reach := cityAttackRange
	if uc, ok := attacker.(*unitCombatant); ok {
		reach = uc.unit.Base.AttackRange()
	}

	tileIDs := make([]int, 0, len(o.world.Map.Tiles))
	for id := range o.world.Map.Tiles {
		tileIDs = append(tileIDs, int(id))
	}
	sort.Ints(tileIDs)

	var targets []Target
	for _, id := range tileIDs {
		tileID := game.TileID(id)
		d := o.world.Map.Distance(attacker.Tile(), tileID)
		if d < 1 || d > reach {
			continue
		}
		ref, ok := o.targetOn(tileID, attacker.Civilization())
		if !ok {
			continue
		}
		if _, _, err := o.prepare(attackerRef, ref, ranged, nil); err == nil {
			targets = append(targets, Target{Ref: ref, Tile: tileID, Ranged: ranged})
		}
	}
	return targets
}

// targetOn picks what an attack on a tile would hit: its military unit, then
// its city, then its civilian.
func (o *Orchestrator) targetOn(tileID game.TileID, attackerCiv game.CivID) (Ref, bool) {
	if u := o.world.MilitaryAt(tileID); u != nil {
		return UnitRef(u.ID), u.Owner != attackerCiv
	}
	if c := o.world.CityAt(tileID); c != nil {
		return CityRef(c.ID), c.Owner != attackerCiv
	}
	if u := o.world.CivilianAt(tileID); u != nil {
		return UnitRef(u.ID), u.Owner != attackerCiv
	}
	return Ref{}, false
}

// prepare validates an attack and wraps both sides. When eng is set the
// wrappers carry its defeat handlers.
func (o *Orchestrator) prepare(attackerRef, defenderRef Ref, ranged bool, eng *engagement) (Combatant, Combatant, error) {
	var attackerOpts, defenderOpts []WrapOption
	if eng != nil {
		attackerOpts = append(attackerOpts, OnDefeat(eng.attackerDefeated))
		defenderOpts = append(defenderOpts, OnDefeat(eng.defenderDefeated))
	}

	attacker, err := o.wrapAttacker(attackerRef, ranged, attackerOpts...)
	if err != nil {
		return nil, nil, err
	}
	defender, err := Wrap(o.world, defenderRef, defenderOpts...)
	if err != nil {
		return nil, nil, err
	}
	if defender.Health() < 0 {
		return nil, nil, fmt.Errorf("%w: %s has %d health", ErrIllegalCombatantState, defender.Name(), defender.Health())
	}
	if defender.Civilization() == 0 {
		return nil, nil, fmt.Errorf("%w: %s has no owner", ErrIllegalCombatantState, defender.Name())
	}
	if defender.Civilization() == attacker.Civilization() {
		return nil, nil, fmt.Errorf("%w: %s is friendly", ErrInvalidTarget, defender.Name())
	}
	if defender.IsDefeated() {
		return nil, nil, fmt.Errorf("%w: %s is already defeated", ErrInvalidTarget, defender.Name())
	}
	if defender.UnitType().IsCivilian() {
		if escort := o.world.MilitaryAt(defender.Tile()); escort != nil && escort.Owner != attacker.Civilization() {
			return nil, nil, fmt.Errorf("%w: %s is escorted by %s", ErrInvalidTarget, defender.Name(), escort)
		}
	}

	distance := o.world.Map.Distance(attacker.Tile(), defender.Tile())
	if distance < 1 {
		return nil, nil, fmt.Errorf("%w: %s is unreachable", ErrInvalidTarget, defender.Name())
	}
	if defender.IsInvisible() && distance > 1 {
		return nil, nil, fmt.Errorf("%w: %s is not visible", ErrInvalidTarget, defender.Name())
	}
	reach := 1
	if ranged {
		reach = cityAttackRange
		if uc, ok := attacker.(*unitCombatant); ok {
			reach = uc.unit.Base.AttackRange()
		}
	}
	if distance > reach {
		return nil, nil, fmt.Errorf("%w: %s is %d tiles away, range %d", ErrInvalidTarget, defender.Name(), distance, reach)
	}
	if uc, ok := attacker.(*unitCombatant); ok && !ranged && !o.world.CanEnter(uc.unit, defender.Tile()) {
		return nil, nil, fmt.Errorf("%w: %s cannot reach %s", ErrInvalidTarget, attacker.Name(), defender.Name())
	}

	if eng != nil {
		eng.attacker, eng.defender = attacker, defender
	}
	return attacker, defender, nil
}

func (o *Orchestrator) wrapAttacker(ref Ref, ranged bool, opts ...WrapOption) (Combatant, error) {
	attacker, err := Wrap(o.world, ref, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: attacker %s: %v", ErrCannotAttack, ref, err)
	}
	if attacker.Health() < 0 {
		return nil, fmt.Errorf("%w: %s has %d health", ErrIllegalCombatantState, attacker.Name(), attacker.Health())
	}
	if attacker.Civilization() == 0 {
		return nil, fmt.Errorf("%w: %s has no owner", ErrIllegalCombatantState, attacker.Name())
	}
	switch {
	case attacker.IsDefeated():
		return nil, fmt.Errorf("%w: %s is defeated", ErrCannotAttack, attacker.Name())
	case attacker.IsEmbarked():
		return nil, fmt.Errorf("%w: %s is embarked", ErrCannotAttack, attacker.Name())
	case ranged != attacker.IsRanged():
		return nil, fmt.Errorf("%w: %s has no %s attack", ErrCannotAttack, attacker.Name(), attackKind(ranged))
	case attacker.AttackingStrength(ranged) <= 0:
		return nil, fmt.Errorf("%w: %s has no attack strength", ErrCannotAttack, attacker.Name())
	}

	switch a := attacker.(type) {
	case *unitCombatant:
		if a.unit.AttacksRemaining() == 0 {
			return nil, fmt.Errorf("%w: %s attacked %d times this turn", ErrNoAttacksRemaining, a.Name(), a.unit.AttacksThisTurn)
		}
	case *cityCombatant:
		if a.city.AttackedThisTurn {
			return nil, fmt.Errorf("%w: %s already bombarded this turn", ErrNoAttacksRemaining, a.Name())
		}
	}
	return attacker, nil
}

func (o *Orchestrator) input(attacker, defender Combatant, ranged bool) Input {
	attackCtx := BuildContext(o.world, attacker, defender, Attacking, ranged)
	defendCtx := BuildContext(o.world, defender, attacker, Defending, ranged)
	return Input{
		AttackStrength:    ComputeStrength(attacker, Attacking, attackCtx),
		DefenseStrength:   ComputeStrength(defender, Defending, defendCtx),
		Ranged:            ranged,
		AttackerMaxHealth: attacker.MaxHealth(),
		DefenderMaxHealth: defender.MaxHealth(),
	}
}

func (o *Orchestrator) consumeAttack(attacker Combatant) {
	switch a := attacker.(type) {
	case *unitCombatant:
		a.unit.AttacksThisTurn++
		a.unit.ActedThisTurn = true
		a.unit.FortifiedTurns = 0
	case *cityCombatant:
		a.city.AttackedThisTurn = true
	}
}

// advance moves a surviving melee attacker onto the tile it cleared, taking
// any civilian left there.
func (o *Orchestrator) advance(attacker Combatant, tileID game.TileID, res *CombatResult) {
	uc, ok := attacker.(*unitCombatant)
	if !ok || uc.unit.Status.IsTerminal() {
		return
	}
	tile, ok := o.world.Tile(tileID)
	if !ok || tile.MilitaryUnit != 0 || !o.world.CanEnter(uc.unit, tileID) {
		return
	}
	if tile.City != 0 && o.world.Cities[tile.City].Owner != uc.unit.Owner {
		return
	}

	if civ := o.world.CivilianAt(tileID); civ != nil && civ.Owner != uc.unit.Owner {
		id, err := captureUnit(o.world, civ, uc.unit.Owner)
		if err != nil {
			o.logger.Warn().Err(err).Msgf("could not capture %s", civ)
			return
		}
		res.CapturedCivilian = id
	}
	if err := o.world.MoveUnit(uc.unit.ID, tileID); err != nil {
		o.logger.Warn().Err(err).Msgf("%s could not advance", uc.unit)
		return
	}
	res.RelocatedTo = tileID
}

func (o *Orchestrator) notify(res *CombatResult) {
	n := notificationFor(res)
	for _, notifier := range o.notifiers {
		notifier.Notify(n)
	}
}

func attackKind(ranged bool) string {
	if ranged {
		return "ranged"
	}
	return "melee"
}
