package metrics

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"skirmish/combat"
)

type BattleMetric struct {
	Turn             int
	Attacker         string
	Defender         string
	AttackerCiv      int // Civilization ID
	DefenderCiv      int // Civilization ID
	Ranged           bool
	AttackerStrength int
	DefenderStrength int
	DamageToAttacker int
	DamageToDefender int
	AttackerOutcome  string
	DefenderOutcome  string
}

type GameMetric struct {
	Seed           uint64
	Winner         string // Civilization name, empty on a draw
	Turns          int
	Battles        int
	UnitsDestroyed int
	UnitsCaptured  int
	CitiesCaptured int
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
}

// Collector gathers metrics for one game from combat notifications.
type Collector interface {
	combat.Notifier
	Start(seed uint64)
	SetTurn(turn int)
	Complete(winner string) (GameMetric, []BattleMetric)
}

type collector struct {
	seed           uint64
	startTime      time.Time
	turn           atomic.Int32
	unitsDestroyed atomic.Int32
	unitsCaptured  atomic.Int32
	citiesCaptured atomic.Int32

	mu      sync.Mutex
	battles []BattleMetric

	combats  metric.Int64Counter
	damage   metric.Int64Counter
	defeated metric.Int64Counter
}

func NewCollector() (Collector, error) {
	m := meter()
	c := &collector{}

	var err error
	c.combats, err = m.Int64Counter(
		"combat.resolved",
		metric.WithDescription("Total combats resolved"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating combats counter: %w", err)
	}

	c.damage, err = m.Int64Counter(
		"combat.damage",
		metric.WithDescription("Total damage dealt to both sides"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating damage counter: %w", err)
	}

	c.defeated, err = m.Int64Counter(
		"combat.defeated",
		metric.WithDescription("Total combatants defeated"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating defeated counter: %w", err)
	}

	return c, nil
}

func (m *collector) Start(seed uint64) {
	m.startTime = time.Now()
	m.seed = seed
}

func (m *collector) SetTurn(turn int) {
	m.turn.Store(int32(turn))
}

func (m *collector) Notify(n combat.Notification) {
	res := n.Result
	ctx := context.Background()
	kind := attribute.String("kind", attackKind(res.Ranged))

	m.combats.Add(ctx, 1, metric.WithAttributes(kind, attribute.String("key", n.Key)))
	m.damage.Add(ctx, int64(res.DamageToDefender), metric.WithAttributes(kind, attribute.String("side", "defender")))
	m.damage.Add(ctx, int64(res.DamageToAttacker), metric.WithAttributes(kind, attribute.String("side", "attacker")))

	for _, side := range []struct {
		ref     combat.Ref
		outcome combat.Outcome
	}{
		{res.Attacker, res.AttackerOutcome},
		{res.Defender, res.DefenderOutcome},
	} {
		if side.outcome == combat.Survived {
			continue
		}
		m.defeated.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", side.outcome.String())))
		switch {
		case side.ref.Kind == combat.CityKind && side.outcome == combat.Captured:
			m.citiesCaptured.Add(1)
		case side.ref.Kind == combat.UnitKind && side.outcome == combat.Captured:
			m.unitsCaptured.Add(1)
		case side.ref.Kind == combat.UnitKind && side.outcome == combat.Destroyed:
			m.unitsDestroyed.Add(1)
		}
	}
	if res.CapturedCivilian != 0 {
		m.unitsCaptured.Add(1)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.battles = append(m.battles, BattleMetric{
		Turn:             int(m.turn.Load()),
		Attacker:         res.AttackerName,
		Defender:         res.DefenderName,
		AttackerCiv:      int(res.AttackerCiv),
		DefenderCiv:      int(res.DefenderCiv),
		Ranged:           res.Ranged,
		AttackerStrength: res.AttackerStrength,
		DefenderStrength: res.DefenderStrength,
		DamageToAttacker: res.DamageToAttacker,
		DamageToDefender: res.DamageToDefender,
		AttackerOutcome:  res.AttackerOutcome.String(),
		DefenderOutcome:  res.DefenderOutcome.String(),
	})
}

func (m *collector) Complete(winner string) (GameMetric, []BattleMetric) {
	m.mu.Lock()
	defer m.mu.Unlock()

	end := time.Now()
	battles := make([]BattleMetric, len(m.battles))
	copy(battles, m.battles)
	return GameMetric{
		Seed:           m.seed,
		Winner:         winner,
		Turns:          int(m.turn.Load()),
		Battles:        len(battles),
		UnitsDestroyed: int(m.unitsDestroyed.Load()),
		UnitsCaptured:  int(m.unitsCaptured.Load()),
		CitiesCaptured: int(m.citiesCaptured.Load()),
		StartTime:      m.startTime,
		EndTime:        end,
		Duration:       end.Sub(m.startTime),
	}, battles
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(seed uint64)            {}
func (m *dummyCollector) SetTurn(turn int)             {}
func (m *dummyCollector) Notify(n combat.Notification) {}
func (m *dummyCollector) Complete(winner string) (GameMetric, []BattleMetric) {
	return GameMetric{Winner: winner}, nil
}

func attackKind(ranged bool) string {
	if ranged {
		return "ranged"
	}
	return "melee"
}
