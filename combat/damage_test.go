package combat

import (
	"testing"

	"github.com/stretchr/testify/require"

	"skirmish/game"
)

func TestResolve(t *testing.T) {
	r := NewResolver(game.NewStandardRules())

	t.Run("even odds deal base damage", func(t *testing.T) {
		in := Input{AttackStrength: 10, DefenseStrength: 10, AttackerMaxHealth: 100, DefenderMaxHealth: 100}
		require.Equal(t, Damage{ToAttacker: 30, ToDefender: 30}, r.Expected(in))
		require.Equal(t, Damage{ToAttacker: 30, ToDefender: 30}, r.Resolve(in, &sequenceSource{values: []float64{0.5}}))
	})

	t.Run("stronger attacker deals the larger share", func(t *testing.T) {
		in := Input{AttackStrength: 20, DefenseStrength: 10, AttackerMaxHealth: 100, DefenderMaxHealth: 100}
		require.Equal(t, Damage{ToAttacker: 17, ToDefender: 52}, r.Expected(in))

		d := r.Resolve(in, &sequenceSource{values: []float64{0.5}})
		require.Equal(t, 52, d.ToDefender)
		require.Equal(t, 17, d.ToAttacker)
	})

	t.Run("weaker attacker takes the larger share", func(t *testing.T) {
		in := Input{AttackStrength: 10, DefenseStrength: 20, AttackerMaxHealth: 100, DefenderMaxHealth: 100}
		require.Equal(t, Damage{ToAttacker: 52, ToDefender: 17}, r.Expected(in))
	})

	t.Run("defender draw comes first", func(t *testing.T) {
		in := Input{AttackStrength: 20, DefenseStrength: 10, AttackerMaxHealth: 100, DefenderMaxHealth: 100}
		src := &sequenceSource{values: []float64{0, 0.99}}

		d := r.Resolve(in, src)
		require.Equal(t, 41, d.ToDefender, "Lowest roll should go to the defender")
		require.Equal(t, 21, d.ToAttacker, "Highest roll should go to the attacker")
		require.Equal(t, 2, src.calls)
	})

	t.Run("ranged attacks never hurt the attacker", func(t *testing.T) {
		src := &sequenceSource{values: []float64{0.99}}
		for _, strengths := range [][2]int{{15, 25}, {25, 15}, {1, 100}, {100, 1}} {
			in := Input{AttackStrength: strengths[0], DefenseStrength: strengths[1], Ranged: true, AttackerMaxHealth: 100, DefenderMaxHealth: 100}
			d := r.Resolve(in, src)
			require.Equal(t, 0, d.ToAttacker, "%v should not hurt the attacker", strengths)
			require.Equal(t, 0, r.Expected(in).ToAttacker)
		}
		require.Equal(t, 4, src.calls, "Ranged attacks should draw once")
	})

	t.Run("defenseless defender falls at once", func(t *testing.T) {
		src := &sequenceSource{values: []float64{0.5}}
		d := r.Resolve(Input{AttackStrength: 8, DefenseStrength: 0, AttackerMaxHealth: 100, DefenderMaxHealth: 100}, src)
		require.Equal(t, Damage{ToDefender: 100}, d)
		require.Equal(t, 0, src.calls, "No draw should be spent")
	})

	t.Run("damage never exceeds max health", func(t *testing.T) {
		in := Input{AttackStrength: 100, DefenseStrength: 1, AttackerMaxHealth: 100, DefenderMaxHealth: 100}
		d := r.Resolve(in, &sequenceSource{values: []float64{0.99}})
		require.Equal(t, 100, d.ToDefender)
		require.GreaterOrEqual(t, d.ToAttacker, 0)
	})

	t.Run("seeded sources replay", func(t *testing.T) {
		a, b := NewSource(42), NewSource(42)
		for attack := 1; attack <= 40; attack++ {
			in := Input{AttackStrength: attack, DefenseStrength: 20, AttackerMaxHealth: 100, DefenderMaxHealth: 200}
			da, db := r.Resolve(in, a), r.Resolve(in, b)
			require.Equal(t, da, db)
			require.True(t, da.ToAttacker >= 0 && da.ToAttacker <= 100)
			require.True(t, da.ToDefender >= 0 && da.ToDefender <= 200)
		}
	})
}

func TestStrengthModifier(t *testing.T) {
	require.Equal(t, 1.0, strengthModifier(1))
	require.Equal(t, strengthModifier(2), strengthModifier(0.5), "The modifier should be symmetric")
	require.InDelta(t, 1.7207, strengthModifier(2), 0.0001)
	require.Greater(t, strengthModifier(3), strengthModifier(2))
}
