package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPromote(t *testing.T) {
	rs := StandardRuleset()

	t.Run("needs experience", func(t *testing.T) {
		u := &Unit{Base: rs["Warrior"], Experience: 9}
		require.False(t, u.CanPromote())
		require.Error(t, u.Promote("Shock I"))
		require.Empty(t, u.Promotions)
	})

	t.Run("spends experience", func(t *testing.T) {
		u := &Unit{Base: rs["Warrior"], Experience: 25}
		require.NoError(t, u.Promote("Shock I"))
		require.Equal(t, 15, u.Experience)
		require.Equal(t, 20, u.XPForNextPromotion(), "Each promotion raises the next threshold")
		require.Error(t, u.Promote("Shock I"), "A promotion cannot be taken twice")
		require.Error(t, u.Promote("Nonsense"))
	})
}

func TestPromotionScope(t *testing.T) {
	cover := Promotions["Cover I"]
	require.True(t, cover.AppliesTo(false, Ranged, ""))
	require.False(t, cover.AppliesTo(true, Ranged, ""), "Defensive promotions do not help attacks")
	require.False(t, cover.AppliesTo(false, Melee, ""), "Cover only counts against ranged units")

	shock := Promotions["Shock I"]
	require.True(t, shock.AppliesTo(true, Melee, Grassland.Name))
	require.False(t, shock.AppliesTo(true, Melee, Forest.Name))

	drill := Promotions["Drill I"]
	require.True(t, drill.AppliesTo(true, Melee, Forest.Name))
	require.True(t, drill.AppliesTo(false, Melee, Forest.Name))
}

func TestBaseUnit(t *testing.T) {
	rs := StandardRuleset()
	require.False(t, rs["Warrior"].IsRanged())
	require.Equal(t, 1, rs["Warrior"].AttackRange())
	require.True(t, rs["Archer"].IsRanged())
	require.Equal(t, 2, rs["Archer"].AttackRange())
	require.Equal(t, 1, rs["Archer"].MaxAttacks())
	require.True(t, rs["Settler"].Type.IsCivilian())
	require.False(t, CityType.IsMilitary())
	require.Equal(t, "Destroyed", Destroyed.String())
	require.True(t, Captured.IsTerminal())
	require.False(t, Defeated.IsTerminal())
}
