package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestWorld(t *testing.T) (*World, *Civilization, *Civilization) {
	t.Helper()
	w := NewWorld(NewGridMap(4, 4, Grassland), NewStandardRules(), StandardRuleset())
	return w, w.AddCiv("Rome", false), w.AddCiv("Carthage", false)
}

func TestGridMap(t *testing.T) {
	m := NewGridMap(3, 3, Plains)

	t.Run("adjacency", func(t *testing.T) {
		require.Equal(t, 9, len(m.Tiles))
		require.True(t, m.AreAdjacent(1, 2), "Horizontal neighbours should border")
		require.True(t, m.AreAdjacent(1, 5), "Diagonal neighbours should border")
		require.True(t, m.AreAdjacent(5, 1), "Borders should be bidirectional")
		require.False(t, m.AreAdjacent(1, 3), "Tiles two apart should not border")
		require.Equal(t, 8, len(m.Tiles[5].AdjacentIDs), "Center tile should have 8 neighbours")
	})

	t.Run("distance", func(t *testing.T) {
		require.Equal(t, 0, m.Distance(1, 1))
		require.Equal(t, 1, m.Distance(1, 5))
		require.Equal(t, 2, m.Distance(1, 9))
		require.Equal(t, -1, m.Distance(1, 42), "Unknown tiles have no distance")
	})

	t.Run("tile lookup", func(t *testing.T) {
		tile, err := m.TileAt(2, 1)
		require.NoError(t, err)
		require.Equal(t, TileID(6), tile.ID)
		_, err = m.TileAt(5, 5)
		require.Error(t, err)
	})
}

func TestWorldUnits(t *testing.T) {
	t.Run("adding units fills slots", func(t *testing.T) {
		w, rome, carthage := newTestWorld(t)

		warrior, err := w.AddUnit(rome.ID, "Warrior", 1)
		require.NoError(t, err)
		require.Equal(t, 100, warrior.Health)
		require.Equal(t, Healthy, warrior.Status)
		require.Equal(t, warrior, w.MilitaryAt(1))

		settler, err := w.AddUnit(rome.ID, "Settler", 1)
		require.NoError(t, err, "A civilian may share a tile with a friendly military unit")
		require.Equal(t, settler, w.CivilianAt(1))

		_, err = w.AddUnit(rome.ID, "Archer", 1)
		require.Error(t, err, "Only one military unit per tile")
		_, err = w.AddUnit(carthage.ID, "Worker", 1)
		require.Error(t, err, "A civilian may not stack with a foreign military unit")
		_, err = w.AddUnit(rome.ID, "Knight", 2)
		require.Error(t, err, "Unknown base units are rejected")

		require.Equal(t, []UnitID{warrior.ID, settler.ID}, rome.UnitIDs())
	})

	t.Run("removing a unit clears its slot and owner", func(t *testing.T) {
		w, rome, _ := newTestWorld(t)
		warrior, err := w.AddUnit(rome.ID, "Warrior", 1)
		require.NoError(t, err)

		require.NoError(t, w.RemoveUnit(warrior.ID))
		require.Nil(t, w.MilitaryAt(1))
		require.Empty(t, rome.Units)
		_, ok := w.Unit(warrior.ID)
		require.False(t, ok)
		require.Error(t, w.RemoveUnit(warrior.ID))
	})

	t.Run("moving", func(t *testing.T) {
		w, rome, _ := newTestWorld(t)
		worker, err := w.AddUnit(rome.ID, "Worker", 1)
		require.NoError(t, err)

		require.NoError(t, w.MoveUnit(worker.ID, 2))
		require.Nil(t, w.CivilianAt(1))
		require.Equal(t, worker, w.CivilianAt(2))
		require.Equal(t, TileID(2), worker.Tile)
	})

	t.Run("embarkation", func(t *testing.T) {
		w, rome, _ := newTestWorld(t)
		w.Map.Tiles[4].Terrain = Coast
		warrior, err := w.AddUnit(rome.ID, "Warrior", 4)
		require.NoError(t, err)
		trireme, err := w.AddUnit(rome.ID, "Trireme", 3)
		require.Error(t, err, "Naval units cannot stand on land")
		require.Nil(t, trireme)

		require.True(t, w.IsEmbarked(warrior))
		require.NoError(t, w.MoveUnit(warrior.ID, 8))
		require.False(t, w.IsEmbarked(warrior))
	})
}

func TestWorldCities(t *testing.T) {
	w, rome, carthage := newTestWorld(t)
	city, err := w.AddCity(rome.ID, "Roma", 6, 5, true)
	require.NoError(t, err)
	require.Equal(t, 200, city.MaxHealth(w.Rules))

	_, err = w.AddCity(carthage.ID, "Utica", 6, 1, false)
	require.Error(t, err, "Only one city per tile")

	require.NoError(t, w.AddWalls(city.ID, 5, 50))
	require.Equal(t, 250, city.MaxHealth(w.Rules))
	require.Equal(t, 250, city.Health)

	_, err = w.AddUnit(carthage.ID, "Warrior", 6)
	require.Error(t, err, "Foreign units cannot enter a city")

	require.NoError(t, w.TransferCity(city.ID, carthage.ID))
	require.Equal(t, carthage.ID, city.Owner)
	require.False(t, city.Capital, "A captured capital is no longer a capital")
	require.Contains(t, carthage.Cities, city.ID)
	require.NotContains(t, rome.Cities, city.ID)
}

func TestStartTurn(t *testing.T) {
	w, rome, _ := newTestWorld(t)
	rested, _ := w.AddUnit(rome.ID, "Warrior", 1)
	fought, _ := w.AddUnit(rome.ID, "Archer", 2)
	city, _ := w.AddCity(rome.ID, "Roma", 6, 3, false)

	rested.Health, rested.Status = 50, Damaged
	fought.Health, fought.Status = 95, Damaged
	fought.ActedThisTurn = true
	fought.AttacksThisTurn = 1
	city.Health = 150

	w.StartTurn(rome.ID)

	require.Equal(t, 70, rested.Health, "Rested units heal double")
	require.Equal(t, 1, rested.FortifiedTurns)
	require.Equal(t, 100, fought.Health, "Healing is capped at max health")
	require.Equal(t, Healthy, fought.Status)
	require.Equal(t, 0, fought.AttacksThisTurn)
	require.False(t, fought.ActedThisTurn)
	require.Equal(t, 170, city.Health)
	require.Equal(t, 20, w.FortifyBonus(rested))
}

func TestCopyAndHash(t *testing.T) {
	w, rome, carthage := newTestWorld(t)
	u, _ := w.AddUnit(rome.ID, "Warrior", 1)
	w.AddUnit(carthage.ID, "Archer", 2)
	w.AddCity(carthage.ID, "Carthago", 16, 4, true)

	cp := w.Copy()
	require.Equal(t, w.Hash(), cp.Hash(), "Copies should hash equally")

	cp.Units[u.ID].Health = 40
	require.Equal(t, 100, u.Health, "Copies should not share units")
	require.NotEqual(t, w.Hash(), cp.Hash(), "Health changes should change the hash")

	require.NoError(t, cp.MoveUnit(u.ID, 5))
	require.Equal(t, u, w.MilitaryAt(1), "Copies should not share tiles")
}

func TestWinnerAndEvaluation(t *testing.T) {
	w, rome, carthage := newTestWorld(t)
	w.AddCiv("Barbarians", true)
	w.AddUnit(rome.ID, "Warrior", 1)
	c, _ := w.AddUnit(carthage.ID, "Warrior", 16)

	_, ok := w.Winner()
	require.False(t, ok)
	require.Equal(t, 0.0, EvaluateForces(w, rome.ID, carthage.ID))

	c.Health = 50
	require.Greater(t, EvaluateForces(w, rome.ID, carthage.ID), 0.0)

	require.NoError(t, w.RemoveUnit(c.ID))
	winner, ok := w.Winner()
	require.True(t, ok)
	require.Equal(t, rome.ID, winner)
}
