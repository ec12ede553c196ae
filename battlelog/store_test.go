package battlelog

import (
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skirmish/combat"
	"skirmish/game"
)

func openMemory(t *testing.T) *Store {
	t.Helper()
	s, err := Open("", zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func battle(attackerCiv, defenderCiv game.CivID, toDefender, toAttacker int, outcome combat.Outcome) combat.Notification {
	return combat.Notification{
		Key: combat.KeyAttacked,
		Result: combat.CombatResult{
			Attacker:         combat.UnitRef(1),
			Defender:         combat.UnitRef(2),
			AttackerName:     "Swordsman",
			DefenderName:     "Warrior",
			AttackerCiv:      attackerCiv,
			DefenderCiv:      defenderCiv,
			DamageToDefender: toDefender,
			DamageToAttacker: toAttacker,
			DefenderOutcome:  outcome,
		},
	}
}

func TestStore(t *testing.T) {
	t.Run("records battles for the current game", func(t *testing.T) {
		s := openMemory(t)
		id, err := s.StartGame(42)
		require.NoError(t, err)
		assert.NotZero(t, id)

		s.SetTurn(2)
		s.Notify(battle(1, 2, 30, 20, combat.Survived))
		s.SetTurn(3)
		s.Notify(battle(1, 2, 70, 5, combat.Destroyed))
		s.Notify(battle(2, 1, 10, 40, combat.Survived))
		require.NoError(t, s.FinishGame("Rome", 3))

		battles, err := s.Recent(10)
		require.NoError(t, err)
		require.Len(t, battles, 3)
		assert.Equal(t, 2, battles[0].AttackerCiv, "Newest battle should come first")
		assert.Equal(t, 3, battles[0].Turn)
		assert.Equal(t, 2, battles[2].Turn)
		assert.Equal(t, id, battles[2].GameID)
		assert.Equal(t, "unit", battles[2].AttackerKind)
		assert.Equal(t, "Swordsman", battles[2].AttackerName)
		assert.Equal(t, "Survived", battles[2].DefenderOutcome)

		summary, err := s.Summary(id)
		require.NoError(t, err)
		assert.Equal(t, []CivSummary{
			{Civ: 1, Attacks: 2, DamageDealt: 100, DamageTaken: 25, Victories: 1},
			{Civ: 2, Attacks: 1, DamageDealt: 10, DamageTaken: 40, Victories: 0},
		}, summary)

		games, err := s.Games()
		require.NoError(t, err)
		require.Len(t, games, 1)
		assert.Equal(t, int64(42), games[0].Seed)
		assert.Equal(t, "Rome", games[0].Winner)
		assert.Equal(t, 3, games[0].Turns)
		assert.NotNil(t, games[0].FinishedAt)
	})

	t.Run("games are kept apart", func(t *testing.T) {
		s := openMemory(t)
		first, err := s.StartGame(1)
		require.NoError(t, err)
		s.Notify(battle(1, 2, 30, 30, combat.Survived))

		second, err := s.StartGame(2)
		require.NoError(t, err)
		s.Notify(battle(2, 1, 30, 30, combat.Survived))
		s.Notify(battle(2, 1, 30, 30, combat.Survived))

		summary, err := s.Summary(first)
		require.NoError(t, err)
		require.Len(t, summary, 1)
		assert.Equal(t, 1, summary[0].Attacks)

		summary, err = s.Summary(second)
		require.NoError(t, err)
		require.Len(t, summary, 1)
		assert.Equal(t, 2, summary[0].Civ)
		assert.Equal(t, 2, summary[0].Attacks)
	})

	t.Run("recent respects the limit", func(t *testing.T) {
		s := openMemory(t)
		_, err := s.StartGame(1)
		require.NoError(t, err)
		for i := 0; i < 5; i++ {
			s.Notify(battle(1, 2, i, 0, combat.Survived))
		}

		battles, err := s.Recent(2)
		require.NoError(t, err)
		require.Len(t, battles, 2)
		assert.Equal(t, 4, battles[0].DamageToDefender)
		assert.Equal(t, 3, battles[1].DamageToDefender)
	})

	t.Run("finishing requires a game", func(t *testing.T) {
		s := openMemory(t)
		assert.Error(t, s.FinishGame("Rome", 1))
	})

	t.Run("file databases persist", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "battles.db")
		s, err := Open(path, zerolog.Nop())
		require.NoError(t, err)
		_, err = s.StartGame(9)
		require.NoError(t, err)
		s.Notify(battle(1, 2, 30, 30, combat.Survived))
		require.NoError(t, s.Close())

		s, err = Open(path, zerolog.Nop())
		require.NoError(t, err)
		defer s.Close()
		battles, err := s.Recent(10)
		require.NoError(t, err)
		assert.Len(t, battles, 1)
	})
}

func TestStoreAsNotifier(t *testing.T) {
	w := game.NewWorld(game.NewGridMap(3, 3, game.Grassland), game.NewStandardRules(), game.StandardRuleset())
	rome, carthage := w.AddCiv("Rome", false), w.AddCiv("Carthage", false)
	a, err := w.AddUnit(rome.ID, "Swordsman", 1)
	require.NoError(t, err)
	d, err := w.AddUnit(carthage.ID, "Warrior", 2)
	require.NoError(t, err)

	s := openMemory(t)
	id, err := s.StartGame(7)
	require.NoError(t, err)
	o := combat.NewOrchestrator(w, combat.WithSeed(7), combat.WithLogger(zerolog.Nop()), combat.WithNotifier(s))

	res, err := o.Attack(combat.UnitRef(a.ID), combat.UnitRef(d.ID), false)
	require.NoError(t, err)

	battles, err := s.Recent(1)
	require.NoError(t, err)
	require.Len(t, battles, 1)
	b := battles[0]
	assert.Equal(t, id, b.GameID)
	assert.Equal(t, int(rome.ID), b.AttackerCiv)
	assert.Equal(t, int(carthage.ID), b.DefenderCiv)
	assert.Equal(t, res.DamageToDefender, b.DamageToDefender)
	assert.Equal(t, res.DamageToAttacker, b.DamageToAttacker)
	assert.Equal(t, res.DefenderOutcome.String(), b.DefenderOutcome)
	assert.False(t, b.Ranged)
}
