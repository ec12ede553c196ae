package combat

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"skirmish/game"
)

// sequenceSource replays fixed draws and counts how many were taken.
type sequenceSource struct {
	values []float64
	calls  int
}

func (s *sequenceSource) Float64() float64 {
	v := s.values[s.calls%len(s.values)]
	s.calls++
	return v
}

// newTestWorld returns a 5x5 grassland world with two civilizations. Tile IDs
// run row by row from 1, so tiles 1, 2 and 3 sit on a line.
func newTestWorld(t *testing.T) (*game.World, *game.Civilization, *game.Civilization) {
	t.Helper()
	w := game.NewWorld(game.NewGridMap(5, 5, game.Grassland), game.NewStandardRules(), game.StandardRuleset())
	w.Ruleset["Titan"] = &game.BaseUnit{Name: "Titan", Type: game.Melee, Strength: 30}
	w.Ruleset["Champion"] = &game.BaseUnit{Name: "Champion", Type: game.Melee, Strength: 20}
	w.Ruleset["Militia"] = &game.BaseUnit{Name: "Militia", Type: game.Melee, Strength: 10}
	w.Ruleset["Longbow"] = &game.BaseUnit{Name: "Longbow", Type: game.Ranged, Strength: 8, RangedStrength: 15, Range: 2}
	w.Ruleset["Bulwark"] = &game.BaseUnit{Name: "Bulwark", Type: game.Melee, Strength: 25}
	return w, w.AddCiv("Rome", false), w.AddCiv("Carthage", false)
}

func mustUnit(t *testing.T, w *game.World, civ *game.Civilization, name string, tile game.TileID) *game.Unit {
	t.Helper()
	u, err := w.AddUnit(civ.ID, name, tile)
	require.NoError(t, err)
	return u
}

func mustCity(t *testing.T, w *game.World, civ *game.Civilization, name string, tile game.TileID, population int) *game.City {
	t.Helper()
	c, err := w.AddCity(civ.ID, name, tile, population, false)
	require.NoError(t, err)
	return c
}

func mustWrap(t *testing.T, w *game.World, ref Ref, opts ...WrapOption) Combatant {
	t.Helper()
	c, err := Wrap(w, ref, opts...)
	require.NoError(t, err)
	return c
}

func quietOrchestrator(w *game.World, opts ...Option) *Orchestrator {
	return NewOrchestrator(w, append([]Option{WithLogger(zerolog.Nop())}, opts...)...)
}
