package engine

import (
	"fmt"
	"sort"

	"golang.org/x/exp/rand"

	"skirmish/config"
	"skirmish/game"
)

var terrainWeights = []struct {
	terrain game.Terrain
	weight  int
}{
	{game.Grassland, 45},
	{game.Plains, 20},
	{game.Hills, 12},
	{game.Forest, 12},
	{game.Marsh, 6},
	{game.Mountain, 5},
}

var barbarianCamp = []string{"Brute", "Warrior"}

// Setup builds a skirmish between Rome in the west and Carthage in the east.
// The same settings always build the same world.
func Setup(s config.Skirmish, rules game.Rules) (*game.World, error) {
	if s.Width < 2 || s.Height < 2 {
		return nil, fmt.Errorf("cannot set up skirmish: map must be at least 2x2, got %dx%d", s.Width, s.Height)
	}
	rng := rand.New(rand.NewSource(s.Seed))

	m := game.NewGridMap(s.Width, s.Height, game.Grassland)
	for id := 1; id <= s.Width*s.Height; id++ {
		m.Tiles[game.TileID(id)].Terrain = randomTerrain(rng)
	}
	w := game.NewWorld(m, rules, game.StandardRuleset())

	sides := []struct {
		civ, city string
		x         int
	}{
		{"Rome", "Roma", 1},
		{"Carthage", "Carthago", s.Width - 2},
	}
	for _, side := range sides {
		civ := w.AddCiv(side.civ, false)
		capital, err := m.TileAt(side.x, s.Height/2)
		if err != nil {
			return nil, fmt.Errorf("cannot set up skirmish: %w", err)
		}
		capital.Terrain = game.Grassland
		city, err := w.AddCity(civ.ID, side.city, capital.ID, s.CityPopulation, true)
		if err != nil {
			return nil, fmt.Errorf("cannot set up skirmish: %w", err)
		}
		if s.Walls {
			if err := w.AddWalls(city.ID, 5, 50); err != nil {
				return nil, fmt.Errorf("cannot set up skirmish: %w", err)
			}
		}
		if err := deploy(w, civ.ID, capital.ID, s.Army); err != nil {
			return nil, err
		}
	}

	if s.Barbarians {
		camp, err := m.TileAt(s.Width/2, 0)
		if err != nil {
			return nil, fmt.Errorf("cannot set up skirmish: %w", err)
		}
		barbarians := w.AddCiv("Barbarians", true)
		if err := deploy(w, barbarians.ID, camp.ID, barbarianCamp); err != nil {
			return nil, err
		}
	}
	return w, nil
}

func randomTerrain(rng *rand.Rand) game.Terrain {
	total := 0
	for _, tw := range terrainWeights {
		total += tw.weight
	}
	roll := rng.Intn(total)
	for _, tw := range terrainWeights {
		if roll < tw.weight {
			return tw.terrain
		}
		roll -= tw.weight
	}
	return game.Grassland
}

// deploy places each unit on the free tile closest to origin.
func deploy(w *game.World, civ game.CivID, origin game.TileID, army []string) error {
	tiles := make([]game.TileID, 0, len(w.Map.Tiles))
	distance := make(map[game.TileID]int, len(w.Map.Tiles))
	for id := range w.Map.Tiles {
		if d := w.Map.Distance(origin, id); d >= 0 {
			tiles = append(tiles, id)
			distance[id] = d
		}
	}
	sort.Slice(tiles, func(i, j int) bool {
		if distance[tiles[i]] != distance[tiles[j]] {
			return distance[tiles[i]] < distance[tiles[j]]
		}
		return tiles[i] < tiles[j]
	})

	for _, name := range army {
		base, ok := w.Ruleset[name]
		if !ok {
			return fmt.Errorf("cannot set up skirmish: unknown unit %q", name)
		}
		placed := false
		for _, id := range tiles {
			if t := w.Map.Tiles[id]; t.Terrain.Water != (base.Domain == game.Water) {
				continue
			}
			if _, err := w.AddUnit(civ, name, id); err == nil {
				placed = true
				break
			}
		}
		if !placed {
			return fmt.Errorf("cannot set up skirmish: no room for %s", name)
		}
	}
	return nil
}
