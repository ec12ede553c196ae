package game

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"sort"
)

// StateHash fingerprints a world for replay checks.
type StateHash uint64

// World is the registry that owns every entity taking part in combat. Combat
// code refers to entities by ID and resolves them here.
type World struct {
	Map     *Map                    // Static tiles, mutated only through occupancy slots
	Rules   Rules                   // The set of combat rules to apply
	Ruleset Ruleset                 // Base unit stats by name
	Civs    map[CivID]*Civilization // Civilizations by ID
	Units   map[UnitID]*Unit        // Live units by ID
	Cities  map[CityID]*City        // Cities by ID
	Turn    int                     // Current turn, starting at 1

	nextIDs idCounters
}

type idCounters struct {
	unit, city, civ int
}

// NewWorld initializes and returns an empty World on the given map.
func NewWorld(m *Map, rules Rules, ruleset Ruleset) *World {
	return &World{
		Map:     m,
		Rules:   rules,
		Ruleset: ruleset,
		Civs:    make(map[CivID]*Civilization),
		Units:   make(map[UnitID]*Unit),
		Cities:  make(map[CityID]*City),
		Turn:    1,
	}
}

// AddCiv registers a new civilization.
func (w *World) AddCiv(name string, barbarian bool) *Civilization {
	w.nextIDs.civ++
	civ := NewCivilization(CivID(w.nextIDs.civ), name)
	civ.Barbarian = barbarian
	w.Civs[civ.ID] = civ
	return civ
}

// AddUnit creates a unit of the named base kind on a tile.
func (w *World) AddUnit(owner CivID, baseName string, tileID TileID) (*Unit, error) {
	civ, ok := w.Civs[owner]
	if !ok {
		return nil, fmt.Errorf("cannot add unit: unknown civilization %d", owner)
	}
	base, ok := w.Ruleset[baseName]
	if !ok {
		return nil, fmt.Errorf("cannot add unit: unknown base unit %q", baseName)
	}
	tile, ok := w.Map.Tiles[tileID]
	if !ok {
		return nil, fmt.Errorf("cannot add unit: unknown tile %d", tileID)
	}
	if tile.Terrain.Impassable {
		return nil, fmt.Errorf("cannot add unit: %s is impassable", tile.Terrain.Name)
	}
	if base.Domain == Water && !tile.Terrain.Water {
		return nil, fmt.Errorf("cannot add unit: %s cannot stand on %s", base.Name, tile.Terrain.Name)
	}
	if err := w.checkSlot(tile, base, owner); err != nil {
		return nil, fmt.Errorf("cannot add unit: %w", err)
	}

	w.nextIDs.unit++
	u := &Unit{
		ID:     UnitID(w.nextIDs.unit),
		Name:   base.Name,
		Base:   base,
		Owner:  owner,
		Tile:   tileID,
		Health: w.Rules.UnitMaxHealth(),
		Status: Healthy,
	}
	w.Units[u.ID] = u
	civ.Units[u.ID] = struct{}{}
	w.occupy(tile, u)
	return u, nil
}

// AddCity founds a city on a tile.
func (w *World) AddCity(owner CivID, name string, tileID TileID, population int, capital bool) (*City, error) {
	civ, ok := w.Civs[owner]
	if !ok {
		return nil, fmt.Errorf("cannot add city: unknown civilization %d", owner)
	}
	tile, ok := w.Map.Tiles[tileID]
	if !ok {
		return nil, fmt.Errorf("cannot add city: unknown tile %d", tileID)
	}
	if tile.City != 0 {
		return nil, fmt.Errorf("cannot add city: tile %d already holds a city", tileID)
	}
	if tile.Terrain.Water || tile.Terrain.Impassable {
		return nil, fmt.Errorf("cannot add city: %s is not buildable", tile.Terrain.Name)
	}

	w.nextIDs.city++
	c := &City{
		ID:         CityID(w.nextIDs.city),
		Name:       name,
		Owner:      owner,
		Tile:       tileID,
		Health:     w.Rules.CityMaxHealth(),
		Population: population,
		Capital:    capital,
	}
	w.Cities[c.ID] = c
	civ.Cities[c.ID] = struct{}{}
	tile.City = c.ID
	return c, nil
}

// AddWalls raises a city's defense and max health, healing it by the added amount.
func (w *World) AddWalls(id CityID, defense, health int) error {
	c, ok := w.Cities[id]
	if !ok {
		return fmt.Errorf("cannot build walls: unknown city %d", id)
	}
	c.BuildingDefense += defense
	c.BuildingHealth += health
	c.Health += health
	return nil
}

// Unit returns a live unit.
func (w *World) Unit(id UnitID) (*Unit, bool) {
	u, ok := w.Units[id]
	return u, ok
}

// City returns a city.
func (w *World) City(id CityID) (*City, bool) {
	c, ok := w.Cities[id]
	return c, ok
}

// Tile returns a tile.
func (w *World) Tile(id TileID) (*Tile, bool) {
	t, ok := w.Map.Tiles[id]
	return t, ok
}

// Civ returns a civilization.
func (w *World) Civ(id CivID) (*Civilization, bool) {
	c, ok := w.Civs[id]
	return c, ok
}

// MilitaryAt returns the military unit on a tile, if any.
func (w *World) MilitaryAt(tileID TileID) *Unit {
	t, ok := w.Map.Tiles[tileID]
	if !ok || t.MilitaryUnit == 0 {
		return nil
	}
	return w.Units[t.MilitaryUnit]
}

// CivilianAt returns the civilian unit on a tile, if any.
func (w *World) CivilianAt(tileID TileID) *Unit {
	t, ok := w.Map.Tiles[tileID]
	if !ok || t.CivilianUnit == 0 {
		return nil
	}
	return w.Units[t.CivilianUnit]
}

// CityAt returns the city on a tile, if any.
func (w *World) CityAt(tileID TileID) *City {
	t, ok := w.Map.Tiles[tileID]
	if !ok || t.City == 0 {
		return nil
	}
	return w.Cities[t.City]
}

// IsEmbarked reports whether a land unit is currently on water.
func (w *World) IsEmbarked(u *Unit) bool {
	if u.Base.Domain != Land {
		return false
	}
	t, ok := w.Map.Tiles[u.Tile]
	return ok && t.Terrain.Water
}

// CanEnter reports whether a unit could stand on a tile, ignoring occupants.
func (w *World) CanEnter(u *Unit, tileID TileID) bool {
	t, ok := w.Map.Tiles[tileID]
	if !ok || t.Terrain.Impassable {
		return false
	}
	if u.Base.Domain == Water {
		return t.Terrain.Water || t.City != 0
	}
	return true
}

// CanMoveTo reports whether a unit could move onto a tile right now.
func (w *World) CanMoveTo(u *Unit, tileID TileID) bool {
	t, ok := w.Map.Tiles[tileID]
	return ok && w.CanEnter(u, tileID) && w.checkSlot(t, u.Base, u.Owner) == nil
}

// FortifyBonus returns the percent defense bonus a unit has from fortifying.
func (w *World) FortifyBonus(u *Unit) int {
	return min(u.FortifiedTurns*w.Rules.FortifyBonusPerTurn(), w.Rules.MaxFortifyBonus())
}

// Garrison returns the military unit defending a city, if any.
func (w *World) Garrison(c *City) *Unit {
	u := w.MilitaryAt(c.Tile)
	if u == nil || u.Owner != c.Owner {
		return nil
	}
	return u
}

// RemoveUnit takes a unit out of the registry, its owner and its tile.
func (w *World) RemoveUnit(id UnitID) error {
	u, ok := w.Units[id]
	if !ok {
		return fmt.Errorf("cannot remove unit: unknown unit %d", id)
	}
	if t, ok := w.Map.Tiles[u.Tile]; ok {
		w.vacate(t, u)
	}
	if civ, ok := w.Civs[u.Owner]; ok {
		delete(civ.Units, id)
	}
	delete(w.Units, id)
	return nil
}

// MoveUnit relocates a unit to another tile.
func (w *World) MoveUnit(id UnitID, to TileID) error {
	u, ok := w.Units[id]
	if !ok {
		return fmt.Errorf("cannot move unit: unknown unit %d", id)
	}
	dest, ok := w.Map.Tiles[to]
	if !ok {
		return fmt.Errorf("cannot move unit: unknown tile %d", to)
	}
	if !w.CanEnter(u, to) {
		return fmt.Errorf("cannot move unit: %s cannot enter %s", u, dest.Terrain.Name)
	}
	if err := w.checkSlot(dest, u.Base, u.Owner); err != nil {
		return fmt.Errorf("cannot move unit: %w", err)
	}
	if from, ok := w.Map.Tiles[u.Tile]; ok {
		w.vacate(from, u)
	}
	u.Tile = to
	u.FortifiedTurns = 0
	w.occupy(dest, u)
	return nil
}

// TransferCity hands a city to another civilization.
func (w *World) TransferCity(id CityID, newOwner CivID) error {
	c, ok := w.Cities[id]
	if !ok {
		return fmt.Errorf("cannot transfer city: unknown city %d", id)
	}
	to, ok := w.Civs[newOwner]
	if !ok {
		return fmt.Errorf("cannot transfer city: unknown civilization %d", newOwner)
	}
	if from, ok := w.Civs[c.Owner]; ok {
		delete(from.Cities, id)
	}
	to.Cities[id] = struct{}{}
	c.Owner = newOwner
	c.Capital = false
	return nil
}

// StartTurn runs upkeep for a civilization: heals what rested and resets attacks.
func (w *World) StartTurn(civID CivID) {
	civ, ok := w.Civs[civID]
	if !ok {
		return
	}
	for _, id := range civ.UnitIDs() {
		u := w.Units[id]
		heal := w.Rules.UnitHealPerTurn()
		if !u.ActedThisTurn {
			heal *= 2
			u.FortifiedTurns++
		}
		u.Health = min(u.Health+heal, w.Rules.UnitMaxHealth())
		u.refreshStatus(w.Rules.UnitMaxHealth())
		u.AttacksThisTurn = 0
		u.ActedThisTurn = false
	}
	for _, id := range civ.CityIDs() {
		c := w.Cities[id]
		if !c.DamagedThisTurn {
			c.Health = min(c.Health+w.Rules.CityHealPerTurn(), c.MaxHealth(w.Rules))
		}
		c.AttackedThisTurn = false
		c.DamagedThisTurn = false
	}
}

// RefreshStatus re-derives a unit's Healthy or Damaged status from its health.
func (w *World) RefreshStatus(u *Unit) {
	u.refreshStatus(w.Rules.UnitMaxHealth())
}

// Winner returns the only surviving non-barbarian civilization, if there is exactly one.
func (w *World) Winner() (CivID, bool) {
	var alive []CivID
	for id, civ := range w.Civs {
		if !civ.Barbarian && civ.IsAlive() {
			alive = append(alive, id)
		}
	}
	if len(alive) != 1 {
		return 0, false
	}
	return alive[0], true
}

// CivIDs returns all civilizations in ascending ID order.
func (w *World) CivIDs() []CivID {
	ids := make([]CivID, 0, len(w.Civs))
	for id := range w.Civs {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (w *World) checkSlot(tile *Tile, base *BaseUnit, owner CivID) error {
	if tile.City != 0 && w.Cities[tile.City].Owner != owner {
		return fmt.Errorf("tile %d holds a foreign city", tile.ID)
	}
	if base.Type.IsCivilian() {
		if tile.CivilianUnit != 0 {
			return fmt.Errorf("tile %d already holds a civilian", tile.ID)
		}
		if m := w.Units[tile.MilitaryUnit]; m != nil && m.Owner != owner {
			return fmt.Errorf("tile %d holds a foreign military unit", tile.ID)
		}
		return nil
	}
	if tile.MilitaryUnit != 0 {
		return fmt.Errorf("tile %d already holds a military unit", tile.ID)
	}
	if c := w.Units[tile.CivilianUnit]; c != nil && c.Owner != owner {
		return fmt.Errorf("tile %d holds a foreign civilian", tile.ID)
	}
	return nil
}

func (w *World) occupy(t *Tile, u *Unit) {
	if u.Base.Type.IsCivilian() {
		t.CivilianUnit = u.ID
	} else {
		t.MilitaryUnit = u.ID
	}
}

func (w *World) vacate(t *Tile, u *Unit) {
	if t.CivilianUnit == u.ID {
		t.CivilianUnit = 0
	}
	if t.MilitaryUnit == u.ID {
		t.MilitaryUnit = 0
	}
}

// Copy returns a deep copy of the world. Rules and Ruleset are shared.
func (w *World) Copy() *World {
	m := NewMap()
	for id, t := range w.Map.Tiles {
		tc := *t
		tc.AdjacentIDs = append([]TileID(nil), t.AdjacentIDs...)
		m.Tiles[id] = &tc
	}

	cp := NewWorld(m, w.Rules, w.Ruleset)
	cp.Turn = w.Turn
	cp.nextIDs = w.nextIDs
	for id, civ := range w.Civs {
		cc := NewCivilization(civ.ID, civ.Name)
		cc.Barbarian = civ.Barbarian
		for uid := range civ.Units {
			cc.Units[uid] = struct{}{}
		}
		for cid := range civ.Cities {
			cc.Cities[cid] = struct{}{}
		}
		cp.Civs[id] = cc
	}
	for id, u := range w.Units {
		uc := *u
		uc.Promotions = append([]Promotion(nil), u.Promotions...)
		cp.Units[id] = &uc
	}
	for id, c := range w.Cities {
		cc := *c
		cp.Cities[id] = &cc
	}
	return cp
}

// Hash returns a fingerprint of all mutable combat state, in ID order.
func (w *World) Hash() StateHash {
	hasher := fnv.New64a()
	write := func(v int) { binary.Write(hasher, binary.LittleEndian, int64(v)) }

	write(w.Turn)

	unitIDs := make([]int, 0, len(w.Units))
	for id := range w.Units {
		unitIDs = append(unitIDs, int(id))
	}
	sort.Ints(unitIDs)
	for _, id := range unitIDs {
		u := w.Units[UnitID(id)]
		write(id)
		write(int(u.Owner))
		write(int(u.Tile))
		write(u.Health)
		write(u.Experience)
		write(int(u.Status))
		write(u.AttacksThisTurn)
		hasher.Write([]byte(u.Base.Name))
	}

	cityIDs := make([]int, 0, len(w.Cities))
	for id := range w.Cities {
		cityIDs = append(cityIDs, int(id))
	}
	sort.Ints(cityIDs)
	for _, id := range cityIDs {
		c := w.Cities[CityID(id)]
		write(id)
		write(int(c.Owner))
		write(c.Health)
	}

	return StateHash(hasher.Sum64())
}
