package game

import "sort"

// CivID identifies a civilization. Zero means none.
type CivID int

// Civilization owns units and cities through the world registry.
type Civilization struct {
	ID        CivID
	Name      string
	Barbarian bool
	Units     map[UnitID]struct{}
	Cities    map[CityID]struct{}
}

// NewCivilization returns a civilization with empty registries.
func NewCivilization(id CivID, name string) *Civilization {
	return &Civilization{
		ID:     id,
		Name:   name,
		Units:  make(map[UnitID]struct{}),
		Cities: make(map[CityID]struct{}),
	}
}

// UnitIDs returns the civilization's units in ascending ID order.
func (c *Civilization) UnitIDs() []UnitID {
	ids := make([]UnitID, 0, len(c.Units))
	for id := range c.Units {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// CityIDs returns the civilization's cities in ascending ID order.
func (c *Civilization) CityIDs() []CityID {
	ids := make([]CityID, 0, len(c.Cities))
	for id := range c.Cities {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// IsAlive reports whether the civilization still has anything on the map.
func (c *Civilization) IsAlive() bool {
	return len(c.Units) > 0 || len(c.Cities) > 0
}
