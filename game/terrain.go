package game

// Terrain describes the static properties of a tile's base terrain.
type Terrain struct {
	Name         string
	DefenseBonus int  // Percent added to a unit defending on this terrain (may be negative)
	Water        bool // Land units on water tiles are embarked
	Impassable   bool
}

var (
	Grassland = Terrain{Name: "Grassland"}
	Plains    = Terrain{Name: "Plains"}
	Hills     = Terrain{Name: "Hills", DefenseBonus: 25}
	Forest    = Terrain{Name: "Forest", DefenseBonus: 25}
	Jungle    = Terrain{Name: "Jungle", DefenseBonus: 25}
	Marsh     = Terrain{Name: "Marsh", DefenseBonus: -15}
	Coast     = Terrain{Name: "Coast", Water: true}
	Ocean     = Terrain{Name: "Ocean", Water: true}
	Mountain  = Terrain{Name: "Mountain", Impassable: true}
)

// Terrains lists the standard terrains by name.
var Terrains = map[string]Terrain{
	Grassland.Name: Grassland,
	Plains.Name:    Plains,
	Hills.Name:     Hills,
	Forest.Name:    Forest,
	Jungle.Name:    Jungle,
	Marsh.Name:     Marsh,
	Coast.Name:     Coast,
	Ocean.Name:     Ocean,
	Mountain.Name:  Mountain,
}
