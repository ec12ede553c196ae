package game

import "fmt"

// TileID identifies a tile on the map. Zero means none.
type TileID int

type Tile struct {
	ID           TileID  // Unique identifier for the tile
	X, Y         int     // Grid position
	Terrain      Terrain // Base terrain
	AdjacentIDs  []TileID
	MilitaryUnit UnitID // Military unit occupying the tile, 0 if none
	CivilianUnit UnitID // Civilian unit occupying the tile, 0 if none
	City         CityID // City on the tile, 0 if none
}

// Map represents the game map, containing all the tiles.
type Map struct {
	Tiles map[TileID]*Tile // Maps tile IDs to Tile pointers
}

// NewMap creates and returns a new Map instance.
func NewMap() *Map {
	return &Map{
		Tiles: make(map[TileID]*Tile),
	}
}

// AddTile adds a new tile to the map.
func (m *Map) AddTile(tile *Tile) {
	m.Tiles[tile.ID] = tile
}

// AddBorder adds a bidirectional border between two tiles.
func (m *Map) AddBorder(tileID1, tileID2 TileID) {
	if !contains(m.Tiles[tileID1].AdjacentIDs, tileID2) {
		m.Tiles[tileID1].AdjacentIDs = append(m.Tiles[tileID1].AdjacentIDs, tileID2)
	}
	if !contains(m.Tiles[tileID2].AdjacentIDs, tileID1) {
		m.Tiles[tileID2].AdjacentIDs = append(m.Tiles[tileID2].AdjacentIDs, tileID1)
	}
}

// contains checks if a slice contains a specific item.
func contains(slice []TileID, item TileID) bool {
	for _, v := range slice {
		if v == item {
			return true
		}
	}
	return false
}

// AreAdjacent checks if two tiles share a border.
func (m *Map) AreAdjacent(tileID1, tileID2 TileID) bool {
	t, ok := m.Tiles[tileID1]
	if !ok {
		return false
	}
	return contains(t.AdjacentIDs, tileID2)
}

// Distance returns the number of borders crossed on the shortest path between
// two tiles, or -1 if either tile is missing or they are not connected.
// Just BFS
func (m *Map) Distance(fromID, toID TileID) int {
	if _, ok := m.Tiles[fromID]; !ok {
		return -1
	}
	if _, ok := m.Tiles[toID]; !ok {
		return -1
	}
	if fromID == toID {
		return 0
	}
	visited := map[TileID]bool{fromID: true}
	queue := []TileID{fromID}
	for depth := 1; len(queue) > 0; depth++ {
		var next []TileID
		for _, current := range queue {
			for _, adjID := range m.Tiles[current].AdjacentIDs {
				if adjID == toID {
					return depth
				}
				if !visited[adjID] {
					visited[adjID] = true
					next = append(next, adjID)
				}
			}
		}
		queue = next
	}
	return -1
}

// TileAt returns the tile at a grid position on maps built by NewGridMap.
func (m *Map) TileAt(x, y int) (*Tile, error) {
	for _, t := range m.Tiles {
		if t.X == x && t.Y == y {
			return t, nil
		}
	}
	return nil, fmt.Errorf("no tile at (%d,%d)", x, y)
}

// NewGridMap builds a width x height map of the given terrain where every tile
// borders its eight neighbours. Tile IDs start at 1 and run row by row.
func NewGridMap(width, height int, terrain Terrain) *Map {
	m := NewMap()
	id := func(x, y int) TileID { return TileID(y*width + x + 1) }

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			m.AddTile(&Tile{ID: id(x, y), X: x, Y: y, Terrain: terrain, AdjacentIDs: []TileID{}})
		}
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			for _, d := range [][2]int{{1, 0}, {0, 1}, {1, 1}, {1, -1}} {
				nx, ny := x+d[0], y+d[1]
				if nx < 0 || ny < 0 || nx >= width || ny >= height {
					continue
				}
				m.AddBorder(id(x, y), id(nx, ny))
			}
		}
	}
	return m
}
