package game

import "fmt"

// CityID identifies a city in the world registry. Zero means none.
type CityID int

// City is a static, fortified settlement.
type City struct {
	ID               CityID
	Name             string
	Owner            CivID
	Tile             TileID
	Health           int
	Population       int
	Capital          bool
	BuildingDefense  int // Defense from walls and castles, in strength points
	BuildingHealth   int // Extra max health from walls and castles
	AttackedThisTurn bool
	DamagedThisTurn  bool
}

// MaxHealth returns the city's full health.
func (c *City) MaxHealth(rules Rules) int {
	return rules.CityMaxHealth() + c.BuildingHealth
}

// IsCapturable reports whether the city's defenses are broken.
func (c *City) IsCapturable(rules Rules) bool {
	return c.Health <= rules.CityCaptureHealth()
}

func (c *City) String() string {
	return fmt.Sprintf("%s#%d", c.Name, c.ID)
}
