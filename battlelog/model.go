package battlelog

import "time"

// Models are migrated in this order on Open.
var Models = []interface{}{
	&Game{},
	&Battle{},
}

// Game is one recorded skirmish.
type Game struct {
	ID         uint      `gorm:"primarykey;autoIncrement;"`
	StartedAt  time.Time `gorm:"index:idx_game_started_at"`
	FinishedAt *time.Time
	Seed       int64
	Winner     string `gorm:"size:64"` // Empty until finished or on a draw
	Turns      int
}

func (g *Game) TableName() string {
	return "games"
}

// Battle is one resolved combat or city capture.
type Battle struct {
	ID     uint      `gorm:"primarykey;autoIncrement;"`
	Time   time.Time // Wall clock when the combat resolved
	GameID uint      `gorm:"index:idx_battle_game_id"`
	Turn   int       `gorm:"index:idx_battle_turn"`
	Key    string    `gorm:"size:80"` // Notification message key

	AttackerKind  string `gorm:"size:8"`
	AttackerRefID int
	AttackerName  string `gorm:"size:64"`
	AttackerCiv   int    `gorm:"index:idx_battle_attacker_civ"`
	DefenderKind  string `gorm:"size:8"`
	DefenderRefID int
	DefenderName  string `gorm:"size:64"`
	DefenderCiv   int    `gorm:"index:idx_battle_defender_civ"`

	Ranged           bool
	AttackerStrength int
	DefenderStrength int
	DamageToAttacker int
	DamageToDefender int
	AttackerOutcome  string `gorm:"size:16"`
	DefenderOutcome  string `gorm:"size:16"`
}

func (b *Battle) TableName() string {
	return "battles"
}

// CivSummary aggregates the attacks one civilization made in a game.
type CivSummary struct {
	Civ         int
	Attacks     int
	DamageDealt int
	DamageTaken int
	Victories   int
}
