// Package battlelog persists resolved combats to SQLite.
package battlelog

import (
	"fmt"
	"sync"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"skirmish/combat"
)

const memoryDSN = "file::memory:"

// Store records battles as a combat.Notifier.
type Store struct {
	db     *gorm.DB
	logger zerolog.Logger

	mu   sync.Mutex
	game uint
	turn int
}

// Open connects to the SQLite database at path and migrates the schema.
// An empty path keeps the log in memory.
func Open(path string, log zerolog.Logger) (*Store, error) {
	dsn := path
	if dsn == "" {
		dsn = memoryDSN
	}
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open battle log: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access sql interface: %w", err)
	}
	if path == "" {
		// Every connection to an unnamed memory database sees a fresh one
		sqlDB.SetMaxOpenConns(1)
	}

	if err := db.AutoMigrate(Models...); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to migrate battle log: %w", err)
	}

	if path == "" {
		log.Debug().Msg("Using in-memory battle log")
	} else {
		log.Info().Str("path", path).Msg("Using battle log")
	}
	return &Store{db: db, logger: log}, nil
}

// StartGame opens a new game; battles recorded from now on belong to it.
func (s *Store) StartGame(seed uint64) (uint, error) {
	g := &Game{StartedAt: time.Now(), Seed: int64(seed)}
	if err := s.db.Create(g).Error; err != nil {
		return 0, fmt.Errorf("failed to create game: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.game = g.ID
	s.turn = 0
	return g.ID, nil
}

func (s *Store) SetTurn(turn int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.turn = turn
}

// FinishGame stores the result of the current game.
func (s *Store) FinishGame(winner string, turns int) error {
	s.mu.Lock()
	id := s.game
	s.mu.Unlock()
	if id == 0 {
		return fmt.Errorf("no game started")
	}

	now := time.Now()
	err := s.db.Model(&Game{ID: id}).Updates(map[string]interface{}{
		"finished_at": &now,
		"winner":      winner,
		"turns":       turns,
	}).Error
	if err != nil {
		return fmt.Errorf("failed to finish game %d: %w", id, err)
	}
	return nil
}

// Notify records a battle. Failures are logged; combat goes on without them.
func (s *Store) Notify(n combat.Notification) {
	s.mu.Lock()
	gameID, turn := s.game, s.turn
	s.mu.Unlock()

	res := n.Result
	b := &Battle{
		Time:             time.Now(),
		GameID:           gameID,
		Turn:             turn,
		Key:              n.Key,
		AttackerKind:     res.Attacker.Kind.String(),
		AttackerRefID:    res.Attacker.ID,
		AttackerName:     res.AttackerName,
		AttackerCiv:      int(res.AttackerCiv),
		DefenderKind:     res.Defender.Kind.String(),
		DefenderRefID:    res.Defender.ID,
		DefenderName:     res.DefenderName,
		DefenderCiv:      int(res.DefenderCiv),
		Ranged:           res.Ranged,
		AttackerStrength: res.AttackerStrength,
		DefenderStrength: res.DefenderStrength,
		DamageToAttacker: res.DamageToAttacker,
		DamageToDefender: res.DamageToDefender,
		AttackerOutcome:  res.AttackerOutcome.String(),
		DefenderOutcome:  res.DefenderOutcome.String(),
	}
	if err := s.db.Create(b).Error; err != nil {
		s.logger.Error().Err(err).Msgf("failed to record battle %s -> %s", res.AttackerName, res.DefenderName)
	}
}

// Recent returns up to limit battles, newest first.
func (s *Store) Recent(limit int) ([]Battle, error) {
	var battles []Battle
	err := s.db.Order("id DESC").Limit(limit).Find(&battles).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load battles: %w", err)
	}
	return battles, nil
}

// Games returns every recorded game in start order.
func (s *Store) Games() ([]Game, error) {
	var games []Game
	if err := s.db.Order("id").Find(&games).Error; err != nil {
		return nil, fmt.Errorf("failed to load games: %w", err)
	}
	return games, nil
}

// Summary aggregates the attacks in a game per attacking civilization.
func (s *Store) Summary(gameID uint) ([]CivSummary, error) {
	var out []CivSummary
	err := s.db.Model(&Battle{}).
		Select(`attacker_civ AS civ,
			COUNT(*) AS attacks,
			SUM(damage_to_defender) AS damage_dealt,
			SUM(damage_to_attacker) AS damage_taken,
			SUM(CASE WHEN defender_outcome <> ? THEN 1 ELSE 0 END) AS victories`, combat.Survived.String()).
		Where("game_id = ?", gameID).
		Group("attacker_civ").
		Order("attacker_civ").
		Scan(&out).Error
	if err != nil {
		return nil, fmt.Errorf("failed to summarize game %d: %w", gameID, err)
	}
	return out, nil
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
