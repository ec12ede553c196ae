package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

type GameRecord struct {
	ID int
	GameMetric
}

type BattleRecord struct {
	Game int // GameRecord.ID
	BattleMetric
}

type Writer struct {
	baseDir string
}

// NewWriter creates root/name/<timestamp> and writes records beneath it.
func NewWriter(root, name string) (*Writer, error) {
	timestamp := time.Now().UTC().Format("20060102T150405Z")
	baseDir := filepath.Join(root, name, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.ID),
			strconv.FormatUint(record.Seed, 10),
			record.Winner,
			strconv.Itoa(record.Turns),
			strconv.Itoa(record.Battles),
			strconv.Itoa(record.UnitsDestroyed),
			strconv.Itoa(record.UnitsCaptured),
			strconv.Itoa(record.CitiesCaptured),
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			record.Duration.String(),
		})
	}
	header := []string{"id", "seed", "winner", "turns", "battles", "units_destroyed", "units_captured",
		"cities_captured", "start_time", "end_time", "duration"}
	return w.write("game_records.csv", header, rows)
}

func (w *Writer) WriteBattleRecords(records []BattleRecord) error {
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Game),
			strconv.Itoa(record.Turn),
			record.Attacker,
			record.Defender,
			strconv.Itoa(record.AttackerCiv),
			strconv.Itoa(record.DefenderCiv),
			strconv.FormatBool(record.Ranged),
			strconv.Itoa(record.AttackerStrength),
			strconv.Itoa(record.DefenderStrength),
			strconv.Itoa(record.DamageToAttacker),
			strconv.Itoa(record.DamageToDefender),
			record.AttackerOutcome,
			record.DefenderOutcome,
		})
	}
	header := []string{"game", "turn", "attacker", "defender", "attacker_civ", "defender_civ", "ranged",
		"attacker_strength", "defender_strength", "damage_to_attacker", "damage_to_defender",
		"attacker_outcome", "defender_outcome"}
	return w.write("battle_records.csv", header, rows)
}

func (w *Writer) write(file string, header []string, rows [][]string) error {
	path := filepath.Join(w.baseDir, file)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", file, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write %s header: %w", file, err)
	}
	for _, row := range rows {
		err = writer.Write(row)
		if err != nil {
			return fmt.Errorf("failed to write %s row: %w", file, err)
		}
	}

	writer.Flush()
	return writer.Error()
}
