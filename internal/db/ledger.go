package db

import (
	"database/sql"
	"fmt"
)

// Generation is one recorded generated test.
type Generation struct {
	Source      string
	Day         int
	TestName    string
	OutputPath  string
	SimpleSum   string // sha256 of the simple fixture at generation time
	FullSum     string
	Simple      [2]string
	Full        [2]string
	GeneratedAt string
}

// Record upserts g, keyed by source file and test name.
func Record(sqlDB *sql.DB, g Generation) error {
	tx, err := sqlDB.Begin()
	if err != nil {
		return fmt.Errorf("beginning record: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`
		INSERT INTO sources (file_path) VALUES (?)
		ON CONFLICT(file_path) DO UPDATE SET updated_at = datetime('now')
	`, g.Source); err != nil {
		return fmt.Errorf("recording source %s: %w", g.Source, err)
	}

	var sourceID int64
	if err := tx.QueryRow(`SELECT id FROM sources WHERE file_path = ?`, g.Source).Scan(&sourceID); err != nil {
		return fmt.Errorf("querying source %s: %w", g.Source, err)
	}

	_, err = tx.Exec(`
		INSERT INTO generations (
			source_id, day, test_name, output_path, simple_sum, full_sum,
			simple_part1, simple_part2, full_part1, full_part2
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(source_id, test_name) DO UPDATE SET
			day = excluded.day,
			output_path = excluded.output_path,
			simple_sum = excluded.simple_sum,
			full_sum = excluded.full_sum,
			simple_part1 = excluded.simple_part1,
			simple_part2 = excluded.simple_part2,
			full_part1 = excluded.full_part1,
			full_part2 = excluded.full_part2,
			generated_at = datetime('now')
	`, sourceID, g.Day, g.TestName, g.OutputPath, g.SimpleSum, g.FullSum,
		g.Simple[0], g.Simple[1], g.Full[0], g.Full[1])
	if err != nil {
		return fmt.Errorf("recording %s: %w", g.TestName, err)
	}

	return tx.Commit()
}

const selectGenerations = `
	SELECT s.file_path, g.day, g.test_name, g.output_path, g.simple_sum, g.full_sum,
		g.simple_part1, g.simple_part2, g.full_part1, g.full_part2, g.generated_at
	FROM generations g
	JOIN sources s ON g.source_id = s.id
`

// Generations lists every recorded generation ordered by day.
func Generations(sqlDB *sql.DB) ([]Generation, error) {
	return queryGenerations(sqlDB, selectGenerations+` ORDER BY g.day, s.file_path, g.test_name`)
}

// GenerationsForDay lists the generations recorded for day.
func GenerationsForDay(sqlDB *sql.DB, day int) ([]Generation, error) {
	return queryGenerations(sqlDB, selectGenerations+` WHERE g.day = ? ORDER BY s.file_path, g.test_name`, day)
}

func queryGenerations(sqlDB *sql.DB, query string, args ...any) ([]Generation, error) {
	rows, err := sqlDB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying generations: %w", err)
	}
	defer rows.Close()

	var gens []Generation
	for rows.Next() {
		var g Generation
		if err := rows.Scan(&g.Source, &g.Day, &g.TestName, &g.OutputPath, &g.SimpleSum, &g.FullSum,
			&g.Simple[0], &g.Simple[1], &g.Full[0], &g.Full[1], &g.GeneratedAt); err != nil {
			return nil, fmt.Errorf("scanning generation row: %w", err)
		}
		gens = append(gens, g)
	}
	return gens, rows.Err()
}
