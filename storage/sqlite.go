// Package storage keeps finished game results in SQLite.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite"
)

type Store struct {
	db *sql.DB
}

// Result is one finished game
type Result struct {
	ID         int64
	Difficulty string
	Won        bool
	Duration   time.Duration
	Mines      int
	Seed       int64
	CreatedAt  time.Time
}

// Stats counts the games played on a difficulty
type Stats struct {
	Played int
	Won    int
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, errors.Wrap(err, "storage: cannot expand home directory")
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "storage: cannot create directory %s", dir)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.Wrap(err, "storage: cannot open database")
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "storage: cannot connect to database")
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "storage: migration failed")
	}

	return store, nil
}

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			difficulty TEXT NOT NULL,
			won INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL,
			mines INTEGER NOT NULL,
			seed INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_results_best ON results(difficulty, won, duration_ms);
	`

	_, err := s.db.Exec(schema)
	return err
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// RecordResult stores a finished game and returns its ID
func (s *Store) RecordResult(result Result) (int64, error) {
	won := 0
	if result.Won {
		won = 1
	}

	res, err := s.db.Exec(
		"INSERT INTO results (difficulty, won, duration_ms, mines, seed) VALUES (?, ?, ?, ?, ?)",
		result.Difficulty, won, result.Duration.Milliseconds(), result.Mines, result.Seed,
	)
	if err != nil {
		return 0, errors.Wrap(err, "storage: cannot record result")
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, errors.Wrap(err, "storage: cannot get result ID")
	}
	return id, nil
}

// BestTimes returns the fastest wins on a difficulty, fastest first
func (s *Store) BestTimes(difficulty string, limit int) ([]Result, error) {
	rows, err := s.db.Query(`
		SELECT id, difficulty, won, duration_ms, mines, seed, created_at
		FROM results
		WHERE difficulty = ? AND won = 1
		ORDER BY duration_ms ASC, id ASC
		LIMIT ?`,
		difficulty, limit,
	)
	if err != nil {
		return nil, errors.Wrap(err, "storage: cannot query best times")
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		var (
			result     Result
			durationMs int64
			createdAt  any
		)
		if err := rows.Scan(
			&result.ID, &result.Difficulty, &result.Won, &durationMs,
			&result.Mines, &result.Seed, &createdAt,
		); err != nil {
			return nil, errors.Wrap(err, "storage: cannot scan result")
		}
		result.Duration = time.Duration(durationMs) * time.Millisecond

		// The driver hands DATETIME back as either time.Time or text
		switch v := createdAt.(type) {
		case time.Time:
			result.CreatedAt = v
		case string:
			if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
				result.CreatedAt = parsed
			}
		}
		results = append(results, result)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "storage: error iterating results")
	}
	return results, nil
}

// Stats counts games played and won on a difficulty
func (s *Store) Stats(difficulty string) (Stats, error) {
	var stats Stats
	err := s.db.QueryRow(
		"SELECT COUNT(*), COALESCE(SUM(won), 0) FROM results WHERE difficulty = ?",
		difficulty,
	).Scan(&stats.Played, &stats.Won)
	if err != nil {
		return Stats{}, errors.Wrap(err, "storage: cannot query stats")
	}
	return stats, nil
}
