// Package storage provides SQLite-based persistence for run history and
// client preferences. Uses the pure-Go modernc.org/sqlite driver to avoid
// CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Preference keys for the selected duck.
const (
	prefDuckKey = "selected_duck"
	prefDuckID  = "selected_duck_id"
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// Run is one finished game as recorded locally.
type Run struct {
	ID        int64
	SessionID string
	DuckKey   string
	Score     int
	Collected int
	Outcome   string // "over" or "finished"
	Reason    string // "pipe", "ground", "bounds", "idle", "win"
	Eggs      string // Final balances as the server sent them
	USDT      string
	StartUSDT string // USDT balance reported at session start
	CreatedAt time.Time
}

// Earned returns the USDT gained during the run.
// Unparseable balances count as zero.
func (r Run) Earned() decimal.Decimal {
	end, err := decimal.NewFromString(r.USDT)
	if err != nil {
		return decimal.Zero
	}
	start, err := decimal.NewFromString(r.StartUSDT)
	if err != nil {
		start = decimal.Zero
	}
	return end.Sub(start)
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	// Open database
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	// Run migrations
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL DEFAULT '',
			duck_key TEXT NOT NULL,
			score INTEGER NOT NULL,
			collected INTEGER NOT NULL,
			outcome TEXT NOT NULL,
			reason TEXT NOT NULL,
			eggs TEXT NOT NULL DEFAULT '',
			usdt TEXT NOT NULL DEFAULT '',
			start_usdt TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_score ON runs(score DESC);
		CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at DESC);

		CREATE TABLE IF NOT EXISTS prefs (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun records a finished run.
// Returns the ID of the inserted record.
func (s *Store) SaveRun(r Run) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO runs
		 (session_id, duck_key, score, collected, outcome, reason, eggs, usdt, start_usdt)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.SessionID, r.DuckKey, r.Score, r.Collected, r.Outcome, r.Reason, r.Eggs, r.USDT, r.StartUSDT,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RecentRuns retrieves the most recent runs, newest first.
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryRuns(
		`SELECT id, session_id, duck_key, score, collected, outcome, reason, eggs, usdt, start_usdt, created_at
		 FROM runs
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
}

// TopRuns retrieves the best runs by score.
func (s *Store) TopRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryRuns(
		`SELECT id, session_id, duck_key, score, collected, outcome, reason, eggs, usdt, start_usdt, created_at
		 FROM runs
		 ORDER BY score DESC, collected DESC, id ASC
		 LIMIT ?`,
		limit,
	)
}

func (s *Store) queryRuns(query string, args ...any) ([]Run, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var createdAt any
		if err := rows.Scan(
			&r.ID,
			&r.SessionID,
			&r.DuckKey,
			&r.Score,
			&r.Collected,
			&r.Outcome,
			&r.Reason,
			&r.Eggs,
			&r.USDT,
			&r.StartUSDT,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// HighScore returns the highest score recorded.
// Returns 0 if no runs exist.
func (s *Store) HighScore() (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow("SELECT MAX(score) FROM runs").Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// ClearRuns deletes the run history.
func (s *Store) ClearRuns() error {
	_, err := s.db.Exec("DELETE FROM runs")
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// Stats contains aggregated statistics over the run history.
type Stats struct {
	Runs      int
	Wins      int
	HighScore int
	AvgScore  float64
	Collected int64
	Earned    decimal.Decimal
	LastRun   time.Time
}

// GetStats aggregates the run history.
func (s *Store) GetStats() (*Stats, error) {
	stats := &Stats{Earned: decimal.Zero}

	var lastRun any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(outcome = 'finished'), 0), COALESCE(MAX(score), 0),
		        COALESCE(AVG(score), 0), COALESCE(SUM(collected), 0), MAX(created_at)
		 FROM runs`,
	).Scan(&stats.Runs, &stats.Wins, &stats.HighScore, &stats.AvgScore, &stats.Collected, &lastRun)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	stats.LastRun = parseTime(lastRun)

	// Balances are decimal strings; sum them outside SQLite to avoid float rounding.
	rows, err := s.db.Query("SELECT usdt, start_usdt FROM runs")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query earnings: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.USDT, &r.StartUSDT); err != nil {
			return nil, fmt.Errorf("storage: cannot scan earnings: %w", err)
		}
		stats.Earned = stats.Earned.Add(r.Earned())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// SetDuckSelection stores the duck chosen in the picker until the next game starts.
func (s *Store) SetDuckSelection(key string, id int) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	for k, v := range map[string]string{prefDuckKey: key, prefDuckID: strconv.Itoa(id)} {
		if _, err := tx.Exec(
			`INSERT INTO prefs (key, value) VALUES (?, ?)
			 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
			k, v,
		); err != nil {
			return fmt.Errorf("storage: cannot save %s: %w", k, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit duck selection: %w", err)
	}
	return nil
}

// PeekDuckSelection returns the stored duck without consuming it.
func (s *Store) PeekDuckSelection() (key string, id int, ok bool, err error) {
	return s.readDuckSelection(s.db)
}

// TakeDuckSelection returns the stored duck and clears it.
// ok is false when nothing was selected.
func (s *Store) TakeDuckSelection() (key string, id int, ok bool, err error) {
	tx, err := s.db.Begin()
	if err != nil {
		return "", 0, false, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	key, id, ok, err = s.readDuckSelection(tx)
	if err != nil || !ok {
		return key, id, ok, err
	}
	if _, err := tx.Exec("DELETE FROM prefs WHERE key IN (?, ?)", prefDuckKey, prefDuckID); err != nil {
		return "", 0, false, fmt.Errorf("storage: cannot clear duck selection: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return "", 0, false, fmt.Errorf("storage: cannot commit: %w", err)
	}
	return key, id, true, nil
}

// ClearDuckSelection removes any stored duck.
func (s *Store) ClearDuckSelection() error {
	_, err := s.db.Exec("DELETE FROM prefs WHERE key IN (?, ?)", prefDuckKey, prefDuckID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear duck selection: %w", err)
	}
	return nil
}

type queryRower interface {
	QueryRow(query string, args ...any) *sql.Row
}

func (s *Store) readDuckSelection(q queryRower) (string, int, bool, error) {
	var key, idText string
	err := q.QueryRow("SELECT value FROM prefs WHERE key = ?", prefDuckKey).Scan(&key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", 0, false, nil
	}
	if err != nil {
		return "", 0, false, fmt.Errorf("storage: cannot read duck selection: %w", err)
	}

	err = q.QueryRow("SELECT value FROM prefs WHERE key = ?", prefDuckID).Scan(&idText)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return "", 0, false, fmt.Errorf("storage: cannot read duck id: %w", err)
	}
	id, _ := strconv.Atoi(idText)
	return key, id, true, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
