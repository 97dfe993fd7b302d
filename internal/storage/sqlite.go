// Package storage provides the SQLite-backed replay journal.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for the replay journal.
type Store struct {
	db *sql.DB
}

// Replay is one recorded session: everything needed to re-simulate it
// headlessly. It is a debugging aid; a session cannot be resumed from it.
type Replay struct {
	ID       string
	Seed     int64
	ScreenW  int
	ScreenH  int
	TickRate int

	Config []byte // Gameplay config as YAML
	Stages []byte // Stage list as YAML
	Inputs []byte // One packed input frame per step

	FinalHash  uint64
	FinalStage int
	Outcome    string // "won", "game_over" or "quit"
	CreatedAt  time.Time
}

// Ticks returns the number of recorded steps.
func (r Replay) Ticks() int {
	return len(r.Inputs)
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

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS replays (
			id TEXT PRIMARY KEY,
			seed INTEGER NOT NULL,
			screen_w INTEGER NOT NULL,
			screen_h INTEGER NOT NULL,
			tick_rate INTEGER NOT NULL,
			config BLOB NOT NULL,
			stages BLOB NOT NULL,
			inputs BLOB NOT NULL,
			ticks INTEGER NOT NULL,
			final_hash INTEGER NOT NULL,
			final_stage INTEGER NOT NULL DEFAULT 0,
			outcome TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_replays_created ON replays(created_at DESC);
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

// SaveReplay records a replay. A missing ID is filled with a new UUID.
// Returns the replay ID.
func (s *Store) SaveReplay(r Replay) (string, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	// NOT NULL columns; a nil slice would bind as NULL
	r.Config = nonNil(r.Config)
	r.Stages = nonNil(r.Stages)
	r.Inputs = nonNil(r.Inputs)

	_, err := s.db.Exec(
		`INSERT INTO replays
		 (id, seed, screen_w, screen_h, tick_rate, config, stages, inputs, ticks, final_hash, final_stage, outcome)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID,
		r.Seed,
		r.ScreenW,
		r.ScreenH,
		r.TickRate,
		r.Config,
		r.Stages,
		r.Inputs,
		r.Ticks(),
		int64(r.FinalHash), //#nosec G115 -- stored as raw bits
		r.FinalStage,
		r.Outcome,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save replay: %w", err)
	}

	return r.ID, nil
}

// Replay retrieves a replay with its input log.
// Returns nil if no replay has that ID.
func (s *Store) Replay(id string) (*Replay, error) {
	var r Replay
	var hash int64
	var createdAt any

	err := s.db.QueryRow(
		`SELECT id, seed, screen_w, screen_h, tick_rate, config, stages, inputs,
		        final_hash, final_stage, outcome, created_at
		 FROM replays
		 WHERE id = ?`,
		id,
	).Scan(
		&r.ID,
		&r.Seed,
		&r.ScreenW,
		&r.ScreenH,
		&r.TickRate,
		&r.Config,
		&r.Stages,
		&r.Inputs,
		&hash,
		&r.FinalStage,
		&r.Outcome,
		&createdAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query replay: %w", err)
	}

	r.FinalHash = uint64(hash) //#nosec G115 -- stored as raw bits
	r.CreatedAt = parseTime(createdAt)
	return &r, nil
}

// ReplaySummary is a replay without its payload, for listings.
type ReplaySummary struct {
	ID         string
	Seed       int64
	Ticks      int
	FinalStage int
	Outcome    string
	CreatedAt  time.Time
}

// RecentReplays lists the most recent replays, newest first.
func (s *Store) RecentReplays(limit int) ([]ReplaySummary, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, seed, ticks, final_stage, outcome, created_at
		 FROM replays
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query replays: %w", err)
	}
	defer rows.Close()

	var out []ReplaySummary
	for rows.Next() {
		var r ReplaySummary
		var createdAt any
		if err := rows.Scan(&r.ID, &r.Seed, &r.Ticks, &r.FinalStage, &r.Outcome, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		out = append(out, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return out, nil
}

// ErrAmbiguousID is returned when an ID prefix matches several replays.
var ErrAmbiguousID = errors.New("storage: ambiguous replay ID")

// ResolveID expands an ID prefix to the full replay ID.
// Returns "" when nothing matches.
func (s *Store) ResolveID(prefix string) (string, error) {
	if prefix == "" {
		return "", nil
	}

	rows, err := s.db.Query(
		"SELECT id FROM replays WHERE substr(id, 1, ?) = ? LIMIT 2",
		len(prefix), prefix,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot query replay IDs: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return "", fmt.Errorf("storage: cannot scan row: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("storage: row iteration error: %w", err)
	}

	switch len(ids) {
	case 0:
		return "", nil
	case 1:
		return ids[0], nil
	default:
		return "", fmt.Errorf("%w: %q", ErrAmbiguousID, prefix)
	}
}

// DeleteReplay removes a replay. It reports whether one was deleted.
func (s *Store) DeleteReplay(id string) (bool, error) {
	res, err := s.db.Exec("DELETE FROM replays WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("storage: cannot delete replay: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("storage: cannot get affected rows: %w", err)
	}
	return n > 0, nil
}

func nonNil(b []byte) []byte {
	if b == nil {
		return []byte{}
	}
	return b
}

// parseTime handles both time.Time and string datetimes.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
