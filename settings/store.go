// Package settings persists the player account and local best scores in a
// SQLite file.
package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/plus3/pixelblast/settings/migrations"
)

// ErrPathRequired is returned by Open for an empty path.
var ErrPathRequired = errors.New("settings path is required")

// Account is the registered leaderboard identity.
type Account struct {
	ID        int64
	Name      string
	BestScore int
}

// Store is a settings database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path and applies migrations. The
// path ":memory:" opens a private in-memory database.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, ErrPathRequired
	}

	dsn := ":memory:"
	if path != ":memory:" {
		dsn = filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// A single connection keeps ":memory:" databases alive across queries.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := applyMigrations(ctx, db, migrations.FS); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Load returns the saved account. ok is false when none is saved.
func (s *Store) Load(ctx context.Context) (acc Account, ok bool, err error) {
	err = s.db.QueryRowContext(ctx,
		`SELECT player_id, name, best_score FROM account WHERE slot = 1`,
	).Scan(&acc.ID, &acc.Name, &acc.BestScore)
	if errors.Is(err, sql.ErrNoRows) {
		return Account{}, false, nil
	}
	if err != nil {
		return Account{}, false, fmt.Errorf("load account: %w", err)
	}
	return acc, true, nil
}

// Save stores acc, replacing any saved account. A lower BestScore never
// overwrites a higher one for the same player.
func (s *Store) Save(ctx context.Context, acc Account) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO account (slot, player_id, name, best_score, updated_at)
		 VALUES (1, ?, ?, ?, ?)
		 ON CONFLICT(slot) DO UPDATE SET
		   best_score = CASE WHEN account.player_id = excluded.player_id
		                     THEN MAX(account.best_score, excluded.best_score)
		                     ELSE excluded.best_score END,
		   player_id = excluded.player_id,
		   name = excluded.name,
		   updated_at = excluded.updated_at`,
		acc.ID, acc.Name, acc.BestScore, time.Now().UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("save account: %w", err)
	}
	return nil
}

// Clear forgets the saved account.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM account`); err != nil {
		return fmt.Errorf("clear account: %w", err)
	}
	return nil
}

// BestScore returns the offline best for a board size, or 0.
func (s *Store) BestScore(ctx context.Context, boardSize int) (int, error) {
	var score int
	err := s.db.QueryRowContext(ctx,
		`SELECT score FROM local_best WHERE board_size = ?`, boardSize,
	).Scan(&score)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("load best score: %w", err)
	}
	return score, nil
}

// RecordScore keeps the higher of score and the stored best for a board size.
func (s *Store) RecordScore(ctx context.Context, boardSize, score int) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO local_best (board_size, score, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(board_size) DO UPDATE SET
		   score = MAX(local_best.score, excluded.score),
		   updated_at = excluded.updated_at`,
		boardSize, score, time.Now().UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("record score: %w", err)
	}
	return nil
}
