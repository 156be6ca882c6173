package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hyperengineering/between/internal/puzzle"
	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"
)

// MaxHistoryDays is the default trailing retention window.
const MaxHistoryDays = 90

// Compile-time interface check
var _ Store = (*SQLiteStore)(nil)

// SQLiteStore is the SQLite-backed puzzle history.
type SQLiteStore struct {
	db            *sql.DB
	retentionDays int
}

// NewSQLiteStore opens (creating if needed) the history database at
// dbPath, applies pragmas, and runs migrations. retentionDays <= 0
// falls back to MaxHistoryDays.
func NewSQLiteStore(dbPath string, retentionDays int) (*SQLiteStore, error) {
	if retentionDays <= 0 {
		retentionDays = MaxHistoryDays
	}

	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := enablePragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable pragmas: %w", err)
	}

	if err := RunMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteStore{db: db, retentionDays: retentionDays}, nil
}

func enablePragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA foreign_keys=ON",
		"PRAGMA synchronous=NORMAL",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("execute %s: %w", pragma, err)
		}
	}

	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// DailyPuzzle returns the puzzle stored for a date, or ErrNotFound.
func (s *SQLiteStore) DailyPuzzle(ctx context.Context, date string) (*puzzle.DailyPuzzle, error) {
	var stored string
	err := s.db.QueryRowContext(ctx, "SELECT date FROM puzzles WHERE date = ?", date).Scan(&stored)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query puzzle: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT anchor_a, anchor_b, answer, category
		FROM rounds
		WHERE puzzle_date = ?
		ORDER BY position ASC
	`, date)
	if err != nil {
		return nil, fmt.Errorf("query rounds: %w", err)
	}
	defer rows.Close()

	p := &puzzle.DailyPuzzle{Date: date}
	for rows.Next() {
		var r puzzle.Round
		if err := rows.Scan(&r.AnchorA, &r.AnchorB, &r.Answer, &r.Category); err != nil {
			return nil, fmt.Errorf("scan round: %w", err)
		}
		p.Rounds = append(p.Rounds, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rounds: %w", err)
	}

	return p, nil
}

// SaveDailyPuzzle replaces any puzzle stored for the same date, prunes
// entries older than the retention window relative to now, and records
// the write time.
func (s *SQLiteStore) SaveDailyPuzzle(ctx context.Context, p puzzle.DailyPuzzle) error {
	now := time.Now().UTC()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Replace-by-date: deleting the puzzle cascades to its rounds.
	if _, err := tx.ExecContext(ctx, "DELETE FROM puzzles WHERE date = ?", p.Date); err != nil {
		return fmt.Errorf("delete existing puzzle: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO puzzles (date, generated_at) VALUES (?, ?)",
		p.Date, now.Format(time.RFC3339),
	); err != nil {
		return fmt.Errorf("insert puzzle: %w", err)
	}

	for i, r := range p.Rounds {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO rounds (id, puzzle_date, position, anchor_a, anchor_b, answer, category)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, ulid.Make().String(), p.Date, i, r.AnchorA, r.AnchorB, r.Answer, r.Category); err != nil {
			return fmt.Errorf("insert round %d: %w", i, err)
		}
	}

	cutoff := now.AddDate(0, 0, -s.retentionDays).Format(puzzle.DateFormat)
	if _, err := tx.ExecContext(ctx, "DELETE FROM puzzles WHERE date < ?", cutoff); err != nil {
		return fmt.Errorf("prune history: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO meta (key, value) VALUES ('last_updated', ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, now.Format(time.RFC3339)); err != nil {
		return fmt.Errorf("update last_updated: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// RecentRounds returns up to n rounds, most recent days first.
func (s *SQLiteStore) RecentRounds(ctx context.Context, n int) ([]puzzle.Round, error) {
	if n <= 0 {
		return nil, nil
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT r.anchor_a, r.anchor_b, r.answer, r.category
		FROM rounds r
		JOIN puzzles p ON p.date = r.puzzle_date
		ORDER BY p.date DESC, r.position ASC
		LIMIT ?
	`, n)
	if err != nil {
		return nil, fmt.Errorf("query recent rounds: %w", err)
	}
	defer rows.Close()

	var rounds []puzzle.Round
	for rows.Next() {
		var r puzzle.Round
		if err := rows.Scan(&r.AnchorA, &r.AnchorB, &r.Answer, &r.Category); err != nil {
			return nil, fmt.Errorf("scan round: %w", err)
		}
		rounds = append(rounds, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rounds: %w", err)
	}

	return rounds, nil
}

// PuzzleCount returns the number of retained puzzles.
func (s *SQLiteStore) PuzzleCount(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM puzzles").Scan(&count)
	return count, err
}

// LatestDate returns the most recent puzzle date, or "" when empty.
func (s *SQLiteStore) LatestDate(ctx context.Context) (string, error) {
	var date string
	err := s.db.QueryRowContext(ctx, "SELECT date FROM puzzles ORDER BY date DESC LIMIT 1").Scan(&date)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("query latest date: %w", err)
	}
	return date, nil
}
