// Package history is the system of record for previously issued
// puzzles. It is an optimization against repeats, not a correctness
// requirement: read failures degrade to an empty history and write
// failures must never fail puzzle delivery.
package history

import (
	"context"

	"github.com/hyperengineering/between/internal/puzzle"
)

// Store is the persistence contract for issued puzzles.
type Store interface {
	// DailyPuzzle returns the puzzle issued for a date, or ErrNotFound.
	DailyPuzzle(ctx context.Context, date string) (*puzzle.DailyPuzzle, error)

	// SaveDailyPuzzle persists a puzzle, replacing any existing entry
	// for the same date, then prunes entries older than the retention
	// window. Idempotent; last writer wins.
	SaveDailyPuzzle(ctx context.Context, p puzzle.DailyPuzzle) error

	// RecentRounds returns up to n rounds from the most recent days
	// first, flattened across days.
	RecentRounds(ctx context.Context, n int) ([]puzzle.Round, error)

	// PuzzleCount returns the number of retained puzzles.
	PuzzleCount(ctx context.Context) (int64, error)

	// LatestDate returns the most recent puzzle date, or "" when the
	// store is empty.
	LatestDate(ctx context.Context) (string, error)

	Close() error
}
