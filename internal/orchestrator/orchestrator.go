// Package orchestrator drives puzzle generation for a calendar date:
// request a candidate batch, select rounds against recent history,
// persist, and retry with backoff when a batch comes up short.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hyperengineering/between/internal/generator"
	"github.com/hyperengineering/between/internal/history"
	"github.com/hyperengineering/between/internal/puzzle"
	"github.com/hyperengineering/between/internal/selector"
)

// GenerationError reports that all generation attempts for a date were
// exhausted. It wraps the last underlying failure.
type GenerationError struct {
	Date     string
	Attempts int
	Cause    error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("puzzle generation for %s failed after %d attempts: %v", e.Date, e.Attempts, e.Cause)
}

func (e *GenerationError) Unwrap() error {
	return e.Cause
}

// Config tunes the generation loop. Zero values fall back to defaults.
type Config struct {
	RoundCount   int           // rounds per daily puzzle (default 5)
	BatchSize    int           // candidates requested per attempt (default 30)
	MaxAttempts  int           // generate/select cycles before giving up (default 5)
	RecentSample int           // recent rounds consulted for dedup and prompting (default 50)
	BackoffBase  time.Duration // first retry delay (default 1s)
	BackoffCap   time.Duration // retry delay ceiling (default 5s)
}

func (c Config) withDefaults() Config {
	if c.RoundCount <= 0 {
		c.RoundCount = 5
	}
	if c.BatchSize <= 0 {
		c.BatchSize = 30
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = 5
	}
	if c.RecentSample <= 0 {
		c.RecentSample = 50
	}
	if c.BackoffBase <= 0 {
		c.BackoffBase = time.Second
	}
	if c.BackoffCap <= 0 {
		c.BackoffCap = 5 * time.Second
	}
	return c
}

// Orchestrator owns the retry loop and is the only component that
// writes to the history store.
type Orchestrator struct {
	source   generator.CandidateSource
	store    history.Store
	selector *selector.Selector
	cfg      Config

	// sleep is replaced in tests to avoid real delays.
	sleep func(ctx context.Context, d time.Duration) error
}

// New creates an Orchestrator.
func New(source generator.CandidateSource, store history.Store, sel *selector.Selector, cfg Config) *Orchestrator {
	return &Orchestrator{
		source:   source,
		store:    store,
		selector: sel,
		cfg:      cfg.withDefaults(),
		sleep:    sleepCtx,
	}
}

// DailyPuzzle returns the puzzle for a date, generating and persisting
// one if none exists yet.
func (o *Orchestrator) DailyPuzzle(ctx context.Context, date string) (*puzzle.DailyPuzzle, error) {
	existing, err := o.store.DailyPuzzle(ctx, date)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, history.ErrNotFound) {
		// A broken read degrades to regeneration, not failure.
		slog.Warn("history read failed, regenerating",
			"date", date,
			"error", err,
			"component", "orchestrator",
		)
	}
	return o.generate(ctx, date)
}

// Regenerate forces a fresh puzzle for a date, replacing any stored
// one. Whether regenerating an already-issued date is appropriate is
// the caller's decision.
func (o *Orchestrator) Regenerate(ctx context.Context, date string) (*puzzle.DailyPuzzle, error) {
	return o.generate(ctx, date)
}

func (o *Orchestrator) generate(ctx context.Context, date string) (*puzzle.DailyPuzzle, error) {
	// One history snapshot for the whole attempt loop; batch-level sets
	// in the selector handle intra-batch duplicates.
	recent, err := o.store.RecentRounds(ctx, o.cfg.RecentSample)
	if err != nil {
		slog.Warn("recent history unavailable, proceeding without",
			"date", date,
			"error", err,
			"component", "orchestrator",
		)
		recent = nil
	}
	avoid := history.FormatRoundsForPrompt(recent)

	var lastErr error
	for attempt := 1; attempt <= o.cfg.MaxAttempts; attempt++ {
		rounds, err := o.attempt(ctx, recent, avoid)
		if err == nil {
			p := &puzzle.DailyPuzzle{Date: date, Rounds: rounds}
			if saveErr := o.store.SaveDailyPuzzle(ctx, *p); saveErr != nil {
				// History is an optimization, not a delivery requirement.
				slog.Error("failed to persist puzzle",
					"date", date,
					"error", saveErr,
					"component", "orchestrator",
				)
			}
			slog.Info("puzzle generated",
				"date", date,
				"rounds", len(rounds),
				"attempt", attempt,
				"component", "orchestrator",
			)
			return p, nil
		}

		lastErr = err
		slog.Warn("generation attempt failed",
			"date", date,
			"attempt", attempt,
			"max_attempts", o.cfg.MaxAttempts,
			"error", err,
			"component", "orchestrator",
		)

		if attempt < o.cfg.MaxAttempts {
			if err := o.sleep(ctx, o.backoff(attempt)); err != nil {
				return nil, &GenerationError{Date: date, Attempts: attempt, Cause: err}
			}
		}
	}

	return nil, &GenerationError{Date: date, Attempts: o.cfg.MaxAttempts, Cause: lastErr}
}

func (o *Orchestrator) attempt(ctx context.Context, recent []puzzle.Round, avoid string) ([]puzzle.Round, error) {
	candidates, err := o.source.Generate(ctx, o.cfg.BatchSize, avoid)
	if err != nil {
		return nil, err
	}
	return o.selector.SelectBest(candidates, o.cfg.RoundCount, recent)
}

// backoff grows linearly with the attempt number, capped.
func (o *Orchestrator) backoff(attempt int) time.Duration {
	d := o.cfg.BackoffBase * time.Duration(attempt)
	if d > o.cfg.BackoffCap {
		d = o.cfg.BackoffCap
	}
	return d
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
