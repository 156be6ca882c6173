// Package selector turns a noisy candidate batch into a fixed number of
// unique, valid rounds. Validation and scoring are history-independent;
// deduplication against history and the current batch is a single
// greedy pass that falls through to the next-best candidate instead of
// failing the whole batch on a collision.
package selector

import (
	"fmt"
	"sort"

	"github.com/hyperengineering/between/internal/history"
	"github.com/hyperengineering/between/internal/puzzle"
	"github.com/hyperengineering/between/internal/validator"
)

// SelectionError reports that a batch could not yield enough unique
// valid rounds. Valid counts candidates that passed validation; Unique
// counts those that also survived deduplication.
type SelectionError struct {
	Valid  int
	Unique int
	Needed int
}

func (e *SelectionError) Error() string {
	return fmt.Sprintf(
		"not enough unique puzzles: %d candidates passed validation, %d unique after deduplication, needed %d",
		e.Valid, e.Unique, e.Needed,
	)
}

// Selector chooses the best rounds from a candidate batch.
type Selector struct {
	validator *validator.Validator
}

// New creates a Selector using the given validator.
func New(v *validator.Validator) *Selector {
	return &Selector{validator: v}
}

type scored struct {
	candidate puzzle.Candidate
	score     int
}

// SelectBest filters, scores, ranks, and deduplicates candidates down
// to exactly count rounds. Recent rounds contribute already-used
// anchor pairs and answers; candidates colliding with either are
// skipped, not fatal. Returns a SelectionError when fewer than count
// rounds can be produced.
//
// Selection is deterministic: the sort is stable, ties keep input
// order, and the scan never backtracks.
func (s *Selector) SelectBest(candidates []puzzle.Candidate, count int, recent []puzzle.Round) ([]puzzle.Round, error) {
	var valid []scored
	for _, c := range candidates {
		if !s.validator.Validate(c) {
			continue
		}
		valid = append(valid, scored{candidate: c, score: s.validator.Score(c)})
	}

	sort.SliceStable(valid, func(i, j int) bool {
		return valid[i].score > valid[j].score
	})

	usedAnswers := history.UsedAnswers(recent)
	usedPairs := history.UsedAnchorPairs(recent)
	batchAnswers := make(map[string]struct{}, count)
	batchPairs := make(map[string]struct{}, count)

	selected := make([]puzzle.Round, 0, count)
	for _, sc := range valid {
		if len(selected) >= count {
			break
		}

		answer := puzzle.Normalize(sc.candidate.Answer)
		pair := puzzle.AnchorPairKey(sc.candidate.AnchorA, sc.candidate.AnchorB)

		if _, ok := usedAnswers[answer]; ok {
			continue
		}
		if _, ok := batchAnswers[answer]; ok {
			continue
		}
		if _, ok := usedPairs[pair]; ok {
			continue
		}
		if _, ok := batchPairs[pair]; ok {
			continue
		}

		batchAnswers[answer] = struct{}{}
		batchPairs[pair] = struct{}{}
		selected = append(selected, puzzle.Round{
			AnchorA:  sc.candidate.AnchorA,
			AnchorB:  sc.candidate.AnchorB,
			Answer:   answer,
			Category: sc.candidate.Category,
		})
	}

	if len(selected) < count {
		return nil, &SelectionError{Valid: len(valid), Unique: len(selected), Needed: count}
	}

	return selected, nil
}
