// Package validator decides whether a single puzzle candidate is
// playable and how it ranks against its batch. Both checks are pure
// functions of the candidate's fields: no I/O, no history.
package validator

import (
	"strings"

	"github.com/hyperengineering/between/internal/puzzle"
)

// Score starts here and penalties/bonuses are applied from it.
const baseScore = 100

// Validator applies per-candidate validity and ranking rules.
type Validator struct {
	lexicon Lexicon
}

// New creates a Validator backed by the given lexicon.
func New(lexicon Lexicon) *Validator {
	return &Validator{lexicon: lexicon}
}

// Default returns a Validator backed by the built-in static lexicon.
func Default() *Validator {
	return New(NewStaticLexicon())
}

// Validate reports whether a candidate is playable. Rejections are
// silent by design; the selector simply filters them out.
func (v *Validator) Validate(c puzzle.Candidate) bool {
	anchorA := puzzle.Normalize(c.AnchorA)
	anchorB := puzzle.Normalize(c.AnchorB)
	answer := puzzle.Normalize(c.Answer)

	if anchorA == "" || anchorB == "" || answer == "" {
		return false
	}
	if anchorA == anchorB {
		return false
	}
	if answer == anchorA || answer == anchorB {
		return false
	}
	if len(strings.Fields(c.Answer)) > 2 {
		return false
	}
	if v.lexicon.IsSynonym(c.AnchorA, c.AnchorB) {
		return false
	}
	if !v.lexicon.IsCommonWord(c.Answer) {
		return false
	}
	return true
}

// Score ranks a candidate for selection. It is a ranking signal only,
// never a validity gate; invalid candidates can still be scored.
func (v *Validator) Score(c puzzle.Candidate) int {
	score := baseScore

	if len(c.Answer) > 10 {
		score -= 10
	}
	if len(strings.Fields(c.Answer)) > 1 {
		score -= 5
	}
	if len(c.AnchorA) > 12 || len(c.AnchorB) > 12 {
		score -= 5
	}
	if c.Category == "size" || c.Category == "quantity" {
		score += 5
	}
	if c.Confidence != nil && *c.Confidence < 0.7 {
		score -= 20
	}

	if score < 0 {
		score = 0
	}
	return score
}
