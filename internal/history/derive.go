package history

import (
	"fmt"
	"strings"

	"github.com/hyperengineering/between/internal/puzzle"
)

// UsedAnchorPairs returns the set of order-independent anchor-pair keys
// present in the given rounds.
func UsedAnchorPairs(rounds []puzzle.Round) map[string]struct{} {
	pairs := make(map[string]struct{}, len(rounds))
	for _, r := range rounds {
		pairs[puzzle.AnchorPairKey(r.AnchorA, r.AnchorB)] = struct{}{}
	}
	return pairs
}

// UsedAnswers returns the set of normalized answers present in the
// given rounds.
func UsedAnswers(rounds []puzzle.Round) map[string]struct{} {
	answers := make(map[string]struct{}, len(rounds))
	for _, r := range rounds {
		answers[puzzle.Normalize(r.Answer)] = struct{}{}
	}
	return answers
}

// FormatRoundsForPrompt renders rounds as a numbered avoid-list for the
// candidate source. This is a soft hint to reduce collisions; the
// selector is the actual enforcement point.
func FormatRoundsForPrompt(rounds []puzzle.Round) string {
	if len(rounds) == 0 {
		return "No previous puzzles."
	}

	var b strings.Builder
	for i, r := range rounds {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%d. %s / %s -> %s (%s)", i+1, r.AnchorA, r.AnchorB, r.Answer, r.Category)
	}
	return b.String()
}
