package puzzle

import (
	"sort"
	"strings"
)

// Normalize returns the canonical comparison form of a word: lowercased
// and trimmed of surrounding whitespace. Normalize is idempotent.
func Normalize(word string) string {
	return strings.ToLower(strings.TrimSpace(word))
}

// AnchorPairKey returns an order-independent key for a pair of anchors:
// the two normalized anchors sorted lexicographically and joined. The
// key for (Cold, Hot) equals the key for (Hot, Cold).
func AnchorPairKey(anchorA, anchorB string) string {
	pair := []string{Normalize(anchorA), Normalize(anchorB)}
	sort.Strings(pair)
	return strings.Join(pair, "|")
}

// CheckAnswer reports whether a guess matches the correct answer under
// normalized comparison. Empty guesses never match.
func CheckAnswer(guess, answer string) bool {
	if guess == "" || answer == "" {
		return false
	}
	return Normalize(guess) == Normalize(answer)
}
