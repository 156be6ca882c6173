package validator

import "github.com/hyperengineering/between/internal/puzzle"

// Lexicon answers vocabulary questions about candidate words. The
// default implementation is a small static table; swapping in a richer
// thesaurus must not require touching the validation control flow.
type Lexicon interface {
	// IsSynonym reports whether two words are close enough in meaning
	// that they cannot anchor a spectrum. False negatives are acceptable.
	IsSynonym(a, b string) bool

	// IsCommonWord reports whether a word is ordinary enough to be a
	// fair answer.
	IsCommonWord(word string) bool
}

// staticLexicon is a coarse denylist/allowlist lexicon. It is not a
// semantic-similarity model; it only has to catch the obvious cases.
type staticLexicon struct {
	synonyms map[string][]string
	common   map[string]struct{}
}

// NewStaticLexicon returns the built-in lexicon.
func NewStaticLexicon() Lexicon {
	common := map[string]struct{}{}
	for _, w := range []string{
		"warm", "cool", "medium", "talk", "plant", "motorcycle", "jog", "half",
		"middle", "dim", "moderate", "some", "adult", "noon", "melt", "uncommon",
		"average", "normal", "typical", "standard", "regular",
	} {
		common[w] = struct{}{}
	}

	return &staticLexicon{
		synonyms: map[string][]string{
			"big":   {"large", "huge", "enormous"},
			"small": {"tiny", "little", "mini"},
			"fast":  {"quick", "rapid", "swift"},
			"slow":  {"sluggish", "slack"},
			"hot":   {"warm", "heated"},
			"cold":  {"cool", "chilly"},
		},
		common: common,
	}
}

func (l *staticLexicon) IsSynonym(a, b string) bool {
	w1 := puzzle.Normalize(a)
	w2 := puzzle.Normalize(b)

	for key, values := range l.synonyms {
		if (key == w1 && contains(values, w2)) || (key == w2 && contains(values, w1)) {
			return true
		}
		if contains(values, w1) && contains(values, w2) {
			return true
		}
	}
	return false
}

// IsCommonWord uses an allow-list hit OR a length cutoff. The length
// fallback is a crude proxy for ordinary vocabulary, not a guarantee.
func (l *staticLexicon) IsCommonWord(word string) bool {
	if _, ok := l.common[puzzle.Normalize(word)]; ok {
		return true
	}
	return len(word) <= 8
}

func contains(words []string, w string) bool {
	for _, v := range words {
		if v == w {
			return true
		}
	}
	return false
}
