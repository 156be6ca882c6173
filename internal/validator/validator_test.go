package validator

import (
	"testing"

	"github.com/hyperengineering/between/internal/puzzle"
)

func confidence(v float64) *float64 {
	return &v
}

func TestValidate(t *testing.T) {
	v := Default()

	tests := []struct {
		name      string
		candidate puzzle.Candidate
		want      bool
	}{
		{
			name:      "valid candidate",
			candidate: puzzle.Candidate{AnchorA: "Cold", AnchorB: "Hot", Answer: "warm", Category: "temperature"},
			want:      true,
		},
		{
			name:      "missing anchor A",
			candidate: puzzle.Candidate{AnchorA: "", AnchorB: "Hot", Answer: "warm"},
			want:      false,
		},
		{
			name:      "missing anchor B",
			candidate: puzzle.Candidate{AnchorA: "Cold", AnchorB: "", Answer: "warm"},
			want:      false,
		},
		{
			name:      "missing answer",
			candidate: puzzle.Candidate{AnchorA: "Cold", AnchorB: "Hot", Answer: ""},
			want:      false,
		},
		{
			name:      "whitespace-only answer",
			candidate: puzzle.Candidate{AnchorA: "Cold", AnchorB: "Hot", Answer: "   "},
			want:      false,
		},
		{
			name:      "equal anchors case-insensitive",
			candidate: puzzle.Candidate{AnchorA: "Cold", AnchorB: "COLD", Answer: "warm"},
			want:      false,
		},
		{
			name:      "answer equals anchor A",
			candidate: puzzle.Candidate{AnchorA: "Warm", AnchorB: "Freezing", Answer: "warm"},
			want:      false,
		},
		{
			name:      "answer equals anchor B case-insensitive",
			candidate: puzzle.Candidate{AnchorA: "Freezing", AnchorB: "warm", Answer: "WARM"},
			want:      false,
		},
		{
			name:      "answer longer than two words",
			candidate: puzzle.Candidate{AnchorA: "Cold", AnchorB: "Hot", Answer: "a bit warm"},
			want:      false,
		},
		{
			name:      "two-word answer allowed",
			candidate: puzzle.Candidate{AnchorA: "Puddle", AnchorB: "Ocean", Answer: "big lake", Category: "size"},
			want:      true,
		},
		{
			name:      "synonymous anchors via canonical key",
			candidate: puzzle.Candidate{AnchorA: "big", AnchorB: "huge", Answer: "large"},
			want:      false,
		},
		{
			name:      "synonymous anchors within same set",
			candidate: puzzle.Candidate{AnchorA: "large", AnchorB: "enormous", Answer: "big"},
			want:      false,
		},
		{
			name:      "synonymous anchors reversed order",
			candidate: puzzle.Candidate{AnchorA: "Huge", AnchorB: "Big", Answer: "medium"},
			want:      false,
		},
		{
			name:      "uncommon long answer rejected",
			candidate: puzzle.Candidate{AnchorA: "Cold", AnchorB: "Hot", Answer: "tepidarium"},
			want:      false,
		},
		{
			name:      "allow-listed long answer accepted",
			candidate: puzzle.Candidate{AnchorA: "Bicycle", AnchorB: "Car", Answer: "motorcycle", Category: "vehicle"},
			want:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := v.Validate(tt.candidate); got != tt.want {
				t.Errorf("Validate(%+v) = %v, want %v", tt.candidate, got, tt.want)
			}
		})
	}
}

// Validate must be deterministic for equal input.
func TestValidate_Deterministic(t *testing.T) {
	v := Default()
	c := puzzle.Candidate{AnchorA: "Cold", AnchorB: "Hot", Answer: "warm", Category: "temperature"}
	first := v.Validate(c)
	for i := 0; i < 10; i++ {
		if v.Validate(c) != first {
			t.Fatal("Validate returned different results for equal input")
		}
	}
}

func TestScore(t *testing.T) {
	v := Default()

	tests := []struct {
		name      string
		candidate puzzle.Candidate
		want      int
	}{
		{
			name:      "baseline",
			candidate: puzzle.Candidate{AnchorA: "Cold", AnchorB: "Hot", Answer: "warm", Category: "temperature"},
			want:      100,
		},
		{
			name:      "long answer penalty",
			candidate: puzzle.Candidate{AnchorA: "Cold", AnchorB: "Hot", Answer: "lukewarmish", Category: "temperature"},
			want:      90,
		},
		{
			name:      "multi-word penalty",
			candidate: puzzle.Candidate{AnchorA: "Cold", AnchorB: "Hot", Answer: "not cold", Category: "temperature"},
			want:      95,
		},
		{
			name:      "long anchor penalty",
			candidate: puzzle.Candidate{AnchorA: "Unquestionably", AnchorB: "Hot", Answer: "warm", Category: "temperature"},
			want:      95,
		},
		{
			name:      "size category bonus",
			candidate: puzzle.Candidate{AnchorA: "Tiny", AnchorB: "Huge", Answer: "medium", Category: "size"},
			want:      105,
		},
		{
			name:      "quantity category bonus",
			candidate: puzzle.Candidate{AnchorA: "Few", AnchorB: "Many", Answer: "some", Category: "quantity"},
			want:      105,
		},
		{
			name:      "low confidence penalty",
			candidate: puzzle.Candidate{AnchorA: "Cold", AnchorB: "Hot", Answer: "warm", Category: "temperature", Confidence: confidence(0.5)},
			want:      80,
		},
		{
			name:      "high confidence no penalty",
			candidate: puzzle.Candidate{AnchorA: "Cold", AnchorB: "Hot", Answer: "warm", Category: "temperature", Confidence: confidence(0.9)},
			want:      100,
		},
		{
			name: "penalties stack",
			candidate: puzzle.Candidate{
				AnchorA:    "Unquestionably",
				AnchorB:    "Hot",
				Answer:     "barely lukewarm",
				Category:   "temperature",
				Confidence: confidence(0.1),
			},
			want: 60,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := v.Score(tt.candidate); got != tt.want {
				t.Errorf("Score(%+v) = %d, want %d", tt.candidate, got, tt.want)
			}
		})
	}
}

func TestScore_FlooredAtZero(t *testing.T) {
	v := Default()
	if got := v.Score(puzzle.Candidate{}); got < 0 {
		t.Errorf("Score returned negative value %d", got)
	}
}

func TestStaticLexicon_IsSynonym(t *testing.T) {
	lex := NewStaticLexicon()

	tests := []struct {
		a, b string
		want bool
	}{
		{"big", "large", true},
		{"large", "big", true},
		{"large", "huge", true}, // same synonym set
		{"Big", "HUGE", true},   // case-insensitive
		{"big", "small", false},
		{"cold", "hot", false},
		{"hot", "warm", true},
	}

	for _, tt := range tests {
		if got := lex.IsSynonym(tt.a, tt.b); got != tt.want {
			t.Errorf("IsSynonym(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestStaticLexicon_IsCommonWord(t *testing.T) {
	lex := NewStaticLexicon()

	tests := []struct {
		word string
		want bool
	}{
		{"warm", true},        // allow-listed
		{"motorcycle", true},  // allow-listed despite length
		{"abcdefgh", true},    // length fallback, 8 chars
		{"abcdefghi", false},  // 9 chars, not listed
		{"tepidarium", false}, // long and obscure
	}

	for _, tt := range tests {
		if got := lex.IsCommonWord(tt.word); got != tt.want {
			t.Errorf("IsCommonWord(%q) = %v, want %v", tt.word, got, tt.want)
		}
	}
}
