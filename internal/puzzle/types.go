package puzzle

import "encoding/json"

// DateFormat is the canonical calendar date key form.
const DateFormat = "2006-01-02"

// Candidate is the unvalidated output of a candidate source. Fields come
// straight from a generative model response and must be treated as
// untrusted until they pass validation.
type Candidate struct {
	AnchorA    string   `json:"anchorA"`
	AnchorB    string   `json:"anchorB"`
	Answer     string   `json:"answer"`
	Category   string   `json:"category"`
	Confidence *float64 `json:"confidence,omitempty"`
}

// Round is a validated, finalized puzzle round. The answer is stored
// normalized (lowercase, trimmed); anchors keep their display casing.
type Round struct {
	AnchorA  string `json:"anchorA"`
	AnchorB  string `json:"anchorB"`
	Answer   string `json:"answer"`
	Category string `json:"category"`
}

// DailyPuzzle is the full set of rounds issued for one calendar date.
type DailyPuzzle struct {
	Date   string  `json:"date"`
	Rounds []Round `json:"rounds"`
}

// MarshalJSON ensures a nil Rounds slice marshals as [] not null.
func (p DailyPuzzle) MarshalJSON() ([]byte, error) {
	if p.Rounds == nil {
		p.Rounds = []Round{}
	}
	type Alias DailyPuzzle
	return json.Marshal(Alias(p))
}
