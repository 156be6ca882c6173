package generator

import (
	"context"

	"github.com/hyperengineering/between/internal/puzzle"
)

// Compile-time interface check
var _ CandidateSource = (*Static)(nil)

// Static serves a fixed candidate table. Used in dev mode when no API
// key is configured; it is never substituted silently on failure.
type Static struct{}

// NewStatic creates a static candidate source.
func NewStatic() *Static {
	return &Static{}
}

var staticCandidates = []puzzle.Candidate{
	{AnchorA: "Cold", AnchorB: "Hot", Answer: "Warm", Category: "temperature"},
	{AnchorA: "Bicycle", AnchorB: "Car", Answer: "Motorcycle", Category: "vehicle"},
	{AnchorA: "Whisper", AnchorB: "Shout", Answer: "Talk", Category: "volume"},
	{AnchorA: "Seed", AnchorB: "Tree", Answer: "Plant", Category: "lifecycle"},
	{AnchorA: "Tiny", AnchorB: "Huge", Answer: "Medium", Category: "size"},
	{AnchorA: "Dawn", AnchorB: "Dusk", Answer: "Noon", Category: "time"},
	{AnchorA: "Infant", AnchorB: "Elder", Answer: "Adult", Category: "age"},
	{AnchorA: "Freeze", AnchorB: "Boil", Answer: "Melt", Category: "temperature"},
	{AnchorA: "Walk", AnchorB: "Run", Answer: "Jog", Category: "speed"},
	{AnchorA: "Empty", AnchorB: "Full", Answer: "Half", Category: "quantity"},
	{AnchorA: "Start", AnchorB: "End", Answer: "Middle", Category: "position"},
	{AnchorA: "Dark", AnchorB: "Light", Answer: "Dim", Category: "brightness"},
	{AnchorA: "Quiet", AnchorB: "Loud", Answer: "Moderate", Category: "volume"},
	{AnchorA: "Slow", AnchorB: "Fast", Answer: "Medium", Category: "speed"},
	{AnchorA: "Small", AnchorB: "Large", Answer: "Medium", Category: "size"},
	{AnchorA: "Few", AnchorB: "Many", Answer: "Some", Category: "quantity"},
	{AnchorA: "Low", AnchorB: "High", Answer: "Medium", Category: "height"},
	{AnchorA: "Thin", AnchorB: "Thick", Answer: "Medium", Category: "width"},
	{AnchorA: "Easy", AnchorB: "Hard", Answer: "Medium", Category: "difficulty"},
	{AnchorA: "Rare", AnchorB: "Common", Answer: "Uncommon", Category: "frequency"},
}

// Generate returns the static candidate table, ignoring count and the
// avoid summary.
func (s *Static) Generate(_ context.Context, _ int, _ string) ([]puzzle.Candidate, error) {
	out := make([]puzzle.Candidate, len(staticCandidates))
	copy(out, staticCandidates)
	return out, nil
}

// ModelName identifies the static source.
func (s *Static) ModelName() string {
	return "static"
}
