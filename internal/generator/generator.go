// Package generator produces raw puzzle candidates from a generative
// model. The output is untrusted: callers must validate every record
// before use.
package generator

import (
	"context"

	"github.com/hyperengineering/between/internal/puzzle"
)

// CandidateSource defines the interface contract for candidate
// generation services.
type CandidateSource interface {
	// Generate requests roughly count candidates. The avoid summary
	// lists recently used anchor pairs and answers as a soft hint to
	// reduce collisions; it is not a hard constraint.
	Generate(ctx context.Context, count int, avoid string) ([]puzzle.Candidate, error)

	// ModelName identifies the underlying model for diagnostics.
	ModelName() string
}
