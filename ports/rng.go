package ports

import (
	"context"
	"math/rand/v2"
)

// RNGPort provides seeded random number generation for deterministic null trials.
// Every trial owns its own stream, so trials can be evaluated in any order or
// in parallel and still replay identically.
type RNGPort interface {
	// SeededStream creates a deterministic generator for a named operation
	SeededStream(ctx context.Context, name string, seed int64) (*rand.Rand, error)

	// TrialStream creates the generator for one trial of a named null ensemble
	TrialStream(ctx context.Context, ensemble string, trial int, baseSeed int64) (*rand.Rand, error)
}
