package ports

import (
	"math/rand/v2"

	"github.com/drmlgentry/Golden-Unification/domain/particle"
)

// NullGenerator draws one synthetic particle set under a null hypothesis.
// Implementations keep the anchor mass, particle count and labels of base.
type NullGenerator interface {
	// Kind names the ensemble family (permutation, log_uniform, jitter)
	Kind() string

	// StreamName identifies the ensemble including its parameters, used to
	// derive per-trial random streams
	StreamName() string

	// Params discloses generator parameters for the report
	Params() map[string]float64

	// Generate draws one null sample from base using rng only
	Generate(base *particle.Set, rng *rand.Rand) (*particle.Set, error)
}

// CaveatReporter is implemented by generators whose p-value needs a warning,
// e.g. a null the score statistic is invariant under.
type CaveatReporter interface {
	Caveat() string
}
