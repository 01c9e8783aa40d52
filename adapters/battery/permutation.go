package battery

import (
	"math/rand/v2"

	"github.com/drmlgentry/Golden-Unification/domain/particle"
)

// PermutationGenerator shuffles the non-anchor masses across the non-anchor
// labels. The multiset of (log-)masses is preserved exactly; only the
// name↔mass pairing is destroyed.
//
// The mean-error score is symmetric in the labels, so under this null every
// trial reproduces the observed score and p_emp is 1 by construction. It is
// kept as an offered ensemble and flagged through Caveat.
type PermutationGenerator struct{}

// NewPermutationGenerator creates a permutation null generator
func NewPermutationGenerator() *PermutationGenerator {
	return &PermutationGenerator{}
}

func (g *PermutationGenerator) Kind() string { return KindPermutation }

func (g *PermutationGenerator) StreamName() string { return KindPermutation }

func (g *PermutationGenerator) Params() map[string]float64 { return map[string]float64{} }

func (g *PermutationGenerator) Caveat() string {
	return "mean error is invariant under label permutation; this null is degenerate and its p-value is 1 up to rounding"
}

// Generate performs a Fisher-Yates shuffle of the non-anchor masses.
// log is monotone, so permuting masses is permuting log-masses, without a
// round trip through exp/log.
func (g *PermutationGenerator) Generate(base *particle.Set, rng *rand.Rand) (*particle.Set, error) {
	shuffled := base.NonAnchorMasses()
	for i := len(shuffled) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}
	return base.WithMasses(withAnchor(base, shuffled))
}

// withAnchor re-inserts the base anchor mass at its index among non-anchor masses.
func withAnchor(base *particle.Set, nonAnchor []float64) []float64 {
	masses := make([]float64, 0, base.Len())
	k := 0
	for i := 0; i < base.Len(); i++ {
		if i == base.AnchorIndex() {
			masses = append(masses, base.Anchor().Mass)
			continue
		}
		masses = append(masses, nonAnchor[k])
		k++
	}
	return masses
}
