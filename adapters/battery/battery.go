// Package battery holds the null ensembles a lattice fit is tested against.
package battery

import (
	"fmt"

	"github.com/drmlgentry/Golden-Unification/ports"
)

// Ensemble kinds.
const (
	KindPermutation = "permutation"
	KindLogUniform  = "log_uniform"
	KindJitter      = "jitter"
)

// NewGenerator builds a generator by kind. sigma is only read for jitter.
func NewGenerator(kind string, sigma float64) (ports.NullGenerator, error) {
	switch kind {
	case KindPermutation:
		return NewPermutationGenerator(), nil
	case KindLogUniform:
		return NewLogUniformGenerator(), nil
	case KindJitter:
		g, err := NewJitterGenerator(sigma)
		if err != nil {
			return nil, err
		}
		return g, nil
	default:
		return nil, fmt.Errorf("unknown null ensemble %q", kind)
	}
}

// StandardBattery returns log-uniform followed by one jitter generator per sigma,
// optionally preceded by the permutation null.
func StandardBattery(sigmas []float64, includePermutation bool) ([]ports.NullGenerator, error) {
	gens := make([]ports.NullGenerator, 0, len(sigmas)+2)
	if includePermutation {
		gens = append(gens, NewPermutationGenerator())
	}
	gens = append(gens, NewLogUniformGenerator())
	for _, s := range sigmas {
		g, err := NewJitterGenerator(s)
		if err != nil {
			return nil, err
		}
		gens = append(gens, g)
	}
	return gens, nil
}
