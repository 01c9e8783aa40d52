// Package testkit provides fixtures shared by package tests.
package testkit

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/stretchr/testify/mock"

	"github.com/drmlgentry/Golden-Unification/domain/lattice"
	"github.com/drmlgentry/Golden-Unification/domain/particle"
)

// MiniBox spans a∈[0,0], b∈[0,0], c∈[0,1] and yields the exponents {0, 24}.
func MiniBox() lattice.SearchBox {
	return lattice.SearchBox{AMin: 0, AMax: 0, BMin: 0, BMax: 0, CMin: 0, CMax: 1}
}

// SmallBox is large enough to exercise the search but cheap to enumerate.
func SmallBox() lattice.SearchBox {
	return lattice.SearchBox{AMin: -6, AMax: 6, BMin: -4, BMax: 4, CMin: -4, CMax: 4}
}

// ReferenceSet returns the reference spectrum anchored on the electron
func ReferenceSet() *particle.Set {
	return particle.ReferenceSet()
}

// ZeroOnlySet is a feasible set holding just the exponent 0.
func ZeroOnlySet() *lattice.FeasibleSet {
	set, err := lattice.NewFeasibleSet([]int{0})
	if err != nil {
		panic(err)
	}
	return set
}

// SetWithErrors builds a set whose particles fit exponent 0 with exactly the
// given quarter-exponent errors. The anchor "anchor" has mass 1 and comes first.
func SetWithErrors(errs ...float64) *particle.Set {
	ps := []particle.Particle{{Name: "anchor", Mass: 1}}
	for i, e := range errs {
		ps = append(ps, particle.Particle{
			Name: fmt.Sprintf("p%d", i+1),
			Mass: math.Pow(lattice.Phi, e),
		})
	}
	set, err := particle.NewSet(ps, "anchor")
	if err != nil {
		panic(err)
	}
	return set
}

// MockRNG is a testify mock of ports.RNGPort. Unless an expectation is set,
// use NewMockRNG which answers every call with a deterministic PCG stream.
type MockRNG struct {
	mock.Mock
}

// NewMockRNG returns a mock whose streams are seeded from (seed, trial)
func NewMockRNG() *MockRNG {
	m := &MockRNG{}
	m.On("TrialStream", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, nil).Maybe()
	m.On("SeededStream", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, nil).Maybe()
	return m
}

func (m *MockRNG) SeededStream(ctx context.Context, name string, seed int64) (*rand.Rand, error) {
	args := m.Called(ctx, name, seed)
	if err := args.Error(1); err != nil {
		return nil, err
	}
	if r, ok := args.Get(0).(*rand.Rand); ok && r != nil {
		return r, nil
	}
	return rand.New(rand.NewPCG(uint64(seed), 0)), nil
}

func (m *MockRNG) TrialStream(ctx context.Context, ensemble string, trial int, baseSeed int64) (*rand.Rand, error) {
	args := m.Called(ctx, ensemble, trial, baseSeed)
	if err := args.Error(1); err != nil {
		return nil, err
	}
	if r, ok := args.Get(0).(*rand.Rand); ok && r != nil {
		return r, nil
	}
	return rand.New(rand.NewPCG(uint64(baseSeed), uint64(trial))), nil
}

// IdentityGenerator returns the base set unchanged on every trial.
type IdentityGenerator struct{}

func (IdentityGenerator) Kind() string { return "identity" }

func (IdentityGenerator) StreamName() string { return "identity" }

func (IdentityGenerator) Params() map[string]float64 { return map[string]float64{} }

func (IdentityGenerator) Generate(base *particle.Set, _ *rand.Rand) (*particle.Set, error) {
	return base, nil
}

// BrokenGenerator zeroes the last mass, which the set rejects.
type BrokenGenerator struct{}

func (BrokenGenerator) Kind() string { return "broken" }

func (BrokenGenerator) StreamName() string { return "broken" }

func (BrokenGenerator) Params() map[string]float64 { return map[string]float64{} }

func (BrokenGenerator) Generate(base *particle.Set, _ *rand.Rand) (*particle.Set, error) {
	masses := base.Masses()
	masses[len(masses)-1] = 0
	return base.WithMasses(masses)
}
