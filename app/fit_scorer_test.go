package app

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drmlgentry/Golden-Unification/domain/lattice"
	"github.com/drmlgentry/Golden-Unification/domain/particle"
	"github.com/drmlgentry/Golden-Unification/internal/errors"
	"github.com/drmlgentry/Golden-Unification/internal/testkit"
)

type failingSearcher struct{}

func (failingSearcher) Name() string { return "failing" }

func (failingSearcher) Nearest(ratio float64) (lattice.FitResult, error) {
	return lattice.FitResult{}, fmt.Errorf("no exponent for %v", ratio)
}

func defaultScorer(t *testing.T, strategy string) *FitScorer {
	t.Helper()
	set, err := lattice.BuildFeasibleSet(lattice.DefaultSearchBox())
	require.NoError(t, err)
	searcher, err := lattice.NewSearcher(strategy, set)
	require.NoError(t, err)
	return NewFitScorer(searcher)
}

func TestFitParticle_AnchorInvariance(t *testing.T) {
	scorer := NewFitScorer(failingSearcher{})
	anchor := particle.Particle{Name: "electron", Mass: 0.51099895}

	fit, err := scorer.FitParticle(anchor, anchor)
	require.NoError(t, err)
	assert.Equal(t, lattice.FitResult{BestExponent: 0, Error: 0}, fit)
}

func TestFitParticle_DelegatesRatio(t *testing.T) {
	scorer := NewFitScorer(lattice.NewLinearSearcher(testkit.ZeroOnlySet()))
	anchor := particle.Particle{Name: "a", Mass: 2}
	p := particle.Particle{Name: "b", Mass: 2 * lattice.Phi}

	fit, err := scorer.FitParticle(p, anchor)
	require.NoError(t, err)
	assert.Equal(t, 0, fit.BestExponent)
	assert.InDelta(t, 1.0, fit.Error, 1e-12)
}

func TestFitParticle_SearchFailureIsDataError(t *testing.T) {
	scorer := NewFitScorer(failingSearcher{})
	_, err := scorer.FitParticle(
		particle.Particle{Name: "muon", Mass: 105.66},
		particle.Particle{Name: "electron", Mass: 0.511},
	)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.CodeDataInvalid))
}

func TestFitSet_MeanAggregation(t *testing.T) {
	scorer := NewFitScorer(lattice.NewLinearSearcher(testkit.ZeroOnlySet()))
	set := testkit.SetWithErrors(0.01, 0.03)

	fit, err := scorer.FitSet(set)
	require.NoError(t, err)

	assert.InDelta(t, 0.04/3, fit.MeanError, 1e-9)
	assert.Equal(t, []string{"anchor", "p1", "p2"}, fit.Order)
	assert.Equal(t, "anchor", fit.Anchor)
	assert.Equal(t, 0.0, fit.PerParticle["anchor"].Error)
	assert.InDelta(t, 0.01, fit.PerParticle["p1"].Error, 1e-12)
	assert.InDelta(t, 0.03, fit.PerParticle["p2"].Error, 1e-12)
}

func TestFitSet_ScoreMatchesMeanError(t *testing.T) {
	scorer := defaultScorer(t, lattice.StrategyBinary)
	set := testkit.ReferenceSet()

	fit, err := scorer.FitSet(set)
	require.NoError(t, err)
	score, err := scorer.Score(set)
	require.NoError(t, err)

	assert.Equal(t, fit.MeanError, score)
	assert.Len(t, fit.PerParticle, set.Len())
	for _, name := range fit.Order {
		r := fit.PerParticle[name]
		assert.GreaterOrEqual(t, r.Error, 0.0)
		// Adjacent feasible exponents are never more than one apart in this box.
		assert.LessOrEqual(t, r.Error, 0.125+1e-12, name)
	}
}

func TestFitSet_StrategiesAgree(t *testing.T) {
	set := testkit.ReferenceSet()
	linear, err := defaultScorer(t, lattice.StrategyLinear).FitSet(set)
	require.NoError(t, err)
	binary, err := defaultScorer(t, lattice.StrategyBinary).FitSet(set)
	require.NoError(t, err)

	assert.Equal(t, linear, binary)
}

func TestFitSet_AnchorNotFirst(t *testing.T) {
	scorer := NewFitScorer(lattice.NewLinearSearcher(testkit.ZeroOnlySet()))
	set, err := particle.NewSet([]particle.Particle{
		{Name: "x", Mass: lattice.Phi * lattice.Phi},
		{Name: "ref", Mass: lattice.Phi},
	}, "ref")
	require.NoError(t, err)

	fit, err := scorer.FitSet(set)
	require.NoError(t, err)
	assert.Equal(t, "ref", fit.Anchor)
	assert.Equal(t, 0.0, fit.PerParticle["ref"].Error)
	assert.InDelta(t, 1.0, fit.PerParticle["x"].Error, 1e-12)
	assert.InDelta(t, 0.5, fit.MeanError, 1e-12)
}
