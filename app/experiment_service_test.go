package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drmlgentry/Golden-Unification/adapters/battery"
	"github.com/drmlgentry/Golden-Unification/adapters/rng"
	"github.com/drmlgentry/Golden-Unification/domain/lattice"
	"github.com/drmlgentry/Golden-Unification/domain/particle"
	"github.com/drmlgentry/Golden-Unification/internal/errors"
	"github.com/drmlgentry/Golden-Unification/internal/testkit"
)

func referenceRequest() ExperimentRequest {
	return ExperimentRequest{
		Dataset:            testkit.ReferenceSet(),
		Unit:               particle.UnitMeV,
		Box:                lattice.DefaultSearchBox(),
		Strategy:           lattice.StrategyBinary,
		Trials:             60,
		Seed:               1,
		Sigmas:             []float64{0.15, 0.5},
		IncludePermutation: true,
		Workers:            2,
	}
}

func newExperimentService() *ExperimentService {
	return NewExperimentService(rng.NewStreamAdapter(), quietLogger())
}

func TestExperimentRun_ReferenceDataset(t *testing.T) {
	report, err := newExperimentService().Run(context.Background(), referenceRequest())
	require.NoError(t, err)

	require.Len(t, report.Nulls, 4)
	assert.Equal(t, battery.KindPermutation, report.Nulls[0].Kind)
	assert.Equal(t, battery.KindLogUniform, report.Nulls[1].Kind)
	assert.Equal(t, battery.KindJitter, report.Nulls[2].Kind)
	assert.Equal(t, 0.15, report.Nulls[2].Sigma())
	assert.Equal(t, 0.5, report.Nulls[3].Sigma())
	for _, n := range report.Nulls {
		assert.Equal(t, 60, n.Summary.N)
		assert.Equal(t, report.Observed.MeanError, n.Summary.Observed)
	}

	assert.Len(t, report.Diagnostics, 6)
	assert.Equal(t, particle.ReferenceAnchor, report.Observed.Anchor)

	m := report.Manifest
	require.NoError(t, m.Validate())
	require.NoError(t, m.Verify())
	assert.Equal(t, lattice.DefaultSearchBox(), m.Box)
	assert.Equal(t, "MeV", m.Unit)
	assert.Equal(t, DefaultTolerance, m.Tolerance)
	assert.Equal(t, 4303, m.FeasibleSize)
}

func TestExperimentRun_Replays(t *testing.T) {
	svc := newExperimentService()
	a, err := svc.Run(context.Background(), referenceRequest())
	require.NoError(t, err)

	req := referenceRequest()
	req.Workers = 1
	req.Strategy = lattice.StrategyLinear
	b, err := svc.Run(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, a.Manifest.Fingerprint, b.Manifest.Fingerprint)
	assert.NotEqual(t, a.Manifest.RunID, b.Manifest.RunID)
	assert.Equal(t, a.Observed, b.Observed)
	for i := range a.Nulls {
		assert.Equal(t, a.Nulls[i].Scores, b.Nulls[i].Scores)
		assert.Equal(t, a.Nulls[i].Summary, b.Nulls[i].Summary)
	}
}

func TestExperimentRun_ConfigErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ExperimentRequest)
	}{
		{"empty box", func(r *ExperimentRequest) { r.Box.BMin, r.Box.BMax = 3, 2 }},
		{"zero trials", func(r *ExperimentRequest) { r.Trials = 0 }},
		{"negative sigma", func(r *ExperimentRequest) { r.Sigmas = []float64{-1} }},
		{"unknown strategy", func(r *ExperimentRequest) { r.Strategy = "bisect" }},
		{"bad tolerance", func(r *ExperimentRequest) { r.Tolerance = -0.2 }},
		{"no dataset", func(r *ExperimentRequest) { r.Dataset = nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := referenceRequest()
			tt.mutate(&req)
			_, err := newExperimentService().Run(context.Background(), req)
			require.Error(t, err)
			assert.True(t, errors.HasCode(err, errors.CodeConfigInvalid), "got %v", err)
		})
	}
}

func TestExperimentFit_MiniLattice(t *testing.T) {
	set, err := particle.NewSet([]particle.Particle{
		{Name: "a", Mass: 1},
		{Name: "b", Mass: lattice.RatioOf(24)},
	}, "a")
	require.NoError(t, err)

	prep, fit, err := newExperimentService().Fit(ExperimentRequest{
		Dataset: set,
		Box:     testkit.MiniBox(),
	})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 24}, prep.Feasible.Exponents())
	assert.Equal(t, 24, fit.PerParticle["b"].BestExponent)
	assert.InDelta(t, 0, fit.PerParticle["b"].Error, 1e-12)
}
