package stats

import (
	"testing"

	"github.com/drmlgentry/Golden-Unification/domain/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuantile_LinearInterpolation(t *testing.T) {
	sorted := []float64{1, 2, 3, 4, 5}

	tests := []struct {
		p    float64
		want float64
	}{
		{0, 1},
		{0.5, 3},
		{0.16, 1.64}, // pos 0.64
		{0.84, 4.36}, // pos 3.36
		{1, 5},
		{-0.2, 1},
		{1.5, 5},
	}
	for _, tt := range tests {
		got, err := Quantile(sorted, tt.p)
		require.NoError(t, err)
		assert.InDelta(t, tt.want, got, 1e-12, "p=%v", tt.p)
	}

	_, err := Quantile(nil, 0.5)
	assert.Error(t, err)
}

func TestQuantile_EvenMedian(t *testing.T) {
	got, err := Quantile([]float64{1, 2, 3, 10}, 0.5)
	require.NoError(t, err)
	assert.Equal(t, 2.5, got)
}

func TestEmpiricalP_ExactCount(t *testing.T) {
	null := []float64{0.3, 0.1, 0.2, 0.2, 0.5}

	p, count, err := EmpiricalP(null, 0.2)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
	assert.Equal(t, 3.0/5.0, p)

	p, _, err = EmpiricalP(null, 0.0)
	require.NoError(t, err)
	assert.Equal(t, 0.0, p)

	p, _, err = EmpiricalP(null, 1.0)
	require.NoError(t, err)
	assert.Equal(t, 1.0, p)

	_, _, err = EmpiricalP(nil, 1.0)
	assert.ErrorIs(t, err, core.ErrZeroTrials)
}

func TestSummarize(t *testing.T) {
	scores := []float64{0.5, 0.1, 0.4, 0.2, 0.3}
	summary, err := Summarize(scores, 0.25)
	require.NoError(t, err)

	assert.Equal(t, 5, summary.N)
	assert.Equal(t, 0.1, summary.Min)
	assert.Equal(t, 0.5, summary.Max)
	assert.InDelta(t, 0.3, summary.Median, 1e-15)
	assert.InDelta(t, 0.164, summary.P16, 1e-12)
	assert.InDelta(t, 0.436, summary.P84, 1e-12)
	assert.InDelta(t, 0.3, summary.Mean, 1e-15)
	assert.Greater(t, summary.StdDev, 0.0)
	assert.Equal(t, 2, summary.AtOrBelow)
	assert.Equal(t, 0.4, summary.EmpiricalP)
	assert.Equal(t, 0.25, summary.Observed)

	// input left untouched
	assert.Equal(t, []float64{0.5, 0.1, 0.4, 0.2, 0.3}, scores)
}

func TestSummarize_SingleTrial(t *testing.T) {
	summary, err := Summarize([]float64{0.7}, 0.7)
	require.NoError(t, err)
	assert.Equal(t, 0.7, summary.Median)
	assert.Equal(t, 0.0, summary.StdDev)
	assert.Equal(t, 1.0, summary.EmpiricalP)
}

func TestSummarize_ZeroTrialsRejected(t *testing.T) {
	_, err := Summarize(nil, 0.1)
	assert.ErrorIs(t, err, core.ErrZeroTrials)
}

func TestSummarize_PBounds(t *testing.T) {
	scores := []float64{0.2, 0.2, 0.2}
	for _, obs := range []float64{-1, 0.2, 5} {
		s, err := Summarize(scores, obs)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, s.EmpiricalP, 0.0)
		assert.LessOrEqual(t, s.EmpiricalP, 1.0)
	}
}
