package rng

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func draws(t *testing.T, ensemble string, trial int, seed int64) []uint64 {
	t.Helper()
	r, err := NewStreamAdapter().TrialStream(context.Background(), ensemble, trial, seed)
	require.NoError(t, err)
	out := make([]uint64, 8)
	for i := range out {
		out[i] = r.Uint64()
	}
	return out
}

func TestTrialStream_Reproducible(t *testing.T) {
	assert.Equal(t, draws(t, "jitter:sigma=0.150", 7, 1), draws(t, "jitter:sigma=0.150", 7, 1))
}

func TestTrialStream_DistinctStreams(t *testing.T) {
	base := draws(t, "log_uniform", 0, 1)
	assert.NotEqual(t, base, draws(t, "log_uniform", 1, 1), "trial index must change the stream")
	assert.NotEqual(t, base, draws(t, "log_uniform", 0, 2), "seed must change the stream")
	assert.NotEqual(t, base, draws(t, "permutation", 0, 1), "ensemble must change the stream")
}

func TestSeededStream_Reproducible(t *testing.T) {
	a, err := NewStreamAdapter().SeededStream(context.Background(), "observed", 42)
	require.NoError(t, err)
	b, err := NewStreamAdapter().SeededStream(context.Background(), "observed", 42)
	require.NoError(t, err)
	for i := 0; i < 16; i++ {
		assert.Equal(t, a.Float64(), b.Float64())
	}
}

func TestStreams_HonourCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewStreamAdapter().TrialStream(ctx, "x", 0, 1)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestHashString(t *testing.T) {
	assert.Equal(t, uint64(5381), hashString(""))
	assert.NotEqual(t, hashString("ab"), hashString("ba"))
}
