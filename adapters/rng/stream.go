// Package rng derives reproducible PCG streams from a run seed.
package rng

import (
	"context"
	"math/rand/v2"
	"strconv"
)

// StreamAdapter implements ports.RNGPort with PCG generators whose two seed
// words are the run seed and a djb2 hash of the stream identity.
type StreamAdapter struct{}

// NewStreamAdapter creates a stream adapter
func NewStreamAdapter() *StreamAdapter {
	return &StreamAdapter{}
}

// SeededStream creates a deterministic random number generator for a named operation
func (r *StreamAdapter) SeededStream(ctx context.Context, name string, seed int64) (*rand.Rand, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return rand.New(rand.NewPCG(uint64(seed), uint64(hashString(name)))), nil
}

// TrialStream creates the stream of one trial: same ensemble, trial and seed give the same draws
func (r *StreamAdapter) TrialStream(ctx context.Context, ensemble string, trial int, baseSeed int64) (*rand.Rand, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	key := ensemble + "#" + strconv.Itoa(trial)
	return rand.New(rand.NewPCG(uint64(baseSeed), hashString(key))), nil
}

// hashString is 64-bit djb2, enough to decorrelate stream names
func hashString(s string) uint64 {
	var hash uint64 = 5381
	for _, c := range []byte(s) {
		hash = ((hash << 5) + hash) + uint64(c)
	}
	return hash
}
