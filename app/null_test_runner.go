package app

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/drmlgentry/Golden-Unification/domain/core"
	"github.com/drmlgentry/Golden-Unification/domain/particle"
	"github.com/drmlgentry/Golden-Unification/domain/run"
	"github.com/drmlgentry/Golden-Unification/domain/stats"
	"github.com/drmlgentry/Golden-Unification/internal"
	"github.com/drmlgentry/Golden-Unification/internal/errors"
	"github.com/drmlgentry/Golden-Unification/ports"

	"golang.org/x/sync/errgroup"
)

// NullTestRunner draws a null ensemble, scores every sample and compares the
// observed score against the resulting distribution.
type NullTestRunner struct {
	scorer  *FitScorer
	rngPort ports.RNGPort
	workers int
	logger  *internal.Logger
}

// NewNullTestRunner creates a runner with a single worker
func NewNullTestRunner(scorer *FitScorer, rngPort ports.RNGPort, logger *internal.Logger) *NullTestRunner {
	if logger == nil {
		logger = internal.NewDefaultLogger()
	}
	return &NullTestRunner{
		scorer:  scorer,
		rngPort: rngPort,
		workers: 1,
		logger:  logger.WithComponent("NullTestRunner"),
	}
}

// SetWorkers bounds the number of concurrent trials. Each trial owns its
// random stream, so results do not depend on this value.
func (r *NullTestRunner) SetWorkers(n int) {
	if n < 1 {
		n = 1
	}
	r.workers = n
}

// Workers returns the configured concurrency
func (r *NullTestRunner) Workers() int {
	return r.workers
}

// RunNullTest executes trials draws of gen against base and summarizes the
// null scores against observed.
func (r *NullTestRunner) RunNullTest(
	ctx context.Context,
	base *particle.Set,
	gen ports.NullGenerator,
	trials int,
	seed int64,
	observed float64,
) (*run.NullDistribution, error) {
	if trials <= 0 {
		return nil, errors.Config(fmt.Errorf("%w: got %d", core.ErrZeroTrials, trials))
	}

	r.logger.Debug("Running %s null: %d trials, seed %d, %d workers", gen.StreamName(), trials, seed, r.workers)

	scores := make([]float64, trials)
	var done atomic.Int64
	step := int64(trials / 10)
	if step == 0 {
		step = 1
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for i := 0; i < trials; i++ {
		if gCtx.Err() != nil {
			break
		}
		g.Go(func() error {
			score, err := r.runTrial(gCtx, base, gen, i, seed)
			if err != nil {
				return err
			}
			scores[i] = score
			if n := done.Add(1); n%step == 0 {
				r.logger.Trace("%s: %d/%d trials", gen.StreamName(), n, trials)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	summary, err := stats.Summarize(scores, observed)
	if err != nil {
		return nil, errors.Data(err)
	}

	dist := &run.NullDistribution{
		Kind:       gen.Kind(),
		StreamName: gen.StreamName(),
		Params:     gen.Params(),
		Seed:       seed,
		Trials:     trials,
		Scores:     scores,
		Summary:    summary,
	}
	if cr, ok := gen.(ports.CaveatReporter); ok {
		dist.Degenerate = true
		dist.Caveat = cr.Caveat()
		r.logger.Warn("%s: %s", gen.StreamName(), dist.Caveat)
	}

	r.logger.Info("%s: p=%.4f (%d/%d at or below %.6f)",
		gen.StreamName(), summary.EmpiricalP, summary.AtOrBelow, summary.N, observed)
	return dist, nil
}

func (r *NullTestRunner) runTrial(ctx context.Context, base *particle.Set, gen ports.NullGenerator, trial int, seed int64) (float64, error) {
	rng, err := r.rngPort.TrialStream(ctx, gen.StreamName(), trial, seed)
	if err != nil {
		return 0, err
	}
	sample, err := gen.Generate(base, rng)
	if err != nil {
		return 0, errors.Data(fmt.Errorf("%s trial %d: %w", gen.StreamName(), trial, err))
	}
	score, err := r.scorer.Score(sample)
	if err != nil {
		return 0, errors.Wrapf(err, "%s trial %d", gen.StreamName(), trial)
	}
	return score, nil
}
