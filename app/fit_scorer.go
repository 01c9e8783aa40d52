package app

import (
	"fmt"

	"github.com/drmlgentry/Golden-Unification/domain/lattice"
	"github.com/drmlgentry/Golden-Unification/domain/particle"
	"github.com/drmlgentry/Golden-Unification/domain/run"
	"github.com/drmlgentry/Golden-Unification/internal/errors"

	"github.com/montanaflynn/stats"
)

// FitScorer scores particle sets against one feasible exponent set.
// It holds no mutable state and is safe to share across workers.
type FitScorer struct {
	searcher lattice.Searcher
}

// NewFitScorer creates a scorer backed by the given nearest-exponent searcher
func NewFitScorer(searcher lattice.Searcher) *FitScorer {
	return &FitScorer{searcher: searcher}
}

// Searcher returns the underlying search strategy
func (s *FitScorer) Searcher() lattice.Searcher {
	return s.searcher
}

// FitParticle fits one particle relative to the anchor. The anchor itself
// always fits exponent 0 with zero error.
func (s *FitScorer) FitParticle(p, anchor particle.Particle) (lattice.FitResult, error) {
	if p.Name == anchor.Name {
		return lattice.FitResult{BestExponent: 0, Error: 0}, nil
	}
	if err := p.Validate(); err != nil {
		return lattice.FitResult{}, errors.Data(err)
	}
	if err := anchor.Validate(); err != nil {
		return lattice.FitResult{}, errors.Data(err)
	}

	fit, err := s.searcher.Nearest(p.Mass / anchor.Mass)
	if err != nil {
		return lattice.FitResult{}, errors.Data(fmt.Errorf("fit %s: %w", p.Name, err))
	}
	return fit, nil
}

// FitSet fits every particle in the set and averages the errors over all of
// them, anchor included.
func (s *FitScorer) FitSet(set *particle.Set) (run.SetFit, error) {
	anchor := set.Anchor()
	out := run.SetFit{
		Anchor:      anchor.Name,
		Order:       set.Names(),
		PerParticle: make(map[string]lattice.FitResult, set.Len()),
	}

	errs := make([]float64, set.Len())
	for i := 0; i < set.Len(); i++ {
		p := set.At(i)
		fit, err := s.FitParticle(p, anchor)
		if err != nil {
			return run.SetFit{}, err
		}
		out.PerParticle[p.Name] = fit
		errs[i] = fit.Error
	}

	mean, err := stats.Mean(errs)
	if err != nil {
		return run.SetFit{}, errors.Data(err)
	}
	out.MeanError = mean
	return out, nil
}

// Score returns only the mean error. Null trials use it to skip the
// per-particle map; the arithmetic matches FitSet exactly.
func (s *FitScorer) Score(set *particle.Set) (float64, error) {
	anchor := set.Anchor()
	errs := make([]float64, set.Len())
	for i := 0; i < set.Len(); i++ {
		fit, err := s.FitParticle(set.At(i), anchor)
		if err != nil {
			return 0, err
		}
		errs[i] = fit.Error
	}
	mean, err := stats.Mean(errs)
	if err != nil {
		return 0, errors.Data(err)
	}
	return mean, nil
}
