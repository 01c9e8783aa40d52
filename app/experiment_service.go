package app

import (
	"context"
	"fmt"
	"time"

	"github.com/drmlgentry/Golden-Unification/adapters/battery"
	"github.com/drmlgentry/Golden-Unification/domain/core"
	"github.com/drmlgentry/Golden-Unification/domain/lattice"
	"github.com/drmlgentry/Golden-Unification/domain/particle"
	"github.com/drmlgentry/Golden-Unification/domain/run"
	"github.com/drmlgentry/Golden-Unification/internal"
	"github.com/drmlgentry/Golden-Unification/internal/errors"
	"github.com/drmlgentry/Golden-Unification/ports"
)

// CodeVersion is recorded in every run manifest
const CodeVersion = "v1.0.0"

// ExperimentRequest defines the inputs for one complete run
type ExperimentRequest struct {
	Dataset            *particle.Set
	Unit               particle.Unit
	Box                lattice.SearchBox
	Strategy           string
	Trials             int
	Seed               int64
	Sigmas             []float64
	IncludePermutation bool
	Tolerance          float64
	Workers            int
}

// ExperimentService runs the observed fit, the null battery and the
// diagnostics, and assembles the report.
type ExperimentService struct {
	rngPort ports.RNGPort
	logger  *internal.Logger
}

// NewExperimentService creates an experiment service
func NewExperimentService(rngPort ports.RNGPort, logger *internal.Logger) *ExperimentService {
	if logger == nil {
		logger = internal.NewDefaultLogger()
	}
	return &ExperimentService{
		rngPort: rngPort,
		logger:  logger,
	}
}

// Prepared bundles what every stage of a run shares: the feasible set is
// built once per box and reused by every fit.
type Prepared struct {
	Feasible *lattice.FeasibleSet
	Scorer   *FitScorer
}

// Prepare validates the box and builds the feasible set and searcher.
func (s *ExperimentService) Prepare(box lattice.SearchBox, strategy string) (*Prepared, error) {
	if err := box.Validate(); err != nil {
		return nil, errors.Config(err)
	}
	start := time.Now()
	feasible, err := lattice.BuildFeasibleSet(box)
	if err != nil {
		return nil, classify(err)
	}
	searcher, err := lattice.NewSearcher(strategy, feasible)
	if err != nil {
		return nil, errors.WithCode(errors.CodeConfigInvalid, err)
	}
	s.logger.WithComponent("ExperimentService").Debug("Feasible set for %s: %d exponents in [%d,%d] (%s)",
		box, feasible.Len(), feasible.Min(), feasible.Max(), time.Since(start))
	return &Prepared{Feasible: feasible, Scorer: NewFitScorer(searcher)}, nil
}

// Fit scores the observed dataset only
func (s *ExperimentService) Fit(req ExperimentRequest) (*Prepared, run.SetFit, error) {
	if req.Dataset == nil {
		return nil, run.SetFit{}, errors.Config(core.ErrEmptySet)
	}
	prep, err := s.Prepare(req.Box, req.Strategy)
	if err != nil {
		return nil, run.SetFit{}, err
	}
	fit, err := prep.Scorer.FitSet(req.Dataset)
	if err != nil {
		return nil, run.SetFit{}, err
	}
	return prep, fit, nil
}

// Run executes the full pipeline and returns the report
func (s *ExperimentService) Run(ctx context.Context, req ExperimentRequest) (*run.Report, error) {
	logger := s.logger.WithComponent("ExperimentService")
	startTime := time.Now()

	if req.Trials <= 0 {
		return nil, errors.Config(fmt.Errorf("%w: got %d", core.ErrZeroTrials, req.Trials))
	}
	tolerance := req.Tolerance
	if tolerance == 0 {
		tolerance = DefaultTolerance
	}

	prep, observed, err := s.Fit(req)
	if err != nil {
		return nil, err
	}
	logger.Info("Observed mean error %.6f over %d particles (anchor %s)",
		observed.MeanError, req.Dataset.Len(), observed.Anchor)

	diag, err := NewDiagnosticsService(prep.Feasible, tolerance)
	if err != nil {
		return nil, err
	}
	rows, err := diag.Diagnose(req.Dataset, observed)
	if err != nil {
		return nil, err
	}

	gens, err := battery.StandardBattery(req.Sigmas, req.IncludePermutation)
	if err != nil {
		return nil, classify(err)
	}

	runner := NewNullTestRunner(prep.Scorer, s.rngPort, s.logger)
	runner.SetWorkers(req.Workers)

	nulls := make([]*run.NullDistribution, 0, len(gens))
	for _, gen := range gens {
		dist, err := runner.RunNullTest(ctx, req.Dataset, gen, req.Trials, req.Seed, observed.MeanError)
		if err != nil {
			return nil, errors.Wrapf(err, "null ensemble %s failed", gen.StreamName())
		}
		nulls = append(nulls, dist)
	}

	unit := req.Unit
	if unit == "" {
		unit = particle.UnitMeV
	}
	manifest := run.NewRunManifest(
		req.Box,
		prep.Feasible.Len(),
		prep.Scorer.Searcher().Name(),
		observed.Anchor,
		string(unit),
		core.ComputeDatasetHash(observed.Anchor, req.Dataset.MassMap()),
		req.Trials,
		req.Seed,
		req.Sigmas,
		tolerance,
		CodeVersion,
	)

	logger.Info("Run %s complete in %s (fingerprint %s)",
		manifest.RunID, time.Since(startTime), manifest.Fingerprint.Short())

	return &run.Report{
		Manifest:    manifest,
		Observed:    observed,
		Diagnostics: rows,
		Nulls:       nulls,
	}, nil
}

// classify attaches CONFIG_INVALID or DATA_INVALID to domain sentinel errors
func classify(err error) error {
	switch {
	case core.IsConfigError(err):
		return errors.Config(err)
	case core.IsDataError(err):
		return errors.Data(err)
	default:
		return errors.Wrap(err, "unexpected domain error")
	}
}
