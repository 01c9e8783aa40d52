package app

import (
	"fmt"
	"math"

	"github.com/drmlgentry/Golden-Unification/domain/core"
	"github.com/drmlgentry/Golden-Unification/domain/lattice"
	"github.com/drmlgentry/Golden-Unification/domain/particle"
	"github.com/drmlgentry/Golden-Unification/domain/run"
	"github.com/drmlgentry/Golden-Unification/internal/errors"
)

// DefaultTolerance is the fractional mass window used for multiplicity counts
const DefaultTolerance = 0.05

// DiagnosticsService turns best-fit exponents into predicted masses and
// reports how many lattice exponents land near each observed mass.
type DiagnosticsService struct {
	feasible  *lattice.FeasibleSet
	canonical *lattice.CanonicalIndex
	tolerance float64
}

// NewDiagnosticsService builds the canonical index for the feasible set's box
func NewDiagnosticsService(feasible *lattice.FeasibleSet, tolerance float64) (*DiagnosticsService, error) {
	if !(tolerance > 0) || math.IsInf(tolerance, 0) {
		return nil, errors.Config(fmt.Errorf("%w: got %v", core.ErrInvalidTolerance, tolerance))
	}
	canonical, err := lattice.BuildCanonicalIndex(feasible.Box())
	if err != nil {
		return nil, errors.Config(err)
	}
	return &DiagnosticsService{
		feasible:  feasible,
		canonical: canonical,
		tolerance: tolerance,
	}, nil
}

// Tolerance returns the fractional window
func (s *DiagnosticsService) Tolerance() float64 {
	return s.tolerance
}

// Diagnose produces one row per particle in set order
func (s *DiagnosticsService) Diagnose(set *particle.Set, fit run.SetFit) ([]run.MassDiagnostic, error) {
	anchor := set.Anchor()
	rows := make([]run.MassDiagnostic, 0, set.Len())
	for i := 0; i < set.Len(); i++ {
		p := set.At(i)
		res, ok := fit.PerParticle[p.Name]
		if !ok {
			return nil, errors.NotFound(fmt.Sprintf("fit for particle %s", p.Name))
		}

		predicted := anchor.Mass * lattice.RatioOf(res.BestExponent)
		triple, _ := s.canonical.Representative(res.BestExponent)
		rows = append(rows, run.MassDiagnostic{
			Name:          p.Name,
			ObservedMass:  p.Mass,
			PredictedMass: predicted,
			BestExponent:  res.BestExponent,
			Canonical:     triple,
			FracError:     (predicted - p.Mass) / p.Mass,
			Error:         res.Error,
			Multiplicity:  s.Multiplicity(anchor.Mass, p.Mass),
		})
	}
	return rows, nil
}

// Multiplicity counts feasible exponents whose predicted mass lies within the
// fractional tolerance of mass.
func (s *DiagnosticsService) Multiplicity(anchorMass, mass float64) int {
	count := 0
	for i := 0; i < s.feasible.Len(); i++ {
		predicted := anchorMass * lattice.RatioOf(s.feasible.At(i))
		if math.Abs(predicted-mass)/mass <= s.tolerance {
			count++
		}
	}
	return count
}
