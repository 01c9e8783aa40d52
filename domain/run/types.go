package run

import (
	"github.com/drmlgentry/Golden-Unification/domain/lattice"
	"github.com/drmlgentry/Golden-Unification/domain/stats"
)

// SetFit is the score of one particle set plus its per-particle diagnostics.
// The observed spectrum and every null sample share this shape.
type SetFit struct {
	Anchor      string                       `json:"anchor"`
	Order       []string                     `json:"order"`
	PerParticle map[string]lattice.FitResult `json:"per_particle"`
	MeanError   float64                      `json:"mean_error"`
}

// NullDistribution is the outcome of one null ensemble (one σ for jitter).
type NullDistribution struct {
	Kind       string                        `json:"kind"`
	StreamName string                        `json:"stream_name"`
	Params     map[string]float64            `json:"params,omitempty"`
	Seed       int64                         `json:"seed"`
	Trials     int                           `json:"trials"`
	Scores     []float64                     `json:"-"`
	Summary    stats.NullDistributionSummary `json:"summary"`
	Degenerate bool                          `json:"degenerate,omitempty"`
	Caveat     string                        `json:"caveat,omitempty"`
}

// Sigma returns the jitter scale, or 0 for ensembles without one.
func (n *NullDistribution) Sigma() float64 {
	return n.Params["sigma"]
}

// MassDiagnostic is the predicted-mass view of one particle's best fit.
type MassDiagnostic struct {
	Name          string         `json:"name"`
	ObservedMass  float64        `json:"observed_mass"`
	PredictedMass float64        `json:"predicted_mass"`
	BestExponent  int            `json:"best_exponent"`
	Canonical     lattice.Triple `json:"canonical"`
	FracError     float64        `json:"frac_error"`
	Error         float64        `json:"error"`
	// Multiplicity counts distinct exponents whose predicted mass is within the tolerance.
	Multiplicity int `json:"multiplicity"`
}

// Note classifies the multiplicity for report tables.
func (d MassDiagnostic) Note() string {
	switch d.Multiplicity {
	case 0:
		return "none(q)"
	case 1:
		return "unique(q)"
	default:
		return "multiple(q)"
	}
}

// Report is the stable contract between the pipeline and report emitters.
type Report struct {
	Manifest    *RunManifest        `json:"manifest"`
	Observed    SetFit              `json:"observed"`
	Diagnostics []MassDiagnostic    `json:"diagnostics,omitempty"`
	Nulls       []*NullDistribution `json:"nulls"`
}

// NullsOfKind filters the null distributions by ensemble kind, preserving order.
func (r *Report) NullsOfKind(kind string) []*NullDistribution {
	var out []*NullDistribution
	for _, n := range r.Nulls {
		if n.Kind == kind {
			out = append(out, n)
		}
	}
	return out
}
