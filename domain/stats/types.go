// Package stats summarizes null distributions of fit scores.
package stats

import (
	"fmt"
	"math"
	"sort"

	"github.com/montanaflynn/stats"

	"github.com/drmlgentry/Golden-Unification/domain/core"
)

// Quantiles reported for every null distribution.
const (
	QuantileLow    = 0.16
	QuantileMedian = 0.50
	QuantileHigh   = 0.84
)

// NullDistributionSummary reduces N null scores against one observed score.
// EmpiricalP is the lower-tail fraction count(null <= observed)/N: a smaller
// mean error is a better fit, so lower is the surprising direction.
type NullDistributionSummary struct {
	N          int     `json:"n"`
	Min        float64 `json:"min"`
	Median     float64 `json:"median"`
	P16        float64 `json:"p16"`
	P84        float64 `json:"p84"`
	Max        float64 `json:"max"`
	Mean       float64 `json:"mean"`
	StdDev     float64 `json:"std_dev"`
	Observed   float64 `json:"observed"`
	AtOrBelow  int     `json:"at_or_below"`
	EmpiricalP float64 `json:"empirical_p"`
}

// Quantile interpolates linearly between order statistics of a sorted slice
// at position (n-1)·p, clamping p to [0,1].
func Quantile(sorted []float64, p float64) (float64, error) {
	if len(sorted) == 0 {
		return 0, fmt.Errorf("quantile of empty sample")
	}
	if p <= 0 {
		return sorted[0], nil
	}
	if p >= 1 {
		return sorted[len(sorted)-1], nil
	}
	pos := float64(len(sorted)-1) * p
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo], nil
	}
	w := pos - float64(lo)
	return (1-w)*sorted[lo] + w*sorted[hi], nil
}

// EmpiricalP returns count(null <= observed)/len(null) and the count.
func EmpiricalP(null []float64, observed float64) (float64, int, error) {
	if len(null) == 0 {
		return 0, 0, core.ErrZeroTrials
	}
	count := 0
	for _, v := range null {
		if v <= observed {
			count++
		}
	}
	return float64(count) / float64(len(null)), count, nil
}

// Summarize computes the summary of scores against observed. scores is not modified.
func Summarize(scores []float64, observed float64) (NullDistributionSummary, error) {
	if len(scores) == 0 {
		return NullDistributionSummary{}, core.ErrZeroTrials
	}

	sorted := make([]float64, len(scores))
	copy(sorted, scores)
	sort.Float64s(sorted)

	p, count, err := EmpiricalP(scores, observed)
	if err != nil {
		return NullDistributionSummary{}, err
	}

	median, _ := Quantile(sorted, QuantileMedian)
	p16, _ := Quantile(sorted, QuantileLow)
	p84, _ := Quantile(sorted, QuantileHigh)

	mean, err := stats.Mean(sorted)
	if err != nil {
		return NullDistributionSummary{}, err
	}
	stdDev := 0.0
	if len(sorted) > 1 {
		if sd, err := stats.StandardDeviationSample(sorted); err == nil {
			stdDev = sd
		}
	}

	return NullDistributionSummary{
		N:          len(sorted),
		Min:        sorted[0],
		Median:     median,
		P16:        p16,
		P84:        p84,
		Max:        sorted[len(sorted)-1],
		Mean:       mean,
		StdDev:     stdDev,
		Observed:   observed,
		AtOrBelow:  count,
		EmpiricalP: p,
	}, nil
}
