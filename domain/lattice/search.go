package lattice

import (
	"fmt"
	"sort"

	"github.com/drmlgentry/Golden-Unification/domain/core"
)

// FitResult is the best feasible exponent for a target ratio and its error in quarter-exponent units.
type FitResult struct {
	BestExponent int     `json:"best_exponent"`
	Error        float64 `json:"error"`
}

// Searcher finds the feasible exponent minimizing |q/4 - log_Phi(ratio)|.
// On equal error the smaller exponent wins.
type Searcher interface {
	Nearest(ratio float64) (FitResult, error)
	Name() string
}

// Strategy names accepted by NewSearcher.
const (
	StrategyLinear = "linear"
	StrategyBinary = "binary"
)

// NewSearcher returns the searcher for a strategy name.
func NewSearcher(strategy string, set *FeasibleSet) (Searcher, error) {
	switch strategy {
	case StrategyLinear:
		return NewLinearSearcher(set), nil
	case "", StrategyBinary:
		return NewBinarySearcher(set), nil
	default:
		return nil, fmt.Errorf("unknown search strategy %q", strategy)
	}
}

func checkRatio(ratio float64) error {
	if !ValidRatio(ratio) {
		return fmt.Errorf("%w: %v", core.ErrInvalidRatio, ratio)
	}
	return nil
}

// LinearSearcher evaluates every feasible exponent. It is the reference the
// accelerated search is validated against.
type LinearSearcher struct {
	set *FeasibleSet
}

func NewLinearSearcher(set *FeasibleSet) *LinearSearcher {
	return &LinearSearcher{set: set}
}

func (s *LinearSearcher) Name() string { return StrategyLinear }

func (s *LinearSearcher) Nearest(ratio float64) (FitResult, error) {
	if err := checkRatio(ratio); err != nil {
		return FitResult{}, err
	}
	logRatio := LogBase(ratio)

	best := FitResult{BestExponent: s.set.exponents[0], Error: QuarterError(s.set.exponents[0], logRatio)}
	for _, q := range s.set.exponents[1:] {
		if eps := QuarterError(q, logRatio); eps < best.Error {
			best = FitResult{BestExponent: q, Error: eps}
		}
	}
	return best, nil
}

// BinarySearcher locates the insertion point of 4·log_Phi(ratio) in the sorted
// exponents and compares only the neighbors around it.
type BinarySearcher struct {
	set *FeasibleSet
}

func NewBinarySearcher(set *FeasibleSet) *BinarySearcher {
	return &BinarySearcher{set: set}
}

func (s *BinarySearcher) Name() string { return StrategyBinary }

func (s *BinarySearcher) Nearest(ratio float64) (FitResult, error) {
	if err := checkRatio(ratio); err != nil {
		return FitResult{}, err
	}
	logRatio := LogBase(ratio)
	target := QuarterDivisor * logRatio

	exps := s.set.exponents
	n := len(exps)
	lo := sort.Search(n, func(i int) bool { return float64(exps[i]) >= target })
	if lo == n {
		lo = n - 1
	}

	// candidates in ascending order so strict < keeps the smaller exponent on ties
	first, last := lo-1, lo+1
	if first < 0 {
		first = 0
	}
	if last > n-1 {
		last = n - 1
	}

	best := FitResult{BestExponent: exps[first], Error: QuarterError(exps[first], logRatio)}
	for i := first + 1; i <= last; i++ {
		if eps := QuarterError(exps[i], logRatio); eps < best.Error {
			best = FitResult{BestExponent: exps[i], Error: eps}
		}
	}
	return best, nil
}
