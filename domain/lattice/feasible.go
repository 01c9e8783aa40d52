package lattice

import (
	"sort"

	"github.com/drmlgentry/Golden-Unification/domain/core"
)

// FeasibleSet is the sorted, duplicate-free set of exponents reachable from a box.
// Fit error depends only on q, so this (not the triples) is the search domain.
// It is read-only after construction and safe to share across trials.
type FeasibleSet struct {
	box       SearchBox
	exponents []int
}

// BuildFeasibleSet enumerates every triple in box once and deduplicates the exponents.
func BuildFeasibleSet(box SearchBox) (*FeasibleSet, error) {
	if err := box.Validate(); err != nil {
		return nil, err
	}

	seen := make(map[int]struct{})
	for a := box.AMin; a <= box.AMax; a++ {
		for b := box.BMin; b <= box.BMax; b++ {
			ab := CoeffA*a + CoeffB*b
			for c := box.CMin; c <= box.CMax; c++ {
				seen[ab+CoeffC*c] = struct{}{}
			}
		}
	}

	exponents := make([]int, 0, len(seen))
	for q := range seen {
		exponents = append(exponents, q)
	}
	sort.Ints(exponents)

	if len(exponents) == 0 {
		return nil, core.ErrEmptyFeasible
	}

	return &FeasibleSet{box: box, exponents: exponents}, nil
}

// NewFeasibleSet wraps an explicit exponent list (sorted and deduplicated here).
// Used for hand-built domains in tests and for replaying a disclosed set.
func NewFeasibleSet(exponents []int) (*FeasibleSet, error) {
	if len(exponents) == 0 {
		return nil, core.ErrEmptyFeasible
	}
	sorted := make([]int, len(exponents))
	copy(sorted, exponents)
	sort.Ints(sorted)

	out := sorted[:1]
	for _, q := range sorted[1:] {
		if q != out[len(out)-1] {
			out = append(out, q)
		}
	}
	return &FeasibleSet{exponents: out}, nil
}

// Box returns the box the set was built from (zero value for explicit sets).
func (f *FeasibleSet) Box() SearchBox {
	return f.box
}

// Exponents returns a copy of the sorted exponents.
func (f *FeasibleSet) Exponents() []int {
	out := make([]int, len(f.exponents))
	copy(out, f.exponents)
	return out
}

// Len returns the number of distinct exponents.
func (f *FeasibleSet) Len() int {
	return len(f.exponents)
}

// Min returns the smallest exponent.
func (f *FeasibleSet) Min() int {
	return f.exponents[0]
}

// Max returns the largest exponent.
func (f *FeasibleSet) Max() int {
	return f.exponents[len(f.exponents)-1]
}

// Contains reports whether q is reachable.
func (f *FeasibleSet) Contains(q int) bool {
	i := sort.SearchInts(f.exponents, q)
	return i < len(f.exponents) && f.exponents[i] == q
}

// At returns the i-th smallest exponent.
func (f *FeasibleSet) At(i int) int {
	return f.exponents[i]
}
