package lattice

import (
	"fmt"

	"github.com/drmlgentry/Golden-Unification/domain/core"
)

// SearchBox bounds the three lattice axes with closed integer intervals.
// A box is fixed for an experiment; changing it means registering a new run.
type SearchBox struct {
	AMin int `json:"a_min" yaml:"a_min"`
	AMax int `json:"a_max" yaml:"a_max"`
	BMin int `json:"b_min" yaml:"b_min"`
	BMax int `json:"b_max" yaml:"b_max"`
	CMin int `json:"c_min" yaml:"c_min"`
	CMax int `json:"c_max" yaml:"c_max"`
}

// DefaultSearchBox is the pre-registered box of the anchored runs.
func DefaultSearchBox() SearchBox {
	return SearchBox{AMin: -80, AMax: 20, BMin: -40, BMax: 40, CMin: -40, CMax: 60}
}

// Validate rejects a box with an empty interval on any axis.
func (b SearchBox) Validate() error {
	if b.AMin > b.AMax {
		return core.NewIntervalError("a", b.AMin, b.AMax)
	}
	if b.BMin > b.BMax {
		return core.NewIntervalError("b", b.BMin, b.BMax)
	}
	if b.CMin > b.CMax {
		return core.NewIntervalError("c", b.CMin, b.CMax)
	}
	return nil
}

// Volume is the number of triples in the box.
func (b SearchBox) Volume() int {
	if b.Validate() != nil {
		return 0
	}
	return (b.AMax - b.AMin + 1) * (b.BMax - b.BMin + 1) * (b.CMax - b.CMin + 1)
}

// Contains reports whether (a,b,c) lies inside the box.
func (b SearchBox) Contains(a, bb, c int) bool {
	return a >= b.AMin && a <= b.AMax &&
		bb >= b.BMin && bb <= b.BMax &&
		c >= b.CMin && c <= b.CMax
}

// String discloses the bounds verbatim, e.g. for report headers.
func (b SearchBox) String() string {
	return fmt.Sprintf("a[%d,%d], b[%d,%d], c[%d,%d]", b.AMin, b.AMax, b.BMin, b.BMax, b.CMin, b.CMax)
}

// ForEach visits every triple in a, b, c lexicographic order.
func (b SearchBox) ForEach(visit func(a, bb, c int)) {
	for a := b.AMin; a <= b.AMax; a++ {
		for bb := b.BMin; bb <= b.BMax; bb++ {
			for c := b.CMin; c <= b.CMax; c++ {
				visit(a, bb, c)
			}
		}
	}
}
