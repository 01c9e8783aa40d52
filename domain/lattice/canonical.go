package lattice

import "fmt"

// Triple is one lattice point (a, b, c).
type Triple struct {
	A int `json:"a"`
	B int `json:"b"`
	C int `json:"c"`
}

// Exponent returns q for the triple.
func (t Triple) Exponent() int {
	return ExponentOf(t.A, t.B, t.C)
}

// L1 is |a| + |b| + |c|.
func (t Triple) L1() int {
	return abs(t.A) + abs(t.B) + abs(t.C)
}

func (t Triple) String() string {
	return fmt.Sprintf("(%d,%d,%d)", t.A, t.B, t.C)
}

// less orders by L1 norm, then lexicographically on (a, b, c).
func (t Triple) less(o Triple) bool {
	if l, ol := t.L1(), o.L1(); l != ol {
		return l < ol
	}
	if t.A != o.A {
		return t.A < o.A
	}
	if t.B != o.B {
		return t.B < o.B
	}
	return t.C < o.C
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// CanonicalIndex maps each feasible exponent to one representative triple:
// the one with the smallest L1 norm, ties broken lexicographically.
type CanonicalIndex struct {
	box  SearchBox
	reps map[int]Triple
}

// BuildCanonicalIndex scans the box once.
func BuildCanonicalIndex(box SearchBox) (*CanonicalIndex, error) {
	if err := box.Validate(); err != nil {
		return nil, err
	}
	reps := make(map[int]Triple)
	box.ForEach(func(a, b, c int) {
		t := Triple{A: a, B: b, C: c}
		q := t.Exponent()
		if cur, ok := reps[q]; !ok || t.less(cur) {
			reps[q] = t
		}
	})
	return &CanonicalIndex{box: box, reps: reps}, nil
}

// Representative returns the canonical triple for q, if q is reachable.
func (ci *CanonicalIndex) Representative(q int) (Triple, bool) {
	t, ok := ci.reps[q]
	return t, ok
}

// Len is the number of distinct exponents (equivalence classes under q).
func (ci *CanonicalIndex) Len() int {
	return len(ci.reps)
}
