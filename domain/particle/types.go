// Package particle holds the immutable particle records a fit runs against.
package particle

import (
	"fmt"
	"math"

	"github.com/drmlgentry/Golden-Unification/domain/core"
)

// Particle is one named rest mass. Units are fixed per run (MeV by default).
type Particle struct {
	Name string  `json:"name" yaml:"name"`
	Mass float64 `json:"mass" yaml:"mass"`
}

// Validate rejects non-positive or non-finite masses.
func (p Particle) Validate() error {
	if !(p.Mass > 0) || math.IsInf(p.Mass, 0) {
		return core.NewMassError(p.Name, p.Mass)
	}
	return nil
}

func (p Particle) String() string {
	return fmt.Sprintf("%s(%.9g)", p.Name, p.Mass)
}

// Set is an ordered particle sequence with one designated anchor.
// Ratios are always taken against the anchor. A Set is never mutated;
// null generators build new sets through WithMasses.
type Set struct {
	particles []Particle
	anchor    int
	index     map[string]int
}

// NewSet validates particles and designates anchor. An empty anchor name
// selects the first particle.
func NewSet(particles []Particle, anchor string) (*Set, error) {
	if len(particles) == 0 {
		return nil, core.ErrEmptySet
	}

	index := make(map[string]int, len(particles))
	for i, p := range particles {
		if _, dup := index[p.Name]; dup {
			return nil, fmt.Errorf("%w: %s", core.ErrDuplicateName, p.Name)
		}
		if err := p.Validate(); err != nil {
			return nil, err
		}
		index[p.Name] = i
	}

	anchorIdx := 0
	if anchor != "" {
		i, ok := index[anchor]
		if !ok {
			return nil, fmt.Errorf("%w: %s", core.ErrAnchorMissing, anchor)
		}
		anchorIdx = i
	}

	owned := make([]Particle, len(particles))
	copy(owned, particles)
	return &Set{particles: owned, anchor: anchorIdx, index: index}, nil
}

// Len returns the number of particles, anchor included.
func (s *Set) Len() int {
	return len(s.particles)
}

// Anchor returns the anchor particle.
func (s *Set) Anchor() Particle {
	return s.particles[s.anchor]
}

// AnchorIndex returns the anchor's position in the ordered set.
func (s *Set) AnchorIndex() int {
	return s.anchor
}

// IsAnchor reports whether name designates the anchor.
func (s *Set) IsAnchor(name string) bool {
	return s.particles[s.anchor].Name == name
}

// At returns the i-th particle.
func (s *Set) At(i int) Particle {
	return s.particles[i]
}

// Get looks a particle up by name.
func (s *Set) Get(name string) (Particle, bool) {
	i, ok := s.index[name]
	if !ok {
		return Particle{}, false
	}
	return s.particles[i], true
}

// Particles returns a copy of the ordered particles.
func (s *Set) Particles() []Particle {
	out := make([]Particle, len(s.particles))
	copy(out, s.particles)
	return out
}

// Names returns the labels in order.
func (s *Set) Names() []string {
	out := make([]string, len(s.particles))
	for i, p := range s.particles {
		out[i] = p.Name
	}
	return out
}

// Masses returns the masses in order.
func (s *Set) Masses() []float64 {
	out := make([]float64, len(s.particles))
	for i, p := range s.particles {
		out[i] = p.Mass
	}
	return out
}

// MassMap returns name → mass.
func (s *Set) MassMap() map[string]float64 {
	out := make(map[string]float64, len(s.particles))
	for _, p := range s.particles {
		out[p.Name] = p.Mass
	}
	return out
}

// NonAnchorMasses returns the masses of every particle but the anchor, in order.
func (s *Set) NonAnchorMasses() []float64 {
	out := make([]float64, 0, len(s.particles)-1)
	for i, p := range s.particles {
		if i != s.anchor {
			out = append(out, p.Mass)
		}
	}
	return out
}

// WithMasses builds a set with the same labels and anchor but new masses.
// The result is validated, so a corrupted synthetic mass surfaces as an error.
func (s *Set) WithMasses(masses []float64) (*Set, error) {
	if len(masses) != len(s.particles) {
		return nil, fmt.Errorf("expected %d masses, got %d", len(s.particles), len(masses))
	}
	particles := make([]Particle, len(s.particles))
	for i, p := range s.particles {
		particles[i] = Particle{Name: p.Name, Mass: masses[i]}
		if err := particles[i].Validate(); err != nil {
			return nil, err
		}
	}
	return &Set{particles: particles, anchor: s.anchor, index: s.index}, nil
}

// Ratio returns the mass of name relative to the anchor.
func (s *Set) Ratio(name string) (float64, error) {
	p, ok := s.Get(name)
	if !ok {
		return 0, fmt.Errorf("particle %s not in set", name)
	}
	return p.Mass / s.Anchor().Mass, nil
}
