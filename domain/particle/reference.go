package particle

import (
	"fmt"
	"strings"
)

// Unit is the mass unit of a dataset. Ratios are unitless, but one run must
// use one unit throughout.
type Unit string

const (
	UnitMeV Unit = "MeV"
	UnitGeV Unit = "GeV"
)

// ParseUnit accepts MeV or GeV case-insensitively.
func ParseUnit(s string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "mev":
		return UnitMeV, nil
	case "gev":
		return UnitGeV, nil
	default:
		return "", fmt.Errorf("unsupported mass unit %q", s)
	}
}

// ToMeV is the factor converting a mass in this unit to MeV.
func (u Unit) ToMeV() float64 {
	if u == UnitGeV {
		return 1000
	}
	return 1
}

// ReferenceAnchor is the conventional anchor of the reference table.
const ReferenceAnchor = "electron"

// ReferenceParticles is the observed charged-lepton and heavy-boson spectrum in MeV.
func ReferenceParticles() []Particle {
	return []Particle{
		{Name: "electron", Mass: 0.51099895},
		{Name: "muon", Mass: 105.6583755},
		{Name: "tau", Mass: 1776.86},
		{Name: "W", Mass: 80379.0},
		{Name: "Z", Mass: 91187.6},
		{Name: "top", Mass: 172760.0},
	}
}

// ReferenceSet returns the reference table anchored on the electron.
func ReferenceSet() *Set {
	set, err := NewSet(ReferenceParticles(), ReferenceAnchor)
	if err != nil {
		panic(err)
	}
	return set
}

// Convert returns particles with masses converted from one unit to another.
func Convert(particles []Particle, from, to Unit) []Particle {
	factor := from.ToMeV() / to.ToMeV()
	out := make([]Particle, len(particles))
	for i, p := range particles {
		out[i] = Particle{Name: p.Name, Mass: p.Mass * factor}
	}
	return out
}
