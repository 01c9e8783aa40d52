package particle

import (
	"math"
	"testing"

	"github.com/drmlgentry/Golden-Unification/domain/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSet_Validation(t *testing.T) {
	tests := []struct {
		name      string
		particles []Particle
		anchor    string
		wantErr   error
	}{
		{"empty", nil, "", core.ErrEmptySet},
		{"zero mass", []Particle{{"e", 1}, {"x", 0}}, "e", core.ErrNonPositiveMass},
		{"negative mass", []Particle{{"e", 1}, {"x", -3}}, "e", core.ErrNonPositiveMass},
		{"nan mass", []Particle{{"e", math.NaN()}}, "", core.ErrNonPositiveMass},
		{"inf mass", []Particle{{"e", 1}, {"x", math.Inf(1)}}, "", core.ErrNonPositiveMass},
		{"duplicate", []Particle{{"e", 1}, {"e", 2}}, "", core.ErrDuplicateName},
		{"anchor missing", []Particle{{"e", 1}}, "muon", core.ErrAnchorMissing},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSet(tt.particles, tt.anchor)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestNewSet_DefaultAnchorIsFirst(t *testing.T) {
	set, err := NewSet([]Particle{{"muon", 105.6}, {"electron", 0.511}}, "")
	require.NoError(t, err)
	assert.Equal(t, "muon", set.Anchor().Name)
	assert.True(t, set.IsAnchor("muon"))
	assert.Equal(t, 0, set.AnchorIndex())
}

func TestSet_Accessors(t *testing.T) {
	set := ReferenceSet()
	assert.Equal(t, 6, set.Len())
	assert.Equal(t, "electron", set.Anchor().Name)
	assert.Equal(t, []string{"electron", "muon", "tau", "W", "Z", "top"}, set.Names())
	assert.Len(t, set.NonAnchorMasses(), 5)
	assert.Equal(t, 105.6583755, set.MassMap()["muon"])

	r, err := set.Ratio("electron")
	require.NoError(t, err)
	assert.Equal(t, 1.0, r)

	_, err = set.Ratio("higgs")
	assert.Error(t, err)
}

func TestSet_WithMassesKeepsLabelsAndValidates(t *testing.T) {
	set := ReferenceSet()
	masses := set.Masses()
	masses[3] = 1.5

	next, err := set.WithMasses(masses)
	require.NoError(t, err)
	assert.Equal(t, set.Names(), next.Names())
	assert.Equal(t, set.Anchor(), next.Anchor())
	assert.Equal(t, 1.5, next.At(3).Mass)
	assert.Equal(t, 80379.0, set.At(3).Mass, "original must not change")

	masses[2] = math.NaN()
	_, err = set.WithMasses(masses)
	assert.ErrorIs(t, err, core.ErrNonPositiveMass)

	_, err = set.WithMasses(masses[:2])
	assert.Error(t, err)
}

func TestSet_ParticlesIsCopy(t *testing.T) {
	set := ReferenceSet()
	ps := set.Particles()
	ps[0].Mass = 42
	assert.Equal(t, 0.51099895, set.Anchor().Mass)
}

func TestUnits(t *testing.T) {
	u, err := ParseUnit("gev")
	require.NoError(t, err)
	assert.Equal(t, UnitGeV, u)

	u, err = ParseUnit("")
	require.NoError(t, err)
	assert.Equal(t, UnitMeV, u)

	_, err = ParseUnit("eV")
	assert.Error(t, err)

	gev := Convert(ReferenceParticles(), UnitMeV, UnitGeV)
	assert.InDelta(t, 80.379, gev[3].Mass, 1e-12)
	back := Convert(gev, UnitGeV, UnitMeV)
	assert.InDelta(t, 80379.0, back[3].Mass, 1e-9)
}
