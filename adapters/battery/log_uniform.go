package battery

import (
	"math"
	"math/rand/v2"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/drmlgentry/Golden-Unification/domain/particle"
)

// LogUniformGenerator draws every non-anchor mass i.i.d. as exp(U), with U
// uniform over [ln min, ln max] of the observed non-anchor masses. It models
// "random within the observed dynamic range, no structure".
type LogUniformGenerator struct{}

// NewLogUniformGenerator creates a log-uniform null generator
func NewLogUniformGenerator() *LogUniformGenerator {
	return &LogUniformGenerator{}
}

func (g *LogUniformGenerator) Kind() string { return KindLogUniform }

func (g *LogUniformGenerator) StreamName() string { return KindLogUniform }

func (g *LogUniformGenerator) Params() map[string]float64 { return map[string]float64{} }

// MassRange returns the min and max observed non-anchor masses.
func MassRange(base *particle.Set) (float64, float64, error) {
	nonAnchor := base.NonAnchorMasses()
	lo, err := stats.Min(nonAnchor)
	if err != nil {
		return 0, 0, err
	}
	hi, err := stats.Max(nonAnchor)
	if err != nil {
		return 0, 0, err
	}
	return lo, hi, nil
}

func (g *LogUniformGenerator) Generate(base *particle.Set, rng *rand.Rand) (*particle.Set, error) {
	if base.Len() == 1 {
		return base, nil
	}
	lo, hi, err := MassRange(base)
	if err != nil {
		return nil, err
	}

	u := distuv.Uniform{Min: math.Log(lo), Max: math.Log(hi), Src: rng}
	drawn := make([]float64, base.Len()-1)
	for i := range drawn {
		// exp(ln x) can land one ulp outside [lo, hi]
		drawn[i] = math.Min(hi, math.Max(lo, math.Exp(u.Rand())))
	}
	return base.WithMasses(withAnchor(base, drawn))
}
