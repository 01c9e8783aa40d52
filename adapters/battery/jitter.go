package battery

import (
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/drmlgentry/Golden-Unification/domain/core"
	"github.com/drmlgentry/Golden-Unification/domain/particle"
)

// JitterGenerator multiplies every non-anchor mass by exp(σZ), Z ~ N(0,1):
// the observed spectrum plus log-space measurement/model noise.
// Each distinct σ yields its own null distribution.
type JitterGenerator struct {
	sigma float64
}

// NewJitterGenerator validates sigma (finite, >= 0)
func NewJitterGenerator(sigma float64) (*JitterGenerator, error) {
	if math.IsNaN(sigma) || math.IsInf(sigma, 0) || sigma < 0 {
		return nil, fmt.Errorf("%w: %v", core.ErrInvalidSigma, sigma)
	}
	return &JitterGenerator{sigma: sigma}, nil
}

func (g *JitterGenerator) Kind() string { return KindJitter }

func (g *JitterGenerator) StreamName() string {
	return fmt.Sprintf("%s:sigma=%.6f", KindJitter, g.sigma)
}

func (g *JitterGenerator) Params() map[string]float64 {
	return map[string]float64{"sigma": g.sigma}
}

// Sigma returns the log-space noise scale.
func (g *JitterGenerator) Sigma() float64 {
	return g.sigma
}

func (g *JitterGenerator) Generate(base *particle.Set, rng *rand.Rand) (*particle.Set, error) {
	z := distuv.Normal{Mu: 0, Sigma: 1, Src: rng}
	masses := base.Masses()
	for i := range masses {
		if i == base.AnchorIndex() {
			continue
		}
		masses[i] *= math.Exp(g.sigma * z.Rand())
	}
	return base.WithMasses(masses)
}
