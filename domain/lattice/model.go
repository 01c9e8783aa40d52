// Package lattice defines the golden-ratio exponent lattice q = 8a + 15b + 24c,
// the feasible exponent set reachable from an integer search box, and the
// nearest-exponent search used to fit mass ratios.
package lattice

import "math"

// Lattice weights and the quarter-exponent divisor. A predicted ratio is Phi^(q/QuarterDivisor).
const (
	CoeffA         = 8
	CoeffB         = 15
	CoeffC         = 24
	QuarterDivisor = 4.0
)

var (
	// Phi is the lattice growth base (1+√5)/2, derived once at startup.
	Phi = (1.0 + math.Sqrt(5.0)) / 2.0

	lnPhi = math.Log(Phi)
)

// ExponentOf maps a lattice triple to its exponent.
func ExponentOf(a, b, c int) int {
	return CoeffA*a + CoeffB*b + CoeffC*c
}

// RatioOf returns the predicted mass ratio Phi^(q/4).
func RatioOf(q int) float64 {
	return math.Pow(Phi, float64(q)/QuarterDivisor)
}

// LogBase returns log_Phi(x). Callers guarantee x > 0.
func LogBase(x float64) float64 {
	return math.Log(x) / lnPhi
}

// TargetExponent is the real-valued exponent 4·log_Phi(ratio) a perfect fit would need.
func TargetExponent(ratio float64) float64 {
	return QuarterDivisor * LogBase(ratio)
}

// QuarterError is the fit error |q/4 - log_Phi(ratio)| for a given log-ratio.
// Both search strategies go through here so their errors agree bit for bit.
func QuarterError(q int, logRatio float64) float64 {
	return math.Abs(float64(q)/QuarterDivisor - logRatio)
}

// ValidRatio reports whether ratio is strictly positive and finite.
func ValidRatio(ratio float64) bool {
	return ratio > 0 && !math.IsInf(ratio, 0) && !math.IsNaN(ratio)
}
