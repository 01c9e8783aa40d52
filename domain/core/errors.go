package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Configuration errors
	ErrEmptyInterval    = errors.New("search box interval is empty")
	ErrAnchorMissing    = errors.New("anchor particle missing from dataset")
	ErrZeroTrials       = errors.New("null test requires at least one trial")
	ErrInvalidSigma     = errors.New("jitter sigma must be finite and non-negative")
	ErrInvalidTolerance = errors.New("tolerance must be finite and positive")

	// Data errors
	ErrNonPositiveMass = errors.New("mass must be positive and finite")
	ErrDuplicateName   = errors.New("duplicate particle name")
	ErrEmptySet        = errors.New("particle set is empty")
	ErrInvalidRatio    = errors.New("ratio must be positive and finite")
	ErrEmptyFeasible   = errors.New("feasible exponent set is empty")

	// Determinism errors
	ErrNonDeterministic = errors.New("non-deterministic result")
	ErrHashMismatch     = errors.New("hash mismatch")
)

// Error constructors with context
func NewMassError(name string, mass float64) error {
	return fmt.Errorf("%w: %s has mass %v", ErrNonPositiveMass, name, mass)
}

func NewIntervalError(axis string, min, max int) error {
	return fmt.Errorf("%w: %s in [%d,%d]", ErrEmptyInterval, axis, min, max)
}

func NewValidationError(field string, reason string) error {
	return fmt.Errorf("validation failed for %s: %s", field, reason)
}

// IsConfigError reports whether err stems from a run configuration problem
func IsConfigError(err error) bool {
	return errors.Is(err, ErrEmptyInterval) ||
		errors.Is(err, ErrAnchorMissing) ||
		errors.Is(err, ErrZeroTrials) ||
		errors.Is(err, ErrInvalidSigma) ||
		errors.Is(err, ErrInvalidTolerance)
}

// IsDataError reports whether err stems from invalid masses or ratios
func IsDataError(err error) bool {
	return errors.Is(err, ErrNonPositiveMass) ||
		errors.Is(err, ErrDuplicateName) ||
		errors.Is(err, ErrEmptySet) ||
		errors.Is(err, ErrInvalidRatio)
}

func IsDeterminismError(err error) bool {
	return errors.Is(err, ErrNonDeterministic) ||
		errors.Is(err, ErrHashMismatch)
}
