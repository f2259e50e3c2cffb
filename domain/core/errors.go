package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound         = errors.New("resource not found")
	ErrArtifactNotFound = fmt.Errorf("%w: artifact", ErrNotFound)
	ErrColumnNotFound   = fmt.Errorf("%w: column", ErrNotFound)

	// Input validation errors - the inference taxonomy
	ErrInvalidSampleSize = errors.New("invalid sample size")
	ErrInvalidVariance   = errors.New("invalid standard deviation")
	ErrMismatchedLengths = errors.New("input sequences have mismatched lengths")
	ErrDegenerateInput   = errors.New("degenerate input")
	ErrInvalidTarget     = errors.New("invalid target margin of error")
	ErrInvalidLevel      = errors.New("invalid significance or confidence level")
)

// Error constructors with context
func NewNotFoundError(resource string, id string) error {
	return fmt.Errorf("%w: %s with id %s", ErrNotFound, resource, id)
}

func NewSampleSizeError(n int, min int) error {
	return fmt.Errorf("%w: n=%d, need at least %d", ErrInvalidSampleSize, n, min)
}

func NewVarianceError(stdDev float64) error {
	return fmt.Errorf("%w: standard deviation %g must be positive", ErrInvalidVariance, stdDev)
}

func NewLengthMismatchError(nx, ny int) error {
	return fmt.Errorf("%w: x=%d, y=%d", ErrMismatchedLengths, nx, ny)
}

func NewDegenerateInputError(reason string) error {
	return fmt.Errorf("%w: %s", ErrDegenerateInput, reason)
}

func NewTargetError(moe float64) error {
	return fmt.Errorf("%w: margin of error %g must be positive", ErrInvalidTarget, moe)
}

func NewLevelError(name string, value float64) error {
	return fmt.Errorf("%w: %s=%g must be in (0, 1)", ErrInvalidLevel, name, value)
}

// IsNotFoundError reports whether err is a not-found condition
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidationError reports whether err belongs to the input validation taxonomy
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidSampleSize) ||
		errors.Is(err, ErrInvalidVariance) ||
		errors.Is(err, ErrMismatchedLengths) ||
		errors.Is(err, ErrDegenerateInput) ||
		errors.Is(err, ErrInvalidTarget) ||
		errors.Is(err, ErrInvalidLevel)
}
