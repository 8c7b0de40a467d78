package calc

import "errors"

var (
	// ErrDimensionMismatch is returned when input and output shapes disagree.
	ErrDimensionMismatch = errors.New("calc: dimension mismatch")

	// ErrUnknownTransform is returned for a transform name outside the fixed set.
	ErrUnknownTransform = errors.New("calc: unknown transform")
)
