package comp

import "errors"

var (
	// ErrNonPositive indicates a zero or negative part where a logarithm or a
	// closure needs a strictly positive value.
	ErrNonPositive = errors.New("comp: non-positive value")

	// ErrEmptyInput indicates no observations.
	ErrEmptyInput = errors.New("comp: empty input")

	// ErrShapeMismatch indicates paired inputs of different lengths or too
	// few parts for the transform.
	ErrShapeMismatch = errors.New("comp: shape mismatch")

	// ErrBadIndex indicates an ALR divisor index outside the parts.
	ErrBadIndex = errors.New("comp: part index out of range")
)
