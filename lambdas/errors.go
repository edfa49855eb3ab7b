package lambdas

import "errors"

var (
	// ErrShapeMismatch indicates that paired inputs disagree in length
	// (lambdas vs params, xs vs ys).
	ErrShapeMismatch = errors.New("lambdas: shape mismatch")

	// ErrBadDegree indicates a negative degree, or a degree the point set
	// cannot support (degree >= number of distinct points).
	ErrBadDegree = errors.New("lambdas: invalid polynomial degree")

	// ErrEmptyInput indicates an empty point set where one is required.
	ErrEmptyInput = errors.New("lambdas: empty input")

	// ErrUnderdetermined indicates fewer usable observations than lambdas to fit.
	ErrUnderdetermined = errors.New("lambdas: fewer observations than terms")
)
