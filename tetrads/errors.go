package tetrads

import "errors"

var (
	// ErrShapeMismatch indicates a tau vector whose length differs from the
	// number of tetrads.
	ErrShapeMismatch = errors.New("tetrads: shape mismatch")

	// ErrEmptyInput indicates no positions (or no tau vectors) to evaluate.
	ErrEmptyInput = errors.New("tetrads: empty input")

	// ErrBadTetrad indicates a tetrad with a non-positive or non-finite width
	// or a non-finite centre.
	ErrBadTetrad = errors.New("tetrads: invalid tetrad")
)
