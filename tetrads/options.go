package tetrads

import "math"

// DefaultZeroTol is the absolute tolerance under which a value counts as zero.
const DefaultZeroTol = 1e-8

// DefaultAnchors are the positions where a zero is a real tetrad boundary.
// The repeated 64 marks the shared T2/T3 boundary once per tetrad.
var DefaultAnchors = []float64{57, 64, 64, 71}

const panicZeroTolInvalid = "tetrads: WithZeroTol: tol must be finite, non-negative"

// Option configures an evaluation.
type Option func(*options)

type options struct {
	sum     bool
	drop0   bool
	zeroTol float64
	anchors []float64
	tetrads []Tetrad
}

// WithSum collapses the per-tetrad rows into a single tau-weighted sum row.
func WithSum(sum bool) Option {
	return func(o *options) { o.sum = sum }
}

// WithDrop0 replaces artifact zeros with NaN, keeping zeros at the anchors.
func WithDrop0(drop bool) Option {
	return func(o *options) { o.drop0 = drop }
}

// WithZeroTol overrides DefaultZeroTol. Panics on a negative or non-finite tol.
func WithZeroTol(tol float64) Option {
	if math.IsNaN(tol) || math.IsInf(tol, 0) || tol < 0 {
		panic(panicZeroTolInvalid)
	}

	return func(o *options) { o.zeroTol = tol }
}

// WithAnchors overrides DefaultAnchors. The slice is copied.
func WithAnchors(anchors ...float64) Option {
	cp := append([]float64(nil), anchors...)
	return func(o *options) { o.anchors = cp }
}

// WithTetrads evaluates over a custom tetrad set instead of Defaults().
func WithTetrads(ts []Tetrad) Option {
	cp := append([]Tetrad(nil), ts...)
	return func(o *options) { o.tetrads = cp }
}

func gatherOptions(user ...Option) options {
	o := options{
		zeroTol: DefaultZeroTol,
		anchors: DefaultAnchors,
	}
	for _, fn := range user {
		if fn != nil {
			fn(&o)
		}
	}

	return o
}
