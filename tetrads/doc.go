// Package tetrads evaluates the lanthanide tetrad basis and tau-weighted
// tetrad profiles.
//
// The lanthanide series La..Lu (z = 57..71) splits into four tetrads, each a
// semicircular hump sqrt(1 - g²) over its own span:
//
//	T1 [57, 60.5]   T2 [60.5, 64]   T3 [64, 67.5]   T4 [67.5, 71]
//
// A tau vector weights the four humps; the sum of the weighted humps is the
// tetrad-only profile of a pattern.
//
// Drop0:
//
//	Outside its span every hump is exactly zero, so a profile is zero over
//	most of the series. WithDrop0(true) turns such artifact zeros into NaN
//	("no value") so renderers leave gaps. Zeros at the anchors
//	{57, 64, 64, 71}, where a tetrad boundary genuinely sits, are kept.
//
// Usage:
//
//	m, err := tetrads.Evaluate([]float64{1, 2, 3, 4}, z, tetrads.WithSum(true))
//	if errors.Is(err, tetrads.ErrShapeMismatch) {
//	  // taus must hold exactly one weight per tetrad
//	}
package tetrads
