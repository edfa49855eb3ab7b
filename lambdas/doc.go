// Package lambdas reconstructs parameterised REE profiles from orthogonal
// polynomial coefficients ("lambdas").
//
// 🚀 What is a lambda?
//
//	A log-normalised REE pattern, viewed as a function of ionic radius r, is
//	fitted by a weighted sum of polynomials that are mutually orthogonal over
//	the REE radii:
//
//	  f(r) = λ0 + λ1·(r - β) + λ2·(r - γ0)(r - γ1) + ...
//
//	Each polynomial is fully described by its roots (β, γ0, γ1, ...), and
//	the ordered list of root tuples is the basis parameter set (Params).
//	Degree 0 is the constant 1 and has an empty tuple.
//
// ✨ Key features:
//   - Reconstruct: lambdas + params → vectorised f(r).
//   - Components: one single-term function per degree, labelled for legends.
//   - OrthogonalParams / DefaultParams: derive the roots from a set of radii.
//   - Fit: least-squares lambdas for observed values.
//
// ⚙️ Usage:
//
//	params, _ := lambdas.DefaultParams(4)
//	f, err := lambdas.Reconstruct([]float64{2.1, -10.5, 30, 120, -400}, params)
//	if err != nil {
//	  // ErrShapeMismatch: len(lambdas) != len(params)
//	}
//	ys := f.Evaluate(radii)
//
// An empty lambda vector with an empty parameter set is the zero function.
package lambdas
