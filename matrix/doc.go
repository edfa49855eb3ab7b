// SPDX-License-Identifier: MIT

// Package matrix provides the small dense linear-algebra core used by the
// geochem packages.
//
// What & Why:
//
//	REE profile evaluation is a handful of matrix products: a tau row vector
//	against a 4×N tetrad basis, a lambda vector against an N×K polynomial
//	design matrix, and a symmetric tridiagonal eigenproblem whose eigenvalues
//	are the roots of the orthogonal polynomials. Compositional statistics add
//	column centering and covariance. This package keeps those kernels in one
//	place with a single numeric policy and a single sentinel error set.
//
// The matrix package provides:
//
//   - Dense: row-major float64 storage with bounds-checked At/Set;
//     NewDense, NewDenseFrom, NewDenseRows, NewRowVector constructors.
//   - Mul, MatVec, VecMat, Transpose, Scale: allocation-per-call kernels.
//   - Eigen: classic Jacobi rotations (largest pivot first) for symmetric input.
//   - ColumnMeans, CenterColumns, Covariance: column statistics.
//
// Numeric policy:
//
//	By default Set rejects NaN and ±Inf (ErrNaNInf). Callers that use NaN as a
//	"no value" marker (the tetrad evaluator does) build their matrices with
//	WithNoValidateNaNInf.
//
// Complexity:
//
//	At/Set O(1); Clone O(r*c); Mul O(r*n*c); Eigen O(maxIter*n^2).
package matrix
