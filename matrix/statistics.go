// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Column statistics used by compositional data analysis: per-column means,
//     column centering and sample covariance (rows are observations).
//
// Determinism:
//   - Fixed i→j traversal; no randomness.

package matrix

// ColumnMeans returns the per-column mean Σ_i X[i,j] / r.
// Complexity: Time O(r*c), Space O(c).
func ColumnMeans(X Matrix) ([]float64, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, matrixErrorf(opColumnMeans, err)
	}
	d, err := toDense(X)
	if err != nil {
		return nil, matrixErrorf(opColumnMeans, err)
	}
	means := make([]float64, d.c)
	var i, j int
	for i = 0; i < d.r; i++ {
		for j = 0; j < d.c; j++ {
			means[j] += d.data[i*d.c+j]
		}
	}
	inv := 1.0 / float64(d.r)
	for j = range means {
		means[j] *= inv
	}

	return means, nil
}

// CenterColumns returns Xc = X − mean(X, by columns) and the column means.
// Complexity: Time O(r*c), Space O(r*c).
func CenterColumns(X Matrix) (*Dense, []float64, error) {
	means, err := ColumnMeans(X)
	if err != nil {
		return nil, nil, matrixErrorf(opCenterColumns, err)
	}
	d, err := toDense(X)
	if err != nil {
		return nil, nil, matrixErrorf(opCenterColumns, err)
	}
	out, err := NewDense(d.r, d.c, policyOf(d))
	if err != nil {
		return nil, nil, matrixErrorf(opCenterColumns, err)
	}
	var i, j int
	for i = 0; i < d.r; i++ {
		for j = 0; j < d.c; j++ {
			out.data[i*d.c+j] = d.data[i*d.c+j] - means[j]
		}
	}

	return out, means, nil
}

// Covariance computes the sample covariance of columns: (Xcᵀ Xc)/(r-1).
// Returns Cov (c×c) and the column means.
//
// Errors:
//   - ErrDimensionMismatch when r < 2 (no unbiased estimate).
func Covariance(X Matrix) (*Dense, []float64, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, nil, matrixErrorf(opCovariance, err)
	}
	if X.Rows() < 2 {
		return nil, nil, matrixErrorf(opCovariance, ErrDimensionMismatch)
	}
	Xc, means, err := CenterColumns(X)
	if err != nil {
		return nil, nil, matrixErrorf(opCovariance, err)
	}
	XcT, err := Transpose(Xc)
	if err != nil {
		return nil, nil, matrixErrorf(opCovariance, err)
	}
	prod, err := Mul(XcT, Xc)
	if err != nil {
		return nil, nil, matrixErrorf(opCovariance, err)
	}
	cov, err := Scale(prod, 1.0/float64(X.Rows()-1))
	if err != nil {
		return nil, nil, matrixErrorf(opCovariance, err)
	}

	return cov, means, nil
}
