// SPDX-License-Identifier: MIT
// Package matrix provides the linear-algebra kernels: Mul, MatVec, VecMat,
// Transpose, Scale and a Jacobi eigen solver for symmetric input. Every kernel
// validates first, allocates its result once and never mutates its operands.

package matrix

import (
	"fmt"
	"math"
)

// ZeroSum is the initial accumulator value for dot products.
const ZeroSum = 0.0

// toDense returns m itself when it is already *Dense, otherwise a *Dense copy
// read through the interface. The finite-only policy is disabled on the copy
// so NaN markers survive.
func toDense(m Matrix) (*Dense, error) {
	if d, ok := m.(*Dense); ok {
		return d, nil
	}
	r, c := m.Rows(), m.Cols()
	out, err := NewDense(r, c, WithNoValidateNaNInf())
	if err != nil {
		return nil, err
	}
	var i, j int
	var v float64
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, fmt.Errorf("At(%d,%d): %w", i, j, err)
			}
			out.data[i*c+j] = v
		}
	}

	return out, nil
}

// Mul computes the matrix product a × b.
//
// Contract: a.Cols() == b.Rows().
// Errors: ErrNilMatrix, ErrDimensionMismatch.
// Determinism: fixed i→k→j loop order.
// Complexity: Time O(r*n*c), Space O(r*c).
//
// The result inherits a's numeric policy, so NaN entries flowing from a
// NaN-tolerant operand do not fail the product.
func Mul(a, b Matrix) (*Dense, error) {
	if err := ValidateMulCompatible(a, b); err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	da, err := toDense(a)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	db, err := toDense(b)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	aRows, aCols, bCols := da.r, da.c, db.c
	res, err := NewDense(aRows, bCols, policyOf(da, db))
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}

	var i, j, k int
	var av float64
	var rowA, rowB, rowR int
	for i = 0; i < aRows; i++ {
		rowA = i * aCols
		rowR = i * bCols
		for k = 0; k < aCols; k++ {
			av = da.data[rowA+k]
			rowB = k * bCols
			for j = 0; j < bCols; j++ {
				res.data[rowR+j] += av * db.data[rowB+j]
			}
		}
	}

	return res, nil
}

// policyOf returns the option that makes a result as permissive as the most
// permissive operand.
func policyOf(ds ...*Dense) Option {
	for _, d := range ds {
		if !d.validateNaNInf {
			return WithNoValidateNaNInf()
		}
	}

	return WithValidateNaNInf()
}

// MatVec computes y = m · x for a column vector x.
//
// Contract: len(x) == m.Cols().
// Complexity: Time O(r*c), Space O(r).
func MatVec(m Matrix, x []float64) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	if err := ValidateVecLen(x, m.Cols()); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	d, err := toDense(m)
	if err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	y := make([]float64, d.r)
	var i, j, base int
	var acc float64
	for i = 0; i < d.r; i++ {
		acc = ZeroSum
		base = i * d.c
		for j = 0; j < d.c; j++ {
			acc += d.data[base+j] * x[j]
		}
		y[i] = acc
	}

	return y, nil
}

// VecMat computes y = x · m for a row vector x (the tau × basis product).
//
// Contract: len(x) == m.Rows().
// Complexity: Time O(r*c), Space O(c).
func VecMat(x []float64, m Matrix) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opVecMat, err)
	}
	if err := ValidateVecLen(x, m.Rows()); err != nil {
		return nil, matrixErrorf(opVecMat, err)
	}
	d, err := toDense(m)
	if err != nil {
		return nil, matrixErrorf(opVecMat, err)
	}
	y := make([]float64, d.c)
	var i, j, base int
	for i = 0; i < d.r; i++ {
		base = i * d.c
		for j = 0; j < d.c; j++ {
			y[j] += x[i] * d.data[base+j]
		}
	}

	return y, nil
}

// Transpose returns a new matrix mᵀ.
// Complexity: Time O(r*c), Space O(r*c).
func Transpose(m Matrix) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	d, err := toDense(m)
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	res, err := NewDense(d.c, d.r, policyOf(d))
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	var i, j int
	for i = 0; i < d.r; i++ {
		for j = 0; j < d.c; j++ {
			res.data[j*d.r+i] = d.data[i*d.c+j]
		}
	}

	return res, nil
}

// Scale returns alpha * m.
// Complexity: Time O(r*c), Space O(r*c).
func Scale(m Matrix, alpha float64) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opScale, err)
	}
	d, err := toDense(m)
	if err != nil {
		return nil, matrixErrorf(opScale, err)
	}
	res, err := NewDense(d.r, d.c, policyOf(d))
	if err != nil {
		return nil, matrixErrorf(opScale, err)
	}
	for k, v := range d.data {
		res.data[k] = alpha * v
	}

	return res, nil
}

// AllClose reports whether a and b have the same shape and every pair of
// entries satisfies |a-b| <= eps (WithEpsilon, default DefaultEpsilon).
// NaN equals NaN here: a suppressed value matches a suppressed value.
func AllClose(a, b Matrix, opts ...Option) (bool, error) {
	if err := ValidateNotNil(a); err != nil {
		return false, err
	}
	if err := ValidateNotNil(b); err != nil {
		return false, err
	}
	if err := ValidateSameShape(a, b); err != nil {
		return false, err
	}
	o := gatherOptions(opts...)
	da, err := toDense(a)
	if err != nil {
		return false, err
	}
	db, err := toDense(b)
	if err != nil {
		return false, err
	}
	for k := range da.data {
		x, y := da.data[k], db.data[k]
		if math.IsNaN(x) || math.IsNaN(y) {
			if math.IsNaN(x) != math.IsNaN(y) {
				return false, nil
			}
			continue
		}
		if math.Abs(x-y) > o.eps {
			return false, nil
		}
	}

	return true, nil
}

// Eigen computes eigenvalues and eigenvectors of a symmetric matrix via
// classic Jacobi rotations.
//
// Implementation:
//   - Stage 1: validate symmetric square input within tol.
//   - Stage 2: repeatedly pick (p,q) with the largest |A[p,q]| (i→j scan) and
//     annihilate it with a plane rotation, accumulating the rotations in Q.
//
// Returns:
//   - []float64: eigenvalues (diagonal of the rotated matrix, unsorted).
//   - *Dense: Q whose columns are the matching eigenvectors.
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare, ErrAsymmetry,
//     ErrEigenFailed (max off-diagonal > tol after maxIter rotations).
//
// Complexity:
//   - Time O(maxIter * n^2) (pivot scan dominates), Space O(n^2).
func Eigen(m Matrix, tol float64, maxIter int) ([]float64, *Dense, error) {
	if err := ValidateSymmetric(m, tol); err != nil {
		return nil, nil, matrixErrorf(opEigen, err)
	}
	src, err := toDense(m)
	if err != nil {
		return nil, nil, matrixErrorf(opEigen, err)
	}
	n := src.r
	a := src.Clone().(*Dense) // working copy; the input stays untouched
	q, err := NewIdentity(n)
	if err != nil {
		return nil, nil, matrixErrorf(opEigen, err)
	}

	var (
		iter, i, k, p, qq int
		maxOff, off       float64
		app, aqq, apq     float64
		theta, t, c, s    float64
		akp, akq          float64
	)
	for iter = 0; ; iter++ {
		// find the pivot
		maxOff = 0
		for i = 0; i < n; i++ {
			for k = i + 1; k < n; k++ {
				off = math.Abs(a.data[i*n+k])
				if off > maxOff {
					maxOff, p, qq = off, i, k
				}
			}
		}
		if maxOff <= tol {
			break
		}
		if iter >= maxIter {
			return nil, nil, matrixErrorf(opEigen, ErrEigenFailed)
		}

		app = a.data[p*n+p]
		aqq = a.data[qq*n+qq]
		apq = a.data[p*n+qq]

		theta = (aqq - app) / (2 * apq)
		t = 1 / (math.Abs(theta) + math.Sqrt(theta*theta+1))
		if theta < 0 {
			t = -t
		}
		c = 1 / math.Sqrt(t*t+1)
		s = t * c

		for k = 0; k < n; k++ {
			if k == p || k == qq {
				continue
			}
			akp = a.data[k*n+p]
			akq = a.data[k*n+qq]
			a.data[k*n+p] = c*akp - s*akq
			a.data[p*n+k] = a.data[k*n+p]
			a.data[k*n+qq] = s*akp + c*akq
			a.data[qq*n+k] = a.data[k*n+qq]
		}
		a.data[p*n+p] = app - t*apq
		a.data[qq*n+qq] = aqq + t*apq
		a.data[p*n+qq] = 0
		a.data[qq*n+p] = 0

		for k = 0; k < n; k++ {
			akp = q.data[k*n+p]
			akq = q.data[k*n+qq]
			q.data[k*n+p] = c*akp - s*akq
			q.data[k*n+qq] = s*akp + c*akq
		}
	}

	values := make([]float64, n)
	for i = 0; i < n; i++ {
		values[i] = a.data[i*n+i]
	}

	return values, q, nil
}

// NewIdentity returns the n×n identity matrix.
func NewIdentity(n int) (*Dense, error) {
	id, err := NewDense(n, n)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		id.data[i*n+i] = 1.0
	}

	return id, nil
}
