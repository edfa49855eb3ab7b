package comp

import (
	"fmt"
	"math"

	"github.com/katalvlaran/geochem/matrix"
)

// rowsOf copies X into row slices.
func rowsOf(X matrix.Matrix) ([][]float64, error) {
	if err := matrix.ValidateNotNil(X); err != nil {
		return nil, err
	}
	if d, ok := X.(*matrix.Dense); ok {
		return d.RowSlices(), nil
	}
	out := make([][]float64, X.Rows())
	for i := range out {
		out[i] = make([]float64, X.Cols())
		for j := range out[i] {
			v, err := X.At(i, j)
			if err != nil {
				return nil, err
			}
			out[i][j] = v
		}
	}

	return out, nil
}

// Close scales every row of X to unit sum. Rows with a non-positive sum fail
// with ErrNonPositive.
func Close(X matrix.Matrix) (*matrix.Dense, error) {
	rows, err := rowsOf(X)
	if err != nil {
		return nil, fmt.Errorf("Close: %w", err)
	}
	for i, row := range rows {
		if err = closeRow(row); err != nil {
			return nil, fmt.Errorf("Close: row %d: %w", i, err)
		}
	}

	return matrix.NewDenseRows(rows)
}

func closeRow(row []float64) error {
	sum := 0.0
	for _, v := range row {
		sum += v
	}
	if !(sum > 0) {
		return ErrNonPositive
	}
	for j := range row {
		row[j] /= sum
	}

	return nil
}

// logRow replaces row with its natural logarithm, rejecting non-positive parts.
func logRow(row []float64) error {
	for j, v := range row {
		if !(v > 0) {
			return fmt.Errorf("part %d = %g: %w", j, v, ErrNonPositive)
		}
		row[j] = math.Log(v)
	}

	return nil
}

// CLR returns the centred log-ratio transform log(x) - mean(log(x)) per row.
// Every CLR row sums to zero.
func CLR(X matrix.Matrix) (*matrix.Dense, error) {
	rows, err := rowsOf(X)
	if err != nil {
		return nil, fmt.Errorf("CLR: %w", err)
	}
	for i, row := range rows {
		if err = logRow(row); err != nil {
			return nil, fmt.Errorf("CLR: row %d: %w", i, err)
		}
		mean := 0.0
		for _, v := range row {
			mean += v
		}
		mean /= float64(len(row))
		for j := range row {
			row[j] -= mean
		}
	}

	return matrix.NewDenseRows(rows)
}

// InverseCLR maps CLR coordinates back to closed compositions.
func InverseCLR(Y matrix.Matrix) (*matrix.Dense, error) {
	rows, err := rowsOf(Y)
	if err != nil {
		return nil, fmt.Errorf("InverseCLR: %w", err)
	}
	for i, row := range rows {
		for j, v := range row {
			row[j] = math.Exp(v)
		}
		if err = closeRow(row); err != nil {
			return nil, fmt.Errorf("InverseCLR: row %d: %w", i, err)
		}
	}

	return matrix.NewDenseRows(rows)
}

// ALR returns log(x_j / x_ind) for every part j != ind, so the result has one
// column fewer than X.
func ALR(X matrix.Matrix, ind int) (*matrix.Dense, error) {
	rows, err := rowsOf(X)
	if err != nil {
		return nil, fmt.Errorf("ALR: %w", err)
	}
	d := X.Cols()
	if d < 2 {
		return nil, fmt.Errorf("ALR: %d parts: %w", d, ErrShapeMismatch)
	}
	if ind < 0 || ind >= d {
		return nil, fmt.Errorf("ALR: index %d of %d parts: %w", ind, d, ErrBadIndex)
	}
	out := make([][]float64, len(rows))
	for i, row := range rows {
		if err = logRow(row); err != nil {
			return nil, fmt.Errorf("ALR: row %d: %w", i, err)
		}
		out[i] = make([]float64, 0, d-1)
		for j, v := range row {
			if j != ind {
				out[i] = append(out[i], v-row[ind])
			}
		}
	}

	return matrix.NewDenseRows(out)
}

// InverseALR re-inserts the divisor part at ind and closes the rows.
// ind ranges over [0, Y.Cols()].
func InverseALR(Y matrix.Matrix, ind int) (*matrix.Dense, error) {
	rows, err := rowsOf(Y)
	if err != nil {
		return nil, fmt.Errorf("InverseALR: %w", err)
	}
	d := Y.Cols() + 1
	if ind < 0 || ind >= d {
		return nil, fmt.Errorf("InverseALR: index %d of %d parts: %w", ind, d, ErrBadIndex)
	}
	out := make([][]float64, len(rows))
	for i, row := range rows {
		full := make([]float64, 0, d)
		full = append(full, row[:ind]...)
		full = append(full, 0)
		full = append(full, row[ind:]...)
		for j, v := range full {
			full[j] = math.Exp(v)
		}
		if err = closeRow(full); err != nil {
			return nil, fmt.Errorf("InverseALR: row %d: %w", i, err)
		}
		out[i] = full
	}

	return matrix.NewDenseRows(out)
}

// Helmert returns the D×(D-1) orthonormal basis of the CLR plane used by ILR.
// Column k (1-based) is sqrt(k/(k+1)) · (1/k, ..., 1/k, -1, 0, ..., 0).
func Helmert(d int) (*matrix.Dense, error) {
	if d < 2 {
		return nil, fmt.Errorf("Helmert: %d parts: %w", d, ErrShapeMismatch)
	}
	V, err := matrix.NewDense(d, d-1)
	if err != nil {
		return nil, fmt.Errorf("Helmert: %w", err)
	}
	for k := 1; k < d; k++ {
		scale := math.Sqrt(float64(k) / float64(k+1))
		for i := 0; i < k; i++ {
			if err = V.Set(i, k-1, scale/float64(k)); err != nil {
				return nil, fmt.Errorf("Helmert: %w", err)
			}
		}
		if err = V.Set(k, k-1, -scale); err != nil {
			return nil, fmt.Errorf("Helmert: %w", err)
		}
	}

	return V, nil
}

// ILR returns the isometric log-ratio coordinates CLR(X) · V for the Helmert
// basis V.
func ILR(X matrix.Matrix) (*matrix.Dense, error) {
	clr, err := CLR(X)
	if err != nil {
		return nil, fmt.Errorf("ILR: %w", err)
	}
	V, err := Helmert(clr.Cols())
	if err != nil {
		return nil, fmt.Errorf("ILR: %w", err)
	}
	out, err := matrix.Mul(clr, V)
	if err != nil {
		return nil, fmt.Errorf("ILR: %w", err)
	}

	return out, nil
}

// InverseILR maps ILR coordinates back to closed compositions.
func InverseILR(Z matrix.Matrix) (*matrix.Dense, error) {
	if err := matrix.ValidateNotNil(Z); err != nil {
		return nil, fmt.Errorf("InverseILR: %w", err)
	}
	V, err := Helmert(Z.Cols() + 1)
	if err != nil {
		return nil, fmt.Errorf("InverseILR: %w", err)
	}
	Vt, err := matrix.Transpose(V)
	if err != nil {
		return nil, fmt.Errorf("InverseILR: %w", err)
	}
	clr, err := matrix.Mul(Z, Vt)
	if err != nil {
		return nil, fmt.Errorf("InverseILR: %w", err)
	}

	return InverseCLR(clr)
}
