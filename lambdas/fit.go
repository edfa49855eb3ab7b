package lambdas

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Fit returns the least-squares lambdas of ys observed at xs over params.
// Observations with NaN y are skipped (missing elements in a pattern).
//
// Errors:
//   - ErrShapeMismatch if len(xs) != len(ys).
//   - ErrEmptyInput if params is empty.
//   - ErrUnderdetermined if fewer usable observations than len(params).
func Fit(xs, ys []float64, params Params) ([]float64, error) {
	if len(xs) != len(ys) {
		return nil, fmt.Errorf("Fit: %d xs, %d ys: %w", len(xs), len(ys), ErrShapeMismatch)
	}
	if len(params) == 0 {
		return nil, fmt.Errorf("Fit: %w", ErrEmptyInput)
	}
	var px, py []float64
	for i, y := range ys {
		if math.IsNaN(y) {
			continue
		}
		px = append(px, xs[i])
		py = append(py, y)
	}
	if len(px) < len(params) {
		return nil, fmt.Errorf("Fit: %d observations for %d terms: %w", len(px), len(params), ErrUnderdetermined)
	}

	design, err := PolynomialMatrix(px, params)
	if err != nil {
		return nil, fmt.Errorf("Fit: %w", err)
	}
	a := mat.NewDense(design.Rows(), design.Cols(), flatten(design.RowSlices()))
	b := mat.NewVecDense(len(py), py)
	c := mat.NewVecDense(len(params), nil)

	qr := new(mat.QR)
	qr.Factorize(a)
	if err = qr.SolveVecTo(c, false, b); err != nil {
		return nil, fmt.Errorf("Fit: could not solve QR: %w", err)
	}

	out := make([]float64, len(params))
	for i := range out {
		out[i] = c.AtVec(i)
	}

	return out, nil
}

func flatten(rows [][]float64) []float64 {
	if len(rows) == 0 {
		return nil
	}
	out := make([]float64, 0, len(rows)*len(rows[0]))
	for _, r := range rows {
		out = append(out, r...)
	}

	return out
}
