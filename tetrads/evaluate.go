package tetrads

import (
	"fmt"
	"math"

	"github.com/katalvlaran/geochem/internal/floats"
	"github.com/katalvlaran/geochem/matrix"
)

// Evaluate returns the tau-weighted tetrad basis at positions.
//
// Contract:
//   - len(taus) == number of tetrads (4 by default), otherwise ErrShapeMismatch.
//   - len(positions) > 0, otherwise ErrEmptyInput.
//
// Output:
//   - default: K×N, row k = taus[k]·t_k(positions).
//   - WithSum(true): 1×N, the vector-matrix product taus (1×K) × B (K×N).
//   - WithDrop0(true): values within the zero tolerance become NaN unless
//     their position is an anchor.
func Evaluate(taus, positions []float64, opts ...Option) (*matrix.Dense, error) {
	o := gatherOptions(opts...)
	f, err := NewFunction(o.tetrads)
	if err != nil {
		return nil, fmt.Errorf("Evaluate: %w", err)
	}
	if len(taus) != f.Len() {
		return nil, fmt.Errorf("Evaluate: %d taus for %d tetrads: %w", len(taus), f.Len(), ErrShapeMismatch)
	}
	basis, err := f.Basis(positions, false)
	if err != nil {
		return nil, fmt.Errorf("Evaluate: %w", err)
	}

	var out *matrix.Dense
	if o.sum {
		row, err := matrix.VecMat(taus, basis)
		if err != nil {
			return nil, fmt.Errorf("Evaluate: %w", err)
		}
		if out, err = matrix.NewRowVector(row, matrix.WithNoValidateNaNInf()); err != nil {
			return nil, fmt.Errorf("Evaluate: %w", err)
		}
	} else {
		rows := basis.RowSlices()
		for i, row := range rows {
			for j := range row {
				row[j] *= taus[i]
			}
		}
		if out, err = matrix.NewDenseRows(rows, matrix.WithNoValidateNaNInf()); err != nil {
			return nil, fmt.Errorf("Evaluate: %w", err)
		}
	}
	if o.drop0 {
		if err = suppress(out, positions, o); err != nil {
			return nil, fmt.Errorf("Evaluate: %w", err)
		}
	}

	return out, nil
}

// Profiles evaluates one tau-weighted sum row per tau vector: the M×N product
// T (M×K) × B (K×N). WithSum is implied; WithDrop0 applies per element.
func Profiles(taus [][]float64, positions []float64, opts ...Option) (*matrix.Dense, error) {
	if len(taus) == 0 {
		return nil, fmt.Errorf("Profiles: %w", ErrEmptyInput)
	}
	o := gatherOptions(opts...)
	f, err := NewFunction(o.tetrads)
	if err != nil {
		return nil, fmt.Errorf("Profiles: %w", err)
	}
	k := f.Len()
	flat := make([]float64, 0, len(taus)*k)
	for i, row := range taus {
		if len(row) != k {
			return nil, fmt.Errorf("Profiles: row %d has %d taus for %d tetrads: %w", i, len(row), k, ErrShapeMismatch)
		}
		flat = append(flat, row...)
	}
	t, err := matrix.NewDenseFrom(len(taus), k, flat, matrix.WithNoValidateNaNInf())
	if err != nil {
		return nil, fmt.Errorf("Profiles: %w", err)
	}
	basis, err := f.Basis(positions, false)
	if err != nil {
		return nil, fmt.Errorf("Profiles: %w", err)
	}
	out, err := matrix.Mul(t, basis)
	if err != nil {
		return nil, fmt.Errorf("Profiles: %w", err)
	}
	if o.drop0 {
		if err = suppress(out, positions, o); err != nil {
			return nil, fmt.Errorf("Profiles: %w", err)
		}
	}

	return out, nil
}

// Suppressed reports whether v is a value dropped by drop0.
func Suppressed(v float64) bool { return math.IsNaN(v) }

// suppress applies drop0 to every row of m in place.
func suppress(m *matrix.Dense, positions []float64, o options) error {
	anchored := make([]bool, len(positions))
	for j, z := range positions {
		anchored[j] = isAnchor(z, o.anchors, o.zeroTol)
	}
	var err error
	m.Do(func(i, j int, v float64) bool {
		if isZero(v, o.zeroTol) && !anchored[j] {
			err = m.Set(i, j, math.NaN())
		}
		return err == nil
	})

	return err
}

// SuppressRow applies drop0 to one profile row in place and returns the
// number of dropped values. Tolerance and anchors follow opts.
// Errors: ErrShapeMismatch if the lengths differ.
func SuppressRow(values, positions []float64, opts ...Option) (int, error) {
	if len(values) != len(positions) {
		return 0, fmt.Errorf("SuppressRow: %d values, %d positions: %w", len(values), len(positions), ErrShapeMismatch)
	}
	o := gatherOptions(opts...)
	dropped := 0
	for j, v := range values {
		if isZero(v, o.zeroTol) && !isAnchor(positions[j], o.anchors, o.zeroTol) {
			values[j] = math.NaN()
			dropped++
		}
	}

	return dropped, nil
}

func isZero(v, tol float64) bool { return floats.IsClose(v, 0, 0, tol) }

func isAnchor(z float64, anchors []float64, tol float64) bool {
	for _, a := range anchors {
		if floats.IsClose(z, a, 0, tol) {
			return true
		}
	}

	return false
}
