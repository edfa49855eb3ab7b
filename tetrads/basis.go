package tetrads

import (
	"fmt"
	"math"

	"github.com/katalvlaran/geochem/matrix"
)

// Tetrad is one semicircular hump centred at Centre spanning Width in z.
type Tetrad struct {
	Centre float64
	Width  float64
}

// DefaultWidth is the z span of each default tetrad.
const DefaultWidth = 3.5

// Defaults returns the four lanthanide tetrads T1..T4.
func Defaults() []Tetrad {
	return []Tetrad{
		{Centre: 58.75, Width: DefaultWidth},
		{Centre: 62.25, Width: DefaultWidth},
		{Centre: 65.75, Width: DefaultWidth},
		{Centre: 69.25, Width: DefaultWidth},
	}
}

// At returns the hump height at z: sqrt(1 - g²) for |g| <= 1, else 0,
// with g = (z - Centre) / (Width/2).
func (t Tetrad) At(z float64) float64 {
	g := (z - t.Centre) / (t.Width / 2)
	if math.Abs(g) > 1 {
		return 0
	}

	return math.Sqrt(1 - g*g)
}

func (t Tetrad) validate() error {
	if math.IsNaN(t.Centre) || math.IsInf(t.Centre, 0) ||
		math.IsNaN(t.Width) || math.IsInf(t.Width, 0) || t.Width <= 0 {
		return fmt.Errorf("centre %v width %v: %w", t.Centre, t.Width, ErrBadTetrad)
	}

	return nil
}

// Function is a reusable, unweighted tetrad basis.
type Function struct {
	tetrads []Tetrad
}

// NewFunction validates ts and returns its basis function. Nil or empty ts
// selects Defaults().
func NewFunction(ts []Tetrad) (Function, error) {
	if len(ts) == 0 {
		ts = Defaults()
	}
	for i, t := range ts {
		if err := t.validate(); err != nil {
			return Function{}, fmt.Errorf("NewFunction: tetrad %d: %w", i, err)
		}
	}

	return Function{tetrads: append([]Tetrad(nil), ts...)}, nil
}

// Len returns the number of tetrads (rows of the basis).
func (f Function) Len() int { return len(f.tetrads) }

// Basis evaluates the raw humps at positions.
//
// Returns a K×N matrix (row k = tetrad k) or, when sum is true, the 1×N
// column sums. Errors: ErrEmptyInput for no positions.
func (f Function) Basis(positions []float64, sum bool) (*matrix.Dense, error) {
	if len(positions) == 0 {
		return nil, fmt.Errorf("Basis: %w", ErrEmptyInput)
	}
	if len(f.tetrads) == 0 {
		f.tetrads = Defaults()
	}
	k, n := len(f.tetrads), len(positions)
	data := make([]float64, k*n)
	for i, t := range f.tetrads {
		for j, z := range positions {
			data[i*n+j] = t.At(z)
		}
	}
	if sum {
		row := make([]float64, n)
		for i := 0; i < k; i++ {
			for j := 0; j < n; j++ {
				row[j] += data[i*n+j]
			}
		}
		return matrix.NewRowVector(row, matrix.WithNoValidateNaNInf())
	}

	return matrix.NewDenseFrom(k, n, data, matrix.WithNoValidateNaNInf())
}
