package lambdas

import (
	"fmt"

	"github.com/katalvlaran/geochem/internal/floats"
	"github.com/katalvlaran/geochem/matrix"
)

// Func is a reconstructed profile f(x) = Σ λ_i · Π_{r ∈ params[i]} (x - r).
// It is immutable and safe for concurrent use.
type Func struct {
	lambdas []float64
	params  Params
}

// Reconstruct builds the reconstruction function for lambdas over params.
//
// Contract:
//   - len(lambdas) == len(params), otherwise ErrShapeMismatch and no function.
//   - Empty lambdas with empty params yields the zero function.
//   - A singleton pair isolates exactly that one term: w·poly_p(x).
//
// Inputs are copied; later mutation by the caller has no effect on f.
func Reconstruct(lambdas []float64, params Params) (*Func, error) {
	if len(lambdas) != len(params) {
		return nil, fmt.Errorf("Reconstruct: %d lambdas, %d params: %w", len(lambdas), len(params), ErrShapeMismatch)
	}

	return &Func{
		lambdas: floats.Clone(lambdas),
		params:  params.Clone(),
	}, nil
}

// Lambdas returns a copy of the coefficients.
func (f *Func) Lambdas() []float64 { return floats.Clone(f.lambdas) }

// Params returns a copy of the basis parameter set.
func (f *Func) Params() Params { return f.params.Clone() }

// At evaluates f at a single coordinate.
func (f *Func) At(x float64) float64 {
	y := 0.0
	for i, w := range f.lambdas {
		y += w * f.params[i].Eval(x)
	}

	return y
}

// Evaluate evaluates f at every coordinate of xs; len(out) == len(xs).
func (f *Func) Evaluate(xs []float64) []float64 {
	out := make([]float64, len(xs))
	for k, x := range xs {
		out[k] = f.At(x)
	}

	return out
}

// Component is the isolated contribution of one polynomial term.
type Component struct {
	Degree int    // polynomial order, len(params[i])
	Label  string // legend text, e.g. "r^2: λ2·f2"
	Func   *Func
}

// Components splits a reconstruction into one single-term function per degree.
func Components(lambdas []float64, params Params) ([]Component, error) {
	if len(lambdas) != len(params) {
		return nil, fmt.Errorf("Components: %d lambdas, %d params: %w", len(lambdas), len(params), ErrShapeMismatch)
	}
	out := make([]Component, len(lambdas))
	for i, w := range lambdas {
		f, err := Reconstruct([]float64{w}, Params{params[i]})
		if err != nil {
			return nil, err
		}
		out[i] = Component{
			Degree: params[i].Degree(),
			Label:  ComponentLabel(params[i].Degree()),
			Func:   f,
		}
	}

	return out, nil
}

// ComponentLabel returns the legend label of the degree-n component.
func ComponentLabel(n int) string {
	if n == 0 {
		return "r^0: λ0"
	}

	return fmt.Sprintf("r^%d: λ%d·f%d", n, n, n)
}

// PolynomialMatrix returns the N×K design matrix whose column i is params[i]
// evaluated at xs.
//
// Errors: ErrEmptyInput when xs or params is empty.
func PolynomialMatrix(xs []float64, params Params) (*matrix.Dense, error) {
	if len(xs) == 0 || len(params) == 0 {
		return nil, fmt.Errorf("PolynomialMatrix: %w", ErrEmptyInput)
	}
	m, err := matrix.NewDense(len(xs), len(params))
	if err != nil {
		return nil, fmt.Errorf("PolynomialMatrix: %w", err)
	}
	for i, x := range xs {
		for j, t := range params {
			if err = m.Set(i, j, t.Eval(x)); err != nil {
				return nil, fmt.Errorf("PolynomialMatrix: %w", err)
			}
		}
	}

	return m, nil
}
