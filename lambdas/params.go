package lambdas

import (
	"fmt"
	"math"
	"sort"

	"github.com/katalvlaran/geochem/matrix"
	"github.com/katalvlaran/geochem/ree"
)

// DefaultDegree is the highest polynomial degree of the default parameter set
// (five lambdas, λ0..λ4).
const DefaultDegree = 4

// eigenTol and eigenMaxIter bound the Jacobi solve for polynomial roots.
const (
	eigenTol     = 1e-14
	eigenMaxIter = 10000
)

// Term holds the roots of one orthogonal polynomial; len(Term) is its degree.
type Term []float64

// Degree returns the polynomial degree of the term.
func (t Term) Degree() int { return len(t) }

// Eval returns Π (x - root) over the roots of t. The empty term is the constant 1.
func (t Term) Eval(x float64) float64 {
	y := 1.0
	for _, r := range t {
		y *= x - r
	}

	return y
}

// Params is an ordered basis parameter set, one Term per degree.
type Params []Term

// Clone returns a deep copy of p.
func (p Params) Clone() Params {
	if p == nil {
		return nil
	}
	out := make(Params, len(p))
	for i, t := range p {
		out[i] = append(Term{}, t...)
	}

	return out
}

// OrthogonalParams returns the roots of the monic polynomials p0..p_degree that
// are orthogonal over the discrete point set xs with uniform weights.
//
// Implementation:
//   - Stage 1: Stieltjes procedure builds the three-term recurrence
//     p_{j+1}(x) = (x - α_j)p_j(x) - β_j p_{j-1}(x) evaluated on xs.
//   - Stage 2: roots of p_n are the eigenvalues of the n×n symmetric
//     tridiagonal Jacobi matrix diag(α_0..α_{n-1}), off-diagonal √β_1..√β_{n-1}.
//
// Errors:
//   - ErrEmptyInput for empty xs, ErrBadDegree for degree < 0 or degree >= distinct points.
//
// Complexity: O(degree*N) for the recurrence plus the Jacobi solves.
func OrthogonalParams(xs []float64, degree int) (Params, error) {
	if len(xs) == 0 {
		return nil, fmt.Errorf("OrthogonalParams: %w", ErrEmptyInput)
	}
	if degree < 0 || degree >= distinct(xs) {
		return nil, fmt.Errorf("OrthogonalParams: degree %d for %d distinct points: %w", degree, distinct(xs), ErrBadDegree)
	}

	alpha, beta := stieltjes(xs, degree)

	params := make(Params, degree+1)
	params[0] = Term{}
	for n := 1; n <= degree; n++ {
		roots, err := jacobiRoots(alpha[:n], beta[1:n])
		if err != nil {
			return nil, fmt.Errorf("OrthogonalParams: degree %d: %w", n, err)
		}
		params[n] = roots
	}

	return params, nil
}

// stieltjes returns α_0..α_{degree-1} and β_0..β_{degree-1} (β_0 unused).
func stieltjes(xs []float64, degree int) (alpha, beta []float64) {
	alpha = make([]float64, degree)
	beta = make([]float64, degree)
	prev := make([]float64, len(xs)) // p_{j-1}
	cur := make([]float64, len(xs))  // p_j
	for k := range cur {
		cur[k] = 1
	}
	prevNorm := 0.0
	for j := 0; j < degree; j++ {
		var norm, moment float64
		for k, x := range xs {
			norm += cur[k] * cur[k]
			moment += x * cur[k] * cur[k]
		}
		alpha[j] = moment / norm
		if j > 0 {
			beta[j] = norm / prevNorm
		}
		next := make([]float64, len(xs))
		for k, x := range xs {
			next[k] = (x-alpha[j])*cur[k] - beta[j]*prev[k]
		}
		prev, cur, prevNorm = cur, next, norm
	}

	return alpha, beta
}

// jacobiRoots returns the ascending eigenvalues of the Jacobi matrix built from
// diagonal alpha and squared off-diagonal beta (len(beta) == len(alpha)-1).
func jacobiRoots(alpha, beta []float64) (Term, error) {
	n := len(alpha)
	J, err := matrix.NewDense(n, n)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		if err = J.Set(i, i, alpha[i]); err != nil {
			return nil, err
		}
		if i+1 < n {
			off := math.Sqrt(beta[i])
			if err = J.Set(i, i+1, off); err != nil {
				return nil, err
			}
			if err = J.Set(i+1, i, off); err != nil {
				return nil, err
			}
		}
	}
	values, _, err := matrix.Eigen(J, eigenTol, eigenMaxIter)
	if err != nil {
		return nil, err
	}
	sort.Float64s(values)

	return Term(values), nil
}

func distinct(xs []float64) int {
	seen := make(map[float64]struct{}, len(xs))
	for _, x := range xs {
		seen[x] = struct{}{}
	}

	return len(seen)
}

// DefaultParams derives the parameter set over the REE radii (3+, CN VIII,
// Pm dropped) up to the given degree.
func DefaultParams(degree int) (Params, error) {
	return OrthogonalParams(ree.DefaultRadii(), degree)
}
