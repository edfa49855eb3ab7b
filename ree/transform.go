package ree

import (
	"fmt"
	"math"
	"sync"

	"gonum.org/v1/gonum/mat"
)

// DefaultTransformDegree is the polynomial degree of the z <-> radius fits.
const DefaultTransformDegree = 7

// zCentre and zHalf scale atomic numbers onto [-1, 1] before fitting so the
// Vandermonde matrix stays well conditioned.
const (
	zCentre = float64(MinZ+MaxZ) / 2
	zHalf   = float64(MaxZ-MinZ) / 2
)

// Transform converts between atomic number and ionic radius for the REE series
// at one charge and coordination. It is immutable and safe for concurrent use.
type Transform struct {
	charge, coordination int

	zs, radii  []float64 // tabulated pairs, Z order (radii decreasing)
	toRadius   []float64 // coefficients in t = (z - zCentre)/zHalf
	toZ        []float64 // coefficients in s = (r - rCentre)/rHalf
	rCentre    float64
	rHalf      float64
	rMin, rMax float64
	slack      float64 // tolerated overshoot outside [rMin, rMax]
}

// NewTransform fits the z <-> radius polynomials for the given charge and
// coordination. Every lanthanide, Pm included, must have a tabulated radius.
func NewTransform(charge, coordination int) (*Transform, error) {
	els := REE(WithPm(true))
	radii, err := Radii(els, charge, coordination)
	if err != nil {
		return nil, fmt.Errorf("NewTransform: %w", err)
	}
	zs := Zs(WithPm(true))

	tr := &Transform{
		charge:       charge,
		coordination: coordination,
		zs:           zs,
		radii:        radii,
		rMin:         radii[len(radii)-1],
		rMax:         radii[0],
	}
	tr.rCentre = (tr.rMax + tr.rMin) / 2
	tr.rHalf = (tr.rMax - tr.rMin) / 2
	tr.slack = (tr.rMax - tr.rMin) / float64(len(radii)-1) / 2

	ts := make([]float64, len(zs))
	ss := make([]float64, len(zs))
	for i := range zs {
		ts[i] = (zs[i] - zCentre) / zHalf
		ss[i] = (radii[i] - tr.rCentre) / tr.rHalf
	}
	if tr.toRadius, err = polyfit(ts, radii, DefaultTransformDegree); err != nil {
		return nil, fmt.Errorf("NewTransform: z→radius: %w", err)
	}
	if tr.toZ, err = polyfit(ss, zs, DefaultTransformDegree); err != nil {
		return nil, fmt.Errorf("NewTransform: radius→z: %w", err)
	}

	return tr, nil
}

// Charge returns the cation charge the transform was built for.
func (tr *Transform) Charge() int { return tr.charge }

// Coordination returns the coordination number the transform was built for.
func (tr *Transform) Coordination() int { return tr.coordination }

// ZToRadii maps atomic numbers (fractional allowed) to ionic radii.
// Any z outside [MinZ, MaxZ] fails the whole call with ErrDomain.
func (tr *Transform) ZToRadii(z []float64) ([]float64, error) {
	out := make([]float64, len(z))
	for i, v := range z {
		if math.IsNaN(v) || v < MinZ || v > MaxZ {
			return nil, fmt.Errorf("ZToRadii: z=%g: %w", v, ErrDomain)
		}
		out[i] = horner(tr.toRadius, (v-zCentre)/zHalf)
	}

	return out, nil
}

// RadiiToZ maps ionic radii back to continuous atomic numbers.
// Radii outside the tabulated span (plus half an element spacing) fail with ErrDomain.
func (tr *Transform) RadiiToZ(r []float64) ([]float64, error) {
	out := make([]float64, len(r))
	for i, v := range r {
		if err := tr.checkRadius(v); err != nil {
			return nil, fmt.Errorf("RadiiToZ: %w", err)
		}
		out[i] = horner(tr.toZ, (v-tr.rCentre)/tr.rHalf)
	}

	return out, nil
}

// NearestZ returns the atomic number whose tabulated radius is closest to r.
func (tr *Transform) NearestZ(r float64) (int, error) {
	if err := tr.checkRadius(r); err != nil {
		return 0, fmt.Errorf("NearestZ: %w", err)
	}
	best, bestD := 0, math.Inf(1)
	for i, ri := range tr.radii {
		if d := math.Abs(ri - r); d < bestD {
			best, bestD = i, d
		}
	}

	return int(tr.zs[best]), nil
}

func (tr *Transform) checkRadius(r float64) error {
	if math.IsNaN(r) || r < tr.rMin-tr.slack || r > tr.rMax+tr.slack {
		return fmt.Errorf("radius=%g outside [%g, %g]: %w", r, tr.rMin, tr.rMax, ErrDomain)
	}

	return nil
}

var (
	defaultOnce      sync.Once
	defaultTransform *Transform
	defaultErr       error
)

// Default returns the shared 3+, CN VIII transform.
func Default() (*Transform, error) {
	defaultOnce.Do(func() {
		defaultTransform, defaultErr = NewTransform(DefaultCharge, DefaultCoordination)
	})

	return defaultTransform, defaultErr
}

// ZToRadii converts with the default (3+, CN VIII) transform.
func ZToRadii(z []float64) ([]float64, error) {
	tr, err := Default()
	if err != nil {
		return nil, err
	}

	return tr.ZToRadii(z)
}

// RadiiToZ converts with the default (3+, CN VIII) transform.
func RadiiToZ(r []float64) ([]float64, error) {
	tr, err := Default()
	if err != nil {
		return nil, err
	}

	return tr.RadiiToZ(r)
}

// NearestZ looks up the closest element with the default (3+, CN VIII) transform.
func NearestZ(r float64) (int, error) {
	tr, err := Default()
	if err != nil {
		return 0, err
	}

	return tr.NearestZ(r)
}

// polyfit returns least-squares coefficients c[0] + c[1]x + ... + c[degree]x^degree.
func polyfit(x, y []float64, degree int) ([]float64, error) {
	a := vandermonde(x, degree)
	b := mat.NewVecDense(len(y), y)
	c := mat.NewVecDense(degree+1, nil)

	qr := new(mat.QR)
	qr.Factorize(a)
	if err := qr.SolveVecTo(c, false, b); err != nil {
		return nil, fmt.Errorf("could not solve QR: %w", err)
	}

	return c.RawVector().Data, nil
}

func vandermonde(a []float64, degree int) *mat.Dense {
	x := mat.NewDense(len(a), degree+1, nil)
	for i := range a {
		for j, p := 0, 1.0; j <= degree; j, p = j+1, p*a[i] {
			x.Set(i, j, p)
		}
	}

	return x
}

func horner(c []float64, x float64) float64 {
	y := 0.0
	for i := len(c) - 1; i >= 0; i-- {
		y = y*x + c[i]
	}

	return y
}
