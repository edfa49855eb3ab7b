package comp_test

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/geochem/comp"
	"github.com/katalvlaran/geochem/matrix"
)

var approx = cmpopts.EquateApprox(0, 1e-12)

func rows(t *testing.T, data [][]float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDenseRows(data)
	require.NoError(t, err)

	return m
}

func sample(t *testing.T) *matrix.Dense {
	t.Helper()
	return rows(t, [][]float64{
		{10, 20, 30, 40},
		{1, 1, 1, 7},
		{0.2, 3.5, 12, 4},
		{5, 5, 80, 10},
	})
}

func TestClose(t *testing.T) {
	t.Parallel()
	c, err := comp.Close(rows(t, [][]float64{{1, 1, 2}, {3, 1, 0}}))
	require.NoError(t, err)
	want := [][]float64{{0.25, 0.25, 0.5}, {0.75, 0.25, 0}}
	assert.True(t, cmp.Equal(want, c.RowSlices(), approx))

	_, err = comp.Close(rows(t, [][]float64{{0, 0}}))
	assert.ErrorIs(t, err, comp.ErrNonPositive)
	_, err = comp.Close(nil)
	assert.ErrorIs(t, err, matrix.ErrNilMatrix)
}

func TestCLR_RoundTrip(t *testing.T) {
	t.Parallel()
	X := sample(t)
	clr, err := comp.CLR(X)
	require.NoError(t, err)
	for _, row := range clr.RowSlices() {
		sum := 0.0
		for _, v := range row {
			sum += v
		}
		assert.InDelta(t, 0, sum, 1e-12)
	}

	back, err := comp.InverseCLR(clr)
	require.NoError(t, err)
	closed, err := comp.Close(X)
	require.NoError(t, err)
	assert.True(t, cmp.Equal(closed.RowSlices(), back.RowSlices(), approx),
		cmp.Diff(closed.RowSlices(), back.RowSlices(), approx))

	_, err = comp.CLR(rows(t, [][]float64{{1, -1}}))
	assert.ErrorIs(t, err, comp.ErrNonPositive)
}

func TestALR_RoundTrip(t *testing.T) {
	t.Parallel()
	X := sample(t)
	closed, err := comp.Close(X)
	require.NoError(t, err)
	for _, ind := range []int{0, 2, 3} {
		alr, err := comp.ALR(X, ind)
		require.NoError(t, err)
		assert.Equal(t, 3, alr.Cols())

		back, err := comp.InverseALR(alr, ind)
		require.NoError(t, err)
		assert.True(t, cmp.Equal(closed.RowSlices(), back.RowSlices(), approx), "ind=%d", ind)
	}

	alr, err := comp.ALR(rows(t, [][]float64{{1, math.E, 1}}), 0)
	require.NoError(t, err)
	assert.True(t, cmp.Equal([][]float64{{1, 0}}, alr.RowSlices(), approx))

	_, err = comp.ALR(X, 4)
	assert.ErrorIs(t, err, comp.ErrBadIndex)
	_, err = comp.InverseALR(X, -1)
	assert.ErrorIs(t, err, comp.ErrBadIndex)
	_, err = comp.ALR(rows(t, [][]float64{{1}}), 0)
	assert.ErrorIs(t, err, comp.ErrShapeMismatch)
}

func TestHelmert_Orthonormal(t *testing.T) {
	t.Parallel()
	V, err := comp.Helmert(5)
	require.NoError(t, err)
	Vt, err := matrix.Transpose(V)
	require.NoError(t, err)
	VtV, err := matrix.Mul(Vt, V)
	require.NoError(t, err)
	I, err := matrix.NewIdentity(4)
	require.NoError(t, err)
	ok, err := matrix.AllClose(VtV, I)
	require.NoError(t, err)
	assert.True(t, ok, VtV.String())

	// columns are orthogonal to the ones vector
	for j := 0; j < 4; j++ {
		col, _ := V.Col(j)
		sum := 0.0
		for _, v := range col {
			sum += v
		}
		assert.InDelta(t, 0, sum, 1e-12)
	}

	_, err = comp.Helmert(1)
	assert.ErrorIs(t, err, comp.ErrShapeMismatch)
}

func TestILR_RoundTrip(t *testing.T) {
	t.Parallel()
	X := sample(t)
	ilr, err := comp.ILR(X)
	require.NoError(t, err)
	assert.Equal(t, 3, ilr.Cols())

	back, err := comp.InverseILR(ilr)
	require.NoError(t, err)
	closed, err := comp.Close(X)
	require.NoError(t, err)
	assert.True(t, cmp.Equal(closed.RowSlices(), back.RowSlices(), approx),
		cmp.Diff(closed.RowSlices(), back.RowSlices(), approx))

	// ILR is an isometry of the CLR plane
	clr, err := comp.CLR(X)
	require.NoError(t, err)
	for i := 0; i < X.Rows(); i++ {
		a, _ := clr.Row(i)
		b, _ := ilr.Row(i)
		assert.InDelta(t, norm(a), norm(b), 1e-12)
	}
}

func norm(v []float64) float64 {
	s := 0.0
	for _, x := range v {
		s += x * x
	}
	return math.Sqrt(s)
}

func TestLogRatioMean(t *testing.T) {
	t.Parallel()
	got, err := comp.LogRatioMean(rows(t, [][]float64{{1, 1, 2}, {4, 1, 2}}))
	require.NoError(t, err)
	assert.True(t, cmp.Equal([]float64{0.4, 0.2, 0.4}, got, approx), cmp.Diff([]float64{0.4, 0.2, 0.4}, got))

	_, err = comp.LogRatioMean(rows(t, [][]float64{{1, 0}}))
	assert.ErrorIs(t, err, comp.ErrNonPositive)
}

func TestVariationMatrix(t *testing.T) {
	t.Parallel()
	T, err := comp.VariationMatrix(rows(t, [][]float64{{1, 2, 3}, {1, 4, 3}}))
	require.NoError(t, err)
	want := math.Ln2 * math.Ln2 / 4
	v01, _ := T.At(0, 1)
	v10, _ := T.At(1, 0)
	v02, _ := T.At(0, 2)
	v11, _ := T.At(1, 1)
	assert.InDelta(t, want, v01, 1e-12)
	assert.Equal(t, v01, v10)
	assert.InDelta(t, 0, v02, 1e-15)
	assert.Zero(t, v11)
}

func TestCLRCovariance(t *testing.T) {
	t.Parallel()
	cov, err := comp.CLRCovariance(sample(t))
	require.NoError(t, err)
	require.Equal(t, 4, cov.Rows())
	for _, row := range cov.RowSlices() {
		sum := 0.0
		for _, v := range row {
			sum += v
		}
		assert.InDelta(t, 0, sum, 1e-12)
	}
	assert.NoError(t, matrix.ValidateSymmetric(cov, 1e-12))

	_, err = comp.CLRCovariance(rows(t, [][]float64{{1, 2}}))
	assert.ErrorIs(t, err, comp.ErrEmptyInput)
}

func TestCompareRatios(t *testing.T) {
	t.Parallel()
	s, err := comp.CompareRatios([]float64{1, 2, 4}, []float64{2, 1, 1})
	require.NoError(t, err)

	assert.InDelta(t, 13.0/6, s.MeanAB, 1e-12)
	assert.InDelta(t, 11.0/12, s.MeanBA, 1e-12)
	assert.InDelta(t, s.MeanAB*s.MeanBA, s.Inversion, 1e-12)
	assert.NotEqual(t, 1.0, s.Inversion)
	assert.NotEqual(t, s.RSDAB, s.RSDBA)

	assert.InDelta(t, s.GeoMeanAB, s.InvGeoMeanBA, 1e-12)
	assert.InDelta(t, math.Cbrt(4), s.GeoMeanAB, 1e-12)
	assert.InDelta(t, s.LogRelVarAB, s.LogRelVarBA, 1e-12)

	_, err = comp.CompareRatios([]float64{1}, []float64{1, 2})
	assert.ErrorIs(t, err, comp.ErrShapeMismatch)
	_, err = comp.CompareRatios(nil, nil)
	assert.ErrorIs(t, err, comp.ErrEmptyInput)
	_, err = comp.CompareRatios([]float64{1}, []float64{0})
	assert.ErrorIs(t, err, comp.ErrNonPositive)
}

func TestLogNormalParams(t *testing.T) {
	t.Parallel()
	mu, s, err := comp.NormToLogNorm(2.5, 1.5)
	require.NoError(t, err)
	mean, sd := comp.LogNormToNorm(mu, s)
	assert.InDelta(t, 2.5, mean, 1e-12)
	assert.InDelta(t, 1.5, sd, 1e-12)

	d, err := comp.LogNormal(2.5, 1.5)
	require.NoError(t, err)
	assert.InDelta(t, 2.5, d.Mean(), 1e-12)
	assert.InDelta(t, 1.5, d.StdDev(), 1e-12)

	_, _, err = comp.NormToLogNorm(0, 1)
	assert.ErrorIs(t, err, comp.ErrNonPositive)
	_, err = comp.LogNormal(1, -1)
	assert.ErrorIs(t, err, comp.ErrNonPositive)
}

func TestFitLogNormal(t *testing.T) {
	t.Parallel()
	samples := []float64{math.Exp(0.5), math.Exp(1), math.Exp(1.5)}
	d, err := comp.FitLogNormal(samples)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, d.Mu, 1e-12)
	assert.InDelta(t, 0.5*math.Sqrt(2.0/3), d.Sigma, 1e-12)

	_, err = comp.FitLogNormal(nil)
	assert.ErrorIs(t, err, comp.ErrEmptyInput)
	_, err = comp.FitLogNormal([]float64{1, -2})
	assert.ErrorIs(t, err, comp.ErrNonPositive)
}
