package tetrads_test

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/geochem/internal/floats"
	"github.com/katalvlaran/geochem/tetrads"
)

var (
	integerZ = floats.Arange[float64](57, 71)
	nan      = math.NaN()
	approx   = cmp.Options{cmpopts.EquateApprox(0, 1e-12), cmpopts.EquateNaNs()}
)

func hump(z, centre float64) float64 {
	g := (z - centre) / 1.75
	if math.Abs(g) > 1 {
		return 0
	}
	return math.Sqrt(1 - g*g)
}

func TestTetrad_Boundaries(t *testing.T) {
	t.Parallel()
	ts := tetrads.Defaults()
	require.Len(t, ts, 4)
	for _, z := range []float64{57, 60.5, 64, 67.5, 71} {
		for _, tt := range ts {
			assert.Zero(t, tt.At(z), "z=%v centre=%v", z, tt.Centre)
		}
	}
	assert.Equal(t, 1.0, ts[0].At(58.75))
	assert.Zero(t, ts[0].At(62))
}

func TestEvaluate_PerTetradRows(t *testing.T) {
	t.Parallel()
	taus := []float64{1, 2, 3, 4}
	m, err := tetrads.Evaluate(taus, integerZ)
	require.NoError(t, err)
	r, c := m.Shape()
	require.Equal(t, 4, r)
	require.Equal(t, len(integerZ), c)

	centres := []float64{58.75, 62.25, 65.75, 69.25}
	for k := range centres {
		row, err := m.Row(k)
		require.NoError(t, err)
		want := make([]float64, len(integerZ))
		for j, z := range integerZ {
			want[j] = taus[k] * hump(z, centres[k])
		}
		assert.True(t, cmp.Equal(want, row, approx), cmp.Diff(want, row, approx))
	}
}

func TestEvaluate_SumIsTauProduct(t *testing.T) {
	t.Parallel()
	taus := []float64{0.5, -1, 2, 1.5}
	z := floats.Linspace(57.0, 71.0, 57)
	m, err := tetrads.Evaluate(taus, z, tetrads.WithSum(true))
	require.NoError(t, err)
	require.Equal(t, 1, m.Rows())

	rows, err := tetrads.Evaluate(taus, z)
	require.NoError(t, err)
	got, err := m.Row(0)
	require.NoError(t, err)
	for j := range z {
		col, err := rows.Col(j)
		require.NoError(t, err)
		sum := 0.0
		for _, v := range col {
			sum += v
		}
		assert.InDelta(t, sum, got[j], 1e-12)
	}
}

func TestEvaluate_ZeroTaus(t *testing.T) {
	t.Parallel()
	m, err := tetrads.Evaluate([]float64{0, 0, 0, 0}, integerZ, tetrads.WithSum(true))
	require.NoError(t, err)
	row, _ := m.Row(0)
	for _, v := range row {
		assert.Zero(t, v)
	}

	m, err = tetrads.Evaluate([]float64{0, 0, 0, 0}, integerZ, tetrads.WithSum(true), tetrads.WithDrop0(true))
	require.NoError(t, err)
	row, _ = m.Row(0)
	for j, z := range integerZ {
		if z == 57 || z == 64 || z == 71 {
			assert.Zero(t, row[j], "anchor %v", z)
			continue
		}
		assert.True(t, tetrads.Suppressed(row[j]), "z=%v", z)
	}
}

func TestEvaluate_Drop0KeepsNonzero(t *testing.T) {
	t.Parallel()
	m, err := tetrads.Evaluate([]float64{1, 1, 1, 1}, []float64{60}, tetrads.WithSum(true), tetrads.WithDrop0(true))
	require.NoError(t, err)
	v, err := m.At(0, 0)
	require.NoError(t, err)
	assert.False(t, tetrads.Suppressed(v))
	assert.InDelta(t, hump(60, 58.75), v, 1e-12)
}

func TestEvaluate_Drop0SingleTetrad(t *testing.T) {
	t.Parallel()
	m, err := tetrads.Evaluate([]float64{1, 0, 0, 0}, integerZ, tetrads.WithSum(true), tetrads.WithDrop0(true))
	require.NoError(t, err)
	got, _ := m.Row(0)
	want := []float64{
		0, hump(58, 58.75), hump(59, 58.75), hump(60, 58.75),
		nan, nan, nan, 0, nan, nan, nan, nan, nan, nan, 0,
	}
	assert.True(t, cmp.Equal(want, got, approx), cmp.Diff(want, got, approx))
}

func TestEvaluate_Errors(t *testing.T) {
	t.Parallel()
	_, err := tetrads.Evaluate([]float64{1, 2, 3}, integerZ)
	assert.ErrorIs(t, err, tetrads.ErrShapeMismatch)

	_, err = tetrads.Evaluate([]float64{1, 2, 3, 4}, nil)
	assert.ErrorIs(t, err, tetrads.ErrEmptyInput)

	_, err = tetrads.Evaluate([]float64{1}, integerZ, tetrads.WithTetrads([]tetrads.Tetrad{{Centre: 60, Width: 0}}))
	assert.ErrorIs(t, err, tetrads.ErrBadTetrad)

	assert.Panics(t, func() { tetrads.WithZeroTol(-1) })
}

func TestProfiles_Batch(t *testing.T) {
	t.Parallel()
	taus := [][]float64{{1, 0, 0, 0}, {0, 0, 0, 2}}
	m, err := tetrads.Profiles(taus, integerZ, tetrads.WithDrop0(true))
	require.NoError(t, err)
	require.Equal(t, 2, m.Rows())

	for i, tau := range taus {
		single, err := tetrads.Evaluate(tau, integerZ, tetrads.WithSum(true), tetrads.WithDrop0(true))
		require.NoError(t, err)
		want, _ := single.Row(0)
		got, _ := m.Row(i)
		assert.True(t, cmp.Equal(want, got, approx), cmp.Diff(want, got, approx))
	}

	_, err = tetrads.Profiles([][]float64{{1, 2}}, integerZ)
	assert.ErrorIs(t, err, tetrads.ErrShapeMismatch)
	_, err = tetrads.Profiles(nil, integerZ)
	assert.ErrorIs(t, err, tetrads.ErrEmptyInput)
}

func TestFunction_Basis(t *testing.T) {
	t.Parallel()
	f, err := tetrads.NewFunction(nil)
	require.NoError(t, err)
	assert.Equal(t, 4, f.Len())

	z := []float64{58, 62, 66, 70}
	sum, err := f.Basis(z, true)
	require.NoError(t, err)
	got, _ := sum.Row(0)
	want := []float64{hump(58, 58.75), hump(62, 62.25), hump(66, 65.75), hump(70, 69.25)}
	assert.True(t, cmp.Equal(want, got, approx), cmp.Diff(want, got, approx))

	_, err = f.Basis(nil, false)
	assert.ErrorIs(t, err, tetrads.ErrEmptyInput)
}

func TestSuppressRow(t *testing.T) {
	t.Parallel()
	vals := []float64{0, 1e-9, 0.5, 0, -1e-10}
	pos := []float64{57, 58, 59, 64, 70.2}
	n, err := tetrads.SuppressRow(vals, pos)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	want := []float64{0, nan, 0.5, 0, nan}
	assert.True(t, cmp.Equal(want, vals, cmpopts.EquateNaNs()))

	n, err = tetrads.SuppressRow([]float64{0}, []float64{57}, tetrads.WithAnchors())
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = tetrads.SuppressRow([]float64{0}, nil)
	assert.ErrorIs(t, err, tetrads.ErrShapeMismatch)
}

func TestEvaluate_Drop0PerTetradRows(t *testing.T) {
	t.Parallel()
	m, err := tetrads.Evaluate([]float64{2, 0, 1, 0}, []float64{58, 60.5, 64, 66}, tetrads.WithDrop0(true))
	require.NoError(t, err)
	require.Equal(t, 4, m.Rows())

	got := m.RowSlices()
	// 60.5 is the shared boundary of the first two tetrads: exactly 0 but no anchor
	want := [][]float64{
		{2 * hump(58, 58.75), nan, 0, nan},
		{nan, nan, 0, nan},
		{nan, nan, 0, hump(66, 65.75)},
		{nan, nan, 0, nan},
	}
	assert.True(t, cmp.Equal(want, got, approx), cmp.Diff(want, got, approx))
}

func TestSuppressRow_ToleranceEdges(t *testing.T) {
	t.Parallel()
	vals := []float64{1e-8, 1.1e-8, 0, 0}
	pos := []float64{58, 59, 57 + 5e-9, 57 + 2e-8}
	n, err := tetrads.SuppressRow(vals, pos)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	want := []float64{nan, 1.1e-8, 0, nan}
	assert.True(t, cmp.Equal(want, vals, cmpopts.EquateNaNs()), cmp.Diff(want, vals, cmpopts.EquateNaNs()))

	vals = []float64{1e-6}
	n, err = tetrads.SuppressRow(vals, []float64{60}, tetrads.WithZeroTol(1e-5))
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
