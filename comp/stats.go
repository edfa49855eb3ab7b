package comp

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"

	"github.com/katalvlaran/geochem/matrix"
)

// LogRatioMean returns the closed geometric mean composition of X:
// InverseCLR(mean(CLR(X))).
func LogRatioMean(X matrix.Matrix) ([]float64, error) {
	if err := matrix.ValidateNotNil(X); err != nil {
		return nil, fmt.Errorf("LogRatioMean: %w", err)
	}
	clr, err := CLR(X)
	if err != nil {
		return nil, fmt.Errorf("LogRatioMean: %w", err)
	}
	means, err := matrix.ColumnMeans(clr)
	if err != nil {
		return nil, fmt.Errorf("LogRatioMean: %w", err)
	}
	row, err := matrix.NewRowVector(means)
	if err != nil {
		return nil, fmt.Errorf("LogRatioMean: %w", err)
	}
	closed, err := InverseCLR(row)
	if err != nil {
		return nil, fmt.Errorf("LogRatioMean: %w", err)
	}

	return closed.Row(0)
}

// CLRCovariance returns the D×D sample covariance of the CLR coordinates of X.
// Every row and column of the result sums to zero. Needs at least two rows.
func CLRCovariance(X matrix.Matrix) (*matrix.Dense, error) {
	clr, err := CLR(X)
	if err != nil {
		return nil, fmt.Errorf("CLRCovariance: %w", err)
	}
	if clr.Rows() < 2 {
		return nil, fmt.Errorf("CLRCovariance: %d rows: %w", clr.Rows(), ErrEmptyInput)
	}
	cov, _, err := matrix.Covariance(clr)
	if err != nil {
		return nil, fmt.Errorf("CLRCovariance: %w", err)
	}

	return cov, nil
}

// VariationMatrix returns the D×D Aitchison variation matrix
// T[i][j] = var(log(x_i / x_j)) (population variance over rows).
func VariationMatrix(X matrix.Matrix) (*matrix.Dense, error) {
	rows, err := rowsOf(X)
	if err != nil {
		return nil, fmt.Errorf("VariationMatrix: %w", err)
	}
	for i, row := range rows {
		if err = logRow(row); err != nil {
			return nil, fmt.Errorf("VariationMatrix: row %d: %w", i, err)
		}
	}
	d := X.Cols()
	T, err := matrix.NewDense(d, d)
	if err != nil {
		return nil, fmt.Errorf("VariationMatrix: %w", err)
	}
	lr := make([]float64, len(rows))
	for i := 0; i < d; i++ {
		for j := i + 1; j < d; j++ {
			for k, row := range rows {
				lr[k] = row[i] - row[j]
			}
			v, err := stats.PopulationVariance(lr)
			if err != nil {
				return nil, fmt.Errorf("VariationMatrix: %w", err)
			}
			if err = T.Set(i, j, v); err != nil {
				return nil, fmt.Errorf("VariationMatrix: %w", err)
			}
			if err = T.Set(j, i, v); err != nil {
				return nil, fmt.Errorf("VariationMatrix: %w", err)
			}
		}
	}

	return T, nil
}

// RatioSummary contrasts simple ratios of two variables with log-ratios.
//
// Simple-ratio means do not invert (Inversion != 1) and their relative
// deviations differ by direction; the log-ratio counterparts agree.
type RatioSummary struct {
	MeanAB, MeanBA float64 // mean(a/b), mean(b/a)
	Inversion      float64 // mean(a/b) / (1/mean(b/a)); 1 only if invertible
	RSDAB, RSDBA   float64 // std/mean of a/b and b/a

	GeoMeanAB    float64 // exp(mean(log(a/b)))
	InvGeoMeanBA float64 // 1/exp(mean(log(b/a))); equals GeoMeanAB
	LogRelVarAB  float64 // (std/mean)² of log(a/b)
	LogRelVarBA  float64 // (std/mean)² of log(b/a)
}

// CompareRatios summarises a/b against b/a. Standard deviations are
// population deviations.
func CompareRatios(a, b []float64) (RatioSummary, error) {
	if len(a) != len(b) {
		return RatioSummary{}, fmt.Errorf("CompareRatios: %d vs %d: %w", len(a), len(b), ErrShapeMismatch)
	}
	if len(a) == 0 {
		return RatioSummary{}, fmt.Errorf("CompareRatios: %w", ErrEmptyInput)
	}
	ab := make([]float64, len(a))
	ba := make([]float64, len(a))
	lab := make([]float64, len(a))
	lba := make([]float64, len(a))
	for i := range a {
		if !(a[i] > 0) || !(b[i] > 0) {
			return RatioSummary{}, fmt.Errorf("CompareRatios: pair %d: %w", i, ErrNonPositive)
		}
		ab[i], ba[i] = a[i]/b[i], b[i]/a[i]
		lab[i], lba[i] = math.Log(ab[i]), math.Log(ba[i])
	}

	var s RatioSummary
	var err error
	if s.MeanAB, s.RSDAB, err = meanRSD(ab); err != nil {
		return RatioSummary{}, fmt.Errorf("CompareRatios: %w", err)
	}
	if s.MeanBA, s.RSDBA, err = meanRSD(ba); err != nil {
		return RatioSummary{}, fmt.Errorf("CompareRatios: %w", err)
	}
	s.Inversion = s.MeanAB * s.MeanBA

	mAB, rAB, err := meanRSD(lab)
	if err != nil {
		return RatioSummary{}, fmt.Errorf("CompareRatios: %w", err)
	}
	mBA, rBA, err := meanRSD(lba)
	if err != nil {
		return RatioSummary{}, fmt.Errorf("CompareRatios: %w", err)
	}
	s.GeoMeanAB = math.Exp(mAB)
	s.InvGeoMeanBA = 1 / math.Exp(mBA)
	s.LogRelVarAB = rAB * rAB
	s.LogRelVarBA = rBA * rBA

	return s, nil
}

func meanRSD(xs []float64) (mean, rsd float64, err error) {
	if mean, err = stats.Mean(xs); err != nil {
		return 0, 0, err
	}
	sd, err := stats.StandardDeviationPopulation(xs)
	if err != nil {
		return 0, 0, err
	}

	return mean, sd / mean, nil
}
