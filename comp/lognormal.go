package comp

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"
)

// NormToLogNorm returns the log-space parameters (mu, s) of the lognormal
// distribution with the given arithmetic mean and standard deviation.
func NormToLogNorm(mean, sd float64) (mu, s float64, err error) {
	if !(mean > 0) {
		return 0, 0, fmt.Errorf("NormToLogNorm: mean %g: %w", mean, ErrNonPositive)
	}
	if sd < 0 || math.IsNaN(sd) {
		return 0, 0, fmt.Errorf("NormToLogNorm: sd %g: %w", sd, ErrNonPositive)
	}
	v := math.Log(1 + sd*sd/(mean*mean))

	return math.Log(mean) - v/2, math.Sqrt(v), nil
}

// LogNormToNorm returns the arithmetic mean and standard deviation of the
// lognormal distribution with log-space parameters (mu, s).
func LogNormToNorm(mu, s float64) (mean, sd float64) {
	s2 := s * s
	mean = math.Exp(mu + s2/2)
	sd = math.Sqrt((math.Exp(s2) - 1) * math.Exp(2*mu+s2))

	return mean, sd
}

// LogNormal returns the lognormal distribution matching an arithmetic mean
// and standard deviation.
func LogNormal(mean, sd float64) (distuv.LogNormal, error) {
	mu, s, err := NormToLogNorm(mean, sd)
	if err != nil {
		return distuv.LogNormal{}, fmt.Errorf("LogNormal: %w", err)
	}

	return distuv.LogNormal{Mu: mu, Sigma: s}, nil
}

// FitLogNormal returns the maximum-likelihood lognormal (location fixed at 0)
// for strictly positive samples.
func FitLogNormal(samples []float64) (distuv.LogNormal, error) {
	if len(samples) == 0 {
		return distuv.LogNormal{}, fmt.Errorf("FitLogNormal: %w", ErrEmptyInput)
	}
	logs := make([]float64, len(samples))
	for i, v := range samples {
		if !(v > 0) {
			return distuv.LogNormal{}, fmt.Errorf("FitLogNormal: sample %d = %g: %w", i, v, ErrNonPositive)
		}
		logs[i] = math.Log(v)
	}
	mu, err := stats.Mean(logs)
	if err != nil {
		return distuv.LogNormal{}, fmt.Errorf("FitLogNormal: %w", err)
	}
	sigma, err := stats.StandardDeviationPopulation(logs)
	if err != nil {
		return distuv.LogNormal{}, fmt.Errorf("FitLogNormal: %w", err)
	}

	return distuv.LogNormal{Mu: mu, Sigma: sigma}, nil
}
