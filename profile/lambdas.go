package profile

import (
	"fmt"

	"github.com/katalvlaran/geochem/internal/floats"
	"github.com/katalvlaran/geochem/lambdas"
	"github.com/katalvlaran/geochem/ree"
)

// RegressionLabel is the legend label of a reconstructed lambda profile.
const RegressionLabel = "Regression"

// Lambdas assembles one "Regression" line per lambda vector.
//
// A nil params derives lambdas.DefaultParams for the length of the first
// vector; an empty vector is the zero function. Lines run over LambdaPoints radii from the largest to the smallest
// REE radius; in the z domain x is the atomic number of each sample.
func Lambdas(ls [][]float64, params lambdas.Params, cfg Config) (*Plot, error) {
	if len(ls) == 0 {
		return nil, fmt.Errorf("Lambdas: %w", ErrEmptyInput)
	}
	params, err := resolveParams(ls[0], params)
	if err != nil {
		return nil, fmt.Errorf("Lambdas: %w", err)
	}
	p, xs, radii, err := lambdaFrame(cfg)
	if err != nil {
		return nil, fmt.Errorf("Lambdas: %w", err)
	}
	for i, row := range ls {
		f, err := lambdas.Reconstruct(row, params)
		if err != nil {
			return nil, fmt.Errorf("Lambdas: row %d: %w", i, err)
		}
		p.Series = append(p.Series, Series{
			Label: RegressionLabel,
			Kind:  KindLine,
			X:     floats.Clone(xs),
			Y:     f.Evaluate(radii),
			Style: cfg.style(map[string]string{"color": "k"}),
		})
	}

	return finish(p, cfg, "lambdas"), nil
}

// LambdaComponents assembles the "Regression" line of one lambda vector
// followed by one dashed line per polynomial component. An empty vector with
// nil params gives a zero "Regression" line and no components.
func LambdaComponents(ls []float64, params lambdas.Params, cfg Config) (*Plot, error) {
	params, err := resolveParams(ls, params)
	if err != nil {
		return nil, fmt.Errorf("LambdaComponents: %w", err)
	}
	comps, err := lambdas.Components(ls, params)
	if err != nil {
		return nil, fmt.Errorf("LambdaComponents: %w", err)
	}
	whole, err := lambdas.Reconstruct(ls, params)
	if err != nil {
		return nil, fmt.Errorf("LambdaComponents: %w", err)
	}
	p, xs, radii, err := lambdaFrame(cfg)
	if err != nil {
		return nil, fmt.Errorf("LambdaComponents: %w", err)
	}

	p.Series = append(p.Series, Series{
		Label: RegressionLabel,
		Kind:  KindLine,
		X:     floats.Clone(xs),
		Y:     whole.Evaluate(radii),
		Style: cfg.style(map[string]string{"color": "k"}),
	})
	for _, c := range comps {
		p.Series = append(p.Series, Series{
			Label: c.Label,
			Kind:  KindLine,
			X:     floats.Clone(xs),
			Y:     c.Func.Evaluate(radii),
			Style: cfg.style(map[string]string{"linestyle": "--"}),
		})
	}

	return finish(p, cfg, "lambda-components"), nil
}

func resolveParams(row []float64, params lambdas.Params) (lambdas.Params, error) {
	if params != nil {
		return params, nil
	}
	if len(row) == 0 {
		return lambdas.Params{}, nil
	}

	return lambdas.DefaultParams(len(row) - 1)
}

// lambdaFrame returns an empty plot with axes plus the x positions and the
// radii at which the lambda functions are evaluated.
func lambdaFrame(cfg Config) (*Plot, []float64, []float64, error) {
	d := ParseDomain(string(cfg.Domain))
	xAxis, yAxis, err := axes(d, cfg)
	if err != nil {
		return nil, nil, nil, err
	}
	p := &Plot{Domain: d, XAxis: xAxis, YAxis: yAxis}

	if d == DomainZ {
		zs := floats.Linspace(float64(ree.MinZ), float64(ree.MaxZ), LambdaPoints)
		radii, err := ree.ZToRadii(zs)
		if err != nil {
			return nil, nil, nil, err
		}
		return p, zs, radii, nil
	}

	lo, hi, _ := floats.MinMax(ree.DefaultRadii())
	radii := floats.Linspace(hi, lo, LambdaPoints)

	return p, radii, radii, nil
}
