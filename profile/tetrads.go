package profile

import (
	"fmt"

	"github.com/katalvlaran/geochem/internal/floats"
	"github.com/katalvlaran/geochem/ree"
	"github.com/katalvlaran/geochem/tetrads"
)

// Tetrads assembles tetrad-only profiles: for every tau vector a marker
// series at z = 57..71 and a line series over LinePoints positions in [57, 71].
//
// With cfg.Drop0 artifact zeros become NaN (anchors 57, 64, 71 keep their
// zeros) and are counted in Plot.Suppressed.
//
// Errors: ErrEmptyInput for no tau vectors; tetrads.ErrShapeMismatch for a
// vector that is not 4 long.
func Tetrads(taus [][]float64, cfg Config) (*Plot, error) {
	if len(taus) == 0 {
		return nil, fmt.Errorf("Tetrads: %w", ErrEmptyInput)
	}
	d := ParseDomain(string(cfg.Domain))

	z := floats.Arange[float64](ree.MinZ, ree.MaxZ)
	lineZ := floats.Linspace(float64(ree.MinZ), float64(ree.MaxZ), cfg.linePoints())

	markers, err := tetrads.Profiles(taus, z)
	if err != nil {
		return nil, fmt.Errorf("Tetrads: markers: %w", err)
	}
	lines, err := tetrads.Profiles(taus, lineZ)
	if err != nil {
		return nil, fmt.Errorf("Tetrads: line: %w", err)
	}

	xs, lineX := z, lineZ
	if d != DomainZ {
		if xs, err = ree.ZToRadii(z); err != nil {
			return nil, fmt.Errorf("Tetrads: %w", err)
		}
		if lineX, err = ree.ZToRadii(lineZ); err != nil {
			return nil, fmt.Errorf("Tetrads: %w", err)
		}
	}
	xAxis, yAxis, err := axes(d, cfg)
	if err != nil {
		return nil, fmt.Errorf("Tetrads: %w", err)
	}

	p := &Plot{Domain: d, XAxis: xAxis, YAxis: yAxis}
	markerRows, lineRows := markers.RowSlices(), lines.RowSlices()
	for i := range taus {
		my, ly := markerRows[i], lineRows[i]
		if cfg.Drop0 {
			n, err := tetrads.SuppressRow(my, z)
			if err != nil {
				return nil, fmt.Errorf("Tetrads: %w", err)
			}
			m, err := tetrads.SuppressRow(ly, lineZ)
			if err != nil {
				return nil, fmt.Errorf("Tetrads: %w", err)
			}
			p.Suppressed += n + m
		}
		label := fmt.Sprintf("τ%d", i)
		p.Series = append(p.Series,
			Series{
				Label: label,
				Kind:  KindMarkers,
				X:     floats.Clone(xs),
				Y:     my,
				Style: cfg.style(map[string]string{"linewidth": "0"}),
			},
			Series{
				Label: label,
				Kind:  KindLine,
				X:     floats.Clone(lineX),
				Y:     ly,
				Style: cfg.style(map[string]string{"marker": ""}),
			},
		)
	}

	return finish(p, cfg, "tetrads"), nil
}
