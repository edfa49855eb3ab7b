package profile

import (
	"io"
	"log/slog"
	"math"
	"strconv"

	"github.com/katalvlaran/geochem/ree"
)

// Domain selects the x coordinate of a plot.
type Domain string

const (
	DomainRadii    Domain = "radii"
	DomainElements Domain = "elements"
	DomainZ        Domain = "z"
)

// ParseDomain returns the domain named s; unknown names fall back to DomainZ.
func ParseDomain(s string) Domain {
	switch d := Domain(s); d {
	case DomainRadii, DomainElements:
		return d
	default:
		return DomainZ
	}
}

// Kind tells the renderer how to draw a series.
type Kind string

const (
	KindMarkers Kind = "markers"
	KindLine    Kind = "line"
)

// Sampling densities of the line series.
const (
	DefaultLinePoints = 1000 // tetrad lines over [57, 71]
	LambdaPoints      = 100  // lambda regression lines
)

// Tick is one labelled axis position.
type Tick struct {
	Value float64 `json:"value"`
	Label string  `json:"label"`
}

// Axis describes one plot axis.
type Axis struct {
	Label    string `json:"label"`
	Ticks    []Tick `json:"ticks,omitempty"`
	Log      bool   `json:"log"`
	Inverted bool   `json:"inverted"`
}

// Series is one drawable (x, y) sequence. NaN in Y means "no value".
type Series struct {
	Label string            `json:"label"`
	Kind  Kind              `json:"kind"`
	X     []float64         `json:"x"`
	Y     []float64         `json:"y"`
	Style map[string]string `json:"style,omitempty"`
}

// Plot is the assembled description of a profile figure.
type Plot struct {
	Domain     Domain   `json:"domain"`
	XAxis      Axis     `json:"x_axis"`
	YAxis      Axis     `json:"y_axis"`
	Series     []Series `json:"series"`
	Suppressed int      `json:"suppressed"` // values dropped as artifact zeros
}

// Config carries the per-call plotting choices.
type Config struct {
	Domain     Domain
	Drop0      bool
	LogY       bool
	IncludePm  bool              // keep the Pm tick label
	LinePoints int               // tetrad line density; <= 0 selects DefaultLinePoints
	Style      map[string]string // forwarded on every series
	Logger     *slog.Logger      // nil discards
}

// DefaultConfig mirrors the usual tetrad figure: radii domain, drop0 on.
func DefaultConfig() Config {
	return Config{
		Domain:     DomainRadii,
		Drop0:      true,
		LinePoints: DefaultLinePoints,
	}
}

func (c Config) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}

	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func (c Config) linePoints() int {
	if c.LinePoints <= 0 {
		return DefaultLinePoints
	}

	return c.LinePoints
}

// style merges base under the configured style; cfg keys win.
func (c Config) style(base map[string]string) map[string]string {
	if len(base) == 0 && len(c.Style) == 0 {
		return nil
	}
	out := make(map[string]string, len(base)+len(c.Style))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range c.Style {
		out[k] = v
	}

	return out
}

const yLabel = "Normalised abundance"

// axes builds the x and y axes for domain d.
func axes(d Domain, cfg Config) (Axis, Axis, error) {
	els := ree.REE(ree.WithPm(cfg.IncludePm))
	y := Axis{Label: yLabel, Log: cfg.LogY}

	if d == DomainZ {
		x := Axis{Label: "Z"}
		for _, e := range els {
			x.Ticks = append(x.Ticks, Tick{Value: float64(e.Z), Label: e.Symbol})
		}
		return x, y, nil
	}

	radii, err := ree.Radii(els, ree.DefaultCharge, ree.DefaultCoordination)
	if err != nil {
		return Axis{}, Axis{}, err
	}
	x := Axis{Label: "Ionic Radius (Å)", Inverted: true}
	if d == DomainElements {
		x.Label = "Element"
	}
	for i, e := range els {
		label := strconv.FormatFloat(radii[i], 'f', 3, 64)
		if d == DomainElements {
			label = e.Symbol
		}
		x.Ticks = append(x.Ticks, Tick{Value: radii[i], Label: label})
	}

	return x, y, nil
}

// applyLogY blanks values a log axis cannot show.
func applyLogY(ys []float64) {
	for i, v := range ys {
		if v <= 0 {
			ys[i] = math.NaN()
		}
	}
}

// finish applies the y-axis policy, logs and returns the plot.
func finish(p *Plot, cfg Config, kind string) *Plot {
	if cfg.LogY {
		for i := range p.Series {
			applyLogY(p.Series[i].Y)
		}
	}
	cfg.logger().Debug("profile assembled",
		"kind", kind,
		"domain", string(p.Domain),
		"series", len(p.Series),
		"suppressed", p.Suppressed,
	)

	return p
}
