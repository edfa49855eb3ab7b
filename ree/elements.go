package ree

import "fmt"

// Atomic-number bounds of the lanthanide series.
const (
	MinZ = 57 // La
	MaxZ = 71 // Lu
	PmZ  = 61 // Pm, radioactive; usually omitted from data and labels
)

// Element is a lanthanide identified by symbol and atomic number.
type Element struct {
	Symbol string
	Z      int
}

// lanthanides in atomic-number order; index = Z - MinZ.
var lanthanides = [...]Element{
	{"La", 57}, {"Ce", 58}, {"Pr", 59}, {"Nd", 60}, {"Pm", 61},
	{"Sm", 62}, {"Eu", 63}, {"Gd", 64}, {"Tb", 65}, {"Dy", 66},
	{"Ho", 67}, {"Er", 68}, {"Tm", 69}, {"Yb", 70}, {"Lu", 71},
}

var bySymbol = func() map[string]Element {
	m := make(map[string]Element, len(lanthanides))
	for _, e := range lanthanides {
		m[e.Symbol] = e
	}
	return m
}()

// Option configures element list selection.
type Option func(*options)

type options struct {
	includePm bool
}

// WithPm includes (true) or drops (false, the default) promethium.
func WithPm(include bool) Option {
	return func(o *options) { o.includePm = include }
}

// REE returns the lanthanides in atomic-number order. Pm is dropped unless WithPm(true).
func REE(opts ...Option) []Element {
	var o options
	for _, fn := range opts {
		fn(&o)
	}
	out := make([]Element, 0, len(lanthanides))
	for _, e := range lanthanides {
		if e.Z == PmZ && !o.includePm {
			continue
		}
		out = append(out, e)
	}

	return out
}

// Symbols returns the element symbols of REE(opts...).
func Symbols(opts ...Option) []string {
	els := REE(opts...)
	out := make([]string, len(els))
	for i, e := range els {
		out[i] = e.Symbol
	}

	return out
}

// Zs returns the atomic numbers of REE(opts...) as floats, ready for evaluation.
func Zs(opts ...Option) []float64 {
	els := REE(opts...)
	out := make([]float64, len(els))
	for i, e := range els {
		out[i] = float64(e.Z)
	}

	return out
}

// Symbol returns the symbol of the lanthanide with atomic number z.
func Symbol(z int) (string, error) {
	if z < MinZ || z > MaxZ {
		return "", fmt.Errorf("Symbol(%d): %w", z, ErrUnknownElement)
	}

	return lanthanides[z-MinZ].Symbol, nil
}

// Z returns the atomic number of the lanthanide with the given symbol.
func Z(symbol string) (int, error) {
	e, ok := bySymbol[symbol]
	if !ok {
		return 0, fmt.Errorf("Z(%q): %w", symbol, ErrUnknownElement)
	}

	return e.Z, nil
}
