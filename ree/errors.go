package ree

import "errors"

var (
	// ErrDomain indicates a coordinate outside the valid REE range
	// (z outside 57..71, or a radius outside the tabulated span).
	ErrDomain = errors.New("ree: coordinate outside REE domain")

	// ErrUnknownElement indicates a symbol or atomic number that is not a lanthanide.
	ErrUnknownElement = errors.New("ree: unknown element")

	// ErrUnknownIon indicates no tabulated radius for the (element, charge, coordination) key.
	ErrUnknownIon = errors.New("ree: no ionic radius for ion")
)
