// Package ree holds the rare-earth-element coordinate domain used by REE
// profile plots: the lanthanide table (La..Lu, Z = 57..71), Shannon ionic
// radii, and the conversions between atomic number and ionic radius.
//
// Three interchangeable coordinates describe a position in an REE profile:
//
//	z         atomic number, integer 57..71 (fractional for dense line sampling)
//	radius    ionic radius in Å for a given charge and coordination, decreasing with z
//	element   categorical ordering by symbol
//
// The continuous z → radius transform is a least-squares polynomial through the
// tabulated radii (3+, coordination VIII by default), so fractional positions
// map smoothly; NearestZ maps back to the closest tabulated element.
//
// Usage:
//
//	r, _ := ree.ZToRadii([]float64{57, 64, 71})
//	z, _ := ree.NearestZ(r[1]) // 64
//
// Errors:
//   - ErrDomain: coordinate outside the REE range for the transform.
//   - ErrUnknownIon: no tabulated radius for (element, charge, coordination).
package ree
