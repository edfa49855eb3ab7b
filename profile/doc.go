// Package profile assembles the (x, y) series of REE profile plots.
//
// It renders nothing. A Plot is a plain description (axes, ticks and
// labelled marker or line series) that a plotting front end draws as is.
//
// Coordinate domains:
//
//	radii     x = ionic radius (3+, CN VIII), axis inverted so La sits left
//	elements  x = ionic radius, ticks labelled by element symbol
//	z         x = atomic number, ticks labelled by element symbol
//
// Any other domain name is normalised to z.
//
// Entry points:
//   - Tetrads: tetrad-only profiles from tau vectors (markers + line per vector).
//   - Lambdas: "Regression" lines reconstructed from lambda vectors.
//   - LambdaComponents: one lambda vector split into its polynomial terms.
package profile
