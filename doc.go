// Package geochem reconstructs and assembles rare-earth-element (REE) profiles
// and carries the compositional-data tools used alongside them.
//
// 🚀 What is geochem?
//
//	A pure-Go numerical library (plus a small JSON service) that brings together:
//		• REE coordinates: element table, Shannon radii, z <-> radius transforms
//		• Lambdas: orthogonal-polynomial reconstruction, components, fitting
//		• Tetrads: semicircular tetrad basis with artifact-zero suppression
//		• Profiles: plot-ready marker and line series in radii, elements or z
//		• Compositional data: closure, clr/alr/ilr, log-ratio statistics
//
// Packages:
//
//	matrix/    dense row-major matrix, products, Jacobi eigen solver, column statistics
//	ree/       lanthanide table, ionic radii and coordinate transforms
//	lambdas/   basis parameters, Reconstruct, Components, Fit
//	tetrads/   tetrad basis, Evaluate, Profiles, drop0
//	profile/   Tetrads, Lambdas, LambdaComponents plot assembly
//	comp/      Aitchison transforms and ratio statistics
//
// Quick example:
//
//	params, _ := lambdas.DefaultParams(4)
//	plot, err := profile.LambdaComponents([]float64{2.1, -10.5, 30, 120, -400}, params, profile.DefaultConfig())
//	if err != nil {
//	  // lambdas.ErrShapeMismatch, ree.ErrDomain, ...
//	}
//	for _, s := range plot.Series {
//	  fmt.Println(s.Label, len(s.X))
//	}
//
// The service lives in cmd/reeprofile and serves the same assemblies over HTTP.
package geochem
